package spatial

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/scenekit/pkg/math"
)

// ErrDuplicateID is returned by Index.Add when a node with the same id
// already exists in the index.
var ErrDuplicateID = errors.New("duplicate node id")

// NodeSpec describes a node passed to Index.Add. Zero values give an
// identity transform; nil Scale means (1,1,1) and nil LocalBounds means
// the unit cube.
type NodeSpec[T any] struct {
	Position    math.Vec3
	Rotation    math.Vec3 // Euler degrees, applied X then Y then Z
	Scale       *math.Vec3
	LocalBounds *math.Box3
	Payload     T
}

// NodeUpdate carries a partial update for Index.Update. Only non-nil
// fields are applied.
type NodeUpdate[T any] struct {
	Position    *math.Vec3
	Rotation    *math.Vec3
	Scale       *math.Vec3
	LocalBounds *math.Box3
	Payload     *T
}

// Hit is the result of a ray cast: the struck node, the distance along
// the (normalized) ray, and the hit point on the node's world bounds.
type Hit[T any] struct {
	Node     *Node[T]
	Distance float32
	Point    math.Vec3
}

// Index owns a set of nodes and a bounding-volume hierarchy over their
// world bounds. Structural mutations mark the hierarchy stale; it is
// rebuilt in full the next time a query runs. Hits resolve to
// bounding-box granularity, not triangles.
//
// An Index must be used from a single goroutine.
type Index[T any] struct {
	nodes map[string]*Node[T]
	arena []bvhNode[T]
	root  int32
	stale bool
}

// NewIndex returns an empty index.
func NewIndex[T any]() *Index[T] {
	return &Index[T]{
		nodes: make(map[string]*Node[T]),
		root:  -1,
	}
}

// Add creates a node from spec and stores it under id. It returns
// ErrDuplicateID if the id is already taken.
func (x *Index[T]) Add(id string, spec NodeSpec[T]) (*Node[T], error) {
	if _, exists := x.nodes[id]; exists {
		return nil, fmt.Errorf("add node %q: %w", id, ErrDuplicateID)
	}

	n := &Node[T]{
		id:          id,
		position:    spec.Position,
		rotationDeg: spec.Rotation,
		scale:       math.Vec3{X: 1, Y: 1, Z: 1},
		localBounds: math.UnitBox3(),
		Payload:     spec.Payload,
		owner:       x,
	}
	if spec.Scale != nil {
		n.scale = *spec.Scale
	}
	if spec.LocalBounds != nil {
		n.localBounds = *spec.LocalBounds
	}
	n.worldBounds = n.localBounds.Transformed(n.position, n.rotationDeg, n.scale)

	x.nodes[id] = n
	x.stale = true
	return n, nil
}

// Remove deletes the node with the given id and reports whether it was
// present.
func (x *Index[T]) Remove(id string) bool {
	n, ok := x.nodes[id]
	if !ok {
		return false
	}
	n.owner = nil
	delete(x.nodes, id)
	x.stale = true
	return true
}

// Get returns the node with the given id, or false if it does not exist.
func (x *Index[T]) Get(id string) (*Node[T], bool) {
	n, ok := x.nodes[id]
	return n, ok
}

// Len returns the number of nodes in the index.
func (x *Index[T]) Len() int { return len(x.nodes) }

// Update applies the non-nil fields of u to the node with the given id.
// The index goes stale only when a geometric field changed; a pure
// payload update leaves the hierarchy untouched. Returns false if the id
// is unknown.
func (x *Index[T]) Update(id string, u NodeUpdate[T]) (*Node[T], bool) {
	n, ok := x.nodes[id]
	if !ok {
		return nil, false
	}

	geometric := false
	if u.Position != nil {
		n.position = *u.Position
		geometric = true
	}
	if u.Rotation != nil {
		n.rotationDeg = *u.Rotation
		geometric = true
	}
	if u.Scale != nil {
		n.scale = *u.Scale
		geometric = true
	}
	if u.LocalBounds != nil {
		n.localBounds = *u.LocalBounds
		geometric = true
	}
	if u.Payload != nil {
		n.Payload = *u.Payload
	}

	if geometric {
		n.refresh()
	}
	return n, true
}

// All returns a snapshot of the current nodes in unspecified order.
func (x *Index[T]) All() []*Node[T] {
	out := make([]*Node[T], 0, len(x.nodes))
	for _, n := range x.nodes {
		out = append(out, n)
	}
	return out
}

// Clear drops every node and the hierarchy. Nothing is left pending: the
// stale flag is reset.
func (x *Index[T]) Clear() {
	for _, n := range x.nodes {
		n.owner = nil
	}
	x.nodes = make(map[string]*Node[T])
	x.arena = x.arena[:0]
	x.root = -1
	x.stale = false
}

// Rebuild reconstructs the hierarchy from scratch regardless of
// staleness. Calling it once per frame amortizes the rebuild cost that
// queries would otherwise pay after a batch of edits.
func (x *Index[T]) Rebuild() {
	x.build()
}

// ensureFresh rebuilds the hierarchy if a mutation happened since the
// last build.
func (x *Index[T]) ensureFresh() {
	if x.stale {
		x.build()
	}
}

// CastRay returns the closest node whose world bounds the ray strikes,
// or false if nothing is hit. The direction is normalized before
// traversal, so the hit distance is in world units and
// Point = origin + direction*Distance.
func (x *Index[T]) CastRay(origin, direction math.Vec3) (Hit[T], bool) {
	x.ensureFresh()
	if x.root < 0 {
		return Hit[T]{}, false
	}

	dir := direction.Normalize()
	best := rayResult[T]{dist: math32.Inf(1)}
	x.castNode(x.root, origin, dir, &best)
	if best.node == nil {
		return Hit[T]{}, false
	}
	return Hit[T]{
		Node:     best.node,
		Distance: best.dist,
		Point:    origin.Add(dir.Scale(best.dist)),
	}, true
}

// QueryBounds returns every node whose world bounds overlaps box, without
// duplicates, in unspecified order.
func (x *Index[T]) QueryBounds(box math.Box3) []*Node[T] {
	x.ensureFresh()
	if x.root < 0 {
		return nil
	}
	var out []*Node[T]
	x.queryNode(x.root, box, &out)
	return out
}

// RootBounds returns the union of all node bounds, or false if the index
// is empty.
func (x *Index[T]) RootBounds() (math.Box3, bool) {
	x.ensureFresh()
	if x.root < 0 {
		return math.Box3{}, false
	}
	return x.arena[x.root].bounds, true
}
