package spatial

import (
	"sort"

	"github.com/Faultbox/scenekit/pkg/math"
)

// bvhNode is one entry in the hierarchy arena. Children are arena
// indices (-1 for none); a node with node != nil is a leaf. The arena is
// cleared and repopulated on every rebuild, so entries never outlive the
// build that produced them.
type bvhNode[T any] struct {
	bounds      math.Box3
	left, right int32
	node        *Node[T]
}

// build reconstructs the hierarchy over the current node set using a
// median split: sort by world-bounds center along the axis depth%3 and
// divide at the list midpoint. Deterministic and parameter-free; good
// enough for editor-scale node counts.
func (x *Index[T]) build() {
	x.arena = x.arena[:0]
	x.root = -1
	x.stale = false

	if len(x.nodes) == 0 {
		return
	}

	list := make([]*Node[T], 0, len(x.nodes))
	for _, n := range x.nodes {
		list = append(list, n)
	}
	x.root = x.buildSubtree(list, 0)
}

// buildSubtree appends the subtree for list to the arena and returns its
// arena index. list must be non-empty.
func (x *Index[T]) buildSubtree(list []*Node[T], depth int) int32 {
	bounds := math.EmptyBox3()
	for _, n := range list {
		bounds = bounds.Union(n.worldBounds)
	}

	idx := int32(len(x.arena))
	if len(list) == 1 {
		x.arena = append(x.arena, bvhNode[T]{bounds: bounds, left: -1, right: -1, node: list[0]})
		return idx
	}

	axis := depth % 3
	sort.Slice(list, func(i, j int) bool {
		return list[i].worldBounds.Center().Component(axis) < list[j].worldBounds.Center().Component(axis)
	})

	x.arena = append(x.arena, bvhNode[T]{bounds: bounds, left: -1, right: -1})
	mid := len(list) / 2
	left := x.buildSubtree(list[:mid], depth+1)
	right := x.buildSubtree(list[mid:], depth+1)
	x.arena[idx].left = left
	x.arena[idx].right = right
	return idx
}

// rayResult tracks the running closest hit during traversal.
type rayResult[T any] struct {
	node *Node[T]
	dist float32
}

// castNode walks the hierarchy depth-first, front to back, pruning any
// subtree whose entry distance is already past the running closest hit.
// When both children are struck, the nearer one is visited first; equal
// entry distances descend the right child first.
func (x *Index[T]) castNode(i int32, origin, dir math.Vec3, best *rayResult[T]) {
	nd := &x.arena[i]
	t, ok := nd.bounds.IntersectRay(origin, dir)
	if !ok || t > best.dist {
		return
	}

	if nd.node != nil {
		// Leaf: test against the node's live world bounds, not the box
		// cached at build time.
		lt, lok := nd.node.worldBounds.IntersectRay(origin, dir)
		if lok && lt < best.dist {
			best.node = nd.node
			best.dist = lt
		}
		return
	}

	lt, lok := x.arena[nd.left].bounds.IntersectRay(origin, dir)
	rt, rok := x.arena[nd.right].bounds.IntersectRay(origin, dir)
	switch {
	case lok && rok:
		if lt < rt {
			x.castNode(nd.left, origin, dir, best)
			x.castNode(nd.right, origin, dir, best)
		} else {
			x.castNode(nd.right, origin, dir, best)
			x.castNode(nd.left, origin, dir, best)
		}
	case lok:
		x.castNode(nd.left, origin, dir, best)
	case rok:
		x.castNode(nd.right, origin, dir, best)
	}
}

// queryNode collects every leaf whose live world bounds overlaps box,
// pruning subtrees whose box does not overlap.
func (x *Index[T]) queryNode(i int32, box math.Box3, out *[]*Node[T]) {
	nd := &x.arena[i]
	if !nd.bounds.Intersects(box) {
		return
	}
	if nd.node != nil {
		if nd.node.worldBounds.Intersects(box) {
			*out = append(*out, nd.node)
		}
		return
	}
	x.queryNode(nd.left, box, out)
	x.queryNode(nd.right, box, out)
}
