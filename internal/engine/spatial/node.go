// Package spatial provides the bounding-volume index used for object
// picking and region queries over the editable scene. It is owned and
// called from a single thread (the editor loop) and is not safe for
// concurrent use.
package spatial

import (
	"github.com/Faultbox/scenekit/pkg/math"
)

// Node is an entry in a spatial index: an id, a transform, a local
// bounding box, and the derived world bounding box. The world bounds are
// recomputed eagerly by every setter, so they are always consistent with
// the current transform. Nodes are created through Index.Add and owned by
// the index; Payload is owned by the caller.
type Node[T any] struct {
	id          string
	position    math.Vec3
	rotationDeg math.Vec3
	scale       math.Vec3
	localBounds math.Box3
	worldBounds math.Box3

	// Payload is opaque caller data carried with the node.
	Payload T

	owner *Index[T]
}

// ID returns the node's identifier, unique within its index.
func (n *Node[T]) ID() string { return n.id }

// Position returns the node's position.
func (n *Node[T]) Position() math.Vec3 { return n.position }

// Rotation returns the node's Euler rotation in degrees (applied X, Y, Z).
func (n *Node[T]) Rotation() math.Vec3 { return n.rotationDeg }

// Scale returns the node's per-axis scale.
func (n *Node[T]) Scale() math.Vec3 { return n.scale }

// LocalBounds returns the node's object-space bounding box.
func (n *Node[T]) LocalBounds() math.Box3 { return n.localBounds }

// WorldBounds returns the node's world-space bounding box.
func (n *Node[T]) WorldBounds() math.Box3 { return n.worldBounds }

// SetPosition moves the node and refreshes its world bounds.
func (n *Node[T]) SetPosition(p math.Vec3) {
	n.position = p
	n.refresh()
}

// SetRotation sets the node's Euler rotation in degrees and refreshes its
// world bounds.
func (n *Node[T]) SetRotation(deg math.Vec3) {
	n.rotationDeg = deg
	n.refresh()
}

// SetScale sets the node's scale and refreshes its world bounds.
// Zero or negative components are not validated.
func (n *Node[T]) SetScale(s math.Vec3) {
	n.scale = s
	n.refresh()
}

// SetLocalBounds replaces the node's object-space bounding box and
// refreshes its world bounds.
func (n *Node[T]) SetLocalBounds(b math.Box3) {
	n.localBounds = b
	n.refresh()
}

// refresh recomputes the world bounds (8 corner transforms) and marks the
// owning index stale.
func (n *Node[T]) refresh() {
	n.worldBounds = n.localBounds.Transformed(n.position, n.rotationDeg, n.scale)
	if n.owner != nil {
		n.owner.stale = true
	}
}
