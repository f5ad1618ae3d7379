// Package selection tracks the set of scene nodes the user currently has
// selected.
package selection

import (
	"github.com/Faultbox/scenekit/internal/engine/spatial"
	"github.com/Faultbox/scenekit/pkg/math"
)

// Set tracks selected nodes. The active node is the last one selected
// and is what property panels show.
type Set[T any] struct {
	nodes  []*spatial.Node[T]
	active *spatial.Node[T]
}

// New creates an empty selection.
func New[T any]() *Set[T] {
	return &Set[T]{}
}

// Clear removes all selections.
func (s *Set[T]) Clear() {
	s.nodes = s.nodes[:0]
	s.active = nil
}

// Single selects a single node, clearing the previous selection.
func (s *Set[T]) Single(n *spatial.Node[T]) {
	s.nodes = append(s.nodes[:0], n)
	s.active = n
}

// Toggle adds or removes a node from the selection (shift-click).
func (s *Set[T]) Toggle(n *spatial.Node[T]) {
	for i, sel := range s.nodes {
		if sel == n {
			s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)
			if s.active == n {
				if len(s.nodes) > 0 {
					s.active = s.nodes[len(s.nodes)-1]
				} else {
					s.active = nil
				}
			}
			return
		}
	}
	s.nodes = append(s.nodes, n)
	s.active = n
}

// AddAll adds every given node to the selection without clearing it.
func (s *Set[T]) AddAll(nodes []*spatial.Node[T]) {
	for _, n := range nodes {
		if !s.IsSelected(n) {
			s.nodes = append(s.nodes, n)
			s.active = n
		}
	}
}

// IsSelected reports whether a node is in the selection.
func (s *Set[T]) IsSelected(n *spatial.Node[T]) bool {
	for _, sel := range s.nodes {
		if sel == n {
			return true
		}
	}
	return false
}

// Nodes returns the selected nodes in selection order.
func (s *Set[T]) Nodes() []*spatial.Node[T] {
	return s.nodes
}

// Active returns the last-selected node, or nil.
func (s *Set[T]) Active() *spatial.Node[T] {
	return s.active
}

// Len returns the number of selected nodes.
func (s *Set[T]) Len() int {
	return len(s.nodes)
}

// Center returns the average position of the selected nodes, for gizmo
// placement. Zero if nothing is selected.
func (s *Set[T]) Center() math.Vec3 {
	if len(s.nodes) == 0 {
		return math.Vec3{}
	}
	var c math.Vec3
	for _, n := range s.nodes {
		c = c.Add(n.Position())
	}
	return c.Scale(1 / float32(len(s.nodes)))
}

// Drop removes a node from the selection if present (used when the node
// is deleted from the scene).
func (s *Set[T]) Drop(n *spatial.Node[T]) {
	if s.IsSelected(n) {
		s.Toggle(n)
	}
}
