// Package model computes object-space bounding boxes from loaded mesh
// geometry. It is the producer side of the spatial index's local-bounds
// contract: mesh loading itself happens elsewhere.
package model

import (
	"github.com/Faultbox/scenekit/pkg/math"
)

// Vertex is a mesh vertex as delivered by the asset loader. Only the
// position contributes to bounds.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	TexCoord math.Vec2
}

// ComputeLocalBounds reduces the vertex positions to an object-space
// bounding box. Empty geometry gets the unit cube so a node built from
// it still has pickable bounds.
func ComputeLocalBounds(vertices []Vertex) math.Box3 {
	if len(vertices) == 0 {
		return math.UnitBox3()
	}
	b := math.EmptyBox3()
	for _, v := range vertices {
		b.ExpandPoint(v.Position)
	}
	return b
}

// ComputeBoundsFromPositions is ComputeLocalBounds for loaders that hand
// over raw position triples instead of full vertices.
func ComputeBoundsFromPositions(positions [][3]float32) math.Box3 {
	if len(positions) == 0 {
		return math.UnitBox3()
	}
	b := math.EmptyBox3()
	for _, p := range positions {
		b.ExpandPoint(math.Vec3{X: p[0], Y: p[1], Z: p[2]})
	}
	return b
}
