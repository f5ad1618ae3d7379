// Package debug provides debug visualization utilities.
package debug

import "github.com/Faultbox/scenekit/pkg/math"

// BoxWireframeVertexCount is the number of vertices for a box wireframe (12 edges × 2).
const BoxWireframeVertexCount = 24

// DefaultSelectionPadding is the default padding for selection highlight boxes.
const DefaultSelectionPadding = 0.05

// BoxWireframeVertices creates line vertices for a wireframe rendering of
// a world-space bounding box. Returns 24 vertices (12 edges × 2
// endpoints), format: [x, y, z] per vertex.
func BoxWireframeVertices(b math.Box3) []float32 {
	minX, minY, minZ := b.Min.X, b.Min.Y, b.Min.Z
	maxX, maxY, maxZ := b.Max.X, b.Max.Y, b.Max.Z
	return []float32{
		// Bottom face (4 edges)
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face (4 edges)
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Vertical edges (4 edges)
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}

// SelectionWireframe returns wireframe vertices for a selection highlight
// around a world bounding box, padded so the lines do not z-fight with
// the object surface.
func SelectionWireframe(b math.Box3, padding float32) []float32 {
	return BoxWireframeVertices(b.Expanded(padding))
}
