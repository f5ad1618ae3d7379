package debug

import (
	"testing"

	"github.com/Faultbox/scenekit/pkg/math"
)

func TestBoxWireframeVertices(t *testing.T) {
	verts := BoxWireframeVertices(math.UnitBox3())
	if len(verts) != BoxWireframeVertexCount*3 {
		t.Fatalf("vertex floats: got %d, want %d", len(verts), BoxWireframeVertexCount*3)
	}
	// Every coordinate of the unit box wireframe is ±0.5.
	for i, v := range verts {
		if v != 0.5 && v != -0.5 {
			t.Fatalf("vertex float %d: got %v, want ±0.5", i, v)
		}
	}
}

func TestSelectionWireframePadding(t *testing.T) {
	verts := SelectionWireframe(math.UnitBox3(), 0.5)
	for i, v := range verts {
		if v != 1 && v != -1 {
			t.Fatalf("padded vertex float %d: got %v, want ±1", i, v)
		}
	}
}
