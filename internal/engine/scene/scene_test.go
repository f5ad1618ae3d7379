package scene

import (
	"os"
	"testing"

	"github.com/Faultbox/scenekit/internal/config"
	"github.com/Faultbox/scenekit/internal/logger"
	"github.com/Faultbox/scenekit/pkg/math"
)

func TestMain(m *testing.M) {
	logger.InitNop()
	os.Exit(m.Run())
}

func newTestScene() *Scene {
	return New(config.Default().Scene)
}

// editorCamera returns the inverse view-projection for an editor camera
// at eye looking at the origin.
func editorCamera(eye math.Vec3, w, h float32) math.Mat4 {
	proj := math.Perspective(math.DegToRad(45), w/h, 0.1, 1000)
	view := math.LookAt(eye, math.Vec3{}, math.Vec3{Y: 1})
	return proj.Mul(view).Inverse()
}

func TestAddObjectDefaults(t *testing.T) {
	s := newTestScene()
	n, err := s.AddObject("crate", ObjectSpec{})
	if err != nil {
		t.Fatalf("AddObject: %v", err)
	}
	if n.Payload == nil || n.Payload.Name != "crate" {
		t.Errorf("default payload should be named after the id: %+v", n.Payload)
	}
	if !n.Payload.Visible {
		t.Error("default object should be visible")
	}
}

func TestAddObjectDuplicateReplace(t *testing.T) {
	s := newTestScene() // default policy is replace
	first, _ := s.AddObject("crate", ObjectSpec{})
	second, err := s.AddObject("crate", ObjectSpec{Position: math.Vec3{X: 5}})
	if err != nil {
		t.Fatalf("replace policy should accept a reused id: %v", err)
	}
	if second == first {
		t.Error("replacement should produce a new node")
	}
	got, ok := s.index.Get("crate")
	if !ok || got != second {
		t.Error("index should hold the replacement node")
	}
	if s.index.Len() != 1 {
		t.Errorf("scene should still hold one object, got %d", s.index.Len())
	}
}

func TestAddObjectDuplicateError(t *testing.T) {
	cfg := config.Default().Scene
	cfg.DuplicatePolicy = config.DuplicateError
	s := New(cfg)

	if _, err := s.AddObject("crate", ObjectSpec{}); err != nil {
		t.Fatalf("first AddObject: %v", err)
	}
	if _, err := s.AddObject("crate", ObjectSpec{}); err == nil {
		t.Error("error policy should reject a reused id")
	}
}

func TestRemoveObjectDropsSelection(t *testing.T) {
	s := newTestScene()
	n, _ := s.AddObject("crate", ObjectSpec{})
	s.Selection().Single(n)

	if !s.RemoveObject("crate") {
		t.Fatal("RemoveObject should report true for an existing object")
	}
	if s.Selection().Len() != 0 {
		t.Error("removing an object should drop it from the selection")
	}
	if s.RemoveObject("crate") {
		t.Error("removing a missing object should report false")
	}
}

func TestMoveRotateScale(t *testing.T) {
	s := newTestScene()
	n, _ := s.AddObject("crate", ObjectSpec{})

	if !s.MoveObject("crate", math.Vec3{X: 3}) {
		t.Fatal("MoveObject should succeed")
	}
	if !s.RotateObject("crate", math.Vec3{Y: 45}) {
		t.Fatal("RotateObject should succeed")
	}
	if !s.ScaleObject("crate", math.Vec3{X: 2, Y: 2, Z: 2}) {
		t.Fatal("ScaleObject should succeed")
	}
	if n.Position() != (math.Vec3{X: 3}) {
		t.Errorf("position: got %v", n.Position())
	}
	if s.MoveObject("ghost", math.Vec3{}) {
		t.Error("moving an unknown object should report false")
	}
}

func TestPickAtSelects(t *testing.T) {
	const w, h = 1280, 720
	s := newTestScene()
	s.AddObject("crate", ObjectSpec{})

	inv := editorCamera(math.Vec3{Z: 10}, w, h)
	n := s.PickAt(math.Vec2{X: w / 2, Y: h / 2}, w, h, inv, false)
	if n == nil {
		t.Fatal("center click should pick the object at the origin")
	}
	if !s.Selection().IsSelected(n) {
		t.Error("picked object should be selected")
	}

	// Empty-space click clears the selection.
	if got := s.PickAt(math.Vec2{X: 5, Y: 5}, w, h, inv, false); got != nil {
		t.Errorf("corner click should hit nothing, got %q", got.ID())
	}
	if s.Selection().Len() != 0 {
		t.Error("empty-space click should clear the selection")
	}
}

func TestPickAtToggle(t *testing.T) {
	const w, h = 1280, 720
	s := newTestScene()
	s.AddObject("crate", ObjectSpec{})

	inv := editorCamera(math.Vec3{Z: 10}, w, h)
	center := math.Vec2{X: w / 2, Y: h / 2}

	s.PickAt(center, w, h, inv, true)
	if s.Selection().Len() != 1 {
		t.Fatal("toggle pick should add to the selection")
	}
	s.PickAt(center, w, h, inv, true)
	if s.Selection().Len() != 0 {
		t.Error("second toggle pick should deselect")
	}
}

func TestSelectInBounds(t *testing.T) {
	s := newTestScene()
	s.AddObject("a", ObjectSpec{})
	s.AddObject("b", ObjectSpec{Position: math.Vec3{X: 2}})
	s.AddObject("far", ObjectSpec{Position: math.Vec3{X: 50}})

	region := math.NewBox3(math.Vec3{X: -1, Y: -1, Z: -1}, math.Vec3{X: 3, Y: 1, Z: 1})
	found := s.SelectInBounds(region)
	if len(found) != 2 {
		t.Fatalf("region select: got %d objects, want 2", len(found))
	}
	if s.Selection().Len() != 2 {
		t.Errorf("selection size: got %d, want 2", s.Selection().Len())
	}
}

func TestMarqueeSelect(t *testing.T) {
	const w, h = 1280, 720
	s := newTestScene()
	s.AddObject("crate", ObjectSpec{})
	s.AddObject("far", ObjectSpec{Position: math.Vec3{X: 200}})

	// Angled editor camera so corner rays reach the ground plane.
	inv := editorCamera(math.Vec3{Y: 10, Z: 10}, w, h)
	found := s.MarqueeSelect(
		math.Vec2{X: w/2 - 150, Y: h/2 - 150},
		math.Vec2{X: w/2 + 150, Y: h/2 + 150},
		w, h, inv, 2,
	)
	ids := map[string]bool{}
	for _, n := range found {
		ids[n.ID()] = true
	}
	if !ids["crate"] {
		t.Errorf("marquee around the viewport center should select the origin object, got %v", ids)
	}
	if ids["far"] {
		t.Error("marquee should not select the distant object")
	}
}

func TestSceneBounds(t *testing.T) {
	s := newTestScene()
	if _, ok := s.Bounds(); ok {
		t.Error("empty scene should have no bounds")
	}
	s.AddObject("a", ObjectSpec{Position: math.Vec3{X: -2}})
	s.AddObject("b", ObjectSpec{Position: math.Vec3{X: 2}})
	s.BeginFrame()
	b, ok := s.Bounds()
	if !ok {
		t.Fatal("scene with objects should have bounds")
	}
	if b.Min.X != -2.5 || b.Max.X != 2.5 {
		t.Errorf("scene bounds: got %v", b)
	}
}

func TestClearScene(t *testing.T) {
	s := newTestScene()
	n, _ := s.AddObject("a", ObjectSpec{})
	s.Selection().Single(n)
	s.Clear()
	if s.index.Len() != 0 || s.Selection().Len() != 0 {
		t.Error("Clear should drop objects and selection")
	}
}
