// Package scene manages the editable object set of the editor: every
// object lives in a spatial index so clicks and marquee drags resolve
// quickly even while objects are being moved around.
package scene

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/scenekit/internal/config"
	"github.com/Faultbox/scenekit/internal/engine/picking"
	"github.com/Faultbox/scenekit/internal/engine/selection"
	"github.com/Faultbox/scenekit/internal/engine/spatial"
	"github.com/Faultbox/scenekit/internal/logger"
	"github.com/Faultbox/scenekit/pkg/math"
)

// Object is the editor-side payload carried by every indexed node.
type Object struct {
	Name     string
	MeshPath string
	Visible  bool
}

// ObjectSpec describes a new object. Zero values give an identity
// transform; nil Scale means (1,1,1) and nil LocalBounds means the unit
// cube (matching how a placeholder object with no mesh behaves).
type ObjectSpec struct {
	Position    math.Vec3
	Rotation    math.Vec3
	Scale       *math.Vec3
	LocalBounds *math.Box3
	Object      *Object
}

// Scene owns the object set and the selection. All access must come from
// the editor loop thread.
type Scene struct {
	cfg       config.SceneConfig
	index     *spatial.Index[*Object]
	selection *selection.Set[*Object]
}

// New creates an empty scene with the given behavior settings.
func New(cfg config.SceneConfig) *Scene {
	return &Scene{
		cfg:       cfg,
		index:     spatial.NewIndex[*Object](),
		selection: selection.New[*Object](),
	}
}

// Index exposes the underlying spatial index for query-only collaborators
// (culling, tools). Mutations should go through the scene.
func (s *Scene) Index() *spatial.Index[*Object] {
	return s.index
}

// Selection returns the scene's selection set.
func (s *Scene) Selection() *selection.Set[*Object] {
	return s.selection
}

// AddObject creates an object under id. A duplicate id follows the
// configured policy: replace the existing object with a warning, or
// reject the new one.
func (s *Scene) AddObject(id string, spec ObjectSpec) (*spatial.Node[*Object], error) {
	obj := spec.Object
	if obj == nil {
		obj = &Object{Name: id, Visible: true}
	}

	node, err := s.index.Add(id, spatial.NodeSpec[*Object]{
		Position:    spec.Position,
		Rotation:    spec.Rotation,
		Scale:       spec.Scale,
		LocalBounds: spec.LocalBounds,
		Payload:     obj,
	})
	if err == nil {
		logger.Debug("object added", zap.String("id", id))
		return node, nil
	}

	if s.cfg.DuplicatePolicy != config.DuplicateReplace {
		return nil, fmt.Errorf("scene: %w", err)
	}

	logger.Warn("object id reused, replacing", zap.String("id", id))
	s.RemoveObject(id)
	return s.AddObject(id, spec)
}

// RemoveObject deletes an object and drops it from the selection.
// Reports whether anything was removed.
func (s *Scene) RemoveObject(id string) bool {
	node, ok := s.index.Get(id)
	if !ok {
		return false
	}
	s.selection.Drop(node)
	s.index.Remove(id)
	logger.Debug("object removed", zap.String("id", id))
	return true
}

// MoveObject sets an object's position. Reports false for an unknown id.
func (s *Scene) MoveObject(id string, p math.Vec3) bool {
	_, ok := s.index.Update(id, spatial.NodeUpdate[*Object]{Position: &p})
	return ok
}

// RotateObject sets an object's Euler rotation in degrees.
func (s *Scene) RotateObject(id string, deg math.Vec3) bool {
	_, ok := s.index.Update(id, spatial.NodeUpdate[*Object]{Rotation: &deg})
	return ok
}

// ScaleObject sets an object's scale.
func (s *Scene) ScaleObject(id string, sc math.Vec3) bool {
	_, ok := s.index.Update(id, spatial.NodeUpdate[*Object]{Scale: &sc})
	return ok
}

// Clear drops all objects and the selection.
func (s *Scene) Clear() {
	s.selection.Clear()
	s.index.Clear()
	logger.Debug("scene cleared")
}

// BeginFrame amortizes index maintenance: after a batch of edits the
// rebuild happens here, once, instead of inside the first query of the
// frame.
func (s *Scene) BeginFrame() {
	s.index.Rebuild()
}

// PickAt resolves a viewport click to the closest object and selects it.
// toggle extends the selection (shift-click) instead of replacing it.
// Returns the picked node, or nil if the click hit empty space (which
// clears the selection unless toggling).
func (s *Scene) PickAt(screen math.Vec2, viewportW, viewportH float32, invViewProj math.Mat4, toggle bool) *spatial.Node[*Object] {
	hit, ok := picking.PickAt(s.index, screen, viewportW, viewportH, invViewProj)
	if !ok {
		if !toggle {
			s.selection.Clear()
		}
		return nil
	}

	if toggle {
		s.selection.Toggle(hit.Node)
	} else {
		s.selection.Single(hit.Node)
	}
	logger.Debug("object picked",
		zap.String("id", hit.Node.ID()),
		zap.Float32("distance", hit.Distance))
	return hit.Node
}

// MarqueeSelect selects every object inside the world-space region swept
// by a screen-space drag from a to b. The region is built on the ground
// plane (configured ground level) and extended vertically by height; it
// replaces the current selection.
func (s *Scene) MarqueeSelect(a, b math.Vec2, viewportW, viewportH float32, invViewProj math.Mat4, height float32) []*spatial.Node[*Object] {
	lo := a.Min(b)
	hi := a.Max(b)

	rayA := picking.ScreenToRay(lo, viewportW, viewportH, invViewProj)
	rayB := picking.ScreenToRay(hi, viewportW, viewportH, invViewProj)

	ax, az, okA := rayA.IntersectPlaneY(s.cfg.GroundLevel)
	bx, bz, okB := rayB.IntersectPlaneY(s.cfg.GroundLevel)
	if !okA || !okB {
		return nil
	}

	region := math.NewBox3(
		math.Vec3{X: ax, Y: s.cfg.GroundLevel, Z: az},
		math.Vec3{X: bx, Y: s.cfg.GroundLevel + height, Z: bz},
	)
	return s.SelectInBounds(region)
}

// SelectInBounds replaces the selection with every object overlapping
// the world-space box.
func (s *Scene) SelectInBounds(region math.Box3) []*spatial.Node[*Object] {
	found := s.index.QueryBounds(region)
	s.selection.Clear()
	s.selection.AddAll(found)
	logger.Debug("region select", zap.Int("count", len(found)))
	return found
}

// Bounds returns the bounds of the whole scene, or false when empty.
// Used to frame the camera on everything.
func (s *Scene) Bounds() (math.Box3, bool) {
	return s.index.RootBounds()
}

// SelectionPadding returns the configured padding for selection
// highlight wireframes.
func (s *Scene) SelectionPadding() float32 {
	return s.cfg.SelectionPadding
}
