// Package camera provides the editor's orbit camera.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/scenekit/pkg/math"
)

// OrbitCamera orbits around a center point. It is the viewport camera of
// the editor: drag rotates, scroll zooms, and the view/projection pair it
// produces drives both rendering and picking.
type OrbitCamera struct {
	// Center point to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance float32
	Pitch    float32 // vertical angle, radians
	Yaw      float32 // horizontal angle, radians

	// Projection
	FovY float32 // radians
	Near float32
	Far  float32

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// New creates an orbit camera with editor defaults: a few units back,
// looking down at roughly 30 degrees.
func New() *OrbitCamera {
	return &OrbitCamera{
		Distance:        10.0,
		Pitch:           0.5,
		Yaw:             0.0,
		FovY:            math.DegToRad(45),
		Near:            0.1,
		Far:             1000.0,
		MinDistance:     0.5,
		MaxDistance:     500.0,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	sp, cp := math32.Sincos(c.Pitch)
	sy, cy := math32.Sincos(c.Yaw)
	return math.Vec3{
		X: c.Center.X + c.Distance*cp*sy,
		Y: c.Center.Y + c.Distance*sp,
		Z: c.Center.Z + c.Distance*cp*cy,
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Vec3{Y: 1})
}

// ProjectionMatrix returns the perspective projection for the given
// viewport size.
func (c *OrbitCamera) ProjectionMatrix(viewportW, viewportH float32) math.Mat4 {
	return math.Perspective(c.FovY, viewportW/viewportH, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *OrbitCamera) ViewProjection(viewportW, viewportH float32) math.Mat4 {
	return c.ProjectionMatrix(viewportW, viewportH).Mul(c.ViewMatrix())
}

// InverseViewProjection returns the matrix that unprojects screen rays,
// as consumed by picking.
func (c *OrbitCamera) InverseViewProjection(viewportW, viewportH float32) math.Mat4 {
	return c.ViewProjection(viewportW, viewportH).Inverse()
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch += deltaY * c.DragSensitivity

	if c.Pitch < c.MinPitch {
		c.Pitch = c.MinPitch
	}
	if c.Pitch > c.MaxPitch {
		c.Pitch = c.MaxPitch
	}
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// HandlePan moves the center point in camera-relative directions. Speed
// scales with distance so panning feels the same at any zoom.
func (c *OrbitCamera) HandlePan(forward, right, up float32) {
	speed := c.Distance * 0.01
	sy, cy := math32.Sincos(c.Yaw)

	c.Center.X += (-sy*forward + cy*right) * speed
	c.Center.Z += (-cy*forward - sy*right) * speed
	c.Center.Y += up * speed
}

// FocusOn recenters the camera on a point without changing orientation
// or zoom (the editor's "focus selection" action).
func (c *OrbitCamera) FocusOn(p math.Vec3) {
	c.Center = p
}

// FitToBounds frames the given box: center on it and back off far enough
// that the whole box fits in the field of view.
func (c *OrbitCamera) FitToBounds(b math.Box3) {
	if !b.IsValid() {
		return
	}
	c.Center = b.Center()

	size := b.Size()
	radius := size.Length() / 2
	if radius < 0.001 {
		radius = 0.001
	}

	c.Distance = radius / math32.Tan(c.FovY/2)
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}
