// Package picking converts 2D screen clicks into world-space rays and
// resolves them against the spatial index.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/scenekit/internal/engine/spatial"
	"github.com/Faultbox/scenekit/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screen is in pixel coordinates, viewportW/H are viewport dimensions.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screen math.Vec2, viewportW, viewportH float32, invViewProj math.Mat4) Ray {
	// Convert screen coords to normalized device coords (-1 to 1)
	ndcX := 2.0*screen.X/viewportW - 1.0
	ndcY := 1.0 - 2.0*screen.Y/viewportH // Flip Y

	// Unproject near and far points
	nearWorld := invViewProj.MulVec4(math.Vec4{ndcX, ndcY, -1.0, 1.0})
	farWorld := invViewProj.MulVec4(math.Vec4{ndcX, ndcY, 1.0, 1.0})

	// Perspective divide
	if nearWorld[3] != 0 {
		nearWorld[0] /= nearWorld[3]
		nearWorld[1] /= nearWorld[3]
		nearWorld[2] /= nearWorld[3]
	}
	if farWorld[3] != 0 {
		farWorld[0] /= farWorld[3]
		farWorld[1] /= farWorld[3]
		farWorld[2] /= farWorld[3]
	}

	origin := math.Vec3{X: nearWorld[0], Y: nearWorld[1], Z: nearWorld[2]}
	dir := math.Vec3{
		X: farWorld[0] - nearWorld[0],
		Y: farWorld[1] - nearWorld[1],
		Z: farWorld[2] - nearWorld[2],
	}.Normalize()

	return Ray{Origin: origin, Direction: dir}
}

// IntersectPlaneY intersects the ray with a horizontal plane at the given
// Y level. Returns the intersection point (X, Z) and whether the
// intersection is valid.
func (r Ray) IntersectPlaneY(planeY float32) (x, z float32, ok bool) {
	// Ray: P = Origin + t * Direction
	// Plane: Y = planeY
	if math32.Abs(r.Direction.Y) < 0.001 {
		return 0, 0, false // Ray parallel to plane
	}

	t := (planeY - r.Origin.Y) / r.Direction.Y
	if t < 0 {
		return 0, 0, false // Intersection behind ray origin
	}

	x = r.Origin.X + t*r.Direction.X
	z = r.Origin.Z + t*r.Direction.Z
	return x, z, true
}

// Cast resolves the ray against a spatial index and returns the closest
// node hit, to bounding-box granularity.
func Cast[T any](idx *spatial.Index[T], r Ray) (spatial.Hit[T], bool) {
	return idx.CastRay(r.Origin, r.Direction)
}

// PickAt converts a screen click into a ray and returns the closest node
// it strikes in the index, or false if the click hits nothing.
func PickAt[T any](idx *spatial.Index[T], screen math.Vec2, viewportW, viewportH float32, invViewProj math.Mat4) (spatial.Hit[T], bool) {
	return Cast(idx, ScreenToRay(screen, viewportW, viewportH, invViewProj))
}
