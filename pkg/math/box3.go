package math

import "github.com/chewxy/math32"

// rayEpsilon is the direction-component magnitude below which a ray is
// treated as parallel to a slab in IntersectRay.
const rayEpsilon = 1e-8

// DegToRad converts degrees to radians.
func DegToRad(deg float32) float32 {
	return deg * math32.Pi / 180
}

// Box3 is an axis-aligned bounding box defined by its minimum and maximum
// corners. A box is either valid (Min <= Max on every axis) or the empty
// sentinel returned by EmptyBox3.
type Box3 struct {
	Min Vec3
	Max Vec3
}

// EmptyBox3 returns the canonical empty box (Min +Inf, Max -Inf).
// Expanding an empty box by any point yields a point-sized valid box.
func EmptyBox3() Box3 {
	return Box3{
		Min: Vec3{math32.Inf(1), math32.Inf(1), math32.Inf(1)},
		Max: Vec3{math32.Inf(-1), math32.Inf(-1), math32.Inf(-1)},
	}
}

// UnitBox3 returns a box spanning [-0.5, 0.5] on every axis.
func UnitBox3() Box3 {
	return Box3{
		Min: Vec3{-0.5, -0.5, -0.5},
		Max: Vec3{0.5, 0.5, 0.5},
	}
}

// NewBox3 returns a box with the given corners, swapping per-axis so that
// Min <= Max (handles corners produced by negative scales).
func NewBox3(min, max Vec3) Box3 {
	return Box3{Min: min.Min(max), Max: min.Max(max)}
}

// IsValid reports whether the box is finite with Min <= Max on all axes.
func (b Box3) IsValid() bool {
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y && b.Min.Z <= b.Max.Z &&
		!math32.IsInf(b.Min.X, 0) && !math32.IsInf(b.Max.X, 0) &&
		!math32.IsInf(b.Min.Y, 0) && !math32.IsInf(b.Max.Y, 0) &&
		!math32.IsInf(b.Min.Z, 0) && !math32.IsInf(b.Max.Z, 0)
}

// ExpandPoint grows the box in place so it contains p.
func (b *Box3) ExpandPoint(p Vec3) {
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
}

// Union returns a new box covering both b and other. Unioning with an
// empty box is the identity; the union of two empty boxes is empty.
func (b Box3) Union(other Box3) Box3 {
	return Box3{
		Min: b.Min.Min(other.Min),
		Max: b.Max.Max(other.Max),
	}
}

// Center returns the midpoint of the box. Undefined for an empty box.
func (b Box3) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the per-axis extent of the box. Undefined for an empty box.
func (b Box3) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Corners returns the eight corners of the box.
func (b Box3) Corners() [8]Vec3 {
	return [8]Vec3{
		{b.Min.X, b.Min.Y, b.Min.Z},
		{b.Max.X, b.Min.Y, b.Min.Z},
		{b.Min.X, b.Max.Y, b.Min.Z},
		{b.Max.X, b.Max.Y, b.Min.Z},
		{b.Min.X, b.Min.Y, b.Max.Z},
		{b.Max.X, b.Min.Y, b.Max.Z},
		{b.Min.X, b.Max.Y, b.Max.Z},
		{b.Max.X, b.Max.Y, b.Max.Z},
	}
}

// rotateXYZ rotates p about X, then Y, then Z by the given angles in
// radians, using right-handed rotations.
func rotateXYZ(p Vec3, rad Vec3) Vec3 {
	sx, cx := math32.Sincos(rad.X)
	sy, cy := math32.Sincos(rad.Y)
	sz, cz := math32.Sincos(rad.Z)

	// X axis
	y := p.Y*cx - p.Z*sx
	z := p.Y*sx + p.Z*cx
	x := p.X

	// Y axis
	x2 := x*cy + z*sy
	z2 := -x*sy + z*cy

	// Z axis
	return Vec3{
		X: x2*cz - y*sz,
		Y: x2*sz + y*cz,
		Z: z2,
	}
}

// Transformed returns the world-space box for a local box under the given
// position, rotation (Euler degrees, applied X then Y then Z), and scale.
// Each corner is scaled, rotated, then translated; the result is the
// union over all eight corners. The bound is conservative: a rotated box
// gets a larger enclosing box.
func (b Box3) Transformed(position, rotationDeg, scale Vec3) Box3 {
	if !b.IsValid() {
		return EmptyBox3()
	}
	rad := Vec3{DegToRad(rotationDeg.X), DegToRad(rotationDeg.Y), DegToRad(rotationDeg.Z)}
	out := EmptyBox3()
	for _, c := range b.Corners() {
		p := rotateXYZ(c.Mul(scale), rad).Add(position)
		out.ExpandPoint(p)
	}
	return out
}

// IntersectRay tests the ray against the box using the slab method and
// returns the first non-negative hit distance. The direction does not
// have to be normalized; the distance is in units of its length.
func (b Box3) IntersectRay(origin, dir Vec3) (float32, bool) {
	tmin := math32.Inf(-1)
	tmax := math32.Inf(1)

	for axis := 0; axis < 3; axis++ {
		o := origin.Component(axis)
		d := dir.Component(axis)
		lo := b.Min.Component(axis)
		hi := b.Max.Component(axis)

		if math32.Abs(d) < rayEpsilon {
			// Parallel to this slab: hit only if the origin is inside it.
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}

		inv := 1 / d
		t1 := (lo - o) * inv
		t2 := (hi - o) * inv
		if inv < 0 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmax < tmin {
			return 0, false
		}
	}

	if tmin >= 0 {
		return tmin, true
	}
	if tmax >= 0 {
		// Origin is inside the box; report the exit distance.
		return tmax, true
	}
	return 0, false
}

// Intersects reports whether the boxes overlap on all three axes.
// Boxes that merely touch at a boundary count as intersecting.
func (b Box3) Intersects(other Box3) bool {
	return b.Min.X <= other.Max.X && b.Max.X >= other.Min.X &&
		b.Min.Y <= other.Max.Y && b.Max.Y >= other.Min.Y &&
		b.Min.Z <= other.Max.Z && b.Max.Z >= other.Min.Z
}

// ContainsPoint reports whether p lies inside or on the box.
func (b Box3) ContainsPoint(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Expanded returns the box grown by pad on all sides.
func (b Box3) Expanded(pad float32) Box3 {
	p := Vec3{pad, pad, pad}
	return Box3{Min: b.Min.Sub(p), Max: b.Max.Add(p)}
}
