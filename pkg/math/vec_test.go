package math

import (
	"testing"
)

func TestVec2Add(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, 4}
	got := a.Add(b)
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	got := v.Length()
	want := float32(5)
	if got != want {
		t.Errorf("Vec2.Length() = %v, want %v", got, want)
	}
}

func TestVec2Normalize(t *testing.T) {
	v := Vec2{3, 4}
	n := v.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec2.Normalize().Length() = %v, want ~1", l)
	}
}

func TestVec2MinMax(t *testing.T) {
	a := Vec2{1, 4}
	b := Vec2{3, 2}
	if got := a.Min(b); got != (Vec2{1, 2}) {
		t.Errorf("Vec2.Min() = %v, want {1 2}", got)
	}
	if got := a.Max(b); got != (Vec2{3, 4}) {
		t.Errorf("Vec2.Max() = %v, want {3 4}", got)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Mul(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{2, 3, 4}
	got := a.Mul(b)
	want := Vec3{2, 6, 12}
	if got != want {
		t.Errorf("Vec3.Mul() = %v, want %v", got, want)
	}
}

func TestVec3MinMax(t *testing.T) {
	a := Vec3{1, 5, 3}
	b := Vec3{2, 4, 3}
	if got := a.Min(b); got != (Vec3{1, 4, 3}) {
		t.Errorf("Vec3.Min() = %v, want {1 4 3}", got)
	}
	if got := a.Max(b); got != (Vec3{2, 5, 3}) {
		t.Errorf("Vec3.Max() = %v, want {2 5 3}", got)
	}
}

func TestVec3Component(t *testing.T) {
	v := Vec3{7, 8, 9}
	for axis, want := range []float32{7, 8, 9} {
		if got := v.Component(axis); got != want {
			t.Errorf("Vec3.Component(%d) = %v, want %v", axis, got, want)
		}
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{0, 0, -5}
	got := v.Normalize()
	want := Vec3{0, 0, -1}
	if got != want {
		t.Errorf("Vec3.Normalize() = %v, want %v", got, want)
	}
	if (Vec3{}).Normalize() != (Vec3{}) {
		t.Error("normalizing the zero vector should return zero")
	}
}
