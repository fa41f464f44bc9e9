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

func TestVec2Lerp(t *testing.T) {
	a := Vec2{0, 0}
	b := Vec2{2, -4}
	tests := []struct {
		t    float32
		want Vec2
	}{
		{0, Vec2{0, 0}},
		{0.5, Vec2{1, -2}},
		{1, Vec2{2, -4}},
	}
	for _, tt := range tests {
		if got := a.Lerp(b, tt.t); got != tt.want {
			t.Errorf("Lerp(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestPolar(t *testing.T) {
	p := Polar(0, 2)
	if p != (Vec2{2, 0}) {
		t.Errorf("Polar(0, 2) = %v, want {2 0}", p)
	}
	q := Polar(1.5707964, 1)
	if q.X > 1e-6 || q.X < -1e-6 || q.Y < 0.999999 {
		t.Errorf("Polar(pi/2, 1) = %v, want ~{0 1}", q)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(2, -1, 1); got != 1 {
		t.Errorf("Clamp(2) = %v, want 1", got)
	}
	if got := Clamp(-3, -1, 1); got != -1 {
		t.Errorf("Clamp(-3) = %v, want -1", got)
	}
	if got := Clamp(0.25, -1, 1); got != 0.25 {
		t.Errorf("Clamp(0.25) = %v, want 0.25", got)
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

func TestVec3Normalize(t *testing.T) {
	n := Vec3{0, 3, 4}.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if (Vec3{}).Normalize() != (Vec3{}) {
		t.Error("zero vector should normalize to zero")
	}
}

func TestVec3MinMax(t *testing.T) {
	a := Vec3{1, -2, 3}
	b := Vec3{-1, 2, 5}
	if got := a.Min(b); got != (Vec3{-1, -2, 3}) {
		t.Errorf("Min() = %v", got)
	}
	if got := a.Max(b); got != (Vec3{1, 2, 5}) {
		t.Errorf("Max() = %v", got)
	}
}

func TestFromXZ(t *testing.T) {
	got := FromXZ(Vec2{1, 2}, 3)
	want := Vec3{1, 3, 2}
	if got != want {
		t.Errorf("FromXZ() = %v, want %v", got, want)
	}
	if got.XZ() != (Vec2{1, 2}) {
		t.Errorf("XZ() = %v", got.XZ())
	}
}
