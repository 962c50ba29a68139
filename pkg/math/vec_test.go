package math

import (
	"math"
	"testing"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 0, 4}
	n := v.Normalize()
	if !approx(n.Length(), 1) {
		t.Errorf("Vec3.Normalize().Length() = %v, want 1", n.Length())
	}
}

func TestVec3NormalizeZero(t *testing.T) {
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("Vec3{}.Normalize() = %v, want zero vector", got)
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

func TestVec3PlanarDistance(t *testing.T) {
	a := Vec3{0, 10, 0}
	b := Vec3{3, -5, 4}
	if got := a.PlanarDistance(b); !approx(got, 5) {
		t.Errorf("PlanarDistance() = %v, want 5", got)
	}
}

func TestVec3Lerp(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{10, 20, -10}
	got := a.Lerp(b, 0.25)
	want := Vec3{2.5, 5, -2.5}
	if got != want {
		t.Errorf("Lerp() = %v, want %v", got, want)
	}
}

func TestVec2Sub(t *testing.T) {
	got := Vec2{5, 7}.Sub(Vec2{2, 3})
	if got != (Vec2{3, 4}) {
		t.Errorf("Vec2.Sub() = %v, want {3 4}", got)
	}
	if !approx(got.Length(), 5) {
		t.Errorf("Vec2.Length() = %v, want 5", got.Length())
	}
}

func TestShortestAngle(t *testing.T) {
	tests := []struct {
		name     string
		from, to float32
		want     float32
	}{
		{"zero", 0, 0, 0},
		{"quarter left", 0, Pi / 2, Pi / 2},
		{"quarter right", 0, -Pi / 2, -Pi / 2},
		{"wraps forward", 3, -3, 2*Pi - 6},
		{"wraps backward", -3, 3, 6 - 2*Pi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShortestAngle(tt.from, tt.to); !approx(got, tt.want) {
				t.Errorf("ShortestAngle(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 1) != 1 || Clamp(-5, 0, 1) != 0 || Clamp(0.5, 0, 1) != 0.5 {
		t.Error("Clamp returned a value outside of [lo, hi]")
	}
}

func TestYawForwardRoundTrip(t *testing.T) {
	for _, yaw := range []float32{0, 0.5, -1.2, 3} {
		got := YawOf(Forward(yaw))
		if !approx(got, yaw) {
			t.Errorf("YawOf(Forward(%v)) = %v", yaw, got)
		}
	}
	f := Forward(0)
	if !approx(f.Z, 1) || !approx(f.X, 0) {
		t.Errorf("Forward(0) = %v, want +Z", f)
	}
}
