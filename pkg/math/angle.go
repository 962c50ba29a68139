package math

import "math"

// Pi as float32.
const Pi = float32(math.Pi)

// TwoPi is a full turn in radians.
const TwoPi = 2 * Pi

// Sin returns the sine of a float32 angle.
func Sin(a float32) float32 { return float32(math.Sin(float64(a))) }

// Cos returns the cosine of a float32 angle.
func Cos(a float32) float32 { return float32(math.Cos(float64(a))) }

// Atan2 returns atan2(y, x) for float32 arguments.
func Atan2(y, x float32) float32 { return float32(math.Atan2(float64(y), float64(x))) }

// ShortestAngle returns the signed difference to - from wrapped into [-π, π].
func ShortestAngle(from, to float32) float32 {
	d := float64(to - from)
	return float32(math.Atan2(math.Sin(d), math.Cos(d)))
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates between a and b.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// YawOf returns the heading of a direction on the ground plane.
// Yaw 0 faces +Z and grows toward +X.
func YawOf(dir Vec3) float32 {
	return Atan2(dir.X, dir.Z)
}

// Forward returns the unit ground-plane direction for a yaw angle.
func Forward(yaw float32) Vec3 {
	return Vec3{Sin(yaw), 0, Cos(yaw)}
}
