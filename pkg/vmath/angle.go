package vmath

import "github.com/chewxy/math32"

// Clamp limits v to the range [min, max].
func Clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Lerp returns the linear interpolation from a toward b by t.
// t is not clamped.
func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// WrapAngle wraps an angle in radians to the range (-pi, pi].
func WrapAngle(a float32) float32 {
	for a > math32.Pi {
		a -= 2 * math32.Pi
	}
	for a <= -math32.Pi {
		a += 2 * math32.Pi
	}
	return a
}

// LerpAngle interpolates between two angles in radians along the
// shortest arc. t is not clamped.
func LerpAngle(a, b, t float32) float32 {
	return WrapAngle(a + t*WrapAngle(b-a))
}
