package vmath

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 1); got != 1 {
		t.Errorf("Clamp(5, 0, 1) = %v, want 1", got)
	}
	if got := Clamp(-5, 0, 1); got != 0 {
		t.Errorf("Clamp(-5, 0, 1) = %v, want 0", got)
	}
	if got := Clamp(0.5, 0, 1); got != 0.5 {
		t.Errorf("Clamp(0.5, 0, 1) = %v, want 0.5", got)
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(0, 10, 0.5); got != 5 {
		t.Errorf("Lerp(0, 10, 0.5) = %v, want 5", got)
	}
	if got := Lerp(2, 2, 0.7); got != 2 {
		t.Errorf("Lerp(2, 2, 0.7) = %v, want 2", got)
	}
}

func TestWrapAngle(t *testing.T) {
	if got := WrapAngle(3 * math32.Pi); math32.Abs(got-math32.Pi) > 0.0001 {
		t.Errorf("WrapAngle(3pi) = %v, want pi", got)
	}
	if got := WrapAngle(-3 * math32.Pi); math32.Abs(got-math32.Pi) > 0.0001 {
		t.Errorf("WrapAngle(-3pi) = %v, want pi", got)
	}
	if got := WrapAngle(0.5); got != 0.5 {
		t.Errorf("WrapAngle(0.5) = %v, want 0.5", got)
	}
}

func TestLerpAngle(t *testing.T) {
	// Crossing the pi boundary takes the short way around.
	a := float32(3)    // close to pi
	b := float32(-3)   // close to -pi, short arc is ~0.28 rad
	mid := LerpAngle(a, b, 0.5)
	want := WrapAngle(3 + 0.5*(2*math32.Pi-6))
	if math32.Abs(WrapAngle(mid-want)) > 0.0001 {
		t.Errorf("LerpAngle(3, -3, 0.5) = %v, want %v", mid, want)
	}

	if got := LerpAngle(1, 2, 0); math32.Abs(got-1) > 0.0001 {
		t.Errorf("LerpAngle at t=0 = %v, want 1", got)
	}
	if got := LerpAngle(1, 2, 1); math32.Abs(got-2) > 0.0001 {
		t.Errorf("LerpAngle at t=1 = %v, want 2", got)
	}
}
