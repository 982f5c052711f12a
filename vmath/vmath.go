// Package vmath holds the float32 vector math shared by the object model,
// the reconciler and the terminal renderer.
package vmath

import (
	"github.com/chewxy/math32"
)

// Epsilon is the relative tolerance used for every attribute comparison
const Epsilon float32 = 1e-6

const (
	DegToRad = math32.Pi / 180
	RadToDeg = 180 / math32.Pi
)

// NearlyEqual reports whether a and b agree within eps, relative to the
// larger magnitude and absolute when both are near zero
func NearlyEqual(a, b, eps float32) bool {
	if a == b {
		return true
	}
	diff := math32.Abs(a - b)
	scale := math32.Max(math32.Abs(a), math32.Abs(b))
	if scale < 1 {
		return diff <= eps
	}
	return diff <= eps*scale
}

// RelChange returns |new-old|/|old|, or |new| when old is zero
func RelChange(old, new float32) float32 {
	if old == 0 {
		return math32.Abs(new)
	}
	return math32.Abs(new-old) / math32.Abs(old)
}

// Fraction returns the signed fractional change (new-old)/old, 0 when old is zero
func Fraction(old, new float32) float32 {
	if old == 0 {
		return 0
	}
	return (new - old) / old
}

// Finite reports whether f is neither NaN nor infinite
func Finite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
