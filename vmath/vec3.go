package vmath

import (
	"github.com/chewxy/math32"
)

// Vec3 is a float32 3D vector, matching the single precision of frame files
type Vec3 struct {
	X, Y, Z float32
}

// UnitY is the reference axis capsules are built along
var UnitY = Vec3{0, 1, 0}

func V3(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

func V3Add(a, b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3Sub(a, b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3Scale(v Vec3, s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func V3Dot(a, b Vec3) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func V3Cross(a, b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func V3MagSq(v Vec3) float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func V3Mag(v Vec3) float32 {
	return math32.Sqrt(V3MagSq(v))
}

// V3Normalize returns v scaled to unit length; the zero vector stays zero
func V3Normalize(v Vec3) Vec3 {
	mag := V3Mag(v)
	if mag == 0 {
		return Vec3{}
	}
	inv := 1 / mag
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}
}

// V3NearlyEqual compares component-wise with NearlyEqual
func V3NearlyEqual(a, b Vec3, eps float32) bool {
	return NearlyEqual(a.X, b.X, eps) &&
		NearlyEqual(a.Y, b.Y, eps) &&
		NearlyEqual(a.Z, b.Z, eps)
}

// V3Finite reports whether every component is finite
func V3Finite(v Vec3) bool {
	return Finite(v.X) && Finite(v.Y) && Finite(v.Z)
}

// V3Angle returns the angle between a and b in radians, 0 if either is zero
func V3Angle(a, b Vec3) float32 {
	ma, mb := V3Mag(a), V3Mag(b)
	if ma == 0 || mb == 0 {
		return 0
	}
	return math32.Acos(Clamp(V3Dot(a, b)/(ma*mb), -1, 1))
}
