package vmath

import (
	"github.com/chewxy/math32"
)

// Quat is a rotation quaternion, W is the scalar part
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity is the no-op rotation
var QuatIdentity = Quat{0, 0, 0, 1}

// QuatFromUnitVectors returns the shortest rotation taking unit vector from onto unit vector to
func QuatFromUnitVectors(from, to Vec3) Quat {
	r := V3Dot(from, to) + 1

	var q Quat
	if r < Epsilon {
		// Opposite vectors: rotate half a turn around any perpendicular axis
		r = 0
		if math32.Abs(from.X) > math32.Abs(from.Z) {
			q = Quat{-from.Y, from.X, 0, r}
		} else {
			q = Quat{0, -from.Z, from.Y, r}
		}
	} else {
		c := V3Cross(from, to)
		q = Quat{c.X, c.Y, c.Z, r}
	}
	return QuatNormalize(q)
}

// QuatAlongAxis orients the reference UnitY axis onto axis; a zero axis gives identity
func QuatAlongAxis(axis Vec3) Quat {
	dir := V3Normalize(axis)
	if dir == (Vec3{}) {
		return QuatIdentity
	}
	return QuatFromUnitVectors(UnitY, dir)
}

func QuatNormalize(q Quat) Quat {
	mag := math32.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if mag == 0 {
		return QuatIdentity
	}
	inv := 1 / mag
	return Quat{q.X * inv, q.Y * inv, q.Z * inv, q.W * inv}
}

// QuatRotate applies q to v
func QuatRotate(q Quat, v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	t := V3Scale(V3Cross(u, v), 2)
	return V3Add(V3Add(v, V3Scale(t, q.W)), V3Cross(u, t))
}

// QuatNearlyEqual treats q and -q as the same rotation
func QuatNearlyEqual(a, b Quat, eps float32) bool {
	d := math32.Abs(a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W)
	return 1-d <= eps
}
