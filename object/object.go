// Package object defines the drawable primitives of a frame and how two
// snapshots of the same primitive differ.
package object

import (
	"fmt"

	"github.com/lixenwraith/parview/vmath"
)

// Kind selects the variant of an Object
type Kind uint8

const (
	KindSphere Kind = iota
	KindSpherocylinder
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindSpherocylinder:
		return "spherocylinder"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Object is one drawable primitive
// Axis is only meaningful for KindSpherocylinder: its length is the segment
// length between cap centers and its direction the orientation
type Object struct {
	Kind     Kind
	ID       ID
	Position vmath.Vec3
	Diameter float32
	Axis     vmath.Vec3
}

// NewSphere creates a sphere
func NewSphere(id ID, pos vmath.Vec3, diameter float32) Object {
	return Object{Kind: KindSphere, ID: id, Position: pos, Diameter: diameter}
}

// NewSpherocylinder creates a capsule centered on pos
func NewSpherocylinder(id ID, pos, axis vmath.Vec3, diameter float32) Object {
	return Object{Kind: KindSpherocylinder, ID: id, Position: pos, Diameter: diameter, Axis: axis}
}

// Radius is half the diameter
func (o Object) Radius() float32 {
	return o.Diameter / 2
}

// Length is the axis length, 0 for spheres
func (o Object) Length() float32 {
	if o.Kind != KindSpherocylinder {
		return 0
	}
	return vmath.V3Mag(o.Axis)
}

// Orientation rotates +Y onto the axis; spheres are unrotated
func (o Object) Orientation() vmath.Quat {
	if o.Kind != KindSpherocylinder {
		return vmath.QuatIdentity
	}
	return vmath.QuatAlongAxis(o.Axis)
}

// Ends returns the two cap centers
func (o Object) Ends() (vmath.Vec3, vmath.Vec3) {
	half := vmath.V3Scale(o.Axis, 0.5)
	return vmath.V3Sub(o.Position, half), vmath.V3Add(o.Position, half)
}

// Clone returns a copy that shares nothing with o
func (o Object) Clone() Object {
	o.ID = o.ID.Clone()
	return o
}

func (o Object) String() string {
	switch o.Kind {
	case KindSpherocylinder:
		return fmt.Sprintf("spherocylinder%s at %v axis %v d=%g", o.ID, o.Position, o.Axis, o.Diameter)
	default:
		return fmt.Sprintf("sphere%s at %v d=%g", o.ID, o.Position, o.Diameter)
	}
}
