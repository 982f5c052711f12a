package object

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/lixenwraith/parview/vmath"
)

// ErrNonUniformStretch reports a spherocylinder whose diameter and axis
// length changed by different fractions; capsules only scale uniformly
var ErrNonUniformStretch = errors.New("non-uniform spherocylinder stretch")

// StretchTolerance bounds |diameter fraction - length fraction|
const StretchTolerance float32 = 1e-3

// Delta lists which attributes changed between two snapshots of one object
type Delta struct {
	Replaced  bool // Variant changed or the old shape cannot be scaled; rebuild the node
	Moved     bool
	Resized   bool // Diameter
	Stretched bool // Axis length
	Rotated   bool // Axis direction
}

// Empty reports whether nothing changed
func (d Delta) Empty() bool {
	return d == Delta{}
}

// Diff compares the stored snapshot old against the incoming new
func Diff(old, new Object) (Delta, error) {
	if old.Kind != new.Kind {
		return Delta{Replaced: true}, nil
	}

	d := Delta{
		Moved: !vmath.V3NearlyEqual(old.Position, new.Position, vmath.Epsilon),
	}

	switch new.Kind {
	case KindSphere:
		d.Resized = !vmath.NearlyEqual(old.Diameter, new.Diameter, vmath.Epsilon)
		return d, nil

	case KindSpherocylinder:
		oldLen, newLen := old.Length(), new.Length()
		d.Resized = vmath.RelChange(old.Diameter, new.Diameter) > vmath.Epsilon
		d.Stretched = vmath.RelChange(oldLen, newLen) > vmath.Epsilon
		d.Rotated = axisTurned(old.Axis, new.Axis)

		if !d.Resized && !d.Stretched {
			return d, nil
		}
		if old.Diameter == 0 || oldLen == 0 {
			// Nothing to scale from
			return Delta{Replaced: true}, nil
		}

		fd := vmath.Fraction(old.Diameter, new.Diameter)
		fl := vmath.Fraction(oldLen, newLen)
		if math32.Abs(fd-fl) > StretchTolerance {
			return d, fmt.Errorf("%w: %s diameter changed by %g, axis length by %g",
				ErrNonUniformStretch, new.ID, fd, fl)
		}
		return d, nil

	default:
		return d, fmt.Errorf("object %s: unknown %s", new.ID, new.Kind)
	}
}

// axisTurned reports a direction change beyond epsilon, 1-cos(angle) > Epsilon
func axisTurned(a, b vmath.Vec3) bool {
	na, nb := vmath.V3Normalize(a), vmath.V3Normalize(b)
	if na == (vmath.Vec3{}) || nb == (vmath.Vec3{}) {
		return na != nb
	}
	return 1-vmath.V3Dot(na, nb) > vmath.Epsilon
}
