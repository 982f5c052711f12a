package object

import (
	"encoding/json"
	"fmt"

	"github.com/lixenwraith/parview/vmath"
)

// Frame is one time step: the complete object population plus an optional caption
type Frame struct {
	Objects []Object
	Text    string
}

// Count returns the number of objects of kind k
func (f Frame) Count(k Kind) int {
	n := 0
	for i := range f.Objects {
		if f.Objects[i].Kind == k {
			n++
		}
	}
	return n
}

// --- Wire format ---
// {"spheres": [...], "spherocylinders": [...], "text": "..."}
// Spheres decode first, then spherocylinders, each in file order

type vec3JSON [3]float32

func (v vec3JSON) vec() vmath.Vec3 { return vmath.Vec3{X: v[0], Y: v[1], Z: v[2]} }

func toVec3JSON(v vmath.Vec3) vec3JSON { return vec3JSON{v.X, v.Y, v.Z} }

type sphereJSON struct {
	Loc      vec3JSON `json:"loc"`
	Diameter *float32 `json:"diameter,omitempty"`
	Radius   *float32 `json:"radius,omitempty"` // Older files stored radius
	Names    ID       `json:"names"`
}

type spherocylinderJSON struct {
	Loc      vec3JSON `json:"loc"`
	Axis     vec3JSON `json:"axis"`
	Diameter float32  `json:"diameter"`
	Names    ID       `json:"names"`
}

type frameJSON struct {
	Spheres         []sphereJSON         `json:"spheres"`
	Spherocylinders []spherocylinderJSON `json:"spherocylinders"`
	Text            string               `json:"text"`
}

func (s sphereJSON) diameter() (float32, error) {
	switch {
	case s.Diameter != nil:
		return *s.Diameter, nil
	case s.Radius != nil:
		return *s.Radius * 2, nil
	default:
		return 0, fmt.Errorf("sphere %s: missing diameter", s.Names)
	}
}

// MarshalJSON groups objects by kind
func (f Frame) MarshalJSON() ([]byte, error) {
	out := frameJSON{
		Spheres:         []sphereJSON{},
		Spherocylinders: []spherocylinderJSON{},
		Text:            f.Text,
	}
	for _, o := range f.Objects {
		switch o.Kind {
		case KindSphere:
			d := o.Diameter
			out.Spheres = append(out.Spheres, sphereJSON{Loc: toVec3JSON(o.Position), Diameter: &d, Names: o.ID})
		case KindSpherocylinder:
			out.Spherocylinders = append(out.Spherocylinders, spherocylinderJSON{
				Loc:      toVec3JSON(o.Position),
				Axis:     toVec3JSON(o.Axis),
				Diameter: o.Diameter,
				Names:    o.ID,
			})
		default:
			return nil, fmt.Errorf("object %s: unknown %s", o.ID, o.Kind)
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts the grouped wire form
func (f *Frame) UnmarshalJSON(data []byte) error {
	var in frameJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	objects := make([]Object, 0, len(in.Spheres)+len(in.Spherocylinders))
	for _, s := range in.Spheres {
		d, err := s.diameter()
		if err != nil {
			return err
		}
		objects = append(objects, NewSphere(s.Names, s.Loc.vec(), d))
	}
	for _, c := range in.Spherocylinders {
		objects = append(objects, NewSpherocylinder(c.Names, c.Loc.vec(), c.Axis.vec(), c.Diameter))
	}

	f.Objects = objects
	f.Text = in.Text
	return nil
}
