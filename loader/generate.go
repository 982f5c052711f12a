package loader

import (
	"fmt"
	"math/rand/v2"

	"github.com/lixenwraith/parview/object"
	"github.com/lixenwraith/parview/palette"
	"github.com/lixenwraith/parview/vmath"
)

// Example sequence shape
const (
	genSpheres     = 16
	genGroups      = 4 // Spheres per first-level name
	genFrames      = 40
	genMaxDiameter = 0.2
	genJitter      = 0.1
	genDropFirst   = 11 // Frames genDropFirst..genDropLast lose genDropped spheres
	genDropLast    = 19
	genDropped     = 8
)

// Generate builds the example sequence: 16 spheres named [n/4+1, n%4+1]
// jittering around random home positions inside the unit box. Sphere 0
// gets a new diameter every frame and frames 11 to 19 drop the last 8
// spheres. Seed 0 picks a random seed.
func Generate(seed uint64) []object.Frame {
	var rng *rand.Rand
	if seed == 0 {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	} else {
		rng = rand.New(rand.NewPCG(seed, seed))
	}

	// randVec is uniform in (-0.5, 0.5)^3
	randVec := func() vmath.Vec3 {
		return vmath.V3(rng.Float32()-0.5, rng.Float32()-0.5, rng.Float32()-0.5)
	}

	home := make([]object.Object, genSpheres)
	for n := range home {
		id := object.NewID(fmt.Sprint(n/genGroups+1), fmt.Sprint(n%genGroups+1))
		home[n] = object.NewSphere(id, randVec(), rng.Float32()*genMaxDiameter)
	}

	frames := make([]object.Frame, genFrames)
	for i := range frames {
		count := genSpheres
		if i >= genDropFirst && i <= genDropLast {
			count -= genDropped
		}

		objs := make([]object.Object, 0, count)
		for n := 0; n < count; n++ {
			o := home[n].Clone()
			if n == 0 {
				o.Diameter = rng.Float32() * genMaxDiameter
			}
			o.Position = vmath.V3Add(o.Position, vmath.V3Scale(randVec(), genJitter))
			objs = append(objs, o)
		}
		frames[i] = object.Frame{
			Objects: objs,
			Text:    fmt.Sprintf("Frame %d with %d spheres", i, count),
		}
	}
	return frames
}

// GeneratePalette is the example palette: defaults plus A pinned red and B pinned green
func GeneratePalette() *palette.Palette {
	p := palette.Default()
	p.Assign(object.NewID("A"), palette.Color{R: 255})
	p.Assign(object.NewID("B"), palette.Color{G: 255})
	return p
}
