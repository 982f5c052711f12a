package render

import (
	"github.com/chewxy/math32"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/parview/vmath"
)

// Light sticks to the camera: view space, x right, y down, z toward the viewer
var (
	lightDir = vmath.V3Normalize(vmath.V3(-0.35, -0.55, 0.75))
	// Blinn-Phong half vector: normalize(light + view), view = (0,0,1)
	halfDir = vmath.V3Normalize(vmath.V3Add(lightDir, vmath.V3(0, 0, 1)))
)

const (
	ambient   = 0.25
	diffuse   = 0.75
	specPower = 24
	specMax   = 0.6
	rimDarken = 0.35
	fogMax    = 0.55
	fogRate   = 0.35
)

// shade lights base for a unit surface normal and fades it into the
// background by fog; level is the resulting brightness in 0..1
func shade(base colorful.Color, n vmath.Vec3, fog float32) (colorful.Color, float32) {
	diff := max(0, vmath.V3Dot(n, lightDir))
	spec := math32.Pow(max(0, vmath.V3Dot(n, halfDir)), specPower) * specMax

	// Rim: darken the silhouette so touching spheres stay apart
	rim := 1 - n.Z
	intensity := (ambient + diffuse*diff) * (1 - rim*rim*rimDarken)

	lit := colorful.Color{
		R: base.R * float64(intensity),
		G: base.G * float64(intensity),
		B: base.B * float64(intensity),
	}
	lit = lit.BlendRgb(colorWhite, float64(spec)).Clamped()
	if fog > 0 {
		lit = lit.BlendRgb(ColorBackground, float64(fog))
	}

	level := vmath.Clamp((intensity+spec)*(1-fog), 0, 1)
	return lit, level
}

// fogAt grows with distance past the orbit center
func fogAt(depth, distance float32) float32 {
	return vmath.Clamp((depth-distance)*fogRate, 0, fogMax)
}

// glyphRamp maps brightness to characters for text snapshots
const glyphRamp = ".:-=+*#%@"

func rampGlyph(level float32) rune {
	r := []rune(glyphRamp)
	i := int(vmath.Clamp(level, 0, 1) * float32(len(r)-1))
	return r[i]
}
