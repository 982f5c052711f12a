package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/parview/palette"
)

// Chrome colors
var (
	ColorBackground = rgb(26, 27, 38)    // Tokyo Night background
	ColorBox        = rgb(255, 0, 0)     // Unit box wireframe
	ColorCaption    = rgb(255, 255, 255) // Frame text
	ColorStatus     = rgb(180, 180, 180) // Bottom status line
	ColorPaused     = rgb(255, 165, 0)   // Progress while paused

	colorWhite = rgb(255, 255, 255)
)

func rgb(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// FromPalette converts a palette color to the blending space
func FromPalette(c palette.Color) colorful.Color {
	return rgb(c.R, c.G, c.B)
}

// toTcell clamps c and converts it to a truecolor terminal color
func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
