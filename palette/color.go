package palette

import (
	"errors"
	"fmt"
)

// ErrInvalidColor reports a color that is not three components in 0..255
var ErrInvalidColor = errors.New("invalid color")

// Color is an 8-bit RGB triple
type Color struct {
	R, G, B uint8
}

// DefaultColors are assigned round-robin when no other palette is given
var DefaultColors = [...]Color{
	{77, 175, 74},   // Green
	{152, 78, 163},  // Purple
	{255, 127, 0},   // Orange
	{228, 26, 28},   // Red
	{55, 126, 184},  // Blue
	{166, 86, 40},   // Brown
	{247, 129, 191}, // Pink
	{153, 153, 153}, // Gray
	{255, 255, 51},  // Yellow
	{255, 255, 255}, // White
	{0, 0, 0},       // Black
}

// Floats returns the components scaled to 0..1
func (c Color) Floats() (r, g, b float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// triple is the wire form of a Color: [r, g, b]
type triple []int

func toTriple(c Color) triple {
	return triple{int(c.R), int(c.G), int(c.B)}
}

func (t triple) color() (Color, error) {
	if len(t) != 3 {
		return Color{}, fmt.Errorf("%w: want 3 components, got %d", ErrInvalidColor, len(t))
	}
	for _, v := range t {
		if v < 0 || v > 255 {
			return Color{}, fmt.Errorf("%w: component %d out of range", ErrInvalidColor, v)
		}
	}
	return Color{uint8(t[0]), uint8(t[1]), uint8(t[2])}, nil
}
