package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Cell is one composed terminal cell
type Cell struct {
	Rune    rune
	Fg      colorful.Color
	Bg      colorful.Color
	Painted bool    // Covered by shaded geometry
	Level   float32 // Brightness of the geometry, 0..1
}

var emptyCell = Cell{Rune: ' ', Fg: ColorCaption, Bg: ColorBackground}

// Buffer is the off-screen picture flushed to the terminal once per draw
type Buffer struct {
	cells  []Cell
	width  int
	height int
}

// NewBuffer creates a cleared buffer with the specified dimensions
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *Buffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Clear resets all cells to empty using exponential copy
func (b *Buffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = emptyCell
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

// Bounds returns the buffer dimensions
func (b *Buffer) Bounds() (int, int) {
	return b.width, b.height
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the cell at x, y; out of bounds reads as empty
func (b *Buffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return emptyCell
	}
	return b.cells[y*b.width+x]
}

// Paint fills a cell with shaded geometry, replacing any glyph
func (b *Buffer) Paint(x, y int, c colorful.Color, level float32) {
	if !b.inBounds(x, y) {
		return
	}
	dst := &b.cells[y*b.width+x]
	dst.Rune = ' '
	dst.Bg = c
	dst.Painted = true
	dst.Level = level
}

// SetGlyph draws a foreground glyph and keeps the background
// A painted cell stays painted so snapshots keep its brightness
func (b *Buffer) SetGlyph(x, y int, r rune, fg colorful.Color) {
	if !b.inBounds(x, y) {
		return
	}
	dst := &b.cells[y*b.width+x]
	dst.Rune = r
	dst.Fg = fg
}

// WriteString draws s from x on row y, clipped at the right edge
// Returns the number of cells written
func (b *Buffer) WriteString(x, y int, s string, fg colorful.Color) int {
	n := 0
	for _, r := range s {
		if x+n >= b.width {
			break
		}
		b.SetGlyph(x+n, y, r, fg)
		n++
	}
	return n
}

// Flush copies the buffer to the screen; the caller shows it
func (b *Buffer) Flush(screen tcell.Screen) {
	for y := 0; y < b.height; y++ {
		row := b.cells[y*b.width : (y+1)*b.width]
		for x := range row {
			c := &row[x]
			style := tcell.StyleDefault.Foreground(toTcell(c.Fg)).Background(toTcell(c.Bg))
			screen.SetContent(x, y, c.Rune, nil, style)
		}
	}
}
