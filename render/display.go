// Package render draws the scene into a truecolor terminal through tcell.
//
// Spheres and spherocylinders are shaded per cell and composed far to near
// into a Buffer, which is flushed to the screen once per Draw. The same
// Buffer backs text snapshots.
package render

import (
	"bufio"
	"io"
	"sort"
	"strings"

	"github.com/chewxy/math32"
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/parview/engine"
	"github.com/lixenwraith/parview/object"
	"github.com/lixenwraith/parview/palette"
	"github.com/lixenwraith/parview/scene"
	"github.com/lixenwraith/parview/vmath"
)

// boxHalf is half the edge of the unit box centered on the origin
const boxHalf = 0.5

// thinRadius is the projected radius in rows below which geometry is drawn as glyphs
const thinRadius = 0.5

// Display is a tcell scene backend
type Display struct {
	screen  tcell.Screen
	showBox bool
	buf     *Buffer
	nodes   map[*node]struct{}
	seq     uint64
}

// NewDisplay draws onto an initialized screen
func NewDisplay(screen tcell.Screen, showBox bool) *Display {
	return &Display{
		screen:  screen,
		showBox: showBox,
		buf:     NewBuffer(0, 0),
		nodes:   make(map[*node]struct{}),
	}
}

// Add implements scene.Scene
func (d *Display) Add(obj object.Object, c palette.Color) scene.Node {
	d.seq++
	n := &node{
		display:  d,
		seq:      d.seq,
		kind:     obj.Kind,
		pos:      obj.Position,
		diameter: obj.Diameter,
		length:   obj.Length(),
		orient:   obj.Orientation(),
		color:    FromPalette(c),
	}
	d.nodes[n] = struct{}{}
	return n
}

// Len returns the number of live nodes
func (d *Display) Len() int {
	return len(d.nodes)
}

// SetShowBox toggles the unit box wireframe
func (d *Display) SetShowBox(show bool) {
	d.showBox = show
}

// Buffer exposes the last composed picture
func (d *Display) Buffer() *Buffer {
	return d.buf
}

// Draw composes the scene and the HUD and shows it
func (d *Display) Draw(cam *vmath.Camera, hud engine.HUD) {
	w, h := d.screen.Size()
	d.buf.Resize(w, h)
	if w <= 0 || h <= 0 {
		return
	}

	// Bottom row belongs to the status line
	viewH := h
	if h > 1 {
		viewH = h - 1
	}

	if d.showBox {
		d.drawBox(cam, w, viewH)
	}
	for _, n := range d.farToNear(cam, w, viewH) {
		switch n.kind {
		case object.KindSpherocylinder:
			d.drawCapsule(n, cam, w, viewH)
		default:
			d.drawSphere(n, cam, w, viewH)
		}
	}
	d.drawHUD(hud, w, h)

	d.buf.Flush(d.screen)
	d.screen.Show()
}

// farToNear orders nodes for the painter's algorithm; ties keep insertion order
func (d *Display) farToNear(cam *vmath.Camera, w, h int) []*node {
	type item struct {
		n     *node
		depth float32
	}
	items := make([]item, 0, len(d.nodes))
	for n := range d.nodes {
		items = append(items, item{n, cam.Project(n.pos, w, h).Depth})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].depth != items[j].depth {
			return items[i].depth > items[j].depth
		}
		return items[i].n.seq < items[j].n.seq
	})

	out := make([]*node, len(items))
	for i, it := range items {
		out[i] = it.n
	}
	return out
}

func (d *Display) drawSphere(n *node, cam *vmath.Camera, w, h int) {
	p := cam.Project(n.pos, w, h)
	if !p.Visible {
		return
	}
	fog := fogAt(p.Depth, cam.Distance)
	rad := n.diameter / 2 * p.Scale
	if rad < thinRadius {
		c, _ := shade(n.color, vmath.V3(0, 0, 1), fog)
		d.buf.SetGlyph(int(math32.Floor(p.X)), int(math32.Floor(p.Y)), '●', c)
		return
	}

	radX := rad * vmath.CellAspect
	minX := max(0, int(math32.Floor(p.X-radX)))
	maxX := min(w-1, int(math32.Floor(p.X+radX)))
	minY := max(0, int(math32.Floor(p.Y-rad)))
	maxY := min(h-1, int(math32.Floor(p.Y+rad)))

	for sy := minY; sy <= maxY; sy++ {
		for sx := minX; sx <= maxX; sx++ {
			nx := (float32(sx) + 0.5 - p.X) / radX
			ny := (float32(sy) + 0.5 - p.Y) / rad
			distSq := nx*nx + ny*ny
			if distSq > 1 {
				continue
			}
			c, level := shade(n.color, vmath.V3(nx, ny, math32.Sqrt(1-distSq)), fog)
			d.buf.Paint(sx, sy, c, level)
		}
	}
}

// drawCapsule shades the projected outline of a swept sphere: every cell
// within the interpolated radius of the 2D segment between the cap centers
func (d *Display) drawCapsule(n *node, cam *vmath.Camera, w, h int) {
	a, b := n.ends()
	pa, pb := cam.Project(a, w, h), cam.Project(b, w, h)
	if !pa.Visible || !pb.Visible {
		return
	}
	fog := fogAt((pa.Depth+pb.Depth)/2, cam.Distance)
	r := n.diameter / 2
	ra, rb := r*pa.Scale, r*pb.Scale
	if max(ra, rb) < thinRadius {
		c, _ := shade(n.color, vmath.V3(0, 0, 1), fog)
		d.drawLine(pa, pb, c, w, h)
		return
	}

	// Work in row units so the distance test is isotropic
	const aspect = vmath.CellAspect
	ax, ay := pa.X/aspect, pa.Y
	bx, by := pb.X/aspect, pb.Y
	dx, dy := bx-ax, by-ay
	lenSq := dx*dx + dy*dy

	rmax := max(ra, rb)
	minX := max(0, int(math32.Floor((min(ax, bx)-rmax)*aspect)))
	maxX := min(w-1, int(math32.Floor((max(ax, bx)+rmax)*aspect)))
	minY := max(0, int(math32.Floor(min(ay, by)-rmax)))
	maxY := min(h-1, int(math32.Floor(max(ay, by)+rmax)))

	for sy := minY; sy <= maxY; sy++ {
		for sx := minX; sx <= maxX; sx++ {
			px := (float32(sx) + 0.5) / aspect
			py := float32(sy) + 0.5

			var t float32
			if lenSq > vmath.Epsilon {
				t = vmath.Clamp(((px-ax)*dx+(py-ay)*dy)/lenSq, 0, 1)
			}
			rad := ra + (rb-ra)*t
			ox := (px - (ax + t*dx)) / rad
			oy := (py - (ay + t*dy)) / rad
			distSq := ox*ox + oy*oy
			if distSq > 1 {
				continue
			}
			c, level := shade(n.color, vmath.V3(ox, oy, math32.Sqrt(1-distSq)), fog)
			d.buf.Paint(sx, sy, c, level)
		}
	}
}

// drawBox draws the twelve edges of the unit box behind everything else
func (d *Display) drawBox(cam *vmath.Camera, w, h int) {
	for _, e := range boxEdges() {
		pa, pb := cam.Project(e[0], w, h), cam.Project(e[1], w, h)
		if !pa.Visible || !pb.Visible {
			continue
		}
		d.drawLine(pa, pb, ColorBox, w, h)
	}
}

// boxEdges joins every pair of corners that differ in one coordinate
func boxEdges() [][2]vmath.Vec3 {
	corner := func(i int) vmath.Vec3 {
		v := vmath.V3(-boxHalf, -boxHalf, -boxHalf)
		if i&1 != 0 {
			v.X = boxHalf
		}
		if i&2 != 0 {
			v.Y = boxHalf
		}
		if i&4 != 0 {
			v.Z = boxHalf
		}
		return v
	}

	edges := make([][2]vmath.Vec3, 0, 12)
	for i := 0; i < 8; i++ {
		for bit := 1; bit < 8; bit <<= 1 {
			if i&bit == 0 {
				edges = append(edges, [2]vmath.Vec3{corner(i), corner(i | bit)})
			}
		}
	}
	return edges
}

// drawLine steps a DDA from pa to pb, choosing a glyph by slope
func (d *Display) drawLine(pa, pb vmath.Projection, c colorful.Color, w, h int) {
	dx, dy := pb.X-pa.X, pb.Y-pa.Y
	glyph := lineGlyph(dx, dy)

	steps := int(max(math32.Abs(dx), math32.Abs(dy))) + 1
	for i := 0; i <= steps; i++ {
		t := float32(i) / float32(steps)
		x := int(math32.Floor(pa.X + dx*t))
		y := int(math32.Floor(pa.Y + dy*t))
		if x < 0 || x >= w || y < 0 || y >= h {
			continue
		}
		d.buf.SetGlyph(x, y, glyph, c)
	}
}

func lineGlyph(dx, dy float32) rune {
	// Compare in isotropic units, a row is CellAspect columns tall
	ix, iy := math32.Abs(dx), math32.Abs(dy)*vmath.CellAspect
	switch {
	case ix < vmath.Epsilon && iy < vmath.Epsilon:
		return '·'
	case iy < ix*0.5:
		return '-'
	case ix < iy*0.5:
		return '|'
	case (dx > 0) == (dy > 0):
		return '\\'
	default:
		return '/'
	}
}

func (d *Display) drawHUD(hud engine.HUD, w, h int) {
	progressColor := ColorStatus
	if hud.Paused {
		progressColor = ColorPaused
	}

	written := d.buf.WriteString(0, 0, hud.Caption, ColorCaption)
	if n := len([]rune(hud.Progress)); n > 0 {
		x := max(w-n, written+1)
		d.buf.WriteString(x, 0, hud.Progress, progressColor)
	}
	if h > 1 {
		d.buf.WriteString(0, h-1, hud.Status, ColorStatus)
	}
}

// Snapshot writes the last drawn picture as plain text: glyphs as drawn,
// shaded cells through a brightness ramp, trailing blanks trimmed
func (d *Display) Snapshot(w io.Writer) error {
	bw := bufio.NewWriter(w)
	width, height := d.buf.Bounds()

	var line strings.Builder
	for y := 0; y < height; y++ {
		line.Reset()
		for x := 0; x < width; x++ {
			c := d.buf.Get(x, y)
			switch {
			case c.Rune != ' ' && c.Rune != 0:
				line.WriteRune(c.Rune)
			case c.Painted:
				line.WriteRune(rampGlyph(c.Level))
			default:
				line.WriteByte(' ')
			}
		}
		if _, err := bw.WriteString(strings.TrimRight(line.String(), " ") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// node is one live object as the display sees it
type node struct {
	display  *Display
	seq      uint64
	kind     object.Kind
	pos      vmath.Vec3
	diameter float32
	length   float32
	orient   vmath.Quat
	color    colorful.Color
}

func (n *node) Move(pos vmath.Vec3) { n.pos = pos }

func (n *node) Resize(diameter, length float32) {
	n.diameter = diameter
	n.length = length
}

func (n *node) Orient(q vmath.Quat) { n.orient = q }

func (n *node) Recolor(c palette.Color) { n.color = FromPalette(c) }

func (n *node) Remove() { delete(n.display.nodes, n) }

// ends returns the cap centers: the reference axis rotated by orient, scaled to length
func (n *node) ends() (vmath.Vec3, vmath.Vec3) {
	half := vmath.V3Scale(vmath.QuatRotate(n.orient, vmath.UnitY), n.length/2)
	return vmath.V3Sub(n.pos, half), vmath.V3Add(n.pos, half)
}
