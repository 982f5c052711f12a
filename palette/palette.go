// Package palette maps object IDs to colors.
//
// Colors are keyed by the partial ID, the ID projected through a mask of
// active levels, so that e.g. every atom of one residue can share a color.
// A partial ID keeps the color it was first given, even across mask
// changes; ClearAssignments starts over.
package palette

import (
	"sort"

	"github.com/lixenwraith/parview/object"
)

// Assignment pins a partial ID to a color
type Assignment struct {
	Names object.ID
	Color Color
}

// Palette assigns colors to partial IDs, round-robin from its defaults
// A zero Palette is filled in as New(nil, nil) on first use
type Palette struct {
	defaults []Color
	partials PartialMask
	assigned map[string]Assignment
	next     int
}

// Default returns the built-in palette: DefaultColors, all DefaultLevels levels active
func Default() *Palette {
	return New(DefaultColors[:], NewPartialMask(DefaultLevels, true))
}

// New creates a palette with the given cycle and mask
// An empty cycle falls back to DefaultColors, an empty mask to DefaultLevels active levels
func New(defaults []Color, partials PartialMask) *Palette {
	if len(defaults) == 0 {
		defaults = DefaultColors[:]
	}
	if len(partials) == 0 {
		partials = NewPartialMask(DefaultLevels, true)
	}
	d := make([]Color, len(defaults))
	copy(d, defaults)
	return &Palette{
		defaults: d,
		partials: partials.clone(),
		assigned: make(map[string]Assignment),
	}
}

// lazyInit fills in a zero Palette
func (p *Palette) lazyInit() {
	if len(p.defaults) == 0 {
		p.defaults = append([]Color(nil), DefaultColors[:]...)
		p.next = 0
	}
	if len(p.partials) == 0 {
		p.partials = NewPartialMask(DefaultLevels, true)
	}
	if p.assigned == nil {
		p.assigned = make(map[string]Assignment)
	}
}

// Color returns the color of id under the current mask, assigning the next
// default on first sight of its partial ID
func (p *Palette) Color(id object.ID) Color {
	p.lazyInit()
	partial := p.partials.Apply(id)
	key := partial.Key()
	if a, ok := p.assigned[key]; ok {
		return a.Color
	}

	c := p.defaults[p.next]
	p.next = (p.next + 1) % len(p.defaults)
	p.assigned[key] = Assignment{Names: partial, Color: c}
	return c
}

// Assign pins names (already a partial ID) to c
func (p *Palette) Assign(names object.ID, c Color) {
	p.lazyInit()
	names = names.Clone()
	if names == nil {
		names = object.ID{}
	}
	p.assigned[names.Key()] = Assignment{Names: names, Color: c}
}

// TogglePartial flips one mask level; out-of-range levels are ignored
func (p *Palette) TogglePartial(level int) {
	p.lazyInit()
	if level < 0 || level >= len(p.partials) {
		return
	}
	p.partials[level] = !p.partials[level]
	p.next = 0
}

// Partial reports whether level is active; out-of-range levels are inactive
func (p *Palette) Partial(level int) bool {
	p.lazyInit()
	if level < 0 || level >= len(p.partials) {
		return false
	}
	return p.partials[level]
}

// SetPartial writes one mask level; out-of-range levels are ignored
func (p *Palette) SetPartial(level int, value bool) {
	p.lazyInit()
	if level < 0 || level >= len(p.partials) {
		return
	}
	p.partials[level] = value
	p.next = 0
}

// SetAllPartial writes every mask level
func (p *Palette) SetAllPartial(value bool) {
	p.lazyInit()
	for i := range p.partials {
		p.partials[i] = value
	}
	p.next = 0
}

// ClearAssignments forgets every assigned color, including pinned ones
func (p *Palette) ClearAssignments() {
	p.assigned = make(map[string]Assignment)
	p.next = 0
}

// PartialsString is a compact mask indicator such as "_23_____"
func (p *Palette) PartialsString() string {
	return p.partials.String()
}

// Levels returns the mask length
func (p *Palette) Levels() int {
	p.lazyInit()
	return len(p.partials)
}

// Defaults returns a copy of the color cycle
func (p *Palette) Defaults() []Color {
	out := make([]Color, len(p.defaults))
	copy(out, p.defaults)
	return out
}

// Assignments returns every assignment ordered by ID
func (p *Palette) Assignments() []Assignment {
	out := make([]Assignment, 0, len(p.assigned))
	for _, a := range p.assigned {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Names.Less(out[j].Names)
	})
	return out
}

// Equal compares cycle order, mask, assignments and the next slot
func (p *Palette) Equal(other *Palette) bool {
	if p == nil || other == nil {
		return p == other
	}
	if p.next != other.next ||
		len(p.defaults) != len(other.defaults) ||
		len(p.partials) != len(other.partials) ||
		len(p.assigned) != len(other.assigned) {
		return false
	}
	for i := range p.defaults {
		if p.defaults[i] != other.defaults[i] {
			return false
		}
	}
	for i := range p.partials {
		if p.partials[i] != other.partials[i] {
			return false
		}
	}
	for k, a := range p.assigned {
		b, ok := other.assigned[k]
		if !ok || a.Color != b.Color {
			return false
		}
	}
	return true
}
