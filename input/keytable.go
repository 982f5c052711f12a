// Package input turns terminal key events into viewer actions through a
// rebindable key table.
package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/parview/engine"
)

// KeyTable maps keys to viewer actions
type KeyTable struct {
	// Printable keys
	Runes map[rune]engine.Action

	// Special keys (arrows, Esc, Ctrl+*)
	Keys map[tcell.Key]engine.Action
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	kt := &KeyTable{
		Runes: map[rune]engine.Action{
			// Playback
			',': {Type: engine.ActionSlower},
			'.': {Type: engine.ActionFaster},
			'f': {Type: engine.ActionReverse},
			' ': {Type: engine.ActionPause},

			// Coloring
			'9': {Type: engine.ActionAllLevels},
			'0': {Type: engine.ActionNoLevels},
			'c': {Type: engine.ActionClearColors},

			// Camera
			'+': {Type: engine.ActionZoomIn},
			'=': {Type: engine.ActionZoomIn},
			'-': {Type: engine.ActionZoomOut},

			// Output
			'w': {Type: engine.ActionLogCamera},
			's': {Type: engine.ActionSnapshot},

			'q': {Type: engine.ActionQuit},
		},

		Keys: map[tcell.Key]engine.Action{
			tcell.KeyUp:     {Type: engine.ActionViewTilted},
			tcell.KeyDown:   {Type: engine.ActionViewTop},
			tcell.KeyLeft:   {Type: engine.ActionYawLeft},
			tcell.KeyRight:  {Type: engine.ActionYawRight},
			tcell.KeyEscape: {Type: engine.ActionQuit},
			tcell.KeyCtrlC:  {Type: engine.ActionQuit},
		},
	}

	// '1'..'8' toggle mask levels 0..7
	for level := 0; level < toggleLevels; level++ {
		kt.Runes[rune('1'+level)] = engine.Action{Type: engine.ActionToggleLevel, Level: level}
	}
	return kt
}

// Lookup resolves a key event; unbound keys report false
func (kt *KeyTable) Lookup(ev *tcell.EventKey) (engine.Action, bool) {
	if ev.Key() == tcell.KeyRune {
		a, ok := kt.Runes[ev.Rune()]
		return a, ok
	}
	a, ok := kt.Keys[ev.Key()]
	return a, ok
}

// Clone returns a deep copy of the KeyTable with independent maps
func (kt *KeyTable) Clone() *KeyTable {
	return &KeyTable{
		Runes: cloneMap(kt.Runes),
		Keys:  cloneMap(kt.Keys),
	}
}

func cloneMap[K comparable](m map[K]engine.Action) map[K]engine.Action {
	c := make(map[K]engine.Action, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
