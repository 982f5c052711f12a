package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/parview/engine"
)

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestDefaultBindings(t *testing.T) {
	kt := DefaultKeyTable()

	tests := []struct {
		name string
		ev   *tcell.EventKey
		want engine.Action
	}{
		{"slower", runeKey(','), engine.Action{Type: engine.ActionSlower}},
		{"faster", runeKey('.'), engine.Action{Type: engine.ActionFaster}},
		{"reverse", runeKey('f'), engine.Action{Type: engine.ActionReverse}},
		{"pause", runeKey(' '), engine.Action{Type: engine.ActionPause}},
		{"level 1", runeKey('1'), engine.Action{Type: engine.ActionToggleLevel, Level: 0}},
		{"level 8", runeKey('8'), engine.Action{Type: engine.ActionToggleLevel, Level: 7}},
		{"all levels", runeKey('9'), engine.Action{Type: engine.ActionAllLevels}},
		{"no levels", runeKey('0'), engine.Action{Type: engine.ActionNoLevels}},
		{"clear", runeKey('c'), engine.Action{Type: engine.ActionClearColors}},
		{"log camera", runeKey('w'), engine.Action{Type: engine.ActionLogCamera}},
		{"snapshot", runeKey('s'), engine.Action{Type: engine.ActionSnapshot}},
		{"quit", runeKey('q'), engine.Action{Type: engine.ActionQuit}},
		{"tilted", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), engine.Action{Type: engine.ActionViewTilted}},
		{"top", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), engine.Action{Type: engine.ActionViewTop}},
		{"yaw left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), engine.Action{Type: engine.ActionYawLeft}},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), engine.Action{Type: engine.ActionQuit}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := kt.Lookup(tt.ev)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := kt.Lookup(runeKey('z'))
	assert.False(t, ok)
}

func TestActionRegistry(t *testing.T) {
	a, ok := ActionEntry("toggle_level_3")
	require.True(t, ok)
	assert.Equal(t, engine.Action{Type: engine.ActionToggleLevel, Level: 2}, a)

	assert.True(t, IsActionName("none"))
	assert.False(t, IsActionName("toggle_level_9"))

	names := ActionNames()
	assert.Contains(t, names, "snapshot")
	assert.IsNonDecreasing(t, names)

	// Every default binding has a name
	bound := make(map[engine.Action]bool)
	for _, name := range names {
		a, _ := ActionEntry(name)
		bound[a] = true
	}
	for r, a := range DefaultKeyTable().Runes {
		assert.True(t, bound[a], "rune %q", r)
	}
}

func TestLoadKeyConfig(t *testing.T) {
	data := []byte(`
[keys]
p = "pause"
space = "none"
"," = "faster"
1 = "toggle_level_2"

[special]
Up = "zoom_in"
escape = "none"
F1 = "snapshot"
`)

	kt, err := LoadKeyConfig(data)
	require.NoError(t, err)

	assert.Equal(t, engine.Action{Type: engine.ActionPause}, kt.Runes['p'])
	assert.Equal(t, engine.Action{Type: engine.ActionNone}, kt.Runes[' '])
	assert.Equal(t, engine.Action{Type: engine.ActionFaster}, kt.Runes[','])
	assert.Equal(t, engine.Action{Type: engine.ActionToggleLevel, Level: 1}, kt.Runes['1'])
	assert.Equal(t, engine.Action{Type: engine.ActionZoomIn}, kt.Keys[tcell.KeyUp])
	assert.Equal(t, engine.Action{Type: engine.ActionSnapshot}, kt.Keys[tcell.KeyF1])
	assert.Len(t, kt.Keys, 3)
}

func TestLoadKeyConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad toml", `[keys`},
		{"unknown action", "[keys]\np = \"jump\""},
		{"long rune key", "[keys]\nab = \"pause\""},
		{"unknown key name", "[special]\nHyper = \"pause\""},
		{"non-string value", "[keys]\np = 3"},
		{"unknown section", "[normal]\np = \"pause\""},
		{"section not a table", `keys = "pause"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadKeyConfig([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestMergeKeyTable(t *testing.T) {
	base := DefaultKeyTable()
	override, err := LoadKeyConfig([]byte(`
[keys]
space = "none"
p = "pause"

[special]
Up = "zoom_in"
`))
	require.NoError(t, err)

	merged := MergeKeyTable(base, override)

	_, ok := merged.Runes[' ']
	assert.False(t, ok, "none unbinds")
	assert.Equal(t, engine.ActionPause, merged.Runes['p'].Type)
	assert.Equal(t, engine.ActionZoomIn, merged.Keys[tcell.KeyUp].Type)
	assert.Equal(t, engine.ActionYawLeft, merged.Keys[tcell.KeyLeft].Type, "untouched keys survive")

	// Base is not modified
	assert.Equal(t, engine.ActionPause, base.Runes[' '].Type)
	assert.Equal(t, engine.ActionViewTilted, base.Keys[tcell.KeyUp].Type)

	assert.Equal(t, base.Runes, MergeKeyTable(base, nil).Runes)
}

func TestLoadKeyFile(t *testing.T) {
	_, err := LoadKeyFile("/nonexistent/keymap.toml")
	assert.Error(t, err)
}

// fakeSource replays queued events, then reports a finalized screen
type fakeSource struct {
	events []tcell.Event
	syncs  int
}

func (f *fakeSource) PollEvent() tcell.Event {
	if len(f.events) == 0 {
		return nil
	}
	ev := f.events[0]
	f.events = f.events[1:]
	return ev
}

func (f *fakeSource) Sync() { f.syncs++ }

func TestPoll(t *testing.T) {
	src := &fakeSource{events: []tcell.Event{
		runeKey('f'),
		runeKey('z'), // unbound
		tcell.NewEventResize(100, 40),
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
	}}
	out := make(chan engine.Action, 8)

	Poll(src, DefaultKeyTable(), out)

	var got []engine.ActionType
	for a := range out {
		got = append(got, a.Type)
	}
	assert.Equal(t, []engine.ActionType{engine.ActionReverse, engine.ActionResize, engine.ActionQuit}, got)
	assert.Equal(t, 1, src.syncs)
}
