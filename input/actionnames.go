package input

import (
	"fmt"
	"sort"

	"github.com/lixenwraith/parview/engine"
)

// toggleLevels is the number of mask levels with their own toggle action
const toggleLevels = 8

// actionRegistry maps canonical action names to actions
// Used by keymap config loader to resolve TOML action strings to bindings
var actionRegistry map[string]engine.Action

func init() {
	actionRegistry = buildActionRegistry()
}

func buildActionRegistry() map[string]engine.Action {
	r := map[string]engine.Action{
		// Unbind sentinel
		"none": {Type: engine.ActionNone},

		"quit": {Type: engine.ActionQuit},

		// Playback
		"slower":  {Type: engine.ActionSlower},
		"faster":  {Type: engine.ActionFaster},
		"reverse": {Type: engine.ActionReverse},
		"pause":   {Type: engine.ActionPause},

		// Coloring
		"all_levels":   {Type: engine.ActionAllLevels},
		"no_levels":    {Type: engine.ActionNoLevels},
		"clear_colors": {Type: engine.ActionClearColors},

		// Camera
		"view_tilted": {Type: engine.ActionViewTilted},
		"view_top":    {Type: engine.ActionViewTop},
		"yaw_left":    {Type: engine.ActionYawLeft},
		"yaw_right":   {Type: engine.ActionYawRight},
		"zoom_in":     {Type: engine.ActionZoomIn},
		"zoom_out":    {Type: engine.ActionZoomOut},

		// Output
		"log_camera": {Type: engine.ActionLogCamera},
		"snapshot":   {Type: engine.ActionSnapshot},
	}

	// toggle_level_1 .. toggle_level_8, 1-based like the keys
	for level := 0; level < toggleLevels; level++ {
		r[fmt.Sprintf("toggle_level_%d", level+1)] = engine.Action{Type: engine.ActionToggleLevel, Level: level}
	}
	return r
}

// ActionEntry resolves a canonical action name
// Returns zero Action and false if name is unknown
func ActionEntry(name string) (engine.Action, bool) {
	a, ok := actionRegistry[name]
	return a, ok
}

// IsActionName returns true if name is a registered action
func IsActionName(name string) bool {
	_, ok := actionRegistry[name]
	return ok
}

// ActionNames returns all registered action names, sorted
func ActionNames() []string {
	names := make([]string, 0, len(actionRegistry))
	for name := range actionRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
