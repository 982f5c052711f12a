package engine

// ActionType discriminates viewer commands
type ActionType uint8

const (
	ActionNone ActionType = iota

	ActionQuit
	ActionResize

	// Playback
	ActionSlower
	ActionFaster
	ActionReverse
	ActionPause

	// Coloring
	ActionToggleLevel // Level selects the mask level, 0-based
	ActionAllLevels
	ActionNoLevels
	ActionClearColors

	// Camera
	ActionViewTilted
	ActionViewTop
	ActionYawLeft
	ActionYawRight
	ActionZoomIn
	ActionZoomOut

	// Output
	ActionLogCamera
	ActionSnapshot
)

// Action is one command delivered to the viewer loop
type Action struct {
	Type  ActionType
	Level int
}

// Camera presets and steps
const (
	tiltedPitch = 60
	tiltedYaw   = 45
	topPitch    = 90
	topYaw      = 0
	yawStep     = 5    // Degrees per key press
	zoomFactor  = 1.25 // Distance multiplier per key press
)
