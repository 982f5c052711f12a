package engine

import (
	"fmt"
	"strconv"

	"github.com/chewxy/math32"
)

// HUD is the text overlay drawn on top of the scene
type HUD struct {
	Caption  string // Frame text, top-left
	Progress string // Top-right
	Status   string // Bottom line
	Paused   bool
}

// FormatRate renders a playback rate, showing slow rates as fractions: 2, 1/4, -1/8
func FormatRate(dt float32) string {
	abs := math32.Abs(dt)
	if abs >= 0.6 || abs < 1e-6 {
		if dt == 0 {
			dt = 0 // Drop the sign of -0
		}
		return strconv.FormatFloat(float64(dt), 'g', -1, 32)
	}

	n := strconv.FormatFloat(float64(math32.Floor(1/abs+0.5)), 'g', -1, 32)
	if dt < 0 {
		return "-1/" + n
	}
	return "1/" + n
}

// StatusLine is the bottom HUD line: virtual time, rate and mask state
func StatusLine(t float32, dt float32, coloring string) string {
	return fmt.Sprintf("t:%6.2f, dt:%s, coloring: %s", t, FormatRate(dt), coloring)
}

// ProgressLine shows the current frame against the sequence length
func ProgressLine(index, count int, paused bool) string {
	s := fmt.Sprintf("%d / %d", index+1, count)
	if paused {
		s = "[PAUSED] " + s
	}
	return s
}
