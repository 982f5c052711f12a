package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/lixenwraith/parview/object"
	"github.com/lixenwraith/parview/palette"
	"github.com/lixenwraith/parview/scene"
	"github.com/lixenwraith/parview/status"
	"github.com/lixenwraith/parview/vmath"
)

var (
	// ErrNoFrames rejects an empty sequence
	ErrNoFrames = errors.New("no frames to show")
	// ErrReloadRejected reports a reload that was dropped with the viewer unchanged
	ErrReloadRejected = errors.New("reload rejected")
)

// Display is a scene backend that can also draw itself
type Display interface {
	scene.Scene
	Draw(camera *vmath.Camera, hud HUD)
	// Snapshot writes the last drawn picture as text
	Snapshot(w io.Writer) error
}

// Cues are notified of playback events
type Cues interface {
	Loop()     // Index wrapped around
	Boundary() // Playback reached either end without looping
}

// NopCues ignores every cue
type NopCues struct{}

func (NopCues) Loop()     {}
func (NopCues) Boundary() {}

// Reload replaces the frames and/or the palette while running
type Reload struct {
	Frames  []object.Frame   // Nil keeps the current frames
	Palette *palette.Palette // Nil keeps the current palette
}

// Options tune the loop
type Options struct {
	Period      time.Duration // Tick interval
	Rotate      float32       // Yaw degrees added per tick
	Once        bool          // Stop when playback wraps or ends
	SnapshotDir string        // Where frameNNNN.txt snapshots go
}

// Viewer owns the playback state and drives the display each tick
type Viewer struct {
	frames  []object.Frame
	palette *palette.Palette
	timer   *Timer
	tracker *scene.Tracker
	camera  *vmath.Camera
	display Display
	cues    Cues
	metrics *status.Registry
	opts    Options

	paused bool
	last   int

	actions <-chan Action
	reloads <-chan Reload
}

// NewViewer wires a viewer; cues and metrics are optional
func NewViewer(frames []object.Frame, p *palette.Palette, t *Timer, cam *vmath.Camera, d Display, opts Options) (*Viewer, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	if opts.Period <= 0 {
		opts.Period = time.Second / 24
	}
	t.SetLength(len(frames))
	return &Viewer{
		frames:  frames,
		palette: p,
		timer:   t,
		tracker: scene.NewTracker(d),
		camera:  cam,
		display: d,
		cues:    NopCues{},
		opts:    opts,
	}, nil
}

// SetCues installs a cue sink
func (v *Viewer) SetCues(c Cues) {
	if c == nil {
		c = NopCues{}
	}
	v.cues = c
}

// SetMetrics publishes playback state into reg each tick
func (v *Viewer) SetMetrics(reg *status.Registry) {
	v.metrics = reg
}

// SetInput connects the action and reload sources; either may be nil
func (v *Viewer) SetInput(actions <-chan Action, reloads <-chan Reload) {
	v.actions = actions
	v.reloads = reloads
}

// Timer exposes the playback clock
func (v *Viewer) Timer() *Timer { return v.timer }

// Palette is the active palette
func (v *Viewer) Palette() *palette.Palette { return v.palette }

// Paused reports whether ticks currently advance time
func (v *Viewer) Paused() bool { return v.paused }

// Index is the frame currently shown
func (v *Viewer) Index() int { return v.last }

// Tracker exposes the live object set
func (v *Viewer) Tracker() *scene.Tracker { return v.tracker }

// Start shows frame 0; Run calls it before the first tick
func (v *Viewer) Start() error {
	v.last = v.timer.Index()
	if err := v.tracker.Update(v.frames[v.last], v.palette); err != nil {
		return fmt.Errorf("frame %d: %w", v.last, err)
	}
	v.publish()
	v.draw()
	return nil
}

// Run ticks until ctx is done, a Quit action arrives, the action channel
// closes, or a frame fails to reconcile
func (v *Viewer) Run(ctx context.Context) error {
	if err := v.Start(); err != nil {
		return err
	}
	defer v.tracker.Clear()

	ticker := time.NewTicker(v.opts.Period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case a, ok := <-v.actions:
			if !ok {
				return nil
			}
			quit, err := v.Handle(a)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}

		case r := <-v.reloads:
			if err := v.Reload(r); err != nil {
				if !errors.Is(err, ErrReloadRejected) {
					return err
				}
				log.Printf("reload: %v", err)
			}

		case <-ticker.C:
			done, err := v.Tick()
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		}
	}
}

// Tick advances time unless paused, reconciles on index change and draws
// done reports that a play-once run has finished
func (v *Viewer) Tick() (done bool, err error) {
	if !v.paused {
		v.timer.Incr()
	}
	if v.opts.Rotate != 0 && vmath.Finite(v.opts.Rotate) {
		v.camera.Rotate(v.opts.Rotate)
	}

	ix := v.timer.Index()
	if ix != v.last {
		wrapped := v.wrapped(ix)
		if wrapped {
			if v.opts.Once {
				return true, nil
			}
			v.cues.Loop()
		}

		if err := v.tracker.Update(v.frames[ix], v.palette); err != nil {
			return false, fmt.Errorf("frame %d: %w", ix, err)
		}
		v.last = ix

		if !wrapped && v.timer.LoopPause == nil && (ix == 0 || ix == len(v.frames)-1) {
			v.cues.Boundary()
		}
	}

	if v.opts.Once && !v.paused && v.finished() {
		return true, nil
	}

	v.publish()
	v.draw()
	return false, nil
}

// wrapped reports a jump against the playback direction
func (v *Viewer) wrapped(ix int) bool {
	if v.timer.LoopPause == nil {
		return false
	}
	dt := v.timer.Dt()
	return (dt > 0 && ix < v.last) || (dt < 0 && ix > v.last)
}

// finished reports that a non-looping run has played past the last frame
func (v *Viewer) finished() bool {
	if v.timer.LoopPause != nil {
		return false
	}
	return v.timer.Dt() > 0 && v.timer.Time() >= float32(len(v.frames))
}

// Handle applies one action; quit is true for ActionQuit
func (v *Viewer) Handle(a Action) (quit bool, err error) {
	recolor := false

	switch a.Type {
	case ActionQuit:
		return true, nil
	case ActionSlower:
		v.timer.Slower()
	case ActionFaster:
		v.timer.Faster()
	case ActionReverse:
		v.timer.Reverse()
	case ActionPause:
		v.paused = !v.paused

	case ActionToggleLevel:
		v.palette.TogglePartial(a.Level)
		recolor = true
	case ActionAllLevels:
		v.palette.SetAllPartial(true)
		recolor = true
	case ActionNoLevels:
		v.palette.SetAllPartial(false)
		recolor = true
	case ActionClearColors:
		v.palette.ClearAssignments()
		recolor = true

	case ActionViewTilted:
		v.camera.SetPreset(tiltedPitch, tiltedYaw)
	case ActionViewTop:
		v.camera.SetPreset(topPitch, topYaw)
	case ActionYawLeft:
		v.camera.Rotate(-yawStep)
	case ActionYawRight:
		v.camera.Rotate(yawStep)
	case ActionZoomIn:
		v.camera.Distance /= zoomFactor
	case ActionZoomOut:
		v.camera.Distance *= zoomFactor

	case ActionLogCamera:
		log.Printf("yaw: %6.2f, pitch: %6.2f, distance: %6.2f",
			v.camera.Yaw*vmath.RadToDeg, v.camera.Pitch*vmath.RadToDeg, v.camera.Distance)
	case ActionSnapshot:
		if path, err := v.Snapshot(); err != nil {
			log.Printf("snapshot: %v", err)
		} else {
			log.Printf("snapshot: saved %s", path)
		}
	}

	if recolor {
		// Same frame again: nothing moves, every node takes its new color
		if err := v.tracker.Update(v.frames[v.last], v.palette); err != nil {
			return false, fmt.Errorf("frame %d: %w", v.last, err)
		}
	}
	v.publish()
	v.draw()
	return false, nil
}

// Snapshot writes the current picture to frameNNNN.txt
func (v *Viewer) Snapshot() (string, error) {
	path := filepath.Join(v.opts.SnapshotDir, fmt.Sprintf("frame%04d.txt", v.last))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := v.display.Snapshot(f); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}

// Reload swaps in new frames and/or palette and shows the current index again
// Every incoming frame is validated first; on failure nothing changes and
// the error wraps ErrReloadRejected
func (v *Viewer) Reload(r Reload) error {
	frames := v.frames
	if r.Frames != nil {
		if len(r.Frames) == 0 {
			log.Printf("reload: ignoring empty frame set")
		} else {
			for i, f := range r.Frames {
				if err := scene.Validate(f); err != nil {
					return fmt.Errorf("%w: frame %d: %w", ErrReloadRejected, i, err)
				}
			}
			frames = r.Frames
		}
	}

	v.frames = frames
	v.timer.SetLength(len(frames))
	if r.Palette != nil {
		v.palette = r.Palette
	}

	// A reload may change any object arbitrarily; start from an empty scene
	v.tracker.Clear()
	v.last = v.timer.Index()
	if err := v.tracker.Update(v.frames[v.last], v.palette); err != nil {
		return fmt.Errorf("reload frame %d: %w", v.last, err)
	}
	if v.metrics != nil {
		v.metrics.Ints.Get(status.Reloads).Add(1)
	}
	v.publish()
	v.draw()
	return nil
}

func (v *Viewer) hud() HUD {
	return HUD{
		Caption:  v.frames[v.last].Text,
		Progress: ProgressLine(v.last, len(v.frames), v.paused),
		Status:   StatusLine(v.timer.Time(), v.timer.Dt(), v.palette.PartialsString()),
		Paused:   v.paused,
	}
}

func (v *Viewer) draw() {
	v.display.Draw(v.camera, v.hud())
}

func (v *Viewer) publish() {
	if v.metrics == nil {
		return
	}
	m := v.metrics
	m.Ints.Get(status.FrameIndex).Store(int64(v.last))
	m.Ints.Get(status.FrameCount).Store(int64(len(v.frames)))
	m.Ints.Get(status.LiveObjects).Store(int64(v.tracker.Len()))
	m.Floats.Get(status.TimerTime).Store(float64(v.timer.Time()))
	m.Floats.Get(status.TimerDt).Store(float64(v.timer.Dt()))
	m.Bools.Get(status.TimerPaused).Store(v.paused)
	m.Strings.Get(status.Coloring).Store(v.palette.PartialsString())
	m.Strings.Get(status.FrameCaption).Store(v.frames[v.last].Text)
}
