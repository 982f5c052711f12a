package loader

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lixenwraith/parview/engine"
	"github.com/lixenwraith/parview/palette"
)

// DefaultDebounce collapses the burst of events a single save produces
const DefaultDebounce = 200 * time.Millisecond

// Watcher reloads the frame and palette files when they change on disk
type Watcher struct {
	fsw         *fsnotify.Watcher
	framesPath  string
	palettePath string
	out         chan engine.Reload
	cancel      context.CancelFunc

	// Debounce is the quiet period before a changed file is read
	Debounce time.Duration
}

// NewWatcher watches framesPath and, if not empty, palettePath
// Parent directories are watched so editors that replace files by rename
// keep triggering reloads
func NewWatcher(framesPath, palettePath string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}

	w := &Watcher{
		fsw:      fsw,
		out:      make(chan engine.Reload, 1),
		Debounce: DefaultDebounce,
	}

	dirs := make(map[string]bool)
	for _, p := range []struct {
		src string
		dst *string
	}{{framesPath, &w.framesPath}, {palettePath, &w.palettePath}} {
		if p.src == "" {
			continue
		}
		abs, err := filepath.Abs(p.src)
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", p.src, err)
		}
		*p.dst = abs
		dirs[filepath.Dir(abs)] = true
	}

	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	return w, nil
}

// Reloads delivers one Reload per settled change
func (w *Watcher) Reloads() <-chan engine.Reload {
	return w.out
}

// Run processes file events until ctx is done or the watcher is closed
func (w *Watcher) Run(ctx context.Context) {
	var framesDirty, paletteDirty bool
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			switch filepath.Clean(ev.Name) {
			case w.framesPath:
				framesDirty = true
			case w.palettePath:
				paletteDirty = true
			default:
				continue
			}
			timer.Reset(w.Debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("watch: %v", err)

		case <-timer.C:
			r, ok := w.load(framesDirty, paletteDirty)
			framesDirty, paletteDirty = false, false
			if !ok {
				continue
			}
			select {
			case w.out <- r:
			case <-ctx.Done():
				return
			}
		}
	}
}

// load reads the dirty files; a file that fails to parse is skipped and
// the viewer keeps its current state for it
func (w *Watcher) load(frames, pal bool) (engine.Reload, bool) {
	var r engine.Reload
	if frames {
		fs, err := LoadFrames(w.framesPath)
		if err != nil {
			log.Printf("watch: %v", err)
		} else {
			r.Frames = fs
		}
	}
	if pal {
		p, err := palette.Load(w.palettePath)
		if err != nil {
			log.Printf("watch: %v", err)
		} else {
			r.Palette = p
		}
	}
	return r, r.Frames != nil || r.Palette != nil
}

// Close stops watching
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Name implements service.Service
func (w *Watcher) Name() string {
	return "watch"
}

// Dependencies implements service.Service
func (w *Watcher) Dependencies() []string {
	return nil
}

// Start implements service.Service by running Run in the background
func (w *Watcher) Start() error {
	if w.cancel != nil {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	go w.Run(ctx)
	return nil
}

// Stop implements service.Service
func (w *Watcher) Stop() error {
	if w.cancel == nil {
		return nil
	}
	w.cancel()
	w.cancel = nil
	return w.Close()
}
