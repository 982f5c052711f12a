package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/parview/audio"
	"github.com/lixenwraith/parview/config"
	"github.com/lixenwraith/parview/engine"
	"github.com/lixenwraith/parview/input"
	"github.com/lixenwraith/parview/loader"
	"github.com/lixenwraith/parview/object"
	"github.com/lixenwraith/parview/palette"
	"github.com/lixenwraith/parview/render"
	"github.com/lixenwraith/parview/service"
	"github.com/lixenwraith/parview/status"
	"github.com/lixenwraith/parview/terminal"
	"github.com/lixenwraith/parview/vmath"
)

func main() {
	os.Exit(realMain(os.Args[1:], os.Stderr))
}

// realMain returns the process exit code so its defers run before os.Exit
func realMain(args []string, stderr io.Writer) int {
	// Panic Recovery: Ensure terminal is reset even if the viewer crashes
	defer func() {
		terminal.HandleCrash(recover())
	}()

	o, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if logFile := setupLogging(o.debug); logFile != nil {
		defer logFile.Close()
	}

	if err := run(o); err != nil {
		fmt.Fprintf(stderr, "parview: %v\n", err)
		return 1
	}
	return 0
}

func run(o *cliOptions) error {
	cfg, err := loadConfig(o, os.Getenv)
	if err != nil {
		return err
	}
	if o.dumpConfig {
		data, err := cfg.Encode()
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	frames, pal, err := loadInputs(o)
	if err != nil {
		return err
	}

	keys := input.DefaultKeyTable()
	if cfg.Keymap != "" {
		override, err := input.LoadKeyFile(cfg.Keymap)
		if err != nil {
			return err
		}
		keys = input.MergeKeyTable(keys, override)
	}

	mode, err := terminal.ParseColorMode(o.colorMode, os.Getenv)
	if err != nil {
		return err
	}
	if err := mode.Apply(); err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	// Normal exit terminal cleanup; errors are printed by main after this
	defer screen.Fini()
	screen.HideCursor()
	log.Printf("terminal: %s color", mode)

	viewer, err := newViewer(cfg, o, frames, pal, render.NewDisplay(screen, cfg.ShowBox))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	actions := make(chan engine.Action, 16)
	terminal.Go(func() { input.Poll(screen, keys, actions) })

	hub, reloads, err := buildServices(cfg, o, viewer)
	if err != nil {
		return err
	}
	viewer.SetInput(actions, reloads)
	if err := hub.StartAll(); err != nil {
		return err
	}
	defer hub.StopAll()

	err = viewer.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// buildServices registers the optional subsystems cfg enables
// A watcher that cannot be created only disables reloading
func buildServices(cfg *config.Config, o *cliOptions, viewer *engine.Viewer) (*service.Hub, <-chan engine.Reload, error) {
	hub := service.NewHub()
	var reloads <-chan engine.Reload

	if !o.noWatch {
		w, err := loader.NewWatcher(o.framesPath, o.palettePath)
		if err != nil {
			log.Printf("watch: disabled: %v", err)
		} else if err := hub.Register(w); err != nil {
			return nil, nil, err
		} else {
			reloads = w.Reloads()
		}
	}

	if cfg.Sound {
		sm := audio.NewSoundManager(cfg.Volume)
		if err := hub.Register(sm); err != nil {
			return nil, nil, err
		}
		viewer.SetCues(sm)
	}

	if cfg.StatusAddr != "" {
		reg := status.NewRegistry()
		viewer.SetMetrics(reg)
		if err := hub.Register(status.NewServer(cfg.StatusAddr, reg)); err != nil {
			return nil, nil, err
		}
	}
	return hub, reloads, nil
}

// loadInputs reads, or with -generate first writes, the frames and palette
func loadInputs(o *cliOptions) ([]object.Frame, *palette.Palette, error) {
	if o.generate {
		frames := loader.Generate(o.seed)
		if err := loader.SaveFrames(o.framesPath, frames); err != nil {
			return nil, nil, err
		}
		if o.palettePath != "" {
			if err := loader.GeneratePalette().Save(o.palettePath); err != nil {
				return nil, nil, err
			}
		}
		log.Printf("loader: generated %d frames into %s", len(frames), o.framesPath)
	}

	frames, err := loader.LoadFrames(o.framesPath)
	if err != nil {
		return nil, nil, err
	}

	pal := palette.Default()
	if o.palettePath != "" {
		if pal, err = palette.Load(o.palettePath); err != nil {
			return nil, nil, err
		}
	}
	return frames, pal, nil
}

// newViewer builds the playback clock, the camera and the viewer from cfg
func newViewer(cfg *config.Config, o *cliOptions, frames []object.Frame, pal *palette.Palette, d engine.Display) (*engine.Viewer, error) {
	rates := cfg.Rates
	if len(rates) == 0 {
		rates = engine.DefaultRates()
	}
	timer := engine.NewTimer(rates, len(frames), true)
	timer.LoopPause = cfg.PauseLoop
	timer.FPS = cfg.FrameRate
	timer.AtLeast(cfg.FPS)

	camera := vmath.NewCamera(cfg.Pitch, cfg.Yaw, cfg.Distance, cfg.FOV)

	return engine.NewViewer(frames, pal, timer, camera, d, engine.Options{
		Period:      cfg.Period(),
		Rotate:      cfg.Rotate,
		Once:        o.once,
		SnapshotDir: o.snapshotDir,
	})
}
