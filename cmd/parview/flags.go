package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/go-homedir"

	"github.com/lixenwraith/parview/config"
)

// defaultConfigPath is read when present and -config is not given
const defaultConfigPath = "~/.config/parview/parview.toml"

var errUsage = errors.New("usage: parview [flags] FRAMES")

// cliOptions are the parsed command line
type cliOptions struct {
	framesPath  string
	palettePath string
	configPath  string
	keymapPath  string
	statusAddr  string
	colorMode   string
	snapshotDir string

	generate   bool
	seed       uint64
	once       bool
	debug      bool
	sound      bool
	noWatch    bool
	dumpConfig bool
}

func parseFlags(args []string, stderr io.Writer) (*cliOptions, error) {
	o := &cliOptions{}
	fs := flag.NewFlagSet("parview", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, errUsage)
		fs.PrintDefaults()
	}

	fs.StringVar(&o.palettePath, "palette", "", "Palette file (.json, .toml, .yaml)")
	fs.StringVar(&o.configPath, "config", "", "Config file (default "+defaultConfigPath+" if present)")
	fs.StringVar(&o.keymapPath, "keymap", "", "TOML keymap overriding the default keys")
	fs.StringVar(&o.statusAddr, "status", "", "Serve playback status over HTTP on this address")
	fs.StringVar(&o.colorMode, "color", "auto", "Color mode: auto, truecolor, 256")
	fs.StringVar(&o.snapshotDir, "snapshots", ".", "Directory for text snapshots")
	fs.BoolVar(&o.generate, "generate", false, "Write a random example to FRAMES (and -palette) before viewing")
	fs.Uint64Var(&o.seed, "seed", 0, "Seed for -generate; 0 picks one")
	fs.BoolVar(&o.once, "once", false, "Exit when playback wraps or ends")
	fs.BoolVar(&o.debug, "debug", false, "Write logs to "+logDir+"/"+logFileName)
	fs.BoolVar(&o.sound, "sound", false, "Play audio cues")
	fs.BoolVar(&o.noWatch, "nowatch", false, "Do not reload files when they change")
	fs.BoolVar(&o.dumpConfig, "dumpconfig", false, "Print the effective config as TOML and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	switch {
	case fs.NArg() == 1:
		o.framesPath = fs.Arg(0)
	case fs.NArg() == 0 && o.dumpConfig:
	default:
		fs.Usage()
		return nil, errUsage
	}
	return o, nil
}

// loadConfig reads the config file, then the environment, then flags
func loadConfig(o *cliOptions, getenv func(string) string) (*config.Config, error) {
	cfg := config.Default()

	path := o.configPath
	if path == "" {
		if p, err := homedir.Expand(defaultConfigPath); err == nil {
			if _, err := os.Stat(p); err == nil {
				path = p
			}
		}
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg.ApplyEnv(getenv)

	if o.sound {
		cfg.Sound = true
	}
	if o.statusAddr != "" {
		cfg.StatusAddr = o.statusAddr
	}
	if o.keymapPath != "" {
		cfg.Keymap = o.keymapPath
	}

	if err := cfg.ExpandPaths(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
