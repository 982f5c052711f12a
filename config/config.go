// Package config holds the viewer settings: camera, playback, display and
// the optional outer surfaces (sound, status endpoint, keymap).
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/parview/vmath"
)

// ErrInvalid reports a setting outside its allowed range
var ErrInvalid = errors.New("invalid config")

// Config is the persisted viewer configuration
// Absent keys keep their Default() value
type Config struct {
	// Camera, degrees and world units
	Pitch    float32 `toml:"pitch" yaml:"pitch"`
	Yaw      float32 `toml:"yaw" yaml:"yaw"`
	FOV      float32 `toml:"fov" yaml:"fov"`
	Distance float32 `toml:"distance" yaml:"distance"`

	// Playback
	PauseLoop *float32  `toml:"pauseloop,omitempty" yaml:"pauseloop,omitempty"` // Frames of pause before looping; nil disables looping
	Rotate    float32   `toml:"rotate" yaml:"rotate"`                           // Yaw degrees per tick
	FrameRate float32   `toml:"framerate" yaml:"framerate"`                     // Ticks per second
	FPS       float32   `toml:"fps" yaml:"fps"`                                 // Minimum initial playback rate
	Rates     []float32 `toml:"rates,omitempty" yaml:"rates,omitempty"`         // Empty uses the built-in table

	// Display and outer surfaces
	ShowBox    bool    `toml:"showbox" yaml:"showbox"`
	Sound      bool    `toml:"sound" yaml:"sound"`
	Volume     float64 `toml:"volume" yaml:"volume"` // 0..1
	StatusAddr string  `toml:"status_addr" yaml:"status_addr"`
	Keymap     string  `toml:"keymap" yaml:"keymap"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Pitch:     90,
		Yaw:       0,
		FOV:       45,
		Distance:  2,
		Rotate:    0,
		FrameRate: 24,
		FPS:       2,
		ShowBox:   true,
		Volume:    0.5,
	}
}

// Parse decodes data onto Default(); yamlFormat selects YAML over TOML
func Parse(data []byte, yamlFormat bool) (*Config, error) {
	cfg := Default()
	var err error
	if yamlFormat {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = toml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("config decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads a config file, YAML for .yaml/.yml and TOML otherwise
// The path may start with ~
func Load(path string) (*Config, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("config path: %w", err)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(expanded))
	cfg, err := Parse(data, ext == ".yaml" || ext == ".yml")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", expanded, err)
	}
	return cfg, nil
}

// Encode writes cfg as TOML
func (c *Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

// Validate rejects settings the viewer cannot run with
// NaN and infinities are rejected everywhere; NaN fails no range comparison
func (c *Config) Validate() error {
	if err := c.validateFinite(); err != nil {
		return err
	}
	switch {
	case c.FOV <= 0 || c.FOV >= 180:
		return fmt.Errorf("%w: fov %g not in (0, 180)", ErrInvalid, c.FOV)
	case c.Distance <= 0:
		return fmt.Errorf("%w: distance %g must be positive", ErrInvalid, c.Distance)
	case c.FrameRate <= 0:
		return fmt.Errorf("%w: framerate %g must be positive", ErrInvalid, c.FrameRate)
	case c.FPS < 0:
		return fmt.Errorf("%w: fps %g must not be negative", ErrInvalid, c.FPS)
	case c.PauseLoop != nil && *c.PauseLoop < 0:
		return fmt.Errorf("%w: pauseloop %g must not be negative", ErrInvalid, *c.PauseLoop)
	case c.Volume < 0 || c.Volume > 1:
		return fmt.Errorf("%w: volume %g not in [0, 1]", ErrInvalid, c.Volume)
	}
	return nil
}

func (c *Config) validateFinite() error {
	type field struct {
		name string
		v    float32
	}
	fields := []field{
		{"pitch", c.Pitch},
		{"yaw", c.Yaw},
		{"fov", c.FOV},
		{"distance", c.Distance},
		{"rotate", c.Rotate},
		{"framerate", c.FrameRate},
		{"fps", c.FPS},
	}
	if c.PauseLoop != nil {
		fields = append(fields, field{"pauseloop", *c.PauseLoop})
	}
	for _, f := range fields {
		if !vmath.Finite(f.v) {
			return fmt.Errorf("%w: %s %g must be finite", ErrInvalid, f.name, f.v)
		}
	}
	if math.IsNaN(c.Volume) {
		return fmt.Errorf("%w: volume must be a number", ErrInvalid)
	}
	return nil
}

// Period is the tick interval for FrameRate
func (c *Config) Period() time.Duration {
	return time.Duration(float64(time.Second) / float64(c.FrameRate))
}

// ExpandPaths resolves a leading ~ in path settings
func (c *Config) ExpandPaths() error {
	if c.Keymap == "" {
		return nil
	}
	p, err := homedir.Expand(c.Keymap)
	if err != nil {
		return fmt.Errorf("keymap path: %w", err)
	}
	c.Keymap = p
	return nil
}

// Environment overrides, applied after the file
const (
	EnvSound      = "PARVIEW_SOUND"
	EnvVolume     = "PARVIEW_VOLUME" // 0-100
	EnvStatusAddr = "PARVIEW_STATUS_ADDR"
	EnvFrameRate  = "PARVIEW_FRAMERATE"
)

// ApplyEnv overrides settings from the environment; unparsable values are ignored
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvSound); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Sound = b
		}
	}

	// Volume is given as 0-100 and clamped
	if v := getenv(EnvVolume); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Volume = min(max(float64(n)/100.0, 0), 1)
		}
	}

	if v := getenv(EnvStatusAddr); v != "" {
		c.StatusAddr = v
	}

	if v := getenv(EnvFrameRate); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil && f > 0 {
			c.FrameRate = float32(f)
		}
	}
}
