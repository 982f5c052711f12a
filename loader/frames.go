// Package loader reads and writes frame sequences, generates example data
// and watches input files for changes.
package loader

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lixenwraith/parview/engine"
	"github.com/lixenwraith/parview/object"
)

// ErrNoFrames rejects a file holding an empty sequence
var ErrNoFrames = engine.ErrNoFrames

// compressed reports whether path names a gzip file
func compressed(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".gz")
}

// ReadFrames decodes a JSON array of frames
func ReadFrames(r io.Reader) ([]object.Frame, error) {
	var frames []object.Frame
	if err := json.NewDecoder(r).Decode(&frames); err != nil {
		return nil, fmt.Errorf("frames decode: %w", err)
	}
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	return frames, nil
}

// LoadFrames reads a .json or .json.gz frame file
func LoadFrames(path string) ([]object.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("frames load: %w", err)
	}
	defer f.Close()

	var r io.Reader = bufio.NewReader(f)
	if compressed(path) {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	frames, err := ReadFrames(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return frames, nil
}

// WriteFrames encodes frames as an indented JSON array
func WriteFrames(w io.Writer, frames []object.Frame) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if frames == nil {
		frames = []object.Frame{}
	}
	return enc.Encode(frames)
}

// SaveFrames writes a frame file, gzip-compressed when path ends in .gz
func SaveFrames(path string, frames []object.Frame) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("frames save: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("frames save: %w", cerr)
		}
	}()

	bw := bufio.NewWriter(f)
	var w io.Writer = bw
	var gz *gzip.Writer
	if compressed(path) {
		gz = gzip.NewWriter(bw)
		w = gz
	}

	if err := WriteFrames(w, frames); err != nil {
		return fmt.Errorf("frames encode: %w", err)
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return fmt.Errorf("frames save: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("frames save: %w", err)
	}
	return nil
}
