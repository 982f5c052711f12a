package palette

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/parview/object"
)

// Format is a serialization format for palettes
type Format uint8

const (
	FormatTOML Format = iota
	FormatJSON
	FormatYAML
)

// FormatFromPath picks the format from the file extension, TOML unless .json/.yaml/.yml
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// paletteFile is the persisted form; every field is optional and absent
// fields take their Default() value
type paletteFile struct {
	DefaultColors []triple         `json:"default_colors,omitempty" toml:"default_colors,omitempty" yaml:"default_colors,omitempty"`
	Partials      []bool           `json:"partials,omitempty" toml:"partials,omitempty" yaml:"partials,omitempty"`
	NextColor     *int             `json:"next_color,omitempty" toml:"next_color,omitempty" yaml:"next_color,omitempty"`
	Assigned      []assignmentFile `json:"assigned,omitempty" toml:"assigned,omitempty" yaml:"assigned,omitempty"`
}

type assignmentFile struct {
	Names []string `json:"names" toml:"names" yaml:"names"`
	Color triple   `json:"color" toml:"color" yaml:"color"`
}

func (p *Palette) toFile() paletteFile {
	f := paletteFile{
		DefaultColors: make([]triple, len(p.defaults)),
		Partials:      p.partials.clone(),
	}
	for i, c := range p.defaults {
		f.DefaultColors[i] = toTriple(c)
	}
	for _, a := range p.Assignments() {
		names := []string(a.Names.Clone())
		if names == nil {
			names = []string{}
		}
		f.Assigned = append(f.Assigned, assignmentFile{Names: names, Color: toTriple(a.Color)})
	}
	next := p.next
	f.NextColor = &next
	return f
}

func (f paletteFile) toPalette() (*Palette, error) {
	var defaults []Color
	for i, t := range f.DefaultColors {
		c, err := t.color()
		if err != nil {
			return nil, fmt.Errorf("default_colors[%d]: %w", i, err)
		}
		defaults = append(defaults, c)
	}

	p := New(defaults, PartialMask(f.Partials))

	for i, a := range f.Assigned {
		c, err := a.Color.color()
		if err != nil {
			return nil, fmt.Errorf("assigned[%d]: %w", i, err)
		}
		p.Assign(object.ID(a.Names), c)
	}

	if f.NextColor != nil {
		n := *f.NextColor % len(p.defaults)
		if n < 0 {
			n += len(p.defaults)
		}
		p.next = n
	}
	return p, nil
}

// MarshalJSON writes the persisted form
func (p *Palette) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.toFile())
}

// UnmarshalJSON fills absent fields from Default()
func (p *Palette) UnmarshalJSON(data []byte) error {
	var f paletteFile
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	decoded, err := f.toPalette()
	if err != nil {
		return err
	}
	*p = *decoded
	return nil
}

// MarshalYAML writes the persisted form
func (p *Palette) MarshalYAML() (any, error) {
	return p.toFile(), nil
}

// UnmarshalYAML fills absent fields from Default()
func (p *Palette) UnmarshalYAML(node *yaml.Node) error {
	var f paletteFile
	if err := node.Decode(&f); err != nil {
		return err
	}
	decoded, err := f.toPalette()
	if err != nil {
		return err
	}
	*p = *decoded
	return nil
}

// Encode serializes p in format
func (p *Palette) Encode(format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(p.toFile(), "", "  ")
	case FormatYAML:
		return yaml.Marshal(p.toFile())
	default:
		return toml.Marshal(p.toFile())
	}
}

// Parse decodes a palette; empty input yields Default()
func Parse(data []byte, format Format) (*Palette, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Default(), nil
	}

	var f paletteFile
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &f)
	case FormatYAML:
		err = yaml.Unmarshal(data, &f)
	default:
		err = toml.Unmarshal(data, &f)
	}
	if err != nil {
		return nil, fmt.Errorf("palette decode: %w", err)
	}
	return f.toPalette()
}

// Load reads a palette file, format chosen by extension
func Load(path string) (*Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("palette load: %w", err)
	}
	p, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Save writes p to path, format chosen by extension
func (p *Palette) Save(path string) error {
	data, err := p.Encode(FormatFromPath(path))
	if err != nil {
		return fmt.Errorf("palette encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("palette save: %w", err)
	}
	return nil
}
