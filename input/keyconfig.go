package input

import (
	"fmt"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/lixenwraith/parview/engine"
)

// Rune aliases for keys that can't be bare single-char TOML keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
	"comma":     ',',
	"period":    '.',
}

// keyByName resolves tcell key names ("up", "esc", "ctrl-c", "f1") case-insensitively
var keyByName map[string]tcell.Key

func init() {
	keyByName = make(map[string]tcell.Key, len(tcell.KeyNames)+1)
	for k, name := range tcell.KeyNames {
		keyByName[strings.ToLower(name)] = k
	}
	keyByName["escape"] = tcell.KeyEscape
}

// TOML section names
const (
	sectionRunes   = "keys"
	sectionSpecial = "special"
)

// LoadKeyConfig parses TOML keymap data into a sparse override KeyTable
// Only sections/keys present in TOML are populated
// Returns error on unknown action names, invalid key names, or parse failure
//
//	[keys]
//	p = "pause"
//	space = "none"
//
//	[special]
//	Up = "zoom_in"
func LoadKeyConfig(data []byte) (*KeyTable, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("keymap parse: %w", err)
	}

	kt := &KeyTable{}
	for name, sectionData := range raw {
		sectionMap, ok := sectionData.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("section [%s]: expected table, got %T", name, sectionData)
		}

		var err error
		switch name {
		case sectionRunes:
			kt.Runes, err = parseRuneSection(name, sectionMap)
		case sectionSpecial:
			kt.Keys, err = parseSpecialKeySection(name, sectionMap)
		default:
			err = fmt.Errorf("unknown section [%s]", name)
		}
		if err != nil {
			return nil, err
		}
	}

	return kt, nil
}

// LoadKeyFile reads and parses a keymap file
func LoadKeyFile(path string) (*KeyTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("keymap load: %w", err)
	}
	kt, err := LoadKeyConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return kt, nil
}

// parseRuneSection parses a TOML section of rune key → action name bindings
func parseRuneSection(section string, data map[string]any) (map[rune]engine.Action, error) {
	result := make(map[rune]engine.Action, len(data))

	for keyStr, val := range data {
		r, err := resolveRune(keyStr)
		if err != nil {
			return nil, fmt.Errorf("[%s] key %q: %w", section, keyStr, err)
		}

		a, err := resolveValue(val)
		if err != nil {
			return nil, fmt.Errorf("[%s] key %q: %w", section, keyStr, err)
		}
		result[r] = a
	}

	return result, nil
}

// parseSpecialKeySection parses a TOML section of tcell key name → action name bindings
func parseSpecialKeySection(section string, data map[string]any) (map[tcell.Key]engine.Action, error) {
	result := make(map[tcell.Key]engine.Action, len(data))

	for keyStr, val := range data {
		k, ok := keyByName[strings.ToLower(keyStr)]
		if !ok {
			return nil, fmt.Errorf("[%s] unknown key name: %q", section, keyStr)
		}

		a, err := resolveValue(val)
		if err != nil {
			return nil, fmt.Errorf("[%s] key %q: %w", section, keyStr, err)
		}
		result[k] = a
	}

	return result, nil
}

// resolveRune converts a TOML key string to a rune
// Accepts single characters and named aliases
func resolveRune(s string) (rune, error) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, nil
	}

	runes := []rune(s)
	if len(runes) == 1 {
		return runes[0], nil
	}

	return 0, fmt.Errorf("invalid rune key: %q (expected single character or alias)", s)
}

func resolveValue(val any) (engine.Action, error) {
	name, ok := val.(string)
	if !ok {
		return engine.Action{}, fmt.Errorf("value must be string, got %T", val)
	}
	return resolveAction(name)
}

// resolveAction converts an action name string to an Action
func resolveAction(name string) (engine.Action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	a, ok := ActionEntry(name)
	if !ok {
		return engine.Action{}, fmt.Errorf("unknown action: %q", name)
	}
	return a, nil
}

// MergeKeyTable returns a new KeyTable with base values overridden by non-nil override maps
// Override entries bound to "none" delete the key from the result
func MergeKeyTable(base, override *KeyTable) *KeyTable {
	result := base.Clone()
	if override == nil {
		return result
	}
	mergeMap(result.Runes, override.Runes)
	mergeMap(result.Keys, override.Keys)
	return result
}

func mergeMap[K comparable](base, override map[K]engine.Action) {
	for k, v := range override {
		if v.Type == engine.ActionNone {
			delete(base, k)
		} else {
			base[k] = v
		}
	}
}
