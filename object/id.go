package object

import (
	"strconv"
	"strings"
)

// ID names an object across frames, one label per hierarchy level.
//
// A protein, for example, might use ResidueName → ResidueNumber → Element → AtomName.
// Two objects are the same object iff every level matches.
type ID []string

// NewID builds an ID from its levels
func NewID(levels ...string) ID {
	return ID(levels)
}

// Key returns a collision-free string form usable as a map key
// Each level is length-prefixed so labels may contain any byte
func (id ID) Key() string {
	var sb strings.Builder
	for _, s := range id {
		sb.WriteString(strconv.Itoa(len(s)))
		sb.WriteByte(':')
		sb.WriteString(s)
	}
	return sb.String()
}

// Equal compares level by level
func (id ID) Equal(other ID) bool {
	if len(id) != len(other) {
		return false
	}
	for i := range id {
		if id[i] != other[i] {
			return false
		}
	}
	return true
}

// Less orders IDs lexicographically by level, shorter prefix first
func (id ID) Less(other ID) bool {
	for i := 0; i < len(id) && i < len(other); i++ {
		if id[i] != other[i] {
			return id[i] < other[i]
		}
	}
	return len(id) < len(other)
}

// Project keeps the levels whose mask entry is true; levels past the mask are dropped
func (id ID) Project(mask []bool) ID {
	out := make(ID, 0, len(id))
	for i, s := range id {
		if i < len(mask) && mask[i] {
			out = append(out, s)
		}
	}
	return out
}

// Clone returns an independent copy
func (id ID) Clone() ID {
	if id == nil {
		return nil
	}
	out := make(ID, len(id))
	copy(out, id)
	return out
}

func (id ID) String() string {
	return "[" + strings.Join(id, " ") + "]"
}
