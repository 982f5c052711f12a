package palette

import (
	"strings"

	"github.com/lixenwraith/parview/object"
)

// DefaultLevels is the number of ID levels a default mask covers
const DefaultLevels = 8

// PartialMask selects which ID levels take part in color equivalence
type PartialMask []bool

// NewPartialMask returns n levels all set to value
func NewPartialMask(n int, value bool) PartialMask {
	m := make(PartialMask, n)
	for i := range m {
		m[i] = value
	}
	return m
}

// Apply projects id onto the active levels
func (m PartialMask) Apply(id object.ID) object.ID {
	return id.Project(m)
}

// String renders one character per level: the 1-based level number mod 10 when active, '_' otherwise
func (m PartialMask) String() string {
	var sb strings.Builder
	sb.Grow(len(m))
	for i, on := range m {
		if on {
			sb.WriteByte(byte('0' + (i+1)%10))
		} else {
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

func (m PartialMask) clone() PartialMask {
	out := make(PartialMask, len(m))
	copy(out, m)
	return out
}
