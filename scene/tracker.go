package scene

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/parview/object"
	"github.com/lixenwraith/parview/palette"
)

var (
	// ErrDuplicateID rejects a frame listing the same ID twice
	ErrDuplicateID = errors.New("duplicate object id in frame")
	// ErrEmptyID rejects an object without labels
	ErrEmptyID = errors.New("object has empty id")
)

type entry struct {
	obj  object.Object
	node Node
}

// step is one object of an incoming frame with its precomputed delta
type step struct {
	key   string
	obj   object.Object
	delta object.Delta
	prev  *entry
}

// Tracker maps object IDs to live nodes, reconciling them against each frame
type Tracker struct {
	scene Scene
	live  map[string]*entry
}

// NewTracker creates an empty tracker drawing into s
func NewTracker(s Scene) *Tracker {
	return &Tracker{
		scene: s,
		live:  make(map[string]*entry),
	}
}

// Update makes the live set match frame
// Objects are processed in frame order: persisting ones get only the
// mutations their delta calls for, new ones are added, and IDs absent from
// frame are removed. Every node is recolored from p.
// A frame that fails validation (duplicate or empty IDs, non-uniform
// capsule stretch) is rejected before any node is touched.
func (t *Tracker) Update(frame object.Frame, p *palette.Palette) error {
	steps, err := t.plan(frame)
	if err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(steps))
	for _, s := range steps {
		seen[s.key] = struct{}{}
		c := p.Color(s.obj.ID)

		if s.prev == nil {
			obj := s.obj.Clone()
			t.live[s.key] = &entry{obj: obj, node: t.scene.Add(obj, c)}
			continue
		}

		e := s.prev
		if s.delta.Replaced {
			e.node.Remove()
			e.obj = s.obj.Clone()
			e.node = t.scene.Add(e.obj, c)
			continue
		}

		apply(e.node, s.delta, s.obj)
		e.node.Recolor(c)
		e.obj = s.obj.Clone()
	}

	for key, e := range t.live {
		if _, ok := seen[key]; !ok {
			e.node.Remove()
			delete(t.live, key)
		}
	}
	return nil
}

// Validate checks frame the way Update would on an empty tracker
func Validate(frame object.Frame) error {
	_, err := (&Tracker{}).plan(frame)
	return err
}

// plan validates frame and diffs persisting objects without mutating anything
func (t *Tracker) plan(frame object.Frame) ([]step, error) {
	steps := make([]step, 0, len(frame.Objects))
	keys := make(map[string]struct{}, len(frame.Objects))

	for i, obj := range frame.Objects {
		if len(obj.ID) == 0 {
			return nil, fmt.Errorf("%w: object %d (%s)", ErrEmptyID, i, obj.Kind)
		}
		key := obj.ID.Key()
		if _, dup := keys[key]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, obj.ID)
		}
		keys[key] = struct{}{}

		s := step{key: key, obj: obj}
		if e, ok := t.live[key]; ok {
			d, err := object.Diff(e.obj, obj)
			if err != nil {
				return nil, err
			}
			s.delta = d
			s.prev = e
		}
		steps = append(steps, s)
	}
	return steps, nil
}

func apply(n Node, d object.Delta, obj object.Object) {
	if d.Moved {
		n.Move(obj.Position)
	}
	if d.Resized || d.Stretched {
		n.Resize(obj.Diameter, obj.Length())
	}
	if d.Rotated {
		n.Orient(obj.Orientation())
	}
}

// Len returns the number of live objects
func (t *Tracker) Len() int {
	return len(t.live)
}

// Has reports whether id is live
func (t *Tracker) Has(id object.ID) bool {
	_, ok := t.live[id.Key()]
	return ok
}

// Object returns the last snapshot stored for id
func (t *Tracker) Object(id object.ID) (object.Object, bool) {
	e, ok := t.live[id.Key()]
	if !ok {
		return object.Object{}, false
	}
	return e.obj.Clone(), true
}

// Clear removes every node
func (t *Tracker) Clear() {
	for key, e := range t.live {
		e.node.Remove()
		delete(t.live, key)
	}
}
