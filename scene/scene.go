// Package scene keeps a rendering backend in step with a sequence of frames.
//
// The backend only sees the Scene and Node capabilities; Tracker decides
// which nodes to create, mutate and tear down as frames change.
package scene

import (
	"github.com/lixenwraith/parview/object"
	"github.com/lixenwraith/parview/palette"
	"github.com/lixenwraith/parview/vmath"
)

// Scene creates renderable nodes
type Scene interface {
	// Add creates a node for obj's variant, placed and shaped from obj
	Add(obj object.Object, c palette.Color) Node
}

// Node is one renderable instance owned by a Tracker
type Node interface {
	Move(pos vmath.Vec3)
	// Resize sets diameter and, for capsules, the segment length
	Resize(diameter, length float32)
	Orient(q vmath.Quat)
	Recolor(c palette.Color)
	Remove()
}
