package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/parview/engine"
)

// EventSource is the part of tcell.Screen the poller needs
type EventSource interface {
	PollEvent() tcell.Event
	Sync()
}

// Poll forwards bound keys and resizes to out until the screen is finalized,
// then closes out
// Blocks; run it on its own goroutine
func Poll(src EventSource, keys *KeyTable, out chan<- engine.Action) {
	defer close(out)
	for {
		ev := src.PollEvent()
		if ev == nil {
			return
		}
		if a, ok := Translate(ev, keys, src); ok {
			out <- a
		}
	}
}

// Translate maps one event to an action; resizes resync the screen
func Translate(ev tcell.Event, keys *KeyTable, src EventSource) (engine.Action, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return keys.Lookup(ev)
	case *tcell.EventResize:
		if src != nil {
			src.Sync()
		}
		return engine.Action{Type: engine.ActionResize}, true
	}
	return engine.Action{}, false
}
