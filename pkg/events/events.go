// Package events defines the callback boundary between the interaction engine
// and its host application.
//
// The engine never mutates a diagram on its own. When a gesture commits, it
// calls the matching [Host] method and the host decides what to do, usually by
// calling a pkg/model mutation. All callbacks are synchronous and their return
// values, if any, are ignored.
//
// # Adapters
//
//   - [Noop]: embed it to implement only the callbacks you care about
//   - [Funcs]: optional function fields, convenient in tests and small hosts
//   - [Multi]: fans one call out to several hosts in order
//   - [Recorder]: records every call for later inspection
package events

import "github.com/matzehuels/graphedit/pkg/graph"

// PointerEvent is a raw pointer sample as delivered by the input layer.
//
// Buttons is a bitmask of pressed buttons; zero means no button is held.
type PointerEvent struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Buttons int     `json:"buttons"`
	Shift   bool    `json:"shift,omitempty"`
	Ctrl    bool    `json:"ctrl,omitempty"`
	Alt     bool    `json:"alt,omitempty"`
	Meta    bool    `json:"meta,omitempty"`
}

// Point returns the event position.
func (e PointerEvent) Point() graph.Point { return graph.Point{X: e.X, Y: e.Y} }

// Pressed reports whether any button is held.
func (e PointerEvent) Pressed() bool { return e.Buttons != 0 }

// Button masks for PointerEvent.Buttons.
const (
	ButtonPrimary   = 1
	ButtonSecondary = 2
	ButtonMiddle    = 4
)

// DragEvent is a drag sample in canvas coordinates together with the pointer
// event that produced it.
type DragEvent struct {
	X      float64      `json:"x"`
	Y      float64      `json:"y"`
	Source PointerEvent `json:"source"`
}

// Point returns the drag position.
func (e DragEvent) Point() graph.Point { return graph.Point{X: e.X, Y: e.Y} }

// DragFrom wraps a pointer event as a drag event at the same position.
func DragFrom(ev PointerEvent) DragEvent {
	return DragEvent{X: ev.X, Y: ev.Y, Source: ev}
}
