// internal/surface/surface.go
package surface

import (
	"context"

	"github.com/xkilldash9x/gazedock/internal/geometry"
)

// Target identifies what the pointer hit when an event was produced.
type Target string

const (
	TargetNone   Target = ""
	TargetWidget Target = "widget"
	TargetHandle Target = "handle"
)

// EventKind discriminates surface events.
type EventKind string

const (
	PointerMove EventKind = "pointermove"
	PointerDown EventKind = "pointerdown"
	PointerUp   EventKind = "pointerup"
	Resize      EventKind = "resize"
)

// Event is a pointer or viewport event originating from the rendering
// surface.
type Event struct {
	Kind EventKind
	// Pos is the pointer position in viewport pixels (pointer events only).
	Pos geometry.Vector2D
	// Target reports whether the pointer is over the widget body or a
	// resize handle.
	Target Target
	// Corner names the resize handle that was hit (pointerdown on a handle).
	Corner geometry.Corner
	// Viewport carries the new size for resize events.
	Viewport geometry.Size
}

// Frame is one rendered widget state: absolute rectangle plus the anchor
// side (the page mirrors the side for styling).
type Frame struct {
	Left   float64             `json:"left"`
	Top    float64             `json:"top"`
	Width  float64             `json:"width"`
	Height float64             `json:"height"`
	Side   geometry.AnchorSide `json:"side"`
}

// Surface is the rendering collaborator: the only consumer of engine output
// and the source of pointer and viewport-resize events.
type Surface interface {
	// Viewport returns the current viewport size.
	Viewport(ctx context.Context) (geometry.Size, error)
	// Apply renders one frame. Called once per simulation step and on
	// gesture updates.
	Apply(ctx context.Context, f Frame) error
	// Events streams pointer and resize events. The channel closes when the
	// surface shuts down.
	Events() <-chan Event
	// Close tears the surface down and releases its resources.
	Close(ctx context.Context) error
}
