// internal/geometry/bounds.go
package geometry

import "math"

// AnchorSide identifies which viewport edge position.x is relative to.
type AnchorSide string

const (
	SideLeft  AnchorSide = "left"
	SideRight AnchorSide = "right"
)

// Opposite returns the other anchor side.
func (s AnchorSide) Opposite() AnchorSide {
	if s == SideLeft {
		return SideRight
	}
	return SideLeft
}

// Corner identifies a corner of the widget rectangle.
type Corner string

const (
	CornerTopLeft     Corner = "top-left"
	CornerTopRight    Corner = "top-right"
	CornerBottomLeft  Corner = "bottom-left"
	CornerBottomRight Corner = "bottom-right"
)

// Opposite returns the diagonally opposite corner.
func (c Corner) Opposite() Corner {
	switch c {
	case CornerTopLeft:
		return CornerBottomRight
	case CornerTopRight:
		return CornerBottomLeft
	case CornerBottomLeft:
		return CornerTopRight
	default:
		return CornerTopLeft
	}
}

// Size holds widget or viewport dimensions in pixels.
type Size struct {
	Width, Height float64
}

// Bounds is the legal position rectangle for the widget's anchor-relative
// offset. It is derived state: recompute it whenever the viewport or the
// widget size may have changed.
type Bounds struct {
	MinX, MaxX, MinY, MaxY float64
}

// Contains reports whether p lies inside the bounds (inclusive).
func (b Bounds) Contains(p Vector2D) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Clamp returns p with each axis clamped into the bounds.
func (b Bounds) Clamp(p Vector2D) Vector2D {
	return Vector2D{
		X: math.Max(b.MinX, math.Min(b.MaxX, p.X)),
		Y: math.Max(b.MinY, math.Min(b.MaxY, p.Y)),
	}
}

// BoundsFor computes the legal position rectangle for a widget of the given
// size, anchored to the given side, inside the viewport with a fixed padding
// inset from all four edges.
//
// The x convention depends on the anchor side: anchored left, x=0 sits flush
// against the left padding and grows rightward; anchored right, x=0 sits
// flush against the right padding and negative x moves leftward. The y
// convention is always relative to the viewport's vertical center.
func BoundsFor(side AnchorSide, widget, viewport Size, padding float64) Bounds {
	travel := viewport.Width - widget.Width - 2*padding
	if travel < 0 {
		// Widget wider than the padded viewport; the x axis collapses.
		travel = 0
	}

	var b Bounds
	if side == SideLeft {
		b.MinX, b.MaxX = 0, travel
	} else {
		b.MinX, b.MaxX = -travel, 0
	}

	b.MinY = padding + widget.Height/2 - viewport.Height/2
	b.MaxY = viewport.Height/2 - padding - widget.Height/2
	if b.MinY > b.MaxY {
		mid := (b.MinY + b.MaxY) / 2
		b.MinY, b.MaxY = mid, mid
	}
	return b
}

// ToAbsoluteX converts an anchor-relative x offset into the absolute screen
// x of the widget's left edge.
func ToAbsoluteX(x float64, side AnchorSide, widget, viewport Size, padding float64) float64 {
	if side == SideLeft {
		return padding + x
	}
	return viewport.Width - padding - widget.Width + x
}

// FromAbsoluteX converts the absolute screen x of the widget's left edge
// into the anchor-relative offset under the given side's convention.
func FromAbsoluteX(abs float64, side AnchorSide, widget, viewport Size, padding float64) float64 {
	if side == SideLeft {
		return abs - padding
	}
	return abs - (viewport.Width - padding - widget.Width)
}

// Remap re-projects a position from one anchor side's convention to
// another's so the rendered rectangle does not move. Remapping to the same
// side is the identity.
func Remap(pos Vector2D, from, to AnchorSide, widget, viewport Size, padding float64) Vector2D {
	if from == to {
		return pos
	}
	abs := ToAbsoluteX(pos.X, from, widget, viewport, padding)
	return Vector2D{X: FromAbsoluteX(abs, to, widget, viewport, padding), Y: pos.Y}
}

// SlotY returns the center-relative y offset placing the widget at the given
// vertical slot, inset by the same padding BoundsFor uses.
func SlotY(slot VerticalZone, widget, viewport Size, padding float64) float64 {
	b := BoundsFor(SideLeft, widget, viewport, padding)
	switch slot {
	case VZoneTop:
		return b.MinY
	case VZoneBottom:
		return b.MaxY
	default:
		return 0
	}
}

// AbsoluteRect returns the widget's rendered rectangle (left, top) for the
// given anchor-relative position.
func AbsoluteRect(pos Vector2D, side AnchorSide, widget, viewport Size, padding float64) (left, top float64) {
	left = ToAbsoluteX(pos.X, side, widget, viewport, padding)
	top = viewport.Height/2 + pos.Y - widget.Height/2
	return left, top
}
