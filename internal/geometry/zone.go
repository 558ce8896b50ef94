// internal/geometry/zone.go
package geometry

// HorizontalZone is a discrete horizontal third of the viewport. The empty
// value means the ambiguous center band (or, for gaze, no reading).
type HorizontalZone string

const (
	HZoneNone  HorizontalZone = ""
	HZoneLeft  HorizontalZone = "left"
	HZoneRight HorizontalZone = "right"
)

// Opposite maps left to right and back; the center zone has no opposite.
func (z HorizontalZone) Opposite() HorizontalZone {
	switch z {
	case HZoneLeft:
		return HZoneRight
	case HZoneRight:
		return HZoneLeft
	default:
		return HZoneNone
	}
}

// Side converts a definitive horizontal zone into an anchor side.
// Only valid for HZoneLeft/HZoneRight.
func (z HorizontalZone) Side() AnchorSide {
	if z == HZoneLeft {
		return SideLeft
	}
	return SideRight
}

// VerticalZone is a discrete vertical third of the viewport.
type VerticalZone string

const (
	VZoneTop    VerticalZone = "top"
	VZoneBottom VerticalZone = "bottom"
	VZoneCenter VerticalZone = "center"
)

// Opposite maps top to bottom and back; center stays center.
func (z VerticalZone) Opposite() VerticalZone {
	switch z {
	case VZoneTop:
		return VZoneBottom
	case VZoneBottom:
		return VZoneTop
	default:
		return VZoneCenter
	}
}

// ZoneOf classifies a viewport-pixel point into horizontal and vertical
// thirds. It is a pure function of the point and the viewport size: no
// hysteresis, no memory.
func ZoneOf(p Vector2D, viewport Size) (HorizontalZone, VerticalZone) {
	h := HZoneNone
	switch {
	case p.X < viewport.Width/3:
		h = HZoneLeft
	case p.X > viewport.Width*2/3:
		h = HZoneRight
	}

	v := VZoneCenter
	switch {
	case p.Y < viewport.Height/3:
		v = VZoneTop
	case p.Y > viewport.Height*2/3:
		v = VZoneBottom
	}
	return h, v
}
