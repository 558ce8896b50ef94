// internal/geometry/bounds_test.go
package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	testWidget   = Size{Width: 320, Height: 280}
	testViewport = Size{Width: 1200, Height: 800}
)

const testPadding = 24.0

func TestBoundsForLeftAnchor(t *testing.T) {
	t.Parallel()

	b := BoundsFor(SideLeft, testWidget, testViewport, testPadding)

	assert.Equal(t, 0.0, b.MinX)
	assert.Equal(t, 832.0, b.MaxX) // 1200 - 320 - 2*24
	assert.Equal(t, -236.0, b.MinY)
	assert.Equal(t, 236.0, b.MaxY)
}

func TestBoundsForRightAnchor(t *testing.T) {
	t.Parallel()

	b := BoundsFor(SideRight, testWidget, testViewport, testPadding)

	assert.Equal(t, -832.0, b.MinX)
	assert.Equal(t, 0.0, b.MaxX)
	assert.Equal(t, -236.0, b.MinY)
	assert.Equal(t, 236.0, b.MaxY)
}

func TestBoundsCollapseWhenWidgetTooLarge(t *testing.T) {
	t.Parallel()

	// Widget wider and taller than the padded viewport: both axes collapse
	// rather than inverting.
	b := BoundsFor(SideLeft, Size{Width: 500, Height: 500}, Size{Width: 400, Height: 400}, testPadding)

	assert.Equal(t, b.MinX, b.MaxX)
	assert.Equal(t, b.MinY, b.MaxY)
	assert.True(t, b.Contains(b.Clamp(Vector2D{X: 999, Y: -999})))
}

func TestBoundsClampAndContains(t *testing.T) {
	t.Parallel()

	b := BoundsFor(SideLeft, testWidget, testViewport, testPadding)

	inside := Vector2D{X: 400, Y: 100}
	assert.True(t, b.Contains(inside))
	assert.Equal(t, inside, b.Clamp(inside))

	outside := Vector2D{X: 900, Y: -300}
	clamped := b.Clamp(outside)
	assert.False(t, b.Contains(outside))
	assert.True(t, b.Contains(clamped))
	assert.Equal(t, Vector2D{X: 832, Y: -236}, clamped)
}

func TestRemapRoundTrip(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		pos  Vector2D
	}{
		{name: "origin", pos: Vector2D{}},
		{name: "mid_travel", pos: Vector2D{X: 400, Y: -120}},
		{name: "max_travel", pos: Vector2D{X: 832, Y: 236}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			there := Remap(tc.pos, SideLeft, SideRight, testWidget, testViewport, testPadding)
			back := Remap(there, SideRight, SideLeft, testWidget, testViewport, testPadding)

			assert.InDelta(t, tc.pos.X, back.X, 1e-9)
			assert.InDelta(t, tc.pos.Y, back.Y, 1e-9)
		})
	}
}

func TestRemapPreservesScreenPosition(t *testing.T) {
	t.Parallel()

	pos := Vector2D{X: 300, Y: 50}
	absBefore := ToAbsoluteX(pos.X, SideLeft, testWidget, testViewport, testPadding)

	remapped := Remap(pos, SideLeft, SideRight, testWidget, testViewport, testPadding)
	absAfter := ToAbsoluteX(remapped.X, SideRight, testWidget, testViewport, testPadding)

	assert.InDelta(t, absBefore, absAfter, 1e-9)
	assert.Equal(t, pos.Y, remapped.Y)
}

func TestRemapSameSideIsIdentity(t *testing.T) {
	t.Parallel()

	pos := Vector2D{X: 123, Y: -45}
	assert.Equal(t, pos, Remap(pos, SideLeft, SideLeft, testWidget, testViewport, testPadding))
}

func TestSlotY(t *testing.T) {
	t.Parallel()

	assert.Equal(t, -236.0, SlotY(VZoneTop, testWidget, testViewport, testPadding))
	assert.Equal(t, 236.0, SlotY(VZoneBottom, testWidget, testViewport, testPadding))
	assert.Equal(t, 0.0, SlotY(VZoneCenter, testWidget, testViewport, testPadding))
}

func TestAbsoluteRect(t *testing.T) {
	t.Parallel()

	left, top := AbsoluteRect(Vector2D{X: 100, Y: 0}, SideLeft, testWidget, testViewport, testPadding)
	assert.Equal(t, 124.0, left) // padding + x
	assert.Equal(t, 260.0, top)  // 400 + 0 - 140

	left, top = AbsoluteRect(Vector2D{X: 0, Y: 236}, SideRight, testWidget, testViewport, testPadding)
	assert.Equal(t, 856.0, left) // 1200 - 24 - 320
	assert.Equal(t, 496.0, top)  // 400 + 236 - 140
}

func TestCornerOpposite(t *testing.T) {
	t.Parallel()

	assert.Equal(t, CornerBottomRight, CornerTopLeft.Opposite())
	assert.Equal(t, CornerTopLeft, CornerBottomRight.Opposite())
	assert.Equal(t, CornerBottomLeft, CornerTopRight.Opposite())
	assert.Equal(t, CornerTopRight, CornerBottomLeft.Opposite())
}
