// internal/gaze/classifier_test.go
package gaze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xkilldash9x/gazedock/internal/geometry"
)

func TestClassifierZones(t *testing.T) {
	t.Parallel()

	c := NewClassifier(0.05)

	testCases := []struct {
		name string
		x    float64
		want geometry.HorizontalZone
	}{
		{name: "far_left", x: 0.1, want: geometry.HZoneLeft},
		{name: "just_left_of_band", x: 0.4499, want: geometry.HZoneLeft},
		{name: "band_low_edge", x: 0.455, want: geometry.HZoneNone},
		{name: "midpoint", x: 0.5, want: geometry.HZoneNone},
		{name: "band_high_edge", x: 0.545, want: geometry.HZoneNone},
		{name: "just_right_of_band", x: 0.5501, want: geometry.HZoneRight},
		{name: "far_right", x: 0.95, want: geometry.HZoneRight},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, c.Classify(&Point{X: tc.x}), tc.name)
	}
}

func TestClassifierDeadZoneHysteresis(t *testing.T) {
	t.Parallel()

	// A gaze oscillating strictly inside the dead-zone must never produce a
	// definitive side.
	c := NewClassifier(0.05)
	lo, hi := 0.5-0.05+0.001, 0.5+0.05-0.001

	for i := 0; i < 200; i++ {
		x := lo
		if i%2 == 1 {
			x = hi
		}
		assert.Equal(t, geometry.HZoneNone, c.Classify(&Point{X: x}))
	}
	assert.Equal(t, geometry.HZoneNone, c.LastSide())
}

func TestClassifierNilPoint(t *testing.T) {
	t.Parallel()

	c := NewClassifier(0.05)
	assert.Equal(t, geometry.HZoneNone, c.Classify(nil))
}

func TestClassifierStickyLastSide(t *testing.T) {
	t.Parallel()

	c := NewClassifier(0.05)

	c.Classify(&Point{X: 0.2})
	assert.Equal(t, geometry.HZoneLeft, c.LastSide())

	// Ambiguous and no-face frames do not reset the sticky side.
	c.Classify(&Point{X: 0.5})
	c.Classify(nil)
	assert.Equal(t, geometry.HZoneLeft, c.LastSide())

	// Only a new definitive reading overwrites it.
	c.Classify(&Point{X: 0.9})
	assert.Equal(t, geometry.HZoneRight, c.LastSide())
}
