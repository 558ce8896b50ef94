// internal/gaze/classifier.go
package gaze

import (
	"sync"

	"github.com/xkilldash9x/gazedock/internal/geometry"
)

// Point is a normalized gaze coordinate in [0,1]x[0,1], derived from eye
// landmarks. A nil *Point means no face was detected for the frame.
type Point struct {
	X, Y float64
}

// Classifier turns per-frame gaze points into a discrete horizontal zone
// with a dead-zone around the midpoint. The dead-zone prevents rapid
// left/right toggling while the gaze hovers near center.
type Classifier struct {
	mu       sync.Mutex
	deadZone float64
	lastSide geometry.HorizontalZone
}

// NewClassifier creates a classifier with the given dead-zone half-width
// around gaze x 0.5.
func NewClassifier(deadZone float64) *Classifier {
	return &Classifier{deadZone: deadZone}
}

// Classify maps a gaze point to left/right, or the empty zone when the point
// is nil (no face) or inside the dead-zone. Definitive readings update the
// sticky last side.
func (c *Classifier) Classify(pt *Point) geometry.HorizontalZone {
	if pt == nil {
		return geometry.HZoneNone
	}

	zone := geometry.HZoneNone
	switch {
	case pt.X < 0.5-c.deadZone:
		zone = geometry.HZoneLeft
	case pt.X > 0.5+c.deadZone:
		zone = geometry.HZoneRight
	}

	if zone != geometry.HZoneNone {
		c.mu.Lock()
		c.lastSide = zone
		c.mu.Unlock()
	}
	return zone
}

// LastSide returns the most recent definitive classification. It never
// resets to the empty zone; only a new definitive reading overwrites it.
func (c *Classifier) LastSide() geometry.HorizontalZone {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSide
}
