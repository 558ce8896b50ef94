// internal/gaze/synthetic.go
package gaze

import (
	"context"
	"sync"
	"time"

	"github.com/aquilax/go-perlin"
)

// Perlin parameters matching the smooth, low-frequency wander of a resting
// gaze rather than white-noise jitter.
const (
	perlinAlpha = 2.0
	perlinBeta  = 2.0
	perlinDepth = int32(3)

	// wanderFrequency controls how fast the synthetic gaze drifts across
	// the screen, in noise-space units per second.
	wanderFrequency = 0.25
)

// SyntheticDetector fabricates landmark frames whose derived gaze point
// wanders smoothly via Perlin noise. It lets the demo run without a webcam
// while exercising the full landmark -> point -> zone pipeline.
type SyntheticDetector struct {
	mu     sync.Mutex
	noiseX *perlin.Perlin
	noiseY *perlin.Perlin
	start  time.Time
}

// NewSyntheticDetector seeds the wander field. The same seed reproduces the
// same gaze path.
func NewSyntheticDetector(seed int64) *SyntheticDetector {
	return &SyntheticDetector{
		noiseX: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinDepth, seed),
		noiseY: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinDepth, seed+1),
		start:  time.Now(),
	}
}

// Detect returns a landmark set positioned so that GazePoint recovers the
// current wander coordinate.
func (d *SyntheticDetector) Detect(ctx context.Context) (*Landmarks, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	elapsed := time.Since(d.start).Seconds()
	// Perlin output is roughly [-1,1]; fold it into [0,1].
	gx := 0.5 + d.noiseX.Noise1D(elapsed*wanderFrequency)*0.6
	gy := 0.5 + d.noiseY.Noise1D(elapsed*wanderFrequency)*0.4
	d.mu.Unlock()

	if gx < 0 {
		gx = 0
	} else if gx > 1 {
		gx = 1
	}
	if gy < 0 {
		gy = 0
	} else if gy > 1 {
		gy = 1
	}

	return synthLandmarks(gx, gy), nil
}

// synthLandmarks builds eyes with fixed corners and irises interpolated so
// the horizontal iris ratio equals gx on both eyes.
func synthLandmarks(gx, gy float64) *Landmarks {
	const (
		leftOuterX, leftInnerX   = 0.30, 0.42
		rightOuterX, rightInnerX = 0.70, 0.58
		eyeY                     = 0.40
	)
	return &Landmarks{
		LeftEyeOuter:  Keypoint{X: leftOuterX, Y: eyeY},
		LeftEyeInner:  Keypoint{X: leftInnerX, Y: eyeY},
		RightEyeOuter: Keypoint{X: rightOuterX, Y: eyeY},
		RightEyeInner: Keypoint{X: rightInnerX, Y: eyeY},
		LeftIris:      Keypoint{X: leftOuterX + gx*(leftInnerX-leftOuterX), Y: gy},
		RightIris:     Keypoint{X: rightOuterX + gx*(rightInnerX-rightOuterX), Y: gy},
	}
}

// NopCamera satisfies the Camera interface for detectors that need no video
// stream, such as the synthetic one.
type NopCamera struct{}

func (NopCamera) Start(context.Context) error { return nil }
func (NopCamera) Stop(context.Context) error  { return nil }
