// internal/gaze/landmarks.go
package gaze

// Keypoint is a single normalized face landmark coordinate.
type Keypoint struct {
	X, Y float64
}

// Landmarks carries the minimum keypoint set a detector must produce:
// both iris centers and the inner/outer corners of both eyes, all in
// normalized video-frame coordinates.
type Landmarks struct {
	LeftIris      Keypoint
	RightIris     Keypoint
	LeftEyeInner  Keypoint
	LeftEyeOuter  Keypoint
	RightEyeInner Keypoint
	RightEyeOuter Keypoint
}

const minEyeSpan = 1e-4

// irisRatio expresses where the iris sits between the two eye corners:
// 0 at the outer corner, 1 at the inner corner.
func irisRatio(iris, outer, inner Keypoint) (float64, bool) {
	span := inner.X - outer.X
	if span > -minEyeSpan && span < minEyeSpan {
		return 0, false
	}
	return (iris.X - outer.X) / span, true
}

// GazePoint derives a normalized gaze coordinate from the landmark set by
// averaging the horizontal iris ratios of both eyes. The vertical component
// is the mean iris y, which is already normalized. Returns nil when the eye
// spans are degenerate (face turned too far, detector glitch).
func (l *Landmarks) GazePoint() *Point {
	if l == nil {
		return nil
	}

	left, okL := irisRatio(l.LeftIris, l.LeftEyeOuter, l.LeftEyeInner)
	right, okR := irisRatio(l.RightIris, l.RightEyeOuter, l.RightEyeInner)
	if !okL || !okR {
		return nil
	}

	x := (left + right) / 2
	if x < 0 {
		x = 0
	} else if x > 1 {
		x = 1
	}
	return &Point{
		X: x,
		Y: (l.LeftIris.Y + l.RightIris.Y) / 2,
	}
}
