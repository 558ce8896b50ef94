// internal/geometry/vector_test.go
package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVectorOps(t *testing.T) {
	t.Parallel()

	a := Vector2D{X: 3, Y: 4}
	b := Vector2D{X: -1, Y: 2}

	assert.Equal(t, Vector2D{X: 2, Y: 6}, a.Add(b))
	assert.Equal(t, Vector2D{X: 4, Y: 2}, a.Sub(b))
	assert.Equal(t, Vector2D{X: 6, Y: 8}, a.Mul(2))
	assert.InDelta(t, 5.0, a.Mag(), 1e-12)
	assert.InDelta(t, 25.0, a.MagSq(), 1e-12)
	assert.InDelta(t, 1.0, a.Normalize().Mag(), 1e-12)
}

func TestVectorNormalizeZero(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Vector2D{}, Vector2D{}.Normalize())
}

func TestVectorLimit(t *testing.T) {
	t.Parallel()

	v := Vector2D{X: 30, Y: 40}
	limited := v.Limit(5)
	assert.InDelta(t, 5.0, limited.Mag(), 1e-9)

	small := Vector2D{X: 1, Y: 1}
	assert.Equal(t, small, small.Limit(5))
}

func TestVectorClampAxes(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		in   Vector2D
		max  float64
		want Vector2D
	}{
		{name: "inside", in: Vector2D{X: 3, Y: -4}, max: 15, want: Vector2D{X: 3, Y: -4}},
		{name: "x_over", in: Vector2D{X: 20, Y: 1}, max: 15, want: Vector2D{X: 15, Y: 1}},
		{name: "y_under", in: Vector2D{X: 0, Y: -99}, max: 15, want: Vector2D{X: 0, Y: -15}},
		{name: "both_over", in: Vector2D{X: 100, Y: -100}, max: 15, want: Vector2D{X: 15, Y: -15}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.in.ClampAxes(tc.max))
		})
	}
}
