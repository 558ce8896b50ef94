// internal/physics/engine_test.go
package physics

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xkilldash9x/gazedock/internal/config"
	"github.com/xkilldash9x/gazedock/internal/geometry"
)

var (
	engWidget   = geometry.Size{Width: 320, Height: 280}
	engViewport = geometry.Size{Width: 1200, Height: 800}
)

const engPadding = 24.0

func newTestEngine(pos geometry.Vector2D) *Engine {
	return NewEngine(config.Default().Physics, geometry.SideLeft, pos, engWidget, engViewport, engPadding)
}

func TestEngineFrictionSettling(t *testing.T) {
	t.Parallel()

	e := newTestEngine(geometry.Vector2D{X: 400, Y: 0})
	e.SetVelocity(geometry.Vector2D{X: 8, Y: 0})

	steps := 0
	for e.Step() {
		steps++
		require.Less(t, steps, 200, "free motion never settled")
	}

	// 8 px/frame under 0.88 friction crosses the 0.05 stop threshold
	// around frame forty.
	assert.Greater(t, steps, 25)
	assert.Less(t, steps, 60)

	snap := e.Snapshot()
	assert.Equal(t, geometry.Vector2D{}, snap.Velocity)
	assert.Greater(t, snap.Position.X, 400.0)
	assert.True(t, e.Bounds().Contains(snap.Position))
}

func TestEngineSpringConvergesAndSnaps(t *testing.T) {
	t.Parallel()

	e := newTestEngine(geometry.Vector2D{X: 400, Y: 100})
	target := geometry.Vector2D{X: 0, Y: -236}
	e.SetTarget(target)
	require.True(t, e.HasTarget())

	settled := false
	for i := 0; i < 1000; i++ {
		if !e.Step() {
			settled = true
			break
		}
	}
	require.True(t, settled, "spring never converged")

	snap := e.Snapshot()
	assert.Equal(t, target, snap.Position, "snap must land exactly on the target")
	assert.Equal(t, geometry.Vector2D{}, snap.Velocity)
	assert.Nil(t, snap.Target)
	assert.False(t, e.HasTarget())
}

func TestEngineBounceAtEdge(t *testing.T) {
	t.Parallel()

	e := newTestEngine(geometry.Vector2D{X: 830, Y: 0})
	e.SetVelocity(geometry.Vector2D{X: 10, Y: 0})

	require.True(t, e.Step())

	snap := e.Snapshot()
	assert.Equal(t, 832.0, snap.Position.X, "clamped to MaxX")
	assert.Negative(t, snap.Velocity.X, "bounce reverses the axis")
	// Friction then bounce damping: 10 * 0.88 * 0.3.
	assert.InDelta(t, -2.64, snap.Velocity.X, 1e-9)
}

func TestEngineVelocityCap(t *testing.T) {
	t.Parallel()

	e := newTestEngine(geometry.Vector2D{X: 400, Y: 0})
	e.SetVelocity(geometry.Vector2D{X: 100, Y: -100})

	snap := e.Snapshot()
	assert.Equal(t, geometry.Vector2D{X: 15, Y: -15}, snap.Velocity)
}

func TestEnginePositionStaysInBoundsUnderRandomImpulses(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	e := newTestEngine(geometry.Vector2D{X: 416, Y: 0})
	b := e.Bounds()

	for i := 0; i < 50; i++ {
		e.SetVelocity(geometry.Vector2D{
			X: (rng.Float64() - 0.5) * 60,
			Y: (rng.Float64() - 0.5) * 60,
		})
		for j := 0; j < 120 && e.Step(); j++ {
			assert.True(t, b.Contains(e.Snapshot().Position), "impulse %d escaped bounds", i)
		}
	}
}

func TestEngineSetPositionClamps(t *testing.T) {
	t.Parallel()

	e := newTestEngine(geometry.Vector2D{})
	got := e.SetPosition(geometry.Vector2D{X: 5000, Y: 5000})
	assert.Equal(t, geometry.Vector2D{X: 832, Y: 236}, got)
}

func TestEngineClearMotion(t *testing.T) {
	t.Parallel()

	e := newTestEngine(geometry.Vector2D{X: 100, Y: 0})
	e.SetVelocity(geometry.Vector2D{X: 5, Y: 5})
	e.SetTarget(geometry.Vector2D{X: 0, Y: 0})

	e.ClearMotion()

	snap := e.Snapshot()
	assert.Equal(t, geometry.Vector2D{}, snap.Velocity)
	assert.Nil(t, snap.Target)
	assert.False(t, e.Step(), "cleared motion settles immediately")
}

func TestEngineChangeSideKeepsScreenPosition(t *testing.T) {
	t.Parallel()

	e := newTestEngine(geometry.Vector2D{X: 300, Y: 50})
	before := e.Snapshot()
	absBefore := geometry.ToAbsoluteX(before.Position.X, before.Side, engWidget, engViewport, engPadding)

	e.ChangeSide(geometry.SideRight)

	after := e.Snapshot()
	assert.Equal(t, geometry.SideRight, after.Side)
	absAfter := geometry.ToAbsoluteX(after.Position.X, after.Side, engWidget, engViewport, engPadding)
	assert.InDelta(t, absBefore, absAfter, 1e-9)

	// Same side is a no-op.
	e.ChangeSide(geometry.SideRight)
	assert.Equal(t, after.Position, e.Snapshot().Position)
}

func TestEngineViewportShrinkThenStepReclamps(t *testing.T) {
	t.Parallel()

	e := newTestEngine(geometry.Vector2D{X: 800, Y: 200})
	e.SetViewport(geometry.Size{Width: 600, Height: 500})

	// One step with no velocity pulls the position back into the new bounds.
	e.Step()
	snap := e.Snapshot()
	assert.True(t, e.Bounds().Contains(snap.Position))
	assert.Equal(t, 232.0, snap.Position.X) // 600 - 320 - 48
}
