// internal/physics/engine.go
package physics

import (
	"math"
	"sync"

	"github.com/xkilldash9x/gazedock/internal/config"
	"github.com/xkilldash9x/gazedock/internal/geometry"
)

// Snapshot is the read side of the engine for the render layer and the
// repositioning policy. The engine is the only writer of position state;
// consumers only ever see snapshots.
type Snapshot struct {
	Position geometry.Vector2D
	Velocity geometry.Vector2D
	Size     geometry.Size
	Side     geometry.AnchorSide
	Viewport geometry.Size
	Target   *geometry.Vector2D
}

// Engine integrates the widget's position each animation frame: spring force
// toward an optional target, general friction, a per-axis velocity cap, and
// an inelastic bounce at the bounds rectangle. It is frame-rate dependent;
// the damping constants are tuned for roughly 60 Hz stepping.
type Engine struct {
	mu sync.Mutex

	cfg     config.PhysicsConfig
	padding float64

	pos      geometry.Vector2D
	vel      geometry.Vector2D
	target   *geometry.Vector2D
	side     geometry.AnchorSide
	size     geometry.Size
	viewport geometry.Size
}

// NewEngine creates an engine at the given initial position.
func NewEngine(cfg config.PhysicsConfig, side geometry.AnchorSide, pos geometry.Vector2D, size, viewport geometry.Size, padding float64) *Engine {
	e := &Engine{
		cfg:      cfg,
		padding:  padding,
		side:     side,
		size:     size,
		viewport: viewport,
	}
	e.pos = e.boundsLocked().Clamp(pos)
	return e
}

// boundsLocked recomputes the legal rectangle. Callers hold e.mu.
func (e *Engine) boundsLocked() geometry.Bounds {
	return geometry.BoundsFor(e.side, e.size, e.viewport, e.padding)
}

// Bounds returns the current legal position rectangle. It is derived from
// live viewport and widget size, never cached.
func (e *Engine) Bounds() geometry.Bounds {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.boundsLocked()
}

// Step advances the simulation one frame. It returns false once motion has
// settled: no target pending and both velocity components under the stop
// threshold. The caller (the animator) stops scheduling frames at that point.
func (e *Engine) Step() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	cfg := e.cfg

	// 1. Spring toward the target, if one is set.
	if e.target != nil {
		disp := e.target.Sub(e.pos)
		e.vel = e.vel.Add(disp.Mul(cfg.SpringConstant)).Mul(cfg.SpringDamping)

		if math.Abs(disp.X) < cfg.SnapDistance && math.Abs(disp.Y) < cfg.SnapDistance &&
			math.Abs(e.vel.X) < cfg.SnapVelocity && math.Abs(e.vel.Y) < cfg.SnapVelocity {
			// Terminal condition for spring mode: snap exactly.
			e.pos = *e.target
			e.vel = geometry.Vector2D{}
			e.target = nil
		}
	}

	// 2. Integrate.
	e.pos = e.pos.Add(e.vel)

	// 3. General friction, applied every step regardless of spring mode.
	e.vel = e.vel.Mul(cfg.Friction)

	// 4. Per-axis velocity cap.
	e.vel = e.vel.ClampAxes(cfg.MaxVelocity)

	// 5. Clamp into bounds; each axis pushed back in bounces inelastically.
	b := e.boundsLocked()
	if e.pos.X < b.MinX {
		e.pos.X = b.MinX
		e.vel.X = -e.vel.X * cfg.BounceDamping
	} else if e.pos.X > b.MaxX {
		e.pos.X = b.MaxX
		e.vel.X = -e.vel.X * cfg.BounceDamping
	}
	if e.pos.Y < b.MinY {
		e.pos.Y = b.MinY
		e.vel.Y = -e.vel.Y * cfg.BounceDamping
	} else if e.pos.Y > b.MaxY {
		e.pos.Y = b.MaxY
		e.vel.Y = -e.vel.Y * cfg.BounceDamping
	}

	// 6. Stop condition.
	if e.target == nil &&
		math.Abs(e.vel.X) < cfg.StopThreshold && math.Abs(e.vel.Y) < cfg.StopThreshold {
		e.vel = geometry.Vector2D{}
		return false
	}
	return true
}

// Snapshot returns a copy of the current simulation state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := Snapshot{
		Position: e.pos,
		Velocity: e.vel,
		Size:     e.size,
		Side:     e.side,
		Viewport: e.viewport,
	}
	if e.target != nil {
		t := *e.target
		s.Target = &t
	}
	return s
}

// HasTarget reports whether a spring target is pending, which the policy
// treats as "a move is already in flight".
func (e *Engine) HasTarget() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.target != nil
}

// SetPosition assigns the position directly (drag/resize path), clamped into
// the current bounds.
func (e *Engine) SetPosition(p geometry.Vector2D) geometry.Vector2D {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pos = e.boundsLocked().Clamp(p)
	return e.pos
}

// SetVelocity assigns the velocity, capped per axis.
func (e *Engine) SetVelocity(v geometry.Vector2D) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vel = v.ClampAxes(e.cfg.MaxVelocity)
}

// SetTarget installs a spring target.
func (e *Engine) SetTarget(t geometry.Vector2D) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.target = &t
}

// ClearMotion zeroes velocity and removes any pending target. Used when a
// gesture takes over from the simulation.
func (e *Engine) ClearMotion() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vel = geometry.Vector2D{}
	e.target = nil
}

// ChangeSide switches the anchor convention, re-projecting the stored
// position so the rendered rectangle does not jump.
func (e *Engine) ChangeSide(side geometry.AnchorSide) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if side == e.side {
		return
	}
	e.pos = geometry.Remap(e.pos, e.side, side, e.size, e.viewport, e.padding)
	e.side = side
}

// SetSize updates the widget dimensions. The position is left alone; resize
// gestures adjust it explicitly to keep the anchor corner fixed.
func (e *Engine) SetSize(s geometry.Size) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.size = s
}

// SetViewport updates the live viewport dimensions.
func (e *Engine) SetViewport(vp geometry.Size) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.viewport = vp
}

// Padding returns the fixed edge inset shared with the bounds calculation.
func (e *Engine) Padding() float64 {
	return e.padding
}

// MaxVelocity returns the per-axis speed cap. Callers shaping an initial
// velocity use it to stay under the cap without triggering it.
func (e *Engine) MaxVelocity() float64 {
	return e.cfg.MaxVelocity
}
