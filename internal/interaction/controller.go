// internal/interaction/controller.go
package interaction

import (
	"math"
	"sync"
	"time"

	"github.com/xkilldash9x/gazedock/internal/config"
	"github.com/xkilldash9x/gazedock/internal/geometry"
	"github.com/xkilldash9x/gazedock/internal/physics"
	"go.uber.org/zap"
)

// Mode distinguishes automatic repositioning from an active user override.
type Mode string

const (
	ModeAutomatic Mode = "automatic"
	ModeUser      Mode = "user"
)

// State is the gesture state of the controller. Physics animation is not a
// State: it coexists with Idle but is always cancelled before entering
// Dragging or Resizing.
type State int

const (
	StateIdle State = iota
	StateDragging
	StateResizing
)

// Hooks are the controller's upward notifications.
type Hooks struct {
	// OnModeChange fires when control flips between automatic and user.
	OnModeChange func(Mode)
	// OnZoneReport fires with the widget's occupied viewport thirds after a
	// drag release or a commanded move.
	OnZoneReport func(geometry.HorizontalZone, geometry.VerticalZone)
}

// Controller is the gesture state machine. It owns the drag, resize, fling
// and anchor-change transitions, the user-control cooldown, and is the only
// component allowed to start or cancel the physics animator.
type Controller struct {
	mu sync.Mutex

	cfg    config.InteractionConfig
	widget config.WidgetConfig
	engine *physics.Engine
	anim   *physics.Animator
	hooks  Hooks
	logger *zap.Logger
	clock  func() time.Time

	state State
	mode  Mode

	// Drag bookkeeping.
	dragPointerStart geometry.Vector2D
	dragWidgetStart  geometry.Vector2D
	lastPointer      geometry.Vector2D
	lastPointerAt    time.Time
	flingVel         geometry.Vector2D

	// Resize bookkeeping. anchorAbs is the screen position of the corner
	// that must stay visually fixed while the opposite handle moves.
	resizeAnchor Corner
	anchorAbs    geometry.Vector2D

	cooldown *time.Timer
}

// Corner aliases the geometry corner for callers.
type Corner = geometry.Corner

// clampCorrectionEps is the clamp delta at drag release above which the
// engine is started to settle the widget back in visibly.
const clampCorrectionEps = 0.5

// NewController builds the state machine around an engine and its animator.
func NewController(cfg config.InteractionConfig, widget config.WidgetConfig, engine *physics.Engine, anim *physics.Animator, hooks Hooks, logger *zap.Logger) *Controller {
	return &Controller{
		cfg:    cfg,
		widget: widget,
		engine: engine,
		anim:   anim,
		hooks:  hooks,
		logger: logger.Named("interaction"),
		clock:  time.Now,
		state:  StateIdle,
		mode:   ModeAutomatic,
	}
}

// State returns the current gesture state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Mode returns the current control mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// DragStart enters the Dragging state: physics is cancelled, velocity and
// target are cleared, and the user takes control, which disables automatic
// repositioning upstream.
func (c *Controller) DragStart(pointer geometry.Vector2D) {
	c.mu.Lock()
	if c.state == StateResizing {
		c.mu.Unlock()
		return
	}

	c.anim.Cancel()
	c.engine.ClearMotion()

	snap := c.engine.Snapshot()
	c.state = StateDragging
	c.dragPointerStart = pointer
	c.dragWidgetStart = snap.Position
	c.lastPointer = pointer
	c.lastPointerAt = c.clock()
	c.flingVel = geometry.Vector2D{}

	changed := c.mode != ModeUser
	c.mode = ModeUser
	c.stopCooldownLocked()
	onMode := c.hooks.OnModeChange
	c.mu.Unlock()

	if changed && onMode != nil {
		onMode(ModeUser)
	}
}

// DragMove moves the widget by the pointer delta (direct assignment, no
// physics) and updates the fling velocity estimate from the last two pointer
// samples, normalized to the nominal frame interval.
func (c *Controller) DragMove(pointer geometry.Vector2D) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateDragging {
		return
	}

	delta := pointer.Sub(c.dragPointerStart)
	c.engine.SetPosition(c.dragWidgetStart.Add(delta))

	now := c.clock()
	dt := now.Sub(c.lastPointerAt).Seconds()
	if dt > 1e-6 {
		frame := c.cfg.NominalFrame.Seconds()
		inst := pointer.Sub(c.lastPointer).Mul(frame / dt).Mul(c.cfg.FlingDamping)
		c.flingVel = inst
	}
	c.lastPointer = pointer
	c.lastPointerAt = now
}

// DragEnd leaves the Dragging state, reports the widget's occupied zone, and
// hands any residual fling velocity to the physics engine. The re-engage
// cooldown restarts in full.
func (c *Controller) DragEnd() {
	c.mu.Lock()
	if c.state != StateDragging {
		c.mu.Unlock()
		return
	}
	c.state = StateIdle

	snap := c.engine.Snapshot()
	clamped := c.engine.SetPosition(snap.Position)
	correction := clamped.Dist(snap.Position)

	fling := c.flingVel
	c.flingVel = geometry.Vector2D{}

	startPhysics := fling.Mag() > c.cfg.MinFlingVelocity || correction > clampCorrectionEps
	if startPhysics {
		c.engine.SetVelocity(fling)
	}

	hz, vz := c.widgetZoneLocked()
	onZone := c.hooks.OnZoneReport
	c.restartCooldownLocked()
	c.mu.Unlock()

	if onZone != nil {
		onZone(hz, vz)
	}
	if startPhysics {
		c.anim.Start()
	}
}

// ResizeStart enters the Resizing state. handle is the corner being dragged;
// its opposite corner is captured as the visual anchor that must not move.
func (c *Controller) ResizeStart(handle Corner, pointer geometry.Vector2D) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateDragging {
		return
	}

	c.anim.Cancel()
	c.engine.ClearMotion()

	snap := c.engine.Snapshot()
	left, top := geometry.AbsoluteRect(snap.Position, snap.Side, snap.Size, snap.Viewport, c.engine.Padding())

	anchor := handle.Opposite()
	c.resizeAnchor = anchor
	c.anchorAbs = cornerPoint(anchor, left, top, snap.Size)
	c.state = StateResizing
}

// cornerPoint returns the absolute coordinates of the named corner of a
// rectangle at (left, top).
func cornerPoint(corner Corner, left, top float64, size geometry.Size) geometry.Vector2D {
	p := geometry.Vector2D{X: left, Y: top}
	switch corner {
	case geometry.CornerTopRight:
		p.X += size.Width
	case geometry.CornerBottomLeft:
		p.Y += size.Height
	case geometry.CornerBottomRight:
		p.X += size.Width
		p.Y += size.Height
	}
	return p
}

// ResizeMove derives new width and height independently from the pointer's
// displacement to the anchor corner. Each axis clamps to its own range; the
// height range is the width range divided by the aspect ratio, so the ratio
// holds at both extremes. The position is adjusted so the anchor corner's
// screen location is unchanged.
func (c *Controller) ResizeMove(pointer geometry.Vector2D) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateResizing {
		return
	}

	snap := c.engine.Snapshot()

	minW, maxW := c.widget.MinWidth, c.widget.MaxWidth
	minH, maxH := minW/c.widget.AspectRatio, maxW/c.widget.AspectRatio

	newW := clamp(math.Abs(pointer.X-c.anchorAbs.X), minW, maxW)
	newH := clamp(math.Abs(pointer.Y-c.anchorAbs.Y), minH, maxH)
	dW := newW - snap.Size.Width
	dH := newH - snap.Size.Height

	pos := snap.Position

	// Horizontal: only needed when the anchor corner sits on the edge whose
	// screen x depends on the width under the current side convention.
	// Anchored left, the left edge is pinned by x, so a right-side anchor
	// must pull x back as the widget grows; anchored right it is the
	// mirror case.
	anchorOnRight := c.resizeAnchor == geometry.CornerTopRight || c.resizeAnchor == geometry.CornerBottomRight
	if snap.Side == geometry.SideLeft && anchorOnRight {
		pos.X -= dW
	} else if snap.Side == geometry.SideRight && !anchorOnRight {
		pos.X += dW
	}

	// Vertical: the reference is center-relative, so keeping the anchor
	// edge fixed is always half the height delta.
	anchorOnTop := c.resizeAnchor == geometry.CornerTopLeft || c.resizeAnchor == geometry.CornerTopRight
	if anchorOnTop {
		pos.Y += dH / 2
	} else {
		pos.Y -= dH / 2
	}

	c.engine.SetSize(geometry.Size{Width: newW, Height: newH})
	c.engine.SetPosition(pos)
}

// ResizeEnd leaves the Resizing state. No bounds re-clamp is forced here;
// resize-time clamping is trusted.
func (c *Controller) ResizeEnd() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateResizing {
		return
	}
	c.state = StateIdle
}

// CommandMove executes an anchor-side change: the stored position is
// re-projected under the new side's convention (no visual jump), a spring
// target is installed at x=0 with y at the requested vertical slot, and an
// initial velocity toward the target is seeded before the physics run
// starts. Ignored while a gesture is active.
func (c *Controller) CommandMove(side geometry.AnchorSide, slot geometry.VerticalZone) {
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return
	}

	c.anim.Cancel()
	c.engine.ChangeSide(side)

	snap := c.engine.Snapshot()
	target := geometry.Vector2D{
		X: 0,
		Y: geometry.SlotY(slot, snap.Size, snap.Viewport, c.engine.Padding()),
	}
	c.engine.SetTarget(target)

	disp := target.Sub(snap.Position)
	if dist := disp.Mag(); dist > 1e-6 {
		speed := math.Max(c.cfg.SeedVelocityFloor, dist*c.cfg.SeedVelocityScale)
		// Limit by magnitude, not per axis: the kick must point at the
		// target, and the engine's axis cap would skew the direction.
		c.engine.SetVelocity(disp.Normalize().Mul(speed).Limit(c.engine.MaxVelocity()))
	}

	c.logger.Debug("Commanded widget move",
		zap.String("side", string(side)),
		zap.String("slot", string(slot)))

	hz := geometry.HZoneLeft
	if side == geometry.SideRight {
		hz = geometry.HZoneRight
	}
	onZone := c.hooks.OnZoneReport
	c.mu.Unlock()

	if onZone != nil {
		onZone(hz, slot)
	}
	c.anim.Start()
}

// ViewportResized reclamps the position into the recomputed bounds. If the
// widget ended up outside, physics settles it back in; an already-animating
// run keeps its velocity untouched.
func (c *Controller) ViewportResized(vp geometry.Size) {
	c.mu.Lock()
	c.engine.SetViewport(vp)

	if c.state != StateIdle {
		// Mid-gesture the next pointer sample re-clamps naturally.
		c.mu.Unlock()
		return
	}

	snap := c.engine.Snapshot()
	outside := !c.engine.Bounds().Contains(snap.Position)
	c.mu.Unlock()

	if outside {
		c.anim.Start()
	}
}

// WidgetZone classifies the widget's center into viewport thirds, the same
// 3x3 grid used for the cursor.
func (c *Controller) WidgetZone() (geometry.HorizontalZone, geometry.VerticalZone) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.widgetZoneLocked()
}

func (c *Controller) widgetZoneLocked() (geometry.HorizontalZone, geometry.VerticalZone) {
	snap := c.engine.Snapshot()
	left, top := geometry.AbsoluteRect(snap.Position, snap.Side, snap.Size, snap.Viewport, c.engine.Padding())
	center := geometry.Vector2D{X: left + snap.Size.Width/2, Y: top + snap.Size.Height/2}
	return geometry.ZoneOf(center, snap.Viewport)
}

// restartCooldownLocked arms the re-engage timer, replacing any pending one.
// Callers hold c.mu.
func (c *Controller) restartCooldownLocked() {
	c.stopCooldownLocked()
	c.cooldown = time.AfterFunc(c.cfg.ReengageCooldown, c.reengage)
}

func (c *Controller) stopCooldownLocked() {
	if c.cooldown != nil {
		c.cooldown.Stop()
		c.cooldown = nil
	}
}

// reengage restores automatic control after the cooldown elapses untouched.
func (c *Controller) reengage() {
	c.mu.Lock()
	if c.state != StateIdle || c.mode == ModeAutomatic {
		c.mu.Unlock()
		return
	}
	c.mode = ModeAutomatic
	onMode := c.hooks.OnModeChange
	c.mu.Unlock()

	if onMode != nil {
		onMode(ModeAutomatic)
	}
}

// Close cancels the animator and any pending cooldown timer.
func (c *Controller) Close() {
	c.mu.Lock()
	c.stopCooldownLocked()
	c.mu.Unlock()
	c.anim.Cancel()
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
