// internal/policy/policy.go
package policy

import (
	"sync"
	"time"

	"github.com/xkilldash9x/gazedock/internal/config"
	"github.com/xkilldash9x/gazedock/internal/geometry"
	"go.uber.org/zap"
)

// Command asks the interaction controller for an anchor-side change.
type Command struct {
	Side geometry.AnchorSide
	Slot geometry.VerticalZone
}

// Sample is one pointer-move observation, already classified into viewport
// thirds, plus whether the pointer currently hovers the widget itself.
type Sample struct {
	H     geometry.HorizontalZone
	V     geometry.VerticalZone
	Hover bool
}

// Policy fuses cursor zone entries and gaze readings into automatic move
// commands. A move triggers only on the edge event where the cursor's
// horizontal zone transitions into the widget's occupied third; lingering
// there produces nothing further.
type Policy struct {
	mu sync.Mutex

	cfg     config.PolicyConfig
	logger  *zap.Logger
	emit    func(Command)
	pending func() bool
	clock   func() time.Time

	enabled        bool
	userControlled bool

	widgetSide geometry.HorizontalZone
	widgetSlot geometry.VerticalZone

	gazeZone  geometry.HorizontalZone
	gazeSince time.Time

	lastCursorH geometry.HorizontalZone
	hasCursor   bool

	debounce *time.Timer
}

// New builds a policy. emit receives debounced commands; pending reports
// whether a move is already in flight (a spring target is set).
func New(cfg config.PolicyConfig, logger *zap.Logger, emit func(Command), pending func() bool) *Policy {
	return &Policy{
		cfg:     cfg,
		logger:  logger.Named("policy"),
		emit:    emit,
		pending: pending,
		clock:   time.Now,
	}
}

// SetEnabled gates the whole policy; it is off until eye tracking is active.
func (p *Policy) SetEnabled(enabled bool) {
	p.mu.Lock()
	p.enabled = enabled
	if !enabled {
		p.stopDebounceLocked()
	}
	p.mu.Unlock()
}

// SetUserControlled mirrors the interaction controller's control mode.
func (p *Policy) SetUserControlled(user bool) {
	p.mu.Lock()
	p.userControlled = user
	p.mu.Unlock()
}

// SetWidgetZone records which viewport thirds the widget occupies, as last
// reported by the interaction controller.
func (p *Policy) SetWidgetZone(h geometry.HorizontalZone, v geometry.VerticalZone) {
	p.mu.Lock()
	p.widgetSide = h
	p.widgetSlot = v
	// The grace timestamp tracks "gaze on the widget's side"; re-evaluate
	// against the new side.
	if p.gazeZone != p.widgetSide || p.widgetSide == geometry.HZoneNone {
		p.gazeSince = time.Time{}
	} else if p.gazeSince.IsZero() {
		p.gazeSince = p.clock()
	}
	p.mu.Unlock()
}

// ObserveGaze ingests the latest gaze classification. The instant gaze first
// lands on the widget's side a timestamp is recorded; the instant it leaves,
// the timestamp is cleared.
func (p *Policy) ObserveGaze(zone geometry.HorizontalZone) {
	p.mu.Lock()
	p.gazeZone = zone
	if zone != geometry.HZoneNone && zone == p.widgetSide {
		if p.gazeSince.IsZero() {
			p.gazeSince = p.clock()
		}
	} else {
		p.gazeSince = time.Time{}
	}
	p.mu.Unlock()
}

// HandlePointer processes one pointer-move sample. On a qualifying
// cursor-entry edge it arms the debounce timer (cancel-and-replace) and,
// once the debounce fires with the suppressions still clear, emits a move
// command: opposite side, vertical slot steered away from the cursor.
func (p *Policy) HandlePointer(s Sample) {
	p.mu.Lock()

	prev, had := p.lastCursorH, p.hasCursor
	p.lastCursorH = s.H
	p.hasCursor = true

	if !p.enabled || !had || p.widgetSide == geometry.HZoneNone {
		p.mu.Unlock()
		return
	}

	// Edge event only: the cursor just entered the widget's third.
	if prev == p.widgetSide || s.H != p.widgetSide {
		p.mu.Unlock()
		return
	}

	if suppressed, reason := p.suppressedLocked(s); suppressed {
		p.logger.Debug("Reposition trigger suppressed", zap.String("reason", reason))
		p.mu.Unlock()
		return
	}

	cmd := Command{
		Side: p.widgetSide.Opposite().Side(),
		Slot: p.slotForLocked(s.V),
	}

	p.stopDebounceLocked()
	p.debounce = time.AfterFunc(p.cfg.Debounce, func() { p.fire(cmd) })
	p.mu.Unlock()
}

// suppressedLocked evaluates the guard conditions. Callers hold p.mu.
func (p *Policy) suppressedLocked(s Sample) (bool, string) {
	if p.userControlled {
		return true, "user-controlled"
	}
	if p.pending != nil && p.pending() {
		return true, "move pending"
	}
	if s.Hover {
		return true, "hovering widget"
	}
	if p.gazeZone != geometry.HZoneNone && p.gazeZone == p.widgetSide {
		// Gazing at the widget's side suppresses the move, unless we are
		// still inside the grace window after gaze first landed there:
		// gaze and cursor often coincide briefly right before the user
		// moves the mouse away.
		if p.gazeSince.IsZero() || p.clock().Sub(p.gazeSince) > p.cfg.GazeGrace {
			return true, "gaze on widget side"
		}
	}
	return false, ""
}

// slotForLocked picks the commanded vertical slot: away from the cursor when
// it has a definitive vertical zone, otherwise toggle the widget's current
// slot (a centered widget goes top). Callers hold p.mu.
func (p *Policy) slotForLocked(cursorV geometry.VerticalZone) geometry.VerticalZone {
	if cursorV == geometry.VZoneTop || cursorV == geometry.VZoneBottom {
		return cursorV.Opposite()
	}
	switch p.widgetSlot {
	case geometry.VZoneTop:
		return geometry.VZoneBottom
	case geometry.VZoneBottom:
		return geometry.VZoneTop
	default:
		return geometry.VZoneTop
	}
}

// fire runs when the debounce elapses. The suppression guards are
// re-checked: conditions may have changed while the timer was pending.
func (p *Policy) fire(cmd Command) {
	p.mu.Lock()
	if !p.enabled || p.userControlled || (p.pending != nil && p.pending()) {
		p.mu.Unlock()
		return
	}
	emit := p.emit
	p.mu.Unlock()

	p.logger.Debug("Emitting reposition command",
		zap.String("side", string(cmd.Side)),
		zap.String("slot", string(cmd.Slot)))
	if emit != nil {
		emit(cmd)
	}
}

func (p *Policy) stopDebounceLocked() {
	if p.debounce != nil {
		p.debounce.Stop()
		p.debounce = nil
	}
}

// Close clears any pending debounce timer.
func (p *Policy) Close() {
	p.mu.Lock()
	p.stopDebounceLocked()
	p.mu.Unlock()
}
