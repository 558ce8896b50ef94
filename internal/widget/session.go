// internal/widget/session.go
package widget

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xkilldash9x/gazedock/internal/config"
	"github.com/xkilldash9x/gazedock/internal/gaze"
	"github.com/xkilldash9x/gazedock/internal/geometry"
	"github.com/xkilldash9x/gazedock/internal/interaction"
	"github.com/xkilldash9x/gazedock/internal/physics"
	"github.com/xkilldash9x/gazedock/internal/policy"
	"github.com/xkilldash9x/gazedock/internal/surface"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Session owns one widget lifetime: it wires the surface's events into the
// interaction controller, the controller into the physics engine, the gaze
// tracker into the repositioning policy, and renders every simulation frame
// back onto the surface.
type Session struct {
	id       string
	cfg      config.Config
	surf     surface.Surface
	camera   gaze.Camera
	detector gaze.Detector
	logger   *zap.Logger

	// Built in Run once the live viewport is known.
	engine     *physics.Engine
	animator   *physics.Animator
	controller *interaction.Controller
	policy     *policy.Policy
	tracker    *gaze.Tracker

	runCtx context.Context
}

// NewSession prepares a session. camera and detector feed the gaze tracker;
// pass the synthetic detector with a NopCamera for webcam-free demos.
func NewSession(cfg config.Config, surf surface.Surface, camera gaze.Camera, detector gaze.Detector, logger *zap.Logger) *Session {
	id := uuid.NewString()
	return &Session{
		id:       id,
		cfg:      cfg,
		surf:     surf,
		camera:   camera,
		detector: detector,
		logger:   logger.Named("session").With(zap.String("session_id", id)),
	}
}

// Run drives the session until ctx is cancelled. On return, the detection
// loop is stopped, pending timers cleared, and any pending physics frame
// cancelled.
func (s *Session) Run(ctx context.Context) error {
	vp, err := s.surf.Viewport(ctx)
	if err != nil {
		return fmt.Errorf("widget: failed to determine viewport: %w", err)
	}

	size := geometry.Size{Width: s.cfg.Widget.Width, Height: s.cfg.Widget.Height()}
	side := geometry.AnchorSide(s.cfg.Widget.InitialSide)
	slot := geometry.VerticalZone(s.cfg.Widget.InitialSlot)
	pos := geometry.Vector2D{Y: geometry.SlotY(slot, size, vp, s.cfg.Widget.Padding)}

	s.runCtx = ctx
	s.engine = physics.NewEngine(s.cfg.Physics, side, pos, size, vp, s.cfg.Widget.Padding)
	s.animator = physics.NewAnimator(s.cfg.Physics.FrameInterval, s.stepFrame, s.logger)

	s.policy = policy.New(s.cfg.Policy, s.logger, s.onCommand, s.engine.HasTarget)
	s.controller = interaction.NewController(s.cfg.Interaction, s.cfg.Widget, s.engine, s.animator, interaction.Hooks{
		OnModeChange: func(m interaction.Mode) {
			s.policy.SetUserControlled(m == interaction.ModeUser)
		},
		OnZoneReport: s.policy.SetWidgetZone,
	}, s.logger)

	classifier := gaze.NewClassifier(s.cfg.Gaze.DeadZone)
	s.tracker = gaze.NewTracker(s.camera, s.detector, classifier, s.cfg.Gaze.SampleRate, s.logger, s.policy.ObserveGaze)

	hz, vz := s.controller.WidgetZone()
	s.policy.SetWidgetZone(hz, vz)

	if err := s.tracker.Start(ctx); err != nil {
		// Tracking stays off; the widget still drags and flings normally.
		s.logger.Error("Eye tracking unavailable", zap.Error(err))
		s.policy.SetEnabled(false)
	} else {
		s.policy.SetEnabled(true)
	}

	s.render()
	s.logger.Info("Widget session started",
		zap.String("side", string(side)),
		zap.String("slot", string(slot)))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.pump(gctx) })
	runErr := g.Wait()

	s.teardown()
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}

// pump dispatches surface events until the stream closes or the context is
// cancelled.
func (s *Session) pump(ctx context.Context) error {
	events := s.surf.Events()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			s.dispatch(ev)
		}
	}
}

func (s *Session) dispatch(ev surface.Event) {
	switch ev.Kind {
	case surface.PointerMove:
		state := s.controller.State()
		switch state {
		case interaction.StateDragging:
			s.controller.DragMove(ev.Pos)
		case interaction.StateResizing:
			s.controller.ResizeMove(ev.Pos)
		}

		snap := s.engine.Snapshot()
		h, v := geometry.ZoneOf(ev.Pos, snap.Viewport)
		s.policy.HandlePointer(policy.Sample{
			H:     h,
			V:     v,
			Hover: ev.Target != surface.TargetNone,
		})

		if state != interaction.StateIdle {
			// Gesture moves bypass physics, so the frame renders here.
			s.render()
		}

	case surface.PointerDown:
		switch ev.Target {
		case surface.TargetHandle:
			s.controller.ResizeStart(ev.Corner, ev.Pos)
		case surface.TargetWidget:
			s.controller.DragStart(ev.Pos)
		}

	case surface.PointerUp:
		switch s.controller.State() {
		case interaction.StateDragging:
			s.controller.DragEnd()
		case interaction.StateResizing:
			s.controller.ResizeEnd()
		}
		s.render()

	case surface.Resize:
		s.controller.ViewportResized(ev.Viewport)
		s.render()
	}
}

// onCommand hands a policy decision to the controller's anchor-change
// transition.
func (s *Session) onCommand(cmd policy.Command) {
	s.controller.CommandMove(cmd.Side, cmd.Slot)
}

// stepFrame advances the simulation one frame and renders the result. It is
// the animator's step callback.
func (s *Session) stepFrame() bool {
	cont := s.engine.Step()
	s.render()
	return cont
}

// render pushes the current snapshot to the surface. Render failures are
// not fatal; geometry has already been clamped and the next frame retries.
func (s *Session) render() {
	snap := s.engine.Snapshot()
	left, top := geometry.AbsoluteRect(snap.Position, snap.Side, snap.Size, snap.Viewport, s.cfg.Widget.Padding)
	err := s.surf.Apply(s.runCtx, surface.Frame{
		Left:   left,
		Top:    top,
		Width:  snap.Size.Width,
		Height: snap.Size.Height,
		Side:   snap.Side,
	})
	if err != nil && s.runCtx.Err() == nil {
		s.logger.Debug("Frame apply failed", zap.Error(err))
	}
}

// teardown stops every loop and timer the session owns.
func (s *Session) teardown() {
	stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.tracker.Stop(stopCtx); err != nil {
		s.logger.Warn("Gaze tracker did not stop cleanly", zap.Error(err))
	}
	s.policy.Close()
	s.controller.Close()
	s.logger.Info("Widget session stopped")
}
