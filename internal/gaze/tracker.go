// internal/gaze/tracker.go
package gaze

import (
	"context"
	"fmt"
	"sync"

	"github.com/xkilldash9x/gazedock/internal/geometry"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Camera provides the live video stream feeding the detector.
type Camera interface {
	// Start acquires the stream. A failure here (permission denied, device
	// missing) is surfaced once; tracking stays off.
	Start(ctx context.Context) error
	// Stop releases the stream.
	Stop(ctx context.Context) error
}

// Detector analyzes the current video frame and returns zero-or-one face's
// landmarks. It may return an error or nil landmarks on any frame; callers
// must tolerate per-frame failure without aborting the loop.
type Detector interface {
	Detect(ctx context.Context) (*Landmarks, error)
}

// Tracker runs the self-rescheduling detection loop: camera frame ->
// detector -> classifier -> zone callback. The loop is decoupled from the
// physics frame loop and paced by a rate limiter.
type Tracker struct {
	camera     Camera
	detector   Detector
	classifier *Classifier
	limiter    *rate.Limiter
	logger     *zap.Logger
	onZone     func(geometry.HorizontalZone)

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// NewTracker wires a detection loop. onZone is invoked from the loop
// goroutine once per classified frame.
func NewTracker(camera Camera, detector Detector, classifier *Classifier, sampleRate float64, logger *zap.Logger, onZone func(geometry.HorizontalZone)) *Tracker {
	if sampleRate <= 0 {
		sampleRate = 30
	}
	return &Tracker{
		camera:     camera,
		detector:   detector,
		classifier: classifier,
		limiter:    rate.NewLimiter(rate.Limit(sampleRate), 1),
		logger:     logger.Named("gaze"),
		onZone:     onZone,
	}
}

// Start acquires the camera and launches the detection loop. Camera or model
// initialization failure is returned once and tracking remains off.
func (t *Tracker) Start(ctx context.Context) error {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		return nil
	}
	t.mu.Unlock()

	if err := t.camera.Start(ctx); err != nil {
		return fmt.Errorf("gaze: failed to start camera: %w", err)
	}

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	t.mu.Lock()
	t.cancel = cancel
	t.done = done
	t.running = true
	t.mu.Unlock()

	go t.loop(loopCtx, done)
	t.logger.Info("Gaze tracking started")
	return nil
}

// loop invokes the detector once per allowance and reschedules itself until
// the context is cancelled. Detector failures and not-ready frames skip the
// classification for that frame, implicitly leaving the previous zone in
// place.
func (t *Tracker) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	for {
		if err := t.limiter.Wait(ctx); err != nil {
			return
		}

		lm, err := t.detector.Detect(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			t.logger.Debug("Detector frame failed, skipping", zap.Error(err))
			continue
		}

		var pt *Point
		if lm != nil {
			pt = lm.GazePoint()
		}
		zone := t.classifier.Classify(pt)
		if t.onZone != nil {
			t.onZone(zone)
		}
	}
}

// Stop cancels the detection loop, waits for it to exit, and releases the
// camera. Safe to call when not running.
func (t *Tracker) Stop(ctx context.Context) error {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return nil
	}
	cancel := t.cancel
	done := t.done
	t.cancel = nil
	t.done = nil
	t.running = false
	t.mu.Unlock()

	cancel()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := t.camera.Stop(ctx); err != nil {
		return fmt.Errorf("gaze: failed to release camera: %w", err)
	}
	t.logger.Info("Gaze tracking stopped")
	return nil
}

// Running reports whether the detection loop is active.
func (t *Tracker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}
