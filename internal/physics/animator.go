// internal/physics/animator.go
package physics

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Animator owns the frame scheduling for one engine. At most one integration
// loop runs at a time: Start cancels any pending loop (generation counter)
// before scheduling a fresh one, so restarting an animation mid-flight never
// produces two concurrent step sequences.
type Animator struct {
	mu       sync.Mutex
	interval time.Duration
	step     func() bool
	logger   *zap.Logger

	gen     uint64
	running bool
}

// NewAnimator creates an animator that invokes step once per interval while
// the animation is live. step returns false when motion has settled.
func NewAnimator(interval time.Duration, step func() bool, logger *zap.Logger) *Animator {
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	return &Animator{
		interval: interval,
		step:     step,
		logger:   logger.Named("animator"),
	}
}

// Start begins (or restarts) the frame loop. Any previously scheduled loop
// is invalidated first.
func (a *Animator) Start() {
	a.mu.Lock()
	a.gen++
	gen := a.gen
	a.running = true
	a.mu.Unlock()

	go a.run(gen)
}

// Cancel invalidates any pending frame loop without waiting for it.
func (a *Animator) Cancel() {
	a.mu.Lock()
	a.gen++
	a.running = false
	a.mu.Unlock()
}

// Running reports whether a frame loop is currently live.
func (a *Animator) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running
}

func (a *Animator) run(gen uint64) {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for range ticker.C {
		a.mu.Lock()
		if a.gen != gen {
			// A newer animation (or Cancel) superseded this loop.
			a.mu.Unlock()
			return
		}
		a.mu.Unlock()

		if !a.step() {
			a.mu.Lock()
			if a.gen == gen {
				a.running = false
			}
			a.mu.Unlock()
			return
		}
	}
}
