// internal/surface/cdp.go
package surface

import (
	"context"
	"fmt"
	"sync"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	jsoniter "github.com/json-iterator/go"
	"github.com/xkilldash9x/gazedock/internal/config"
	"github.com/xkilldash9x/gazedock/internal/geometry"
	"go.uber.org/zap"
)

// bindingName is the page->Go event channel registered on the target.
const bindingName = "gazedockEmit"

// overlayBootstrap builds the demo overlay in-page: the floating widget, its
// four resize handles, and the event plumbing back into Go. The page is
// deliberately minimal; all positioning intelligence lives on the Go side.
const overlayBootstrap = `(() => {
  document.body.style.cssText = 'margin:0;height:100vh;background:#1a1d24;overflow:hidden;';
  const w = document.createElement('div');
  w.id = 'gazedock-widget';
  w.style.cssText = 'position:fixed;background:#2c313c;border-radius:12px;' +
    'box-shadow:0 8px 28px rgba(0,0,0,.45);cursor:grab;touch-action:none;';
  for (const corner of ['top-left','top-right','bottom-left','bottom-right']) {
    const h = document.createElement('div');
    h.className = 'gazedock-handle';
    h.dataset.corner = corner;
    const [v, hz] = corner.split('-');
    h.style.cssText = 'position:absolute;width:14px;height:14px;' +
      v + ':0;' + hz + ':0;cursor:' + (corner === 'top-left' || corner === 'bottom-right' ? 'nwse-resize' : 'nesw-resize') + ';';
    w.appendChild(h);
  }
  document.body.appendChild(w);

  const hit = (el) => {
    if (el && el.closest('.gazedock-handle')) {
      return { target: 'handle', corner: el.closest('.gazedock-handle').dataset.corner };
    }
    if (el && el.closest('#gazedock-widget')) {
      return { target: 'widget', corner: '' };
    }
    return { target: '', corner: '' };
  };
  const emit = (kind, e) => {
    const h = e ? hit(e.target) : { target: '', corner: '' };
    window.` + bindingName + `(JSON.stringify({
      kind: kind,
      x: e ? e.clientX : 0,
      y: e ? e.clientY : 0,
      target: h.target,
      corner: h.corner,
      width: window.innerWidth,
      height: window.innerHeight,
    }));
  };
  document.addEventListener('pointermove', (e) => emit('pointermove', e));
  document.addEventListener('pointerdown', (e) => emit('pointerdown', e));
  document.addEventListener('pointerup', (e) => emit('pointerup', e));
  window.addEventListener('resize', () => emit('resize', null));

  window.__gazedockApply = (f) => {
    w.style.left = f.left + 'px';
    w.style.top = f.top + 'px';
    w.style.width = f.width + 'px';
    w.style.height = f.height + 'px';
  };
})();`

// wireEvent is the JSON shape the overlay page emits through the binding.
type wireEvent struct {
	Kind   string  `json:"kind"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Target string  `json:"target"`
	Corner string  `json:"corner"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// CDP renders the widget into a real browser tab over the Chrome DevTools
// Protocol and streams its pointer/resize events back.
type CDP struct {
	cfg    config.SurfaceConfig
	logger *zap.Logger
	json   jsoniter.API

	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc

	// mu orders event sends against Close: chromedp dispatches binding
	// callbacks from its own goroutine, and cancelling the context does not
	// wait for an in-flight callback.
	mu        sync.Mutex
	closed    bool
	events    chan Event
	closeOnce sync.Once
}

// NewCDP launches a browser, installs the overlay page, and begins streaming
// events.
func NewCDP(parent context.Context, cfg config.SurfaceConfig, logger *zap.Logger) (*CDP, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.WindowSize(cfg.ViewportWidth, cfg.ViewportHeight),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, opts...)
	ctx, cancel := chromedp.NewContext(allocCtx)

	s := &CDP{
		cfg:         cfg,
		logger:      logger.Named("surface"),
		json:        jsoniter.ConfigCompatibleWithStandardLibrary,
		ctx:         ctx,
		cancel:      cancel,
		allocCancel: allocCancel,
		events:      make(chan Event, 64),
	}

	chromedp.ListenTarget(ctx, s.onTargetEvent)

	navCtx, navCancel := context.WithTimeout(ctx, cfg.NavTimeout)
	defer navCancel()

	err := chromedp.Run(navCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			return runtime.AddBinding(bindingName).Do(ctx)
		}),
		chromedp.Evaluate(overlayBootstrap, nil),
	)
	if err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("surface: failed to bootstrap overlay page: %w", err)
	}

	s.logger.Info("Browser surface ready",
		zap.Bool("headless", cfg.Headless),
		zap.Int("width", cfg.ViewportWidth),
		zap.Int("height", cfg.ViewportHeight))
	return s, nil
}

// onTargetEvent translates binding calls from the page into surface events.
func (s *CDP) onTargetEvent(ev interface{}) {
	call, ok := ev.(*runtime.EventBindingCalled)
	if !ok || call.Name != bindingName {
		return
	}

	var w wireEvent
	if err := s.json.UnmarshalFromString(call.Payload, &w); err != nil {
		s.logger.Debug("Dropping malformed surface event", zap.Error(err))
		return
	}

	out := Event{
		Kind:     EventKind(w.Kind),
		Pos:      geometry.Vector2D{X: w.X, Y: w.Y},
		Target:   Target(w.Target),
		Corner:   geometry.Corner(w.Corner),
		Viewport: geometry.Size{Width: w.Width, Height: w.Height},
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.events <- out:
	default:
		// Pointer events arrive at browser rate; dropping under backpressure
		// is preferable to blocking the CDP event dispatcher.
		s.logger.Debug("Surface event queue full, dropping", zap.String("kind", w.Kind))
	}
}

// Viewport queries the page's current inner dimensions.
func (s *CDP) Viewport(ctx context.Context) (geometry.Size, error) {
	var dims [2]float64
	err := chromedp.Run(s.ctx, chromedp.Evaluate(`[window.innerWidth, window.innerHeight]`, &dims))
	if err != nil {
		return geometry.Size{}, fmt.Errorf("surface: failed to read viewport size: %w", err)
	}
	return geometry.Size{Width: dims[0], Height: dims[1]}, nil
}

// Apply pushes one frame to the overlay page.
func (s *CDP) Apply(ctx context.Context, f Frame) error {
	payload, err := s.json.MarshalToString(f)
	if err != nil {
		return fmt.Errorf("surface: failed to encode frame: %w", err)
	}
	err = chromedp.Run(s.ctx, chromedp.Evaluate(fmt.Sprintf("window.__gazedockApply(%s)", payload), nil))
	if err != nil {
		return fmt.Errorf("surface: failed to apply frame: %w", err)
	}
	return nil
}

// Events returns the surface event stream.
func (s *CDP) Events() <-chan Event {
	return s.events
}

// Close shuts the browser down and closes the event stream.
func (s *CDP) Close(ctx context.Context) error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.events)
		s.mu.Unlock()

		s.cancel()
		s.allocCancel()
	})
	return nil
}
