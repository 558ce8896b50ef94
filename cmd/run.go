// -- cmd/run.go --
package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/xkilldash9x/gazedock/internal/gaze"
	"github.com/xkilldash9x/gazedock/internal/observability"
	"github.com/xkilldash9x/gazedock/internal/surface"
	"github.com/xkilldash9x/gazedock/internal/widget"
	"go.uber.org/zap"
)

var (
	headless  bool
	synthetic bool
	seed      int64
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Launch the widget demo in a browser window.",
	Long: `Opens a browser tab hosting the floating widget and runs the
position controller against it. Gaze input comes from the synthetic wander
detector unless an external detector is wired in.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := observability.GetLogger()

		// Flag overrides on top of the loaded config.
		if cmd.Flags().Changed("headless") {
			cfg.Surface.Headless = headless
		}
		if cmd.Flags().Changed("synthetic-gaze") {
			cfg.Gaze.Synthetic = synthetic
		}
		if cmd.Flags().Changed("seed") {
			cfg.Gaze.Seed = seed
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		surf, err := surface.NewCDP(ctx, cfg.Surface, logger)
		if err != nil {
			return fmt.Errorf("failed to start browser surface: %w", err)
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = surf.Close(closeCtx)
		}()

		camera, detector, err := buildGazeSource()
		if err != nil {
			return err
		}

		session := widget.NewSession(cfg, surf, camera, detector, logger)
		logger.Info("Running widget session; press Ctrl-C to stop")
		if err := session.Run(ctx); err != nil && ctx.Err() == nil {
			return fmt.Errorf("widget session failed: %w", err)
		}
		return nil
	},
}

// buildGazeSource selects the detector feeding the tracker. Only the
// synthetic source ships with the CLI; a real camera/landmark pipeline plugs
// in through the gaze.Camera and gaze.Detector interfaces.
func buildGazeSource() (gaze.Camera, gaze.Detector, error) {
	if !cfg.Gaze.Synthetic {
		return nil, nil, fmt.Errorf("no built-in camera detector; run with --synthetic-gaze or embed gazedock with your own gaze.Detector")
	}
	s := cfg.Gaze.Seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	observability.GetLogger().Debug("Using synthetic gaze detector", zap.Int64("seed", s))
	return gaze.NopCamera{}, gaze.NewSyntheticDetector(s), nil
}

func init() {
	runCmd.Flags().BoolVar(&headless, "headless", false, "run the browser headless (debugging/CI)")
	runCmd.Flags().BoolVar(&synthetic, "synthetic-gaze", true, "use the Perlin-noise synthetic gaze source")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "seed for the synthetic gaze wander (0 = time-based)")
	rootCmd.AddCommand(runCmd)
}
