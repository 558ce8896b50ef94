// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()
	assert.NoError(t, Default().Validate())
}

func TestWidgetHeight(t *testing.T) {
	t.Parallel()

	w := Default().Widget
	assert.InDelta(t, 280.0, w.Height(), 1e-9)

	// A zero ratio degrades to square rather than dividing by zero.
	w.AspectRatio = 0
	assert.Equal(t, w.Width, w.Height())
}

func TestValidateRejections(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "friction_too_high",
			mutate:  func(c *Config) { c.Physics.Friction = 1.0 },
			wantErr: "physics.friction",
		},
		{
			name:    "spring_damping_zero",
			mutate:  func(c *Config) { c.Physics.SpringDamping = 0 },
			wantErr: "physics.spring_damping",
		},
		{
			name:    "bounce_damping_negative",
			mutate:  func(c *Config) { c.Physics.BounceDamping = -0.1 },
			wantErr: "physics.bounce_damping",
		},
		{
			name:    "inverted_width_range",
			mutate:  func(c *Config) { c.Widget.MaxWidth = c.Widget.MinWidth - 1 },
			wantErr: "width range",
		},
		{
			name:    "zero_aspect_ratio",
			mutate:  func(c *Config) { c.Widget.AspectRatio = 0 },
			wantErr: "aspect_ratio",
		},
		{
			name:    "dead_zone_half_viewport",
			mutate:  func(c *Config) { c.Gaze.DeadZone = 0.5 },
			wantErr: "dead_zone",
		},
		{
			name:    "bad_initial_side",
			mutate:  func(c *Config) { c.Widget.InitialSide = "top" },
			wantErr: "initial_side",
		},
		{
			name:    "bad_initial_slot",
			mutate:  func(c *Config) { c.Widget.InitialSlot = "middle" },
			wantErr: "initial_slot",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
widget:
  width: 400
  initial_side: left
physics:
  friction: 0.9
policy:
  debounce: 250ms
interaction:
  reengage_cooldown: 5s
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	// Overridden keys.
	assert.Equal(t, 400.0, cfg.Widget.Width)
	assert.Equal(t, "left", cfg.Widget.InitialSide)
	assert.Equal(t, 0.9, cfg.Physics.Friction)
	assert.Equal(t, 250*time.Millisecond, cfg.Policy.Debounce)
	assert.Equal(t, 5*time.Second, cfg.Interaction.ReengageCooldown)

	// Everything else keeps defaults.
	assert.Equal(t, 24.0, cfg.Widget.Padding)
	assert.Equal(t, 0.3, cfg.Physics.BounceDamping)
	assert.Equal(t, time.Second, cfg.Policy.GazeGrace)
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("physics:\n  friction: 2.0\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "physics.friction")
}

func TestLoadRejectsMalformedDiscoveredFile(t *testing.T) {
	// A broken ./config.yaml must surface an error instead of silently
	// falling back to defaults. No t.Parallel: t.Chdir forbids it.
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("widget: [unclosed\n"), 0o644))
	t.Chdir(dir)

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
