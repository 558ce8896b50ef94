// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the entire application configuration.
type Config struct {
	Logger      LoggerConfig      `mapstructure:"logger" yaml:"logger"`
	Widget      WidgetConfig      `mapstructure:"widget" yaml:"widget"`
	Physics     PhysicsConfig     `mapstructure:"physics" yaml:"physics"`
	Interaction InteractionConfig `mapstructure:"interaction" yaml:"interaction"`
	Policy      PolicyConfig      `mapstructure:"policy" yaml:"policy"`
	Gaze        GazeConfig        `mapstructure:"gaze" yaml:"gaze"`
	Surface     SurfaceConfig     `mapstructure:"surface" yaml:"surface"`
}

// LoggerConfig controls the global zap logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// WidgetConfig describes the widget's initial geometry and sizing limits.
// Width and height are linked through AspectRatio; the min/max height range
// is derived from the width range so resizing preserves the ratio at the
// extremes.
type WidgetConfig struct {
	Width       float64 `mapstructure:"width" yaml:"width"`
	AspectRatio float64 `mapstructure:"aspect_ratio" yaml:"aspect_ratio"`
	MinWidth    float64 `mapstructure:"min_width" yaml:"min_width"`
	MaxWidth    float64 `mapstructure:"max_width" yaml:"max_width"`
	Padding     float64 `mapstructure:"padding" yaml:"padding"`
	InitialSide string  `mapstructure:"initial_side" yaml:"initial_side"`
	InitialSlot string  `mapstructure:"initial_slot" yaml:"initial_slot"`
}

// Height returns the aspect-locked height for the configured width.
func (w WidgetConfig) Height() float64 {
	if w.AspectRatio <= 0 {
		return w.Width
	}
	return w.Width / w.AspectRatio
}

// PhysicsConfig holds the tuning constants for the position simulation.
// Values are expressed per animation frame and are tuned empirically for a
// ~60 Hz step rate.
type PhysicsConfig struct {
	Friction       float64       `mapstructure:"friction" yaml:"friction"`
	BounceDamping  float64       `mapstructure:"bounce_damping" yaml:"bounce_damping"`
	SpringConstant float64       `mapstructure:"spring_constant" yaml:"spring_constant"`
	SpringDamping  float64       `mapstructure:"spring_damping" yaml:"spring_damping"`
	MaxVelocity    float64       `mapstructure:"max_velocity" yaml:"max_velocity"`
	StopThreshold  float64       `mapstructure:"stop_threshold" yaml:"stop_threshold"`
	SnapDistance   float64       `mapstructure:"snap_distance" yaml:"snap_distance"`
	SnapVelocity   float64       `mapstructure:"snap_velocity" yaml:"snap_velocity"`
	FrameInterval  time.Duration `mapstructure:"frame_interval" yaml:"frame_interval"`
}

// InteractionConfig tunes the drag/resize/fling state machine.
type InteractionConfig struct {
	// FlingDamping scales the instantaneous pointer velocity captured at
	// drag release before it seeds the physics run.
	FlingDamping float64 `mapstructure:"fling_damping" yaml:"fling_damping"`
	// NominalFrame normalizes pointer-sample deltas to per-frame units.
	NominalFrame time.Duration `mapstructure:"nominal_frame" yaml:"nominal_frame"`
	// ReengageCooldown is how long after a drag release automatic control
	// resumes. The timer restarts in full on every release; see DESIGN.md
	// for the cooldown-vs-decay decision.
	ReengageCooldown time.Duration `mapstructure:"reengage_cooldown" yaml:"reengage_cooldown"`
	// MinFlingVelocity is the per-frame speed below which a release does not
	// start a physics run.
	MinFlingVelocity float64 `mapstructure:"min_fling_velocity" yaml:"min_fling_velocity"`
	// SeedVelocityScale and SeedVelocityFloor shape the initial velocity of
	// an anchor-change animation: magnitude = max(floor, distance*scale).
	SeedVelocityScale float64 `mapstructure:"seed_velocity_scale" yaml:"seed_velocity_scale"`
	SeedVelocityFloor float64 `mapstructure:"seed_velocity_floor" yaml:"seed_velocity_floor"`
}

// PolicyConfig tunes the automatic repositioning policy.
type PolicyConfig struct {
	Debounce  time.Duration `mapstructure:"debounce" yaml:"debounce"`
	GazeGrace time.Duration `mapstructure:"gaze_grace" yaml:"gaze_grace"`
}

// GazeConfig tunes gaze classification and the detection loop.
type GazeConfig struct {
	// DeadZone is the half-width of the ambiguous band around gaze x 0.5.
	DeadZone float64 `mapstructure:"dead_zone" yaml:"dead_zone"`
	// SampleRate is the target detector invocation rate in Hz.
	SampleRate float64 `mapstructure:"sample_rate" yaml:"sample_rate"`
	// Synthetic selects the Perlin-noise demo detector instead of a real one.
	Synthetic bool  `mapstructure:"synthetic" yaml:"synthetic"`
	Seed      int64 `mapstructure:"seed" yaml:"seed"`
}

// SurfaceConfig controls the browser rendering surface.
type SurfaceConfig struct {
	Headless       bool          `mapstructure:"headless" yaml:"headless"`
	ViewportWidth  int           `mapstructure:"viewport_width" yaml:"viewport_width"`
	ViewportHeight int           `mapstructure:"viewport_height" yaml:"viewport_height"`
	NavTimeout     time.Duration `mapstructure:"nav_timeout" yaml:"nav_timeout"`
}

// Default returns the tuned default configuration.
func Default() Config {
	return Config{
		Logger: LoggerConfig{
			Level:       "info",
			Format:      "console",
			ServiceName: "gazedock",
			MaxSize:     50,
			MaxBackups:  3,
			MaxAge:      14,
		},
		Widget: WidgetConfig{
			Width:       320,
			AspectRatio: 320.0 / 280.0,
			MinWidth:    180,
			MaxWidth:    560,
			Padding:     24,
			InitialSide: "right",
			InitialSlot: "bottom",
		},
		Physics: PhysicsConfig{
			Friction:       0.88,
			BounceDamping:  0.3,
			SpringConstant: 0.08,
			SpringDamping:  0.85,
			MaxVelocity:    15,
			StopThreshold:  0.05,
			SnapDistance:   1.0,
			SnapVelocity:   0.3,
			FrameInterval:  16 * time.Millisecond,
		},
		Interaction: InteractionConfig{
			FlingDamping:      0.25,
			NominalFrame:      16 * time.Millisecond,
			ReengageCooldown:  10 * time.Second,
			MinFlingVelocity:  0.5,
			SeedVelocityScale: 0.1,
			SeedVelocityFloor: 2.0,
		},
		Policy: PolicyConfig{
			Debounce:  150 * time.Millisecond,
			GazeGrace: time.Second,
		},
		Gaze: GazeConfig{
			DeadZone:   0.05,
			SampleRate: 30,
			Synthetic:  true,
		},
		Surface: SurfaceConfig{
			Headless:       false,
			ViewportWidth:  1280,
			ViewportHeight: 800,
			NavTimeout:     15 * time.Second,
		},
	}
}

// Validate sanity-checks values that would destabilize the simulation.
func (c Config) Validate() error {
	if c.Physics.Friction <= 0 || c.Physics.Friction >= 1 {
		return fmt.Errorf("physics.friction must be in (0,1), got %v", c.Physics.Friction)
	}
	if c.Physics.SpringDamping <= 0 || c.Physics.SpringDamping >= 1 {
		return fmt.Errorf("physics.spring_damping must be in (0,1), got %v", c.Physics.SpringDamping)
	}
	if c.Physics.BounceDamping < 0 || c.Physics.BounceDamping >= 1 {
		return fmt.Errorf("physics.bounce_damping must be in [0,1), got %v", c.Physics.BounceDamping)
	}
	if c.Widget.MinWidth <= 0 || c.Widget.MaxWidth < c.Widget.MinWidth {
		return fmt.Errorf("widget width range [%v,%v] is invalid", c.Widget.MinWidth, c.Widget.MaxWidth)
	}
	if c.Widget.AspectRatio <= 0 {
		return fmt.Errorf("widget.aspect_ratio must be positive, got %v", c.Widget.AspectRatio)
	}
	if c.Gaze.DeadZone < 0 || c.Gaze.DeadZone >= 0.5 {
		return fmt.Errorf("gaze.dead_zone must be in [0,0.5), got %v", c.Gaze.DeadZone)
	}
	switch c.Widget.InitialSide {
	case "left", "right":
	default:
		return fmt.Errorf("widget.initial_side must be left or right, got %q", c.Widget.InitialSide)
	}
	switch c.Widget.InitialSlot {
	case "top", "bottom", "center":
	default:
		return fmt.Errorf("widget.initial_slot must be top, bottom or center, got %q", c.Widget.InitialSlot)
	}
	return nil
}

// SetDefaults registers the default values on a viper instance so that a
// partial config file only overrides what it names.
func SetDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("logger.level", d.Logger.Level)
	v.SetDefault("logger.format", d.Logger.Format)
	v.SetDefault("logger.service_name", d.Logger.ServiceName)
	v.SetDefault("logger.max_size", d.Logger.MaxSize)
	v.SetDefault("logger.max_backups", d.Logger.MaxBackups)
	v.SetDefault("logger.max_age", d.Logger.MaxAge)

	v.SetDefault("widget.width", d.Widget.Width)
	v.SetDefault("widget.aspect_ratio", d.Widget.AspectRatio)
	v.SetDefault("widget.min_width", d.Widget.MinWidth)
	v.SetDefault("widget.max_width", d.Widget.MaxWidth)
	v.SetDefault("widget.padding", d.Widget.Padding)
	v.SetDefault("widget.initial_side", d.Widget.InitialSide)
	v.SetDefault("widget.initial_slot", d.Widget.InitialSlot)

	v.SetDefault("physics.friction", d.Physics.Friction)
	v.SetDefault("physics.bounce_damping", d.Physics.BounceDamping)
	v.SetDefault("physics.spring_constant", d.Physics.SpringConstant)
	v.SetDefault("physics.spring_damping", d.Physics.SpringDamping)
	v.SetDefault("physics.max_velocity", d.Physics.MaxVelocity)
	v.SetDefault("physics.stop_threshold", d.Physics.StopThreshold)
	v.SetDefault("physics.snap_distance", d.Physics.SnapDistance)
	v.SetDefault("physics.snap_velocity", d.Physics.SnapVelocity)
	v.SetDefault("physics.frame_interval", d.Physics.FrameInterval)

	v.SetDefault("interaction.fling_damping", d.Interaction.FlingDamping)
	v.SetDefault("interaction.nominal_frame", d.Interaction.NominalFrame)
	v.SetDefault("interaction.reengage_cooldown", d.Interaction.ReengageCooldown)
	v.SetDefault("interaction.min_fling_velocity", d.Interaction.MinFlingVelocity)
	v.SetDefault("interaction.seed_velocity_scale", d.Interaction.SeedVelocityScale)
	v.SetDefault("interaction.seed_velocity_floor", d.Interaction.SeedVelocityFloor)

	v.SetDefault("policy.debounce", d.Policy.Debounce)
	v.SetDefault("policy.gaze_grace", d.Policy.GazeGrace)

	v.SetDefault("gaze.dead_zone", d.Gaze.DeadZone)
	v.SetDefault("gaze.sample_rate", d.Gaze.SampleRate)
	v.SetDefault("gaze.synthetic", d.Gaze.Synthetic)
	v.SetDefault("gaze.seed", d.Gaze.Seed)

	v.SetDefault("surface.headless", d.Surface.Headless)
	v.SetDefault("surface.viewport_width", d.Surface.ViewportWidth)
	v.SetDefault("surface.viewport_height", d.Surface.ViewportHeight)
	v.SetDefault("surface.nav_timeout", d.Surface.NavTimeout)
}

// Load reads configuration from the given file (optional), the working
// directory, and GAZEDOCK_* environment variables.
func Load(cfgFile string) (Config, error) {
	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("GAZEDOCK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults apply. A file that was
		// found but does not read or parse is not, even when discovered
		// implicitly.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
