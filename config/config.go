// Package config provides configuration loading and access for the visualizer.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all visualizer configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Simulation SimulationConfig `yaml:"simulation"`
	Field      FieldConfig      `yaml:"field"`
	Camera     CameraConfig     `yaml:"camera"`
	Input      InputConfig      `yaml:"input"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	VSync  bool   `yaml:"vsync"`
	Title  string `yaml:"title"`
}

// SimulationConfig holds GPU simulation parameters.
type SimulationConfig struct {
	ParticleCount int     `yaml:"particle_count"`
	GM            float64 `yaml:"gm"`     // gravitational parameter (G * central mass)
	MaxDT         float64 `yaml:"max_dt"` // timestep cap applied every frame
	WorkgroupSize int     `yaml:"workgroup_size"`
}

// FieldConfig holds initial particle distribution parameters.
// Profile selects one of two mutually exclusive generators.
type FieldConfig struct {
	Profile string `yaml:"profile"` // "galaxy-disk" or "infall-stream"
	Seed    uint64 `yaml:"seed"`

	// galaxy-disk parameters
	RMin         float64 `yaml:"r_min"`
	RMax         float64 `yaml:"r_max"`
	ZJitter      float64 `yaml:"z_jitter"`
	Perturbation float64 `yaml:"perturbation"` // fractional velocity noise

	// infall-stream parameters
	CloseStars       int     `yaml:"close_stars"`
	CloseRMin        float64 `yaml:"close_r_min"`
	CloseRMax        float64 `yaml:"close_r_max"`
	CloseSpeedFactor float64 `yaml:"close_speed_factor"` // fraction of Keplerian speed
	StreamX          float64 `yaml:"stream_x"`
	StreamZ          float64 `yaml:"stream_z"`
	StreamHalfWidth  float64 `yaml:"stream_half_width"`
	StreamSpeed      float64 `yaml:"stream_speed"`
}

// CameraConfig holds camera behavior parameters.
type CameraConfig struct {
	Mode              string  `yaml:"mode"` // "ortho2d" or "perspective3d"
	MinScale          float64 `yaml:"min_scale"`
	MaxScale          float64 `yaml:"max_scale"`
	ZoomSensitivity   float64 `yaml:"zoom_sensitivity"`
	RotateSensitivity float64 `yaml:"rotate_sensitivity"`
	FarPlane          float64 `yaml:"far_plane"` // perspective mode only
}

// InputConfig holds input aggregation parameters.
type InputConfig struct {
	DeadZone         float64 `yaml:"dead_zone"`         // minimum pointer delta that moves the camera
	PinchSensitivity float64 `yaml:"pinch_sensitivity"` // pinch distance delta to zoom delta
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds per stats window
	LogInterval int     `yaml:"log_interval"` // frames between diagnostic log lines
}

// DerivedConfig holds values computed from the loaded configuration.
type DerivedConfig struct {
	ParticleCount32 uint32
	GM32            float32
	MaxDT32         float32
	Aspect          float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration for the given preset and optional YAML override file.
// Must be called before Cfg().
func Init(preset, path string) error {
	cfg, err := Load(preset, path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(preset, path string) {
	if err := Init(preset, path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load builds a configuration from the embedded defaults, an optional named
// preset, and an optional user YAML file, applied in that order. Fields absent
// from later layers keep their earlier values.
func Load(preset, path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if preset != "" {
		if err := ApplyPreset(cfg, preset); err != nil {
			return nil, err
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects configurations that cannot produce a working simulation.
func (c *Config) validate() error {
	if c.Simulation.ParticleCount <= 0 {
		return fmt.Errorf("config: particle_count must be positive, got %d", c.Simulation.ParticleCount)
	}
	if c.Simulation.WorkgroupSize <= 0 {
		return fmt.Errorf("config: workgroup_size must be positive, got %d", c.Simulation.WorkgroupSize)
	}
	if c.Simulation.GM <= 0 {
		return fmt.Errorf("config: gm must be positive, got %g", c.Simulation.GM)
	}
	switch c.Field.Profile {
	case "galaxy-disk", "infall-stream":
	default:
		return fmt.Errorf("config: unknown field profile %q", c.Field.Profile)
	}
	switch c.Camera.Mode {
	case "ortho2d", "perspective3d":
	default:
		return fmt.Errorf("config: unknown camera mode %q", c.Camera.Mode)
	}
	if c.Camera.MinScale <= 0 || c.Camera.MaxScale <= c.Camera.MinScale {
		return fmt.Errorf("config: invalid scale range [%g, %g]", c.Camera.MinScale, c.Camera.MaxScale)
	}
	if c.Field.RMin <= 0 {
		return fmt.Errorf("config: r_min must be positive, got %g", c.Field.RMin)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ParticleCount32 = uint32(c.Simulation.ParticleCount)
	c.Derived.GM32 = float32(c.Simulation.GM)
	c.Derived.MaxDT32 = float32(c.Simulation.MaxDT)
	c.Derived.Aspect = float32(c.Screen.Width) / float32(c.Screen.Height)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
