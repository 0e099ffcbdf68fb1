package config

import (
	"fmt"
	"sort"
)

// Preset overrides a subset of the defaults to reproduce one of the known-good
// parameter sets. Zero values mean "keep the default".
type Preset struct {
	ParticleCount int
	GM            float64
	Profile       string
	CameraMode    string
	MinScale      float64
	MaxScale      float64
}

// Presets are the named parameter sets the visualizer ships with.
var Presets = map[string]Preset{
	// Flat spinning disk viewed top-down.
	"galaxy": {
		ParticleCount: 16384,
		GM:            50000.0,
		Profile:       "galaxy-disk",
		CameraMode:    "ortho2d",
		MinScale:      0.1,
		MaxScale:      20.0,
	},
	// Matter stream falling into a central mass, orbiting 3D camera.
	"blackhole": {
		ParticleCount: 131072,
		GM:            40000.0,
		Profile:       "infall-stream",
		CameraMode:    "perspective3d",
		MinScale:      0.01,
		MaxScale:      10.0,
	},
	// Galaxy disk at the full particle count.
	"dense": {
		ParticleCount: 131072,
		GM:            50000.0,
		Profile:       "galaxy-disk",
		CameraMode:    "perspective3d",
		MinScale:      0.01,
		MaxScale:      10.0,
	},
	// Small population for weak GPUs.
	"lite": {
		ParticleCount: 4096,
		GM:            50000.0,
		Profile:       "galaxy-disk",
		CameraMode:    "ortho2d",
		MinScale:      0.3,
		MaxScale:      5.0,
	},
}

// ApplyPreset overlays the named preset onto cfg.
func ApplyPreset(cfg *Config, name string) error {
	p, ok := Presets[name]
	if !ok {
		return fmt.Errorf("config: unknown preset %q (have %v)", name, PresetNames())
	}
	if p.ParticleCount > 0 {
		cfg.Simulation.ParticleCount = p.ParticleCount
	}
	if p.GM > 0 {
		cfg.Simulation.GM = p.GM
	}
	if p.Profile != "" {
		cfg.Field.Profile = p.Profile
	}
	if p.CameraMode != "" {
		cfg.Camera.Mode = p.CameraMode
	}
	if p.MinScale > 0 {
		cfg.Camera.MinScale = p.MinScale
	}
	if p.MaxScale > 0 {
		cfg.Camera.MaxScale = p.MaxScale
	}
	return nil
}

// PresetNames returns the available preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
