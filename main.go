package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"runtime"
	"strings"

	"github.com/go-gl/glfw/v3.3/glfw"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/gravwell/camera"
	"github.com/pthm-cable/gravwell/config"
	"github.com/pthm-cable/gravwell/game"
	"github.com/pthm-cable/gravwell/graphics"
	"github.com/pthm-cable/gravwell/input"
	"github.com/pthm-cable/gravwell/sim"
	"github.com/pthm-cable/gravwell/telemetry"
)

func init() {
	// GLFW event handling must run on the main OS thread.
	runtime.LockOSThread()
}

func main() {
	// CLI flags
	preset := flag.String("preset", "", fmt.Sprintf("Scenario preset (%s; empty = defaults)", strings.Join(config.PresetNames(), ", ")))
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Generate the particle field and report on it without opening a window")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "Field RNG seed override (0 = use config)")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*preset, *configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *seed != 0 {
		cfg.Field.Seed = uint64(*seed)
	}

	// Use config stats window if not overridden by CLI
	statsWindowSec := cfg.Telemetry.StatsWindow
	if *statsWindow > 0 {
		statsWindowSec = *statsWindow
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	defer output.Close()

	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
		os.Exit(1)
	}

	if *headless {
		runHeadless(cfg)
		return
	}

	ctx, err := graphics.New(cfg.Screen.Width, cfg.Screen.Height, cfg.Screen.Title, cfg.Screen.VSync)
	if err != nil {
		slog.Error("failed to create graphics context", "error", err)
		os.Exit(1)
	}
	defer ctx.Destroy()

	engine, err := sim.NewEngine(cfg)
	if err != nil {
		slog.Error("failed to create simulation engine", "error", err)
		os.Exit(1)
	}
	defer engine.Unload()

	cam := camera.New(
		cameraMode(cfg.Camera.Mode),
		float32(cfg.Camera.MinScale),
		float32(cfg.Camera.MaxScale),
		float32(cfg.Camera.ZoomSensitivity),
		float32(cfg.Camera.FarPlane),
	)
	cam.SetAspectRatio(cfg.Derived.Aspect)

	agg := input.New(input.Options{
		DeadZone:          float32(cfg.Input.DeadZone),
		RotateSensitivity: float32(cfg.Camera.RotateSensitivity),
		PinchSensitivity:  float32(cfg.Input.PinchSensitivity),
		RotateEnabled:     cam.Mode == camera.Perspective3D,
	})
	input.Bind(ctx.Window(), agg)

	g := game.New(engine, ctx, cam, agg, game.Options{
		LogInterval:    cfg.Telemetry.LogInterval,
		StatsWindowSec: statsWindowSec,
		Output:         output,
	})

	slog.Info("starting",
		"preset", *preset,
		"particles", cfg.Simulation.ParticleCount,
		"profile", cfg.Field.Profile,
		"camera_mode", cfg.Camera.Mode,
		"seed", cfg.Field.Seed,
	)

	for !ctx.ShouldClose() {
		glfw.PollEvents()
		g.Step(glfw.GetTime() * 1000.0)

		if *maxFrames > 0 && int(g.Frame()) >= *maxFrames {
			slog.Info("max frames reached", "frame", g.Frame())
			break
		}
	}
}

// cameraMode maps the config string to a camera mode. Unknown values are
// rejected by config validation before this runs.
func cameraMode(mode string) camera.Mode {
	if mode == "perspective3d" {
		return camera.Perspective3D
	}
	return camera.Orthographic2D
}

// runHeadless generates the initial field on the CPU and logs distribution
// summaries. Useful for checking a config or preset without a GPU.
func runHeadless(cfg *config.Config) {
	particles := sim.GenerateField(cfg.Field, cfg.Simulation.ParticleCount, cfg.Simulation.GM)

	radii := make([]float64, len(particles))
	speeds := make([]float64, len(particles))
	for i, p := range particles {
		radii[i] = math.Sqrt(float64(p.Position[0]*p.Position[0] +
			p.Position[1]*p.Position[1] +
			p.Position[2]*p.Position[2]))
		speeds[i] = math.Sqrt(float64(p.Velocity[0]*p.Velocity[0] +
			p.Velocity[1]*p.Velocity[1] +
			p.Velocity[2]*p.Velocity[2]))
	}

	rMean, rStd := stat.MeanStdDev(radii, nil)
	vMean, vStd := stat.MeanStdDev(speeds, nil)

	slog.Info("field generated",
		"profile", cfg.Field.Profile,
		"particles", len(particles),
		"seed", cfg.Field.Seed,
		"radius_mean", rMean,
		"radius_std", rStd,
		"speed_mean", vMean,
		"speed_std", vStd,
	)
}
