// Package game drives the per-frame sequence: input, simulation step,
// render, present.
package game

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/gravwell/camera"
	"github.com/pthm-cable/gravwell/input"
	"github.com/pthm-cable/gravwell/telemetry"
)

// Engine is the simulation the orchestrator steps and draws.
type Engine interface {
	Update(dt float32)
	ComputePass()
	UpdateCamera(viewProj mgl32.Mat4)
	RenderPass()
}

// Surface is the drawable target the frame is presented to.
type Surface interface {
	Configure(width, height int)
	TakeResize() (width, height int, ok bool)
	Drawable() bool
	BeginFrame()
	Present()
}

// Options configures the orchestrator.
type Options struct {
	// LogInterval is the number of frames between diagnostic log lines.
	LogInterval int
	// StatsWindowSec is the frame-stats aggregation window.
	StatsWindowSec float64
	// Output receives window stats; nil disables CSV output.
	Output *telemetry.OutputManager
}

// Game owns the per-frame state machine. Single-threaded: one Step per
// animation tick, driven by the main loop.
type Game struct {
	engine  Engine
	surface Surface
	cam     *camera.Camera
	agg     *input.Aggregator

	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	output    *telemetry.OutputManager

	paused      bool
	lastTime    float64 // milliseconds, 0 = no frame yet
	frame       uint64
	logInterval int
}

// New creates the orchestrator.
func New(engine Engine, surface Surface, cam *camera.Camera, agg *input.Aggregator, opts Options) *Game {
	logInterval := opts.LogInterval
	if logInterval <= 0 {
		logInterval = 60
	}
	return &Game{
		engine:      engine,
		surface:     surface,
		cam:         cam,
		agg:         agg,
		perf:        telemetry.NewPerfCollector(logInterval),
		collector:   telemetry.NewCollector(opts.StatsWindowSec),
		output:      opts.Output,
		logInterval: logInterval,
	}
}

// Step runs one frame. The timestamp is monotonic milliseconds supplied by
// the platform tick.
//
// Ordering within the frame is the correctness contract: the parameter and
// camera-uniform writes and the compute dispatch are all issued before the
// draw that depends on them, on a single queue.
func (g *Game) Step(nowMs float64) {
	g.perf.StartFrame()

	dt := float32(1.0 / 60.0)
	if g.lastTime > 0 {
		dt = float32((nowMs - g.lastTime) / 1000.0)
	}
	g.lastTime = nowMs

	// Resize applies atomically between frames.
	if w, h, ok := g.surface.TakeResize(); ok {
		g.surface.Configure(w, h)
		g.cam.SetAspectRatio(float32(w) / float32(h))
		slog.Info("surface resized", "width", w, "height", h)
	}

	g.perf.StartPhase(telemetry.PhaseInput)
	g.agg.UpdateCamera(g.cam)

	if g.agg.PauseToggled() {
		g.paused = !g.paused
		slog.Info("pause toggled", "paused", g.paused)
	}

	if !g.paused {
		g.perf.StartPhase(telemetry.PhaseUpdate)
		g.engine.Update(dt)
	}

	// Render runs even when paused; a frozen simulation is still viewable.
	if g.surface.Drawable() {
		g.surface.BeginFrame()
		if !g.paused {
			g.perf.StartPhase(telemetry.PhaseCompute)
			g.engine.ComputePass()
		}
		g.perf.StartPhase(telemetry.PhaseRender)
		g.engine.UpdateCamera(g.cam.BuildViewProjection())
		g.engine.RenderPass()
		g.perf.StartPhase(telemetry.PhasePresent)
		g.surface.Present()
	}

	g.perf.EndFrame()
	g.frame++

	if stats, ok := g.collector.Record(nowMs/1000.0, float64(dt), g.frame, g.paused); ok {
		if err := g.output.WriteStats(stats); err != nil {
			slog.Warn("writing frame stats failed", "error", err)
		}
	}

	if g.frame%uint64(g.logInterval) == 0 {
		slog.Debug("frame",
			"frame", g.frame,
			"dt_ms", float64(dt)*1000,
			"frame_time", g.perf.Total(),
			"paused", g.paused,
		)
	}
}

// Paused reports whether the simulation is currently frozen.
func (g *Game) Paused() bool {
	return g.paused
}

// Frame returns the number of completed frames.
func (g *Game) Frame() uint64 {
	return g.frame
}
