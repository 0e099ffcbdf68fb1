package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated frame statistics for one time window.
type WindowStats struct {
	Frame      uint64  `csv:"frame"`
	WallTime   float64 `csv:"wall_time"`
	FrameCount int     `csv:"frames"`
	FPS        float64 `csv:"fps"`

	// Frame time distribution, milliseconds
	DTMeanMs float64 `csv:"dt_mean_ms"`
	DTStdMs  float64 `csv:"dt_std_ms"`
	DTP50Ms  float64 `csv:"dt_p50_ms"`
	DTP95Ms  float64 `csv:"dt_p95_ms"`
	DTMaxMs  float64 `csv:"dt_max_ms"`

	Paused bool `csv:"paused"`
}

// Collector accumulates per-frame timestep samples and flushes them into
// WindowStats once per stats window.
type Collector struct {
	windowSec   float64
	windowStart float64
	dtSamples   []float64
}

// NewCollector creates a collector with the given window length in seconds.
func NewCollector(windowSec float64) *Collector {
	if windowSec <= 0 {
		windowSec = 1.0
	}
	return &Collector{windowSec: windowSec}
}

// Record adds one frame's timestep (seconds) at the given wall time.
// Returns completed stats when the window rolls over.
func (c *Collector) Record(wallTime, dt float64, frame uint64, paused bool) (WindowStats, bool) {
	if c.windowStart == 0 {
		c.windowStart = wallTime
	}
	c.dtSamples = append(c.dtSamples, dt)

	if wallTime-c.windowStart < c.windowSec {
		return WindowStats{}, false
	}

	stats := c.flush(wallTime, frame, paused)
	c.windowStart = wallTime
	c.dtSamples = c.dtSamples[:0]
	return stats, true
}

func (c *Collector) flush(wallTime float64, frame uint64, paused bool) WindowStats {
	n := len(c.dtSamples)
	ws := WindowStats{
		Frame:      frame,
		WallTime:   wallTime,
		FrameCount: n,
		Paused:     paused,
	}
	if n == 0 {
		return ws
	}

	sorted := make([]float64, n)
	copy(sorted, c.dtSamples)
	sort.Float64s(sorted)

	mean, std := stat.MeanStdDev(sorted, nil)
	ws.DTMeanMs = mean * 1000
	if n > 1 {
		ws.DTStdMs = std * 1000
	}
	ws.DTP50Ms = stat.Quantile(0.5, stat.Empirical, sorted, nil) * 1000
	ws.DTP95Ms = stat.Quantile(0.95, stat.Empirical, sorted, nil) * 1000
	ws.DTMaxMs = sorted[n-1] * 1000
	if mean > 0 {
		ws.FPS = 1.0 / mean
	}
	return ws
}
