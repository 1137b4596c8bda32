// Package engine provides the tick-based loop that drives the trade world:
// one tick per simulated day, one trade cycle per simulated month.
package engine

import (
	"log/slog"
	"time"
)

// TicksPerCycle is the number of ticks (sim-days) in one trade cycle.
const TicksPerCycle = 30

// Engine drives the simulation forward. All callbacks run on the engine's
// goroutine, serially — the trade core relies on that.
type Engine struct {
	Tick     uint64        // Current tick counter (monotonic, never resets)
	Speed    float64       // Multiplier: 1.0 = real-time, 0 = paused
	Interval time.Duration // Base tick interval (default 1 second)
	Running  bool

	// Callbacks — populated during setup.
	OnTick  func(tick uint64) // Every tick (sim-day)
	OnCycle func(tick uint64) // Every TicksPerCycle ticks (new trade cycle)
}

// NewEngine creates an engine with default settings.
func NewEngine() *Engine {
	return &Engine{
		Speed:    1.0,
		Interval: time.Second,
	}
}

// Run starts the loop. Blocks until Stop() is called.
func (e *Engine) Run() {
	e.Running = true
	slog.Info("trade engine started", "tick", e.Tick, "speed", e.Speed)

	for e.Running {
		if e.Speed <= 0 {
			// Paused — sleep briefly and check again.
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()

		e.Step()

		// Sleep for the remainder of the tick interval, adjusted for speed.
		elapsed := time.Since(start)
		target := time.Duration(float64(e.Interval) / e.Speed)
		if elapsed < target {
			time.Sleep(target - elapsed)
		}
	}

	slog.Info("trade engine stopped", "tick", e.Tick)
}

// Stop halts the loop.
func (e *Engine) Stop() {
	e.Running = false
}

// Step advances the simulation by one tick. Exposed for tests and for
// headless fast-forward.
func (e *Engine) Step() {
	e.Tick++

	if e.OnTick != nil {
		e.OnTick(e.Tick)
	}
	if e.Tick%TicksPerCycle == 0 && e.OnCycle != nil {
		e.OnCycle(e.Tick)
	}
}
