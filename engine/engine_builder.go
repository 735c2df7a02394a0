package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-cube/engine/clock"
	"github.com/Carmen-Shannon/oxy-cube/engine/config"
	"github.com/Carmen-Shannon/oxy-cube/engine/renderer"
	"github.com/Carmen-Shannon/oxy-cube/engine/window"
	"github.com/charmbracelet/log"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithWindow sets the window the engine polls for events. Required.
//
// Parameters:
//   - w: the window
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the renderer. Required; the engine initializes and shuts it down.
//
// Parameters:
//   - r: an uninitialized renderer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithConfig sets the configuration. Defaults to config.Default.
//
// Parameters:
//   - cfg: the configuration, nil keeps the default
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithConfig(cfg *config.Config) EngineBuilderOption {
	return func(e *engine) {
		if cfg != nil {
			e.config = cfg
		}
	}
}

// WithWatcher sets a config watcher whose reloads are applied between iterations.
// The engine closes it on shutdown.
//
// Parameters:
//   - w: the watcher
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWatcher(w *config.Watcher) EngineBuilderOption {
	return func(e *engine) {
		e.watcher = w
	}
}

// WithLogger sets the engine logger.
//
// Parameters:
//   - logger: the logger, nil keeps the package default
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger *log.Logger) EngineBuilderOption {
	return func(e *engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithClock sets the frame clock.
//
// Parameters:
//   - c: the clock
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithClock(c *clock.FrameClock) EngineBuilderOption {
	return func(e *engine) {
		e.clock = c
	}
}

// WithProfiling forces the profiler on or off regardless of the loop configuration.
//
// Parameters:
//   - enabled: if true, frame stats are logged at debug level once per second
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = &enabled
	}
}

// WithTimeSource replaces the time functions used for pacing and profiling.
//
// Parameters:
//   - now: returns the current time
//   - sleep: blocks for the given duration
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTimeSource(now func() time.Time, sleep func(time.Duration)) EngineBuilderOption {
	return func(e *engine) {
		if now != nil {
			e.now = now
		}
		if sleep != nil {
			e.sleep = sleep
		}
	}
}

// WithCleanup registers a function run after the renderer shuts down and before the window
// closes, such as releasing the GPU backend bound to the window surface.
//
// Parameters:
//   - fn: the cleanup function
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCleanup(fn func()) EngineBuilderOption {
	return func(e *engine) {
		if fn != nil {
			e.cleanup = append(e.cleanup, fn)
		}
	}
}
