package renderer

import "github.com/charmbracelet/log"

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPresentMode sets the swapchain present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.presentMode = mode
	}
}

// WithBufferCount sets the number of swapchain buffers. Values outside 1..2 are ignored.
//
// Parameters:
//   - count: 1 for single buffering, 2 for double buffering (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the buffer count option to a renderer
func WithBufferCount(count int) RendererBuilderOption {
	return func(r *renderer) {
		if count == 1 || count == 2 {
			r.bufferCount = count
		}
	}
}

// WithDebug enables the live object report when the device is released.
//
// Parameters:
//   - debug: true to log every unreleased GPU object at shutdown
//
// Returns:
//   - RendererBuilderOption: a function that applies the debug option to a renderer
func WithDebug(debug bool) RendererBuilderOption {
	return func(r *renderer) {
		r.debug = debug
	}
}

// WithSkipAdapters replaces the list of adapter name fragments that are never selected.
//
// Parameters:
//   - names: case-insensitive fragments of adapter names to reject
//
// Returns:
//   - RendererBuilderOption: a function that applies the skip list to a renderer
func WithSkipAdapters(names ...string) RendererBuilderOption {
	return func(r *renderer) {
		r.skipAdapters = names
	}
}

// WithLogger sets the logger used for adapter selection, shader diagnostics and leak reports.
//
// Parameters:
//   - logger: the logger, nil keeps the package default
//
// Returns:
//   - RendererBuilderOption: a function that applies the logger option to a renderer
func WithLogger(logger *log.Logger) RendererBuilderOption {
	return func(r *renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}
