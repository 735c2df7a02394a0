// Package window defines the event boundary between the platform window and the render loop.
package window

// Window provides the platform window as a non-blocking event source.
type Window interface {
	// PollEvent pumps platform messages when nothing is queued and returns the oldest
	// pending event. It never blocks.
	//
	// Returns:
	//   - Event: a ResizeEvent, KeyDownEvent or QuitEvent
	//   - bool: false when no event is pending
	PollEvent() (Event, bool)

	// Size returns the current framebuffer size in pixels.
	//
	// Returns:
	//   - int: width in pixels
	//   - int: height in pixels
	Size() (width, height int)

	// Close destroys the window and releases platform resources. Closing twice is a no-op.
	//
	// Returns:
	//   - error: if the platform failed to tear down
	Close() error
}
