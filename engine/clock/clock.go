package clock

import "time"

// FrameClock measures the time between consecutive frames.
// It keeps the previous and current timestamps and reports their difference
// in seconds relative to a fixed time.Second reference.
type FrameClock struct {
	now      func() time.Time
	previous time.Time
	current  time.Time
	started  bool
}

// FrameClockOption configures a FrameClock.
type FrameClockOption func(*FrameClock)

// WithNowFunc overrides the time source. Tests use it to drive the clock deterministically.
//
// Parameters:
//   - now: function returning the current time
//
// Returns:
//   - FrameClockOption: option applying the time source
func WithNowFunc(now func() time.Time) FrameClockOption {
	return func(c *FrameClock) {
		if now != nil {
			c.now = now
		}
	}
}

// NewFrameClock creates a clock using the monotonic wall clock unless overridden.
//
// Parameters:
//   - options: variadic list of FrameClockOption functions
//
// Returns:
//   - *FrameClock: the new clock, not yet reset
func NewFrameClock(options ...FrameClockOption) *FrameClock {
	c := &FrameClock{now: time.Now}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Reset starts the clock from the current instant. The next Tick measures from here.
func (c *FrameClock) Reset() {
	t := c.now()
	c.previous = t
	c.current = t
	c.started = true
}

// Tick advances the clock and returns the delta since the previous tick in seconds.
// An unstarted clock is reset and reports zero.
//
// Returns:
//   - float32: elapsed seconds since the previous Tick or Reset, never negative
func (c *FrameClock) Tick() float32 {
	if !c.started {
		c.Reset()
		return 0
	}
	c.previous = c.current
	c.current = c.now()

	delta := c.current.Sub(c.previous)
	if delta < 0 {
		return 0
	}
	return float32(delta.Seconds())
}

// Now returns the timestamp of the most recent Tick or Reset.
func (c *FrameClock) Now() time.Time {
	return c.current
}
