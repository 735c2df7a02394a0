package window

import "fmt"

// Event is a window event delivered through Window.PollEvent. The concrete types are
// ResizeEvent, KeyDownEvent and QuitEvent.
type Event interface {
	fmt.Stringer
	isEvent()
}

// ResizeEvent reports a new framebuffer size in pixels. Either dimension may be 0 while the
// window is minimized.
type ResizeEvent struct {
	Width  int
	Height int
}

// KeyDownEvent reports a key press or host auto-repeat. Key is a GLFW key code, see the
// common package's Key constants.
type KeyDownEvent struct {
	Key int
}

// QuitEvent asks the render loop to stop.
type QuitEvent struct{}

func (ResizeEvent) isEvent()  {}
func (KeyDownEvent) isEvent() {}
func (QuitEvent) isEvent()    {}

func (e ResizeEvent) String() string {
	return fmt.Sprintf("resize %dx%d", e.Width, e.Height)
}

func (e KeyDownEvent) String() string {
	return fmt.Sprintf("key down %d", e.Key)
}

func (QuitEvent) String() string {
	return "quit"
}
