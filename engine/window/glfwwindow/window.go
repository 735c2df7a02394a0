// Package glfwwindow implements window.Window on GLFW. GLFW must be driven from the main
// thread; callers lock the OS thread before New.
package glfwwindow

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-cube/common"
	"github.com/Carmen-Shannon/oxy-cube/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window is a GLFW window whose callbacks feed a window.EventQueue.
type Window struct {
	title     string
	width     int
	height    int
	minWidth  int
	minHeight int
	maxWidth  int
	maxHeight int

	window   *glfw.Window
	queue    *window.EventQueue
	quitSent bool
	closed   bool
}

var _ window.Window = &Window{}

// New initializes GLFW and creates a window without a client API, since WebGPU owns the
// surface.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - *Window: the visible window
//   - error: if GLFW or the window could not be created
func New(options ...WindowBuilderOption) (*Window, error) {
	w := &Window{
		title:     "oxy-cube",
		width:     800,
		height:    600,
		minWidth:  glfw.DontCare,
		minHeight: glfw.DontCare,
		maxWidth:  glfw.DontCare,
		maxHeight: glfw.DontCare,
		queue:     window.NewEventQueue(),
	}
	for _, opt := range options {
		opt(w)
	}

	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfwwindow: failed to initialize GLFW: %w", err)
	}

	// Reference: https://www.glfw.org/docs/latest/window_guide.html#window_hints_ctx
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfwwindow: failed to create window: %w", err)
	}
	win.SetSizeLimits(w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)
	w.window = win

	win.SetKeyCallback(w.onKey)

	// Framebuffer size is in pixels and differs from window size on high-DPI displays.
	win.SetFramebufferSizeCallback(w.onFramebufferSize)
	w.width, w.height = win.GetFramebufferSize()

	return w, nil
}

func (w *Window) onKey(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if action != glfw.Press && action != glfw.Repeat {
		return
	}
	if int(key) == common.KeyEsc {
		w.pushQuit()
		return
	}
	w.queue.Push(window.KeyDownEvent{Key: int(key)})
}

func (w *Window) onFramebufferSize(_ *glfw.Window, width, height int) {
	w.width = width
	w.height = height
	w.queue.Push(window.ResizeEvent{Width: width, Height: height})
}

func (w *Window) pushQuit() {
	if w.quitSent {
		return
	}
	w.quitSent = true
	w.queue.Push(window.QuitEvent{})
}

func (w *Window) PollEvent() (window.Event, bool) {
	if w.closed {
		return window.QuitEvent{}, true
	}
	if w.queue.Len() == 0 {
		// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#PollEvents
		glfw.PollEvents()
		if w.window.ShouldClose() {
			w.pushQuit()
		}
	}
	return w.queue.Pop()
}

func (w *Window) Size() (int, int) {
	return w.width, w.height
}

// SurfaceDescriptor returns the platform surface descriptor (Win32, X11, Wayland or Metal)
// built by the wgpuglfw bridge.
//
// Reference: https://pkg.go.dev/github.com/cogentcore/webgpu/wgpuglfw#GetSurfaceDescriptor
//
// Returns:
//   - *wgpu.SurfaceDescriptor: the descriptor, nil once the window is closed
func (w *Window) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	if w.closed {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(w.window)
}

func (w *Window) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	w.window.SetShouldClose(true)
	w.window.Destroy()
	glfw.Terminate()
	return nil
}
