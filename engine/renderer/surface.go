package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/gpu"
)

// surface owns the swapchain, the backbuffer view and the recorded surface size.
// An invalid surface has no view and is skipped by RenderFrame.
type surface struct {
	device    gpu.Device
	swapchain gpu.Swapchain
	view      gpu.RenderTargetView
	width     int
	height    int
	valid     bool
}

func newSurface(device gpu.Device, desc gpu.SwapchainDescriptor) (*surface, error) {
	sc, err := device.CreateSwapchain(desc)
	if err != nil {
		return nil, fmt.Errorf("renderer: create swapchain %dx%d: %w", desc.Width, desc.Height, err)
	}
	s := &surface{
		device:    device,
		swapchain: sc,
		width:     desc.Width,
		height:    desc.Height,
	}
	if err := s.createView(); err != nil {
		sc.Release()
		return nil, err
	}
	s.valid = true
	return s, nil
}

// createView acquires buffer 0, creates the render-target view and drops the image reference.
func (s *surface) createView() error {
	if s.view != nil {
		return ErrViewAlive
	}
	image, err := s.swapchain.Buffer(0)
	if err != nil {
		return fmt.Errorf("renderer: acquire backbuffer: %w", err)
	}
	defer image.Release()

	view, err := s.device.CreateRenderTargetView(image)
	if err != nil {
		return fmt.Errorf("renderer: create backbuffer view: %w", err)
	}
	s.view = view
	return nil
}

func (s *surface) releaseView() {
	if s.view != nil {
		s.view.Release()
		s.view = nil
	}
}

// resize releases the view, records the size, resizes the buffers and recreates the view,
// in that order. A zero dimension leaves the surface invalid until the next non-zero resize.
func (s *surface) resize(width, height int) error {
	s.releaseView()
	s.width = width
	s.height = height

	if width <= 0 || height <= 0 {
		s.valid = false
		return nil
	}

	if err := s.swapchain.ResizeBuffers(0, width, height, gpu.FormatUnknown); err != nil {
		s.valid = false
		return fmt.Errorf("renderer: resize swapchain to %dx%d: %w", width, height, err)
	}
	if err := s.createView(); err != nil {
		s.valid = false
		return err
	}
	s.valid = true
	return nil
}

func (s *surface) aspect() float32 {
	if s.width <= 0 || s.height <= 0 {
		return 1
	}
	return float32(s.width) / float32(s.height)
}

func (s *surface) viewport() gpu.Viewport {
	return gpu.Viewport{
		Width:    float32(s.width),
		Height:   float32(s.height),
		MinDepth: 0,
		MaxDepth: 1,
	}
}

func (s *surface) scissor() gpu.Rect {
	return gpu.Rect{Width: uint32(s.width), Height: uint32(s.height)}
}

// release drops the view before the swapchain.
func (s *surface) release() {
	s.releaseView()
	s.swapchain.Release()
	s.valid = false
}
