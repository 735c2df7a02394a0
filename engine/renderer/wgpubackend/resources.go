package wgpubackend

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// swapchain wraps the configured window surface. Images and views are logical references;
// the surface texture itself is acquired once per frame by the context. The surface keeps its
// configuration after Release until the next Configure or the backend is released.
type swapchain struct {
	gpu.ObjectBase
	device      *device
	desc        gpu.SwapchainDescriptor
	format      wgpu.TextureFormat
	alphaMode   wgpu.CompositeAlphaMode
	presentMode wgpu.PresentMode
	refs        int

	frameTexture *wgpu.Texture
	frameView    *wgpu.TextureView
}

var _ gpu.Swapchain = &swapchain{}

func (s *swapchain) configure() {
	s.device.backend.surface.Configure(s.device.adapter, s.device.native, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      s.format,
		Width:       uint32(s.desc.Width),
		Height:      uint32(s.desc.Height),
		PresentMode: s.presentMode,
		AlphaMode:   s.alphaMode,
	})
}

func (s *swapchain) Desc() gpu.SwapchainDescriptor {
	return s.desc
}

func (s *swapchain) Buffer(index int) (gpu.Texture, error) {
	if index != 0 {
		return nil, fmt.Errorf("%w: buffer index %d", gpu.ErrInvalidDescriptor, index)
	}
	s.refs++
	return &texture{
		ObjectBase: gpu.NewObjectBase(s.device.tracker, gpu.KindTexture, "backbuffer"),
		swapchain:  s,
		width:      s.desc.Width,
		height:     s.desc.Height,
	}, nil
}

func (s *swapchain) ResizeBuffers(bufferCount, width, height int, format gpu.Format) error {
	if s.refs > 0 {
		return fmt.Errorf("%w: %d live references", gpu.ErrBackbufferReferenced, s.refs)
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: resize to %dx%d", gpu.ErrInvalidDescriptor, width, height)
	}
	if bufferCount > 0 {
		s.desc.BufferCount = bufferCount
	}
	if format != gpu.FormatUnknown {
		caps := s.device.backend.surface.GetCapabilities(s.device.adapter)
		chosen, err := chooseFormat(format, caps.Formats)
		if err != nil {
			return err
		}
		s.format = chosen
		s.desc.Format = contractFormat(chosen)
	}
	s.releaseFrame()
	s.desc.Width = width
	s.desc.Height = height
	s.configure()
	return nil
}

// acquire returns the view of the current surface texture, acquiring it on first use in a frame.
func (s *swapchain) acquire() (*wgpu.TextureView, error) {
	if s.frameView != nil {
		return s.frameView, nil
	}
	tex, err := s.device.backend.surface.GetCurrentTexture()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", gpu.ErrSurfaceLost, err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("wgpubackend: create surface view: %w", err)
	}
	s.frameTexture = tex
	s.frameView = view
	return view, nil
}

func (s *swapchain) releaseFrame() {
	if s.frameView != nil {
		s.frameView.Release()
		s.frameView = nil
	}
	if s.frameTexture != nil {
		s.frameTexture.Release()
		s.frameTexture = nil
	}
}

func (s *swapchain) Present() error {
	err := s.device.context.flush()
	if err == nil && s.frameTexture != nil {
		s.device.backend.surface.Present()
	}
	s.releaseFrame()
	return err
}

func (s *swapchain) Release() {
	if !s.MarkReleased() {
		return
	}
	s.releaseFrame()
}

// texture is a reference to the swapchain image.
type texture struct {
	gpu.ObjectBase
	swapchain     *swapchain
	width, height int
}

var _ gpu.Texture = &texture{}

func (t *texture) Width() int  { return t.width }
func (t *texture) Height() int { return t.height }

func (t *texture) Release() {
	if t.MarkReleased() {
		t.swapchain.refs--
	}
}

// renderTargetView targets whatever surface texture is current when a pass begins.
type renderTargetView struct {
	gpu.ObjectBase
	swapchain *swapchain
}

var _ gpu.RenderTargetView = &renderTargetView{}

func (v *renderTargetView) Release() {
	if v.MarkReleased() {
		v.swapchain.refs--
	}
}

// buffer is a native buffer. Dynamic buffers carry a mappable staging buffer that Unmap
// copies into the native buffer.
type buffer struct {
	gpu.ObjectBase
	device  *device
	desc    gpu.BufferDescriptor
	native  *wgpu.Buffer
	staging *wgpu.Buffer
	mapped  bool
}

var _ gpu.Buffer = &buffer{}

func (b *buffer) Desc() gpu.BufferDescriptor {
	return b.desc
}

func (b *buffer) Release() {
	if !b.MarkReleased() {
		return
	}
	b.device.evict(b.ID())
	if b.staging != nil {
		b.staging.Release()
		b.staging = nil
	}
	b.native.Release()
}

// shaderModule is a compiled WGSL module and the reflection it was compiled from.
type shaderModule struct {
	gpu.ObjectBase
	device     *device
	reflection shader.Shader
	native     *wgpu.ShaderModule
}

var _ gpu.Shader = &shaderModule{}

func (s *shaderModule) Reflection() shader.Shader {
	return s.reflection
}

func (s *shaderModule) Release() {
	if s.MarkReleased() {
		s.device.evict(s.ID())
		s.native.Release()
	}
}

// inputLayout holds the validated table and its translated vertex buffer layout.
type inputLayout struct {
	gpu.ObjectBase
	device *device
	desc   shader.InputLayoutDescriptor
	native wgpu.VertexBufferLayout
}

var _ gpu.InputLayout = &inputLayout{}

func (l *inputLayout) Desc() shader.InputLayoutDescriptor {
	return l.desc
}

func (l *inputLayout) Release() {
	if l.MarkReleased() {
		l.device.evict(l.ID())
	}
}
