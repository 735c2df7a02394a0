package gputest

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/shader"
)

// Device is a fake gpu.Device.
type Device struct {
	gpu.ObjectBase
	backend *Backend
	tracker *gpu.Tracker
	adapter gpu.AdapterInfo
	desc    gpu.DeviceDescriptor
	context *Context

	// Swapchain is the most recently created swapchain.
	Swapchain *Swapchain
}

var _ gpu.Device = &Device{}

// Adapter returns the adapter the device was created on.
func (d *Device) Adapter() gpu.AdapterInfo {
	return d.adapter
}

// Descriptor returns the descriptor the device was created with.
func (d *Device) Descriptor() gpu.DeviceDescriptor {
	return d.desc
}

// Tracker exposes the live-object tracker.
func (d *Device) Tracker() *gpu.Tracker {
	return d.tracker
}

// Context returns the fake immediate context with its call log.
func (d *Device) Context() *Context {
	return d.context
}

func (d *Device) ImmediateContext() gpu.Context {
	return d.context
}

func (d *Device) CreateSwapchain(desc gpu.SwapchainDescriptor) (gpu.Swapchain, error) {
	if err := d.backend.fail(OpCreateSwapchain); err != nil {
		return nil, err
	}
	if desc.Width <= 0 || desc.Height <= 0 || desc.BufferCount <= 0 {
		return nil, fmt.Errorf("%w: swapchain %dx%d with %d buffers", gpu.ErrInvalidDescriptor, desc.Width, desc.Height, desc.BufferCount)
	}
	if desc.Format == gpu.FormatUnknown {
		desc.Format = gpu.FormatBGRA8Unorm
	}
	sc := &Swapchain{
		ObjectBase: gpu.NewObjectBase(d.tracker, gpu.KindSwapchain, "swapchain"),
		device:     d,
		desc:       desc,
	}
	d.Swapchain = sc
	return sc, nil
}

func (d *Device) CreateRenderTargetView(image gpu.Texture) (gpu.RenderTargetView, error) {
	if err := d.backend.fail(OpCreateRenderTargetView); err != nil {
		return nil, err
	}
	tex, ok := image.(*Texture)
	if !ok || tex.swapchain.device != d {
		return nil, fmt.Errorf("%w: image does not belong to this device", gpu.ErrInvalidDescriptor)
	}
	if tex.Released() {
		return nil, fmt.Errorf("%w: %s", gpu.ErrReleased, tex.Label())
	}
	tex.swapchain.refs++
	return &RenderTargetView{
		ObjectBase: gpu.NewObjectBase(d.tracker, gpu.KindRenderTargetView, "backbuffer view"),
		swapchain:  tex.swapchain,
		Width:      tex.width,
		Height:     tex.height,
	}, nil
}

func (d *Device) CreateBuffer(desc gpu.BufferDescriptor, initial []byte) (gpu.Buffer, error) {
	if err := d.backend.fail(OpCreateBuffer); err != nil {
		return nil, err
	}
	if err := gpu.ValidateBufferDescriptor(desc, initial); err != nil {
		return nil, err
	}
	buf := &Buffer{
		ObjectBase: gpu.NewObjectBase(d.tracker, gpu.KindBuffer, desc.Label),
		backend:    d.backend,
		desc:       desc,
		Data:       make([]byte, desc.Size),
	}
	copy(buf.Data, initial)
	return buf, nil
}

func (d *Device) CompileShader(s shader.Shader) (gpu.Shader, error) {
	if err := d.backend.fail(OpCompileShader); err != nil {
		return nil, err
	}
	if diag, ok := d.backend.ShaderDiagnostics[s.Key()]; ok {
		return nil, &gpu.ShaderCompileError{Label: s.Key(), Diagnostics: diag}
	}
	return &Shader{
		ObjectBase: gpu.NewObjectBase(d.tracker, gpu.KindShader, s.Key()),
		backend:    d.backend,
		reflection: s,
	}, nil
}

func (d *Device) CreateInputLayout(layout shader.InputLayoutDescriptor, vs gpu.Shader) (gpu.InputLayout, error) {
	if vs.Reflection().ShaderType() != shader.ShaderTypeVertex {
		return nil, fmt.Errorf("%w: %s is not a vertex shader", gpu.ErrInvalidDescriptor, vs.Label())
	}
	if err := shader.ValidateInputLayout(vs.Reflection().VertexInputs(), layout); err != nil {
		return nil, err
	}
	return &InputLayout{
		ObjectBase: gpu.NewObjectBase(d.tracker, gpu.KindInputLayout, vs.Label()+" layout"),
		backend:    d.backend,
		desc:       layout,
	}, nil
}

func (d *Device) LiveObjects() []gpu.LiveObject {
	return d.tracker.Live()
}

func (d *Device) Release() {
	if d.MarkReleased() {
		d.backend.logRelease(&d.ObjectBase)
	}
}

// Swapchain is a fake gpu.Swapchain that counts outstanding backbuffer references.
type Swapchain struct {
	gpu.ObjectBase
	device *Device
	desc   gpu.SwapchainDescriptor
	refs   int

	// Presents counts successful Present calls.
	Presents int
	// Resizes records the size of every successful ResizeBuffers call.
	Resizes [][2]int
}

var _ gpu.Swapchain = &Swapchain{}

// References returns the number of live images and views over the backbuffer.
func (s *Swapchain) References() int {
	return s.refs
}

func (s *Swapchain) Desc() gpu.SwapchainDescriptor {
	return s.desc
}

func (s *Swapchain) Buffer(index int) (gpu.Texture, error) {
	if index != 0 {
		return nil, fmt.Errorf("%w: buffer index %d", gpu.ErrInvalidDescriptor, index)
	}
	s.refs++
	return &Texture{
		ObjectBase: gpu.NewObjectBase(s.device.tracker, gpu.KindTexture, "backbuffer"),
		swapchain:  s,
		width:      s.desc.Width,
		height:     s.desc.Height,
	}, nil
}

func (s *Swapchain) ResizeBuffers(bufferCount, width, height int, format gpu.Format) error {
	if s.refs > 0 {
		return fmt.Errorf("%w: %d live references", gpu.ErrBackbufferReferenced, s.refs)
	}
	if err := s.device.backend.fail(OpResizeBuffers); err != nil {
		return err
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: resize to %dx%d", gpu.ErrInvalidDescriptor, width, height)
	}
	if bufferCount > 0 {
		s.desc.BufferCount = bufferCount
	}
	if format != gpu.FormatUnknown {
		s.desc.Format = format
	}
	s.desc.Width = width
	s.desc.Height = height
	s.Resizes = append(s.Resizes, [2]int{width, height})
	return nil
}

func (s *Swapchain) Present() error {
	if err := s.device.backend.fail(OpPresent); err != nil {
		return err
	}
	s.Presents++
	s.device.context.endFrame()
	return nil
}

func (s *Swapchain) Release() {
	if s.MarkReleased() {
		s.device.backend.logRelease(&s.ObjectBase)
	}
}

// Texture is a fake backbuffer image reference.
type Texture struct {
	gpu.ObjectBase
	swapchain     *Swapchain
	width, height int
}

var _ gpu.Texture = &Texture{}

func (t *Texture) Width() int  { return t.width }
func (t *Texture) Height() int { return t.height }

func (t *Texture) Release() {
	if t.MarkReleased() {
		t.swapchain.refs--
		t.swapchain.device.backend.logRelease(&t.ObjectBase)
	}
}

// RenderTargetView is a fake view over the backbuffer.
type RenderTargetView struct {
	gpu.ObjectBase
	swapchain *Swapchain

	// Width and Height are the image size at view creation.
	Width, Height int
}

var _ gpu.RenderTargetView = &RenderTargetView{}

func (v *RenderTargetView) Release() {
	if v.MarkReleased() {
		v.swapchain.refs--
		v.swapchain.device.backend.logRelease(&v.ObjectBase)
	}
}

// Buffer is a fake buffer whose contents are kept in memory.
type Buffer struct {
	gpu.ObjectBase
	backend *Backend
	desc    gpu.BufferDescriptor
	mapped  []byte

	// Data is the committed contents of the buffer.
	Data []byte
}

var _ gpu.Buffer = &Buffer{}

func (b *Buffer) Desc() gpu.BufferDescriptor {
	return b.desc
}

func (b *Buffer) Release() {
	if b.MarkReleased() {
		b.backend.logRelease(&b.ObjectBase)
	}
}

// Shader is a fake compiled shader.
type Shader struct {
	gpu.ObjectBase
	backend    *Backend
	reflection shader.Shader
}

var _ gpu.Shader = &Shader{}

func (s *Shader) Reflection() shader.Shader {
	return s.reflection
}

func (s *Shader) Release() {
	if s.MarkReleased() {
		s.backend.logRelease(&s.ObjectBase)
	}
}

// InputLayout is a fake input layout.
type InputLayout struct {
	gpu.ObjectBase
	backend *Backend
	desc    shader.InputLayoutDescriptor
}

var _ gpu.InputLayout = &InputLayout{}

func (l *InputLayout) Desc() shader.InputLayoutDescriptor {
	return l.desc
}

func (l *InputLayout) Release() {
	if l.MarkReleased() {
		l.backend.logRelease(&l.ObjectBase)
	}
}
