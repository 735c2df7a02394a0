package wgpubackend

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// device is the WebGPU implementation of gpu.Device.
type device struct {
	gpu.ObjectBase
	backend *Backend
	adapter *wgpu.Adapter
	native  *wgpu.Device
	queue   *wgpu.Queue
	tracker *gpu.Tracker
	context *context

	swapchain *swapchain

	// pipelines and bindGroups live until the device is released.
	pipelines  map[string]*renderPipeline
	bindGroups map[string]*cachedBindGroup
}

var _ gpu.Device = &device{}

func (d *device) ImmediateContext() gpu.Context {
	return d.context
}

func (d *device) CreateSwapchain(desc gpu.SwapchainDescriptor) (gpu.Swapchain, error) {
	if d.swapchain != nil && !d.swapchain.Released() {
		return nil, fmt.Errorf("%w: surface already has a swapchain", gpu.ErrInvalidDescriptor)
	}
	if desc.Width <= 0 || desc.Height <= 0 || desc.BufferCount <= 0 {
		return nil, fmt.Errorf("%w: swapchain %dx%d with %d buffers", gpu.ErrInvalidDescriptor, desc.Width, desc.Height, desc.BufferCount)
	}

	caps := d.backend.surface.GetCapabilities(d.adapter)
	format, err := chooseFormat(desc.Format, caps.Formats)
	if err != nil {
		return nil, err
	}
	if len(caps.AlphaModes) == 0 {
		return nil, fmt.Errorf("%w: surface reports no alpha modes", gpu.ErrInvalidDescriptor)
	}

	sc := &swapchain{
		ObjectBase:  gpu.NewObjectBase(d.tracker, gpu.KindSwapchain, "swapchain"),
		device:      d,
		format:      format,
		alphaMode:   caps.AlphaModes[0],
		presentMode: choosePresentMode(desc.VSync, caps.PresentModes),
	}
	desc.Format = contractFormat(format)
	sc.desc = desc
	sc.configure()
	d.swapchain = sc
	return sc, nil
}

func (d *device) CreateRenderTargetView(image gpu.Texture) (gpu.RenderTargetView, error) {
	tex, ok := image.(*texture)
	if !ok || tex.swapchain.device != d {
		return nil, fmt.Errorf("%w: image does not belong to this device", gpu.ErrInvalidDescriptor)
	}
	if tex.Released() {
		return nil, fmt.Errorf("%w: %s", gpu.ErrReleased, tex.Label())
	}
	tex.swapchain.refs++
	return &renderTargetView{
		ObjectBase: gpu.NewObjectBase(d.tracker, gpu.KindRenderTargetView, "backbuffer view"),
		swapchain:  tex.swapchain,
	}, nil
}

func (d *device) CreateBuffer(desc gpu.BufferDescriptor, initial []byte) (gpu.Buffer, error) {
	if err := gpu.ValidateBufferDescriptor(desc, initial); err != nil {
		return nil, err
	}

	var (
		native *wgpu.Buffer
		err    error
	)
	if desc.Usage == gpu.UsageImmutable {
		native, err = d.native.CreateBufferInit(&wgpu.BufferInitDescriptor{
			Label:    desc.Label,
			Contents: initial,
			Usage:    bufferUsage(desc),
		})
	} else {
		native, err = d.native.CreateBuffer(&wgpu.BufferDescriptor{
			Label: desc.Label,
			Size:  desc.Size,
			Usage: bufferUsage(desc),
		})
	}
	if err != nil {
		return nil, fmt.Errorf("wgpubackend: create buffer %q: %w", desc.Label, err)
	}
	if desc.Usage == gpu.UsageDefault && len(initial) > 0 {
		if err := d.queue.WriteBuffer(native, 0, initial); err != nil {
			native.Release()
			return nil, fmt.Errorf("wgpubackend: write buffer %q: %w", desc.Label, err)
		}
	}

	b := &buffer{
		ObjectBase: gpu.NewObjectBase(d.tracker, gpu.KindBuffer, desc.Label),
		device:     d,
		desc:       desc,
		native:     native,
	}
	if desc.Usage == gpu.UsageDynamic {
		b.staging, err = d.native.CreateBuffer(&wgpu.BufferDescriptor{
			Label: desc.Label + " staging",
			Size:  desc.Size,
			Usage: wgpu.BufferUsageMapWrite | wgpu.BufferUsageCopySrc,
		})
		if err != nil {
			b.Release()
			return nil, fmt.Errorf("wgpubackend: create staging buffer %q: %w", desc.Label, err)
		}
	}
	return b, nil
}

func (d *device) CompileShader(s shader.Shader) (gpu.Shader, error) {
	module, err := d.native.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: s.Key(),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.Source(),
		},
	})
	if err != nil {
		return nil, &gpu.ShaderCompileError{Label: s.Key(), Diagnostics: err.Error()}
	}
	return &shaderModule{
		ObjectBase: gpu.NewObjectBase(d.tracker, gpu.KindShader, s.Key()),
		device:     d,
		reflection: s,
		native:     module,
	}, nil
}

func (d *device) CreateInputLayout(layout shader.InputLayoutDescriptor, vs gpu.Shader) (gpu.InputLayout, error) {
	if vs.Reflection().ShaderType() != shader.ShaderTypeVertex {
		return nil, fmt.Errorf("%w: %s is not a vertex shader", gpu.ErrInvalidDescriptor, vs.Label())
	}
	if err := shader.ValidateInputLayout(vs.Reflection().VertexInputs(), layout); err != nil {
		return nil, err
	}
	native, err := vertexBufferLayout(layout)
	if err != nil {
		return nil, err
	}
	return &inputLayout{
		ObjectBase: gpu.NewObjectBase(d.tracker, gpu.KindInputLayout, vs.Label()+" layout"),
		device:     d,
		desc:       layout,
		native:     native,
	}, nil
}

func (d *device) LiveObjects() []gpu.LiveObject {
	return d.tracker.Live()
}

func (d *device) Release() {
	if !d.MarkReleased() {
		return
	}
	for _, bg := range d.bindGroups {
		bg.native.Release()
	}
	d.bindGroups = nil
	for _, p := range d.pipelines {
		p.release()
	}
	d.pipelines = nil
	d.queue.Release()
	d.native.Release()
}
