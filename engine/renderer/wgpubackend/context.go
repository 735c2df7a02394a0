package wgpubackend

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// maxConstantSlots bounds SetConstantBuffers to the bindings a single group can address here.
const maxConstantSlots = 8

// binding is the state set on the context; it survives frames until ClearState.
type binding struct {
	target       *renderTargetView
	viewport     gpu.Viewport
	scissor      gpu.Rect
	hasViewport  bool
	hasScissor   bool
	layout       *inputLayout
	state        pipeline.State
	vertex       *buffer
	vertexOffset uint64
	index        *buffer
	indexFormat  gpu.IndexFormat
	indexOffset  uint64
	vs, fs       *shaderModule
	constants    [maxConstantSlots]*buffer
}

// context records into one command encoder per frame. A clear is held until the next render
// pass opens so that it becomes the pass load operation.
type context struct {
	gpu.ObjectBase
	device *device
	bound  binding

	encoder      *wgpu.CommandEncoder
	pass         *wgpu.RenderPassEncoder
	pendingClear *[4]float32
}

var _ gpu.Context = &context{}

func newContext(d *device) *context {
	return &context{
		ObjectBase: gpu.NewObjectBase(d.tracker, gpu.KindContext, "immediate"),
		device:     d,
	}
}

func (c *context) ClearRenderTargetView(view gpu.RenderTargetView, color [4]float32) {
	if _, ok := view.(*renderTargetView); !ok {
		return
	}
	c.endPass()
	c.pendingClear = &color
}

func (c *context) SetRenderTarget(view gpu.RenderTargetView) {
	rtv, _ := view.(*renderTargetView)
	c.bound.target = rtv
}

func (c *context) SetViewport(vp gpu.Viewport) {
	c.bound.viewport = vp
	c.bound.hasViewport = true
}

func (c *context) SetScissorRect(rect gpu.Rect) {
	c.bound.scissor = rect
	c.bound.hasScissor = true
}

func (c *context) SetInputLayout(layout gpu.InputLayout) {
	l, _ := layout.(*inputLayout)
	c.bound.layout = l
}

func (c *context) SetPipelineState(state pipeline.State) {
	c.bound.state = state
}

func (c *context) SetVertexBuffer(buf gpu.Buffer, stride, offset uint64) {
	b, _ := buf.(*buffer)
	c.bound.vertex = b
	c.bound.vertexOffset = offset
}

func (c *context) SetIndexBuffer(buf gpu.Buffer, format gpu.IndexFormat, offset uint64) {
	b, _ := buf.(*buffer)
	c.bound.index = b
	c.bound.indexFormat = format
	c.bound.indexOffset = offset
}

func (c *context) SetShaders(vs, fs gpu.Shader) {
	c.bound.vs, _ = vs.(*shaderModule)
	c.bound.fs, _ = fs.(*shaderModule)
}

func (c *context) SetConstantBuffers(start uint32, bufs ...gpu.Buffer) {
	for i, buf := range bufs {
		slot := start + uint32(i)
		if slot >= maxConstantSlots {
			return
		}
		c.bound.constants[slot], _ = buf.(*buffer)
	}
}

func (c *context) UpdateSubresource(buf gpu.Buffer, data []byte) error {
	if err := gpu.CheckUpdatable(buf, data); err != nil {
		return err
	}
	b, ok := buf.(*buffer)
	if !ok {
		return fmt.Errorf("%w: foreign buffer %s", gpu.ErrInvalidDescriptor, buf.Label())
	}
	if err := c.device.queue.WriteBuffer(b.native, 0, data); err != nil {
		return fmt.Errorf("wgpubackend: write %s: %w", b.Label(), err)
	}
	return nil
}

func (c *context) Map(buf gpu.Buffer) ([]byte, error) {
	if err := gpu.CheckMappable(buf); err != nil {
		return nil, err
	}
	b, ok := buf.(*buffer)
	if !ok {
		return nil, fmt.Errorf("%w: foreign buffer %s", gpu.ErrInvalidDescriptor, buf.Label())
	}
	if b.mapped {
		return nil, fmt.Errorf("%w: %s", gpu.ErrAlreadyMapped, b.Label())
	}

	var status wgpu.BufferMapAsyncStatus
	err := b.staging.MapAsync(wgpu.MapModeWrite, 0, b.desc.Size, func(s wgpu.BufferMapAsyncStatus) {
		status = s
	})
	if err != nil {
		return nil, fmt.Errorf("wgpubackend: map %s: %w", b.Label(), err)
	}
	c.device.native.Poll(true, nil)
	if status != wgpu.BufferMapAsyncStatusSuccess {
		return nil, fmt.Errorf("wgpubackend: map %s: status %v", b.Label(), status)
	}
	b.mapped = true
	return b.staging.GetMappedRange(0, uint(b.desc.Size)), nil
}

func (c *context) Unmap(buf gpu.Buffer) error {
	b, ok := buf.(*buffer)
	if !ok || !b.mapped {
		return fmt.Errorf("%w: %s", gpu.ErrNotMapped, buf.Label())
	}
	b.staging.Unmap()
	b.mapped = false

	encoder, err := c.device.native.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{
		Label: b.Label() + " upload",
	})
	if err != nil {
		return fmt.Errorf("wgpubackend: upload %s: %w", b.Label(), err)
	}
	defer encoder.Release()
	if err := encoder.CopyBufferToBuffer(b.staging, 0, b.native, 0, b.desc.Size); err != nil {
		return fmt.Errorf("wgpubackend: upload %s: %w", b.Label(), err)
	}
	cmd, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("wgpubackend: upload %s: %w", b.Label(), err)
	}
	c.device.queue.Submit(cmd)
	cmd.Release()
	return nil
}

func (c *context) DrawIndexed(indexCount, startIndex uint32, baseVertex int32) error {
	if err := c.checkBound(indexCount, startIndex); err != nil {
		return err
	}
	rp, err := c.device.renderPipeline(c.bound.vs, c.bound.fs, c.bound.layout, c.bound.state)
	if err != nil {
		return err
	}
	bg, err := c.device.bindGroup(rp, c.bound.constants[:])
	if err != nil {
		return err
	}
	if err := c.beginPass(); err != nil {
		return err
	}

	c.pass.SetPipeline(rp.native)
	if bg != nil {
		c.pass.SetBindGroup(0, bg, nil)
	}
	if c.bound.hasViewport {
		vp := c.bound.viewport
		c.pass.SetViewport(vp.X, vp.Y, vp.Width, vp.Height, vp.MinDepth, vp.MaxDepth)
	}
	if c.bound.hasScissor {
		r := c.bound.scissor
		c.pass.SetScissorRect(r.X, r.Y, r.Width, r.Height)
	}
	c.pass.SetVertexBuffer(0, c.bound.vertex.native, c.bound.vertexOffset, wgpu.WholeSize)
	c.pass.SetIndexBuffer(c.bound.index.native, indexFormat(c.bound.indexFormat), c.bound.indexOffset, wgpu.WholeSize)
	c.pass.DrawIndexed(indexCount, 1, startIndex, baseVertex, 0)
	return nil
}

func (c *context) checkBound(indexCount, startIndex uint32) error {
	b := c.bound
	switch {
	case b.target == nil:
		return fmt.Errorf("%w: no render target", gpu.ErrIncompleteState)
	case b.vs == nil || b.fs == nil:
		return fmt.Errorf("%w: shaders unbound", gpu.ErrIncompleteState)
	case b.layout == nil:
		return fmt.Errorf("%w: input layout unbound", gpu.ErrIncompleteState)
	case b.state == nil:
		return fmt.Errorf("%w: pipeline state unbound", gpu.ErrIncompleteState)
	case b.vertex == nil:
		return fmt.Errorf("%w: vertex buffer unbound", gpu.ErrIncompleteState)
	case b.index == nil:
		return fmt.Errorf("%w: index buffer unbound", gpu.ErrIncompleteState)
	}
	if b.indexOffset >= b.index.desc.Size {
		return fmt.Errorf("%w: index offset %d past buffer end", gpu.ErrIncompleteState, b.indexOffset)
	}
	capacity := (b.index.desc.Size - b.indexOffset) / b.indexFormat.Size()
	if uint64(startIndex)+uint64(indexCount) > capacity {
		return fmt.Errorf("%w: %d indices from %d exceed %d", gpu.ErrIncompleteState, indexCount, startIndex, capacity)
	}
	return nil
}

// beginPass opens the frame encoder and render pass on first use, acquiring the surface
// texture and consuming any pending clear as the load operation.
func (c *context) beginPass() error {
	if c.pass != nil {
		return nil
	}
	view, err := c.device.swapchainView()
	if err != nil {
		return err
	}
	if c.encoder == nil {
		c.encoder, err = c.device.native.CreateCommandEncoder(nil)
		if err != nil {
			return fmt.Errorf("wgpubackend: create frame encoder: %w", err)
		}
	}

	attachment := wgpu.RenderPassColorAttachment{
		View:    view,
		LoadOp:  wgpu.LoadOpLoad,
		StoreOp: wgpu.StoreOpStore,
	}
	if c.pendingClear != nil {
		attachment.LoadOp = wgpu.LoadOpClear
		attachment.ClearValue = clearValue(*c.pendingClear)
		c.pendingClear = nil
	}
	c.pass = c.encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{attachment},
	})
	return nil
}

func (c *context) endPass() {
	if c.pass == nil {
		return
	}
	c.pass.End()
	c.pass.Release()
	c.pass = nil
}

// flush applies a pending clear, then finishes and submits the frame encoder.
func (c *context) flush() error {
	if c.pendingClear != nil {
		if err := c.beginPass(); err != nil {
			c.pendingClear = nil
			c.discard()
			return err
		}
	}
	c.endPass()
	if c.encoder == nil {
		return nil
	}
	defer c.discard()

	cmd, err := c.encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("wgpubackend: finish frame: %w", err)
	}
	c.device.queue.Submit(cmd)
	cmd.Release()
	return nil
}

func (c *context) discard() {
	c.endPass()
	if c.encoder != nil {
		c.encoder.Release()
		c.encoder = nil
	}
}

func (c *context) ClearState() {
	c.bound = binding{}
}

func (c *context) Release() {
	if !c.MarkReleased() {
		return
	}
	c.pendingClear = nil
	c.discard()
	c.bound = binding{}
}
