package gputest

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/pipeline"
)

// Call is one recorded context operation.
type Call struct {
	Op string
	// Target is the label of the object the call addressed, if any.
	Target string
}

func (c Call) String() string {
	if c.Target == "" {
		return c.Op
	}
	return c.Op + " " + c.Target
}

// DrawCall is the bound state captured by one DrawIndexed.
type DrawCall struct {
	IndexCount      uint32
	StartIndex      uint32
	BaseVertex      int32
	RenderTarget    gpu.RenderTargetView
	Viewport        gpu.Viewport
	Scissor         gpu.Rect
	InputLayout     gpu.InputLayout
	State           pipeline.State
	VertexBuffer    gpu.Buffer
	VertexStride    uint64
	IndexBuffer     gpu.Buffer
	IndexFormat     gpu.IndexFormat
	VertexShader    gpu.Shader
	FragmentShader  gpu.Shader
	ConstantBuffers []gpu.Buffer
}

// Frame groups the calls recorded between two presents.
type Frame struct {
	Calls []Call
	Draws []DrawCall
	// Clears holds the colour of each ClearRenderTargetView in the frame.
	Clears [][4]float32
}

// Context is a fake immediate context that records calls and bound state.
type Context struct {
	gpu.ObjectBase
	backend *Backend

	// Calls lists every call since creation.
	Calls []Call
	// Frames lists completed frames, one per Present.
	Frames []Frame

	current Frame
	bound   DrawCall
}

var _ gpu.Context = &Context{}

// Ops returns the operation names of every recorded call.
func (c *Context) Ops() []string {
	ops := make([]string, len(c.Calls))
	for i, call := range c.Calls {
		ops[i] = call.Op
	}
	return ops
}

// Pending returns the calls recorded since the last present.
func (c *Context) Pending() Frame {
	return c.current
}

func (c *Context) record(op, target string) {
	call := Call{Op: op, Target: target}
	c.Calls = append(c.Calls, call)
	c.current.Calls = append(c.current.Calls, call)
}

func (c *Context) endFrame() {
	c.Frames = append(c.Frames, c.current)
	c.current = Frame{}
}

func (c *Context) ClearRenderTargetView(view gpu.RenderTargetView, color [4]float32) {
	c.record("ClearRenderTargetView", view.Label())
	c.current.Clears = append(c.current.Clears, color)
}

func (c *Context) SetRenderTarget(view gpu.RenderTargetView) {
	c.record("SetRenderTarget", labelOf(view))
	c.bound.RenderTarget = view
}

func (c *Context) SetViewport(vp gpu.Viewport) {
	c.record("SetViewport", "")
	c.bound.Viewport = vp
}

func (c *Context) SetScissorRect(rect gpu.Rect) {
	c.record("SetScissorRect", "")
	c.bound.Scissor = rect
}

func (c *Context) SetInputLayout(layout gpu.InputLayout) {
	c.record("SetInputLayout", labelOf(layout))
	c.bound.InputLayout = layout
}

func (c *Context) SetPipelineState(state pipeline.State) {
	target := ""
	if state != nil {
		target = state.Key()
	}
	c.record("SetPipelineState", target)
	c.bound.State = state
}

func (c *Context) SetVertexBuffer(buf gpu.Buffer, stride, offset uint64) {
	c.record("SetVertexBuffer", labelOf(buf))
	c.bound.VertexBuffer = buf
	c.bound.VertexStride = stride
}

func (c *Context) SetIndexBuffer(buf gpu.Buffer, format gpu.IndexFormat, offset uint64) {
	c.record("SetIndexBuffer", labelOf(buf))
	c.bound.IndexBuffer = buf
	c.bound.IndexFormat = format
}

func (c *Context) SetShaders(vs, fs gpu.Shader) {
	c.record("SetShaders", labelOf(vs)+","+labelOf(fs))
	c.bound.VertexShader = vs
	c.bound.FragmentShader = fs
}

func (c *Context) SetConstantBuffers(start uint32, bufs ...gpu.Buffer) {
	c.record("SetConstantBuffers", "")
	need := int(start) + len(bufs)
	for len(c.bound.ConstantBuffers) < need {
		c.bound.ConstantBuffers = append(c.bound.ConstantBuffers, nil)
	}
	copy(c.bound.ConstantBuffers[start:], bufs)
}

func (c *Context) UpdateSubresource(buf gpu.Buffer, data []byte) error {
	c.record("UpdateSubresource", buf.Label())
	if err := gpu.CheckUpdatable(buf, data); err != nil {
		return err
	}
	fb, ok := buf.(*Buffer)
	if !ok {
		return fmt.Errorf("%w: foreign buffer %q", gpu.ErrInvalidDescriptor, buf.Label())
	}
	if fb.Released() {
		return fmt.Errorf("%w: %s", gpu.ErrReleased, fb.Label())
	}
	copy(fb.Data, data)
	return nil
}

func (c *Context) Map(buf gpu.Buffer) ([]byte, error) {
	c.record("Map", buf.Label())
	if err := gpu.CheckMappable(buf); err != nil {
		return nil, err
	}
	fb, ok := buf.(*Buffer)
	if !ok {
		return nil, fmt.Errorf("%w: foreign buffer %q", gpu.ErrInvalidDescriptor, buf.Label())
	}
	if fb.Released() {
		return nil, fmt.Errorf("%w: %s", gpu.ErrReleased, fb.Label())
	}
	if fb.mapped != nil {
		return nil, fmt.Errorf("%w: %s", gpu.ErrAlreadyMapped, fb.Label())
	}
	// previous contents are discarded on every Map
	fb.mapped = make([]byte, fb.desc.Size)
	return fb.mapped, nil
}

func (c *Context) Unmap(buf gpu.Buffer) error {
	c.record("Unmap", buf.Label())
	fb, ok := buf.(*Buffer)
	if !ok || fb.mapped == nil {
		return fmt.Errorf("%w: %s", gpu.ErrNotMapped, buf.Label())
	}
	copy(fb.Data, fb.mapped)
	fb.mapped = nil
	return nil
}

func (c *Context) DrawIndexed(indexCount, startIndex uint32, baseVertex int32) error {
	c.record("DrawIndexed", fmt.Sprint(indexCount))
	b := c.bound
	if b.RenderTarget == nil || b.VertexShader == nil || b.FragmentShader == nil || b.InputLayout == nil ||
		b.VertexBuffer == nil || b.IndexBuffer == nil || b.State == nil {
		return gpu.ErrIncompleteState
	}
	if capacity := b.IndexBuffer.Desc().Size / b.IndexFormat.Size(); uint64(startIndex)+uint64(indexCount) > capacity {
		return fmt.Errorf("%w: %d indices from %d exceed buffer of %d", gpu.ErrIncompleteState, indexCount, startIndex, capacity)
	}
	b.IndexCount = indexCount
	b.StartIndex = startIndex
	b.BaseVertex = baseVertex
	b.ConstantBuffers = append([]gpu.Buffer(nil), c.bound.ConstantBuffers...)
	c.current.Draws = append(c.current.Draws, b)
	return nil
}

func (c *Context) ClearState() {
	c.record("ClearState", "")
	c.bound = DrawCall{}
}

func (c *Context) Release() {
	if c.MarkReleased() {
		c.backend.logRelease(&c.ObjectBase)
	}
}

func labelOf(o gpu.Object) string {
	if o == nil {
		return ""
	}
	return o.Label()
}
