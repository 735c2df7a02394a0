// Package gpu defines the device capability contract the renderer is written against.
// The contract follows an immediate-context model: a device creates resources, a single
// context records state changes and draws, and a swapchain presents the backbuffer.
package gpu

import (
	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/shader"
	"github.com/google/uuid"
)

// Object is the identity and lifetime shared by every GPU resource.
type Object interface {
	// ID returns the tracker identifier of the object.
	ID() uuid.UUID

	// Kind returns the category of the object.
	Kind() ObjectKind

	// Label returns the label given at creation.
	Label() string

	// Release frees the native resource and untracks the object. Releasing twice is a no-op.
	Release()
}

// Backend is the entry point of a GPU implementation bound to one window surface.
type Backend interface {
	// EnumerateAdapters lists the adapters able to present to the bound surface.
	//
	// Returns:
	//   - []AdapterInfo: adapters in enumeration order
	//   - error: if enumeration itself failed
	EnumerateAdapters() ([]AdapterInfo, error)

	// CreateDevice creates a device on a previously enumerated adapter.
	//
	// Parameters:
	//   - adapter: one of the values returned by EnumerateAdapters
	//   - desc: the device configuration
	//
	// Returns:
	//   - Device: the new device
	//   - error: if the adapter cannot provide the requested feature level
	CreateDevice(adapter AdapterInfo, desc DeviceDescriptor) (Device, error)
}

// Device creates GPU resources and owns the immediate context.
type Device interface {
	Object

	// ImmediateContext returns the single context used to record state and draws.
	ImmediateContext() Context

	// CreateSwapchain creates the presentation chain for the backend's window surface.
	//
	// Parameters:
	//   - desc: the initial size, buffer count, format and presentation mode
	//
	// Returns:
	//   - Swapchain: the presentation chain
	//   - error: if the surface cannot be configured
	CreateSwapchain(desc SwapchainDescriptor) (Swapchain, error)

	// CreateRenderTargetView creates a view over a swapchain image. The view holds its own
	// reference to the image, so the caller may release the image right after.
	//
	// Parameters:
	//   - image: a texture returned by Swapchain.Buffer
	//
	// Returns:
	//   - RenderTargetView: the view
	//   - error: if the image was released or does not belong to this device
	CreateRenderTargetView(image Texture) (RenderTargetView, error)

	// CreateBuffer creates a buffer. Immutable buffers must receive their full contents in
	// initial; other usages may pass nil.
	//
	// Parameters:
	//   - desc: size, usage and bind flags
	//   - initial: optional initial contents, at most desc.Size bytes
	//
	// Returns:
	//   - Buffer: the buffer
	//   - error: wrapping ErrInvalidDescriptor for malformed descriptors
	CreateBuffer(desc BufferDescriptor, initial []byte) (Buffer, error)

	// CompileShader compiles a reflected shader stage into a device module.
	//
	// Parameters:
	//   - s: the parsed shader
	//
	// Returns:
	//   - Shader: the compiled stage
	//   - error: a *ShaderCompileError carrying the diagnostics on failure
	CompileShader(s shader.Shader) (Shader, error)

	// CreateInputLayout binds an explicit vertex element table to a compiled vertex shader.
	//
	// Parameters:
	//   - layout: the element table
	//   - vs: the compiled vertex shader whose input signature the table must satisfy
	//
	// Returns:
	//   - InputLayout: the layout
	//   - error: wrapping shader.ErrInputLayoutMismatch when the table does not fit the shader
	CreateInputLayout(layout shader.InputLayoutDescriptor, vs Shader) (InputLayout, error)

	// LiveObjects returns every object created by this device that has not been released,
	// the device itself included.
	LiveObjects() []LiveObject
}

// Swapchain presents rendered backbuffers to the window.
type Swapchain interface {
	Object

	// Desc returns the current configuration.
	Desc() SwapchainDescriptor

	// Buffer returns a reference to a backbuffer image. The reference must be released.
	//
	// Parameters:
	//   - index: the buffer index, only 0 is addressable
	//
	// Returns:
	//   - Texture: the image reference
	//   - error: for an out of range index
	Buffer(index int) (Texture, error)

	// ResizeBuffers reconfigures the chain. A bufferCount of 0 and FormatUnknown keep the
	// current values. It fails with ErrBackbufferReferenced while any image or view is alive.
	//
	// Parameters:
	//   - bufferCount: the new buffer count, 0 to keep
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	//   - format: the new format, FormatUnknown to keep
	//
	// Returns:
	//   - error: if the chain could not be reconfigured
	ResizeBuffers(bufferCount, width, height int, format Format) error

	// Present submits everything recorded on the immediate context and shows the backbuffer.
	//
	// Returns:
	//   - error: wrapping ErrSurfaceLost when the surface must be resized before the next frame
	Present() error
}

// Texture is a reference to a swapchain image.
type Texture interface {
	Object
	Width() int
	Height() int
}

// RenderTargetView is a bindable view over a swapchain image.
type RenderTargetView interface {
	Object
}

// Buffer is a GPU buffer with fixed usage semantics.
type Buffer interface {
	Object
	Desc() BufferDescriptor
}

// Shader is a compiled shader stage together with its reflection.
type Shader interface {
	Object
	Reflection() shader.Shader
}

// InputLayout is a validated vertex element table.
type InputLayout interface {
	Object
	Desc() shader.InputLayoutDescriptor
}

// Context records state changes, buffer updates and draws against a device.
// State persists across frames until changed or cleared with ClearState.
type Context interface {
	Object

	// ClearRenderTargetView fills the view with a colour.
	//
	// Parameters:
	//   - view: the render target to clear
	//   - color: RGBA in [0,1]
	ClearRenderTargetView(view RenderTargetView, color [4]float32)

	// SetRenderTarget binds the output view for subsequent draws.
	SetRenderTarget(view RenderTargetView)

	// SetViewport sets the rasterizer viewport.
	SetViewport(vp Viewport)

	// SetScissorRect sets the scissor rectangle.
	SetScissorRect(rect Rect)

	// SetInputLayout binds the vertex element table.
	SetInputLayout(layout InputLayout)

	// SetPipelineState binds topology and rasterizer state.
	SetPipelineState(state pipeline.State)

	// SetVertexBuffer binds the vertex buffer at slot 0.
	//
	// Parameters:
	//   - buf: a buffer created with BindVertexBuffer
	//   - stride: the byte size of one vertex
	//   - offset: the byte offset of the first vertex
	SetVertexBuffer(buf Buffer, stride, offset uint64)

	// SetIndexBuffer binds the index buffer.
	//
	// Parameters:
	//   - buf: a buffer created with BindIndexBuffer
	//   - format: the index element type
	//   - offset: the byte offset of the first index
	SetIndexBuffer(buf Buffer, format IndexFormat, offset uint64)

	// SetShaders binds the vertex and fragment stages.
	SetShaders(vs, fs Shader)

	// SetConstantBuffers binds uniform buffers to consecutive slots starting at start.
	// Slot n corresponds to @group(0) @binding(n) in both stages.
	SetConstantBuffers(start uint32, bufs ...Buffer)

	// UpdateSubresource replaces the whole contents of a UsageDefault buffer.
	//
	// Parameters:
	//   - buf: the destination buffer
	//   - data: the new contents, exactly buf.Desc().Size bytes
	//
	// Returns:
	//   - error: wrapping ErrUsageMismatch for any other usage
	UpdateSubresource(buf Buffer, data []byte) error

	// Map exposes the contents of a UsageDynamic buffer for a full rewrite. The previous
	// contents are discarded. The returned slice is valid until Unmap.
	//
	// Parameters:
	//   - buf: the buffer to map
	//
	// Returns:
	//   - []byte: writable memory of buf.Desc().Size bytes
	//   - error: wrapping ErrUsageMismatch for any other usage
	Map(buf Buffer) ([]byte, error)

	// Unmap publishes the bytes written since Map.
	Unmap(buf Buffer) error

	// DrawIndexed draws indexed primitives with the bound state.
	//
	// Parameters:
	//   - indexCount: number of indices to draw
	//   - startIndex: first index to read
	//   - baseVertex: value added to each index
	//
	// Returns:
	//   - error: wrapping ErrIncompleteState when shaders, layout or buffers are unbound
	DrawIndexed(indexCount, startIndex uint32, baseVertex int32) error

	// ClearState unbinds everything and resets state to defaults.
	ClearState()
}
