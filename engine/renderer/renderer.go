package renderer

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-cube/common"
	"github.com/Carmen-Shannon/oxy-cube/engine/logging"
	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-cube/engine/scene"
	"github.com/charmbracelet/log"
)

// Frame carries the per-frame uniform values.
type Frame struct {
	Model          common.Mat4
	ViewProjection common.Mat4
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	backend gpu.Backend
	logger  *log.Logger

	// Pre-creation config collected from builder options
	presentMode  PresentMode
	bufferCount  int
	debug        bool
	skipAdapters []string

	initialized bool
	adapter     gpu.AdapterInfo
	dc          *deviceContext
	surface     *surface
	assets      *sceneAssets
	uniforms    *uniformBuffers
	clearColor  [4]float32
}

// Renderer drives a gpu.Backend through the lifetime of one window: device and swapchain
// creation, scene asset upload, per-frame uniform writes and draws, resizing and shutdown.
// It is used from a single goroutine.
type Renderer interface {
	// Init selects a hardware adapter, creates the device, the swapchain and the backbuffer view.
	// Anything created before a failure is released.
	//
	// Parameters:
	//   - width: the initial surface width in pixels
	//   - height: the initial surface height in pixels
	//
	// Returns:
	//   - error: ErrAlreadyInitialized on a second call, gpu.ErrNoHardwareAdapter when no adapter qualifies,
	//     or the wrapped creation failure
	Init(width, height int) error

	// Initialized reports whether Init succeeded and Shutdown has not run since.
	Initialized() bool

	// Adapter returns the adapter selected by Init.
	Adapter() gpu.AdapterInfo

	// LoadScene builds the GPU assets and uniform buffers for a scene, replacing the assets of
	// any previous scene, and adopts the scene's clear colour.
	//
	// Parameters:
	//   - s: the scene to upload
	//
	// Returns:
	//   - error: a wrapped *gpu.ShaderCompileError, shader.ErrInputLayoutMismatch or creation failure
	LoadScene(s scene.Scene) error

	// Resize releases the backbuffer view, records the new size, resizes the swapchain buffers and
	// recreates the view. A zero dimension invalidates the surface until the next non-zero resize.
	// On failure the surface is left invalid and frames are skipped.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	//
	// Returns:
	//   - error: if the swapchain could not be resized or the view recreated
	Resize(width, height int) error

	// Size returns the recorded surface size.
	Size() (width, height int)

	// Aspect returns width / height of the surface, 1 when a dimension is zero.
	Aspect() float32

	// SurfaceValid reports whether frames can currently be rendered.
	SurfaceValid() bool

	// SetClearColor replaces the colour the backbuffer is cleared to each frame.
	//
	// Parameters:
	//   - color: RGBA in [0,1]
	SetClearColor(color [4]float32)

	// ClearColor returns the current clear colour.
	ClearColor() [4]float32

	// RenderFrame writes the uniforms, clears, draws the scene geometry and presents.
	// Nothing is recorded while the surface is invalid.
	//
	// Parameters:
	//   - frame: the uniform values for this frame
	//
	// Returns:
	//   - bool: true when a frame was presented
	//   - error: if a uniform write, the draw or the present failed
	RenderFrame(frame Frame) (bool, error)

	// Device returns the device, nil before Init.
	Device() gpu.Device

	// Shutdown releases every GPU object in reverse order of creation. It is safe to call after
	// a failed Init and more than once.
	Shutdown()
}

var _ Renderer = &renderer{}

// NewRenderer creates a renderer over a backend. No GPU object is created until Init.
//
// Parameters:
//   - backend: the gpu implementation bound to the target window
//   - options: variadic list of RendererBuilderOption functions
//
// Returns:
//   - Renderer: the renderer
func NewRenderer(backend gpu.Backend, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		backend:      backend,
		logger:       logging.Default(),
		presentMode:  PresentModeUncapped,
		bufferCount:  2,
		skipAdapters: DefaultSkipAdapters,
	}
	for _, option := range options {
		option(r)
	}
	return r
}

func (r *renderer) Init(width, height int) error {
	if r.initialized {
		return ErrAlreadyInitialized
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	adapters, err := r.backend.EnumerateAdapters()
	if err != nil {
		return fmt.Errorf("renderer: enumerate adapters: %w", err)
	}
	for _, a := range adapters {
		r.logger.Debug("adapter", "index", a.Index, "name", a.Name, "software", a.Software, "backend", a.Backend)
	}
	adapter, err := SelectAdapter(adapters, r.skipAdapters)
	if err != nil {
		return err
	}

	dc, err := newDeviceContext(r.backend, adapter, r.debug)
	if err != nil {
		return err
	}

	surf, err := newSurface(dc.device, gpu.SwapchainDescriptor{
		Width:       width,
		Height:      height,
		BufferCount: r.bufferCount,
		Format:      gpu.FormatUnknown,
		VSync:       r.presentMode == PresentModeVSync,
	})
	if err != nil {
		dc.release(r.logger)
		return err
	}

	r.adapter = adapter
	r.dc = dc
	r.surface = surf
	r.initialized = true
	r.logger.Info("renderer initialized", "adapter", adapter.Name, "width", width, "height", height, "buffers", r.bufferCount)
	return nil
}

func (r *renderer) Initialized() bool {
	return r.initialized
}

func (r *renderer) Adapter() gpu.AdapterInfo {
	return r.adapter
}

func (r *renderer) LoadScene(s scene.Scene) error {
	if !r.initialized {
		return ErrNotInitialized
	}
	r.releaseScene()

	assets, err := newSceneAssets(r.dc.device, s, r.logger)
	if err != nil {
		return err
	}
	uniforms, err := newUniformBuffers(r.dc.device)
	if err != nil {
		if assets != nil {
			assets.release()
		}
		return err
	}

	r.assets = assets
	r.uniforms = uniforms
	r.clearColor = s.ClearColor()
	r.logger.Debug("scene loaded", "scene", s.Name(), "geometry", assets != nil)
	return nil
}

func (r *renderer) Resize(width, height int) error {
	if !r.initialized {
		return ErrNotInitialized
	}
	return r.surface.resize(width, height)
}

func (r *renderer) Size() (int, int) {
	if r.surface == nil {
		return 0, 0
	}
	return r.surface.width, r.surface.height
}

func (r *renderer) Aspect() float32 {
	if r.surface == nil {
		return 1
	}
	return r.surface.aspect()
}

func (r *renderer) SurfaceValid() bool {
	return r.surface != nil && r.surface.valid
}

func (r *renderer) SetClearColor(color [4]float32) {
	r.clearColor = color
}

func (r *renderer) ClearColor() [4]float32 {
	return r.clearColor
}

func (r *renderer) RenderFrame(frame Frame) (bool, error) {
	if !r.initialized {
		return false, ErrNotInitialized
	}
	if !r.surface.valid {
		return false, nil
	}

	ctx := r.dc.context
	if r.uniforms != nil {
		if err := WriteModel(ctx, r.uniforms.model, frame.Model); err != nil {
			return false, err
		}
		if err := WriteViewProjection(ctx, r.uniforms.viewProjection, frame.ViewProjection); err != nil {
			return false, err
		}
	}

	view := r.surface.view
	ctx.ClearRenderTargetView(view, r.clearColor)
	ctx.SetRenderTarget(view)
	ctx.SetViewport(r.surface.viewport())
	ctx.SetScissorRect(r.surface.scissor())

	if a := r.assets; a != nil {
		ctx.SetInputLayout(a.inputLayout)
		ctx.SetVertexBuffer(a.vertexBuffer, a.stride, 0)
		ctx.SetIndexBuffer(a.indexBuffer, gpu.IndexFormatUint16, 0)
		ctx.SetShaders(a.vertexShader, a.fragmentShader)
		ctx.SetConstantBuffers(ModelSlot, r.uniforms.model, r.uniforms.viewProjection)
		ctx.SetPipelineState(a.state)
		if err := ctx.DrawIndexed(a.indexCount, 0, 0); err != nil {
			if errors.Is(err, gpu.ErrSurfaceLost) {
				return false, r.recoverSurface(err)
			}
			return false, fmt.Errorf("renderer: draw: %w", err)
		}
	}

	if err := r.surface.swapchain.Present(); err != nil {
		if errors.Is(err, gpu.ErrSurfaceLost) {
			return false, r.recoverSurface(err)
		}
		return false, fmt.Errorf("renderer: present: %w", err)
	}
	return true, nil
}

// recoverSurface reconfigures the swapchain at the last known size after the surface was lost.
// The frame is dropped either way.
func (r *renderer) recoverSurface(lost error) error {
	r.logger.Warn("surface lost, reconfiguring", "width", r.surface.width, "height", r.surface.height)
	if err := r.surface.resize(r.surface.width, r.surface.height); err != nil {
		return errors.Join(lost, err)
	}
	return nil
}

func (r *renderer) Device() gpu.Device {
	if r.dc == nil {
		return nil
	}
	return r.dc.device
}

func (r *renderer) releaseScene() {
	if r.assets != nil {
		r.assets.release()
		r.assets = nil
	}
	if r.uniforms != nil {
		r.uniforms.release()
		r.uniforms = nil
	}
}

func (r *renderer) Shutdown() {
	if r.dc == nil {
		return
	}
	r.releaseScene()
	if r.surface != nil {
		r.surface.release()
		r.surface = nil
	}
	r.dc.release(r.logger)
	r.dc = nil
	r.initialized = false
	r.logger.Debug("renderer shut down")
}
