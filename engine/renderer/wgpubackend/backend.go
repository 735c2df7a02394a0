// Package wgpubackend implements the gpu contract on WebGPU. The immediate context records
// into one command encoder per frame; Present finishes, submits and presents it.
package wgpubackend

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-cube/engine/logging"
	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/gpu"
	"github.com/charmbracelet/log"
	"github.com/cogentcore/webgpu/wgpu"
)

// Backend is the WebGPU gpu.Backend bound to one window surface.
type Backend struct {
	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapters []*wgpu.Adapter
	logger   *log.Logger
}

var _ gpu.Backend = &Backend{}

// BackendBuilderOption is a functional option applied to a Backend during construction via New.
type BackendBuilderOption func(*Backend)

// WithLogger sets the logger used for adapter and device diagnostics.
//
// Parameters:
//   - logger: the logger, nil keeps the package default
//
// Returns:
//   - BackendBuilderOption: a function that applies the logger option to a backend
func WithLogger(logger *log.Logger) BackendBuilderOption {
	return func(b *Backend) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// New creates a WebGPU instance and a surface for the window described by surfaceDescriptor.
//
// Parameters:
//   - surfaceDescriptor: the platform surface of the target window
//   - options: variadic list of BackendBuilderOption functions
//
// Returns:
//   - *Backend: the backend
//   - error: if the surface could not be created
func New(surfaceDescriptor *wgpu.SurfaceDescriptor, options ...BackendBuilderOption) (*Backend, error) {
	b := &Backend{
		instance: wgpu.CreateInstance(nil),
		logger:   logging.Default(),
	}
	for _, option := range options {
		option(b)
	}
	if surfaceDescriptor == nil {
		b.instance.Release()
		return nil, fmt.Errorf("%w: nil surface descriptor", gpu.ErrInvalidDescriptor)
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)
	if b.surface == nil {
		b.instance.Release()
		return nil, fmt.Errorf("%w: surface creation failed", gpu.ErrInvalidDescriptor)
	}
	return b, nil
}

func (b *Backend) EnumerateAdapters() ([]gpu.AdapterInfo, error) {
	b.releaseAdapters()
	b.adapters = b.instance.EnumerateAdapters(nil)

	infos := make([]gpu.AdapterInfo, 0, len(b.adapters))
	for i, a := range b.adapters {
		info := a.GetInfo()
		infos = append(infos, gpu.AdapterInfo{
			Index:    i,
			Name:     info.Name,
			Software: info.AdapterType == wgpu.AdapterTypeCPU,
			Backend:  fmt.Sprint(info.BackendType),
		})
	}
	return infos, nil
}

func (b *Backend) CreateDevice(adapter gpu.AdapterInfo, desc gpu.DeviceDescriptor) (gpu.Device, error) {
	if adapter.Index < 0 || adapter.Index >= len(b.adapters) {
		return nil, fmt.Errorf("%w: adapter %d was not enumerated", gpu.ErrInvalidDescriptor, adapter.Index)
	}
	if desc.FeatureLevel != gpu.FeatureLevelDefault {
		return nil, fmt.Errorf("%w: unsupported feature level %d", gpu.ErrInvalidDescriptor, desc.FeatureLevel)
	}
	native := b.adapters[adapter.Index]

	nd, err := native.RequestDevice(&wgpu.DeviceDescriptor{
		Label: desc.Label,
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("wgpubackend: request device: %w", err)
	}

	tracker := gpu.NewTracker()
	d := &device{
		ObjectBase: gpu.NewObjectBase(tracker, gpu.KindDevice, desc.Label),
		backend:    b,
		adapter:    native,
		native:     nd,
		queue:      nd.GetQueue(),
		tracker:    tracker,
		pipelines:  make(map[string]*renderPipeline),
		bindGroups: make(map[string]*cachedBindGroup),
	}
	d.context = newContext(d)
	b.logger.Debug("device created", "adapter", adapter.Name, "backend", adapter.Backend, "debug", desc.Debug)
	return d, nil
}

// Release frees the surface, the enumerated adapters and the instance. Devices must be
// released first.
func (b *Backend) Release() {
	b.releaseAdapters()
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

func (b *Backend) releaseAdapters() {
	for _, a := range b.adapters {
		a.Release()
	}
	b.adapters = nil
}
