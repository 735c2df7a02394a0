// Package gputest provides an in-memory implementation of the gpu contract that
// records every call, for testing code written against gpu without a real adapter.
package gputest

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/gpu"
)

// Operation names accepted by FailOn.
const (
	OpEnumerateAdapters      = "EnumerateAdapters"
	OpCreateDevice           = "CreateDevice"
	OpCreateSwapchain        = "CreateSwapchain"
	OpCreateRenderTargetView = "CreateRenderTargetView"
	OpCreateBuffer           = "CreateBuffer"
	OpCompileShader          = "CompileShader"
	OpResizeBuffers          = "ResizeBuffers"
	OpPresent                = "Present"
)

// Release is one entry of the release log.
type Release struct {
	Kind  gpu.ObjectKind
	Label string
}

func (r Release) String() string {
	return fmt.Sprintf("%s:%s", r.Kind, r.Label)
}

// Backend is a fake gpu.Backend. Every device it creates shares its release log and
// failure table.
type Backend struct {
	// Adapters is returned by EnumerateAdapters.
	Adapters []gpu.AdapterInfo

	// Device is the most recently created device.
	Device *Device

	// Releases lists every released object in release order.
	Releases []Release

	// ShaderDiagnostics maps shader keys to compiler output; listed shaders fail to compile.
	ShaderDiagnostics map[string]string

	failures map[string]error
}

var _ gpu.Backend = &Backend{}

// NewBackend creates a fake backend. Without adapters it exposes one hardware adapter.
//
// Parameters:
//   - adapters: the adapters EnumerateAdapters reports
//
// Returns:
//   - *Backend: the fake
func NewBackend(adapters ...gpu.AdapterInfo) *Backend {
	if len(adapters) == 0 {
		adapters = []gpu.AdapterInfo{{Index: 0, Name: "Fake Hardware GPU", Backend: "fake"}}
	}
	return &Backend{
		Adapters:          adapters,
		ShaderDiagnostics: make(map[string]string),
		failures:          make(map[string]error),
	}
}

// FailOn makes the named operation return err until cleared with a nil err.
//
// Parameters:
//   - op: one of the Op constants
//   - err: the error to return, nil to clear
func (b *Backend) FailOn(op string, err error) {
	if err == nil {
		delete(b.failures, op)
		return
	}
	b.failures[op] = err
}

// ReleasedKinds returns the kinds in the release log in order.
func (b *Backend) ReleasedKinds() []gpu.ObjectKind {
	kinds := make([]gpu.ObjectKind, len(b.Releases))
	for i, r := range b.Releases {
		kinds[i] = r.Kind
	}
	return kinds
}

func (b *Backend) fail(op string) error {
	if err, ok := b.failures[op]; ok {
		return fmt.Errorf("gputest: %s: %w", op, err)
	}
	return nil
}

func (b *Backend) logRelease(base *gpu.ObjectBase) {
	b.Releases = append(b.Releases, Release{Kind: base.Kind(), Label: base.Label()})
}

func (b *Backend) EnumerateAdapters() ([]gpu.AdapterInfo, error) {
	if err := b.fail(OpEnumerateAdapters); err != nil {
		return nil, err
	}
	return append([]gpu.AdapterInfo(nil), b.Adapters...), nil
}

func (b *Backend) CreateDevice(adapter gpu.AdapterInfo, desc gpu.DeviceDescriptor) (gpu.Device, error) {
	if err := b.fail(OpCreateDevice); err != nil {
		return nil, err
	}
	tracker := gpu.NewTracker()
	d := &Device{
		ObjectBase: gpu.NewObjectBase(tracker, gpu.KindDevice, desc.Label),
		backend:    b,
		tracker:    tracker,
		adapter:    adapter,
		desc:       desc,
	}
	d.context = &Context{
		ObjectBase: gpu.NewObjectBase(tracker, gpu.KindContext, "immediate"),
		backend:    b,
	}
	b.Device = d
	return d, nil
}
