package gpu

import "fmt"

// ObjectKind names the category of a tracked GPU object.
type ObjectKind string

const (
	KindDevice           ObjectKind = "device"
	KindContext          ObjectKind = "context"
	KindSwapchain        ObjectKind = "swapchain"
	KindTexture          ObjectKind = "texture"
	KindRenderTargetView ObjectKind = "render-target-view"
	KindBuffer           ObjectKind = "buffer"
	KindShader           ObjectKind = "shader"
	KindInputLayout      ObjectKind = "input-layout"
)

// FeatureLevel is the minimum capability set a device is created at.
type FeatureLevel int

const (
	// FeatureLevelDefault requests the portable default limits of the backend.
	FeatureLevelDefault FeatureLevel = iota
)

// Format is a texture pixel format.
type Format int

const (
	// FormatUnknown means "keep current" in ResizeBuffers and "backend preferred" in CreateSwapchain.
	FormatUnknown Format = iota
	FormatRGBA8Unorm
	FormatBGRA8Unorm
)

func (f Format) String() string {
	switch f {
	case FormatUnknown:
		return "unknown"
	case FormatRGBA8Unorm:
		return "rgba8unorm"
	case FormatBGRA8Unorm:
		return "bgra8unorm"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Usage declares how the CPU updates a buffer after creation.
type Usage int

const (
	// UsageDefault buffers are updated by copying through UpdateSubresource.
	UsageDefault Usage = iota
	// UsageImmutable buffers receive their contents at creation and never change.
	UsageImmutable
	// UsageDynamic buffers are rewritten in full through Map and Unmap.
	UsageDynamic
)

func (u Usage) String() string {
	switch u {
	case UsageDefault:
		return "default"
	case UsageImmutable:
		return "immutable"
	case UsageDynamic:
		return "dynamic"
	default:
		return fmt.Sprintf("Usage(%d)", int(u))
	}
}

// BindFlags is the set of pipeline stages a buffer can be bound to.
type BindFlags uint32

const (
	BindVertexBuffer BindFlags = 1 << iota
	BindIndexBuffer
	BindUniformBuffer
)

// Has reports whether every flag in other is set.
func (b BindFlags) Has(other BindFlags) bool {
	return b&other == other
}

// IndexFormat is the element type of an index buffer.
type IndexFormat int

const (
	IndexFormatUint16 IndexFormat = iota
	IndexFormatUint32
)

// Size returns the byte size of one index.
func (f IndexFormat) Size() uint64 {
	if f == IndexFormatUint32 {
		return 4
	}
	return 2
}

// AdapterInfo describes one enumerated adapter.
type AdapterInfo struct {
	// Index is the position of the adapter in enumeration order.
	Index int
	// Name is the driver-reported device name.
	Name string
	// Software is true for CPU rasterizers.
	Software bool
	// Backend names the native API behind the adapter, e.g. "vulkan".
	Backend string
}

// DeviceDescriptor configures device creation.
type DeviceDescriptor struct {
	Label        string
	FeatureLevel FeatureLevel
	// Debug enables live-object reporting when the device is released.
	Debug bool
}

// SwapchainDescriptor configures the presentation chain bound to the window surface.
type SwapchainDescriptor struct {
	Width       int
	Height      int
	BufferCount int
	Format      Format
	// VSync presents on vertical blank when true and immediately otherwise.
	VSync bool
}

// BufferDescriptor configures buffer creation.
type BufferDescriptor struct {
	Label string
	Size  uint64
	Usage Usage
	Bind  BindFlags
}

// Viewport is the rasterizer viewport in pixels with a [0,1] depth range.
type Viewport struct {
	X, Y, Width, Height float32
	MinDepth, MaxDepth  float32
}

// Rect is a scissor rectangle in pixels.
type Rect struct {
	X, Y, Width, Height uint32
}
