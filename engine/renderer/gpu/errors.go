package gpu

import (
	"errors"
	"fmt"
)

var (
	// ErrNoHardwareAdapter is returned when every enumerated adapter was skipped or none exist.
	ErrNoHardwareAdapter = errors.New("gpu: no hardware adapter available")

	// ErrUsageMismatch is returned when a buffer operation is not allowed by the buffer's usage.
	ErrUsageMismatch = errors.New("gpu: operation not permitted by buffer usage")

	// ErrBackbufferReferenced is returned by ResizeBuffers while a backbuffer image or view is alive.
	ErrBackbufferReferenced = errors.New("gpu: backbuffer still referenced")

	// ErrReleased is returned when an operation targets an object that was already released.
	ErrReleased = errors.New("gpu: object already released")

	// ErrNotMapped is returned by Unmap on a buffer that has no outstanding Map.
	ErrNotMapped = errors.New("gpu: buffer is not mapped")

	// ErrAlreadyMapped is returned by Map on a buffer that is still mapped.
	ErrAlreadyMapped = errors.New("gpu: buffer is already mapped")

	// ErrInvalidDescriptor is returned when a creation descriptor is malformed.
	ErrInvalidDescriptor = errors.New("gpu: invalid descriptor")

	// ErrSurfaceLost is returned when the presentation surface must be reconfigured before use.
	ErrSurfaceLost = errors.New("gpu: surface lost or outdated")

	// ErrIncompleteState is returned by DrawIndexed when a required binding is missing.
	ErrIncompleteState = errors.New("gpu: draw state incomplete")
)

// ShaderCompileError carries the diagnostics a device produced while compiling a shader.
type ShaderCompileError struct {
	// Label is the shader key the compilation was requested for.
	Label string
	// Diagnostics is the compiler output, verbatim.
	Diagnostics string
}

func (e *ShaderCompileError) Error() string {
	return fmt.Sprintf("gpu: shader %q failed to compile: %s", e.Label, e.Diagnostics)
}
