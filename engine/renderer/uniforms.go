package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-cube/common"
	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/shader"
)

// Constant buffer slots, matching @group(0) @binding(n) in the built-in shaders.
const (
	ModelSlot          uint32 = 0
	ViewProjectionSlot uint32 = 1
)

// uniformSize is the byte size of one mat4x4<f32> uniform.
const uniformSize uint64 = 64

// uniformBuffers holds the per-frame uniform state. The model matrix lives in a default
// buffer written by copy; the view-projection lives in a dynamic buffer written by mapping.
type uniformBuffers struct {
	model          gpu.Buffer
	viewProjection gpu.Buffer
}

func newUniformBuffers(device gpu.Device) (*uniformBuffers, error) {
	model, err := device.CreateBuffer(gpu.BufferDescriptor{
		Label: "model uniform",
		Size:  uniformSize,
		Usage: gpu.UsageDefault,
		Bind:  gpu.BindUniformBuffer,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("renderer: create model uniform: %w", err)
	}
	viewProjection, err := device.CreateBuffer(gpu.BufferDescriptor{
		Label: "view-projection uniform",
		Size:  uniformSize,
		Usage: gpu.UsageDynamic,
		Bind:  gpu.BindUniformBuffer,
	}, nil)
	if err != nil {
		model.Release()
		return nil, fmt.Errorf("renderer: create view-projection uniform: %w", err)
	}
	return &uniformBuffers{model: model, viewProjection: viewProjection}, nil
}

// release drops the view-projection buffer before the model buffer.
func (u *uniformBuffers) release() {
	u.viewProjection.Release()
	u.model.Release()
}

// WriteModel uploads a model matrix into a UsageDefault buffer through UpdateSubresource.
//
// Parameters:
//   - ctx: the immediate context
//   - buf: the model uniform buffer
//   - m: the model matrix
//
// Returns:
//   - error: wrapping gpu.ErrUsageMismatch when buf is not a default buffer
func WriteModel(ctx gpu.Context, buf gpu.Buffer, m common.Mat4) error {
	if err := ctx.UpdateSubresource(buf, m.Bytes()); err != nil {
		return fmt.Errorf("renderer: write model uniform: %w", err)
	}
	return nil
}

// WriteViewProjection rewrites a UsageDynamic buffer with a view-projection matrix through
// Map and Unmap. The previous contents are discarded.
//
// Parameters:
//   - ctx: the immediate context
//   - buf: the view-projection uniform buffer
//   - m: the combined view-projection matrix
//
// Returns:
//   - error: wrapping gpu.ErrUsageMismatch when buf is not a dynamic buffer
func WriteViewProjection(ctx gpu.Context, buf gpu.Buffer, m common.Mat4) error {
	mem, err := ctx.Map(buf)
	if err != nil {
		return fmt.Errorf("renderer: map view-projection uniform: %w", err)
	}
	copy(mem, m.Bytes())
	if err := ctx.Unmap(buf); err != nil {
		return fmt.Errorf("renderer: unmap view-projection uniform: %w", err)
	}
	return nil
}

// checkUniformBindings verifies that every uniform a shader declares at group 0 on one of the
// constant buffer slots is sized for a mat4, and that the vertex stage declares both slots.
func checkUniformBindings(vs, fs shader.Shader) error {
	for _, s := range []shader.Shader{vs, fs} {
		for _, u := range s.Uniforms() {
			if u.Group != 0 || (u.Binding != ModelSlot && u.Binding != ViewProjectionSlot) {
				return fmt.Errorf("%w: %s declares %q at group %d binding %d", ErrUniformLayout, s.Key(), u.Name, u.Group, u.Binding)
			}
			if u.Size != uniformSize {
				return fmt.Errorf("%w: %s uniform %q is %d bytes, want %d", ErrUniformLayout, s.Key(), u.Name, u.Size, uniformSize)
			}
		}
	}
	for _, slot := range []uint32{ModelSlot, ViewProjectionSlot} {
		if _, ok := vs.Uniform(0, slot); !ok {
			return fmt.Errorf("%w: %s does not declare binding %d", ErrUniformLayout, vs.Key(), slot)
		}
	}
	return nil
}
