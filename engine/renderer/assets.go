package renderer

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-cube/engine/scene"
	"github.com/charmbracelet/log"
)

// sceneAssets holds the GPU objects built once from a scene's geometry and shaders.
type sceneAssets struct {
	vertexShader   gpu.Shader
	fragmentShader gpu.Shader
	inputLayout    gpu.InputLayout
	vertexBuffer   gpu.Buffer
	indexBuffer    gpu.Buffer
	indexCount     uint32
	stride         uint64
	state          pipeline.State
}

// newSceneAssets compiles the scene shaders, creates the immutable vertex and index buffers and
// validates the input layout. A scene without geometry yields nil assets.
// Anything created before a failure is released.
func newSceneAssets(device gpu.Device, s scene.Scene, logger *log.Logger) (assets *sceneAssets, err error) {
	geo := s.Geometry()
	if geo == nil {
		return nil, nil
	}

	a := &sceneAssets{state: s.PipelineState()}
	defer func() {
		if err != nil {
			a.release()
		}
	}()

	vsSrc, err := shader.NewShader(s.Name()+" vertex", shader.ShaderTypeVertex, s.VertexSource())
	if err != nil {
		return nil, fmt.Errorf("renderer: reflect vertex shader: %w", err)
	}
	fsSrc, err := shader.NewShader(s.Name()+" fragment", shader.ShaderTypeFragment, s.FragmentSource())
	if err != nil {
		return nil, fmt.Errorf("renderer: reflect fragment shader: %w", err)
	}
	if err = checkUniformBindings(vsSrc, fsSrc); err != nil {
		return nil, err
	}

	if a.vertexShader, err = compileShader(device, vsSrc, logger); err != nil {
		return nil, err
	}
	if a.fragmentShader, err = compileShader(device, fsSrc, logger); err != nil {
		return nil, err
	}

	layout := s.VertexLayout()
	if a.inputLayout, err = device.CreateInputLayout(layout, a.vertexShader); err != nil {
		return nil, fmt.Errorf("renderer: create input layout: %w", err)
	}
	a.stride = layout.Stride

	vertices := geo.VertexBytes()
	if a.vertexBuffer, err = device.CreateBuffer(gpu.BufferDescriptor{
		Label: s.Name() + " vertices",
		Size:  uint64(len(vertices)),
		Usage: gpu.UsageImmutable,
		Bind:  gpu.BindVertexBuffer,
	}, vertices); err != nil {
		return nil, fmt.Errorf("renderer: create vertex buffer: %w", err)
	}

	indices := geo.IndexBytes()
	if a.indexBuffer, err = device.CreateBuffer(gpu.BufferDescriptor{
		Label: s.Name() + " indices",
		Size:  uint64(len(indices)),
		Usage: gpu.UsageImmutable,
		Bind:  gpu.BindIndexBuffer,
	}, indices); err != nil {
		return nil, fmt.Errorf("renderer: create index buffer: %w", err)
	}
	a.indexCount = geo.IndexCount()

	return a, nil
}

// compileShader compiles one stage and logs compiler diagnostics verbatim.
func compileShader(device gpu.Device, s shader.Shader, logger *log.Logger) (gpu.Shader, error) {
	compiled, err := device.CompileShader(s)
	if err != nil {
		var compileErr *gpu.ShaderCompileError
		if errors.As(err, &compileErr) {
			logger.Error("shader compilation failed", "shader", compileErr.Label, "stage", s.ShaderType())
			logger.Error(compileErr.Diagnostics)
		}
		return nil, fmt.Errorf("renderer: compile %s shader: %w", s.ShaderType(), err)
	}
	return compiled, nil
}

// release drops the input layout, fragment shader, vertex shader, index buffer and vertex
// buffer, in that order. Objects that were never created are skipped.
func (a *sceneAssets) release() {
	for _, o := range []gpu.Object{a.inputLayout, a.fragmentShader, a.vertexShader, a.indexBuffer, a.vertexBuffer} {
		if o != nil {
			o.Release()
		}
	}
	*a = sceneAssets{}
}
