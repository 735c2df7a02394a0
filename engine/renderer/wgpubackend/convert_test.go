package wgpubackend

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-cube/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVertexBufferLayout(t *testing.T) {
	layout, err := vertexBufferLayout(scene.VertexLayout())
	require.NoError(t, err)

	assert.Equal(t, scene.VertexLayout().Stride, layout.ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeVertex, layout.StepMode)
	require.Len(t, layout.Attributes, 2)
	assert.Equal(t, wgpu.VertexFormatFloat32x3, layout.Attributes[0].Format)
	assert.Equal(t, uint32(0), layout.Attributes[0].ShaderLocation)
	assert.Equal(t, wgpu.VertexFormatUnorm8x4, layout.Attributes[1].Format)
	assert.Equal(t, uint32(1), layout.Attributes[1].ShaderLocation)
	assert.Equal(t, uint64(12), layout.Attributes[1].Offset)
}

func TestVertexBufferLayoutRejectsUndefinedFormat(t *testing.T) {
	desc := shader.InputLayoutDescriptor{
		Stride:   4,
		Elements: []shader.InputElement{{Semantic: "weight", Location: 0}},
	}
	_, err := vertexBufferLayout(desc)
	assert.ErrorIs(t, err, gpu.ErrInvalidDescriptor)
}

func TestPrimitiveState(t *testing.T) {
	tests := []struct {
		name  string
		state pipeline.State
		want  wgpu.PrimitiveState
	}{
		{
			name:  "defaults",
			state: pipeline.NewState(),
			want: wgpu.PrimitiveState{
				Topology:  wgpu.PrimitiveTopologyTriangleList,
				FrontFace: wgpu.FrontFaceCCW,
				CullMode:  wgpu.CullModeBack,
			},
		},
		{
			name:  "strip without culling",
			state: pipeline.NewState(pipeline.WithTopology(pipeline.TopologyTriangleStrip), pipeline.WithCullMode(pipeline.CullModeNone)),
			want: wgpu.PrimitiveState{
				Topology:         wgpu.PrimitiveTopologyTriangleStrip,
				StripIndexFormat: wgpu.IndexFormatUint16,
				FrontFace:        wgpu.FrontFaceCCW,
				CullMode:         wgpu.CullModeNone,
			},
		},
		{
			name:  "clockwise front culling",
			state: pipeline.NewState(pipeline.WithFrontFace(pipeline.FrontFaceCW), pipeline.WithCullMode(pipeline.CullModeFront)),
			want: wgpu.PrimitiveState{
				Topology:  wgpu.PrimitiveTopologyTriangleList,
				FrontFace: wgpu.FrontFaceCW,
				CullMode:  wgpu.CullModeFront,
			},
		},
		{
			name:  "lines",
			state: pipeline.NewState(pipeline.WithTopology(pipeline.TopologyLineList)),
			want: wgpu.PrimitiveState{
				Topology:  wgpu.PrimitiveTopologyLineList,
				FrontFace: wgpu.FrontFaceCCW,
				CullMode:  wgpu.CullModeBack,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, primitiveState(tt.state))
		})
	}
}

func TestBufferUsage(t *testing.T) {
	assert.Equal(t, wgpu.BufferUsageVertex,
		bufferUsage(gpu.BufferDescriptor{Usage: gpu.UsageImmutable, Bind: gpu.BindVertexBuffer}))
	assert.Equal(t, wgpu.BufferUsageIndex,
		bufferUsage(gpu.BufferDescriptor{Usage: gpu.UsageImmutable, Bind: gpu.BindIndexBuffer}))
	assert.Equal(t, wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst,
		bufferUsage(gpu.BufferDescriptor{Usage: gpu.UsageDefault, Bind: gpu.BindUniformBuffer}))
	assert.Equal(t, wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst,
		bufferUsage(gpu.BufferDescriptor{Usage: gpu.UsageDynamic, Bind: gpu.BindUniformBuffer}))
}

func TestIndexFormat(t *testing.T) {
	assert.Equal(t, wgpu.IndexFormatUint16, indexFormat(gpu.IndexFormatUint16))
	assert.Equal(t, wgpu.IndexFormatUint32, indexFormat(gpu.IndexFormatUint32))
}

func TestFormatRoundTrip(t *testing.T) {
	for _, f := range []gpu.Format{gpu.FormatRGBA8Unorm, gpu.FormatBGRA8Unorm} {
		assert.Equal(t, f, contractFormat(textureFormat(f)))
	}
	assert.Equal(t, wgpu.TextureFormatUndefined, textureFormat(gpu.FormatUnknown))
	assert.Equal(t, gpu.FormatUnknown, contractFormat(wgpu.TextureFormatRGBA16Float))
}

func TestChooseFormat(t *testing.T) {
	supported := []wgpu.TextureFormat{wgpu.TextureFormatBGRA8UnormSrgb, wgpu.TextureFormatRGBA8Unorm}

	got, err := chooseFormat(gpu.FormatRGBA8Unorm, supported)
	require.NoError(t, err)
	assert.Equal(t, wgpu.TextureFormatRGBA8Unorm, got)

	got, err = chooseFormat(gpu.FormatBGRA8Unorm, supported)
	require.NoError(t, err)
	assert.Equal(t, wgpu.TextureFormatBGRA8UnormSrgb, got, "unsupported request falls back to the preferred format")

	_, err = chooseFormat(gpu.FormatBGRA8Unorm, nil)
	assert.ErrorIs(t, err, gpu.ErrInvalidDescriptor)
}

func TestChoosePresentMode(t *testing.T) {
	all := []wgpu.PresentMode{wgpu.PresentModeFifo, wgpu.PresentModeImmediate}
	fifoOnly := []wgpu.PresentMode{wgpu.PresentModeFifo}

	assert.Equal(t, wgpu.PresentModeFifo, choosePresentMode(true, all))
	assert.Equal(t, wgpu.PresentModeImmediate, choosePresentMode(false, all))
	assert.Equal(t, wgpu.PresentModeFifo, choosePresentMode(false, fifoOnly))
}

const testVertexSource = `
struct Model { m: mat4x4<f32> };
struct ViewProjection { m: mat4x4<f32> };
@group(0) @binding(0) var<uniform> model: Model;
@group(0) @binding(1) var<uniform> viewProjection: ViewProjection;

@vertex
fn vs_main(@location(0) position: vec3<f32>) -> @builtin(position) vec4<f32> {
    return viewProjection.m * model.m * vec4<f32>(position, 1.0);
}
`

const testFragmentSource = `
struct Tint { color: vec4<f32> };
@group(0) @binding(1) var<uniform> viewProjection: mat4x4<f32>;
@group(0) @binding(2) var<uniform> tint: Tint;

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return tint.color;
}
`

func TestBindGroupLayoutEntries(t *testing.T) {
	vs, err := shader.NewShader("test vertex", shader.ShaderTypeVertex, testVertexSource)
	require.NoError(t, err)
	fs, err := shader.NewShader("test fragment", shader.ShaderTypeFragment, testFragmentSource)
	require.NoError(t, err)

	entries := bindGroupLayoutEntries(fs, vs)
	require.Len(t, entries, 3)

	assert.Equal(t, uint32(0), entries[0].Binding)
	assert.Equal(t, wgpu.ShaderStageVertex, entries[0].Visibility)
	assert.Equal(t, uint64(64), entries[0].Buffer.MinBindingSize)

	assert.Equal(t, uint32(1), entries[1].Binding)
	assert.Equal(t, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, entries[1].Visibility)

	assert.Equal(t, uint32(2), entries[2].Binding)
	assert.Equal(t, wgpu.ShaderStageFragment, entries[2].Visibility)
	assert.Equal(t, uint64(16), entries[2].Buffer.MinBindingSize)

	for _, e := range entries {
		assert.Equal(t, wgpu.BufferBindingTypeUniform, e.Buffer.Type)
	}
}

func TestClearValue(t *testing.T) {
	assert.Equal(t, wgpu.Color{R: 0.25, G: 0.25, B: 1, A: 1}, clearValue([4]float32{0.25, 0.25, 1, 1}))
}
