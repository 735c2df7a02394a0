package wgpubackend

import (
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

var vertexFormats = map[shader.VertexFormat]wgpu.VertexFormat{
	shader.VertexFormatFloat32:   wgpu.VertexFormatFloat32,
	shader.VertexFormatFloat32x2: wgpu.VertexFormatFloat32x2,
	shader.VertexFormatFloat32x3: wgpu.VertexFormatFloat32x3,
	shader.VertexFormatFloat32x4: wgpu.VertexFormatFloat32x4,
	shader.VertexFormatUnorm8x4:  wgpu.VertexFormatUnorm8x4,
	shader.VertexFormatUint32:    wgpu.VertexFormatUint32,
	shader.VertexFormatSint32:    wgpu.VertexFormatSint32,
}

// vertexBufferLayout translates an input layout table into the single interleaved
// vertex buffer layout of a render pipeline.
func vertexBufferLayout(desc shader.InputLayoutDescriptor) (wgpu.VertexBufferLayout, error) {
	attrs := make([]wgpu.VertexAttribute, 0, len(desc.Elements))
	for _, el := range desc.Elements {
		format, ok := vertexFormats[el.Format]
		if !ok {
			return wgpu.VertexBufferLayout{}, fmt.Errorf("%w: element %q has format %s", gpu.ErrInvalidDescriptor, el.Semantic, el.Format)
		}
		attrs = append(attrs, wgpu.VertexAttribute{
			Format:         format,
			Offset:         el.Offset,
			ShaderLocation: el.Location,
		})
	}
	return wgpu.VertexBufferLayout{
		ArrayStride: desc.Stride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attrs,
	}, nil
}

func primitiveState(state pipeline.State) wgpu.PrimitiveState {
	ps := wgpu.PrimitiveState{
		Topology:  wgpu.PrimitiveTopologyTriangleList,
		FrontFace: wgpu.FrontFaceCCW,
		CullMode:  wgpu.CullModeBack,
	}
	switch state.Topology() {
	case pipeline.TopologyTriangleStrip:
		ps.Topology = wgpu.PrimitiveTopologyTriangleStrip
		ps.StripIndexFormat = wgpu.IndexFormatUint16
	case pipeline.TopologyLineList:
		ps.Topology = wgpu.PrimitiveTopologyLineList
	case pipeline.TopologyPointList:
		ps.Topology = wgpu.PrimitiveTopologyPointList
	}
	switch state.CullMode() {
	case pipeline.CullModeFront:
		ps.CullMode = wgpu.CullModeFront
	case pipeline.CullModeNone:
		ps.CullMode = wgpu.CullModeNone
	}
	if state.FrontFace() == pipeline.FrontFaceCW {
		ps.FrontFace = wgpu.FrontFaceCW
	}
	return ps
}

func indexFormat(f gpu.IndexFormat) wgpu.IndexFormat {
	if f == gpu.IndexFormatUint32 {
		return wgpu.IndexFormatUint32
	}
	return wgpu.IndexFormatUint16
}

func bufferUsage(desc gpu.BufferDescriptor) wgpu.BufferUsage {
	var usage wgpu.BufferUsage
	if desc.Bind.Has(gpu.BindVertexBuffer) {
		usage |= wgpu.BufferUsageVertex
	}
	if desc.Bind.Has(gpu.BindIndexBuffer) {
		usage |= wgpu.BufferUsageIndex
	}
	if desc.Bind.Has(gpu.BindUniformBuffer) {
		usage |= wgpu.BufferUsageUniform
	}
	if desc.Usage != gpu.UsageImmutable {
		usage |= wgpu.BufferUsageCopyDst
	}
	return usage
}

func textureFormat(f gpu.Format) wgpu.TextureFormat {
	switch f {
	case gpu.FormatRGBA8Unorm:
		return wgpu.TextureFormatRGBA8Unorm
	case gpu.FormatBGRA8Unorm:
		return wgpu.TextureFormatBGRA8Unorm
	default:
		return wgpu.TextureFormatUndefined
	}
}

func contractFormat(f wgpu.TextureFormat) gpu.Format {
	switch f {
	case wgpu.TextureFormatRGBA8Unorm:
		return gpu.FormatRGBA8Unorm
	case wgpu.TextureFormatBGRA8Unorm:
		return gpu.FormatBGRA8Unorm
	default:
		return gpu.FormatUnknown
	}
}

// chooseFormat keeps the requested format when the surface supports it and otherwise falls
// back to the surface's preferred format.
func chooseFormat(requested gpu.Format, supported []wgpu.TextureFormat) (wgpu.TextureFormat, error) {
	if len(supported) == 0 {
		return wgpu.TextureFormatUndefined, fmt.Errorf("%w: surface reports no formats", gpu.ErrInvalidDescriptor)
	}
	if want := textureFormat(requested); want != wgpu.TextureFormatUndefined && slices.Contains(supported, want) {
		return want, nil
	}
	return supported[0], nil
}

// choosePresentMode maps vsync to FIFO, which every surface supports, and uncapped to
// immediate when available.
func choosePresentMode(vsync bool, supported []wgpu.PresentMode) wgpu.PresentMode {
	if !vsync && slices.Contains(supported, wgpu.PresentModeImmediate) {
		return wgpu.PresentModeImmediate
	}
	return wgpu.PresentModeFifo
}

func bindGroupLayoutEntries(stages ...shader.Shader) []wgpu.BindGroupLayoutEntry {
	var entries []wgpu.BindGroupLayoutEntry
	for _, s := range stages {
		visibility := wgpu.ShaderStageVertex
		if s.ShaderType() == shader.ShaderTypeFragment {
			visibility = wgpu.ShaderStageFragment
		}
		for _, u := range s.Uniforms() {
			if u.Group != 0 {
				continue
			}
			i := slices.IndexFunc(entries, func(e wgpu.BindGroupLayoutEntry) bool { return e.Binding == u.Binding })
			if i >= 0 {
				entries[i].Visibility |= visibility
				continue
			}
			entry := wgpu.BindGroupLayoutEntry{
				Binding:    u.Binding,
				Visibility: visibility,
			}
			entry.Buffer.Type = wgpu.BufferBindingTypeUniform
			entry.Buffer.MinBindingSize = u.Size
			entries = append(entries, entry)
		}
	}
	slices.SortFunc(entries, func(a, b wgpu.BindGroupLayoutEntry) int { return int(a.Binding) - int(b.Binding) })
	return entries
}

func clearValue(c [4]float32) wgpu.Color {
	return wgpu.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2]), A: float64(c[3])}
}
