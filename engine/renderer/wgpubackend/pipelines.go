package wgpubackend

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/google/uuid"
)

// renderPipeline is a native pipeline built from one shader pair, input layout, state and
// surface format.
type renderPipeline struct {
	key             string
	native          *wgpu.RenderPipeline
	layout          *wgpu.PipelineLayout
	bindGroupLayout *wgpu.BindGroupLayout
	bindings        []uint32
	deps            []uuid.UUID
}

func (p *renderPipeline) release() {
	p.native.Release()
	p.layout.Release()
	p.bindGroupLayout.Release()
}

type cachedBindGroup struct {
	native *wgpu.BindGroup
	deps   []uuid.UUID
}

// swapchainView returns the surface view of the frame in flight.
func (d *device) swapchainView() (*wgpu.TextureView, error) {
	if d.swapchain == nil || d.swapchain.Released() {
		return nil, fmt.Errorf("%w: no swapchain", gpu.ErrIncompleteState)
	}
	return d.swapchain.acquire()
}

func (d *device) renderPipeline(vs, fs *shaderModule, layout *inputLayout, state pipeline.State) (*renderPipeline, error) {
	if d.swapchain == nil {
		return nil, fmt.Errorf("%w: no swapchain", gpu.ErrIncompleteState)
	}
	format := d.swapchain.format
	key := strings.Join([]string{vs.ID().String(), fs.ID().String(), layout.ID().String(), state.Key(), fmt.Sprint(format)}, "|")
	if p, ok := d.pipelines[key]; ok {
		return p, nil
	}

	entries := bindGroupLayoutEntries(vs.reflection, fs.reflection)
	bgl, err := d.native.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   key,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpubackend: create bind group layout: %w", err)
	}
	pl, err := d.native.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            key,
		BindGroupLayouts: []*wgpu.BindGroupLayout{bgl},
	})
	if err != nil {
		bgl.Release()
		return nil, fmt.Errorf("wgpubackend: create pipeline layout: %w", err)
	}

	native, err := d.native.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  vs.Label() + " render pipeline",
		Layout: pl,
		Vertex: wgpu.VertexState{
			Module:     vs.native,
			EntryPoint: vs.reflection.EntryPoint(),
			Buffers:    []wgpu.VertexBufferLayout{layout.native},
		},
		Fragment: &wgpu.FragmentState{
			Module:     fs.native,
			EntryPoint: fs.reflection.EntryPoint(),
			Targets: []wgpu.ColorTargetState{
				{
					Format:    format,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: primitiveState(state),
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		pl.Release()
		bgl.Release()
		return nil, fmt.Errorf("wgpubackend: create render pipeline: %w", err)
	}

	p := &renderPipeline{
		key:             key,
		native:          native,
		layout:          pl,
		bindGroupLayout: bgl,
		deps:            []uuid.UUID{vs.ID(), fs.ID(), layout.ID()},
	}
	for _, e := range entries {
		p.bindings = append(p.bindings, e.Binding)
	}
	d.pipelines[key] = p
	return p, nil
}

// bindGroup returns the group 0 bind group holding the constant buffers the pipeline reads.
// It returns nil when the pipeline declares no uniforms.
func (d *device) bindGroup(p *renderPipeline, constants []*buffer) (*wgpu.BindGroup, error) {
	if len(p.bindings) == 0 {
		return nil, nil
	}

	keyParts := []string{p.key}
	deps := []uuid.UUID{}
	entries := make([]wgpu.BindGroupEntry, 0, len(p.bindings))
	for _, binding := range p.bindings {
		if int(binding) >= len(constants) || constants[binding] == nil {
			return nil, fmt.Errorf("%w: no constant buffer at slot %d", gpu.ErrIncompleteState, binding)
		}
		buf := constants[binding]
		keyParts = append(keyParts, buf.ID().String())
		deps = append(deps, buf.ID())
		entries = append(entries, wgpu.BindGroupEntry{
			Binding: binding,
			Buffer:  buf.native,
			Offset:  0,
			Size:    wgpu.WholeSize,
		})
	}
	key := strings.Join(keyParts, "|")
	if bg, ok := d.bindGroups[key]; ok {
		return bg.native, nil
	}

	native, err := d.native.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   "constant buffers",
		Layout:  p.bindGroupLayout,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpubackend: create bind group: %w", err)
	}
	d.bindGroups[key] = &cachedBindGroup{native: native, deps: append(deps, p.deps...)}
	return native, nil
}

// evict drops every cached pipeline and bind group built from the object with the given id.
func (d *device) evict(id uuid.UUID) {
	for key, bg := range d.bindGroups {
		if slices.Contains(bg.deps, id) {
			bg.native.Release()
			delete(d.bindGroups, key)
		}
	}
	for key, p := range d.pipelines {
		if slices.Contains(p.deps, id) {
			p.release()
			delete(d.pipelines, key)
		}
	}
}
