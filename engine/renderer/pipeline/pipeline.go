package pipeline

import (
	"sort"

	"github.com/cogentcore/webgpu/wgpu"
)

const (
	// DefaultVertexEntryPoint is the vertex entry point used when none is configured.
	DefaultVertexEntryPoint = "vs_main"
	// DefaultFragmentEntryPoint is the fragment entry point used when none is configured.
	DefaultFragmentEntryPoint = "fs_main"
)

// pipeline is the implementation of the Pipeline interface.
type pipeline struct {
	// pipelineKey is the unique identifier for this pipeline, used for caching and lookups
	pipelineKey string

	// source is the WGSL module holding both entry points
	source         string
	vertexEntry    string
	fragmentEntry  string
	bindGroupDescs map[int]wgpu.BindGroupLayoutDescriptor

	// The following fields are GPU objects populated by the renderer backend on registration.

	renderPipeline   *wgpu.RenderPipeline
	bindGroupLayouts []*wgpu.BindGroupLayout

	blend BlendMode
}

// BlendMode selects how a quad pipeline composites onto the render target.
type BlendMode int

const (
	// BlendPremultiplied expects premultiplied colours: out = src + dst*(1-src.a).
	BlendPremultiplied BlendMode = iota
	// BlendStraight expects straight alpha: out = src*src.a + dst*(1-src.a).
	BlendStraight
	// BlendOpaque overwrites the target.
	BlendOpaque
)

// Pipeline describes a render pipeline: one WGSL module with a vertex and a fragment entry point,
// the bind group layouts it reads and its color target state. The renderer backend creates the
// GPU objects on registration and stores them back on the Pipeline.
//
// Pipelines draw triangle lists without vertex buffers or culling; shaders derive their
// vertices from the vertex index.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline, used for caching and lookups.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// Source returns the WGSL source of the pipeline's shader module.
	//
	// Returns:
	//   - string: the WGSL source
	Source() string

	// VertexEntryPoint returns the name of the vertex stage entry point.
	VertexEntryPoint() string

	// FragmentEntryPoint returns the name of the fragment stage entry point.
	FragmentEntryPoint() string

	// BindGroupLayoutDescriptors returns the layout descriptors ordered by group index.
	// Missing groups are returned as empty descriptors.
	//
	// Returns:
	//   - []wgpu.BindGroupLayoutDescriptor: one descriptor per group index
	BindGroupLayoutDescriptors() []wgpu.BindGroupLayoutDescriptor

	// BindGroupLayoutDescriptor returns the layout descriptor of a single group.
	//
	// Parameters:
	//   - group: the group index
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the descriptor
	//   - bool: false if the group was never configured
	BindGroupLayoutDescriptor(group int) (wgpu.BindGroupLayoutDescriptor, bool)

	// RenderPipeline returns the GPU pipeline, or nil if the pipeline was not registered yet.
	RenderPipeline() *wgpu.RenderPipeline

	// BindGroupLayout returns the GPU layout created for a group, or nil if not registered.
	//
	// Parameters:
	//   - group: the group index
	//
	// Returns:
	//   - *wgpu.BindGroupLayout: the layout or nil
	BindGroupLayout(group int) *wgpu.BindGroupLayout

	// Blend returns how the pipeline's output is composited onto the target.
	Blend() BlendMode

	// ColorTarget returns the colour target state for a target format, including the blend
	// state of the pipeline's BlendMode.
	//
	// Parameters:
	//   - format: the render target format
	//
	// Returns:
	//   - wgpu.ColorTargetState: the colour target
	ColorTarget(format wgpu.TextureFormat) wgpu.ColorTargetState

	// SetRenderPipeline sets the render pipeline.
	//
	// Parameters:
	//   - p: the WebGPU render pipeline to set
	SetRenderPipeline(p *wgpu.RenderPipeline)

	// SetBindGroupLayouts stores the GPU layouts created for each group index.
	//
	// Parameters:
	//   - layouts: the layouts ordered by group index
	SetBindGroupLayouts(layouts []*wgpu.BindGroupLayout)

	// Release frees the GPU objects created on registration.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline is the entry point to create a new Pipeline.
// Blending defaults to BlendPremultiplied.
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - source: the WGSL source holding the vertex and fragment entry points
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance with the specified configuration
func NewPipeline(pipelineKey, source string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:    pipelineKey,
		source:         source,
		vertexEntry:    DefaultVertexEntryPoint,
		fragmentEntry:  DefaultFragmentEntryPoint,
		bindGroupDescs: make(map[int]wgpu.BindGroupLayoutDescriptor),
		blend:          BlendPremultiplied,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Source() string {
	return p.source
}

func (p *pipeline) VertexEntryPoint() string {
	return p.vertexEntry
}

func (p *pipeline) FragmentEntryPoint() string {
	return p.fragmentEntry
}

func (p *pipeline) BindGroupLayoutDescriptors() []wgpu.BindGroupLayoutDescriptor {
	groups := make([]int, 0, len(p.bindGroupDescs))
	for g := range p.bindGroupDescs {
		groups = append(groups, g)
	}
	sort.Ints(groups)
	if len(groups) == 0 {
		return nil
	}
	out := make([]wgpu.BindGroupLayoutDescriptor, groups[len(groups)-1]+1)
	for _, g := range groups {
		out[g] = p.bindGroupDescs[g]
	}
	return out
}

func (p *pipeline) BindGroupLayoutDescriptor(group int) (wgpu.BindGroupLayoutDescriptor, bool) {
	desc, ok := p.bindGroupDescs[group]
	return desc, ok
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) BindGroupLayout(group int) *wgpu.BindGroupLayout {
	if group < 0 || group >= len(p.bindGroupLayouts) {
		return nil
	}
	return p.bindGroupLayouts[group]
}

func (p *pipeline) Blend() BlendMode {
	return p.blend
}

func (p *pipeline) ColorTarget(format wgpu.TextureFormat) wgpu.ColorTargetState {
	target := wgpu.ColorTargetState{Format: format, WriteMask: wgpu.ColorWriteMaskAll}
	var src wgpu.BlendFactor
	switch p.blend {
	case BlendPremultiplied:
		src = wgpu.BlendFactorOne
	case BlendStraight:
		src = wgpu.BlendFactorSrcAlpha
	default:
		return target
	}
	over := wgpu.BlendComponent{
		SrcFactor: src,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	}
	target.Blend = &wgpu.BlendState{Color: over, Alpha: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	}}
	return target
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

func (p *pipeline) SetBindGroupLayouts(layouts []*wgpu.BindGroupLayout) {
	p.bindGroupLayouts = layouts
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
	for _, l := range p.bindGroupLayouts {
		if l != nil {
			l.Release()
		}
	}
	p.bindGroupLayouts = nil
}
