package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// ResourceKind is the kind of GPU resource a bind group layout entry expects.
type ResourceKind int

const (
	// ResourceBuffer is a uniform or storage buffer.
	ResourceBuffer ResourceKind = iota
	// ResourceTexture is a sampled texture view.
	ResourceTexture
	// ResourceSampler is a sampler.
	ResourceSampler
)

// KindOf classifies a layout entry by the binding type it declares.
//
// Parameters:
//   - entry: the layout entry
//
// Returns:
//   - ResourceKind: the kind of resource the entry binds
func KindOf(entry wgpu.BindGroupLayoutEntry) ResourceKind {
	switch {
	case entry.Texture.SampleType != wgpu.TextureSampleTypeUndefined:
		return ResourceTexture
	case entry.Sampler.Type != wgpu.SamplerBindingTypeUndefined:
		return ResourceSampler
	default:
		return ResourceBuffer
	}
}

// texture is a texture, its view and its size.
type texture struct {
	tex           *wgpu.Texture
	view          *wgpu.TextureView
	width, height uint32
}

// bindGroupProvider is the unexported implementation of BindGroupProvider.
type bindGroupProvider struct {
	// label is used for every GPU object created for this provider.
	label string

	// layout is owned by the pipeline that declared it; entries describes it.
	layout  *wgpu.BindGroupLayout
	entries []wgpu.BindGroupLayoutEntry

	// The following fields are GPU resources created by the renderer backend and owned by the provider.

	bindGroup *wgpu.BindGroup
	buffers   map[int]*wgpu.Buffer
	textures  map[int]texture
	samplers  map[int]*wgpu.Sampler
}

// BindGroupProvider holds the GPU resources behind one bind group of a quad: its uniform buffer,
// texture and sampler keyed by binding index, and the bind group tying them together.
//
// Usage pattern:
//  1. Create a provider with the pipeline's layout and its descriptor
//  2. Create the texture and sampler via the backend's InitTextureView and InitSampler
//  3. Create the buffers and the bind group via the backend's InitBindGroup
//  4. Write uniforms and pixels through the backend, then set BindGroup() on the render pass
type BindGroupProvider interface {
	// Release releases every GPU resource held by this provider except the layout.
	Release()

	// Label returns the debug label for this provider.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// Layout returns the layout the bind group is created against.
	//
	// Returns:
	//   - *wgpu.BindGroupLayout: the bind group layout or nil
	Layout() *wgpu.BindGroupLayout

	// Entries returns the layout entries the provider must satisfy.
	//
	// Returns:
	//   - []wgpu.BindGroupLayoutEntry: the entries, in declaration order
	Entries() []wgpu.BindGroupLayoutEntry

	// Missing returns the bindings of texture and sampler entries that have no resource yet.
	// Buffers are not listed; InitBindGroup creates them.
	//
	// Returns:
	//   - []uint32: the binding indices, in declaration order
	Missing() []uint32

	// BindGroup returns the created bind group, or nil before InitBindGroup.
	BindGroup() *wgpu.BindGroup

	// Buffer returns the GPU buffer for a binding, or nil if not set.
	Buffer(binding int) *wgpu.Buffer

	// Texture returns the GPU texture for a binding and its size.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Texture: the texture or nil
	//   - uint32: the width in pixels
	//   - uint32: the height in pixels
	Texture(binding int) (*wgpu.Texture, uint32, uint32)

	// TextureView returns the GPU texture view for a binding, or nil if not set.
	TextureView(binding int) *wgpu.TextureView

	// Sampler returns the GPU sampler for a binding, or nil if not set.
	Sampler(binding int) *wgpu.Sampler

	// SetBindGroup stores the bind group created by the backend.
	SetBindGroup(bg *wgpu.BindGroup)

	// SetBuffer stores a GPU buffer for a binding.
	SetBuffer(binding int, buf *wgpu.Buffer)

	// SetTexture stores a GPU texture, its view and its size for a binding.
	//
	// Parameters:
	//   - binding: the binding index
	//   - tex: the texture
	//   - view: the view over tex
	//   - width, height: the texture size in pixels
	SetTexture(binding int, tex *wgpu.Texture, view *wgpu.TextureView, width, height uint32)

	// SetSampler stores a GPU sampler for a binding.
	SetSampler(binding int, s *wgpu.Sampler)
}

var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates a new BindGroupProvider with the provided options.
//
// Parameters:
//   - label: a debug label used for every GPU object created for the provider
//   - options: a variadic list of options to configure the provider
//
// Returns:
//   - BindGroupProvider: a new instance of BindGroupProvider configured with the provided options
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label:    label,
		buffers:  make(map[int]*wgpu.Buffer),
		textures: make(map[int]texture),
		samplers: make(map[int]*wgpu.Sampler),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) Layout() *wgpu.BindGroupLayout {
	return p.layout
}

func (p *bindGroupProvider) Entries() []wgpu.BindGroupLayoutEntry {
	return p.entries
}

func (p *bindGroupProvider) Missing() []uint32 {
	var missing []uint32
	for _, e := range p.entries {
		switch KindOf(e) {
		case ResourceTexture:
			if p.textures[int(e.Binding)].view == nil {
				missing = append(missing, e.Binding)
			}
		case ResourceSampler:
			if p.samplers[int(e.Binding)] == nil {
				missing = append(missing, e.Binding)
			}
		}
	}
	return missing
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return p.buffers[binding]
}

func (p *bindGroupProvider) Texture(binding int) (*wgpu.Texture, uint32, uint32) {
	t := p.textures[binding]
	return t.tex, t.width, t.height
}

func (p *bindGroupProvider) TextureView(binding int) *wgpu.TextureView {
	return p.textures[binding].view
}

func (p *bindGroupProvider) Sampler(binding int) *wgpu.Sampler {
	return p.samplers[binding]
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	p.bindGroup = bg
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	p.buffers[binding] = buf
}

func (p *bindGroupProvider) SetTexture(binding int, tex *wgpu.Texture, view *wgpu.TextureView, width, height uint32) {
	p.textures[binding] = texture{tex: tex, view: view, width: width, height: height}
}

func (p *bindGroupProvider) SetSampler(binding int, s *wgpu.Sampler) {
	p.samplers[binding] = s
}

// Release drops the bind group before the resources it references.
func (p *bindGroupProvider) Release() {
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	for i, t := range p.textures {
		if t.view != nil {
			t.view.Release()
		}
		if t.tex != nil {
			t.tex.Release()
		}
		delete(p.textures, i)
	}
	for i, s := range p.samplers {
		if s != nil {
			s.Release()
		}
		delete(p.samplers, i)
	}
	for i, buf := range p.buffers {
		if buf != nil {
			buf.Release()
		}
		delete(p.buffers, i)
	}
}
