package bind_group_provider

import "github.com/cogentcore/webgpu/wgpu"

// BindGroupProviderOption is a functional option used to configure a BindGroupProvider during construction.
type BindGroupProviderOption func(*bindGroupProvider)

// WithLayout sets the layout the bind group is created against and the descriptor it was
// created from. The descriptor's entries decide which resources InitBindGroup expects.
//
// Parameters:
//   - layout: the GPU layout, owned by the pipeline
//   - desc: the descriptor layout was created from
//
// Returns:
//   - BindGroupProviderOption: a function that sets the layout for this provider
func WithLayout(layout *wgpu.BindGroupLayout, desc wgpu.BindGroupLayoutDescriptor) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.layout = layout
		p.entries = append([]wgpu.BindGroupLayoutEntry(nil), desc.Entries...)
	}
}
