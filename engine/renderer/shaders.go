package renderer

import (
	_ "embed"

	"github.com/Carmen-Shannon/oxy-canvas/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

const (
	// TexturePipelineKey identifies the textured quad pipeline.
	TexturePipelineKey = "texture_quad"
	// FillPipelineKey identifies the filled quad pipeline.
	FillPipelineKey = "fill_quad"
)

// Binding indices of the textured quad bind group.
const (
	textureUniformBinding = 0
	textureSamplerBinding = 1
	textureViewBinding    = 2
)

//go:embed assets/texture.wgsl
var textureShaderSource string

//go:embed assets/fill.wgsl
var fillShaderSource string

func textureBindGroupLayout() wgpu.BindGroupLayoutDescriptor {
	var uniforms, sampler, texture wgpu.BindGroupLayoutEntry

	uniforms.Binding = textureUniformBinding
	uniforms.Visibility = wgpu.ShaderStageVertex
	uniforms.Buffer.Type = wgpu.BufferBindingTypeUniform
	uniforms.Buffer.MinBindingSize = 64

	sampler.Binding = textureSamplerBinding
	sampler.Visibility = wgpu.ShaderStageFragment
	sampler.Sampler.Type = wgpu.SamplerBindingTypeFiltering

	texture.Binding = textureViewBinding
	texture.Visibility = wgpu.ShaderStageFragment
	texture.Texture.SampleType = wgpu.TextureSampleTypeFloat
	texture.Texture.ViewDimension = wgpu.TextureViewDimension2D

	return wgpu.BindGroupLayoutDescriptor{
		Label:   "Texture Quad Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{uniforms, sampler, texture},
	}
}

func fillBindGroupLayout() wgpu.BindGroupLayoutDescriptor {
	var uniforms wgpu.BindGroupLayoutEntry
	uniforms.Binding = 0
	uniforms.Visibility = wgpu.ShaderStageVertex | wgpu.ShaderStageFragment
	uniforms.Buffer.Type = wgpu.BufferBindingTypeUniform
	uniforms.Buffer.MinBindingSize = (&FillUniforms{}).Size()

	return wgpu.BindGroupLayoutDescriptor{
		Label:   "Fill Quad Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{uniforms},
	}
}

// newTexturePipeline describes the pipeline drawing one texture as a transformed quad.
func newTexturePipeline() pipeline.Pipeline {
	return pipeline.NewPipeline(TexturePipelineKey, textureShaderSource,
		pipeline.WithBindGroupLayout(0, textureBindGroupLayout()),
	)
}

// newFillPipeline describes the pipeline drawing filled quads with borders and shadows.
func newFillPipeline() pipeline.Pipeline {
	return pipeline.NewPipeline(FillPipelineKey, fillShaderSource,
		pipeline.WithBindGroupLayout(0, fillBindGroupLayout()),
	)
}
