package renderer

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-canvas/common"
	"github.com/Carmen-Shannon/oxy-canvas/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-canvas/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat *wgpu.TextureFormat
	viewport      common.Size
	presentMode   wgpu.PresentMode
	clearColor    common.Color
	magFilter     wgpu.FilterMode

	texturePipeline pipeline.Pipeline
	fillPipeline    pipeline.Pipeline
	// fillSlots holds one uniform buffer and bind group per filled quad of a frame. The pool
	// grows to the largest quad count seen and is reused across frames.
	fillSlots []bind_group_provider.BindGroupProvider

	// Frame state between BeginFrame and Present
	frameEncoder *wgpu.CommandEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

type wgpuRendererBackend interface {
	GPU

	// ConfigureSurface is a wrapper for boilerplate logic required when calling ConfigureSurface on a surface.
	// This is required when the surface size changes, such as when the window is resized.
	// A zero size leaves the surface unconfigured until the next call with a usable size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	ConfigureSurface(width, height int)

	// Viewport returns the size of the configured surface.
	//
	// Returns:
	//   - common.Size: the surface size in pixels
	Viewport() common.Size

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// RegisterPipelines creates the built-in texture and fill pipelines. Must be called after the
	// first ConfigureSurface so the surface format is known.
	//
	// Returns:
	//   - error: an error if a pipeline could not be created
	RegisterPipelines() error

	// RegisterRenderPipeline creates the shader module, bind group layouts, pipeline layout and
	// render pipeline for p, and stores the GPU objects back on p.
	//
	// Parameters:
	//   - p: the pipeline object containing the source code and configuration for the pipeline
	//
	// Returns:
	//   - error: an error if the pipeline could not be created, otherwise nil
	RegisterRenderPipeline(p pipeline.Pipeline) error

	// InitBindGroup creates the buffers the provider's layout entries declare and the bind group
	// joining them with the provider's texture views and samplers, which must exist already.
	//
	// Parameters:
	//   - provider: the BindGroupProvider holding the layout entries and receiving the resources
	//
	// Returns:
	//   - error: an error naming the missing bindings, or the GPU error
	InitBindGroup(provider bind_group_provider.BindGroupProvider) error

	// InitTextureView creates a GPU texture and texture view based on the provided staging data, and stores both on the given BindGroupProvider.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created texture view on
	//   - bindingKey: the integer key identifying the bind group layout entry for this texture
	//   - stagingData: the TextureStagingData containing the raw texture data and metadata for creating the texture
	//
	// Returns:
	//   - error: an error if the texture view could not be created or initialized, otherwise nil
	InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error

	// InitSampler creates a GPU sampler based on the provided staging data, and stores it on the given BindGroupProvider.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created sampler on
	//   - bindingKey: the integer key identifying the bind group layout entry for this sampler
	//   - samplerStagingData: the SamplerStagingData containing the configuration for creating the sampler
	//
	// Returns:
	//   - error: an error if the sampler could not be created or initialized, otherwise nil
	InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error

	// WriteBuffer queues a write of data to the start of the buffer stored on provider at binding.
	//
	// Parameters:
	//   - provider: the BindGroupProvider holding the buffer
	//   - binding: the binding index of the buffer
	//   - data: the bytes to write
	WriteBuffer(provider bind_group_provider.BindGroupProvider, binding int, data []byte)

	// WriteTexture uploads the full contents of the texture stored on provider at binding.
	// Writes whose length does not match the texture size are dropped with a warning.
	//
	// Parameters:
	//   - provider: the BindGroupProvider holding the texture
	//   - binding: the binding index of the texture
	//   - data: width*height*4 bytes of RGBA data
	WriteTexture(provider bind_group_provider.BindGroupProvider, binding int, data []byte)

	// BeginFrame acquires the next swapchain texture and creates the frame's command encoder.
	//
	// Returns:
	//   - error: ErrFrameInFlight, ErrSurfaceUnavailable, or the acquisition error
	BeginFrame() error

	// EncodeFrame writes the uniforms of every filled quad, records one render pass drawing all
	// items in order, and submits it. Primitives must have been prepared beforehand.
	//
	// Parameters:
	//   - items: the frame's draws in submission order
	//   - storage: the per-widget resource cache passed to Render
	EncodeFrame(items []drawItem, storage *Storage)

	// Present presents the surface to the display and releases the swapchain texture.
	// Must be called once per frame after EncodeFrame.
	Present()

	// Release frees the pipelines, the fill quad pool and the device.
	Release()
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

// MaxTextureDimension returns the largest width or height of a canvas texture. The device is
// requested with the default limits, so every adapter supports it.
func MaxTextureDimension() uint32 {
	return wgpu.DefaultLimits().MaxTextureDimension2D
}

// checkTextureSize rejects texture sizes the device cannot allocate.
func checkTextureSize(label string, width, height, limit uint32) error {
	if width == 0 || height == 0 {
		return fmt.Errorf("texture quad %q: zero size %dx%d", label, width, height)
	}
	if width > limit || height > limit {
		return fmt.Errorf("%w: texture quad %q is %dx%d, limit %d", ErrTextureTooLarge, label, width, height, limit)
	}
	return nil
}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, config backendConfig) (wgpuRendererBackend, error) {
	runtime.LockOSThread()
	w := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		clearColor:  config.clearColor,
		magFilter:   wgpu.FilterModeLinear,
	}
	if config.pixelated {
		w.magFilter = wgpu.FilterModeNearest
	}
	w.surface = w.instance.CreateSurface(surfaceDescriptor)

	a, err := w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: config.forceFallbackAdapter,
		CompatibleSurface:    w.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	w.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("request device: %w", err)
	}
	w.device = d
	w.queue = d.GetQueue()

	common.Logger().Info("gpu adapter selected", "fallback", config.forceFallbackAdapter, "pixelated", config.pixelated)
	return w, nil
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	capabilities := b.surface.GetCapabilities(b.adapter)
	if b.surfaceFormat == nil {
		b.surfaceFormat = &capabilities.Formats[0]
	}

	b.viewport = common.Size{Width: float32(max(width, 0)), Height: float32(max(height, 0))}
	if width <= 0 || height <= 0 {
		return
	}

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})
}

func (b *wgpuRendererBackendImpl) Viewport() common.Size {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.viewport
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeVSync:
		b.presentMode = wgpu.PresentModeFifo
	case PresentModeUncapped:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeImmediate
	}
}

func (b *wgpuRendererBackendImpl) RegisterPipelines() error {
	texturePipeline := newTexturePipeline()
	if err := b.RegisterRenderPipeline(texturePipeline); err != nil {
		return fmt.Errorf("register %s: %w", TexturePipelineKey, err)
	}
	fillPipeline := newFillPipeline()
	if err := b.RegisterRenderPipeline(fillPipeline); err != nil {
		texturePipeline.Release()
		return fmt.Errorf("register %s: %w", FillPipelineKey, err)
	}

	b.mu.Lock()
	b.texturePipeline = texturePipeline
	b.fillPipeline = fillPipeline
	b.mu.Unlock()
	return nil
}

func (b *wgpuRendererBackendImpl) RegisterRenderPipeline(p pipeline.Pipeline) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.surfaceFormat == nil {
		return fmt.Errorf("pipeline %q registered before the surface was configured", p.PipelineKey())
	}

	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: p.PipelineKey(),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: p.Source(),
		},
	})
	if err != nil {
		return err
	}
	defer module.Release()

	descriptors := p.BindGroupLayoutDescriptors()
	bindGroupLayouts := make([]*wgpu.BindGroupLayout, len(descriptors))
	for g := range descriptors {
		layout, layoutErr := b.device.CreateBindGroupLayout(&descriptors[g])
		if layoutErr != nil {
			return fmt.Errorf("failed to create bind group layout for group %d: %w", g, layoutErr)
		}
		bindGroupLayouts[g] = layout
	}
	p.SetBindGroupLayouts(bindGroupLayouts)

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            p.PipelineKey(),
		BindGroupLayouts: bindGroupLayouts,
	})
	if err != nil {
		return err
	}
	defer pipelineLayout.Release()

	target := p.ColorTarget(*b.surfaceFormat)

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.PipelineKey() + " Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: p.VertexEntryPoint(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: p.FragmentEntryPoint(),
			Targets:    []wgpu.ColorTargetState{target},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return err
	}

	p.SetRenderPipeline(created)
	return nil
}

func (b *wgpuRendererBackendImpl) InitBindGroup(provider bind_group_provider.BindGroupProvider) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries := provider.Entries()
	if len(entries) == 0 {
		return nil
	}
	layout := provider.Layout()
	if layout == nil {
		return fmt.Errorf("bind group %q has no layout", provider.Label())
	}
	if missing := provider.Missing(); len(missing) > 0 {
		return fmt.Errorf("bind group %q: bindings %v have no texture or sampler", provider.Label(), missing)
	}

	bindGroupEntries := make([]wgpu.BindGroupEntry, len(entries))
	for i, entry := range entries {
		binding := int(entry.Binding)
		bindGroupEntries[i].Binding = entry.Binding

		switch bind_group_provider.KindOf(entry) {
		case bind_group_provider.ResourceTexture:
			bindGroupEntries[i].TextureView = provider.TextureView(binding)
		case bind_group_provider.ResourceSampler:
			bindGroupEntries[i].Sampler = provider.Sampler(binding)
		default:
			buf := provider.Buffer(binding)
			if buf == nil {
				usage := wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst
				if entry.Buffer.Type != wgpu.BufferBindingTypeUniform {
					usage = wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst
				}
				var err error
				buf, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
					Label: provider.Label() + " Buffer",
					Size:  entry.Buffer.MinBindingSize,
					Usage: usage,
				})
				if err != nil {
					return err
				}
				provider.SetBuffer(binding, buf)
			}
			bindGroupEntries[i].Buffer = buf
			bindGroupEntries[i].Size = wgpu.WholeSize
		}
	}

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   provider.Label() + " Bind Group",
		Layout:  layout,
		Entries: bindGroupEntries,
	})
	if err != nil {
		return err
	}
	provider.SetBindGroup(bindGroup)

	return nil
}

func (b *wgpuRendererBackendImpl) InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     provider.Label() + " Texture",
		Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              stagingData.Width,
			Height:             stagingData.Height,
			DepthOrArrayLayers: 1,
		},
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return err
	}

	if stagingData.Pixels != nil {
		b.writeTexture(tex, stagingData.Width, stagingData.Height, stagingData.Pixels)
	}

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return err
	}
	provider.SetTexture(bindingKey, tex, view, stagingData.Width, stagingData.Height)

	return nil
}

func (b *wgpuRendererBackendImpl) InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Zero filter modes select nearest sampling.
	samp, err := b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         provider.Label() + " Sampler",
		AddressModeU:  common.Coalesce(samplerStagingData.AddressModeU, wgpu.AddressModeClampToEdge),
		AddressModeV:  common.Coalesce(samplerStagingData.AddressModeV, wgpu.AddressModeClampToEdge),
		AddressModeW:  common.Coalesce(samplerStagingData.AddressModeW, wgpu.AddressModeClampToEdge),
		MagFilter:     samplerStagingData.MagFilter,
		MinFilter:     samplerStagingData.MinFilter,
		MipmapFilter:  samplerStagingData.MipmapFilter,
		LodMinClamp:   common.Coalesce(samplerStagingData.LodMinClamp, 0.0),
		LodMaxClamp:   common.Coalesce(samplerStagingData.LodMaxClamp, 32.0),
		MaxAnisotropy: common.Coalesce(samplerStagingData.MaxAnisotropy, 1),
	})
	if err != nil {
		return err
	}
	provider.SetSampler(bindingKey, samp)

	return nil
}

func (b *wgpuRendererBackendImpl) WriteBuffer(provider bind_group_provider.BindGroupProvider, binding int, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if buf := provider.Buffer(binding); buf != nil {
		b.queue.WriteBuffer(buf, 0, data)
	}
}

func (b *wgpuRendererBackendImpl) WriteTexture(provider bind_group_provider.BindGroupProvider, binding int, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tex, width, height := provider.Texture(binding)
	if tex == nil {
		return
	}
	if uint64(len(data)) != uint64(width)*uint64(height)*4 {
		common.Logger().Warn("texture write size mismatch", "label", provider.Label(), "bytes", len(data), "width", width, "height", height)
		return
	}
	b.writeTexture(tex, width, height, data)
}

// writeTexture uploads a full texture. Callers hold b.mu.
func (b *wgpuRendererBackendImpl) writeTexture(tex *wgpu.Texture, width, height uint32, data []byte) {
	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		data,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  width * 4,
			RowsPerImage: height,
		},
		&wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
	)
}

func (b *wgpuRendererBackendImpl) NewTextureQuad(label string, width, height uint32) (TextureQuad, error) {
	if err := checkTextureSize(label, width, height, MaxTextureDimension()); err != nil {
		return nil, err
	}

	b.mu.Lock()
	p := b.texturePipeline
	b.mu.Unlock()
	if p == nil {
		return nil, fmt.Errorf("texture quad %q: pipelines not registered", label)
	}

	provider := bind_group_provider.NewBindGroupProvider(label,
		bind_group_provider.WithLayout(p.BindGroupLayout(0), textureBindGroupLayout()),
	)
	if err := b.InitTextureView(provider, textureViewBinding, common.TextureStagingData{Width: width, Height: height}); err != nil {
		provider.Release()
		return nil, err
	}
	if err := b.InitSampler(provider, textureSamplerBinding, common.SamplerStagingData{MagFilter: b.magFilter}); err != nil {
		provider.Release()
		return nil, err
	}
	if err := b.InitBindGroup(provider); err != nil {
		provider.Release()
		return nil, err
	}

	return &wgpuTextureQuad{
		backend:  b,
		pipeline: p,
		provider: provider,
		width:    width,
		height:   height,
	}, nil
}

// ensureFillSlots grows the fill quad pool to at least n slots.
func (b *wgpuRendererBackendImpl) ensureFillSlots(n int) error {
	b.mu.Lock()
	p := b.fillPipeline
	have := len(b.fillSlots)
	b.mu.Unlock()

	if p == nil {
		return fmt.Errorf("fill pipeline not registered")
	}

	for i := have; i < n; i++ {
		provider := bind_group_provider.NewBindGroupProvider(fmt.Sprintf("Fill Quad %d", i),
			bind_group_provider.WithLayout(p.BindGroupLayout(0), fillBindGroupLayout()),
		)
		if err := b.InitBindGroup(provider); err != nil {
			provider.Release()
			return err
		}
		b.mu.Lock()
		b.fillSlots = append(b.fillSlots, provider)
		b.mu.Unlock()
	}
	return nil
}

func (b *wgpuRendererBackendImpl) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Acquiring a second surface texture before presenting the first is a validation error.
	if b.frameSurface != nil {
		return ErrFrameInFlight
	}
	if b.viewport.Width < 1 || b.viewport.Height < 1 {
		return ErrSurfaceUnavailable
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	b.frameEncoder = encoder
	b.frameSurface = surfaceTexture
	b.frameView = view

	return nil
}

func (b *wgpuRendererBackendImpl) EncodeFrame(items []drawItem, storage *Storage) {
	quads := quadCount(items)
	if err := b.ensureFillSlots(quads); err != nil {
		common.Logger().Warn("fill quads skipped", "err", err)
		quads = 0
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameEncoder == nil {
		return
	}

	// Uniform writes are queued before the pass is submitted, so every quad sees its own slot.
	slot := 0
	for _, it := range items {
		if it.primitive != nil || slot >= quads || slot >= len(b.fillSlots) {
			continue
		}
		u := NewFillUniforms(it.quad, it.background, b.viewport)
		b.queue.WriteBuffer(b.fillSlots[slot].Buffer(0), 0, u.Bytes())
		slot++
	}

	pass := b.frameEncoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    b.frameView,
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: wgpu.StoreOpStore,
				ClearValue: wgpu.Color{
					R: float64(b.clearColor.R),
					G: float64(b.clearColor.G),
					B: float64(b.clearColor.B),
					A: float64(b.clearColor.A),
				},
			},
		},
	})

	usable := min(quads, len(b.fillSlots))
	frame := Frame{Pass: pass, Target: b.viewport}
	renderItems(items, storage, frame, func(slot int, quad Quad) {
		if slot >= usable {
			return
		}
		clip := quad.Clip
		if clip == (common.Rect{}) {
			clip = common.Rect{Width: b.viewport.Width, Height: b.viewport.Height}
		}
		x, y, w, h, ok := frame.Scissor(clip)
		if !ok {
			return
		}
		pass.SetPipeline(b.fillPipeline.RenderPipeline())
		pass.SetViewport(0, 0, b.viewport.Width, b.viewport.Height, 0, 1)
		pass.SetScissorRect(x, y, w, h)
		pass.SetBindGroup(0, b.fillSlots[slot].BindGroup(), nil)
		pass.Draw(6, 1, 0, 0)
	})
	pass.End()
	pass.Release()

	commandBuffer, err := b.frameEncoder.Finish(nil)
	if err != nil {
		common.Logger().Warn("frame encoding failed", "err", err)
		b.frameEncoder.Release()
		b.frameEncoder = nil
		return
	}

	b.queue.Submit(commandBuffer)

	commandBuffer.Release()
	b.frameEncoder.Release()
	b.frameEncoder = nil
}

func (b *wgpuRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	// If no frame surface is held, nothing to present.
	if b.frameSurface == nil {
		return
	}
	if b.frameEncoder != nil {
		// The frame was begun but never encoded.
		b.frameEncoder.Release()
		b.frameEncoder = nil
	}

	b.surface.Present()

	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	b.frameSurface.Release()
	b.frameSurface = nil
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, slot := range b.fillSlots {
		slot.Release()
	}
	b.fillSlots = nil
	if b.texturePipeline != nil {
		b.texturePipeline.Release()
		b.texturePipeline = nil
	}
	if b.fillPipeline != nil {
		b.fillPipeline.Release()
		b.fillPipeline = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}
