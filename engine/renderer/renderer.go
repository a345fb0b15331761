package renderer

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-canvas/common"
	"github.com/Carmen-Shannon/oxy-canvas/engine/window"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	storage *Storage
	queue   frameQueue
	inFrame bool

	config backendConfig
}

// backendConfig is collected from builder options before the backend exists.
type backendConfig struct {
	forceFallbackAdapter bool
	presentMode          PresentMode
	clearColor           common.Color
	// pixelated magnifies textures with nearest filtering instead of linear.
	pixelated bool
}

// Renderer defines the interface for the rendering system.
//
// A frame is recorded between BeginFrame and EndFrame: widgets queue filled quads and custom
// primitives through FillQuad and DrawPrimitive, and EndFrame prepares every primitive, encodes
// all items in submission order into a single render pass and submits it. Present then shows
// the frame.
type Renderer interface {
	// GPU returns the resource factory primitives create their GPU objects with.
	//
	// Returns:
	//   - GPU: the resource factory
	GPU() GPU

	// Storage returns the per-widget resource cache shared by every primitive.
	//
	// Returns:
	//   - *Storage: the storage
	Storage() *Storage

	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	// A call to Resize is required after changing this for the new mode to take effect.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// BeginFrame acquires the swapchain texture and starts recording a frame.
	// Must be paired with EndFrame.
	//
	// Returns:
	//   - error: ErrFrameInFlight if the previous frame was not presented, or the acquisition error
	BeginFrame() error

	// FillQuad queues a filled rectangle.
	//
	// Parameters:
	//   - quad: the rectangle, border and shadow
	//   - background: the fill color
	FillQuad(quad Quad, background common.Color)

	// DrawPrimitive queues a custom primitive clipped to bounds.
	//
	// Parameters:
	//   - bounds: the widget bounds in window pixels
	//   - primitive: the primitive to prepare and render
	DrawPrimitive(bounds common.Rect, primitive Primitive)

	// EndFrame prepares every queued primitive, encodes all queued items into one render pass,
	// submits it and releases storage entries no primitive used this frame.
	// Does not present the surface; call Present after EndFrame.
	EndFrame()

	// Present presents the surface to the display and releases the swapchain texture.
	// Must be called once per frame after EndFrame.
	Present()

	// Release frees every GPU resource held by the renderer and its storage.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer instance with the specified backend type for the given window.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - window: the window providing the surface descriptor and initial size
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
//   - error: an error if the GPU device or the built-in pipelines could not be created
func NewRenderer(backendType RendererBackendType, window window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		storage:     NewStorage(),
		config: backendConfig{
			presentMode: PresentModeVSync,
			clearColor:  common.Color{R: 0.1, G: 0.1, B: 0.1, A: 1},
		},
	}

	// The adapter request already depends on the options.
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		b, err := newWGPURendererBackend(window.SurfaceDescriptor(), r.config)
		if err != nil {
			return nil, err
		}
		r.backend = b
	}

	r.backend.SetPresentMode(r.config.presentMode)
	r.backend.ConfigureSurface(window.Width(), window.Height())
	if err := r.backend.RegisterPipelines(); err != nil {
		r.backend.Release()
		return nil, err
	}
	return r, nil
}

func (r *renderer) GPU() GPU {
	return r.backend
}

func (r *renderer) Storage() *Storage {
	return r.storage
}

func (r *renderer) Resize(width, height int) {
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) BeginFrame() error {
	if err := r.backend.BeginFrame(); err != nil {
		return err
	}
	r.mu.Lock()
	r.inFrame = true
	r.queue.take()
	r.mu.Unlock()
	return nil
}

func (r *renderer) FillQuad(quad Quad, background common.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queue.fillQuad(quad, background)
}

func (r *renderer) DrawPrimitive(bounds common.Rect, primitive Primitive) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queue.drawPrimitive(bounds, primitive)
}

func (r *renderer) EndFrame() {
	r.mu.Lock()
	if !r.inFrame {
		r.mu.Unlock()
		return
	}
	r.inFrame = false
	items := r.queue.take()
	r.mu.Unlock()

	prepareItems(items, r.backend, r.storage, r.backend.Viewport())
	r.backend.EncodeFrame(items, r.storage)
	r.storage.Sweep()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Release() {
	r.storage.Release()
	r.backend.Release()
}
