package renderer

import "github.com/Carmen-Shannon/oxy-canvas/common"

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPresentMode sets how frames are delivered to the display. The default is PresentModeVSync.
//
// Parameters:
//   - mode: the PresentMode to use
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.config.presentMode = mode
	}
}

// WithClearColor sets the colour behind every canvas, visible wherever the image does not cover
// the window.
//
// Parameters:
//   - c: the clear color
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear color option to a renderer
func WithClearColor(c common.Color) RendererBuilderOption {
	return func(r *renderer) {
		r.config.clearColor = c
	}
}

// WithForceSoftwareRenderer requests the CPU fallback adapter. It needs a software Vulkan ICD
// such as lavapipe or SwiftShader.
//
// Parameters:
//   - force: true to request the fallback adapter
//
// Returns:
//   - RendererBuilderOption: a function that applies the option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.config.forceFallbackAdapter = force
	}
}

// WithPixelated magnifies canvas textures with nearest filtering, so single pixels stay sharp
// squares when zoomed in. By default magnification is linear.
//
// Parameters:
//   - pixelated: true for nearest magnification
//
// Returns:
//   - RendererBuilderOption: a function that applies the option to a renderer
func WithPixelated(pixelated bool) RendererBuilderOption {
	return func(r *renderer) {
		r.config.pixelated = pixelated
	}
}
