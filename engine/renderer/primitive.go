package renderer

import "github.com/Carmen-Shannon/oxy-canvas/common"

// Primitive is a custom GPU drawable recorded by a widget during Draw.
//
// Each frame the renderer calls Prepare on every recorded primitive, in submission order, before
// the render pass begins; then it calls Render on each one inside the pass. Uploads made in
// Prepare are therefore visible to every draw of the frame.
type Primitive interface {
	// Prepare creates or updates the GPU resources the primitive needs and uploads its data.
	// Failures are handled internally by skipping the frame's work; Prepare never panics on a
	// missing or dropped resource.
	//
	// Parameters:
	//   - gpu: the resource factory
	//   - storage: the per-widget resource cache that persists across frames
	//   - bounds: the widget bounds in window pixels
	//   - viewport: the size of the render target in pixels
	Prepare(gpu GPU, storage *Storage, bounds common.Rect, viewport common.Size)

	// Render encodes the primitive's draw calls.
	//
	// Parameters:
	//   - storage: the per-widget resource cache
	//   - frame: the render pass being recorded
	//   - clip: the scissor rectangle in window pixels
	Render(storage *Storage, frame Frame, clip common.Rect)
}

// Border is the outline of a Quad.
type Border struct {
	Color common.Color
	Width float32
}

// Shadow is the drop shadow of a Quad.
type Shadow struct {
	Color  common.Color
	Offset common.Vec2
	Blur   float32
}

// Quad is a filled rectangle with an optional border and drop shadow.
type Quad struct {
	Bounds common.Rect
	Border Border
	Shadow Shadow
	// Clip restricts drawing to a rectangle in window pixels. The zero Rect draws unclipped.
	Clip common.Rect
}
