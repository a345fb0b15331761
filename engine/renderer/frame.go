package renderer

import "github.com/Carmen-Shannon/oxy-canvas/common"

// drawItem is one recorded draw: either a filled quad or a custom primitive.
type drawItem struct {
	// bounds is the primitive's widget bounds; unused for quads
	bounds    common.Rect
	primitive Primitive

	quad       Quad
	background common.Color
}

// frameQueue records the draws of one frame in submission order.
type frameQueue struct {
	items []drawItem
}

func (q *frameQueue) fillQuad(quad Quad, background common.Color) {
	q.items = append(q.items, drawItem{quad: quad, background: background})
}

func (q *frameQueue) drawPrimitive(bounds common.Rect, p Primitive) {
	if p == nil {
		return
	}
	q.items = append(q.items, drawItem{bounds: bounds, primitive: p})
}

// take returns the recorded items and resets the queue.
func (q *frameQueue) take() []drawItem {
	items := q.items
	q.items = nil
	return items
}

// quadCount returns the number of filled quads in items.
func quadCount(items []drawItem) int {
	n := 0
	for _, it := range items {
		if it.primitive == nil {
			n++
		}
	}
	return n
}

// prepareItems runs Prepare on every primitive in submission order.
func prepareItems(items []drawItem, gpu GPU, storage *Storage, viewport common.Size) {
	for _, it := range items {
		if it.primitive != nil {
			it.primitive.Prepare(gpu, storage, it.bounds, viewport)
		}
	}
}

// renderItems encodes every item in submission order. Quads are numbered by their position among
// the frame's quads, which is the uniform slot they were written to. Primitives are clipped to
// their widget bounds.
func renderItems(items []drawItem, storage *Storage, frame Frame, drawQuad func(slot int, quad Quad)) {
	slot := 0
	for _, it := range items {
		if it.primitive == nil {
			drawQuad(slot, it.quad)
			slot++
			continue
		}
		it.primitive.Render(storage, frame, it.bounds)
	}
}
