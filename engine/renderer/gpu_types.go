package renderer

import (
	"unsafe"

	"github.com/Carmen-Shannon/oxy-canvas/common"
)

// FillUniforms is the uniform block of the fill pipeline, matching the Quad struct in fill.wgsl.
// Colors are premultiplied; lengths are in window pixels.
type FillUniforms struct {
	Rect        [4]float32
	Color       [4]float32
	BorderColor [4]float32
	ShadowColor [4]float32
	// Shadow holds the shadow offset, the blur radius and the border width.
	Shadow [4]float32
	// Viewport holds the render target size; the last two lanes are padding.
	Viewport [4]float32
}

// NewFillUniforms builds the uniform block for one filled quad.
//
// Parameters:
//   - quad: the rectangle, border and shadow
//   - background: the fill color
//   - viewport: the render target size
//
// Returns:
//   - FillUniforms: the uniform block
func NewFillUniforms(quad Quad, background common.Color, viewport common.Size) FillUniforms {
	return FillUniforms{
		Rect:        [4]float32{quad.Bounds.X, quad.Bounds.Y, quad.Bounds.Width, quad.Bounds.Height},
		Color:       colorLanes(background),
		BorderColor: colorLanes(quad.Border.Color),
		ShadowColor: colorLanes(quad.Shadow.Color),
		Shadow:      [4]float32{quad.Shadow.Offset.X, quad.Shadow.Offset.Y, quad.Shadow.Blur, quad.Border.Width},
		Viewport:    [4]float32{viewport.Width, viewport.Height, 0, 0},
	}
}

// Size returns the byte size of the uniform block.
func (u *FillUniforms) Size() uint64 {
	return uint64(unsafe.Sizeof(*u))
}

// Bytes returns the uniform block as raw bytes for a buffer write.
func (u *FillUniforms) Bytes() []byte {
	return common.StructToBytes(u)
}

func colorLanes(c common.Color) [4]float32 {
	p := c.Premultiplied()
	return [4]float32{p.R, p.G, p.B, p.A}
}
