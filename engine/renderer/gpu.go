package renderer

import (
	"github.com/Carmen-Shannon/oxy-canvas/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// GPU creates the GPU resources primitives draw with.
type GPU interface {
	// NewTextureQuad creates a textured quad program: an RGBA8 sRGB texture of the given size,
	// its sampler, a 64-byte uniform buffer holding the quad transform, and the bind group that
	// ties them to the texture pipeline.
	//
	// Parameters:
	//   - label: a debug label for the GPU objects
	//   - width: the texture width in pixels, greater than zero
	//   - height: the texture height in pixels, greater than zero
	//
	// Returns:
	//   - TextureQuad: the new quad program
	//   - error: an error if any GPU object could not be created
	NewTextureQuad(label string, width, height uint32) (TextureQuad, error)
}

// TextureQuad is a texture with everything needed to draw it as a transformed quad.
// The texture cannot be resized; create a new TextureQuad instead.
type TextureQuad interface {
	// Size returns the texture dimensions.
	//
	// Returns:
	//   - width, height: the texture size in pixels
	Size() (width, height uint32)

	// WriteUniforms uploads the quad transform.
	//
	// Parameters:
	//   - data: the uniform block, 64 bytes
	WriteUniforms(data []byte)

	// WriteTexture uploads the full texture contents.
	//
	// Parameters:
	//   - data: width*height*4 bytes of RGBA data
	WriteTexture(data []byte)

	// Draw encodes the quad into the frame's render pass, restricted to clip.
	//
	// Parameters:
	//   - frame: the render pass being recorded
	//   - clip: the scissor rectangle in window pixels
	Draw(frame Frame, clip common.Rect)

	// Release frees the GPU objects.
	Release()
}

// Frame is the render pass of the frame being recorded.
type Frame struct {
	// Pass is the render pass encoder; nil when recording without a GPU.
	Pass *wgpu.RenderPassEncoder
	// Target is the size of the color attachment in pixels.
	Target common.Size
}

// Scissor clamps clip to the frame's color attachment and rounds it to whole pixels.
//
// Parameters:
//   - clip: the rectangle in window pixels
//
// Returns:
//   - x, y, width, height: the scissor rectangle
//   - bool: false if the clamped rectangle is empty
func (f Frame) Scissor(clip common.Rect) (x, y, width, height uint32, ok bool) {
	x0 := common.Clamp(clip.X, 0, f.Target.Width)
	y0 := common.Clamp(clip.Y, 0, f.Target.Height)
	x1 := common.Clamp(clip.X+clip.Width, 0, f.Target.Width)
	y1 := common.Clamp(clip.Y+clip.Height, 0, f.Target.Height)
	if x1-x0 < 1 || y1-y0 < 1 {
		return 0, 0, 0, 0, false
	}
	return uint32(x0), uint32(y0), uint32(x1 - x0), uint32(y1 - y0), true
}
