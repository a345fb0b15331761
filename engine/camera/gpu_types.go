package camera

import (
	"unsafe"

	"github.com/Carmen-Shannon/oxy-canvas/common"
)

// Uniforms is the GPU-aligned representation of the texture quad uniform buffer.
// Matches the WGSL Uniforms struct of the texture shader (64 bytes, one mat4x4<f32>).
type Uniforms struct {
	Transform [16]float32 // offset 0: unit quad to clip space (column-major)
}

// NewUniforms builds the transform that places the unit quad on screen: an orthographic projection
// over the widget viewport, then the canvas offset, then the texture size, then the zoom.
//
// Parameters:
//   - offset: the canvas offset relative to the widget bounds
//   - zoom: the zoom factor
//   - screen: the widget size, which is also the viewport size
//   - texture: the unscaled texture size
//
// Returns:
//   - Uniforms: the uniform block ready for upload
func NewUniforms(offset common.Vec2, zoom float32, screen, texture common.Size) Uniforms {
	var proj, tr, size, scale, tmp [16]float32
	common.Ortho(proj[:], 0, screen.Width, screen.Height, 0, 0, 1)
	common.Translation(tr[:], offset.X, offset.Y, 0)
	common.Scaling(size[:], texture.Width, texture.Height, 1)
	common.Scaling(scale[:], zoom, zoom, 1)

	var u Uniforms
	common.Mul4(tmp[:], proj[:], tr[:])
	common.Mul4(u.Transform[:], tmp[:], size[:])
	common.Mul4(tmp[:], u.Transform[:], scale[:])
	u.Transform = tmp
	return u
}

// Size returns the size of the Uniforms struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (u *Uniforms) Size() int {
	return int(unsafe.Sizeof(*u))
}

// Bytes returns a byte view of the uniform block for GPU upload.
//
// Returns:
//   - []byte: the 64-byte view; it aliases u
func (u *Uniforms) Bytes() []byte {
	return common.StructToBytes(u)
}
