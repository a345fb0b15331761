// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"github.com/chewxy/math32"
	"github.com/cogentcore/webgpu/wgpu"
)

// Vec2 is a 2D vector in screen or surface space.
type Vec2 struct {
	X, Y float32
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Mul returns v scaled by s.
func (v Vec2) Mul(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Div returns v divided by s.
func (v Vec2) Div(s float32) Vec2 { return Vec2{v.X / s, v.Y / s} }

// MulVec returns the component-wise product of v and o.
func (v Vec2) MulVec(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }

// Floor rounds both components down to the nearest integer value.
func (v Vec2) Floor() Vec2 { return Vec2{math32.Floor(v.X), math32.Floor(v.Y)} }

// ApproxEqual reports whether v and o differ by at most eps on each axis.
//
// Parameters:
//   - o: the vector to compare against
//   - eps: the allowed absolute difference per component
//
// Returns:
//   - bool: true if both components are within eps
func (v Vec2) ApproxEqual(o Vec2, eps float32) bool {
	return math32.Abs(v.X-o.X) <= eps && math32.Abs(v.Y-o.Y) <= eps
}

// Size is a 2D extent in pixels.
type Size struct {
	Width, Height float32
}

// Vec2 returns the size as a vector.
func (s Size) Vec2() Vec2 { return Vec2{s.Width, s.Height} }

// Mul returns the size scaled uniformly by f.
func (s Size) Mul(f float32) Size { return Size{s.Width * f, s.Height * f} }

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X, Y          float32
	Width, Height float32
}

// Position returns the top-left corner of the rectangle.
func (r Rect) Position() Vec2 { return Vec2{r.X, r.Y} }

// Size returns the width and height of the rectangle.
func (r Rect) Size() Size { return Size{r.Width, r.Height} }

// Center returns the geometric center of the rectangle.
func (r Rect) Center() Vec2 { return Vec2{r.X + r.Width/2, r.Y + r.Height/2} }

// Contains reports whether p lies inside the rectangle. The left and top edges are inclusive,
// the right and bottom edges are exclusive.
//
// Parameters:
//   - p: the point to test
//
// Returns:
//   - bool: true if p is inside the rectangle
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Expand grows the rectangle by d on every side.
func (r Rect) Expand(d float32) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, Width: r.Width + 2*d, Height: r.Height + 2*d}
}

// Color is a linear RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

var (
	// ColorTransparent is fully transparent black.
	ColorTransparent = Color{}
	// ColorBlack is opaque black.
	ColorBlack = Color{A: 1}
	// ColorWhite is opaque white.
	ColorWhite = Color{R: 1, G: 1, B: 1, A: 1}
)

// Premultiplied returns the color with RGB multiplied by alpha.
func (c Color) Premultiplied() Color {
	return Color{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}

// PackRGBA packs the color into a little-endian RGBA pixel (R in the lowest byte).
//
// Returns:
//   - uint32: the packed pixel value
func (c Color) PackRGBA() uint32 {
	ch := func(v float32) uint32 {
		return uint32(math32.Round(Clamp(v, 0, 1) * 255))
	}
	return ch(c.R) | ch(c.G)<<8 | ch(c.B)<<16 | ch(c.A)<<24
}

// TextureStagingData holds RGBA pixel data for a texture binding pending GPU upload.
// This is used by the BindGroupProvider to stage texture data before creating the GPU texture and bind group.
type TextureStagingData struct {
	// Pixels is the byte slice representing the actual pixel data for the texture. It should be in RGBA format, with 4 bytes per pixel.
	// A nil slice creates the texture without an initial upload.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
}

// SamplerStagingData holds the configuration for a sampler binding pending GPU creation.
// Zero-valued fields fall back to the renderer defaults.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW specify the addressing mode for texture coordinates outside the [0, 1] range in each dimension (U, V, W).
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter specifies the filtering mode for mipmap level selection.
	MipmapFilter wgpu.MipmapFilterMode
	// LodMinClamp and LodMaxClamp specify the minimum and maximum level of detail (LOD) for mipmapping.
	LodMinClamp, LodMaxClamp float32
	// MaxAnisotropy specifies the maximum anisotropy level for anisotropic filtering.
	MaxAnisotropy uint16
}
