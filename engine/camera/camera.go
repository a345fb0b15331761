// Package camera holds the 2D pan/zoom state of a texture canvas and the transforms between
// screen space and surface space.
package camera

import "github.com/Carmen-Shannon/oxy-canvas/common"

const (
	// MinScale is the smallest zoom factor a canvas can display.
	MinScale float32 = 1.0
	// MaxScale is the largest zoom factor a canvas can display.
	MaxScale float32 = 1600.0
)

// ScreenToSurface maps a screen-space pointer position to surface-local pixel coordinates.
// It is the exact inverse of the transform written by NewUniforms and of SurfaceToScreen.
//
// Parameters:
//   - bounds: the widget bounds in screen space
//   - pointer: the pointer position in screen space
//   - offset: the canvas offset relative to the widget bounds
//   - scale: the zoom factor, must be greater than zero
//
// Returns:
//   - common.Vec2: the pointer position in surface pixels, possibly outside the surface
func ScreenToSurface(bounds common.Rect, pointer, offset common.Vec2, scale float32) common.Vec2 {
	return pointer.Sub(offset).Div(scale).Sub(bounds.Position().Div(scale))
}

// SurfaceToScreen maps surface-local pixel coordinates to a screen-space position.
//
// Parameters:
//   - bounds: the widget bounds in screen space
//   - local: the position in surface pixels
//   - offset: the canvas offset relative to the widget bounds
//   - scale: the zoom factor
//
// Returns:
//   - common.Vec2: the screen-space position
func SurfaceToScreen(bounds common.Rect, local, offset common.Vec2, scale float32) common.Vec2 {
	return local.Mul(scale).Add(offset).Add(bounds.Position())
}

// CanvasBounds returns the screen-space rectangle covered by the surface at the given offset and scale.
//
// Parameters:
//   - bounds: the widget bounds in screen space
//   - offset: the canvas offset relative to the widget bounds
//   - scale: the zoom factor
//   - surface: the unscaled surface size
//
// Returns:
//   - common.Rect: the displayed surface rectangle
func CanvasBounds(bounds common.Rect, offset common.Vec2, scale float32, surface common.Size) common.Rect {
	pos := bounds.Position().Add(offset)
	size := surface.Mul(scale)
	return common.Rect{X: pos.X, Y: pos.Y, Width: size.Width, Height: size.Height}
}
