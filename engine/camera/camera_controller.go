package camera

import "github.com/Carmen-Shannon/oxy-canvas/common"

// CameraController owns the pan/zoom state of one canvas: the offset of the surface's top-left
// corner relative to the widget, the zoom scale, and the middle-button grab gesture.
// All methods are safe for concurrent use.
type CameraController interface {
	// Offset returns the canvas offset relative to the widget bounds.
	//
	// Returns:
	//   - common.Vec2: the current offset in screen pixels
	Offset() common.Vec2

	// SetOffset sets the canvas offset directly.
	//
	// Parameters:
	//   - offset: the new offset in screen pixels
	SetOffset(offset common.Vec2)

	// Scale returns the current zoom factor. It always lies within ScaleBounds.
	//
	// Returns:
	//   - float32: the zoom factor
	Scale() float32

	// ScaleBounds returns the minimum and maximum allowed zoom factors.
	//
	// Returns:
	//   - min, max: the scale bounds
	ScaleBounds() (min, max float32)

	// ZoomSpeed returns the multiplier applied to wheel deltas.
	//
	// Returns:
	//   - float32: the zoom speed
	ZoomSpeed() float32

	// ZoomAt changes the scale by delta*ZoomSpeed, keeping the surface pixel under pointer fixed on
	// screen. It does nothing while a grab is in progress.
	//
	// Parameters:
	//   - pointer: the screen-space anchor position
	//   - delta: the wheel delta in lines, positive zooms in
	//   - bounds: the widget bounds
	//   - surface: the unscaled surface size
	//
	// Returns:
	//   - bool: true if the scale changed
	ZoomAt(pointer common.Vec2, delta float32, bounds common.Rect, surface common.Size) bool

	// ScaleAt sets the scale to target, clamped to the scale bounds, keeping the surface pixel at
	// the center of bounds fixed on screen.
	//
	// Parameters:
	//   - target: the requested zoom factor
	//   - bounds: the widget bounds
	//   - surface: the unscaled surface size
	//
	// Returns:
	//   - bool: true if the scale changed
	ScaleAt(target float32, bounds common.Rect, surface common.Size) bool

	// Center positions the surface in the middle of the widget at the current scale.
	//
	// Parameters:
	//   - bounds: the widget bounds
	//   - surface: the unscaled surface size
	Center(bounds common.Rect, surface common.Size)

	// Grab begins a pan gesture. The anchor is recorded on the first Drag.
	Grab()

	// Drag moves the canvas with the pointer while grabbing. The first call after Grab records the
	// anchor; later calls set the offset so the anchor stays under the pointer.
	//
	// Parameters:
	//   - pointer: the screen-space pointer position
	//
	// Returns:
	//   - bool: true if the offset changed
	Drag(pointer common.Vec2) bool

	// Release ends a pan gesture and clears the anchor.
	Release()

	// IsGrabbing reports whether a pan gesture is in progress.
	//
	// Returns:
	//   - bool: true while grabbing
	IsGrabbing() bool

	// Anchor returns the grab anchor, the pointer position relative to the offset when the drag began.
	//
	// Returns:
	//   - common.Vec2: the anchor
	//   - bool: false if no anchor is recorded
	Anchor() (common.Vec2, bool)

	// Reset cancels any gesture in progress. Offset and scale are kept.
	Reset()
}
