package camera

import "github.com/Carmen-Shannon/oxy-canvas/common"

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithScale sets the initial zoom factor. It is clamped to the scale bounds.
//
// Parameters:
//   - scale: the initial zoom factor
//
// Returns:
//   - CameraControllerOption: functional option to set the scale
func WithScale(scale float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.scale = scale
	}
}

// WithOffset sets the initial canvas offset.
//
// Parameters:
//   - offset: the offset of the surface relative to the widget bounds
//
// Returns:
//   - CameraControllerOption: functional option to set the offset
func WithOffset(offset common.Vec2) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.offset = offset
	}
}

// WithScaleBounds sets the minimum and maximum zoom factors. A non-positive minimum falls back to MinScale.
//
// Parameters:
//   - min: smallest zoom factor
//   - max: largest zoom factor
//
// Returns:
//   - CameraControllerOption: functional option to set scale bounds
func WithScaleBounds(min, max float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minScale = min
		cc.maxScale = max
	}
}

// WithZoomSpeed sets the multiplier applied to wheel deltas.
//
// Parameters:
//   - speed: multiplier for zoom input
//
// Returns:
//   - CameraControllerOption: functional option to set zoom speed
func WithZoomSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoomSpeed = speed
	}
}
