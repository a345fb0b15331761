package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-canvas/common"
	"github.com/chewxy/math32"
)

// cameraControllerImpl is the single implementation of CameraController.
type cameraControllerImpl struct {
	mu *sync.Mutex

	offset common.Vec2
	scale  float32

	minScale  float32
	maxScale  float32
	zoomSpeed float32

	grabbing  bool
	anchor    common.Vec2
	hasAnchor bool
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a new camera controller at scale 1 with no offset.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:        &sync.Mutex{},
		scale:     1.0,
		minScale:  MinScale,
		maxScale:  MaxScale,
		zoomSpeed: 1.0,
	}

	for _, option := range options {
		option(cc)
	}

	if !validScale(cc.minScale) {
		cc.minScale = MinScale
	}
	if !validScale(cc.maxScale) {
		cc.maxScale = MaxScale
	}
	if cc.maxScale < cc.minScale {
		cc.minScale, cc.maxScale = cc.maxScale, cc.minScale
	}
	if !(cc.zoomSpeed > 0) || math32.IsInf(cc.zoomSpeed, 1) {
		cc.zoomSpeed = 1.0
	}
	cc.scale = cc.clampScale(cc.scale)
	return cc
}

func (cc *cameraControllerImpl) Offset() common.Vec2 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.offset
}

func (cc *cameraControllerImpl) SetOffset(offset common.Vec2) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.offset = offset
}

func (cc *cameraControllerImpl) Scale() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.scale
}

func (cc *cameraControllerImpl) ScaleBounds() (min, max float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.minScale, cc.maxScale
}

func (cc *cameraControllerImpl) ZoomSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.zoomSpeed
}

func (cc *cameraControllerImpl) ZoomAt(pointer common.Vec2, delta float32, bounds common.Rect, surface common.Size) bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if cc.grabbing {
		return false
	}
	return cc.rescale(pointer, cc.scale+delta*cc.zoomSpeed, bounds, surface)
}

func (cc *cameraControllerImpl) ScaleAt(target float32, bounds common.Rect, surface common.Size) bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.rescale(bounds.Center(), target, bounds, surface)
}

func (cc *cameraControllerImpl) Center(bounds common.Rect, surface common.Size) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.offset = bounds.Size().Vec2().Div(2).Sub(surface.Mul(cc.scale).Vec2().Div(2))
}

func (cc *cameraControllerImpl) Grab() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.grabbing = true
}

func (cc *cameraControllerImpl) Drag(pointer common.Vec2) bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.grabbing {
		return false
	}
	if !cc.hasAnchor {
		cc.anchor = pointer.Sub(cc.offset)
		cc.hasAnchor = true
		return false
	}
	next := pointer.Sub(cc.anchor)
	if next == cc.offset {
		return false
	}
	cc.offset = next
	return true
}

func (cc *cameraControllerImpl) Release() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.grabbing = false
	cc.hasAnchor = false
	cc.anchor = common.Vec2{}
}

func (cc *cameraControllerImpl) IsGrabbing() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.grabbing
}

func (cc *cameraControllerImpl) Anchor() (common.Vec2, bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.anchor, cc.hasAnchor
}

func (cc *cameraControllerImpl) Reset() {
	cc.Release()
}

// --- internal helpers ---

// rescale applies a new scale while keeping the surface point under pivot fixed on screen.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) rescale(pivot common.Vec2, target float32, bounds common.Rect, surface common.Size) bool {
	if math32.IsNaN(target) {
		return false
	}
	local := ScreenToSurface(bounds, pivot, cc.offset, cc.scale)
	frac := common.Vec2{X: local.X / surface.Width, Y: local.Y / surface.Height}

	prev := cc.scale
	cc.scale = cc.clampScale(target)

	canvas := surface.Mul(cc.scale).Vec2()
	cc.offset = pivot.Sub(canvas.MulVec(frac)).Sub(bounds.Position())
	return cc.scale != prev
}

// validScale reports whether s is a finite positive zoom factor.
func validScale(s float32) bool {
	return s > 0 && !math32.IsInf(s, 1)
}

func (cc *cameraControllerImpl) clampScale(s float32) float32 {
	return common.Clamp(s, cc.minScale, cc.maxScale)
}
