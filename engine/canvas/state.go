// Package canvas is a pannable, zoomable texture canvas widget. It turns pointer and wheel events
// into camera changes, reports canvas-local pointer positions to the application and renders the
// observed surface through a cached GPU texture that is only re-uploaded when it changed.
package canvas

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-canvas/common"
	"github.com/Carmen-Shannon/oxy-canvas/engine/camera"
)

// Generations hands out the generation tags of canvas states. Every widget-creation path shares
// one Generations so that two canvas occurrences never carry the same tag.
type Generations struct {
	last atomic.Uint64
}

// NewGenerations creates a counter whose first tag is 1.
func NewGenerations() *Generations {
	return &Generations{}
}

// Next returns a tag never returned before by this counter.
func (g *Generations) Next() uint64 {
	return g.last.Add(1)
}

// State is the persistent interaction state of one canvas occurrence.
//
// Gesture state (offset, scale, grab) lives in the camera controller; State adds hover tracking,
// the generation tag and the pending one-shot operations that wait for known bounds.
type State struct {
	mu *sync.Mutex

	camera     camera.CameraController
	generation uint64

	hovered       bool
	pendingCenter bool
	pendingScale  *float32
}

// NewState creates the state of a canvas occurrence.
//
// Parameters:
//   - generation: the tag identifying this occurrence to the renderer cache
//   - options: camera options, typically the default scale and scale bounds
//
// Returns:
//   - *State: the new state
func NewState(generation uint64, options ...camera.CameraControllerOption) *State {
	return &State{
		mu:         &sync.Mutex{},
		camera:     camera.NewCameraController(options...),
		generation: generation,
	}
}

// Camera returns the controller holding the offset, scale and grab gesture.
func (s *State) Camera() camera.CameraController {
	return s.camera
}

// Offset returns the canvas offset relative to the widget origin.
func (s *State) Offset() common.Vec2 {
	return s.camera.Offset()
}

// Scale returns the current zoom factor.
func (s *State) Scale() float32 {
	return s.camera.Scale()
}

// IsGrabbing reports whether a pan gesture is in progress.
func (s *State) IsGrabbing() bool {
	return s.camera.IsGrabbing()
}

// GrabAnchor returns the anchor of the current drag, if one was recorded.
func (s *State) GrabAnchor() (common.Vec2, bool) {
	return s.camera.Anchor()
}

// IsHovered reports whether the pointer was over the displayed image at the last event.
func (s *State) IsHovered() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hovered
}

// Generation returns the tag assigned at construction.
func (s *State) Generation() uint64 {
	return s.generation
}

// RequestCenter asks for the image to be centred on the next update with known bounds.
func (s *State) RequestCenter() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingCenter = true
}

// RequestScale asks for the scale to be set on the next update with known bounds. A second
// request before the first is applied replaces it.
//
// Parameters:
//   - scale: the requested scale; clamped when applied
func (s *State) RequestScale(scale float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingScale = &scale
}

// Pending reports the one-shot operations waiting to be applied.
//
// Returns:
//   - center: true if a center request is pending
//   - scale: the pending scale, nil if none
func (s *State) Pending() (center bool, scale *float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingCenter, s.pendingScale
}

// Reset cancels the gesture in progress and clears hover. Offset and scale are kept.
func (s *State) Reset() {
	s.mu.Lock()
	s.hovered = false
	s.mu.Unlock()
	s.camera.Reset()
}

// setHovered stores the hover flag and reports the previous value.
func (s *State) setHovered(hovered bool) (was bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	was, s.hovered = s.hovered, hovered
	return was
}

// applyPending consumes the pending operations, center first.
//
// Returns:
//   - applied: true if any operation was consumed
//   - scaled: true if the scale changed
func (s *State) applyPending(bounds common.Rect, surface common.Size) (applied, scaled bool) {
	s.mu.Lock()
	center, scale := s.pendingCenter, s.pendingScale
	s.pendingCenter, s.pendingScale = false, nil
	s.mu.Unlock()

	if center {
		s.camera.Center(bounds, surface)
	}
	if scale != nil && surface.Width > 0 && surface.Height > 0 {
		scaled = s.camera.ScaleAt(*scale, bounds, surface)
	}
	return center || scale != nil, scaled
}
