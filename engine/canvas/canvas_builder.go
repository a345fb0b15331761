package canvas

import (
	"github.com/Carmen-Shannon/oxy-canvas/common"
	"github.com/Carmen-Shannon/oxy-canvas/engine/camera"
	"github.com/Carmen-Shannon/oxy-canvas/engine/input"
	"github.com/Carmen-Shannon/oxy-canvas/engine/ui"
)

// SetID sets the id operations address the canvas by. The id also keys the persistent state, so
// the canvas keeps its camera when its position in the view changes.
func (c *TextureCanvas[M]) SetID(id string) *TextureCanvas[M] {
	c.id = id
	return c
}

// SetWidth sets the horizontal layout policy.
func (c *TextureCanvas[M]) SetWidth(width ui.Length) *TextureCanvas[M] {
	c.width = width
	return c
}

// SetHeight sets the vertical layout policy.
func (c *TextureCanvas[M]) SetHeight(height ui.Length) *TextureCanvas[M] {
	c.height = height
	return c
}

// SetStyle sets the frame style. A nil style restores Primary.
func (c *TextureCanvas[M]) SetStyle(style StyleFunc) *TextureCanvas[M] {
	if style == nil {
		style = Primary
	}
	c.style = style
	return c
}

// SetInteraction sets the cursor icon shown while the image is hovered.
func (c *TextureCanvas[M]) SetInteraction(interaction input.Interaction) *TextureCanvas[M] {
	c.interaction = interaction
	return c
}

// SetPixelsPerLine sets how many pixels of a pixel-based scroll make one zoom step.
func (c *TextureCanvas[M]) SetPixelsPerLine(px float32) *TextureCanvas[M] {
	if px > 0 {
		c.pixelsPerLine = px
	}
	return c
}

// SetCameraOptions sets the options a new occurrence's camera is created with, such as the
// initial scale and the scale bounds. They have no effect on existing state.
func (c *TextureCanvas[M]) SetCameraOptions(options ...camera.CameraControllerOption) *TextureCanvas[M] {
	c.cameraOptions = options
	return c
}

// OnDrag sets the message published when a pan gesture begins.
func (c *TextureCanvas[M]) OnDrag(f func() M) *TextureCanvas[M] {
	c.onDrag = f
	return c
}

// OnZoom sets the message published when the scale changes.
func (c *TextureCanvas[M]) OnZoom(f func(scale float32) M) *TextureCanvas[M] {
	c.onZoom = f
	return c
}

// OnPress sets the message published when a button other than the middle one is pressed over
// the widget. The position is in surface pixels and may lie outside the image.
func (c *TextureCanvas[M]) OnPress(f func(pos common.Vec2, button input.MouseButton) M) *TextureCanvas[M] {
	c.onPress = f
	return c
}

// OnRelease sets the message published when a button other than the middle one is released.
func (c *TextureCanvas[M]) OnRelease(f func(pos common.Vec2, button input.MouseButton) M) *TextureCanvas[M] {
	c.onRelease = f
	return c
}

// OnMove sets the message published when the pointer moves over the widget.
func (c *TextureCanvas[M]) OnMove(f func(pos common.Vec2) M) *TextureCanvas[M] {
	c.onMove = f
	return c
}

// OnEnter sets the message published when the pointer enters the image.
func (c *TextureCanvas[M]) OnEnter(f func() M) *TextureCanvas[M] {
	c.onEnter = f
	return c
}

// OnExit sets the message published when the pointer leaves the image.
func (c *TextureCanvas[M]) OnExit(f func() M) *TextureCanvas[M] {
	c.onExit = f
	return c
}
