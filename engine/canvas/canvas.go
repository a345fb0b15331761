package canvas

import (
	"github.com/Carmen-Shannon/oxy-canvas/common"
	"github.com/Carmen-Shannon/oxy-canvas/engine/camera"
	"github.com/Carmen-Shannon/oxy-canvas/engine/input"
	"github.com/Carmen-Shannon/oxy-canvas/engine/renderer"
	"github.com/Carmen-Shannon/oxy-canvas/engine/surface"
	"github.com/Carmen-Shannon/oxy-canvas/engine/ui"
)

// TextureCanvas displays a surface that can be panned with the middle mouse button and zoomed
// with the wheel. Pointer positions are reported to the application in surface pixels.
//
// A TextureCanvas is a cheap value rebuilt on every view; its persistent State lives in the
// host's widget tree and is created once per occurrence.
type TextureCanvas[M any] struct {
	handler     surface.Handler
	generations *Generations

	id            string
	width, height ui.Length
	style         StyleFunc
	interaction   input.Interaction
	pixelsPerLine float32
	cameraOptions []camera.CameraControllerOption

	onDrag    func() M
	onZoom    func(scale float32) M
	onPress   func(pos common.Vec2, button input.MouseButton) M
	onRelease func(pos common.Vec2, button input.MouseButton) M
	onMove    func(pos common.Vec2) M
	onEnter   func() M
	onExit    func() M
}

var _ ui.Widget[struct{}] = &TextureCanvas[struct{}]{}

// New creates a canvas displaying the surface behind handler.
//
// Parameters:
//   - handler: the surface to display
//   - generations: the tag source shared by every canvas of the application
//
// Returns:
//   - *TextureCanvas[M]: the widget, filling both axes with the default style
func New[M any](handler surface.Handler, generations *Generations) *TextureCanvas[M] {
	if generations == nil {
		generations = NewGenerations()
	}
	return &TextureCanvas[M]{
		handler:       handler,
		generations:   generations,
		width:         ui.Fill,
		height:        ui.Fill,
		style:         Primary,
		pixelsPerLine: input.DefaultPixelsPerLine,
	}
}

func (c *TextureCanvas[M]) ID() string {
	return c.id
}

func (c *TextureCanvas[M]) Size() (ui.Length, ui.Length) {
	return c.width, c.height
}

func (c *TextureCanvas[M]) State() any {
	return NewState(c.generations.Next(), c.cameraOptions...)
}

func (c *TextureCanvas[M]) Update(tree *ui.Tree, event input.Event, bounds common.Rect, cursor input.Cursor, shell *ui.Shell[M]) {
	st, ok := tree.State.(*State)
	if !ok {
		return
	}
	size := c.surfaceSize()

	if bounds.Width > 0 && bounds.Height > 0 {
		if applied, scaled := st.applyPending(bounds, size); applied {
			if scaled && c.onZoom != nil {
				shell.Publish(c.onZoom(st.Scale()))
			}
			shell.RequestRedraw()
		}
	}

	pos, available := cursor.Position()
	if !available || !bounds.Contains(pos) {
		if st.IsHovered() && c.onExit != nil {
			shell.Publish(c.onExit())
		}
		st.Reset()
		return
	}

	if !st.IsGrabbing() {
		image := camera.CanvasBounds(bounds, st.Offset(), st.Scale(), size)
		hovered := image.Contains(pos)
		if was := st.setHovered(hovered); was != hovered {
			if hovered && c.onEnter != nil {
				shell.Publish(c.onEnter())
			}
			if !hovered && c.onExit != nil {
				shell.Publish(c.onExit())
			}
		}
	}

	switch event.Kind {
	case input.EventButtonPressed:
		if event.Button == input.ButtonMiddle {
			st.Camera().Grab()
			if c.onDrag != nil {
				shell.Publish(c.onDrag())
			}
			return
		}
		if c.onPress != nil {
			shell.Publish(c.onPress(c.toSurface(st, bounds, pos), event.Button))
		}
	case input.EventButtonReleased:
		if event.Button == input.ButtonMiddle {
			st.Camera().Release()
			return
		}
		if c.onRelease != nil {
			shell.Publish(c.onRelease(c.toSurface(st, bounds, pos), event.Button))
		}
	case input.EventCursorMoved:
		moved := st.Camera().Drag(event.Position)
		if c.onMove != nil {
			shell.Publish(c.onMove(c.toSurface(st, bounds, event.Position)))
		}
		if moved {
			shell.RequestRedraw()
		}
	case input.EventWheelScrolled:
		if size.Width <= 0 || size.Height <= 0 {
			return
		}
		lines := event.Scroll.LinesY(c.pixelsPerLine)
		if lines == 0 {
			return
		}
		if st.Camera().ZoomAt(pos, lines, bounds, size) {
			if c.onZoom != nil {
				shell.Publish(c.onZoom(st.Scale()))
			}
			shell.RequestRedraw()
		}
	}
}

func (c *TextureCanvas[M]) Draw(tree *ui.Tree, r ui.Renderer, bounds common.Rect, cursor input.Cursor) {
	st, ok := tree.State.(*State)
	if !ok || c.handler == nil {
		return
	}
	status := StatusNone
	if st.IsHovered() {
		status = StatusHovered
	}
	style := c.style(status)

	offset, scale := st.Offset(), st.Scale()
	origin := bounds.Position().Add(offset)
	size := c.surfaceSize().Mul(scale)
	border := style.BorderThickness

	r.FillQuad(renderer.Quad{
		Bounds: common.Rect{
			X:      origin.X - border,
			Y:      origin.Y - border,
			Width:  size.Width + 2*border,
			Height: size.Height + 2*border,
		},
		Border: renderer.Border{Color: style.BorderColor, Width: border},
		Shadow: renderer.Shadow{
			Color:  style.Shadow.Color,
			Offset: style.Shadow.Offset.Mul(scale),
			Blur:   style.Shadow.Blur * scale,
		},
		Clip: bounds,
	}, style.Background)

	r.DrawPrimitive(bounds, &Primitive{
		Surface:    c.handler.CreateWeak(),
		Key:        "canvas/" + tree.Key,
		Offset:     offset,
		Scale:      scale,
		Generation: st.Generation(),
	})
}

func (c *TextureCanvas[M]) Operate(tree *ui.Tree, bounds common.Rect, op ui.Operation) {
	op.Custom(c.id, bounds, tree.State)
}

func (c *TextureCanvas[M]) MouseInteraction(tree *ui.Tree, bounds common.Rect, cursor input.Cursor) input.Interaction {
	st, ok := tree.State.(*State)
	if !ok || !st.IsHovered() {
		return input.InteractionNone
	}
	return c.interaction
}

func (c *TextureCanvas[M]) surfaceSize() common.Size {
	if c.handler == nil {
		return common.Size{}
	}
	return common.Size{Width: float32(c.handler.Width()), Height: float32(c.handler.Height())}
}

func (c *TextureCanvas[M]) toSurface(st *State, bounds common.Rect, pos common.Vec2) common.Vec2 {
	return camera.ScreenToSurface(bounds, pos, st.Offset(), st.Scale())
}
