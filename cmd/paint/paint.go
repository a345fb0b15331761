package main

import (
	"math"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-canvas/common"
	"github.com/Carmen-Shannon/oxy-canvas/engine/canvas"
	"github.com/Carmen-Shannon/oxy-canvas/engine/config"
	"github.com/Carmen-Shannon/oxy-canvas/engine/input"
	"github.com/Carmen-Shannon/oxy-canvas/engine/loader"
	"github.com/Carmen-Shannon/oxy-canvas/engine/surface"
	"github.com/Carmen-Shannon/oxy-canvas/engine/ui"
)

const (
	canvasID = "image"

	colorBlack uint32 = 0xff000000
	colorWhite uint32 = 0xffffffff

	minSliderScale float32 = 1
	maxSliderScale float32 = 10
)

type messageKind int

const (
	msgPress messageKind = iota
	msgRelease
	msgMove
	msgZoom
	msgKey
	msgReload
)

type message struct {
	kind   messageKind
	pos    common.Vec2
	button input.MouseButton
	scale  float32
	key    uint32
}

// paint is a single canvas program: the left button draws lines, keys pick the colour and
// drive the canvas operations.
type paint struct {
	bitmap      *surface.Bitmap
	generations *canvas.Generations
	settings    config.CanvasConfig

	color    uint32
	brush    int
	painting bool
	last     [2]int
	scale    float32

	pending atomic.Pointer[surface.Bitmap]
}

var _ ui.Program[message] = &paint{}

func newPaint(bitmap *surface.Bitmap, settings config.CanvasConfig) *paint {
	return &paint{
		bitmap:      bitmap,
		generations: canvas.NewGenerations(),
		settings:    settings,
		color:       colorBlack,
		brush:       1,
		scale:       settings.DefaultScale,
	}
}

func (p *paint) View() []ui.Widget[message] {
	border, background := p.settings.Colors()
	thickness := p.settings.BorderThickness

	c := canvas.New[message](p.bitmap, p.generations).
		SetID(canvasID).
		SetPixelsPerLine(p.settings.PixelsPerLine).
		SetCameraOptions(p.settings.CameraOptions()...).
		SetStyle(func(status canvas.Status) canvas.Style {
			s := canvas.Style{Background: background, BorderColor: border, BorderThickness: thickness}
			if status == canvas.StatusHovered {
				s.BorderThickness = thickness + 1
			}
			return s
		}).
		OnPress(func(pos common.Vec2, button input.MouseButton) message {
			return message{kind: msgPress, pos: pos, button: button}
		}).
		OnRelease(func(pos common.Vec2, button input.MouseButton) message {
			return message{kind: msgRelease, pos: pos, button: button}
		}).
		OnMove(func(pos common.Vec2) message {
			return message{kind: msgMove, pos: pos}
		}).
		OnZoom(func(scale float32) message {
			return message{kind: msgZoom, scale: scale}
		})
	return []ui.Widget[message]{c}
}

func (p *paint) Subscribe(event input.Event) (message, bool) {
	switch event.Kind {
	case input.EventKeyPressed:
		return message{kind: msgKey, key: event.Key}, true
	case input.EventRedrawRequested:
		if p.pending.Load() != nil {
			return message{kind: msgReload}, true
		}
	}
	return message{}, false
}

func (p *paint) Update(m message) []ui.Operation {
	switch m.kind {
	case msgPress:
		if m.button != input.ButtonLeft {
			return nil
		}
		p.painting = true
		p.last = pixelAt(m.pos)
		p.stroke(p.last, p.last)
	case msgRelease:
		if m.button == input.ButtonLeft {
			p.painting = false
		}
	case msgMove:
		if !p.painting {
			return nil
		}
		next := pixelAt(m.pos)
		p.stroke(p.last, next)
		p.last = next
	case msgZoom:
		p.scale = m.scale
	case msgKey:
		return p.key(m.key)
	case msgReload:
		p.reload()
	}
	return nil
}

func (p *paint) key(key uint32) []ui.Operation {
	switch key {
	case common.KeyB:
		p.color = colorBlack
	case common.KeyW:
		p.color = colorWhite
	case common.KeyC:
		return []ui.Operation{canvas.CenterImage(canvasID)}
	case common.KeyR:
		return []ui.Operation{canvas.ScaleImage(canvasID, minSliderScale), canvas.CenterImage(canvasID)}
	case common.KeyEqual, common.KeyKPAdd:
		return p.setScale(float32(math.Floor(float64(p.scale))) + 1)
	case common.KeyMinus, common.KeyKPSubtract:
		return p.setScale(float32(math.Ceil(float64(p.scale))) - 1)
	case common.Key0:
		return p.setScale(maxSliderScale)
	default:
		if key >= common.Key1 && key <= common.Key9 {
			return p.setScale(float32(key - common.Key0))
		}
	}
	return nil
}

func (p *paint) setScale(scale float32) []ui.Operation {
	p.scale = common.Clamp(scale, minSliderScale, maxSliderScale)
	return []ui.Operation{canvas.ScaleImage(canvasID, p.scale)}
}

// reloaded receives decoded images from the loader's watcher goroutine. The bitmap is only
// written from Update, so the newest image is parked until the next redraw tick picks it up.
func (p *paint) reloaded(b *surface.Bitmap, err error) {
	if err != nil {
		return
	}
	p.pending.Store(b)
}

func (p *paint) reload() {
	b := p.pending.Swap(nil)
	if b == nil {
		return
	}
	if err := loader.CopyInto(p.bitmap, b); err != nil {
		common.Logger().Error("failed to apply reloaded image", "error", err)
	}
}

// stroke draws a line of square brush stamps from a to b.
func (p *paint) stroke(a, b [2]int) {
	w, h := int(p.bitmap.Width()), int(p.bitmap.Height())
	half := p.brush / 2
	p.bitmap.Edit(func(buffer []uint32) {
		line(a[0], a[1], b[0], b[1], func(x, y int) {
			for by := y - half; by < y-half+p.brush; by++ {
				for bx := x - half; bx < x-half+p.brush; bx++ {
					if bx >= 0 && by >= 0 && bx < w && by < h {
						buffer[by*w+bx] = p.color
					}
				}
			}
		})
	})
}

func pixelAt(pos common.Vec2) [2]int {
	f := pos.Floor()
	return [2]int{int(f.X), int(f.Y)}
}

// line walks the Bresenham line from (x0, y0) to (x1, y1), both ends included.
func line(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
