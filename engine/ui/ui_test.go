package ui

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-canvas/common"
	"github.com/Carmen-Shannon/oxy-canvas/engine/input"
	"github.com/Carmen-Shannon/oxy-canvas/engine/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	clicks int
}

type clickWidget struct {
	id     string
	height Length
}

func (w clickWidget) ID() string                   { return w.id }
func (w clickWidget) Size() (width, height Length) { return Fill, w.height }
func (w clickWidget) State() any                   { return &counter{} }

func (w clickWidget) Update(tree *Tree, event input.Event, bounds common.Rect, cursor input.Cursor, shell *Shell[string]) {
	if event.Kind != input.EventButtonPressed || !cursor.IsOver(bounds) {
		return
	}
	tree.State.(*counter).clicks++
	shell.Publish("clicked:" + tree.Key)
}

func (w clickWidget) Draw(tree *Tree, r Renderer, bounds common.Rect, cursor input.Cursor) {
	r.FillQuad(renderer.Quad{Bounds: bounds}, common.ColorWhite)
}

func (w clickWidget) Operate(tree *Tree, bounds common.Rect, op Operation) {
	op.Custom(w.id, bounds, tree.State)
}

func (w clickWidget) MouseInteraction(tree *Tree, bounds common.Rect, cursor input.Cursor) input.Interaction {
	if cursor.IsOver(bounds) {
		return input.InteractionPointer
	}
	return input.InteractionNone
}

type clickProgram struct {
	view     []Widget[string]
	received []string
}

func (p *clickProgram) View() []Widget[string] { return p.view }

func (p *clickProgram) Update(message string) []Operation {
	p.received = append(p.received, message)
	return nil
}

func (p *clickProgram) Subscribe(event input.Event) (string, bool) {
	if event.Kind == input.EventKeyPressed {
		return "key", true
	}
	return "", false
}

type recordingRenderer struct {
	quads []renderer.Quad
}

func (r *recordingRenderer) FillQuad(q renderer.Quad, _ common.Color)      { r.quads = append(r.quads, q) }
func (r *recordingRenderer) DrawPrimitive(common.Rect, renderer.Primitive) {}

func TestColumnSplitsRemainingHeightBetweenFills(t *testing.T) {
	rects := Column(common.Rect{Width: 100, Height: 300}, [][2]Length{
		{Fill, Fixed(50)},
		{Fill, Fill},
		{Fixed(40), Fill},
	})
	require.Len(t, rects, 3)
	assert.Equal(t, common.Rect{X: 0, Y: 0, Width: 100, Height: 50}, rects[0])
	assert.Equal(t, common.Rect{X: 0, Y: 50, Width: 100, Height: 125}, rects[1])
	assert.Equal(t, common.Rect{X: 0, Y: 175, Width: 40, Height: 125}, rects[2])
}

func TestColumnClampsOverflowingFixedChildren(t *testing.T) {
	rects := Column(common.Rect{Width: 10, Height: 30}, [][2]Length{
		{Fixed(500), Fixed(20)},
		{Fill, Fixed(20)},
		{Fill, Fill},
	})
	assert.Equal(t, float32(10), rects[0].Width)
	assert.Equal(t, float32(10), rects[1].Height)
	assert.Equal(t, float32(0), rects[2].Height)
}

func TestHostDispatchRoutesMessagesToProgram(t *testing.T) {
	p := &clickProgram{view: []Widget[string]{
		clickWidget{id: "top", height: Fixed(100)},
		clickWidget{height: Fill},
	}}
	h := NewHost[string](p)
	h.Layout(common.Size{Width: 200, Height: 300})

	redraw := h.Dispatch(input.ButtonPressed(input.ButtonLeft), input.CursorAt(common.Vec2{X: 10, Y: 150}))
	assert.True(t, redraw)
	assert.Equal(t, []string{"clicked:#1"}, p.received)

	h.Dispatch(input.ButtonPressed(input.ButtonLeft), input.CursorAt(common.Vec2{X: 10, Y: 10}))
	assert.Equal(t, []string{"clicked:#1", "clicked:id:top"}, p.received)

	h.Dispatch(input.KeyPressed(common.KeyC), input.CursorUnavailable())
	assert.Equal(t, "key", p.received[len(p.received)-1])

	assert.False(t, h.Dispatch(input.CursorMoved(common.Vec2{X: 1, Y: 1}), input.CursorAt(common.Vec2{X: 1, Y: 1})))
}

func TestHostKeepsStateByIDAcrossRebuilds(t *testing.T) {
	p := &clickProgram{view: []Widget[string]{clickWidget{id: "canvas", height: Fill}}}
	h := NewHost[string](p)
	h.Layout(common.Size{Width: 100, Height: 100})

	inside := input.CursorAt(common.Vec2{X: 50, Y: 50})
	h.Dispatch(input.ButtonPressed(input.ButtonLeft), inside)

	// Insert a widget above; the id-keyed state must survive the move.
	p.view = []Widget[string]{clickWidget{height: Fixed(10)}, clickWidget{id: "canvas", height: Fill}}
	h.Dispatch(input.ButtonPressed(input.ButtonLeft), inside)

	var clicks int
	h.Operate(OperationFunc(func(id string, _ common.Rect, state any) {
		if id == "canvas" {
			clicks = state.(*counter).clicks
		}
	}))
	assert.Equal(t, 2, clicks)

	bounds, ok := h.Bounds("canvas")
	require.True(t, ok)
	assert.Equal(t, float32(10), bounds.Y)

	_, ok = h.Bounds("missing")
	assert.False(t, ok)
}

func TestHostDropsStateOfRemovedWidgets(t *testing.T) {
	p := &clickProgram{view: []Widget[string]{clickWidget{id: "a", height: Fill}}}
	h := NewHost[string](p)
	h.Layout(common.Size{Width: 100, Height: 100})
	h.Dispatch(input.ButtonPressed(input.ButtonLeft), input.CursorAt(common.Vec2{X: 1, Y: 1}))

	p.view = nil
	h.Dispatch(input.KeyPressed(common.KeyC), input.CursorUnavailable())
	p.view = []Widget[string]{clickWidget{id: "a", height: Fill}}
	h.Dispatch(input.KeyPressed(common.KeyC), input.CursorUnavailable())

	var clicks = -1
	h.Operate(OperationFunc(func(_ string, _ common.Rect, state any) {
		clicks = state.(*counter).clicks
	}))
	assert.Equal(t, 0, clicks, "a widget that left the view starts over with fresh state")
}

func TestHostDrawAndMouseInteraction(t *testing.T) {
	p := &clickProgram{view: []Widget[string]{clickWidget{height: Fixed(20)}, clickWidget{height: Fill}}}
	h := NewHost[string](p)
	h.Dispatch(input.WindowResized(50, 100), input.CursorUnavailable())

	r := &recordingRenderer{}
	h.Draw(r, input.CursorUnavailable())
	require.Len(t, r.quads, 2)
	assert.Equal(t, common.Rect{Y: 20, Width: 50, Height: 80}, r.quads[1].Bounds)

	assert.Equal(t, input.InteractionPointer, h.MouseInteraction(input.CursorAt(common.Vec2{X: 5, Y: 50})))
	assert.Equal(t, input.InteractionNone, h.MouseInteraction(input.CursorUnavailable()))
}
