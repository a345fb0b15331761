package engine

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-canvas/common"
	"github.com/Carmen-Shannon/oxy-canvas/engine/input"
	"github.com/Carmen-Shannon/oxy-canvas/engine/renderer"
	"github.com/Carmen-Shannon/oxy-canvas/engine/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingApp struct {
	events      []input.Event
	cursors     []input.Cursor
	draws       int
	interaction input.Interaction
}

func (a *recordingApp) Layout(common.Size) {}

func (a *recordingApp) Dispatch(event input.Event, cursor input.Cursor) bool {
	a.events = append(a.events, event)
	a.cursors = append(a.cursors, cursor)
	return false
}

func (a *recordingApp) Draw(ui.Renderer, input.Cursor) { a.draws++ }

func (a *recordingApp) MouseInteraction(input.Cursor) input.Interaction { return a.interaction }

type recordingRenderer struct {
	log      []string
	resized  [2]int
	storage  *renderer.Storage
	beginErr error
}

func (r *recordingRenderer) GPU() renderer.GPU                   { return nil }
func (r *recordingRenderer) Storage() *renderer.Storage          { return r.storage }
func (r *recordingRenderer) Resize(w, h int)                     { r.resized = [2]int{w, h} }
func (r *recordingRenderer) SetPresentMode(renderer.PresentMode) {}
func (r *recordingRenderer) BeginFrame() error {
	r.log = append(r.log, "begin")
	return r.beginErr
}
func (r *recordingRenderer) FillQuad(renderer.Quad, common.Color)          {}
func (r *recordingRenderer) DrawPrimitive(common.Rect, renderer.Primitive) {}
func (r *recordingRenderer) EndFrame()                                     { r.log = append(r.log, "end") }
func (r *recordingRenderer) Present()                                      { r.log = append(r.log, "present") }
func (r *recordingRenderer) Release()                                      {}

func newTestEngine(app Application, r renderer.Renderer) *engine {
	return NewEngine(WithApplication(app), WithRenderer(r)).(*engine)
}

func TestDrainEventsTracksCursorAndResizes(t *testing.T) {
	app := &recordingApp{}
	r := &recordingRenderer{storage: renderer.NewStorage()}
	e := newTestEngine(app, r)

	p := common.Vec2{X: 3, Y: 4}
	require.True(t, e.Post(input.CursorMoved(p)))
	require.True(t, e.Post(input.WindowResized(800, 600)))
	require.True(t, e.Post(input.CursorLeft()))
	e.drainEvents()

	require.Len(t, app.events, 3)
	assert.Equal(t, input.CursorAt(p), app.cursors[0])
	assert.Equal(t, input.CursorAt(p), app.cursors[1])
	assert.Equal(t, input.CursorUnavailable(), app.cursors[2])
	assert.Equal(t, [2]int{800, 600}, r.resized)
}

func TestPostDropsWhenQueueIsFull(t *testing.T) {
	e := newTestEngine(&recordingApp{}, nil)
	for range eventQueueSize {
		require.True(t, e.Post(input.RedrawRequested()))
	}
	assert.False(t, e.Post(input.RedrawRequested()))
}

func TestRenderFrameRecordsBetweenBeginAndPresent(t *testing.T) {
	app := &recordingApp{}
	r := &recordingRenderer{storage: renderer.NewStorage()}
	e := newTestEngine(app, r)

	e.renderFrame()
	assert.Equal(t, []string{"begin", "end", "present"}, r.log)
	assert.Equal(t, 1, app.draws)
}

func TestRenderFrameSkipsWhenSurfaceUnavailable(t *testing.T) {
	app := &recordingApp{}
	r := &recordingRenderer{storage: renderer.NewStorage(), beginErr: renderer.ErrSurfaceUnavailable}
	e := newTestEngine(app, r)

	e.renderFrame()
	assert.Equal(t, []string{"begin"}, r.log)
	assert.Zero(t, app.draws)
}

func TestRunWithoutWindowFails(t *testing.T) {
	e := NewEngine()
	assert.ErrorIs(t, e.Run(), ErrNoWindow)
}
