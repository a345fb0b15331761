package window

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-canvas/engine/input"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMouseButtonMapping(t *testing.T) {
	assert.Equal(t, input.ButtonLeft, mouseButton(glfw.MouseButtonLeft))
	assert.Equal(t, input.ButtonRight, mouseButton(glfw.MouseButtonRight))
	assert.Equal(t, input.ButtonMiddle, mouseButton(glfw.MouseButtonMiddle))
	assert.Equal(t, input.ButtonOther, mouseButton(glfw.MouseButton4))
}

func TestStandardCursorMapping(t *testing.T) {
	shape, ok := standardCursor(input.InteractionGrabbing)
	require.True(t, ok)
	assert.Equal(t, glfw.HandCursor, shape)

	shape, ok = standardCursor(input.InteractionCrosshair)
	require.True(t, ok)
	assert.Equal(t, glfw.CrosshairCursor, shape)

	_, ok = standardCursor(input.InteractionIdle)
	assert.False(t, ok, "idle uses the default arrow")
	_, ok = standardCursor(input.InteractionNone)
	assert.False(t, ok)
}

func TestSetCursorKeepsLatestRequest(t *testing.T) {
	w := &engineWindow{cursor: make(chan input.Interaction, 1)}
	w.SetCursor(input.InteractionPointer)
	w.SetCursor(input.InteractionGrabbing)

	require.Len(t, w.cursor, 1)
	assert.Equal(t, input.InteractionGrabbing, <-w.cursor)
}

func TestEmitWithoutCallback(t *testing.T) {
	w := &engineWindow{}
	assert.NotPanics(t, func() { w.emit(input.RedrawRequested()) })

	var got []input.Event
	w.SetEventCallback(func(e input.Event) { got = append(got, e) })
	w.emit(input.KeyPressed(67))
	assert.Equal(t, []input.Event{input.KeyPressed(67)}, got)
}

func TestSizeOptionsKeepDefaultsForNonPositiveValues(t *testing.T) {
	w := &engineWindow{width: 1280, height: 720, minWidth: 320, minHeight: 240, maxWidth: 3840, maxHeight: 2160}
	for _, opt := range []WindowBuilderOption{
		WithTitle("paint"),
		WithSize(800, 0),
		WithMinSize(-1, 100),
		WithMaxSize(1920, 1080),
	} {
		opt(w)
	}

	assert.Equal(t, "paint", w.title)
	assert.Equal(t, [2]int{800, 720}, [2]int{w.width, w.height})
	assert.Equal(t, [2]int{320, 100}, [2]int{w.minWidth, w.minHeight})
	assert.Equal(t, [2]int{1920, 1080}, [2]int{w.maxWidth, w.maxHeight})
}
