package input

import "github.com/Carmen-Shannon/oxy-canvas/common"

// Cursor is the pointer state an event is interpreted against: either a position inside the
// window, or unavailable when the pointer is outside it.
type Cursor struct {
	pos       common.Vec2
	available bool
}

// CursorAt returns an available cursor at pos.
func CursorAt(pos common.Vec2) Cursor {
	return Cursor{pos: pos, available: true}
}

// CursorUnavailable returns a cursor that is not over the window.
func CursorUnavailable() Cursor {
	return Cursor{}
}

// Position returns the cursor position.
//
// Returns:
//   - common.Vec2: the position in window pixels
//   - bool: false if the cursor is unavailable
func (c Cursor) Position() (common.Vec2, bool) {
	return c.pos, c.available
}

// IsOver reports whether the cursor is available and inside r.
func (c Cursor) IsOver(r common.Rect) bool {
	return c.available && r.Contains(c.pos)
}

// Tracker folds the event stream into the current Cursor.
// The zero Tracker starts with an unavailable cursor.
type Tracker struct {
	cursor Cursor
}

// Apply updates the tracked cursor from e and returns the cursor to dispatch e with.
//
// Parameters:
//   - e: the incoming event
//
// Returns:
//   - Cursor: the cursor state after e
func (t *Tracker) Apply(e Event) Cursor {
	switch e.Kind {
	case EventCursorMoved:
		t.cursor = CursorAt(e.Position)
	case EventCursorLeft:
		t.cursor = CursorUnavailable()
	}
	return t.cursor
}

// Cursor returns the tracked cursor.
func (t *Tracker) Cursor() Cursor {
	return t.cursor
}

// Interaction is the mouse cursor icon a widget asks the window to show.
type Interaction int

const (
	InteractionNone Interaction = iota
	InteractionIdle
	InteractionPointer
	InteractionGrab
	InteractionGrabbing
	InteractionCrosshair
	InteractionText
	InteractionResizingHorizontally
	InteractionResizingVertically
)
