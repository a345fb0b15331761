// Package input defines the window events delivered to widgets and the cursor state they are
// interpreted against.
package input

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-canvas/common"
)

// EventKind discriminates the payload of an Event.
type EventKind int

const (
	EventCursorMoved EventKind = iota
	EventCursorEntered
	EventCursorLeft
	EventButtonPressed
	EventButtonReleased
	EventWheelScrolled
	EventWindowResized
	EventKeyPressed
	EventKeyReleased
	EventRedrawRequested
)

var eventKindNames = [...]string{
	EventCursorMoved:     "CursorMoved",
	EventCursorEntered:   "CursorEntered",
	EventCursorLeft:      "CursorLeft",
	EventButtonPressed:   "ButtonPressed",
	EventButtonReleased:  "ButtonReleased",
	EventWheelScrolled:   "WheelScrolled",
	EventWindowResized:   "WindowResized",
	EventKeyPressed:      "KeyPressed",
	EventKeyReleased:     "KeyReleased",
	EventRedrawRequested: "RedrawRequested",
}

func (k EventKind) String() string {
	if k >= 0 && int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// MouseButton identifies a mouse button.
type MouseButton int

const (
	ButtonLeft MouseButton = iota
	ButtonRight
	ButtonMiddle
	ButtonOther
)

func (b MouseButton) String() string {
	switch b {
	case ButtonLeft:
		return "Left"
	case ButtonRight:
		return "Right"
	case ButtonMiddle:
		return "Middle"
	default:
		return "Other"
	}
}

// ScrollUnit is the unit of a ScrollDelta.
type ScrollUnit int

const (
	// ScrollLines is reported by notched mouse wheels.
	ScrollLines ScrollUnit = iota
	// ScrollPixels is reported by touchpads and smooth-scrolling devices.
	ScrollPixels
)

// ScrollDelta is the amount scrolled by a wheel event. Positive Y scrolls up.
type ScrollDelta struct {
	Unit ScrollUnit
	X, Y float32
}

// Lines returns a line-based scroll delta.
func Lines(x, y float32) ScrollDelta { return ScrollDelta{Unit: ScrollLines, X: x, Y: y} }

// Pixels returns a pixel-based scroll delta.
func Pixels(x, y float32) ScrollDelta { return ScrollDelta{Unit: ScrollPixels, X: x, Y: y} }

// LinesY returns the vertical delta in lines, converting pixel deltas with pixelsPerLine.
//
// Parameters:
//   - pixelsPerLine: how many pixels make one line; values <= 0 fall back to DefaultPixelsPerLine
//
// Returns:
//   - float32: the vertical delta in lines
func (d ScrollDelta) LinesY(pixelsPerLine float32) float32 {
	if d.Unit == ScrollLines {
		return d.Y
	}
	if pixelsPerLine <= 0 {
		pixelsPerLine = DefaultPixelsPerLine
	}
	return d.Y / pixelsPerLine
}

// DefaultPixelsPerLine converts pixel scroll deltas to lines when no factor is configured.
const DefaultPixelsPerLine float32 = 20

// Event is a window or input event. Only the fields relevant to Kind are set.
type Event struct {
	Kind EventKind

	// Position is set for EventCursorMoved.
	Position common.Vec2
	// Button is set for EventButtonPressed and EventButtonReleased.
	Button MouseButton
	// Scroll is set for EventWheelScrolled.
	Scroll ScrollDelta
	// Width and Height are set for EventWindowResized.
	Width, Height int
	// Key is set for EventKeyPressed and EventKeyReleased; see common key codes.
	Key uint32
}

// CursorMoved returns a cursor movement event.
func CursorMoved(pos common.Vec2) Event { return Event{Kind: EventCursorMoved, Position: pos} }

// CursorEntered returns an event for the cursor entering the window.
func CursorEntered() Event { return Event{Kind: EventCursorEntered} }

// CursorLeft returns an event for the cursor leaving the window.
func CursorLeft() Event { return Event{Kind: EventCursorLeft} }

// ButtonPressed returns a mouse button press event.
func ButtonPressed(b MouseButton) Event { return Event{Kind: EventButtonPressed, Button: b} }

// ButtonReleased returns a mouse button release event.
func ButtonReleased(b MouseButton) Event { return Event{Kind: EventButtonReleased, Button: b} }

// WheelScrolled returns a scroll event.
func WheelScrolled(d ScrollDelta) Event { return Event{Kind: EventWheelScrolled, Scroll: d} }

// WindowResized returns a framebuffer resize event.
func WindowResized(width, height int) Event {
	return Event{Kind: EventWindowResized, Width: width, Height: height}
}

// KeyPressed returns a key press event.
func KeyPressed(key uint32) Event { return Event{Kind: EventKeyPressed, Key: key} }

// KeyReleased returns a key release event.
func KeyReleased(key uint32) Event { return Event{Kind: EventKeyReleased, Key: key} }

// RedrawRequested returns the event delivered once per rendered frame.
func RedrawRequested() Event { return Event{Kind: EventRedrawRequested} }

func (e Event) String() string {
	switch e.Kind {
	case EventCursorMoved:
		return fmt.Sprintf("%s(%g, %g)", e.Kind, e.Position.X, e.Position.Y)
	case EventButtonPressed, EventButtonReleased:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Button)
	case EventWheelScrolled:
		return fmt.Sprintf("%s(%g, %g)", e.Kind, e.Scroll.X, e.Scroll.Y)
	case EventWindowResized:
		return fmt.Sprintf("%s(%dx%d)", e.Kind, e.Width, e.Height)
	case EventKeyPressed, EventKeyReleased:
		return fmt.Sprintf("%s(%d)", e.Kind, e.Key)
	default:
		return e.Kind.String()
	}
}
