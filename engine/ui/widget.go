// Package ui is a minimal retained-mode host: it lays widgets out in a column, keeps their
// persistent state across view rebuilds, routes input events to them and collects the messages
// they publish.
package ui

import (
	"github.com/Carmen-Shannon/oxy-canvas/common"
	"github.com/Carmen-Shannon/oxy-canvas/engine/input"
	"github.com/Carmen-Shannon/oxy-canvas/engine/renderer"
)

// Widget is a UI element producing messages of type M.
//
// Widgets are cheap values rebuilt on every view; anything that must survive a rebuild lives in
// the Tree the host passes back to every call.
type Widget[M any] interface {
	// ID returns the identifier the widget's state is keyed by. An empty ID keys the state by
	// position in the view.
	//
	// Returns:
	//   - string: the widget id, may be empty
	ID() string

	// Size returns the layout policy of the widget on both axes.
	//
	// Returns:
	//   - width, height: the requested lengths
	Size() (width, height Length)

	// State creates the initial persistent state of the widget. It is called once per widget
	// occurrence, the first time the host sees its key.
	//
	// Returns:
	//   - any: the initial state
	State() any

	// Update handles one event.
	//
	// Parameters:
	//   - tree: the widget's persistent state
	//   - event: the event to handle
	//   - bounds: the widget bounds from the last layout
	//   - cursor: the cursor state the event is interpreted against
	//   - shell: collects published messages and redraw requests
	Update(tree *Tree, event input.Event, bounds common.Rect, cursor input.Cursor, shell *Shell[M])

	// Draw records the widget's draw commands.
	//
	// Parameters:
	//   - tree: the widget's persistent state
	//   - r: the renderer receiving quads and primitives
	//   - bounds: the widget bounds
	//   - cursor: the current cursor state
	Draw(tree *Tree, r Renderer, bounds common.Rect, cursor input.Cursor)

	// Operate applies a tree-wide operation to the widget.
	//
	// Parameters:
	//   - tree: the widget's persistent state
	//   - bounds: the widget bounds
	//   - op: the operation to apply
	Operate(tree *Tree, bounds common.Rect, op Operation)

	// MouseInteraction reports the cursor icon the widget wants.
	//
	// Parameters:
	//   - tree: the widget's persistent state
	//   - bounds: the widget bounds
	//   - cursor: the current cursor state
	//
	// Returns:
	//   - input.Interaction: the requested cursor icon
	MouseInteraction(tree *Tree, bounds common.Rect, cursor input.Cursor) input.Interaction
}

// Tree is the persistent storage slot of one widget occurrence.
type Tree struct {
	// Key identifies the widget occurrence; it is stable for as long as the state lives.
	Key string
	// State is the value returned by Widget.State, mutated by the widget.
	State any
}

// Renderer receives the draw commands of widgets.
type Renderer interface {
	// FillQuad draws a bordered, shadowed rectangle.
	//
	// Parameters:
	//   - quad: the rectangle with its border and shadow
	//   - background: the fill color
	FillQuad(quad renderer.Quad, background common.Color)

	// DrawPrimitive draws a custom GPU primitive inside bounds.
	//
	// Parameters:
	//   - bounds: the widget bounds the primitive renders into
	//   - primitive: the primitive to prepare and render
	DrawPrimitive(bounds common.Rect, primitive renderer.Primitive)
}

// Operation is broadcast to every widget by Host.Operate. Widgets that recognise the operation
// call Custom with their id and state.
type Operation interface {
	// Custom visits one widget.
	//
	// Parameters:
	//   - id: the widget id, empty when the widget has none
	//   - bounds: the widget bounds
	//   - state: the widget's persistent state
	Custom(id string, bounds common.Rect, state any)
}

// OperationFunc adapts a function to the Operation interface.
type OperationFunc func(id string, bounds common.Rect, state any)

// Custom calls f.
func (f OperationFunc) Custom(id string, bounds common.Rect, state any) {
	f(id, bounds, state)
}

// Shell collects the side effects of one event dispatch.
type Shell[M any] struct {
	messages []M
	redraw   bool
}

// Publish queues a message for the application.
func (s *Shell[M]) Publish(message M) {
	s.messages = append(s.messages, message)
}

// RequestRedraw asks the host to draw another frame.
func (s *Shell[M]) RequestRedraw() {
	s.redraw = true
}

// Messages returns the messages published so far.
func (s *Shell[M]) Messages() []M {
	return s.messages
}

// RedrawRequested reports whether a redraw was requested.
func (s *Shell[M]) RedrawRequested() bool {
	return s.redraw
}
