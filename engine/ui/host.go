package ui

import (
	"strconv"
	"sync"

	"github.com/Carmen-Shannon/oxy-canvas/common"
	"github.com/Carmen-Shannon/oxy-canvas/engine/input"
)

// Program is an application driven by a Host.
type Program[M any] interface {
	// View returns the widgets to display, top to bottom. It is called after every batch of
	// messages and must be cheap.
	//
	// Returns:
	//   - []Widget[M]: the current view
	View() []Widget[M]

	// Update applies a message published by a widget or produced by Subscribe.
	//
	// Parameters:
	//   - message: the message to apply
	//
	// Returns:
	//   - []Operation: operations to broadcast to the widgets of the next view
	Update(message M) []Operation

	// Subscribe maps raw events the widgets do not own (keys, resizes) to messages.
	//
	// Parameters:
	//   - event: the incoming event
	//
	// Returns:
	//   - M: the message
	//   - bool: false if the event produces no message
	Subscribe(event input.Event) (M, bool)
}

// Host runs a Program: it keeps the per-widget state, lays the view out and dispatches events.
// All methods are safe for concurrent use; event dispatch and drawing usually run on different
// goroutines.
type Host[M any] struct {
	mu *sync.Mutex

	program  Program[M]
	size     common.Size
	children []Widget[M]
	keys     []string
	bounds   []common.Rect
	trees    map[string]*Tree
}

// NewHost creates a Host for program and builds its first view.
//
// Parameters:
//   - program: the application to run
//
// Returns:
//   - *Host[M]: the host
func NewHost[M any](program Program[M]) *Host[M] {
	h := &Host[M]{
		mu:      &sync.Mutex{},
		program: program,
		trees:   make(map[string]*Tree),
	}
	h.rebuild()
	return h
}

// Layout sets the window size and recomputes widget bounds.
//
// Parameters:
//   - size: the window size in pixels
func (h *Host[M]) Layout(size common.Size) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.size = size
	h.layout()
}

// Bounds returns the bounds of the widget with the given id.
//
// Parameters:
//   - id: the widget id
//
// Returns:
//   - common.Rect: the widget bounds
//   - bool: false if no widget in the current view has that id
func (h *Host[M]) Bounds(id string) (common.Rect, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, w := range h.children {
		if w.ID() == id {
			return h.bounds[i], true
		}
	}
	return common.Rect{}, false
}

// Dispatch routes an event to every widget, feeds the published messages and the subscription
// to the program, applies the operations it returns and rebuilds the view.
//
// Parameters:
//   - event: the event to dispatch
//   - cursor: the cursor state the event is interpreted against
//
// Returns:
//   - bool: true if a widget requested a redraw or any message was produced
func (h *Host[M]) Dispatch(event input.Event, cursor input.Cursor) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if event.Kind == input.EventWindowResized {
		h.size = common.Size{Width: float32(event.Width), Height: float32(event.Height)}
		h.layout()
	}

	shell := &Shell[M]{}
	for i, w := range h.children {
		w.Update(h.trees[h.keys[i]], event, h.bounds[i], cursor, shell)
	}

	messages := shell.Messages()
	if m, ok := h.program.Subscribe(event); ok {
		messages = append(messages, m)
	}
	if len(messages) == 0 {
		return shell.RedrawRequested()
	}

	var ops []Operation
	for _, m := range messages {
		ops = append(ops, h.program.Update(m)...)
	}
	h.rebuild()
	h.operate(ops)
	return true
}

// Operate broadcasts operations to every widget of the current view.
//
// Parameters:
//   - ops: the operations to apply, in order
func (h *Host[M]) Operate(ops ...Operation) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.operate(ops)
}

// Draw records the draw commands of every widget, top to bottom.
//
// Parameters:
//   - r: the renderer receiving the commands
//   - cursor: the current cursor state
func (h *Host[M]) Draw(r Renderer, cursor input.Cursor) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, w := range h.children {
		w.Draw(h.trees[h.keys[i]], r, h.bounds[i], cursor)
	}
}

// MouseInteraction returns the cursor icon requested by the first widget that wants one.
//
// Parameters:
//   - cursor: the current cursor state
//
// Returns:
//   - input.Interaction: the requested icon, InteractionNone if no widget asks for one
func (h *Host[M]) MouseInteraction(cursor input.Cursor) input.Interaction {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, w := range h.children {
		if in := w.MouseInteraction(h.trees[h.keys[i]], h.bounds[i], cursor); in != input.InteractionNone {
			return in
		}
	}
	return input.InteractionNone
}

// rebuild asks the program for a fresh view, creates state for new widget occurrences and drops
// the state of widgets that left the view. Caller must hold the mutex.
func (h *Host[M]) rebuild() {
	h.children = h.program.View()
	h.keys = make([]string, len(h.children))

	live := make(map[string]struct{}, len(h.children))
	for i, w := range h.children {
		key := "#" + strconv.Itoa(i)
		if id := w.ID(); id != "" {
			key = "id:" + id
		}
		h.keys[i] = key
		live[key] = struct{}{}
		if _, ok := h.trees[key]; !ok {
			h.trees[key] = &Tree{Key: key, State: w.State()}
		}
	}
	for key := range h.trees {
		if _, ok := live[key]; !ok {
			delete(h.trees, key)
		}
	}
	h.layout()
}

// layout recomputes widget bounds. Caller must hold the mutex.
func (h *Host[M]) layout() {
	sizes := make([][2]Length, len(h.children))
	for i, w := range h.children {
		sizes[i][0], sizes[i][1] = w.Size()
	}
	h.bounds = Column(common.Rect{Width: h.size.Width, Height: h.size.Height}, sizes)
}

// operate applies ops to every widget. Caller must hold the mutex.
func (h *Host[M]) operate(ops []Operation) {
	for _, op := range ops {
		for i, w := range h.children {
			w.Operate(h.trees[h.keys[i]], h.bounds[i], op)
		}
	}
}
