// Package engine runs an application: it pumps window events into the UI host on a fixed tick
// and draws the host through the renderer on its own goroutine.
package engine

import (
	"errors"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-canvas/common"
	"github.com/Carmen-Shannon/oxy-canvas/engine/input"
	"github.com/Carmen-Shannon/oxy-canvas/engine/profiler"
	"github.com/Carmen-Shannon/oxy-canvas/engine/renderer"
	"github.com/Carmen-Shannon/oxy-canvas/engine/ui"
	"github.com/Carmen-Shannon/oxy-canvas/engine/window"
)

// eventQueueSize bounds the events buffered between two ticks.
const eventQueueSize = 1024

// Application is the UI driven by the engine. *ui.Host satisfies it for any message type.
type Application interface {
	// Layout sets the window size and recomputes widget bounds.
	Layout(size common.Size)

	// Dispatch routes one event to the widgets and reports whether anything changed.
	Dispatch(event input.Event, cursor input.Cursor) bool

	// Draw records the draw commands of every widget.
	Draw(r ui.Renderer, cursor input.Cursor)

	// MouseInteraction returns the cursor icon the widgets ask for.
	MouseInteraction(cursor input.Cursor) input.Interaction
}

var _ Application = &ui.Host[struct{}]{}

// engine implements the Engine interface.
// Coordinates the tick, render, and window threads.
type engine struct {
	mu *sync.Mutex

	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates
	events          chan input.Event

	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window   window.Window
	renderer renderer.Renderer
	app      Application

	tracker     input.Tracker
	cursor      input.Cursor
	interaction input.Interaction

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine is the main entry point for the engine.
// It orchestrates the tick loop, render loop, and window management.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Renderer returns the renderer frames are drawn with.
	//
	// Returns:
	//   - renderer.Renderer: the renderer, nil if none was configured
	Renderer() renderer.Renderer

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in ticks per second.
	// Queued events are dispatched to the application at this rate.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick, after queued events were
	// dispatched.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called after each render frame.
	//
	// Parameters:
	//   - callback: function to call each render frame, receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Post queues an event for the next tick as if the window had produced it.
	// Safe to call from any goroutine. Events are dropped while the queue is full.
	//
	// Parameters:
	//   - event: the event to queue
	//
	// Returns:
	//   - bool: false if the event was dropped
	Post(event input.Event) bool

	// Run starts the engine goroutines and the window message loop.
	// Blocks until the window closes or Quit is called, then stops the goroutines.
	//
	// Returns:
	//   - error: error if the engine has no window
	Run() error

	// Quit signals all engine goroutines to stop and shuts down the engine.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// ErrNoWindow is returned by Run when the engine was built without a window.
var ErrNoWindow = errors.New("engine: no window configured")

// NewEngine creates a new Engine instance with the provided options.
// Options are applied directly to the engine struct via the option-builder pattern.
//
// Parameters:
//   - options: functional options for engine configuration (window, renderer, application, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:              &sync.Mutex{},
		tickRateChannel: make(chan time.Duration, 1),
		events:          make(chan input.Event, eventQueueSize),
		quitChannel:     make(chan struct{}),
		engineTickRate:  time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.profiler == nil {
		var opts []profiler.ProfilerBuilderOption
		if e.renderer != nil {
			opts = append(opts, profiler.WithStats(e.renderer.Storage().Stats()))
		}
		e.profiler = profiler.NewProfiler(opts...)
	}

	if e.window != nil {
		e.window.SetEventCallback(func(event input.Event) {
			e.Post(event)
		})
		if e.app != nil {
			e.app.Layout(common.Size{Width: float32(e.window.Width()), Height: float32(e.window.Height())})
		}
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Post(event input.Event) bool {
	select {
	case e.events <- event:
		return true
	default:
		common.Logger().Warn("event queue full, dropping event", "event", event.String())
		return false
	}
}

func (e *engine) Run() error {
	if e.window == nil {
		return ErrNoWindow
	}
	e.mu.Lock()
	e.running = true
	e.mu.Unlock()

	e.handle()
	e.window.ProcessMessages()
	e.signalQuit()
	e.wg.Wait()
	return nil
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
	if e.window != nil && e.window.IsRunning() {
		_ = e.window.Close()
	}
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
		close(e.quitChannel)
	})
}

// handle launches the tick and render goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(2)
	go e.handleEngine()
	go e.handleRender()
}

// handleEngine runs the fixed-rate tick loop in its own goroutine.
// Each tick drains the event queue into the application, then dispatches one RedrawRequested
// event so widgets can apply deferred work, then fires the tick callback.
// Listens for dynamic rate changes via tickRateChannel. Exits when the quit channel is closed.
func (e *engine) handleEngine() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			e.drainEvents()
			e.dispatch(input.RedrawRequested())

			if e.tickCallback != nil {
				e.tickCallback(dt)
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

// drainEvents dispatches every queued event without blocking.
func (e *engine) drainEvents() {
	for {
		select {
		case event := <-e.events:
			if event.Kind == input.EventWindowResized && e.renderer != nil {
				e.renderer.Resize(event.Width, event.Height)
			}
			e.dispatch(event)
		default:
			return
		}
	}
}

// dispatch feeds one event to the application with the tracked cursor.
func (e *engine) dispatch(event input.Event) {
	e.mu.Lock()
	cursor := e.tracker.Apply(event)
	e.cursor = cursor
	e.mu.Unlock()

	if e.app != nil {
		e.app.Dispatch(event, cursor)
	}
}

// handleRender runs the uncapped (or frame-limited) render loop in its own goroutine.
// Each frame records the application's draw commands between BeginFrame and EndFrame, presents,
// and forwards the requested cursor icon to the window.
// Recovers from panics to avoid crashing the process and signals quit on recovery.
func (e *engine) handleRender() {
	defer e.wg.Done()
	// Recover from panics inside the render goroutine to avoid crashing the whole process.
	defer func() {
		if r := recover(); r != nil {
			common.Logger().Error("render goroutine recovered from panic", "panic", r)
			e.signalQuit()
		}
	}()

	lastRender := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
		}

		now := time.Now()
		dt := float32(now.Sub(lastRender).Seconds())
		lastRender = now

		e.renderFrame()

		if e.renderCallback != nil {
			e.renderCallback(dt)
		}

		if e.profilingEnabled && e.profiler != nil {
			e.profiler.Tick()
		}

		// Frame rate limiting
		if e.renderFrameLimit > 0 {
			elapsed := time.Since(lastRender)
			if remaining := e.renderFrameLimit - elapsed; remaining > 0 {
				time.Sleep(remaining)
			}
		}
	}
}

// renderFrame draws one frame of the application. A frame that cannot begin (minimised window,
// lost surface) is skipped.
func (e *engine) renderFrame() {
	if e.renderer == nil || e.app == nil {
		return
	}
	e.mu.Lock()
	cursor := e.cursor
	e.mu.Unlock()

	if err := e.renderer.BeginFrame(); err != nil {
		if !errors.Is(err, renderer.ErrSurfaceUnavailable) {
			common.Logger().Debug("frame skipped", "error", err)
		}
		return
	}
	e.app.Draw(e.renderer, cursor)
	e.renderer.EndFrame()
	e.renderer.Present()

	if in := e.app.MouseInteraction(cursor); in != e.interaction {
		e.interaction = in
		if e.window != nil {
			e.window.SetCursor(in)
		}
	}
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickRate sets the engine tick rate in ticks per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Duration(float64(time.Second) / fps)

	e.mu.Lock()
	running := e.running
	e.mu.Unlock()

	if running {
		// Non-blocking send - if channel is full, replace the pending value
		select {
		case e.tickRateChannel <- newRate:
		default:
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
	} else {
		e.engineTickRate = newRate
	}
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

// SetRenderCallback registers the function called each render frame.
func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}
