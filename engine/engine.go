package engine

import (
	"time"

	"github.com/coolmint859/prism/common"
	"github.com/coolmint859/prism/engine/window"
)

// engine is the implementation of the Engine interface.
type engine struct {
	win window.Window

	tickRate     time.Duration
	tickCallback func(deltaTime float32)

	renderCallback func(deltaTime float32)

	running bool
}

// Engine drives the frame loop: it polls the window, advances game logic at
// a fixed tick rate, and invokes the render callback once per frame. The
// whole loop runs on the thread the window's GL context is current on.
// Asynchronous work (asset fetches) interleaves through the asset cache,
// never through the loop itself.
type Engine interface {
	// Window returns the underlying window.
	Window() window.Window

	// SetTickRate sets the fixed logic tick rate in ticks per second.
	// Non-positive values reset the rate to the default of 60.
	//
	// Parameters:
	//   - tps: target ticks per second
	SetTickRate(tps float64)

	// SetTickCallback registers the function called at the fixed tick rate
	// for game logic updates.
	//
	// Parameters:
	//   - callback: receives the tick delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called once per frame, after
	// any due ticks, for scene rendering.
	//
	// Parameters:
	//   - callback: receives the frame delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// Run enters the frame loop and blocks until the window is closed or
	// Stop is called. Must be called on the window's context thread.
	Run()

	// Stop requests the loop exit after the current frame.
	Stop()
}

var _ Engine = &engine{}

// NewEngine creates an Engine bound to a window.
//
// Parameters:
//   - win: the window driving the loop (must not be nil)
//   - options: variadic EngineBuilderOption functions
//
// Returns:
//   - Engine: the configured engine
func NewEngine(win window.Window, options ...EngineBuilderOption) Engine {
	if win == nil {
		panic("engine: NewEngine requires a non-nil Window")
	}
	e := &engine{
		win:      win,
		tickRate: time.Second / 60,
	}
	for _, opt := range options {
		opt(e)
	}
	return e
}

func (e *engine) Window() window.Window { return e.win }

func (e *engine) SetTickRate(tps float64) {
	if tps <= 0 {
		tps = 60
	}
	e.tickRate = time.Duration(float64(time.Second) / tps)
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

func (e *engine) Run() {
	e.running = true
	common.Logger().Info("engine loop started", "tickRate", e.tickRate)

	last := time.Now()
	var tickAccumulator time.Duration

	for e.running && !e.win.ShouldClose() {
		now := time.Now()
		frameDelta := now.Sub(last)
		last = now

		e.win.Poll()

		// Fixed-rate logic ticks; the accumulator carries the remainder so
		// tick cadence stays stable across uneven frame times.
		tickAccumulator += frameDelta
		for tickAccumulator >= e.tickRate {
			tickAccumulator -= e.tickRate
			if e.tickCallback != nil {
				e.tickCallback(float32(e.tickRate.Seconds()))
			}
		}

		if e.renderCallback != nil {
			e.renderCallback(float32(frameDelta.Seconds()))
		}
		e.win.Swap()
	}
	common.Logger().Info("engine loop stopped")
}

func (e *engine) Stop() {
	e.running = false
}
