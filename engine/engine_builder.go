package engine

import "time"

// EngineBuilderOption is a function that modifies the engine during construction.
type EngineBuilderOption func(e *engine)

// WithTickRate sets the fixed logic tick rate in ticks per second.
//
// Parameters:
//   - tps: target ticks per second (non-positive values are ignored)
//
// Returns:
//   - EngineBuilderOption: the builder option
func WithTickRate(tps float64) EngineBuilderOption {
	return func(e *engine) {
		if tps > 0 {
			e.tickRate = time.Duration(float64(time.Second) / tps)
		}
	}
}

// WithTickCallback registers the fixed-rate logic callback.
//
// Parameters:
//   - callback: receives the tick delta time in seconds
//
// Returns:
//   - EngineBuilderOption: the builder option
func WithTickCallback(callback func(deltaTime float32)) EngineBuilderOption {
	return func(e *engine) {
		e.tickCallback = callback
	}
}

// WithRenderCallback registers the per-frame render callback.
//
// Parameters:
//   - callback: receives the frame delta time in seconds
//
// Returns:
//   - EngineBuilderOption: the builder option
func WithRenderCallback(callback func(deltaTime float32)) EngineBuilderOption {
	return func(e *engine) {
		e.renderCallback = callback
	}
}
