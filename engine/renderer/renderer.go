package renderer

import (
	"fmt"

	"github.com/coolmint859/prism/common"
	"github.com/coolmint859/prism/engine/renderer/program"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	backend    GraphicsBackend
	resolver   program.Resolver
	clearColor common.Color

	// resolverOptions are collected by builder options and applied when the
	// resolver is constructed.
	resolverOptions []program.ResolverBuilderOption
}

// Renderer owns the graphics backend and the shader program resolver, and
// exposes the per-frame surface the scene drives: clear, program activation
// (direct or by best-fit), and viewport sizing. The renderer is constructed
// once at startup and passed by reference to collaborators; it keeps no
// global state.
type Renderer interface {
	// Backend returns the graphics backend, for collaborators that create
	// GPU resources (textures, buffers) directly.
	Backend() GraphicsBackend

	// Resolver returns the shader program resolver.
	Resolver() program.Resolver

	// BeginFrame clears the color and depth buffers for a new frame.
	BeginFrame()

	// Activate builds the named program if necessary and makes it the
	// active GPU program. No fallback substitution happens here: an unknown
	// or failed program propagates its error to the caller.
	//
	// Parameters:
	//   - name: the registered program name
	//
	// Returns:
	//   - program.Program: the activated program
	//   - error: program.ErrNotFound or a *program.BuildError
	Activate(name string) (program.Program, error)

	// ActivateBestFit selects the best-fit program for a capability set,
	// builds and activates it, and falls back to the resolver's fallback
	// program when the selection fails to build. Only a broken fallback
	// itself surfaces an error.
	//
	// Parameters:
	//   - capabilities: the renderable's declared capability names
	//
	// Returns:
	//   - program.Program: the activated program
	//   - program.ScoreTrace: the scoring record of the selection
	//   - error: an error if even the fallback program cannot be activated
	ActivateBestFit(capabilities []string) (program.Program, program.ScoreTrace, error)

	// Resize updates the viewport to a new drawable size.
	//
	// Parameters:
	//   - width: the drawable width in pixels
	//   - height: the drawable height in pixels
	Resize(width, height int)
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer with the selected backend and a resolver
// bound to it. A GL context must be current on the calling thread before
// calling this with BackendTypeGL.
//
// Parameters:
//   - backendType: the graphics API backend to use
//   - loader: the coalescing source fetcher handed to the resolver
//   - options: variadic RendererBuilderOption functions
//
// Returns:
//   - Renderer: the configured renderer
//   - error: an error if backend initialization fails
func NewRenderer(backendType RendererBackendType, loader program.SourceLoader, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		clearColor: common.ColorBlack,
	}
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeGL:
		backend, err := newGLBackend()
		if err != nil {
			return nil, err
		}
		r.backend = backend
	default:
		return nil, fmt.Errorf("renderer: unsupported backend type %d", backendType)
	}

	r.resolver = program.NewResolver(r.backend, loader, r.backend, r.resolverOptions...)
	return r, nil
}

func (r *renderer) Backend() GraphicsBackend {
	return r.backend
}

func (r *renderer) Resolver() program.Resolver {
	return r.resolver
}

func (r *renderer) BeginFrame() {
	r.backend.Clear(r.clearColor)
}

func (r *renderer) Activate(name string) (program.Program, error) {
	handle, err := r.resolver.Build(name)
	if err != nil {
		return nil, err
	}
	r.backend.UseProgram(handle)
	return r.resolver.Program(name)
}

func (r *renderer) ActivateBestFit(capabilities []string) (program.Program, program.ScoreTrace, error) {
	name, trace := r.resolver.BestFit(capabilities)
	p, err := r.Activate(name)
	if err == nil {
		return p, trace, nil
	}
	if name == r.resolver.Fallback() {
		return nil, trace, err
	}
	// A selected program that cannot build is treated like a missing one:
	// degrade to the fallback and keep rendering the rest of the scene.
	common.Logger().Warn("best-fit program unavailable, using fallback",
		"selected", name, "fallback", r.resolver.Fallback(), "error", err)
	p, err = r.Activate(r.resolver.Fallback())
	if err != nil {
		return nil, trace, err
	}
	trace.Selected = r.resolver.Fallback()
	trace.UsedFallback = true
	return p, trace, nil
}

func (r *renderer) Resize(width, height int) {
	r.backend.Viewport(width, height)
}
