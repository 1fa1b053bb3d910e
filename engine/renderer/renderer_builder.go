package renderer

import (
	"github.com/coolmint859/prism/common"
	"github.com/coolmint859/prism/engine/renderer/program"
)

// RendererBuilderOption is a function that configures a renderer instance
// during construction.
type RendererBuilderOption func(*renderer)

// WithClearColor is an option builder that sets the color used by
// BeginFrame to clear the color buffer.
//
// Parameters:
//   - color: the clear color
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear color option
func WithClearColor(color common.Color) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = color
	}
}

// WithResolverOptions is an option builder that forwards options (fallback
// name, scoring config) to the resolver the renderer constructs.
//
// Parameters:
//   - options: the resolver options to apply
//
// Returns:
//   - RendererBuilderOption: a function that applies the resolver options
func WithResolverOptions(options ...program.ResolverBuilderOption) RendererBuilderOption {
	return func(r *renderer) {
		r.resolverOptions = append(r.resolverOptions, options...)
	}
}
