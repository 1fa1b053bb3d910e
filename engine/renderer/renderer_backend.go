package renderer

import (
	"github.com/coolmint859/prism/common"
	"github.com/coolmint859/prism/engine/renderer/program"
	"github.com/coolmint859/prism/engine/renderer/shader"
)

// RendererBackendType identifies the graphics API backend used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeGL selects the OpenGL 4.1 core backend.
	BackendTypeGL RendererBackendType = iota
)

// GraphicsBackend is the full graphics-context contract the renderer owns:
// the program layer's Device (compile/link, location queries, typed uniform
// uploads, texture binding), the shader layer's default-texture provider,
// and the per-frame surface operations.
type GraphicsBackend interface {
	program.Device
	shader.TextureProvider

	// Clear clears the color and depth buffers with the given color.
	//
	// Parameters:
	//   - color: the clear color
	Clear(color common.Color)

	// Viewport resizes the rendering viewport.
	//
	// Parameters:
	//   - width: the viewport width in pixels
	//   - height: the viewport height in pixels
	Viewport(width, height int)
}
