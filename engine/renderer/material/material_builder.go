package material

import (
	"github.com/coolmint859/prism/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

// MaterialBuilderOption is a function that configures a material instance
// during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the material identifier.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithValue is an option builder that stores an arbitrary uniform value.
//
// Parameters:
//   - alias: the uniform spelling the value is applied under
//   - value: the typed value
//
// Returns:
//   - MaterialBuilderOption: a function that applies the value option
func WithValue(alias string, value shader.UniformValue) MaterialBuilderOption {
	return func(m *material) {
		m.Set(alias, value)
	}
}

// WithDiffuseColor is an option builder that sets the material's diffuse
// RGBA color under the conventional "diffuseColor" uniform name.
//
// Parameters:
//   - color: the diffuse color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the diffuse color option
func WithDiffuseColor(color mgl32.Vec4) MaterialBuilderOption {
	return func(m *material) {
		m.Set("diffuseColor", shader.Vec4Value(color))
	}
}

// WithDiffuseTexture is an option builder that sets the material's diffuse
// texture under the conventional "diffuseTexture" uniform name.
//
// Parameters:
//   - tex: the texture handle
//
// Returns:
//   - MaterialBuilderOption: a function that applies the texture option
func WithDiffuseTexture(tex shader.TextureHandle) MaterialBuilderOption {
	return func(m *material) {
		m.Set("diffuseTexture", shader.Texture2D(tex))
	}
}

// WithCapabilities is an option builder that declares extra capability names
// for shader selection.
//
// Parameters:
//   - names: the capability names to declare
//
// Returns:
//   - MaterialBuilderOption: a function that applies the capability option
func WithCapabilities(names ...string) MaterialBuilderOption {
	return func(m *material) {
		m.DeclareCapability(names...)
	}
}
