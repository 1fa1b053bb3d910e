package light

import (
	"strconv"

	"github.com/coolmint859/prism/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

// CapabilityPointLight is the capability name shaders declare (via a
// PointLight struct array in their schema) and renderables request when the
// scene carries point lights. Best-fit scoring counts the whole array as
// this one feature.
const CapabilityPointLight = "PointLight"

// pointLight is the implementation of the PointLight interface.
type pointLight struct {
	position  mgl32.Vec3
	color     mgl32.Vec3
	intensity float32
}

// PointLight is a positional light source. Its per-frame state is exposed as
// uniform values addressed by the canonical names of a PointLight struct
// array element ("lights[i].position", "lights[i].color",
// "lights[i].intensity").
type PointLight interface {
	// Position returns the light's world-space position.
	Position() mgl32.Vec3

	// SetPosition moves the light.
	//
	// Parameters:
	//   - p: the new world-space position
	SetPosition(p mgl32.Vec3)

	// Color returns the light's RGB color.
	Color() mgl32.Vec3

	// Intensity returns the light's scalar intensity.
	Intensity() float32

	// Uniforms returns the light's uniform values keyed by the canonical
	// names of array element index within a shader's light array.
	//
	// Parameters:
	//   - index: the light's slot in the shader's light array
	//
	// Returns:
	//   - map[string]shader.UniformValue: the element's member values
	Uniforms(index int) map[string]shader.UniformValue
}

var _ PointLight = &pointLight{}

// NewPointLight creates a PointLight with the provided options applied.
//
// Parameters:
//   - options: variadic PointLightBuilderOption functions
//
// Returns:
//   - PointLight: the configured light
func NewPointLight(options ...PointLightBuilderOption) PointLight {
	l := &pointLight{
		color:     mgl32.Vec3{1, 1, 1},
		intensity: 1,
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

func (l *pointLight) Position() mgl32.Vec3 { return l.position }

func (l *pointLight) SetPosition(p mgl32.Vec3) { l.position = p }

func (l *pointLight) Color() mgl32.Vec3 { return l.color }

func (l *pointLight) Intensity() float32 { return l.intensity }

func (l *pointLight) Uniforms(index int) map[string]shader.UniformValue {
	prefix := "lights[" + strconv.Itoa(index) + "]."
	return map[string]shader.UniformValue{
		prefix + "position":  shader.Vec3Value(l.position),
		prefix + "color":     shader.Vec3Value(l.color),
		prefix + "intensity": shader.Float1(l.intensity),
	}
}
