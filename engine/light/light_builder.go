package light

import "github.com/go-gl/mathgl/mgl32"

// PointLightBuilderOption is a function that configures a point light during
// construction.
type PointLightBuilderOption func(*pointLight)

// WithPosition is an option builder that sets the light's world-space
// position.
//
// Parameters:
//   - p: the light position
//
// Returns:
//   - PointLightBuilderOption: a function that applies the position option
func WithPosition(p mgl32.Vec3) PointLightBuilderOption {
	return func(l *pointLight) {
		l.position = p
	}
}

// WithColor is an option builder that sets the light's RGB color.
//
// Parameters:
//   - c: the light color
//
// Returns:
//   - PointLightBuilderOption: a function that applies the color option
func WithColor(c mgl32.Vec3) PointLightBuilderOption {
	return func(l *pointLight) {
		l.color = c
	}
}

// WithIntensity is an option builder that sets the light's scalar intensity.
//
// Parameters:
//   - intensity: the intensity factor
//
// Returns:
//   - PointLightBuilderOption: a function that applies the intensity option
func WithIntensity(intensity float32) PointLightBuilderOption {
	return func(l *pointLight) {
		l.intensity = intensity
	}
}
