package scene

import "github.com/coolmint859/prism/engine/light"

// SceneBuilderOption is a function that configures a scene instance during
// construction.
type SceneBuilderOption func(*sceneImpl)

// WithLights is an option builder that seeds the scene's light list.
//
// Parameters:
//   - lights: the point lights to add, in slot order
//
// Returns:
//   - SceneBuilderOption: a function that applies the lights option
func WithLights(lights ...light.PointLight) SceneBuilderOption {
	return func(s *sceneImpl) {
		s.lights = append(s.lights, lights...)
	}
}

// WithInactive is an option builder that creates the scene deactivated, for
// scenes registered ahead of time and hot-swapped in later.
//
// Returns:
//   - SceneBuilderOption: a function that applies the inactive option
func WithInactive() SceneBuilderOption {
	return func(s *sceneImpl) {
		s.active = false
	}
}
