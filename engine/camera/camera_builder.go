package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraBuilderOption is a function that configures a camera instance during
// construction.
type CameraBuilderOption func(*cameraImpl)

// WithPosition is an option builder that sets the camera's world-space
// position.
//
// Parameters:
//   - p: the camera position
//
// Returns:
//   - CameraBuilderOption: a function that applies the position option
func WithPosition(p mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = p
	}
}

// WithTarget is an option builder that sets the point the camera looks at.
//
// Parameters:
//   - t: the look-at point
//
// Returns:
//   - CameraBuilderOption: a function that applies the target option
func WithTarget(t mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.target = t
	}
}

// WithUp is an option builder that sets the camera's up vector.
//
// Parameters:
//   - up: the up vector
//
// Returns:
//   - CameraBuilderOption: a function that applies the up option
func WithUp(up mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = up
	}
}

// WithFov is an option builder that sets the vertical field of view in
// degrees.
//
// Parameters:
//   - fov: the field of view in degrees
//
// Returns:
//   - CameraBuilderOption: a function that applies the fov option
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithAspect is an option builder that sets the aspect ratio (width /
// height).
//
// Parameters:
//   - aspect: the aspect ratio
//
// Returns:
//   - CameraBuilderOption: a function that applies the aspect option
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.aspect = aspect
	}
}

// WithClipPlanes is an option builder that sets the near and far clipping
// plane distances.
//
// Parameters:
//   - near: the near plane distance
//   - far: the far plane distance
//
// Returns:
//   - CameraBuilderOption: a function that applies the clip plane option
func WithClipPlanes(near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
		c.far = far
	}
}
