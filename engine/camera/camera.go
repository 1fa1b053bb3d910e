package camera

import (
	"github.com/chewxy/math32"
	"github.com/coolmint859/prism/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

// cameraImpl is the implementation of the Camera interface.
type cameraImpl struct {
	position mgl32.Vec3
	target   mgl32.Vec3
	up       mgl32.Vec3

	// fov is the vertical field of view in degrees.
	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix       mgl32.Mat4
	projectionMatrix mgl32.Mat4
}

// Camera holds perspective settings and a look-at pose, and exposes its
// view/projection matrices as uniform values the scene pushes through each
// program's binding surface every frame.
type Camera interface {
	// Position returns the camera's world-space position.
	Position() mgl32.Vec3

	// SetPosition moves the camera and recomputes the view matrix.
	//
	// Parameters:
	//   - p: the new world-space position
	SetPosition(p mgl32.Vec3)

	// Target returns the world-space point the camera looks at.
	Target() mgl32.Vec3

	// SetTarget repoints the camera and recomputes the view matrix.
	//
	// Parameters:
	//   - t: the new look-at point
	SetTarget(t mgl32.Vec3)

	// Fov returns the vertical field of view in degrees.
	Fov() float32

	// SetAspect updates the aspect ratio (width / height) and recomputes
	// the projection matrix. Called by the engine on window resize.
	//
	// Parameters:
	//   - aspect: the new aspect ratio
	SetAspect(aspect float32)

	// ViewMatrix returns the current column-major view matrix.
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current column-major projection matrix.
	ProjectionMatrix() mgl32.Mat4

	// Uniforms returns the camera's per-frame uniform values keyed by the
	// uniform names shaders declare for them.
	//
	// Returns:
	//   - map[string]shader.UniformValue: viewMatrix, projectionMatrix, and
	//     cameraPosition values
	Uniforms() map[string]shader.UniformValue
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera with the provided options applied and its
// matrices computed.
//
// Parameters:
//   - options: variadic CameraBuilderOption functions
//
// Returns:
//   - Camera: the configured camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		position: mgl32.Vec3{0, 0, 5},
		target:   mgl32.Vec3{0, 0, 0},
		up:       mgl32.Vec3{0, 1, 0},
		fov:      60,
		aspect:   16.0 / 9.0,
		near:     0.1,
		far:      1000,
	}
	for _, opt := range options {
		opt(c)
	}
	c.recompute()
	return c
}

func (c *cameraImpl) Position() mgl32.Vec3 { return c.position }

func (c *cameraImpl) SetPosition(p mgl32.Vec3) {
	c.position = p
	c.recompute()
}

func (c *cameraImpl) Target() mgl32.Vec3 { return c.target }

func (c *cameraImpl) SetTarget(t mgl32.Vec3) {
	c.target = t
	c.recompute()
}

func (c *cameraImpl) Fov() float32 { return c.fov }

func (c *cameraImpl) SetAspect(aspect float32) {
	if aspect > 0 {
		c.aspect = aspect
		c.recompute()
	}
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 { return c.viewMatrix }

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 { return c.projectionMatrix }

func (c *cameraImpl) Uniforms() map[string]shader.UniformValue {
	return map[string]shader.UniformValue{
		"viewMatrix":       shader.Mat4Value(c.viewMatrix),
		"projectionMatrix": shader.Mat4Value(c.projectionMatrix),
		"cameraPosition":   shader.Vec3Value(c.position),
	}
}

// recompute rebuilds both matrices from the current pose and lens settings.
// The field of view is held in degrees and converted at the boundary.
func (c *cameraImpl) recompute() {
	c.viewMatrix = mgl32.LookAtV(c.position, c.target, c.up)
	c.projectionMatrix = mgl32.Perspective(degToRad(c.fov), c.aspect, c.near, c.far)
}

func degToRad(deg float32) float32 {
	return deg * math32.Pi / 180
}
