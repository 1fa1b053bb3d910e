package scene

import (
	"fmt"

	"github.com/coolmint859/prism/common"
	"github.com/coolmint859/prism/engine/camera"
	"github.com/coolmint859/prism/engine/light"
	"github.com/coolmint859/prism/engine/renderer"
	"github.com/coolmint859/prism/engine/renderer/material"
	"github.com/coolmint859/prism/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is the drawable geometry contract. Buffer creation and draw call
// submission belong to the application's geometry layer; the scene only
// invokes Draw once the right program is active and its uniforms are
// flushed.
type Mesh interface {
	// Draw issues the mesh's draw call on the current GL context.
	Draw()
}

// Model is one renderable entity: geometry, surface description, and a
// world transform.
type Model struct {
	// Mesh is the drawable geometry.
	Mesh Mesh

	// Material carries the uniform values and declared capabilities.
	Material material.Material

	// Transform is the model's world matrix.
	Transform mgl32.Mat4

	// Attributes lists the vertex attribute names the mesh feeds. They are
	// declared as capabilities during best-fit selection so programs whose
	// attribute layout matches the mesh score higher.
	Attributes []string
}

// sceneImpl is the implementation of the Scene interface.
type sceneImpl struct {
	name   string
	active bool

	cam    camera.Camera
	r      renderer.Renderer
	lights []light.PointLight

	registry map[uint64]*Model
	order    []uint64
	nextID   uint64
}

// Scene is a minimal container for models, lights, and a camera, with a
// per-frame render walk: for each model it selects the best-fit shader
// program for the model's declared capability set, activates it, pushes
// camera, light, and material uniforms through the program's binding
// surface, flushes, and draws.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Active returns whether this scene is currently rendered.
	Active() bool

	// SetActive toggles whether this scene is rendered.
	//
	// Parameters:
	//   - active: the new active flag
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// SetCamera replaces the scene's camera.
	//
	// Parameters:
	//   - cam: the new camera
	SetCamera(cam camera.Camera)

	// AddLight appends a point light. Lights are addressed by their slot
	// index in shader light arrays.
	//
	// Parameters:
	//   - l: the light to add
	AddLight(l light.PointLight)

	// Lights returns the scene's lights in slot order.
	Lights() []light.PointLight

	// Add registers a model and returns its scene-unique id.
	//
	// Parameters:
	//   - m: the model to add; its Mesh and Material must be non-nil
	//
	// Returns:
	//   - uint64: the model's id
	//   - error: an error if the model is incomplete
	Add(m *Model) (uint64, error)

	// Remove drops a model by id. Unknown ids are ignored.
	//
	// Parameters:
	//   - id: the model id returned from Add
	Remove(id uint64)

	// Count returns the number of registered models.
	Count() int

	// Render walks the scene once: one best-fit selection, uniform push,
	// flush, and draw per model. Per-model failures are logged and skipped
	// so the rest of the scene still renders.
	Render()
}

var _ Scene = &sceneImpl{}

// NewScene creates a Scene bound to a camera and renderer. Both are required.
//
// Parameters:
//   - name: the scene identifier
//   - cam: the camera to attach (must not be nil)
//   - r: the renderer to attach (must not be nil)
//   - options: variadic SceneBuilderOption functions
//
// Returns:
//   - Scene: the configured scene
func NewScene(name string, cam camera.Camera, r renderer.Renderer, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}
	if r == nil {
		panic("scene: NewScene requires a non-nil Renderer")
	}
	s := &sceneImpl{
		name:     name,
		active:   true,
		cam:      cam,
		r:        r,
		registry: make(map[uint64]*Model),
		nextID:   1,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *sceneImpl) Name() string { return s.name }

func (s *sceneImpl) Active() bool { return s.active }

func (s *sceneImpl) SetActive(active bool) { s.active = active }

func (s *sceneImpl) Camera() camera.Camera { return s.cam }

func (s *sceneImpl) SetCamera(cam camera.Camera) { s.cam = cam }

func (s *sceneImpl) AddLight(l light.PointLight) {
	s.lights = append(s.lights, l)
}

func (s *sceneImpl) Lights() []light.PointLight { return s.lights }

func (s *sceneImpl) Add(m *Model) (uint64, error) {
	if m == nil || m.Mesh == nil || m.Material == nil {
		return 0, fmt.Errorf("scene %q: model requires a mesh and a material", s.name)
	}
	id := s.nextID
	s.nextID++
	s.registry[id] = m
	s.order = append(s.order, id)
	return id, nil
}

func (s *sceneImpl) Remove(id uint64) {
	if _, ok := s.registry[id]; !ok {
		return
	}
	delete(s.registry, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *sceneImpl) Count() int { return len(s.registry) }

func (s *sceneImpl) Render() {
	if !s.active {
		return
	}
	for _, id := range s.order {
		m := s.registry[id]
		if err := s.renderModel(m); err != nil {
			common.Logger().Warn("model skipped", "scene", s.name,
				"material", m.Material.Name(), "error", err)
		}
	}
}

// renderModel draws one model: best-fit program activation, uniform push,
// flush, draw.
func (s *sceneImpl) renderModel(m *Model) error {
	p, _, err := s.r.ActivateBestFit(s.candidates(m))
	if err != nil {
		return err
	}
	u := p.Uniforms()

	for name, value := range s.cam.Uniforms() {
		u.SetValue(name, value)
	}
	u.SetValue("modelMatrix", shader.Mat4Value(m.Transform))

	if len(s.lights) > 0 {
		u.SetValue("numLights", shader.Int1(int32(len(s.lights))))
		for i, l := range s.lights {
			for name, value := range l.Uniforms(i) {
				u.SetValue(name, value)
			}
		}
	}

	m.Material.Apply(u)
	if err := u.Flush(); err != nil {
		return err
	}
	m.Mesh.Draw()
	return nil
}

// candidates assembles the capability list used to select a program for one
// model. The material only knows the values it carries, so the scene adds the
// mesh's attribute names and every uniform it pushes itself during
// renderModel: the model matrix, the camera state, and light data when
// lights are present.
func (s *sceneImpl) candidates(m *Model) []string {
	caps := make([]string, 0, len(m.Attributes)+8)
	seen := make(map[string]bool)
	add := func(names ...string) {
		for _, name := range names {
			if !seen[name] {
				seen[name] = true
				caps = append(caps, name)
			}
		}
	}

	add(m.Material.Capabilities()...)
	add(m.Attributes...)
	add("modelMatrix")
	for name := range s.cam.Uniforms() {
		add(name)
	}
	if len(s.lights) > 0 {
		add("numLights", light.CapabilityPointLight)
	}
	return caps
}
