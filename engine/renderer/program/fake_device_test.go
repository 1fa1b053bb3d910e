package program

import (
	"errors"
	"fmt"

	"github.com/coolmint859/prism/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

// uploadRecord captures one typed upload issued through the fake device.
type uploadRecord struct {
	kind     string
	location int32
	value    any
}

// textureBind captures one sampler binding issued through the fake device.
type textureBind struct {
	unit     int32
	texture  shader.TextureHandle
	location int32
}

// fakeDevice is an in-memory Device that hands out sequential handles and
// records every upload. Compile and link failures are injected per test.
type fakeDevice struct {
	nextHandle uint32
	active     uint32

	compileErr map[shader.Stage]error
	linkErr    error

	deleted   []uint32
	uploads   []uploadRecord
	bindings  []textureBind
	locations map[string]int32
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		nextHandle: 1,
		compileErr: make(map[shader.Stage]error),
		locations:  make(map[string]int32),
	}
}

func (d *fakeDevice) CompileShader(stage shader.Stage, source string) (uint32, error) {
	if err := d.compileErr[stage]; err != nil {
		return 0, err
	}
	h := d.nextHandle
	d.nextHandle++
	return h, nil
}

func (d *fakeDevice) LinkProgram(vertex, fragment uint32) (uint32, error) {
	if d.linkErr != nil {
		return 0, d.linkErr
	}
	h := d.nextHandle
	d.nextHandle++
	return h, nil
}

func (d *fakeDevice) DeleteShader(handle uint32) {
	d.deleted = append(d.deleted, handle)
}

func (d *fakeDevice) UseProgram(handle uint32) { d.active = handle }
func (d *fakeDevice) ActiveProgram() uint32    { return d.active }

func (d *fakeDevice) AttributeLocation(program uint32, name string) int32 {
	if loc, ok := d.locations[name]; ok {
		return loc
	}
	return -1
}

func (d *fakeDevice) UniformLocation(program uint32, name string) int32 {
	if loc, ok := d.locations[name]; ok {
		return loc
	}
	return -1
}

func (d *fakeDevice) record(kind string, location int32, value any) {
	d.uploads = append(d.uploads, uploadRecord{kind: kind, location: location, value: value})
}

func (d *fakeDevice) UploadBool(location int32, v bool)        { d.record("bool", location, v) }
func (d *fakeDevice) UploadInt(location int32, v int32)        { d.record("int", location, v) }
func (d *fakeDevice) UploadFloat(location int32, v float32)    { d.record("float", location, v) }
func (d *fakeDevice) UploadVec2(location int32, v mgl32.Vec2)  { d.record("vec2", location, v) }
func (d *fakeDevice) UploadVec3(location int32, v mgl32.Vec3)  { d.record("vec3", location, v) }
func (d *fakeDevice) UploadVec4(location int32, v mgl32.Vec4)  { d.record("vec4", location, v) }
func (d *fakeDevice) UploadMat2(location int32, v mgl32.Mat2)  { d.record("mat2", location, v) }
func (d *fakeDevice) UploadMat3(location int32, v mgl32.Mat3)  { d.record("mat3", location, v) }
func (d *fakeDevice) UploadMat4(location int32, v mgl32.Mat4)  { d.record("mat4", location, v) }

func (d *fakeDevice) BindTexture(unit int32, texture shader.TextureHandle, location int32) {
	d.bindings = append(d.bindings, textureBind{unit: unit, texture: texture, location: location})
}

var _ Device = &fakeDevice{}

// fakeLoader serves shader sources from an in-memory map.
type fakeLoader struct {
	files map[string][]byte
	loads []string
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{files: map[string][]byte{
		"test.vert": []byte("vertex source"),
		"test.frag": []byte("fragment source"),
	}}
}

func (l *fakeLoader) Load(path string) ([]byte, error) {
	l.loads = append(l.loads, path)
	data, ok := l.files[path]
	if !ok {
		return nil, fmt.Errorf("no such file %q: %w", path, errors.New("not found"))
	}
	return data, nil
}

var _ SourceLoader = &fakeLoader{}
