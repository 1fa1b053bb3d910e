package program

import (
	"github.com/coolmint859/prism/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

// Device is the narrow graphics-context contract the program layer depends
// on: compile and link shader stages, answer name→location queries, upload
// typed values at locations, and bind textures to units. The renderer's GL
// backend implements it; tests substitute an in-memory fake.
type Device interface {
	// CompileShader compiles one stage's source text.
	//
	// Parameters:
	//   - stage: the pipeline stage the source belongs to
	//   - source: the shader source text
	//
	// Returns:
	//   - uint32: the compiled stage handle
	//   - error: the compiler's failure report
	CompileShader(stage shader.Stage, source string) (uint32, error)

	// LinkProgram links a compiled vertex/fragment pair into a program.
	//
	// Parameters:
	//   - vertex: the compiled vertex stage handle
	//   - fragment: the compiled fragment stage handle
	//
	// Returns:
	//   - uint32: the linked program handle
	//   - error: the linker's failure report
	LinkProgram(vertex, fragment uint32) (uint32, error)

	// DeleteShader releases a compiled stage handle after linking.
	//
	// Parameters:
	//   - handle: the stage handle to release
	DeleteShader(handle uint32)

	// UseProgram makes a linked program the active GPU program.
	//
	// Parameters:
	//   - handle: the program handle to activate, or 0 to unbind
	UseProgram(handle uint32)

	// ActiveProgram returns the handle of the currently active program, or 0.
	ActiveProgram() uint32

	// AttributeLocation queries the resolved binding location of a vertex
	// attribute. Returns -1 for names the linker discarded.
	//
	// Parameters:
	//   - program: the linked program handle
	//   - name: the attribute name
	//
	// Returns:
	//   - int32: the attribute location, or -1
	AttributeLocation(program uint32, name string) int32

	// UniformLocation queries the resolved binding location of a uniform.
	// Returns -1 for names the linker discarded.
	//
	// Parameters:
	//   - program: the linked program handle
	//   - name: the canonical uniform name
	//
	// Returns:
	//   - int32: the uniform location, or -1
	UniformLocation(program uint32, name string) int32

	// UploadBool uploads a boolean at a location (as integer 0/1).
	UploadBool(location int32, v bool)

	// UploadInt uploads a 32-bit integer at a location.
	UploadInt(location int32, v int32)

	// UploadFloat uploads a 32-bit float at a location.
	UploadFloat(location int32, v float32)

	// UploadVec2 uploads a 2-component vector at a location.
	UploadVec2(location int32, v mgl32.Vec2)

	// UploadVec3 uploads a 3-component vector at a location.
	UploadVec3(location int32, v mgl32.Vec3)

	// UploadVec4 uploads a 4-component vector at a location.
	UploadVec4(location int32, v mgl32.Vec4)

	// UploadMat2 uploads a column-major 2x2 matrix at a location.
	UploadMat2(location int32, v mgl32.Mat2)

	// UploadMat3 uploads a column-major 3x3 matrix at a location.
	UploadMat3(location int32, v mgl32.Mat3)

	// UploadMat4 uploads a column-major 4x4 matrix at a location.
	UploadMat4(location int32, v mgl32.Mat4)

	// BindTexture assigns a texture to a sequential texture unit and points
	// the sampler uniform at that unit.
	//
	// Parameters:
	//   - unit: the texture unit index
	//   - texture: the texture handle to bind
	//   - location: the sampler uniform's location, or -1 to skip the
	//     uniform assignment
	BindTexture(unit int32, texture shader.TextureHandle, location int32)
}

// SourceLoader fetches shader source text by relative path. The asset cache
// implements it with in-flight load coalescing: the program build asks once
// per distinct path and reuses pending results.
type SourceLoader interface {
	// Load returns the bytes of the named resource.
	//
	// Parameters:
	//   - path: the relative resource path
	//
	// Returns:
	//   - []byte: the resource contents
	//   - error: the fetch failure, if any
	Load(path string) ([]byte, error)
}
