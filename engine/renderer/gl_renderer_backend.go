package renderer

import (
	"fmt"
	"strings"

	"github.com/coolmint859/prism/common"
	"github.com/coolmint859/prism/engine/renderer/shader"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// glBackend is the OpenGL 4.1 core implementation of GraphicsBackend.
// It must be created after a GL context is current on the calling thread
// (the window package arranges this).
type glBackend struct {
	// activeProgram mirrors the context's current program so the binding
	// surface can enforce its flush precondition without a GPU query.
	activeProgram uint32

	// defaultTextures caches one placeholder texture per fallback color.
	defaultTextures map[common.Color]shader.TextureHandle
}

var _ GraphicsBackend = &glBackend{}

// newGLBackend initializes the GL function pointers and returns the backend.
func newGLBackend() (*glBackend, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("renderer: failed to initialize OpenGL: %w", err)
	}
	gl.Enable(gl.DEPTH_TEST)
	common.Logger().Info("OpenGL backend initialized",
		"version", gl.GoStr(gl.GetString(gl.VERSION)))
	return &glBackend{
		defaultTextures: make(map[common.Color]shader.TextureHandle),
	}, nil
}

func (b *glBackend) CompileShader(stage shader.Stage, source string) (uint32, error) {
	var glStage uint32
	switch stage {
	case shader.StageVertex:
		glStage = gl.VERTEX_SHADER
	case shader.StageFragment:
		glStage = gl.FRAGMENT_SHADER
	default:
		return 0, fmt.Errorf("unsupported shader stage %v", stage)
	}

	handle := gl.CreateShader(glStage)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(handle, 1, csources, nil)
	free()
	gl.CompileShader(handle)

	var status int32
	gl.GetShaderiv(handle, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		info := shaderInfoLog(handle)
		gl.DeleteShader(handle)
		return 0, fmt.Errorf("%s shader compile error: %s", stage, info)
	}
	return handle, nil
}

func (b *glBackend) LinkProgram(vertex, fragment uint32) (uint32, error) {
	handle := gl.CreateProgram()
	gl.AttachShader(handle, vertex)
	gl.AttachShader(handle, fragment)
	gl.LinkProgram(handle)
	gl.DetachShader(handle, vertex)
	gl.DetachShader(handle, fragment)

	var status int32
	gl.GetProgramiv(handle, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		info := programInfoLog(handle)
		gl.DeleteProgram(handle)
		return 0, fmt.Errorf("program link error: %s", info)
	}
	return handle, nil
}

func (b *glBackend) DeleteShader(handle uint32) {
	gl.DeleteShader(handle)
}

func (b *glBackend) UseProgram(handle uint32) {
	gl.UseProgram(handle)
	b.activeProgram = handle
}

func (b *glBackend) ActiveProgram() uint32 {
	return b.activeProgram
}

func (b *glBackend) AttributeLocation(prog uint32, name string) int32 {
	return gl.GetAttribLocation(prog, gl.Str(name+"\x00"))
}

func (b *glBackend) UniformLocation(prog uint32, name string) int32 {
	return gl.GetUniformLocation(prog, gl.Str(name+"\x00"))
}

func (b *glBackend) UploadBool(location int32, v bool) {
	var i int32
	if v {
		i = 1
	}
	gl.Uniform1i(location, i)
}

func (b *glBackend) UploadInt(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (b *glBackend) UploadFloat(location int32, v float32) {
	gl.Uniform1f(location, v)
}

func (b *glBackend) UploadVec2(location int32, v mgl32.Vec2) {
	gl.Uniform2fv(location, 1, &v[0])
}

func (b *glBackend) UploadVec3(location int32, v mgl32.Vec3) {
	gl.Uniform3fv(location, 1, &v[0])
}

func (b *glBackend) UploadVec4(location int32, v mgl32.Vec4) {
	gl.Uniform4fv(location, 1, &v[0])
}

func (b *glBackend) UploadMat2(location int32, v mgl32.Mat2) {
	gl.UniformMatrix2fv(location, 1, false, &v[0])
}

func (b *glBackend) UploadMat3(location int32, v mgl32.Mat3) {
	gl.UniformMatrix3fv(location, 1, false, &v[0])
}

func (b *glBackend) UploadMat4(location int32, v mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &v[0])
}

func (b *glBackend) BindTexture(unit int32, texture shader.TextureHandle, location int32) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, uint32(texture))
	if location >= 0 {
		gl.Uniform1i(location, unit)
	}
}

func (b *glBackend) DefaultTexture(color common.Color) shader.TextureHandle {
	if handle, ok := b.defaultTextures[color]; ok {
		return handle
	}
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	pixel := color.Bytes()
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, 1, 1, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&pixel[0]))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	handle := shader.TextureHandle(tex)
	b.defaultTextures[color] = handle
	return handle
}

func (b *glBackend) Clear(color common.Color) {
	gl.ClearColor(color.R(), color.G(), color.B(), color.A())
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (b *glBackend) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// shaderInfoLog fetches the compiler's message for a failed shader.
func shaderInfoLog(handle uint32) string {
	var logLength int32
	gl.GetShaderiv(handle, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return "no info log"
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(handle, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

// programInfoLog fetches the linker's message for a failed program.
func programInfoLog(handle uint32) string {
	var logLength int32
	gl.GetProgramiv(handle, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return "no info log"
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(handle, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}
