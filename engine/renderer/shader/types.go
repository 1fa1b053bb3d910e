package shader

import (
	"github.com/coolmint859/prism/common"
	"github.com/go-gl/mathgl/mgl32"
)

// VarType identifies the GPU-side type of a declared uniform or attribute.
// The set is closed: every value a shader can receive is one of these, which
// lets the uniform upload path dispatch with an exhaustive switch instead of
// guessing at runtime.
type VarType int

const (
	// TypeInvalid is the zero value, produced for unknown type names.
	TypeInvalid VarType = iota

	// TypeBool is a boolean uniform, uploaded as an integer 0 or 1.
	TypeBool

	// TypeInt is a 32-bit signed integer uniform.
	TypeInt

	// TypeFloat is a 32-bit float uniform.
	TypeFloat

	// TypeVec2 is a 2-component float vector.
	TypeVec2

	// TypeVec3 is a 3-component float vector.
	TypeVec3

	// TypeVec4 is a 4-component float vector.
	TypeVec4

	// TypeMat2 is a 2x2 float matrix, column-major.
	TypeMat2

	// TypeMat3 is a 3x3 float matrix, column-major.
	TypeMat3

	// TypeMat4 is a 4x4 float matrix, column-major.
	TypeMat4

	// TypeSampler2D is a 2D texture sampler.
	TypeSampler2D

	// TypeSampler3D is a 3D texture sampler.
	TypeSampler3D
)

// varTypeNames maps the declarative configuration's type strings to VarType
// values. Any string not in this table is treated as a struct type name and
// resolved against the schema's struct table.
var varTypeNames = map[string]VarType{
	"bool":      TypeBool,
	"int":       TypeInt,
	"float":     TypeFloat,
	"vec2":      TypeVec2,
	"vec3":      TypeVec3,
	"vec4":      TypeVec4,
	"mat2":      TypeMat2,
	"mat3":      TypeMat3,
	"mat4":      TypeMat4,
	"sampler2D": TypeSampler2D,
	"sampler3D": TypeSampler3D,
}

var varTypeStrings = map[VarType]string{
	TypeInvalid:   "invalid",
	TypeBool:      "bool",
	TypeInt:       "int",
	TypeFloat:     "float",
	TypeVec2:      "vec2",
	TypeVec3:      "vec3",
	TypeVec4:      "vec4",
	TypeMat2:      "mat2",
	TypeMat3:      "mat3",
	TypeMat4:      "mat4",
	TypeSampler2D: "sampler2D",
	TypeSampler3D: "sampler3D",
}

// ParseVarType resolves a declarative type string to its VarType.
//
// Parameters:
//   - name: the type string from a schema document (e.g. "vec3")
//
// Returns:
//   - VarType: the parsed type, or TypeInvalid if name is not a primitive type
//   - bool: true if name named a primitive type
func ParseVarType(name string) (VarType, bool) {
	t, ok := varTypeNames[name]
	return t, ok
}

// String returns the declarative configuration spelling of the type.
func (t VarType) String() string {
	if s, ok := varTypeStrings[t]; ok {
		return s
	}
	return "invalid"
}

// IsSampler reports whether the type is a texture sampler. Sampler uniforms
// take the texture-unit path through Flush rather than the value upload path.
func (t VarType) IsSampler() bool {
	return t == TypeSampler2D || t == TypeSampler3D
}

// TextureHandle is an opaque reference to a GPU texture object, produced by
// the graphics backend and carried inside sampler-typed UniformValues.
type TextureHandle uint32

// TextureProvider supplies placeholder textures for sampler uniforms that
// have never been explicitly set. The graphics backend implements this.
type TextureProvider interface {
	// DefaultTexture returns a handle to a single-texel texture of the given
	// fallback color, creating it on first use and reusing it afterwards.
	//
	// Parameters:
	//   - color: the fallback color for the placeholder texture
	//
	// Returns:
	//   - TextureHandle: the placeholder texture handle
	DefaultTexture(color common.Color) TextureHandle
}

// UniformValue is a closed tagged variant over every type a uniform slot can
// hold. Exactly the field selected by Type is meaningful; the rest are zero.
// Values are small and copied freely.
type UniformValue struct {
	// Type selects which field below carries the value.
	Type VarType

	Bool    bool
	Int     int32
	Float   float32
	Vec2    mgl32.Vec2
	Vec3    mgl32.Vec3
	Vec4    mgl32.Vec4
	Mat2    mgl32.Mat2
	Mat3    mgl32.Mat3
	Mat4    mgl32.Mat4
	Texture TextureHandle
}

// Bool1 wraps a bool as a UniformValue.
func Bool1(v bool) UniformValue { return UniformValue{Type: TypeBool, Bool: v} }

// Int1 wraps an int32 as a UniformValue.
func Int1(v int32) UniformValue { return UniformValue{Type: TypeInt, Int: v} }

// Float1 wraps a float32 as a UniformValue.
func Float1(v float32) UniformValue { return UniformValue{Type: TypeFloat, Float: v} }

// Vec2Value wraps an mgl32.Vec2 as a UniformValue.
func Vec2Value(v mgl32.Vec2) UniformValue { return UniformValue{Type: TypeVec2, Vec2: v} }

// Vec3Value wraps an mgl32.Vec3 as a UniformValue.
func Vec3Value(v mgl32.Vec3) UniformValue { return UniformValue{Type: TypeVec3, Vec3: v} }

// Vec4Value wraps an mgl32.Vec4 as a UniformValue.
func Vec4Value(v mgl32.Vec4) UniformValue { return UniformValue{Type: TypeVec4, Vec4: v} }

// Mat2Value wraps an mgl32.Mat2 as a UniformValue.
func Mat2Value(v mgl32.Mat2) UniformValue { return UniformValue{Type: TypeMat2, Mat2: v} }

// Mat3Value wraps an mgl32.Mat3 as a UniformValue.
func Mat3Value(v mgl32.Mat3) UniformValue { return UniformValue{Type: TypeMat3, Mat3: v} }

// Mat4Value wraps an mgl32.Mat4 as a UniformValue.
func Mat4Value(v mgl32.Mat4) UniformValue { return UniformValue{Type: TypeMat4, Mat4: v} }

// Texture2D wraps a texture handle as a sampler2D UniformValue.
func Texture2D(t TextureHandle) UniformValue {
	return UniformValue{Type: TypeSampler2D, Texture: t}
}

// Texture3D wraps a texture handle as a sampler3D UniformValue.
func Texture3D(t TextureHandle) UniformValue {
	return UniformValue{Type: TypeSampler3D, Texture: t}
}

// DefaultValue produces the type-appropriate initial value for a uniform
// slot: identity for matrices, zero for vectors and scalars, false for bools,
// and the provider's placeholder texture for samplers.
//
// Parameters:
//   - t: the uniform type
//   - textures: the provider consulted for sampler defaults; may be nil, in
//     which case sampler defaults carry a zero texture handle
//
// Returns:
//   - UniformValue: the default value for the type
func DefaultValue(t VarType, textures TextureProvider) UniformValue {
	switch t {
	case TypeBool:
		return Bool1(false)
	case TypeInt:
		return Int1(0)
	case TypeFloat:
		return Float1(0)
	case TypeVec2:
		return Vec2Value(mgl32.Vec2{})
	case TypeVec3:
		return Vec3Value(mgl32.Vec3{})
	case TypeVec4:
		return Vec4Value(mgl32.Vec4{})
	case TypeMat2:
		return Mat2Value(mgl32.Ident2())
	case TypeMat3:
		return Mat3Value(mgl32.Ident3())
	case TypeMat4:
		return Mat4Value(mgl32.Ident4())
	case TypeSampler2D, TypeSampler3D:
		v := UniformValue{Type: t}
		if textures != nil {
			v.Texture = textures.DefaultTexture(common.ColorWhite)
		}
		return v
	default:
		return UniformValue{}
	}
}
