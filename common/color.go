package common

// Color is an RGBA color with float32 components in the [0, 1] range.
// It is the color currency shared by materials, lights, and the default
// texture provider.
type Color [4]float32

// Predefined colors used throughout the engine.
var (
	// ColorWhite is opaque white, the fallback color for unset sampler uniforms.
	ColorWhite = Color{1, 1, 1, 1}

	// ColorBlack is opaque black.
	ColorBlack = Color{0, 0, 0, 1}
)

// NewColor creates a Color from individual RGBA components, clamping each
// component to the [0, 1] range.
//
// Parameters:
//   - r, g, b, a: the color components
//
// Returns:
//   - Color: the clamped color
func NewColor(r, g, b, a float32) Color {
	return Color{Clamp(r, 0, 1), Clamp(g, 0, 1), Clamp(b, 0, 1), Clamp(a, 0, 1)}
}

// R returns the red component.
func (c Color) R() float32 { return c[0] }

// G returns the green component.
func (c Color) G() float32 { return c[1] }

// B returns the blue component.
func (c Color) B() float32 { return c[2] }

// A returns the alpha component.
func (c Color) A() float32 { return c[3] }

// Bytes returns the color as 8-bit RGBA values, suitable for staging a
// single-texel placeholder texture.
//
// Returns:
//   - [4]uint8: the color quantized to bytes
func (c Color) Bytes() [4]uint8 {
	return [4]uint8{
		uint8(Clamp(c[0], 0, 1) * 255),
		uint8(Clamp(c[1], 0, 1) * 255),
		uint8(Clamp(c[2], 0, 1) * 255),
		uint8(Clamp(c[3], 0, 1) * 255),
	}
}

// Clamp constrains v to the inclusive range [lo, hi].
//
// Parameters:
//   - v: the value to constrain
//   - lo: the lower bound
//   - hi: the upper bound
//
// Returns:
//   - float32: v constrained to [lo, hi]
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
