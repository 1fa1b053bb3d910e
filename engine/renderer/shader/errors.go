package shader

import "fmt"

// SchemaError reports malformed or self-inconsistent declarative input:
// a missing struct definition, a zero-size declared array, or the same
// canonical name registered twice with conflicting types. Schema errors
// surface at flatten time and are never silently patched.
type SchemaError struct {
	// Name is the declaration or canonical name the error concerns.
	Name string

	// Reason describes what is wrong with the declaration.
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("shader schema: %s: %s", e.Name, e.Reason)
}

// schemaErrorf constructs a SchemaError with a formatted reason.
func schemaErrorf(name, format string, args ...any) *SchemaError {
	return &SchemaError{Name: name, Reason: fmt.Sprintf(format, args...)}
}

// ValidationCheck identifies which of the Validate gates rejected a shader
// pair. The build pipeline logs this so shader authors can see exactly which
// cross-stage contract their declarations broke.
type ValidationCheck int

const (
	// CheckVaryings is the vertex-output / fragment-input compatibility gate.
	CheckVaryings ValidationCheck = iota

	// CheckBlockBindings is the uniform-block binding compatibility gate.
	CheckBlockBindings

	// CheckUniformLocations is the explicit uniform-location collision gate.
	CheckUniformLocations

	// CheckNameUniqueness is the per-stage duplicate-name gate.
	CheckNameUniqueness
)

var checkNames = map[ValidationCheck]string{
	CheckVaryings:         "varying compatibility",
	CheckBlockBindings:    "uniform block bindings",
	CheckUniformLocations: "uniform locations",
	CheckNameUniqueness:   "name uniqueness",
}

// String returns a human-readable name for the check.
func (c ValidationCheck) String() string {
	if s, ok := checkNames[c]; ok {
		return s
	}
	return "unknown check"
}

// ValidationError reports a vertex/fragment stage-pair incompatibility,
// tagged with the specific check that failed. A pair that fails validation
// is never flattened, merged, or registered.
type ValidationError struct {
	// Program is the name the pair was being validated under.
	Program string

	// Check identifies which validation gate rejected the pair.
	Check ValidationCheck

	// Reason describes the specific mismatch.
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("shader validation: %s: %s check failed: %s", e.Program, e.Check, e.Reason)
}

// validationErrorf constructs a ValidationError with a formatted reason.
func validationErrorf(program string, check ValidationCheck, format string, args ...any) *ValidationError {
	return &ValidationError{Program: program, Check: check, Reason: fmt.Sprintf(format, args...)}
}
