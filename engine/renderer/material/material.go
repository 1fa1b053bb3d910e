package material

import (
	"strings"

	"github.com/coolmint859/prism/engine/renderer/program"
	"github.com/coolmint859/prism/engine/renderer/shader"
)

// material is the implementation of the Material interface.
type material struct {
	name string

	// values holds the material's uniform values keyed by the alias they
	// are applied under; order preserves insertion for deterministic
	// application.
	values map[string]shader.UniformValue
	order  []string

	// capabilities is the declared capability list handed to best-fit
	// scoring. Plain value names register themselves; struct/array
	// capabilities are declared explicitly.
	capabilities []string
}

// Material is a named bundle of uniform values plus the capability list a
// renderable declares for shader selection. A material is shader-agnostic:
// applying it to a program simply attempts every value through the program's
// binding surface, and names the program does not recognize are skipped (the
// binding surface logs and no-ops on those).
type Material interface {
	// Name returns the material identifier.
	Name() string

	// Set stores a uniform value under the given alias. A plain alias (no
	// struct or array qualification) is also registered as a capability.
	//
	// Parameters:
	//   - alias: the uniform spelling the value is applied under
	//   - value: the typed value
	Set(alias string, value shader.UniformValue)

	// Value retrieves a stored value.
	//
	// Parameters:
	//   - alias: the uniform spelling
	//
	// Returns:
	//   - shader.UniformValue: the stored value
	//   - bool: true if the alias has a value
	Value(alias string) (shader.UniformValue, bool)

	// DeclareCapability adds a capability name to the material's declared
	// list without storing a value (struct and array features whose values
	// come from elsewhere, e.g. lights).
	//
	// Parameters:
	//   - names: the capability names to declare
	DeclareCapability(names ...string)

	// Capabilities returns the declared capability list in declaration
	// order. The returned slice is owned by the material and must not be
	// mutated.
	Capabilities() []string

	// Apply pushes every stored value into a program's binding surface.
	// Values the program does not recognize are dropped by the surface
	// without error; a shared material is expected to miss on some
	// programs.
	//
	// Parameters:
	//   - u: the target program's uniform store
	//
	// Returns:
	//   - int: the number of values the program accepted
	Apply(u *program.UniformStore) int
}

var _ Material = &material{}

// NewMaterial creates a Material with the provided options applied.
//
// Parameters:
//   - options: variadic MaterialBuilderOption functions
//
// Returns:
//   - Material: the configured material
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		values: make(map[string]shader.UniformValue),
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string { return m.name }

func (m *material) Set(alias string, value shader.UniformValue) {
	if _, exists := m.values[alias]; !exists {
		m.order = append(m.order, alias)
		if !strings.ContainsAny(alias, ".[") {
			m.DeclareCapability(alias)
		}
	}
	m.values[alias] = value
}

func (m *material) Value(alias string) (shader.UniformValue, bool) {
	v, ok := m.values[alias]
	return v, ok
}

func (m *material) DeclareCapability(names ...string) {
	for _, name := range names {
		exists := false
		for _, c := range m.capabilities {
			if c == name {
				exists = true
				break
			}
		}
		if !exists {
			m.capabilities = append(m.capabilities, name)
		}
	}
}

func (m *material) Capabilities() []string { return m.capabilities }

func (m *material) Apply(u *program.UniformStore) int {
	applied := 0
	for _, alias := range m.order {
		if u.SetValue(alias, m.values[alias]) {
			applied++
		}
	}
	return applied
}
