package material

import (
	"testing"

	"github.com/coolmint859/prism/engine/renderer/program"
	"github.com/coolmint859/prism/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterialValues(t *testing.T) {
	m := NewMaterial(
		WithName("wood"),
		WithDiffuseColor(mgl32.Vec4{0.6, 0.4, 0.2, 1}),
	)
	assert.Equal(t, "wood", m.Name())

	v, ok := m.Value("diffuseColor")
	require.True(t, ok)
	assert.Equal(t, shader.TypeVec4, v.Type)

	_, ok = m.Value("normalTexture")
	assert.False(t, ok)

	m.Set("shininess", shader.Float1(32))
	v, ok = m.Value("shininess")
	require.True(t, ok)
	assert.Equal(t, float32(32), v.Float)
}

func TestMaterialCapabilities(t *testing.T) {
	m := NewMaterial(WithDiffuseColor(mgl32.Vec4{1, 1, 1, 1}))

	// Plain value names self-register as capabilities; qualified names do
	// not, since their feature is declared by its struct or array capability.
	m.Set("lights[0].intensity", shader.Float1(2))
	m.Set("fog.density", shader.Float1(0.1))
	m.DeclareCapability("PointLight")

	assert.Equal(t, []string{"diffuseColor", "PointLight"}, m.Capabilities())

	// Re-declaring and re-setting never duplicates.
	m.DeclareCapability("PointLight")
	m.Set("diffuseColor", shader.Vec4Value(mgl32.Vec4{0, 0, 0, 1}))
	assert.Equal(t, []string{"diffuseColor", "PointLight"}, m.Capabilities())
}

// applyTarget builds a ready program whose table accepts diffuseColor only.
func applyTarget(t *testing.T) program.Program {
	t.Helper()
	vert := &shader.Schema{Stage: shader.StageVertex, SourcePath: "test.vert"}
	frag := &shader.Schema{
		Stage:      shader.StageFragment,
		SourcePath: "test.frag",
		Uniforms:   []shader.VariableDecl{{Name: "diffuseColor", Type: "vec4", Aliases: []string{"baseColor"}}},
	}
	merged, err := shader.Validate("target", vert, frag)
	require.NoError(t, err)
	table, err := shader.FlattenMerged(merged, nil)
	require.NoError(t, err)
	return program.New("target", merged, table, nil)
}

func TestMaterialApplyCountsAcceptedValues(t *testing.T) {
	p := applyTarget(t)

	m := NewMaterial(
		WithValue("baseColor", shader.Vec4Value(mgl32.Vec4{1, 0, 0, 1})),
		WithValue("shininess", shader.Float1(8)),
	)

	// The alias lands, the unknown name is skipped without error.
	applied := m.Apply(p.Uniforms())
	assert.Equal(t, 1, applied)

	slot := p.Table().Slot("diffuseColor")
	require.NotNil(t, slot)
	assert.Equal(t, mgl32.Vec4{1, 0, 0, 1}, slot.Value.Vec4)
}
