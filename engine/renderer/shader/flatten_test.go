package shader

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loc(v int32) *int32 { return &v }

func TestFlattenPrimitiveWithAliases(t *testing.T) {
	s := &Schema{
		Stage: StageVertex,
		Uniforms: []VariableDecl{
			{Name: "modelMatrix", Type: "mat4", Aliases: []string{"model", "world"}},
		},
	}

	table, err := Flatten(s, nil)
	require.NoError(t, err)

	for _, spelling := range []string{"modelMatrix", "model", "world"} {
		canonical, ok := table.Resolve(spelling)
		assert.True(t, ok, "spelling %q should resolve", spelling)
		assert.Equal(t, "modelMatrix", canonical)
	}

	slot := table.Slot("modelMatrix")
	require.NotNil(t, slot)
	assert.Equal(t, TypeMat4, slot.Type)
	assert.True(t, slot.Dirty, "new slots start dirty")
	assert.Equal(t, int32(-1), slot.Location)

	// Alias spellings own no storage of their own.
	assert.Nil(t, table.Slot("model"))
	assert.Nil(t, table.Slot("world"))

	// A standalone uniform is its own capability.
	assert.Equal(t, []string{"modelMatrix"}, table.Capabilities())
}

func TestFlattenStructExpansion(t *testing.T) {
	s := &Schema{
		Stage: StageFragment,
		Structs: []StructDecl{
			{Name: "Material", Members: []VariableDecl{
				{Name: "diffuse", Type: "vec4", Aliases: []string{"color"}},
				{Name: "shininess", Type: "float"},
			}},
		},
		Uniforms: []VariableDecl{
			{Name: "material", Type: "Material", Aliases: []string{"mat"}},
		},
	}

	table, err := Flatten(s, nil)
	require.NoError(t, err)

	// Canonical names follow the dotted member grammar.
	require.NotNil(t, table.Slot("material.diffuse"))
	require.NotNil(t, table.Slot("material.shininess"))
	assert.Equal(t, TypeVec4, table.Slot("material.diffuse").Type)
	assert.Equal(t, TypeFloat, table.Slot("material.shininess").Type)

	// Every prefix spelling crossed with every member spelling resolves.
	for _, spelling := range []string{
		"material.diffuse", "material.color", "mat.diffuse", "mat.color",
	} {
		canonical, ok := table.Resolve(spelling)
		assert.True(t, ok, "spelling %q should resolve", spelling)
		assert.Equal(t, "material.diffuse", canonical)
	}

	// Struct members share the struct type as their capability.
	cap, ok := table.CapabilityOf("mat.shininess")
	require.True(t, ok)
	assert.Equal(t, "Material", cap)
	assert.Equal(t, []string{"Material"}, table.Capabilities())
}

func TestFlattenStructArrayExpansion(t *testing.T) {
	s := &Schema{
		Stage: StageFragment,
		Structs: []StructDecl{
			{Name: "PointLight", Members: []VariableDecl{
				{Name: "position", Type: "vec3"},
				{Name: "intensity", Type: "float"},
			}},
		},
		Uniforms: []VariableDecl{
			{Name: "lights", Type: "PointLight", IsArray: true, MaxSize: 3},
		},
	}

	table, err := Flatten(s, nil)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		assert.NotNil(t, table.Slot(fmt.Sprintf("lights[%d].position", i)))
		assert.NotNil(t, table.Slot(fmt.Sprintf("lights[%d].intensity", i)))
	}
	// Exactly MaxSize elements, no more.
	assert.Nil(t, table.Slot("lights[3].position"))
	assert.Len(t, table.DataNames(), 6)

	// One capability for the whole array, named by the struct type.
	assert.Equal(t, []string{"PointLight"}, table.Capabilities())
	assert.True(t, table.Recognizes("PointLight"))
}

func TestFlattenPrimitiveArrayLocations(t *testing.T) {
	s := &Schema{
		Stage: StageVertex,
		Uniforms: []VariableDecl{
			{Name: "weights", Type: "float", IsArray: true, MaxSize: 4, Location: loc(7)},
		},
	}

	table, err := Flatten(s, nil)
	require.NoError(t, err)

	// Explicit array locations advance per element.
	for i, want := range []int32{7, 8, 9, 10} {
		slot := table.Slot(fmt.Sprintf("weights[%d]", i))
		require.NotNil(t, slot)
		assert.Equal(t, want, slot.Location)
	}

	// A top-level primitive array's capability is its element type.
	assert.Equal(t, []string{"float"}, table.Capabilities())
}

func TestFlattenArrayWithoutSizeFails(t *testing.T) {
	s := &Schema{
		Stage: StageVertex,
		Uniforms: []VariableDecl{
			{Name: "bones", Type: "mat4", IsArray: true},
		},
	}

	_, err := Flatten(s, nil)
	require.Error(t, err)
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
}

func TestFlattenUndeclaredStructFails(t *testing.T) {
	s := &Schema{
		Stage: StageFragment,
		Uniforms: []VariableDecl{
			{Name: "material", Type: "Material"},
		},
	}

	_, err := Flatten(s, nil)
	require.Error(t, err)
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Contains(t, schemaErr.Reason, "Material")
}

func TestFlattenTypeConflictFails(t *testing.T) {
	// Two declarations converging on the same canonical name with different
	// types is self-inconsistent input.
	table := newCapabilityTable()
	require.NoError(t, table.registerSlot("shared", TypeFloat, -1, nil))
	err := table.registerSlot("shared", TypeVec3, -1, nil)
	require.Error(t, err)
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
}

func TestFlattenAttributes(t *testing.T) {
	s := &Schema{
		Stage: StageVertex,
		Attributes: []VariableDecl{
			{Name: "aPosition", Type: "vec3", Location: loc(0), Aliases: []string{"position"}},
			{Name: "aNormal", Type: "vec3"},
		},
	}

	table, err := Flatten(s, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"aPosition", "aNormal"}, table.AttributeNames())

	pos, ok := table.AttributeLocation("aPosition")
	require.True(t, ok)
	assert.Equal(t, int32(0), pos)
	norm, ok := table.AttributeLocation("aNormal")
	require.True(t, ok)
	assert.Equal(t, int32(-1), norm)

	// Attributes resolve through aliases but carry no value slot.
	canonical, ok := table.Resolve("position")
	require.True(t, ok)
	assert.Equal(t, "aPosition", canonical)
	assert.Nil(t, table.Slot("aPosition"))
}

func TestFlattenDeterministicOrder(t *testing.T) {
	s := &Schema{
		Stage: StageFragment,
		Structs: []StructDecl{
			{Name: "Fog", Members: []VariableDecl{
				{Name: "color", Type: "vec3"},
				{Name: "density", Type: "float"},
			}},
		},
		Uniforms: []VariableDecl{
			{Name: "time", Type: "float"},
			{Name: "fog", Type: "Fog"},
			{Name: "tint", Type: "vec4"},
		},
	}

	first, err := Flatten(s, nil)
	require.NoError(t, err)
	want := []string{"time", "fog.color", "fog.density", "tint"}
	assert.Equal(t, want, first.DataNames())

	// Re-flattening the same schema yields identical tables.
	for i := 0; i < 5; i++ {
		again, err := Flatten(s, nil)
		require.NoError(t, err)
		assert.Equal(t, first.DataNames(), again.DataNames())
		assert.Equal(t, first.Capabilities(), again.Capabilities())
	}
}

func TestDefaultValues(t *testing.T) {
	s := &Schema{
		Stage: StageFragment,
		Uniforms: []VariableDecl{
			{Name: "transform", Type: "mat4"},
			{Name: "offset", Type: "vec3"},
			{Name: "enabled", Type: "bool"},
		},
	}

	table, err := Flatten(s, nil)
	require.NoError(t, err)

	transform := table.Slot("transform").Value
	assert.Equal(t, TypeMat4, transform.Type)
	assert.Equal(t, float32(1), transform.Mat4[0], "matrix defaults to identity")
	assert.Equal(t, float32(1), transform.Mat4[15])

	offset := table.Slot("offset").Value
	assert.Equal(t, TypeVec3, offset.Type)
	assert.Zero(t, offset.Vec3)

	assert.False(t, table.Slot("enabled").Value.Bool)
}
