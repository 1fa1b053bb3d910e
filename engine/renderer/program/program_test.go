package program

import (
	"errors"
	"testing"

	"github.com/coolmint859/prism/engine/renderer/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loc(v int32) *int32 { return &v }

// pairSchemas returns a minimal valid vertex/fragment pair: one vertex matrix
// uniform, one fragment color uniform, one matched varying.
func pairSchemas() (*shader.Schema, *shader.Schema) {
	vert := &shader.Schema{
		Stage:      shader.StageVertex,
		SourcePath: "test.vert",
		Uniforms:   []shader.VariableDecl{{Name: "modelMatrix", Type: "mat4"}},
		Attributes: []shader.VariableDecl{{Name: "aPosition", Type: "vec3", Location: loc(0)}},
		Outputs:    []shader.VaryingDecl{{Name: "vNormal", Type: "vec3"}},
	}
	frag := &shader.Schema{
		Stage:      shader.StageFragment,
		SourcePath: "test.frag",
		Uniforms:   []shader.VariableDecl{{Name: "diffuseColor", Type: "vec4", Aliases: []string{"baseColor"}}},
		Inputs:     []shader.VaryingDecl{{Name: "vNormal", Type: "vec3"}},
	}
	return vert, frag
}

func buildTestProgram(t *testing.T, device Device) Program {
	t.Helper()
	vert, frag := pairSchemas()
	merged, err := shader.Validate("test", vert, frag)
	require.NoError(t, err)
	table, err := shader.FlattenMerged(merged, nil)
	require.NoError(t, err)
	return New("test", merged, table, device)
}

func TestProgramBuildLifecycle(t *testing.T) {
	device := newFakeDevice()
	device.locations["modelMatrix"] = 10
	device.locations["diffuseColor"] = 11
	loader := newFakeLoader()

	p := buildTestProgram(t, device)
	assert.Equal(t, StateUnbuilt, p.State())
	assert.Zero(t, p.Handle())

	handle, err := p.(*prog).build(loader)
	require.NoError(t, err)
	assert.Equal(t, StateReady, p.State())
	assert.Equal(t, handle, p.Handle())
	assert.NotZero(t, handle)

	// Both stage handles were released after linking.
	assert.Len(t, device.deleted, 2)

	// Queried locations land in the map; the explicit attribute location is
	// taken from the declaration without a device query.
	mLoc, ok := p.Location("modelMatrix")
	require.True(t, ok)
	assert.Equal(t, int32(10), mLoc)
	aLoc, ok := p.Location("aPosition")
	require.True(t, ok)
	assert.Equal(t, int32(0), aLoc)

	// Rebuilding a ready program is a no-op returning the same handle.
	loadsBefore := len(loader.loads)
	again, err := p.(*prog).build(loader)
	require.NoError(t, err)
	assert.Equal(t, handle, again)
	assert.Equal(t, loadsBefore, len(loader.loads))
}

func TestProgramBuildFetchFailure(t *testing.T) {
	device := newFakeDevice()
	loader := newFakeLoader()
	delete(loader.files, "test.frag")

	p := buildTestProgram(t, device)
	_, err := p.(*prog).build(loader)
	require.Error(t, err)

	var buildErr *BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, "fetch", buildErr.Phase)
	assert.Equal(t, "fragment", buildErr.Stage)
	assert.Equal(t, StateFailed, p.State())
}

func TestProgramBuildCompileFailureIsTerminal(t *testing.T) {
	device := newFakeDevice()
	device.compileErr[shader.StageVertex] = errors.New("syntax error at line 3")
	loader := newFakeLoader()

	p := buildTestProgram(t, device)
	_, err := p.(*prog).build(loader)
	var buildErr *BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, "compile", buildErr.Phase)
	assert.Equal(t, StateFailed, p.State())

	// Later builds return the recorded failure without retrying.
	device.compileErr = map[shader.Stage]error{}
	_, again := p.(*prog).build(loader)
	require.Error(t, again)
	assert.Equal(t, err, again)
	assert.Equal(t, StateFailed, p.State())
}

func TestProgramBuildLinkFailureReleasesStages(t *testing.T) {
	device := newFakeDevice()
	device.linkErr = errors.New("varying mismatch")
	loader := newFakeLoader()

	p := buildTestProgram(t, device)
	_, err := p.(*prog).build(loader)
	var buildErr *BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, "link", buildErr.Phase)
	assert.Len(t, device.deleted, 2)
}

func TestProgramFragmentCompileFailureReleasesVertexStage(t *testing.T) {
	device := newFakeDevice()
	device.compileErr[shader.StageFragment] = errors.New("bad fragment")
	loader := newFakeLoader()

	p := buildTestProgram(t, device)
	_, err := p.(*prog).build(loader)
	require.Error(t, err)
	assert.Len(t, device.deleted, 1)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "unbuilt", StateUnbuilt.String())
	assert.Equal(t, "building", StateBuilding.String())
	assert.Equal(t, "ready", StateReady.String())
	assert.Equal(t, "failed", StateFailed.String())
	assert.Equal(t, "unknown", State(42).String())
}
