package program

import (
	"testing"

	"github.com/coolmint859/prism/engine/renderer/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fragOnly wraps a fragment uniform list into a valid stage pair.
func fragOnly(uniforms []shader.VariableDecl, structs ...shader.StructDecl) (*shader.Schema, *shader.Schema) {
	vert := &shader.Schema{Stage: shader.StageVertex, SourcePath: "test.vert"}
	frag := &shader.Schema{
		Stage:      shader.StageFragment,
		SourcePath: "test.frag",
		Uniforms:   uniforms,
		Structs:    structs,
	}
	return vert, frag
}

// newTestResolver registers the two standard test programs: "basic" knows
// only a diffuse color, "lit" adds a point light array.
func newTestResolver(t *testing.T) Resolver {
	t.Helper()
	r := NewResolver(newFakeDevice(), newFakeLoader(), nil)

	vert, frag := fragOnly([]shader.VariableDecl{
		{Name: "diffuseColor", Type: "vec4"},
	})
	_, err := r.Define("basic", vert, frag)
	require.NoError(t, err)

	vert, frag = fragOnly(
		[]shader.VariableDecl{
			{Name: "diffuseColor", Type: "vec4"},
			{Name: "lights", Type: "PointLight", IsArray: true, MaxSize: 4},
		},
		shader.StructDecl{Name: "PointLight", Members: []shader.VariableDecl{
			{Name: "position", Type: "vec3"},
			{Name: "intensity", Type: "float"},
		}},
	)
	_, err = r.Define("lit", vert, frag)
	require.NoError(t, err)

	return r
}

func TestDefineRegistersProgram(t *testing.T) {
	r := newTestResolver(t)

	p, err := r.Program("basic")
	require.NoError(t, err)
	assert.Equal(t, "basic", p.Name())
	assert.Equal(t, uint32(1), p.ID())
	assert.Equal(t, StateUnbuilt, p.State())
	assert.False(t, r.IsReady("basic"))

	lit, err := r.Program("lit")
	require.NoError(t, err)
	assert.Equal(t, uint32(2), lit.ID())
}

func TestDefineRejectsInvalidPair(t *testing.T) {
	r := NewResolver(newFakeDevice(), newFakeLoader(), nil)

	vert := &shader.Schema{Stage: shader.StageVertex,
		Outputs: []shader.VaryingDecl{{Name: "vNormal", Type: "vec3"}}}
	frag := &shader.Schema{Stage: shader.StageFragment}

	_, err := r.Define("broken", vert, frag)
	var vErr *shader.ValidationError
	require.ErrorAs(t, err, &vErr)

	// A failed pair is never registered.
	_, err = r.Program("broken")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDefineRejectsDuplicateName(t *testing.T) {
	r := newTestResolver(t)
	vert, frag := fragOnly([]shader.VariableDecl{{Name: "tint", Type: "vec4"}})
	_, err := r.Define("basic", vert, frag)
	require.Error(t, err)
}

func TestRemove(t *testing.T) {
	r := newTestResolver(t)
	r.Remove("lit")
	_, err := r.Program("lit")
	assert.ErrorIs(t, err, ErrNotFound)

	// Removing an unknown name is a no-op.
	r.Remove("lit")

	// The name can be registered again afterwards.
	vert, frag := fragOnly([]shader.VariableDecl{{Name: "tint", Type: "vec4"}})
	_, err = r.Define("lit", vert, frag)
	require.NoError(t, err)
}

func TestBuildUnknownProgram(t *testing.T) {
	r := newTestResolver(t)
	_, err := r.Build("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBuildMakesProgramReady(t *testing.T) {
	r := newTestResolver(t)

	handle, err := r.Build("basic")
	require.NoError(t, err)
	assert.NotZero(t, handle)
	assert.True(t, r.IsReady("basic"))

	// Idempotent.
	again, err := r.Build("basic")
	require.NoError(t, err)
	assert.Equal(t, handle, again)
}

func TestBestFitExactMatchBeatsSuperset(t *testing.T) {
	r := newTestResolver(t)

	// A renderable that only declares a diffuse color: "lit" recognizes it
	// too, but half of lit's capabilities go unused, so "basic" wins.
	name, trace := r.BestFit([]string{"diffuseColor"})
	assert.Equal(t, "basic", name)
	assert.False(t, trace.UsedFallback)

	require.Len(t, trace.Entries, 2)
	basic, lit := trace.Entries[0], trace.Entries[1]
	assert.Equal(t, "basic", basic.Program)
	assert.Equal(t, 1.0, basic.Inclusivity)
	assert.Equal(t, 1.0, basic.Exclusivity)
	assert.Equal(t, 1.0, lit.Inclusivity)
	assert.Equal(t, 0.5, lit.Exclusivity)
	assert.Greater(t, basic.Combined, lit.Combined)
}

func TestBestFitSelectsRicherProgramWhenNeeded(t *testing.T) {
	r := newTestResolver(t)

	name, trace := r.BestFit([]string{"diffuseColor", "PointLight"})
	assert.Equal(t, "lit", name)
	assert.False(t, trace.UsedFallback)
	assert.Equal(t, "lit", trace.Selected)
}

func TestBestFitUnknownCapabilitiesFallBack(t *testing.T) {
	r := newTestResolver(t)

	name, trace := r.BestFit([]string{"SkeletalAnimation"})
	assert.Equal(t, DefaultFallback, name)
	assert.True(t, trace.UsedFallback)
	for _, e := range trace.Entries {
		assert.Zero(t, e.Combined, "program %s should score zero", e.Program)
	}
}

func TestBestFitEmptyCandidatesSkipScoring(t *testing.T) {
	r := newTestResolver(t)

	name, trace := r.BestFit(nil)
	assert.Equal(t, DefaultFallback, name)
	assert.True(t, trace.UsedFallback)
	assert.Empty(t, trace.Entries)
}

func TestBestFitThresholdEnforced(t *testing.T) {
	// Only "lit" is registered; a diffuse-only renderable scores it at
	// (1*1 + 2.5*0.5) / 3.5 ≈ 0.643, below the 0.75 floor.
	r := NewResolver(newFakeDevice(), newFakeLoader(), nil)
	vert, frag := fragOnly(
		[]shader.VariableDecl{
			{Name: "diffuseColor", Type: "vec4"},
			{Name: "lights", Type: "PointLight", IsArray: true, MaxSize: 4},
		},
		shader.StructDecl{Name: "PointLight", Members: []shader.VariableDecl{
			{Name: "position", Type: "vec3"},
		}},
	)
	_, err := r.Define("lit", vert, frag)
	require.NoError(t, err)

	name, trace := r.BestFit([]string{"diffuseColor"})
	assert.Equal(t, DefaultFallback, name)
	assert.True(t, trace.UsedFallback)
	require.Len(t, trace.Entries, 1)
	assert.Less(t, trace.Entries[0].Combined, 0.75)
}

func TestBestFitTieKeepsFirstRegistered(t *testing.T) {
	r := NewResolver(newFakeDevice(), newFakeLoader(), nil)
	for _, name := range []string{"first", "second"} {
		vert, frag := fragOnly([]shader.VariableDecl{{Name: "tint", Type: "vec4"}})
		_, err := r.Define(name, vert, frag)
		require.NoError(t, err)
	}

	name, trace := r.BestFit([]string{"tint"})
	assert.Equal(t, "first", name)
	require.Len(t, trace.Entries, 2)
	assert.Equal(t, trace.Entries[0].Combined, trace.Entries[1].Combined)
}

func TestBestFitCustomScoring(t *testing.T) {
	// A threshold of 0.99 rejects everything but a perfect score.
	r := NewResolver(newFakeDevice(), newFakeLoader(), nil,
		WithScoring(ScoringConfig{InclusionWeight: 1, ExclusionWeight: 2.5, Threshold: 0.99}),
		WithFallback("flat"),
	)
	vert, frag := fragOnly([]shader.VariableDecl{
		{Name: "diffuseColor", Type: "vec4"},
		{Name: "tint", Type: "vec4"},
	})
	_, err := r.Define("two", vert, frag)
	require.NoError(t, err)

	name, trace := r.BestFit([]string{"diffuseColor"})
	assert.Equal(t, "flat", name)
	assert.True(t, trace.UsedFallback)
	assert.Equal(t, "flat", r.Fallback())

	name, trace = r.BestFit([]string{"diffuseColor", "tint"})
	assert.Equal(t, "two", name)
	assert.False(t, trace.UsedFallback)
}

func TestBestFitScoreGrowsWithCoverage(t *testing.T) {
	r := NewResolver(newFakeDevice(), newFakeLoader(), nil)
	vert, frag := fragOnly([]shader.VariableDecl{
		{Name: "diffuseColor", Type: "vec4"},
		{Name: "tint", Type: "vec4"},
		{Name: "shininess", Type: "float"},
	})
	_, err := r.Define("surface", vert, frag)
	require.NoError(t, err)

	// Each list extends the previous one with another recognized capability;
	// the unknown entry keeps inclusivity below 1 so growth stays visible.
	lists := [][]string{
		{"diffuseColor", "Skinning"},
		{"diffuseColor", "tint", "Skinning"},
		{"diffuseColor", "tint", "shininess", "Skinning"},
	}
	var prev ScoreEntry
	for i, candidates := range lists {
		_, trace := r.BestFit(candidates)
		require.Len(t, trace.Entries, 1)
		entry := trace.Entries[0]
		if i > 0 {
			assert.GreaterOrEqual(t, entry.Inclusivity, prev.Inclusivity)
			assert.GreaterOrEqual(t, entry.Exclusivity, prev.Exclusivity)
			assert.Greater(t, entry.Combined, prev.Combined)
		}
		prev = entry
	}
}

func TestBestFitAcceptsAliasCandidates(t *testing.T) {
	r := NewResolver(newFakeDevice(), newFakeLoader(), nil)
	vert, frag := fragOnly([]shader.VariableDecl{
		{Name: "diffuseColor", Type: "vec4", Aliases: []string{"baseColor"}},
	})
	_, err := r.Define("basic", vert, frag)
	require.NoError(t, err)

	// An alias spelling counts toward the same capability as the canonical
	// name, so scoring is unaffected by which spelling the renderable uses.
	name, _ := r.BestFit([]string{"baseColor"})
	assert.Equal(t, "basic", name)
}
