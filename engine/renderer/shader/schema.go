package shader

import (
	"encoding/json"
	"fmt"
)

// Stage identifies which pipeline stage a schema or shader belongs to.
type Stage int

const (
	// StageVertex is the vertex shader stage.
	StageVertex Stage = iota

	// StageFragment is the fragment shader stage.
	StageFragment
)

// String returns the stage name used in logs and error messages.
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// VariableDecl is one declared uniform or attribute from a schema document.
// Type is either a primitive type string (see ParseVarType) or the name of a
// struct declared in the same schema's struct table.
type VariableDecl struct {
	// Name is the declared variable name. Must be non-empty.
	Name string `json:"name"`

	// Type is the primitive type string or struct type name.
	Type string `json:"type"`

	// IsArray marks the declaration as a fixed-size array.
	IsArray bool `json:"isArray,omitempty"`

	// MaxSize is the fixed array length. Only meaningful when IsArray is set,
	// in which case it must be positive.
	MaxSize int `json:"maxSize,omitempty"`

	// Location is an optional explicit binding slot. When set, the program
	// build skips the GPU location query for this variable and uses it
	// directly.
	Location *int32 `json:"location,omitempty"`

	// Aliases is an ordered list of alternate names accepted from calling
	// code. All aliases resolve to the same canonical storage slot.
	Aliases []string `json:"aliases,omitempty"`
}

// Count returns the number of elements this declaration occupies: MaxSize
// for arrays, 1 otherwise.
func (d VariableDecl) Count() int {
	if d.IsArray {
		return d.MaxSize
	}
	return 1
}

// StructDecl is a named, ordered list of member declarations. A member whose
// Type names another struct is resolved by recursive lookup during
// flattening.
type StructDecl struct {
	// Name is the struct type name referenced by VariableDecl.Type.
	Name string `json:"name"`

	// Members is the ordered member list.
	Members []VariableDecl `json:"members"`
}

// BlockDecl describes a uniform block. Two blocks from opposite stages that
// share a binding slot must agree on name and member list or the pair is
// rejected by Validate.
type BlockDecl struct {
	// Name is the block name.
	Name string `json:"name"`

	// Binding is the optional explicit block binding slot.
	Binding *int32 `json:"binding,omitempty"`

	// Members is the ordered member list.
	Members []VariableDecl `json:"members"`
}

// VaryingDecl describes a value passed between stages: a vertex stage output
// or a fragment stage input. Validate requires the two stages' varying sets
// to match exactly on (name, type, count).
type VaryingDecl struct {
	// Name is the varying name.
	Name string `json:"name"`

	// Type is the primitive type string.
	Type string `json:"type"`

	// Count is the array length; 0 and 1 both mean a non-array varying.
	Count int `json:"count,omitempty"`
}

// elements normalizes Count so that non-array declarations compare equal
// whether authored with count 0 or 1.
func (v VaryingDecl) elements() int {
	if v.Count <= 0 {
		return 1
	}
	return v.Count
}

// Schema is the per-stage declarative description of a shader: its uniforms,
// attributes, struct types, uniform blocks, and stage inputs/outputs, plus
// the relative path of the stage's source text. Schemas are decoded once
// from configuration and read-only thereafter.
type Schema struct {
	// Stage is the pipeline stage this schema describes.
	Stage Stage `json:"-"`

	// SourcePath is the relative path of the stage's source text, loaded by
	// the asset cache at program build time.
	SourcePath string `json:"source"`

	// Uniforms is the ordered uniform declaration list.
	Uniforms []VariableDecl `json:"uniforms,omitempty"`

	// Attributes is the ordered attribute declaration list. Only meaningful
	// for vertex schemas.
	Attributes []VariableDecl `json:"attributes,omitempty"`

	// Structs is the struct type table.
	Structs []StructDecl `json:"structs,omitempty"`

	// Blocks is the uniform block list.
	Blocks []BlockDecl `json:"blocks,omitempty"`

	// Inputs is the stage input varying list (fragment stages).
	Inputs []VaryingDecl `json:"inputs,omitempty"`

	// Outputs is the stage output varying list (vertex stages).
	Outputs []VaryingDecl `json:"outputs,omitempty"`
}

// Struct looks up a struct type by name.
//
// Parameters:
//   - name: the struct type name
//
// Returns:
//   - *StructDecl: the struct declaration, or nil if not declared
func (s *Schema) Struct(name string) *StructDecl {
	for i := range s.Structs {
		if s.Structs[i].Name == name {
			return &s.Structs[i]
		}
	}
	return nil
}

// DecodeSchema parses a per-stage schema document from its JSON encoding.
// Decoding only checks document well-formedness and basic declaration
// invariants (non-empty names); cross-declaration consistency is checked by
// Flatten and Validate.
//
// Parameters:
//   - data: the raw schema document bytes
//   - stage: the pipeline stage the document describes
//
// Returns:
//   - *Schema: the decoded schema
//   - error: a SchemaError if the document is malformed
func DecodeSchema(data []byte, stage Stage) (*Schema, error) {
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, schemaErrorf(stage.String(), "malformed schema document: %v", err)
	}
	s.Stage = stage
	for _, u := range s.Uniforms {
		if u.Name == "" {
			return nil, schemaErrorf(stage.String(), "uniform with empty name")
		}
	}
	for _, a := range s.Attributes {
		if a.Name == "" {
			return nil, schemaErrorf(stage.String(), "attribute with empty name")
		}
	}
	for _, st := range s.Structs {
		if st.Name == "" {
			return nil, schemaErrorf(stage.String(), "struct with empty name")
		}
	}
	return &s, nil
}

// StagePaths names the source and schema documents for one stage of a
// shader pair manifest.
type StagePaths struct {
	// Source is the relative path of the stage's source text.
	Source string `json:"source"`

	// Schema is the relative path of the stage's schema document.
	Schema string `json:"schema"`
}

// Manifest is the top-level shader pair configuration document: the program
// name plus the per-stage source and schema paths.
type Manifest struct {
	// Name is the program name the pair is registered under.
	Name string `json:"name"`

	// Vertex names the vertex stage documents.
	Vertex StagePaths `json:"vertex"`

	// Fragment names the fragment stage documents.
	Fragment StagePaths `json:"fragment"`
}

// DecodeManifest parses a shader pair manifest from its JSON encoding.
//
// Parameters:
//   - data: the raw manifest bytes
//
// Returns:
//   - *Manifest: the decoded manifest
//   - error: an error if the document is malformed or incomplete
func DecodeManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("shader manifest: malformed document: %w", err)
	}
	if m.Name == "" {
		return nil, fmt.Errorf("shader manifest: missing program name")
	}
	if m.Vertex.Schema == "" || m.Fragment.Schema == "" {
		return nil, fmt.Errorf("shader manifest %q: missing stage schema path", m.Name)
	}
	return &m, nil
}

// MergedSchema is the combined declaration set produced by a successful
// Validate call: vertex-first uniform/struct/block lists with the fragment
// stage's unique additions appended, vertex attributes, and the source paths
// of both stages. It is the input to Flatten and the program build.
type MergedSchema struct {
	// Name is the program name the pair was validated under.
	Name string

	// Uniforms is the merged uniform list.
	Uniforms []VariableDecl

	// Attributes is the vertex stage's attribute list.
	Attributes []VariableDecl

	// Structs is the merged struct table.
	Structs []StructDecl

	// Blocks is the merged uniform block list.
	Blocks []BlockDecl

	// VertexPath and FragmentPath are the declared source text paths.
	VertexPath, FragmentPath string
}

// Struct looks up a struct type by name in the merged table.
//
// Parameters:
//   - name: the struct type name
//
// Returns:
//   - *StructDecl: the struct declaration, or nil if not declared
func (m *MergedSchema) Struct(name string) *StructDecl {
	for i := range m.Structs {
		if m.Structs[i].Name == name {
			return &m.Structs[i]
		}
	}
	return nil
}
