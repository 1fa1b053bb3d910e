package shader

// Flatten expands a per-stage schema into its CapabilityTable: canonical
// names for every uniform (with struct members and array elements fully
// expanded), alias resolution for every accepted spelling, default-valued
// data slots, and the capability grouping consumed by best-fit scoring.
//
// The input schema is not mutated. For a fixed schema the produced table is
// deterministic: same key sets, same canonical-name/type pairs, same
// declaration ordering.
//
// Parameters:
//   - s: the schema to expand
//   - textures: provider for sampler default textures; may be nil
//
// Returns:
//   - *CapabilityTable: the flattened lookup tables
//   - error: a SchemaError for self-inconsistent input
func Flatten(s *Schema, textures TextureProvider) (*CapabilityTable, error) {
	f := &flattener{
		table:    newCapabilityTable(),
		structs:  s.Struct,
		textures: textures,
	}
	return f.run(s.Uniforms, s.Attributes)
}

// FlattenMerged expands a validated vertex+fragment MergedSchema into the
// CapabilityTable used by the combined program. Identical semantics to
// Flatten.
//
// Parameters:
//   - m: the merged schema to expand
//   - textures: provider for sampler default textures; may be nil
//
// Returns:
//   - *CapabilityTable: the flattened lookup tables
//   - error: a SchemaError for self-inconsistent input
func FlattenMerged(m *MergedSchema, textures TextureProvider) (*CapabilityTable, error) {
	f := &flattener{
		table:    newCapabilityTable(),
		structs:  m.Struct,
		textures: textures,
	}
	return f.run(m.Uniforms, m.Attributes)
}

// flattener carries the state of one recursive flatten walk.
type flattener struct {
	table    *CapabilityTable
	structs  func(name string) *StructDecl
	textures TextureProvider
}

func (f *flattener) run(uniforms, attributes []VariableDecl) (*CapabilityTable, error) {
	for _, u := range uniforms {
		if err := f.uniform(u, namePath{}, nil, ""); err != nil {
			return nil, err
		}
	}
	for _, a := range attributes {
		f.attribute(a)
	}
	return f.table, nil
}

// spellings returns every accepted name for a declaration: the declared name
// followed by its aliases in declared order.
func spellings(d VariableDecl) []string {
	return append([]string{d.Name}, d.Aliases...)
}

// uniform registers one declaration at the given canonical path. aliasPaths
// holds every alternate prefix accumulated from enclosing struct aliases;
// each registered name is the cross product of prefix paths and declaration
// spellings. capability is the inherited capability for primitive members of
// an enclosing struct; empty at the top level.
func (f *flattener) uniform(d VariableDecl, canonical namePath, aliasPaths []namePath, capability string) error {
	if d.IsArray && d.MaxSize <= 0 {
		return schemaErrorf(canonical.field(d.Name).String(), "array declared with size %d", d.MaxSize)
	}

	if varType, ok := ParseVarType(d.Type); ok {
		return f.primitive(d, varType, canonical, aliasPaths, capability)
	}

	st := f.structs(d.Type)
	if st == nil {
		return schemaErrorf(canonical.field(d.Name).String(), "references undeclared struct type %q", d.Type)
	}

	// Members of a struct occurrence share one capability tag: the struct's
	// type name. A sub-struct member starts a new tag for its own children.
	f.table.registerCapability(d.Type)

	prefixes := append([]namePath{canonical}, aliasPaths...)
	if d.IsArray {
		for i := 0; i < d.MaxSize; i++ {
			childCanonical := canonical.field(d.Name).index(i)
			childAliases := f.childPrefixes(d, prefixes, childCanonical, i, true)
			for _, m := range st.Members {
				if err := f.uniform(m, childCanonical, childAliases, d.Type); err != nil {
					return err
				}
			}
		}
		return nil
	}

	childCanonical := canonical.field(d.Name)
	childAliases := f.childPrefixes(d, prefixes, childCanonical, 0, false)
	for _, m := range st.Members {
		if err := f.uniform(m, childCanonical, childAliases, d.Type); err != nil {
			return err
		}
	}
	return nil
}

// childPrefixes builds the alternate prefix paths for a struct occurrence's
// members: every enclosing prefix crossed with every spelling of the struct
// variable, minus the canonical path itself.
func (f *flattener) childPrefixes(d VariableDecl, prefixes []namePath, childCanonical namePath, index int, indexed bool) []namePath {
	var out []namePath
	for _, p := range prefixes {
		for _, name := range spellings(d) {
			path := p.field(name)
			if indexed {
				path = path.index(index)
			}
			if path.String() == childCanonical.String() {
				continue
			}
			out = append(out, path)
		}
	}
	return out
}

// primitive registers a primitive declaration: its data slot(s), every alias
// spelling, and its capability membership.
func (f *flattener) primitive(d VariableDecl, varType VarType, canonical namePath, aliasPaths []namePath, capability string) error {
	// A top-level standalone uniform is its own capability; a top-level
	// array's capability is its declared type so scoring counts the feature
	// once regardless of length.
	if capability == "" {
		if d.IsArray {
			capability = d.Type
		} else {
			capability = canonical.field(d.Name).String()
		}
	}
	f.table.registerCapability(capability)

	declared := int32(-1)
	if d.Location != nil {
		declared = *d.Location
	}

	prefixes := append([]namePath{canonical}, aliasPaths...)
	if d.IsArray {
		for i := 0; i < d.MaxSize; i++ {
			name := canonical.field(d.Name).index(i)
			loc := declared
			if declared >= 0 {
				loc = declared + int32(i)
			}
			if err := f.table.registerSlot(name.String(), varType, loc, f.textures); err != nil {
				return err
			}
			for _, p := range prefixes {
				for _, spelling := range spellings(d) {
					f.table.registerName(p.field(spelling).index(i).String(), name.String(), capability)
				}
			}
		}
		return nil
	}

	name := canonical.field(d.Name)
	if err := f.table.registerSlot(name.String(), varType, declared, f.textures); err != nil {
		return err
	}
	for _, p := range prefixes {
		for _, spelling := range spellings(d) {
			f.table.registerName(p.field(spelling).String(), name.String(), capability)
		}
	}
	return nil
}

// attribute registers a vertex attribute. Attributes are not recursed into:
// each carries only a location hint, no value slot, and is its own
// capability.
func (f *flattener) attribute(d VariableDecl) {
	loc := int32(-1)
	if d.Location != nil {
		loc = *d.Location
	}
	f.table.registerAttribute(d.Name, loc)
	f.table.registerCapability(d.Name)
	for _, spelling := range spellings(d) {
		f.table.registerName(spelling, d.Name, d.Name)
	}
}
