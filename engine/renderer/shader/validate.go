package shader

// Validate checks that a vertex/fragment schema pair is link-compatible and,
// on success, merges the two into one MergedSchema. Four gates run in order
// and the first failure aborts with a ValidationError tagged by check:
//
//  1. varying compatibility: vertex outputs and fragment inputs must match
//     bidirectionally on (name, type, count)
//  2. uniform block bindings: blocks sharing a binding slot must agree on
//     name and member list
//  3. uniform locations: same-named, same-typed uniforms must not declare
//     conflicting explicit locations, and different-named uniforms must not
//     declare the same explicit location
//  4. name uniqueness: each stage's own uniform and attribute names must be
//     internally unique
//
// A failed pair is never partially merged or registered.
//
// Parameters:
//   - name: the program name the pair is validated under, used in errors
//   - vert: the vertex stage schema
//   - frag: the fragment stage schema
//
// Returns:
//   - *MergedSchema: the combined declarations on success
//   - error: a *ValidationError naming the failed check
func Validate(name string, vert, frag *Schema) (*MergedSchema, error) {
	if err := checkVaryings(name, vert.Outputs, frag.Inputs); err != nil {
		return nil, err
	}
	if err := checkBlocks(name, vert.Blocks, frag.Blocks); err != nil {
		return nil, err
	}
	if err := checkLocations(name, vert.Uniforms, frag.Uniforms); err != nil {
		return nil, err
	}
	if err := checkUniqueness(name, vert); err != nil {
		return nil, err
	}
	if err := checkUniqueness(name, frag); err != nil {
		return nil, err
	}
	return merge(name, vert, frag), nil
}

// checkVaryings verifies that the vertex output set and fragment input set
// are the same size and match one-to-one on (name, type, count). The scan is
// symmetric: two different sets of equal cardinality still fail.
func checkVaryings(name string, outputs, inputs []VaryingDecl) error {
	if len(outputs) != len(inputs) {
		return validationErrorf(name, CheckVaryings,
			"vertex declares %d outputs but fragment declares %d inputs", len(outputs), len(inputs))
	}
	if err := matchVaryings(name, outputs, inputs, "output"); err != nil {
		return err
	}
	return matchVaryings(name, inputs, outputs, "input")
}

// matchVaryings checks that every varying in want has exactly one match in
// have on (name, type, count).
func matchVaryings(name string, want, have []VaryingDecl, side string) error {
	for _, w := range want {
		matches := 0
		for _, h := range have {
			if w.Name == h.Name && w.Type == h.Type && w.elements() == h.elements() {
				matches++
			}
		}
		if matches != 1 {
			return validationErrorf(name, CheckVaryings,
				"%s %q (%s, count %d) has %d matches in the opposite stage",
				side, w.Name, w.Type, w.elements(), matches)
		}
	}
	return nil
}

// checkBlocks verifies that any two blocks (one per stage) sharing an
// explicit binding slot have identical name and member sets. Stages with no
// blocks trivially pass.
func checkBlocks(name string, vert, frag []BlockDecl) error {
	for _, vb := range vert {
		if vb.Binding == nil {
			continue
		}
		for _, fb := range frag {
			if fb.Binding == nil || *vb.Binding != *fb.Binding {
				continue
			}
			if vb.Name != fb.Name {
				return validationErrorf(name, CheckBlockBindings,
					"binding %d declared as %q in vertex and %q in fragment", *vb.Binding, vb.Name, fb.Name)
			}
			if err := matchBlockMembers(name, vb, fb.Members, "vertex"); err != nil {
				return err
			}
			if err := matchBlockMembers(name, fb, vb.Members, "fragment"); err != nil {
				return err
			}
		}
	}
	return nil
}

// matchBlockMembers checks that every member of block b has exactly one
// (name, type, count) match in the opposite stage's member list.
func matchBlockMembers(name string, b BlockDecl, opposite []VariableDecl, side string) error {
	for _, m := range b.Members {
		matches := 0
		for _, o := range opposite {
			if m.Name == o.Name && m.Type == o.Type && m.Count() == o.Count() {
				matches++
			}
		}
		if matches != 1 {
			return validationErrorf(name, CheckBlockBindings,
				"block %q member %q (%s) from the %s stage has %d matches in the opposite stage",
				b.Name, m.Name, m.Type, side, matches)
		}
	}
	return nil
}

// checkLocations rejects explicit uniform location conflicts across stages:
// a same-name same-type uniform declared with two different locations, or
// two different-named uniforms both explicitly claiming one location.
// Uniforms without an explicit location never conflict.
func checkLocations(name string, vert, frag []VariableDecl) error {
	for _, v := range vert {
		if v.Location == nil {
			continue
		}
		for _, f := range frag {
			if f.Location == nil {
				continue
			}
			if v.Name == f.Name && v.Type == f.Type && *v.Location != *f.Location {
				return validationErrorf(name, CheckUniformLocations,
					"uniform %q (%s) declared at location %d in vertex and %d in fragment",
					v.Name, v.Type, *v.Location, *f.Location)
			}
			if v.Name != f.Name && *v.Location == *f.Location {
				return validationErrorf(name, CheckUniformLocations,
					"uniforms %q and %q both declare explicit location %d",
					v.Name, f.Name, *v.Location)
			}
		}
	}
	return nil
}

// checkUniqueness rejects duplicate uniform or attribute names within one
// stage.
func checkUniqueness(name string, s *Schema) error {
	seen := make(map[string]bool, len(s.Uniforms))
	for _, u := range s.Uniforms {
		if seen[u.Name] {
			return validationErrorf(name, CheckNameUniqueness,
				"%s stage declares uniform %q more than once", s.Stage, u.Name)
		}
		seen[u.Name] = true
	}
	seenAttr := make(map[string]bool, len(s.Attributes))
	for _, a := range s.Attributes {
		if seenAttr[a.Name] {
			return validationErrorf(name, CheckNameUniqueness,
				"%s stage declares attribute %q more than once", s.Stage, a.Name)
		}
		seenAttr[a.Name] = true
	}
	return nil
}

// merge combines a validated pair: vertex-stage lists first, then every
// fragment uniform, struct, or block whose name is not already present.
// Attributes come from the vertex stage only.
func merge(name string, vert, frag *Schema) *MergedSchema {
	m := &MergedSchema{
		Name:         name,
		Uniforms:     append([]VariableDecl(nil), vert.Uniforms...),
		Attributes:   append([]VariableDecl(nil), vert.Attributes...),
		Structs:      append([]StructDecl(nil), vert.Structs...),
		Blocks:       append([]BlockDecl(nil), vert.Blocks...),
		VertexPath:   vert.SourcePath,
		FragmentPath: frag.SourcePath,
	}
	for _, u := range frag.Uniforms {
		if !containsName(u.Name, m.Uniforms, func(d VariableDecl) string { return d.Name }) {
			m.Uniforms = append(m.Uniforms, u)
		}
	}
	for _, s := range frag.Structs {
		if !containsName(s.Name, m.Structs, func(d StructDecl) string { return d.Name }) {
			m.Structs = append(m.Structs, s)
		}
	}
	for _, b := range frag.Blocks {
		if !containsName(b.Name, m.Blocks, func(d BlockDecl) string { return d.Name }) {
			m.Blocks = append(m.Blocks, b)
		}
	}
	return m
}

func containsName[T any](name string, list []T, key func(T) string) bool {
	for _, item := range list {
		if key(item) == name {
			return true
		}
	}
	return false
}
