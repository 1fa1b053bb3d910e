package shader

import "strconv"

// namePath is an accumulating builder for canonical uniform names. It is the
// single source of truth for the naming grammar: struct members append
// ".member", array elements append "[i]". Keeping the grammar here means the
// recursive flatten walk never concatenates name fragments ad hoc.
type namePath struct {
	prefix string
}

// field extends the path with a member or variable name.
func (p namePath) field(name string) namePath {
	if p.prefix == "" {
		return namePath{prefix: name}
	}
	return namePath{prefix: p.prefix + "." + name}
}

// index extends the path with an array element subscript.
func (p namePath) index(i int) namePath {
	return namePath{prefix: p.prefix + "[" + strconv.Itoa(i) + "]"}
}

// String returns the canonical name accumulated so far.
func (p namePath) String() string {
	return p.prefix
}
