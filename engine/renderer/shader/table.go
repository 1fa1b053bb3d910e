package shader

// Slot is the per-uniform runtime state stored in a CapabilityTable's data
// map: the current value, its type, and a dirty flag consulted by the
// uniform flush. Attributes carry no Slot; they only have a location hint.
type Slot struct {
	// Type is the slot's GPU type.
	Type VarType

	// Value is the current value, initialized to the type default.
	Value UniformValue

	// Dirty marks the slot as changed since the last flush. New slots start
	// dirty so the default value reaches the GPU on the first flush.
	Dirty bool

	// Location is the explicit binding slot from the declaration, or -1 when
	// the program build must query the GPU for it.
	Location int32
}

// CapabilityTable is the flattened lookup view of a shader schema: every
// accepted external name resolved to a canonical name, per-canonical-name
// value slots, and the capability grouping used by best-fit scoring.
// Tables are built once by Flatten and owned by a single program afterwards.
type CapabilityTable struct {
	// aliases maps every accepted external spelling (canonical names
	// included) to the canonical name owning the storage slot.
	aliases map[string]string

	// data maps canonical names to their value slots. Attributes have no
	// entry here.
	data map[string]*Slot

	// dataOrder lists canonical names in schema declaration order. Flush
	// iteration and texture unit assignment follow this order, keeping both
	// deterministic for a given schema.
	dataOrder []string

	// attrs maps canonical attribute names to their explicit location, or -1.
	attrs map[string]int32

	// attrOrder lists attribute names in declaration order.
	attrOrder []string

	// capabilities maps every registered name (aliases and canonicals) to
	// the capability it belongs to.
	capabilities map[string]string

	// capabilityList holds each distinct capability once, in first-seen
	// order, regardless of how many names belong to it.
	capabilityList []string
}

func newCapabilityTable() *CapabilityTable {
	return &CapabilityTable{
		aliases:      make(map[string]string),
		data:         make(map[string]*Slot),
		attrs:        make(map[string]int32),
		capabilities: make(map[string]string),
	}
}

// Resolve maps an external name to its canonical name.
//
// Parameters:
//   - alias: any accepted spelling, canonical or alternate
//
// Returns:
//   - string: the canonical name
//   - bool: true if the name is known to this table
func (t *CapabilityTable) Resolve(alias string) (string, bool) {
	canonical, ok := t.aliases[alias]
	return canonical, ok
}

// Slot returns the value slot for a canonical name, or nil for unknown names
// and attributes.
//
// Parameters:
//   - canonical: the canonical uniform name
//
// Returns:
//   - *Slot: the slot, or nil
func (t *CapabilityTable) Slot(canonical string) *Slot {
	return t.data[canonical]
}

// DataNames returns the canonical names of all value slots in declaration
// order. The returned slice is owned by the table and must not be mutated.
func (t *CapabilityTable) DataNames() []string {
	return t.dataOrder
}

// AttributeNames returns the canonical attribute names in declaration order.
// The returned slice is owned by the table and must not be mutated.
func (t *CapabilityTable) AttributeNames() []string {
	return t.attrOrder
}

// AttributeLocation returns the declared explicit location of an attribute,
// or -1 when the program build must query the GPU for it.
//
// Parameters:
//   - name: the canonical attribute name
//
// Returns:
//   - int32: the declared location, or -1
//   - bool: true if the name is a known attribute
func (t *CapabilityTable) AttributeLocation(name string) (int32, bool) {
	loc, ok := t.attrs[name]
	return loc, ok
}

// Recognizes reports whether the table accepts the given name, either as a
// uniform/attribute spelling or as one of its capability names. Best-fit
// inclusivity counts candidate capabilities through this check.
//
// Parameters:
//   - name: an external name or capability name
//
// Returns:
//   - bool: true if this table knows the name
func (t *CapabilityTable) Recognizes(name string) bool {
	if _, ok := t.aliases[name]; ok {
		return true
	}
	return t.isCapability(name)
}

// CapabilityOf returns the capability a registered name belongs to. A name
// that is itself a capability maps to itself.
//
// Parameters:
//   - name: an external name or capability name
//
// Returns:
//   - string: the owning capability name
//   - bool: true if the name is known to this table
func (t *CapabilityTable) CapabilityOf(name string) (string, bool) {
	if cap, ok := t.capabilities[name]; ok {
		return cap, true
	}
	if t.isCapability(name) {
		return name, true
	}
	return "", false
}

// Capabilities returns every distinct capability this table declares, in
// first-seen order. The returned slice is owned by the table and must not be
// mutated.
func (t *CapabilityTable) Capabilities() []string {
	return t.capabilityList
}

func (t *CapabilityTable) isCapability(name string) bool {
	for _, c := range t.capabilityList {
		if c == name {
			return true
		}
	}
	return false
}

// registerName records an accepted spelling and its capability membership.
func (t *CapabilityTable) registerName(alias, canonical, capability string) {
	t.aliases[alias] = canonical
	t.capabilities[alias] = capability
}

// registerCapability appends a capability to the list if it is new.
func (t *CapabilityTable) registerCapability(name string) {
	if !t.isCapability(name) {
		t.capabilityList = append(t.capabilityList, name)
	}
}

// registerSlot creates the value slot for a canonical name. Registering the
// same canonical name twice is tolerated when the types agree (expected for
// aliasing paths that converge); a type conflict is a schema error.
func (t *CapabilityTable) registerSlot(canonical string, varType VarType, location int32, textures TextureProvider) error {
	if existing, ok := t.data[canonical]; ok {
		if existing.Type != varType {
			return schemaErrorf(canonical, "registered twice with conflicting types %s and %s", existing.Type, varType)
		}
		return nil
	}
	t.data[canonical] = &Slot{
		Type:     varType,
		Value:    DefaultValue(varType, textures),
		Dirty:    true,
		Location: location,
	}
	t.dataOrder = append(t.dataOrder, canonical)
	return nil
}

// registerAttribute records an attribute name with its location hint.
func (t *CapabilityTable) registerAttribute(name string, location int32) {
	if _, ok := t.attrs[name]; ok {
		return
	}
	t.attrs[name] = location
	t.attrOrder = append(t.attrOrder, name)
}
