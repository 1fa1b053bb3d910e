package program

import (
	"github.com/coolmint859/prism/common"
	"github.com/coolmint859/prism/engine/renderer/shader"
)

// State is the build lifecycle of a program: unbuilt → building → ready, or
// building → failed. A failed program never becomes ready; callers fall back
// to the default program.
type State int

const (
	// StateUnbuilt means the program has a validated schema but no GPU
	// handle yet.
	StateUnbuilt State = iota

	// StateBuilding means a build is in progress (sources fetching or
	// compiling).
	StateBuilding

	// StateReady means the program linked successfully and its location map
	// is populated.
	StateReady

	// StateFailed means a fetch, compile, or link step failed. Terminal.
	StateFailed
)

var stateNames = map[State]string{
	StateUnbuilt:  "unbuilt",
	StateBuilding: "building",
	StateReady:    "ready",
	StateFailed:   "failed",
}

// String returns the lifecycle state name.
func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "unknown"
}

// prog is the implementation of the Program interface.
type prog struct {
	name   string
	id     uint32
	state  State
	handle uint32

	schema *shader.MergedSchema
	table  *shader.CapabilityTable
	device Device

	// locations maps canonical names to resolved GPU binding locations.
	// Populated only after a successful link.
	locations map[string]int32

	// buildErr records the terminal failure when state is StateFailed.
	buildErr error

	store *UniformStore
}

// Program is one named, validated shader pair: its merged schema, its
// flattened capability table, its build lifecycle, and the uniform binding
// surface the draw loop feeds each frame.
type Program interface {
	// Name returns the program's registry name.
	Name() string

	// ID returns the resolver-assigned numeric identity, or 0 before
	// registration.
	ID() uint32

	// State returns the current build lifecycle state.
	State() State

	// Handle returns the linked GPU program handle, or 0 before a
	// successful build.
	Handle() uint32

	// Schema returns the merged vertex+fragment schema the program was
	// built from.
	Schema() *shader.MergedSchema

	// Table returns the flattened capability table.
	Table() *shader.CapabilityTable

	// Location returns the resolved GPU binding location for a canonical
	// name. Only populated after a successful build.
	//
	// Parameters:
	//   - canonical: the canonical uniform or attribute name
	//
	// Returns:
	//   - int32: the resolved location
	//   - bool: true if the name has a resolved location
	Location(canonical string) (int32, bool)

	// Uniforms returns the program's uniform binding surface.
	Uniforms() *UniformStore
}

var _ Program = &prog{}

// New creates a Program from a validated merged schema and its flattened
// capability table. The program starts unbuilt; the resolver's Build drives
// it to ready or failed.
//
// Parameters:
//   - name: the registry name
//   - schema: the merged schema from a successful Validate
//   - table: the capability table from FlattenMerged
//   - device: the graphics context used for build and uniform upload
//
// Returns:
//   - Program: the unbuilt program
func New(name string, schema *shader.MergedSchema, table *shader.CapabilityTable, device Device) Program {
	p := &prog{
		name:      name,
		state:     StateUnbuilt,
		schema:    schema,
		table:     table,
		device:    device,
		locations: make(map[string]int32),
	}
	p.store = newUniformStore(p)
	return p
}

func (p *prog) Name() string                 { return p.name }
func (p *prog) ID() uint32                   { return p.id }
func (p *prog) State() State                 { return p.state }
func (p *prog) Handle() uint32               { return p.handle }
func (p *prog) Schema() *shader.MergedSchema { return p.schema }
func (p *prog) Table() *shader.CapabilityTable {
	return p.table
}

func (p *prog) Location(canonical string) (int32, bool) {
	loc, ok := p.locations[canonical]
	return loc, ok
}

func (p *prog) Uniforms() *UniformStore { return p.store }

// setID is called by the resolver when the program is registered.
func (p *prog) setID(id uint32) { p.id = id }

// build drives the program to ready: fetch both stage sources through the
// loader, compile, link, and resolve every canonical name in the capability
// table to a GPU location. Idempotent once ready. A failure is terminal for
// the program; the recorded error is returned again on later calls.
func (p *prog) build(loader SourceLoader) (uint32, error) {
	switch p.state {
	case StateReady:
		return p.handle, nil
	case StateFailed:
		return 0, p.buildErr
	}
	p.state = StateBuilding

	vertSrc, err := loader.Load(p.schema.VertexPath)
	if err != nil {
		return 0, p.fail(&BuildError{Program: p.name, Phase: "fetch", Stage: "vertex", Err: err})
	}
	fragSrc, err := loader.Load(p.schema.FragmentPath)
	if err != nil {
		return 0, p.fail(&BuildError{Program: p.name, Phase: "fetch", Stage: "fragment", Err: err})
	}

	vert, err := p.device.CompileShader(shader.StageVertex, string(vertSrc))
	if err != nil {
		return 0, p.fail(&BuildError{Program: p.name, Phase: "compile", Stage: "vertex", Err: err})
	}
	frag, err := p.device.CompileShader(shader.StageFragment, string(fragSrc))
	if err != nil {
		p.device.DeleteShader(vert)
		return 0, p.fail(&BuildError{Program: p.name, Phase: "compile", Stage: "fragment", Err: err})
	}

	handle, err := p.device.LinkProgram(vert, frag)
	p.device.DeleteShader(vert)
	p.device.DeleteShader(frag)
	if err != nil {
		return 0, p.fail(&BuildError{Program: p.name, Phase: "link", Err: err})
	}

	p.handle = handle
	p.resolveLocations()
	p.state = StateReady
	common.Logger().Info("shader program linked",
		"program", p.name, "handle", handle,
		"uniforms", len(p.table.DataNames()), "attributes", len(p.table.AttributeNames()))
	return handle, nil
}

// fail records the terminal build error and transitions to StateFailed.
func (p *prog) fail(err *BuildError) error {
	p.state = StateFailed
	p.buildErr = err
	common.Logger().Error("shader program build failed", "program", p.name, "error", err)
	return err
}

// resolveLocations fills the location map after a successful link. Explicit
// locations declared in the schema are used directly; everything else is
// queried from the device.
func (p *prog) resolveLocations() {
	for _, name := range p.table.DataNames() {
		slot := p.table.Slot(name)
		if slot.Location >= 0 {
			p.locations[name] = slot.Location
			continue
		}
		p.locations[name] = p.device.UniformLocation(p.handle, name)
	}
	for _, name := range p.table.AttributeNames() {
		if loc, ok := p.table.AttributeLocation(name); ok && loc >= 0 {
			p.locations[name] = loc
			continue
		}
		p.locations[name] = p.device.AttributeLocation(p.handle, name)
	}
}
