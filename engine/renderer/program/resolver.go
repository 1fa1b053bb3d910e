package program

import (
	"fmt"

	"github.com/coolmint859/prism/common"
	"github.com/coolmint859/prism/engine/renderer/shader"
)

// DefaultFallback is the registry name of the always-present program that
// BestFit returns when no candidate clears the acceptance threshold.
const DefaultFallback = "basic"

// resolver is the implementation of the Resolver interface.
type resolver struct {
	device   Device
	loader   SourceLoader
	textures shader.TextureProvider

	// programs is the name→program registry; order preserves registration
	// order so best-fit ties resolve first-registered-wins.
	programs map[string]Program
	order    []string

	scoring  ScoringConfig
	fallback string

	nextID uint32
}

// Resolver owns the set of named shader programs: it validates and flattens
// pairs into programs, builds them on demand, answers capability queries,
// and selects the best-fit program for a renderable's declared capability
// set.
//
// The resolver is an explicit object constructed once at startup and passed
// to collaborators; the engine keeps no global program registry. It follows
// the engine's single-threaded frame model: registry mutation and builds
// happen on the frame flow only.
type Resolver interface {
	// Define validates a vertex/fragment schema pair, flattens the merged
	// schema, and registers the resulting unbuilt program under name. A pair
	// that fails validation or flattening is not registered.
	//
	// Parameters:
	//   - name: the registry name
	//   - vert: the vertex stage schema
	//   - frag: the fragment stage schema
	//
	// Returns:
	//   - Program: the registered program
	//   - error: a *shader.ValidationError, *shader.SchemaError, or
	//     registration error
	Define(name string, vert, frag *shader.Schema) (Program, error)

	// Register adds an externally constructed program to the registry.
	//
	// Parameters:
	//   - p: the program to register
	//
	// Returns:
	//   - error: an error if the name is already registered
	Register(p Program) error

	// Remove deletes a program from the registry. Removing a name still
	// referenced by in-flight renderables is the caller's responsibility.
	//
	// Parameters:
	//   - name: the registry name to remove
	Remove(name string)

	// Program looks up a registered program.
	//
	// Parameters:
	//   - name: the registry name
	//
	// Returns:
	//   - Program: the program
	//   - error: ErrNotFound (wrapped) for unknown names
	Program(name string) (Program, error)

	// IsReady reports whether a named program is built and linked.
	//
	// Parameters:
	//   - name: the registry name
	//
	// Returns:
	//   - bool: true if the program exists and is ready
	IsReady(name string) bool

	// Build drives a program to ready, fetching its stage sources through
	// the loader and compiling and linking them on the device. Idempotent:
	// an already-ready program returns its handle immediately. On failure
	// the program transitions to failed and the error propagates; the
	// resolver never substitutes the fallback here — that is the caller's
	// decision at selection time.
	//
	// Parameters:
	//   - name: the registry name
	//
	// Returns:
	//   - uint32: the linked GPU program handle
	//   - error: ErrNotFound or a *BuildError
	Build(name string) (uint32, error)

	// BestFit scores every registered program against a renderable's
	// declared capability list and returns the name of the best match, or
	// the fallback name when no program strictly exceeds both the running
	// best score and the acceptance threshold. Never fails: an empty
	// candidate list degrades to the fallback.
	//
	// Parameters:
	//   - capabilities: the renderable's declared capability names
	//
	// Returns:
	//   - string: the selected program name
	//   - ScoreTrace: the per-program scoring record
	BestFit(capabilities []string) (string, ScoreTrace)

	// Fallback returns the configured fallback program name.
	Fallback() string
}

var _ Resolver = &resolver{}

// NewResolver creates a Resolver bound to a graphics device, a source
// loader, and a default-texture provider.
//
// Parameters:
//   - device: the graphics context used for builds and uploads
//   - loader: the coalescing source fetcher
//   - textures: provider for sampler default textures; may be nil
//   - options: variadic ResolverBuilderOption functions
//
// Returns:
//   - Resolver: the configured resolver
func NewResolver(device Device, loader SourceLoader, textures shader.TextureProvider, options ...ResolverBuilderOption) Resolver {
	r := &resolver{
		device:   device,
		loader:   loader,
		textures: textures,
		programs: make(map[string]Program),
		scoring:  DefaultScoringConfig(),
		fallback: DefaultFallback,
		nextID:   1,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *resolver) Define(name string, vert, frag *shader.Schema) (Program, error) {
	merged, err := shader.Validate(name, vert, frag)
	if err != nil {
		common.Logger().Error("shader pair rejected", "program", name, "error", err)
		return nil, err
	}
	table, err := shader.FlattenMerged(merged, r.textures)
	if err != nil {
		common.Logger().Error("shader schema rejected", "program", name, "error", err)
		return nil, err
	}
	p := New(name, merged, table, r.device)
	if err := r.Register(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *resolver) Register(p Program) error {
	name := p.Name()
	if _, exists := r.programs[name]; exists {
		return fmt.Errorf("program %q is already registered", name)
	}
	if setter, ok := p.(interface{ setID(uint32) }); ok {
		setter.setID(r.nextID)
		r.nextID++
	}
	r.programs[name] = p
	r.order = append(r.order, name)
	common.Logger().Info("shader program registered", "program", name, "id", p.ID())
	return nil
}

func (r *resolver) Remove(name string) {
	if _, exists := r.programs[name]; !exists {
		return
	}
	delete(r.programs, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

func (r *resolver) Program(name string) (Program, error) {
	p, ok := r.programs[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return p, nil
}

func (r *resolver) IsReady(name string) bool {
	p, ok := r.programs[name]
	return ok && p.State() == StateReady
}

func (r *resolver) Build(name string) (uint32, error) {
	p, err := r.Program(name)
	if err != nil {
		return 0, err
	}
	impl, ok := p.(*prog)
	if !ok {
		if p.State() == StateReady {
			return p.Handle(), nil
		}
		return 0, fmt.Errorf("program %q cannot be built by this resolver", name)
	}
	return impl.build(r.loader)
}

func (r *resolver) BestFit(capabilities []string) (string, ScoreTrace) {
	trace := ScoreTrace{Candidates: capabilities}
	best := r.fallback
	bestScore := 0.0
	usedFallback := true

	if len(capabilities) > 0 {
		for _, name := range r.order {
			p := r.programs[name]
			inclusivity, exclusivity := scoreTable(p.Table(), capabilities)
			combined := r.scoring.combine(inclusivity, exclusivity)
			trace.Entries = append(trace.Entries, ScoreEntry{
				Program:     name,
				Inclusivity: inclusivity,
				Exclusivity: exclusivity,
				Combined:    combined,
			})
			// A program wins only by strictly exceeding both the running
			// best and the acceptance threshold; ties keep the earlier
			// registration.
			if combined > bestScore && combined > r.scoring.Threshold {
				best = name
				bestScore = combined
				usedFallback = false
			}
		}
	}

	trace.Selected = best
	trace.UsedFallback = usedFallback
	common.Logger().Debug("best-fit selection",
		"candidates", capabilities, "selected", best, "fallback", usedFallback)
	return best, trace
}

func (r *resolver) Fallback() string { return r.fallback }
