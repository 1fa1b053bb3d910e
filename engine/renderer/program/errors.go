package program

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a program name is not registered with the
// resolver. Callers treat it the same as a failed program for rendering
// purposes: fall back to the default program.
var ErrNotFound = errors.New("program not found")

// BuildError reports a compile or link failure from the graphics backend, or
// a failed source fetch. The program stays registered but transitions to
// StateFailed and never becomes ready.
type BuildError struct {
	// Program is the name of the program that failed to build.
	Program string

	// Phase names the build step that failed: "fetch", "compile", or "link".
	Phase string

	// Stage is the pipeline stage involved, when the phase is stage-specific.
	Stage string

	// Err is the underlying backend or loader error.
	Err error
}

func (e *BuildError) Error() string {
	if e.Stage != "" {
		return fmt.Sprintf("program %q: %s stage %s failed: %v", e.Program, e.Stage, e.Phase, e.Err)
	}
	return fmt.Sprintf("program %q: %s failed: %v", e.Program, e.Phase, e.Err)
}

// Unwrap exposes the underlying error for errors.Is/As.
func (e *BuildError) Unwrap() error { return e.Err }

// UsageError reports recoverable caller misuse at runtime: setting a uniform
// name unknown to a program, or flushing a program that is not active. These
// are logged and otherwise ignored so a dropped per-frame write never stalls
// rendering of the remaining scene.
type UsageError struct {
	// Program is the name of the program the operation targeted.
	Program string

	// Op is the operation that was misused ("SetValue", "Flush").
	Op string

	// Reason describes the misuse.
	Reason string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("program %q: %s: %s", e.Program, e.Op, e.Reason)
}
