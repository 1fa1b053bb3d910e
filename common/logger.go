package common

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler drops every record. Enabled reports false, so slog never even
// formats the message when nothing listens.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger returns a logger backed by the drop-everything handler.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr holds the engine-wide logger. Swapped and read atomically, so a
// SetLogger call may race freely with logging on other goroutines.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger installs the logger every engine package writes to. Until it is
// called the engine stays quiet; calling it with nil makes the engine quiet
// again.
//
// Log levels used by the engine:
//   - slog.LevelDebug: internal diagnostics (flatten results, best-fit score traces)
//   - slog.LevelInfo: lifecycle events (program linked, scene registered)
//   - slog.LevelWarn: recoverable runtime misuse (unknown uniform alias, inactive flush)
//   - slog.LevelError: failed shader builds and validation rejections
//
// Parameters:
//   - l: the logger to install, or nil to disable logging
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the installed engine-wide logger. Subpackages go through
// this accessor rather than holding their own logger fields, which keeps the
// configuration in one place and avoids import cycles.
//
// Returns:
//   - *slog.Logger: the active logger
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
