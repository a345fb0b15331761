package common

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that discards every record. Enabled reports false so
// callers skip formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger installs the logger used by every engine package. By default nothing is logged.
// Passing nil restores the silent default. Safe for concurrent use.
//
// Levels used by the engine:
//   - [slog.LevelDebug]: per-frame upload decisions and texture recreation
//   - [slog.LevelInfo]: lifecycle events (adapter selected, window created, image loaded, profiler stats)
//   - [slog.LevelWarn]: swallowed per-frame errors and watcher errors
//
// Parameters:
//   - l: the logger to install, or nil to disable logging
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the active engine logger. It is never nil.
//
// Returns:
//   - *slog.Logger: the logger installed with SetLogger, or a no-op logger
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
