package xtt

import "context"
import "log/slog"
import "sync/atomic"

// discards everything, and reports itself as disabled so that
// callers skip formatting entirely
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// Sets the default logger for backends created without [WithLogger].
// By default nothing is logged. Passing nil restores that.
//
// Levels in use:
//   - [slog.LevelDebug]: cache hits and misses, defaulted capability
//     fields, header metrics.
//   - [slog.LevelWarn]: glyphs falling back to blank renderings,
//     unknown encodings.
func SetLogger(logger *slog.Logger) {
	if logger == nil { logger = slog.New(nopHandler{}) }
	loggerPtr.Store(logger)
}

// Returns the current default logger. Safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
