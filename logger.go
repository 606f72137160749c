package canvas2d

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/canvas2d/surface"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for canvas2d and the surface package.
// By default, canvas2d produces no log output. Call SetLogger to enable
// logging. Pass nil to restore the silent default.
//
// Log levels used by canvas2d:
//   - [slog.LevelDebug]: capability selection, render passes
//   - [slog.LevelInfo]: lifecycle events (book activated, backend chosen)
//   - [slog.LevelWarn]: recovered errors (duplicate shape names, unknown
//     sheet styles, substituted property values, unmatched restores)
//
// Example:
//
//	canvas2d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	surface.SetLogger(l)
}

// Logger returns the current package logger. Books derive their own
// logger from it at creation.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
