package drmhwc

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip attribute formatting entirely,
// which keeps disabled logging off the per-frame path.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called while another display is presenting frames.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for drmhwc and all its sub-packages.
// By default, drmhwc produces no log output.
//
// SetLogger is safe for concurrent use. Pass nil to restore the default
// silent behavior.
//
// Log levels used by drmhwc:
//   - [slog.LevelDebug]: per-buffer decode and plane assignment details
//   - [slog.LevelInfo]: lifecycle events (platform selected, device opened)
//   - [slog.LevelWarn]: degraded results (framebuffer removal failed,
//     unexpected allocator module, layer dropped to client composition)
//   - [slog.LevelError]: kernel requests rejected by the device
//
// Example:
//
//	drmhwc.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by drmhwc.
// Sub-packages (importer, planner, display) call this so that a single
// SetLogger call configures the whole stack.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
