package paint

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discard drops every record. Enabled reports false, so log sites skip
// building attributes when no logger is installed.
type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (d discard) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discard) WithGroup(string) slog.Handler           { return d }

var silent = slog.New(discard{})

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(silent)
}

// SetLogger routes paint's diagnostics to l. nil restores the silent
// default. It may be called while fills and row iterations are running.
//
// Messages, all prefixed "paint: ":
//   - "applicator created" and "applicator released" (Debug), with the
//     brush kind, target format, clip rectangle and blender
//   - "iterate row intervals" (Debug), with the bounds and interval count
//   - "worker pool started" (Debug), the first time a Configuration splits
//     work across goroutines
//   - "scratch allocation failed" (Warn), when the allocator rejects a
//     scanline buffer; Apply also returns the error
//
// Apply itself never logs, so the per-scanline path stays allocation free.
//
//	paint.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	current.Store(l)
}

// Logger returns the logger paint writes to.
func Logger() *slog.Logger {
	return current.Load()
}
