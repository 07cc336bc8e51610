package log

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// mirrorErrors controls whether error records are copied to the secondary
// (stderr) handler. The interactive table view turns it off while it owns the
// terminal.
var mirrorErrors atomic.Bool

func init() {
	mirrorErrors.Store(true)
}

func EnableErrorMirroring() {
	mirrorErrors.Store(true)
}

func DisableErrorMirroring() {
	mirrorErrors.Store(false)
}

// SuspendErrorMirroring disables mirroring and returns a func that restores
// the previous state.
func SuspendErrorMirroring() func() {
	previous := mirrorErrors.Swap(false)
	return func() {
		mirrorErrors.Store(previous)
	}
}

// NewDualHandler sends every enabled record to primary and copies error
// records to secondary while mirroring is on.
func NewDualHandler(primary slog.Handler, secondary slog.Handler) slog.Handler {
	return &dualHandler{
		primary:   primary,
		secondary: secondary,
	}
}

type dualHandler struct {
	primary   slog.Handler
	secondary slog.Handler
}

func (h *dualHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if h.primary != nil && h.primary.Enabled(ctx, level) {
		return true
	}
	return h.shouldMirror(level) && h.secondary.Enabled(ctx, level)
}

func (h *dualHandler) Handle(ctx context.Context, record slog.Record) error {
	if h.primary != nil && h.primary.Enabled(ctx, record.Level) {
		if err := h.primary.Handle(ctx, record); err != nil {
			return err
		}
	}

	if h.shouldMirror(record.Level) && h.secondary.Enabled(ctx, record.Level) {
		return h.secondary.Handle(ctx, record.Clone())
	}
	return nil
}

func (h *dualHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.derive(
		func(s slog.Handler) slog.Handler { return s.WithAttrs(attrs) },
	)
}

func (h *dualHandler) WithGroup(name string) slog.Handler {
	return h.derive(
		func(s slog.Handler) slog.Handler { return s.WithGroup(name) },
	)
}

func (h *dualHandler) derive(fn func(slog.Handler) slog.Handler) slog.Handler {
	next := &dualHandler{}
	if h.primary != nil {
		next.primary = fn(h.primary)
	}
	if h.secondary != nil {
		next.secondary = fn(h.secondary)
	}
	return next
}

func (h *dualHandler) shouldMirror(level slog.Level) bool {
	return h.secondary != nil && level >= slog.LevelError && mirrorErrors.Load()
}
