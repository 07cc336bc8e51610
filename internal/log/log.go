package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

type Key struct{}

var LoggerKey = Key{}

// LevelTrace sits below debug and is used for request and response bodies.
const LevelTrace = slog.LevelDebug - 4

// ConfigLevelStringToSlogLevel maps a config value to a slog level. Unknown
// values fall back to error so misconfiguration stays quiet.
func ConfigLevelStringToSlogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelError
	}
}

// Options configures the logger built by New.
type Options struct {
	Level   string
	LogFile string
	// ErrOut receives friendly copies of error records. Nil disables mirroring.
	ErrOut io.Writer
}

// New builds the CLI logger: JSON records to the log file (or discard when
// no file is configured) plus friendly error lines on ErrOut. The returned
// closer releases the log file.
func New(opts Options) (*slog.Logger, func() error, error) {
	var (
		primaryOut io.Writer = io.Discard
		closer               = func() error { return nil }
	)

	if path := strings.TrimSpace(opts.LogFile); path != "" {
		path = os.ExpandEnv(path)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		primaryOut = f
		closer = f.Close
	}

	level := ConfigLevelStringToSlogLevel(opts.Level)
	primary := slog.NewJSONHandler(primaryOut, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceLevelNames,
	})

	var secondary slog.Handler
	if opts.ErrOut != nil {
		secondary = NewFriendlyErrorHandler(opts.ErrOut)
	}

	return slog.New(NewDualHandler(primary, secondary)), closer, nil
}

// FromContext returns the logger stored on ctx or a discarding logger.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(LoggerKey).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func replaceLevelNames(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	if level, ok := a.Value.Any().(slog.Level); ok && level == LevelTrace {
		a.Value = slog.StringValue("TRACE")
	}
	return a
}
