package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDualHandlerMirrorsErrorsToSecondary(t *testing.T) {
	t.Cleanup(EnableErrorMirroring)
	EnableErrorMirroring()

	var primaryBuf, secondaryBuf bytes.Buffer
	primary := slog.NewTextHandler(&primaryBuf, &slog.HandlerOptions{Level: slog.LevelInfo})
	secondary := slog.NewTextHandler(&secondaryBuf, &slog.HandlerOptions{Level: slog.LevelError})
	logger := slog.New(NewDualHandler(primary, secondary))

	logger.Error("boom", slog.String("foo", "bar"))
	logger.Info("still going")

	assert.Contains(t, primaryBuf.String(), "boom")
	assert.Contains(t, primaryBuf.String(), "still going")
	assert.Contains(t, secondaryBuf.String(), "boom")
	assert.NotContains(t, secondaryBuf.String(), "still going")
}

func TestSuspendErrorMirroringRestoresPreviousState(t *testing.T) {
	t.Cleanup(EnableErrorMirroring)
	EnableErrorMirroring()

	var primaryBuf, secondaryBuf bytes.Buffer
	primary := slog.NewTextHandler(&primaryBuf, nil)
	secondary := NewFriendlyErrorHandler(&secondaryBuf)
	logger := slog.New(NewDualHandler(primary, secondary))

	restore := SuspendErrorMirroring()
	logger.Error("hidden")
	require.Empty(t, secondaryBuf.String())

	restore()
	logger.Error("visible")
	assert.Contains(t, secondaryBuf.String(), "Error: visible")
}

func TestDualHandlerWithAttrsReachesBothHandlers(t *testing.T) {
	t.Cleanup(EnableErrorMirroring)
	EnableErrorMirroring()

	var primaryBuf, secondaryBuf bytes.Buffer
	logger := slog.New(NewDualHandler(
		slog.NewTextHandler(&primaryBuf, nil),
		NewFriendlyErrorHandler(&secondaryBuf),
	)).With(slog.String("resource", "subscription"))

	logger.Error("failed to patch")

	assert.Contains(t, primaryBuf.String(), "resource=subscription")
	assert.Contains(t, secondaryBuf.String(), "resource: subscription")
}

func TestFriendlyHandlerOrdersSuggestionFirst(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewFriendlyErrorHandler(&buf))

	logger.Error("",
		slog.Any("error", errors.New("plan not found")),
		slog.String("zeta", "last"),
		slog.String("suggestion", "check the id"),
		slog.Int("status", 404),
	)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Error: plan not found", lines[0])
	assert.Equal(t, "  suggestion: check the id", lines[1])
	assert.Equal(t, "  status: 404", lines[2])
	assert.Equal(t, "  zeta: last", lines[3])
}

func TestFriendlyHandlerIgnoresNonErrors(t *testing.T) {
	h := NewFriendlyErrorHandler(&bytes.Buffer{})
	assert.False(t, h.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestConfigLevelStringToSlogLevel(t *testing.T) {
	assert.Equal(t, LevelTrace, ConfigLevelStringToSlogLevel("trace"))
	assert.Equal(t, slog.LevelDebug, ConfigLevelStringToSlogLevel(" DEBUG "))
	assert.Equal(t, slog.LevelError, ConfigLevelStringToSlogLevel("bogus"))
}

func TestNewWritesJSONToLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "amoractl.log")

	logger, closer, err := New(Options{Level: "trace", LogFile: path})
	require.NoError(t, err)

	logger.Log(context.Background(), LevelTrace, "wire", slog.String("k", "v"))
	require.NoError(t, closer())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"level":"TRACE"`)
	assert.Contains(t, string(data), `"k":"v"`)
}

func TestHTTPLogContextMergesNonEmptyFields(t *testing.T) {
	ctx := WithHTTPLogContext(context.Background(), HTTPLogContext{
		CommandVerb: "patch",
		Resource:    "subscription",
	})
	ctx = WithHTTPLogContext(ctx, HTTPLogContext{ResourceID: " 42 ", Resource: ""})

	meta := HTTPLogContextFromContext(ctx)
	assert.Equal(t, "patch", meta.CommandVerb)
	assert.Equal(t, "subscription", meta.Resource)
	assert.Equal(t, "42", meta.ResourceID)

	attrs := HTTPLogContextAttrs(ctx)
	require.Len(t, attrs, 3)
	assert.Equal(t, "command_verb", attrs[0].Key)
}
