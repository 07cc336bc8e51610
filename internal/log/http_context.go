package log

import (
	"context"
	"log/slog"
	"strings"
)

type httpLogContextKey struct{}

// HTTPLogContext is command metadata attached to every backend request log.
type HTTPLogContext struct {
	CommandPath string
	CommandVerb string
	Resource    string
	ResourceID  string
	Operation   string
}

var HTTPLogContextKey = httpLogContextKey{}

// WithHTTPLogContext merges the non-empty fields of update into the metadata
// already stored on ctx.
func WithHTTPLogContext(ctx context.Context, update HTTPLogContext) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	current := HTTPLogContextFromContext(ctx)
	merge(&current.CommandPath, update.CommandPath)
	merge(&current.CommandVerb, update.CommandVerb)
	merge(&current.Resource, update.Resource)
	merge(&current.ResourceID, update.ResourceID)
	merge(&current.Operation, update.Operation)

	return context.WithValue(ctx, HTTPLogContextKey, current)
}

func HTTPLogContextFromContext(ctx context.Context) HTTPLogContext {
	if ctx == nil {
		return HTTPLogContext{}
	}
	if value, ok := ctx.Value(HTTPLogContextKey).(HTTPLogContext); ok {
		return value
	}
	return HTTPLogContext{}
}

// HTTPLogContextAttrs converts the metadata on ctx to slog attributes,
// skipping empty fields.
func HTTPLogContextAttrs(ctx context.Context) []slog.Attr {
	meta := HTTPLogContextFromContext(ctx)
	attrs := make([]slog.Attr, 0, 5)
	for _, kv := range [...]struct{ key, value string }{
		{"command_path", meta.CommandPath},
		{"command_verb", meta.CommandVerb},
		{"resource", meta.Resource},
		{"resource_id", meta.ResourceID},
		{"operation", meta.Operation},
	} {
		if v := strings.TrimSpace(kv.value); v != "" {
			attrs = append(attrs, slog.String(kv.key, v))
		}
	}
	return attrs
}

func merge(target *string, value string) {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		*target = trimmed
	}
}
