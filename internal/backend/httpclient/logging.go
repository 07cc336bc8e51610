package httpclient

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/amora/amoractl/internal/log"
	"github.com/google/uuid"
)

const (
	logTypeRequest  = "request"
	logTypeResponse = "response"
	logTypeFailure  = "failure"

	redactedValue = "[REDACTED]"
	maxBodyLog    = 4096

	RequestIDHeader = "X-Request-ID"
)

var sensitiveKeys = []string{"authorization", "token", "password", "secret", "api_key", "api-key", "cookie"}

// LoggingHTTPClient wraps an HTTP client and logs every exchange.
// Debug level records method, route, redacted query and status.
// Trace level adds redacted bodies.
type LoggingHTTPClient struct {
	wrapped *http.Client
	logger  *slog.Logger
}

func NewLoggingHTTPClient(logger *slog.Logger) *LoggingHTTPClient {
	return NewLoggingHTTPClientWithClient(&http.Client{Timeout: 60 * time.Second}, logger)
}

func NewLoggingHTTPClientWithClient(client *http.Client, logger *slog.Logger) *LoggingHTTPClient {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &LoggingHTTPClient{
		wrapped: client,
		logger:  logger,
	}
}

func (c *LoggingHTTPClient) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	if req.Header.Get(RequestIDHeader) == "" {
		req.Header.Set(RequestIDHeader, uuid.NewString())
	}
	requestID := req.Header.Get(RequestIDHeader)

	if !c.logger.Enabled(ctx, slog.LevelDebug) {
		return c.wrapped.Do(req)
	}

	trace := c.logger.Enabled(ctx, log.LevelTrace)
	base := append(log.HTTPLogContextAttrs(ctx), slog.String("request_id", requestID))

	reqAttrs := append([]slog.Attr{
		slog.String("log_type", logTypeRequest),
		slog.String("method", req.Method),
		slog.String("host", req.URL.Host),
		slog.String("route", req.URL.Path),
	}, base...)
	if q := req.URL.Query(); len(q) > 0 {
		params := make(map[string]any, len(q))
		for k, vs := range q {
			if isSensitive(k) {
				params[k] = redactedValue
			} else {
				params[k] = strings.Join(vs, ",")
			}
		}
		reqAttrs = append(reqAttrs, slog.Any("query_params", params))
	}
	if trace {
		reqAttrs = append(reqAttrs, slog.Any("headers", redactHeaders(req.Header)))
		if body, ok := peekRequestBody(req); ok {
			reqAttrs = append(reqAttrs, slog.String("request_body", body))
		}
	}
	c.logger.LogAttrs(ctx, levelFor(trace), "backend request", reqAttrs...)

	start := time.Now()
	resp, err := c.wrapped.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.logger.LogAttrs(ctx, slog.LevelDebug, "backend request failed", append([]slog.Attr{
			slog.String("log_type", logTypeFailure),
			slog.String("method", req.Method),
			slog.String("route", req.URL.Path),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()),
		}, base...)...)
		return nil, err
	}

	respAttrs := append([]slog.Attr{
		slog.String("log_type", logTypeResponse),
		slog.Int("status_code", resp.StatusCode),
		slog.Duration("duration", duration),
	}, base...)
	if trace {
		respAttrs = append(respAttrs, slog.Any("headers", redactHeaders(resp.Header)))
		if body, ok := peekResponseBody(resp); ok {
			respAttrs = append(respAttrs, slog.String("response_body", body))
		}
	}
	c.logger.LogAttrs(ctx, levelFor(trace), "backend response", respAttrs...)

	return resp, nil
}

func levelFor(trace bool) slog.Level {
	if trace {
		return log.LevelTrace
	}
	return slog.LevelDebug
}

func isSensitive(key string) bool {
	lower := strings.ToLower(key)
	for _, s := range sensitiveKeys {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

func redactHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		if isSensitive(k) {
			out[k] = redactedValue
			continue
		}
		out[k] = strings.Join(v, ", ")
	}
	return out
}

func peekRequestBody(req *http.Request) (string, bool) {
	if req.Body == nil || req.Body == http.NoBody {
		return "", false
	}
	data, err := io.ReadAll(req.Body)
	if err != nil {
		return "", false
	}
	req.Body = io.NopCloser(bytes.NewReader(data))
	return redactBody(data), len(data) > 0
}

func peekResponseBody(resp *http.Response) (string, bool) {
	if resp.Body == nil {
		return "", false
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", false
	}
	resp.Body = io.NopCloser(bytes.NewReader(data))
	return redactBody(data), len(data) > 0
}

// redactBody masks sensitive keys at any depth of a JSON document.
// Non-JSON bodies are returned truncated but otherwise untouched.
func redactBody(data []byte) string {
	var doc any
	if err := json.Unmarshal(data, &doc); err == nil {
		if out, err := json.Marshal(redactValue(doc)); err == nil {
			data = out
		}
	}
	s := string(data)
	if len(s) > maxBodyLog {
		s = s[:maxBodyLog] + "...[truncated]"
	}
	return s
}

func redactValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, inner := range t {
			if isSensitive(k) {
				t[k] = redactedValue
				continue
			}
			t[k] = redactValue(inner)
		}
		return t
	case []any:
		for i := range t {
			t[i] = redactValue(t[i])
		}
		return t
	default:
		return v
	}
}
