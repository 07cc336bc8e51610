package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/amora/amoractl/internal/backend/apiutil"
	"github.com/amora/amoractl/internal/backend/httpclient"
)

const (
	subscriptionsPath    = "/admin/subscriptions"
	verificationsPath    = "/admin/verifications"
	accountDeletionsPath = "/account-deletion-requests"
)

// Client talks to the Amora backend REST API.
type Client struct {
	baseURL  string
	token    string
	pageSize int
	doer     apiutil.Doer
	logger   *slog.Logger
}

type Option func(*Client)

func WithToken(token string) Option {
	return func(c *Client) { c.token = strings.TrimSpace(token) }
}

// WithDoer replaces the HTTP client. The default logs through the client logger.
func WithDoer(d apiutil.Doer) Option {
	return func(c *Client) { c.doer = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithPageSize sets the limit query parameter sent on list requests.
// Zero or less sends no limit.
func WithPageSize(n int) Option {
	return func(c *Client) { c.pageSize = n }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, fmt.Errorf("backend base URL is required")
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid backend base URL %q", baseURL)
	}

	c := &Client{baseURL: strings.TrimRight(baseURL, "/")}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.doer == nil {
		c.doer = httpclient.NewLoggingHTTPClient(c.logger)
	}
	return c, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Raw performs an arbitrary authenticated request and returns the response
// whatever its status.
func (c *Client) Raw(ctx context.Context, method, path string, body io.Reader) (*apiutil.Result, error) {
	return apiutil.Request(ctx, c.doer, c.baseURL, c.token, apiutil.Call{
		Method: method,
		Path:   path,
		Body:   body,
	})
}

// do sends in as JSON (when non-nil) and decodes a 2xx response into out
// (when non-nil). Other statuses become *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	body, err := apiutil.JSONBody(in)
	if err != nil {
		return err
	}

	res, err := apiutil.Request(ctx, c.doer, c.baseURL, c.token, apiutil.Call{
		Method: method,
		Path:   path,
		Query:  query,
		Body:   body,
	})
	if err != nil {
		return err
	}
	if !res.Success() {
		apiErr := newAPIError(method, path, res.StatusCode, res.Body)
		c.logger.Debug("backend returned an error",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", res.StatusCode),
			slog.String("message", apiErr.Message))
		return apiErr
	}
	if out == nil || len(strings.TrimSpace(string(res.Body))) == 0 {
		return nil
	}
	if err := json.Unmarshal(res.Body, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

// list decodes either a bare JSON array or a {"data": [...]} envelope.
func list[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var query url.Values
	if c.pageSize > 0 {
		query = url.Values{"limit": {strconv.Itoa(c.pageSize)}}
	}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, query, nil, &raw); err != nil {
		return nil, err
	}
	return decodeList[T](raw)
}

func decodeList[T any](raw json.RawMessage) ([]T, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return []T{}, nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("failed to decode list response: %w", err)
		}
		return items, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode list response: %w", err)
	}
	data, ok := envelope["data"]
	if !ok {
		return nil, errors.New("list response has neither an array nor a data field")
	}
	if strings.TrimSpace(string(data)) == "null" {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode list response: %w", err)
	}
	return items, nil
}

// single decodes either a bare object or a {"data": {...}} envelope.
func single[T any](ctx context.Context, c *Client, method, path string, in any) (*T, error) {
	var raw json.RawMessage
	if err := c.do(ctx, method, path, nil, in, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty response from %s %s", method, path)
	}

	var envelope struct {
		Data *T `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Data != nil {
		return envelope.Data, nil
	}

	var item T
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return &item, nil
}

func itemPath(base, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", invalidInput("an id is required")
	}
	return base + "/" + url.PathEscape(id), nil
}
