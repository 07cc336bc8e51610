package apiutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Doer abstracts the ability to execute HTTP requests.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Result represents a simplified HTTP response payload.
type Result struct {
	StatusCode int
	Body       []byte
	Header     http.Header
}

// Success reports whether the response carries a 2xx status.
func (r *Result) Success() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Call describes one backend request. Path is resolved against the base URL
// unless it is already absolute.
type Call struct {
	Method  string
	Path    string
	Query   url.Values
	Headers map[string]string
	Body    io.Reader
}

// JSONBody encodes v for use as a Call body.
func JSONBody(v any) (io.Reader, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return bytes.NewReader(data), nil
}

// Request issues c against baseURL. Headers in c win over the defaults.
func Request(ctx context.Context, client Doer, baseURL string, token string, c Call) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if client == nil {
		client = http.DefaultClient
	}

	method := c.Method
	if method == "" {
		method = http.MethodGet
	}

	endpoint, err := resolveEndpoint(baseURL, c.Path, c.Query)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, c.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")
	if c.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.Headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &Result{
		StatusCode: resp.StatusCode,
		Body:       body,
		Header:     resp.Header.Clone(),
	}, nil
}

func resolveEndpoint(baseURL, path string, query url.Values) (string, error) {
	trimmedPath := strings.TrimSpace(path)
	if trimmedPath == "" {
		return "", fmt.Errorf("endpoint path cannot be empty")
	}

	var endpoint string
	switch {
	case strings.HasPrefix(trimmedPath, "http://"), strings.HasPrefix(trimmedPath, "https://"):
		endpoint = trimmedPath
	case strings.TrimSpace(baseURL) == "":
		return "", fmt.Errorf("base URL cannot be empty")
	default:
		endpoint = strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(trimmedPath, "/")
	}

	if len(query) == 0 {
		return endpoint, nil
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	q := u.Query()
	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
