package apiutil

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestResolveEndpoint(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		path    string
		query   url.Values
		want    string
		wantErr bool
	}{
		{name: "leading slash", base: "https://example.com/api", path: "/admin/subscriptions",
			want: "https://example.com/api/admin/subscriptions"},
		{name: "trailing slash base", base: "https://example.com/api/", path: "admin/verifications",
			want: "https://example.com/api/admin/verifications"},
		{name: "absolute path", base: "https://example.com/api", path: "https://other.test/x",
			want: "https://other.test/x"},
		{name: "query", base: "https://example.com", path: "/admin/subscriptions",
			query: url.Values{"limit": {"10"}}, want: "https://example.com/admin/subscriptions?limit=10"},
		{name: "empty path", base: "https://example.com", path: " ", wantErr: true},
		{name: "empty base", base: "", path: "/admin", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveEndpoint(tt.base, tt.path, tt.query)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequestSendsJSONWithToken(t *testing.T) {
	var gotURL, gotAuth, gotType, gotBody string
	client := doerFunc(func(req *http.Request) (*http.Response, error) {
		gotURL = req.URL.String()
		gotAuth = req.Header.Get("Authorization")
		gotType = req.Header.Get("Content-Type")
		b, _ := io.ReadAll(req.Body)
		gotBody = string(b)
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`{"id":"1"}`)),
			Header:     http.Header{"X-Test": {"yes"}},
		}, nil
	})

	body, err := JSONBody(map[string]string{"status": "inactive"})
	require.NoError(t, err)

	res, err := Request(context.Background(), client, "https://example.com", "tok", Call{
		Method: http.MethodPatch,
		Path:   "/admin/subscriptions/1/status",
		Body:   body,
	})
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/admin/subscriptions/1/status", gotURL)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "application/json", gotType)
	assert.JSONEq(t, `{"status":"inactive"}`, gotBody)
	assert.True(t, res.Success())
	assert.Equal(t, `{"id":"1"}`, string(res.Body))
	assert.Equal(t, "yes", res.Header.Get("X-Test"))
}

func TestRequestWithoutTokenOmitsAuthorization(t *testing.T) {
	client := doerFunc(func(req *http.Request) (*http.Response, error) {
		assert.Empty(t, req.Header.Get("Authorization"))
		assert.Equal(t, http.MethodGet, req.Method)
		return &http.Response{StatusCode: http.StatusNotFound, Body: io.NopCloser(strings.NewReader(""))}, nil
	})

	res, err := Request(context.Background(), client, "https://example.com", "", Call{Path: "/x"})
	require.NoError(t, err)
	assert.False(t, res.Success())
}

func TestRequestError(t *testing.T) {
	client := doerFunc(func(_ *http.Request) (*http.Response, error) {
		return nil, errors.New("boom")
	})

	_, err := Request(context.Background(), client, "https://example.com", "tok", Call{Path: "/foo"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}
