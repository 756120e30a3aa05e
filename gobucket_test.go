package gobucket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient builds a Client pointed at a test server
// serving the given handler under /2.0.
func newTestClient(t *testing.T, handler http.Handler, opts ...Option) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	// Plain HTTP client: no retry backoff in unit tests.
	opts = append([]Option{
		WithBaseURL(srv.URL + "/2.0"),
		WithHTTPClient(srv.Client()),
	}, opts...)
	client, err := New(opts...)
	require.NoError(t, err)
	return client
}

func TestNew_defaults(t *testing.T) {
	client, err := New()
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.NotNil(t, client.Repositories)
	assert.NotNil(t, client.PullRequests)
	assert.NotNil(t, client.Workspaces)
	assert.NotNil(t, client.Projects)
	assert.NotNil(t, client.Users)
	assert.NotNil(t, client.Src)
}

func TestNew_badBaseURL(t *testing.T) {
	_, err := New(WithBaseURL("not a url"))
	require.Error(t, err)

	_, err = New(WithBaseURL("/relative"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "absolute")
}

func TestClient_requestHeaders(t *testing.T) {
	var gotReq *http.Request
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r.Clone(r.Context())
		_, _ = w.Write([]byte(`{}`))
	}))

	require.NoError(t, client.get(t.Context(), "/user", nil))

	assert.Equal(t, "/2.0/user", gotReq.URL.Path)
	assert.Equal(t, "application/json", gotReq.Header.Get("Accept"))
	assert.Equal(t, "gobucket/"+Version, gotReq.Header.Get("User-Agent"))
}

func TestClient_postEncodesBody(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	var (
		gotContentType string
		gotBody        payload
	)
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"name": "echoed"}`))
	}))

	var out payload
	require.NoError(t, client.post(t.Context(), "/things", &payload{Name: "hello"}, &out))

	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "hello", gotBody.Name)
	assert.Equal(t, "echoed", out.Name)
}

func TestClient_rawStringResponse(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("diff --git a/foo b/foo\n"))
	}))

	var raw string
	require.NoError(t, client.get(t.Context(), "/diff", &raw))
	assert.Equal(t, "diff --git a/foo b/foo\n", raw)
}

func TestClient_errorResponse(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": {"message": "Repository not found"}}`))
	}))

	err := client.get(t.Context(), "/repositories/w/missing", nil)
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.StatusCode)
	assert.Equal(t, "Repository not found", apiErr.Message)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrPermission)
	assert.ErrorContains(t, err, "Repository not found")
}

func TestClient_permissionError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": {"message": "Access denied"}}`))
	}))

	err := client.get(t.Context(), "/repositories/w/private", nil)
	assert.ErrorIs(t, err, ErrPermission)
}

func TestClient_authFailureSurfaces(t *testing.T) {
	// An incomplete three-legged flow cannot produce a client.
	flow := NewOAuth1ThreeLegged("key", "secret")
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("request must not reach the server")
	}), WithAuth(flow))

	err := client.get(t.Context(), "/user", nil)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestClient_authRetriedAfterFailure(t *testing.T) {
	var authz string
	flow := NewOAuth1ThreeLegged("consumer-key", "consumer-secret")
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}), WithAuth(flow))

	// A request before the handshake completes must fail without
	// leaving the client unusable.
	err := client.get(t.Context(), "/user", nil)
	require.ErrorIs(t, err, ErrNotAuthenticated)

	flow.Restore("tok", "sec")

	require.NoError(t, client.get(t.Context(), "/user", nil))
	assert.Contains(t, authz, `oauth_token="tok"`)
}

func TestAddOptions(t *testing.T) {
	type opts struct {
		Role string `url:"role,omitempty"`
		Page int    `url:"page,omitempty"`
	}

	tests := []struct {
		name string
		path string
		opts any
		want string
	}{
		{
			name: "nil",
			path: "/workspaces",
			opts: nil,
			want: "/workspaces",
		},
		{
			name: "typed nil",
			path: "/workspaces",
			opts: (*opts)(nil),
			want: "/workspaces",
		},
		{
			name: "empty",
			path: "/workspaces",
			opts: &opts{},
			want: "/workspaces",
		},
		{
			name: "fields",
			path: "/workspaces",
			opts: &opts{Role: "member", Page: 2},
			want: "/workspaces?page=2&role=member",
		},
		{
			name: "existing query",
			path: "/comments?pagelen=100",
			opts: &opts{Page: 3},
			want: "/comments?pagelen=100&page=3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := addOptions(tt.path, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_contextCancellation(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	err := client.get(ctx, "/user", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
