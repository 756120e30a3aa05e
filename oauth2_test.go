package gobucket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2/bitbucket"
)

func TestOAuth2Token_setsBearerHeader(t *testing.T) {
	var authz string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}), WithAuth(OAuth2Token("secret-token")))

	require.NoError(t, client.get(t.Context(), "/user", nil))
	assert.Equal(t, "Bearer secret-token", authz)
}

func TestOAuth2ClientCredentials_fetchesToken(t *testing.T) {
	var apiAuthz string
	mux := http.NewServeMux()
	mux.HandleFunc("/site/oauth2/access_token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.FormValue("grant_type"))

		id, secret, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "client-id", id)
		assert.Equal(t, "client-secret", secret)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"granted-token","token_type":"bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/2.0/user", func(w http.ResponseWriter, r *http.Request) {
		apiAuthz = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	auth := OAuth2ClientCredentials("client-id", "client-secret")
	auth.(*oauth2ClientCredentials).config.TokenURL = srv.URL + "/site/oauth2/access_token"

	client, err := New(
		WithBaseURL(srv.URL+"/2.0"),
		WithHTTPClient(srv.Client()),
		WithAuth(auth),
	)
	require.NoError(t, err)

	require.NoError(t, client.get(t.Context(), "/user", nil))
	assert.Equal(t, "Bearer granted-token", apiAuthz)
}

func TestOAuth2ClientCredentials_survivesCanceledContext(t *testing.T) {
	var apiAuthz string
	mux := http.NewServeMux()
	mux.HandleFunc("/site/oauth2/access_token", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"granted-token","token_type":"bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/2.0/user", func(w http.ResponseWriter, r *http.Request) {
		apiAuthz = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	auth := OAuth2ClientCredentials("client-id", "client-secret")
	auth.(*oauth2ClientCredentials).config.TokenURL = srv.URL + "/site/oauth2/access_token"

	// The token source must not die with the context it was built under.
	ctx, cancel := context.WithCancel(t.Context())
	httpC, err := auth.HTTPClient(ctx, srv.Client())
	require.NoError(t, err)
	cancel()

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, srv.URL+"/2.0/user", nil)
	require.NoError(t, err)
	resp, err := httpC.Do(req)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	assert.Equal(t, "Bearer granted-token", apiAuthz)
}

func TestOAuth2Config_bitbucketEndpoint(t *testing.T) {
	cfg := OAuth2Config("id", "secret", "https://example.com/callback")

	assert.Equal(t, "id", cfg.ClientID)
	assert.Equal(t, bitbucket.Endpoint.AuthURL, cfg.Endpoint.AuthURL)
	assert.Equal(t, bitbucket.Endpoint.TokenURL, cfg.Endpoint.TokenURL)
	assert.Equal(t, "https://example.com/callback", cfg.RedirectURL)
}
