package gobucket

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnonymous_passthrough(t *testing.T) {
	base := &http.Client{}

	got, err := Anonymous().HTTPClient(t.Context(), base)
	require.NoError(t, err)
	assert.Same(t, base, got)
}

func TestBasicAuth_setsHeader(t *testing.T) {
	var user, pass string
	var ok bool
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok = r.BasicAuth()
		_, _ = w.Write([]byte(`{}`))
	}), WithAuth(BasicAuth("alice", "app-password")))

	require.NoError(t, client.get(t.Context(), "/user", nil))

	require.True(t, ok, "expected basic auth credentials")
	assert.Equal(t, "alice", user)
	assert.Equal(t, "app-password", pass)
}

func TestBasicAuth_doesNotMutateBase(t *testing.T) {
	base := &http.Client{}

	wrapped, err := BasicAuth("u", "p").HTTPClient(t.Context(), base)
	require.NoError(t, err)

	assert.Nil(t, base.Transport, "base client must not be modified")
	assert.NotSame(t, base, wrapped)
}
