package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbratz/gobucket/internal/secret"
)

func TestSaveAndLoadToken(t *testing.T) {
	var stash secret.MemoryStash

	want := &savedToken{
		Method:       "oauth1",
		OAuth1Token:  "tok",
		OAuth1Secret: "sec",
	}
	require.NoError(t, saveToken(&stash, want))

	got, err := loadToken(&stash)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadToken_missing(t *testing.T) {
	var stash secret.MemoryStash

	_, err := loadToken(&stash)
	require.ErrorIs(t, err, secret.ErrNotFound)
}

func TestNewAuth(t *testing.T) {
	t.Run("env token wins", func(t *testing.T) {
		t.Setenv("BITBUCKET_TOKEN", "env-token")
		t.Setenv("BITBUCKET_EMAIL", "me@example.com")

		// The stash holds a different method; the env must win.
		var stash secret.MemoryStash
		require.NoError(t, saveToken(&stash, &savedToken{Method: "oauth2"}))

		auth, err := newAuth(&Config{}, &stash)
		require.NoError(t, err)
		assert.NotNil(t, auth)
	})

	t.Run("basic from stash", func(t *testing.T) {
		t.Setenv("BITBUCKET_TOKEN", "")

		var stash secret.MemoryStash
		require.NoError(t, saveToken(&stash, &savedToken{
			Method:      "basic",
			Username:    "alice",
			AppPassword: "app-pass",
		}))

		auth, err := newAuth(&Config{}, &stash)
		require.NoError(t, err)
		assert.NotNil(t, auth)
	})

	t.Run("no stored token", func(t *testing.T) {
		t.Setenv("BITBUCKET_TOKEN", "")

		var stash secret.MemoryStash
		_, err := newAuth(&Config{}, &stash)
		require.ErrorIs(t, err, secret.ErrNotFound)
	})

	t.Run("unknown method", func(t *testing.T) {
		t.Setenv("BITBUCKET_TOKEN", "")

		var stash secret.MemoryStash
		require.NoError(t, saveToken(&stash, &savedToken{Method: "carrier-pigeon"}))

		_, err := newAuth(&Config{}, &stash)
		require.ErrorContains(t, err, `unknown login method "carrier-pigeon"`)
	})
}
