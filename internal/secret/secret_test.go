package secret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestMemoryStash(t *testing.T) {
	var stash MemoryStash

	_, err := stash.LoadSecret("svc", "token")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, stash.SaveSecret("svc", "token", "hunter2"))

	got, err := stash.LoadSecret("svc", "token")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", got)

	_, err = stash.LoadSecret("other", "token")
	assert.ErrorIs(t, err, ErrNotFound, "services must be isolated")

	require.NoError(t, stash.SaveSecret("svc", "token", "changed"))
	got, err = stash.LoadSecret("svc", "token")
	require.NoError(t, err)
	assert.Equal(t, "changed", got)

	require.NoError(t, stash.DeleteSecret("svc", "token"))
	_, err = stash.LoadSecret("svc", "token")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, stash.DeleteSecret("svc", "token"),
		"deleting a missing secret is not an error")
}

func TestKeyring(t *testing.T) {
	keyring.MockInit()
	var stash Keyring

	_, err := stash.LoadSecret("svc", "token")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, stash.SaveSecret("svc", "token", "hunter2"))

	got, err := stash.LoadSecret("svc", "token")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", got)

	require.NoError(t, stash.DeleteSecret("svc", "token"))
	_, err = stash.LoadSecret("svc", "token")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, stash.DeleteSecret("svc", "token"))
}
