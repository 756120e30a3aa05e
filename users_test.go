package gobucket

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsers_CurrentUser(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2.0/user", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"uuid": "{me-uuid}",
			"nickname": "me",
			"display_name": "Me Myself",
			"location": "Earth"
		}`))
	}))

	user, err := client.Users.CurrentUser(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "{me-uuid}", user.UUID)
	assert.Equal(t, "Me Myself", user.DisplayName)
	assert.Equal(t, "Earth", user.Location)
}

func TestUsers_Get(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2.0/users/%7Bsome-uuid%7D", r.URL.EscapedPath())
		_, _ = w.Write([]byte(`{"uuid": "{some-uuid}"}`))
	}))

	user, err := client.Users.Get(t.Context(), "{some-uuid}")
	require.NoError(t, err)
	assert.Equal(t, "{some-uuid}", user.UUID)
}

func TestUsers_Emails(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2.0/user/emails", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"values": [
				{"email": "me@example.com", "is_primary": true, "is_confirmed": true},
				{"email": "alt@example.com"}
			]
		}`))
	}))

	emails, err := client.Users.Emails(t.Context())
	require.NoError(t, err)
	require.Len(t, emails, 2)
	assert.Equal(t, "me@example.com", emails[0].Email)
	assert.True(t, emails[0].IsPrimary)
}
