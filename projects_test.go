package gobucket

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjects_Get(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2.0/workspaces/ws/projects/PROJ", r.URL.Path)
		_, _ = w.Write([]byte(`{"key": "PROJ", "name": "Infrastructure"}`))
	}))

	project, err := client.Projects.Get(t.Context(), "ws", "PROJ")
	require.NoError(t, err)
	assert.Equal(t, "PROJ", project.Key)
	assert.Equal(t, "Infrastructure", project.Name)
}

func TestProjects_Create(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/2.0/workspaces/ws/projects", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "PROJ", body["key"])
		assert.Equal(t, true, body["is_private"])

		_, _ = w.Write([]byte(`{"key": "PROJ", "name": "Infra", "is_private": true}`))
	}))

	project, err := client.Projects.Create(t.Context(), "ws", &CreateProjectRequest{
		Key:       "PROJ",
		Name:      "Infra",
		IsPrivate: true,
	})
	require.NoError(t, err)
	assert.True(t, project.IsPrivate)
}

func TestProjects_Update(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Renamed", body["name"])
		assert.NotContains(t, body, "description")

		_, _ = w.Write([]byte(`{"key": "PROJ", "name": "Renamed"}`))
	}))

	project, err := client.Projects.Update(t.Context(), "ws", "PROJ", &UpdateProjectRequest{
		Name: Ptr("Renamed"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", project.Name)
}

func TestProjects_Delete(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/2.0/workspaces/ws/projects/PROJ", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, client.Projects.Delete(t.Context(), "ws", "PROJ"))
}
