package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte(""+
			"base_url: https://bitbucket.example.com/2.0\n"+
			"workspace: myteam\n"+
			"oauth:\n"+
			"  key: consumer-key\n"+
			"  secret: consumer-secret\n"), 0o600))

		cfg, err := loadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "https://bitbucket.example.com/2.0", cfg.BaseURL)
		assert.Equal(t, "myteam", cfg.Workspace)
		assert.Equal(t, "consumer-key", cfg.OAuth.Key)
		assert.Equal(t, "consumer-secret", cfg.OAuth.Secret)
	})

	t.Run("missing file", func(t *testing.T) {
		cfg, err := loadConfig(filepath.Join(t.TempDir(), "does-not-exist.yml"))
		require.NoError(t, err)
		assert.Equal(t, &Config{}, cfg)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("workspace: [oops\n"), 0o600))

		_, err := loadConfig(path)
		require.ErrorContains(t, err, "parse config")
	})
}

func TestResolveRepo(t *testing.T) {
	t.Run("workspace slash slug", func(t *testing.T) {
		ws, slug, err := resolveRepo(&Config{}, "atlassian/aui")
		require.NoError(t, err)
		assert.Equal(t, "atlassian", ws)
		assert.Equal(t, "aui", slug)
	})

	t.Run("bare slug with default workspace", func(t *testing.T) {
		ws, slug, err := resolveRepo(&Config{Workspace: "myteam"}, "aui")
		require.NoError(t, err)
		assert.Equal(t, "myteam", ws)
		assert.Equal(t, "aui", slug)
	})

	t.Run("bare slug without default workspace", func(t *testing.T) {
		_, _, err := resolveRepo(&Config{}, "aui")
		require.ErrorContains(t, err, "no workspace")
	})
}

func TestResolveWorkspace(t *testing.T) {
	ws, err := resolveWorkspace(&Config{Workspace: "fallback"}, "explicit")
	require.NoError(t, err)
	assert.Equal(t, "explicit", ws)

	ws, err = resolveWorkspace(&Config{Workspace: "fallback"}, "")
	require.NoError(t, err)
	assert.Equal(t, "fallback", ws)

	_, err = resolveWorkspace(&Config{}, "")
	require.ErrorContains(t, err, "workspace required")
}
