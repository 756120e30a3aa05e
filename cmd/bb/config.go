package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the bb configuration file,
// by default at $XDG_CONFIG_HOME/bb/config.yml.
type Config struct {
	// BaseURL overrides the Bitbucket API base URL.
	BaseURL string `yaml:"base_url"`

	// Workspace is the default workspace
	// for commands that accept one.
	Workspace string `yaml:"workspace"`

	// OAuth holds the OAuth consumer credentials
	// used by the oauth1 and oauth2 login methods.
	OAuth OAuthConfig `yaml:"oauth"`
}

// OAuthConfig identifies the OAuth consumer registered with Bitbucket.
type OAuthConfig struct {
	Key    string `yaml:"key"`
	Secret string `yaml:"secret"`
}

// loadConfig reads the configuration file at path,
// or the default location if path is empty.
// A missing file yields an empty configuration.
func loadConfig(path string) (*Config, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return &Config{}, nil
		}
		path = filepath.Join(dir, "bb", "config.yml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %v: %w", path, err)
	}
	return &cfg, nil
}

// resolveRepo splits a "workspace/slug" argument,
// falling back to the configured workspace for bare slugs.
func resolveRepo(cfg *Config, repo string) (workspace, slug string, err error) {
	switch parts := strings.SplitN(repo, "/", 2); len(parts) {
	case 2:
		return parts[0], parts[1], nil
	default:
		if cfg.Workspace == "" {
			return "", "", fmt.Errorf(
				"repository %q has no workspace; use workspace/slug or set a default workspace", repo)
		}
		return cfg.Workspace, repo, nil
	}
}

// resolveWorkspace picks the workspace argument
// or the configured default.
func resolveWorkspace(cfg *Config, workspace string) (string, error) {
	if workspace != "" {
		return workspace, nil
	}
	if cfg.Workspace == "" {
		return "", errors.New("workspace required; pass one or set it in the config file")
	}
	return cfg.Workspace, nil
}
