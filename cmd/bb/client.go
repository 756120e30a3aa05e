package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/wbratz/gobucket"
	"github.com/wbratz/gobucket/internal/secret"
	"github.com/wbratz/gobucket/internal/silog"
)

const (
	stashService = "https://bitbucket.org"
	stashKey     = "token"
)

// savedToken is the credential blob persisted to the stash after login.
type savedToken struct {
	// Method is the login method: basic, oauth1, or oauth2.
	Method string `json:"method"`

	Username    string `json:"username,omitempty"`
	AppPassword string `json:"app_password,omitempty"`

	OAuth1Token  string `json:"oauth1_token,omitempty"`
	OAuth1Secret string `json:"oauth1_secret,omitempty"`

	AccessToken string `json:"access_token,omitempty"`
}

func saveToken(stash secret.Stash, tok *savedToken) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("marshal token: %w", err)
	}
	return stash.SaveSecret(stashService, stashKey, string(data))
}

func loadToken(stash secret.Stash) (*savedToken, error) {
	data, err := stash.LoadSecret(stashService, stashKey)
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}

	var tok savedToken
	if err := json.Unmarshal([]byte(data), &tok); err != nil {
		return nil, fmt.Errorf("unmarshal token: %w", err)
	}
	return &tok, nil
}

// newAuth builds an Auth strategy from stored credentials.
// The BITBUCKET_EMAIL and BITBUCKET_TOKEN environment variables
// take precedence over the stash.
func newAuth(cfg *Config, stash secret.Stash) (gobucket.Auth, error) {
	if token := os.Getenv("BITBUCKET_TOKEN"); token != "" {
		return gobucket.BasicAuth(os.Getenv("BITBUCKET_EMAIL"), token), nil
	}

	tok, err := loadToken(stash)
	if err != nil {
		return nil, err
	}

	switch tok.Method {
	case "basic":
		return gobucket.BasicAuth(tok.Username, tok.AppPassword), nil
	case "oauth1":
		flow := gobucket.NewOAuth1ThreeLegged(cfg.OAuth.Key, cfg.OAuth.Secret)
		flow.Restore(tok.OAuth1Token, tok.OAuth1Secret)
		return flow, nil
	case "oauth2":
		if tok.AccessToken != "" {
			return gobucket.OAuth2Token(tok.AccessToken), nil
		}
		return gobucket.OAuth2ClientCredentials(cfg.OAuth.Key, cfg.OAuth.Secret), nil
	default:
		return nil, fmt.Errorf("unknown login method %q; log in again", tok.Method)
	}
}

// newClient builds a Bitbucket client with the given Auth strategy.
func newClient(cfg *Config, log *silog.Logger, auth gobucket.Auth) (*gobucket.Client, error) {
	opts := []gobucket.Option{
		gobucket.WithAuth(auth),
		gobucket.WithLogger(log),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, gobucket.WithBaseURL(cfg.BaseURL))
	}
	return gobucket.New(opts...)
}

// authedClient builds a client from stored credentials.
func authedClient(cfg *Config, log *silog.Logger, stash secret.Stash) (*gobucket.Client, error) {
	auth, err := newAuth(cfg, stash)
	if err != nil {
		return nil, err
	}
	return newClient(cfg, log, auth)
}
