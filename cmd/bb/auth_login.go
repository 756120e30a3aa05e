package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/cli/browser"

	"github.com/wbratz/gobucket"
	"github.com/wbratz/gobucket/internal/secret"
	"github.com/wbratz/gobucket/internal/silog"
	"github.com/wbratz/gobucket/internal/text"
)

type authLoginCmd struct {
	Method string `help:"Authentication method" enum:"basic,oauth1,oauth2" default:"basic"`
}

func (*authLoginCmd) Help() string {
	return text.Dedent(`
		Logs in to Bitbucket Cloud and stores the credentials
		in the system keychain.

		Methods:
		  basic   username and app password
		  oauth1  three-legged OAuth1 with a PIN
		  oauth2  OAuth2 client credentials

		The oauth1 and oauth2 methods need consumer credentials
		in the configuration file (oauth.key and oauth.secret).
	`)
}

func (cmd *authLoginCmd) Run(
	ctx context.Context,
	log *silog.Logger,
	cfg *Config,
	stash secret.Stash,
) error {
	if os.Getenv("BITBUCKET_TOKEN") != "" {
		log.Error("Already authenticated with BITBUCKET_TOKEN.")
		log.Error("Unset BITBUCKET_TOKEN to log in with a different method.")
		return errors.New("already authenticated")
	}

	var (
		tok  *savedToken
		auth gobucket.Auth
		err  error
	)
	switch cmd.Method {
	case "basic":
		tok, auth, err = basicLogin(log)
	case "oauth1":
		tok, auth, err = oauth1Login(ctx, log, cfg)
	case "oauth2":
		tok, auth, err = oauth2Login(cfg)
	default:
		err = fmt.Errorf("unknown method %q", cmd.Method)
	}
	if err != nil {
		return err
	}

	client, err := newClient(cfg, log, auth)
	if err != nil {
		return err
	}

	user, err := client.Users.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("verify credentials: %w", err)
	}

	if err := saveToken(stash, tok); err != nil {
		return fmt.Errorf("save token: %w", err)
	}

	log.Infof("Logged in as %s", displayName(&user.Account))
	return nil
}

func basicLogin(log *silog.Logger) (*savedToken, gobucket.Auth, error) {
	log.Info("Bitbucket Cloud uses app passwords for basic authentication.")
	log.Info("Create one at: https://bitbucket.org/account/settings/app-passwords/")

	username, err := promptRequired(&survey.Input{Message: "Bitbucket username or email"})
	if err != nil {
		return nil, nil, fmt.Errorf("prompt for username: %w", err)
	}

	password, err := promptRequired(&survey.Password{Message: "App password"})
	if err != nil {
		return nil, nil, fmt.Errorf("prompt for app password: %w", err)
	}

	tok := &savedToken{Method: "basic", Username: username, AppPassword: password}
	return tok, gobucket.BasicAuth(username, password), nil
}

func oauth1Login(ctx context.Context, log *silog.Logger, cfg *Config) (*savedToken, gobucket.Auth, error) {
	if err := requireConsumer(cfg); err != nil {
		return nil, nil, err
	}

	flow := gobucket.NewOAuth1ThreeLegged(cfg.OAuth.Key, cfg.OAuth.Secret)
	authURL, err := flow.StartAuthentication(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("start authentication: %w", err)
	}

	log.Infof("Authorize the application at:\n  %s", authURL)
	if err := browser.OpenURL(authURL); err != nil {
		log.Debug("Could not open browser", "error", err)
	}

	pin, err := promptRequired(&survey.Input{Message: "PIN from the authorization page"})
	if err != nil {
		return nil, nil, fmt.Errorf("prompt for PIN: %w", err)
	}

	if err := flow.AuthenticateWithPin(ctx, pin); err != nil {
		return nil, nil, fmt.Errorf("authenticate with PIN: %w", err)
	}

	token, tokenSecret := flow.Token()
	tok := &savedToken{Method: "oauth1", OAuth1Token: token, OAuth1Secret: tokenSecret}
	return tok, flow, nil
}

func oauth2Login(cfg *Config) (*savedToken, gobucket.Auth, error) {
	if err := requireConsumer(cfg); err != nil {
		return nil, nil, err
	}

	// Tokens from the client credentials grant expire,
	// so only the method is persisted; tokens are re-fetched on demand.
	tok := &savedToken{Method: "oauth2"}
	return tok, gobucket.OAuth2ClientCredentials(cfg.OAuth.Key, cfg.OAuth.Secret), nil
}

func requireConsumer(cfg *Config) error {
	if cfg.OAuth.Key == "" || cfg.OAuth.Secret == "" {
		return errors.New("missing OAuth consumer credentials; set oauth.key and oauth.secret in the config file")
	}
	return nil
}

func promptRequired(prompt survey.Prompt) (string, error) {
	var value string
	err := survey.AskOne(prompt, &value, survey.WithValidator(survey.Required))
	return value, err
}

func displayName(a *gobucket.Account) string {
	switch {
	case a.DisplayName != "":
		return a.DisplayName
	case a.Nickname != "":
		return a.Nickname
	default:
		return a.UUID
	}
}
