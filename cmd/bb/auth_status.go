package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/wbratz/gobucket/internal/secret"
	"github.com/wbratz/gobucket/internal/silog"
	"github.com/wbratz/gobucket/internal/text"
)

type authStatusCmd struct{}

func (*authStatusCmd) Help() string {
	return text.Dedent(`
		Verifies the stored credentials against the API.
		Exits with a non-zero code if not logged in.
	`)
}

func (cmd *authStatusCmd) Run(
	ctx context.Context,
	log *silog.Logger,
	cfg *Config,
	stash secret.Stash,
) error {
	client, err := authedClient(cfg, log, stash)
	if err != nil {
		if errors.Is(err, secret.ErrNotFound) {
			return errors.New("not logged in")
		}
		return err
	}

	user, err := client.Users.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("verify credentials: %w", err)
	}

	log.Infof("Logged in as %s", displayName(&user.Account))
	return nil
}
