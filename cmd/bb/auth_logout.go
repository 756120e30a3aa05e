package main

import (
	"github.com/wbratz/gobucket/internal/secret"
	"github.com/wbratz/gobucket/internal/silog"
	"github.com/wbratz/gobucket/internal/text"
)

type authLogoutCmd struct{}

func (*authLogoutCmd) Help() string {
	return text.Dedent(`
		The stored credentials are deleted from the keychain.
		Use 'bb auth login' to log in again.

		Does not do anything if not logged in.
	`)
}

func (cmd *authLogoutCmd) Run(log *silog.Logger, stash secret.Stash) error {
	if err := stash.DeleteSecret(stashService, stashKey); err != nil {
		return err
	}

	log.Info("Logged out")
	return nil
}
