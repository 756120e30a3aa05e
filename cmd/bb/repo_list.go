package main

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/wbratz/gobucket"
	"github.com/wbratz/gobucket/internal/secret"
	"github.com/wbratz/gobucket/internal/silog"
	"github.com/wbratz/gobucket/internal/text"
)

type repoListCmd struct {
	Workspace string `arg:"" optional:"" help:"Workspace to list; defaults to the configured workspace"`
	Role      string `help:"Filter by role (member, contributor, admin, owner)"`
}

func (*repoListCmd) Help() string {
	return text.Dedent(`
		Lists every repository in the workspace,
		most recently updated first.
	`)
}

func (cmd *repoListCmd) Run(
	ctx context.Context,
	log *silog.Logger,
	cfg *Config,
	stash secret.Stash,
) error {
	workspace, err := resolveWorkspace(cfg, cmd.Workspace)
	if err != nil {
		return err
	}

	client, err := authedClient(cfg, log, stash)
	if err != nil {
		return err
	}

	opts := &gobucket.RepositoryListOptions{
		Role: cmd.Role,
		Sort: "-updated_on",
	}
	for repo, err := range client.Repositories.All(ctx, workspace, opts) {
		if err != nil {
			return err
		}

		updated := ""
		if repo.UpdatedOn != nil {
			updated = humanize.Time(*repo.UpdatedOn)
		}
		fmt.Printf("%-48s %s\n", repo.FullName, updated)
	}
	return nil
}
