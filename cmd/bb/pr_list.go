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

type prListCmd struct {
	Repo  string   `arg:"" help:"Repository as workspace/slug"`
	State []string `help:"Filter by state (OPEN, MERGED, DECLINED, SUPERSEDED)" default:"OPEN"`
}

func (*prListCmd) Help() string {
	return text.Dedent(`
		Lists pull requests in the repository.
		Only open pull requests are shown by default;
		pass --state to see others.
	`)
}

func (cmd *prListCmd) Run(
	ctx context.Context,
	log *silog.Logger,
	cfg *Config,
	stash secret.Stash,
) error {
	workspace, slug, err := resolveRepo(cfg, cmd.Repo)
	if err != nil {
		return err
	}

	client, err := authedClient(cfg, log, stash)
	if err != nil {
		return err
	}

	opts := &gobucket.PullRequestListOptions{State: cmd.State}
	for pr, err := range client.PullRequests.All(ctx, workspace, slug, opts) {
		if err != nil {
			return err
		}

		updated := ""
		if pr.UpdatedOn != nil {
			updated = humanize.Time(*pr.UpdatedOn)
		}
		fmt.Printf("#%-6d %-10s %-60s %s\n", pr.ID, pr.State, pr.Title, updated)
	}
	return nil
}
