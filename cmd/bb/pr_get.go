package main

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/wbratz/gobucket/internal/secret"
	"github.com/wbratz/gobucket/internal/silog"
)

type prGetCmd struct {
	Repo   string `arg:"" help:"Repository as workspace/slug"`
	Number int64  `arg:"" help:"Pull request number"`
}

func (cmd *prGetCmd) Run(
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

	pr, err := client.PullRequests.Get(ctx, workspace, slug, cmd.Number)
	if err != nil {
		return err
	}

	fmt.Printf("#%d %s (%s)\n", pr.ID, pr.Title, pr.State)
	if pr.Author != nil {
		fmt.Printf("  author: %s\n", displayName(pr.Author))
	}
	dest := ""
	if pr.Destination != nil {
		dest = pr.Destination.Branch.Name
	}
	fmt.Printf("  %s -> %s\n", pr.Source.Branch.Name, dest)
	if pr.UpdatedOn != nil {
		fmt.Printf("  updated: %s\n", humanize.Time(*pr.UpdatedOn))
	}

	counts, err := client.PullRequests.CommentCounts(ctx, workspace, slug, cmd.Number)
	if err != nil {
		return err
	}
	if counts.Resolvable > 0 {
		fmt.Printf("  threads: %d/%d resolved\n", counts.Resolved, counts.Resolvable)
	}

	if pr.Description != "" {
		fmt.Printf("\n%s\n", pr.Description)
	}
	return nil
}
