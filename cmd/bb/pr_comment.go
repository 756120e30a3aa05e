package main

import (
	"context"
	"fmt"

	"github.com/wbratz/gobucket/internal/secret"
	"github.com/wbratz/gobucket/internal/silog"
)

type prCommentCmd struct {
	Repo   string `arg:"" help:"Repository as workspace/slug"`
	Number int64  `arg:"" help:"Pull request number"`

	Body string `required:"" help:"Comment text, in markdown"`
}

func (cmd *prCommentCmd) Run(
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

	comment, err := client.PullRequests.AddComment(ctx, workspace, slug, cmd.Number, cmd.Body)
	if err != nil {
		return err
	}

	fmt.Printf("Commented on #%d (comment %d)\n", cmd.Number, comment.ID)
	return nil
}
