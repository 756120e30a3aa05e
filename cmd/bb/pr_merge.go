package main

import (
	"context"
	"fmt"

	"github.com/wbratz/gobucket"
	"github.com/wbratz/gobucket/internal/secret"
	"github.com/wbratz/gobucket/internal/silog"
	"github.com/wbratz/gobucket/internal/text"
)

type prMergeCmd struct {
	Repo   string `arg:"" help:"Repository as workspace/slug"`
	Number int64  `arg:"" help:"Pull request number"`

	Message      string `help:"Merge commit message"`
	Strategy     string `help:"Merge strategy" enum:"merge_commit,squash,fast_forward," default:""`
	DeleteBranch bool   `name:"delete-branch" help:"Delete the source branch after merging"`
}

func (*prMergeCmd) Help() string {
	return text.Dedent(`
		Merges an open pull request into its destination branch.
		The repository's default merge strategy is used
		unless --strategy is given.
	`)
}

func (cmd *prMergeCmd) Run(
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

	pr, err := client.PullRequests.Merge(ctx, workspace, slug, cmd.Number, &gobucket.MergePullRequestRequest{
		Message:           cmd.Message,
		MergeStrategy:     cmd.Strategy,
		CloseSourceBranch: cmd.DeleteBranch,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Merged #%d (%s)\n", pr.ID, pr.State)
	return nil
}
