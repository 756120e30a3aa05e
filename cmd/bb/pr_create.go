package main

import (
	"context"
	"fmt"

	"github.com/wbratz/gobucket"
	"github.com/wbratz/gobucket/internal/secret"
	"github.com/wbratz/gobucket/internal/silog"
	"github.com/wbratz/gobucket/internal/text"
)

type prCreateCmd struct {
	Repo string `arg:"" help:"Repository as workspace/slug"`

	Title        string   `required:"" help:"Title of the pull request"`
	Source       string   `required:"" help:"Source branch"`
	Destination  string   `help:"Destination branch; defaults to the repository's main branch"`
	Body         string   `help:"Description of the pull request"`
	Reviewer     []string `help:"Request review from these workspace members"`
	Draft        bool     `help:"Open as a draft"`
	DeleteBranch bool     `name:"delete-branch" help:"Delete the source branch after merging"`
}

func (*prCreateCmd) Help() string {
	return text.Dedent(`
		Opens a pull request from --source
		to --destination or the main branch.

		Reviewers are looked up among the workspace members
		by username or nickname.
	`)
}

func (cmd *prCreateCmd) Run(
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

	pr, err := client.PullRequests.Create(ctx, workspace, slug, &gobucket.CreatePullRequestRequest{
		Title:             cmd.Title,
		Description:       cmd.Body,
		SourceBranch:      cmd.Source,
		DestinationBranch: cmd.Destination,
		Reviewers:         cmd.Reviewer,
		Draft:             cmd.Draft,
		CloseSourceBranch: cmd.DeleteBranch,
	})
	if err != nil {
		return err
	}

	url := ""
	if pr.Links != nil && pr.Links.HTML != nil {
		url = pr.Links.HTML.Href
	}
	fmt.Printf("Created #%d %s\n", pr.ID, url)
	return nil
}
