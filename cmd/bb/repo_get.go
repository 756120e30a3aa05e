package main

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/wbratz/gobucket/internal/secret"
	"github.com/wbratz/gobucket/internal/silog"
)

type repoGetCmd struct {
	Repo string `arg:"" help:"Repository as workspace/slug, or a bare slug with a configured workspace"`
}

func (cmd *repoGetCmd) Run(
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

	repo, err := client.Repositories.Get(ctx, workspace, slug)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", repo.FullName)
	if repo.Description != "" {
		fmt.Printf("  %s\n", repo.Description)
	}
	if repo.MainBranch != nil {
		fmt.Printf("  main branch: %s\n", repo.MainBranch.Name)
	}
	fmt.Printf("  private: %v\n", repo.IsPrivate)
	if repo.UpdatedOn != nil {
		fmt.Printf("  updated: %s\n", humanize.Time(*repo.UpdatedOn))
	}
	if repo.Links != nil && repo.Links.HTML != nil {
		fmt.Printf("  %s\n", repo.Links.HTML.Href)
	}
	return nil
}
