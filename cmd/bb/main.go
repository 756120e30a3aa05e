// bb is a command line client for Bitbucket Cloud.
package main

import (
	"context"
	"os"

	"github.com/alecthomas/kong"

	"github.com/wbratz/gobucket/internal/secret"
	"github.com/wbratz/gobucket/internal/silog"
)

type mainCmd struct {
	Verbose bool   `short:"v" help:"Enable verbose output" env:"BB_VERBOSE"`
	Config  string `placeholder:"PATH" help:"Path to the configuration file" env:"BB_CONFIG"`

	Auth authCmd `cmd:"" help:"Manage Bitbucket authentication"`
	Repo repoCmd `cmd:"" help:"Work with repositories"`
	PR   prCmd   `cmd:"" name:"pr" help:"Work with pull requests"`
}

type authCmd struct {
	Login  authLoginCmd  `cmd:"" help:"Log in to Bitbucket"`
	Logout authLogoutCmd `cmd:"" help:"Log out of Bitbucket"`
	Status authStatusCmd `cmd:"" help:"Show authentication status"`
}

type repoCmd struct {
	List repoListCmd `cmd:"" help:"List repositories in a workspace"`
	Get  repoGetCmd  `cmd:"" help:"Show a repository"`
}

type prCmd struct {
	List    prListCmd    `cmd:"" help:"List pull requests"`
	Get     prGetCmd     `cmd:"" help:"Show a pull request"`
	Create  prCreateCmd  `cmd:"" help:"Open a pull request"`
	Merge   prMergeCmd   `cmd:"" help:"Merge a pull request"`
	Comment prCommentCmd `cmd:"" help:"Comment on a pull request"`
}

func main() {
	var cmd mainCmd
	kctx := kong.Parse(&cmd,
		kong.Name("bb"),
		kong.Description("bb is a command line client for Bitbucket Cloud."),
		kong.UsageOnError(),
		kong.BindTo(context.Background(), (*context.Context)(nil)),
		kong.BindTo(new(secret.Keyring), (*secret.Stash)(nil)),
	)

	level := silog.LevelInfo
	if cmd.Verbose {
		level = silog.LevelDebug
	}
	log := silog.New(os.Stderr, &silog.Options{Level: level})

	cfg, err := loadConfig(cmd.Config)
	kctx.FatalIfErrorf(err)

	kctx.FatalIfErrorf(kctx.Run(log, cfg))
}
