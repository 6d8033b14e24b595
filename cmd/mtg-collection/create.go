package main

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/ramonehamilton/mtg-collection/internal/commands"
)

type createCmd struct {
	env    *environment
	format string
}

func (*createCmd) Name() string     { return "create" }
func (*createCmd) Synopsis() string { return "create a new, empty collection file" }
func (*createCmd) Usage() string {
	return `mtg-collection create [-format <format>] <collection>

  Writes every printing in the card database with no owned counts. Fails if
  the collection file already exists.
`
}

func (c *createCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "", "Collection format (default from config, usually auto)")
}

func (c *createCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fail("expected exactly one collection path")
		return subcommands.ExitUsageError
	}
	if err := c.env.setup(); err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}

	coll, err := c.env.loadCollection()
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}

	target := commands.File{Path: f.Arg(0), Format: c.env.format(c.format)}
	executor := commands.NewCommandExecutor(c.env.logger)
	if err := executor.Execute(ctx, commands.NewCreateCommand(coll, target, c.env.options())); err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
