package main

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/ramonehamilton/mtg-collection/internal/commands"
)

type updateCmd struct {
	env      *environment
	format   string
	noBackup bool
}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "rewrite a collection against the current card database" }
func (*updateCmd) Usage() string {
	return `mtg-collection update [-format <format>] [-no-backup] <collection>...

  Reads each collection and writes it back, adding printings that are new in
  the card database. The previous file is kept with a .bak suffix.
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "", "Collection format (default from config, usually auto)")
	f.BoolVar(&c.noBackup, "no-backup", false, "Do not keep a .bak copy of the previous file")
}

func (c *updateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fail("expected at least one collection path")
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

	opts := c.env.options()
	opts.NoBackup = c.noBackup

	targets := make([]commands.File, 0, f.NArg())
	for _, p := range f.Args() {
		targets = append(targets, commands.File{Path: p, Format: c.env.format(c.format)})
	}
	executor := commands.NewCommandExecutor(c.env.logger)
	if err := executor.ExecuteAll(ctx, commands.NewUpdateCommands(coll, targets, opts)); err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
