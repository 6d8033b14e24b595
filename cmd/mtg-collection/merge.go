package main

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/ramonehamilton/mtg-collection/internal/collection"
	"github.com/ramonehamilton/mtg-collection/internal/commands"
	"github.com/ramonehamilton/mtg-collection/internal/serialization"
)

type mergeCmd struct {
	env          *environment
	format       string
	importFormat string
	out          string
	noBackup     bool
}

func (*mergeCmd) Name() string     { return "merge" }
func (*mergeCmd) Synopsis() string { return "add the counts of other files to a collection" }
func (*mergeCmd) Usage() string {
	return `mtg-collection merge [-format <format>] [-import-format <format>] [-out <file>] <collection> <import>...

  Reads the collection (if it exists), adds the counts from every import file,
  and writes the result back to the collection or to -out. Nothing is written
  if any import row cannot be matched to a printing.
`
}

func (c *mergeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "", "Collection and output format (default from config, usually auto)")
	f.StringVar(&c.importFormat, "import-format", serialization.FormatAuto, "Format of the import files")
	f.StringVar(&c.out, "out", "", "Write the merged collection here instead of over the collection")
	f.BoolVar(&c.noBackup, "no-backup", false, "Do not keep a .bak copy of the previous file")
}

func (c *mergeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 2 {
		fail("expected a collection path and at least one import path")
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

	cmd := newMergeCommand(c.env, coll, f.Args(), c.format, c.importFormat, c.out, opts)
	executor := commands.NewCommandExecutor(c.env.logger)
	if err := executor.Execute(ctx, cmd); err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}

// newMergeCommand builds a merge of args[1:] into args[0].
func newMergeCommand(env *environment, coll *collection.Collection, args []string, format, importFormat, out string, opts commands.Options) *commands.MergeCommand {
	format = env.format(format)
	imports := make([]commands.File, 0, len(args)-1)
	for _, p := range args[1:] {
		imports = append(imports, commands.File{Path: p, Format: importFormat})
	}

	var output commands.File
	if out != "" {
		output = commands.File{Path: out, Format: format}
	}

	return commands.NewMergeCommand(coll, commands.File{Path: args[0], Format: format}, imports, output, opts)
}
