package main

import (
	"context"
	"errors"
	"flag"

	"github.com/google/subcommands"

	"github.com/ramonehamilton/mtg-collection/internal/commands"
	"github.com/ramonehamilton/mtg-collection/internal/serialization"
	"github.com/ramonehamilton/mtg-collection/internal/watch"
)

type watchCmd struct {
	env          *environment
	format       string
	importFormat string
	out          string
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "keep a merged collection up to date as files change" }
func (*watchCmd) Usage() string {
	return `mtg-collection watch [-format <format>] [-import-format <format>] -out <file> <collection> <import>...

  Merges the collection and imports into -out, then merges again whenever
  any of those files changes. Stop with Ctrl-C.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "", "Collection and output format (default from config, usually auto)")
	f.StringVar(&c.importFormat, "import-format", serialization.FormatAuto, "Format of the import files")
	f.StringVar(&c.out, "out", "", "Merged collection output (required, must differ from the collection)")
}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 2 || c.out == "" {
		fail("expected -out, a collection path and at least one import path")
		return subcommands.ExitUsageError
	}
	// Writing over an input would merge the imports into it again on every change.
	for _, p := range f.Args() {
		if sameFile(p, c.out) {
			fail("-out must not be one of the watched files: %s", p)
			return subcommands.ExitUsageError
		}
	}

	if err := c.env.setup(); err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}

	debounce, err := c.env.cfg.WatchDebounce()
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}

	coll, err := c.env.loadCollection()
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}

	opts := c.env.options()
	opts.NoBackup = true
	merge := newMergeCommand(c.env, coll, f.Args(), c.format, c.importFormat, c.out, opts)
	executor := commands.NewCommandExecutor(c.env.logger)

	if err := executor.Execute(ctx, merge); err != nil {
		// Keep watching; the next save may fix the file.
		c.env.logger.Error("Initial merge failed", "error", err)
	}

	w, err := watch.New(f.Args(), func(ctx context.Context, changed []string) error {
		c.env.logger.Info("Files changed, merging", "files", changed)
		return executor.Execute(ctx, merge)
	}, watch.Options{Debounce: debounce, Logger: c.env.logger})
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	defer func() { _ = w.Close() }()

	c.env.logger.Info("Watching for changes", "files", f.NArg(), "out", c.out)
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fail("%v", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
