// Command mtg-collection maintains Magic: The Gathering collection files
// against an MTGJSON card database.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/google/subcommands"
)

var (
	configPath   = flag.String("config", "", "Path to config.toml (default ~/.mtg-collection/config.toml)")
	databasePath = flag.String("database", "", "Path to the MTGJSON AllSets file (overrides [database] path)")
	debugMode    = flag.Bool("debug", false, "Enable debug logging")
	debugShort   = flag.Bool("d", false, "Enable debug logging (shorthand for -debug)")
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	env := &environment{}

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	commander.Register(&createCmd{env: env}, "collection")
	commander.Register(&updateCmd{env: env}, "collection")
	commander.Register(&mergeCmd{env: env}, "collection")
	commander.Register(&watchCmd{env: env}, "collection")

	commander.Register(&statsCmd{env: env}, "reports")
	commander.Register(&formatsCmd{}, "reports")
	commander.Register(&configCmd{env: env}, "")
	commander.Register(&versionCmd{}, "")

	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	status := commander.Execute(ctx)
	stop()
	os.Exit(int(status))
}
