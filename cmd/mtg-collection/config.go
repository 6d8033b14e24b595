package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/pelletier/go-toml/v2"

	"github.com/ramonehamilton/mtg-collection/internal/config"
)

type configCmd struct {
	env   *environment
	force bool
}

func (*configCmd) Name() string     { return "config" }
func (*configCmd) Synopsis() string { return "write or print the configuration file" }
func (*configCmd) Usage() string {
	return `mtg-collection config init [-force]
mtg-collection config show

  init writes the default configuration to the -config path (or
  ~/.mtg-collection/config.toml). An existing file is kept unless -force is given.
  show prints the configuration in effect after flags are applied.
`
}

func (c *configCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.force, "force", false, "Overwrite an existing configuration file")
}

func (c *configCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fail("expected one of: init, show")
		return subcommands.ExitUsageError
	}

	switch f.Arg(0) {
	case "init":
		cfg := config.DefaultConfig()
		if *databasePath != "" {
			cfg.Database.Path = *databasePath
		}
		path, err := initConfig(cfg, *configPath, c.force)
		if err != nil {
			fail("%v", err)
			return subcommands.ExitFailure
		}
		fmt.Println("Wrote", path)
	case "show":
		if err := c.env.setup(); err != nil {
			fail("%v", err)
			return subcommands.ExitFailure
		}
		data, err := toml.Marshal(c.env.cfg)
		if err != nil {
			fail("%v", err)
			return subcommands.ExitFailure
		}
		fmt.Print(string(data))
	default:
		fail("unknown config action %q", f.Arg(0))
		return subcommands.ExitUsageError
	}
	return subcommands.ExitSuccess
}

// initConfig writes cfg to path, or to the default location when path is
// empty, and returns where it was written.
func initConfig(cfg *config.Config, path string, force bool) (string, error) {
	target := path
	if target == "" {
		var err error
		if target, err = config.Path(); err != nil {
			return "", err
		}
	}

	if !force {
		if _, err := os.Stat(target); err == nil {
			return "", fmt.Errorf("%s already exists (use -force to overwrite)", target)
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	}

	if path == "" {
		return target, cfg.Save()
	}
	return target, cfg.SaveTo(path)
}
