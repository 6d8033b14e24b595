package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ramonehamilton/mtg-collection/internal/collection"
	"github.com/ramonehamilton/mtg-collection/internal/commands"
	"github.com/ramonehamilton/mtg-collection/internal/config"
	"github.com/ramonehamilton/mtg-collection/internal/mtgjson"
	"github.com/ramonehamilton/mtg-collection/internal/serialization"
)

// environment is the state shared by every subcommand: the merged
// configuration and the logger.
type environment struct {
	cfg    *config.Config
	logger *slog.Logger
}

// setup loads the configuration, applies the global flags, and installs
// the logger. It must run inside Execute, after flags are parsed.
func (e *environment) setup() error {
	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFrom(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if *databasePath != "" {
		cfg.Database.Path = *databasePath
	}
	if *debugMode || *debugShort {
		cfg.App.DebugMode = true
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	level := slog.LevelInfo
	if cfg.App.DebugMode {
		level = slog.LevelDebug
	}
	e.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(e.logger)

	e.cfg = cfg
	return nil
}

// loadCollection reads the card database into an empty collection.
func (e *environment) loadCollection() (*collection.Collection, error) {
	path := e.cfg.Database.Path
	e.logger.Debug("Loading card database", "path", path)

	sets, err := mtgjson.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load card database: %w", err)
	}

	coll := collection.New(sets)
	e.logger.Info("Loaded card database", "sets", len(coll.Sets()), "printings", len(coll.IDToPrinting))
	return coll, nil
}

// format returns the flag value, or the configured default when unset.
func (e *environment) format(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return e.cfg.Collection.Format
}

func (e *environment) options() commands.Options {
	return commands.Options{
		Registry: serialization.Default(),
		Logger:   e.logger,
	}
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
