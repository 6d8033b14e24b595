package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/ramonehamilton/mtg-collection/internal/serialization"
)

type formatsCmd struct{}

func (*formatsCmd) Name() string             { return "formats" }
func (*formatsCmd) Synopsis() string         { return "list the supported collection formats" }
func (*formatsCmd) Usage() string            { return "mtg-collection formats\n" }
func (*formatsCmd) SetFlags(_ *flag.FlagSet) {}

func (*formatsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fail("no arguments expected")
		return subcommands.ExitUsageError
	}

	registry := serialization.Default()
	for _, name := range registry.AllFormats() {
		if name == serialization.FormatAuto {
			fmt.Printf("%-8s  choose by file extension\n", name)
			continue
		}
		reg, err := registry.ByExtensionAndFormat("", name)
		if err != nil {
			fail("%v", err)
			return subcommands.ExitFailure
		}
		ext := reg.Extension
		if ext == "" {
			ext = "(explicit -format only)"
		}
		fmt.Printf("%-8s  %s\n", name, ext)
	}

	return subcommands.ExitSuccess
}
