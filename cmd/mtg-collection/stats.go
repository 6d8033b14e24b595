package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"

	"github.com/ramonehamilton/mtg-collection/internal/charts"
	"github.com/ramonehamilton/mtg-collection/internal/collection"
	"github.com/ramonehamilton/mtg-collection/internal/serialization"
)

type statsCmd struct {
	env     *environment
	format  string
	out     string
	noChart bool
	all     bool
}

func (*statsCmd) Name() string     { return "stats" }
func (*statsCmd) Synopsis() string { return "summarize owned cards per set" }
func (*statsCmd) Usage() string {
	return `mtg-collection stats [-format <format>] [-out <file.html>] [-no-chart] [-all] <collection>

  Prints owned counts per set and renders them as an HTML bar chart.
  For sqlite collections the raw stored row count is printed as well.
`
}

func (c *statsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "", "Collection format (default from config, usually auto)")
	f.StringVar(&c.out, "out", "", "Chart output file (default from config)")
	f.BoolVar(&c.noChart, "no-chart", false, "Only print the table")
	f.BoolVar(&c.all, "all", false, "Include sets with nothing owned")
}

func (c *statsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	path := f.Arg(0)
	s, err := serialization.Default().ForPath(path, c.env.format(c.format), coll)
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	if err := s.Read(path); err != nil {
		fail("failed to read %s: %v", path, err)
		return subcommands.ExitFailure
	}

	summaries := coll.Summaries()
	printSummaries(summaries, c.all)

	if db, ok := s.(*serialization.SQLiteSerializer); ok {
		stored, err := db.Stored(ctx, path)
		if err != nil {
			fail("%v", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("\nStored: %d rows, %d cards (schema version %d)\n", stored.Rows, stored.Quantity, stored.SchemaVersion)
	}

	if c.noChart {
		return subcommands.ExitSuccess
	}

	cfg := c.env.cfg.Charts
	chartConfig := charts.DefaultChartConfig()
	chartConfig.Subtitle = path
	chartConfig.Width = cfg.Width
	chartConfig.Height = cfg.Height
	chartConfig.Theme = cfg.Theme
	chartConfig.OwnedOnly = !c.all

	out := c.out
	if out == "" {
		out = cfg.Output
	}
	if err := charts.RenderOwnedBySetFile(out, summaries, chartConfig); err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	c.env.logger.Info("Chart written", "path", out)

	return subcommands.ExitSuccess
}

func printSummaries(summaries []collection.SetSummary, all bool) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SET\tNAME\tRELEASED\tPRINTINGS\tUNIQUE\tCOPIES\tFOILS\tTOTAL")

	var unique, total, printings int
	byType := make(map[collection.CountType]int)
	for _, s := range summaries {
		printings += s.Printings
		unique += s.UniqueOwned
		total += s.TotalOwned
		for ct, n := range s.ByType {
			byType[ct] += n
		}
		if !all && s.TotalOwned == 0 {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\n",
			s.Code, s.Name, s.ReleaseDate, s.Printings, s.UniqueOwned,
			s.ByType[collection.Copies], s.ByType[collection.Foils], s.TotalOwned)
	}
	fmt.Fprintf(w, "\t%s\t\t%d\t%d\t%d\t%d\t%d\n", "All sets", printings, unique,
		byType[collection.Copies], byType[collection.Foils], total)
	_ = w.Flush()
}
