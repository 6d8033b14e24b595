// Package charts renders collection statistics as interactive HTML charts.
package charts

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ramonehamilton/mtg-collection/internal/collection"
)

// ChartConfig holds configuration for charts.
type ChartConfig struct {
	Title      string   // Chart title
	Subtitle   string   // Chart subtitle
	Width      string   // Chart width (e.g., "900px")
	Height     string   // Chart height (e.g., "500px")
	Theme      string   // Chart theme
	ShowLegend bool     // Show legend
	OwnedOnly  bool     // Skip sets with nothing owned
	Colors     []string // One color per count type
}

// DefaultChartConfig returns default chart configuration.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Title:      "Owned cards per set",
		Width:      "1200px",
		Height:     "600px",
		Theme:      "westeros",
		ShowLegend: true,
		OwnedOnly:  true,
		Colors:     []string{"#5470C6", "#FAC858", "#91CC75", "#EE6666"},
	}
}

// RenderOwnedBySet writes a stacked bar chart of owned cards per set, one
// series per count type, in collection set order.
func RenderOwnedBySet(w io.Writer, summaries []collection.SetSummary, config ChartConfig) error {
	bar := charts.NewBar()

	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
			Theme:  config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    config.Title,
			Subtitle: config.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(config.ShowLegend),
		}),
		charts.WithColorsOpts(opts.Colors(config.Colors)),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:  "slider",
			Start: 0,
			End:   100,
		}),
	)

	var labels []string
	series := make(map[collection.CountType][]opts.BarData)
	for _, s := range summaries {
		if config.OwnedOnly && s.TotalOwned == 0 {
			continue
		}
		labels = append(labels, s.Code)
		for _, ct := range collection.CountTypes() {
			series[ct] = append(series[ct], opts.BarData{Name: s.Name, Value: s.ByType[ct]})
		}
	}

	bar.SetXAxis(labels)
	for _, ct := range collection.CountTypes() {
		bar.AddSeries(ct.String(), series[ct])
	}
	bar.SetSeriesOptions(
		charts.WithBarChartOpts(opts.BarChart{
			Stack: "owned",
		}),
		charts.WithLabelOpts(opts.Label{
			Show: opts.Bool(false),
		}),
	)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// RenderOwnedBySetFile renders the owned-by-set chart to outputPath.
func RenderOwnedBySetFile(outputPath string, summaries []collection.SetSummary, config ChartConfig) (err error) {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create chart directory: %w", err)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close chart file: %w", closeErr)
		}
	}()

	return RenderOwnedBySet(f, summaries, config)
}
