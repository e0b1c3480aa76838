// Package charts renders deck analysis reports as interactive HTML charts.
package charts

import (
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/cturner512/edh-advisor/internal/analysis"
	"github.com/cturner512/edh-advisor/internal/deck"
)

// ChartConfig holds configuration for charts.
type ChartConfig struct {
	Title      string   // Chart title
	Subtitle   string   // Chart subtitle
	Width      string   // Chart width (e.g., "900px")
	Height     string   // Chart height (e.g., "500px")
	Theme      string   // Chart theme
	ShowLegend bool     // Show legend
	Colors     []string // Custom colors
}

// DefaultChartConfig returns default chart configuration.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Width:      "900px",
		Height:     "500px",
		Theme:      "light",
		ShowLegend: true,
		Colors:     []string{"#5470C6", "#91CC75", "#FAC858", "#EE6666", "#73C0DE", "#3BA272", "#FC8452", "#9A60B4", "#EA7CCC"},
	}
}

// RenderCurveChart writes a mana-curve bar chart comparing the deck's
// histogram against the archetype ideal.
func RenderCurveChart(curve analysis.CurveReport, config ChartConfig, outputPath string) error {
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
	)

	buckets := len(curve.IdealPct)
	xLabels := make([]string, buckets)
	actual := make([]opts.BarData, buckets)
	ideal := make([]opts.BarData, buckets)
	for i := 0; i < buckets; i++ {
		label := fmt.Sprintf("%d", i)
		if i == buckets-1 {
			label += "+"
		}
		xLabels[i] = label
		actual[i] = opts.BarData{Value: curve.Histogram[i]}
		ideal[i] = opts.BarData{Value: math.Round(curve.IdealPct[i] / 100 * float64(curve.NonLandCount))}
	}

	bar.SetXAxis(xLabels).
		AddSeries("Deck", actual).
		AddSeries("Ideal", ideal).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(false),
			}),
		)

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := bar.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// RenderPriceChart writes a pie chart of deck price by primary card type.
func RenderPriceChart(d deck.Deck, config ChartConfig, outputPath string) error {
	totals := make(map[string]float64)
	for _, c := range d.AllCards() {
		totals[c.PrimaryType()] += c.Price
	}

	types := make([]string, 0, len(totals))
	for t := range totals {
		types = append(types, t)
	}
	sort.Strings(types)

	items := make([]opts.PieData, 0, len(types))
	for _, t := range types {
		items = append(items, opts.PieData{Name: t, Value: totals[t]})
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
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
			Show: opts.Bool(true),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(config.ShowLegend),
		}),
	)

	pie.AddSeries("Price by Type", items).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Formatter: "{b}: ${c}",
			}),
		)

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := pie.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
