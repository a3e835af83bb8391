// Package report assembles trend queries into console previews, table
// artifacts and paginated chart pages.
package report

import (
	"fmt"
	"slices"

	"github.com/Sumatoshi-tech/trendscope/pkg/artifact"
	"github.com/Sumatoshi-tech/trendscope/pkg/config"
	"github.com/Sumatoshi-tech/trendscope/pkg/trends"
)

// PlatformQuery requests interest over time on one search property.
type PlatformQuery struct {
	Keyword  string
	Platform string
}

// CategoryQuery requests related topics restricted to a category.
type CategoryQuery struct {
	Keyword  string
	Category int
}

// Plan is the ordered set of queries a run executes.
type Plan struct {
	Countries  []string
	Keywords   []string
	Kinds      []trends.Kind
	Platforms  []PlatformQuery
	Categories []CategoryQuery

	// ShortTimeframe applies to regional, related, platform and category
	// queries; LongTimeframe to interest over time.
	ShortTimeframe string
	LongTimeframe  string

	Visualize          bool
	PerPage            int
	VisualizeTimeframe string

	Format      artifact.Format
	Workers     int
	PreviewRows int
}

// PlanFromConfig builds a Plan from a validated configuration.
func PlanFromConfig(cfg *config.Config) (Plan, error) {
	kinds := make([]trends.Kind, 0, len(cfg.Report.Kinds))

	for _, name := range cfg.Report.Kinds {
		kind, err := trends.ParseKind(name)
		if err != nil {
			return Plan{}, fmt.Errorf("build plan: %w", err)
		}

		kinds = append(kinds, kind)
	}

	format, err := artifact.ParseFormat(cfg.Output.Format)
	if err != nil {
		return Plan{}, fmt.Errorf("build plan: %w", err)
	}

	plan := Plan{
		Countries:          slices.Clone(cfg.Report.Countries),
		Keywords:           slices.Clone(cfg.Report.Keywords),
		Kinds:              kinds,
		ShortTimeframe:     cfg.Report.RegionTimeframe,
		LongTimeframe:      cfg.Report.OverTimeTimeframe,
		Visualize:          cfg.Visualize.Enabled,
		PerPage:            cfg.Visualize.PerPage,
		VisualizeTimeframe: cfg.Visualize.Timeframe,
		Format:             format,
		Workers:            cfg.Report.Workers,
		PreviewRows:        cfg.Report.PreviewRows,
	}

	for _, p := range cfg.Report.Platforms {
		plan.Platforms = append(plan.Platforms, PlatformQuery(p))
	}

	for _, c := range cfg.Report.Categories {
		plan.Categories = append(plan.Categories, CategoryQuery(c))
	}

	return plan, nil
}

// Enabled reports whether a report kind is part of the plan.
func (p Plan) Enabled(kind trends.Kind) bool {
	return slices.Contains(p.Kinds, kind)
}

// Leading returns the queries that run before the visualization pass:
// trending topics per country, then regional, related and over-time
// queries per keyword.
func (p Plan) Leading() []trends.QuerySpec {
	var specs []trends.QuerySpec

	if p.Enabled(trends.KindTrendingTopics) {
		for _, country := range p.Countries {
			specs = append(specs, trends.TrendingSpec(country))
		}
	}

	for _, kw := range p.Keywords {
		if p.Enabled(trends.KindRegionalInterest) {
			specs = append(specs, p.short(trends.RegionalSpec(kw)))
		}

		if p.Enabled(trends.KindRelatedQueries) {
			specs = append(specs, p.short(trends.RelatedQueriesSpec(kw)))
		}

		if p.Enabled(trends.KindTimeSeries) {
			specs = append(specs, trends.TimeSeriesSpec(kw, p.LongTimeframe))
		}
	}

	return specs
}

// Trailing returns the queries that run after the visualization pass:
// platform interest, then category topic breakdowns.
func (p Plan) Trailing() []trends.QuerySpec {
	var specs []trends.QuerySpec

	if p.Enabled(trends.KindPlatformInterest) {
		for _, q := range p.Platforms {
			specs = append(specs, p.short(trends.PlatformSpec(q.Keyword, q.Platform)))
		}
	}

	if p.Enabled(trends.KindTopicBreakdown) {
		for _, q := range p.Categories {
			specs = append(specs, p.short(trends.TopicBreakdownSpec(q.Keyword, q.Category)))
		}
	}

	return specs
}

func (p Plan) short(spec trends.QuerySpec) trends.QuerySpec {
	if p.ShortTimeframe == "" {
		return spec
	}

	return spec.WithTimeframe(p.ShortTimeframe)
}
