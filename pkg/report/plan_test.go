package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/trendscope/pkg/artifact"
	"github.com/Sumatoshi-tech/trendscope/pkg/config"
	"github.com/Sumatoshi-tech/trendscope/pkg/report"
	"github.com/Sumatoshi-tech/trendscope/pkg/trends"
)

func defaultConfig() *config.Config {
	return &config.Config{
		Report: config.ReportConfig{
			Countries:         []string{"united_states", "japan"},
			Keywords:          []string{"Artificial Intelligence", "Blockchain"},
			Kinds:             config.DefaultReportKinds,
			RegionTimeframe:   config.DefaultReportRegionTimeframe,
			OverTimeTimeframe: config.DefaultReportOverTimeTimeframe,
			Platforms:         []config.PlatformQuery{{Keyword: "Artificial Intelligence", Platform: "youtube"}},
			Categories:        []config.CategoryQuery{{Keyword: "Football", Category: 7}},
			PreviewRows:       10,
		},
		Visualize: config.VisualizeConfig{Enabled: true, PerPage: 3, Timeframe: "today 12-m"},
		Output:    config.OutputConfig{Format: "auto"},
	}
}

func TestPlanFromConfig(t *testing.T) {
	t.Parallel()

	plan, err := report.PlanFromConfig(defaultConfig())
	require.NoError(t, err)

	assert.Equal(t, artifact.FormatAuto, plan.Format)
	assert.Equal(t, 3, plan.PerPage)
	assert.True(t, plan.Visualize)
	assert.Len(t, plan.Kinds, 6)
	assert.Equal(t, []report.PlatformQuery{{Keyword: "Artificial Intelligence", Platform: "youtube"}}, plan.Platforms)
	assert.Equal(t, []report.CategoryQuery{{Keyword: "Football", Category: 7}}, plan.Categories)
}

func TestPlanFromConfig_UnknownKind(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Report.Kinds = []string{"weather"}

	_, err := report.PlanFromConfig(cfg)
	require.ErrorIs(t, err, trends.ErrUnknownKind)
}

func TestPlan_LeadingOrder(t *testing.T) {
	t.Parallel()

	plan, err := report.PlanFromConfig(defaultConfig())
	require.NoError(t, err)

	var got []string
	for _, spec := range plan.Leading() {
		got = append(got, spec.ReportName())
	}

	assert.Equal(t, []string{
		"united_states_trending",
		"japan_trending",
		"Artificial Intelligence_interest_by_region",
		"Artificial Intelligence_related_queries",
		"Artificial Intelligence_interest_over_time",
		"Blockchain_interest_by_region",
		"Blockchain_related_queries",
		"Blockchain_interest_over_time",
	}, got)
}

func TestPlan_TrailingOrder(t *testing.T) {
	t.Parallel()

	plan, err := report.PlanFromConfig(defaultConfig())
	require.NoError(t, err)

	trailing := plan.Trailing()
	require.Len(t, trailing, 2)
	assert.Equal(t, trends.KindPlatformInterest, trailing[0].Kind)
	assert.Equal(t, "youtube", trailing[0].Property)
	assert.Equal(t, trends.KindTopicBreakdown, trailing[1].Kind)
	assert.Equal(t, 7, trailing[1].Category)
}

func TestPlan_DisabledKindsAndTimeframes(t *testing.T) {
	t.Parallel()

	plan := report.Plan{
		Countries:      []string{"japan"},
		Keywords:       []string{"Go"},
		Kinds:          []trends.Kind{trends.KindRegionalInterest, trends.KindTimeSeries},
		ShortTimeframe: "now 7-d",
		LongTimeframe:  "today 5-y",
	}

	leading := plan.Leading()
	require.Len(t, leading, 2)
	assert.Equal(t, "now 7-d", leading[0].Timeframe)
	assert.Equal(t, "today 5-y", leading[1].Timeframe)
	assert.Empty(t, plan.Trailing())
}
