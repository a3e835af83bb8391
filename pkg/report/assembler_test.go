package report_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/trendscope/pkg/artifact"
	"github.com/Sumatoshi-tech/trendscope/pkg/paginate"
	"github.com/Sumatoshi-tech/trendscope/pkg/report"
	"github.com/Sumatoshi-tech/trendscope/pkg/terminal"
	"github.com/Sumatoshi-tech/trendscope/pkg/trends"
)

func newAssembler(provider *fakeProvider, writer *recordingWriter, surface report.Surface, out *bytes.Buffer) *report.Assembler {
	opts := []report.Option{report.WithRunID("run-1")}

	if surface != nil {
		opts = append(opts, report.WithSurface(surface))
	}

	if out != nil {
		opts = append(opts, report.WithConsole(report.NewConsole(out, terminal.Config{NoColor: true, Width: 60}, 10)))
	}

	return report.NewAssembler(trends.NewFetcher(provider), writer, opts...)
}

func TestRun_FailingKeywordDoesNotStopSiblings(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{fail: map[string]error{"B": errQuota}}
	writer := &recordingWriter{}
	surface := &recordingSurface{}

	plan := report.Plan{
		Keywords:  []string{"A", "B"},
		Kinds:     []trends.Kind{trends.KindTimeSeries},
		Visualize: true,
		PerPage:   2,
		Format:    artifact.FormatAuto,
	}

	summary, err := newAssembler(provider, writer, surface, nil).Run(context.Background(), plan)
	require.NoError(t, err)

	assert.Equal(t, []string{"A_interest_over_time.xlsx"}, writer.names)

	require.Len(t, summary.Results, 2)
	assert.Equal(t, trends.StatusSuccess, summary.Results[0].Status)
	assert.Equal(t, trends.StatusFailure, summary.Results[1].Status)
	assert.Contains(t, summary.Results[1].Reason, "quota exceeded")

	require.Len(t, summary.Pages, 1)
	require.NoError(t, summary.Pages[0].Err)
	assert.Equal(t, "page-1", summary.Pages[0].Location)
	assert.Equal(t, []report.PanelOutcome{
		{Subject: "A", Outcome: report.PanelChart},
		{Subject: "B", Outcome: report.PanelError, Reason: summary.Results[1].Reason},
	}, summary.Pages[0].Panels)

	require.Len(t, surface.pages, 1)
	canvas := surface.pages[0]
	assert.True(t, canvas.finalized)
	assert.Equal(t, "plot", canvas.slots[0].op)
	assert.Equal(t, "Interest in 'A' over time", canvas.slots[0].chart.Title)
	assert.Equal(t, "Date", canvas.slots[0].chart.XLabel)
	assert.Equal(t, "Interest score", canvas.slots[0].chart.YLabel)
	assert.Equal(t, []float64{10, 42, 17}, canvas.slots[0].chart.Series[0].Values)
	assert.Equal(t, "text", canvas.slots[1].op)
	assert.Equal(t, report.MarkerError, canvas.slots[1].kind)
	assert.Contains(t, canvas.slots[1].text, "Error: ")
	assert.Contains(t, canvas.slots[1].text, "quota exceeded")
	assert.True(t, surface.closed)
}

func TestRun_OrderAndArtifactNames(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{}
	writer := &recordingWriter{}

	plan := report.Plan{
		Countries:  []string{"japan"},
		Keywords:   []string{"Go"},
		Kinds:      []trends.Kind{trends.KindTrendingTopics, trends.KindRegionalInterest, trends.KindRelatedQueries, trends.KindTimeSeries, trends.KindPlatformInterest, trends.KindTopicBreakdown},
		Platforms:  []report.PlatformQuery{{Keyword: "Go", Platform: "youtube"}},
		Categories: []report.CategoryQuery{{Keyword: "Football", Category: 7}},
		Format:     artifact.FormatAuto,
	}

	summary, err := newAssembler(provider, writer, nil, nil).Run(context.Background(), plan)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"japan_trending.csv",
		"Go_interest_by_region.xlsx",
		"Go_related_queries.csv",
		"Go_interest_over_time.xlsx",
		"Go_interest_by_platform_youtube.xlsx",
		"Football_related_topics_top.csv",
	}, writer.names)
	assert.Len(t, summary.Results, 6)
	assert.Empty(t, summary.Pages)
}

func TestRun_FormatOverride(t *testing.T) {
	t.Parallel()

	writer := &recordingWriter{}
	plan := report.Plan{
		Keywords: []string{"Go"},
		Kinds:    []trends.Kind{trends.KindRegionalInterest},
		Format:   artifact.FormatCSV,
	}

	_, err := newAssembler(&fakeProvider{}, writer, nil, nil).Run(context.Background(), plan)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go_interest_by_region.csv"}, writer.names)
}

func TestRun_WriteFailureIsRecordedAndRunContinues(t *testing.T) {
	t.Parallel()

	writer := &recordingWriter{fail: map[string]bool{"A_interest_over_time": true}}
	var out bytes.Buffer

	plan := report.Plan{
		Keywords: []string{"A", "B"},
		Kinds:    []trends.Kind{trends.KindTimeSeries},
		Format:   artifact.FormatCSV,
	}

	summary, err := newAssembler(&fakeProvider{}, writer, nil, &out).Run(context.Background(), plan)
	require.NoError(t, err)

	assert.Equal(t, []string{"B_interest_over_time.csv"}, writer.names)
	require.Len(t, summary.WriteFailures, 1)
	assert.Equal(t, "A_interest_over_time", summary.WriteFailures[0].Name)
	require.ErrorIs(t, summary.WriteFailures[0].Err, artifact.ErrWrite)
	assert.Contains(t, out.String(), "Unable to save 'A_interest_over_time'")
}

func TestRun_EmptyResultsAreNotPersisted(t *testing.T) {
	t.Parallel()

	writer := &recordingWriter{}
	surface := &recordingSurface{}

	plan := report.Plan{
		Keywords:  []string{"quiet"},
		Kinds:     []trends.Kind{trends.KindTimeSeries, trends.KindRegionalInterest},
		Visualize: true,
		PerPage:   3,
	}

	summary, err := newAssembler(&fakeProvider{empty: map[string]bool{"quiet": true}}, writer, surface, nil).
		Run(context.Background(), plan)
	require.NoError(t, err)

	assert.Empty(t, writer.names)
	assert.Equal(t, 2, summary.Counts()[trends.StatusEmpty])

	require.Len(t, surface.pages, 1)
	slots := surface.pages[0].slots
	assert.Equal(t, drawing{op: "text", text: report.NoDataText, kind: report.MarkerNoData}, slots[0])
	assert.Equal(t, "blank", slots[1].op)
	assert.Equal(t, "blank", slots[2].op)
}

func TestRun_InvalidPageSizeIsFatalBeforeAnyQuery(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{}
	plan := report.Plan{
		Keywords:  []string{"A"},
		Kinds:     []trends.Kind{trends.KindTimeSeries},
		Visualize: true,
		PerPage:   0,
	}

	_, err := newAssembler(provider, &recordingWriter{}, &recordingSurface{}, nil).Run(context.Background(), plan)
	require.ErrorIs(t, err, paginate.ErrInvalidPageSize)
	assert.Zero(t, provider.callCount())
}

func TestRun_CancelledContextStops(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	provider := &fakeProvider{}
	plan := report.Plan{Keywords: []string{"A"}, Kinds: []trends.Kind{trends.KindTimeSeries}}

	_, err := newAssembler(provider, &recordingWriter{}, nil, nil).Run(ctx, plan)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, provider.callCount())
}

func TestRun_ParallelWorkersKeepInputOrder(t *testing.T) {
	t.Parallel()

	keywords := make([]string, 20)
	for i := range keywords {
		keywords[i] = fmt.Sprintf("k%02d", i)
	}

	provider := &fakeProvider{fail: map[string]error{"k05": errQuota}}
	writer := &recordingWriter{}

	plan := report.Plan{
		Keywords: keywords,
		Kinds:    []trends.Kind{trends.KindTimeSeries},
		Format:   artifact.FormatCSV,
		Workers:  4,
	}

	summary, err := newAssembler(provider, writer, nil, nil).Run(context.Background(), plan)
	require.NoError(t, err)

	require.Len(t, summary.Results, len(keywords))

	for i, r := range summary.Results {
		assert.Equal(t, keywords[i], r.Spec.Subject)
	}

	assert.Equal(t, trends.StatusFailure, summary.Results[5].Status)
	assert.Len(t, writer.names, len(keywords)-1)
	assert.Equal(t, "k00_interest_over_time.csv", writer.names[0])
	assert.Equal(t, "k19_interest_over_time.csv", writer.names[len(writer.names)-1])
}

func TestVisualize_PanelFailureFallsBackToErrorMarker(t *testing.T) {
	t.Parallel()

	surface := &recordingSurface{failPlot: true}
	plan := report.Plan{Keywords: []string{"A"}, PerPage: 1}

	pages, err := newAssembler(&fakeProvider{}, &recordingWriter{}, surface, nil).Visualize(context.Background(), plan)
	require.NoError(t, err)

	require.Len(t, pages, 1)
	require.NoError(t, pages[0].Err)
	assert.Equal(t, report.PanelError, pages[0].Panels[0].Outcome)
	assert.Contains(t, pages[0].Panels[0].Reason, "renderer exploded")

	slot := surface.pages[0].slots[0]
	assert.Equal(t, "text", slot.op)
	assert.Equal(t, report.MarkerError, slot.kind)
	assert.Contains(t, slot.text, "Error: ")
}

func TestVisualize_PageFailureDoesNotStopLaterPages(t *testing.T) {
	t.Parallel()

	surface := &recordingSurface{failPage: map[int]bool{0: true}, panicPage: map[int]bool{1: true}}
	plan := report.Plan{Keywords: []string{"A", "B", "C", "D", "E"}, PerPage: 2}

	pages, err := newAssembler(&fakeProvider{}, &recordingWriter{}, surface, nil).Visualize(context.Background(), plan)
	require.NoError(t, err)

	require.Len(t, pages, 3)
	require.ErrorIs(t, pages[0].Err, report.ErrRender)
	require.ErrorIs(t, pages[1].Err, report.ErrRender)
	require.NoError(t, pages[2].Err)

	require.Len(t, surface.pages, 1)
	last := surface.pages[0]
	assert.Equal(t, report.PageInfo{Index: 2, Total: 3, Subjects: []string{"E", ""}}, last.info)
	assert.Equal(t, "plot", last.slots[0].op)
	assert.Equal(t, "blank", last.slots[1].op)
}

func TestVisualize_InvalidPageSize(t *testing.T) {
	t.Parallel()

	_, err := newAssembler(&fakeProvider{}, &recordingWriter{}, &recordingSurface{}, nil).
		Visualize(context.Background(), report.Plan{Keywords: []string{"A"}, PerPage: -1})
	require.ErrorIs(t, err, paginate.ErrInvalidPageSize)
}

func TestVisualize_EmptyKeywordsProducesNoPages(t *testing.T) {
	t.Parallel()

	surface := &recordingSurface{}

	pages, err := newAssembler(&fakeProvider{}, &recordingWriter{}, surface, nil).
		Visualize(context.Background(), report.Plan{PerPage: 3})
	require.NoError(t, err)
	assert.Empty(t, pages)
	assert.Empty(t, surface.pages)
}

func TestVisualize_UsesConfiguredTimeframe(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{}
	plan := report.Plan{Keywords: []string{"A"}, PerPage: 1, VisualizeTimeframe: "today 5-y"}

	_, err := newAssembler(provider, &recordingWriter{}, &recordingSurface{}, nil).Visualize(context.Background(), plan)
	require.NoError(t, err)

	require.Equal(t, 1, provider.callCount())
	assert.Equal(t, "today 5-y", provider.calls[0].Timeframe)
	assert.Equal(t, trends.KindTimeSeries, provider.calls[0].Kind)
}

func TestChartFromResult_NonNumericValue(t *testing.T) {
	t.Parallel()

	table := timeSeries("A", 1)
	table.Rows[0].Values["A"] = "n/a"

	_, err := report.ChartFromResult(trends.Success(trends.TimeSeriesSpec("A", ""), table))
	require.ErrorIs(t, err, report.ErrRender)
}
