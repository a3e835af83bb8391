package trends_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/trendscope/pkg/trends"
)

func TestSpecDefaults(t *testing.T) {
	t.Parallel()

	assert.Equal(t, trends.DefaultShortTimeframe, trends.RegionalSpec("k").Timeframe)
	assert.Equal(t, trends.DefaultShortTimeframe, trends.RelatedQueriesSpec("k").Timeframe)
	assert.Equal(t, trends.DefaultLongTimeframe, trends.TimeSeriesSpec("k", "").Timeframe)
	assert.Equal(t, "today 5-y", trends.TimeSeriesSpec("k", "today 5-y").Timeframe)
	assert.Equal(t, 7, trends.TopicBreakdownSpec("k", 7).Category)
	assert.Equal(t, trends.DefaultPlatform, trends.PlatformSpec("k", "").Property)
	assert.Empty(t, trends.PlatformSpec("k", "web").Query().Property)
	assert.Equal(t, "youtube", trends.PlatformSpec("k", "youtube").Query().Property)
}

func TestWithTimeframeCopies(t *testing.T) {
	t.Parallel()

	base := trends.RegionalSpec("k")
	other := base.WithTimeframe("today 3-m")

	assert.Equal(t, trends.DefaultShortTimeframe, base.Timeframe)
	assert.Equal(t, "today 3-m", other.Timeframe)
}

func TestReportName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "poland_trending", trends.TrendingSpec("poland").ReportName())
	assert.Equal(t, "Blockchain_interest_by_region", trends.RegionalSpec("Blockchain").ReportName())
	assert.Equal(t, "AI_interest_over_time", trends.TimeSeriesSpec("AI", "").ReportName())
	assert.Equal(t, "AI_interest_by_platform_youtube", trends.PlatformSpec("AI", "youtube").ReportName())
	assert.Equal(t, "kind(42)", trends.Kind(42).String())
}

func TestTableHelpers(t *testing.T) {
	t.Parallel()

	var nilTable *trends.Table

	assert.Equal(t, 0, nilTable.Len())
	assert.False(t, nilTable.HasColumn("x"))
	assert.Nil(t, nilTable.Head(3))
	assert.Nil(t, nilTable.Clone())

	table := seriesTable("A", 1, 2, 3, 4)

	assert.Equal(t, 2, table.Head(2).Len())
	assert.Equal(t, 4, table.Head(10).Len())

	clone := table.Clone()
	clone.Rows[0], clone.Rows[1] = clone.Rows[1], clone.Rows[0]
	assert.NotEqual(t, clone.Rows[0].Key, table.Rows[0].Key)
}

func TestStatusString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "success", trends.StatusSuccess.String())
	assert.Equal(t, "empty", trends.StatusEmpty.String())
	assert.Equal(t, "failure", trends.StatusFailure.String())
	assert.Equal(t, "unknown", trends.Status(9).String())
}
