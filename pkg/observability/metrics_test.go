package observability_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/Sumatoshi-tech/trendscope/pkg/observability"
)

func setupTestMeter(t *testing.T) (*observability.ReportMetrics, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	metrics, err := observability.NewReportMetrics(mp.Meter("test"))
	require.NoError(t, err)

	return metrics, reader
}

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()

	var rm metricdata.ResourceMetrics

	require.NoError(t, reader.Collect(context.Background(), &rm))

	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for idx := range rm.ScopeMetrics {
		for midx := range rm.ScopeMetrics[idx].Metrics {
			if rm.ScopeMetrics[idx].Metrics[midx].Name == name {
				return &rm.ScopeMetrics[idx].Metrics[midx]
			}
		}
	}

	return nil
}

func TestReportMetrics_RecordQuery(t *testing.T) {
	t.Parallel()

	metrics, reader := setupTestMeter(t)
	ctx := context.Background()

	metrics.RecordQuery(ctx, "interest_by_region", "success", 200*time.Millisecond)
	metrics.RecordQuery(ctx, "interest_by_region", "failure", time.Second)
	metrics.RecordQuery(ctx, "interest_by_region", "failure", time.Second)

	rm := collectMetrics(t, reader)

	queries := findMetric(rm, "trendscope.queries")
	require.NotNil(t, queries)

	sum, ok := queries.Data.(metricdata.Sum[int64])
	require.True(t, ok)

	counts := map[string]int64{}

	for _, dp := range sum.DataPoints {
		status, found := dp.Attributes.Value(attribute.Key("status"))
		require.True(t, found)

		counts[status.AsString()] = dp.Value
	}

	assert.Equal(t, map[string]int64{"success": 1, "failure": 2}, counts)

	duration := findMetric(rm, "trendscope.fetch.duration")
	require.NotNil(t, duration)

	hist, ok := duration.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(3), hist.DataPoints[0].Count)
}

func TestReportMetrics_ArtifactsAndPanels(t *testing.T) {
	t.Parallel()

	metrics, reader := setupTestMeter(t)
	ctx := context.Background()

	metrics.RecordArtifact(ctx, "written")
	metrics.RecordPanel(ctx, "chart")
	metrics.RecordPanel(ctx, "error")
	metrics.RecordProviderCall(ctx, "/trends/api/explore", "200")

	rm := collectMetrics(t, reader)

	assert.NotNil(t, findMetric(rm, "trendscope.artifacts"))
	assert.NotNil(t, findMetric(rm, "trendscope.panels"))
	assert.NotNil(t, findMetric(rm, "trendscope.provider.requests"))
}

func TestReportMetrics_NilIsNoop(t *testing.T) {
	t.Parallel()

	var metrics *observability.ReportMetrics

	assert.NotPanics(t, func() {
		ctx := context.Background()
		metrics.RecordQuery(ctx, "trending", "empty", time.Millisecond)
		metrics.RecordArtifact(ctx, "failed")
		metrics.RecordPanel(ctx, "blank")
		metrics.RecordProviderCall(ctx, "/", "500")
	})
}
