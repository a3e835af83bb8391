package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricQueries       = "trendscope.queries"
	metricFetchDuration = "trendscope.fetch.duration"
	metricArtifacts     = "trendscope.artifacts"
	metricPanels        = "trendscope.panels"
	metricProviderCalls = "trendscope.provider.requests"

	attrKind   = "kind"
	attrStatus = "status"
	attrMarker = "marker"
	attrOp     = "op"
)

// durationBucketBoundaries covers 50ms to 120s provider round trips.
var durationBucketBoundaries = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120}

// ReportMetrics holds the instruments recorded during a report run.
// A nil *ReportMetrics is valid and records nothing.
type ReportMetrics struct {
	queries       metric.Int64Counter
	fetchDuration metric.Float64Histogram
	artifacts     metric.Int64Counter
	panels        metric.Int64Counter
	providerCalls metric.Int64Counter
}

// NewReportMetrics creates the report instruments from the given meter.
func NewReportMetrics(mt metric.Meter) (*ReportMetrics, error) {
	queries, err := mt.Int64Counter(metricQueries,
		metric.WithDescription("Queries executed, by report kind and outcome"),
		metric.WithUnit("{query}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricQueries, err)
	}

	fetchDuration, err := mt.Float64Histogram(metricFetchDuration,
		metric.WithDescription("Query fetch duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricFetchDuration, err)
	}

	artifacts, err := mt.Int64Counter(metricArtifacts,
		metric.WithDescription("Artifact writes, by outcome"),
		metric.WithUnit("{file}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricArtifacts, err)
	}

	panels, err := mt.Int64Counter(metricPanels,
		metric.WithDescription("Rendered chart panels, by marker"),
		metric.WithUnit("{panel}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricPanels, err)
	}

	providerCalls, err := mt.Int64Counter(metricProviderCalls,
		metric.WithDescription("HTTP requests sent to the trend provider"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricProviderCalls, err)
	}

	return &ReportMetrics{
		queries:       queries,
		fetchDuration: fetchDuration,
		artifacts:     artifacts,
		panels:        panels,
		providerCalls: providerCalls,
	}, nil
}

// RecordQuery records one fetched query.
func (rm *ReportMetrics) RecordQuery(ctx context.Context, kind, status string, elapsed time.Duration) {
	if rm == nil {
		return
	}

	rm.queries.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrKind, kind),
		attribute.String(attrStatus, status),
	))
	rm.fetchDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attribute.String(attrKind, kind)))
}

// RecordArtifact records one artifact write attempt.
func (rm *ReportMetrics) RecordArtifact(ctx context.Context, status string) {
	if rm == nil {
		return
	}

	rm.artifacts.Add(ctx, 1, metric.WithAttributes(attribute.String(attrStatus, status)))
}

// RecordPanel records one rendered panel.
func (rm *ReportMetrics) RecordPanel(ctx context.Context, marker string) {
	if rm == nil {
		return
	}

	rm.panels.Add(ctx, 1, metric.WithAttributes(attribute.String(attrMarker, marker)))
}

// RecordProviderCall records one HTTP request to the provider.
func (rm *ReportMetrics) RecordProviderCall(ctx context.Context, op, status string) {
	if rm == nil {
		return
	}

	rm.providerCalls.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrOp, op),
		attribute.String(attrStatus, status),
	))
}
