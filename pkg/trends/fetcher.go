package trends

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// ErrAdapter wraps every error or panic raised by an Adapter.
var ErrAdapter = errors.New("trend adapter")

const (
	spanFetch     = "trends.fetch"
	attrSubject   = "trends.subject"
	attrKind      = "trends.kind"
	attrTimeframe = "trends.timeframe"
	attrStatus    = "trends.status"
)

// Observer is notified after every fetch.
type Observer func(ctx context.Context, result QueryResult, elapsed time.Duration)

// Fetcher runs one adapter call per subject and converts every outcome,
// including errors and panics, into a QueryResult.
type Fetcher struct {
	adapter  Adapter
	logger   *slog.Logger
	tracer   trace.Tracer
	observer Observer
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithLogger sets the logger used for per-query outcome records.
func WithLogger(logger *slog.Logger) FetcherOption {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithTracer sets the tracer used for per-query spans.
func WithTracer(tracer trace.Tracer) FetcherOption {
	return func(f *Fetcher) {
		if tracer != nil {
			f.tracer = tracer
		}
	}
}

// WithObserver registers a callback invoked after each fetch.
func WithObserver(observer Observer) FetcherOption {
	return func(f *Fetcher) {
		f.observer = observer
	}
}

// NewFetcher creates a Fetcher around a shared adapter handle.
func NewFetcher(adapter Adapter, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		adapter: adapter,
		logger:  slog.Default(),
		tracer:  noop.NewTracerProvider().Tracer(""),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Fetch executes one query against the adapter. It never panics and never
// returns an error: failures are reported as StatusFailure results and
// well-formed empty answers as StatusEmpty.
func (f *Fetcher) Fetch(ctx context.Context, spec QuerySpec) (result QueryResult) {
	start := time.Now()

	ctx, span := f.tracer.Start(ctx, spanFetch, trace.WithAttributes(
		attribute.String(attrSubject, spec.Subject),
		attribute.String(attrKind, spec.Kind.String()),
		attribute.String(attrTimeframe, spec.Timeframe),
	))

	defer func() {
		if r := recover(); r != nil {
			result = Failure(spec, fmt.Errorf("%w: panic: %v", ErrAdapter, r))
		}

		span.SetAttributes(attribute.String(attrStatus, result.Status.String()))

		if result.Status == StatusFailure {
			span.SetStatus(codes.Error, result.Reason)
		}

		span.End()

		elapsed := time.Since(start)
		f.logOutcome(ctx, result, elapsed)

		if f.observer != nil {
			f.observer(ctx, result, elapsed)
		}
	}()

	resp, err := f.adapter.Query(ctx, spec.Query())
	if err != nil {
		return Failure(spec, fmt.Errorf("%w: %w", ErrAdapter, err))
	}

	return classify(spec, resp)
}

// classify turns a raw adapter response into Success or Empty.
// A missing subject column and zero rows are both Empty.
func classify(spec QuerySpec, resp *Response) QueryResult {
	if resp == nil {
		return Empty(spec)
	}

	switch spec.Kind {
	case KindRelatedQueries, KindTopicBreakdown:
		if len(resp.Sections) == 0 {
			return Empty(spec)
		}

		sections := make([]Section, 0, len(TopicTypes))

		for _, tt := range TopicTypes {
			table, ok := resp.Sections[tt]
			if !ok {
				continue
			}

			status := StatusSuccess
			if table.Len() == 0 {
				status = StatusEmpty
			}

			sections = append(sections, Section{Type: tt, Status: status, Table: table})
		}

		if len(sections) == 0 {
			return Empty(spec)
		}

		return QueryResult{Spec: spec, Status: StatusSuccess, Sections: sections}
	case KindRegionalInterest, KindTimeSeries, KindPlatformInterest:
		if resp.Table.Len() == 0 || !resp.Table.HasColumn(spec.Subject) {
			return Empty(spec)
		}

		return Success(spec, resp.Table)
	case KindTrendingTopics:
		if resp.Table.Len() == 0 {
			return Empty(spec)
		}

		return Success(spec, resp.Table)
	default:
		return Failure(spec, fmt.Errorf("%w: unsupported kind %s", ErrAdapter, spec.Kind))
	}
}

func (f *Fetcher) logOutcome(ctx context.Context, result QueryResult, elapsed time.Duration) {
	attrs := []slog.Attr{
		slog.String("subject", result.Spec.Subject),
		slog.String("kind", result.Spec.Kind.String()),
		slog.String("status", result.Status.String()),
		slog.Duration("elapsed", elapsed),
	}

	switch result.Status {
	case StatusFailure:
		attrs = append(attrs, slog.String("error", result.Reason))
		f.logger.LogAttrs(ctx, slog.LevelWarn, "query failed", attrs...)
	case StatusEmpty:
		f.logger.LogAttrs(ctx, slog.LevelInfo, "query returned no data", attrs...)
	case StatusSuccess:
		attrs = append(attrs, slog.Int("rows", result.Table.Len()))
		f.logger.LogAttrs(ctx, slog.LevelDebug, "query succeeded", attrs...)
	}
}
