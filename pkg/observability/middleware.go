package observability

import (
	"fmt"
	"net/http"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// httpStatusClientError is the threshold for failed HTTP responses.
const httpStatusClientError = 400

// Transport is an [http.RoundTripper] that creates a client span per
// outgoing request and counts requests by path and status.
type Transport struct {
	next    http.RoundTripper
	tracer  trace.Tracer
	metrics *ReportMetrics
}

// NewTransport wraps next. A nil next uses [http.DefaultTransport].
func NewTransport(next http.RoundTripper, tracer trace.Tracer, metrics *ReportMetrics) *Transport {
	if next == nil {
		next = http.DefaultTransport
	}

	return &Transport{next: next, tracer: tracer, metrics: metrics}
}

// RoundTrip implements [http.RoundTripper]. Span names use "METHOD /path".
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx, span := t.tracer.Start(req.Context(), req.Method+" "+req.URL.Path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			semconv.HTTPRequestMethodKey.String(req.Method),
			semconv.ServerAddress(req.URL.Hostname()),
		),
	)
	defer span.End()

	out := req.Clone(ctx)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(out.Header))

	resp, err := t.next.RoundTrip(out)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		t.metrics.RecordProviderCall(ctx, req.URL.Path, "error")

		return nil, fmt.Errorf("round trip: %w", err)
	}

	span.SetAttributes(semconv.HTTPResponseStatusCode(resp.StatusCode))

	if resp.StatusCode >= httpStatusClientError {
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
	}

	t.metrics.RecordProviderCall(ctx, req.URL.Path, strconv.Itoa(resp.StatusCode))

	return resp, nil
}
