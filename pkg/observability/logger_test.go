package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/Sumatoshi-tech/trendscope/pkg/observability"
)

func TestTracingHandler_InjectsSpanContext(t *testing.T) {
	t.Parallel()

	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { require.NoError(t, tp.Shutdown(context.Background())) })

	var buf bytes.Buffer

	logger := slog.New(observability.NewTracingHandler(slog.NewJSONHandler(&buf, nil), "trendscope", "run-1"))

	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	logger.InfoContext(ctx, "inside span")
	span.End()

	out := buf.String()
	assert.Contains(t, out, `"trace_id":"`+span.SpanContext().TraceID().String()+`"`)
	assert.Contains(t, out, `"span_id":"`+span.SpanContext().SpanID().String()+`"`)
	assert.Contains(t, out, `"run_id":"run-1"`)
}

func TestTracingHandler_NoSpan(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := slog.New(observability.NewTracingHandler(slog.NewJSONHandler(&buf, nil), "trendscope", ""))
	logger.WithGroup("query").Info("outside span", "subject", "Go")

	out := buf.String()
	assert.NotContains(t, out, "trace_id")
	assert.NotContains(t, out, "run_id")
	assert.Contains(t, out, `"service":"trendscope"`)
	assert.Contains(t, out, `"query":{"subject":"Go"}`)
}

func TestTracingHandler_ContextAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := slog.New(observability.NewTracingHandler(slog.NewJSONHandler(&buf, nil), "trendscope", "run-2"))

	ctx := observability.ContextWithLogAttrs(context.Background(), slog.Int("page", 3))
	ctx = observability.ContextWithLogAttrs(ctx, slog.Int("slot", 1))
	logger.InfoContext(ctx, "panel drawn")

	out := buf.String()
	assert.Contains(t, out, `"page":3`)
	assert.Contains(t, out, `"slot":1`)

	buf.Reset()
	logger.InfoContext(context.Background(), "plain")
	assert.NotContains(t, buf.String(), `"page"`)
}

func TestContextWithLogAttrs_NoAttrs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.Equal(t, ctx, observability.ContextWithLogAttrs(ctx))
}
