package observability

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

const (
	attrTraceID = "trace_id"
	attrSpanID  = "span_id"
	attrService = "service"
	attrRunID   = "run_id"
)

type logAttrsKey struct{}

// ContextWithLogAttrs returns a context whose log records carry attrs in
// addition to any attributes already attached to ctx.
func ContextWithLogAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	if len(attrs) == 0 {
		return ctx
	}

	prev, _ := ctx.Value(logAttrsKey{}).([]slog.Attr)
	merged := make([]slog.Attr, 0, len(prev)+len(attrs))
	merged = append(merged, prev...)
	merged = append(merged, attrs...)

	return context.WithValue(ctx, logAttrsKey{}, merged)
}

// TracingHandler is an [slog.Handler] that stamps every record with the
// run it belongs to, the active span and any attributes attached through
// [ContextWithLogAttrs].
type TracingHandler struct {
	inner slog.Handler
}

// NewTracingHandler wraps inner. The service name and run id sit at the top
// level even when groups are used.
func NewTracingHandler(inner slog.Handler, service, runID string) *TracingHandler {
	attrs := []slog.Attr{slog.String(attrService, service)}

	if runID != "" {
		attrs = append(attrs, slog.String(attrRunID, runID))
	}

	return &TracingHandler{
		inner: inner.WithAttrs(attrs),
	}
}

// Enabled delegates to the inner handler.
func (th *TracingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return th.inner.Enabled(ctx, level)
}

// Handle adds context attributes and span ids, then delegates.
func (th *TracingHandler) Handle(ctx context.Context, record slog.Record) error {
	if attrs, ok := ctx.Value(logAttrsKey{}).([]slog.Attr); ok {
		record.AddAttrs(attrs...)
	}

	sc := trace.SpanContextFromContext(ctx)
	if sc.IsValid() {
		record.AddAttrs(
			slog.String(attrTraceID, sc.TraceID().String()),
			slog.String(attrSpanID, sc.SpanID().String()),
		)
	}

	err := th.inner.Handle(ctx, record)
	if err != nil {
		return fmt.Errorf("tracing handler: %w", err)
	}

	return nil
}

// WithAttrs returns a new TracingHandler with additional attributes on the inner handler.
func (th *TracingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TracingHandler{
		inner: th.inner.WithAttrs(attrs),
	}
}

// WithGroup returns a new TracingHandler with a group prefix on the inner handler.
func (th *TracingHandler) WithGroup(name string) slog.Handler {
	return &TracingHandler{
		inner: th.inner.WithGroup(name),
	}
}
