//go:build otel

package ctxmeta_test

import (
	"context"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/SahuH/Data-Analytics-Assistant/pkg/ctxmeta"
)

func TestTraceAndSpanIDs_FromContext_Otel(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	ctx, span := tp.Tracer("test").Start(context.Background(), "tool.sales_overview")
	defer span.End()

	traceID, ok := ctxmeta.TraceIDFromContext(ctx)
	if !ok || traceID != span.SpanContext().TraceID().String() {
		t.Fatalf("traceID=%q ok=%v, want %s", traceID, ok, span.SpanContext().TraceID())
	}
	spanID, ok := ctxmeta.SpanIDFromContext(ctx)
	if !ok || spanID != span.SpanContext().SpanID().String() {
		t.Fatalf("spanID=%q ok=%v, want %s", spanID, ok, span.SpanContext().SpanID())
	}
}

func TestTraceAndSpanIDs_NoSpan_Otel(t *testing.T) {
	if id, ok := ctxmeta.TraceIDFromContext(context.Background()); ok || id != "" {
		t.Fatalf("TraceIDFromContext(background) => %q,%v; want \"\", false", id, ok)
	}
	if id, ok := ctxmeta.SpanIDFromContext(context.Background()); ok || id != "" {
		t.Fatalf("SpanIDFromContext(background) => %q,%v; want \"\", false", id, ok)
	}
}
