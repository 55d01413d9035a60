//go:build !otel

package ctxmeta_test

import (
	"context"
	"testing"

	"github.com/SahuH/Data-Analytics-Assistant/pkg/ctxmeta"
)

func TestTraceAndSpanIDs_NoOtelBuild_ReturnEmpty(t *testing.T) {
	if id, ok := ctxmeta.TraceIDFromContext(context.Background()); ok || id != "" {
		t.Fatalf("TraceIDFromContext => %q,%v; want \"\", false", id, ok)
	}
	if id, ok := ctxmeta.SpanIDFromContext(context.Background()); ok || id != "" {
		t.Fatalf("SpanIDFromContext => %q,%v; want \"\", false", id, ok)
	}
}
