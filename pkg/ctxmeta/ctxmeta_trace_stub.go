//go:build !otel || gopls

package ctxmeta

import "context"

// Сборка без тега otel: trace_id/span_id в логах не выводятся.
func TraceIDFromContext(context.Context) (string, bool) { return "", false }
func SpanIDFromContext(context.Context) (string, bool)  { return "", false }
