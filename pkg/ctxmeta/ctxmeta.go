// Package ctxmeta - метаданные вызова в context.Context: request_id (HTTP, сообщение Kafka)
// и session_id (сессия MCP). Транспорты кладут, логгер читает; друг о друге они не знают.
package ctxmeta

import "context"

type ctxKey string

const (
	KeyRequestID ctxKey = "request_id"
	KeySessionID ctxKey = "session_id"
)

// WithRequestID - кладёт request_id; пустое значение или nil-контекст не меняют ctx.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return with(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext - request_id, если он есть и не пуст.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	return get(ctx, KeyRequestID)
}

// WithSessionID - идентификатор MCP-сессии (один на процесс stdio-сервера).
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return with(ctx, KeySessionID, sessionID)
}

func SessionIDFromContext(ctx context.Context) (string, bool) {
	return get(ctx, KeySessionID)
}

func with(ctx context.Context, key ctxKey, v string) context.Context {
	if ctx == nil || v == "" {
		return ctx
	}
	return context.WithValue(ctx, key, v)
}

func get(ctx context.Context, key ctxKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(key).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
