package logger

import (
	"context"

	"go.uber.org/zap"

	"github.com/SahuH/Data-Analytics-Assistant/pkg/ctxmeta"
)

// ZapLogger - реализация ports.Logger поверх zap.
// Оба режима пишут в stderr: stdout MCP-сервера занят протоколом.
type ZapLogger struct {
	base   *zap.Logger
	sugar  *zap.SugaredLogger
	isProd bool
}

// NewZapLogger - JSON в проде, консольный формат в разработке.
func NewZapLogger(isProd bool) (*ZapLogger, func() error, error) {
	var (
		logger *zap.Logger
		err    error
	)

	if isProd {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, nil, err
	}

	loggerWrap := FromZap(logger, isProd)
	cleanup := func() error { return loggerWrap.base.Sync() }
	return loggerWrap, cleanup, nil
}

// FromZap - обёртка над готовым *zap.Logger (тесты, встраивание).
func FromZap(logger *zap.Logger, isProd bool) *ZapLogger {
	return &ZapLogger{
		base:   logger,
		sugar:  logger.Sugar(),
		isProd: isProd,
	}
}

// withCtx - добавляет session_id, request_id и trace_id из контекста, если они есть.
func (z *ZapLogger) withCtx(ctx context.Context) *zap.SugaredLogger {
	if ctx == nil {
		return z.sugar
	}
	s := z.sugar
	if sid, ok := ctxmeta.SessionIDFromContext(ctx); ok {
		s = s.With("session_id", sid)
	}
	if rid, ok := ctxmeta.RequestIDFromContext(ctx); ok {
		s = s.With("request_id", rid)
	}
	if tid, ok := ctxmeta.TraceIDFromContext(ctx); ok {
		s = s.With("trace_id", tid)
	}
	return s
}

func (z *ZapLogger) Infof(ctx context.Context, format string, args ...any) {
	z.withCtx(ctx).Infof(format, args...)
}
func (z *ZapLogger) Warnf(ctx context.Context, format string, args ...any) {
	z.withCtx(ctx).Warnf(format, args...)
}
func (z *ZapLogger) Errorf(ctx context.Context, format string, args ...any) {
	z.withCtx(ctx).Errorf(format, args...)
}

func (z *ZapLogger) Base() *zap.Logger           { return z.base }
func (z *ZapLogger) Sugared() *zap.SugaredLogger { return z.sugar }
