package logger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/SahuH/Data-Analytics-Assistant/pkg/ctxmeta"
	"github.com/SahuH/Data-Analytics-Assistant/pkg/logger"
)

func TestZapLogger_AddsRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := logger.FromZap(zap.New(core), true)

	ctx := ctxmeta.WithRequestID(context.Background(), "rid-1")
	l.Infof(ctx, "tool call name=%s", "sales_overview")
	l.Warnf(context.Background(), "plain")

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, "tool call name=sales_overview", entries[0].Message)
	assert.Equal(t, "rid-1", entries[0].ContextMap()["request_id"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	_, has := entries[1].ContextMap()["request_id"]
	assert.False(t, has)
}

func TestZapLogger_ErrorLevel(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	l := logger.FromZap(zap.New(core), false)

	l.Infof(context.Background(), "dropped")
	l.Errorf(context.Background(), "store population failed err=%v", "boom")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "store population failed err=boom", logs.All()[0].Message)
}

func TestNewZapLogger(t *testing.T) {
	for _, prod := range []bool{true, false} {
		l, cleanup, err := logger.NewZapLogger(prod)
		require.NoError(t, err)
		require.NotNil(t, l.Base())
		require.NotNil(t, l.Sugared())
		_ = cleanup()
	}
}
