package app

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SahuH/Data-Analytics-Assistant/config"
	"github.com/SahuH/Data-Analytics-Assistant/internal/ports"
	"github.com/SahuH/Data-Analytics-Assistant/internal/transport/mcp"
	"github.com/SahuH/Data-Analytics-Assistant/pkg/logger"
	"github.com/SahuH/Data-Analytics-Assistant/pkg/metrics"
)

// MCPApp - процесс MCP: протокол на stdin/stdout, логи в stderr.
type MCPApp struct {
	Logger        ports.Logger
	Server        *mcp.Server
	MetricsServer *http.Server          // nil, если Metrics.Addr пуст
	KafkaConsumer ports.MessageConsumer // nil - инжест выключен
}

// BootstrapMCP - те же хранилище и диспетчер, что у HTTP-процесса, но без gin.
func BootstrapMCP(ctx context.Context, cfg *config.Config) (*MCPApp, Cleanup, error) {
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}

	metrics.MustRegister()
	shutdownTrace := setupTracing(ctx, cfg.Tracing, cfg.MCP.ServerVersion, logg)

	c, err := buildCore(ctx, cfg, logg)
	if err != nil {
		_ = shutdownTrace(context.Background())
		_ = cleanupLogger()
		return nil, func() {}, err
	}

	a := &MCPApp{
		Logger:        logg,
		Server:        mcp.NewServer(c.service, logg, cfg.MCP.ServerName, cfg.MCP.ServerVersion),
		KafkaConsumer: c.consumer,
	}
	if cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		a.MetricsServer = &http.Server{Addr: cfg.Metrics.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	}

	cleanup := func() {
		if terr := shutdownTrace(context.Background()); terr != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", terr)
		}
		c.close()
		_ = cleanupLogger()
	}
	return a, cleanup, nil
}

// Run - обслуживает протокол до EOF на in или отмены ctx.
// Ошибка сервера метрик не останавливает протокол: порт может быть занят другим экземпляром.
func (a *MCPApp) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.MetricsServer != nil {
		go func() {
			if err := a.MetricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.Logger.Warnf(ctx, "metrics server stopped: %v", err)
			}
		}()
		defer func() {
			shCtx, shCancel := context.WithTimeout(context.Background(), defaultGracefulTimeout)
			defer shCancel()
			_ = a.MetricsServer.Shutdown(shCtx)
		}()
	}

	if a.KafkaConsumer != nil {
		go func() {
			if err := a.KafkaConsumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				a.Logger.Warnf(ctx, "kafka consumer stopped: %v", err)
			}
		}()
		defer func() {
			if err := a.KafkaConsumer.Close(); err != nil {
				a.Logger.Warnf(ctx, "kafka consumer close error: %v", err)
			}
		}()
	}

	err := a.Server.Serve(ctx, in, out)
	cancel()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
