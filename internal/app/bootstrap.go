package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/SahuH/Data-Analytics-Assistant/config"
	"github.com/SahuH/Data-Analytics-Assistant/internal/ports"
	rest "github.com/SahuH/Data-Analytics-Assistant/internal/transport/http"
	"github.com/SahuH/Data-Analytics-Assistant/pkg/logger"
	"github.com/SahuH/Data-Analytics-Assistant/pkg/metrics"
)

const defaultGracefulTimeout = 5 * time.Second

// App - собранный HTTP-процесс и его фоновые компоненты.
type App struct {
	Logger          ports.Logger          // логгер
	HTTPServer      *http.Server          // HTTP-сервер
	KafkaConsumer   ports.MessageConsumer // консьюмер пачек; nil - инжест выключен
	gracefulTimeout time.Duration         // время ожидания завершения HTTP-сервера
}

// Cleanup - функция освобождения ресурсов.
type Cleanup func()

// Bootstrap - собирает зависимости HTTP-процесса и возвращает приложение, функцию очистки и ошибку.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}

	metrics.MustRegister()
	shutdownTrace := setupTracing(ctx, cfg.Tracing, cfg.MCP.ServerVersion, logg)

	c, err := buildCore(ctx, cfg, logg)
	if err != nil {
		_ = shutdownTrace(context.Background())
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
		return nil, func() {}, err
	}

	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	// Имя сервиса для otelgin (только при включённом трейсинге).
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	httpHandler := rest.NewHandler(c.service, logg, cfg.HTTP.HandlerTimeout)
	router := rest.NewRouter(httpHandler, otelServiceName, cfg.HTTP.StaticDir)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		KafkaConsumer:   c.consumer,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	// Очистка ресурсов (в обратном порядке).
	cleanup := func() {
		if terr := shutdownTrace(context.Background()); terr != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", terr)
		}
		c.close()
		if cerr := cleanupLogger(); cerr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cerr)
		}
	}

	return app, cleanup, nil
}

// Run - запускает HTTP-сервер и консьюмера; ждёт отмены контекста или ошибки и останавливает их.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	if a.KafkaConsumer != nil {
		go func() {
			a.Logger.Infof(ctx, "kafka consumer starting")
			if err := a.KafkaConsumer.Run(ctx); err != nil {
				errCh <- err
			}
		}()
	}

	go func() {
		a.Logger.Infof(ctx, "http server starting (addr=%s)", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case err := <-errCh:
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			a.Logger.Infof(ctx, "background component stopped: %v", err)
		} else {
			a.Logger.Warnf(ctx, "background error: %v", err)
			runErr = err
		}
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = defaultGracefulTimeout
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "http server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "http server stopped gracefully")
	}

	if a.KafkaConsumer != nil {
		if err := a.KafkaConsumer.Close(); err != nil {
			a.Logger.Warnf(ctx, "kafka consumer close error: %v", err)
		}
	}

	a.Logger.Infof(ctx, "service stopped")
	return runErr
}
