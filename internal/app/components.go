package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SahuH/Data-Analytics-Assistant/config"
	"github.com/SahuH/Data-Analytics-Assistant/internal/dataset"
	"github.com/SahuH/Data-Analytics-Assistant/internal/kafka"
	"github.com/SahuH/Data-Analytics-Assistant/internal/ports"
	"github.com/SahuH/Data-Analytics-Assistant/internal/repo/postgres"
	"github.com/SahuH/Data-Analytics-Assistant/internal/repo/sqlite"
	"github.com/SahuH/Data-Analytics-Assistant/internal/usecase"
	"github.com/SahuH/Data-Analytics-Assistant/pkg/telemetry"
	"github.com/SahuH/Data-Analytics-Assistant/pkg/validate"
)

// core - то, что общее у HTTP- и MCP-процессов: хранилище, диспетчер, необязательный консьюмер.
type core struct {
	service  *usecase.AnalyticsService
	consumer ports.MessageConsumer // nil, если Kafka выключена
	closers  []func()
}

func (c *core) close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// buildCore - хранилище (с миграциями), источник набора, диспетчер и Kafka-консьюмер.
// При включённой Kafka хранилище наполняется сразу: иначе первая пачка из топика
// пометила бы его наполненным и исходный набор не загрузился бы никогда.
func buildCore(ctx context.Context, cfg *config.Config, logg ports.Logger) (*core, error) {
	c := &core{}

	analyticsStore, dataStore, closeStore, err := openStore(ctx, cfg.Store, logg)
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, closeStore)

	c.service = usecase.NewAnalyticsService(analyticsStore, dataStore, newSource(cfg.Dataset), logg)

	if cfg.Dataset.Preload || cfg.Kafka.Enabled {
		if err := c.service.EnsureReady(ctx); err != nil {
			if cfg.Kafka.Enabled {
				c.close()
				return nil, fmt.Errorf("preload before ingest: %w", err)
			}
			logg.Warnf(ctx, "preload failed, will retry on first tool call: %v", err)
		}
	}

	if cfg.Kafka.Enabled {
		kafkaCfg := kafka.ConsumerConfig{
			Brokers:        cfg.Kafka.Brokers,
			GroupID:        cfg.Kafka.GroupID,
			Topic:          cfg.Kafka.Topic,
			StartOffset:    cfg.Kafka.StartOffset,
			ProcessTimeout: cfg.Kafka.ProcessTimeout,
			RetryInitial:   cfg.Kafka.RetryInitial,
			RetryMax:       cfg.Kafka.RetryMax,
		}
		if err := kafkaCfg.Validate(); err != nil {
			c.close()
			return nil, err
		}
		ingest := usecase.NewIngestService(dataStore, logg, validate.NewBatchValidator())
		consumer := kafka.NewConsumer(&kafkaCfg, ingest, logg)
		c.consumer = consumer
		c.closers = append(c.closers, func() {
			if err := consumer.Close(); err != nil {
				logg.Warnf(ctx, "kafka consumer close error: %v", err)
			}
		})
	}

	return c, nil
}

// openStore - sqlite (файл) или postgres (пул); схема доводится миграциями goose.
func openStore(ctx context.Context, cfg config.Store, logg ports.Logger) (ports.AnalyticsStore, ports.DatasetStore, func(), error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		st := sqlite.New(cfg.DSN)
		applied, err := st.Migrate(ctx)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("sqlite migrate: %w", err)
		}
		logg.Infof(ctx, "store ready driver=sqlite path=%s migrations_applied=%d", cfg.DSN, applied)
		return st, st, func() {}, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DSN, cfg.MaxConns)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("postgres pool: %w", err)
		}
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, nil, fmt.Errorf("postgres migrate: %w", err)
		}
		logg.Infof(ctx, "store ready driver=postgres max_conns=%d migrations_applied=%d", cfg.MaxConns, applied)
		st := postgres.NewStore(pool)
		return st, st, pool.Close, nil
	}
	return nil, nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}

func newSource(cfg config.Dataset) ports.DatasetSource {
	if cfg.Source == config.SourceCSV {
		return dataset.NewCSVSource(cfg.Dir)
	}
	return dataset.NewSampleSource(dataset.SampleConfig{
		Seed:       cfg.Seed,
		Orders:     cfg.Orders,
		Products:   cfg.Products,
		OrderItems: cfg.OrderItems,
		Customers:  cfg.Customers,
	})
}

// setupTracing - при выключенном трейсинге или ошибке настройки возвращает no-op.
func setupTracing(ctx context.Context, cfg config.Tracing, version string, logg ports.Logger) func(context.Context) error {
	noop := func(context.Context) error { return nil }
	if !cfg.Enabled {
		return noop
	}
	shutdown, err := telemetry.SetupTracing(ctx, telemetry.Options{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: version,
		Endpoint:       cfg.Endpoint,
		SampleRatio:    cfg.SampleRatio,
	})
	if err != nil {
		logg.Warnf(ctx, "failed to setup tracing: %v", err)
		return noop
	}
	logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f", cfg.ServiceName, cfg.Endpoint, cfg.SampleRatio)
	return shutdown
}

// applyGinMode - устанавливает режим Gin по строке;
// неизвестное значение: debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}
