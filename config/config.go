package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Prefix - префикс переменных окружения: ANALYTICS_HTTP_ADDR, ANALYTICS_STORE_DRIVER, ...
const Prefix = "ANALYTICS"

// Драйверы хранилища и источники набора данных.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	SourceSample = "sample"
	SourceCSV    = "csv"
)

type HTTP struct {
	Addr              string        `default:":8080" envconfig:"ADDR"`
	GinMode           string        `default:"debug" envconfig:"GIN_MODE"`
	StaticDir         string        `envconfig:"STATIC_DIR"`
	ReadTimeout       time.Duration `default:"10s" envconfig:"READ_TIMEOUT"`
	WriteTimeout      time.Duration `default:"30s" envconfig:"WRITE_TIMEOUT"`
	ReadHeaderTimeout time.Duration `default:"5s" envconfig:"READ_HEADER_TIMEOUT"`
	IdleTimeout       time.Duration `default:"60s" envconfig:"IDLE_TIMEOUT"`
	// HandlerTimeout - ограничение на один вызов инструмента (первый вызов наполняет хранилище).
	HandlerTimeout  time.Duration `default:"20s" envconfig:"HANDLER_TIMEOUT"`
	GracefulTimeout time.Duration `default:"10s" envconfig:"GRACEFUL_TIMEOUT"`
}

type Metrics struct {
	Addr string `default:":2112" envconfig:"ADDR"`
}

type Tracing struct {
	Enabled     bool    `default:"false" envconfig:"OTEL_ENABLED"`
	ServiceName string  `default:"ecommerce-analytics" envconfig:"OTEL_SERVICE_NAME"`
	Endpoint    string  `default:"jaeger:4318" envconfig:"OTEL_ENDPOINT"`
	SampleRatio float64 `default:"1" envconfig:"OTEL_SAMPLE_RATIO"`
}

type Store struct {
	Driver string `default:"sqlite" envconfig:"DRIVER"`
	// DSN - путь к файлу для sqlite либо строка подключения для postgres.
	DSN      string `default:"ecommerce_data.db" envconfig:"DSN"`
	MaxConns int32  `default:"10" envconfig:"MAX_CONNS"`
}

type Dataset struct {
	Source     string `default:"sample" envconfig:"SOURCE"`
	Dir        string `default:"data" envconfig:"DIR"`
	Seed       uint64 `default:"42" envconfig:"SEED"`
	Orders     int    `default:"5000" envconfig:"ORDERS"`
	Products   int    `default:"500" envconfig:"PRODUCTS"`
	OrderItems int    `default:"8000" envconfig:"ORDER_ITEMS"`
	Customers  int    `default:"1000" envconfig:"CUSTOMERS"`
	// Preload - наполнить хранилище при старте, а не при первом вызове инструмента.
	Preload bool `default:"false" envconfig:"PRELOAD"`
}

type Kafka struct {
	Enabled        bool          `default:"false" envconfig:"ENABLED"`
	Brokers        []string      `default:"kafka:9092" envconfig:"BROKERS"`
	Topic          string        `default:"sales-batches" envconfig:"TOPIC"`
	GroupID        string        `default:"analytics-ingest" envconfig:"GROUP_ID"`
	StartOffset    string        `default:"last" envconfig:"START_OFFSET"`
	ProcessTimeout time.Duration `default:"10s" envconfig:"PROCESS_TIMEOUT"`
	RetryInitial   time.Duration `default:"1s" envconfig:"RETRY_INITIAL"`
	RetryMax       time.Duration `default:"30s" envconfig:"RETRY_MAX"`
}

type Logger struct {
	IsProd bool `default:"false" envconfig:"IS_PROD"`
}

type MCP struct {
	ServerName    string `default:"ecommerce-analytics" envconfig:"SERVER_NAME"`
	ServerVersion string `default:"1.0.0" envconfig:"SERVER_VERSION"`
}

type Config struct {
	HTTP    HTTP
	Metrics Metrics
	Tracing Tracing
	Store   Store
	Dataset Dataset
	Kafka   Kafka
	Logger  Logger
	MCP     MCP
}

// Load - конфигурация из окружения с префиксом ANALYTICS.
func Load() (Config, error) { return LoadWithPrefix(Prefix) }

// LoadWithPrefix - то же с произвольным префиксом (тесты используют свой, чтобы не пересекаться).
func LoadWithPrefix(prefix string) (Config, error) {
	var c Config
	if err := envconfig.Process(prefix, &c); err != nil {
		return Config{}, err
	}
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	c.Dataset.Source = strings.ToLower(strings.TrimSpace(c.Dataset.Source))
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate - перечислимые значения, которые envconfig не проверяет сам.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("config: unknown store driver %q", c.Store.Driver)
	}
	switch c.Dataset.Source {
	case SourceSample, SourceCSV:
	default:
		return fmt.Errorf("config: unknown dataset source %q", c.Dataset.Source)
	}
	if c.Store.DSN == "" {
		return fmt.Errorf("config: store dsn is empty")
	}
	return nil
}
