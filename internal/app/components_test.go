package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SahuH/Data-Analytics-Assistant/config"
	"github.com/SahuH/Data-Analytics-Assistant/internal/dataset"
)

type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Store: config.Store{Driver: config.DriverSQLite, DSN: filepath.Join(t.TempDir(), "app.db")},
		Dataset: config.Dataset{
			Source: config.SourceSample, Seed: 3,
			Orders: 60, Products: 12, OrderItems: 90, Customers: 20,
		},
		MCP: config.MCP{ServerName: "ecommerce-analytics", ServerVersion: "1.0.0"},
	}
}

func TestBuildCore_SQLiteLazyByDefault(t *testing.T) {
	cfg := testConfig(t)

	c, err := buildCore(context.Background(), cfg, nopLogger{})
	require.NoError(t, err)
	defer c.close()

	assert.Nil(t, c.consumer)
	assert.False(t, c.service.Ready(), "store must be populated on first call, not at startup")

	res := c.service.CallTool(context.Background(), "sales_overview", map[string]any{})
	require.False(t, res.IsError, res.Text)
	assert.True(t, c.service.Ready())
}

func TestBuildCore_Preload(t *testing.T) {
	cfg := testConfig(t)
	cfg.Dataset.Preload = true

	c, err := buildCore(context.Background(), cfg, nopLogger{})
	require.NoError(t, err)
	defer c.close()

	assert.True(t, c.service.Ready())
}

func TestBuildCore_PreloadFailureIsNotFatalWithoutKafka(t *testing.T) {
	cfg := testConfig(t)
	cfg.Dataset.Preload = true
	cfg.Dataset.Source = config.SourceCSV
	cfg.Dataset.Dir = filepath.Join(t.TempDir(), "missing")

	c, err := buildCore(context.Background(), cfg, nopLogger{})
	require.NoError(t, err)
	defer c.close()

	assert.False(t, c.service.Ready())
}

func TestBuildCore_KafkaRequiresSuccessfulPreload(t *testing.T) {
	cfg := testConfig(t)
	cfg.Dataset.Source = config.SourceCSV
	cfg.Dataset.Dir = filepath.Join(t.TempDir(), "missing")
	cfg.Kafka = config.Kafka{Enabled: true, Brokers: []string{"localhost:9092"}, Topic: "t", GroupID: "g"}

	_, err := buildCore(context.Background(), cfg, nopLogger{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "preload before ingest")
}

func TestBuildCore_KafkaConfigValidated(t *testing.T) {
	cfg := testConfig(t)
	cfg.Kafka = config.Kafka{Enabled: true, Topic: "t", GroupID: "g"}

	_, err := buildCore(context.Background(), cfg, nopLogger{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kafka: brokers are empty")
}

func TestBuildCore_KafkaEnabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Kafka = config.Kafka{Enabled: true, Brokers: []string{"localhost:9092"}, Topic: "t", GroupID: "g", StartOffset: "first"}

	c, err := buildCore(context.Background(), cfg, nopLogger{})
	require.NoError(t, err)
	defer c.close()

	assert.NotNil(t, c.consumer)
	assert.True(t, c.service.Ready(), "kafka ingest forces preload")
}

func TestBuildCore_CSVSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, dataset.WriteCSV(dir, dataset.Generate(dataset.SampleConfig{Seed: 1, Orders: 20, Products: 5, OrderItems: 30, Customers: 10})))

	cfg := testConfig(t)
	cfg.Dataset.Source = config.SourceCSV
	cfg.Dataset.Dir = dir

	c, err := buildCore(context.Background(), cfg, nopLogger{})
	require.NoError(t, err)
	defer c.close()

	res := c.service.CallTool(context.Background(), "custom_query", map[string]any{"query_description": "summary please"})
	require.False(t, res.IsError, res.Text)
	assert.Contains(t, res.Text, `"Total Orders"`)
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	_, _, _, err := openStore(context.Background(), config.Store{Driver: "mysql", DSN: "x"}, nopLogger{})
	require.Error(t, err)
}

func TestNewSource(t *testing.T) {
	_, ok := newSource(config.Dataset{Source: config.SourceCSV, Dir: "d"}).(*dataset.CSVSource)
	assert.True(t, ok)
	_, ok = newSource(config.Dataset{Source: config.SourceSample}).(*dataset.SampleSource)
	assert.True(t, ok)
}
