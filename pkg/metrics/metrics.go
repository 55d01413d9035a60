package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	KafkaMessagesConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_consumed_total",
			Help: "Number of messages fetched from Kafka",
		},
		[]string{"topic"},
	)
	KafkaMessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_processed_total",
			Help: "Number of messages processed successfully",
		},
		[]string{"topic"},
	)
	KafkaMessagesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_failed_total",
			Help: "Number of messages failed to process",
		},
		[]string{"topic"},
	)
)

// Исходы вызова инструмента (label outcome).
const (
	OutcomeOK          = "ok"
	OutcomeError       = "error"
	OutcomeUnknownTool = "unknown_tool"
)

var (
	ToolCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_tool_calls_total",
			Help: "Number of tool calls by tool and outcome",
		},
		[]string{"tool", "outcome"}, // ok|error|unknown_tool
	)
	ToolCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analytics_tool_call_duration_seconds",
			Help:    "Tool call latency including store access",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"tool"},
	)
)

var (
	DatasetLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_dataset_loads_total",
			Help: "Store population attempts",
		},
		[]string{"outcome"}, // ok|error|skipped
	)
	DatasetRows = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "analytics_dataset_rows",
			Help: "Rows bulk-loaded into the store by table",
		},
		[]string{"table"},
	)
	IngestRows = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_ingest_rows_total",
			Help: "Rows upserted by the live ingest path",
		},
		[]string{"table"},
	)
)

// MCPRequests - запросы JSON-RPC по методу; code = 0 для успешных ответов и уведомлений.
var MCPRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "analytics_mcp_requests_total",
		Help: "MCP JSON-RPC requests by method and error code",
	},
	[]string{"method", "code"},
)

var registerOnce sync.Once

// MustRegister - регистрирует коллекторы в DefaultRegisterer; повторные вызовы ничего не делают.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			KafkaMessagesConsumed, KafkaMessagesProcessed, KafkaMessagesFailed,
			ToolCalls, ToolCallDuration,
			DatasetLoads, DatasetRows, IngestRows,
			MCPRequests,
		)
	})
}
