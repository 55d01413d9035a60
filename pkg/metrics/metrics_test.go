package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/SahuH/Data-Analytics-Assistant/pkg/metrics"
)

func TestMustRegister_IsIdempotent(t *testing.T) {
	// Должно выполняться без паники даже при повторном вызове.
	t.Helper()
	metrics.MustRegister()
	metrics.MustRegister()
}

func TestKafkaCounters_Inc(t *testing.T) {
	metrics.MustRegister()

	beforeConsumed := testutil.ToFloat64(metrics.KafkaMessagesConsumed.WithLabelValues("datasets"))
	beforeProcessed := testutil.ToFloat64(metrics.KafkaMessagesProcessed.WithLabelValues("datasets"))
	beforeFailed := testutil.ToFloat64(metrics.KafkaMessagesFailed.WithLabelValues("datasets"))

	metrics.KafkaMessagesConsumed.WithLabelValues("datasets").Inc()
	metrics.KafkaMessagesProcessed.WithLabelValues("datasets").Inc()
	metrics.KafkaMessagesFailed.WithLabelValues("datasets").Inc()

	if got := testutil.ToFloat64(metrics.KafkaMessagesConsumed.WithLabelValues("datasets")); got != beforeConsumed+1 {
		t.Fatalf("KafkaMessagesConsumed: got=%v want=%v", got, beforeConsumed+1)
	}
	if got := testutil.ToFloat64(metrics.KafkaMessagesProcessed.WithLabelValues("datasets")); got != beforeProcessed+1 {
		t.Fatalf("KafkaMessagesProcessed: got=%v want=%v", got, beforeProcessed+1)
	}
	if got := testutil.ToFloat64(metrics.KafkaMessagesFailed.WithLabelValues("datasets")); got != beforeFailed+1 {
		t.Fatalf("KafkaMessagesFailed: got=%v want=%v", got, beforeFailed+1)
	}
}

func TestToolCalls_CountersByLabel(t *testing.T) {
	metrics.MustRegister()

	okBefore := testutil.ToFloat64(metrics.ToolCalls.WithLabelValues("sales_overview", metrics.OutcomeOK))
	errBefore := testutil.ToFloat64(metrics.ToolCalls.WithLabelValues("sales_overview", metrics.OutcomeError))

	metrics.ToolCalls.WithLabelValues("sales_overview", metrics.OutcomeOK).Inc()
	metrics.ToolCalls.WithLabelValues("sales_overview", metrics.OutcomeOK).Inc()

	if got := testutil.ToFloat64(metrics.ToolCalls.WithLabelValues("sales_overview", metrics.OutcomeOK)); got != okBefore+2 {
		t.Fatalf("ToolCalls(ok): got=%v want=%v", got, okBefore+2)
	}
	if got := testutil.ToFloat64(metrics.ToolCalls.WithLabelValues("sales_overview", metrics.OutcomeError)); got != errBefore {
		t.Fatalf("ToolCalls(error): got=%v want=%v", got, errBefore)
	}
}

func TestToolCallDuration_Observe(t *testing.T) {
	metrics.MustRegister()

	metrics.ToolCallDuration.WithLabelValues("sales_trends").Observe(0.01)
	if n := testutil.CollectAndCount(metrics.ToolCallDuration); n < 1 {
		t.Fatalf("ToolCallDuration: expected at least one series, got %d", n)
	}
}

func TestDatasetRows_GaugeSet(t *testing.T) {
	metrics.MustRegister()

	g := metrics.DatasetRows.WithLabelValues("orders")
	cur := testutil.ToFloat64(g)

	g.Set(cur + 5)
	if got := testutil.ToFloat64(g); got != cur+5 {
		t.Fatalf("DatasetRows after +5: got=%v want=%v", got, cur+5)
	}

	g.Set(cur) // вернуть как было
	if got := testutil.ToFloat64(g); got != cur {
		t.Fatalf("DatasetRows restore: got=%v want=%v", got, cur)
	}
}
