package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/SahuH/Data-Analytics-Assistant/internal/analytics"
	"github.com/SahuH/Data-Analytics-Assistant/internal/domain"
	"github.com/SahuH/Data-Analytics-Assistant/internal/ports"
	"github.com/SahuH/Data-Analytics-Assistant/pkg/metrics"
)

var _ ports.ToolService = (*AnalyticsService)(nil)

const tracerName = "github.com/SahuH/Data-Analytics-Assistant/internal/usecase"

// AnalyticsService - диспетчер пяти аналитических инструментов.
// При первом вызове наполняет хранилище из источника; на каждый вызов открывает одну сессию.
type AnalyticsService struct {
	store  ports.AnalyticsStore // аналитические запросы
	data   ports.DatasetStore   // первичное наполнение
	source ports.DatasetSource  // откуда брать строки
	log    ports.Logger
	tracer trace.Tracer
	now    func() time.Time

	mu    sync.Mutex
	ready bool
}

// NewAnalyticsService - DI-конструктор.
func NewAnalyticsService(
	store ports.AnalyticsStore,
	data ports.DatasetStore,
	source ports.DatasetSource,
	log ports.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		store:  store,
		data:   data,
		source: source,
		log:    log,
		tracer: otel.Tracer(tracerName),
		now:    time.Now,
	}
}

// WithClock - подменяет источник текущего времени (для фильтров date_range).
func (s *AnalyticsService) WithClock(now func() time.Time) *AnalyticsService {
	s.now = now
	return s
}

// ListTools - каталог инструментов; хранилище не трогает.
func (s *AnalyticsService) ListTools() []domain.ToolDescriptor {
	return analytics.Tools()
}

// Ready - хранилище уже наполнено в этом процессе.
func (s *AnalyticsService) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// EnsureReady - наполняет хранилище, если в нём ещё нет заказов.
// Конкурентные вызовы сериализуются; после ошибки следующий вызов пробует снова.
func (s *AnalyticsService) EnsureReady(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return nil
	}
	if err := s.populate(ctx); err != nil {
		metrics.DatasetLoads.WithLabelValues(metrics.OutcomeError).Inc()
		s.log.Errorf(ctx, "store population failed err=%v", err)
		return fmt.Errorf("%w: %w", domain.ErrDataUnavailable, err)
	}
	s.ready = true
	return nil
}

func (s *AnalyticsService) populate(ctx context.Context) error {
	populated, err := s.data.Populated(ctx)
	if err != nil {
		return fmt.Errorf("check store: %w", err)
	}
	if populated {
		metrics.DatasetLoads.WithLabelValues("skipped").Inc()
		s.log.Infof(ctx, "store already populated, load skipped")
		return nil
	}

	start := time.Now()
	ds, err := s.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	if err := s.data.Replace(ctx, ds); err != nil {
		return fmt.Errorf("replace dataset: %w", err)
	}

	counts := ds.Counts()
	for table, n := range counts {
		metrics.DatasetRows.WithLabelValues(table).Set(float64(n))
	}
	metrics.DatasetLoads.WithLabelValues(metrics.OutcomeOK).Inc()
	s.log.Infof(ctx, "store populated rows=%v took=%s", counts, time.Since(start))
	return nil
}

// CallTool - выполняет инструмент по имени.
// Ошибки не пробрасываются: они превращаются в ToolResult{IsError: true, Text: "Error: ..."}.
// Неизвестное имя - обычный результат {"error": "Unknown tool: <name>"}.
func (s *AnalyticsService) CallTool(ctx context.Context, name string, args map[string]any) (res domain.ToolResult) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "tool."+name, trace.WithAttributes(attribute.String("tool.name", name)))

	label, outcome := name, metrics.OutcomeOK
	defer func() {
		if r := recover(); r != nil {
			s.log.Errorf(ctx, "tool panic name=%s panic=%v", name, r)
			res = errorResult(fmt.Errorf("internal error: %v", r))
		}
		if res.IsError {
			outcome = metrics.OutcomeError
			span.SetStatus(codes.Error, res.Text)
		}
		span.SetAttributes(attribute.String("tool.outcome", outcome))
		span.End()

		metrics.ToolCalls.WithLabelValues(label, outcome).Inc()
		metrics.ToolCallDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
		s.log.Infof(ctx, "tool call name=%s outcome=%s took=%s", name, outcome, time.Since(start))
	}()

	if err := s.EnsureReady(ctx); err != nil {
		span.RecordError(err)
		return errorResult(err)
	}

	tool, ok := analytics.Descriptor(name)
	if !ok {
		// Имя от клиента не попадает в label: иначе кардинальность метрики не ограничена.
		label, outcome = "unknown", metrics.OutcomeUnknownTool
		return render(domain.NewRow("error", "Unknown tool: "+name))
	}

	if err := analytics.ValidateArguments(tool, args); err != nil {
		s.log.Warnf(ctx, "invalid arguments tool=%s err=%v", name, err)
		return errorResult(err)
	}

	payload, err := s.execute(ctx, name, args)
	if err != nil {
		span.RecordError(err)
		if !errors.Is(err, domain.ErrInvalidArgument) {
			s.log.Errorf(ctx, "tool failed name=%s err=%v", name, err)
		}
		return errorResult(err)
	}
	return render(payload)
}

// execute - одна сессия хранилища на вызов; закрывается до возврата.
func (s *AnalyticsService) execute(ctx context.Context, name string, args map[string]any) (domain.Row, error) {
	sess, err := s.store.Open(ctx)
	if err != nil {
		return domain.Row{}, fmt.Errorf("open session: %w", err)
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			s.log.Warnf(ctx, "session close err=%v", cerr)
		}
	}()

	d := s.store.Dialect()
	switch name {
	case analytics.ToolSalesOverview:
		return s.salesOverview(ctx, sess, d, args)
	case analytics.ToolProductAnalysis:
		return productAnalysis(ctx, sess, d, args)
	case analytics.ToolCustomerInsights:
		return customerInsights(ctx, sess, d, args)
	case analytics.ToolSalesTrends:
		return salesTrends(ctx, sess, d, args)
	case analytics.ToolCustomQuery:
		return customQuery(ctx, sess, d, args)
	}
	return domain.Row{}, fmt.Errorf("tool %s has no handler", name)
}

func (s *AnalyticsService) salesOverview(ctx context.Context, sess ports.QuerySession, d ports.SQLDialect, args map[string]any) (domain.Row, error) {
	a, err := analytics.DecodeSalesOverview(args)
	if err != nil {
		return domain.Row{}, err
	}

	plans := analytics.SalesOverviewPlans(d, a.DateRange, s.now())
	summary, err := plans.Summary.Run(ctx, sess)
	if err != nil {
		return domain.Row{}, err
	}
	status, err := plans.Status.Run(ctx, sess)
	if err != nil {
		return domain.Row{}, err
	}
	states, err := plans.TopStates.Run(ctx, sess)
	if err != nil {
		return domain.Row{}, err
	}

	metricsRow := domain.Row{}
	if len(summary) > 0 {
		metricsRow = summary[0]
	}
	return domain.NewRow(
		"period", a.DateRange,
		"summary_metrics", metricsRow,
		"status_breakdown", status,
		"top_states", states,
		"results", summary,
		"insights", analytics.SalesInsights(metricsRow),
	), nil
}

func productAnalysis(ctx context.Context, sess ports.QuerySession, d ports.SQLDialect, args map[string]any) (domain.Row, error) {
	a, err := analytics.DecodeProduct(args)
	if err != nil {
		return domain.Row{}, err
	}
	plan, err := analytics.ProductPlan(d, a.AnalysisType, a.Limit)
	if err != nil {
		return domain.Row{}, err
	}
	rows, err := plan.Run(ctx, sess)
	if err != nil {
		return domain.Row{}, err
	}
	return domain.NewRow(
		"analysis_type", string(a.AnalysisType),
		"limit", a.Limit,
		"results", rows,
		"insights", analytics.ProductInsights(a.AnalysisType, rows),
	), nil
}

func customerInsights(ctx context.Context, sess ports.QuerySession, d ports.SQLDialect, args map[string]any) (domain.Row, error) {
	a, err := analytics.DecodeCustomer(args)
	if err != nil {
		return domain.Row{}, err
	}
	plan, err := analytics.CustomerPlan(d, a.InsightType, a.Limit)
	if err != nil {
		return domain.Row{}, err
	}
	rows, err := plan.Run(ctx, sess)
	if err != nil {
		return domain.Row{}, err
	}
	return domain.NewRow(
		"insight_type", string(a.InsightType),
		"limit", a.Limit,
		"results", rows,
		"insights", analytics.CustomerInsights(a.InsightType, rows),
	), nil
}

// salesTrends - period возвращается как есть, на выборку не влияет.
func salesTrends(ctx context.Context, sess ports.QuerySession, d ports.SQLDialect, args map[string]any) (domain.Row, error) {
	a, err := analytics.DecodeTrend(args)
	if err != nil {
		return domain.Row{}, err
	}
	plan, err := analytics.TrendPlan(d, a.TrendType)
	if err != nil {
		return domain.Row{}, err
	}
	rows, err := plan.Run(ctx, sess)
	if err != nil {
		return domain.Row{}, err
	}
	return domain.NewRow(
		"trend_type", string(a.TrendType),
		"period", a.Period,
		"results", rows,
		"insights", analytics.TrendInsights(a.TrendType, rows),
	), nil
}

// customQuery - filters возвращаются в ответе, но на выборку не влияют.
func customQuery(ctx context.Context, sess ports.QuerySession, d ports.SQLDialect, args map[string]any) (domain.Row, error) {
	a, err := analytics.DecodeCustom(args)
	if err != nil {
		return domain.Row{}, err
	}
	plan, route := analytics.CustomPlan(d, a.QueryDescription)
	rows, err := plan.Run(ctx, sess)
	if err != nil {
		return domain.Row{}, err
	}
	return domain.NewRow(
		"query_description", a.QueryDescription,
		"filters_applied", a.Filters,
		"matched_query", string(route),
		"results", rows,
		"insights", []string{},
		"interpretation", "Analysis for: "+a.QueryDescription,
	), nil
}

// render - успешный результат: JSON с отступом в два пробела.
func render(payload domain.Row) domain.ToolResult {
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}
	return domain.ToolResult{Payload: payload, Text: string(b)}
}

func errorResult(err error) domain.ToolResult {
	return domain.ToolResult{Text: "Error: " + err.Error(), IsError: true}
}
