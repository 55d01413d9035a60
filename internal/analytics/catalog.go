package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SahuH/Data-Analytics-Assistant/internal/domain"
	"github.com/SahuH/Data-Analytics-Assistant/internal/ports"
)

// queryDef - описание одного подтипа: текст запроса, принимает ли он limit,
// и обработка строк после SQL.
type queryDef struct {
	build   func(d ports.SQLDialect) string
	limited bool
	post    postPass
}

// Plan - готовый к выполнению запрос (плейсхолдеры уже в синтаксисе диалекта).
type Plan struct {
	Name string
	SQL  string
	Args []any
	post postPass
}

// Run - выполняет запрос в сессии и применяет обработку строк.
// Пустой результат - пустой срез, не nil.
func (p Plan) Run(ctx context.Context, sess ports.QuerySession) ([]domain.Row, error) {
	rows, err := sess.Query(ctx, p.SQL, p.Args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", p.Name, err)
	}
	if p.post != nil {
		rows = p.post(rows)
	}
	if rows == nil {
		rows = []domain.Row{}
	}
	return rows, nil
}

func newPlan(d ports.SQLDialect, name string, def queryDef, limit int) Plan {
	p := Plan{Name: name, SQL: d.Rebind(def.build(d)), post: def.post}
	if def.limited {
		p.Args = []any{limit}
	}
	return p
}

func checkLimit(limit int) error {
	if limit < 1 {
		return domain.InvalidField(FieldLimit, "must be >= 1, got %d", limit)
	}
	return nil
}

// Выручка и штуки по товарам только из завершённых заказов.
const completedSalesByProduct = `
    SELECT oi.product_id, SUM(oi.quantity) AS units, SUM(oi.total_price) AS revenue
    FROM order_items oi
    JOIN orders o ON oi.order_id = o.order_id
    WHERE o.status = 'completed'
    GROUP BY oi.product_id`

var productCatalog = map[AnalysisType]queryDef{
	TopProducts: {
		limited: true,
		build: func(ports.SQLDialect) string {
			return `
SELECT
    p.product_name,
    p.category,
    SUM(oi.quantity) AS units_sold,
    SUM(oi.total_price) AS total_revenue,
    AVG(oi.unit_price) AS avg_price
FROM order_items oi
JOIN products p ON oi.product_id = p.product_id
JOIN orders o ON oi.order_id = o.order_id
WHERE o.status = 'completed'
GROUP BY p.product_id, p.product_name, p.category
ORDER BY total_revenue DESC, p.product_id
LIMIT ?`
		},
	},
	CategoryPerformance: {
		limited: true,
		build: func(ports.SQLDialect) string {
			return `
SELECT
    p.category,
    COUNT(DISTINCT p.product_id) AS product_count,
    CAST(COALESCE(SUM(s.units), 0) AS BIGINT) AS total_units_sold,
    COALESCE(SUM(s.revenue), 0) AS total_revenue,
    AVG(p.profit_margin) AS avg_profit_margin
FROM products p
LEFT JOIN (` + completedSalesByProduct + `
) s ON s.product_id = p.product_id
GROUP BY p.category
ORDER BY total_revenue DESC, p.category
LIMIT ?`
		},
	},
	InventoryStatus: {
		limited: true,
		post:    withStockStatus,
		build: func(ports.SQLDialect) string {
			return `
SELECT
    product_id,
    product_name,
    category,
    stock_quantity,
    price
FROM products
ORDER BY stock_quantity ASC, product_id
LIMIT ?`
		},
	},
	ProfitAnalysis: {
		limited: true,
		build: func(ports.SQLDialect) string {
			return `
SELECT
    p.product_name,
    p.category,
    p.price,
    p.cost,
    p.profit_margin,
    CAST(COALESCE(s.units, 0) AS BIGINT) AS units_sold,
    COALESCE(s.revenue, 0) AS revenue,
    COALESCE(s.units * p.cost, 0) AS total_cost,
    COALESCE(s.revenue - s.units * p.cost, 0) AS total_profit
FROM products p
LEFT JOIN (` + completedSalesByProduct + `
) s ON s.product_id = p.product_id
ORDER BY total_profit DESC, p.product_id
LIMIT ?`
		},
	},
}

var customerCatalog = map[InsightType]queryDef{
	TopCustomers: {
		limited: true,
		build: func(ports.SQLDialect) string {
			return `
SELECT
    c.customer_id,
    c.customer_segment,
    COUNT(o.order_id) AS total_orders,
    SUM(o.total_amount) AS total_spent,
    AVG(o.total_amount) AS avg_order_value,
    MAX(o.order_date) AS last_order_date
FROM customers c
JOIN orders o ON c.customer_id = o.customer_id
WHERE o.status = 'completed'
GROUP BY c.customer_id, c.customer_segment
ORDER BY total_spent DESC, c.customer_id
LIMIT ?`
		},
	},
	GeographicDistribution: {
		limited: true,
		build: func(ports.SQLDialect) string {
			return `
SELECT
    shipping_state,
    COUNT(DISTINCT customer_id) AS unique_customers,
    COUNT(*) AS total_orders,
    SUM(total_amount) AS total_revenue,
    AVG(total_amount) AS avg_order_value
FROM orders
WHERE status = 'completed'
GROUP BY shipping_state
ORDER BY total_revenue DESC, shipping_state
LIMIT ?`
		},
	},
	// Первый проход: по клиенту. Корзины считает bucketPurchaseTiers.
	PurchasePatterns: {
		post: bucketPurchaseTiers,
		build: func(ports.SQLDialect) string {
			return `
SELECT
    c.customer_id,
    COUNT(o.order_id) AS order_count,
    SUM(o.total_amount) AS total_spent
FROM customers c
JOIN orders o ON c.customer_id = o.customer_id
WHERE o.status = 'completed'
GROUP BY c.customer_id
ORDER BY c.customer_id`
		},
	},
	CustomerLifetimeValue: {
		build: func(d ports.SQLDialect) string {
			return `
SELECT
    c.customer_segment,
    COUNT(DISTINCT c.customer_id) AS customer_count,
    AVG(cs.total_spent) AS avg_lifetime_value,
    AVG(cs.total_orders) AS avg_orders_per_customer,
    AVG(cs.days_active) AS avg_customer_lifespan_days
FROM customers c
JOIN (
    SELECT
        customer_id,
        SUM(total_amount) AS total_spent,
        COUNT(*) AS total_orders,
        ` + d.DaysBetween("MAX(order_date)", "MIN(order_date)") + ` AS days_active
    FROM orders
    WHERE status = 'completed'
    GROUP BY customer_id
) cs ON c.customer_id = cs.customer_id
GROUP BY c.customer_segment
ORDER BY avg_lifetime_value DESC`
		},
	},
}

var trendCatalog = map[TrendType]queryDef{
	MonthlyTrends: {
		build: func(d ports.SQLDialect) string {
			month := d.MonthKey("order_date")
			return `
SELECT
    ` + month + ` AS month,
    COUNT(*) AS orders,
    SUM(total_amount) AS revenue,
    AVG(total_amount) AS avg_order_value,
    COUNT(DISTINCT customer_id) AS unique_customers
FROM orders
WHERE status = 'completed'
GROUP BY ` + month + `
ORDER BY month`
		},
	},
	DailyPatterns: {
		post: nameWeekdays,
		build: func(d ports.SQLDialect) string {
			day := d.WeekdayNumber("order_date")
			return `
SELECT
    ` + day + ` AS weekday,
    COUNT(*) AS orders,
    SUM(total_amount) AS revenue,
    AVG(total_amount) AS avg_order_value
FROM orders
WHERE status = 'completed'
GROUP BY ` + day + `
ORDER BY weekday`
		},
	},
	SeasonalAnalysis: {
		post: mergeSeasons,
		build: func(d ports.SQLDialect) string {
			m := d.MonthNumber("order_date")
			return `
SELECT
    ` + m + ` AS month_number,
    COUNT(*) AS orders,
    SUM(total_amount) AS revenue
FROM orders
WHERE status = 'completed'
GROUP BY ` + m + `
ORDER BY month_number`
		},
	},
	GrowthRate: {
		post: withGrowthRates,
		build: func(d ports.SQLDialect) string {
			month := d.MonthKey("order_date")
			return `
SELECT
    ` + month + ` AS month,
    SUM(total_amount) AS revenue
FROM orders
WHERE status = 'completed'
GROUP BY ` + month + `
ORDER BY month`
		},
	},
}

// ProductPlan - запрос product_analysis.
func ProductPlan(d ports.SQLDialect, t AnalysisType, limit int) (Plan, error) {
	def, ok := productCatalog[t]
	if !ok {
		_, err := ParseAnalysisType(string(t))
		return Plan{}, err
	}
	if err := checkLimit(limit); err != nil {
		return Plan{}, err
	}
	return newPlan(d, string(t), def, limit), nil
}

// CustomerPlan - запрос customer_insights. purchase_patterns и
// customer_lifetime_value limit не используют.
func CustomerPlan(d ports.SQLDialect, t InsightType, limit int) (Plan, error) {
	def, ok := customerCatalog[t]
	if !ok {
		_, err := ParseInsightType(string(t))
		return Plan{}, err
	}
	if err := checkLimit(limit); err != nil {
		return Plan{}, err
	}
	return newPlan(d, string(t), def, limit), nil
}

// TrendPlan - запрос sales_trends.
func TrendPlan(d ports.SQLDialect, t TrendType) (Plan, error) {
	def, ok := trendCatalog[t]
	if !ok {
		_, err := ParseTrendType(string(t))
		return Plan{}, err
	}
	return newPlan(d, string(t), def, 0), nil
}

// CustomRoute - ветка custom_query, выбранная по ключевым словам.
type CustomRoute string

const (
	RouteRevenueByCategory CustomRoute = "revenue_by_category"
	RouteTopSelling        CustomRoute = "top_selling"
	RouteSummary           CustomRoute = "summary"
)

// RouteCustomQuery - выбор ветки по подстрокам описания без учёта регистра.
// Синонимы и разбиение на слова не поддерживаются.
func RouteCustomQuery(description string) CustomRoute {
	q := strings.ToLower(description)
	switch {
	case strings.Contains(q, "revenue") && strings.Contains(q, "by category"):
		return RouteRevenueByCategory
	case strings.Contains(q, "top selling"):
		return RouteTopSelling
	default:
		return RouteSummary
	}
}

var customCatalog = map[CustomRoute]queryDef{
	RouteRevenueByCategory: {
		build: func(ports.SQLDialect) string {
			return `
SELECT
    p.category,
    SUM(oi.total_price) AS revenue,
    COUNT(DISTINCT o.order_id) AS orders
FROM order_items oi
JOIN products p ON oi.product_id = p.product_id
JOIN orders o ON oi.order_id = o.order_id
WHERE o.status = 'completed'
GROUP BY p.category
ORDER BY revenue DESC`
		},
	},
	RouteTopSelling: {
		build: func(ports.SQLDialect) string {
			return `
SELECT
    p.product_name,
    SUM(oi.quantity) AS units_sold,
    SUM(oi.total_price) AS revenue
FROM order_items oi
JOIN products p ON oi.product_id = p.product_id
JOIN orders o ON oi.order_id = o.order_id
WHERE o.status = 'completed'
GROUP BY p.product_id, p.product_name
ORDER BY units_sold DESC, p.product_id
LIMIT 10`
		},
	},
	RouteSummary: {
		build: func(d ports.SQLDialect) string {
			return `
SELECT 'Total Orders' AS metric, COUNT(*) AS value
FROM orders
WHERE status = 'completed'
UNION ALL
SELECT 'Total Revenue' AS metric, ` + d.Round2("SUM(total_amount)") + ` AS value
FROM orders
WHERE status = 'completed'`
		},
	},
}

// CustomPlan - запрос custom_query и выбранная ветка.
func CustomPlan(d ports.SQLDialect, description string) (Plan, CustomRoute) {
	route := RouteCustomQuery(description)
	return newPlan(d, string(route), customCatalog[route], 0), route
}

// OverviewPlans - три агрегата sales_overview.
type OverviewPlans struct {
	Summary   Plan
	Status    Plan
	TopStates Plan
}

// SalesOverviewPlans - запросы sales_overview с фильтром по диапазону дат.
// Разбивка по статусам учитывает все статусы, остальное - только завершённые заказы.
func SalesOverviewPlans(d ports.SQLDialect, dateRange string, now time.Time) OverviewPlans {
	f := BuildDateFilter(dateRange, now)
	args := f.Bind(d.TimeArg)

	return OverviewPlans{
		Summary: Plan{
			Name: "summary_metrics",
			SQL: d.Rebind(`
SELECT
    COUNT(*) AS total_orders,
    SUM(total_amount) AS total_revenue,
    AVG(total_amount) AS avg_order_value,
    COUNT(DISTINCT customer_id) AS unique_customers
FROM orders
WHERE status = 'completed'` + f.And()),
			Args: args,
		},
		Status: Plan{
			Name: "status_breakdown",
			SQL: d.Rebind(`
SELECT status, COUNT(*) AS count, SUM(total_amount) AS revenue
FROM orders` + f.Where() + `
GROUP BY status
ORDER BY status`),
			Args: args,
		},
		TopStates: Plan{
			Name: "top_states",
			SQL: d.Rebind(`
SELECT shipping_state, COUNT(*) AS orders, SUM(total_amount) AS revenue
FROM orders
WHERE status = 'completed'` + f.And() + `
GROUP BY shipping_state
ORDER BY revenue DESC, shipping_state
LIMIT 5`),
			Args: args,
		},
	}
}
