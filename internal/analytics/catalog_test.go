package analytics_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SahuH/Data-Analytics-Assistant/internal/analytics"
	"github.com/SahuH/Data-Analytics-Assistant/internal/domain"
	"github.com/SahuH/Data-Analytics-Assistant/internal/ports"
	"github.com/SahuH/Data-Analytics-Assistant/internal/repo/sqlite"
)

// fixture:
//   - Books: два товара, продажи только в завершённых заказах;
//   - Toys: один товар, продан только в отменённом заказе;
//   - Garden: товар без продаж.
//
// CUST-1 (Premium): 6 завершённых заказов, CUST-2 (Regular): 1 завершённый и 1 отменённый,
// CUST-3 (Budget): 1 завершённый.
func fixture() *domain.Dataset {
	jan := time.Date(2024, time.January, 7, 10, 0, 0, 0, time.UTC) // воскресенье
	ds := &domain.Dataset{
		Customers: []domain.Customer{
			{CustomerID: "CUST-1", CustomerName: "A", Email: "a@x", RegistrationDate: jan, Segment: domain.SegmentPremium},
			{CustomerID: "CUST-2", CustomerName: "B", Email: "b@x", RegistrationDate: jan, Segment: domain.SegmentRegular},
			{CustomerID: "CUST-3", CustomerName: "C", Email: "c@x", RegistrationDate: jan, Segment: domain.SegmentBudget},
		},
		Products: []domain.Product{
			{ProductID: "P-1", ProductName: "Novel", Category: "Books", Price: 20, Cost: 10, StockQuantity: 0},
			{ProductID: "P-2", ProductName: "Atlas", Category: "Books", Price: 50, Cost: 30, StockQuantity: 49},
			{ProductID: "P-3", ProductName: "Robot", Category: "Toys", Price: 100, Cost: 60, StockQuantity: 50},
			{ProductID: "P-4", ProductName: "Shovel", Category: "Garden", Price: 30, Cost: 20, StockQuantity: 150},
		},
	}

	// CUST-1: по заказу в месяц январь..июнь, выручка 100, 150, 90, 90, 90, 90.
	amounts := []float64{100, 150, 90, 90, 90, 90}
	for i, a := range amounts {
		ds.Orders = append(ds.Orders, domain.Order{
			OrderID: fmt.Sprintf("O-1-%d", i), CustomerID: "CUST-1", OrderDate: jan.AddDate(0, i, 0),
			TotalAmount: a, Status: domain.StatusCompleted, ShippingState: "CA", PaymentMethod: "paypal",
		})
	}
	ds.Orders = append(ds.Orders,
		domain.Order{OrderID: "O-2-0", CustomerID: "CUST-2", OrderDate: jan, TotalAmount: 40, Status: domain.StatusCompleted, ShippingState: "NY", PaymentMethod: "credit_card"},
		domain.Order{OrderID: "O-2-1", CustomerID: "CUST-2", OrderDate: jan, TotalAmount: 500, Status: domain.StatusCancelled, ShippingState: "NY", PaymentMethod: "credit_card"},
		domain.Order{OrderID: "O-3-0", CustomerID: "CUST-3", OrderDate: jan, TotalAmount: 20, Status: domain.StatusCompleted, ShippingState: "TX", PaymentMethod: "debit_card"},
	)

	ds.OrderItems = []domain.OrderItem{
		{OrderItemID: 1, OrderID: "O-1-0", ProductID: "P-1", Quantity: 2, UnitPrice: 20},
		{OrderItemID: 2, OrderID: "O-1-1", ProductID: "P-2", Quantity: 3, UnitPrice: 50},
		{OrderItemID: 3, OrderID: "O-2-0", ProductID: "P-1", Quantity: 1, UnitPrice: 20},
		{OrderItemID: 4, OrderID: "O-2-1", ProductID: "P-3", Quantity: 5, UnitPrice: 100},
	}
	ds.Normalize()
	return ds
}

func openSession(t *testing.T) (ports.SQLDialect, ports.QuerySession) {
	t.Helper()
	ctx := context.Background()

	store := sqlite.New(filepath.Join(t.TempDir(), "catalog.db"))
	_, err := store.Migrate(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Replace(ctx, fixture()))

	sess, err := store.Open(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sess.Close() })
	return store.Dialect(), sess
}

func byKey(rows []domain.Row, key string) map[string]domain.Row {
	m := make(map[string]domain.Row, len(rows))
	for _, r := range rows {
		m[r.String(key)] = r
	}
	return m
}

func TestCatalog_ProductAnalysis(t *testing.T) {
	d, sess := openSession(t)
	ctx := context.Background()

	t.Run("top_products counts only completed orders", func(t *testing.T) {
		plan, err := analytics.ProductPlan(d, analytics.TopProducts, 10)
		require.NoError(t, err)
		rows, err := plan.Run(ctx, sess)
		require.NoError(t, err)

		require.Len(t, rows, 2)
		assert.Equal(t, []string{"product_name", "category", "units_sold", "total_revenue", "avg_price"}, rows[0].Columns())
		assert.Equal(t, "Atlas", rows[0].String("product_name"))
		assert.Equal(t, 150.0, rows[0].Float("total_revenue"))
		assert.Equal(t, int64(3), rows[1].Int("units_sold"))
	})

	t.Run("category_performance keeps zero-sale categories", func(t *testing.T) {
		plan, err := analytics.ProductPlan(d, analytics.CategoryPerformance, 10)
		require.NoError(t, err)
		rows, err := plan.Run(ctx, sess)
		require.NoError(t, err)

		require.Len(t, rows, 3)
		assert.Equal(t, "Books", rows[0].String("category"))

		cats := byKey(rows, "category")
		books := cats["Books"]
		assert.Equal(t, int64(2), books.Int("product_count"))
		assert.Equal(t, int64(6), books.Int("total_units_sold"))
		assert.Equal(t, 210.0, books.Float("total_revenue"))

		for _, name := range []string{"Toys", "Garden"} {
			r, ok := cats[name]
			require.True(t, ok, name)
			assert.False(t, r.IsNull("total_revenue"), name)
			assert.Equal(t, 0.0, r.Float("total_revenue"), name)
			assert.Equal(t, int64(0), r.Int("total_units_sold"), name)
		}
	})

	t.Run("inventory_status buckets and orders by stock", func(t *testing.T) {
		plan, err := analytics.ProductPlan(d, analytics.InventoryStatus, 10)
		require.NoError(t, err)
		rows, err := plan.Run(ctx, sess)
		require.NoError(t, err)

		require.Len(t, rows, 4)
		got := make([]string, 0, len(rows))
		for _, r := range rows {
			got = append(got, r.String("stock_status"))
		}
		assert.Equal(t, []string{"Out of Stock", "Low Stock", "Medium Stock", "High Stock"}, got)
		assert.Equal(t, "stock_status", rows[0].Columns()[len(rows[0].Columns())-1])
	})

	t.Run("profit_analysis zero for unsold and honours limit", func(t *testing.T) {
		plan, err := analytics.ProductPlan(d, analytics.ProfitAnalysis, 3)
		require.NoError(t, err)
		rows, err := plan.Run(ctx, sess)
		require.NoError(t, err)

		require.Len(t, rows, 3)
		assert.Equal(t, "Atlas", rows[0].String("product_name"))
		assert.Equal(t, 60.0, rows[0].Float("total_profit"))
		assert.Equal(t, 90.0, rows[0].Float("total_cost"))

		all, err := analytics.ProductPlan(d, analytics.ProfitAnalysis, 10)
		require.NoError(t, err)
		rows, err = all.Run(ctx, sess)
		require.NoError(t, err)
		robot := byKey(rows, "product_name")["Robot"]
		assert.Equal(t, int64(0), robot.Int("units_sold"))
		assert.Equal(t, 0.0, robot.Float("total_profit"))
	})

	t.Run("invalid limit", func(t *testing.T) {
		_, err := analytics.ProductPlan(d, analytics.TopProducts, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})

	t.Run("unknown subtype", func(t *testing.T) {
		_, err := analytics.ProductPlan(d, analytics.AnalysisType("bogus"), 10)
		var argErr *domain.ArgumentError
		require.ErrorAs(t, err, &argErr)
		assert.Equal(t, analytics.FieldAnalysisType, argErr.Field)
	})
}

func TestCatalog_CustomerInsights(t *testing.T) {
	d, sess := openSession(t)
	ctx := context.Background()

	t.Run("top_customers", func(t *testing.T) {
		plan, err := analytics.CustomerPlan(d, analytics.TopCustomers, 2)
		require.NoError(t, err)
		rows, err := plan.Run(ctx, sess)
		require.NoError(t, err)

		require.Len(t, rows, 2)
		assert.Equal(t, "CUST-1", rows[0].String("customer_id"))
		assert.Equal(t, 610.0, rows[0].Float("total_spent"))
		assert.Equal(t, "2024-06-07 10:00:00", rows[0].String("last_order_date"))
	})

	t.Run("geographic_distribution", func(t *testing.T) {
		plan, err := analytics.CustomerPlan(d, analytics.GeographicDistribution, 10)
		require.NoError(t, err)
		rows, err := plan.Run(ctx, sess)
		require.NoError(t, err)

		require.Len(t, rows, 3)
		assert.Equal(t, "CA", rows[0].String("shipping_state"))
		assert.Equal(t, 40.0, byKey(rows, "shipping_state")["NY"].Float("total_revenue"))
	})

	t.Run("purchase_patterns ignores limit", func(t *testing.T) {
		plan, err := analytics.CustomerPlan(d, analytics.PurchasePatterns, 1)
		require.NoError(t, err)
		assert.Empty(t, plan.Args)

		rows, err := plan.Run(ctx, sess)
		require.NoError(t, err)
		require.Len(t, rows, 2)

		assert.Equal(t, analytics.RegularBuyer, rows[0].String("customer_type"))
		assert.Equal(t, int64(1), rows[0].Int("customer_count"))
		assert.Equal(t, analytics.OneTimeBuyer, rows[1].String("customer_type"))
		assert.Equal(t, int64(2), rows[1].Int("customer_count"))
		assert.InDelta(t, 30.0, rows[1].Float("avg_customer_value"), 1e-9)
	})

	t.Run("customer_lifetime_value", func(t *testing.T) {
		plan, err := analytics.CustomerPlan(d, analytics.CustomerLifetimeValue, 10)
		require.NoError(t, err)
		rows, err := plan.Run(ctx, sess)
		require.NoError(t, err)

		require.Len(t, rows, 3)
		premium := rows[0]
		assert.Equal(t, "Premium", premium.String("customer_segment"))
		assert.Equal(t, 610.0, premium.Float("avg_lifetime_value"))
		assert.Equal(t, 6.0, premium.Float("avg_orders_per_customer"))
		assert.InDelta(t, 152.0, premium.Float("avg_customer_lifespan_days"), 1e-6)

		assert.Equal(t,
			[]string{"Premium customers have 15.2x higher lifetime value - focus on premium acquisition"},
			analytics.CustomerInsights(analytics.CustomerLifetimeValue, rows))
	})
}

func TestCatalog_SalesTrends(t *testing.T) {
	d, sess := openSession(t)
	ctx := context.Background()

	run := func(tt analytics.TrendType) []domain.Row {
		plan, err := analytics.TrendPlan(d, tt)
		require.NoError(t, err)
		rows, err := plan.Run(ctx, sess)
		require.NoError(t, err)
		return rows
	}

	monthly := run(analytics.MonthlyTrends)
	require.Len(t, monthly, 6)
	assert.Equal(t, "2024-01", monthly[0].String("month"))
	assert.Equal(t, int64(3), monthly[0].Int("orders"))
	assert.Equal(t, int64(3), monthly[0].Int("unique_customers"))

	growth := run(analytics.GrowthRate)
	require.Len(t, growth, 6)
	assert.True(t, growth[0].IsNull("growth_rate_percent"))
	assert.Equal(t, 160.0, growth[0].Float("revenue"))
	assert.Equal(t, -6.25, growth[1].Float("growth_rate_percent"))
	assert.Equal(t, 0.0, growth[5].Float("growth_rate_percent"))

	seasons := run(analytics.SeasonalAnalysis)
	got := byKey(seasons, "season")
	assert.Equal(t, int64(4), got["Winter"].Int("orders"))
	assert.Equal(t, 310.0, got["Winter"].Float("revenue"))
	assert.Equal(t, 270.0, got["Spring"].Float("revenue"))
	assert.Equal(t, 90.0, got["Summer"].Float("revenue"))
	assert.Equal(t, "Winter", seasons[0].String("season"))

	daily := run(analytics.DailyPatterns)
	require.NotEmpty(t, daily)
	assert.Equal(t, []string{"day_of_week", "orders", "revenue", "avg_order_value"}, daily[0].Columns())
	assert.Equal(t, "Sunday", daily[0].String("day_of_week"))
}

func TestCatalog_CustomQuery(t *testing.T) {
	d, sess := openSession(t)
	ctx := context.Background()

	plan, route := analytics.CustomPlan(d, "Show me revenue by category")
	assert.Equal(t, analytics.RouteRevenueByCategory, route)
	rows, err := plan.Run(ctx, sess)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"category", "revenue", "orders"}, rows[0].Columns())
	assert.Equal(t, int64(3), rows[0].Int("orders"))

	plan, route = analytics.CustomPlan(d, "what are the top selling items")
	assert.Equal(t, analytics.RouteTopSelling, route)
	rows, err = plan.Run(ctx, sess)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Novel", rows[0].String("product_name"))

	plan, route = analytics.CustomPlan(d, "anything else")
	assert.Equal(t, analytics.RouteSummary, route)
	rows, err = plan.Run(ctx, sess)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Total Orders", rows[0].String("metric"))
	assert.Equal(t, 8.0, rows[0].Float("value"))
	assert.Equal(t, "Total Revenue", rows[1].String("metric"))
	assert.Equal(t, 670.0, rows[1].Float("value"))
}

func TestCatalog_SalesOverview(t *testing.T) {
	d, sess := openSession(t)
	ctx := context.Background()

	plans := analytics.SalesOverviewPlans(d, analytics.RangeAll, time.Now())
	summary, err := plans.Summary.Run(ctx, sess)
	require.NoError(t, err)
	require.Len(t, summary, 1)
	assert.Equal(t, int64(8), summary[0].Int("total_orders"))
	assert.Equal(t, int64(3), summary[0].Int("unique_customers"))

	status, err := plans.Status.Run(ctx, sess)
	require.NoError(t, err)
	require.Len(t, status, 2)
	assert.Equal(t, "cancelled", status[0].String("status"))

	states, err := plans.TopStates.Run(ctx, sess)
	require.NoError(t, err)
	require.Len(t, states, 3)
	assert.Equal(t, "CA", states[0].String("shipping_state"))

	// "текущий месяц" = февраль 2024: только один заказ CUST-1
	feb := time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC)
	plans = analytics.SalesOverviewPlans(d, analytics.RangeThisMonth, feb)
	summary, err = plans.Summary.Run(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary[0].Int("total_orders"))
	assert.Equal(t, 150.0, summary[0].Float("total_revenue"))

	status, err = plans.Status.Run(ctx, sess)
	require.NoError(t, err)
	require.Len(t, status, 1)

	// пустой период: агрегаты по нулю строк
	plans = analytics.SalesOverviewPlans(d, analytics.RangeLast30Days, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
	summary, err = plans.Summary.Run(ctx, sess)
	require.NoError(t, err)
	require.Len(t, summary, 1)
	assert.Equal(t, int64(0), summary[0].Int("total_orders"))
	assert.True(t, summary[0].IsNull("avg_order_value"))
}
