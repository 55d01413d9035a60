package analytics

import (
	"sort"
	"time"

	"github.com/SahuH/Data-Analytics-Assistant/internal/domain"
)

// Корзины складских остатков.
const (
	StockOut    = "Out of Stock"
	StockLow    = "Low Stock"
	StockMedium = "Medium Stock"
	StockHigh   = "High Stock"
)

// StockStatus - корзина по количеству на складе.
func StockStatus(qty int64) string {
	switch {
	case qty <= 0:
		return StockOut
	case qty < 50:
		return StockLow
	case qty < 100:
		return StockMedium
	default:
		return StockHigh
	}
}

// Типы покупателей по числу завершённых заказов.
const (
	OneTimeBuyer    = "One-time Buyer"
	OccasionalBuyer = "Occasional Buyer"
	RegularBuyer    = "Regular Buyer"
	FrequentBuyer   = "Frequent Buyer"
)

// PurchaseTier - тип покупателя по числу завершённых заказов (n >= 1).
func PurchaseTier(orders int64) string {
	switch {
	case orders <= 1:
		return OneTimeBuyer
	case orders <= 5:
		return OccasionalBuyer
	case orders <= 10:
		return RegularBuyer
	default:
		return FrequentBuyer
	}
}

// Season - сезон календарного месяца.
func Season(m time.Month) string {
	switch m {
	case time.December, time.January, time.February:
		return "Winter"
	case time.March, time.April, time.May:
		return "Spring"
	case time.June, time.July, time.August:
		return "Summer"
	default:
		return "Fall"
	}
}

// GrowthRates - процент изменения к предыдущему месяцу.
// Первый элемент и элементы после нулевой выручки - nil.
func GrowthRates(revenues []float64) []*float64 {
	out := make([]*float64, len(revenues))
	for i := 1; i < len(revenues); i++ {
		prev := revenues[i-1]
		if prev == 0 {
			continue
		}
		g := domain.Round2((revenues[i] - prev) / prev * 100)
		out[i] = &g
	}
	return out
}

// RepeatPurchaseRate - (заказы - уникальные клиенты) / уникальные клиенты * 100; 0 без клиентов.
func RepeatPurchaseRate(totalOrders, uniqueCustomers float64) float64 {
	if uniqueCustomers <= 0 {
		return 0
	}
	return (totalOrders - uniqueCustomers) / uniqueCustomers * 100
}

// postPass - обработка строк после SQL.
type postPass func(rows []domain.Row) []domain.Row

// withStockStatus - добавляет stock_status к каждой строке inventory_status.
func withStockStatus(rows []domain.Row) []domain.Row {
	for i := range rows {
		rows[i].Set("stock_status", StockStatus(rows[i].Int("stock_quantity")))
	}
	return rows
}

// bucketPurchaseTiers - второй проход purchase_patterns:
// строки (customer_id, order_count, total_spent) -> по строке на тип покупателя.
func bucketPurchaseTiers(rows []domain.Row) []domain.Row {
	type bucket struct {
		customers int64
		spent     float64
	}
	buckets := map[string]*bucket{}
	var order []string

	for _, r := range rows {
		n := r.Int("order_count")
		if n <= 0 {
			continue
		}
		tier := PurchaseTier(n)
		b, ok := buckets[tier]
		if !ok {
			b = &bucket{}
			buckets[tier] = b
			order = append(order, tier)
		}
		b.customers++
		b.spent += r.Float("total_spent")
	}

	out := make([]domain.Row, 0, len(order))
	for _, tier := range order {
		b := buckets[tier]
		out = append(out, domain.NewRow(
			"customer_type", tier,
			"customer_count", b.customers,
			"avg_customer_value", b.spent/float64(b.customers),
		))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Float("avg_customer_value") > out[j].Float("avg_customer_value")
	})
	return out
}

var weekdayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// nameWeekdays - номер дня недели (0 = воскресенье) в имя; порядок строк сохраняется.
func nameWeekdays(rows []domain.Row) []domain.Row {
	out := make([]domain.Row, 0, len(rows))
	for _, r := range rows {
		d := r.Int("weekday")
		name := ""
		if d >= 0 && d < int64(len(weekdayNames)) {
			name = weekdayNames[d]
		}
		out = append(out, domain.NewRow(
			"day_of_week", name,
			"orders", r.Int("orders"),
			"revenue", r.Float("revenue"),
			"avg_order_value", r.Float("avg_order_value"),
		))
	}
	return out
}

// mergeSeasons - помесячные агрегаты (month_number, orders, revenue) в сезоны,
// по убыванию выручки.
func mergeSeasons(rows []domain.Row) []domain.Row {
	type acc struct {
		orders  int64
		revenue float64
	}
	seasons := map[string]*acc{}
	var order []string

	for _, r := range rows {
		m := r.Int("month_number")
		if m < 1 || m > 12 {
			continue
		}
		s := Season(time.Month(m))
		a, ok := seasons[s]
		if !ok {
			a = &acc{}
			seasons[s] = a
			order = append(order, s)
		}
		a.orders += r.Int("orders")
		a.revenue += r.Float("revenue")
	}

	out := make([]domain.Row, 0, len(order))
	for _, s := range order {
		a := seasons[s]
		avg := 0.0
		if a.orders > 0 {
			avg = a.revenue / float64(a.orders)
		}
		out = append(out, domain.NewRow(
			"season", s,
			"orders", a.orders,
			"revenue", a.revenue,
			"avg_order_value", avg,
		))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Float("revenue") > out[j].Float("revenue")
	})
	return out
}

// withGrowthRates - помесячная выручка (month, revenue) -> строки с предыдущим месяцем и ростом.
func withGrowthRates(rows []domain.Row) []domain.Row {
	revenues := make([]float64, len(rows))
	for i, r := range rows {
		revenues[i] = r.Float("revenue")
	}
	growth := GrowthRates(revenues)

	out := make([]domain.Row, 0, len(rows))
	for i, r := range rows {
		var prev, rate any
		if i > 0 {
			prev = revenues[i-1]
		}
		if growth[i] != nil {
			rate = *growth[i]
		}
		out = append(out, domain.NewRow(
			"month", r.String("month"),
			"revenue", revenues[i],
			"prev_month_revenue", prev,
			"growth_rate_percent", rate,
		))
	}
	return out
}
