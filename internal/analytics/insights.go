package analytics

import (
	"fmt"
	"math"

	"github.com/SahuH/Data-Analytics-Assistant/internal/domain"
)

// Пороги для текстовых выводов.
const (
	strongOrderValue   = 100.0
	weakOrderValue     = 50.0
	highRepeatRate     = 50.0
	lowRepeatRate      = 20.0
	growthThreshold    = 10.0
	premiumCLVMultiple = 2.0
)

// SalesInsights - выводы по сводке sales_overview.
// NULL в avg_order_value (нет завершённых заказов) вывод о чеке не даёт.
func SalesInsights(summary domain.Row) []string {
	insights := []string{}

	if !summary.IsNull("avg_order_value") {
		aov := summary.Float("avg_order_value")
		switch {
		case aov > strongOrderValue:
			insights = append(insights, fmt.Sprintf(
				"Strong average order value of %s indicates healthy customer spending", Dollars(aov)))
		case aov < weakOrderValue:
			insights = append(insights, fmt.Sprintf(
				"Lower average order value of %s suggests opportunity for upselling", Dollars(aov)))
		}
	}

	rate := RepeatPurchaseRate(summary.Float("total_orders"), summary.Float("unique_customers"))
	switch {
	case rate > highRepeatRate:
		insights = append(insights, fmt.Sprintf(
			"High customer retention with %s%% repeat purchase rate", Percent1(rate)))
	case rate < lowRepeatRate:
		insights = append(insights, fmt.Sprintf(
			"Low repeat purchase rate of %s%% indicates need for customer retention strategies", Percent1(rate)))
	}

	return insights
}

// ProductInsights - выводы по product_analysis.
func ProductInsights(t AnalysisType, rows []domain.Row) []string {
	insights := []string{}

	switch t {
	case TopProducts:
		if len(rows) > 0 {
			top := rows[0]
			insights = append(insights, fmt.Sprintf("Top product '%s' generated %s in revenue",
				top.String("product_name"), Money(top.Float("total_revenue"))))
		}
	case CategoryPerformance:
		if len(rows) > 0 {
			top := rows[0]
			insights = append(insights, fmt.Sprintf("'%s' is the leading category with %s in sales",
				top.String("category"), Money(top.Float("total_revenue"))))
		}
	case InventoryStatus:
		var out, low int
		for _, r := range rows {
			switch r.String("stock_status") {
			case StockOut:
				out++
			case StockLow:
				low++
			}
		}
		if out > 0 {
			insights = append(insights, fmt.Sprintf("%d products are out of stock - immediate restocking needed", out))
		}
		if low > 0 {
			insights = append(insights, fmt.Sprintf("%d products have low inventory - consider restocking soon", low))
		}
	}

	return insights
}

// CustomerInsights - выводы по customer_insights.
func CustomerInsights(t InsightType, rows []domain.Row) []string {
	insights := []string{}

	switch t {
	case TopCustomers:
		if len(rows) > 0 {
			insights = append(insights, fmt.Sprintf("Top customer has spent %s - consider VIP treatment",
				Money(rows[0].Float("total_spent"))))
		}
	case CustomerLifetimeValue:
		premium := segmentValue(rows, domain.SegmentPremium)
		regular := segmentValue(rows, domain.SegmentRegular)
		if regular > 0 && premium > regular*premiumCLVMultiple {
			insights = append(insights, fmt.Sprintf(
				"Premium customers have %sx higher lifetime value - focus on premium acquisition",
				Percent1(premium/regular)))
		}
	}

	return insights
}

func segmentValue(rows []domain.Row, seg domain.CustomerSegment) float64 {
	for _, r := range rows {
		if r.String("customer_segment") == string(seg) {
			return r.Float("avg_lifetime_value")
		}
	}
	return 0
}

// TrendInsights - выводы по sales_trends.
func TrendInsights(t TrendType, rows []domain.Row) []string {
	insights := []string{}
	if len(rows) == 0 {
		return insights
	}

	switch t {
	case GrowthRate:
		// NULL в последней строке считается нулевым ростом.
		g := rows[len(rows)-1].Float("growth_rate_percent")
		switch {
		case g > growthThreshold:
			insights = append(insights, fmt.Sprintf("Strong growth of %s%% in the latest period", ShortFloat(g)))
		case g < -growthThreshold:
			insights = append(insights, fmt.Sprintf(
				"Concerning decline of %s%% in the latest period - investigation needed", ShortFloat(math.Abs(g))))
		}
	case DailyPatterns:
		best, worst := 0, 0
		for i, r := range rows {
			if r.Float("revenue") > rows[best].Float("revenue") {
				best = i
			}
			if r.Float("revenue") < rows[worst].Float("revenue") {
				worst = i
			}
		}
		insights = append(insights, fmt.Sprintf("%s is the strongest sales day, while %s is the weakest",
			rows[best].String("day_of_week"), rows[worst].String("day_of_week")))
	}

	return insights
}
