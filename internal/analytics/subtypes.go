package analytics

import (
	"strings"

	"github.com/SahuH/Data-Analytics-Assistant/internal/domain"
)

// Имена инструментов.
const (
	ToolSalesOverview    = "sales_overview"
	ToolProductAnalysis  = "product_analysis"
	ToolCustomerInsights = "customer_insights"
	ToolSalesTrends      = "sales_trends"
	ToolCustomQuery      = "custom_query"
)

// Имена полей аргументов.
const (
	FieldDateRange        = "date_range"
	FieldAnalysisType     = "analysis_type"
	FieldInsightType      = "insight_type"
	FieldTrendType        = "trend_type"
	FieldLimit            = "limit"
	FieldPeriod           = "period"
	FieldQueryDescription = "query_description"
	FieldFilters          = "filters"
)

// DefaultLimit - limit по умолчанию для top-N запросов.
const DefaultLimit = 10

// AnalysisType - подтип product_analysis.
type AnalysisType string

const (
	TopProducts         AnalysisType = "top_products"
	CategoryPerformance AnalysisType = "category_performance"
	InventoryStatus     AnalysisType = "inventory_status"
	ProfitAnalysis      AnalysisType = "profit_analysis"
)

// AnalysisTypes - допустимые значения в порядке схемы.
var AnalysisTypes = []AnalysisType{TopProducts, CategoryPerformance, InventoryStatus, ProfitAnalysis}

// InsightType - подтип customer_insights.
type InsightType string

const (
	TopCustomers           InsightType = "top_customers"
	GeographicDistribution InsightType = "geographic_distribution"
	PurchasePatterns       InsightType = "purchase_patterns"
	CustomerLifetimeValue  InsightType = "customer_lifetime_value"
)

var InsightTypes = []InsightType{TopCustomers, GeographicDistribution, PurchasePatterns, CustomerLifetimeValue}

// TrendType - подтип sales_trends.
type TrendType string

const (
	MonthlyTrends    TrendType = "monthly_trends"
	DailyPatterns    TrendType = "daily_patterns"
	SeasonalAnalysis TrendType = "seasonal_analysis"
	GrowthRate       TrendType = "growth_rate"
)

var TrendTypes = []TrendType{MonthlyTrends, DailyPatterns, SeasonalAnalysis, GrowthRate}

// ParseAnalysisType - строка в AnalysisType; неизвестное значение -> ArgumentError.
func ParseAnalysisType(s string) (AnalysisType, error) {
	return parseEnum(FieldAnalysisType, s, AnalysisTypes)
}

func ParseInsightType(s string) (InsightType, error) {
	return parseEnum(FieldInsightType, s, InsightTypes)
}

func ParseTrendType(s string) (TrendType, error) {
	return parseEnum(FieldTrendType, s, TrendTypes)
}

func parseEnum[T ~string](field, s string, allowed []T) (T, error) {
	if s == "" {
		var zero T
		return zero, domain.MissingField(field)
	}
	for _, v := range allowed {
		if string(v) == s {
			return v, nil
		}
	}
	var zero T
	return zero, domain.InvalidField(field, "must be one of [%s], got %q", joinEnum(allowed), s)
}

func joinEnum[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

func enumStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
