package analytics

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/SahuH/Data-Analytics-Assistant/internal/domain"
)

func limitProperty() map[string]any {
	return map[string]any{
		"type":        "integer",
		"description": "Number of results to return",
		"default":     DefaultLimit,
		"minimum":     1,
	}
}

// Tools - статический список инструментов. Каждый вызов возвращает новые карты схем.
func Tools() []domain.ToolDescriptor {
	return []domain.ToolDescriptor{
		{
			Name:        ToolSalesOverview,
			Description: "Get overall sales performance metrics and KPIs",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					FieldDateRange: map[string]any{
						"type":        "string",
						"description": "Date range filter (e.g., 'last_30_days', 'this_month', 'this_year')",
						"default":     RangeAll,
					},
				},
			},
		},
		{
			Name:        ToolProductAnalysis,
			Description: "Analyze product performance, top sellers, and inventory insights",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					FieldAnalysisType: map[string]any{
						"type":        "string",
						"enum":        enumStrings(AnalysisTypes),
						"description": "Type of product analysis to perform",
					},
					FieldLimit: limitProperty(),
				},
				"required": []string{FieldAnalysisType},
			},
		},
		{
			Name:        ToolCustomerInsights,
			Description: "Analyze customer behavior, segments, and lifetime value",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					FieldInsightType: map[string]any{
						"type":        "string",
						"enum":        enumStrings(InsightTypes),
						"description": "Type of customer analysis",
					},
					FieldLimit: limitProperty(),
				},
				"required": []string{FieldInsightType},
			},
		},
		{
			Name:        ToolSalesTrends,
			Description: "Analyze sales trends over time, seasonality, and forecasting",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					FieldTrendType: map[string]any{
						"type":        "string",
						"enum":        enumStrings(TrendTypes),
						"description": "Type of trend analysis",
					},
					FieldPeriod: map[string]any{
						"type":        "string",
						"description": "Time period for analysis",
						"default":     RangeAll,
					},
				},
				"required": []string{FieldTrendType},
			},
		},
		{
			Name:        ToolCustomQuery,
			Description: "Execute custom SQL-like queries on the sales data",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					FieldQueryDescription: map[string]any{
						"type":        "string",
						"description": "Natural language description of what you want to analyze",
					},
					FieldFilters: map[string]any{
						"type":        "object",
						"description": "Optional filters (date_range, category, region, etc.)",
						"default":     map[string]any{},
					},
				},
				"required": []string{FieldQueryDescription},
			},
		},
	}
}

// Descriptor - описание инструмента по имени.
func Descriptor(name string) (domain.ToolDescriptor, bool) {
	for _, t := range Tools() {
		if t.Name == name {
			return t, true
		}
	}
	return domain.ToolDescriptor{}, false
}

// ValidateArguments - сначала обязательные поля, затем типы и enum по JSON Schema.
// Первая найденная ошибка возвращается как *domain.ArgumentError.
func ValidateArguments(tool domain.ToolDescriptor, args map[string]any) error {
	if args == nil {
		args = map[string]any{}
	}

	if required, ok := tool.InputSchema["required"].([]string); ok {
		for _, field := range required {
			if v, ok := args[field]; !ok || v == nil {
				return domain.MissingField(field)
			}
		}
	}

	if len(tool.InputSchema) == 0 {
		return nil
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(tool.InputSchema),
		gojsonschema.NewGoLoader(args),
	)
	if err != nil {
		return fmt.Errorf("validate %s arguments: %w", tool.Name, err)
	}
	if result.Valid() {
		return nil
	}

	first := result.Errors()[0]
	field := first.Field()
	if first.Type() == "required" {
		if p, ok := first.Details()["property"].(string); ok {
			return domain.MissingField(p)
		}
	}
	// Description уже начинается с имени поля, а ArgumentError добавляет его сам.
	reason := strings.TrimPrefix(first.Description(), field+" ")
	return &domain.ArgumentError{Field: field, Reason: reason}
}

// SalesOverviewArgs - аргументы sales_overview.
type SalesOverviewArgs struct {
	DateRange string
}

// ProductArgs - аргументы product_analysis.
type ProductArgs struct {
	AnalysisType AnalysisType
	Limit        int
}

// CustomerArgs - аргументы customer_insights.
type CustomerArgs struct {
	InsightType InsightType
	Limit       int
}

// TrendArgs - аргументы sales_trends.
type TrendArgs struct {
	TrendType TrendType
	Period    string
}

// CustomArgs - аргументы custom_query.
type CustomArgs struct {
	QueryDescription string
	Filters          map[string]any
}

func DecodeSalesOverview(args map[string]any) (SalesOverviewArgs, error) {
	dr, err := stringArg(args, FieldDateRange, RangeAll)
	if err != nil {
		return SalesOverviewArgs{}, err
	}
	return SalesOverviewArgs{DateRange: dr}, nil
}

func DecodeProduct(args map[string]any) (ProductArgs, error) {
	raw, err := stringArg(args, FieldAnalysisType, "")
	if err != nil {
		return ProductArgs{}, err
	}
	t, err := ParseAnalysisType(raw)
	if err != nil {
		return ProductArgs{}, err
	}
	limit, err := intArg(args, FieldLimit, DefaultLimit)
	if err != nil {
		return ProductArgs{}, err
	}
	return ProductArgs{AnalysisType: t, Limit: limit}, nil
}

func DecodeCustomer(args map[string]any) (CustomerArgs, error) {
	raw, err := stringArg(args, FieldInsightType, "")
	if err != nil {
		return CustomerArgs{}, err
	}
	t, err := ParseInsightType(raw)
	if err != nil {
		return CustomerArgs{}, err
	}
	limit, err := intArg(args, FieldLimit, DefaultLimit)
	if err != nil {
		return CustomerArgs{}, err
	}
	return CustomerArgs{InsightType: t, Limit: limit}, nil
}

func DecodeTrend(args map[string]any) (TrendArgs, error) {
	raw, err := stringArg(args, FieldTrendType, "")
	if err != nil {
		return TrendArgs{}, err
	}
	t, err := ParseTrendType(raw)
	if err != nil {
		return TrendArgs{}, err
	}
	period, err := stringArg(args, FieldPeriod, RangeAll)
	if err != nil {
		return TrendArgs{}, err
	}
	return TrendArgs{TrendType: t, Period: period}, nil
}

func DecodeCustom(args map[string]any) (CustomArgs, error) {
	desc, err := stringArg(args, FieldQueryDescription, "")
	if err != nil {
		return CustomArgs{}, err
	}
	if desc == "" {
		if _, ok := args[FieldQueryDescription]; !ok {
			return CustomArgs{}, domain.MissingField(FieldQueryDescription)
		}
	}

	filters := map[string]any{}
	if v, ok := args[FieldFilters]; ok && v != nil {
		m, ok := v.(map[string]any)
		if !ok {
			return CustomArgs{}, domain.InvalidField(FieldFilters, "must be an object")
		}
		filters = m
	}
	return CustomArgs{QueryDescription: desc, Filters: filters}, nil
}

func stringArg(args map[string]any, field, def string) (string, error) {
	v, ok := args[field]
	if !ok || v == nil {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", domain.InvalidField(field, "must be a string")
	}
	return s, nil
}

func intArg(args map[string]any, field string, def int) (int, error) {
	v, ok := args[field]
	if !ok || v == nil {
		return def, nil
	}

	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		if n > math.MaxInt32 || n < math.MinInt32 {
			return 0, domain.InvalidField(field, "out of range")
		}
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, domain.InvalidField(field, "must be an integer")
		}
		if n > math.MaxInt32 || n < math.MinInt32 {
			return 0, domain.InvalidField(field, "out of range")
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, domain.InvalidField(field, "must be an integer")
		}
		if i > math.MaxInt32 || i < math.MinInt32 {
			return 0, domain.InvalidField(field, "out of range")
		}
		return int(i), nil
	}
	return 0, domain.InvalidField(field, "must be an integer")
}
