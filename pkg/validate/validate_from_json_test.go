package validate

import (
	"context"
	"strings"
	"testing"
)

func TestValidateDatasetFromJSON_OK(t *testing.T) {
	ctx := context.Background()
	validator := NewDatasetValidator()

	ds, err := ValidateDatasetFromJSON(ctx, validator, []byte(minimalDatasetJSON("ORD-1", "completed")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ds.Orders[0].OrderID != "ORD-1" {
		t.Fatalf("unexpected order id: %s", ds.Orders[0].OrderID)
	}
	// производные поля пересчитаны
	if ds.OrderItems[0].TotalPrice != 80 {
		t.Fatalf("expected total_price 80, got %v", ds.OrderItems[0].TotalPrice)
	}
	if ds.Products[0].ProfitMargin != 25 {
		t.Fatalf("expected profit_margin 25, got %v", ds.Products[0].ProfitMargin)
	}
}

func TestValidateDatasetFromJSON_UnknownField(t *testing.T) {
	ctx := context.Background()
	validator := NewDatasetValidator()

	raw := `{"unknown":"x",` + minimalDatasetJSON("ORD-2", "completed")[1:]
	_, err := ValidateDatasetFromJSON(ctx, validator, []byte(raw))
	if err == nil || !strings.Contains(err.Error(), "invalid json") {
		t.Fatalf("expected invalid json error, got: %v", err)
	}
}

func TestValidateDatasetFromJSON_TrailingData(t *testing.T) {
	ctx := context.Background()
	validator := NewDatasetValidator()

	raw := minimalDatasetJSON("ORD-3", "completed") + "{}"
	_, err := ValidateDatasetFromJSON(ctx, validator, []byte(raw))
	if err == nil || !strings.Contains(err.Error(), "trailing data") {
		t.Fatalf("expected trailing data error, got: %v", err)
	}
}

func TestValidateDatasetFromJSON_DomainError(t *testing.T) {
	ctx := context.Background()
	validator := NewDatasetValidator()

	_, err := ValidateDatasetFromJSON(ctx, validator, []byte(minimalDatasetJSON("ORD-4", "shipped")))
	if err == nil {
		t.Fatalf("expected domain validation error, got nil")
	}
}

// ---- helpers ----

func minimalDatasetJSON(orderID, status string) string {
	return `{
  "customers": [{"customer_id":"CUST-1","customer_name":"Ann","email":"ann@example.com",
    "registration_date":"2023-05-01T00:00:00Z","customer_segment":"Premium"}],
  "products": [{"product_id":"PROD-1","product_name":"Lamp","category":"Home & Garden",
    "price":40,"cost":30,"stock_quantity":3,"profit_margin":0}],
  "orders": [{"order_id":"` + orderID + `","customer_id":"CUST-1","order_date":"2024-02-03T10:00:00Z",
    "total_amount":80,"status":"` + status + `","shipping_state":"CA","payment_method":"paypal"}],
  "order_items": [{"order_item_id":1,"order_id":"` + orderID + `","product_id":"PROD-1",
    "quantity":2,"unit_price":40,"total_price":0}]
}`
}
