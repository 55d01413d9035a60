package validate_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/SahuH/Data-Analytics-Assistant/internal/domain"
	"github.com/SahuH/Data-Analytics-Assistant/pkg/validate"
)

func validDataset() *domain.Dataset {
	day := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Dataset{
		Customers: []domain.Customer{
			{CustomerID: "CUST-0001", CustomerName: "Ann", Email: "ann@example.com", RegistrationDate: day, Segment: domain.SegmentRegular},
		},
		Products: []domain.Product{
			{ProductID: "PROD-0001", ProductName: "Lamp", Category: "Home & Garden", Price: 40, Cost: 30, StockQuantity: 5},
		},
		Orders: []domain.Order{
			{OrderID: "ORD-000001", CustomerID: "CUST-0001", OrderDate: day, TotalAmount: 80, Status: domain.StatusCompleted, ShippingState: "CA", PaymentMethod: "paypal"},
		},
		OrderItems: []domain.OrderItem{
			{OrderItemID: 1, OrderID: "ORD-000001", ProductID: "PROD-0001", Quantity: 2, UnitPrice: 40, TotalPrice: 80},
		},
	}
}

func TestDatasetValidator_Validate(t *testing.T) {
	v := validate.NewDatasetValidator()
	ctx := context.Background()

	t.Run("valid dataset", func(t *testing.T) {
		if err := v.Validate(ctx, validDataset()); err != nil {
			t.Fatalf("expected valid dataset, got: %v", err)
		}
	})

	type testCase struct {
		name   string
		mutate func(ds *domain.Dataset)
		msg    string
	}

	cases := []testCase{
		{
			name:   "unknown status",
			mutate: func(ds *domain.Dataset) { ds.Orders[0].Status = "shipped" },
			msg:    `orders[0].status "shipped"`,
		},
		{
			name:   "unknown segment",
			mutate: func(ds *domain.Dataset) { ds.Customers[0].Segment = "Gold" },
			msg:    `customers[0].customer_segment "Gold"`,
		},
		{
			name:   "invalid email",
			mutate: func(ds *domain.Dataset) { ds.Customers[0].Email = "not-an-email" },
			msg:    "customers[0].email некорректен",
		},
		{
			name:   "negative total_amount",
			mutate: func(ds *domain.Dataset) { ds.Orders[0].TotalAmount = -1 },
			msg:    "orders[0].total_amount должна быть неотрицательной",
		},
		{
			name:   "negative price",
			mutate: func(ds *domain.Dataset) { ds.Products[0].Price = -0.01 },
			msg:    "products[0].price должна быть неотрицательной",
		},
		{
			name:   "zero quantity",
			mutate: func(ds *domain.Dataset) { ds.OrderItems[0].Quantity = 0 },
			msg:    "order_items[0].quantity должно быть >= 1",
		},
		{
			name:   "order references unknown customer",
			mutate: func(ds *domain.Dataset) { ds.Orders[0].CustomerID = "CUST-9999" },
			msg:    `orders[0].customer_id "CUST-9999" не найден в customers`,
		},
		{
			name:   "item references unknown order",
			mutate: func(ds *domain.Dataset) { ds.OrderItems[0].OrderID = "ORD-X" },
			msg:    `order_items[0].order_id "ORD-X" не найден в orders`,
		},
		{
			name:   "item references unknown product",
			mutate: func(ds *domain.Dataset) { ds.OrderItems[0].ProductID = "PROD-X" },
			msg:    `order_items[0].product_id "PROD-X" не найден в products`,
		},
		{
			name: "duplicate order id",
			mutate: func(ds *domain.Dataset) {
				ds.Orders = append(ds.Orders, ds.Orders[0])
			},
			msg: `orders[1].order_id "ORD-000001" повторяется`,
		},
		{
			name:   "old order date",
			mutate: func(ds *domain.Dataset) { ds.Orders[0].OrderDate = time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC) },
			msg:    "orders[0].order_date некорректна",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ds := validDataset()
			tc.mutate(ds)
			err := v.Validate(ctx, ds)
			if err == nil {
				t.Fatalf("expected error, got nil")
			}
			if !errors.Is(err, validate.ErrInvalidDataset) {
				t.Errorf("expected ErrInvalidDataset, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.msg) {
				t.Errorf("expected error message to contain %q, got %q", tc.msg, err.Error())
			}
		})
	}

	t.Run("nil dataset", func(t *testing.T) {
		if err := v.Validate(ctx, nil); !errors.Is(err, validate.ErrInvalidDataset) {
			t.Fatalf("expected ErrInvalidDataset, got %v", err)
		}
	})
}

func TestDatasetValidator_Violations(t *testing.T) {
	ds := validDataset()
	ds.Orders[0].Status = "lost"
	ds.OrderItems[0].Quantity = 0

	v := validate.NewDatasetValidator()
	got := v.Violations(ds)
	if len(got) != 2 {
		t.Fatalf("expected 2 violations, got %d: %v", len(got), got)
	}

	err := v.Validate(context.Background(), ds)
	if err == nil || !strings.Contains(err.Error(), "(и ещё 1)") {
		t.Fatalf("expected summary of remaining violations, got %v", err)
	}
}

func TestBatchValidator_PartialReferences(t *testing.T) {
	ctx := context.Background()

	// пачка только с позициями: заказы и товары уже в хранилище
	items := &domain.Dataset{OrderItems: validDataset().OrderItems}
	if err := validate.NewBatchValidator().Validate(ctx, items); err != nil {
		t.Fatalf("expected partial batch to pass, got %v", err)
	}
	if err := validate.NewDatasetValidator().Validate(ctx, items); err == nil {
		t.Fatalf("expected strict validator to reject dangling references")
	}

	// если заказы в пачке есть - ссылки на них проверяются
	mixed := validDataset()
	mixed.Customers = nil
	mixed.OrderItems[0].OrderID = "ORD-404"
	err := validate.NewBatchValidator().Validate(ctx, mixed)
	if err == nil || !strings.Contains(err.Error(), `"ORD-404"`) {
		t.Fatalf("expected dangling order reference, got %v", err)
	}

	missing := &domain.Dataset{OrderItems: []domain.OrderItem{{OrderItemID: 1, ProductID: "PROD-0001", Quantity: 1}}}
	err = validate.NewBatchValidator().Validate(ctx, missing)
	if err == nil || !strings.Contains(err.Error(), "order_items[0].order_id обязателен") {
		t.Fatalf("expected required order_id, got %v", err)
	}
}
