//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/SahuH/Data-Analytics-Assistant/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// UniqSuffix - короткий случайный суффикс для идентификаторов.
func UniqSuffix() string { return randHex(6) }

var itemSeq atomic.Int64

func init() { itemSeq.Store(time.Now().UnixNano() % 1_000_000_000) }

// MakeBatch - согласованная пачка: клиент, товар, завершённый заказ и позиции.
// Идентификаторы уникальны, поэтому пачки разных тестов не пересекаются.
func MakeBatch(opts ...func(*domain.Dataset)) domain.Dataset {
	sfx := UniqSuffix()
	now := time.Now().UTC().Truncate(time.Second)

	cust := domain.Customer{
		CustomerID:       "CUST-" + sfx,
		CustomerName:     "Customer " + sfx,
		Email:            fmt.Sprintf("customer-%s@email.com", sfx),
		RegistrationDate: now.AddDate(-1, 0, 0),
		Segment:          domain.SegmentRegular,
	}
	prod := domain.Product{
		ProductID:     "PROD-" + sfx,
		ProductName:   "Widget " + sfx,
		Category:      "Electronics",
		Price:         100,
		Cost:          60,
		StockQuantity: 42,
	}
	ord := domain.Order{
		OrderID:       "ORD-" + sfx,
		CustomerID:    cust.CustomerID,
		OrderDate:     now,
		TotalAmount:   200,
		Status:        domain.StatusCompleted,
		ShippingState: "CA",
		PaymentMethod: "credit_card",
	}

	ds := domain.Dataset{
		Customers: []domain.Customer{cust},
		Products:  []domain.Product{prod},
		Orders:    []domain.Order{ord},
		OrderItems: []domain.OrderItem{{
			OrderItemID: itemSeq.Add(1),
			OrderID:     ord.OrderID,
			ProductID:   prod.ProductID,
			Quantity:    2,
			UnitPrice:   prod.Price,
		}},
	}
	for _, fn := range opts {
		fn(&ds)
	}
	ds.Normalize()
	return ds
}

// WithItems - n позиций по тому же товару вместо одной.
func WithItems(n int) func(*domain.Dataset) {
	return func(ds *domain.Dataset) {
		base := ds.OrderItems[0]
		ds.OrderItems = ds.OrderItems[:0]
		for i := 0; i < n; i++ {
			it := base
			it.OrderItemID = itemSeq.Add(1)
			it.Quantity = i + 1
			ds.OrderItems = append(ds.OrderItems, it)
		}
	}
}

// WithStatus - статус единственного заказа.
func WithStatus(s domain.OrderStatus) func(*domain.Dataset) {
	return func(ds *domain.Dataset) { ds.Orders[0].Status = s }
}

// WithDanglingItem - позиция ссылается на заказ, которого нет ни в пачке, ни в хранилище.
func WithDanglingItem() func(*domain.Dataset) {
	return func(ds *domain.Dataset) {
		ds.OrderItems[0].OrderID = "ORD-missing-" + UniqSuffix()
	}
}
