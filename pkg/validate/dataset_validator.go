package validate

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/SahuH/Data-Analytics-Assistant/internal/domain"
	"github.com/SahuH/Data-Analytics-Assistant/internal/ports"
)

// Проверка, что DatasetValidator удовлетворяет интерфейсу DatasetValidator.
var _ ports.DatasetValidator = (*DatasetValidator)(nil)

// ErrInvalidDataset - базовая (sentinel error) ошибка валидации набора данных.
var ErrInvalidDataset = domain.ErrInvalidDataset

// Нижняя граница дат заказов и регистраций.
var minDate = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// DatasetValidator - проверка инвариантов набора:
// ссылочная целостность, enum-ы, знаки сумм, quantity >= 1.
type DatasetValidator struct {
	// partial - пачка live-инжеста: ссылки проверяются только на таблицы,
	// присутствующие в самой пачке (остальное уже лежит в хранилище).
	partial bool
}

// NewDatasetValidator - строгая проверка полного набора (CSV, первичная загрузка).
func NewDatasetValidator() *DatasetValidator { return &DatasetValidator{} }

// NewBatchValidator - проверка пачки инжеста.
func NewBatchValidator() *DatasetValidator { return &DatasetValidator{partial: true} }

// Validate - возвращает первое нарушение, обёрнутое в ErrInvalidDataset.
func (v *DatasetValidator) Validate(_ context.Context, ds *domain.Dataset) error {
	if ds == nil {
		return fmt.Errorf("%w: набор не может быть nil", ErrInvalidDataset)
	}
	if violations := v.Violations(ds); len(violations) > 0 {
		if len(violations) == 1 {
			return fmt.Errorf("%w: %s", ErrInvalidDataset, violations[0])
		}
		return fmt.Errorf("%w: %s (и ещё %d)", ErrInvalidDataset, violations[0], len(violations)-1)
	}
	return nil
}

// Violations - все нарушения набора в порядке таблиц customers, products, orders, order_items.
func (v *DatasetValidator) Violations(ds *domain.Dataset) []string {
	if ds == nil {
		return []string{"набор не может быть nil"}
	}
	var out []string
	add := func(format string, args ...any) { out = append(out, fmt.Sprintf(format, args...)) }

	customers := make(map[string]struct{}, len(ds.Customers))
	for i := range ds.Customers {
		c := &ds.Customers[i]
		if c.CustomerID == "" {
			add("customers[%d].customer_id обязателен", i)
		} else if _, dup := customers[c.CustomerID]; dup {
			add("customers[%d].customer_id %q повторяется", i, c.CustomerID)
		}
		customers[c.CustomerID] = struct{}{}

		if c.CustomerName == "" {
			add("customers[%d].customer_name обязателен", i)
		}
		if _, err := mail.ParseAddress(c.Email); err != nil {
			add("customers[%d].email некорректен", i)
		}
		if !c.Segment.Valid() {
			add("customers[%d].customer_segment %q не входит в {Premium, Regular, Budget}", i, c.Segment)
		}
		if c.RegistrationDate.Before(minDate) {
			add("customers[%d].registration_date некорректна", i)
		}
	}

	products := make(map[string]struct{}, len(ds.Products))
	for i := range ds.Products {
		p := &ds.Products[i]
		if p.ProductID == "" {
			add("products[%d].product_id обязателен", i)
		} else if _, dup := products[p.ProductID]; dup {
			add("products[%d].product_id %q повторяется", i, p.ProductID)
		}
		products[p.ProductID] = struct{}{}

		if p.Category == "" {
			add("products[%d].category обязательна", i)
		}
		if p.Price < 0 {
			add("products[%d].price должна быть неотрицательной", i)
		}
		if p.Cost < 0 {
			add("products[%d].cost должна быть неотрицательной", i)
		}
		if p.StockQuantity < 0 {
			add("products[%d].stock_quantity должен быть неотрицательным", i)
		}
	}

	orders := make(map[string]struct{}, len(ds.Orders))
	for i := range ds.Orders {
		o := &ds.Orders[i]
		if o.OrderID == "" {
			add("orders[%d].order_id обязателен", i)
		} else if _, dup := orders[o.OrderID]; dup {
			add("orders[%d].order_id %q повторяется", i, o.OrderID)
		}
		orders[o.OrderID] = struct{}{}

		if o.CustomerID == "" {
			add("orders[%d].customer_id обязателен", i)
		} else if v.mustResolve(len(ds.Customers)) {
			if _, ok := customers[o.CustomerID]; !ok {
				add("orders[%d].customer_id %q не найден в customers", i, o.CustomerID)
			}
		}
		if !o.Status.Valid() {
			add("orders[%d].status %q не входит в {completed, cancelled, pending}", i, o.Status)
		}
		if o.TotalAmount < 0 {
			add("orders[%d].total_amount должна быть неотрицательной", i)
		}
		if o.OrderDate.Before(minDate) {
			add("orders[%d].order_date некорректна", i)
		}
	}

	items := make(map[int64]struct{}, len(ds.OrderItems))
	for i := range ds.OrderItems {
		it := &ds.OrderItems[i]
		if _, dup := items[it.OrderItemID]; dup {
			add("order_items[%d].order_item_id %d повторяется", i, it.OrderItemID)
		}
		items[it.OrderItemID] = struct{}{}

		if it.OrderID == "" {
			add("order_items[%d].order_id обязателен", i)
		} else if v.mustResolve(len(ds.Orders)) {
			if _, ok := orders[it.OrderID]; !ok {
				add("order_items[%d].order_id %q не найден в orders", i, it.OrderID)
			}
		}
		if it.ProductID == "" {
			add("order_items[%d].product_id обязателен", i)
		} else if v.mustResolve(len(ds.Products)) {
			if _, ok := products[it.ProductID]; !ok {
				add("order_items[%d].product_id %q не найден в products", i, it.ProductID)
			}
		}
		if it.Quantity < 1 {
			add("order_items[%d].quantity должно быть >= 1", i)
		}
		if it.UnitPrice < 0 {
			add("order_items[%d].unit_price должна быть неотрицательной", i)
		}
	}

	return out
}

// mustResolve - нужно ли искать ссылку в таблице с n строками.
func (v *DatasetValidator) mustResolve(n int) bool {
	return !v.partial || n > 0
}
