package domain

import (
	"math"
	"time"
)

// OrderStatus - статус заказа.
type OrderStatus string

const (
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
	StatusPending   OrderStatus = "pending"
)

// Valid - статус входит в допустимое множество.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusPending:
		return true
	}
	return false
}

// CustomerSegment - сегмент клиента.
type CustomerSegment string

const (
	SegmentPremium CustomerSegment = "Premium"
	SegmentRegular CustomerSegment = "Regular"
	SegmentBudget  CustomerSegment = "Budget"
)

func (s CustomerSegment) Valid() bool {
	switch s {
	case SegmentPremium, SegmentRegular, SegmentBudget:
		return true
	}
	return false
}

// Order - заголовок заказа. После загрузки не изменяется.
type Order struct {
	OrderID       string      `json:"order_id"`
	CustomerID    string      `json:"customer_id"`
	OrderDate     time.Time   `json:"order_date"`
	TotalAmount   float64     `json:"total_amount"`
	Status        OrderStatus `json:"status"`
	ShippingState string      `json:"shipping_state"`
	PaymentMethod string      `json:"payment_method"`
}

// Product - товар каталога. ProfitMargin вычисляется при загрузке (см. Normalize).
type Product struct {
	ProductID     string  `json:"product_id"`
	ProductName   string  `json:"product_name"`
	Category      string  `json:"category"`
	Price         float64 `json:"price"`
	Cost          float64 `json:"cost"`
	StockQuantity int     `json:"stock_quantity"`
	ProfitMargin  float64 `json:"profit_margin"`
}

// OrderItem - строка заказа. TotalPrice = Quantity * UnitPrice.
type OrderItem struct {
	OrderItemID int64   `json:"order_item_id"`
	OrderID     string  `json:"order_id"`
	ProductID   string  `json:"product_id"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}

// Customer - клиент.
type Customer struct {
	CustomerID       string          `json:"customer_id"`
	CustomerName     string          `json:"customer_name"`
	Email            string          `json:"email"`
	RegistrationDate time.Time       `json:"registration_date"`
	Segment          CustomerSegment `json:"customer_segment"`
}

// Dataset - единица массовой загрузки: четыре именованные таблицы.
type Dataset struct {
	Orders     []Order     `json:"orders,omitempty"`
	Products   []Product   `json:"products,omitempty"`
	OrderItems []OrderItem `json:"order_items,omitempty"`
	Customers  []Customer  `json:"customers,omitempty"`
}

// Имена таблиц хранилища.
const (
	TableOrders     = "orders"
	TableProducts   = "products"
	TableOrderItems = "order_items"
	TableCustomers  = "customers"
)

// Schema - колонки таблиц в порядке объявления.
func Schema() map[string][]string {
	return map[string][]string{
		TableOrders:     {"order_id", "customer_id", "order_date", "total_amount", "status", "shipping_state", "payment_method"},
		TableProducts:   {"product_id", "product_name", "category", "price", "cost", "stock_quantity", "profit_margin"},
		TableOrderItems: {"order_item_id", "order_id", "product_id", "quantity", "unit_price", "total_price"},
		TableCustomers:  {"customer_id", "customer_name", "email", "registration_date", "customer_segment"},
	}
}

// Empty - в наборе нет ни одной строки.
func (d *Dataset) Empty() bool {
	return d == nil || len(d.Orders)+len(d.Products)+len(d.OrderItems)+len(d.Customers) == 0
}

// Counts - количество строк по таблицам (для логов и метрик).
func (d *Dataset) Counts() map[string]int {
	if d == nil {
		return map[string]int{}
	}
	return map[string]int{
		TableOrders:     len(d.Orders),
		TableProducts:   len(d.Products),
		TableOrderItems: len(d.OrderItems),
		TableCustomers:  len(d.Customers),
	}
}

// Normalize - пересчитывает производные поля (profit_margin, total_price)
// и приводит даты к UTC.
func (d *Dataset) Normalize() {
	if d == nil {
		return
	}
	for i := range d.Products {
		d.Products[i].ProfitMargin = ProfitMargin(d.Products[i].Price, d.Products[i].Cost)
	}
	for i := range d.OrderItems {
		it := &d.OrderItems[i]
		it.TotalPrice = Round2(float64(it.Quantity) * it.UnitPrice)
	}
	for i := range d.Orders {
		d.Orders[i].OrderDate = d.Orders[i].OrderDate.UTC()
	}
	for i := range d.Customers {
		d.Customers[i].RegistrationDate = d.Customers[i].RegistrationDate.UTC()
	}
}

// ProfitMargin - (price-cost)/price*100, округлённая до 2 знаков; 0 при нулевой цене.
func ProfitMargin(price, cost float64) float64 {
	if price == 0 {
		return 0
	}
	return Round2((price - cost) / price * 100)
}

// Round2 - округление до центов.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
