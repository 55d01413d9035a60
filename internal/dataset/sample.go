package dataset

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/SahuH/Data-Analytics-Assistant/internal/domain"
	"github.com/SahuH/Data-Analytics-Assistant/internal/ports"
)

var _ ports.DatasetSource = (*SampleSource)(nil)

// Справочники генератора.
var (
	Categories     = []string{"Electronics", "Clothing", "Home & Garden", "Sports", "Books", "Beauty"}
	ShippingStates = []string{"CA", "NY", "TX", "FL", "IL", "PA", "OH"}

	statuses       = []domain.OrderStatus{domain.StatusCompleted, domain.StatusCancelled, domain.StatusPending}
	statusWeights  = []float64{0.85, 0.10, 0.05}
	payments       = []string{"credit_card", "paypal", "debit_card"}
	paymentWeights = []float64{0.6, 0.25, 0.15}
	segments       = []domain.CustomerSegment{domain.SegmentPremium, domain.SegmentRegular, domain.SegmentBudget}
	segmentWeights = []float64{0.2, 0.6, 0.2}
)

// Границы дат: заказы и регистрации клиентов распределены равномерно.
var (
	ordersFrom        = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	ordersTo          = time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)
	registrationsFrom = time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC)
	registrationsTo   = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// SampleConfig - размеры и seed синтетического набора.
type SampleConfig struct {
	Seed       uint64
	Orders     int
	Products   int
	OrderItems int
	// Customers - верхняя граница номера клиента (CUST-0001..CUST-<N-1>).
	Customers int
}

// DefaultSampleConfig - 5000 заказов, 500 товаров, 8000 позиций, до 999 клиентов.
func DefaultSampleConfig() SampleConfig {
	return SampleConfig{Seed: 42, Orders: 5000, Products: 500, OrderItems: 8000, Customers: 1000}
}

// SampleSource - детерминированный генератор: один и тот же seed даёт один и тот же набор.
type SampleSource struct {
	cfg SampleConfig
}

func NewSampleSource(cfg SampleConfig) *SampleSource {
	def := DefaultSampleConfig()
	if cfg.Orders <= 0 {
		cfg.Orders = def.Orders
	}
	if cfg.Products <= 0 {
		cfg.Products = def.Products
	}
	if cfg.OrderItems <= 0 {
		cfg.OrderItems = def.OrderItems
	}
	if cfg.Customers <= 1 {
		cfg.Customers = def.Customers
	}
	return &SampleSource{cfg: cfg}
}

func (s *SampleSource) Load(ctx context.Context) (*domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Generate(s.cfg), nil
}

// Generate - строит набор по конфигурации.
// Сумма заказа не связана с его позициями: total_amount берётся из логнормального распределения.
func Generate(cfg SampleConfig) *domain.Dataset {
	rnd := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	ds := &domain.Dataset{
		Orders:     make([]domain.Order, 0, cfg.Orders),
		Products:   make([]domain.Product, 0, cfg.Products),
		OrderItems: make([]domain.OrderItem, 0, cfg.OrderItems),
	}

	seen := make(map[string]struct{})
	customerIDs := []string{}
	for i := 0; i < cfg.Orders; i++ {
		cid := fmt.Sprintf("CUST-%04d", 1+rnd.IntN(cfg.Customers-1))
		if _, ok := seen[cid]; !ok {
			seen[cid] = struct{}{}
			customerIDs = append(customerIDs, cid)
		}
		ds.Orders = append(ds.Orders, domain.Order{
			OrderID:       fmt.Sprintf("ORD-%06d", i+1),
			CustomerID:    cid,
			OrderDate:     spread(ordersFrom, ordersTo, i, cfg.Orders),
			TotalAmount:   domain.Round2(math.Exp(4 + 0.5*rnd.NormFloat64())),
			Status:        statuses[weighted(rnd, statusWeights)],
			ShippingState: ShippingStates[rnd.IntN(len(ShippingStates))],
			PaymentMethod: payments[weighted(rnd, paymentWeights)],
		})
	}

	for i := 0; i < cfg.Products; i++ {
		ds.Products = append(ds.Products, domain.Product{
			ProductID:     fmt.Sprintf("PROD-%04d", i+1),
			ProductName:   fmt.Sprintf("Product %d", i+1),
			Category:      Categories[rnd.IntN(len(Categories))],
			Price:         uniform(rnd, 10, 500),
			Cost:          uniform(rnd, 5, 250),
			StockQuantity: rnd.IntN(1000),
		})
	}

	for i := 0; i < cfg.OrderItems; i++ {
		ds.OrderItems = append(ds.OrderItems, domain.OrderItem{
			OrderItemID: int64(i + 1),
			OrderID:     ds.Orders[rnd.IntN(len(ds.Orders))].OrderID,
			ProductID:   ds.Products[rnd.IntN(len(ds.Products))].ProductID,
			Quantity:    1 + rnd.IntN(4),
			UnitPrice:   uniform(rnd, 10, 500),
		})
	}

	ds.Customers = make([]domain.Customer, 0, len(customerIDs))
	for i, cid := range customerIDs {
		ds.Customers = append(ds.Customers, domain.Customer{
			CustomerID:       cid,
			CustomerName:     fmt.Sprintf("Customer %d", i),
			Email:            fmt.Sprintf("customer%d@email.com", i),
			RegistrationDate: spread(registrationsFrom, registrationsTo, i, len(customerIDs)),
			Segment:          segments[weighted(rnd, segmentWeights)],
		})
	}

	ds.Normalize()
	return ds
}

// spread - i-я из n равноотстоящих точек на [from, to] (обе границы включены).
func spread(from, to time.Time, i, n int) time.Time {
	if n <= 1 {
		return from
	}
	secs := int64(to.Sub(from) / time.Second)
	return from.Add(time.Duration(secs*int64(i)/int64(n-1)) * time.Second)
}

func uniform(rnd *rand.Rand, lo, hi float64) float64 {
	return domain.Round2(lo + rnd.Float64()*(hi-lo))
}

// weighted - индекс по весам (сумма весов = 1).
func weighted(rnd *rand.Rand, weights []float64) int {
	x := rnd.Float64()
	acc := 0.0
	for i, w := range weights {
		acc += w
		if x < acc {
			return i
		}
	}
	return len(weights) - 1
}
