package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SahuH/Data-Analytics-Assistant/internal/domain"
	"github.com/SahuH/Data-Analytics-Assistant/internal/ports"
)

// Проверка, что Store удовлетворяет интерфейсам хранилища.
var (
	_ ports.AnalyticsStore = (*Store)(nil)
	_ ports.DatasetStore   = (*Store)(nil)
)

// Store - хранилище аналитики на Postgres (pgxpool).
type Store struct {
	pool *pgxpool.Pool
}

// NewStore - конструктор Store.
func NewStore(pool *pgxpool.Pool) *Store { return &Store{pool: pool} }

func (s *Store) Dialect() ports.SQLDialect { return Dialect{} }

// Open - берёт соединение из пула на время одного вызова инструмента.
func (s *Store) Open(ctx context.Context) (ports.QuerySession, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire: %w", err)
	}
	return &session{conn: conn}, nil
}

// Populated - в orders есть хотя бы одна строка.
func (s *Store) Populated(ctx context.Context) (bool, error) {
	var exists bool
	if err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders)`).Scan(&exists); err != nil {
		return false, fmt.Errorf("check orders: %w", err)
	}
	return exists, nil
}

// Replace - в одной транзакции TRUNCATE четырёх таблиц и COPY нового набора.
func (s *Store) Replace(ctx context.Context, ds *domain.Dataset) error {
	if ds == nil {
		return errors.New("dataset is nil")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		// При уже завершённой транзакции Rollback вернёт ErrTxClosed - игнорируем.
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			_ = rbErr
		}
	}()

	if _, err = tx.Exec(ctx, `TRUNCATE order_items, orders, products, customers`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	if err = copyCustomers(ctx, tx, ds.Customers); err != nil {
		return err
	}
	if err = copyProducts(ctx, tx, ds.Products); err != nil {
		return err
	}
	if err = copyOrders(ctx, tx, ds.Orders); err != nil {
		return err
	}
	if err = copyOrderItems(ctx, tx, ds.OrderItems); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Append - идемпотентный upsert всех строк набора одной пачкой в транзакции.
func (s *Store) Append(ctx context.Context, ds *domain.Dataset) error {
	if ds == nil {
		return errors.New("dataset is nil")
	}
	if ds.Empty() {
		return nil
	}

	batch := &pgx.Batch{}
	for _, c := range ds.Customers {
		batch.Queue(`
			INSERT INTO customers (customer_id, customer_name, email, registration_date, customer_segment)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (customer_id) DO UPDATE SET
				customer_name = EXCLUDED.customer_name,
				email = EXCLUDED.email,
				registration_date = EXCLUDED.registration_date,
				customer_segment = EXCLUDED.customer_segment
		`, c.CustomerID, c.CustomerName, c.Email, c.RegistrationDate.UTC(), string(c.Segment))
	}
	for _, p := range ds.Products {
		batch.Queue(`
			INSERT INTO products (product_id, product_name, category, price, cost, stock_quantity, profit_margin)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (product_id) DO UPDATE SET
				product_name = EXCLUDED.product_name,
				category = EXCLUDED.category,
				price = EXCLUDED.price,
				cost = EXCLUDED.cost,
				stock_quantity = EXCLUDED.stock_quantity,
				profit_margin = EXCLUDED.profit_margin
		`, p.ProductID, p.ProductName, p.Category, p.Price, p.Cost, int32(p.StockQuantity), p.ProfitMargin)
	}
	for _, o := range ds.Orders {
		batch.Queue(`
			INSERT INTO orders (order_id, customer_id, order_date, total_amount, status, shipping_state, payment_method)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (order_id) DO UPDATE SET
				customer_id = EXCLUDED.customer_id,
				order_date = EXCLUDED.order_date,
				total_amount = EXCLUDED.total_amount,
				status = EXCLUDED.status,
				shipping_state = EXCLUDED.shipping_state,
				payment_method = EXCLUDED.payment_method
		`, o.OrderID, o.CustomerID, o.OrderDate.UTC(), o.TotalAmount, string(o.Status), o.ShippingState, o.PaymentMethod)
	}
	for _, it := range ds.OrderItems {
		batch.Queue(`
			INSERT INTO order_items (order_item_id, order_id, product_id, quantity, unit_price, total_price)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (order_item_id) DO UPDATE SET
				order_id = EXCLUDED.order_id,
				product_id = EXCLUDED.product_id,
				quantity = EXCLUDED.quantity,
				unit_price = EXCLUDED.unit_price,
				total_price = EXCLUDED.total_price
		`, it.OrderItemID, it.OrderID, it.ProductID, int32(it.Quantity), it.UnitPrice, it.TotalPrice)
	}

	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("upsert batch: %w", err)
		}
		return nil
	})
}

// copy* - вставка через COPY (CopyFromRows); быстрее, чем INSERT в цикле.

func copyCustomers(ctx context.Context, tx pgx.Tx, list []domain.Customer) error {
	rows := make([][]any, 0, len(list))
	for _, c := range list {
		rows = append(rows, []any{c.CustomerID, c.CustomerName, c.Email, c.RegistrationDate.UTC(), string(c.Segment)})
	}
	return copyTable(ctx, tx, domain.TableCustomers, rows)
}

func copyProducts(ctx context.Context, tx pgx.Tx, list []domain.Product) error {
	rows := make([][]any, 0, len(list))
	for _, p := range list {
		rows = append(rows, []any{p.ProductID, p.ProductName, p.Category, p.Price, p.Cost, int32(p.StockQuantity), p.ProfitMargin})
	}
	return copyTable(ctx, tx, domain.TableProducts, rows)
}

func copyOrders(ctx context.Context, tx pgx.Tx, list []domain.Order) error {
	rows := make([][]any, 0, len(list))
	for _, o := range list {
		rows = append(rows, []any{o.OrderID, o.CustomerID, o.OrderDate.UTC(), o.TotalAmount, string(o.Status), o.ShippingState, o.PaymentMethod})
	}
	return copyTable(ctx, tx, domain.TableOrders, rows)
}

func copyOrderItems(ctx context.Context, tx pgx.Tx, list []domain.OrderItem) error {
	rows := make([][]any, 0, len(list))
	for _, it := range list {
		rows = append(rows, []any{it.OrderItemID, it.OrderID, it.ProductID, int32(it.Quantity), it.UnitPrice, it.TotalPrice})
	}
	return copyTable(ctx, tx, domain.TableOrderItems, rows)
}

func copyTable(ctx context.Context, tx pgx.Tx, table string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := tx.CopyFrom(ctx, pgx.Identifier{table}, domain.Schema()[table], pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("copy %s: %w", table, err)
	}
	return nil
}
