// Package sqlite - хранилище аналитики на SQLite (modernc.org/sqlite, без cgo).
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // database/sql driver name = "sqlite"

	"github.com/SahuH/Data-Analytics-Assistant/internal/domain"
	"github.com/SahuH/Data-Analytics-Assistant/internal/ports"
	"github.com/SahuH/Data-Analytics-Assistant/internal/repo/migrate"
)

// Проверка, что Store удовлетворяет интерфейсам хранилища.
var (
	_ ports.AnalyticsStore = (*Store)(nil)
	_ ports.DatasetStore   = (*Store)(nil)
)

const driverName = "sqlite"

// Store - файл SQLite. Соединение открывается на каждую сессию и закрывается вместе с ней.
type Store struct {
	path string
}

// New - конструктор Store. Файл создаётся при первом открытии.
func New(path string) *Store { return &Store{path: path} }

// Path - путь к файлу базы.
func (s *Store) Path() string { return s.path }

func (s *Store) dsn() string {
	sep := "?"
	if strings.Contains(s.path, "?") {
		sep = "&"
	}
	return s.path + sep + "_pragma=busy_timeout(5000)"
}

func (s *Store) open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open(driverName, s.dsn())
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", s.path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", s.path, err)
	}
	return db, nil
}

// Migrate - создаёт схему встроенными миграциями goose.
func (s *Store) Migrate(ctx context.Context) (int, error) {
	db, err := s.open(ctx)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	return migrate.Up(ctx, db, goose.DialectSQLite3, migrate.DirSQLite)
}

// Dialect - SQL-диалект SQLite.
func (s *Store) Dialect() ports.SQLDialect { return Dialect{} }

// Open - новая сессия (отдельное соединение) на один вызов инструмента.
func (s *Store) Open(ctx context.Context) (ports.QuerySession, error) {
	db, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	// Одно соединение на сессию.
	db.SetMaxOpenConns(1)
	return &session{db: db}, nil
}

// Populated - в таблице orders есть хотя бы одна строка.
func (s *Store) Populated(ctx context.Context) (bool, error) {
	db, err := s.open(ctx)
	if err != nil {
		return false, err
	}
	defer db.Close()

	var exists int
	err = db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM orders)`).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check orders: %w", err)
	}
	return exists == 1, nil
}

// Replace - транзакционно очищает четыре таблицы и загружает набор заново.
func (s *Store) Replace(ctx context.Context, ds *domain.Dataset) error {
	return s.write(ctx, ds, true)
}

// Append - транзакционный upsert строк набора по первичным ключам.
func (s *Store) Append(ctx context.Context, ds *domain.Dataset) error {
	return s.write(ctx, ds, false)
}

func (s *Store) write(ctx context.Context, ds *domain.Dataset, truncate bool) (err error) {
	if ds == nil {
		return errors.New("dataset is nil")
	}

	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if truncate {
		for _, table := range []string{domain.TableOrderItems, domain.TableOrders, domain.TableProducts, domain.TableCustomers} {
			if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
	}

	if err = insertCustomers(ctx, tx, ds.Customers); err != nil {
		return err
	}
	if err = insertProducts(ctx, tx, ds.Products); err != nil {
		return err
	}
	if err = insertOrders(ctx, tx, ds.Orders); err != nil {
		return err
	}
	if err = insertOrderItems(ctx, tx, ds.OrderItems); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// execEach - подготовленный INSERT для каждой строки.
func execEach(ctx context.Context, tx *sql.Tx, table, query string, n int, args func(i int) []any) error {
	if n == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare %s: %w", table, err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, args(i)...); err != nil {
			return fmt.Errorf("insert %s row %d: %w", table, i, err)
		}
	}
	return nil
}

func insertCustomers(ctx context.Context, tx *sql.Tx, rows []domain.Customer) error {
	return execEach(ctx, tx, domain.TableCustomers, `
		INSERT INTO customers (customer_id, customer_name, email, registration_date, customer_segment)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (customer_id) DO UPDATE SET
			customer_name = excluded.customer_name,
			email = excluded.email,
			registration_date = excluded.registration_date,
			customer_segment = excluded.customer_segment
	`, len(rows), func(i int) []any {
		c := rows[i]
		return []any{c.CustomerID, c.CustomerName, c.Email, formatTime(c.RegistrationDate), string(c.Segment)}
	})
}

func insertProducts(ctx context.Context, tx *sql.Tx, rows []domain.Product) error {
	return execEach(ctx, tx, domain.TableProducts, `
		INSERT INTO products (product_id, product_name, category, price, cost, stock_quantity, profit_margin)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (product_id) DO UPDATE SET
			product_name = excluded.product_name,
			category = excluded.category,
			price = excluded.price,
			cost = excluded.cost,
			stock_quantity = excluded.stock_quantity,
			profit_margin = excluded.profit_margin
	`, len(rows), func(i int) []any {
		p := rows[i]
		return []any{p.ProductID, p.ProductName, p.Category, p.Price, p.Cost, p.StockQuantity, p.ProfitMargin}
	})
}

func insertOrders(ctx context.Context, tx *sql.Tx, rows []domain.Order) error {
	return execEach(ctx, tx, domain.TableOrders, `
		INSERT INTO orders (order_id, customer_id, order_date, total_amount, status, shipping_state, payment_method)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (order_id) DO UPDATE SET
			customer_id = excluded.customer_id,
			order_date = excluded.order_date,
			total_amount = excluded.total_amount,
			status = excluded.status,
			shipping_state = excluded.shipping_state,
			payment_method = excluded.payment_method
	`, len(rows), func(i int) []any {
		o := rows[i]
		return []any{o.OrderID, o.CustomerID, formatTime(o.OrderDate), o.TotalAmount, string(o.Status), o.ShippingState, o.PaymentMethod}
	})
}

func insertOrderItems(ctx context.Context, tx *sql.Tx, rows []domain.OrderItem) error {
	return execEach(ctx, tx, domain.TableOrderItems, `
		INSERT INTO order_items (order_item_id, order_id, product_id, quantity, unit_price, total_price)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (order_item_id) DO UPDATE SET
			order_id = excluded.order_id,
			product_id = excluded.product_id,
			quantity = excluded.quantity,
			unit_price = excluded.unit_price,
			total_price = excluded.total_price
	`, len(rows), func(i int) []any {
		it := rows[i]
		return []any{it.OrderItemID, it.OrderID, it.ProductID, it.Quantity, it.UnitPrice, it.TotalPrice}
	})
}
