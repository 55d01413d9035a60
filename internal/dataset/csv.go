package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/SahuH/Data-Analytics-Assistant/internal/domain"
	"github.com/SahuH/Data-Analytics-Assistant/internal/ports"
)

var _ ports.DatasetSource = (*CSVSource)(nil)

// Форматы дат, которые принимаем во входных CSV.
var dateLayouts = []string{
	time.DateTime,
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// CSVSource - каталог с четырьмя файлами <table>.csv (первая строка - заголовок).
type CSVSource struct {
	dir string
}

func NewCSVSource(dir string) *CSVSource { return &CSVSource{dir: dir} }

// Load - читает все четыре таблицы и пересчитывает производные поля.
// Колонки сопоставляются по заголовку; profit_margin и total_price необязательны.
func (s *CSVSource) Load(ctx context.Context) (*domain.Dataset, error) {
	ds := &domain.Dataset{}

	steps := []struct {
		table string
		parse func(rec record) error
	}{
		{domain.TableCustomers, func(r record) error {
			c, err := parseCustomer(r)
			if err == nil {
				ds.Customers = append(ds.Customers, c)
			}
			return err
		}},
		{domain.TableProducts, func(r record) error {
			p, err := parseProduct(r)
			if err == nil {
				ds.Products = append(ds.Products, p)
			}
			return err
		}},
		{domain.TableOrders, func(r record) error {
			o, err := parseOrder(r)
			if err == nil {
				ds.Orders = append(ds.Orders, o)
			}
			return err
		}},
		{domain.TableOrderItems, func(r record) error {
			it, err := parseOrderItem(r)
			if err == nil {
				ds.OrderItems = append(ds.OrderItems, it)
			}
			return err
		}},
	}

	for _, st := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.readTable(st.table, st.parse); err != nil {
			return nil, err
		}
	}

	ds.Normalize()
	return ds, nil
}

func (s *CSVSource) readTable(table string, parse func(record) error) error {
	path := filepath.Join(s.dir, table+".csv")
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("%s: read header: %w", table, err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, col := range requiredColumns(table) {
		if _, ok := index[col]; !ok {
			return fmt.Errorf("%s: missing column %q", table, col)
		}
	}

	line := 1
	for {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		line++
		if err != nil {
			return fmt.Errorf("%s: line %d: %w", table, line, err)
		}
		if err := parse(record{index: index, fields: fields}); err != nil {
			return fmt.Errorf("%s: line %d: %w", table, line, err)
		}
	}
}

// requiredColumns - колонки таблицы без производных.
func requiredColumns(table string) []string {
	out := []string{}
	for _, col := range domain.Schema()[table] {
		if col == "profit_margin" || col == "total_price" {
			continue
		}
		out = append(out, col)
	}
	return out
}

// record - строка CSV с доступом по имени колонки.
type record struct {
	index  map[string]int
	fields []string
}

func (r record) str(col string) string {
	i, ok := r.index[col]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

func (r record) floatVal(col string) (float64, error) {
	v, err := strconv.ParseFloat(r.str(col), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", col, err)
	}
	return v, nil
}

func (r record) intVal(col string) (int64, error) {
	raw := r.str(col)
	v, err := strconv.ParseInt(raw, 10, 64)
	if err == nil {
		return v, nil
	}
	// "3.0" из выгрузок pandas
	f, ferr := strconv.ParseFloat(raw, 64)
	if ferr != nil || f != float64(int64(f)) {
		return 0, fmt.Errorf("%s: %w", col, err)
	}
	return int64(f), nil
}

func (r record) timeVal(col string) (time.Time, error) {
	raw := r.str(col)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%s: unsupported date %q", col, raw)
}

func parseCustomer(r record) (domain.Customer, error) {
	reg, err := r.timeVal("registration_date")
	if err != nil {
		return domain.Customer{}, err
	}
	return domain.Customer{
		CustomerID:       r.str("customer_id"),
		CustomerName:     r.str("customer_name"),
		Email:            r.str("email"),
		RegistrationDate: reg,
		Segment:          domain.CustomerSegment(r.str("customer_segment")),
	}, nil
}

func parseProduct(r record) (domain.Product, error) {
	price, err := r.floatVal("price")
	if err != nil {
		return domain.Product{}, err
	}
	cost, err := r.floatVal("cost")
	if err != nil {
		return domain.Product{}, err
	}
	stock, err := r.intVal("stock_quantity")
	if err != nil {
		return domain.Product{}, err
	}
	return domain.Product{
		ProductID:     r.str("product_id"),
		ProductName:   r.str("product_name"),
		Category:      r.str("category"),
		Price:         price,
		Cost:          cost,
		StockQuantity: int(stock),
	}, nil
}

func parseOrder(r record) (domain.Order, error) {
	date, err := r.timeVal("order_date")
	if err != nil {
		return domain.Order{}, err
	}
	amount, err := r.floatVal("total_amount")
	if err != nil {
		return domain.Order{}, err
	}
	return domain.Order{
		OrderID:       r.str("order_id"),
		CustomerID:    r.str("customer_id"),
		OrderDate:     date,
		TotalAmount:   amount,
		Status:        domain.OrderStatus(r.str("status")),
		ShippingState: r.str("shipping_state"),
		PaymentMethod: r.str("payment_method"),
	}, nil
}

func parseOrderItem(r record) (domain.OrderItem, error) {
	id, err := r.intVal("order_item_id")
	if err != nil {
		return domain.OrderItem{}, err
	}
	qty, err := r.intVal("quantity")
	if err != nil {
		return domain.OrderItem{}, err
	}
	price, err := r.floatVal("unit_price")
	if err != nil {
		return domain.OrderItem{}, err
	}
	return domain.OrderItem{
		OrderItemID: id,
		OrderID:     r.str("order_id"),
		ProductID:   r.str("product_id"),
		Quantity:    int(qty),
		UnitPrice:   price,
	}, nil
}

// WriteCSV - выгружает набор в каталог в том же формате, который читает CSVSource.
func WriteCSV(dir string, ds *domain.Dataset) error {
	if ds == nil {
		return errors.New("dataset is nil")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tables := map[string][][]string{
		domain.TableCustomers:  {},
		domain.TableProducts:   {},
		domain.TableOrders:     {},
		domain.TableOrderItems: {},
	}
	for _, c := range ds.Customers {
		tables[domain.TableCustomers] = append(tables[domain.TableCustomers], []string{
			c.CustomerID, c.CustomerName, c.Email, c.RegistrationDate.UTC().Format(time.DateTime), string(c.Segment),
		})
	}
	for _, p := range ds.Products {
		tables[domain.TableProducts] = append(tables[domain.TableProducts], []string{
			p.ProductID, p.ProductName, p.Category, formatFloat(p.Price), formatFloat(p.Cost),
			strconv.Itoa(p.StockQuantity), formatFloat(p.ProfitMargin),
		})
	}
	for _, o := range ds.Orders {
		tables[domain.TableOrders] = append(tables[domain.TableOrders], []string{
			o.OrderID, o.CustomerID, o.OrderDate.UTC().Format(time.DateTime), formatFloat(o.TotalAmount),
			string(o.Status), o.ShippingState, o.PaymentMethod,
		})
	}
	for _, it := range ds.OrderItems {
		tables[domain.TableOrderItems] = append(tables[domain.TableOrderItems], []string{
			strconv.FormatInt(it.OrderItemID, 10), it.OrderID, it.ProductID, strconv.Itoa(it.Quantity),
			formatFloat(it.UnitPrice), formatFloat(it.TotalPrice),
		})
	}

	schema := domain.Schema()
	for table, rows := range tables {
		if err := writeTable(filepath.Join(dir, table+".csv"), schema[table], rows); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
