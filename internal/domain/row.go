package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Row - одна строка результата запроса. Порядок колонок сохраняется
// и в JSON (ключи объекта идут в порядке SELECT).
type Row struct {
	columns []string
	values  []any
}

// NewRow - строка из пар (колонка, значение). Нечётный хвост игнорируется.
func NewRow(pairs ...any) Row {
	r := Row{}
	for i := 0; i+1 < len(pairs); i += 2 {
		name, _ := pairs[i].(string)
		r.Set(name, pairs[i+1])
	}
	return r
}

// RowFromColumns - строка из параллельных срезов колонок и значений.
func RowFromColumns(columns []string, values []any) Row {
	r := Row{
		columns: make([]string, len(columns)),
		values:  make([]any, len(columns)),
	}
	copy(r.columns, columns)
	copy(r.values, values)
	return r
}

// Set - задаёт значение колонки; новая колонка добавляется в конец.
func (r *Row) Set(column string, value any) {
	for i, c := range r.columns {
		if c == column {
			r.values[i] = value
			return
		}
	}
	r.columns = append(r.columns, column)
	r.values = append(r.values, value)
}

// Columns - копия списка колонок.
func (r Row) Columns() []string { return append([]string(nil), r.columns...) }

// Len - число колонок.
func (r Row) Len() int { return len(r.columns) }

// Value - сырое значение колонки.
func (r Row) Value(column string) (any, bool) {
	for i, c := range r.columns {
		if c == column {
			return r.values[i], true
		}
	}
	return nil, false
}

// IsNull - колонка отсутствует или равна NULL.
func (r Row) IsNull(column string) bool {
	v, ok := r.Value(column)
	return !ok || v == nil
}

// Float - числовое значение колонки; NULL и нечисловые значения дают 0.
func (r Row) Float(column string) float64 {
	v, _ := r.Value(column)
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case *float64:
		if n == nil {
			return 0
		}
		return *n
	case string:
		f, _ := strconv.ParseFloat(n, 64)
		return f
	case []byte:
		f, _ := strconv.ParseFloat(string(n), 64)
		return f
	}
	return 0
}

// Int - целое значение колонки (дробная часть отбрасывается).
func (r Row) Int(column string) int64 {
	v, _ := r.Value(column)
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case int32:
		return int64(n)
	}
	return int64(r.Float(column))
}

// String - строковое представление колонки.
func (r Row) String(column string) string {
	v, _ := r.Value(column)
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case []byte:
		return string(s)
	case time.Time:
		return s.Format(time.DateTime)
	}
	return fmt.Sprint(v)
}

// MarshalJSON - объект с ключами в порядке колонок.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", c, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
