package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SahuH/Data-Analytics-Assistant/internal/domain"
)

// session - соединение из пула, взятое на один вызов инструмента.
type session struct {
	conn *pgxpool.Conn
}

// Query - выполняет запрос; значения приводятся к int64/float64/string/bool/nil.
func (s *session) Query(ctx context.Context, query string, args ...any) ([]domain.Row, error) {
	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = f.Name
	}

	out := []domain.Row{}
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("values: %w", err)
		}
		for i, v := range vals {
			vals[i] = normalize(v)
		}
		out = append(out, domain.RowFromColumns(cols, vals))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

// Close - возвращает соединение в пул.
func (s *session) Close() error {
	s.conn.Release()
	return nil
}

func normalize(v any) any {
	switch x := v.(type) {
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case float32:
		return float64(x)
	case pgtype.Numeric:
		if !x.Valid {
			return nil
		}
		f, err := x.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	case time.Time:
		return x.UTC().Format(time.DateTime)
	case []byte:
		return string(x)
	}
	return v
}
