package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/SahuH/Data-Analytics-Assistant/internal/domain"
)

// session - одно соединение на вызов инструмента.
type session struct {
	db *sql.DB
}

// Query - выполняет запрос и возвращает строки с колонками в порядке SELECT.
func (s *session) Query(ctx context.Context, query string, args ...any) ([]domain.Row, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}

	out := []domain.Row{}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
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

func (s *session) Close() error { return s.db.Close() }

func normalize(v any) any {
	switch x := v.(type) {
	case []byte:
		return string(x)
	case time.Time:
		return formatTime(x)
	}
	return v
}
