// Package migrate - применение встроенных миграций goose к хранилищу.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"

	"github.com/SahuH/Data-Analytics-Assistant/migrations"
)

// Каталоги миграций внутри migrations.FS.
const (
	DirSQLite   = "sqlite"
	DirPostgres = "postgres"
)

// Up - применяет все миграции каталога dir к db.
// Возвращает число применённых миграций (0, если схема актуальна).
func Up(ctx context.Context, db *sql.DB, dialect goose.Dialect, dir string) (int, error) {
	sub, err := fs.Sub(migrations.FS, dir)
	if err != nil {
		return 0, fmt.Errorf("migrations dir %q: %w", dir, err)
	}

	provider, err := goose.NewProvider(dialect, db, sub)
	if err != nil {
		return 0, fmt.Errorf("goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("goose up: %w", err)
	}
	return len(results), nil
}
