package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/SahuH/Data-Analytics-Assistant/internal/repo/migrate"
)

// NewPool - создаёт пул соединений к Postgres на базе DSN.
// Если maxConns > 0 - переопределяем размер пула.
// В конце выполняем Ping, чтобы сразу узнать о проблемах подключения.
func NewPool(ctx context.Context, dsn string, maxConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}

	// Жизненный цикл соединений.
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if connErr := pool.Ping(ctx); connErr != nil {
		pool.Close()
		return nil, connErr
	}

	return pool, nil
}

// Migrate - применяет встроенные миграции через database/sql поверх того же пула.
func Migrate(ctx context.Context, pool *pgxpool.Pool) (int, error) {
	db := stdlib.OpenDBFromPool(pool)
	defer func() { _ = db.Close() }()

	return migrate.Up(ctx, db, goose.DialectPostgres, migrate.DirPostgres)
}
