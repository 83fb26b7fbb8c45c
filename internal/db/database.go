package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"campaignhub/internal/config/configs"
)

// Database is the postgres connection pool behind the relational store.
type Database struct {
	*sql.DB
}

type poolOptions struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// New opens a pool for cfg.Addr, applies the pool limits and verifies the
// server answers.
func New(ctx context.Context, cfg configs.Postgres) (*Database, error) {
	sqlDB, err := sql.Open("postgres", cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	return open(ctx, sqlDB, poolOptions{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})
}

func open(ctx context.Context, sqlDB *sql.DB, opts poolOptions) (*Database, error) {
	sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	slog.Info("connected to postgres", slog.Int("max_open_conns", opts.MaxOpenConns))
	return &Database{sqlDB}, nil
}
