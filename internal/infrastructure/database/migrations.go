package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/marcos-nsantos/famly-backend/migrations"
)

// RunMigrations applies all pending embedded migrations.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	return withGoose(pool, func(db *sql.DB) error {
		if err := goose.UpContext(ctx, db, "."); err != nil {
			return fmt.Errorf("applying migrations: %w", err)
		}
		return nil
	})
}

// MigrationStatus logs the state of every embedded migration through goose's logger.
func MigrationStatus(ctx context.Context, pool *pgxpool.Pool) error {
	return withGoose(pool, func(db *sql.DB) error {
		if err := goose.StatusContext(ctx, db, "."); err != nil {
			return fmt.Errorf("reading migration status: %w", err)
		}
		return nil
	})
}

// RollbackMigrations rolls back to target, or by one step when target is zero.
func RollbackMigrations(ctx context.Context, pool *pgxpool.Pool, target int64) error {
	return withGoose(pool, func(db *sql.DB) error {
		var err error
		if target > 0 {
			err = goose.DownToContext(ctx, db, ".", target)
		} else {
			err = goose.DownContext(ctx, db, ".")
		}
		if err != nil {
			return fmt.Errorf("rolling back migrations: %w", err)
		}
		return nil
	})
}

func withGoose(pool *pgxpool.Pool, fn func(db *sql.DB) error) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("configuring goose: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	return fn(db)
}
