package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/marcos-nsantos/famly-backend/internal/infrastructure/config"
	"github.com/marcos-nsantos/famly-backend/internal/infrastructure/database"
	"github.com/marcos-nsantos/famly-backend/internal/infrastructure/observability"
)

func main() {
	command := flag.String("command", "up", "migration command: up, status or down")
	target := flag.Int64("target", 0, "version to roll back to with down (0 rolls back one step)")
	timeout := flag.Duration("timeout", time.Minute, "overall timeout")
	flag.Parse()

	if err := run(*command, *target, *timeout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(command string, target int64, timeout time.Duration) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Storage.Driver != config.StorageDriverPostgres {
		return fmt.Errorf("migrations need STORAGE_DRIVER=%s, got %q", config.StorageDriverPostgres, cfg.Storage.Driver)
	}

	logger, err := observability.NewLogger(observability.LoggerOptions{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Service:     "famly-migrate",
		Environment: cfg.Server.Environment,
	})
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	switch command {
	case "up":
		err = database.RunMigrations(ctx, pool)
	case "status":
		err = database.MigrationStatus(ctx, pool)
	case "down":
		err = database.RollbackMigrations(ctx, pool, target)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
	if err != nil {
		return err
	}

	logger.Info("migration finished", zap.String("command", command), zap.Int64("target", target))
	return nil
}
