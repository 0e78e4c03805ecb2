package main

import (
	"context"
	"fmt"
	"time"

	"github.com/daybook-app/daybook/internal/common"
	"github.com/daybook-app/daybook/internal/config"
	"github.com/daybook-app/daybook/internal/ledger"
	"github.com/daybook-app/daybook/internal/service"
	"github.com/daybook-app/daybook/internal/snapshot"
	"github.com/daybook-app/daybook/internal/storage"
)

// initStorage opens the configured database and applies pending migrations.
// Callers are responsible for Close.
func initStorage() (config.Config, service.Storage, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("loading config: %w", err)
	}

	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return config.Config{}, nil, common.NewUserError(
			"failed to open the database at "+cfg.DatabasePath,
			fmt.Errorf("%w: %v", common.ErrPersistence, err))
	}

	if err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		return config.Config{}, nil, common.NewUserError(
			"failed to prepare the database schema",
			fmt.Errorf("%w: %v", common.ErrPersistence, err))
	}

	return cfg, store, nil
}

func newLedger(cfg config.Config, store service.Storage) *ledger.Service {
	return ledger.New(store, ledger.Config{CategoriesEditable: cfg.CategoriesEditable})
}

func newSnapshot(store service.Storage) *snapshot.Service {
	return snapshot.New(store, nil)
}

// parseDate parses a YYYY-MM-DD argument in local time.
func parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return t, nil
}

func formatCurrency(amount float64) string {
	return fmt.Sprintf("¥%.2f", amount)
}
