package storage

import (
	"context"
	"fmt"

	"github.com/daybook-app/daybook/internal/model"
)

const (
	settingDailyBudget   = "daily_budget"
	settingMonthlyBudget = "monthly_budget"
)

// GetSettings returns the stored budget settings. Missing keys fall back
// to the documented defaults; stored values are normalized on the way out.
func (s *SQLiteStorage) GetSettings(ctx context.Context) (model.Settings, error) {
	if err := validateContext(ctx); err != nil {
		return model.Settings{}, err
	}
	return getSettings(ctx, s.db)
}

func (t *sqliteTransaction) GetSettings(ctx context.Context) (model.Settings, error) {
	if err := validateContext(ctx); err != nil {
		return model.Settings{}, err
	}
	return getSettings(ctx, t.tx)
}

func getSettings(ctx context.Context, q querier) (model.Settings, error) {
	rows, err := q.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return model.Settings{}, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	settings := model.DefaultSettings()
	for rows.Next() {
		var key string
		var value float64
		if err := rows.Scan(&key, &value); err != nil {
			return model.Settings{}, fmt.Errorf("failed to scan setting: %w", err)
		}
		switch key {
		case settingDailyBudget:
			settings.DailyBudget = value
		case settingMonthlyBudget:
			settings.MonthlyBudget = value
		}
	}
	if err := rows.Err(); err != nil {
		return model.Settings{}, fmt.Errorf("error iterating settings: %w", err)
	}

	return settings.Normalize(), nil
}

// SaveSettings persists the budget settings, normalized first.
func (s *SQLiteStorage) SaveSettings(ctx context.Context, settings model.Settings) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return saveSettings(ctx, s.db, settings)
}

func (t *sqliteTransaction) SaveSettings(ctx context.Context, settings model.Settings) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return saveSettings(ctx, t.tx, settings)
}

func saveSettings(ctx context.Context, q querier, settings model.Settings) error {
	settings = settings.Normalize()
	pairs := map[string]float64{
		settingDailyBudget:   settings.DailyBudget,
		settingMonthlyBudget: settings.MonthlyBudget,
	}
	for key, value := range pairs {
		if _, err := q.ExecContext(ctx, `
			INSERT INTO settings (key, value)
			VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			key, value); err != nil {
			return fmt.Errorf("failed to save setting %s: %w", key, err)
		}
	}
	return nil
}
