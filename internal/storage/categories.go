package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/daybook-app/daybook/internal/model"
)

// ListCategories returns the registry in display order.
func (s *SQLiteStorage) ListCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return listCategories(ctx, s.db)
}

func (t *sqliteTransaction) ListCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return listCategories(ctx, t.tx)
}

func listCategories(ctx context.Context, q querier) ([]model.Category, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT name, color, position
		FROM categories
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var cat model.Category
		if err := rows.Scan(&cat.Name, &cat.Color, &cat.Position); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	slog.Debug("retrieved categories", "count", len(categories))
	return categories, nil
}

// ReplaceCategories persists the full ordered registry. Positions are
// rewritten from slice order.
func (s *SQLiteStorage) ReplaceCategories(ctx context.Context, categories []model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return replaceCategories(ctx, s.db, categories)
}

func (t *sqliteTransaction) ReplaceCategories(ctx context.Context, categories []model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return replaceCategories(ctx, t.tx, categories)
}

func replaceCategories(ctx context.Context, q querier, categories []model.Category) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM categories`); err != nil {
		return fmt.Errorf("failed to clear categories: %w", err)
	}
	for i, cat := range categories {
		if err := validateString(cat.Name, "category name"); err != nil {
			return err
		}
		color := cat.Color
		if color == "" {
			color = model.DefaultColor
		}
		if _, err := q.ExecContext(ctx, `
			INSERT INTO categories (name, color, position)
			VALUES (?, ?, ?)`, cat.Name, color, i); err != nil {
			return fmt.Errorf("failed to insert category %s: %w", cat.Name, err)
		}
	}
	return nil
}
