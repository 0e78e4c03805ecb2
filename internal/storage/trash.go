package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/daybook-app/daybook/internal/model"
)

// ListTrash returns all trash records, most recently deleted first.
func (s *SQLiteStorage) ListTrash(ctx context.Context) ([]model.TrashRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return listTrash(ctx, s.db)
}

func (t *sqliteTransaction) ListTrash(ctx context.Context) ([]model.TrashRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return listTrash(ctx, t.tx)
}

func listTrash(ctx context.Context, q querier) ([]model.TrashRecord, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, title, amount, ts, category, deleted_at
		FROM trash
		ORDER BY deleted_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query trash: %w", err)
	}
	defer rows.Close()

	var records []model.TrashRecord
	for rows.Next() {
		var r model.TrashRecord
		if err := rows.Scan(&r.ID, &r.Title, &r.Amount, &r.Timestamp, &r.Category, &r.DeletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan trash record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trash: %w", err)
	}

	return records, nil
}

// GetTrashRecord returns a single trash record by id, or nil when absent.
func (s *SQLiteStorage) GetTrashRecord(ctx context.Context, id string) (*model.TrashRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	return getTrashRecord(ctx, s.db, id)
}

func (t *sqliteTransaction) GetTrashRecord(ctx context.Context, id string) (*model.TrashRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	return getTrashRecord(ctx, t.tx, id)
}

func getTrashRecord(ctx context.Context, q querier, id string) (*model.TrashRecord, error) {
	var r model.TrashRecord
	err := q.QueryRowContext(ctx, `
		SELECT id, title, amount, ts, category, deleted_at
		FROM trash
		WHERE id = ?`, id).Scan(&r.ID, &r.Title, &r.Amount, &r.Timestamp, &r.Category, &r.DeletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // Record not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query trash record: %w", err)
	}
	return &r, nil
}

// SaveTrashRecord inserts or updates a trash record.
func (s *SQLiteStorage) SaveTrashRecord(ctx context.Context, record *model.TrashRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTrashRecord(record); err != nil {
		return err
	}
	return saveTrashRecord(ctx, s.db, record)
}

func (t *sqliteTransaction) SaveTrashRecord(ctx context.Context, record *model.TrashRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTrashRecord(record); err != nil {
		return err
	}
	return saveTrashRecord(ctx, t.tx, record)
}

func saveTrashRecord(ctx context.Context, q querier, record *model.TrashRecord) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO trash (id, title, amount, ts, category, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			amount = excluded.amount,
			ts = excluded.ts,
			category = excluded.category,
			deleted_at = excluded.deleted_at`,
		record.ID, record.Title, record.Amount, record.Timestamp, record.Category, record.DeletedAt)
	if err != nil {
		return fmt.Errorf("failed to save trash record: %w", err)
	}
	slog.Debug("saved trash record", "id", record.ID)
	return nil
}

// DeleteTrashRecord permanently removes a trash record by id.
func (s *SQLiteStorage) DeleteTrashRecord(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	return deleteTrashRecord(ctx, s.db, id)
}

func (t *sqliteTransaction) DeleteTrashRecord(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	return deleteTrashRecord(ctx, t.tx, id)
}

func deleteTrashRecord(ctx context.Context, q querier, id string) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM trash WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete trash record: %w", err)
	}
	return nil
}

// UpdateTrashCategories rewrites every trash record from one category to another.
func (s *SQLiteStorage) UpdateTrashCategories(ctx context.Context, fromCategory, toCategory string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(fromCategory, "fromCategory"); err != nil {
		return err
	}
	if err := validateString(toCategory, "toCategory"); err != nil {
		return err
	}
	return updateTrashCategories(ctx, s.db, fromCategory, toCategory)
}

func (t *sqliteTransaction) UpdateTrashCategories(ctx context.Context, fromCategory, toCategory string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(fromCategory, "fromCategory"); err != nil {
		return err
	}
	if err := validateString(toCategory, "toCategory"); err != nil {
		return err
	}
	return updateTrashCategories(ctx, t.tx, fromCategory, toCategory)
}

func updateTrashCategories(ctx context.Context, q querier, fromCategory, toCategory string) error {
	if _, err := q.ExecContext(ctx, `
		UPDATE trash SET category = ? WHERE category = ?`,
		toCategory, fromCategory); err != nil {
		return fmt.Errorf("failed to update trash categories: %w", err)
	}
	return nil
}

// ReplaceTrash swaps the entire trash store for the given records.
func (s *SQLiteStorage) ReplaceTrash(ctx context.Context, trash []model.TrashRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return replaceTrash(ctx, s.db, trash)
}

func (t *sqliteTransaction) ReplaceTrash(ctx context.Context, trash []model.TrashRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return replaceTrash(ctx, t.tx, trash)
}

func replaceTrash(ctx context.Context, q querier, trash []model.TrashRecord) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM trash`); err != nil {
		return fmt.Errorf("failed to clear trash: %w", err)
	}
	for i := range trash {
		if err := saveTrashRecord(ctx, q, &trash[i]); err != nil {
			return err
		}
	}
	return nil
}
