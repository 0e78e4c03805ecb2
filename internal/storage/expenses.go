package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/daybook-app/daybook/internal/model"
	"github.com/daybook-app/daybook/internal/service"
)

// ListExpenses returns ledger entries matching the filter, most recent first.
func (s *SQLiteStorage) ListExpenses(ctx context.Context, filter service.ExpenseFilter) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return listExpenses(ctx, s.db, filter)
}

func (t *sqliteTransaction) ListExpenses(ctx context.Context, filter service.ExpenseFilter) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return listExpenses(ctx, t.tx, filter)
}

func listExpenses(ctx context.Context, q querier, filter service.ExpenseFilter) ([]model.Expense, error) {
	if filter.Start != nil && filter.End != nil && filter.Start.After(*filter.End) {
		return nil, ErrInvalidDateRange
	}

	query := `SELECT id, title, amount, ts, category FROM expenses`
	conditions := make([]string, 0, 2)
	args := make([]any, 0, 2)
	if filter.Start != nil {
		conditions = append(conditions, "ts >= ?")
		args = append(args, *filter.Start)
	}
	if filter.End != nil {
		conditions = append(conditions, "ts <= ?")
		args = append(args, *filter.End)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY ts DESC"

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []model.Expense
	for rows.Next() {
		var e model.Expense
		if err := rows.Scan(&e.ID, &e.Title, &e.Amount, &e.Timestamp, &e.Category); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}

	return expenses, nil
}

// GetExpense returns a single ledger entry by id, or nil when absent.
func (s *SQLiteStorage) GetExpense(ctx context.Context, id string) (*model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	return getExpense(ctx, s.db, id)
}

func (t *sqliteTransaction) GetExpense(ctx context.Context, id string) (*model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	return getExpense(ctx, t.tx, id)
}

func getExpense(ctx context.Context, q querier, id string) (*model.Expense, error) {
	var e model.Expense
	err := q.QueryRowContext(ctx, `
		SELECT id, title, amount, ts, category
		FROM expenses
		WHERE id = ?`, id).Scan(&e.ID, &e.Title, &e.Amount, &e.Timestamp, &e.Category)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // Expense not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query expense: %w", err)
	}
	return &e, nil
}

// SaveExpense inserts or updates a ledger entry.
func (s *SQLiteStorage) SaveExpense(ctx context.Context, expense *model.Expense) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateExpense(expense); err != nil {
		return err
	}
	return saveExpense(ctx, s.db, expense)
}

func (t *sqliteTransaction) SaveExpense(ctx context.Context, expense *model.Expense) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateExpense(expense); err != nil {
		return err
	}
	return saveExpense(ctx, t.tx, expense)
}

func saveExpense(ctx context.Context, q querier, expense *model.Expense) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO expenses (id, title, amount, ts, category)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			amount = excluded.amount,
			ts = excluded.ts,
			category = excluded.category`,
		expense.ID, expense.Title, expense.Amount, expense.Timestamp, expense.Category)
	if err != nil {
		return fmt.Errorf("failed to save expense: %w", err)
	}
	slog.Debug("saved expense", "id", expense.ID, "amount", expense.Amount)
	return nil
}

// DeleteExpense removes a ledger entry by id.
func (s *SQLiteStorage) DeleteExpense(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	return deleteExpense(ctx, s.db, id)
}

func (t *sqliteTransaction) DeleteExpense(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	return deleteExpense(ctx, t.tx, id)
}

func deleteExpense(ctx context.Context, q querier, id string) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}

// CountExpensesByCategory returns how many ledger entries reference a category.
// Trash records do not count toward usage.
func (s *SQLiteStorage) CountExpensesByCategory(ctx context.Context, name string) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(name, "name"); err != nil {
		return 0, err
	}
	return countExpensesByCategory(ctx, s.db, name)
}

func (t *sqliteTransaction) CountExpensesByCategory(ctx context.Context, name string) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(name, "name"); err != nil {
		return 0, err
	}
	return countExpensesByCategory(ctx, t.tx, name)
}

func countExpensesByCategory(ctx context.Context, q querier, name string) (int, error) {
	var count int
	err := q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM expenses WHERE category = ?`, name).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count expenses: %w", err)
	}
	return count, nil
}

// UpdateExpenseCategories rewrites every ledger entry from one category to another.
func (s *SQLiteStorage) UpdateExpenseCategories(ctx context.Context, fromCategory, toCategory string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(fromCategory, "fromCategory"); err != nil {
		return err
	}
	if err := validateString(toCategory, "toCategory"); err != nil {
		return err
	}
	return updateExpenseCategories(ctx, s.db, fromCategory, toCategory)
}

func (t *sqliteTransaction) UpdateExpenseCategories(ctx context.Context, fromCategory, toCategory string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(fromCategory, "fromCategory"); err != nil {
		return err
	}
	if err := validateString(toCategory, "toCategory"); err != nil {
		return err
	}
	return updateExpenseCategories(ctx, t.tx, fromCategory, toCategory)
}

func updateExpenseCategories(ctx context.Context, q querier, fromCategory, toCategory string) error {
	result, err := q.ExecContext(ctx, `
		UPDATE expenses SET category = ? WHERE category = ?`,
		toCategory, fromCategory)
	if err != nil {
		return fmt.Errorf("failed to update expense categories: %w", err)
	}
	if affected, raErr := result.RowsAffected(); raErr == nil {
		slog.Debug("updated expense categories",
			"from", fromCategory, "to", toCategory, "count", affected)
	}
	return nil
}

// ReplaceExpenses swaps the entire ledger for the given entries.
func (s *SQLiteStorage) ReplaceExpenses(ctx context.Context, expenses []model.Expense) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return replaceExpenses(ctx, s.db, expenses)
}

func (t *sqliteTransaction) ReplaceExpenses(ctx context.Context, expenses []model.Expense) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return replaceExpenses(ctx, t.tx, expenses)
}

func replaceExpenses(ctx context.Context, q querier, expenses []model.Expense) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM expenses`); err != nil {
		return fmt.Errorf("failed to clear expenses: %w", err)
	}
	for i := range expenses {
		if err := saveExpense(ctx, q, &expenses[i]); err != nil {
			return err
		}
	}
	return nil
}

// DeleteExpensesInRange removes every ledger entry with a timestamp in
// [start, end]. Used by the date-merge import policy.
func (s *SQLiteStorage) DeleteExpensesInRange(ctx context.Context, start, end time.Time) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return deleteExpensesInRange(ctx, s.db, start, end)
}

func (t *sqliteTransaction) DeleteExpensesInRange(ctx context.Context, start, end time.Time) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return deleteExpensesInRange(ctx, t.tx, start, end)
}

func deleteExpensesInRange(ctx context.Context, q querier, start, end time.Time) error {
	if start.After(end) {
		return ErrInvalidDateRange
	}
	if _, err := q.ExecContext(ctx, `
		DELETE FROM expenses WHERE ts >= ? AND ts <= ?`, start, end); err != nil {
		return fmt.Errorf("failed to delete expenses in range: %w", err)
	}
	return nil
}
