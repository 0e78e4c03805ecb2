// Package ledger implements the expense ledger, trash store, and category
// registry lifecycle on top of the storage collaborator.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/daybook-app/daybook/internal/common"
	"github.com/daybook-app/daybook/internal/model"
	"github.com/daybook-app/daybook/internal/service"
)

// Config controls optional service behavior.
type Config struct {
	// Now supplies the current time. Defaults to time.Now.
	Now func() time.Time
	// CategoriesEditable gates all registry mutations. When false the
	// registry behaves as a fixed constant set.
	CategoriesEditable bool
}

// Service coordinates ledger, trash, and registry operations. Mutations that
// span collections run inside a single storage transaction.
type Service struct {
	store service.Storage
	now   func() time.Time
	// categoriesEditable mirrors Config.CategoriesEditable.
	categoriesEditable bool
}

// New creates a ledger service over the given storage.
func New(store service.Storage, cfg Config) *Service {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		store:              store,
		now:                now,
		categoriesEditable: cfg.CategoriesEditable,
	}
}

// Expenses returns ledger entries matching the filter, most recent first.
func (s *Service) Expenses(ctx context.Context, filter service.ExpenseFilter) ([]model.Expense, error) {
	return s.store.ListExpenses(ctx, filter)
}

// Expense returns a single ledger entry by id.
func (s *Service) Expense(ctx context.Context, id string) (*model.Expense, error) {
	expense, err := s.store.GetExpense(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading expense: %w", err)
	}
	if expense == nil {
		return nil, fmt.Errorf("%w: expense %s", common.ErrNotFound, id)
	}
	return expense, nil
}

// Trash returns all trash records, most recently deleted first.
func (s *Service) Trash(ctx context.Context) ([]model.TrashRecord, error) {
	return s.store.ListTrash(ctx)
}

// Categories returns the registry in display order.
func (s *Service) Categories(ctx context.Context) ([]model.Category, error) {
	return s.store.ListCategories(ctx)
}

// Settings returns the current budget settings.
func (s *Service) Settings(ctx context.Context) (model.Settings, error) {
	return s.store.GetSettings(ctx)
}

// UpdateSettings persists new budget settings after normalization.
func (s *Service) UpdateSettings(ctx context.Context, settings model.Settings) error {
	return s.store.SaveSettings(ctx, settings)
}

// AddExpense validates and records a new expense. The stored timestamp
// combines the chosen calendar date with the current time of day. An
// unknown category falls back to the first registered one.
func (s *Service) AddExpense(ctx context.Context, title string, amount float64, date time.Time, category string) (*model.Expense, error) {
	if amount < model.MinAmount {
		return nil, common.ErrAmountTooSmall
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = model.DefaultTitle
	}

	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading categories: %w", err)
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("%w: no categories registered", common.ErrValidation)
	}

	expense := &model.Expense{
		ID:        model.NewID(),
		Title:     title,
		Amount:    model.RoundAmount(amount),
		Timestamp: combineDateTime(date, s.now()),
		Category:  resolveCategory(categories, category),
	}

	if err := s.store.SaveExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("saving expense: %w", err)
	}

	slog.Info("recorded expense",
		"id", expense.ID, "amount", expense.Amount, "category", expense.Category)
	return expense, nil
}

// EditExpense updates title, amount, and category in place. ID and
// timestamp never change.
func (s *Service) EditExpense(ctx context.Context, id, title string, amount float64, category string) (*model.Expense, error) {
	expense, err := s.store.GetExpense(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading expense: %w", err)
	}
	if expense == nil {
		return nil, fmt.Errorf("%w: expense %s", common.ErrNotFound, id)
	}

	if amount < model.MinAmount {
		return nil, common.ErrAmountTooSmall
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, common.ErrEmptyTitle
	}

	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading categories: %w", err)
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("%w: no categories registered", common.ErrValidation)
	}

	expense.Title = title
	expense.Amount = model.RoundAmount(amount)
	expense.Category = resolveCategory(categories, category)

	if err := s.store.SaveExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("saving expense: %w", err)
	}
	return expense, nil
}

// SoftDelete moves a ledger entry into the trash. The move is atomic: the
// record is never observable in both collections or in neither.
func (s *Service) SoftDelete(ctx context.Context, id string) error {
	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	expense, err := tx.GetExpense(ctx, id)
	if err != nil {
		return fmt.Errorf("loading expense: %w", err)
	}
	if expense == nil {
		return fmt.Errorf("%w: expense %s", common.ErrNotFound, id)
	}

	record := &model.TrashRecord{
		Expense:   *expense,
		DeletedAt: s.now(),
	}
	if err := tx.SaveTrashRecord(ctx, record); err != nil {
		return fmt.Errorf("saving trash record: %w", err)
	}
	if err := tx.DeleteExpense(ctx, id); err != nil {
		return fmt.Errorf("removing expense: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing soft delete: %w", err)
	}

	slog.Info("moved expense to trash", "id", id)
	return nil
}

// Restore moves a trash record back into the ledger with its original
// fields. A category that no longer exists resolves to the first
// registered category at restore time.
func (s *Service) Restore(ctx context.Context, id string) (*model.Expense, error) {
	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	record, err := tx.GetTrashRecord(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading trash record: %w", err)
	}
	if record == nil {
		return nil, fmt.Errorf("%w: trash record %s", common.ErrNotFound, id)
	}

	categories, err := tx.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading categories: %w", err)
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("%w: no categories registered", common.ErrValidation)
	}

	expense := record.Expense
	expense.Category = resolveCategory(categories, expense.Category)

	if err := tx.SaveExpense(ctx, &expense); err != nil {
		return nil, fmt.Errorf("restoring expense: %w", err)
	}
	if err := tx.DeleteTrashRecord(ctx, id); err != nil {
		return nil, fmt.Errorf("removing trash record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing restore: %w", err)
	}

	slog.Info("restored expense from trash", "id", id)
	return &expense, nil
}

// Purge permanently removes a trash record. The ledger is unaffected.
func (s *Service) Purge(ctx context.Context, id string) error {
	record, err := s.store.GetTrashRecord(ctx, id)
	if err != nil {
		return fmt.Errorf("loading trash record: %w", err)
	}
	if record == nil {
		return fmt.Errorf("%w: trash record %s", common.ErrNotFound, id)
	}
	if err := s.store.DeleteTrashRecord(ctx, id); err != nil {
		return fmt.Errorf("purging trash record: %w", err)
	}
	slog.Info("purged trash record", "id", id)
	return nil
}

// resolveCategory returns name when it exists in the registry, otherwise
// the first registered category.
func resolveCategory(categories []model.Category, name string) string {
	for _, cat := range categories {
		if cat.Name == name {
			return name
		}
	}
	return categories[0].Name
}

// combineDateTime merges the calendar date of one instant with the
// time of day of another.
func combineDateTime(date, clock time.Time) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), clock.Nanosecond(),
		time.Local,
	)
}
