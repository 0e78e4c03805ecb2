// Package service defines the contracts between the core and its collaborators.
package service

import (
	"context"
	"time"

	"github.com/daybook-app/daybook/internal/model"
)

// ExpenseFilter defines filtering options for ledger queries.
type ExpenseFilter struct {
	Start *time.Time
	End   *time.Time
}

// Store is the data surface of the persisted state. It is available both
// on Storage directly and inside a Transaction.
type Store interface {
	// Ledger operations
	ListExpenses(ctx context.Context, filter ExpenseFilter) ([]model.Expense, error)
	GetExpense(ctx context.Context, id string) (*model.Expense, error)
	SaveExpense(ctx context.Context, expense *model.Expense) error
	DeleteExpense(ctx context.Context, id string) error
	CountExpensesByCategory(ctx context.Context, name string) (int, error)
	UpdateExpenseCategories(ctx context.Context, fromCategory, toCategory string) error

	// Trash operations
	ListTrash(ctx context.Context) ([]model.TrashRecord, error)
	GetTrashRecord(ctx context.Context, id string) (*model.TrashRecord, error)
	SaveTrashRecord(ctx context.Context, record *model.TrashRecord) error
	DeleteTrashRecord(ctx context.Context, id string) error
	UpdateTrashCategories(ctx context.Context, fromCategory, toCategory string) error

	// Category registry operations. ReplaceCategories persists the full
	// ordered registry in one shot.
	ListCategories(ctx context.Context) ([]model.Category, error)
	ReplaceCategories(ctx context.Context, categories []model.Category) error

	// Settings operations
	GetSettings(ctx context.Context) (model.Settings, error)
	SaveSettings(ctx context.Context, settings model.Settings) error

	// Bulk operations used by snapshot import
	ReplaceExpenses(ctx context.Context, expenses []model.Expense) error
	ReplaceTrash(ctx context.Context, trash []model.TrashRecord) error
	DeleteExpensesInRange(ctx context.Context, start, end time.Time) error
}

// Storage is the persisted-state collaborator. The core depends only on
// this interface; tests substitute a temp-dir database.
type Storage interface {
	Store

	// Database management
	Migrate(ctx context.Context) error
	BeginTx(ctx context.Context) (Transaction, error)
	Close() error
}

// Transaction represents a storage transaction. Mutations made through it
// become visible atomically on Commit.
type Transaction interface {
	Commit() error
	Rollback() error
	Store
}
