package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/daybook-app/daybook/internal/model"
	"github.com/daybook-app/daybook/internal/service"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

// Helper function to create test expenses spaced one hour apart.
func createTestExpenses(count int) []model.Expense {
	expenses := make([]model.Expense, count)
	baseTime := time.Date(2025, 6, 15, 8, 0, 0, 0, time.Local)

	for i := 0; i < count; i++ {
		expenses[i] = model.Expense{
			ID:        fmt.Sprintf("exp-%03d", i+1),
			Title:     fmt.Sprintf("Expense #%d", i+1),
			Amount:    float64(i+1) * 10.50,
			Timestamp: baseTime.Add(time.Duration(i) * time.Hour),
			Category:  "日常",
		}
	}
	return expenses
}

func TestSQLiteStorage_SaveAndGetExpense(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	expense := createTestExpenses(1)[0]
	if err := store.SaveExpense(ctx, &expense); err != nil {
		t.Fatalf("Failed to save expense: %v", err)
	}

	got, err := store.GetExpense(ctx, expense.ID)
	if err != nil {
		t.Fatalf("Failed to get expense: %v", err)
	}
	if got == nil {
		t.Fatal("Expected expense, got nil")
	}
	if got.Title != expense.Title {
		t.Errorf("Expected title %q, got %q", expense.Title, got.Title)
	}
	if got.Amount != expense.Amount {
		t.Errorf("Expected amount %v, got %v", expense.Amount, got.Amount)
	}
	if got.Category != expense.Category {
		t.Errorf("Expected category %q, got %q", expense.Category, got.Category)
	}

	// Upsert: saving the same ID again updates in place.
	expense.Title = "updated"
	expense.Amount = 99.99
	if err := store.SaveExpense(ctx, &expense); err != nil {
		t.Fatalf("Failed to update expense: %v", err)
	}
	got, err = store.GetExpense(ctx, expense.ID)
	if err != nil {
		t.Fatalf("Failed to get updated expense: %v", err)
	}
	if got.Title != "updated" || got.Amount != 99.99 {
		t.Errorf("Update not applied: got %q / %v", got.Title, got.Amount)
	}
}

func TestSQLiteStorage_GetExpense_Missing(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	got, err := store.GetExpense(context.Background(), "no-such-id")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for missing expense, got %+v", got)
	}
}

func TestSQLiteStorage_ListExpenses(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	expenses := createTestExpenses(5)
	for i := range expenses {
		if err := store.SaveExpense(ctx, &expenses[i]); err != nil {
			t.Fatalf("Failed to save expense: %v", err)
		}
	}

	t.Run("all expenses most recent first", func(t *testing.T) {
		got, err := store.ListExpenses(ctx, service.ExpenseFilter{})
		if err != nil {
			t.Fatalf("Failed to list expenses: %v", err)
		}
		if len(got) != 5 {
			t.Fatalf("Expected 5 expenses, got %d", len(got))
		}
		for i := 1; i < len(got); i++ {
			if got[i].Timestamp.After(got[i-1].Timestamp) {
				t.Errorf("Expenses not sorted descending at index %d", i)
			}
		}
	})

	t.Run("filtered by range", func(t *testing.T) {
		start := expenses[1].Timestamp
		end := expenses[3].Timestamp
		got, err := store.ListExpenses(ctx, service.ExpenseFilter{Start: &start, End: &end})
		if err != nil {
			t.Fatalf("Failed to list expenses: %v", err)
		}
		if len(got) != 3 {
			t.Errorf("Expected 3 expenses in range, got %d", len(got))
		}
	})
}

func TestSQLiteStorage_DeleteExpense(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	expense := createTestExpenses(1)[0]
	if err := store.SaveExpense(ctx, &expense); err != nil {
		t.Fatalf("Failed to save expense: %v", err)
	}
	if err := store.DeleteExpense(ctx, expense.ID); err != nil {
		t.Fatalf("Failed to delete expense: %v", err)
	}

	got, err := store.GetExpense(ctx, expense.ID)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != nil {
		t.Error("Expected expense to be gone after delete")
	}
}

func TestSQLiteStorage_CountExpensesByCategory(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	expenses := createTestExpenses(3)
	expenses[2].Category = "吃饭"
	for i := range expenses {
		if err := store.SaveExpense(ctx, &expenses[i]); err != nil {
			t.Fatalf("Failed to save expense: %v", err)
		}
	}

	count, err := store.CountExpensesByCategory(ctx, "日常")
	if err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 uses of 日常, got %d", count)
	}

	count, err = store.CountExpensesByCategory(ctx, "数码")
	if err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 uses of 数码, got %d", count)
	}
}

func TestSQLiteStorage_UpdateExpenseCategories(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	expenses := createTestExpenses(3)
	expenses[1].Category = "吃饭"
	for i := range expenses {
		if err := store.SaveExpense(ctx, &expenses[i]); err != nil {
			t.Fatalf("Failed to save expense: %v", err)
		}
	}

	if err := store.UpdateExpenseCategories(ctx, "日常", "生活"); err != nil {
		t.Fatalf("Failed to update categories: %v", err)
	}

	got, err := store.ListExpenses(ctx, service.ExpenseFilter{})
	if err != nil {
		t.Fatalf("Failed to list expenses: %v", err)
	}
	var renamed, untouched int
	for _, e := range got {
		switch e.Category {
		case "生活":
			renamed++
		case "吃饭":
			untouched++
		case "日常":
			t.Errorf("Expense %s still carries old category", e.ID)
		}
	}
	if renamed != 2 || untouched != 1 {
		t.Errorf("Expected 2 renamed and 1 untouched, got %d/%d", renamed, untouched)
	}
}

func TestSQLiteStorage_ReplaceExpenses(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	old := createTestExpenses(3)
	for i := range old {
		if err := store.SaveExpense(ctx, &old[i]); err != nil {
			t.Fatalf("Failed to save expense: %v", err)
		}
	}

	replacement := []model.Expense{{
		ID: "new-1", Title: "replacement", Amount: 42,
		Timestamp: time.Now(), Category: "日常",
	}}
	if err := store.ReplaceExpenses(ctx, replacement); err != nil {
		t.Fatalf("Failed to replace expenses: %v", err)
	}

	got, err := store.ListExpenses(ctx, service.ExpenseFilter{})
	if err != nil {
		t.Fatalf("Failed to list expenses: %v", err)
	}
	if len(got) != 1 || got[0].ID != "new-1" {
		t.Errorf("Expected only the replacement expense, got %d records", len(got))
	}
}

func TestSQLiteStorage_DeleteExpensesInRange(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	expenses := createTestExpenses(4)
	// Push the last expense onto a different day.
	expenses[3].Timestamp = expenses[3].Timestamp.AddDate(0, 0, 1)
	for i := range expenses {
		if err := store.SaveExpense(ctx, &expenses[i]); err != nil {
			t.Fatalf("Failed to save expense: %v", err)
		}
	}

	dayStart := time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)
	dayEnd := time.Date(2025, 6, 15, 23, 59, 59, 999999999, time.Local)
	if err := store.DeleteExpensesInRange(ctx, dayStart, dayEnd); err != nil {
		t.Fatalf("Failed to delete range: %v", err)
	}

	got, err := store.ListExpenses(ctx, service.ExpenseFilter{})
	if err != nil {
		t.Fatalf("Failed to list expenses: %v", err)
	}
	if len(got) != 1 || got[0].ID != expenses[3].ID {
		t.Errorf("Expected only the next-day expense to survive, got %d records", len(got))
	}
}

func TestSQLiteStorage_Transaction(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	expense := createTestExpenses(1)[0]

	t.Run("rollback discards changes", func(t *testing.T) {
		tx, err := store.BeginTx(ctx)
		if err != nil {
			t.Fatalf("Failed to begin transaction: %v", err)
		}
		if err := tx.SaveExpense(ctx, &expense); err != nil {
			t.Fatalf("Failed to save in transaction: %v", err)
		}
		if err := tx.Rollback(); err != nil {
			t.Fatalf("Failed to rollback: %v", err)
		}

		got, err := store.GetExpense(ctx, expense.ID)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if got != nil {
			t.Error("Expected rollback to discard the expense")
		}
	})

	t.Run("commit applies changes", func(t *testing.T) {
		tx, err := store.BeginTx(ctx)
		if err != nil {
			t.Fatalf("Failed to begin transaction: %v", err)
		}
		if err := tx.SaveExpense(ctx, &expense); err != nil {
			t.Fatalf("Failed to save in transaction: %v", err)
		}
		if err := tx.Commit(); err != nil {
			t.Fatalf("Failed to commit: %v", err)
		}

		got, err := store.GetExpense(ctx, expense.ID)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if got == nil {
			t.Error("Expected committed expense to be visible")
		}
	})
}

func TestSQLiteStorage_NilContext(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	//nolint:staticcheck // passing nil context intentionally
	if _, err := store.ListExpenses(nil, service.ExpenseFilter{}); err == nil {
		t.Error("Expected error for nil context")
	}
}
