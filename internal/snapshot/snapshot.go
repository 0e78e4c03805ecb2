// Package snapshot serializes and restores the full persisted state as one
// versioned unit, in JSON and SpreadsheetML tabular forms.
package snapshot

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/daybook-app/daybook/internal/common"
	"github.com/daybook-app/daybook/internal/model"
	"github.com/daybook-app/daybook/internal/report"
	"github.com/daybook-app/daybook/internal/service"
)

// MergePolicy selects how imported expenses reconcile with existing state.
type MergePolicy string

const (
	// PolicyReplace wholesale-replaces the imported collections.
	PolicyReplace MergePolicy = "replace"
	// PolicyDateMerge replaces only the calendar days present in the
	// import, leaving every other day untouched.
	PolicyDateMerge MergePolicy = "date-merge"
)

// ParseMergePolicy validates a policy name from configuration.
func ParseMergePolicy(s string) (MergePolicy, error) {
	switch MergePolicy(s) {
	case PolicyReplace:
		return PolicyReplace, nil
	case PolicyDateMerge:
		return PolicyDateMerge, nil
	default:
		return "", fmt.Errorf("%w: unknown merge policy %q", common.ErrValidation, s)
	}
}

// Service builds and applies snapshots against the storage collaborator.
type Service struct {
	store service.Storage
	now   func() time.Time
}

// New creates a snapshot service. A nil clock defaults to time.Now.
func New(store service.Storage, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, now: now}
}

// Export captures the full current state. It does not mutate anything.
func (s *Service) Export(ctx context.Context) (*model.Snapshot, error) {
	expenses, err := s.store.ListExpenses(ctx, service.ExpenseFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	trash, err := s.store.ListTrash(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing trash: %w", err)
	}
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	return &model.Snapshot{
		Version:     model.SnapshotVersion,
		GeneratedAt: s.now(),
		Expenses:    expenses,
		Trash:       trash,
		Settings:    settings,
		Categories:  categories,
	}, nil
}

// apply commits a normalized snapshot in one storage transaction. Under
// date-merge only the calendar days present in the batch are touched;
// trash, settings, and categories are left alone.
func (s *Service) apply(ctx context.Context, snap *model.Snapshot, policy MergePolicy) error {
	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	switch policy {
	case PolicyReplace:
		if err := tx.ReplaceExpenses(ctx, sortedDescending(snap.Expenses)); err != nil {
			return fmt.Errorf("replacing expenses: %w", err)
		}
		if snap.Trash != nil {
			if err := tx.ReplaceTrash(ctx, snap.Trash); err != nil {
				return fmt.Errorf("replacing trash: %w", err)
			}
		}
		if err := tx.SaveSettings(ctx, snap.Settings); err != nil {
			return fmt.Errorf("replacing settings: %w", err)
		}
		if len(snap.Categories) > 0 {
			if err := tx.ReplaceCategories(ctx, snap.Categories); err != nil {
				return fmt.Errorf("replacing categories: %w", err)
			}
		}

	case PolicyDateMerge:
		if err := mergeByDay(ctx, tx, snap.Expenses); err != nil {
			return err
		}

	default:
		return fmt.Errorf("%w: unknown merge policy %q", common.ErrValidation, policy)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing import: %w", err)
	}
	return nil
}

// applyExpenses commits an expense-only batch (the tabular form carries no
// trash or settings). Replace swaps the whole ledger; everything else is
// left untouched under either policy.
func (s *Service) applyExpenses(ctx context.Context, expenses []model.Expense, policy MergePolicy) error {
	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	switch policy {
	case PolicyReplace:
		if err := tx.ReplaceExpenses(ctx, sortedDescending(expenses)); err != nil {
			return fmt.Errorf("replacing expenses: %w", err)
		}
	case PolicyDateMerge:
		if err := mergeByDay(ctx, tx, expenses); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: unknown merge policy %q", common.ErrValidation, policy)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing import: %w", err)
	}
	return nil
}

// mergeByDay applies the date-keyed merge: for every calendar day present
// in the batch, existing expenses on that day are removed and replaced by
// the imported rows, inserted ascending by timestamp.
func mergeByDay(ctx context.Context, tx service.Transaction, expenses []model.Expense) error {
	byDay := make(map[string][]model.Expense)
	for _, e := range expenses {
		key := report.DayKey(e.Timestamp)
		byDay[key] = append(byDay[key], e)
	}
	days := make([]string, 0, len(byDay))
	for key := range byDay {
		days = append(days, key)
	}
	sort.Strings(days)

	for _, key := range days {
		entries := byDay[key]
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Timestamp.Before(entries[j].Timestamp)
		})
		dayStart := report.StartOfDay(entries[0].Timestamp)
		dayEnd := report.EndOfDay(entries[0].Timestamp)
		if err := tx.DeleteExpensesInRange(ctx, dayStart, dayEnd); err != nil {
			return fmt.Errorf("clearing day %s: %w", key, err)
		}
		for i := range entries {
			if err := tx.SaveExpense(ctx, &entries[i]); err != nil {
				return fmt.Errorf("inserting imported expense: %w", err)
			}
		}
	}
	return nil
}

func sortedDescending(expenses []model.Expense) []model.Expense {
	out := append([]model.Expense(nil), expenses...)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// ImportResult summarizes an applied import.
type ImportResult struct {
	Imported int
	Days     int
	Skipped  int
}
