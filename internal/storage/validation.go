// Package storage provides the data persistence layer for the daybook application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/daybook-app/daybook/internal/model"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrNilParameter     = errors.New("parameter cannot be nil")
	ErrInvalidDateRange = errors.New("start date must be before end date")
	ErrInvalidExpense   = errors.New("invalid expense")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateExpense validates a single expense record.
func validateExpense(expense *model.Expense) error {
	if expense == nil {
		return fmt.Errorf("%w: expense", ErrNilParameter)
	}
	if expense.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidExpense)
	}
	if expense.Timestamp.IsZero() {
		return fmt.Errorf("%w: missing timestamp", ErrInvalidExpense)
	}
	if expense.Category == "" {
		return fmt.Errorf("%w: missing category", ErrInvalidExpense)
	}
	return nil
}

// validateTrashRecord validates a trash record.
func validateTrashRecord(record *model.TrashRecord) error {
	if record == nil {
		return fmt.Errorf("%w: trash record", ErrNilParameter)
	}
	if err := validateExpense(&record.Expense); err != nil {
		return err
	}
	if record.DeletedAt.IsZero() {
		return fmt.Errorf("%w: missing deletion time", ErrInvalidExpense)
	}
	return nil
}
