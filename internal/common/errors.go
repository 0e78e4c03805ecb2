// Package common provides shared error kinds used across the application.
package common

import (
	"errors"
	"fmt"
)

// Error kinds. Operations wrap these so callers can classify failures
// with errors.Is without depending on message text.
var (
	// ErrNotFound means an operation referenced an id absent from its collection.
	ErrNotFound = errors.New("not found")

	// ErrValidation is the base kind for rejected mutations. The mutation
	// is simply not applied; state is never corrupted.
	ErrValidation = errors.New("validation failed")

	// ErrBadFormat means an import payload is not parseable as the
	// expected structured format.
	ErrBadFormat = errors.New("unrecognized format")

	// ErrPersistence means the underlying store failed to read or write.
	ErrPersistence = errors.New("persistence failed")
)

// Specific validation failures, all wrapping ErrValidation.
var (
	ErrEmptyCategoryName = fmt.Errorf("%w: category name cannot be empty", ErrValidation)
	ErrDuplicateCategory = fmt.Errorf("%w: category already exists", ErrValidation)
	ErrLastCategory      = fmt.Errorf("%w: the last category cannot be removed", ErrValidation)
	ErrCategoryInUse     = fmt.Errorf("%w: category has recorded expenses", ErrValidation)
	ErrCategoriesFixed   = fmt.Errorf("%w: category editing is disabled", ErrValidation)
	ErrAmountTooSmall    = fmt.Errorf("%w: amount must be at least 1", ErrValidation)
	ErrEmptyTitle        = fmt.Errorf("%w: title cannot be empty", ErrValidation)
)

// UserError carries a message suitable for direct display alongside the
// underlying cause.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
