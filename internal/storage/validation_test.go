package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/daybook-app/daybook/internal/model"
)

func TestValidateContext(t *testing.T) {
	if err := validateContext(context.Background()); err != nil {
		t.Errorf("Unexpected error for valid context: %v", err)
	}
	//nolint:staticcheck // passing nil context intentionally
	if err := validateContext(nil); !errors.Is(err, ErrNilContext) {
		t.Errorf("Expected ErrNilContext, got %v", err)
	}
}

func TestValidateString(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "valid string", value: "hello"},
		{name: "empty string", value: "", wantErr: true},
		{name: "whitespace only", value: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateString(tt.value, "param")
			if (err != nil) != tt.wantErr {
				t.Errorf("validateString(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestValidateExpense(t *testing.T) {
	valid := model.Expense{
		ID:        "exp-1",
		Title:     "lunch",
		Amount:    12.5,
		Timestamp: time.Now(),
		Category:  "吃饭",
	}

	tests := []struct {
		mutate  func(*model.Expense)
		name    string
		nilArg  bool
		wantErr bool
	}{
		{name: "valid expense", mutate: func(_ *model.Expense) {}},
		{name: "nil expense", nilArg: true, wantErr: true},
		{name: "missing id", mutate: func(e *model.Expense) { e.ID = "" }, wantErr: true},
		{name: "missing category", mutate: func(e *model.Expense) { e.Category = "" }, wantErr: true},
		{name: "zero timestamp", mutate: func(e *model.Expense) { e.Timestamp = time.Time{} }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.nilArg {
				if err := validateExpense(nil); err == nil {
					t.Error("Expected error for nil expense")
				}
				return
			}
			expense := valid
			tt.mutate(&expense)
			err := validateExpense(&expense)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateExpense() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
