package model

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// DefaultTitle is used when an expense is created or imported without one.
const DefaultTitle = "默认"

// MinAmount is the smallest amount an expense may carry.
const MinAmount = 1.0

// Expense represents a single active ledger entry.
type Expense struct {
	Timestamp time.Time `json:"ts"`
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Amount    float64   `json:"amount"`
}

// TrashRecord is an expense moved to the recoverable holding area.
type TrashRecord struct {
	Expense
	DeletedAt time.Time `json:"deletedAt"`
}

// NewID returns a fresh opaque expense identifier.
func NewID() string {
	return uuid.NewString()
}

// RoundAmount normalizes an amount to two decimal places.
func RoundAmount(amount float64) float64 {
	return math.Round(amount*100) / 100
}
