package category

import (
	"time"

	"github.com/fintrack/fintrack/internal/uid"
)

// Kind classifies what a budget category tracks.
type Kind string

const (
	KindIncome  Kind = "INCOME"
	KindExpense Kind = "EXPENSE"
	KindSavings Kind = "SAVINGS"
)

// Valid reports whether the kind is one of the known values.
func (k Kind) Valid() bool {
	switch k {
	case KindIncome, KindExpense, KindSavings:
		return true
	}
	return false
}

// Category is a user-owned budget bucket with a spending limit.
type Category struct {
	ID          uid.UID
	UserID      uid.UID
	Name        string
	BudgetLimit int64 // cents
	Kind        Kind
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
