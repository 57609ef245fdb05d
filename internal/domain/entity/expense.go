package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxExpenseDescriptionLength is the upper bound for an expense description.
const MaxExpenseDescriptionLength = 255

// Expense is a single spend record. Every expense belongs to exactly one
// user; reads and writes are always scoped to that owner, so a foreign
// expense is indistinguishable from a missing one.
type Expense struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`     // Owner. Immutable after creation.
	CategoryID  uuid.UUID       `json:"category_id"` // Must reference an existing Category at write time.
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"` // Currency amount, never negative.
	ExpenseDate time.Time       `json:"expense_date"`
	Notes       string          `json:"notes,omitempty"`
	Category    *Category       `json:"category,omitempty"` // Denormalized for responses.
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
