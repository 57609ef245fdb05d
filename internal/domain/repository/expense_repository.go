package repository

import (
	"context"
	"time"

	"spendtrack/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrExpenseNotFound is returned when no expense matches the given id
// within the caller's ownership scope. A foreign-owned expense produces
// the same error as a missing one.
var ErrExpenseNotFound = errors.New("expense not found")

// ExpenseQuery describes a fully resolved query over one owner's
// expenses. Filter keywords and sort aliases are resolved by the caller
// before this struct is built, so the repository never interprets
// request strings.
type ExpenseQuery struct {
	OwnerID    uuid.UUID
	From       *time.Time // Inclusive lower bound on expense_date, nil for unbounded.
	To         *time.Time // Inclusive upper bound on expense_date, nil for unbounded.
	CategoryID *uuid.UUID // Exact category match, nil for all categories.
	SortColumn string     // Resolved column name from the allow-list.
	SortDesc   bool
	Page       int // 1-based page number.
	PerPage    int
}

// ExpensePage is one page of query results plus the total match count.
type ExpensePage struct {
	Items []*entity.Expense
	Total int64
}

// ExpenseRepository defines the standard operations for expense
// persistence. Every method that touches an existing record takes the
// owner explicitly and must scope to it.
type ExpenseRepository interface {
	// Create persists a new expense and loads its category relation.
	Create(ctx context.Context, expense *entity.Expense) error

	// FindByID retrieves one expense owned by ownerID.
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*entity.Expense, error)

	// Update persists changed fields of an expense and back-fills the
	// entity's UpdatedAt with the write timestamp. Ownership must have
	// been established by a prior FindByID in the same transaction.
	Update(ctx context.Context, expense *entity.Expense) error

	// Delete permanently removes one expense owned by ownerID.
	Delete(ctx context.Context, ownerID, id uuid.UUID) error

	// Find returns the page of expenses matching the query, with the
	// category relation loaded. Ordering is stable: the requested sort
	// column first, then id, so repeated calls paginate identically.
	Find(ctx context.Context, query ExpenseQuery) (*ExpensePage, error)

	// FindAllFiltered returns every expense matching the owner and date
	// bounds, category relation loaded, without sorting or pagination.
	// Used by the summary aggregation.
	FindAllFiltered(ctx context.Context, ownerID uuid.UUID, from, to *time.Time) ([]*entity.Expense, error)

	// CountByCategory reports how many expenses of any owner reference
	// the category. This is a live count; it backs the delete guard and
	// must run in the same transaction as the delete.
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
}
