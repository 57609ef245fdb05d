package usecase

import (
	"context"

	"spendtrack/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Input DTOs ---

// CreateExpenseInput defines the data required to record an expense.
// Amount and ExpenseDate arrive as strings so the handlers can report
// field-level parse failures instead of opaque binding errors.
type CreateExpenseInput struct {
	CategoryID  string `json:"category_id" validate:"required"`
	Description string `json:"description" validate:"required,max=255"`
	Amount      string `json:"amount" validate:"required"`
	ExpenseDate string `json:"expense_date" validate:"required"`
	Notes       string `json:"notes"`
}

// UpdateExpenseInput carries a partial update: nil fields are left
// unchanged, supplied fields undergo the same validation as on create.
type UpdateExpenseInput struct {
	CategoryID  *string `json:"category_id"`
	Description *string `json:"description"`
	Amount      *string `json:"amount"`
	ExpenseDate *string `json:"expense_date"`
	Notes       *string `json:"notes"`
}

// ListExpensesInput carries raw listing parameters; all are optional and
// resolved leniently (see ParseDateFilter and ResolveSort).
type ListExpensesInput struct {
	Filter        string
	StartDate     string
	EndDate       string
	CategoryID    string
	SortBy        string
	SortDirection string
	Page          int
	PerPage       int
}

// SummaryInput carries raw summary parameters; filter semantics are the
// same as for listing, without category narrowing.
type SummaryInput struct {
	Filter    string
	StartDate string
	EndDate   string
}

// --- Output DTOs ---

// ExpenseListOutput is one page of expenses plus pagination metadata.
type ExpenseListOutput struct {
	Items      []*entity.Expense `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PerPage    int               `json:"per_page"`
	TotalPages int               `json:"total_pages"`
}

// CategorySummary is one category's share of a spend summary.
type CategorySummary struct {
	Category *entity.Category `json:"category"`
	Total    decimal.Decimal  `json:"total"`
}

// SummaryOutput is the two-part spend aggregate: the exact overall total
// and per-category subtotals for every category with at least one
// matching expense.
type SummaryOutput struct {
	TotalAmount decimal.Decimal    `json:"total_amount"`
	ByCategory  []*CategorySummary `json:"by_category"`
}

// ExpenseUsecase defines the interface for expense recording, querying
// and aggregation. Every operation takes the owner identity explicitly
// and never exposes another owner's records.
type ExpenseUsecase interface {
	// Create records a new expense for the owner.
	Create(ctx context.Context, ownerID uuid.UUID, input *CreateExpenseInput) (*entity.Expense, error)

	// Get returns one of the owner's expenses by id.
	Get(ctx context.Context, ownerID, id uuid.UUID) (*entity.Expense, error)

	// Update applies a partial update to one of the owner's expenses.
	Update(ctx context.Context, ownerID, id uuid.UUID, input *UpdateExpenseInput) (*entity.Expense, error)

	// Delete permanently removes one of the owner's expenses.
	Delete(ctx context.Context, ownerID, id uuid.UUID) error

	// List returns a filtered, sorted, paginated page of the owner's
	// expenses. Repeated calls over unchanged data return identical pages.
	List(ctx context.Context, ownerID uuid.UUID, input *ListExpensesInput) (*ExpenseListOutput, error)

	// Summarize computes the exact total and per-category subtotals over
	// the owner's filtered expenses.
	Summarize(ctx context.Context, ownerID uuid.UUID, input *SummaryInput) (*SummaryOutput, error)
}
