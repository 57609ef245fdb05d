package impl

import (
	"context"
	"log/slog"
	"sort"

	"spendtrack/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Summarize computes the owner's total spend and per-category subtotals
// over the filtered expense set. Accumulation happens in decimal space:
// amounts represent currency, so float math is never involved, and the
// total always equals the sum of the subtotals.
func (srv *expenseService) Summarize(ctx context.Context, ownerID uuid.UUID, input *usecase.SummaryInput) (*usecase.SummaryOutput, error) {
	from, to := usecase.ParseDateFilter(input.Filter, input.StartDate, input.EndDate).Bounds(srv.now())

	expenses, err := srv.expenseRepo.FindAllFiltered(ctx, ownerID, from, to)
	if err != nil {
		srv.log(ctx).Error("Expense summary failed", slog.Any("ownerID", ownerID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to load expenses for summary")
	}

	total := decimal.Zero
	byCategory := make(map[uuid.UUID]*usecase.CategorySummary)

	for _, expense := range expenses {
		total = total.Add(expense.Amount)

		summary, ok := byCategory[expense.CategoryID]
		if !ok {
			summary = &usecase.CategorySummary{
				Category: expense.Category,
				Total:    decimal.Zero,
			}
			byCategory[expense.CategoryID] = summary
		}
		summary.Total = summary.Total.Add(expense.Amount)
	}

	// Categories with no matching expense never enter the map, so they
	// are omitted rather than reported as zero.
	rows := make([]*usecase.CategorySummary, 0, len(byCategory))
	for _, summary := range byCategory {
		rows = append(rows, summary)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Category.Name < rows[j].Category.Name
	})

	return &usecase.SummaryOutput{
		TotalAmount: total,
		ByCategory:  rows,
	}, nil
}
