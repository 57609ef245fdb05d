package impl

import (
	"context"
	"testing"
	"time"

	"spendtrack/internal/domain/entity"
	mockRepo "spendtrack/internal/mocks/repository"
	"spendtrack/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExpenseService_Summarize_ExactTotals(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	groceries := &entity.Category{ID: uuid.New(), Name: "Groceries"}
	utilities := &entity.Category{ID: uuid.New(), Name: "Utilities"}

	expenses := []*entity.Expense{
		{
			ID:         uuid.New(),
			UserID:     ownerID,
			CategoryID: groceries.ID,
			Category:   groceries,
			Amount:     decimal.RequireFromString("120.50"),
		},
		{
			ID:         uuid.New(),
			UserID:     ownerID,
			CategoryID: utilities.ID,
			Category:   utilities,
			Amount:     decimal.RequireFromString("85.75"),
		},
	}

	expenseRepo := mockRepo.NewMockExpenseRepository(t)
	svc := newExpenseService(t, expenseRepo, mockRepo.NewMockCategoryRepository(t))

	expenseRepo.On("FindAllFiltered", ctx, ownerID, (*time.Time)(nil), (*time.Time)(nil)).
		Return(expenses, nil)

	output, err := svc.Summarize(ctx, ownerID, &usecase.SummaryInput{})

	require.NoError(t, err)
	assert.True(t, output.TotalAmount.Equal(decimal.RequireFromString("206.25")),
		"got total %s", output.TotalAmount)
	require.Len(t, output.ByCategory, 2)

	// Rows come back ordered by category name.
	assert.Equal(t, "Groceries", output.ByCategory[0].Category.Name)
	assert.True(t, output.ByCategory[0].Total.Equal(decimal.RequireFromString("120.50")))
	assert.Equal(t, "Utilities", output.ByCategory[1].Category.Name)
	assert.True(t, output.ByCategory[1].Total.Equal(decimal.RequireFromString("85.75")))

	// The overall total always equals the sum of the subtotals.
	sum := decimal.Zero
	for _, row := range output.ByCategory {
		sum = sum.Add(row.Total)
	}
	assert.True(t, output.TotalAmount.Equal(sum))
}

func TestExpenseService_Summarize_GroupsRepeatedCategories(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	leisure := &entity.Category{ID: uuid.New(), Name: "Leisure"}
	expenses := []*entity.Expense{
		{ID: uuid.New(), CategoryID: leisure.ID, Category: leisure, Amount: decimal.RequireFromString("0.10")},
		{ID: uuid.New(), CategoryID: leisure.ID, Category: leisure, Amount: decimal.RequireFromString("0.20")},
		{ID: uuid.New(), CategoryID: leisure.ID, Category: leisure, Amount: decimal.RequireFromString("0.30")},
	}

	expenseRepo := mockRepo.NewMockExpenseRepository(t)
	svc := newExpenseService(t, expenseRepo, mockRepo.NewMockCategoryRepository(t))

	expenseRepo.On("FindAllFiltered", ctx, ownerID, (*time.Time)(nil), (*time.Time)(nil)).
		Return(expenses, nil)

	output, err := svc.Summarize(ctx, ownerID, &usecase.SummaryInput{})

	require.NoError(t, err)
	// 0.1+0.2+0.3 is exactly 0.60 in decimal space, no float drift.
	assert.True(t, output.TotalAmount.Equal(decimal.RequireFromString("0.60")))
	require.Len(t, output.ByCategory, 1)
	assert.True(t, output.ByCategory[0].Total.Equal(decimal.RequireFromString("0.60")))
}

func TestExpenseService_Summarize_EmptySet(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	expenseRepo := mockRepo.NewMockExpenseRepository(t)
	svc := newExpenseService(t, expenseRepo, mockRepo.NewMockCategoryRepository(t))

	expenseRepo.On("FindAllFiltered", ctx, ownerID, (*time.Time)(nil), (*time.Time)(nil)).
		Return([]*entity.Expense{}, nil)

	output, err := svc.Summarize(ctx, ownerID, &usecase.SummaryInput{})

	require.NoError(t, err)
	assert.True(t, output.TotalAmount.IsZero())
	assert.Empty(t, output.ByCategory)
}

func TestExpenseService_Summarize_HonorsDateFilter(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	expenseRepo := mockRepo.NewMockExpenseRepository(t)
	svc := newExpenseService(t, expenseRepo, mockRepo.NewMockCategoryRepository(t))

	// past_week resolves to a lower bound only.
	expenseRepo.On("FindAllFiltered", ctx, ownerID,
		mock.MatchedBy(func(from *time.Time) bool { return from != nil }),
		(*time.Time)(nil),
	).Return([]*entity.Expense{}, nil)

	_, err := svc.Summarize(ctx, ownerID, &usecase.SummaryInput{Filter: "past_week"})

	require.NoError(t, err)
}
