package impl

import (
	"context"
	"strings"
	"testing"
	"time"

	"spendtrack/internal/domain/entity"
	domainerrors "spendtrack/internal/domain/errors"
	"spendtrack/internal/domain/repository"
	mockRepo "spendtrack/internal/mocks/repository"
	"spendtrack/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newExpenseService(t *testing.T, expenseRepo *mockRepo.MockExpenseRepository, categoryRepo *mockRepo.MockCategoryRepository) usecase.ExpenseUsecase {
	t.Helper()

	return NewExpenseService(ExpenseServiceParams{
		TxManager: &mockRepo.StubTransactionManager{
			Factory: &mockRepo.StubRepositoryFactory{
				CategoryRepository: categoryRepo,
				ExpenseRepository:  expenseRepo,
			},
		},
		ExpenseRepo: expenseRepo,
		Logger:      discardLogger(),
	})
}

func TestExpenseService_Create_Success(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	categoryID := uuid.New()
	category := &entity.Category{ID: categoryID, Name: "Groceries"}

	expenseRepo := mockRepo.NewMockExpenseRepository(t)
	categoryRepo := mockRepo.NewMockCategoryRepository(t)
	svc := newExpenseService(t, expenseRepo, categoryRepo)

	categoryRepo.On("FindByID", ctx, categoryID).Return(category, nil)
	expenseRepo.On("Create", ctx, mock.MatchedBy(func(e *entity.Expense) bool {
		return e.UserID == ownerID &&
			e.CategoryID == categoryID &&
			e.Amount.Equal(decimal.RequireFromString("120.50")) &&
			e.ExpenseDate.Format("2006-01-02") == "2024-05-10"
	})).Return(nil)

	expense, err := svc.Create(ctx, ownerID, &usecase.CreateExpenseInput{
		CategoryID:  categoryID.String(),
		Description: "Weekly shop",
		Amount:      "120.50",
		ExpenseDate: "2024-05-10",
	})

	require.NoError(t, err)
	assert.Equal(t, category, expense.Category)
}

func TestExpenseService_Create_UnknownCategoryIsFieldError(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	categoryID := uuid.New()

	expenseRepo := mockRepo.NewMockExpenseRepository(t)
	categoryRepo := mockRepo.NewMockCategoryRepository(t)
	svc := newExpenseService(t, expenseRepo, categoryRepo)

	categoryRepo.On("FindByID", ctx, categoryID).Return(nil, repository.ErrCategoryNotFound)

	_, err := svc.Create(ctx, ownerID, &usecase.CreateExpenseInput{
		CategoryID:  categoryID.String(),
		Description: "Weekly shop",
		Amount:      "120.50",
		ExpenseDate: "2024-05-10",
	})

	var fieldErr *domainerrors.FieldValidationError
	require.ErrorAs(t, err, &fieldErr)
	assert.Contains(t, fieldErr.Fields(), "category_id")
}

func TestExpenseService_Create_CollectsFieldErrors(t *testing.T) {
	ctx := context.Background()
	svc := newExpenseService(t, mockRepo.NewMockExpenseRepository(t), mockRepo.NewMockCategoryRepository(t))

	_, err := svc.Create(ctx, uuid.New(), &usecase.CreateExpenseInput{
		CategoryID:  "not-a-uuid",
		Description: "",
		Amount:      "-5",
		ExpenseDate: "10/05/2024",
	})

	var fieldErr *domainerrors.FieldValidationError
	require.ErrorAs(t, err, &fieldErr)
	fields := fieldErr.Fields()
	assert.Contains(t, fields, "category_id")
	assert.Contains(t, fields, "description")
	assert.Contains(t, fields, "amount")
	assert.Contains(t, fields, "expense_date")
}

func TestExpenseService_Create_RejectsOverlongDescription(t *testing.T) {
	ctx := context.Background()
	svc := newExpenseService(t, mockRepo.NewMockExpenseRepository(t), mockRepo.NewMockCategoryRepository(t))

	_, err := svc.Create(ctx, uuid.New(), &usecase.CreateExpenseInput{
		CategoryID:  uuid.New().String(),
		Description: strings.Repeat("x", entity.MaxExpenseDescriptionLength+1),
		Amount:      "12.00",
		ExpenseDate: "2024-05-10",
	})

	var fieldErr *domainerrors.FieldValidationError
	require.ErrorAs(t, err, &fieldErr)
	assert.Contains(t, fieldErr.Fields(), "description")
}

func TestExpenseService_Get_ForeignOwnedLooksMissing(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	expenseID := uuid.New()

	expenseRepo := mockRepo.NewMockExpenseRepository(t)
	svc := newExpenseService(t, expenseRepo, mockRepo.NewMockCategoryRepository(t))

	// The repository already collapses foreign ownership into not-found.
	expenseRepo.On("FindByID", ctx, ownerID, expenseID).Return(nil, repository.ErrExpenseNotFound)

	_, err := svc.Get(ctx, ownerID, expenseID)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrExpenseNotFound)
}

func TestExpenseService_Update_PartialChangesOnly(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	expenseID := uuid.New()
	categoryID := uuid.New()

	existing := &entity.Expense{
		ID:          expenseID,
		UserID:      ownerID,
		CategoryID:  categoryID,
		Description: "Old description",
		Amount:      decimal.RequireFromString("10.00"),
		ExpenseDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local),
		Notes:       "keep me",
	}

	expenseRepo := mockRepo.NewMockExpenseRepository(t)
	svc := newExpenseService(t, expenseRepo, mockRepo.NewMockCategoryRepository(t))

	expenseRepo.On("FindByID", ctx, ownerID, expenseID).Return(existing, nil)
	expenseRepo.On("Update", ctx, mock.MatchedBy(func(e *entity.Expense) bool {
		return e.Amount.Equal(decimal.RequireFromString("42.00")) &&
			e.Description == "Old description" &&
			e.Notes == "keep me"
	})).Return(nil)

	amount := "42.00"
	updated, err := svc.Update(ctx, ownerID, expenseID, &usecase.UpdateExpenseInput{Amount: &amount})

	require.NoError(t, err)
	assert.Equal(t, "Old description", updated.Description)
	assert.True(t, updated.Amount.Equal(decimal.RequireFromString("42.00")))
}

func TestExpenseService_Update_RejectsNegativeAmount(t *testing.T) {
	ctx := context.Background()
	svc := newExpenseService(t, mockRepo.NewMockExpenseRepository(t), mockRepo.NewMockCategoryRepository(t))

	amount := "-1"
	_, err := svc.Update(ctx, uuid.New(), uuid.New(), &usecase.UpdateExpenseInput{Amount: &amount})

	var fieldErr *domainerrors.FieldValidationError
	require.ErrorAs(t, err, &fieldErr)
	assert.Contains(t, fieldErr.Fields(), "amount")
}

func TestExpenseService_Update_RejectsOverlongDescription(t *testing.T) {
	ctx := context.Background()
	svc := newExpenseService(t, mockRepo.NewMockExpenseRepository(t), mockRepo.NewMockCategoryRepository(t))

	description := strings.Repeat("x", entity.MaxExpenseDescriptionLength+1)
	_, err := svc.Update(ctx, uuid.New(), uuid.New(), &usecase.UpdateExpenseInput{Description: &description})

	var fieldErr *domainerrors.FieldValidationError
	require.ErrorAs(t, err, &fieldErr)
	assert.Contains(t, fieldErr.Fields(), "description")
}

func TestExpenseService_List_AppliesDefaults(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	expenseRepo := mockRepo.NewMockExpenseRepository(t)
	svc := newExpenseService(t, expenseRepo, mockRepo.NewMockCategoryRepository(t))

	expenseRepo.On("Find", ctx, mock.MatchedBy(func(q repository.ExpenseQuery) bool {
		return q.OwnerID == ownerID &&
			q.From == nil && q.To == nil &&
			q.CategoryID == nil &&
			q.SortColumn == "expense_date" && q.SortDesc &&
			q.Page == 1 && q.PerPage == 15
	})).Return(&repository.ExpensePage{Items: nil, Total: 0}, nil)

	output, err := svc.List(ctx, ownerID, &usecase.ListExpensesInput{
		Filter: "bogus-keyword",
		SortBy: "user_id",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, output.Page)
	assert.Equal(t, 15, output.PerPage)
	assert.Equal(t, 1, output.TotalPages)
}

func TestExpenseService_List_PaginationMetadata(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	expenseRepo := mockRepo.NewMockExpenseRepository(t)
	svc := newExpenseService(t, expenseRepo, mockRepo.NewMockCategoryRepository(t))

	expenseRepo.On("Find", ctx, mock.AnythingOfType("repository.ExpenseQuery")).
		Return(&repository.ExpensePage{Items: nil, Total: 31}, nil)

	output, err := svc.List(ctx, ownerID, &usecase.ListExpensesInput{Page: 2, PerPage: 10})

	require.NoError(t, err)
	assert.Equal(t, int64(31), output.Total)
	assert.Equal(t, 2, output.Page)
	assert.Equal(t, 4, output.TotalPages)
}

func TestExpenseService_List_BadCategoryIDMatchesNothing(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	expenseRepo := mockRepo.NewMockExpenseRepository(t)
	svc := newExpenseService(t, expenseRepo, mockRepo.NewMockCategoryRepository(t))

	expenseRepo.On("Find", ctx, mock.MatchedBy(func(q repository.ExpenseQuery) bool {
		return q.CategoryID != nil && *q.CategoryID == uuid.Nil
	})).Return(&repository.ExpensePage{Items: nil, Total: 0}, nil)

	_, err := svc.List(ctx, ownerID, &usecase.ListExpensesInput{CategoryID: "garbage"})

	require.NoError(t, err)
}
