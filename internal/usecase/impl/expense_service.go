package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	deliverycontext "spendtrack/internal/delivery/context"
	"spendtrack/internal/domain/entity"
	domainerrors "spendtrack/internal/domain/errors"
	"spendtrack/internal/domain/repository"
	"spendtrack/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// expenseService implements the ExpenseUsecase interface.
type expenseService struct {
	txManager   repository.TransactionManager
	expenseRepo repository.ExpenseRepository
	logger      *slog.Logger
	now         func() time.Time
}

// ExpenseServiceParams holds dependencies for expenseService, injected by Fx.
type ExpenseServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ExpenseRepo repository.ExpenseRepository
	Logger      *slog.Logger
}

// NewExpenseService is the constructor for expenseService.
func NewExpenseService(params ExpenseServiceParams) usecase.ExpenseUsecase {
	return &expenseService{
		txManager:   params.TxManager,
		expenseRepo: params.ExpenseRepo,
		logger:      params.Logger,
		now:         time.Now,
	}
}

func (srv *expenseService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

const expenseDateLayout = "2006-01-02"

// Create records a new expense for the owner. The category must resolve
// at write time; that check and the insert share one transaction.
func (srv *expenseService) Create(ctx context.Context, ownerID uuid.UUID, input *usecase.CreateExpenseInput) (*entity.Expense, error) {
	fields := map[string]string{}

	categoryID, ok := parseCategoryID(input.CategoryID, fields)
	validateDescription(input.Description, fields)
	amount, _ := parseAmount(input.Amount, true, fields)
	expenseDate, _ := parseExpenseDate(input.ExpenseDate, true, fields)

	if len(fields) > 0 || !ok {
		return nil, domainerrors.NewFieldValidationError(fields)
	}

	expense := &entity.Expense{
		UserID:      ownerID,
		CategoryID:  categoryID,
		Description: input.Description,
		Amount:      amount,
		ExpenseDate: expenseDate,
		Notes:       input.Notes,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		category, err := resolveCategory(ctx, repoFactory.CategoryRepo(), categoryID)
		if err != nil {
			return err
		}

		if err := repoFactory.ExpenseRepo().Create(ctx, expense); err != nil {
			return errors.Wrap(err, "failed to create expense")
		}
		expense.Category = category

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Expense creation failed", slog.Any("ownerID", ownerID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute expense creation transaction")
	}

	srv.log(ctx).Info("Expense created", slog.Any("expenseID", expense.ID), slog.Any("ownerID", ownerID))

	return expense, nil
}

// Get returns one of the owner's expenses. A foreign-owned expense is
// reported exactly like a missing one.
func (srv *expenseService) Get(ctx context.Context, ownerID, id uuid.UUID) (*entity.Expense, error) {
	expense, err := srv.expenseRepo.FindByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrExpenseNotFound) {
			return nil, errors.Wrap(domainerrors.ErrExpenseNotFound, "expense lookup failed")
		}

		return nil, errors.Wrap(err, "failed to load expense")
	}

	return expense, nil
}

// Update applies a partial update: nil input fields are left unchanged,
// supplied fields are validated like on create.
func (srv *expenseService) Update(ctx context.Context, ownerID, id uuid.UUID, input *usecase.UpdateExpenseInput) (*entity.Expense, error) {
	fields := map[string]string{}

	var categoryID uuid.UUID
	categorySupplied := input.CategoryID != nil
	if categorySupplied {
		categoryID, _ = parseCategoryID(*input.CategoryID, fields)
	}
	if input.Description != nil {
		validateDescription(*input.Description, fields)
	}
	var amount decimal.Decimal
	if input.Amount != nil {
		amount, _ = parseAmount(*input.Amount, true, fields)
	}
	var expenseDate time.Time
	if input.ExpenseDate != nil {
		expenseDate, _ = parseExpenseDate(*input.ExpenseDate, true, fields)
	}

	if len(fields) > 0 {
		return nil, domainerrors.NewFieldValidationError(fields)
	}

	var updated *entity.Expense

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		expenseRepo := repoFactory.ExpenseRepo()

		expense, err := expenseRepo.FindByID(ctx, ownerID, id)
		if err != nil {
			if errors.Is(err, repository.ErrExpenseNotFound) {
				return errors.Wrap(domainerrors.ErrExpenseNotFound, "expense lookup failed")
			}

			return errors.Wrap(err, "failed to load expense")
		}

		if categorySupplied {
			category, err := resolveCategory(ctx, repoFactory.CategoryRepo(), categoryID)
			if err != nil {
				return err
			}
			expense.CategoryID = categoryID
			expense.Category = category
		}
		if input.Description != nil {
			expense.Description = *input.Description
		}
		if input.Amount != nil {
			expense.Amount = amount
		}
		if input.ExpenseDate != nil {
			expense.ExpenseDate = expenseDate
		}
		if input.Notes != nil {
			expense.Notes = *input.Notes
		}

		if err := expenseRepo.Update(ctx, expense); err != nil {
			return errors.Wrap(err, "failed to update expense")
		}

		updated = expense

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Expense update failed", slog.Any("expenseID", id), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute expense update transaction")
	}

	return updated, nil
}

// Delete permanently removes one of the owner's expenses.
func (srv *expenseService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := srv.expenseRepo.Delete(ctx, ownerID, id); err != nil {
		if errors.Is(err, repository.ErrExpenseNotFound) {
			return errors.Wrap(domainerrors.ErrExpenseNotFound, "expense lookup failed")
		}

		srv.log(ctx).Error("Expense deletion failed", slog.Any("expenseID", id), slog.Any("error", err))

		return errors.Wrap(err, "failed to delete expense")
	}

	srv.log(ctx).Info("Expense deleted", slog.Any("expenseID", id), slog.Any("ownerID", ownerID))

	return nil
}

// List returns a filtered, sorted, paginated page of the owner's
// expenses. Unknown filter keywords and sort fields fall back to their
// defaults; ordering carries an id tie-break so pages never drift.
func (srv *expenseService) List(ctx context.Context, ownerID uuid.UUID, input *usecase.ListExpensesInput) (*usecase.ExpenseListOutput, error) {
	from, to := usecase.ParseDateFilter(input.Filter, input.StartDate, input.EndDate).Bounds(srv.now())
	column, desc := usecase.ResolveSort(input.SortBy, input.SortDirection)
	page, perPage := usecase.NormalizePage(input.Page, input.PerPage)

	query := repository.ExpenseQuery{
		OwnerID:    ownerID,
		From:       from,
		To:         to,
		SortColumn: column,
		SortDesc:   desc,
		Page:       page,
		PerPage:    perPage,
	}
	if input.CategoryID != "" {
		// An unparseable category id matches nothing, it is not an error.
		categoryID, err := uuid.Parse(input.CategoryID)
		if err != nil {
			categoryID = uuid.Nil
		}
		query.CategoryID = &categoryID
	}

	result, err := srv.expenseRepo.Find(ctx, query)
	if err != nil {
		srv.log(ctx).Error("Expense listing failed", slog.Any("ownerID", ownerID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list expenses")
	}

	totalPages := int((result.Total + int64(perPage) - 1) / int64(perPage))
	if totalPages < 1 {
		totalPages = 1
	}

	return &usecase.ExpenseListOutput{
		Items:      result.Items,
		Total:      result.Total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
	}, nil
}

// resolveCategory loads the referenced category, reporting a missing one
// as a field-level validation failure naming category_id.
func resolveCategory(ctx context.Context, categoryRepo repository.CategoryRepository, id uuid.UUID) (*entity.Category, error) {
	category, err := categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, domainerrors.NewFieldError("category_id", "The selected category_id is invalid")
		}

		return nil, errors.Wrap(err, "failed to resolve category")
	}

	return category, nil
}

// validateDescription records a field error for an absent or overlong
// description.
func validateDescription(description string, fields map[string]string) {
	if description == "" {
		fields["description"] = "The description field is required"

		return
	}
	if len(description) > entity.MaxExpenseDescriptionLength {
		fields["description"] = fmt.Sprintf("The description may not be greater than %d characters", entity.MaxExpenseDescriptionLength)
	}
}

// parseCategoryID records a field error for absent or malformed ids.
// Existence is checked separately, inside the write transaction.
func parseCategoryID(raw string, fields map[string]string) (uuid.UUID, bool) {
	if raw == "" {
		fields["category_id"] = "The category_id field is required"

		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		fields["category_id"] = "The selected category_id is invalid"

		return uuid.Nil, false
	}

	return id, true
}

func parseAmount(raw string, required bool, fields map[string]string) (decimal.Decimal, bool) {
	if raw == "" {
		if required {
			fields["amount"] = "The amount field is required"
		}

		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		fields["amount"] = "The amount must be a number"

		return decimal.Zero, false
	}
	if amount.IsNegative() {
		fields["amount"] = "The amount must be at least 0"

		return decimal.Zero, false
	}

	return amount, true
}

func parseExpenseDate(raw string, required bool, fields map[string]string) (time.Time, bool) {
	if raw == "" {
		if required {
			fields["expense_date"] = "The expense_date field is required"
		}

		return time.Time{}, false
	}
	date, err := time.ParseInLocation(expenseDateLayout, raw, time.Local)
	if err != nil {
		fields["expense_date"] = "The expense_date is not a valid date"

		return time.Time{}, false
	}

	return date, true
}
