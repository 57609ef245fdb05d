package postgres

import (
	"context"
	"time"

	"spendtrack/internal/domain/entity"
	domainerrors "spendtrack/internal/domain/errors"
	"spendtrack/internal/domain/repository"
	"spendtrack/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// expenseRepository implements the domain.ExpenseRepository interface.
// All reads and writes against existing rows are scoped to the owning
// user, so one user's queries can never observe another's records.
type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository is the constructor for expenseRepository.
func NewExpenseRepository(db *gorm.DB) repository.ExpenseRepository {
	return &expenseRepository{db: db}
}

// Create persists a new expense and loads its category relation.
func (repo *expenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	expenseM := fromExpenseDomain(expense)

	if err := repo.db.WithContext(ctx).Create(expenseM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrCategoryNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create expense")
	}

	expense.ID = expenseM.ID
	expense.CreatedAt = expenseM.CreatedAt
	expense.UpdatedAt = expenseM.UpdatedAt

	return nil
}

// FindByID retrieves one expense owned by ownerID. A foreign-owned row
// yields the same not-found error as a missing one.
func (repo *expenseRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*entity.Expense, error) {
	var expenseM model.ExpenseModel
	if err := repo.db.WithContext(ctx).
		Preload("Category").
		First(&expenseM, "id = ? AND user_id = ?", id, ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrExpenseNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toExpenseDomain(&expenseM), nil
}

// Update persists the mutable fields of an expense and back-fills the
// new UpdatedAt on the entity. Ownership must have been established by a
// prior FindByID in the same transaction.
func (repo *expenseRepository) Update(ctx context.Context, expense *entity.Expense) error {
	now := time.Now()
	updates := map[string]any{
		"category_id":  expense.CategoryID,
		"description":  expense.Description,
		"amount":       expense.Amount,
		"expense_date": expense.ExpenseDate,
		"notes":        expense.Notes,
		"updated_at":   now,
	}

	result := repo.db.WithContext(ctx).
		Model(&model.ExpenseModel{}).
		Where("id = ? AND user_id = ?", expense.ID, expense.UserID).
		Updates(updates)
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return repository.ErrCategoryNotFound
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update expense")
	}

	if result.RowsAffected == 0 {
		return repository.ErrExpenseNotFound
	}

	expense.UpdatedAt = now

	return nil
}

// Delete permanently removes one expense owned by ownerID.
func (repo *expenseRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Delete(&model.ExpenseModel{}, "id = ? AND user_id = ?", id, ownerID)
	if result.Error != nil {
		return errors.WithStack(result.Error)
	}

	if result.RowsAffected == 0 {
		return repository.ErrExpenseNotFound
	}

	return nil
}

// Find returns one page of expenses matching the query. The requested
// sort column always gets an id tie-break so pagination is stable even
// when many rows share the same sort value.
func (repo *expenseRepository) Find(ctx context.Context, query repository.ExpenseQuery) (*repository.ExpensePage, error) {
	base := repo.db.WithContext(ctx).
		Model(&model.ExpenseModel{}).
		Where("user_id = ?", query.OwnerID)
	base = applyExpenseBounds(base, query.From, query.To)
	if query.CategoryID != nil {
		base = base.Where("category_id = ?", *query.CategoryID)
	}
	// Reused for both the count and the page query.
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	direction := "asc"
	if query.SortDesc {
		direction = "desc"
	}

	var expenseModels []*model.ExpenseModel
	if err := base.
		Preload("Category").
		Order(query.SortColumn + " " + direction).
		Order("id asc").
		Offset((query.Page - 1) * query.PerPage).
		Limit(query.PerPage).
		Find(&expenseModels).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	items := make([]*entity.Expense, 0, len(expenseModels))
	for _, expenseM := range expenseModels {
		items = append(items, toExpenseDomain(expenseM))
	}

	return &repository.ExpensePage{Items: items, Total: total}, nil
}

// FindAllFiltered returns every expense matching the owner and date
// bounds, without pagination. Used by the summary aggregation.
func (repo *expenseRepository) FindAllFiltered(ctx context.Context, ownerID uuid.UUID, from, to *time.Time) ([]*entity.Expense, error) {
	tx := repo.db.WithContext(ctx).
		Model(&model.ExpenseModel{}).
		Where("user_id = ?", ownerID)
	tx = applyExpenseBounds(tx, from, to)

	var expenseModels []*model.ExpenseModel
	if err := tx.Preload("Category").Find(&expenseModels).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	expenses := make([]*entity.Expense, 0, len(expenseModels))
	for _, expenseM := range expenseModels {
		expenses = append(expenses, toExpenseDomain(expenseM))
	}

	return expenses, nil
}

// CountByCategory reports how many expenses of any owner reference the
// category. Backs the category delete guard.
func (repo *expenseRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&model.ExpenseModel{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error; err != nil {
		return 0, errors.WithStack(err)
	}

	return count, nil
}

func applyExpenseBounds(tx *gorm.DB, from, to *time.Time) *gorm.DB {
	if from != nil {
		tx = tx.Where("expense_date >= ?", *from)
	}
	if to != nil {
		tx = tx.Where("expense_date <= ?", *to)
	}

	return tx
}

// --- Mapper Functions ---

// toExpenseDomain converts a GORM ExpenseModel to a domain Expense entity.
func toExpenseDomain(data *model.ExpenseModel) *entity.Expense {
	if data == nil {
		return nil
	}

	return &entity.Expense{
		ID:          data.ID,
		UserID:      data.UserID,
		CategoryID:  data.CategoryID,
		Description: data.Description,
		Amount:      data.Amount,
		ExpenseDate: data.ExpenseDate,
		Notes:       data.Notes,
		Category:    toCategoryDomain(data.Category),
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// fromExpenseDomain converts a domain Expense entity to a GORM ExpenseModel.
func fromExpenseDomain(data *entity.Expense) *model.ExpenseModel {
	if data == nil {
		return nil
	}

	return &model.ExpenseModel{
		ID:          data.ID,
		UserID:      data.UserID,
		CategoryID:  data.CategoryID,
		Description: data.Description,
		Amount:      data.Amount,
		ExpenseDate: data.ExpenseDate,
		Notes:       data.Notes,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
