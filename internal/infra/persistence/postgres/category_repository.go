package postgres

import (
	"context"

	"spendtrack/internal/domain/entity"
	domainerrors "spendtrack/internal/domain/errors"
	"spendtrack/internal/domain/repository"
	"spendtrack/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// categoryRepository implements the domain.CategoryRepository interface.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository is the constructor for categoryRepository.
func NewCategoryRepository(db *gorm.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

// FindAll retrieves every category ordered by name, then id, so listings
// are stable across calls.
func (repo *categoryRepository) FindAll(ctx context.Context) ([]*entity.Category, error) {
	var categoryModels []*model.CategoryModel
	if err := repo.db.WithContext(ctx).
		Order("name asc").
		Order("id asc").
		Find(&categoryModels).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	categories := make([]*entity.Category, 0, len(categoryModels))
	for _, categoryM := range categoryModels {
		categories = append(categories, toCategoryDomain(categoryM))
	}

	return categories, nil
}

// FindByID retrieves a single category by its unique ID.
func (repo *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var categoryM model.CategoryModel
	if err := repo.db.WithContext(ctx).First(&categoryM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCategoryNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toCategoryDomain(&categoryM), nil
}

// FindByName retrieves a single category by its exact name.
func (repo *categoryRepository) FindByName(ctx context.Context, name string) (*entity.Category, error) {
	var categoryM model.CategoryModel
	if err := repo.db.WithContext(ctx).First(&categoryM, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCategoryNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toCategoryDomain(&categoryM), nil
}

// Create persists a new category.
func (repo *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	categoryM := fromCategoryDomain(category)

	if err := repo.db.WithContext(ctx).Create(categoryM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrDuplicateCategoryName.WrapMessage("category name already taken")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create category")
	}

	category.ID = categoryM.ID
	category.CreatedAt = categoryM.CreatedAt
	category.UpdatedAt = categoryM.UpdatedAt

	return nil
}

// Update modifies an existing category.
func (repo *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	categoryM := fromCategoryDomain(category)

	result := repo.db.WithContext(ctx).
		Model(&model.CategoryModel{}).
		Where("id = ?", categoryM.ID).
		Update("name", categoryM.Name)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrDuplicateCategoryName.WrapMessage("category name already taken")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update category")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCategoryNotFound
	}

	return nil
}

// Delete removes a category by ID. The in-use guard runs in the caller's
// transaction, not here.
func (repo *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.CategoryModel{}, "id = ?", id)
	if result.Error != nil {
		return errors.WithStack(result.Error)
	}

	if result.RowsAffected == 0 {
		return repository.ErrCategoryNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toCategoryDomain converts a GORM CategoryModel to a domain Category entity.
func toCategoryDomain(data *model.CategoryModel) *entity.Category {
	if data == nil {
		return nil
	}

	return &entity.Category{
		ID:        data.ID,
		Name:      data.Name,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromCategoryDomain converts a domain Category entity to a GORM CategoryModel.
func fromCategoryDomain(data *entity.Category) *model.CategoryModel {
	if data == nil {
		return nil
	}

	return &model.CategoryModel{
		ID:        data.ID,
		Name:      data.Name,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
