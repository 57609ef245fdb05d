package impl

import (
	"context"
	"fmt"
	"log/slog"

	deliverycontext "spendtrack/internal/delivery/context"
	"spendtrack/internal/domain/entity"
	domainerrors "spendtrack/internal/domain/errors"
	"spendtrack/internal/domain/repository"
	"spendtrack/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// categoryService implements the CategoryUsecase interface.
type categoryService struct {
	txManager    repository.TransactionManager
	categoryRepo repository.CategoryRepository
	logger       *slog.Logger
}

// CategoryServiceParams holds dependencies for categoryService, injected by Fx.
type CategoryServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	CategoryRepo repository.CategoryRepository
	Logger       *slog.Logger
}

// NewCategoryService is the constructor for categoryService.
func NewCategoryService(params CategoryServiceParams) usecase.CategoryUsecase {
	return &categoryService{
		txManager:    params.TxManager,
		categoryRepo: params.CategoryRepo,
		logger:       params.Logger,
	}
}

func (srv *categoryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List returns all categories in a stable order.
func (srv *categoryService) List(ctx context.Context) ([]*entity.Category, error) {
	categories, err := srv.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}

// Create adds a new category. The name must be non-empty, at most 255
// characters, and unique by case-sensitive exact match.
func (srv *categoryService) Create(ctx context.Context, input *usecase.CategoryInput) (*entity.Category, error) {
	if err := validateCategoryName(input.Name); err != nil {
		return nil, err
	}

	category := &entity.Category{Name: input.Name}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		categoryRepo := repoFactory.CategoryRepo()

		if err := checkNameAvailable(ctx, categoryRepo, input.Name, uuid.Nil); err != nil {
			return err
		}

		return categoryRepo.Create(ctx, category)
	})
	if err != nil {
		srv.log(ctx).Warn("Category creation failed", slog.String("name", input.Name), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute category creation transaction")
	}

	srv.log(ctx).Info("Category created", slog.Any("categoryID", category.ID), slog.String("name", category.Name))

	return category, nil
}

// Get returns one category by id.
func (srv *categoryService) Get(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := srv.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, errors.Wrap(domainerrors.ErrCategoryNotFound, "category lookup failed")
		}

		return nil, errors.Wrap(err, "failed to load category")
	}

	return category, nil
}

// Rename changes a category's name. The target's own current name is
// excluded from the uniqueness check, so a no-op rename succeeds.
func (srv *categoryService) Rename(ctx context.Context, id uuid.UUID, input *usecase.CategoryInput) (*entity.Category, error) {
	if err := validateCategoryName(input.Name); err != nil {
		return nil, err
	}

	var renamed *entity.Category

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		categoryRepo := repoFactory.CategoryRepo()

		category, err := categoryRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return errors.Wrap(domainerrors.ErrCategoryNotFound, "category lookup failed")
			}

			return errors.Wrap(err, "failed to load category")
		}

		if err := checkNameAvailable(ctx, categoryRepo, input.Name, category.ID); err != nil {
			return err
		}

		category.Name = input.Name
		if err := categoryRepo.Update(ctx, category); err != nil {
			return errors.Wrap(err, "failed to update category")
		}

		renamed = category

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Category rename failed", slog.Any("categoryID", id), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute category rename transaction")
	}

	return renamed, nil
}

// Delete removes a category. Deletion is refused while any expense still
// references the category; the reference count is taken live inside the
// same transaction as the delete, so a concurrent expense insert cannot
// slip past the guard.
func (srv *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		categoryRepo := repoFactory.CategoryRepo()
		expenseRepo := repoFactory.ExpenseRepo()

		if _, err := categoryRepo.FindByID(ctx, id); err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return errors.Wrap(domainerrors.ErrCategoryNotFound, "category lookup failed")
			}

			return errors.Wrap(err, "failed to load category")
		}

		refs, err := expenseRepo.CountByCategory(ctx, id)
		if err != nil {
			return errors.Wrap(err, "failed to count category references")
		}
		if refs > 0 {
			return errors.Wrap(domainerrors.ErrCategoryInUse, "category delete refused")
		}

		return categoryRepo.Delete(ctx, id)
	})
	if err != nil {
		srv.log(ctx).Warn("Category deletion failed", slog.Any("categoryID", id), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute category deletion transaction")
	}

	srv.log(ctx).Info("Category deleted", slog.Any("categoryID", id))

	return nil
}

// validateCategoryName enforces the field-level constraints on a name.
func validateCategoryName(name string) error {
	if name == "" {
		return domainerrors.NewFieldError("name", "The name field is required")
	}
	if len(name) > entity.MaxCategoryNameLength {
		return domainerrors.NewFieldError("name",
			fmt.Sprintf("The name may not be greater than %d characters", entity.MaxCategoryNameLength))
	}

	return nil
}

// checkNameAvailable enforces case-sensitive name uniqueness, excluding
// the category identified by selfID (uuid.Nil when creating).
func checkNameAvailable(ctx context.Context, categoryRepo repository.CategoryRepository, name string, selfID uuid.UUID) error {
	existing, err := categoryRepo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil
		}

		return errors.Wrap(err, "failed to check name uniqueness")
	}

	if existing.ID != selfID {
		return errors.Wrap(domainerrors.ErrDuplicateCategoryName, "name already taken")
	}

	return nil
}
