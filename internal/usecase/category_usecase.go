package usecase

import (
	"context"

	"spendtrack/internal/domain/entity"

	"github.com/google/uuid"
)

// CategoryInput carries the single mutable field of a category.
type CategoryInput struct {
	Name string `json:"name" validate:"required,max=255"`
}

// CategoryUsecase defines the interface for category management.
// Categories are global; authentication is required but no owner scoping
// applies. Deletion is refused while any expense references the category.
type CategoryUsecase interface {
	// List returns all categories in a stable order.
	List(ctx context.Context) ([]*entity.Category, error)

	// Create adds a new category with a unique, case-sensitive name.
	Create(ctx context.Context, input *CategoryInput) (*entity.Category, error)

	// Get returns one category by id.
	Get(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// Rename changes a category's name. Renaming a category to its own
	// current name succeeds.
	Rename(ctx context.Context, id uuid.UUID, input *CategoryInput) (*entity.Category, error)

	// Delete removes a category, failing while expenses still reference it.
	Delete(ctx context.Context, id uuid.UUID) error
}
