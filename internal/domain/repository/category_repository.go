package repository

import (
	"context"

	"spendtrack/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrCategoryNotFound is returned when no category matches the given id or name.
var ErrCategoryNotFound = errors.New("category not found")

// CategoryRepository defines the standard operations for category persistence.
// Categories are global: no owner scoping applies here.
type CategoryRepository interface {
	// FindAll retrieves every category in a stable order (by name, then id).
	FindAll(ctx context.Context) ([]*entity.Category, error)

	// FindByID retrieves a single category by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindByName retrieves a single category by its exact, case-sensitive name.
	FindByName(ctx context.Context, name string) (*entity.Category, error)

	// Create persists a new category.
	Create(ctx context.Context, category *entity.Category) error

	// Update modifies an existing category.
	Update(ctx context.Context, category *entity.Category) error

	// Delete removes a category by ID. The caller is responsible for the
	// in-use reference check; both must run in the same transaction.
	Delete(ctx context.Context, id uuid.UUID) error
}
