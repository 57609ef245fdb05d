package handler

import (
	"net/http"

	"spendtrack/internal/delivery/http/response"
	domainerrors "spendtrack/internal/domain/errors"
	"spendtrack/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CategoryHandler holds dependencies for category-related handlers.
type CategoryHandler struct {
	uc usecase.CategoryUsecase
}

// NewCategoryHandler is the constructor for CategoryHandler, injected by Fx.
func NewCategoryHandler(uc usecase.CategoryUsecase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// List returns all categories.
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.uc.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, categories, "")
}

// Create adds a new category.
func (h *CategoryHandler) Create(c echo.Context) error {
	var input usecase.CategoryInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid category input")
	}

	category, err := h.uc.Create(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, category, "Category created successfully")
}

// Get returns one category by id.
func (h *CategoryHandler) Get(c echo.Context) error {
	id, err := categoryIDParam(c)
	if err != nil {
		return err
	}

	category, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, category, "")
}

// Update renames a category.
func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := categoryIDParam(c)
	if err != nil {
		return err
	}

	var input usecase.CategoryInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid category input")
	}

	category, err := h.uc.Rename(c.Request().Context(), id, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, category, "Category updated successfully")
}

// Delete removes a category that no expense references.
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := categoryIDParam(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Category deleted successfully"}, "Category deleted successfully")
}

// categoryIDParam parses the :id path segment. A malformed id behaves
// exactly like a missing category.
func categoryIDParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrCategoryNotFound
	}

	return id, nil
}
