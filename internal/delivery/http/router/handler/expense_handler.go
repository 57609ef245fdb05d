package handler

import (
	"net/http"
	"strconv"

	deliverycontext "spendtrack/internal/delivery/context"
	"spendtrack/internal/delivery/http/response"
	domainerrors "spendtrack/internal/domain/errors"
	"spendtrack/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ExpenseHandler holds dependencies for expense-related handlers.
type ExpenseHandler struct {
	uc usecase.ExpenseUsecase
}

// NewExpenseHandler is the constructor for ExpenseHandler, injected by Fx.
func NewExpenseHandler(uc usecase.ExpenseUsecase) *ExpenseHandler {
	return &ExpenseHandler{uc: uc}
}

// Create records a new expense for the authenticated user.
func (h *ExpenseHandler) Create(c echo.Context) error {
	ownerID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	var input usecase.CreateExpenseInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid expense input")
	}

	expense, err := h.uc.Create(c.Request().Context(), ownerID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, expense, "Expense created successfully")
}

// List returns a filtered, sorted, paginated page of the user's expenses.
func (h *ExpenseHandler) List(c echo.Context) error {
	ownerID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	input := &usecase.ListExpensesInput{
		Filter:        c.QueryParam("filter"),
		StartDate:     c.QueryParam("start_date"),
		EndDate:       c.QueryParam("end_date"),
		CategoryID:    c.QueryParam("category_id"),
		SortBy:        c.QueryParam("sort_by"),
		SortDirection: c.QueryParam("sort_direction"),
		Page:          queryInt(c, "page"),
		PerPage:       queryInt(c, "per_page"),
	}

	output, err := h.uc.List(c.Request().Context(), ownerID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}

// Get returns one of the user's expenses by id.
func (h *ExpenseHandler) Get(c echo.Context) error {
	ownerID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	id, err := expenseIDParam(c)
	if err != nil {
		return err
	}

	expense, err := h.uc.Get(c.Request().Context(), ownerID, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, expense, "")
}

// Update applies a partial update to one of the user's expenses.
func (h *ExpenseHandler) Update(c echo.Context) error {
	ownerID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	id, err := expenseIDParam(c)
	if err != nil {
		return err
	}

	var input usecase.UpdateExpenseInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid expense input")
	}

	expense, err := h.uc.Update(c.Request().Context(), ownerID, id, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, expense, "Expense updated successfully")
}

// Delete permanently removes one of the user's expenses.
func (h *ExpenseHandler) Delete(c echo.Context) error {
	ownerID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	id, err := expenseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), ownerID, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Expense deleted successfully"}, "Expense deleted successfully")
}

// Summary returns the user's total spend plus per-category subtotals
// over the same filter window as listing.
func (h *ExpenseHandler) Summary(c echo.Context) error {
	ownerID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	input := &usecase.SummaryInput{
		Filter:    c.QueryParam("filter"),
		StartDate: c.QueryParam("start_date"),
		EndDate:   c.QueryParam("end_date"),
	}

	output, err := h.uc.Summarize(c.Request().Context(), ownerID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}

// expenseIDParam parses the :id path segment. A malformed id behaves
// exactly like a missing expense.
func expenseIDParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrExpenseNotFound
	}

	return id, nil
}

// queryInt parses an integer query parameter, treating absent or
// malformed values as zero so the usecase applies its defaults.
func queryInt(c echo.Context, name string) int {
	value, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}

	return value
}
