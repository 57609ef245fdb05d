package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"spendtrack/internal/delivery/http/response"
	domainerrors "spendtrack/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware error handling middleware
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	// Per-field validation failures carry their field map through.
	var fieldErr *domainerrors.FieldValidationError
	if errors.As(err, &fieldErr) {
		_ = response.ValidationError(c, fieldErr.Message(), fieldErr.Fields())

		return
	}

	// Expected business failures map onto their own status and code.
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		_ = response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())

		return
	}

	// Echo's own errors (404 route, 405, body too large, ...)
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := fmt.Sprintf("%v", httpErr.Message)
		_ = response.Error(c, httpErr.Code, "HTTP_ERROR", message, "")

		return
	}

	// Everything else is unexpected. Log it and return a generic error
	// without leaking internals.
	m.logger.Error("Unhandled error",
		slog.String("error", err.Error()),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	_ = response.InternalServerError(c, "INTERNAL_ERROR", http.StatusText(http.StatusInternalServerError))
}
