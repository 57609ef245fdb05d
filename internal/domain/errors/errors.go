// Package errors defines the application error taxonomy. Every expected
// failure maps to a stable business code so callers can branch on it.
package errors

import (
	"net/http"

	"github.com/pkg/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Authentication-related errors.
	// ErrUnauthenticated covers every token failure mode uniformly:
	// missing, malformed, expired, bad signature, or revoked. Callers
	// must not be able to tell which one occurred.
	ErrUnauthenticated = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHENTICATED",
		"Authentication required",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid email or password",
		"",
	)

	ErrEmailAlreadyExists = NewBaseError(
		http.StatusConflict,
		"EMAIL_ALREADY_EXISTS",
		"This email is already registered",
		"",
	)

	// Resource errors. NotFound deliberately covers both "absent" and
	// "owned by someone else" so existence never leaks across owners.
	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)

	ErrCategoryNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Category not found",
		"",
	)

	ErrExpenseNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Expense not found",
		"",
	)

	// Category-related errors.
	ErrDuplicateCategoryName = NewBaseError(
		http.StatusConflict,
		"DUPLICATE_NAME",
		"A category with this name already exists",
		"",
	)

	ErrCategoryInUse = NewBaseError(
		http.StatusConflict,
		"CATEGORY_IN_USE",
		"Cannot delete category as it is being used by expenses",
		"",
	)

	// Validation errors without field context.
	ErrValidationFailed = NewBaseError(
		http.StatusUnprocessableEntity,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// General errors.
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)

// FieldValidationError reports validation failures per field so callers
// can highlight the exact inputs that were rejected.
type FieldValidationError struct {
	fields map[string]string
}

// NewFieldValidationError creates a validation error for the given fields.
func NewFieldValidationError(fields map[string]string) *FieldValidationError {
	return &FieldValidationError{fields: fields}
}

// NewFieldError creates a validation error for a single field.
func NewFieldError(field, message string) *FieldValidationError {
	return &FieldValidationError{fields: map[string]string{field: message}}
}

// Error implements the error interface
func (e *FieldValidationError) Error() string {
	return "input validation failed"
}

// HTTPCode returns the HTTP status code
func (e *FieldValidationError) HTTPCode() int {
	return http.StatusUnprocessableEntity
}

// ErrorCode returns the business error code
func (e *FieldValidationError) ErrorCode() string {
	return "VALIDATION_FAILED"
}

// Message returns the user-friendly error message
func (e *FieldValidationError) Message() string {
	return "Input validation failed"
}

// Details returns a flat rendering of the per-field messages.
func (e *FieldValidationError) Details() string {
	out := ""
	for field, msg := range e.fields {
		if out != "" {
			out += "; "
		}
		out += field + ": " + msg
	}

	return out
}

// Fields returns the per-field validation messages.
func (e *FieldValidationError) Fields() map[string]string {
	return e.fields
}

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
