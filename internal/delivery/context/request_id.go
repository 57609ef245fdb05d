// Package context carries request-scoped values (request ID, logger,
// authenticated identity) between the delivery layer and the services.
package context

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// KeyRequestID is the key for storing request ID in context.
	KeyRequestID ContextKey = "request_id"

	// KeyLogger is the key for storing request-scoped logger in context.
	KeyLogger ContextKey = "logger"

	// KeyUserID is the key for storing the authenticated user's ID.
	KeyUserID ContextKey = "user_id"

	// KeyAccessToken is the key for storing the raw bearer token of the
	// current request, needed by logout and refresh.
	KeyAccessToken ContextKey = "access_token"

	// HeaderXRequestID is the HTTP header name for request ID.
	HeaderXRequestID = "X-Request-Id"
)

// GetRequestID extracts the request ID from echo.Context.
// If not found, generates a new UUID.
func GetRequestID(c echo.Context) string {
	val := c.Get(string(KeyRequestID))
	if id, ok := val.(string); ok && id != "" {
		return id
	}

	return uuid.New().String()
}

// SetRequestID sets the request ID in echo.Context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
}

// WithRequestID returns a new context with the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// GetLogger extracts the request-scoped logger from context.Context.
// If not found, returns nil.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok {
		return logger
	}

	return nil
}

// GetLoggerOrDefault extracts the request-scoped logger from context.Context.
// If not found, returns the provided fallback logger.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}

// WithLogger returns a new context with the logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}

// SetUserID stores the authenticated user's ID in echo.Context.
func SetUserID(c echo.Context, userID uuid.UUID) {
	c.Set(string(KeyUserID), userID)
}

// GetUserID extracts the authenticated user's ID from echo.Context.
// The second return is false when the request never passed authentication.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(string(KeyUserID)).(uuid.UUID)

	return userID, ok
}

// SetAccessToken stores the raw bearer token in echo.Context.
func SetAccessToken(c echo.Context, token string) {
	c.Set(string(KeyAccessToken), token)
}

// GetAccessToken extracts the raw bearer token from echo.Context.
func GetAccessToken(c echo.Context) (string, bool) {
	token, ok := c.Get(string(KeyAccessToken)).(string)

	return token, ok && token != ""
}
