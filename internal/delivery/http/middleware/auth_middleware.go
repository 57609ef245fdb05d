// Package middleware contains the Echo middleware for the HTTP delivery.
package middleware

import (
	"strings"

	deliverycontext "spendtrack/internal/delivery/context"
	domainerrors "spendtrack/internal/domain/errors"
	"spendtrack/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware guards routes behind bearer-token authentication. Token
// checks go through the auth usecase so revoked tokens are rejected even
// while their signature is still valid.
type AuthMiddleware struct {
	authUC usecase.AuthUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(authUC usecase.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{authUC: authUC}
}

// Authenticate validates the bearer token and stores the resolved user
// identity on the request context. Every failure mode produces the same
// unauthenticated error.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return domainerrors.ErrUnauthenticated
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			return domainerrors.ErrUnauthenticated
		}

		userID, err := m.authUC.Authenticate(c.Request().Context(), tokenString)
		if err != nil {
			return err
		}

		deliverycontext.SetUserID(c, userID)
		deliverycontext.SetAccessToken(c, tokenString)

		return next(c)
	}
}
