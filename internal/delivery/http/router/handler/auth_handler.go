// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"

	deliverycontext "spendtrack/internal/delivery/context"
	"spendtrack/internal/delivery/http/response"
	domainerrors "spendtrack/internal/domain/errors"
	"spendtrack/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for authentication-related handlers.
type AuthHandler struct {
	uc usecase.AuthUsecase
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register handles the account registration request.
func (h *AuthHandler) Register(c echo.Context) error {
	var input usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Register(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "User registered successfully")
}

// Login handles the credential login request.
func (h *AuthHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Login successful")
}

// Me returns the authenticated user's own account record.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	user, err := h.uc.Me(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "")
}

// Refresh revokes the presented token and issues a replacement.
func (h *AuthHandler) Refresh(c echo.Context) error {
	token, ok := deliverycontext.GetAccessToken(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	output, err := h.uc.Refresh(c.Request().Context(), token)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Token refreshed successfully")
}

// Logout revokes the presented token.
func (h *AuthHandler) Logout(c echo.Context) error {
	token, ok := deliverycontext.GetAccessToken(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	if err := h.uc.Logout(c.Request().Context(), token); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Successfully logged out"}, "Logout successful")
}
