// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"spendtrack/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// --- Output DTOs ---

// TokenOutput returns an issued bearer token together with its metadata.
// ExpiresIn is the remaining lifetime in seconds, mirroring the common
// OAuth response shape.
type TokenOutput struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int64        `json:"expires_in"`
	User        *entity.User `json:"user"`
}

// AuthUsecase defines the interface for authentication and session
// management. Every operation takes identity explicitly; there is no
// ambient "current user" state anywhere in the core.
type AuthUsecase interface {
	// Register creates a new user account and immediately issues a token.
	Register(ctx context.Context, input *RegisterInput) (*TokenOutput, error)

	// Login verifies credentials and issues a token.
	Login(ctx context.Context, input *LoginInput) (*TokenOutput, error)

	// Authenticate resolves a raw bearer token to a user identity,
	// consulting both the token signature and the revocation state.
	Authenticate(ctx context.Context, token string) (uuid.UUID, error)

	// Me returns the account record behind an authenticated identity.
	Me(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// Refresh atomically revokes the presented token and issues a new one
	// for the same identity.
	Refresh(ctx context.Context, token string) (*TokenOutput, error)

	// Logout revokes the presented token. Revoking an already-invalid
	// token is not an error.
	Logout(ctx context.Context, token string) error
}
