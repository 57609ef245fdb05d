package repository

import (
	"context"

	"spendtrack/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for session persistence.
var (
	// ErrSessionNotFound is returned when a session is not found.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired is returned when a session has expired.
	ErrSessionExpired = errors.New("session has expired")
)

// SessionRepository manages the server-side validity state of bearer
// tokens. A token is live while its hashed session row exists and has
// not expired; revocation deletes the row.
type SessionRepository interface {
	// Create persists a new session for a freshly issued token.
	Create(ctx context.Context, session *entity.Session) error

	// FindByTokenHash retrieves a live session by the token's hash.
	// Expired sessions are reported as ErrSessionExpired.
	FindByTokenHash(ctx context.Context, tokenHash string) (*entity.Session, error)

	// DeleteByTokenHash removes a session by the token's hash.
	DeleteByTokenHash(ctx context.Context, tokenHash string) error

	// DeleteByUserID removes all sessions for a user.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error

	// DeleteExpired removes all expired sessions. Called opportunistically
	// for cleanup; correctness never depends on it.
	DeleteExpired(ctx context.Context) error
}
