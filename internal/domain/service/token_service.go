// Package service defines domain service interfaces whose concrete
// implementations live in the infrastructure layer.
package service

import (
	"time"

	"github.com/google/uuid"
)

// Claims carries the verified content of a bearer token.
type Claims struct {
	UserID    uuid.UUID
	ExpiresAt time.Time
}

// TokenService defines the interface for issuing and verifying bearer
// tokens. This abstracts the token format from the use cases.
type TokenService interface {
	// Generate creates a new signed bearer token for the user and
	// returns it together with its expiry time.
	Generate(userID uuid.UUID) (token string, expiresAt time.Time, err error)

	// Validate verifies the token's signature and expiry and returns its
	// claims. The error is uniform across failure modes: a malformed,
	// tampered, or expired token all look the same to the caller.
	Validate(token string) (*Claims, error)

	// Hash returns the stable hash under which a token's session row is
	// stored. The raw token never reaches the database.
	Hash(token string) string

	// TokenDuration returns the configured lifetime of issued tokens.
	TokenDuration() time.Duration
}
