package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session represents one live bearer token. The raw token is never
// stored; a SHA-256 hash keys the record so revocation and refresh can
// invalidate a token server-side before its JWT expiry.
type Session struct {
	ID        uuid.UUID // The unique ID for this session record.
	UserID    uuid.UUID // Links this session to the User it belongs to.
	TokenHash string    // SHA-256 hash of the raw bearer token.
	ExpiresAt time.Time // When the session stops being accepted.
	CreatedAt time.Time // When the token was issued.
}
