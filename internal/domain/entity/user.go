// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account that owns expenses. Identity records are
// referenced by every Expense and are never deleted through this service.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"` // Login identifier, unique across all users.
	PasswordHash string    `json:"-"`     // bcrypt hash, never serialized outward.
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
