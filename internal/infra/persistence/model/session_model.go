package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionModel mirrors the 'sessions' table. One row per live bearer
// token, keyed by the token's SHA-256 hash.
type SessionModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	TokenHash string    `gorm:"type:varchar(64);unique;not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (SessionModel) TableName() string {
	return "sessions"
}

// BeforeCreate assigns a fresh UUID when none was provided.
func (m *SessionModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}
