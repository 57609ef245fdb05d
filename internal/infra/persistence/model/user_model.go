// Package model contains the GORM persistence models mirroring the
// database schema. IDs are generated application-side so the models stay
// portable across drivers.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel mirrors the 'users' table.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Email        string    `gorm:"type:varchar(255);unique;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Expenses []ExpenseModel `gorm:"foreignKey:UserID"`
	Sessions []SessionModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// BeforeCreate assigns a fresh UUID when none was provided.
func (m *UserModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}
