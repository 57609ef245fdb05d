package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryModel mirrors the 'categories' table. Names carry a unique
// constraint as a backstop behind the application-level duplicate check.
type CategoryModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Name      string    `gorm:"type:varchar(255);unique;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CategoryModel) TableName() string {
	return "categories"
}

// BeforeCreate assigns a fresh UUID when none was provided.
func (m *CategoryModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}
