package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ExpenseModel mirrors the 'expenses' table. Amount is stored as
// numeric(12,2) so currency values round-trip exactly.
type ExpenseModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"type:varchar(255);not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ExpenseDate time.Time       `gorm:"type:date;not null;index"`
	Notes       string          `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Category *CategoryModel `gorm:"foreignKey:CategoryID"`
}

// TableName explicitly sets the table name for GORM.
func (ExpenseModel) TableName() string {
	return "expenses"
}

// BeforeCreate assigns a fresh UUID when none was provided.
func (m *ExpenseModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}
