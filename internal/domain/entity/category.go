package entity

import (
	"time"

	"github.com/google/uuid"
)

// MaxCategoryNameLength is the upper bound for a category name.
const MaxCategoryNameLength = 255

// Category is a global expense bucket shared by all users. Names are
// unique with a case-sensitive exact match. A category cannot be deleted
// while any expense still references it.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
