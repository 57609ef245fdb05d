package postgres

import (
	"context"

	"spendtrack/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// defaultCategoryNames are created once at startup so a fresh install
// has a usable category set before anyone adds their own.
var defaultCategoryNames = []string{
	"Groceries",
	"Leisure",
	"Electronics",
	"Utilities",
	"Clothing",
	"Health",
	"Others",
}

// Migrate brings the schema up to date and seeds the default
// categories. Safe to run on every startup: existing tables and
// categories are left untouched.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(
		&model.UserModel{},
		&model.CategoryModel{},
		&model.ExpenseModel{},
		&model.SessionModel{},
	); err != nil {
		return errors.Wrap(err, "failed to migrate schema")
	}

	for _, name := range defaultCategoryNames {
		category := &model.CategoryModel{Name: name}
		if err := db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoNothing: true,
			}).
			Create(category).Error; err != nil {
			return errors.Wrapf(err, "failed to seed category %q", name)
		}
	}

	return nil
}
