package postgres

import (
	"context"
	"fmt"

	"spendtrack/internal/domain/repository"

	"gorm.io/gorm"
)

// gormTransactionManager implements the domain's TransactionManager interface using GORM.
type gormTransactionManager struct {
	db *gorm.DB
}

// gormRepositoryFactory implements the domain's RepositoryFactory interface.
// It holds a specific GORM transaction object and uses it to create
// repository instances that are bound to that single transaction.
type gormRepositoryFactory struct {
	tx *gorm.DB // In GORM, a transaction object is also a *gorm.DB
}

// UserRepo returns a user repository bound to the transaction.
func (f *gormRepositoryFactory) UserRepo() repository.UserRepository {
	return NewUserRepository(f.tx)
}

// CategoryRepo returns a category repository bound to the transaction.
func (f *gormRepositoryFactory) CategoryRepo() repository.CategoryRepository {
	return NewCategoryRepository(f.tx)
}

// ExpenseRepo returns an expense repository bound to the transaction.
func (f *gormRepositoryFactory) ExpenseRepo() repository.ExpenseRepository {
	return NewExpenseRepository(f.tx)
}

// SessionRepo returns a session repository bound to the transaction.
func (f *gormRepositoryFactory) SessionRepo() repository.SessionRepository {
	return NewSessionRepository(f.tx)
}

// NewTransactionManager is the constructor for gormTransactionManager.
// This function will be used as an Fx provider.
func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &gormTransactionManager{db: db}
}

// Execute runs the given function within a single database transaction.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	tx := tm.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	// This defer block ensures that if a panic occurs within the callback function,
	// the transaction is always rolled back.
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			// Re-panic to allow Fx or other middleware to handle the panic.
			panic(r)
		}
	}()

	factory := &gormRepositoryFactory{tx: tx}

	err := fn(factory)
	if err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			// Return the original, more meaningful business error.
			return fmt.Errorf("transaction rollback failed: %v (original error: %w)", rbErr, err)
		}

		return err
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
