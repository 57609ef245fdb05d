// Package repository provides hand-written testify mocks for the domain
// repository interfaces.
package repository

import (
	"context"
	"testing"
	"time"

	"spendtrack/internal/domain/entity"
	"spendtrack/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository mocks repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

// NewMockUserRepository creates a mock wired to the test's lifecycle.
func NewMockUserRepository(t *testing.T) *MockUserRepository {
	m := &MockUserRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

// MockCategoryRepository mocks repository.CategoryRepository.
type MockCategoryRepository struct {
	mock.Mock
}

// NewMockCategoryRepository creates a mock wired to the test's lifecycle.
func NewMockCategoryRepository(t *testing.T) *MockCategoryRepository {
	m := &MockCategoryRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCategoryRepository) FindAll(ctx context.Context) ([]*entity.Category, error) {
	args := m.Called(ctx)
	if categories, ok := args.Get(0).([]*entity.Category); ok {
		return categories, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	args := m.Called(ctx, id)
	if category, ok := args.Get(0).(*entity.Category); ok {
		return category, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCategoryRepository) FindByName(ctx context.Context, name string) (*entity.Category, error) {
	args := m.Called(ctx, name)
	if category, ok := args.Get(0).(*entity.Category); ok {
		return category, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	args := m.Called(ctx, category)

	return args.Error(0)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *entity.Category) error {
	args := m.Called(ctx, category)

	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

// MockExpenseRepository mocks repository.ExpenseRepository.
type MockExpenseRepository struct {
	mock.Mock
}

// NewMockExpenseRepository creates a mock wired to the test's lifecycle.
func NewMockExpenseRepository(t *testing.T) *MockExpenseRepository {
	m := &MockExpenseRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockExpenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	args := m.Called(ctx, expense)

	return args.Error(0)
}

func (m *MockExpenseRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*entity.Expense, error) {
	args := m.Called(ctx, ownerID, id)
	if expense, ok := args.Get(0).(*entity.Expense); ok {
		return expense, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockExpenseRepository) Update(ctx context.Context, expense *entity.Expense) error {
	args := m.Called(ctx, expense)

	return args.Error(0)
}

func (m *MockExpenseRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)

	return args.Error(0)
}

func (m *MockExpenseRepository) Find(ctx context.Context, query repository.ExpenseQuery) (*repository.ExpensePage, error) {
	args := m.Called(ctx, query)
	if page, ok := args.Get(0).(*repository.ExpensePage); ok {
		return page, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockExpenseRepository) FindAllFiltered(ctx context.Context, ownerID uuid.UUID, from, to *time.Time) ([]*entity.Expense, error) {
	args := m.Called(ctx, ownerID, from, to)
	if expenses, ok := args.Get(0).([]*entity.Expense); ok {
		return expenses, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockExpenseRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	args := m.Called(ctx, categoryID)

	return args.Get(0).(int64), args.Error(1)
}

// MockSessionRepository mocks repository.SessionRepository.
type MockSessionRepository struct {
	mock.Mock
}

// NewMockSessionRepository creates a mock wired to the test's lifecycle.
func NewMockSessionRepository(t *testing.T) *MockSessionRepository {
	m := &MockSessionRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockSessionRepository) Create(ctx context.Context, session *entity.Session) error {
	args := m.Called(ctx, session)

	return args.Error(0)
}

func (m *MockSessionRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*entity.Session, error) {
	args := m.Called(ctx, tokenHash)
	if session, ok := args.Get(0).(*entity.Session); ok {
		return session, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockSessionRepository) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)

	return args.Error(0)
}

func (m *MockSessionRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)

	return args.Error(0)
}

func (m *MockSessionRepository) DeleteExpired(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}

// StubRepositoryFactory hands out fixed repositories, standing in for a
// transaction-bound factory.
type StubRepositoryFactory struct {
	UserRepository     repository.UserRepository
	CategoryRepository repository.CategoryRepository
	ExpenseRepository  repository.ExpenseRepository
	SessionRepository  repository.SessionRepository
}

func (f *StubRepositoryFactory) UserRepo() repository.UserRepository {
	return f.UserRepository
}

func (f *StubRepositoryFactory) CategoryRepo() repository.CategoryRepository {
	return f.CategoryRepository
}

func (f *StubRepositoryFactory) ExpenseRepo() repository.ExpenseRepository {
	return f.ExpenseRepository
}

func (f *StubRepositoryFactory) SessionRepo() repository.SessionRepository {
	return f.SessionRepository
}

// StubTransactionManager runs the callback immediately against the given
// factory, without any real transaction semantics. A non-nil Err makes
// Execute fail before the callback runs.
type StubTransactionManager struct {
	Factory repository.RepositoryFactory
	Err     error
}

func (m *StubTransactionManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	if m.Err != nil {
		return m.Err
	}

	return fn(m.Factory)
}
