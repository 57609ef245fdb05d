package postgres

import (
	"context"
	"testing"
	"time"

	"spendtrack/internal/domain/entity"
	domainerrors "spendtrack/internal/domain/errors"
	"spendtrack/internal/domain/repository"
	"spendtrack/internal/infra/persistence/model"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the full schema
// and seed data. The repositories only touch GORM's portable API, so
// they run unchanged against it.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, Migrate(context.Background(), db))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *entity.User {
	t.Helper()

	user := &entity.User{Name: "Test User", Email: email, PasswordHash: "hash"}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))

	return user
}

func createTestCategory(t *testing.T, db *gorm.DB, name string) *entity.Category {
	t.Helper()

	category := &entity.Category{Name: name}
	require.NoError(t, NewCategoryRepository(db).Create(context.Background(), category))

	return category
}

func createTestExpense(t *testing.T, db *gorm.DB, ownerID, categoryID uuid.UUID, amount string, date time.Time) *entity.Expense {
	t.Helper()

	expense := &entity.Expense{
		UserID:      ownerID,
		CategoryID:  categoryID,
		Description: "test expense",
		Amount:      decimal.RequireFromString(amount),
		ExpenseDate: date,
	}
	require.NoError(t, NewExpenseRepository(db).Create(context.Background(), expense))

	return expense
}

func TestMigrate_SeedsDefaultCategoriesOnce(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	// A second run must not duplicate the seed set.
	require.NoError(t, Migrate(ctx, db))

	categories, err := NewCategoryRepository(db).FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, len(defaultCategoryNames))

	names := make([]string, 0, len(categories))
	for _, category := range categories {
		names = append(names, category.Name)
	}
	assert.Contains(t, names, "Groceries")
	assert.Contains(t, names, "Others")
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	user := createTestUser(t, db, "jane@example.com")
	assert.NotEqual(t, uuid.Nil, user.ID)

	found, err := repo.FindByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", byID.Email)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	createTestUser(t, db, "jane@example.com")

	err := repo.Create(ctx, &entity.User{Name: "Other", Email: "jane@example.com", PasswordHash: "hash"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrEmailAlreadyExists)
}

func TestCategoryRepository_NameLookupIsCaseSensitive(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewCategoryRepository(db)

	found, err := repo.FindByName(ctx, "Groceries")
	require.NoError(t, err)
	assert.Equal(t, "Groceries", found.Name)

	_, err = repo.FindByName(ctx, "groceries")
	assert.ErrorIs(t, err, repository.ErrCategoryNotFound)
}

func TestCategoryRepository_UpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewCategoryRepository(db)

	category := createTestCategory(t, db, "Travel")

	category.Name = "Trips"
	require.NoError(t, repo.Update(ctx, category))

	renamed, err := repo.FindByID(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Trips", renamed.Name)

	require.NoError(t, repo.Delete(ctx, category.ID))
	assert.ErrorIs(t, repo.Delete(ctx, category.ID), repository.ErrCategoryNotFound)
}

func TestExpenseRepository_OwnershipIsolation(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewExpenseRepository(db)

	owner := createTestUser(t, db, "owner@example.com")
	intruder := createTestUser(t, db, "intruder@example.com")
	category := createTestCategory(t, db, "Travel")
	expense := createTestExpense(t, db, owner.ID, category.ID, "10.00", time.Now())

	// Reads, updates and deletes by another user all look like not-found.
	_, err := repo.FindByID(ctx, intruder.ID, expense.ID)
	assert.ErrorIs(t, err, repository.ErrExpenseNotFound)

	err = repo.Delete(ctx, intruder.ID, expense.ID)
	assert.ErrorIs(t, err, repository.ErrExpenseNotFound)

	// The row is still there for its real owner.
	found, err := repo.FindByID(ctx, owner.ID, expense.ID)
	require.NoError(t, err)
	assert.Equal(t, expense.ID, found.ID)
	require.NotNil(t, found.Category)
	assert.Equal(t, "Travel", found.Category.Name)
}

func TestExpenseRepository_AmountRoundTripsExactly(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewExpenseRepository(db)

	owner := createTestUser(t, db, "owner@example.com")
	category := createTestCategory(t, db, "Travel")
	expense := createTestExpense(t, db, owner.ID, category.ID, "120.50", time.Now())

	found, err := repo.FindByID(ctx, owner.ID, expense.ID)
	require.NoError(t, err)
	assert.True(t, found.Amount.Equal(decimal.RequireFromString("120.50")),
		"got amount %s", found.Amount)
}

func TestExpenseRepository_FindFiltersAndPaginates(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewExpenseRepository(db)

	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")
	groceries := createTestCategory(t, db, "Food")
	leisure := createTestCategory(t, db, "Fun")

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for day := 0; day < 10; day++ {
		createTestExpense(t, db, owner.ID, groceries.ID, "5.00", base.AddDate(0, 0, day))
	}
	createTestExpense(t, db, owner.ID, leisure.ID, "9.99", base)
	createTestExpense(t, db, other.ID, groceries.ID, "7.00", base)

	// Category narrowing plus date bounds, owner-scoped.
	from := base.AddDate(0, 0, 2)
	to := base.AddDate(0, 0, 5)
	page, err := repo.Find(ctx, repository.ExpenseQuery{
		OwnerID:    owner.ID,
		From:       &from,
		To:         &to,
		CategoryID: &groceries.ID,
		SortColumn: "expense_date",
		SortDesc:   false,
		Page:       1,
		PerPage:    15,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), page.Total)
	require.Len(t, page.Items, 4)
	assert.True(t, page.Items[0].ExpenseDate.Before(page.Items[3].ExpenseDate))
}

func TestExpenseRepository_PaginationIsStableAcrossPages(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewExpenseRepository(db)

	owner := createTestUser(t, db, "owner@example.com")
	category := createTestCategory(t, db, "Food")

	// Identical date and amount on every row: only the id tie-break
	// keeps page boundaries deterministic.
	sameDay := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 9; i++ {
		createTestExpense(t, db, owner.ID, category.ID, "5.00", sameDay)
	}

	seen := map[uuid.UUID]bool{}
	for pageNum := 1; pageNum <= 3; pageNum++ {
		page, err := repo.Find(ctx, repository.ExpenseQuery{
			OwnerID:    owner.ID,
			SortColumn: "expense_date",
			SortDesc:   true,
			Page:       pageNum,
			PerPage:    3,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(9), page.Total)
		require.Len(t, page.Items, 3)

		for _, item := range page.Items {
			assert.False(t, seen[item.ID], "expense %s appeared on two pages", item.ID)
			seen[item.ID] = true
		}
	}
	assert.Len(t, seen, 9)
}

func TestExpenseRepository_CountByCategorySpansOwners(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewExpenseRepository(db)

	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")
	category := createTestCategory(t, db, "Shared")

	createTestExpense(t, db, alice.ID, category.ID, "1.00", time.Now())
	createTestExpense(t, db, bob.ID, category.ID, "2.00", time.Now())

	count, err := repo.CountByCategory(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.CountByCategory(ctx, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestExpenseRepository_UpdatePersistsChanges(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewExpenseRepository(db)

	owner := createTestUser(t, db, "owner@example.com")
	category := createTestCategory(t, db, "Food")
	expense := createTestExpense(t, db, owner.ID, category.ID, "10.00", time.Now())

	staleUpdatedAt := expense.UpdatedAt

	expense.Description = "changed"
	expense.Amount = decimal.RequireFromString("42.00")
	require.NoError(t, repo.Update(ctx, expense))

	// The entity carries the write timestamp, not the pre-update one.
	assert.True(t, expense.UpdatedAt.After(staleUpdatedAt))

	found, err := repo.FindByID(ctx, owner.ID, expense.ID)
	require.NoError(t, err)
	assert.Equal(t, "changed", found.Description)
	assert.True(t, found.Amount.Equal(decimal.RequireFromString("42.00")))
	assert.WithinDuration(t, expense.UpdatedAt, found.UpdatedAt, time.Second)
}

func TestSessionRepository_Lifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewSessionRepository(db)

	user := createTestUser(t, db, "jane@example.com")

	session := &entity.Session{
		UserID:    user.ID,
		TokenHash: "live-hash",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, repo.Create(ctx, session))

	found, err := repo.FindByTokenHash(ctx, "live-hash")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.UserID)

	require.NoError(t, repo.DeleteByTokenHash(ctx, "live-hash"))
	// A second delete reports the session as gone.
	assert.ErrorIs(t, repo.DeleteByTokenHash(ctx, "live-hash"), repository.ErrSessionNotFound)
	_, err = repo.FindByTokenHash(ctx, "live-hash")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestSessionRepository_ExpiredSessionsAreDead(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewSessionRepository(db)

	user := createTestUser(t, db, "jane@example.com")

	require.NoError(t, repo.Create(ctx, &entity.Session{
		UserID:    user.ID,
		TokenHash: "stale-hash",
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	// Still on disk, but no longer accepted.
	_, err := repo.FindByTokenHash(ctx, "stale-hash")
	assert.ErrorIs(t, err, repository.ErrSessionExpired)

	require.NoError(t, repo.DeleteExpired(ctx))

	var count int64
	require.NoError(t, db.Model(&model.SessionModel{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestSessionRepository_DeleteByUserID(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewSessionRepository(db)

	user := createTestUser(t, db, "jane@example.com")
	other := createTestUser(t, db, "john@example.com")

	require.NoError(t, repo.Create(ctx, &entity.Session{UserID: user.ID, TokenHash: "h1", ExpiresAt: time.Now().Add(time.Hour)}))
	require.NoError(t, repo.Create(ctx, &entity.Session{UserID: user.ID, TokenHash: "h2", ExpiresAt: time.Now().Add(time.Hour)}))
	require.NoError(t, repo.Create(ctx, &entity.Session{UserID: other.ID, TokenHash: "h3", ExpiresAt: time.Now().Add(time.Hour)}))

	require.NoError(t, repo.DeleteByUserID(ctx, user.ID))

	_, err := repo.FindByTokenHash(ctx, "h1")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
	_, err = repo.FindByTokenHash(ctx, "h3")
	assert.NoError(t, err)
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	txManager := NewTransactionManager(db)

	err := txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		if err := factory.CategoryRepo().Create(ctx, &entity.Category{Name: "Doomed"}); err != nil {
			return err
		}

		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	_, err = NewCategoryRepository(db).FindByName(ctx, "Doomed")
	assert.ErrorIs(t, err, repository.ErrCategoryNotFound)
}

func TestTransactionManager_CommitsOnSuccess(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	txManager := NewTransactionManager(db)

	err := txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		return factory.CategoryRepo().Create(ctx, &entity.Category{Name: "Kept"})
	})
	require.NoError(t, err)

	found, err := NewCategoryRepository(db).FindByName(ctx, "Kept")
	require.NoError(t, err)
	assert.Equal(t, "Kept", found.Name)
}
