package postgres

import (
	"context"
	"time"

	"spendtrack/internal/domain/entity"
	domainerrors "spendtrack/internal/domain/errors"
	"spendtrack/internal/domain/repository"
	"spendtrack/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// sessionRepository implements the domain.SessionRepository interface.
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository is the constructor for sessionRepository.
func NewSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

// Create persists a new session, representing one live bearer token.
func (repo *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	sessionM := fromSessionDomain(session)

	if err := repo.db.WithContext(ctx).Create(sessionM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUnauthenticated.WrapMessage("session already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create session")
	}

	session.ID = sessionM.ID
	session.CreatedAt = sessionM.CreatedAt

	return nil
}

// FindByTokenHash retrieves a session by the token's hash. An expired
// row is reported as ErrSessionExpired so callers treat it as dead even
// before cleanup removes it.
func (repo *sessionRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*entity.Session, error) {
	var sessionM model.SessionModel
	if err := repo.db.WithContext(ctx).First(&sessionM, "token_hash = ?", tokenHash).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.WithStack(err)
	}

	session := toSessionDomain(&sessionM)

	if session.ExpiresAt.Before(time.Now()) {
		return nil, repository.ErrSessionExpired
	}

	return session, nil
}

// DeleteByTokenHash removes a session by the token's hash, effectively ending it.
func (repo *sessionRepository) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	result := repo.db.WithContext(ctx).
		Delete(&model.SessionModel{}, "token_hash = ?", tokenHash)
	if result.Error != nil {
		return errors.WithStack(result.Error)
	}

	// If no rows were affected, the session was not found.
	if result.RowsAffected == 0 {
		return repository.ErrSessionNotFound
	}

	return nil
}

// DeleteByUserID removes all sessions for a specific user.
func (repo *sessionRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Delete(&model.SessionModel{}, "user_id = ?", userID).Error; err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// DeleteExpired removes all expired sessions from the database.
func (repo *sessionRepository) DeleteExpired(ctx context.Context) error {
	if err := repo.db.WithContext(ctx).
		Delete(&model.SessionModel{}, "expires_at < ?", time.Now()).Error; err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// --- Mapper Functions ---

// toSessionDomain converts a GORM SessionModel to a domain Session entity.
func toSessionDomain(data *model.SessionModel) *entity.Session {
	if data == nil {
		return nil
	}

	return &entity.Session{
		ID:        data.ID,
		UserID:    data.UserID,
		TokenHash: data.TokenHash,
		ExpiresAt: data.ExpiresAt,
		CreatedAt: data.CreatedAt,
	}
}

// fromSessionDomain converts a domain Session entity to a GORM SessionModel.
func fromSessionDomain(data *entity.Session) *model.SessionModel {
	if data == nil {
		return nil
	}

	return &model.SessionModel{
		ID:        data.ID,
		UserID:    data.UserID,
		TokenHash: data.TokenHash,
		ExpiresAt: data.ExpiresAt,
		CreatedAt: data.CreatedAt,
	}
}
