// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "spendtrack/internal/delivery/context"
	"spendtrack/internal/domain/entity"
	domainerrors "spendtrack/internal/domain/errors"
	"spendtrack/internal/domain/repository"
	"spendtrack/internal/domain/service"
	"spendtrack/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	sessionRepo  repository.SessionRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	SessionRepo  repository.SessionRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		sessionRepo:  params.SessionRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new user account and logs it in immediately.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.TokenOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	newUser := &entity.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashedPassword,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		_, findErr := userRepo.FindByEmail(ctx, input.Email)
		if findErr == nil {
			return errors.Wrap(domainerrors.ErrEmailAlreadyExists, "registration failed")
		}
		if !errors.Is(findErr, repository.ErrUserNotFound) {
			return errors.Wrap(findErr, "failed to check existing email")
		}

		return userRepo.Create(ctx, newUser)
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID))

	return srv.issueToken(ctx, newUser)
}

// Login verifies credentials and issues a bearer token.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.TokenOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("email", input.Email))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to load user for login")
	}

	// bcrypt comparison is CPU-bound; runs outside any transaction.
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	// Opportunistic cleanup of expired sessions; failures are not fatal.
	if err := srv.sessionRepo.DeleteExpired(ctx); err != nil {
		srv.log(ctx).Warn("Failed to prune expired sessions", slog.Any("error", err))
	}

	srv.log(ctx).Debug("User logged in", slog.Any("userID", user.ID))

	return srv.issueToken(ctx, user)
}

// Authenticate resolves a raw bearer token to a user identity. The token
// must carry a valid signature, be unexpired, and still have a live
// session row (i.e. not be revoked). All failure modes collapse into
// ErrUnauthenticated.
func (srv *authService) Authenticate(ctx context.Context, token string) (uuid.UUID, error) {
	claims, err := srv.tokenService.Validate(token)
	if err != nil {
		return uuid.Nil, errors.Wrap(domainerrors.ErrUnauthenticated, "token validation failed")
	}

	if _, err := srv.sessionRepo.FindByTokenHash(ctx, srv.tokenService.Hash(token)); err != nil {
		// Only a revoked or expired session means unauthenticated; a
		// storage failure stays an internal error.
		if errors.Is(err, repository.ErrSessionNotFound) || errors.Is(err, repository.ErrSessionExpired) {
			return uuid.Nil, errors.Wrap(domainerrors.ErrUnauthenticated, "session lookup failed")
		}

		return uuid.Nil, errors.Wrap(err, "failed to load session")
	}

	return claims.UserID, nil
}

// Me returns the account record behind an authenticated identity.
func (srv *authService) Me(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "user lookup failed")
		}

		return nil, errors.Wrap(err, "failed to load user")
	}

	return user, nil
}

// Refresh rotates a bearer token: the presented token is revoked and a
// new one is issued for the same identity in a single transaction, so no
// two valid tokens coexist afterwards.
func (srv *authService) Refresh(ctx context.Context, token string) (*usecase.TokenOutput, error) {
	srv.log(ctx).Debug("Refreshing token")

	claims, err := srv.tokenService.Validate(token)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "token validation failed")
	}

	var output *usecase.TokenOutput

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		sessionRepo := repoFactory.SessionRepo()
		userRepo := repoFactory.UserRepo()

		oldHash := srv.tokenService.Hash(token)
		if _, err := sessionRepo.FindByTokenHash(ctx, oldHash); err != nil {
			if errors.Is(err, repository.ErrSessionNotFound) || errors.Is(err, repository.ErrSessionExpired) {
				return errors.Wrap(domainerrors.ErrUnauthenticated, "session lookup failed")
			}

			return errors.Wrap(err, "failed to load session")
		}

		user, err := userRepo.FindByID(ctx, claims.UserID)
		if err != nil {
			return errors.Wrap(domainerrors.ErrUnauthenticated, "user lookup failed")
		}

		if err := sessionRepo.DeleteByTokenHash(ctx, oldHash); err != nil {
			return errors.Wrap(err, "failed to revoke old session")
		}

		newToken, expiresAt, err := srv.tokenService.Generate(user.ID)
		if err != nil {
			return errors.Wrap(err, "failed to generate token")
		}

		if err := sessionRepo.Create(ctx, &entity.Session{
			UserID:    user.ID,
			TokenHash: srv.tokenService.Hash(newToken),
			ExpiresAt: expiresAt,
		}); err != nil {
			return errors.Wrap(err, "failed to store session")
		}

		output = &usecase.TokenOutput{
			AccessToken: newToken,
			TokenType:   "bearer",
			ExpiresIn:   int64(srv.tokenService.TokenDuration().Seconds()),
			User:        user,
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Token refresh failed", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute token refresh transaction")
	}

	srv.log(ctx).Debug("Token refreshed", slog.Any("userID", claims.UserID))

	return output, nil
}

// Logout revokes the presented token. Revocation is idempotent: a token
// that is already invalid or unknown still reports success, since the
// desired end state (token unusable) already holds.
func (srv *authService) Logout(ctx context.Context, token string) error {
	srv.log(ctx).Debug("Logging out")

	err := srv.sessionRepo.DeleteByTokenHash(ctx, srv.tokenService.Hash(token))
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil
		}

		srv.log(ctx).Error("Failed to delete session", slog.Any("error", err))

		return errors.Wrap(err, "failed to delete session")
	}

	return nil
}

// issueToken generates a bearer token for the user and records its session.
func (srv *authService) issueToken(ctx context.Context, user *entity.User) (*usecase.TokenOutput, error) {
	token, expiresAt, err := srv.tokenService.Generate(user.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to generate token", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate token")
	}

	if err := srv.sessionRepo.Create(ctx, &entity.Session{
		UserID:    user.ID,
		TokenHash: srv.tokenService.Hash(token),
		ExpiresAt: expiresAt,
	}); err != nil {
		srv.log(ctx).Error("Failed to store session", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to store session")
	}

	return &usecase.TokenOutput{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(srv.tokenService.TokenDuration().Seconds()),
		User:        user,
	}, nil
}
