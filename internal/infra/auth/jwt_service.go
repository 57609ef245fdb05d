// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"spendtrack/config"
	"spendtrack/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const defaultTokenTTL = time.Hour

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret   string        // Secret key for signing bearer tokens.
	tokenTTL time.Duration // Time-to-live for issued tokens.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	ttl := defaultTokenTTL
	if cfg.Auth != nil && cfg.Auth.TokenTTL > 0 {
		ttl = cfg.Auth.TokenTTL
	}

	return &jwtService{
		secret:   cfg.SecretKey.Access,
		tokenTTL: ttl,
	}, nil
}

// Generate creates a new signed bearer token for the given user.
func (s *jwtService) Generate(userID uuid.UUID) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)

	claims := jwt.MapClaims{
		"sub": userID.String(),  // Subject (who the token is for)
		"iat": now.Unix(),       // Issued At
		"exp": expiresAt.Unix(), // Expiration Time
		"jti": uuid.NewString(), // Unique token id, so reissued tokens never collide
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "failed to sign token")
	}

	return token, expiresAt, nil
}

// Validate checks the token's signature and expiry and extracts its
// claims. Every failure mode returns the same opaque error so callers
// cannot distinguish a malformed token from an expired one.
func (s *jwtService) Validate(tokenString string) (*service.Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return nil, errors.New("invalid token")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, errors.New("invalid token")
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, errors.New("invalid token")
	}

	return &service.Claims{UserID: userID, ExpiresAt: exp.Time}, nil
}

// Hash returns the SHA-256 hex digest under which a token's session row
// is stored.
func (s *jwtService) Hash(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}

// TokenDuration returns the configured lifetime of issued tokens.
func (s *jwtService) TokenDuration() time.Duration {
	return s.tokenTTL
}
