package auth

import (
	"testing"
	"time"

	"spendtrack/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T, secret string) *jwtService {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = secret
	cfg.Auth = &config.AuthConfig{TokenTTL: time.Hour}

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc.(*jwtService)
}

func TestJWTService_RequiresSecret(t *testing.T) {
	cfg := &config.Config{}

	_, err := NewJWTService(cfg)

	require.Error(t, err)
}

func TestJWTService_GenerateValidateRoundtrip(t *testing.T) {
	svc := newTestTokenService(t, "test-secret")
	userID := uuid.New()

	token, expiresAt, err := svc.Generate(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.WithinDuration(t, expiresAt, claims.ExpiresAt, time.Second)
}

func TestJWTService_GenerateProducesUniqueTokens(t *testing.T) {
	svc := newTestTokenService(t, "test-secret")
	userID := uuid.New()

	first, _, err := svc.Generate(userID)
	require.NoError(t, err)
	second, _, err := svc.Generate(userID)
	require.NoError(t, err)

	// The jti claim guarantees distinct tokens even within one second.
	assert.NotEqual(t, first, second)
}

func TestJWTService_ValidateRejectsWrongSecret(t *testing.T) {
	issuer := newTestTokenService(t, "issuer-secret")
	verifier := newTestTokenService(t, "other-secret")

	token, _, err := issuer.Generate(uuid.New())
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	require.Error(t, err)
	assert.EqualError(t, err, "invalid token")
}

func TestJWTService_ValidateRejectsGarbage(t *testing.T) {
	svc := newTestTokenService(t, "test-secret")

	for _, token := range []string{"", "not.a.jwt", "aaaa.bbbb.cccc"} {
		_, err := svc.Validate(token)
		require.Error(t, err)
		// Every failure mode reads the same.
		assert.EqualError(t, err, "invalid token")
	}
}

func TestJWTService_HashIsDeterministic(t *testing.T) {
	svc := newTestTokenService(t, "test-secret")

	first := svc.Hash("some-token")
	second := svc.Hash("some-token")
	other := svc.Hash("another-token")

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.Len(t, first, 64) // sha256 hex
}

func TestJWTService_DefaultTTL(t *testing.T) {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test-secret"

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	assert.Equal(t, time.Hour, svc.TokenDuration())
}
