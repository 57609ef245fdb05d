// Package service provides hand-written testify mocks for the domain
// service interfaces.
package service

import (
	"testing"
	"time"

	"spendtrack/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockPasswordHasher mocks service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

// NewMockPasswordHasher creates a mock wired to the test's lifecycle.
func NewMockPasswordHasher(t *testing.T) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

// MockTokenService mocks service.TokenService.
type MockTokenService struct {
	mock.Mock
}

// NewMockTokenService creates a mock wired to the test's lifecycle.
func NewMockTokenService(t *testing.T) *MockTokenService {
	m := &MockTokenService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTokenService) Generate(userID uuid.UUID) (string, time.Time, error) {
	args := m.Called(userID)

	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenService) Validate(token string) (*service.Claims, error) {
	args := m.Called(token)
	if claims, ok := args.Get(0).(*service.Claims); ok {
		return claims, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockTokenService) Hash(token string) string {
	args := m.Called(token)

	return args.String(0)
}

func (m *MockTokenService) TokenDuration() time.Duration {
	args := m.Called()

	return args.Get(0).(time.Duration)
}
