package repository

import (
	"context"
	"testing"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockAuthRepository mocks repository.AuthRepository.
type MockAuthRepository struct {
	mock.Mock
}

// NewMockAuthRepository creates the mock and verifies expectations at test end.
func NewMockAuthRepository(t *testing.T) *MockAuthRepository {
	m := &MockAuthRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAuthRepository) CreateAuthentication(ctx context.Context, auth *entity.Authentication) error {
	args := m.Called(ctx, auth)

	return args.Error(0)
}

func (m *MockAuthRepository) FindAuthentication(ctx context.Context, provider string, providerUserID string) (*entity.Authentication, error) {
	args := m.Called(ctx, provider, providerUserID)
	auth, _ := args.Get(0).(*entity.Authentication)

	return auth, args.Error(1)
}

func (m *MockAuthRepository) FindAuthenticationsByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Authentication, error) {
	args := m.Called(ctx, userID)
	auths, _ := args.Get(0).([]*entity.Authentication)

	return auths, args.Error(1)
}

func (m *MockAuthRepository) UpdateAuthentication(ctx context.Context, auth *entity.Authentication) error {
	args := m.Called(ctx, auth)

	return args.Error(0)
}

func (m *MockAuthRepository) DeleteAuthentication(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}
