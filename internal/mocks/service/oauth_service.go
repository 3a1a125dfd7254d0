package service

import (
	"context"
	"testing"

	"bazaar/internal/domain/entity"
	"bazaar/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockOAuthAuthService mocks service.OAuthAuthService. It also satisfies
// service.PhoneAuthService, so tests reuse it for both verifiers.
type MockOAuthAuthService struct {
	mock.Mock
}

// NewMockOAuthAuthService creates the mock and verifies expectations at test end.
func NewMockOAuthAuthService(t *testing.T) *MockOAuthAuthService {
	m := &MockOAuthAuthService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockOAuthAuthService) VerifyIDToken(ctx context.Context, idToken string) (*service.OAuthUser, error) {
	args := m.Called(ctx, idToken)
	user, _ := args.Get(0).(*service.OAuthUser)

	return user, args.Error(1)
}

func (m *MockOAuthAuthService) GetProvider() entity.ProviderType {
	args := m.Called()
	provider, _ := args.Get(0).(entity.ProviderType)

	return provider
}
