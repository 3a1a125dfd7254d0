package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
)

// MockNotificationService mocks service.NotificationService.
type MockNotificationService struct {
	mock.Mock
}

// NewMockNotificationService creates the mock and verifies expectations at test end.
func NewMockNotificationService(t *testing.T) *MockNotificationService {
	m := &MockNotificationService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockNotificationService) SendBatchNotification(ctx context.Context, tokens []string, title, body string, data map[string]string) (int, int, []string, error) {
	args := m.Called(ctx, tokens, title, body, data)
	invalidTokens, _ := args.Get(2).([]string)

	return args.Int(0), args.Int(1), invalidTokens, args.Error(3)
}

func (m *MockNotificationService) SendSingleNotification(ctx context.Context, token, title, body string, data map[string]string) error {
	args := m.Called(ctx, token, title, body, data)

	return args.Error(0)
}
