package service

import (
	"testing"

	"bazaar/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockRealtimeNotifier mocks service.RealtimeNotifier.
type MockRealtimeNotifier struct {
	mock.Mock
}

// NewMockRealtimeNotifier creates the mock and verifies expectations at test end.
func NewMockRealtimeNotifier(t *testing.T) *MockRealtimeNotifier {
	m := &MockRealtimeNotifier{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRealtimeNotifier) NotifyUser(userID uuid.UUID, event service.RealtimeEvent) {
	m.Called(userID, event)
}
