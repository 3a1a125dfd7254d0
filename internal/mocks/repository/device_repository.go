package repository

import (
	"context"
	"testing"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockDeviceRepository mocks repository.DeviceRepository.
type MockDeviceRepository struct {
	mock.Mock
}

// NewMockDeviceRepository creates the mock and verifies expectations at test end.
func NewMockDeviceRepository(t *testing.T) *MockDeviceRepository {
	m := &MockDeviceRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockDeviceRepository) CreateDevice(ctx context.Context, device *entity.UserDevice) error {
	args := m.Called(ctx, device)

	return args.Error(0)
}

func (m *MockDeviceRepository) FindDeviceByID(ctx context.Context, id uuid.UUID) (*entity.UserDevice, error) {
	args := m.Called(ctx, id)
	device, _ := args.Get(0).(*entity.UserDevice)

	return device, args.Error(1)
}

func (m *MockDeviceRepository) FindDeviceByUserAndDeviceID(ctx context.Context, userID uuid.UUID, deviceID string) (*entity.UserDevice, error) {
	args := m.Called(ctx, userID, deviceID)
	device, _ := args.Get(0).(*entity.UserDevice)

	return device, args.Error(1)
}

func (m *MockDeviceRepository) FindActiveDevicesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserDevice, error) {
	args := m.Called(ctx, userID)
	devices, _ := args.Get(0).([]*entity.UserDevice)

	return devices, args.Error(1)
}

func (m *MockDeviceRepository) UpdateFCMToken(ctx context.Context, deviceID uuid.UUID, fcmToken string) error {
	args := m.Called(ctx, deviceID, fcmToken)

	return args.Error(0)
}

func (m *MockDeviceRepository) DeactivateDevice(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *MockDeviceRepository) DeactivateDevicesByToken(ctx context.Context, fcmToken string) error {
	args := m.Called(ctx, fcmToken)

	return args.Error(0)
}
