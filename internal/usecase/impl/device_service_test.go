package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	mockRepo "bazaar/internal/mocks/repository"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestDeviceService(t *testing.T) (usecase.DeviceUsecase, *mockRepo.MockDeviceRepository) {
	deviceRepo := mockRepo.NewMockDeviceRepository(t)

	service := NewDeviceService(DeviceServiceParams{
		DeviceRepo: deviceRepo,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return service, deviceRepo
}

func TestDeviceService_RegisterDevice_NewDevice(t *testing.T) {
	service, deviceRepo := createTestDeviceService(t)
	ctx := context.Background()
	userID := uuid.New()

	deviceRepo.On("FindDeviceByUserAndDeviceID", ctx, userID, "android-abc").
		Return(nil, repository.ErrDeviceNotFound)
	deviceRepo.On("CreateDevice", ctx, mock.MatchedBy(func(device *entity.UserDevice) bool {
		return device.UserID == userID && device.FCMToken == "token-1" && device.IsActive
	})).Return(nil)

	device, err := service.RegisterDevice(ctx, userID, &usecase.DeviceInfo{
		FCMToken: "token-1",
		DeviceID: "android-abc",
		Platform: "android",
	})

	require.NoError(t, err)
	assert.True(t, device.IsActive)
}

func TestDeviceService_RegisterDevice_RefreshesExistingToken(t *testing.T) {
	service, deviceRepo := createTestDeviceService(t)
	ctx := context.Background()
	userID := uuid.New()
	deviceID := uuid.New()

	deviceRepo.On("FindDeviceByUserAndDeviceID", ctx, userID, "android-abc").
		Return(&entity.UserDevice{ID: deviceID, UserID: userID, DeviceID: "android-abc", FCMToken: "stale", IsActive: false}, nil)
	deviceRepo.On("UpdateFCMToken", ctx, deviceID, "token-2").Return(nil)

	device, err := service.RegisterDevice(ctx, userID, &usecase.DeviceInfo{
		FCMToken: "token-2",
		DeviceID: "android-abc",
	})

	require.NoError(t, err)
	assert.Equal(t, deviceID, device.ID)
	assert.Equal(t, "token-2", device.FCMToken)
	assert.True(t, device.IsActive)
}

func TestDeviceService_RegisterDevice_MissingToken(t *testing.T) {
	service, _ := createTestDeviceService(t)

	_, err := service.RegisterDevice(context.Background(), uuid.New(), &usecase.DeviceInfo{
		DeviceID: "android-abc",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestDeviceService_UpdateFCMToken_DeviceOwnedByAnotherUser(t *testing.T) {
	service, deviceRepo := createTestDeviceService(t)
	ctx := context.Background()
	deviceID := uuid.New()

	deviceRepo.On("FindDeviceByID", ctx, deviceID).
		Return(&entity.UserDevice{ID: deviceID, UserID: uuid.New()}, nil)

	err := service.UpdateFCMToken(ctx, uuid.New(), deviceID, "token-3")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestDeviceService_DeactivateDevice_Success(t *testing.T) {
	service, deviceRepo := createTestDeviceService(t)
	ctx := context.Background()
	userID := uuid.New()
	deviceID := uuid.New()

	deviceRepo.On("FindDeviceByID", ctx, deviceID).
		Return(&entity.UserDevice{ID: deviceID, UserID: userID}, nil)
	deviceRepo.On("DeactivateDevice", ctx, deviceID).Return(nil)

	err := service.DeactivateDevice(ctx, userID, deviceID)

	require.NoError(t, err)
}

func TestDeviceService_DeactivateDevice_NotFound(t *testing.T) {
	service, deviceRepo := createTestDeviceService(t)
	ctx := context.Background()
	deviceID := uuid.New()

	deviceRepo.On("FindDeviceByID", ctx, deviceID).
		Return(nil, repository.ErrDeviceNotFound)

	err := service.DeactivateDevice(ctx, uuid.New(), deviceID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}
