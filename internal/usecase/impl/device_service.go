package impl

import (
	"context"
	"log/slog"

	deliverycontext "bazaar/internal/delivery/context"
	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// deviceService implements the DeviceUsecase interface.
type deviceService struct {
	deviceRepo repository.DeviceRepository
	logger     *slog.Logger
}

// DeviceServiceParams holds dependencies for deviceService, injected by Fx.
type DeviceServiceParams struct {
	fx.In

	DeviceRepo repository.DeviceRepository
	Logger     *slog.Logger
}

// NewDeviceService is the constructor for deviceService.
func NewDeviceService(params DeviceServiceParams) usecase.DeviceUsecase {
	return &deviceService{
		deviceRepo: params.DeviceRepo,
		logger:     params.Logger,
	}
}

func (srv *deviceService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RegisterDevice registers a device for push delivery. Re-registering the
// same client device refreshes its FCM token and reactivates it.
func (srv *deviceService) RegisterDevice(ctx context.Context, userID uuid.UUID, deviceInfo *usecase.DeviceInfo) (*entity.UserDevice, error) {
	if deviceInfo.FCMToken == "" || deviceInfo.DeviceID == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "fcm token and device id are required")
	}

	existing, err := srv.deviceRepo.FindDeviceByUserAndDeviceID(ctx, userID, deviceInfo.DeviceID)
	if err != nil && !errors.Is(err, repository.ErrDeviceNotFound) {
		return nil, errors.Wrap(err, "failed to look up device")
	}

	if existing != nil {
		if err := srv.deviceRepo.UpdateFCMToken(ctx, existing.ID, deviceInfo.FCMToken); err != nil {
			return nil, errors.Wrap(err, "failed to update FCM token")
		}

		existing.FCMToken = deviceInfo.FCMToken
		existing.IsActive = true

		return existing, nil
	}

	device := &entity.UserDevice{
		UserID:   userID,
		FCMToken: deviceInfo.FCMToken,
		DeviceID: deviceInfo.DeviceID,
		Platform: deviceInfo.Platform,
		IsActive: true,
	}

	if err := srv.deviceRepo.CreateDevice(ctx, device); err != nil {
		srv.log(ctx).Error("Failed to register device", slog.Any("error", err), slog.Any("userID", userID))

		return nil, errors.Wrap(err, "failed to register device")
	}

	srv.log(ctx).Info("Device registered",
		slog.Any("userID", userID),
		slog.String("platform", device.Platform))

	return device, nil
}

// UpdateFCMToken updates the FCM token for one of the user's devices.
func (srv *deviceService) UpdateFCMToken(ctx context.Context, userID uuid.UUID, deviceID uuid.UUID, fcmToken string) error {
	if fcmToken == "" {
		return errors.Wrap(domainerrors.ErrValidationFailed, "fcm token is required")
	}

	if _, err := srv.loadOwnedDevice(ctx, userID, deviceID); err != nil {
		return err
	}

	if err := srv.deviceRepo.UpdateFCMToken(ctx, deviceID, fcmToken); err != nil {
		return errors.Wrap(err, "failed to update FCM token")
	}

	return nil
}

// GetUserDevices retrieves all of the user's active devices.
func (srv *deviceService) GetUserDevices(ctx context.Context, userID uuid.UUID) ([]*entity.UserDevice, error) {
	devices, err := srv.deviceRepo.FindActiveDevicesByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find active devices")
	}

	return devices, nil
}

// DeactivateDevice marks one of the user's devices inactive.
func (srv *deviceService) DeactivateDevice(ctx context.Context, userID, deviceID uuid.UUID) error {
	if _, err := srv.loadOwnedDevice(ctx, userID, deviceID); err != nil {
		return err
	}

	if err := srv.deviceRepo.DeactivateDevice(ctx, deviceID); err != nil {
		return errors.Wrap(err, "failed to deactivate device")
	}

	return nil
}

// loadOwnedDevice loads a device and verifies the caller owns it.
func (srv *deviceService) loadOwnedDevice(ctx context.Context, userID, deviceID uuid.UUID) (*entity.UserDevice, error) {
	device, err := srv.deviceRepo.FindDeviceByID(ctx, deviceID)
	if err != nil {
		if errors.Is(err, repository.ErrDeviceNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("device not found")
		}

		return nil, errors.Wrap(err, "failed to find device")
	}

	if device.UserID != userID {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "device belongs to another user")
	}

	return device, nil
}
