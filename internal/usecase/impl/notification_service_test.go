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
	"github.com/stretchr/testify/require"
)

func createTestNotificationService(t *testing.T) (usecase.NotificationUsecase, *mockRepo.MockNotificationRepository) {
	notificationRepo := mockRepo.NewMockNotificationRepository(t)

	service := NewNotificationService(NotificationServiceParams{
		NotificationRepo: notificationRepo,
		Logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return service, notificationRepo
}

func TestNotificationService_ListNotifications_ClampsPaging(t *testing.T) {
	service, notificationRepo := createTestNotificationService(t)
	ctx := context.Background()
	userID := uuid.New()

	notificationRepo.On("FindNotificationsByUser", ctx, userID, defaultPageSize, 0).
		Return([]*entity.Notification{{UserID: userID, Title: "Booking accepted"}}, nil)

	notifications, err := service.ListNotifications(ctx, userID, -1, -1)

	require.NoError(t, err)
	assert.Len(t, notifications, 1)
}

func TestNotificationService_MarkRead_AlreadyReadReadsAsNotFound(t *testing.T) {
	service, notificationRepo := createTestNotificationService(t)
	ctx := context.Background()
	userID := uuid.New()
	notificationID := uuid.New()

	notificationRepo.On("MarkNotificationRead", ctx, userID, notificationID).
		Return(repository.ErrNotificationNotFound)

	err := service.MarkRead(ctx, userID, notificationID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestNotificationService_MarkRead_Success(t *testing.T) {
	service, notificationRepo := createTestNotificationService(t)
	ctx := context.Background()
	userID := uuid.New()
	notificationID := uuid.New()

	notificationRepo.On("MarkNotificationRead", ctx, userID, notificationID).Return(nil)

	require.NoError(t, service.MarkRead(ctx, userID, notificationID))
}

func TestNotificationService_UnreadCount(t *testing.T) {
	service, notificationRepo := createTestNotificationService(t)
	ctx := context.Background()
	userID := uuid.New()

	notificationRepo.On("CountUnreadByUser", ctx, userID).Return(3, nil)

	count, err := service.UnreadCount(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
