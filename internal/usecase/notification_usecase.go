package usecase

import (
	"context"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// NotificationUsecase defines the interface for a user's in-app notification feed.
type NotificationUsecase interface {
	// ListNotifications pages through the user's notifications, newest first.
	ListNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Notification, error)

	// MarkRead stamps one of the user's notifications as read.
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error

	// UnreadCount returns how many notifications remain unread.
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
}
