// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrNotificationNotFound is returned when a notification is not found.
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationRepository defines the interface for stored in-app notifications.
type NotificationRepository interface {
	// CreateNotification persists a new notification row.
	CreateNotification(ctx context.Context, notification *entity.Notification) error

	// FindNotificationsByUser retrieves a user's notifications, newest first.
	FindNotificationsByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Notification, error)

	// MarkNotificationRead stamps the notification as read. The row must belong to the user.
	MarkNotificationRead(ctx context.Context, userID, id uuid.UUID) error

	// CountUnreadByUser returns the number of unread notifications for a user.
	CountUnreadByUser(ctx context.Context, userID uuid.UUID) (int, error)
}
