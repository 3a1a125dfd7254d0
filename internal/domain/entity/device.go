// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserDevice represents a user's device registered for push notifications.
type UserDevice struct {
	ID        uuid.UUID // The unique ID of the device row.
	UserID    uuid.UUID // The ID of the user who owns this device.
	FCMToken  string    // Firebase Cloud Messaging token for push notifications.
	DeviceID  string    // Unique device identifier from the client.
	Platform  string    // Device platform (ios, android).
	IsActive  bool      // Inactive devices are skipped when sending pushes.
	CreatedAt time.Time
	UpdatedAt time.Time
}
