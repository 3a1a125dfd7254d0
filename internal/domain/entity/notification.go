// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationKind classifies a stored user notification.
type NotificationKind string

const (
	// NotificationBooking covers booking lifecycle events.
	NotificationBooking NotificationKind = "booking"
	// NotificationOrder covers shop order events.
	NotificationOrder NotificationKind = "order"
	// NotificationSystem covers everything else.
	NotificationSystem NotificationKind = "system"
)

// Notification is a persisted in-app notification. Rows are written when a
// booking or order event happens so users who were offline still see it.
type Notification struct {
	ID        uuid.UUID        // The unique ID of the notification.
	UserID    uuid.UUID        // The recipient.
	Kind      NotificationKind // What the notification is about.
	Title     string           // Short headline.
	Body      string           // Human-readable message.
	Data      map[string]string // Extra payload forwarded to clients, e.g. booking_id.
	ReadAt    *time.Time       // When the user read it; nil while unread.
	CreatedAt time.Time
}

// IsRead reports whether the notification has been read.
func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}
