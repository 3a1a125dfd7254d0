package service

import "github.com/google/uuid"

// RealtimeEvent is a message pushed to a user's live connections.
type RealtimeEvent struct {
	Type    string `json:"type"`    // Event name, e.g. "booking_update".
	Payload any    `json:"payload"` // Event-specific body, JSON-encoded on the wire.
}

// RealtimeNotifier pushes events to users connected over websockets.
// Delivery is best effort: offline users are skipped silently, and slow
// connections may drop events rather than block the sender.
type RealtimeNotifier interface {
	// NotifyUser sends an event to every live connection of the given user.
	NotifyUser(userID uuid.UUID, event RealtimeEvent)
}
