package service

import (
	"context"
)

// BookingEvent represents a booking lifecycle change handed to the push worker.
// The worker fans it out to the counterparty's registered devices.
type BookingEvent struct {
	RequestID    string `json:"request_id,omitempty"` // For distributed tracing
	BookingID    string `json:"booking_id"`
	CustomerID   string `json:"customer_id"`
	ProviderID   string `json:"provider_id"`
	Status       string `json:"status"`   // The status the booking just entered.
	ActorID      string `json:"actor_id"` // The user who triggered the change; not notified.
	ServiceTitle string `json:"service_title,omitempty"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishBookingEvent publishes a booking lifecycle event for async processing
	PublishBookingEvent(ctx context.Context, event *BookingEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
