// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	// BookingPending is the initial state after a customer books a service.
	BookingPending BookingStatus = "pending"
	// BookingAccepted means the provider has agreed to do the work.
	BookingAccepted BookingStatus = "accepted"
	// BookingInProgress means the provider has started the work.
	BookingInProgress BookingStatus = "in_progress"
	// BookingCompleted is a terminal state: the work is done.
	BookingCompleted BookingStatus = "completed"
	// BookingCancelled is a terminal state reachable only before work starts.
	BookingCancelled BookingStatus = "cancelled"
)

// String returns the string representation of the BookingStatus.
func (s BookingStatus) String() string {
	return string(s)
}

// IsValid checks if the BookingStatus is a valid value.
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingPending, BookingAccepted, BookingInProgress, BookingCompleted, BookingCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status permits no further transitions.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

// CanTransitionTo reports whether the lifecycle permits moving from s to next.
// The forward path is pending -> accepted -> in_progress -> completed;
// cancelled is reachable only from pending or accepted.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingPending:
		return next == BookingAccepted || next == BookingCancelled
	case BookingAccepted:
		return next == BookingInProgress || next == BookingCancelled
	case BookingInProgress:
		return next == BookingCompleted
	default:
		return false
	}
}

// CanCancel reports whether the booking may still be cancelled.
func (s BookingStatus) CanCancel() bool {
	return s.CanTransitionTo(BookingCancelled)
}

// Booking is a customer's request for a provider's service at a scheduled time.
type Booking struct {
	ID          uuid.UUID     // The unique ID of the booking.
	CustomerID  uuid.UUID     // The user ID of the booking customer.
	ProviderID  uuid.UUID     // The user ID of the provider doing the work.
	ServiceID   uuid.UUID     // The booked service listing.
	Status      BookingStatus // Current lifecycle state.
	Price       int64         // Price snapshot taken from the listing at booking time.
	ScheduledAt time.Time     // When the work is scheduled to happen.
	Notes       string        // Free-form customer notes for the provider.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PartyIDs returns the two users affected by changes to this booking.
func (b *Booking) PartyIDs() []uuid.UUID {
	return []uuid.UUID{b.CustomerID, b.ProviderID}
}
