package usecase

import (
	"context"
	"time"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateBookingInput defines the data required to book a service.
type CreateBookingInput struct {
	ServiceID   uuid.UUID
	ScheduledAt time.Time
	Notes       string
}

// ListBookingsInput pages through a user's bookings.
type ListBookingsInput struct {
	Limit  int
	Offset int
}

// BookingUsecase defines the interface for the booking lifecycle.
// Transitions follow pending -> accepted -> in_progress -> completed, with
// cancellation possible while the work has not started.
type BookingUsecase interface {
	// CreateBooking books a service for the customer, snapshotting the listing price.
	CreateBooking(ctx context.Context, customerID uuid.UUID, input *CreateBookingInput) (*entity.Booking, error)

	// GetBooking loads a booking. Only the customer or provider party may view it.
	GetBooking(ctx context.Context, userID, bookingID uuid.UUID) (*entity.Booking, error)

	// ListCustomerBookings lists the customer's bookings, newest first.
	ListCustomerBookings(ctx context.Context, customerID uuid.UUID, input *ListBookingsInput) ([]*entity.Booking, error)

	// ListProviderBookings lists the provider's incoming bookings, newest first.
	ListProviderBookings(ctx context.Context, providerID uuid.UUID, input *ListBookingsInput) ([]*entity.Booking, error)

	// AcceptBooking moves a pending booking to accepted. Provider only.
	AcceptBooking(ctx context.Context, providerID, bookingID uuid.UUID) (*entity.Booking, error)

	// StartBooking moves an accepted booking to in_progress. Provider only.
	StartBooking(ctx context.Context, providerID, bookingID uuid.UUID) (*entity.Booking, error)

	// CompleteBooking moves an in_progress booking to completed. Provider only.
	CompleteBooking(ctx context.Context, providerID, bookingID uuid.UUID) (*entity.Booking, error)

	// CancelBooking cancels a booking that has not started. Either party may cancel.
	CancelBooking(ctx context.Context, userID, bookingID uuid.UUID) (*entity.Booking, error)
}
