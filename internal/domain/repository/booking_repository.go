// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for booking persistence.
var (
	// ErrBookingNotFound is returned when a booking is not found.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrBookingStale is returned when a status update races with another writer.
	ErrBookingStale = errors.New("booking was modified concurrently")
)

// BookingRepository defines the interface for booking persistence.
type BookingRepository interface {
	// CreateBooking persists a new booking.
	CreateBooking(ctx context.Context, booking *entity.Booking) error

	// FindBookingByID retrieves a booking by its unique ID.
	FindBookingByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)

	// FindBookingsByCustomer retrieves a customer's bookings, newest first.
	FindBookingsByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.Booking, error)

	// FindBookingsByProvider retrieves a provider's bookings, newest first.
	FindBookingsByProvider(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*entity.Booking, error)

	// UpdateBookingStatus moves a booking from one status to another.
	// The update is conditional on the current status; ErrBookingStale is
	// returned when the row no longer holds the expected status.
	UpdateBookingStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus) error
}
