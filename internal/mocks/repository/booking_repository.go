package repository

import (
	"context"
	"testing"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockBookingRepository mocks repository.BookingRepository.
type MockBookingRepository struct {
	mock.Mock
}

// NewMockBookingRepository creates the mock and verifies expectations at test end.
func NewMockBookingRepository(t *testing.T) *MockBookingRepository {
	m := &MockBookingRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockBookingRepository) CreateBooking(ctx context.Context, booking *entity.Booking) error {
	args := m.Called(ctx, booking)

	return args.Error(0)
}

func (m *MockBookingRepository) FindBookingByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	args := m.Called(ctx, id)
	booking, _ := args.Get(0).(*entity.Booking)

	return booking, args.Error(1)
}

func (m *MockBookingRepository) FindBookingsByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	args := m.Called(ctx, customerID, limit, offset)
	bookings, _ := args.Get(0).([]*entity.Booking)

	return bookings, args.Error(1)
}

func (m *MockBookingRepository) FindBookingsByProvider(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	args := m.Called(ctx, providerID, limit, offset)
	bookings, _ := args.Get(0).([]*entity.Booking)

	return bookings, args.Error(1)
}

func (m *MockBookingRepository) UpdateBookingStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus) error {
	args := m.Called(ctx, id, from, to)

	return args.Error(0)
}
