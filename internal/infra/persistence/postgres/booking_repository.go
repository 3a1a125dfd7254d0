// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// bookingRepository implements the repository.BookingRepository interface.
type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository is the constructor for bookingRepository.
func NewBookingRepository(db *gorm.DB) repository.BookingRepository {
	return &bookingRepository{
		db: db,
	}
}

// CreateBooking persists a new booking.
func (repo *bookingRepository) CreateBooking(ctx context.Context, booking *entity.Booking) error {
	bookingM := fromBookingDomain(booking)

	if err := repo.db.WithContext(ctx).Create(bookingM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrServiceNotFound.WrapMessage("invalid service or user reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required booking information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create booking")
	}

	// Update the entity with generated values
	booking.ID = bookingM.ID
	booking.CreatedAt = bookingM.CreatedAt
	booking.UpdatedAt = bookingM.UpdatedAt

	return nil
}

// FindBookingByID retrieves a booking by its unique ID.
func (repo *bookingRepository) FindBookingByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	var bookingM model.BookingModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&bookingM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBookingNotFound
		}

		return nil, errors.Wrap(err, "failed to find booking by ID")
	}

	return toBookingDomain(&bookingM), nil
}

// FindBookingsByCustomer retrieves a customer's bookings, newest first.
func (repo *bookingRepository) FindBookingsByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	var bookingModels []*model.BookingModel

	if err := repo.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&bookingModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find bookings by customer")
	}

	return toBookingDomains(bookingModels), nil
}

// FindBookingsByProvider retrieves a provider's bookings, newest first.
func (repo *bookingRepository) FindBookingsByProvider(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	var bookingModels []*model.BookingModel

	if err := repo.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&bookingModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find bookings by provider")
	}

	return toBookingDomains(bookingModels), nil
}

// UpdateBookingStatus moves a booking from one status to another. The expected
// current status is part of the WHERE clause, so a concurrent transition loses
// the race instead of silently overwriting the newer state.
func (repo *bookingRepository) UpdateBookingStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.BookingModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update booking status")
	}

	if result.RowsAffected == 0 {
		// Distinguish a missing booking from one whose status moved under us.
		var count int64
		if err := repo.db.WithContext(ctx).
			Model(&model.BookingModel{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return errors.Wrap(err, "failed to check booking existence")
		}
		if count == 0 {
			return repository.ErrBookingNotFound
		}

		return repository.ErrBookingStale
	}

	return nil
}

// --- Mapper Functions ---

// toBookingDomain converts a GORM BookingModel to a domain Booking entity.
func toBookingDomain(data *model.BookingModel) *entity.Booking {
	if data == nil {
		return nil
	}

	return &entity.Booking{
		ID:          data.ID,
		CustomerID:  data.CustomerID,
		ProviderID:  data.ProviderID,
		ServiceID:   data.ServiceID,
		Status:      entity.BookingStatus(data.Status),
		Price:       data.Price,
		ScheduledAt: data.ScheduledAt,
		Notes:       data.Notes,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func toBookingDomains(data []*model.BookingModel) []*entity.Booking {
	bookings := make([]*entity.Booking, 0, len(data))
	for _, bookingM := range data {
		bookings = append(bookings, toBookingDomain(bookingM))
	}

	return bookings
}

// fromBookingDomain converts a domain Booking entity to a GORM BookingModel.
func fromBookingDomain(data *entity.Booking) *model.BookingModel {
	if data == nil {
		return nil
	}

	return &model.BookingModel{
		ID:          data.ID,
		CustomerID:  data.CustomerID,
		ProviderID:  data.ProviderID,
		ServiceID:   data.ServiceID,
		Status:      string(data.Status),
		Price:       data.Price,
		ScheduledAt: data.ScheduledAt,
		Notes:       data.Notes,
	}
}
