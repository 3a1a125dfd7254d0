package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	mockRepo "bazaar/internal/mocks/repository"
	mockSvc "bazaar/internal/mocks/service"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// bookingServiceFixtures holds all test dependencies for booking service tests.
type bookingServiceFixtures struct {
	service          usecase.BookingUsecase
	bookingRepo      *mockRepo.MockBookingRepository
	catalogRepo      *mockRepo.MockCatalogRepository
	userRepo         *mockRepo.MockUserRepository
	notificationRepo *mockRepo.MockNotificationRepository
	eventPublisher   *mockSvc.MockEventPublisher
	realtimeNotifier *mockSvc.MockRealtimeNotifier
}

func createTestBookingService(t *testing.T) bookingServiceFixtures {
	f := bookingServiceFixtures{
		bookingRepo:      mockRepo.NewMockBookingRepository(t),
		catalogRepo:      mockRepo.NewMockCatalogRepository(t),
		userRepo:         mockRepo.NewMockUserRepository(t),
		notificationRepo: mockRepo.NewMockNotificationRepository(t),
		eventPublisher:   mockSvc.NewMockEventPublisher(t),
		realtimeNotifier: mockSvc.NewMockRealtimeNotifier(t),
	}

	f.service = NewBookingService(BookingServiceParams{
		BookingRepo:      f.bookingRepo,
		CatalogRepo:      f.catalogRepo,
		UserRepo:         f.userRepo,
		NotificationRepo: f.notificationRepo,
		EventPublisher:   f.eventPublisher,
		RealtimeNotifier: f.realtimeNotifier,
		Logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return f
}

// expectFanOut wires the best-effort side effects that follow every booking change.
func (f bookingServiceFixtures) expectFanOut() {
	f.eventPublisher.On("PublishBookingEvent", mock.Anything, mock.AnythingOfType("*service.BookingEvent")).Return(nil)
	f.realtimeNotifier.On("NotifyUser", mock.AnythingOfType("uuid.UUID"), mock.AnythingOfType("service.RealtimeEvent")).Return()
	f.notificationRepo.On("CreateNotification", mock.Anything, mock.AnythingOfType("*entity.Notification")).Return(nil)
}

func TestBookingService_CreateBooking_SnapshotsListingPrice(t *testing.T) {
	f := createTestBookingService(t)
	ctx := context.Background()
	customerID := uuid.New()
	providerID := uuid.New()
	serviceID := uuid.New()

	f.userRepo.On("FindByID", ctx, customerID).
		Return(&entity.User{ID: customerID, CustomerProfile: &entity.CustomerProfile{UserID: customerID}}, nil)
	f.catalogRepo.On("FindServiceByID", ctx, serviceID).
		Return(&entity.ServiceListing{
			ID:         serviceID,
			ProviderID: providerID,
			Title:      "Tap repair",
			Price:      499,
			Active:     true,
		}, nil)
	f.bookingRepo.On("CreateBooking", ctx, mock.AnythingOfType("*entity.Booking")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Booking).ID = uuid.New()
		}).
		Return(nil)
	f.expectFanOut()

	booking, err := f.service.CreateBooking(ctx, customerID, &usecase.CreateBookingInput{
		ServiceID:   serviceID,
		ScheduledAt: time.Now().Add(24 * time.Hour),
		Notes:       "leaky kitchen tap",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.BookingPending, booking.Status)
	assert.Equal(t, int64(499), booking.Price)
	assert.Equal(t, providerID, booking.ProviderID)
	assert.Equal(t, customerID, booking.CustomerID)
}

func TestBookingService_CreateBooking_PastScheduleRejected(t *testing.T) {
	f := createTestBookingService(t)

	_, err := f.service.CreateBooking(context.Background(), uuid.New(), &usecase.CreateBookingInput{
		ServiceID:   uuid.New(),
		ScheduledAt: time.Now().Add(-time.Hour),
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestBookingService_CreateBooking_OwnListingRejected(t *testing.T) {
	f := createTestBookingService(t)
	ctx := context.Background()
	userID := uuid.New()
	serviceID := uuid.New()

	f.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{
			ID:              userID,
			CustomerProfile: &entity.CustomerProfile{UserID: userID},
			ProviderProfile: &entity.ProviderProfile{UserID: userID},
		}, nil)
	f.catalogRepo.On("FindServiceByID", ctx, serviceID).
		Return(&entity.ServiceListing{ID: serviceID, ProviderID: userID, Active: true}, nil)

	_, err := f.service.CreateBooking(ctx, userID, &usecase.CreateBookingInput{
		ServiceID:   serviceID,
		ScheduledAt: time.Now().Add(time.Hour),
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestBookingService_CreateBooking_InactiveListing(t *testing.T) {
	f := createTestBookingService(t)
	ctx := context.Background()
	customerID := uuid.New()
	serviceID := uuid.New()

	f.userRepo.On("FindByID", ctx, customerID).
		Return(&entity.User{ID: customerID, CustomerProfile: &entity.CustomerProfile{UserID: customerID}}, nil)
	f.catalogRepo.On("FindServiceByID", ctx, serviceID).
		Return(&entity.ServiceListing{ID: serviceID, ProviderID: uuid.New(), Active: false}, nil)

	_, err := f.service.CreateBooking(ctx, customerID, &usecase.CreateBookingInput{
		ServiceID:   serviceID,
		ScheduledAt: time.Now().Add(time.Hour),
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrServiceNotFound))
}

func TestBookingService_AcceptBooking_Success(t *testing.T) {
	f := createTestBookingService(t)
	ctx := context.Background()
	providerID := uuid.New()
	bookingID := uuid.New()
	serviceID := uuid.New()

	f.bookingRepo.On("FindBookingByID", ctx, bookingID).
		Return(&entity.Booking{
			ID:         bookingID,
			CustomerID: uuid.New(),
			ProviderID: providerID,
			ServiceID:  serviceID,
			Status:     entity.BookingPending,
		}, nil)
	f.bookingRepo.On("UpdateBookingStatus", ctx, bookingID, entity.BookingPending, entity.BookingAccepted).
		Return(nil)
	f.catalogRepo.On("FindServiceByID", ctx, serviceID).
		Return(&entity.ServiceListing{ID: serviceID, Title: "Tap repair"}, nil)
	f.expectFanOut()

	booking, err := f.service.AcceptBooking(ctx, providerID, bookingID)

	require.NoError(t, err)
	assert.Equal(t, entity.BookingAccepted, booking.Status)
}

func TestBookingService_AcceptBooking_WrongProvider(t *testing.T) {
	f := createTestBookingService(t)
	ctx := context.Background()
	bookingID := uuid.New()

	f.bookingRepo.On("FindBookingByID", ctx, bookingID).
		Return(&entity.Booking{
			ID:         bookingID,
			CustomerID: uuid.New(),
			ProviderID: uuid.New(),
			Status:     entity.BookingPending,
		}, nil)

	_, err := f.service.AcceptBooking(ctx, uuid.New(), bookingID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrBookingOwnership))
}

func TestBookingService_StartBooking_InvalidFromPending(t *testing.T) {
	f := createTestBookingService(t)
	ctx := context.Background()
	providerID := uuid.New()
	bookingID := uuid.New()

	f.bookingRepo.On("FindBookingByID", ctx, bookingID).
		Return(&entity.Booking{
			ID:         bookingID,
			ProviderID: providerID,
			Status:     entity.BookingPending,
		}, nil)

	_, err := f.service.StartBooking(ctx, providerID, bookingID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrBookingTransition))
}

func TestBookingService_CompleteBooking_Lifecycle(t *testing.T) {
	f := createTestBookingService(t)
	ctx := context.Background()
	providerID := uuid.New()
	bookingID := uuid.New()
	serviceID := uuid.New()

	f.bookingRepo.On("FindBookingByID", ctx, bookingID).
		Return(&entity.Booking{
			ID:         bookingID,
			CustomerID: uuid.New(),
			ProviderID: providerID,
			ServiceID:  serviceID,
			Status:     entity.BookingInProgress,
		}, nil)
	f.bookingRepo.On("UpdateBookingStatus", ctx, bookingID, entity.BookingInProgress, entity.BookingCompleted).
		Return(nil)
	f.catalogRepo.On("FindServiceByID", ctx, serviceID).
		Return(&entity.ServiceListing{ID: serviceID, Title: "Tap repair"}, nil)
	f.expectFanOut()

	booking, err := f.service.CompleteBooking(ctx, providerID, bookingID)

	require.NoError(t, err)
	assert.Equal(t, entity.BookingCompleted, booking.Status)
}

func TestBookingService_Transition_StaleConflict(t *testing.T) {
	f := createTestBookingService(t)
	ctx := context.Background()
	providerID := uuid.New()
	bookingID := uuid.New()

	f.bookingRepo.On("FindBookingByID", ctx, bookingID).
		Return(&entity.Booking{
			ID:         bookingID,
			ProviderID: providerID,
			Status:     entity.BookingPending,
		}, nil)
	f.bookingRepo.On("UpdateBookingStatus", ctx, bookingID, entity.BookingPending, entity.BookingAccepted).
		Return(repository.ErrBookingStale)

	_, err := f.service.AcceptBooking(ctx, providerID, bookingID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrBookingTransition))
}

func TestBookingService_CancelBooking_CustomerWhilePending(t *testing.T) {
	f := createTestBookingService(t)
	ctx := context.Background()
	customerID := uuid.New()
	bookingID := uuid.New()
	serviceID := uuid.New()

	f.bookingRepo.On("FindBookingByID", ctx, bookingID).
		Return(&entity.Booking{
			ID:         bookingID,
			CustomerID: customerID,
			ProviderID: uuid.New(),
			ServiceID:  serviceID,
			Status:     entity.BookingPending,
		}, nil)
	f.bookingRepo.On("UpdateBookingStatus", ctx, bookingID, entity.BookingPending, entity.BookingCancelled).
		Return(nil)
	f.catalogRepo.On("FindServiceByID", ctx, serviceID).
		Return(&entity.ServiceListing{ID: serviceID, Title: "Tap repair"}, nil)
	f.expectFanOut()

	booking, err := f.service.CancelBooking(ctx, customerID, bookingID)

	require.NoError(t, err)
	assert.Equal(t, entity.BookingCancelled, booking.Status)
}

func TestBookingService_CancelBooking_TooLate(t *testing.T) {
	f := createTestBookingService(t)
	ctx := context.Background()
	customerID := uuid.New()
	bookingID := uuid.New()

	f.bookingRepo.On("FindBookingByID", ctx, bookingID).
		Return(&entity.Booking{
			ID:         bookingID,
			CustomerID: customerID,
			ProviderID: uuid.New(),
			Status:     entity.BookingInProgress,
		}, nil)

	_, err := f.service.CancelBooking(ctx, customerID, bookingID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrBookingTransition))
}

func TestBookingService_GetBooking_PartyCheck(t *testing.T) {
	f := createTestBookingService(t)
	ctx := context.Background()
	customerID := uuid.New()
	providerID := uuid.New()
	bookingID := uuid.New()

	booking := &entity.Booking{
		ID:         bookingID,
		CustomerID: customerID,
		ProviderID: providerID,
		Status:     entity.BookingPending,
	}
	f.bookingRepo.On("FindBookingByID", ctx, bookingID).Return(booking, nil)

	got, err := f.service.GetBooking(ctx, customerID, bookingID)
	require.NoError(t, err)
	assert.Equal(t, bookingID, got.ID)

	got, err = f.service.GetBooking(ctx, providerID, bookingID)
	require.NoError(t, err)
	assert.Equal(t, bookingID, got.ID)

	_, err = f.service.GetBooking(ctx, uuid.New(), bookingID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrBookingOwnership))
}

func TestBookingService_ListCustomerBookings_ClampsPaging(t *testing.T) {
	f := createTestBookingService(t)
	ctx := context.Background()
	customerID := uuid.New()

	f.bookingRepo.On("FindBookingsByCustomer", ctx, customerID, defaultPageSize, 0).
		Return([]*entity.Booking{}, nil)

	bookings, err := f.service.ListCustomerBookings(ctx, customerID, &usecase.ListBookingsInput{Limit: -5, Offset: -1})

	require.NoError(t, err)
	assert.Empty(t, bookings)
}
