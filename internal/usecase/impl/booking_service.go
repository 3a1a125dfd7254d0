package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	deliverycontext "bazaar/internal/delivery/context"
	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/domain/service"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// bookingService implements the BookingUsecase interface.
type bookingService struct {
	bookingRepo      repository.BookingRepository
	catalogRepo      repository.CatalogRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	eventPublisher   service.EventPublisher
	realtimeNotifier service.RealtimeNotifier
	logger           *slog.Logger
}

// BookingServiceParams holds dependencies for bookingService, injected by Fx.
type BookingServiceParams struct {
	fx.In

	BookingRepo      repository.BookingRepository
	CatalogRepo      repository.CatalogRepository
	UserRepo         repository.UserRepository
	NotificationRepo repository.NotificationRepository
	EventPublisher   service.EventPublisher
	RealtimeNotifier service.RealtimeNotifier
	Logger           *slog.Logger
}

// NewBookingService is the constructor for bookingService.
func NewBookingService(params BookingServiceParams) usecase.BookingUsecase {
	return &bookingService{
		bookingRepo:      params.BookingRepo,
		catalogRepo:      params.CatalogRepo,
		userRepo:         params.UserRepo,
		notificationRepo: params.NotificationRepo,
		eventPublisher:   params.EventPublisher,
		realtimeNotifier: params.RealtimeNotifier,
		logger:           params.Logger,
	}
}

func (srv *bookingService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateBooking books a service for the customer. The listing price and
// provider are snapshotted onto the booking so later catalog edits do not
// change agreed terms.
func (srv *bookingService) CreateBooking(ctx context.Context, customerID uuid.UUID, input *usecase.CreateBookingInput) (*entity.Booking, error) {
	srv.log(ctx).Info("Creating booking",
		slog.Any("customerID", customerID),
		slog.Any("serviceID", input.ServiceID))

	if input.ScheduledAt.Before(time.Now()) {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "scheduled time is in the past")
	}

	customer, err := srv.userRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load customer")
	}
	if customer.CustomerProfile == nil {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "customer profile required")
	}

	listing, err := srv.catalogRepo.FindServiceByID(ctx, input.ServiceID)
	if err != nil {
		if errors.Is(err, repository.ErrServiceNotFound) {
			return nil, domainerrors.ErrServiceNotFound
		}

		return nil, errors.Wrap(err, "failed to find service listing")
	}

	if !listing.Active {
		return nil, errors.Wrap(domainerrors.ErrServiceNotFound, "listing is no longer available")
	}
	if listing.ProviderID == customerID {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "cannot book your own listing")
	}

	booking := &entity.Booking{
		CustomerID:  customerID,
		ProviderID:  listing.ProviderID,
		ServiceID:   listing.ID,
		Status:      entity.BookingPending,
		Price:       listing.Price,
		ScheduledAt: input.ScheduledAt,
		Notes:       input.Notes,
	}

	if err := srv.bookingRepo.CreateBooking(ctx, booking); err != nil {
		srv.log(ctx).Error("Failed to create booking", slog.Any("error", err), slog.Any("customerID", customerID))

		return nil, errors.Wrap(err, "failed to create booking")
	}

	srv.fanOutBookingChange(ctx, booking, customerID, listing.Title)

	return booking, nil
}

// GetBooking loads a booking for one of its parties.
func (srv *bookingService) GetBooking(ctx context.Context, userID, bookingID uuid.UUID) (*entity.Booking, error) {
	booking, err := srv.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.CustomerID != userID && booking.ProviderID != userID {
		return nil, domainerrors.ErrBookingOwnership
	}

	return booking, nil
}

// ListCustomerBookings lists the customer's bookings, newest first.
func (srv *bookingService) ListCustomerBookings(ctx context.Context, customerID uuid.UUID, input *usecase.ListBookingsInput) ([]*entity.Booking, error) {
	limit, offset := clampPage(input.Limit, input.Offset)

	bookings, err := srv.bookingRepo.FindBookingsByCustomer(ctx, customerID, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list customer bookings")
	}

	return bookings, nil
}

// ListProviderBookings lists the provider's incoming bookings, newest first.
func (srv *bookingService) ListProviderBookings(ctx context.Context, providerID uuid.UUID, input *usecase.ListBookingsInput) ([]*entity.Booking, error) {
	limit, offset := clampPage(input.Limit, input.Offset)

	bookings, err := srv.bookingRepo.FindBookingsByProvider(ctx, providerID, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list provider bookings")
	}

	return bookings, nil
}

// AcceptBooking moves a pending booking to accepted. Provider only.
func (srv *bookingService) AcceptBooking(ctx context.Context, providerID, bookingID uuid.UUID) (*entity.Booking, error) {
	return srv.transitionAsProvider(ctx, providerID, bookingID, entity.BookingAccepted)
}

// StartBooking moves an accepted booking to in_progress. Provider only.
func (srv *bookingService) StartBooking(ctx context.Context, providerID, bookingID uuid.UUID) (*entity.Booking, error) {
	return srv.transitionAsProvider(ctx, providerID, bookingID, entity.BookingInProgress)
}

// CompleteBooking moves an in_progress booking to completed. Provider only.
func (srv *bookingService) CompleteBooking(ctx context.Context, providerID, bookingID uuid.UUID) (*entity.Booking, error) {
	return srv.transitionAsProvider(ctx, providerID, bookingID, entity.BookingCompleted)
}

// CancelBooking cancels a booking that has not started. Either party may cancel.
func (srv *bookingService) CancelBooking(ctx context.Context, userID, bookingID uuid.UUID) (*entity.Booking, error) {
	booking, err := srv.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.CustomerID != userID && booking.ProviderID != userID {
		return nil, domainerrors.ErrBookingOwnership
	}

	if !booking.Status.CanCancel() {
		return nil, domainerrors.ErrBookingTransition.WrapMessage(
			fmt.Sprintf("cannot cancel a booking in status %s", booking.Status))
	}

	return srv.applyTransition(ctx, booking, entity.BookingCancelled, userID)
}

// transitionAsProvider performs a provider-driven lifecycle transition.
func (srv *bookingService) transitionAsProvider(ctx context.Context, providerID, bookingID uuid.UUID, to entity.BookingStatus) (*entity.Booking, error) {
	booking, err := srv.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.ProviderID != providerID {
		return nil, domainerrors.ErrBookingOwnership
	}

	if !booking.Status.CanTransitionTo(to) {
		return nil, domainerrors.ErrBookingTransition.WrapMessage(
			fmt.Sprintf("cannot move from %s to %s", booking.Status, to))
	}

	return srv.applyTransition(ctx, booking, to, providerID)
}

// applyTransition writes the status change and fans out notifications.
// The write is conditional on the status the booking was loaded with, so a
// concurrent transition surfaces as a conflict instead of being overwritten.
func (srv *bookingService) applyTransition(ctx context.Context, booking *entity.Booking, to entity.BookingStatus, actorID uuid.UUID) (*entity.Booking, error) {
	from := booking.Status

	if err := srv.bookingRepo.UpdateBookingStatus(ctx, booking.ID, from, to); err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingNotFound):
			return nil, domainerrors.ErrBookingNotFound
		case errors.Is(err, repository.ErrBookingStale):
			return nil, domainerrors.ErrBookingTransition.WrapMessage("booking status changed concurrently")
		default:
			srv.log(ctx).Error("Failed to update booking status",
				slog.Any("error", err),
				slog.Any("bookingID", booking.ID))

			return nil, errors.Wrap(err, "failed to update booking status")
		}
	}

	booking.Status = to
	booking.UpdatedAt = time.Now()

	srv.log(ctx).Info("Booking status changed",
		slog.Any("bookingID", booking.ID),
		slog.String("from", from.String()),
		slog.String("to", to.String()))

	title := srv.serviceTitle(ctx, booking.ServiceID)
	srv.fanOutBookingChange(ctx, booking, actorID, title)

	return booking, nil
}

// serviceTitle resolves the listing title for notification copy. Failures
// only degrade the message, never the transition.
func (srv *bookingService) serviceTitle(ctx context.Context, serviceID uuid.UUID) string {
	listing, err := srv.catalogRepo.FindServiceByID(ctx, serviceID)
	if err != nil {
		return ""
	}

	return listing.Title
}

// fanOutBookingChange delivers a booking change to both parties: a persisted
// notification row for the counterparty, a realtime push to every live
// connection, and a queue event for the push worker. All of it is best
// effort; the booking write has already committed.
func (srv *bookingService) fanOutBookingChange(ctx context.Context, booking *entity.Booking, actorID uuid.UUID, serviceTitle string) {
	event := &service.BookingEvent{
		RequestID:    deliverycontext.GetRequestIDFromContext(ctx),
		BookingID:    booking.ID.String(),
		CustomerID:   booking.CustomerID.String(),
		ProviderID:   booking.ProviderID.String(),
		Status:       booking.Status.String(),
		ActorID:      actorID.String(),
		ServiceTitle: serviceTitle,
	}

	if err := srv.eventPublisher.PublishBookingEvent(ctx, event); err != nil {
		srv.log(ctx).Error("Failed to publish booking event",
			slog.Any("error", err),
			slog.Any("bookingID", booking.ID))
	}

	for _, partyID := range booking.PartyIDs() {
		srv.realtimeNotifier.NotifyUser(partyID, service.RealtimeEvent{
			Type:    "booking_update",
			Payload: event,
		})
	}

	counterparty := booking.ProviderID
	if actorID == booking.ProviderID {
		counterparty = booking.CustomerID
	}

	notification := &entity.Notification{
		UserID: counterparty,
		Kind:   entity.NotificationBooking,
		Title:  bookingNotificationTitle(booking.Status),
		Body:   bookingNotificationBody(booking.Status, serviceTitle),
		Data: map[string]string{
			"booking_id": booking.ID.String(),
			"status":     booking.Status.String(),
		},
	}

	if err := srv.notificationRepo.CreateNotification(ctx, notification); err != nil {
		srv.log(ctx).Error("Failed to persist booking notification",
			slog.Any("error", err),
			slog.Any("bookingID", booking.ID))
	}
}

func bookingNotificationTitle(status entity.BookingStatus) string {
	switch status {
	case entity.BookingPending:
		return "New booking request"
	case entity.BookingAccepted:
		return "Booking accepted"
	case entity.BookingInProgress:
		return "Work started"
	case entity.BookingCompleted:
		return "Booking completed"
	case entity.BookingCancelled:
		return "Booking cancelled"
	default:
		return "Booking updated"
	}
}

func bookingNotificationBody(status entity.BookingStatus, serviceTitle string) string {
	subject := "your booking"
	if serviceTitle != "" {
		subject = fmt.Sprintf("your booking for %q", serviceTitle)
	}

	switch status {
	case entity.BookingPending:
		return fmt.Sprintf("You received a new request: %s.", subject)
	case entity.BookingAccepted:
		return fmt.Sprintf("The provider accepted %s.", subject)
	case entity.BookingInProgress:
		return fmt.Sprintf("Work on %s has started.", subject)
	case entity.BookingCompleted:
		return fmt.Sprintf("Work on %s is done.", subject)
	case entity.BookingCancelled:
		return fmt.Sprintf("%s was cancelled.", subject)
	default:
		return fmt.Sprintf("%s was updated.", subject)
	}
}

// loadBooking fetches a booking and maps persistence errors to domain errors.
func (srv *bookingService) loadBooking(ctx context.Context, bookingID uuid.UUID) (*entity.Booking, error) {
	booking, err := srv.bookingRepo.FindBookingByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return nil, domainerrors.ErrBookingNotFound
		}

		return nil, errors.Wrap(err, "failed to find booking")
	}

	return booking, nil
}
