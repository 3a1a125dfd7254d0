package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"bazaar/internal/delivery/http/middleware"
	"bazaar/internal/delivery/http/response"
	"bazaar/internal/domain/entity"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// BookingHandlerParams holds dependencies for BookingHandler, injected by Fx.
type BookingHandlerParams struct {
	fx.In

	BookingUC usecase.BookingUsecase
	Logger    *slog.Logger
}

// BookingHandler holds dependencies for booking lifecycle handlers.
type BookingHandler struct {
	bookingUC usecase.BookingUsecase
	logger    *slog.Logger
}

// NewBookingHandler is the constructor for BookingHandler.
func NewBookingHandler(params BookingHandlerParams) *BookingHandler {
	return &BookingHandler{
		bookingUC: params.BookingUC,
		logger:    params.Logger,
	}
}

// CreateBookingRequest represents the request body for booking a service.
type CreateBookingRequest struct {
	ServiceID   string    `json:"service_id" validate:"required,uuid"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
	Notes       string    `json:"notes"`
}

// CreateBooking books a service for the authenticated customer.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid booking input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid service ID")
	}

	booking, err := h.bookingUC.CreateBooking(c.Request().Context(), userID, &usecase.CreateBookingInput{
		ServiceID:   serviceID,
		ScheduledAt: req.ScheduledAt,
		Notes:       req.Notes,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, booking)
}

// GetBooking loads a booking for one of its parties.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid booking ID")
	}

	booking, err := h.bookingUC.GetBooking(c.Request().Context(), userID, bookingID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, booking)
}

// ListMyBookings lists the authenticated customer's bookings.
func (h *BookingHandler) ListMyBookings(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	limit, offset := pagingParams(c)

	bookings, err := h.bookingUC.ListCustomerBookings(c.Request().Context(), userID, &usecase.ListBookingsInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, bookings)
}

// ListIncomingBookings lists the authenticated provider's incoming bookings.
func (h *BookingHandler) ListIncomingBookings(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	limit, offset := pagingParams(c)

	bookings, err := h.bookingUC.ListProviderBookings(c.Request().Context(), userID, &usecase.ListBookingsInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, bookings)
}

// AcceptBooking moves a pending booking to accepted.
func (h *BookingHandler) AcceptBooking(c echo.Context) error {
	return h.transition(c, h.bookingUC.AcceptBooking)
}

// StartBooking moves an accepted booking to in_progress.
func (h *BookingHandler) StartBooking(c echo.Context) error {
	return h.transition(c, h.bookingUC.StartBooking)
}

// CompleteBooking moves an in_progress booking to completed.
func (h *BookingHandler) CompleteBooking(c echo.Context) error {
	return h.transition(c, h.bookingUC.CompleteBooking)
}

// CancelBooking cancels a booking that has not started.
func (h *BookingHandler) CancelBooking(c echo.Context) error {
	return h.transition(c, h.bookingUC.CancelBooking)
}

type bookingTransition func(ctx context.Context, userID, bookingID uuid.UUID) (*entity.Booking, error)

// transition runs one lifecycle operation identified by the booking path param.
func (h *BookingHandler) transition(c echo.Context, op bookingTransition) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid booking ID")
	}

	booking, err := op(c.Request().Context(), userID, bookingID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, booking)
}
