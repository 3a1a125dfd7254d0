package handler

import (
	"log/slog"
	"net/http"

	"bazaar/internal/delivery/http/middleware"
	"bazaar/internal/delivery/http/response"
	"bazaar/internal/domain/entity"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CheckoutHandlerParams holds dependencies for CheckoutHandler, injected by Fx.
type CheckoutHandlerParams struct {
	fx.In

	CheckoutUC usecase.CheckoutUsecase
	Logger     *slog.Logger
}

// CheckoutHandler holds dependencies for the payment wizard handlers.
type CheckoutHandler struct {
	checkoutUC usecase.CheckoutUsecase
	logger     *slog.Logger
}

// NewCheckoutHandler is the constructor for CheckoutHandler.
func NewCheckoutHandler(params CheckoutHandlerParams) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutUC: params.CheckoutUC,
		logger:     params.Logger,
	}
}

// CartItemRequest identifies one product line placed in the cart.
type CartItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

// SubmitCartRequest represents the request body for the cart step.
type SubmitCartRequest struct {
	Items []CartItemRequest `json:"items" validate:"required,min=1,dive"`
}

// SubmitAddressRequest represents the request body for the address step.
// Field-level guards live in the domain; only presence is checked here.
type SubmitAddressRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Line1    string `json:"line1"`
	Line2    string `json:"line2"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
}

// SubmitPaymentRequest represents the request body for the payment step.
type SubmitPaymentRequest struct {
	Method     string `json:"method" validate:"required,oneof=upi card cod"`
	UPIID      string `json:"upi_id"`
	CardNumber string `json:"card_number"`
	CardExpiry string `json:"card_expiry"`
	CardCVV    string `json:"card_cvv"`
	CardHolder string `json:"card_holder"`
}

// VerifyRequest carries the payment credential for the verify step.
type VerifyRequest struct {
	Credential string `json:"credential" validate:"required"`
}

// StartCheckout opens a fresh session at the cart step.
func (h *CheckoutHandler) StartCheckout(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	view, err := h.checkoutUC.StartCheckout(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, view)
}

// GetCheckout returns the user's current session state.
func (h *CheckoutHandler) GetCheckout(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	view, err := h.checkoutUC.GetCheckout(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, view)
}

// SubmitCart prices the requested items and advances to the address step.
func (h *CheckoutHandler) SubmitCart(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req SubmitCartRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	items := make([]usecase.CartItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return response.BadRequest(c, "INVALID_ID", "Invalid product ID in cart")
		}

		items = append(items, usecase.CartItemInput{
			ProductID: productID,
			Quantity:  item.Quantity,
		})
	}

	view, err := h.checkoutUC.SubmitCart(c.Request().Context(), userID, items)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, view)
}

// SubmitAddress stores the shipping address and advances to the payment step.
func (h *CheckoutHandler) SubmitAddress(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req SubmitAddressRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid address input")
	}

	view, err := h.checkoutUC.SubmitAddress(c.Request().Context(), userID, entity.ShippingAddress{
		FullName: req.FullName,
		Phone:    req.Phone,
		Line1:    req.Line1,
		Line2:    req.Line2,
		City:     req.City,
		State:    req.State,
		Pincode:  req.Pincode,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, view)
}

// SubmitPayment stores the payment details and advances to the confirm step.
func (h *CheckoutHandler) SubmitPayment(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req SubmitPaymentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid payment input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	view, err := h.checkoutUC.SubmitPayment(c.Request().Context(), userID, entity.PaymentDetails{
		Method:     entity.PaymentMethod(req.Method),
		UPIID:      req.UPIID,
		CardNumber: req.CardNumber,
		CardExpiry: req.CardExpiry,
		CardCVV:    req.CardCVV,
		CardHolder: req.CardHolder,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, view)
}

// Confirm locks in the order summary. Cash on delivery completes immediately;
// UPI and card advance to the verify step.
func (h *CheckoutHandler) Confirm(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	view, err := h.checkoutUC.Confirm(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, view)
}

// Verify authorizes the payment with the supplied credential.
func (h *CheckoutHandler) Verify(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req VerifyRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid verification input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	view, err := h.checkoutUC.Verify(c.Request().Context(), userID, req.Credential)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, view)
}

// Back returns to the previous wizard step, keeping entered values.
func (h *CheckoutHandler) Back(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	view, err := h.checkoutUC.Back(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, view)
}

// Abandon discards the user's checkout session.
func (h *CheckoutHandler) Abandon(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	if err := h.checkoutUC.Abandon(c.Request().Context(), userID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Checkout abandoned"})
}
