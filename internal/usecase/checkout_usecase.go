package usecase

import (
	"context"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// CartItemInput identifies a product and quantity placed in the cart.
// Name and price are snapshotted server-side from the product record.
type CartItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CheckoutView is the wizard state returned to the client after every operation.
type CheckoutView struct {
	SessionID uuid.UUID              `json:"session_id"`
	Step      entity.CheckoutStep    `json:"step"`
	Cart      entity.Cart            `json:"cart"`
	Address   entity.ShippingAddress `json:"address"`
	Method    entity.PaymentMethod   `json:"method,omitempty"`
	Totals    entity.CheckoutTotals  `json:"totals"`
	OrderID   string                 `json:"order_id,omitempty"`
}

// CheckoutUsecase drives the payment wizard: cart -> address -> payment ->
// confirm -> verify -> success. One session exists per user at a time; the
// session survives backward navigation with entered values intact.
type CheckoutUsecase interface {
	// StartCheckout opens a fresh session at the cart step, replacing any
	// previous unfinished session for the user.
	StartCheckout(ctx context.Context, userID uuid.UUID) (*CheckoutView, error)

	// GetCheckout returns the user's current session state.
	GetCheckout(ctx context.Context, userID uuid.UUID) (*CheckoutView, error)

	// SubmitCart prices the requested items against live product data and
	// advances to the address step.
	SubmitCart(ctx context.Context, userID uuid.UUID, items []CartItemInput) (*CheckoutView, error)

	// SubmitAddress stores a validated shipping address and advances to payment.
	SubmitAddress(ctx context.Context, userID uuid.UUID, addr entity.ShippingAddress) (*CheckoutView, error)

	// SubmitPayment stores validated payment details and advances to confirm.
	SubmitPayment(ctx context.Context, userID uuid.UUID, details entity.PaymentDetails) (*CheckoutView, error)

	// Confirm locks in the order summary. For UPI and card it advances to the
	// verify step; for cash on delivery it captures immediately and completes.
	Confirm(ctx context.Context, userID uuid.UUID) (*CheckoutView, error)

	// Verify authorizes the payment with the supplied credential (UPI PIN or
	// card OTP) and completes the order on success.
	Verify(ctx context.Context, userID uuid.UUID, credential string) (*CheckoutView, error)

	// Back returns to the previous wizard step, keeping entered values.
	Back(ctx context.Context, userID uuid.UUID) (*CheckoutView, error)

	// Abandon discards the user's session.
	Abandon(ctx context.Context, userID uuid.UUID) error
}
