package service

import (
	"context"

	"bazaar/internal/domain/entity"
)

// AuthorizationRequest carries everything an authorizer needs to capture a payment.
type AuthorizationRequest struct {
	UserID     string                 // The paying customer.
	Amount     int64                  // Amount to capture, whole currency units.
	Details    entity.PaymentDetails  // Method-specific payment fields.
	Credential string                 // UPI PIN or card OTP; empty for cash on delivery.
}

// AuthorizationResult reports the outcome of a capture attempt.
type AuthorizationResult struct {
	Authorized bool   // Whether the payment went through.
	Reference  string // Processor reference for the capture.
	Reason     string // Human-readable decline reason when not authorized.
}

// PaymentAuthorizer captures a payment for one payment method. Implementations
// are selected by method, so new processors plug in without touching checkout.
type PaymentAuthorizer interface {
	// Method returns the payment method this authorizer handles.
	Method() entity.PaymentMethod

	// Authorize attempts to capture the payment.
	// A decline is reported in the result, not as an error; errors mean the
	// attempt itself could not be made.
	Authorize(ctx context.Context, req AuthorizationRequest) (*AuthorizationResult, error)
}
