package payment

import (
	"context"
	"time"

	"bazaar/internal/domain/entity"
	"bazaar/internal/domain/service"
)

// declineCardOTP is the magic OTP the simulator declines.
const declineCardOTP = "000000"

// cardAuthorizer simulates a card payment gateway.
type cardAuthorizer struct {
	delay time.Duration
}

// NewCardAuthorizer creates the card processor with the given simulated latency.
func NewCardAuthorizer(delay time.Duration) service.PaymentAuthorizer {
	return &cardAuthorizer{delay: delay}
}

// Method returns the payment method this authorizer handles.
func (a *cardAuthorizer) Method() entity.PaymentMethod {
	return entity.PaymentCard
}

// Authorize captures a card payment after OTP verification.
func (a *cardAuthorizer) Authorize(ctx context.Context, req service.AuthorizationRequest) (*service.AuthorizationResult, error) {
	if err := req.Details.ValidateCredential(req.Credential); err != nil {
		return &service.AuthorizationResult{Authorized: false, Reason: "invalid OTP"}, nil
	}
	if err := simulateProcessing(ctx, a.delay); err != nil {
		return nil, err
	}
	if req.Credential == declineCardOTP {
		return &service.AuthorizationResult{Authorized: false, Reason: "incorrect OTP"}, nil
	}

	return &service.AuthorizationResult{
		Authorized: true,
		Reference:  newReference("CARD-"),
	}, nil
}
