package payment

import (
	"context"
	"time"

	"bazaar/internal/domain/entity"
	"bazaar/internal/domain/service"
)

// declineUPIPIN is the magic PIN the simulator declines, so clients and tests
// can exercise the failure path.
const declineUPIPIN = "0000"

// upiAuthorizer simulates a UPI payment processor.
type upiAuthorizer struct {
	delay time.Duration
}

// NewUPIAuthorizer creates the UPI processor with the given simulated latency.
func NewUPIAuthorizer(delay time.Duration) service.PaymentAuthorizer {
	return &upiAuthorizer{delay: delay}
}

// Method returns the payment method this authorizer handles.
func (a *upiAuthorizer) Method() entity.PaymentMethod {
	return entity.PaymentUPI
}

// Authorize captures a UPI payment after PIN verification.
func (a *upiAuthorizer) Authorize(ctx context.Context, req service.AuthorizationRequest) (*service.AuthorizationResult, error) {
	if err := req.Details.ValidateCredential(req.Credential); err != nil {
		return &service.AuthorizationResult{Authorized: false, Reason: "invalid UPI PIN"}, nil
	}
	if err := simulateProcessing(ctx, a.delay); err != nil {
		return nil, err
	}
	if req.Credential == declineUPIPIN {
		return &service.AuthorizationResult{Authorized: false, Reason: "incorrect UPI PIN"}, nil
	}

	return &service.AuthorizationResult{
		Authorized: true,
		Reference:  newReference("UPI-"),
	}, nil
}
