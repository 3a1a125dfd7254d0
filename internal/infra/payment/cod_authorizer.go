package payment

import (
	"context"
	"time"

	"bazaar/internal/domain/entity"
	"bazaar/internal/domain/service"
)

// codAuthorizer handles cash on delivery. Nothing is captured up front; the
// order is simply confirmed after the simulated placement delay.
type codAuthorizer struct {
	delay time.Duration
}

// NewCODAuthorizer creates the cash on delivery processor.
func NewCODAuthorizer(delay time.Duration) service.PaymentAuthorizer {
	return &codAuthorizer{delay: delay}
}

// Method returns the payment method this authorizer handles.
func (a *codAuthorizer) Method() entity.PaymentMethod {
	return entity.PaymentCOD
}

// Authorize confirms a cash on delivery order. No credential is required.
func (a *codAuthorizer) Authorize(ctx context.Context, req service.AuthorizationRequest) (*service.AuthorizationResult, error) {
	if err := simulateProcessing(ctx, a.delay); err != nil {
		return nil, err
	}

	return &service.AuthorizationResult{
		Authorized: true,
		Reference:  newReference("COD-"),
	}, nil
}
