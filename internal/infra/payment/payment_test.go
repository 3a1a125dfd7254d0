package payment

import (
	"context"
	"testing"
	"time"

	"bazaar/internal/domain/entity"
	"bazaar/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_ForMethod(t *testing.T) {
	registry := NewRegistry(
		NewUPIAuthorizer(0),
		NewCardAuthorizer(0),
		NewCODAuthorizer(0),
	)

	for _, method := range []entity.PaymentMethod{entity.PaymentUPI, entity.PaymentCard, entity.PaymentCOD} {
		a, ok := registry.ForMethod(string(method))
		require.True(t, ok, "missing authorizer for %s", method)
		assert.Equal(t, method, a.Method())
	}

	_, ok := registry.ForMethod("barter")
	assert.False(t, ok)
}

func TestUPIAuthorizer(t *testing.T) {
	authorizer := NewUPIAuthorizer(0)
	details := entity.PaymentDetails{Method: entity.PaymentUPI, UPIID: "asha@upi"}

	tests := []struct {
		name       string
		credential string
		authorized bool
	}{
		{"valid pin", "4321", true},
		{"longer pin", "432100", true},
		{"too short pin", "12", false},
		{"non-numeric pin", "abcd", false},
		{"declined pin", "0000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := authorizer.Authorize(context.Background(), service.AuthorizationRequest{
				Amount:     499,
				Details:    details,
				Credential: tt.credential,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.authorized, result.Authorized)
			if tt.authorized {
				assert.NotEmpty(t, result.Reference)
			} else {
				assert.NotEmpty(t, result.Reason)
			}
		})
	}
}

func TestCardAuthorizer(t *testing.T) {
	authorizer := NewCardAuthorizer(0)
	details := entity.PaymentDetails{
		Method:     entity.PaymentCard,
		CardNumber: "4111 1111 1111 1111",
		CardExpiry: "12/27",
		CardCVV:    "123",
		CardHolder: "Asha Verma",
	}

	tests := []struct {
		name       string
		credential string
		authorized bool
	}{
		{"valid otp", "123456", true},
		{"too short otp", "12345", false},
		{"too long otp", "1234567", false},
		{"declined otp", "000000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := authorizer.Authorize(context.Background(), service.AuthorizationRequest{
				Amount:     1047,
				Details:    details,
				Credential: tt.credential,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.authorized, result.Authorized)
		})
	}
}

func TestCODAuthorizer(t *testing.T) {
	authorizer := NewCODAuthorizer(0)

	result, err := authorizer.Authorize(context.Background(), service.AuthorizationRequest{
		Amount:  250,
		Details: entity.PaymentDetails{Method: entity.PaymentCOD},
	})
	require.NoError(t, err)
	assert.True(t, result.Authorized)
	assert.NotEmpty(t, result.Reference)
}

func TestAuthorizeHonorsContextCancellation(t *testing.T) {
	authorizer := NewCODAuthorizer(time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := authorizer.Authorize(ctx, service.AuthorizationRequest{
		Amount:  100,
		Details: entity.PaymentDetails{Method: entity.PaymentCOD},
	})
	assert.Error(t, err)
	assert.Nil(t, result)
}
