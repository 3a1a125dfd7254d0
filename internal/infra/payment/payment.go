// Package payment holds the simulated payment processors behind the
// service.PaymentAuthorizer interface. Each processor handles one payment
// method; the checkout flow picks the right one by method.
package payment

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"bazaar/internal/domain/service"
)

// Registry maps payment methods to their authorizers.
type Registry map[string]service.PaymentAuthorizer

// NewRegistry indexes authorizers by method.
func NewRegistry(authorizers ...service.PaymentAuthorizer) Registry {
	r := make(Registry, len(authorizers))
	for _, a := range authorizers {
		r[string(a.Method())] = a
	}

	return r
}

// ForMethod returns the authorizer registered for the method, if any.
func (r Registry) ForMethod(method string) (service.PaymentAuthorizer, bool) {
	a, ok := r[method]

	return a, ok
}

// simulateProcessing sleeps for the configured processing delay, honoring
// context cancellation. The simulated processors share it.
func simulateProcessing(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// newReference generates a processor capture reference.
func newReference(prefix string) string {
	buf := make([]byte, 6)
	_, _ = rand.Read(buf)

	return prefix + hex.EncodeToString(buf)
}
