// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"errors"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when a user has no live checkout session.
var ErrSessionNotFound = errors.New("checkout session not found")

// CheckoutSessionStore holds in-flight checkout sessions, one per user.
// Sessions are ephemeral by design: they never touch the database and a
// restart discards them. The store expires sessions after their TTL.
type CheckoutSessionStore interface {
	// Get returns the user's live session.
	Get(userID uuid.UUID) (*entity.CheckoutSession, error)

	// Put stores the user's session, replacing any previous one and resetting its TTL.
	Put(session *entity.CheckoutSession)

	// Delete removes the user's session.
	Delete(userID uuid.UUID)
}
