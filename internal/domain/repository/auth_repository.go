// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAuthNotFound is returned when an authentication method is not found.
// This allows the application layer to handle specific outcomes without depending on database-specific errors.
var ErrAuthNotFound = errors.New("authentication method not found")

// AuthRepository defines the standard operations for authentication-method persistence.
// One user may hold several rows, one per federated provider (email, google, phone).
type AuthRepository interface {
	// CreateAuthentication persists a new authentication method.
	CreateAuthentication(ctx context.Context, auth *entity.Authentication) error

	// FindAuthentication retrieves an authentication method by its provider and provider-specific ID.
	FindAuthentication(ctx context.Context, provider string, providerUserID string) (*entity.Authentication, error)

	// FindAuthenticationsByUserID retrieves every authentication method linked to a user.
	FindAuthenticationsByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Authentication, error)

	// UpdateAuthentication modifies an existing authentication method, e.g. after a password change.
	UpdateAuthentication(ctx context.Context, auth *entity.Authentication) error

	// DeleteAuthentication unlinks an authentication method from its user.
	DeleteAuthentication(ctx context.Context, id uuid.UUID) error
}
