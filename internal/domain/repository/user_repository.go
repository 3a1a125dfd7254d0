// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID, with profiles preloaded.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user entity in the storage.
	Update(ctx context.Context, user *entity.User) error

	// UpsertCustomerProfile creates or replaces the user's customer profile.
	UpsertCustomerProfile(ctx context.Context, profile *entity.CustomerProfile) error

	// UpsertProviderProfile creates or replaces the user's provider profile.
	UpsertProviderProfile(ctx context.Context, profile *entity.ProviderProfile) error

	// ListProviders retrieves all users that have a provider profile.
	ListProviders(ctx context.Context) ([]*entity.User, error)
}
