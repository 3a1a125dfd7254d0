// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for catalog persistence.
var (
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrServiceNotFound is returned when a service listing is not found.
	ErrServiceNotFound = errors.New("service listing not found")
)

// CatalogRepository defines the interface for category and service listing persistence.
type CatalogRepository interface {
	// ListCategories retrieves all categories ordered by name.
	ListCategories(ctx context.Context) ([]*entity.Category, error)

	// FindCategoryByID retrieves a category by its unique ID.
	FindCategoryByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindCategoryBySlug retrieves a category by its URL slug.
	FindCategoryBySlug(ctx context.Context, slug string) (*entity.Category, error)

	// CreateService persists a new service listing.
	CreateService(ctx context.Context, listing *entity.ServiceListing) error

	// FindServiceByID retrieves a service listing by its unique ID.
	FindServiceByID(ctx context.Context, id uuid.UUID) (*entity.ServiceListing, error)

	// FindServicesByCategory retrieves active listings in a category.
	FindServicesByCategory(ctx context.Context, categoryID uuid.UUID, limit, offset int) ([]*entity.ServiceListing, error)

	// FindServicesByProvider retrieves all listings owned by a provider, including inactive ones.
	FindServicesByProvider(ctx context.Context, providerID uuid.UUID) ([]*entity.ServiceListing, error)

	// SearchServices retrieves active listings whose title or description matches the query.
	SearchServices(ctx context.Context, query string, limit, offset int) ([]*entity.ServiceListing, error)

	// UpdateService modifies an existing service listing.
	UpdateService(ctx context.Context, listing *entity.ServiceListing) error

	// DeleteService removes a service listing.
	DeleteService(ctx context.Context, id uuid.UUID) error
}
