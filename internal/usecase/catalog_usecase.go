package usecase

import (
	"context"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateServiceInput defines the data required to publish a service listing.
type CreateServiceInput struct {
	CategoryID  uuid.UUID
	Title       string
	Description string
	Price       int64
	DurationMin int
	ImageURL    string
}

// UpdateServiceInput defines the editable fields of a service listing.
type UpdateServiceInput struct {
	Title       string
	Description string
	Price       int64
	DurationMin int
	ImageURL    string
	Active      bool
}

// BrowseServicesInput scopes a catalog browse to a category with paging.
type BrowseServicesInput struct {
	CategoryID uuid.UUID
	Limit      int
	Offset     int
}

// SearchServicesInput carries a free-text catalog search with paging.
type SearchServicesInput struct {
	Query  string
	Limit  int
	Offset int
}

// CatalogUsecase defines the interface for category and service listing operations.
type CatalogUsecase interface {
	// ListCategories returns all marketplace categories.
	ListCategories(ctx context.Context) ([]*entity.Category, error)

	// GetCategoryBySlug resolves a category from its URL slug.
	GetCategoryBySlug(ctx context.Context, slug string) (*entity.Category, error)

	// CreateService publishes a new listing owned by the provider.
	CreateService(ctx context.Context, providerID uuid.UUID, input *CreateServiceInput) (*entity.ServiceListing, error)

	// GetService loads a single listing.
	GetService(ctx context.Context, id uuid.UUID) (*entity.ServiceListing, error)

	// BrowseServices lists active listings in a category.
	BrowseServices(ctx context.Context, input *BrowseServicesInput) ([]*entity.ServiceListing, error)

	// ListProviderServices lists all of a provider's own listings, including inactive ones.
	ListProviderServices(ctx context.Context, providerID uuid.UUID) ([]*entity.ServiceListing, error)

	// SearchServices finds active listings matching a free-text query.
	SearchServices(ctx context.Context, input *SearchServicesInput) ([]*entity.ServiceListing, error)

	// UpdateService edits a listing. Only the owning provider may edit.
	UpdateService(ctx context.Context, providerID, serviceID uuid.UUID, input *UpdateServiceInput) error

	// DeleteService removes a listing. Only the owning provider may delete.
	DeleteService(ctx context.Context, providerID, serviceID uuid.UUID) error
}
