package usecase

import (
	"context"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// NearbyProvidersInput scopes a proximity search around a point.
type NearbyProvidersInput struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64
}

// NearbyProvider pairs a provider with their distance from the search point.
type NearbyProvider struct {
	User       *entity.User
	DistanceKm float64
}

// ProviderUsecase defines the interface for provider directory operations.
type ProviderUsecase interface {
	// ListProviders returns all users with a provider profile.
	ListProviders(ctx context.Context) ([]*entity.User, error)

	// GetProvider loads a provider's public profile.
	GetProvider(ctx context.Context, providerID uuid.UUID) (*entity.User, error)

	// NearbyProviders returns providers within the given radius of a point,
	// nearest first.
	NearbyProviders(ctx context.Context, input *NearbyProvidersInput) ([]*NearbyProvider, error)
}
