package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	mockRepo "bazaar/internal/mocks/repository"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestProviderService(t *testing.T) (usecase.ProviderUsecase, *mockRepo.MockUserRepository) {
	userRepo := mockRepo.NewMockUserRepository(t)

	service := NewProviderService(ProviderServiceParams{
		UserRepo: userRepo,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return service, userRepo
}

func providerAt(name string, lat, lon float64) *entity.User {
	id := uuid.New()

	return &entity.User{
		ID:   id,
		Name: name,
		ProviderProfile: &entity.ProviderProfile{
			UserID:    id,
			Latitude:  lat,
			Longitude: lon,
		},
	}
}

func TestProviderService_GetProvider_RequiresProviderProfile(t *testing.T) {
	service, userRepo := createTestProviderService(t)
	ctx := context.Background()
	userID := uuid.New()

	userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, CustomerProfile: &entity.CustomerProfile{UserID: userID}}, nil)

	_, err := service.GetProvider(ctx, userID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrProviderNotFound))
}

func TestProviderService_NearbyProviders_FiltersAndSorts(t *testing.T) {
	service, userRepo := createTestProviderService(t)
	ctx := context.Background()

	// Around Jaipur city centre. Distances from the origin grow in order:
	// near (~1 km), mid (~5 km), far (~250 km, outside the radius).
	origin := usecase.NearbyProvidersInput{Latitude: 26.9124, Longitude: 75.7873, RadiusKm: 10}
	near := providerAt("Near", 26.9214, 75.7873)
	mid := providerAt("Mid", 26.9574, 75.7873)
	far := providerAt("Far", 28.7041, 77.1025)
	unlocated := providerAt("Unlocated", 0, 0)

	userRepo.On("ListProviders", ctx).
		Return([]*entity.User{far, mid, unlocated, near}, nil)

	nearby, err := service.NearbyProviders(ctx, &origin)

	require.NoError(t, err)
	require.Len(t, nearby, 2)
	assert.Equal(t, "Near", nearby[0].User.Name)
	assert.Equal(t, "Mid", nearby[1].User.Name)
	assert.Less(t, nearby[0].DistanceKm, nearby[1].DistanceKm)
	assert.Less(t, nearby[1].DistanceKm, 10.0)
}

func TestProviderService_NearbyProviders_DefaultRadius(t *testing.T) {
	service, userRepo := createTestProviderService(t)
	ctx := context.Background()

	near := providerAt("Near", 26.9214, 75.7873)
	userRepo.On("ListProviders", ctx).Return([]*entity.User{near}, nil)

	nearby, err := service.NearbyProviders(ctx, &usecase.NearbyProvidersInput{
		Latitude:  26.9124,
		Longitude: 75.7873,
		// RadiusKm zero falls back to the default.
	})

	require.NoError(t, err)
	assert.Len(t, nearby, 1)
}
