package impl

import (
	"context"
	"log/slog"
	"sort"

	deliverycontext "bazaar/internal/delivery/context"
	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultNearbyRadiusKm = 10.0

// providerService implements the ProviderUsecase interface.
type providerService struct {
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// ProviderServiceParams holds dependencies for providerService, injected by Fx.
type ProviderServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Logger   *slog.Logger
}

// NewProviderService is the constructor for providerService.
func NewProviderService(params ProviderServiceParams) usecase.ProviderUsecase {
	return &providerService{
		userRepo: params.UserRepo,
		logger:   params.Logger,
	}
}

func (srv *providerService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListProviders returns all users with a provider profile.
func (srv *providerService) ListProviders(ctx context.Context) ([]*entity.User, error) {
	providers, err := srv.userRepo.ListProviders(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list providers")
	}

	return providers, nil
}

// GetProvider loads a provider's public profile.
func (srv *providerService) GetProvider(ctx context.Context, providerID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrProviderNotFound
		}

		return nil, errors.Wrap(err, "failed to find provider")
	}

	if user.ProviderProfile == nil {
		return nil, domainerrors.ErrProviderNotFound
	}

	return user, nil
}

// NearbyProviders returns providers within the given radius of a point, nearest first.
// The directory is small enough to filter in memory; providers without
// coordinates are skipped.
func (srv *providerService) NearbyProviders(ctx context.Context, input *usecase.NearbyProvidersInput) ([]*usecase.NearbyProvider, error) {
	radiusKm := input.RadiusKm
	if radiusKm <= 0 {
		radiusKm = defaultNearbyRadiusKm
	}

	providers, err := srv.userRepo.ListProviders(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list providers")
	}

	origin := orb.Point{input.Longitude, input.Latitude}

	nearby := make([]*usecase.NearbyProvider, 0, len(providers))
	for _, provider := range providers {
		profile := provider.ProviderProfile
		if profile == nil || (profile.Latitude == 0 && profile.Longitude == 0) {
			continue
		}

		location := orb.Point{profile.Longitude, profile.Latitude}
		distanceKm := geo.Distance(origin, location) / 1000.0
		if distanceKm > radiusKm {
			continue
		}

		nearby = append(nearby, &usecase.NearbyProvider{
			User:       provider,
			DistanceKm: distanceKm,
		})
	}

	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})

	srv.log(ctx).Debug("Nearby provider search completed",
		slog.Float64("radiusKm", radiusKm),
		slog.Int("matches", len(nearby)))

	return nearby, nil
}
