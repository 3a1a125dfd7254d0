package impl

import (
	"context"
	"log/slog"

	deliverycontext "bazaar/internal/delivery/context"
	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	catalogRepo repository.CatalogRepository
	userRepo    repository.UserRepository
	logger      *slog.Logger
}

// CatalogServiceParams holds dependencies for catalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	CatalogRepo repository.CatalogRepository
	UserRepo    repository.UserRepository
	Logger      *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		catalogRepo: params.CatalogRepo,
		userRepo:    params.UserRepo,
		logger:      params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// clampPage normalizes limit/offset into sane bounds.
func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	return limit, offset
}

// ListCategories returns all marketplace categories.
func (srv *catalogService) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	categories, err := srv.catalogRepo.ListCategories(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}

// GetCategoryBySlug resolves a category from its URL slug.
func (srv *catalogService) GetCategoryBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	category, err := srv.catalogRepo.FindCategoryBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, domainerrors.ErrCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find category")
	}

	return category, nil
}

// CreateService publishes a new listing owned by the provider.
func (srv *catalogService) CreateService(ctx context.Context, providerID uuid.UUID, input *usecase.CreateServiceInput) (*entity.ServiceListing, error) {
	srv.log(ctx).Info("Creating service listing", slog.Any("providerID", providerID), slog.String("title", input.Title))

	if err := srv.requireProvider(ctx, providerID); err != nil {
		return nil, err
	}

	if _, err := srv.catalogRepo.FindCategoryByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, domainerrors.ErrCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find category")
	}

	listing := &entity.ServiceListing{
		ProviderID:  providerID,
		CategoryID:  input.CategoryID,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		DurationMin: input.DurationMin,
		ImageURL:    input.ImageURL,
		Active:      true,
	}

	if err := srv.catalogRepo.CreateService(ctx, listing); err != nil {
		srv.log(ctx).Error("Failed to create service listing", slog.Any("error", err), slog.Any("providerID", providerID))

		return nil, errors.Wrap(err, "failed to create service listing")
	}

	return listing, nil
}

// GetService loads a single listing.
func (srv *catalogService) GetService(ctx context.Context, id uuid.UUID) (*entity.ServiceListing, error) {
	listing, err := srv.catalogRepo.FindServiceByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrServiceNotFound) {
			return nil, domainerrors.ErrServiceNotFound
		}

		return nil, errors.Wrap(err, "failed to find service listing")
	}

	return listing, nil
}

// BrowseServices lists active listings in a category.
func (srv *catalogService) BrowseServices(ctx context.Context, input *usecase.BrowseServicesInput) ([]*entity.ServiceListing, error) {
	limit, offset := clampPage(input.Limit, input.Offset)

	listings, err := srv.catalogRepo.FindServicesByCategory(ctx, input.CategoryID, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to browse services")
	}

	return listings, nil
}

// ListProviderServices lists all of a provider's own listings, including inactive ones.
func (srv *catalogService) ListProviderServices(ctx context.Context, providerID uuid.UUID) ([]*entity.ServiceListing, error) {
	listings, err := srv.catalogRepo.FindServicesByProvider(ctx, providerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list provider services")
	}

	return listings, nil
}

// SearchServices finds active listings matching a free-text query.
func (srv *catalogService) SearchServices(ctx context.Context, input *usecase.SearchServicesInput) ([]*entity.ServiceListing, error) {
	limit, offset := clampPage(input.Limit, input.Offset)

	listings, err := srv.catalogRepo.SearchServices(ctx, input.Query, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search services")
	}

	return listings, nil
}

// UpdateService edits a listing. Only the owning provider may edit.
func (srv *catalogService) UpdateService(ctx context.Context, providerID, serviceID uuid.UUID, input *usecase.UpdateServiceInput) error {
	listing, err := srv.loadOwnedService(ctx, providerID, serviceID)
	if err != nil {
		return err
	}

	listing.Title = input.Title
	listing.Description = input.Description
	listing.Price = input.Price
	listing.DurationMin = input.DurationMin
	listing.ImageURL = input.ImageURL
	listing.Active = input.Active

	if err := srv.catalogRepo.UpdateService(ctx, listing); err != nil {
		srv.log(ctx).Error("Failed to update service listing", slog.Any("error", err), slog.Any("serviceID", serviceID))

		return errors.Wrap(err, "failed to update service listing")
	}

	return nil
}

// DeleteService removes a listing. Only the owning provider may delete.
func (srv *catalogService) DeleteService(ctx context.Context, providerID, serviceID uuid.UUID) error {
	if _, err := srv.loadOwnedService(ctx, providerID, serviceID); err != nil {
		return err
	}

	if err := srv.catalogRepo.DeleteService(ctx, serviceID); err != nil {
		srv.log(ctx).Error("Failed to delete service listing", slog.Any("error", err), slog.Any("serviceID", serviceID))

		return errors.Wrap(err, "failed to delete service listing")
	}

	return nil
}

// loadOwnedService loads a listing and verifies the caller owns it.
func (srv *catalogService) loadOwnedService(ctx context.Context, providerID, serviceID uuid.UUID) (*entity.ServiceListing, error) {
	listing, err := srv.catalogRepo.FindServiceByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, repository.ErrServiceNotFound) {
			return nil, domainerrors.ErrServiceNotFound
		}

		return nil, errors.Wrap(err, "failed to find service listing")
	}

	if listing.ProviderID != providerID {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "listing belongs to another provider")
	}

	return listing, nil
}

// requireProvider verifies the user holds a provider profile.
func (srv *catalogService) requireProvider(ctx context.Context, userID uuid.UUID) error {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "failed to load user")
	}

	if user.ProviderProfile == nil {
		return errors.Wrap(domainerrors.ErrForbidden, "provider profile required")
	}

	return nil
}
