package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	mockRepo "bazaar/internal/mocks/repository"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// catalogServiceFixtures holds all test dependencies for catalog service tests.
type catalogServiceFixtures struct {
	service     usecase.CatalogUsecase
	catalogRepo *mockRepo.MockCatalogRepository
	userRepo    *mockRepo.MockUserRepository
}

func createTestCatalogService(t *testing.T) catalogServiceFixtures {
	f := catalogServiceFixtures{
		catalogRepo: mockRepo.NewMockCatalogRepository(t),
		userRepo:    mockRepo.NewMockUserRepository(t),
	}

	f.service = NewCatalogService(CatalogServiceParams{
		CatalogRepo: f.catalogRepo,
		UserRepo:    f.userRepo,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return f
}

func TestCatalogService_CreateService_RequiresProviderProfile(t *testing.T) {
	f := createTestCatalogService(t)
	ctx := context.Background()
	userID := uuid.New()

	f.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, CustomerProfile: &entity.CustomerProfile{UserID: userID}}, nil)

	_, err := f.service.CreateService(ctx, userID, &usecase.CreateServiceInput{
		CategoryID: uuid.New(),
		Title:      "Tap repair",
		Price:      499,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestCatalogService_CreateService_Success(t *testing.T) {
	f := createTestCatalogService(t)
	ctx := context.Background()
	providerID := uuid.New()
	categoryID := uuid.New()

	f.userRepo.On("FindByID", ctx, providerID).
		Return(&entity.User{ID: providerID, ProviderProfile: &entity.ProviderProfile{UserID: providerID}}, nil)
	f.catalogRepo.On("FindCategoryByID", ctx, categoryID).
		Return(&entity.Category{ID: categoryID, Name: "Plumbing", Slug: "plumbing"}, nil)
	f.catalogRepo.On("CreateService", ctx, mock.AnythingOfType("*entity.ServiceListing")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.ServiceListing).ID = uuid.New()
		}).
		Return(nil)

	listing, err := f.service.CreateService(ctx, providerID, &usecase.CreateServiceInput{
		CategoryID:  categoryID,
		Title:       "Tap repair",
		Description: "Fix leaky taps",
		Price:       499,
		DurationMin: 60,
	})

	require.NoError(t, err)
	assert.True(t, listing.Active)
	assert.Equal(t, providerID, listing.ProviderID)
}

func TestCatalogService_CreateService_UnknownCategory(t *testing.T) {
	f := createTestCatalogService(t)
	ctx := context.Background()
	providerID := uuid.New()
	categoryID := uuid.New()

	f.userRepo.On("FindByID", ctx, providerID).
		Return(&entity.User{ID: providerID, ProviderProfile: &entity.ProviderProfile{UserID: providerID}}, nil)
	f.catalogRepo.On("FindCategoryByID", ctx, categoryID).
		Return(nil, repository.ErrCategoryNotFound)

	_, err := f.service.CreateService(ctx, providerID, &usecase.CreateServiceInput{
		CategoryID: categoryID,
		Title:      "Tap repair",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrCategoryNotFound))
}

func TestCatalogService_UpdateService_OwnershipEnforced(t *testing.T) {
	f := createTestCatalogService(t)
	ctx := context.Background()
	serviceID := uuid.New()

	f.catalogRepo.On("FindServiceByID", ctx, serviceID).
		Return(&entity.ServiceListing{ID: serviceID, ProviderID: uuid.New()}, nil)

	err := f.service.UpdateService(ctx, uuid.New(), serviceID, &usecase.UpdateServiceInput{Title: "New title"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestCatalogService_DeleteService_Success(t *testing.T) {
	f := createTestCatalogService(t)
	ctx := context.Background()
	providerID := uuid.New()
	serviceID := uuid.New()

	f.catalogRepo.On("FindServiceByID", ctx, serviceID).
		Return(&entity.ServiceListing{ID: serviceID, ProviderID: providerID}, nil)
	f.catalogRepo.On("DeleteService", ctx, serviceID).Return(nil)

	err := f.service.DeleteService(ctx, providerID, serviceID)

	require.NoError(t, err)
}

func TestCatalogService_GetCategoryBySlug_NotFound(t *testing.T) {
	f := createTestCatalogService(t)
	ctx := context.Background()

	f.catalogRepo.On("FindCategoryBySlug", ctx, "nope").
		Return(nil, repository.ErrCategoryNotFound)

	_, err := f.service.GetCategoryBySlug(ctx, "nope")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrCategoryNotFound))
}

func TestCatalogService_SearchServices_ClampsPaging(t *testing.T) {
	f := createTestCatalogService(t)
	ctx := context.Background()

	f.catalogRepo.On("SearchServices", ctx, "plumb", maxPageSize, 0).
		Return([]*entity.ServiceListing{}, nil)

	_, err := f.service.SearchServices(ctx, &usecase.SearchServicesInput{Query: "plumb", Limit: 1000, Offset: -3})

	require.NoError(t, err)
}
