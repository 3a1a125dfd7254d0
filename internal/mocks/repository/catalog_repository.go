package repository

import (
	"context"
	"testing"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCatalogRepository mocks repository.CatalogRepository.
type MockCatalogRepository struct {
	mock.Mock
}

// NewMockCatalogRepository creates the mock and verifies expectations at test end.
func NewMockCatalogRepository(t *testing.T) *MockCatalogRepository {
	m := &MockCatalogRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCatalogRepository) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]*entity.Category)

	return categories, args.Error(1)
}

func (m *MockCatalogRepository) FindCategoryByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	args := m.Called(ctx, id)
	category, _ := args.Get(0).(*entity.Category)

	return category, args.Error(1)
}

func (m *MockCatalogRepository) FindCategoryBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	args := m.Called(ctx, slug)
	category, _ := args.Get(0).(*entity.Category)

	return category, args.Error(1)
}

func (m *MockCatalogRepository) CreateService(ctx context.Context, listing *entity.ServiceListing) error {
	args := m.Called(ctx, listing)

	return args.Error(0)
}

func (m *MockCatalogRepository) FindServiceByID(ctx context.Context, id uuid.UUID) (*entity.ServiceListing, error) {
	args := m.Called(ctx, id)
	listing, _ := args.Get(0).(*entity.ServiceListing)

	return listing, args.Error(1)
}

func (m *MockCatalogRepository) FindServicesByCategory(ctx context.Context, categoryID uuid.UUID, limit, offset int) ([]*entity.ServiceListing, error) {
	args := m.Called(ctx, categoryID, limit, offset)
	listings, _ := args.Get(0).([]*entity.ServiceListing)

	return listings, args.Error(1)
}

func (m *MockCatalogRepository) FindServicesByProvider(ctx context.Context, providerID uuid.UUID) ([]*entity.ServiceListing, error) {
	args := m.Called(ctx, providerID)
	listings, _ := args.Get(0).([]*entity.ServiceListing)

	return listings, args.Error(1)
}

func (m *MockCatalogRepository) SearchServices(ctx context.Context, query string, limit, offset int) ([]*entity.ServiceListing, error) {
	args := m.Called(ctx, query, limit, offset)
	listings, _ := args.Get(0).([]*entity.ServiceListing)

	return listings, args.Error(1)
}

func (m *MockCatalogRepository) UpdateService(ctx context.Context, listing *entity.ServiceListing) error {
	args := m.Called(ctx, listing)

	return args.Error(0)
}

func (m *MockCatalogRepository) DeleteService(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}
