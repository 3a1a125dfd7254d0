// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// catalogRepository implements the repository.CatalogRepository interface.
type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository is the constructor for catalogRepository.
func NewCatalogRepository(db *gorm.DB) repository.CatalogRepository {
	return &catalogRepository{
		db: db,
	}
}

// ListCategories retrieves all categories ordered by name.
func (repo *catalogRepository) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	var categoryModels []*model.CategoryModel

	if err := repo.db.WithContext(ctx).
		Order("name ASC").
		Find(&categoryModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	categories := make([]*entity.Category, 0, len(categoryModels))
	for _, categoryM := range categoryModels {
		categories = append(categories, toCategoryDomain(categoryM))
	}

	return categories, nil
}

// FindCategoryByID retrieves a category by its unique ID.
func (repo *catalogRepository) FindCategoryByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var categoryM model.CategoryModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&categoryM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find category by ID")
	}

	return toCategoryDomain(&categoryM), nil
}

// FindCategoryBySlug retrieves a category by its URL slug.
func (repo *catalogRepository) FindCategoryBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	var categoryM model.CategoryModel

	if err := repo.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&categoryM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find category by slug")
	}

	return toCategoryDomain(&categoryM), nil
}

// CreateService persists a new service listing.
func (repo *catalogRepository) CreateService(ctx context.Context, listing *entity.ServiceListing) error {
	listingM := fromServiceListingDomain(listing)

	if err := repo.db.WithContext(ctx).Create(listingM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrCategoryNotFound
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required listing information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create service listing")
	}

	// Update the entity with generated values
	listing.ID = listingM.ID
	listing.CreatedAt = listingM.CreatedAt
	listing.UpdatedAt = listingM.UpdatedAt

	return nil
}

// FindServiceByID retrieves a service listing by its unique ID.
func (repo *catalogRepository) FindServiceByID(ctx context.Context, id uuid.UUID) (*entity.ServiceListing, error) {
	var listingM model.ServiceListingModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&listingM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrServiceNotFound
		}

		return nil, errors.Wrap(err, "failed to find service listing by ID")
	}

	return toServiceListingDomain(&listingM), nil
}

// FindServicesByCategory retrieves active listings in a category.
func (repo *catalogRepository) FindServicesByCategory(ctx context.Context, categoryID uuid.UUID, limit, offset int) ([]*entity.ServiceListing, error) {
	var listingModels []*model.ServiceListingModel

	if err := repo.db.WithContext(ctx).
		Where("category_id = ? AND active = ?", categoryID, true).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&listingModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find services by category")
	}

	return toServiceListingDomains(listingModels), nil
}

// FindServicesByProvider retrieves all listings owned by a provider, including inactive ones.
func (repo *catalogRepository) FindServicesByProvider(ctx context.Context, providerID uuid.UUID) ([]*entity.ServiceListing, error) {
	var listingModels []*model.ServiceListingModel

	if err := repo.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("created_at DESC").
		Find(&listingModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find services by provider")
	}

	return toServiceListingDomains(listingModels), nil
}

// SearchServices retrieves active listings whose title or description matches the query.
func (repo *catalogRepository) SearchServices(ctx context.Context, query string, limit, offset int) ([]*entity.ServiceListing, error) {
	var listingModels []*model.ServiceListingModel

	pattern := "%" + query + "%"

	if err := repo.db.WithContext(ctx).
		Where("active = ? AND (title ILIKE ? OR description ILIKE ?)", true, pattern, pattern).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&listingModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to search service listings")
	}

	return toServiceListingDomains(listingModels), nil
}

// UpdateService modifies an existing service listing.
func (repo *catalogRepository) UpdateService(ctx context.Context, listing *entity.ServiceListing) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ServiceListingModel{}).
		Where("id = ?", listing.ID).
		Updates(map[string]any{
			"title":        listing.Title,
			"description":  listing.Description,
			"price":        listing.Price,
			"duration_min": listing.DurationMin,
			"image_url":    listing.ImageURL,
			"active":       listing.Active,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update service listing")
	}
	if result.RowsAffected == 0 {
		return repository.ErrServiceNotFound
	}

	return nil
}

// DeleteService removes a service listing.
func (repo *catalogRepository) DeleteService(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ServiceListingModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete service listing")
	}
	if result.RowsAffected == 0 {
		return repository.ErrServiceNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toCategoryDomain converts a GORM CategoryModel to a domain Category entity.
func toCategoryDomain(data *model.CategoryModel) *entity.Category {
	if data == nil {
		return nil
	}

	return &entity.Category{
		ID:        data.ID,
		Name:      data.Name,
		Slug:      data.Slug,
		Icon:      data.Icon,
		CreatedAt: data.CreatedAt,
	}
}

// toServiceListingDomain converts a GORM ServiceListingModel to a domain ServiceListing entity.
func toServiceListingDomain(data *model.ServiceListingModel) *entity.ServiceListing {
	if data == nil {
		return nil
	}

	return &entity.ServiceListing{
		ID:          data.ID,
		ProviderID:  data.ProviderID,
		CategoryID:  data.CategoryID,
		Title:       data.Title,
		Description: data.Description,
		Price:       data.Price,
		DurationMin: data.DurationMin,
		ImageURL:    data.ImageURL,
		Active:      data.Active,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func toServiceListingDomains(data []*model.ServiceListingModel) []*entity.ServiceListing {
	listings := make([]*entity.ServiceListing, 0, len(data))
	for _, listingM := range data {
		listings = append(listings, toServiceListingDomain(listingM))
	}

	return listings
}

// fromServiceListingDomain converts a domain ServiceListing entity to a GORM ServiceListingModel.
func fromServiceListingDomain(data *entity.ServiceListing) *model.ServiceListingModel {
	if data == nil {
		return nil
	}

	return &model.ServiceListingModel{
		ID:          data.ID,
		ProviderID:  data.ProviderID,
		CategoryID:  data.CategoryID,
		Title:       data.Title,
		Description: data.Description,
		Price:       data.Price,
		DurationMin: data.DurationMin,
		ImageURL:    data.ImageURL,
		Active:      data.Active,
	}
}
