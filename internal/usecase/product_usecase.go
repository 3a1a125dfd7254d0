package usecase

import (
	"context"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateProductInput defines the data required to list a product in the shop.
type CreateProductInput struct {
	Name        string
	Description string
	Price       int64
	Stock       int
	ImageURL    string
}

// UpdateProductInput defines the editable fields of a product.
type UpdateProductInput struct {
	Name        string
	Description string
	Price       int64
	Stock       int
	ImageURL    string
}

// ProductUsecase defines the interface for shop product operations.
type ProductUsecase interface {
	// CreateProduct lists a new product owned by the provider.
	CreateProduct(ctx context.Context, providerID uuid.UUID, input *CreateProductInput) (*entity.Product, error)

	// GetProduct loads a single product.
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// ListProducts lists shop products, newest first.
	ListProducts(ctx context.Context, limit, offset int) ([]*entity.Product, error)

	// ListProviderProducts lists all products sold by a provider.
	ListProviderProducts(ctx context.Context, providerID uuid.UUID) ([]*entity.Product, error)

	// UpdateProduct edits a product. Only the owning provider may edit.
	UpdateProduct(ctx context.Context, providerID, productID uuid.UUID, input *UpdateProductInput) error

	// DeleteProduct removes a product. Only the owning provider may delete.
	DeleteProduct(ctx context.Context, providerID, productID uuid.UUID) error
}
