// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for product persistence.
var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrInsufficientStock is returned when a stock decrement would go below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ProductRepository defines the interface for shop product persistence.
type ProductRepository interface {
	// CreateProduct persists a new product.
	CreateProduct(ctx context.Context, product *entity.Product) error

	// FindProductByID retrieves a product by its unique ID.
	FindProductByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// ListProducts retrieves products, newest first.
	ListProducts(ctx context.Context, limit, offset int) ([]*entity.Product, error)

	// FindProductsByProvider retrieves all products sold by a provider.
	FindProductsByProvider(ctx context.Context, providerID uuid.UUID) ([]*entity.Product, error)

	// UpdateProduct modifies an existing product.
	UpdateProduct(ctx context.Context, product *entity.Product) error

	// DecrementStock atomically reduces stock by quantity.
	// Returns ErrInsufficientStock when fewer than quantity units remain.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error

	// DeleteProduct removes a product.
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}
