// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the interface for shop order persistence.
type OrderRepository interface {
	// CreateOrder persists a new order together with its items.
	CreateOrder(ctx context.Context, order *entity.Order) error

	// FindOrderByID retrieves an order with its items by row ID.
	FindOrderByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// FindOrderByNumber retrieves an order with its items by public order number.
	FindOrderByNumber(ctx context.Context, number string) (*entity.Order, error)

	// FindOrdersByUser retrieves a customer's orders, newest first.
	FindOrdersByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Order, error)

	// UpdateOrderStatus moves an order to a new fulfilment status.
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error
}
