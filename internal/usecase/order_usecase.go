package usecase

import (
	"context"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderUsecase defines the interface for reading placed orders.
type OrderUsecase interface {
	// ListOrders lists the user's orders, newest first.
	ListOrders(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Order, error)

	// GetOrder loads one of the user's orders by row ID.
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*entity.Order, error)

	// GetOrderByNumber loads one of the user's orders by public order number.
	GetOrderByNumber(ctx context.Context, userID uuid.UUID, number string) (*entity.Order, error)

	// GetOrderReceipt renders a scannable QR receipt for one of the user's orders.
	GetOrderReceipt(ctx context.Context, userID, orderID uuid.UUID) ([]byte, error)
}
