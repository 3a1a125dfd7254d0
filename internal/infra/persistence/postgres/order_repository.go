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

// orderRepository implements the repository.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

// CreateOrder persists a new order together with its items.
// GORM inserts the item rows through the Items association in the same statement batch.
func (repo *orderRepository) CreateOrder(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("order number already exists")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("invalid user or product reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required order information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	// Update the entity with generated values
	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt
	for i := range orderM.Items {
		if i < len(order.Items) {
			order.Items[i].ID = orderM.Items[i].ID
			order.Items[i].OrderID = orderM.Items[i].OrderID
		}
	}

	return nil
}

// FindOrderByID retrieves an order with its items by row ID.
func (repo *orderRepository) FindOrderByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by ID")
	}

	return toOrderDomain(&orderM), nil
}

// FindOrderByNumber retrieves an order with its items by public order number.
func (repo *orderRepository) FindOrderByNumber(ctx context.Context, number string) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("number = ?", number).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by number")
	}

	return toOrderDomain(&orderM), nil
}

// FindOrdersByUser retrieves a customer's orders, newest first.
func (repo *orderRepository) FindOrdersByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find orders by user")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, nil
}

// UpdateOrderStatus moves an order to a new fulfilment status.
func (repo *orderRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update order status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toOrderDomain converts a GORM OrderModel to a domain Order entity.
func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	items := make([]entity.OrderItem, 0, len(data.Items))
	for _, itemM := range data.Items {
		items = append(items, entity.OrderItem{
			ID:        itemM.ID,
			OrderID:   itemM.OrderID,
			ProductID: itemM.ProductID,
			Name:      itemM.Name,
			Price:     itemM.Price,
			Quantity:  itemM.Quantity,
		})
	}

	return &entity.Order{
		ID:            data.ID,
		Number:        data.Number,
		UserID:        data.UserID,
		Items:         items,
		Subtotal:      data.Subtotal,
		DeliveryFee:   data.DeliveryFee,
		Total:         data.Total,
		PaymentMethod: entity.PaymentMethod(data.PaymentMethod),
		Status:        entity.OrderStatus(data.Status),
		Address: entity.ShippingAddress{
			FullName: data.ShipFullName,
			Phone:    data.ShipPhone,
			Line1:    data.ShipLine1,
			Line2:    data.ShipLine2,
			City:     data.ShipCity,
			State:    data.ShipState,
			Pincode:  data.ShipPincode,
		},
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromOrderDomain converts a domain Order entity to a GORM OrderModel.
func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	items := make([]model.OrderItemModel, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, model.OrderItemModel{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	return &model.OrderModel{
		ID:            data.ID,
		Number:        data.Number,
		UserID:        data.UserID,
		Subtotal:      data.Subtotal,
		DeliveryFee:   data.DeliveryFee,
		Total:         data.Total,
		PaymentMethod: string(data.PaymentMethod),
		Status:        string(data.Status),
		ShipFullName:  data.Address.FullName,
		ShipPhone:     data.Address.Phone,
		ShipLine1:     data.Address.Line1,
		ShipLine2:     data.Address.Line2,
		ShipCity:      data.Address.City,
		ShipState:     data.Address.State,
		ShipPincode:   data.Address.Pincode,
		Items:         items,
	}
}
