package impl

import (
	"context"
	"log/slog"

	deliverycontext "bazaar/internal/delivery/context"
	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/domain/service"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	orderRepo     repository.OrderRepository
	qrcodeService service.QRCodeService
	logger        *slog.Logger
}

// OrderServiceParams holds dependencies for orderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	OrderRepo     repository.OrderRepository
	QRCodeService service.QRCodeService
	Logger        *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		orderRepo:     params.OrderRepo,
		qrcodeService: params.QRCodeService,
		logger:        params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListOrders lists the user's orders, newest first.
func (srv *orderService) ListOrders(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Order, error) {
	limit, offset = clampPage(limit, offset)

	orders, err := srv.orderRepo.FindOrdersByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// GetOrder loads one of the user's orders by row ID.
func (srv *orderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	// Another user's order reads as not found rather than forbidden, so order
	// row IDs are not probeable.
	if order.UserID != userID {
		return nil, domainerrors.ErrOrderNotFound
	}

	return order, nil
}

// GetOrderByNumber loads one of the user's orders by public order number.
func (srv *orderService) GetOrderByNumber(ctx context.Context, userID uuid.UUID, number string) (*entity.Order, error) {
	order, err := srv.orderRepo.FindOrderByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	if order.UserID != userID {
		return nil, domainerrors.ErrOrderNotFound
	}

	return order, nil
}

// GetOrderReceipt renders a scannable QR receipt for one of the user's orders.
func (srv *orderService) GetOrderReceipt(ctx context.Context, userID, orderID uuid.UUID) ([]byte, error) {
	order, err := srv.GetOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrcodeService.GenerateOrderQR(order.Number, order.Total)
	if err != nil {
		srv.log(ctx).Error("Failed to generate receipt QR code",
			slog.Any("error", err),
			slog.String("orderNumber", order.Number))

		return nil, errors.Wrap(err, "failed to generate receipt")
	}

	return png, nil
}
