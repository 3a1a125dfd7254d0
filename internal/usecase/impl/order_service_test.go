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
	mockSvc "bazaar/internal/mocks/service"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestOrderService(t *testing.T) (usecase.OrderUsecase, *mockRepo.MockOrderRepository, *mockSvc.MockQRCodeService) {
	orderRepo := mockRepo.NewMockOrderRepository(t)
	qrcodeService := mockSvc.NewMockQRCodeService(t)

	service := NewOrderService(OrderServiceParams{
		OrderRepo:     orderRepo,
		QRCodeService: qrcodeService,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return service, orderRepo, qrcodeService
}

func TestOrderService_GetOrder_OtherUsersOrderReadsAsNotFound(t *testing.T) {
	service, orderRepo, _ := createTestOrderService(t)
	ctx := context.Background()
	orderID := uuid.New()

	orderRepo.On("FindOrderByID", ctx, orderID).
		Return(&entity.Order{ID: orderID, UserID: uuid.New()}, nil)

	_, err := service.GetOrder(ctx, uuid.New(), orderID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrOrderNotFound))
}

func TestOrderService_GetOrderByNumber_Success(t *testing.T) {
	service, orderRepo, _ := createTestOrderService(t)
	ctx := context.Background()
	userID := uuid.New()

	orderRepo.On("FindOrderByNumber", ctx, "JGR-00001234").
		Return(&entity.Order{ID: uuid.New(), UserID: userID, Number: "JGR-00001234", Total: 549}, nil)

	order, err := service.GetOrderByNumber(ctx, userID, "JGR-00001234")

	require.NoError(t, err)
	assert.Equal(t, int64(549), order.Total)
}

func TestOrderService_GetOrderReceipt_RendersQR(t *testing.T) {
	service, orderRepo, qrcodeService := createTestOrderService(t)
	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()

	orderRepo.On("FindOrderByID", ctx, orderID).
		Return(&entity.Order{ID: orderID, UserID: userID, Number: "JGR-00001234", Total: 549}, nil)
	qrcodeService.On("GenerateOrderQR", "JGR-00001234", int64(549)).
		Return([]byte{0x89, 0x50, 0x4e, 0x47}, nil)

	png, err := service.GetOrderReceipt(ctx, userID, orderID)

	require.NoError(t, err)
	assert.NotEmpty(t, png)
}

func TestOrderService_ListOrders_RepositoryError(t *testing.T) {
	service, orderRepo, _ := createTestOrderService(t)
	ctx := context.Background()
	userID := uuid.New()

	orderRepo.On("FindOrdersByUser", ctx, userID, defaultPageSize, 0).
		Return(nil, errors.New("connection refused"))

	_, err := service.ListOrders(ctx, userID, 0, 0)

	require.Error(t, err)
}

func TestOrderService_GetOrder_NotFound(t *testing.T) {
	service, orderRepo, _ := createTestOrderService(t)
	ctx := context.Background()
	orderID := uuid.New()

	orderRepo.On("FindOrderByID", ctx, orderID).
		Return(nil, repository.ErrOrderNotFound)

	_, err := service.GetOrder(ctx, uuid.New(), orderID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrOrderNotFound))
}
