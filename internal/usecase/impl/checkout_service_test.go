package impl

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"bazaar/config"
	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/infra/payment"
	"bazaar/internal/infra/session"
	mockRepo "bazaar/internal/mocks/repository"
	mockSvc "bazaar/internal/mocks/service"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// checkoutServiceFixtures holds all test dependencies for checkout service tests.
// The session store and payment processors are the real implementations; only
// persistence is mocked.
type checkoutServiceFixtures struct {
	service          usecase.CheckoutUsecase
	store            *session.MemoryStore
	productRepo      *mockRepo.MockProductRepository
	notificationRepo *mockRepo.MockNotificationRepository
	txManager        *mockRepo.MockTransactionManager
	factory          *mockRepo.MockRepositoryFactory
	orderRepo        *mockRepo.MockOrderRepository
	realtimeNotifier *mockSvc.MockRealtimeNotifier
}

func createTestCheckoutService(t *testing.T) checkoutServiceFixtures {
	f := checkoutServiceFixtures{
		store:            session.NewMemoryStore(30 * time.Minute),
		productRepo:      mockRepo.NewMockProductRepository(t),
		notificationRepo: mockRepo.NewMockNotificationRepository(t),
		txManager:        mockRepo.NewMockTransactionManager(t),
		factory:          mockRepo.NewMockRepositoryFactory(t),
		orderRepo:        mockRepo.NewMockOrderRepository(t),
		realtimeNotifier: mockSvc.NewMockRealtimeNotifier(t),
	}

	f.service = NewCheckoutService(CheckoutServiceParams{
		SessionStore:     f.store,
		ProductRepo:      f.productRepo,
		NotificationRepo: f.notificationRepo,
		TxManager:        f.txManager,
		Authorizers: payment.NewRegistry(
			payment.NewUPIAuthorizer(0),
			payment.NewCardAuthorizer(0),
			payment.NewCODAuthorizer(0),
		),
		RealtimeNotifier: f.realtimeNotifier,
		Config: &config.Config{
			Checkout: &config.CheckoutConfig{
				DeliveryFee:           49,
				FreeShippingThreshold: 999,
			},
		},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return f
}

func (f checkoutServiceFixtures) stubProduct(ctx context.Context, id uuid.UUID, name string, price int64, stock int) {
	f.productRepo.On("FindProductByID", ctx, id).
		Return(&entity.Product{ID: id, Name: name, Price: price, Stock: stock}, nil)
}

// walkToConfirm drives a session through cart, address, and payment.
func (f checkoutServiceFixtures) walkToConfirm(t *testing.T, ctx context.Context, userID uuid.UUID, productID uuid.UUID, details entity.PaymentDetails) *usecase.CheckoutView {
	t.Helper()

	_, err := f.service.StartCheckout(ctx, userID)
	require.NoError(t, err)

	_, err = f.service.SubmitCart(ctx, userID, []usecase.CartItemInput{{ProductID: productID, Quantity: 2}})
	require.NoError(t, err)

	_, err = f.service.SubmitAddress(ctx, userID, validAddress())
	require.NoError(t, err)

	view, err := f.service.SubmitPayment(ctx, userID, details)
	require.NoError(t, err)
	require.Equal(t, entity.StepConfirm, view.Step)

	return view
}

// expectOrderCommit wires the transactional stock decrement and order insert,
// plus the best-effort notifications that follow a placed order.
func (f checkoutServiceFixtures) expectOrderCommit(ctx context.Context, userID, productID uuid.UUID, quantity int) {
	f.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Return(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(f.factory)
		})
	f.factory.On("ProductRepo").Return(f.productRepo)
	f.factory.On("OrderRepo").Return(f.orderRepo)
	f.productRepo.On("DecrementStock", ctx, productID, quantity).Return(nil)
	f.orderRepo.On("CreateOrder", ctx, mock.AnythingOfType("*entity.Order")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Order).ID = uuid.New()
		}).
		Return(nil)
	f.notificationRepo.On("CreateNotification", ctx, mock.AnythingOfType("*entity.Notification")).Return(nil)
	f.realtimeNotifier.On("NotifyUser", userID, mock.AnythingOfType("service.RealtimeEvent")).Return()
}

func validAddress() entity.ShippingAddress {
	return entity.ShippingAddress{
		FullName: "Asha Verma",
		Phone:    "9900112233",
		Line1:    "14 MG Road",
		City:     "Jaipur",
		State:    "RJ",
		Pincode:  "302001",
	}
}

func TestCheckoutService_StartCheckout_OpensAtCartStep(t *testing.T) {
	f := createTestCheckoutService(t)
	ctx := context.Background()
	userID := uuid.New()

	view, err := f.service.StartCheckout(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, entity.StepCart, view.Step)
	assert.True(t, view.Cart.IsEmpty())
}

func TestCheckoutService_GetCheckout_NoSession(t *testing.T) {
	f := createTestCheckoutService(t)

	_, err := f.service.GetCheckout(context.Background(), uuid.New())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrCheckoutSessionNotFound))
}

func TestCheckoutService_SubmitCart_PricesFromProductData(t *testing.T) {
	f := createTestCheckoutService(t)
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	f.stubProduct(ctx, productID, "Clay kulhad set", 250, 10)

	_, err := f.service.StartCheckout(ctx, userID)
	require.NoError(t, err)

	view, err := f.service.SubmitCart(ctx, userID, []usecase.CartItemInput{{ProductID: productID, Quantity: 3}})

	require.NoError(t, err)
	assert.Equal(t, entity.StepAddress, view.Step)
	require.Len(t, view.Cart.Items, 1)
	assert.Equal(t, "Clay kulhad set", view.Cart.Items[0].Name)
	assert.Equal(t, int64(250), view.Cart.Items[0].Price)
	assert.Equal(t, int64(750), view.Totals.Subtotal)
}

func TestCheckoutService_SubmitCart_InsufficientStock(t *testing.T) {
	f := createTestCheckoutService(t)
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	f.stubProduct(ctx, productID, "Clay kulhad set", 250, 1)

	_, err := f.service.StartCheckout(ctx, userID)
	require.NoError(t, err)

	_, err = f.service.SubmitCart(ctx, userID, []usecase.CartItemInput{{ProductID: productID, Quantity: 3}})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrOutOfStock))
}

func TestCheckoutService_DeliveryFeeBoundary(t *testing.T) {
	f := createTestCheckoutService(t)
	ctx := context.Background()
	belowID := uuid.New()
	atID := uuid.New()

	f.stubProduct(ctx, belowID, "Below threshold", 998, 10)
	f.stubProduct(ctx, atID, "At threshold", 999, 10)

	// Just below the threshold the flat fee applies.
	userBelow := uuid.New()
	_, err := f.service.StartCheckout(ctx, userBelow)
	require.NoError(t, err)
	view, err := f.service.SubmitCart(ctx, userBelow, []usecase.CartItemInput{{ProductID: belowID, Quantity: 1}})
	require.NoError(t, err)
	assert.Equal(t, int64(49), view.Totals.DeliveryFee)
	assert.Equal(t, int64(1047), view.Totals.Total)

	// At the threshold shipping is free.
	userAt := uuid.New()
	_, err = f.service.StartCheckout(ctx, userAt)
	require.NoError(t, err)
	view, err = f.service.SubmitCart(ctx, userAt, []usecase.CartItemInput{{ProductID: atID, Quantity: 1}})
	require.NoError(t, err)
	assert.Equal(t, int64(0), view.Totals.DeliveryFee)
	assert.Equal(t, int64(999), view.Totals.Total)
}

func TestCheckoutService_StepConflict(t *testing.T) {
	f := createTestCheckoutService(t)
	ctx := context.Background()
	userID := uuid.New()

	_, err := f.service.StartCheckout(ctx, userID)
	require.NoError(t, err)

	// Address before cart is a step conflict.
	_, err = f.service.SubmitAddress(ctx, userID, validAddress())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrCheckoutStepConflict))
}

func TestCheckoutService_InvalidAddressRejected(t *testing.T) {
	f := createTestCheckoutService(t)
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	f.stubProduct(ctx, productID, "Clay kulhad set", 250, 10)

	_, err := f.service.StartCheckout(ctx, userID)
	require.NoError(t, err)
	_, err = f.service.SubmitCart(ctx, userID, []usecase.CartItemInput{{ProductID: productID, Quantity: 1}})
	require.NoError(t, err)

	addr := validAddress()
	addr.Pincode = "30200" // five digits

	_, err = f.service.SubmitAddress(ctx, userID, addr)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrCheckoutInputInvalid))
}

func TestCheckoutService_BackKeepsEnteredValues(t *testing.T) {
	f := createTestCheckoutService(t)
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	f.stubProduct(ctx, productID, "Clay kulhad set", 250, 10)

	f.walkToConfirm(t, ctx, userID, productID, entity.PaymentDetails{Method: entity.PaymentCOD})

	view, err := f.service.Back(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, entity.StepPayment, view.Step)

	view, err = f.service.Back(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, entity.StepAddress, view.Step)
	assert.Equal(t, "Asha Verma", view.Address.FullName)
	require.Len(t, view.Cart.Items, 1)

	view, err = f.service.Back(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, entity.StepCart, view.Step)

	_, err = f.service.Back(ctx, userID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrCheckoutStepConflict))
}

func TestCheckoutService_Confirm_CODCompletesImmediately(t *testing.T) {
	f := createTestCheckoutService(t)
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	f.stubProduct(ctx, productID, "Clay kulhad set", 250, 10)
	f.walkToConfirm(t, ctx, userID, productID, entity.PaymentDetails{Method: entity.PaymentCOD})
	f.expectOrderCommit(ctx, userID, productID, 2)

	view, err := f.service.Confirm(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, entity.StepSuccess, view.Step)
	assert.True(t, strings.HasPrefix(view.OrderID, "JGR-"))
	assert.Equal(t, int64(549), view.Totals.Total) // 500 subtotal + 49 fee
	assert.True(t, view.Cart.IsEmpty())
}

func TestCheckoutService_Confirm_AfterBackIsRejectedWithoutCommit(t *testing.T) {
	f := createTestCheckoutService(t)
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	f.stubProduct(ctx, productID, "Clay kulhad set", 250, 10)
	f.walkToConfirm(t, ctx, userID, productID, entity.PaymentDetails{Method: entity.PaymentCOD})

	view, err := f.service.Back(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, entity.StepPayment, view.Step)

	// Confirm from the payment step must fail without touching stock or orders.
	_, err = f.service.Confirm(ctx, userID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrCheckoutStepConflict))
	f.txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
	f.orderRepo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)

	// The session stays where it was.
	view, err = f.service.GetCheckout(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, entity.StepPayment, view.Step)
}

func TestCheckoutService_Confirm_RepeatAfterSuccessPlacesNoSecondOrder(t *testing.T) {
	f := createTestCheckoutService(t)
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	f.stubProduct(ctx, productID, "Clay kulhad set", 250, 10)
	f.walkToConfirm(t, ctx, userID, productID, entity.PaymentDetails{Method: entity.PaymentCOD})
	f.expectOrderCommit(ctx, userID, productID, 2)

	view, err := f.service.Confirm(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, entity.StepSuccess, view.Step)

	// A replayed confirm must not produce a second order from the cleared cart.
	_, err = f.service.Confirm(ctx, userID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrCheckoutStepConflict))
	f.orderRepo.AssertNumberOfCalls(t, "CreateOrder", 1)
}

func TestCheckoutService_Verify_UPIDeclinedPIN(t *testing.T) {
	f := createTestCheckoutService(t)
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	f.stubProduct(ctx, productID, "Clay kulhad set", 250, 10)
	f.walkToConfirm(t, ctx, userID, productID, entity.PaymentDetails{Method: entity.PaymentUPI, UPIID: "asha@upi"})

	view, err := f.service.Confirm(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, entity.StepVerify, view.Step)

	_, err = f.service.Verify(ctx, userID, "0000")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrPaymentDeclined))

	// The session stays at verify so the customer can retry.
	view, err = f.service.GetCheckout(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, entity.StepVerify, view.Step)
}

func TestCheckoutService_Verify_CardSuccessCommitsOrder(t *testing.T) {
	f := createTestCheckoutService(t)
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	f.stubProduct(ctx, productID, "Clay kulhad set", 600, 10)
	f.walkToConfirm(t, ctx, userID, productID, entity.PaymentDetails{
		Method:     entity.PaymentCard,
		CardNumber: "4111111111111111",
		CardExpiry: "11/27",
		CardCVV:    "123",
		CardHolder: "Asha Verma",
	})

	view, err := f.service.Confirm(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, entity.StepVerify, view.Step)

	f.expectOrderCommit(ctx, userID, productID, 2)

	view, err = f.service.Verify(ctx, userID, "123456")

	require.NoError(t, err)
	assert.Equal(t, entity.StepSuccess, view.Step)
	assert.Equal(t, int64(1200), view.Totals.Total) // 1200 subtotal, free shipping
}

func TestCheckoutService_Verify_CredentialGuard(t *testing.T) {
	f := createTestCheckoutService(t)
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	f.stubProduct(ctx, productID, "Clay kulhad set", 250, 10)
	f.walkToConfirm(t, ctx, userID, productID, entity.PaymentDetails{Method: entity.PaymentUPI, UPIID: "asha@upi"})

	_, err := f.service.Confirm(ctx, userID)
	require.NoError(t, err)

	// A three digit PIN fails the guard before reaching the processor.
	_, err = f.service.Verify(ctx, userID, "123")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrCheckoutInputInvalid))
}

func TestCheckoutService_Abandon(t *testing.T) {
	f := createTestCheckoutService(t)
	ctx := context.Background()
	userID := uuid.New()

	_, err := f.service.StartCheckout(ctx, userID)
	require.NoError(t, err)

	require.NoError(t, f.service.Abandon(ctx, userID))

	_, err = f.service.GetCheckout(ctx, userID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrCheckoutSessionNotFound))
}
