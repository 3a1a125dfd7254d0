package impl

import (
	"context"
	"fmt"
	"log/slog"

	"bazaar/config"
	deliverycontext "bazaar/internal/delivery/context"
	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/domain/service"
	"bazaar/internal/infra/payment"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const maxCartQuantityPerItem = 50

// checkoutService implements the CheckoutUsecase interface. Wizard state
// lives in the session store; nothing touches the database until payment
// succeeds, at which point the order and stock decrements commit together.
type checkoutService struct {
	sessionStore     repository.CheckoutSessionStore
	productRepo      repository.ProductRepository
	notificationRepo repository.NotificationRepository
	txManager        repository.TransactionManager
	authorizers      payment.Registry
	realtimeNotifier service.RealtimeNotifier
	pricing          entity.PricingPolicy
	logger           *slog.Logger
}

// CheckoutServiceParams holds dependencies for checkoutService, injected by Fx.
type CheckoutServiceParams struct {
	fx.In

	SessionStore     repository.CheckoutSessionStore
	ProductRepo      repository.ProductRepository
	NotificationRepo repository.NotificationRepository
	TxManager        repository.TransactionManager
	Authorizers      payment.Registry
	RealtimeNotifier service.RealtimeNotifier
	Config           *config.Config
	Logger           *slog.Logger
}

// NewCheckoutService is the constructor for checkoutService.
func NewCheckoutService(params CheckoutServiceParams) usecase.CheckoutUsecase {
	return &checkoutService{
		sessionStore:     params.SessionStore,
		productRepo:      params.ProductRepo,
		notificationRepo: params.NotificationRepo,
		txManager:        params.TxManager,
		authorizers:      params.Authorizers,
		realtimeNotifier: params.RealtimeNotifier,
		pricing: entity.PricingPolicy{
			DeliveryFee:           params.Config.Checkout.DeliveryFee,
			FreeShippingThreshold: params.Config.Checkout.FreeShippingThreshold,
		},
		logger: params.Logger,
	}
}

func (srv *checkoutService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// StartCheckout opens a fresh session, replacing any unfinished one.
func (srv *checkoutService) StartCheckout(ctx context.Context, userID uuid.UUID) (*usecase.CheckoutView, error) {
	session := entity.NewCheckoutSession(userID)
	srv.sessionStore.Put(session)

	srv.log(ctx).Info("Checkout session started",
		slog.Any("userID", userID),
		slog.Any("sessionID", session.ID))

	return srv.view(session), nil
}

// GetCheckout returns the user's current wizard state.
func (srv *checkoutService) GetCheckout(ctx context.Context, userID uuid.UUID) (*usecase.CheckoutView, error) {
	session, err := srv.loadSession(userID)
	if err != nil {
		return nil, err
	}

	return srv.view(session), nil
}

// SubmitCart prices the requested items against live product data and
// advances to the address step. Name and price come from the product row,
// never from the client.
func (srv *checkoutService) SubmitCart(ctx context.Context, userID uuid.UUID, items []usecase.CartItemInput) (*usecase.CheckoutView, error) {
	session, err := srv.loadSession(userID)
	if err != nil {
		return nil, err
	}

	cart, err := srv.priceCart(ctx, items)
	if err != nil {
		return nil, err
	}

	if err := session.SubmitCart(*cart); err != nil {
		return nil, srv.mapGuardError(err)
	}

	srv.sessionStore.Put(session)

	return srv.view(session), nil
}

// SubmitAddress stores a validated shipping address and advances to payment.
func (srv *checkoutService) SubmitAddress(ctx context.Context, userID uuid.UUID, addr entity.ShippingAddress) (*usecase.CheckoutView, error) {
	session, err := srv.loadSession(userID)
	if err != nil {
		return nil, err
	}

	if err := session.SubmitAddress(addr); err != nil {
		return nil, srv.mapGuardError(err)
	}

	srv.sessionStore.Put(session)

	return srv.view(session), nil
}

// SubmitPayment stores validated payment details and advances to confirm.
func (srv *checkoutService) SubmitPayment(ctx context.Context, userID uuid.UUID, details entity.PaymentDetails) (*usecase.CheckoutView, error) {
	session, err := srv.loadSession(userID)
	if err != nil {
		return nil, err
	}

	if err := session.SubmitPayment(details); err != nil {
		return nil, srv.mapGuardError(err)
	}

	srv.sessionStore.Put(session)

	return srv.view(session), nil
}

// Confirm locks in the summary. UPI and card advance to verification; cash
// on delivery captures immediately and completes the order.
func (srv *checkoutService) Confirm(ctx context.Context, userID uuid.UUID) (*usecase.CheckoutView, error) {
	session, err := srv.loadSession(userID)
	if err != nil {
		return nil, err
	}

	// Guard the step before either branch: capture commits the order, and a
	// wrong-step call must fail without side effects.
	if session.Step != entity.StepConfirm {
		return nil, srv.mapGuardError(entity.ErrCheckoutStepMismatch)
	}

	if session.Payment.Method.RequiresVerification() {
		if err := session.BeginVerification(); err != nil {
			return nil, srv.mapGuardError(err)
		}

		srv.sessionStore.Put(session)

		return srv.view(session), nil
	}

	// Cash on delivery takes no credential; capture from the confirm step.
	return srv.capture(ctx, session, "")
}

// Verify authorizes the payment with the supplied credential and completes
// the order on success.
func (srv *checkoutService) Verify(ctx context.Context, userID uuid.UUID, credential string) (*usecase.CheckoutView, error) {
	session, err := srv.loadSession(userID)
	if err != nil {
		return nil, err
	}

	if session.Step != entity.StepVerify {
		return nil, srv.mapGuardError(entity.ErrCheckoutStepMismatch)
	}

	if err := session.Payment.ValidateCredential(credential); err != nil {
		return nil, srv.mapGuardError(err)
	}

	return srv.capture(ctx, session, credential)
}

// Back returns to the previous wizard step, keeping entered values.
func (srv *checkoutService) Back(ctx context.Context, userID uuid.UUID) (*usecase.CheckoutView, error) {
	session, err := srv.loadSession(userID)
	if err != nil {
		return nil, err
	}

	if err := session.Back(); err != nil {
		return nil, srv.mapGuardError(err)
	}

	srv.sessionStore.Put(session)

	return srv.view(session), nil
}

// Abandon discards the user's session. Missing sessions are fine.
func (srv *checkoutService) Abandon(ctx context.Context, userID uuid.UUID) error {
	srv.sessionStore.Delete(userID)
	srv.log(ctx).Info("Checkout session abandoned", slog.Any("userID", userID))

	return nil
}

// capture authorizes the payment and, on success, commits the order row and
// the stock decrements in one transaction before completing the session.
func (srv *checkoutService) capture(ctx context.Context, session *entity.CheckoutSession, credential string) (*usecase.CheckoutView, error) {
	totals := srv.pricing.TotalsFor(session.Cart)

	authorizer, ok := srv.authorizers.ForMethod(string(session.Payment.Method))
	if !ok {
		return nil, domainerrors.ErrCheckoutInputInvalid.WrapMessage(
			fmt.Sprintf("no processor for method %s", session.Payment.Method))
	}

	result, err := authorizer.Authorize(ctx, service.AuthorizationRequest{
		UserID:     session.UserID.String(),
		Amount:     totals.Total,
		Details:    session.Payment,
		Credential: credential,
	})
	if err != nil {
		srv.log(ctx).Error("Payment authorization failed",
			slog.Any("error", err),
			slog.Any("sessionID", session.ID))

		return nil, errors.Wrap(err, "failed to authorize payment")
	}

	if !result.Authorized {
		srv.log(ctx).Warn("Payment declined",
			slog.Any("sessionID", session.ID),
			slog.String("reason", result.Reason))

		return nil, domainerrors.ErrPaymentDeclined.WrapMessage(result.Reason)
	}

	order := &entity.Order{
		Number:        entity.NewOrderNumber(),
		UserID:        session.UserID,
		Items:         orderItemsFromCart(session.Cart),
		Subtotal:      totals.Subtotal,
		DeliveryFee:   totals.DeliveryFee,
		Total:         totals.Total,
		PaymentMethod: session.Payment.Method,
		Status:        entity.OrderPlaced,
		Address:       session.Address,
	}

	err = srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		for _, item := range session.Cart.Items {
			if err := factory.ProductRepo().DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				if errors.Is(err, repository.ErrInsufficientStock) {
					return domainerrors.ErrOutOfStock.WrapMessage(
						fmt.Sprintf("%s is no longer available in the requested quantity", item.Name))
				}
				if errors.Is(err, repository.ErrProductNotFound) {
					return domainerrors.ErrProductNotFound
				}

				return errors.Wrap(err, "failed to reserve stock")
			}
		}

		return factory.OrderRepo().CreateOrder(ctx, order)
	})
	if err != nil {
		// Payment went through but the order could not be written. The
		// simulated processors have no void operation; surface the failure.
		srv.log(ctx).Error("Failed to commit order after capture",
			slog.Any("error", err),
			slog.Any("sessionID", session.ID),
			slog.String("reference", result.Reference))

		return nil, err
	}

	if err := session.Complete(totals.Total, order.Number); err != nil {
		return nil, srv.mapGuardError(err)
	}

	srv.sessionStore.Put(session)

	srv.log(ctx).Info("Order placed",
		slog.Any("userID", session.UserID),
		slog.String("orderNumber", order.Number),
		slog.Int64("total", order.Total),
		slog.String("method", string(order.PaymentMethod)))

	srv.notifyOrderPlaced(ctx, order)

	return srv.view(session), nil
}

// notifyOrderPlaced records the in-app notification and pushes it to the
// customer's live connections. Best effort; the order has already committed.
func (srv *checkoutService) notifyOrderPlaced(ctx context.Context, order *entity.Order) {
	notification := &entity.Notification{
		UserID: order.UserID,
		Kind:   entity.NotificationOrder,
		Title:  "Order placed",
		Body:   fmt.Sprintf("Your order %s has been placed.", order.Number),
		Data: map[string]string{
			"order_id":     order.ID.String(),
			"order_number": order.Number,
		},
	}

	if err := srv.notificationRepo.CreateNotification(ctx, notification); err != nil {
		srv.log(ctx).Error("Failed to persist order notification",
			slog.Any("error", err),
			slog.String("orderNumber", order.Number))
	}

	srv.realtimeNotifier.NotifyUser(order.UserID, service.RealtimeEvent{
		Type: "order_placed",
		Payload: map[string]string{
			"order_number": order.Number,
			"status":       order.Status.String(),
		},
	})
}

// priceCart loads each requested product and snapshots its name and price.
func (srv *checkoutService) priceCart(ctx context.Context, items []usecase.CartItemInput) (*entity.Cart, error) {
	if len(items) == 0 {
		return nil, srv.mapGuardError(entity.ErrEmptyCart)
	}

	cart := &entity.Cart{Items: make([]entity.CartItem, 0, len(items))}
	seen := make(map[uuid.UUID]bool, len(items))

	for _, item := range items {
		if item.Quantity <= 0 || item.Quantity > maxCartQuantityPerItem {
			return nil, domainerrors.ErrCheckoutInputInvalid.WrapMessage("item quantity out of range")
		}
		if seen[item.ProductID] {
			return nil, domainerrors.ErrCheckoutInputInvalid.WrapMessage("duplicate product in cart")
		}
		seen[item.ProductID] = true

		product, err := srv.productRepo.FindProductByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return nil, domainerrors.ErrProductNotFound
			}

			return nil, errors.Wrap(err, "failed to price cart item")
		}

		if !product.InStock(item.Quantity) {
			return nil, domainerrors.ErrOutOfStock.WrapMessage(
				fmt.Sprintf("%s has insufficient stock", product.Name))
		}

		cart.Items = append(cart.Items, entity.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  item.Quantity,
		})
	}

	return cart, nil
}

// loadSession fetches the user's live session from the store.
func (srv *checkoutService) loadSession(userID uuid.UUID) (*entity.CheckoutSession, error) {
	session, err := srv.sessionStore.Get(userID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, domainerrors.ErrCheckoutSessionNotFound
		}

		return nil, errors.Wrap(err, "failed to load checkout session")
	}

	return session, nil
}

// mapGuardError translates wizard guard errors into domain errors with the
// right HTTP semantics: step conflicts are 409, rejected input is 400.
func (srv *checkoutService) mapGuardError(err error) error {
	switch {
	case errors.Is(err, entity.ErrCheckoutStepMismatch):
		return domainerrors.ErrCheckoutStepConflict
	case errors.Is(err, entity.ErrNoPriorStep):
		return domainerrors.ErrCheckoutStepConflict.WrapMessage("no previous step to return to")
	case errors.Is(err, entity.ErrEmptyCart),
		errors.Is(err, entity.ErrInvalidAddress),
		errors.Is(err, entity.ErrInvalidPayment),
		errors.Is(err, entity.ErrInvalidCredential):
		return domainerrors.ErrCheckoutInputInvalid.WrapMessage(err.Error())
	default:
		return err
	}
}

// view projects the session into the client-facing wizard state.
func (srv *checkoutService) view(session *entity.CheckoutSession) *usecase.CheckoutView {
	totals := srv.pricing.TotalsFor(session.Cart)
	if session.Step == entity.StepSuccess {
		// The cart is cleared at completion; show what was actually captured.
		totals = entity.CheckoutTotals{Total: session.PaidTotal}
	}

	return &usecase.CheckoutView{
		SessionID: session.ID,
		Step:      session.Step,
		Cart:      session.Cart,
		Address:   session.Address,
		Method:    session.Payment.Method,
		Totals:    totals,
		OrderID:   session.OrderID,
	}
}

// orderItemsFromCart copies cart lines into order lines.
func orderItemsFromCart(cart entity.Cart) []entity.OrderItem {
	items := make([]entity.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, entity.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
		})
	}

	return items
}
