package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"bazaar/config"
	"bazaar/internal/delivery"
	"bazaar/internal/delivery/http"
	"bazaar/internal/delivery/http/middleware"
	"bazaar/internal/delivery/http/router/handler"
	"bazaar/internal/delivery/ws"
	"bazaar/internal/domain/repository"
	"bazaar/internal/domain/service"
	"bazaar/internal/hub"
	"bazaar/internal/infra/auth"
	"bazaar/internal/infra/auth/firebase"
	"bazaar/internal/infra/auth/google"
	logs "bazaar/internal/infra/log"
	"bazaar/internal/infra/notification"
	"bazaar/internal/infra/payment"
	"bazaar/internal/infra/persistence/postgres"
	"bazaar/internal/infra/pubsub"
	"bazaar/internal/infra/qrcode"
	"bazaar/internal/infra/session"
	"bazaar/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewAuthRepository,
			postgres.NewRefreshTokenRepository,
			postgres.NewTransactionManager,
			postgres.NewCatalogRepository,
			postgres.NewProductRepository,
			postgres.NewBookingRepository,
			postgres.NewOrderRepository,
			postgres.NewFinanceRepository,
			postgres.NewDeviceRepository,
			postgres.NewNotificationRepository,
			newSessionStore,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasherFromConfig,
			auth.NewJWTService,
			google.NewAuthService,
			firebase.NewPhoneAuthService,
			pubsub.NewEventPublisher,
			newFirebaseService,
			newQRCodeService,
			newPaymentRegistry,
			newHub,
			func(h *hub.Hub) service.RealtimeNotifier { return h },
		),
	)
}

// newFirebaseService creates a Firebase push service with dependency injection
func newFirebaseService(ctx context.Context, cfg *config.Config) (service.NotificationService, error) {
	if cfg.Firebase == nil || cfg.Firebase.CredentialsPath == "" {
		return nil, nil // Firebase is optional
	}

	svc, err := notification.NewFirebaseService(ctx, cfg.Firebase.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firebase service: %w", err)
	}

	return svc, nil
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

// newSessionStore creates the in-memory checkout session store
func newSessionStore(cfg *config.Config) repository.CheckoutSessionStore {
	var ttl time.Duration
	if cfg.Checkout != nil {
		ttl = cfg.Checkout.SessionTTL
	}

	return session.NewMemoryStore(ttl)
}

// newPaymentRegistry wires the simulated payment authorizers
func newPaymentRegistry(cfg *config.Config) payment.Registry {
	var delay time.Duration
	if cfg.Checkout != nil {
		delay = cfg.Checkout.ProcessingDelay
	}

	return payment.NewRegistry(
		payment.NewUPIAuthorizer(delay),
		payment.NewCardAuthorizer(delay),
		payment.NewCODAuthorizer(delay),
	)
}

// newHub creates the realtime hub shared by the websocket delivery and usecases
func newHub(cfg *config.Config, logger *slog.Logger) *hub.Hub {
	bufferSize := 0
	if cfg.Hub != nil {
		bufferSize = cfg.Hub.SendBufferSize
	}

	return hub.New(bufferSize, logger)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
			impl.NewCatalogService,
			impl.NewProductService,
			impl.NewProviderService,
			impl.NewBookingService,
			impl.NewCheckoutService,
			impl.NewOrderService,
			impl.NewFinanceService,
			impl.NewDeviceService,
			impl.NewNotificationService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewCatalogHandler,
			handler.NewProductHandler,
			handler.NewProviderHandler,
			handler.NewBookingHandler,
			handler.NewCheckoutHandler,
			handler.NewOrderHandler,
			handler.NewFinanceHandler,
			handler.NewDeviceHandler,
			handler.NewNotificationHandler,
			ws.NewHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
