// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"bazaar/internal/delivery/http/middleware"
	"bazaar/internal/delivery/http/router/handler"
	"bazaar/internal/delivery/ws"
	"bazaar/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler         *handler.UserHandler
	CatalogHandler      *handler.CatalogHandler
	ProductHandler      *handler.ProductHandler
	ProviderHandler     *handler.ProviderHandler
	BookingHandler      *handler.BookingHandler
	CheckoutHandler     *handler.CheckoutHandler
	OrderHandler        *handler.OrderHandler
	FinanceHandler      *handler.FinanceHandler
	DeviceHandler       *handler.DeviceHandler
	NotificationHandler *handler.NotificationHandler
	WSHandler           *ws.Handler
	AuthMiddleware      *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler         *handler.UserHandler
	catalogHandler      *handler.CatalogHandler
	productHandler      *handler.ProductHandler
	providerHandler     *handler.ProviderHandler
	bookingHandler      *handler.BookingHandler
	checkoutHandler     *handler.CheckoutHandler
	orderHandler        *handler.OrderHandler
	financeHandler      *handler.FinanceHandler
	deviceHandler       *handler.DeviceHandler
	notificationHandler *handler.NotificationHandler
	wsHandler           *ws.Handler
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:         params.UserHandler,
		catalogHandler:      params.CatalogHandler,
		productHandler:      params.ProductHandler,
		providerHandler:     params.ProviderHandler,
		bookingHandler:      params.BookingHandler,
		checkoutHandler:     params.CheckoutHandler,
		orderHandler:        params.OrderHandler,
		financeHandler:      params.FinanceHandler,
		deviceHandler:       params.DeviceHandler,
		notificationHandler: params.NotificationHandler,
		wsHandler:           params.WSHandler,
		authMiddleware:      params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.Register)
		authGroup.POST("/login", r.userHandler.Login)
		authGroup.POST("/refresh", r.userHandler.RefreshToken)
		authGroup.POST("/logout", r.userHandler.Logout)
	}

	// OAuth routes - separate group for better organization
	oauthGroup := e.Group("/oauth")
	{
		oauthGroup.POST("/google/callback", r.userHandler.GoogleLogin)
		oauthGroup.POST("/phone/callback", r.userHandler.PhoneLogin)
	}

	// Websocket endpoint, authenticated inside the handler since browser
	// clients pass the token as a query parameter.
	e.GET("/ws", r.wsHandler.Serve)

	// Public marketplace browsing, no authentication required
	publicGroup := e.Group("/api/v1/public")
	{
		publicGroup.GET("/categories", r.catalogHandler.ListCategories)
		publicGroup.GET("/categories/:slug", r.catalogHandler.GetCategoryBySlug)
		publicGroup.GET("/services", r.catalogHandler.BrowseServices)
		publicGroup.GET("/services/search", r.catalogHandler.SearchServices)
		publicGroup.GET("/services/:id", r.catalogHandler.GetService)
		publicGroup.GET("/products", r.productHandler.ListProducts)
		publicGroup.GET("/products/:id", r.productHandler.GetProduct)
		publicGroup.GET("/providers", r.providerHandler.ListProviders)
		publicGroup.GET("/providers/nearby", r.providerHandler.NearbyProviders)
		publicGroup.GET("/providers/:id", r.providerHandler.GetProvider)
	}

	// API v1 routes
	apiV1 := e.Group("/api/v1")
	apiV1.Use(r.authMiddleware.Authenticate) // All API v1 routes require authentication

	// User profile and session routes
	userGroup := apiV1.Group("/user")
	{
		userGroup.GET("/me", r.userHandler.GetMe)
		userGroup.PUT("/profile/customer", r.userHandler.UpdateCustomerProfile)
		userGroup.PUT("/profile/provider", r.userHandler.UpdateProviderProfile)
		userGroup.GET("/sessions", r.userHandler.GetActiveSessions)
		userGroup.POST("/logout-all", r.userHandler.LogoutAllDevices)
	}

	// Service listing management (requires provider role)
	servicesGroup := apiV1.Group("/services")
	servicesGroup.Use(r.authMiddleware.RequireRole(entity.RoleProvider))
	{
		servicesGroup.POST("", r.catalogHandler.CreateService)
		servicesGroup.GET("/mine", r.catalogHandler.ListMyServices)
		servicesGroup.PUT("/:id", r.catalogHandler.UpdateService)
		servicesGroup.DELETE("/:id", r.catalogHandler.DeleteService)
	}

	// Product listing management (requires provider role)
	productsGroup := apiV1.Group("/products")
	productsGroup.Use(r.authMiddleware.RequireRole(entity.RoleProvider))
	{
		productsGroup.POST("", r.productHandler.CreateProduct)
		productsGroup.GET("/mine", r.productHandler.ListMyProducts)
		productsGroup.PUT("/:id", r.productHandler.UpdateProduct)
		productsGroup.DELETE("/:id", r.productHandler.DeleteProduct)
	}

	// Booking lifecycle routes
	bookingsGroup := apiV1.Group("/bookings")
	{
		bookingsGroup.POST("", r.bookingHandler.CreateBooking)
		bookingsGroup.GET("", r.bookingHandler.ListMyBookings)
		bookingsGroup.GET("/incoming", r.bookingHandler.ListIncomingBookings)
		bookingsGroup.GET("/:id", r.bookingHandler.GetBooking)
		bookingsGroup.POST("/:id/accept", r.bookingHandler.AcceptBooking)
		bookingsGroup.POST("/:id/start", r.bookingHandler.StartBooking)
		bookingsGroup.POST("/:id/complete", r.bookingHandler.CompleteBooking)
		bookingsGroup.POST("/:id/cancel", r.bookingHandler.CancelBooking)
	}

	// Checkout wizard routes
	checkoutGroup := apiV1.Group("/checkout")
	{
		checkoutGroup.POST("", r.checkoutHandler.StartCheckout)
		checkoutGroup.GET("", r.checkoutHandler.GetCheckout)
		checkoutGroup.POST("/cart", r.checkoutHandler.SubmitCart)
		checkoutGroup.POST("/address", r.checkoutHandler.SubmitAddress)
		checkoutGroup.POST("/payment", r.checkoutHandler.SubmitPayment)
		checkoutGroup.POST("/confirm", r.checkoutHandler.Confirm)
		checkoutGroup.POST("/verify", r.checkoutHandler.Verify)
		checkoutGroup.POST("/back", r.checkoutHandler.Back)
		checkoutGroup.DELETE("", r.checkoutHandler.Abandon)
	}

	// Order history routes
	ordersGroup := apiV1.Group("/orders")
	{
		ordersGroup.GET("", r.orderHandler.ListOrders)
		ordersGroup.GET("/number/:number", r.orderHandler.GetOrderByNumber)
		ordersGroup.GET("/:id", r.orderHandler.GetOrder)
		ordersGroup.GET("/:id/receipt", r.orderHandler.GetOrderReceipt)
	}

	// Financial plan routes (requires provider role)
	financeGroup := apiV1.Group("/finance")
	financeGroup.Use(r.authMiddleware.RequireRole(entity.RoleProvider))
	{
		financeGroup.GET("/plan", r.financeHandler.GetPlan)
		financeGroup.PUT("/plan", r.financeHandler.SavePlan)
	}

	// Device management routes
	devicesGroup := apiV1.Group("/devices")
	{
		devicesGroup.POST("", r.deviceHandler.RegisterDevice)
		devicesGroup.GET("", r.deviceHandler.GetUserDevices)
		devicesGroup.PUT("/:id/token", r.deviceHandler.UpdateFCMToken)
		devicesGroup.DELETE("/:id", r.deviceHandler.DeactivateDevice)
	}

	// Notification feed routes
	notificationsGroup := apiV1.Group("/notifications")
	{
		notificationsGroup.GET("", r.notificationHandler.ListNotifications)
		notificationsGroup.GET("/unread-count", r.notificationHandler.UnreadCount)
		notificationsGroup.PUT("/:id/read", r.notificationHandler.MarkRead)
	}
}
