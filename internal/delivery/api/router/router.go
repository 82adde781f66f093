// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"educycle/config"
	"educycle/internal/delivery/api/middleware"
	"educycle/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	ProfileHandler *handler.ProfileHandler
	ProductHandler *handler.ProductHandler
	OrderHandler   *handler.OrderHandler
	MessageHandler *handler.MessageHandler
	DeviceHandler  *handler.DeviceHandler
	UploadHandler  *handler.UploadHandler
	HealthHandler  *handler.HealthHandler
	AuthMiddleware *middleware.AuthMiddleware
	Config         *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	profileHandler *handler.ProfileHandler
	productHandler *handler.ProductHandler
	orderHandler   *handler.OrderHandler
	messageHandler *handler.MessageHandler
	deviceHandler  *handler.DeviceHandler
	uploadHandler  *handler.UploadHandler
	healthHandler  *handler.HealthHandler
	authMiddleware *middleware.AuthMiddleware
	config         *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		profileHandler: params.ProfileHandler,
		productHandler: params.ProductHandler,
		orderHandler:   params.OrderHandler,
		messageHandler: params.MessageHandler,
		deviceHandler:  params.DeviceHandler,
		uploadHandler:  params.UploadHandler,
		healthHandler:  params.HealthHandler,
		authMiddleware: params.AuthMiddleware,
		config:         params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	auth := r.authMiddleware.Authenticate

	e.GET("/health", r.healthHandler.Check)

	if r.config.Metrics != nil && r.config.Metrics.Enabled {
		e.GET(r.config.Metrics.Path, echo.WrapHandler(promhttp.Handler()))
	}

	api := e.Group("/api")

	// Auth routes
	api.POST("/signup", r.authHandler.Signup)
	api.POST("/login", r.authHandler.Login)

	// Profile routes
	usersGroup := api.Group("/users")
	{
		usersGroup.GET("/profile", r.profileHandler.GetProfile, auth)
		usersGroup.PUT("/profile", r.profileHandler.UpdateProfile, auth)
		usersGroup.GET("/:id", r.profileHandler.GetPublicProfile)
	}

	// Product routes; static segments are registered before /:id
	productsGroup := api.Group("/products")
	{
		productsGroup.GET("", r.productHandler.List)
		productsGroup.GET("/search", r.productHandler.Search)
		productsGroup.GET("/user/listings", r.productHandler.MyListings, auth)
		productsGroup.GET("/user/saved", r.productHandler.MySaved, auth)
		productsGroup.GET("/seller/:userId", r.productHandler.SellerListings)
		productsGroup.GET("/:id", r.productHandler.Get)
		productsGroup.GET("/:id/qrcode", r.productHandler.QRCode)
		productsGroup.POST("", r.productHandler.Create, auth)
		productsGroup.PUT("/:id", r.productHandler.Update, auth)
		productsGroup.PATCH("/:id/price", r.productHandler.UpdatePrice, auth)
		productsGroup.DELETE("/:id", r.productHandler.Delete, auth)
		productsGroup.POST("/:id/toggle-save", r.productHandler.ToggleSave, auth)
		productsGroup.POST("/:id/save", r.productHandler.ToggleSave, auth)
	}

	// Order routes
	ordersGroup := api.Group("/orders", auth)
	{
		ordersGroup.POST("", r.orderHandler.Create)
		ordersGroup.GET("/user", r.orderHandler.ListMine)
	}

	// Message routes
	messagesGroup := api.Group("/messages", auth)
	{
		messagesGroup.POST("", r.messageHandler.Send)
		messagesGroup.GET("/conversations", r.messageHandler.Conversations)
		messagesGroup.GET("/:userId/:productId", r.messageHandler.History)
	}

	// Device management routes
	devicesGroup := api.Group("/devices", auth)
	{
		devicesGroup.POST("", r.deviceHandler.RegisterDevice)
		devicesGroup.GET("", r.deviceHandler.GetUserDevices)
		devicesGroup.PUT("/:id/token", r.deviceHandler.UpdateFCMToken)
		devicesGroup.DELETE("/:id", r.deviceHandler.DeactivateDevice)
	}

	// Upload routes; stored objects are public
	api.POST("/uploads", r.uploadHandler.Upload, auth)
	api.GET("/uploads/*", r.uploadHandler.Serve)
	e.GET("/uploads/*", r.uploadHandler.Serve)
}
