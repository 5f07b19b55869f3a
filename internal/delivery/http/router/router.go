// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"jacomprei/internal/delivery/http/middleware"
	"jacomprei/internal/delivery/http/router/handler"
	"jacomprei/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler     *handler.UserHandler
	StoreHandler    *handler.StoreHandler
	ProductHandler  *handler.ProductHandler
	CategoryHandler *handler.CategoryHandler
	CartHandler     *handler.CartHandler
	OrderHandler    *handler.OrderHandler
	EventsHandler   *handler.EventsHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	auth := r.params.AuthMiddleware

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Real-time order events
	e.GET("/ws", r.params.EventsHandler.Serve)

	api := e.Group("/api")

	// Identity
	api.POST("/register", r.params.UserHandler.Register)
	api.POST("/login", r.params.UserHandler.Login)

	userGroup := api.Group("/user")
	userGroup.Use(auth.Authenticate)
	{
		userGroup.GET("", r.params.UserHandler.GetProfile)
		userGroup.PUT("/role", r.params.UserHandler.UpdateRole)
		userGroup.PUT("/address", r.params.UserHandler.UpdateProfile)
	}

	// Browsing, available to any authenticated user
	browse := api.Group("")
	browse.Use(auth.Authenticate)
	{
		browse.GET("/categories", r.params.CategoryHandler.ListCategories)
		browse.GET("/stores", r.params.StoreHandler.ListStores)
		browse.GET("/stores/:id", r.params.StoreHandler.GetStore)
		browse.GET("/stores/:id/qrcode", r.params.StoreHandler.StoreQRCode)
		browse.GET("/stores/:id/products", r.params.ProductHandler.ListByStore)
		browse.GET("/products/featured", r.params.ProductHandler.ListFeatured)
		browse.GET("/products/:id", r.params.ProductHandler.GetProduct)
	}

	// Merchant management
	merchant := api.Group("")
	merchant.Use(auth.Authenticate)
	merchant.Use(auth.RequireRole(entity.RoleMerchant))
	{
		merchant.GET("/merchant/stores", r.params.StoreHandler.MyStores)
		merchant.POST("/stores", r.params.StoreHandler.CreateStore)
		merchant.PUT("/stores/:id", r.params.StoreHandler.UpdateStore)
		merchant.POST("/products", r.params.ProductHandler.CreateProduct)
		merchant.PUT("/products/:id", r.params.ProductHandler.UpdateProduct)
	}

	// Consumer cart
	cart := api.Group("/cart")
	cart.Use(auth.Authenticate)
	{
		cart.GET("", r.params.CartHandler.GetCart)
		cart.POST("", r.params.CartHandler.AddItem)
		cart.PUT("/:id", r.params.CartHandler.UpdateItem)
		cart.DELETE("/:id", r.params.CartHandler.RemoveItem)
		cart.DELETE("", r.params.CartHandler.ClearCart)
	}

	// Orders, authorization is per-operation inside the use case
	orders := api.Group("/orders")
	orders.Use(auth.Authenticate)
	{
		orders.GET("", r.params.OrderHandler.ListOrders)
		orders.GET("/:id", r.params.OrderHandler.GetOrder)
		orders.POST("", r.params.OrderHandler.Checkout)
		orders.PUT("/:id/status", r.params.OrderHandler.UpdateStatus)
		orders.PUT("/:id/assign", r.params.OrderHandler.AssignDelivery)
	}
}
