// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"carspares/internal/delivery/http/middleware"
	"carspares/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler     *handler.UserHandler
	ProductHandler  *handler.ProductHandler
	CartHandler     *handler.CartHandler
	CheckoutHandler *handler.CheckoutHandler
	OrderHandler    *handler.OrderHandler
	PaymentHandler  *handler.PaymentHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler     *handler.UserHandler
	productHandler  *handler.ProductHandler
	cartHandler     *handler.CartHandler
	checkoutHandler *handler.CheckoutHandler
	orderHandler    *handler.OrderHandler
	paymentHandler  *handler.PaymentHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:     params.UserHandler,
		productHandler:  params.ProductHandler,
		cartHandler:     params.CartHandler,
		checkoutHandler: params.CheckoutHandler,
		orderHandler:    params.OrderHandler,
		paymentHandler:  params.PaymentHandler,
		authMiddleware:  params.AuthMiddleware,
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
		authGroup.POST("/refresh", r.userHandler.Refresh)
		authGroup.POST("/logout", r.userHandler.Logout)
	}

	// Catalog routes; browsing is public, listing requires authentication
	productGroup := e.Group("/products")
	{
		productGroup.GET("", r.productHandler.ListProducts)
		productGroup.GET("/:id", r.productHandler.GetProduct)
		productGroup.POST("", r.productHandler.CreateProduct, r.authMiddleware.Authenticate)
		productGroup.GET("/mine", r.productHandler.ListMyProducts, r.authMiddleware.Authenticate)
	}

	// Cart routes, always scoped to the authenticated buyer
	cartGroup := e.Group("/cart")
	cartGroup.Use(r.authMiddleware.Authenticate)
	{
		cartGroup.POST("/lines", r.cartHandler.AddLine)
		cartGroup.GET("", r.cartHandler.ListCart)
		cartGroup.DELETE("", r.cartHandler.ClearCart)
	}

	// Checkout
	e.POST("/checkout", r.checkoutHandler.Checkout, r.authMiddleware.Authenticate)

	// Order routes
	orderGroup := e.Group("/orders")
	orderGroup.Use(r.authMiddleware.Authenticate)
	{
		orderGroup.GET("/mine", r.orderHandler.ListMyOrders)
		orderGroup.GET("/:id", r.orderHandler.GetOrder)
	}

	// Seller-facing routes
	sellerGroup := e.Group("/seller")
	sellerGroup.Use(r.authMiddleware.Authenticate)
	{
		sellerGroup.GET("/orders", r.orderHandler.ListSellerOrders)
		sellerGroup.PATCH("/orders/:id/status", r.orderHandler.UpdateOrderStatus)
		sellerGroup.GET("/dashboard", r.orderHandler.SellerDashboard)
	}

	// Simulated M-PESA payment routes
	paymentGroup := e.Group("/payments")
	paymentGroup.Use(r.authMiddleware.Authenticate)
	{
		paymentGroup.POST("/initiate", r.paymentHandler.InitiatePayment)
		paymentGroup.POST("/confirm", r.paymentHandler.ConfirmPayment)
	}
}
