// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	ProductHandler *handler.ProductHandler
	UserHandler    *handler.UserHandler
	CartHandler    *handler.CartHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	productHandler *handler.ProductHandler
	userHandler    *handler.UserHandler
	cartHandler    *handler.CartHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		productHandler: params.ProductHandler,
		userHandler:    params.UserHandler,
		cartHandler:    params.CartHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Catalog routes are public
	api.POST("/products", r.productHandler.SearchProducts)
	api.GET("/products/recent", r.productHandler.RecentProducts)
	api.GET("/products/:id", r.productHandler.GetProduct)
	api.GET("/categories", r.productHandler.ListCategories)
	api.GET("/categories/:id/subcategories", r.productHandler.ListSubcategories)
	api.GET("/colors", r.productHandler.ListColors)

	// Account routes
	usersGroup := api.Group("/users")
	{
		usersGroup.POST("/register", r.userHandler.Register)
		usersGroup.POST("/login", r.userHandler.Login)
		usersGroup.GET("/address-constants", r.userHandler.AddressConstants)
		usersGroup.PUT("", r.userHandler.Update, r.authMiddleware.Authenticate)
		usersGroup.DELETE("", r.userHandler.Delete, r.authMiddleware.Authenticate)
	}

	// Cart routes require authentication
	cartGroup := api.Group("/cart")
	cartGroup.Use(r.authMiddleware.Authenticate)
	{
		cartGroup.GET("", r.cartHandler.Summary)
		cartGroup.PUT("", r.cartHandler.AddItem)
		cartGroup.DELETE("", r.cartHandler.RemoveItem)
	}
}
