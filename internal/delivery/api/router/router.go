// Package router contains routing for the kiosk API.
package router

import (
	"supermarket/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	CatalogHandler *handler.CatalogHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	catalogHandler *handler.CatalogHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		catalogHandler: params.CatalogHandler,
	}
}

// RegisterRoutes sets up all the kiosk routes. Every route is read-only.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")
	{
		api.GET("/categories", r.catalogHandler.ListCategories)
		api.GET("/products", r.catalogHandler.ListProducts)
		api.GET("/products/:name", r.catalogHandler.GetProduct)
		api.GET("/discounts", r.catalogHandler.ListDiscounts)
		api.POST("/quote", r.catalogHandler.Quote)
	}
}
