package router

import (
	"net/http"

	"catalog-service/internal/handler"
	"catalog-service/internal/metrics"
	"catalog-service/internal/middleware"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(
	e *echo.Echo,
	authHandler *handler.AuthHandler,
	categoryHandler *handler.CategoryHandler,
	itemHandler *handler.ItemHandler,
) {
	e.Use(metrics.Middleware())

	// Public routes
	e.GET("/auth/:provider", authHandler.BeginAuthHandler)
	e.GET("/auth/:provider/callback", authHandler.CallbackHandler)
	e.GET("/auth/logout", authHandler.LogoutHandler)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Protected API routes
	protected := e.Group("/api")
	protected.Use(middleware.AuthMiddleware(authHandler))

	// Category API routes
	protected.POST("/categories", categoryHandler.CreateCategory)
	protected.GET("/categories", categoryHandler.GetCategories)
	protected.GET("/categories/:id", categoryHandler.GetCategory)
	protected.PUT("/categories/:id", categoryHandler.UpdateCategory)
	protected.DELETE("/categories/:id", categoryHandler.DeleteCategory)

	// Item API routes
	protected.POST("/categories/:id/items", itemHandler.CreateItem)
	protected.GET("/categories/:id/items", itemHandler.GetItems)
	protected.PUT("/items/:id", itemHandler.UpdateItem)
	protected.DELETE("/items/:id", itemHandler.DeleteItem)
}
