// Package http provides the HTTP handler layer for the offer engine API.
package http

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers all offer engine API routes.
// It creates a versioned API group and attaches the handler methods.
func RegisterRoutes(e *echo.Echo, h *OfferHandler) {
	// Health check endpoint (no version prefix)
	e.GET("/health", h.Health)

	api := e.Group("/api/v1")

	flights := api.Group("/flights")
	flights.POST("/search", h.SearchOffers)
	flights.POST("/nearby", h.NearbyFares)
	flights.POST("/baggage", h.Baggage)
	flights.POST("/rules", h.FareRules)

	fares := api.Group("/fares")
	fares.POST("/calendar", h.FareCalendar)
}

// RegisterRoutesWithMiddleware registers routes with custom middleware.
// This allows for endpoint-specific middleware configuration.
func RegisterRoutesWithMiddleware(e *echo.Echo, h *OfferHandler, middleware ...echo.MiddlewareFunc) {
	// Health check endpoint (no version prefix, no middleware)
	e.GET("/health", h.Health)

	api := e.Group("/api/v1", middleware...)

	flights := api.Group("/flights")
	flights.POST("/search", h.SearchOffers)
	flights.POST("/nearby", h.NearbyFares)
	flights.POST("/baggage", h.Baggage)
	flights.POST("/rules", h.FareRules)

	fares := api.Group("/fares")
	fares.POST("/calendar", h.FareCalendar)
}
