package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/presidentialapts/reservation-api/internal/handler"
)

// RegisterRoutes registers routes that do not require authentication
// on the provided Echo instance.  Currently it exposes only a health
// check; the public booking and browse routes carry their own
// middleware and live in their registration functions below.
func RegisterRoutes(e *echo.Echo) {
	// Load balancers and monitoring poll this endpoint to verify the
	// service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterBooking mounts the public reservation endpoints.  These are
// deliberately unauthenticated so guests can book from the website;
// the rate limiter is the abuse control, applied per IP and route.
func RegisterBooking(e *echo.Echo, h *handler.ReservationHandler, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1/reservation", limiter)
	g.POST("/check", h.CheckAvailability)
	g.POST("", h.CreateReservation)
}

// RegisterBrowse mounts the public apartment pages.  Listing data is
// nearly static, so responses go through the Redis cache; reservation
// routes never do.
func RegisterBrowse(e *echo.Echo, h *handler.ApartmentHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1/apartments", cache)
	g.GET("", h.List)
	g.GET("/:slug", h.GetBySlug)
}
