package router

// This file registers the management endpoints: reservation listing,
// status changes and deletion, plus the apartment catalogue.  The
// confirm/cancel links in notification emails land on a console that
// calls these routes, so every one of them requires a valid session.

import (
	"github.com/labstack/echo/v4"

	"github.com/presidentialapts/reservation-api/internal/handler"
	"github.com/presidentialapts/reservation-api/internal/middleware"
)

// RegisterAdminReservations registers the reservation management
// routes under /v1.  Both ADMIN and STAFF may operate on
// reservations.
func RegisterAdminReservations(e *echo.Echo, h *handler.AdminReservationHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN", "STAFF"),
	)
	g.GET("/reservation", h.List)
	g.GET("/reservation/:id", h.Get)
	g.PUT("/reservation/:id", h.Update)
	g.PATCH("/reservation/:id", h.Update) // alias for clients that use PATCH
	g.DELETE("/reservation/:id", h.Delete)
}

// RegisterAdminApartments registers the apartment catalogue routes.
// Catalogue changes are restricted to ADMIN.
func RegisterAdminApartments(e *echo.Echo, h *handler.AdminApartmentHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin/apartments",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)
	g.GET("", h.List)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
