package handler

import (
	"database/sql"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/presidentialapts/reservation-api/internal/repository"
)

// ApartmentHandler serves the public browse endpoints.  These are the
// only routes behind the response cache: listings change rarely and
// carry no reservation data.
type ApartmentHandler struct {
	Repo *repository.ApartmentRepo
}

// NewApartmentHandler constructs an ApartmentHandler.
func NewApartmentHandler(repo *repository.ApartmentRepo) *ApartmentHandler {
	if repo == nil {
		panic("nil repository passed to NewApartmentHandler")
	}
	return &ApartmentHandler{Repo: repo}
}

// List handles GET /v1/apartments, returning active apartments only.
func (h *ApartmentHandler) List(c echo.Context) error {
	items, err := h.Repo.List(c.Request().Context(), true)
	if err != nil {
		log.Printf("apartment: list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list apartments"})
	}
	return c.JSON(http.StatusOK, echo.Map{"apartments": items})
}

// GetBySlug handles GET /v1/apartments/:slug.  Inactive apartments
// are hidden from the public surface.
func (h *ApartmentHandler) GetBySlug(c echo.Context) error {
	a, err := h.Repo.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found"})
		}
		log.Printf("apartment: get failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load apartment"})
	}
	if !a.IsActive {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"apartment": a})
}
