package handler

import (
	"database/sql"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/presidentialapts/reservation-api/internal/model"
	"github.com/presidentialapts/reservation-api/internal/repository"
)

// AdminApartmentHandler manages the apartment catalogue.  Unlike the
// public browse endpoints it also sees inactive apartments.
type AdminApartmentHandler struct {
	Repo *repository.ApartmentRepo
}

// NewAdminApartmentHandler constructs an AdminApartmentHandler.
func NewAdminApartmentHandler(repo *repository.ApartmentRepo) *AdminApartmentHandler {
	if repo == nil {
		panic("nil repository passed to NewAdminApartmentHandler")
	}
	return &AdminApartmentHandler{Repo: repo}
}

type apartmentReq struct {
	Slug          string  `json:"slug" validate:"required"`
	Name          string  `json:"name" validate:"required"`
	Description   string  `json:"description"`
	MaxGuests     int     `json:"maxGuests" validate:"omitempty,gt=0"`
	PricePerNight float64 `json:"pricePerNight" validate:"omitempty,gte=0"`
	Currency      string  `json:"currency" validate:"omitempty,len=3"`
	IsActive      bool    `json:"isActive"`
}

// List handles GET /v1/admin/apartments, including inactive entries.
func (h *AdminApartmentHandler) List(c echo.Context) error {
	items, err := h.Repo.List(c.Request().Context(), false)
	if err != nil {
		log.Printf("apartment: list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list apartments"})
	}
	return c.JSON(http.StatusOK, echo.Map{"apartments": items})
}

// Create handles POST /v1/admin/apartments.  Slugs are unique; a
// duplicate comes back as a 409.
func (h *AdminApartmentHandler) Create(c echo.Context) error {
	var req apartmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	a := model.Apartment{
		Slug:          req.Slug,
		Name:          req.Name,
		Description:   req.Description,
		MaxGuests:     req.MaxGuests,
		PricePerNight: req.PricePerNight,
		Currency:      req.Currency,
		IsActive:      req.IsActive,
	}
	if err := h.Repo.Create(c.Request().Context(), &a); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "slug already in use"})
		}
		log.Printf("apartment: create failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create apartment"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"apartment": a})
}

// Update handles PUT /v1/admin/apartments/:id with a full overwrite of
// the mutable fields.
func (h *AdminApartmentHandler) Update(c echo.Context) error {
	var req apartmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	a := model.Apartment{
		ID:            c.Param("id"),
		Slug:          req.Slug,
		Name:          req.Name,
		Description:   req.Description,
		MaxGuests:     req.MaxGuests,
		PricePerNight: req.PricePerNight,
		Currency:      req.Currency,
		IsActive:      req.IsActive,
	}
	if err := h.Repo.Update(c.Request().Context(), &a); err != nil {
		switch err {
		case sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "slug already in use"})
		}
		log.Printf("apartment: update failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update apartment"})
	}
	return c.JSON(http.StatusOK, echo.Map{"apartment": a})
}

// Delete handles DELETE /v1/admin/apartments/:id, idempotently.
func (h *AdminApartmentHandler) Delete(c echo.Context) error {
	if err := h.Repo.Delete(c.Request().Context(), c.Param("id")); err != nil {
		log.Printf("apartment: delete failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete apartment"})
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": true})
}
