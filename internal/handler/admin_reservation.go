package handler

import (
	"database/sql"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/presidentialapts/reservation-api/internal/model"
	"github.com/presidentialapts/reservation-api/internal/repository"
)

// AdminReservationHandler serves the authenticated management
// endpoints: listing with filters, single fetch, partial update with
// lifecycle enforcement, and idempotent delete.
type AdminReservationHandler struct {
	Repo *repository.ReservationRepo

	// StrictTransitions gates the lifecycle table.  When false any
	// known status value is accepted on update.
	StrictTransitions bool
}

// NewAdminReservationHandler constructs an AdminReservationHandler.
func NewAdminReservationHandler(repo *repository.ReservationRepo, strictTransitions bool) *AdminReservationHandler {
	if repo == nil {
		panic("nil repository passed to NewAdminReservationHandler")
	}
	return &AdminReservationHandler{Repo: repo, StrictTransitions: strictTransitions}
}

// List handles GET /v1/reservation.  Filtering, sorting and paging
// all run in the database; the total reflects the filtered set so
// clients can build page controls.
func (h *AdminReservationHandler) List(c echo.Context) error {
	q := repository.ListQuery{
		Keyword:     strings.TrimSpace(c.QueryParam("keyword")),
		ApartmentID: strings.TrimSpace(c.QueryParam("apartmentId")),
		RoomID:      strings.TrimSpace(c.QueryParam("roomId")),
		Order:       strings.TrimSpace(c.QueryParam("order")),
	}
	if v := c.QueryParam("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			q.Page = n
		}
	}
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			q.Limit = n
		}
	}
	if raw := c.QueryParam("tags"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				q.Tags = append(q.Tags, t)
			}
		}
	}

	items, total, err := h.Repo.List(c.Request().Context(), q)
	if err != nil {
		log.Printf("reservation: list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list reservations"})
	}

	page, limit := q.Page, q.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return c.JSON(http.StatusOK, echo.Map{
		"reservations": items,
		"pagination": echo.Map{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": pageCount(total, limit),
		},
		"filters": echo.Map{
			"keyword": q.Keyword,
			"tags":    q.Tags,
		},
	})
}

// pageCount returns ceil(total/limit) with a minimum of one page, so
// an empty result set still renders a single empty page in clients.
func pageCount(total int64, limit int) int64 {
	n := (total + int64(limit) - 1) / int64(limit)
	if n < 1 {
		return 1
	}
	return n
}

// Get handles GET /v1/reservation/:id.
func (h *AdminReservationHandler) Get(c echo.Context) error {
	res, err := h.Repo.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found"})
		}
		log.Printf("reservation: get failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservation"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservation": res})
}

type updateGuest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" validate:"omitempty,email"`
	Phone *string `json:"phone"`
}

type updateReq struct {
	RoomID      *string      `json:"roomId"`
	Guest       *updateGuest `json:"guest"`
	CheckIn     *string      `json:"checkIn"`
	CheckOut    *string      `json:"checkOut"`
	GuestsCount *int         `json:"guestsCount" validate:"omitempty,gt=0"`
	Notes       *string      `json:"notes"`
	Status      *string      `json:"status" validate:"omitempty,oneof=pending confirmed cancelled completed"`
	TotalAmount *float64     `json:"totalAmount" validate:"omitempty,gte=0"`
	Currency    *string      `json:"currency" validate:"omitempty,len=3"`
	Tags        *[]string    `json:"tags"`
}

// Update handles PUT /v1/reservation/:id.  Only fields present in the
// body change.  Status changes run through the lifecycle table when
// strict mode is on; setting the current status again is a no-op so
// repeated confirm links stay safe.
func (h *AdminReservationHandler) Update(c echo.Context) error {
	id := c.Param("id")

	var req updateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	existing, err := h.Repo.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found"})
		}
		log.Printf("reservation: get failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservation"})
	}

	patch := repository.Patch{
		RoomID:      req.RoomID,
		GuestsCount: req.GuestsCount,
		Notes:       req.Notes,
		TotalAmount: req.TotalAmount,
		Currency:    req.Currency,
	}
	if req.Guest != nil {
		patch.GuestName = req.Guest.Name
		patch.GuestEmail = req.Guest.Email
		patch.GuestPhone = req.Guest.Phone
	}
	patch.Tags = req.Tags

	// The effective stay is the stored range overlaid with whichever
	// ends the body supplies; both ends are validated together.
	effIn, effOut := existing.CheckIn, existing.CheckOut
	if req.CheckIn != nil {
		t, err := parseDate(*req.CheckIn)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		effIn = t
		patch.CheckIn = &t
	}
	if req.CheckOut != nil {
		t, err := parseDate(*req.CheckOut)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		effOut = t
		patch.CheckOut = &t
	}
	if !effOut.After(effIn) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "checkOut must be after checkIn"})
	}

	if req.Status != nil {
		next := model.Status(*req.Status)
		if h.StrictTransitions && !model.CanTransition(existing.Status, next) {
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "invalid status transition from " + string(existing.Status) + " to " + string(next),
			})
		}
		patch.Status = &next
	}

	updated, err := h.Repo.Update(ctx, id, patch)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found"})
		}
		log.Printf("reservation: update failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update reservation"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservation": updated})
}

// Delete handles DELETE /v1/reservation/:id.  Deleting a missing id
// still reports success, so retried deletes are harmless.
func (h *AdminReservationHandler) Delete(c echo.Context) error {
	if err := h.Repo.Delete(c.Request().Context(), c.Param("id")); err != nil {
		log.Printf("reservation: delete failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete reservation"})
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": true})
}
