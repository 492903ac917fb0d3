package handler

// This file defines the public booking handlers: the availability
// check and reservation creation.  Creation runs its own availability
// re-check inside the insert transaction with the conflicting rows
// locked, so two simultaneous requests for an overlapping range
// cannot both succeed.

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/presidentialapts/reservation-api/internal/availability"
	"github.com/presidentialapts/reservation-api/internal/mailer"
	"github.com/presidentialapts/reservation-api/internal/model"
	"github.com/presidentialapts/reservation-api/internal/queue"
	"github.com/presidentialapts/reservation-api/internal/repository"
	queue_publisher "github.com/presidentialapts/reservation-api/internal/service"
)

// ReservationHandler groups the dependencies of the public booking
// endpoints.  The notifier is best-effort: its failures are reflected
// in the emailSent flag, never in the response status.
type ReservationHandler struct {
	Repo     *repository.ReservationRepo
	Checker  *availability.Checker
	Notifier *mailer.Notifier
}

// NewReservationHandler constructs a ReservationHandler.  All
// dependencies must be non-nil.
func NewReservationHandler(repo *repository.ReservationRepo, checker *availability.Checker, notifier *mailer.Notifier) *ReservationHandler {
	if repo == nil || checker == nil || notifier == nil {
		panic("nil dependency passed to NewReservationHandler")
	}
	return &ReservationHandler{Repo: repo, Checker: checker, Notifier: notifier}
}

type checkReq struct {
	ApartmentID string `json:"apartmentId"`
	RoomID      string `json:"roomId"`
	CheckIn     string `json:"checkIn" validate:"required"`
	CheckOut    string `json:"checkOut" validate:"required"`
}

// CheckAvailability handles POST /v1/reservation/check.  It returns
// whether the requested range is free in the given scope along with
// the conflicting reservations.  The result is a snapshot: the create
// path re-validates under locks.
func (h *ReservationHandler) CheckAvailability(c echo.Context) error {
	var req checkReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "checkIn and checkOut are required"})
	}
	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	result, err := h.Checker.Check(c.Request().Context(), availability.Query{
		ApartmentID: req.ApartmentID,
		RoomID:      req.RoomID,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
	})
	if err != nil {
		if err == availability.ErrInvalidRange {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "checkOut must be after checkIn"})
		}
		log.Printf("reservation: availability check failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check availability"})
	}
	return c.JSON(http.StatusOK, result)
}

type createGuest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
}

type createReq struct {
	ApartmentID string      `json:"apartmentId" validate:"required"`
	RoomID      string      `json:"roomId"`
	Guest       createGuest `json:"guest" validate:"required"`
	CheckIn     string      `json:"checkIn" validate:"required"`
	CheckOut    string      `json:"checkOut" validate:"required"`
	GuestsCount int         `json:"guestsCount" validate:"omitempty,gt=0"`
	Notes       string      `json:"notes"`
	Status      string      `json:"status" validate:"omitempty,oneof=pending confirmed cancelled completed"`
	TotalAmount float64     `json:"totalAmount" validate:"omitempty,gte=0"`
	Currency    string      `json:"currency" validate:"omitempty,len=3"`
	Tags        []string    `json:"tags"`
}

// CreateReservation handles POST /v1/reservation.  The scoped overlap
// scan and the insert share one transaction with the candidate rows
// locked, so the availability decision still holds when the row is
// written.  On success it fires the admin notification and publishes
// a reservation.created event, both best-effort.
func (h *ReservationHandler) CreateReservation(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if !checkOut.After(checkIn) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "checkOut must be after checkIn"})
	}

	res := model.Reservation{
		ApartmentID: req.ApartmentID,
		RoomID:      req.RoomID,
		Guest:       model.Guest{Name: req.Guest.Name, Email: req.Guest.Email, Phone: req.Guest.Phone},
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		GuestsCount: req.GuestsCount,
		Notes:       req.Notes,
		Status:      model.Status(req.Status),
		TotalAmount: req.TotalAmount,
		Currency:    req.Currency,
		Tags:        req.Tags,
	}

	ctx := c.Request().Context()
	tx, err := h.Repo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Re-check availability with the overlapping rows locked.  All
	// statuses block, matching the public check.
	existing, err := h.Repo.ListOverlappingTx(ctx, tx, req.ApartmentID, req.RoomID, checkIn, checkOut)
	if err != nil {
		log.Printf("reservation: overlap scan failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check availability"})
	}
	conflicts := make([]model.Reservation, 0, len(existing))
	for _, r := range existing {
		if availability.Overlaps(r.CheckIn, r.CheckOut, checkIn, checkOut) {
			conflicts = append(conflicts, r)
		}
	}
	if len(conflicts) > 0 {
		return c.JSON(http.StatusConflict, echo.Map{
			"error":     "requested dates are not available",
			"conflicts": conflicts,
		})
	}

	if err := h.Repo.CreateTx(ctx, tx, &res); err != nil {
		log.Printf("reservation: create failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create reservation"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	emailSent := h.Notifier.NotifyOnCreate(ctx, res)
	publishCreated(res)

	return c.JSON(http.StatusCreated, echo.Map{
		"reservation": res,
		"emailSent":   emailSent,
	})
}

// publishCreated pushes the reservation.created event to the broker in
// the background.  Publish errors are already logged by the publisher
// and deliberately dropped here.
func publishCreated(res model.Reservation) {
	ev := queue.ReservationCreatedEvent{
		ReservationID: res.ID,
		ApartmentID:   res.ApartmentID,
		RoomID:        res.RoomID,
		GuestName:     res.Guest.Name,
		GuestEmail:    res.Guest.Email,
		CheckIn:       res.CheckIn.Format(dateLayout),
		CheckOut:      res.CheckOut.Format(dateLayout),
		Nights:        res.Nights(),
		GuestsCount:   res.GuestsCount,
		TotalAmount:   res.TotalAmount,
		Currency:      res.Currency,
		Tags:          res.Tags,
		CreatedAt:     res.CreatedAt.Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue_publisher.PublishReservationCreated(ctx, ev)
	}()
}
