// Package availability decides whether a requested date range is free
// for a given apartment or room.  It owns the interval overlap rule
// and the scoped conflict scan; persistence is behind the
// ReservationSource interface so the checker can be exercised without
// a database.
package availability

import (
	"context"
	"errors"
	"time"

	"github.com/presidentialapts/reservation-api/internal/model"
)

// ErrInvalidRange is returned when checkOut is not strictly after
// checkIn.  It is detected before any store access so a malformed
// range can never be mistaken for "no conflict".
var ErrInvalidRange = errors.New("checkOut must be after checkIn")

// Overlaps reports whether the half-open ranges [aStart, aEnd) and
// [bStart, bEnd) intersect.  Touching endpoints (one checkout equal
// to another's check-in) do not count as overlapping.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Query describes an availability check.  CheckIn and CheckOut are
// required; ApartmentID and RoomID narrow the scan.  When RoomID is
// set the scope is the room, else the apartment, else every
// reservation (tolerated but discouraged; callers should always
// scope).
type Query struct {
	ApartmentID string
	RoomID      string
	CheckIn     time.Time
	CheckOut    time.Time
}

// Result is the outcome of a check: Available is true exactly when
// Conflicts is empty.
type Result struct {
	Available bool                `json:"available"`
	Conflicts []model.Reservation `json:"conflicts"`
}

// ReservationSource supplies the candidate reservations for a scope.
// Implementations may pre-filter by date range but must never filter
// by status: cancelled and completed reservations still block
// availability.
type ReservationSource interface {
	ListOverlapping(ctx context.Context, apartmentID, roomID string, checkIn, checkOut time.Time) ([]model.Reservation, error)
}

// Checker runs availability checks against a ReservationSource.
type Checker struct {
	source ReservationSource
}

// NewChecker returns a Checker bound to the given source.
func NewChecker(source ReservationSource) *Checker {
	if source == nil {
		panic("nil source passed to NewChecker")
	}
	return &Checker{source: source}
}

// Check scans the scoped reservations and collects those whose date
// range overlaps the requested one.  The result is a point-in-time
// snapshot: it is not isolated from concurrent writes, which is why
// the create path re-validates inside its own transaction.  Store
// errors propagate unchanged.
func (c *Checker) Check(ctx context.Context, q Query) (Result, error) {
	if !q.CheckOut.After(q.CheckIn) {
		return Result{}, ErrInvalidRange
	}
	candidates, err := c.source.ListOverlapping(ctx, q.ApartmentID, q.RoomID, q.CheckIn, q.CheckOut)
	if err != nil {
		return Result{}, err
	}
	conflicts := make([]model.Reservation, 0, len(candidates))
	for _, r := range candidates {
		if !inScope(q, r) {
			continue
		}
		if Overlaps(r.CheckIn, r.CheckOut, q.CheckIn, q.CheckOut) {
			conflicts = append(conflicts, r)
		}
	}
	return Result{Available: len(conflicts) == 0, Conflicts: conflicts}, nil
}

// inScope applies the scoping rule: room id wins over apartment id,
// and an unscoped query matches everything.
func inScope(q Query, r model.Reservation) bool {
	if q.RoomID != "" {
		return r.RoomID == q.RoomID
	}
	if q.ApartmentID != "" {
		return r.ApartmentID == q.ApartmentID
	}
	return true
}
