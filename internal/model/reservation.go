package model

import (
	"errors"
	"time"
)

// Status enumerates the lifecycle states of a reservation.  A
// reservation is created as pending and is moved to confirmed or
// cancelled by an authenticated admin action (usually via the links
// embedded in the notification email).  Completed is reached from
// confirmed and is administrative only.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// ErrInvalidTransition is returned when a status change is requested
// along an edge that is not part of the transition table.  Handlers
// translate it into an HTTP 409 response.
var ErrInvalidTransition = errors.New("invalid status transition")

// transitions is the set of legal status edges.  Cancelled and
// completed are terminal: no edge leaves them.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// ValidStatus reports whether s is one of the four known statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// CanTransition reports whether moving from one status to the next is
// allowed by the transition table.  A no-op transition (same status)
// is always permitted so that idempotent confirm/cancel links do not
// fail on the second click.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Guest holds the contact details captured with a booking request.
// Only the name is required; email and phone are whatever the guest
// chose to leave.
type Guest struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Reservation is the central entity of the booking subsystem.  It
// records who wants to stay where and for which half-open date range
// [CheckIn, CheckOut).  RoomID narrows the conflict scope to a single
// room; when it is empty the whole apartment is the scope.
//
// Fields:
//
//	ID          - UUID assigned by the repository on creation.
//	ApartmentID - required reference to an apartment.
//	RoomID      - optional reference to a room within the apartment.
//	Guest       - contact info for the booking guest.
//	CheckIn     - first night, inclusive (date only, UTC midnight).
//	CheckOut    - departure day, exclusive.
//	GuestsCount - optional number of guests.
//	Notes       - optional free text from the booking form.
//	Status      - lifecycle state (pending/confirmed/cancelled/completed).
//	TotalAmount - optional quoted price; informational only.
//	Currency    - ISO currency code for TotalAmount (e.g. NGN).
//	Tags        - optional labels used for admin filtering.
//	CreatedAt   - set once at creation, immutable afterwards.
//	UpdatedAt   - refreshed on every mutation.
type Reservation struct {
	ID          string    `json:"id"`
	ApartmentID string    `json:"apartmentId"`
	RoomID      string    `json:"roomId,omitempty"`
	Guest       Guest     `json:"guest"`
	CheckIn     time.Time `json:"checkIn"`
	CheckOut    time.Time `json:"checkOut"`
	GuestsCount int       `json:"guestsCount,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Status      Status    `json:"status"`
	TotalAmount float64   `json:"totalAmount,omitempty"`
	Currency    string    `json:"currency,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ScopeKey returns the key date-range conflicts are checked against:
// the room when one is set, otherwise the apartment.
func (r Reservation) ScopeKey() string {
	if r.RoomID != "" {
		return "room:" + r.RoomID
	}
	return "apartment:" + r.ApartmentID
}

// Nights returns the number of nights covered by the reservation,
// rounding partial days up.  A malformed range yields zero.
func (r Reservation) Nights() int {
	return NightsBetween(r.CheckIn, r.CheckOut)
}

// NightsBetween computes ceil((out-in)/24h) and never returns a
// negative count.
func NightsBetween(in, out time.Time) int {
	d := out.Sub(in)
	if d <= 0 {
		return 0
	}
	n := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		n++
	}
	return n
}
