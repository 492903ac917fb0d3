// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationCreatedEvent is published when a booking request is
// accepted.  It carries enough information for downstream consumers to
// log, notify, or feed analytics without querying the primary database.
type ReservationCreatedEvent struct {
	ReservationID string   `json:"reservation_id"`
	ApartmentID   string   `json:"apartment_id"`
	RoomID        string   `json:"room_id,omitempty"`
	GuestName     string   `json:"guest_name"`
	GuestEmail    string   `json:"guest_email,omitempty"`
	CheckIn       string   `json:"check_in"`
	CheckOut      string   `json:"check_out"`
	Nights        int      `json:"nights"`
	GuestsCount   int      `json:"guests_count,omitempty"`
	TotalAmount   float64  `json:"total_amount,omitempty"`
	Currency      string   `json:"currency,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	CreatedAt     string   `json:"created_at"`
}
