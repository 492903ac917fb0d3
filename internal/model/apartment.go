package model

import "time"

// Apartment is a bookable serviced apartment.  Marketing content
// (galleries, SEO copy) lives outside this service; only the fields
// the booking flow touches are stored here.
//
// Fields:
//
//	ID          - UUID primary key.
//	Slug        - URL-friendly unique identifier used by public pages.
//	Name        - display name.
//	Description - short description shown on listing pages.
//	MaxGuests   - capacity hint for the booking form.
//	PricePerNight - advertised nightly rate.
//	Currency    - ISO currency code for PricePerNight.
//	IsActive    - inactive apartments are hidden from public browse.
//	CreatedAt   - creation timestamp.
//	UpdatedAt   - last update timestamp.
type Apartment struct {
	ID            string    `json:"id"`
	Slug          string    `json:"slug"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	MaxGuests     int       `json:"maxGuests,omitempty"`
	PricePerNight float64   `json:"pricePerNight,omitempty"`
	Currency      string    `json:"currency,omitempty"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Room is an individually bookable unit inside an apartment.  When a
// reservation carries a room id, availability is checked per room
// rather than across the whole apartment.
type Room struct {
	ID          string    `json:"id"`
	ApartmentID string    `json:"apartmentId"`
	Name        string    `json:"name"`
	MaxGuests   int       `json:"maxGuests,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
