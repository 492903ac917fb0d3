package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		// Same-status is a no-op, allowed so repeated confirm links
		// stay idempotent.
		{StatusConfirmed, StatusConfirmed, true},
		{StatusCancelled, StatusCancelled, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted} {
		assert.True(t, ValidStatus(s))
	}
	assert.False(t, ValidStatus("archived"))
	assert.False(t, ValidStatus(""))
}

func TestScopeKey(t *testing.T) {
	r := Reservation{ApartmentID: "apt-1"}
	assert.Equal(t, "apartment:apt-1", r.ScopeKey())

	r.RoomID = "room-2"
	assert.Equal(t, "room:room-2", r.ScopeKey())
}

func TestNightsBetween(t *testing.T) {
	in := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 5, NightsBetween(in, in.AddDate(0, 0, 5)))
	assert.Equal(t, 1, NightsBetween(in, in.AddDate(0, 0, 1)))
	// Partial days round up.
	assert.Equal(t, 2, NightsBetween(in, in.Add(36*time.Hour)))
	// Degenerate ranges never go negative.
	assert.Equal(t, 0, NightsBetween(in, in))
	assert.Equal(t, 0, NightsBetween(in, in.AddDate(0, 0, -3)))
}
