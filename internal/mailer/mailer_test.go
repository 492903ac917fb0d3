package mailer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presidentialapts/reservation-api/internal/model"
)

type fakeSender struct {
	err error

	gotTo      string
	gotSubject string
	gotHTML    string
	calls      int
}

func (f *fakeSender) SendEmail(_ context.Context, to, subject, html string) error {
	f.calls++
	f.gotTo = to
	f.gotSubject = subject
	f.gotHTML = html
	return f.err
}

func sampleReservation() model.Reservation {
	return model.Reservation{
		ID:          "res-123",
		ApartmentID: "apt-1",
		RoomID:      "room-2",
		Guest:       model.Guest{Name: "Ada Obi", Email: "ada@example.com", Phone: "+2348000000"},
		CheckIn:     time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:    time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		GuestsCount: 2,
		Notes:       "early check-in if possible",
		Status:      model.StatusPending,
		TotalAmount: 180000,
		Currency:    "NGN",
	}
}

func TestComposeReservationEmail(t *testing.T) {
	subject, html, err := ComposeReservationEmail(sampleReservation(), "https://example.com")
	require.NoError(t, err)

	assert.Contains(t, subject, "Ada Obi")
	assert.Contains(t, subject, "March 10, 2025")
	assert.Contains(t, subject, "March 14, 2025")

	assert.Contains(t, html, "Ada Obi")
	assert.Contains(t, html, "ada@example.com")
	assert.Contains(t, html, ">4<") // nights
	assert.Contains(t, html, "NGN 180000.00")
	assert.Contains(t, html, "early check-in if possible")
	// html/template entity-escapes the ampersand inside href attributes.
	assert.Contains(t, html, "https://example.com/reservation?action=confirmed&amp;reservationId=res-123")
	assert.Contains(t, html, "https://example.com/reservation?action=cancelled&amp;reservationId=res-123")
}

func TestComposeReservationEmailOptionalFields(t *testing.T) {
	res := sampleReservation()
	res.Guest.Email = ""
	res.GuestsCount = 0
	res.TotalAmount = 0
	res.Notes = ""

	_, html, err := ComposeReservationEmail(res, "https://example.com")
	require.NoError(t, err)
	// Missing optional values render as a placeholder, never empty cells.
	assert.Contains(t, html, "—")
	assert.NotContains(t, html, "Notes:")
}

func TestNotifyOnCreateSuccess(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifier(sender, "admin@example.com", "https://example.com")

	ok := n.NotifyOnCreate(context.Background(), sampleReservation())
	assert.True(t, ok)
	assert.Equal(t, 1, sender.calls)
	assert.Equal(t, "admin@example.com", sender.gotTo)
	assert.NotEmpty(t, sender.gotHTML)
}

func TestNotifyOnCreateNoAdminConfigured(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifier(sender, "", "https://example.com")

	ok := n.NotifyOnCreate(context.Background(), sampleReservation())
	assert.False(t, ok)
	assert.Zero(t, sender.calls)
}

func TestNotifyOnCreateSendFailureIsSwallowed(t *testing.T) {
	sender := &fakeSender{err: errors.New("sendgrid 500")}
	n := NewNotifier(sender, "admin@example.com", "https://example.com")

	ok := n.NotifyOnCreate(context.Background(), sampleReservation())
	assert.False(t, ok)
	assert.Equal(t, 1, sender.calls)
}
