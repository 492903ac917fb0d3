// Package mailer composes and delivers the admin notification that
// fires when a reservation is created.  Delivery is best-effort: a
// failure is logged and reported as a flag, never as an error that
// could fail or roll back the booking itself.
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/presidentialapts/reservation-api/internal/model"
)

// Sender delivers a single HTML email.  The production implementation
// is SendGrid; tests substitute a fake.
type Sender interface {
	SendEmail(ctx context.Context, to, subject, html string) error
}

// SendGridSender sends mail through the SendGrid v3 API.
type SendGridSender struct {
	client    *sendgrid.Client
	fromName  string
	fromEmail string
}

// NewSendGridSender builds a sender with the given API key and from
// address.
func NewSendGridSender(apiKey, fromName, fromEmail string) *SendGridSender {
	return &SendGridSender{
		client:    sendgrid.NewSendClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

// SendEmail submits the message and treats any non-2xx response as a
// failure.
func (s *SendGridSender) SendEmail(_ context.Context, to, subject, html string) error {
	from := sgmail.NewEmail(s.fromName, s.fromEmail)
	msg := sgmail.NewSingleEmail(from, subject, sgmail.NewEmail("", to), "", html)
	resp, err := s.client.Send(msg)
	if err != nil {
		return err
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("sendgrid: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// Notifier composes reservation notifications and hands them to a
// Sender.  AdminEmail is the recipient; BaseURL is the public site
// root used to build the confirm/cancel links.
type Notifier struct {
	sender     Sender
	adminEmail string
	baseURL    string
}

// NewNotifier returns a Notifier.  When adminEmail is empty the
// notifier is a no-op and NotifyOnCreate always reports false.
func NewNotifier(sender Sender, adminEmail, baseURL string) *Notifier {
	return &Notifier{sender: sender, adminEmail: adminEmail, baseURL: baseURL}
}

// NotifyOnCreate sends the admin notification for a freshly created
// reservation.  The returned flag tells the caller whether the email
// was accepted; failures are logged and swallowed.
func (n *Notifier) NotifyOnCreate(ctx context.Context, res model.Reservation) bool {
	if n.adminEmail == "" {
		log.Printf("mailer: admin email not configured, skipping reservation notification")
		return false
	}
	subject, html, err := ComposeReservationEmail(res, n.baseURL)
	if err != nil {
		log.Printf("mailer: compose reservation email failed: %v", err)
		return false
	}
	if err := n.sender.SendEmail(ctx, n.adminEmail, subject, html); err != nil {
		log.Printf("mailer: reservation email failed: %v", err)
		return false
	}
	return true
}

// reservationTmpl renders the admin notification.  Kept deliberately
// plain; the marketing site owns all other email styling.
var reservationTmpl = template.Must(template.New("reservation").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #0f172a;">
  <h1>New Reservation Received</h1>
  <p>A guest just submitted a reservation. Details are below.</p>
  <table cellpadding="6">
    <tr><td>Guest</td><td><strong>{{.GuestName}}</strong></td></tr>
    <tr><td>Email</td><td>{{.GuestEmail}}</td></tr>
    <tr><td>Phone</td><td>{{.GuestPhone}}</td></tr>
    <tr><td>Check-in</td><td>{{.CheckIn}}</td></tr>
    <tr><td>Check-out</td><td>{{.CheckOut}}</td></tr>
    <tr><td>Nights</td><td>{{.Nights}}</td></tr>
    <tr><td>Guests</td><td>{{.GuestsCount}}</td></tr>
    <tr><td>Apartment ID</td><td>{{.ApartmentID}}</td></tr>
    <tr><td>Room ID</td><td>{{.RoomID}}</td></tr>
    <tr><td>Total</td><td>{{.Total}}</td></tr>
  </table>
  <p>
    <a href="{{.ConfirmURL}}">Confirm Reservation</a> |
    <a href="{{.CancelURL}}">Cancel Reservation</a>
  </p>
  {{if .Notes}}<p><strong>Notes:</strong><br/>{{.Notes}}</p>{{end}}
  <p>This message was sent automatically from the reservation system.</p>
</body>
</html>`))

type reservationEmailData struct {
	GuestName   string
	GuestEmail  string
	GuestPhone  string
	CheckIn     string
	CheckOut    string
	Nights      string
	GuestsCount string
	ApartmentID string
	RoomID      string
	Total       string
	Notes       string
	ConfirmURL  string
	CancelURL   string
}

// ComposeReservationEmail builds the subject and HTML body for the
// admin notification.  It is a pure function so tests can assert on
// the rendered output.
func ComposeReservationEmail(res model.Reservation, baseURL string) (string, string, error) {
	subject := fmt.Sprintf("New Reservation • %s • %s - %s",
		orDash(res.Guest.Name), fDate(res.CheckIn), fDate(res.CheckOut))

	data := reservationEmailData{
		GuestName:   orDash(res.Guest.Name),
		GuestEmail:  orDash(res.Guest.Email),
		GuestPhone:  orDash(res.Guest.Phone),
		CheckIn:     fDate(res.CheckIn),
		CheckOut:    fDate(res.CheckOut),
		Nights:      fmt.Sprintf("%d", res.Nights()),
		GuestsCount: "—",
		ApartmentID: orDash(res.ApartmentID),
		RoomID:      orDash(res.RoomID),
		Total:       "—",
		Notes:       res.Notes,
		ConfirmURL:  actionURL(baseURL, res.ID, model.StatusConfirmed),
		CancelURL:   actionURL(baseURL, res.ID, model.StatusCancelled),
	}
	if res.GuestsCount > 0 {
		data.GuestsCount = fmt.Sprintf("%d", res.GuestsCount)
	}
	if res.TotalAmount > 0 {
		currency := res.Currency
		if currency == "" {
			currency = "NGN"
		}
		data.Total = fmt.Sprintf("%s %.2f", currency, res.TotalAmount)
	}

	var buf bytes.Buffer
	if err := reservationTmpl.Execute(&buf, data); err != nil {
		return "", "", err
	}
	return subject, buf.String(), nil
}

// actionURL builds the link an admin clicks to confirm or cancel.
func actionURL(baseURL, id string, next model.Status) string {
	return fmt.Sprintf("%s/reservation?action=%s&reservationId=%s", baseURL, next, id)
}

func fDate(t time.Time) string {
	return t.UTC().Format("January 02, 2006")
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
