package handler // handler defines http handlers

import (
	"errors"
	"time"

	"github.com/labstack/echo/v4"
)

// dateLayout is the wire format for check-in/check-out values.  The
// booking flow works in whole days, so only the date part is carried.
const dateLayout = "2006-01-02"

// parseDate accepts an ISO date ("2025-01-10") or a full RFC3339
// timestamp, normalized to UTC midnight of that day.  Date validation
// happens here at the boundary; the overlap predicate itself never
// sees malformed input.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.UTC()
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, errors.New("invalid date: " + s)
}

// getUserID extracts the authenticated user id stored by the JWT
// middleware.  Subjects are UUID strings.
func getUserID(c echo.Context) (string, error) {
	if s, ok := c.Get("user_id").(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("invalid user_id in context")
}
