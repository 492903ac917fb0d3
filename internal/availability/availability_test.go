package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presidentialapts/reservation-api/internal/model"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"identical ranges", "2025-01-10", "2025-01-15", "2025-01-10", "2025-01-15", true},
		{"partial overlap", "2025-01-10", "2025-01-15", "2025-01-12", "2025-01-20", true},
		{"contained range", "2025-01-10", "2025-01-20", "2025-01-12", "2025-01-14", true},
		{"touching endpoints do not overlap", "2025-01-10", "2025-01-15", "2025-01-15", "2025-01-20", false},
		{"touching endpoints reversed", "2025-01-15", "2025-01-20", "2025-01-10", "2025-01-15", false},
		{"disjoint", "2025-01-01", "2025-01-05", "2025-02-01", "2025-02-05", false},
		{"single night inside", "2025-01-10", "2025-01-20", "2025-01-14", "2025-01-15", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Overlaps(day(tc.aStart), day(tc.aEnd), day(tc.bStart), day(tc.bEnd))
			assert.Equal(t, tc.want, got)
			// The predicate is symmetric in its two ranges.
			assert.Equal(t, got, Overlaps(day(tc.bStart), day(tc.bEnd), day(tc.aStart), day(tc.aEnd)))
		})
	}
}

// fakeSource returns a fixed slice and records the last scope it was
// asked for.
type fakeSource struct {
	items []model.Reservation
	err   error

	gotApartmentID string
	gotRoomID      string
}

func (f *fakeSource) ListOverlapping(_ context.Context, apartmentID, roomID string, _, _ time.Time) ([]model.Reservation, error) {
	f.gotApartmentID = apartmentID
	f.gotRoomID = roomID
	return f.items, f.err
}

func res(id, apartmentID, roomID, in, out string, status model.Status) model.Reservation {
	return model.Reservation{
		ID:          id,
		ApartmentID: apartmentID,
		RoomID:      roomID,
		CheckIn:     day(in),
		CheckOut:    day(out),
		Status:      status,
	}
}

func TestCheckInvalidRange(t *testing.T) {
	c := NewChecker(&fakeSource{})

	_, err := c.Check(context.Background(), Query{
		ApartmentID: "apt-1",
		CheckIn:     day("2025-01-15"),
		CheckOut:    day("2025-01-10"),
	})
	require.ErrorIs(t, err, ErrInvalidRange)

	// Zero-length stays are rejected too.
	_, err = c.Check(context.Background(), Query{
		ApartmentID: "apt-1",
		CheckIn:     day("2025-01-10"),
		CheckOut:    day("2025-01-10"),
	})
	require.ErrorIs(t, err, ErrInvalidRange)
}

func TestCheckEmptyScope(t *testing.T) {
	c := NewChecker(&fakeSource{})
	got, err := c.Check(context.Background(), Query{
		ApartmentID: "apt-1",
		CheckIn:     day("2025-01-10"),
		CheckOut:    day("2025-01-15"),
	})
	require.NoError(t, err)
	assert.True(t, got.Available)
	assert.Empty(t, got.Conflicts)
}

func TestCheckApartmentScope(t *testing.T) {
	src := &fakeSource{items: []model.Reservation{
		res("r1", "apt-1", "", "2025-01-12", "2025-01-14", model.StatusPending),
		res("r2", "apt-2", "", "2025-01-12", "2025-01-14", model.StatusConfirmed),
		res("r3", "apt-1", "", "2025-01-15", "2025-01-20", model.StatusConfirmed),
	}}
	c := NewChecker(src)

	got, err := c.Check(context.Background(), Query{
		ApartmentID: "apt-1",
		CheckIn:     day("2025-01-10"),
		CheckOut:    day("2025-01-15"),
	})
	require.NoError(t, err)
	assert.False(t, got.Available)
	require.Len(t, got.Conflicts, 1)
	assert.Equal(t, "r1", got.Conflicts[0].ID)
	assert.Equal(t, "apt-1", src.gotApartmentID)
}

func TestCheckRoomScopeWinsOverApartment(t *testing.T) {
	src := &fakeSource{items: []model.Reservation{
		res("r1", "apt-1", "room-a", "2025-01-12", "2025-01-14", model.StatusPending),
		res("r2", "apt-1", "room-b", "2025-01-12", "2025-01-14", model.StatusPending),
	}}
	c := NewChecker(src)

	got, err := c.Check(context.Background(), Query{
		ApartmentID: "apt-1",
		RoomID:      "room-b",
		CheckIn:     day("2025-01-10"),
		CheckOut:    day("2025-01-15"),
	})
	require.NoError(t, err)
	assert.False(t, got.Available)
	require.Len(t, got.Conflicts, 1)
	assert.Equal(t, "r2", got.Conflicts[0].ID)
	assert.Equal(t, "room-b", src.gotRoomID)
}

func TestCheckCancelledStillBlocks(t *testing.T) {
	src := &fakeSource{items: []model.Reservation{
		res("r1", "apt-1", "", "2025-01-12", "2025-01-14", model.StatusCancelled),
		res("r2", "apt-1", "", "2025-01-13", "2025-01-16", model.StatusCompleted),
	}}
	c := NewChecker(src)

	got, err := c.Check(context.Background(), Query{
		ApartmentID: "apt-1",
		CheckIn:     day("2025-01-10"),
		CheckOut:    day("2025-01-15"),
	})
	require.NoError(t, err)
	assert.False(t, got.Available)
	assert.Len(t, got.Conflicts, 2)
}

func TestCheckBackToBackStaysAreAvailable(t *testing.T) {
	src := &fakeSource{items: []model.Reservation{
		res("r1", "apt-1", "", "2025-01-05", "2025-01-10", model.StatusConfirmed),
		res("r2", "apt-1", "", "2025-01-15", "2025-01-20", model.StatusConfirmed),
	}}
	c := NewChecker(src)

	got, err := c.Check(context.Background(), Query{
		ApartmentID: "apt-1",
		CheckIn:     day("2025-01-10"),
		CheckOut:    day("2025-01-15"),
	})
	require.NoError(t, err)
	assert.True(t, got.Available)
	assert.Empty(t, got.Conflicts)
}

func TestCheckSourceErrorPropagates(t *testing.T) {
	boom := errors.New("db down")
	c := NewChecker(&fakeSource{err: boom})

	_, err := c.Check(context.Background(), Query{
		ApartmentID: "apt-1",
		CheckIn:     day("2025-01-10"),
		CheckOut:    day("2025-01-15"),
	})
	require.ErrorIs(t, err, boom)
}
