package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	got, err := parseDate("2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), got)

	// Full timestamps are accepted but truncated to the day.
	got, err = parseDate("2025-03-10T18:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), got)

	_, err = parseDate("10/03/2025")
	assert.Error(t, err)
	_, err = parseDate("")
	assert.Error(t, err)
}
