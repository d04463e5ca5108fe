package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRange(t *testing.T, ci, co string) DateRange {
	t.Helper()
	r, err := ParseDateRange(ci, co)
	require.NoError(t, err)
	return r
}

func TestParseDateRange(t *testing.T) {
	r := mustRange(t, "2025-03-10", "2025-03-14")
	assert.Equal(t, "2025-03-10", r.CheckInString())
	assert.Equal(t, "2025-03-14", r.CheckOutString())

	_, err := ParseDateRange("2025-03-14", "2025-03-10")
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = ParseDateRange("2025-03-10", "2025-03-10")
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = ParseDateRange("10/03/2025", "2025-03-14")
	assert.Error(t, err)

	_, err = ParseDateRange("2025-02-30", "2025-03-14")
	assert.Error(t, err)
}

func TestOverlaps(t *testing.T) {
	base := mustRange(t, "2025-01-01", "2025-01-05")

	cases := []struct {
		name     string
		ci, co   string
		expected bool
	}{
		{"identical", "2025-01-01", "2025-01-05", true},
		{"inside", "2025-01-02", "2025-01-03", true},
		{"covers", "2024-12-30", "2025-01-10", true},
		{"tail", "2025-01-04", "2025-01-08", true},
		{"head", "2024-12-28", "2025-01-02", true},
		{"back to back after", "2025-01-05", "2025-01-07", false},
		{"back to back before", "2024-12-28", "2025-01-01", false},
		{"disjoint", "2025-02-01", "2025-02-03", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			other := mustRange(t, tc.ci, tc.co)
			assert.Equal(t, tc.expected, base.Overlaps(other))
			assert.Equal(t, tc.expected, other.Overlaps(base), "overlap must be symmetric")
		})
	}
}

func TestReservationBlocking(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.Local)
	future := now.Add(10 * time.Minute)
	past := now.Add(-time.Minute)

	assert.True(t, Reservation{Status: ReservationConfirmed}.Blocking(now))
	assert.True(t, Reservation{Status: ReservationPending, ExpiresAt: &future}.Blocking(now))
	assert.False(t, Reservation{Status: ReservationPending, ExpiresAt: &past}.Blocking(now))
	assert.False(t, Reservation{Status: ReservationPending}.Blocking(now))
	assert.False(t, Reservation{Status: ReservationReleased}.Blocking(now))
	assert.False(t, Reservation{Status: ReservationExpired, ExpiresAt: &future}.Blocking(now))
}
