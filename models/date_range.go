package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire and SQL format for stay dates.
const DateLayout = "2006-01-02"

var ErrInvalidRange = errors.New("invalid_date_range")

// DateRange is a half-open stay [CheckIn, CheckOut).
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// ParseDateRange parses two YYYY-MM-DD dates. The range must be non-empty.
func ParseDateRange(checkIn, checkOut string) (DateRange, error) {
	ci, err := ParseDate(checkIn)
	if err != nil {
		return DateRange{}, fmt.Errorf("check_in: %w", err)
	}
	co, err := ParseDate(checkOut)
	if err != nil {
		return DateRange{}, fmt.Errorf("check_out: %w", err)
	}
	if !co.After(ci) {
		return DateRange{}, ErrInvalidRange
	}
	return DateRange{CheckIn: ci, CheckOut: co}, nil
}

// ParseDate parses a calendar date at local midnight, matching the
// loc=Local setting of the MySQL DSN.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.Local)
}

// Overlaps reports whether two half-open ranges share at least one night.
// Touching endpoints do not overlap.
func (r DateRange) Overlaps(other DateRange) bool {
	return other.CheckIn.Before(r.CheckOut) && other.CheckOut.After(r.CheckIn)
}

func (r DateRange) CheckInString() string  { return r.CheckIn.Format(DateLayout) }
func (r DateRange) CheckOutString() string { return r.CheckOut.Format(DateLayout) }

func (r DateRange) String() string {
	return r.CheckInString() + " → " + r.CheckOutString()
}
