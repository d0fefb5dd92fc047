package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/hotelcal/internal/constants"
)

// ErrInvalidDateKey is returned when an external date key is not a valid YYYY-MM-DD date.
var ErrInvalidDateKey = errors.New("invalid date key")

const day = 24 * time.Hour

// Day normalizes t to midnight UTC of the same calendar date.
// All calendar arithmetic works on normalized days so DST transitions never
// produce fractional day differences.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date, normalized.
func Today() time.Time {
	return Day(time.Now())
}

// AddDays returns the normalized date n days after t (n may be negative).
func AddDays(t time.Time, n int) time.Time {
	return Day(t).AddDate(0, 0, n)
}

// DaysBetween returns the whole number of calendar days from a to b.
// The result is negative when b is before a.
func DaysBetween(a, b time.Time) int {
	diff := Day(b).Sub(Day(a))
	// floor division; normalized days never leave a remainder but keep the
	// rounding direction explicit for negative spans
	n := int(diff / day)
	if diff%day != 0 && diff < 0 {
		n--
	}
	return n
}

// DateKey formats t as the canonical YYYY-MM-DD key.
func DateKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDateKey parses a canonical YYYY-MM-DD key into a normalized date.
// Keys that do not round-trip exactly (for example "2026-1-5") are rejected.
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateKey, key)
	}
	if t.Format(constants.DateFormat) != key {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateKey, key)
	}
	return Day(t), nil
}

// ValidateDateKey reports whether key is a canonical date key.
func ValidateDateKey(key string) bool {
	_, err := ParseDateKey(key)
	return err == nil
}

// ParseMonth parses a YYYY-MM string and returns the first day of that month.
func ParseMonth(s string) (time.Time, error) {
	t, err := time.Parse(constants.MonthFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, use YYYY-MM: %w", s, err)
	}
	return Day(t), nil
}

// DayName returns the short weekday name (Mon, Tue, ...).
func DayName(t time.Time) string {
	return t.Weekday().String()[:3]
}

// FormatDate renders t as "2 Jan 2006".
func FormatDate(t time.Time) string {
	return t.Format(constants.DisplayDateFormat)
}

// FormatDateRange renders an inclusive range as "2 Jan 2006 - 9 Jan 2006".
func FormatDateRange(from, to time.Time) string {
	return FormatDate(from) + " - " + FormatDate(to)
}
