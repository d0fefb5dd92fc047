// Package calendar maps calendar dates onto the fixed-length per-room data
// arrays and owns the rolling window of dates shown by the grid.
package calendar

import (
	"time"

	"github.com/julianstephens/hotelcal/internal/constants"
	"github.com/julianstephens/hotelcal/internal/utils"
)

// IndexForDate converts date to a position in a data array of length n whose
// index 0 is base. The result is clamped to [0, n-1]: dates before base map to
// the first slot and dates past the end map to the last one.
func IndexForDate(date, base time.Time, n int) int {
	if n <= 0 {
		return 0
	}
	idx := utils.DaysBetween(base, date)
	if idx < 0 {
		return 0
	}
	if idx > n-1 {
		return n - 1
	}
	return idx
}

// Window is an ordered run of consecutive dates anchored at Start.
// It is a value type; navigation returns a new window.
type Window struct {
	Start time.Time
	Dates []time.Time
}

// NewWindow generates days consecutive dates beginning at start.
func NewWindow(start time.Time, days int) Window {
	if days < 1 {
		days = constants.WindowDays
	}
	start = utils.Day(start)
	dates := make([]time.Time, days)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
	}
	return Window{Start: start, Dates: dates}
}

// Len returns the number of dates in the window.
func (w Window) Len() int {
	return len(w.Dates)
}

// End returns the last date of the window.
func (w Window) End() time.Time {
	if len(w.Dates) == 0 {
		return w.Start
	}
	return w.Dates[len(w.Dates)-1]
}

// Shift returns the window moved by days (negative moves backwards).
func (w Window) Shift(days int) Window {
	return NewWindow(w.Start.AddDate(0, 0, days), w.Len())
}

// Next moves the window one navigation step forward.
func (w Window) Next() Window {
	return w.Shift(constants.NavStepDays)
}

// Previous moves the window one navigation step back.
func (w Window) Previous() Window {
	return w.Shift(-constants.NavStepDays)
}

// JumpTo regenerates the window starting at start.
func (w Window) JumpTo(start time.Time) Window {
	return NewWindow(start, w.Len())
}

// Date returns the date at idx, and false when idx is outside the window.
func (w Window) Date(idx int) (time.Time, bool) {
	if idx < 0 || idx >= len(w.Dates) {
		return time.Time{}, false
	}
	return w.Dates[idx], true
}

// IndexOf returns the window position of date, or -1 when it is not shown.
func (w Window) IndexOf(date time.Time) int {
	idx := utils.DaysBetween(w.Start, date)
	if idx < 0 || idx >= len(w.Dates) {
		return -1
	}
	return idx
}

// Between returns the window dates d with from <= d <= to, compared by calendar day.
func (w Window) Between(from, to time.Time) []time.Time {
	from, to = utils.Day(from), utils.Day(to)
	var out []time.Time
	for _, d := range w.Dates {
		if d.Before(from) || d.After(to) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Label renders the window as "19 Oct 2026 - 18 Nov 2026".
func (w Window) Label() string {
	return utils.FormatDateRange(w.Start, w.End())
}

// MonthHeader marks the first window position of a calendar month.
type MonthHeader struct {
	Index int
	Title string
}

// MonthHeaders returns one header for the first date and one for every date
// where the month changes inside the window.
func (w Window) MonthHeaders() []MonthHeader {
	var headers []MonthHeader
	for i, d := range w.Dates {
		if i == 0 || d.Month() != w.Dates[i-1].Month() {
			headers = append(headers, MonthHeader{Index: i, Title: d.Format("January 2006")})
		}
	}
	return headers
}
