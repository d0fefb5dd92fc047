package calendar

import (
	"time"

	"github.com/julianstephens/hotelcal/internal/utils"
)

// MonthGrid lays out a calendar month as weeks starting on Sunday.
// Cells outside the month are nil.
func MonthGrid(year int, month time.Month) [][]*time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	var weeks [][]*time.Time
	week := make([]*time.Time, 0, 7)
	for i := 0; i < int(first.Weekday()); i++ {
		week = append(week, nil)
	}

	for d := 1; d <= daysInMonth; d++ {
		date := utils.Day(time.Date(year, month, d, 0, 0, 0, 0, time.UTC))
		week = append(week, &date)
		if len(week) == 7 || d == daysInMonth {
			for len(week) < 7 {
				week = append(week, nil)
			}
			weeks = append(weeks, week)
			week = make([]*time.Time, 0, 7)
		}
	}
	return weeks
}
