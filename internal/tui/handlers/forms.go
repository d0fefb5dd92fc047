// Package handlers builds the TUI's huh forms and turns their values into
// engine requests.
package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/hotelcal/internal/bulkedit"
	"github.com/julianstephens/hotelcal/internal/constants"
	"github.com/julianstephens/hotelcal/internal/engine"
	"github.com/julianstephens/hotelcal/internal/inventory"
	"github.com/julianstephens/hotelcal/internal/models"
	"github.com/julianstephens/hotelcal/internal/utils"
	"github.com/julianstephens/hotelcal/internal/validation"
)

// BulkFormModel holds the values of the form opened by a multi-date drag.
type BulkFormModel struct {
	RoomsToSell string
	Price       string
	Status      string
}

// RangeFormModel holds the values of the full bulk edit form.
type RangeFormModel struct {
	From        string
	To          string
	RoomID      string
	Days        []time.Weekday
	RoomsToSell string
	Price       string
	Status      string
}

// FilterFormModel holds the selected room filter.
type FilterFormModel struct {
	RoomID string
}

// JumpFormModel holds the date to move the window to.
type JumpFormModel struct {
	Date string
}

var errRangeReversed = errors.New("to date must not be before from date")

var weekdays = []time.Weekday{
	time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
	time.Thursday, time.Friday, time.Saturday,
}

// ValidateCount accepts an empty string (field left unchanged) or a
// non-negative integer.
func ValidateCount(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := inventory.ParseCount(s)
	return err
}

// ValidateDate accepts a YYYY-MM-DD date key.
func ValidateDate(s string) error {
	_, err := utils.ParseDateKey(strings.TrimSpace(s))
	return err
}

func statusSelect(value *string) *huh.Select[string] {
	return huh.NewSelect[string]().
		Title("Room status").
		Options(
			huh.NewOption("Open", constants.RoomStatusOpen),
			huh.NewOption("Close", constants.RoomStatusClose),
		).
		Value(value)
}

// NewBulkForm creates the form shown after a drag over rooms-to-sell or rate cells.
func NewBulkForm(fm *BulkFormModel, req models.BulkEditRequest, roomName string) *huh.Form {
	if fm.Status == "" {
		fm.Status = req.RoomStatus
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Bulk edit").
				Description(fmt.Sprintf("%s\n%s to %s", roomName, req.FromDate, req.ToDate)),
			huh.NewInput().
				Title("Rooms to sell").
				Description("Leave empty to keep current values").
				Value(&fm.RoomsToSell).
				Validate(ValidateCount),
			huh.NewInput().
				Title("Price").
				Description("Leave empty to keep current values").
				Value(&fm.Price).
				Validate(ValidateCount),
			statusSelect(&fm.Status),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewRangeForm creates the bulk edit form with an explicit date range and room choice.
func NewRangeForm(fm *RangeFormModel, rooms []models.RoomType) *huh.Form {
	if fm.Status == "" {
		fm.Status = constants.RoomStatusOpen
	}
	roomOptions := []huh.Option[string]{huh.NewOption("All rooms", engine.AllRooms)}
	for _, rt := range rooms {
		roomOptions = append(roomOptions, huh.NewOption(rt.Name, rt.ID))
	}
	dayOptions := make([]huh.Option[time.Weekday], len(weekdays))
	for i, d := range weekdays {
		dayOptions[i] = huh.NewOption(d.String(), d)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("From (YYYY-MM-DD)").
				Value(&fm.From).
				Validate(ValidateDate),
			huh.NewInput().
				Title("To (YYYY-MM-DD)").
				Value(&fm.To).
				Validate(func(s string) error {
					if err := ValidateDate(s); err != nil {
						return err
					}
					if validation.CheckDateRange(strings.TrimSpace(fm.From), strings.TrimSpace(s)) != nil {
						return errRangeReversed
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Room type").
				Options(roomOptions...).
				Value(&fm.RoomID),
		),
		huh.NewGroup(
			huh.NewMultiSelect[time.Weekday]().
				Title("Days of week").
				Options(dayOptions...).
				Value(&fm.Days),
			huh.NewInput().
				Title("Rooms to sell").
				Value(&fm.RoomsToSell).
				Validate(ValidateCount),
			huh.NewInput().
				Title("Price").
				Value(&fm.Price).
				Validate(ValidateCount),
			statusSelect(&fm.Status),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewRangeFormModel prefills the range form with from..to for roomID.
func NewRangeFormModel(roomID string, from, to time.Time) *RangeFormModel {
	return &RangeFormModel{
		From:   utils.DateKey(from),
		To:     utils.DateKey(to),
		RoomID: roomID,
		Days:   append([]time.Weekday(nil), weekdays...),
		Status: constants.RoomStatusOpen,
	}
}

// Request converts the range form into a bulk edit request. allRooms is set
// when the form targets every room type. A reversed range is rejected here
// even though applying it would be a no-op.
func (fm *RangeFormModel) Request() (req models.BulkEditRequest, allRooms bool, err error) {
	from, err := utils.ParseDateKey(strings.TrimSpace(fm.From))
	if err != nil {
		return req, false, err
	}
	to, err := utils.ParseDateKey(strings.TrimSpace(fm.To))
	if err != nil {
		return req, false, err
	}
	allRooms = fm.RoomID == engine.AllRooms

	req = bulkedit.NewRequest(fm.RoomID, from, to)
	req.DaysOfWeek = append([]time.Weekday(nil), fm.Days...)
	req.RoomsToSell = strings.TrimSpace(fm.RoomsToSell)
	req.Price = strings.TrimSpace(fm.Price)
	req.RoomStatus = fm.Status

	if allRooms {
		// ApplyAll fills in the room id per room
		err = validation.CheckDateRange(req.FromDate, req.ToDate)
	} else {
		err = validation.CheckBulkEditForm(req)
	}
	if err != nil {
		return models.BulkEditRequest{}, false, err
	}
	return req, allRooms, nil
}

// NewFilterForm creates the room filter select.
func NewFilterForm(fm *FilterFormModel, rooms []models.RoomType) *huh.Form {
	options := []huh.Option[string]{huh.NewOption("All rooms", engine.AllRooms)}
	for _, rt := range rooms {
		options = append(options, huh.NewOption(rt.Name, rt.ID))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Show room type").
				Options(options...).
				Value(&fm.RoomID),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewJumpForm creates the jump-to-date input.
func NewJumpForm(fm *JumpFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Jump to date (YYYY-MM-DD)").
				Value(&fm.Date).
				Validate(ValidateDate),
		),
	).WithTheme(huh.ThemeDracula())
}

// Target parses the jump date.
func (fm *JumpFormModel) Target() (time.Time, error) {
	return utils.ParseDateKey(strings.TrimSpace(fm.Date))
}
