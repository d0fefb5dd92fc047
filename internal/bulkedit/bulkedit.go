// Package bulkedit applies one uniform change to every date of a range.
package bulkedit

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/julianstephens/hotelcal/internal/calendar"
	"github.com/julianstephens/hotelcal/internal/constants"
	"github.com/julianstephens/hotelcal/internal/inventory"
	"github.com/julianstephens/hotelcal/internal/logger"
	"github.com/julianstephens/hotelcal/internal/models"
	"github.com/julianstephens/hotelcal/internal/utils"
	"github.com/julianstephens/hotelcal/internal/validation"
)

// Result describes what a bulk edit changed.
type Result struct {
	RequestID string
	RoomID    string
	// Affected is the number of window dates inside the range.
	Affected int
	// Applied lists the numeric fields written to every affected date.
	Applied []models.Field
	// Rejected holds the reason each supplied numeric field was skipped.
	Rejected map[models.Field]error
	Closed   bool
}

// NewRequest builds a request for the dates selected by a drag. Numeric
// fields and status are left for the form to fill.
func NewRequest(roomID string, from, to time.Time) models.BulkEditRequest {
	return models.BulkEditRequest{
		ID:         uuid.NewString(),
		FromDate:   utils.DateKey(from),
		ToDate:     utils.DateKey(to),
		RoomTypeID: roomID,
		RoomStatus: constants.RoomStatusOpen,
	}
}

// Apply writes req to every window date d with from <= d <= to. The returned
// store holds all changes or, on error, is s itself. Numeric fields that fail
// to parse are skipped for the whole range and reported in Result.Rejected;
// the room status is always written. A reversed range, a range outside the
// window and an unknown room all leave s unchanged with Affected == 0.
func Apply(req models.BulkEditRequest, window calendar.Window, s *inventory.Store) (*inventory.Store, Result, error) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	res := Result{RequestID: req.ID, RoomID: req.RoomTypeID, Rejected: map[models.Field]error{}}
	reqLog := logger.With("request_id", req.ID, "room", req.RoomTypeID)

	if err := validation.CheckBulkEdit(req); err != nil {
		return s, res, err
	}
	if _, ok := s.Room(req.RoomTypeID); !ok {
		reqLog.Debug("bulk edit for unknown room ignored")
		return s, res, nil
	}

	// keys were validated above
	from, _ := utils.ParseDateKey(req.FromDate)
	to, _ := utils.ParseDateKey(req.ToDate)
	dates := window.Between(from, to)
	res.Affected = len(dates)
	if len(dates) == 0 {
		reqLog.Debug("bulk edit range covers no window dates", "from", req.FromDate, "to", req.ToDate)
		return s, res, nil
	}

	warnIgnoredDays(reqLog, req.DaysOfWeek)

	values := parseFields(reqLog, req, &res)
	res.Closed = req.RoomStatus == constants.RoomStatusClose

	txn := s.Begin()
	for _, d := range dates {
		for _, f := range res.Applied {
			if err := txn.SetValue(req.RoomTypeID, f, d, values[f]); err != nil {
				return s, res, fmt.Errorf("bulk edit %s: %w", req.ID, err)
			}
		}
		if err := txn.SetClosed(req.RoomTypeID, d, res.Closed); err != nil {
			return s, res, fmt.Errorf("bulk edit %s: %w", req.ID, err)
		}
	}
	next := txn.Commit()

	reqLog.Info("bulk edit applied",
		"from", req.FromDate,
		"to", req.ToDate,
		"affected", res.Affected,
		"closed", res.Closed,
		"rejected", len(res.Rejected),
	)
	return next, res, nil
}

// ApplyAll applies req to every room type, one room at a time. Either every
// room is updated or s is returned unchanged.
func ApplyAll(req models.BulkEditRequest, window calendar.Window, s *inventory.Store) (*inventory.Store, []Result, error) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	next := s
	var results []Result
	for _, rt := range s.Rooms() {
		roomReq := req
		roomReq.RoomTypeID = rt.ID

		var (
			res Result
			err error
		)
		next, res, err = Apply(roomReq, window, next)
		if err != nil {
			return s, nil, err
		}
		results = append(results, res)
	}
	return next, results, nil
}

// parseFields parses each supplied numeric field once per request.
func parseFields(reqLog *log.Logger, req models.BulkEditRequest, res *Result) map[models.Field]int {
	values := make(map[models.Field]int, 2)
	raw := []struct {
		field models.Field
		value string
	}{
		{models.FieldRoomsToSell, req.RoomsToSell},
		{models.FieldRates, req.Price},
	}
	for _, r := range raw {
		if r.value == "" {
			continue
		}
		v, err := inventory.ParseCount(r.value)
		if err != nil {
			res.Rejected[r.field] = err
			reqLog.Warn("bulk edit field rejected", "field", r.field.String(), "value", r.value, "error", err)
			continue
		}
		values[r.field] = v
		res.Applied = append(res.Applied, r.field)
	}
	return values
}

// DaysOfWeek is captured by the forms but does not narrow the range.
func warnIgnoredDays(reqLog *log.Logger, weekdays []time.Weekday) {
	days := make(map[time.Weekday]bool, len(weekdays))
	for _, d := range weekdays {
		days[d] = true
	}
	if len(days) > 0 && len(days) < 7 {
		reqLog.Warn("bulk edit days of week are not applied", "days", len(days))
	}
}
