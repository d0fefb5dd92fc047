package models

import "time"

// CellKind identifies the row of a room block a pointer gesture happens on.
// Each kind has its own single-click and drag semantics.
type CellKind int

const (
	CellStatus CellKind = iota
	CellRoomsToSell
	CellRates
)

// CellKinds lists the rows of a room block in display order
var CellKinds = []CellKind{CellStatus, CellRoomsToSell, CellRates}

func (k CellKind) String() string {
	switch k {
	case CellStatus:
		return "status"
	case CellRoomsToSell:
		return "roomsToSell"
	case CellRates:
		return "rates"
	default:
		return "unknown"
	}
}

// Label is the row header shown next to the cells.
func (k CellKind) Label() string {
	switch k {
	case CellStatus:
		return "Room status"
	case CellRoomsToSell:
		return "Rooms to sell"
	case CellRates:
		return "Standard rate"
	default:
		return ""
	}
}

// Field returns the numeric series edited through this row; ok is false for the status row.
func (k CellKind) Field() (Field, bool) {
	switch k {
	case CellRoomsToSell:
		return FieldRoomsToSell, true
	case CellRates:
		return FieldRates, true
	default:
		return 0, false
	}
}

// SegmentStatus is the open/closed state of a run of dates
type SegmentStatus string

const (
	SegmentOpen   SegmentStatus = "open"
	SegmentClosed SegmentStatus = "closed"
)

// Segment is a maximal run of consecutive dates sharing the same status.
// StartIndex and EndIndex are inclusive positions in the scanned date sequence.
type Segment struct {
	Status     SegmentStatus `json:"status"`
	StartIndex int           `json:"start_index"`
	EndIndex   int           `json:"end_index"`
	DateKeys   []string      `json:"date_keys"`
}

// Len returns the number of dates covered by the segment.
func (s Segment) Len() int {
	return s.EndIndex - s.StartIndex + 1
}

// BulkEditRequest describes a uniform change over an inclusive date range.
// Numeric fields are raw form strings; empty means "leave unchanged".
type BulkEditRequest struct {
	ID          string         `json:"id"`
	FromDate    string         `json:"from_date" validate:"required,datekey"`
	ToDate      string         `json:"to_date" validate:"required,datekey"`
	RoomTypeID  string         `json:"room_type_id" validate:"required"`
	DaysOfWeek  []time.Weekday `json:"days_of_week" validate:"dive,gte=0,lte=6"`
	RoomsToSell string         `json:"rooms_to_sell"`
	Price       string         `json:"price"`
	RoomStatus  string         `json:"room_status" validate:"omitempty,oneof=open close"`
}

// KindFor returns the row that edits f; ok is false for read-only series.
func KindFor(f Field) (CellKind, bool) {
	switch f {
	case FieldRoomsToSell:
		return CellRoomsToSell, true
	case FieldRates:
		return CellRates, true
	default:
		return 0, false
	}
}
