// Package selection tracks pointer drags over the date cells of the grid.
//
// A Machine is a small value type with pure transitions: every event returns
// the next machine, and PointerUp additionally returns the Resolution the
// caller should act on. The machine never touches inventory data.
package selection

import "github.com/julianstephens/hotelcal/internal/models"

// Action is what a finished gesture asks the caller to do.
type Action int

const (
	// ActionNone means the release did not end a drag.
	ActionNone Action = iota
	// ActionToggleDate flips the open/closed status of one date.
	ActionToggleDate
	// ActionEditCell opens the inline editor on one numeric cell.
	ActionEditCell
	// ActionStatusRange changes the status of every date in Lo..Hi.
	ActionStatusRange
	// ActionBulkEdit opens the bulk edit form prefilled with Lo..Hi.
	ActionBulkEdit
)

func (a Action) String() string {
	switch a {
	case ActionToggleDate:
		return "toggle-date"
	case ActionEditCell:
		return "edit-cell"
	case ActionStatusRange:
		return "status-range"
	case ActionBulkEdit:
		return "bulk-edit"
	default:
		return "none"
	}
}

// Resolution is the outcome of a release. Lo and Hi are inclusive window
// indices with Lo <= Hi.
type Resolution struct {
	Action Action
	RoomID string
	Kind   models.CellKind
	Lo     int
	Hi     int
}

// Len is the number of dates covered by the resolution.
func (r Resolution) Len() int {
	if r.Action == ActionNone {
		return 0
	}
	return r.Hi - r.Lo + 1
}

// Machine is either idle or dragging over one room's row.
type Machine struct {
	Active  bool
	Anchor  int
	Current int
	RoomID  string
	Kind    models.CellKind
}

// PointerDown starts a drag at idx. A drag that is still active is dropped
// without producing a resolution.
func (m Machine) PointerDown(roomID string, idx int, kind models.CellKind) Machine {
	return Machine{
		Active:  true,
		Anchor:  idx,
		Current: idx,
		RoomID:  roomID,
		Kind:    kind,
	}
}

// PointerMove extends the drag to idx. Moves while idle, or over another
// room, leave the machine unchanged.
func (m Machine) PointerMove(roomID string, idx int) Machine {
	if !m.Active || roomID != m.RoomID {
		return m
	}
	m.Current = idx
	return m
}

// PointerUp ends the drag and returns the action it resolves to. The returned
// machine is always idle.
func (m Machine) PointerUp() (Machine, Resolution) {
	if !m.Active {
		return Machine{}, Resolution{}
	}
	lo, hi := m.Span()
	res := Resolution{RoomID: m.RoomID, Kind: m.Kind, Lo: lo, Hi: hi}

	single := lo == hi
	switch m.Kind {
	case models.CellStatus:
		if single {
			res.Action = ActionToggleDate
		} else {
			res.Action = ActionStatusRange
		}
	case models.CellRoomsToSell, models.CellRates:
		if single {
			res.Action = ActionEditCell
		} else {
			res.Action = ActionBulkEdit
		}
	default:
		res = Resolution{}
	}
	return Machine{}, res
}

// Cancel abandons the drag without a resolution.
func (m Machine) Cancel() Machine {
	return Machine{}
}

// Span returns the ordered bounds of the current drag.
func (m Machine) Span() (lo, hi int) {
	lo, hi = m.Anchor, m.Current
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi
}

// IsMultiCell reports whether the drag currently covers more than one date.
func (m Machine) IsMultiCell() bool {
	return m.Active && m.Anchor != m.Current
}

// InRange reports whether idx of roomID lies inside the active drag.
func (m Machine) InRange(roomID string, idx int) bool {
	if !m.Active || roomID != m.RoomID {
		return false
	}
	lo, hi := m.Span()
	return idx >= lo && idx <= hi
}

// InMultiCellRange is InRange restricted to the drag's row and to drags that
// span more than one date. Single clicks are never highlighted.
func (m Machine) InMultiCellRange(roomID string, idx int, kind models.CellKind) bool {
	return m.IsMultiCell() && kind == m.Kind && m.InRange(roomID, idx)
}
