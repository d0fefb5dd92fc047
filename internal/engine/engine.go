// Package engine ties the calendar window, the inventory store, the drag
// machine and the cell editor together. Both the TUI and the CLI drive the
// grid through an Engine.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/hotelcal/internal/bulkedit"
	"github.com/julianstephens/hotelcal/internal/calendar"
	"github.com/julianstephens/hotelcal/internal/constants"
	"github.com/julianstephens/hotelcal/internal/editor"
	"github.com/julianstephens/hotelcal/internal/inventory"
	"github.com/julianstephens/hotelcal/internal/logger"
	"github.com/julianstephens/hotelcal/internal/models"
	"github.com/julianstephens/hotelcal/internal/selection"
)

// AllRooms is the room filter value that shows every room type.
const AllRooms = ""

var ErrNoPendingBulkEdit = errors.New("no bulk edit is waiting for input")

// Outcome is what a pointer release did.
type Outcome struct {
	selection.Resolution
	// Session is set when the release opened the cell editor.
	Session *editor.Session
	// Bulk is set when the release is waiting for the bulk edit form.
	Bulk *models.BulkEditRequest
	// Changed reports whether the store moved to a new version.
	Changed bool
}

// Engine is not safe for concurrent use; the event loop owns it.
type Engine struct {
	store   *inventory.Store
	window  calendar.Window
	machine selection.Machine
	editor  editor.Editor
	pending *models.BulkEditRequest
	filter  string
}

// New creates an engine showing the default window starting at start.
func New(store *inventory.Store, start time.Time) *Engine {
	return &Engine{
		store:  store,
		window: calendar.NewWindow(start, constants.WindowDays),
	}
}

func (e *Engine) Store() *inventory.Store { return e.store }

func (e *Engine) Window() calendar.Window { return e.window }

func (e *Engine) Machine() selection.Machine { return e.machine }

func (e *Engine) Filter() string { return e.filter }

// Editing returns the open cell editor session.
func (e *Engine) Editing() (editor.Session, bool) { return e.editor.Active() }

// Pending returns the drag-initiated bulk edit awaiting the form.
func (e *Engine) Pending() (models.BulkEditRequest, bool) {
	if e.pending == nil {
		return models.BulkEditRequest{}, false
	}
	return *e.pending, true
}

// Next moves the window forward one step.
func (e *Engine) Next() { e.window = e.window.Next() }

// Previous moves the window back one step.
func (e *Engine) Previous() { e.window = e.window.Previous() }

// JumpTo regenerates the window at date.
func (e *Engine) JumpTo(date time.Time) { e.window = e.window.JumpTo(date) }

// SetFilter restricts the visible rooms to roomID, or shows all for AllRooms.
func (e *Engine) SetFilter(roomID string) error {
	if roomID != AllRooms {
		if _, ok := e.store.Room(roomID); !ok {
			return fmt.Errorf("%w: %s", inventory.ErrUnknownRoom, roomID)
		}
	}
	e.filter = roomID
	return nil
}

// VisibleRooms returns the rooms shown under the current filter.
func (e *Engine) VisibleRooms() []models.RoomType {
	if e.filter == AllRooms {
		return e.store.Rooms()
	}
	rt, ok := e.store.Room(e.filter)
	if !ok {
		return nil
	}
	return []models.RoomType{rt}
}

// Segments returns the open/closed runs of roomID over the window.
func (e *Engine) Segments(roomID string) []models.Segment {
	return inventory.BuildSegments(e.store, roomID, e.window.Dates)
}

// PointerDown starts a drag. Callers blur an open cell editor first.
func (e *Engine) PointerDown(roomID string, idx int, kind models.CellKind) {
	e.machine = e.machine.PointerDown(roomID, idx, kind)
}

// PointerMove extends an active drag.
func (e *Engine) PointerMove(roomID string, idx int) {
	e.machine = e.machine.PointerMove(roomID, idx)
}

// CancelDrag abandons the drag in progress.
func (e *Engine) CancelDrag() {
	e.machine = e.machine.Cancel()
}

// PointerUp ends the drag and performs the resulting action.
func (e *Engine) PointerUp() (Outcome, error) {
	var res selection.Resolution
	e.machine, res = e.machine.PointerUp()
	out := Outcome{Resolution: res}
	if res.Action == selection.ActionNone {
		return out, nil
	}

	lo, okLo := e.window.Date(res.Lo)
	hi, okHi := e.window.Date(res.Hi)
	if !okLo || !okHi {
		return Outcome{}, fmt.Errorf("%w: %d..%d", editor.ErrOutOfWindow, res.Lo, res.Hi)
	}

	switch res.Action {
	case selection.ActionToggleDate:
		next, err := e.store.ToggleClosed(res.RoomID, lo)
		if err != nil {
			return out, err
		}
		e.store, out.Changed = next, true
	case selection.ActionEditCell:
		sess, err := e.editor.Begin(e.store, e.window, res.RoomID, res.Lo, res.Kind)
		if err != nil {
			return out, err
		}
		out.Session = &sess
	case selection.ActionStatusRange:
		next, err := e.setStatusRange(res.RoomID, res.Lo, res.Hi)
		if err != nil {
			return out, err
		}
		e.store, out.Changed = next, true
	case selection.ActionBulkEdit:
		req := bulkedit.NewRequest(res.RoomID, lo, hi)
		e.pending = &req
		out.Bulk = &req
	}
	return out, nil
}

// setStatusRange gives every date in lo..hi the opposite of the status the
// first date had when the drag was released.
func (e *Engine) setStatusRange(roomID string, lo, hi int) (*inventory.Store, error) {
	first, _ := e.window.Date(lo)
	closed := !e.store.IsClosed(roomID, first)

	txn := e.store.Begin()
	for i := lo; i <= hi; i++ {
		d, _ := e.window.Date(i)
		if err := txn.SetClosed(roomID, d, closed); err != nil {
			return e.store, err
		}
	}
	logger.Debug("status range applied", "room", roomID, "from", lo, "to", hi, "closed", closed)
	return txn.Commit(), nil
}

// ToggleDate flips one date without a drag (keyboard space on a status cell).
func (e *Engine) ToggleDate(roomID string, idx int) error {
	e.PointerDown(roomID, idx, models.CellStatus)
	_, err := e.PointerUp()
	return err
}

// CommitEdit stores raw in the open cell; rejected input keeps the editor open.
func (e *Engine) CommitEdit(raw string) (bool, error) {
	return e.swap(e.editor.Commit(e.store, raw))
}

// BlurEdit commits raw and closes the editor whatever the outcome.
func (e *Engine) BlurEdit(raw string) (bool, error) {
	return e.swap(e.editor.Blur(e.store, raw))
}

// CancelEdit closes the editor without storing.
func (e *Engine) CancelEdit() {
	e.editor.Cancel()
}

// ApplyBulk applies req to its room, or to every room when allRooms is set.
// A successful apply consumes the pending drag request, if any.
func (e *Engine) ApplyBulk(req models.BulkEditRequest, allRooms bool) ([]bulkedit.Result, error) {
	var (
		next    *inventory.Store
		results []bulkedit.Result
		err     error
	)
	if allRooms {
		next, results, err = bulkedit.ApplyAll(req, e.window, e.store)
	} else {
		var res bulkedit.Result
		next, res, err = bulkedit.Apply(req, e.window, e.store)
		results = []bulkedit.Result{res}
	}
	if err != nil {
		return nil, err
	}
	e.store = next
	e.pending = nil
	return results, nil
}

// ApplyPending completes the drag-initiated bulk edit with the form values.
func (e *Engine) ApplyPending(roomsToSell, price, status string) (bulkedit.Result, error) {
	if e.pending == nil {
		return bulkedit.Result{}, ErrNoPendingBulkEdit
	}
	req := *e.pending
	req.RoomsToSell, req.Price, req.RoomStatus = roomsToSell, price, status
	results, err := e.ApplyBulk(req, false)
	if err != nil {
		return bulkedit.Result{}, err
	}
	return results[0], nil
}

// DiscardPending drops the drag-initiated bulk edit.
func (e *Engine) DiscardPending() {
	e.pending = nil
}

func (e *Engine) swap(next *inventory.Store, err error) (bool, error) {
	changed := next != e.store
	e.store = next
	return changed, err
}
