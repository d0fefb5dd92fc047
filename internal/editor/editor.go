// Package editor implements the inline editor for a single numeric cell.
package editor

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/julianstephens/hotelcal/internal/calendar"
	"github.com/julianstephens/hotelcal/internal/inventory"
	"github.com/julianstephens/hotelcal/internal/logger"
	"github.com/julianstephens/hotelcal/internal/models"
	"github.com/julianstephens/hotelcal/internal/utils"
)

var (
	// ErrRejected wraps every commit whose input could not be stored.
	ErrRejected    = errors.New("edit rejected")
	ErrNoSession   = errors.New("no cell is being edited")
	ErrNotEditable = errors.New("cell is not editable")
	ErrOutOfWindow = errors.New("cell is outside the window")
)

// Session identifies the cell under edit and the value it started with.
type Session struct {
	RoomID  string
	Index   int
	Date    time.Time
	Field   models.Field
	Initial string
}

// Editor holds at most one open session.
type Editor struct {
	active *Session
}

// Begin opens a session on the numeric cell at window index idx. Any session
// already open is replaced without committing.
func (e *Editor) Begin(s *inventory.Store, w calendar.Window, roomID string, idx int, kind models.CellKind) (Session, error) {
	field, ok := kind.Field()
	if !ok {
		return Session{}, fmt.Errorf("%w: %s row", ErrNotEditable, kind)
	}
	date, ok := w.Date(idx)
	if !ok {
		return Session{}, fmt.Errorf("%w: index %d", ErrOutOfWindow, idx)
	}
	if _, ok := s.Room(roomID); !ok {
		return Session{}, fmt.Errorf("%w: %s", inventory.ErrUnknownRoom, roomID)
	}

	sess := Session{
		RoomID:  roomID,
		Index:   idx,
		Date:    date,
		Field:   field,
		Initial: strconv.Itoa(s.Value(roomID, field, date)),
	}
	e.active = &sess
	return sess, nil
}

// Active returns the open session, if any.
func (e *Editor) Active() (Session, bool) {
	if e.active == nil {
		return Session{}, false
	}
	return *e.active, true
}

// Commit parses raw and stores it in the open cell. A rejected value keeps
// the session open so the input can be corrected.
func (e *Editor) Commit(s *inventory.Store, raw string) (*inventory.Store, error) {
	if e.active == nil {
		return s, ErrNoSession
	}
	sess := *e.active

	v, err := inventory.ParseCount(raw)
	if err != nil {
		logger.Debug("cell edit rejected", "room", sess.RoomID, "date", utils.DateKey(sess.Date), "field", sess.Field.String(), "input", raw)
		return s, fmt.Errorf("%w: %w", ErrRejected, err)
	}
	next, err := s.SetValue(sess.RoomID, sess.Field, sess.Date, v)
	if err != nil {
		return s, fmt.Errorf("%w: %w", ErrRejected, err)
	}

	e.active = nil
	return next, nil
}

// Blur commits like Commit but always closes the session.
func (e *Editor) Blur(s *inventory.Store, raw string) (*inventory.Store, error) {
	next, err := e.Commit(s, raw)
	e.active = nil
	return next, err
}

// Cancel closes the session without storing anything.
func (e *Editor) Cancel() {
	e.active = nil
}
