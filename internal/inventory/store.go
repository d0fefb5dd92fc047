// Package inventory holds per-room-type availability, rate and closed-date
// data. A Store is immutable: every mutation produces a new version that
// shares untouched rooms with its parent, so callers can detect changes by
// comparing versions or array identity.
package inventory

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/hotelcal/internal/calendar"
	"github.com/julianstephens/hotelcal/internal/models"
	"github.com/julianstephens/hotelcal/internal/utils"
)

var (
	ErrUnknownRoom      = errors.New("unknown room type")
	ErrUnknownField     = errors.New("unknown field")
	ErrEmptySeries      = errors.New("room type has no data for field")
	ErrNegativeValue    = errors.New("value must not be negative")
	ErrInvalidNumber    = errors.New("value is not a whole number")
	ErrDuplicateRoom    = errors.New("duplicate room type id")
	ErrMisalignedSeries = errors.New("room type series have different lengths")
)

// ParseCount parses raw user input as a non-negative whole number.
func ParseCount(raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, raw)
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNegativeValue, v)
	}
	return v, nil
}

// Store is one immutable version of the inventory.
type Store struct {
	base    time.Time
	rooms   []models.RoomType
	index   map[string]int
	closed  map[string]map[string]bool
	version uint64
}

// New builds the first version of a store. Every room's series must be
// aligned and room ids must be unique.
func New(base time.Time, rooms []models.RoomType) (*Store, error) {
	s := &Store{
		base:   utils.Day(base),
		rooms:  make([]models.RoomType, len(rooms)),
		index:  make(map[string]int, len(rooms)),
		closed: make(map[string]map[string]bool),
	}
	for i, rt := range rooms {
		if _, dup := s.index[rt.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRoom, rt.ID)
		}
		if rt.Data.Len() < 0 {
			return nil, fmt.Errorf("%w: %s", ErrMisalignedSeries, rt.ID)
		}
		rt.Data = models.Series{
			RoomsToSell: append([]int(nil), rt.Data.RoomsToSell...),
			NetBooked:   append([]int(nil), rt.Data.NetBooked...),
			Rates:       append([]int(nil), rt.Data.Rates...),
		}
		s.rooms[i] = rt
		s.index[rt.ID] = i
	}
	return s, nil
}

// WithClosedDates returns a version seeded with closed flags, keyed by room id
// and YYYY-MM-DD date key. Malformed keys fail with utils.ErrInvalidDateKey.
func (s *Store) WithClosedDates(closed map[string]map[string]bool) (*Store, error) {
	txn := s.Begin()
	for roomID, days := range closed {
		for key, isClosed := range days {
			date, err := utils.ParseDateKey(key)
			if err != nil {
				return s, err
			}
			if err := txn.SetClosed(roomID, date, isClosed); err != nil {
				return s, err
			}
		}
	}
	return txn.Commit(), nil
}

// Base returns the calendar date stored at index 0 of every series.
func (s *Store) Base() time.Time {
	return s.base
}

// Version increases by one for every committed change.
func (s *Store) Version() uint64 {
	return s.version
}

// Rooms returns the room types in display order.
func (s *Store) Rooms() []models.RoomType {
	out := make([]models.RoomType, len(s.rooms))
	copy(out, s.rooms)
	return out
}

// Room looks up a room type by id.
func (s *Store) Room(id string) (models.RoomType, bool) {
	i, ok := s.index[id]
	if !ok {
		return models.RoomType{}, false
	}
	return s.rooms[i], true
}

// Series returns the backing array for a room and field, or nil when missing.
func (s *Store) Series(roomID string, f models.Field) []int {
	rt, ok := s.Room(roomID)
	if !ok {
		return nil
	}
	return rt.Data.Get(f)
}

// Value returns the field value stored for date, or 0 when the room or field is missing.
func (s *Store) Value(roomID string, f models.Field, date time.Time) int {
	arr := s.Series(roomID, f)
	if len(arr) == 0 {
		return 0
	}
	return arr[calendar.IndexForDate(date, s.base, len(arr))]
}

// IsClosed reports whether the room is closed on date. Dates default to open.
func (s *Store) IsClosed(roomID string, date time.Time) bool {
	return s.closed[roomID][utils.DateKey(date)]
}

// HasClosedDates reports whether any date of the room is currently closed.
func (s *Store) HasClosedDates(roomID string) bool {
	for _, closed := range s.closed[roomID] {
		if closed {
			return true
		}
	}
	return false
}

// ClosedDates returns a copy of the room's closed-date flags keyed by date key.
func (s *Store) ClosedDates(roomID string) map[string]bool {
	out := make(map[string]bool, len(s.closed[roomID]))
	for k, v := range s.closed[roomID] {
		out[k] = v
	}
	return out
}

// SetValue returns a new version with the field for date replaced by v.
// On error the receiver is returned unchanged.
func (s *Store) SetValue(roomID string, f models.Field, date time.Time, v int) (*Store, error) {
	txn := s.Begin()
	if err := txn.SetValue(roomID, f, date, v); err != nil {
		return s, err
	}
	return txn.Commit(), nil
}

// SetClosed returns a new version with the closed flag for date set.
func (s *Store) SetClosed(roomID string, date time.Time, closed bool) (*Store, error) {
	txn := s.Begin()
	if err := txn.SetClosed(roomID, date, closed); err != nil {
		return s, err
	}
	return txn.Commit(), nil
}

// ToggleClosed flips the closed flag for date; an unset date becomes closed.
func (s *Store) ToggleClosed(roomID string, date time.Time) (*Store, error) {
	txn := s.Begin()
	if _, err := txn.ToggleClosed(roomID, date); err != nil {
		return s, err
	}
	return txn.Commit(), nil
}

// clone copies the top-level containers; arrays and inner maps stay shared.
func (s *Store) clone() *Store {
	next := &Store{
		base:    s.base,
		rooms:   make([]models.RoomType, len(s.rooms)),
		index:   s.index,
		closed:  make(map[string]map[string]bool, len(s.closed)),
		version: s.version,
	}
	copy(next.rooms, s.rooms)
	for k, v := range s.closed {
		next.closed[k] = v
	}
	return next
}
