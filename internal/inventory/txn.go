package inventory

import (
	"fmt"
	"time"

	"github.com/julianstephens/hotelcal/internal/calendar"
	"github.com/julianstephens/hotelcal/internal/models"
	"github.com/julianstephens/hotelcal/internal/utils"
)

type seriesKey struct {
	room  string
	field models.Field
}

// Txn batches several mutations into a single new version. Each touched
// array or closed-date map is copied once; the parent store is never written.
type Txn struct {
	parent *Store
	next   *Store
	copied map[seriesKey]bool
	maps   map[string]bool
}

// Begin starts a batch of mutations on top of s.
func (s *Store) Begin() *Txn {
	return &Txn{
		parent: s,
		copied: make(map[seriesKey]bool),
		maps:   make(map[string]bool),
	}
}

func (t *Txn) working() *Store {
	if t.next == nil {
		t.next = t.parent.clone()
	}
	return t.next
}

// current is the store reads should see: pending changes when any exist.
func (t *Txn) current() *Store {
	if t.next != nil {
		return t.next
	}
	return t.parent
}

// SetValue replaces the field value for date. v must be non-negative.
func (t *Txn) SetValue(roomID string, f models.Field, date time.Time, v int) error {
	if v < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeValue, v)
	}
	switch f {
	case models.FieldRoomsToSell, models.FieldNetBooked, models.FieldRates:
	default:
		return fmt.Errorf("%w: %v", ErrUnknownField, f)
	}
	i, ok := t.parent.index[roomID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRoom, roomID)
	}

	cur := t.current().rooms[i].Data.Get(f)
	if len(cur) == 0 {
		return fmt.Errorf("%w: %s/%s", ErrEmptySeries, roomID, f)
	}

	s := t.working()
	key := seriesKey{room: roomID, field: f}
	arr := s.rooms[i].Data.Get(f)
	if !t.copied[key] {
		arr = append([]int(nil), arr...)
		s.rooms[i].Data = s.rooms[i].Data.With(f, arr)
		t.copied[key] = true
	}
	arr[calendar.IndexForDate(date, s.base, len(arr))] = v
	return nil
}

// SetClosed sets the closed flag for date.
func (t *Txn) SetClosed(roomID string, date time.Time, closed bool) error {
	if _, ok := t.parent.index[roomID]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRoom, roomID)
	}
	s := t.working()
	if !t.maps[roomID] {
		m := make(map[string]bool, len(s.closed[roomID])+1)
		for k, v := range s.closed[roomID] {
			m[k] = v
		}
		s.closed[roomID] = m
		t.maps[roomID] = true
	}
	s.closed[roomID][utils.DateKey(date)] = closed
	return nil
}

// ToggleClosed flips the closed flag for date and returns the new value.
func (t *Txn) ToggleClosed(roomID string, date time.Time) (bool, error) {
	closed := !t.IsClosed(roomID, date)
	if err := t.SetClosed(roomID, date, closed); err != nil {
		return false, err
	}
	return closed, nil
}

// IsClosed reads the closed flag including changes pending in the batch.
func (t *Txn) IsClosed(roomID string, date time.Time) bool {
	return t.current().IsClosed(roomID, date)
}

// Commit returns the new version, or the parent when nothing changed. Later
// mutations on t build on the returned version without altering it.
func (t *Txn) Commit() *Store {
	if t.next == nil {
		return t.parent
	}
	t.next.version = t.parent.version + 1
	next := t.next
	t.parent = next
	t.next = nil
	t.copied = make(map[seriesKey]bool)
	t.maps = make(map[string]bool)
	return next
}
