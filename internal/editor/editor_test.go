package editor

import (
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/hotelcal/internal/calendar"
	"github.com/julianstephens/hotelcal/internal/inventory"
	"github.com/julianstephens/hotelcal/internal/models"
)

var base = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*inventory.Store, calendar.Window) {
	t.Helper()
	s, err := inventory.New(base, []models.RoomType{{
		ID:   "superior",
		Name: "Superior Room",
		Data: models.Series{
			RoomsToSell: []int{8, 8, 8},
			NetBooked:   []int{0, 0, 0},
			Rates:       []int{3500, 3500, 3500},
		},
	}})
	if err != nil {
		t.Fatalf("inventory.New failed: %v", err)
	}
	return s, calendar.NewWindow(base, 3)
}

func TestCommit(t *testing.T) {
	s, w := setup(t)
	var e Editor

	sess, err := e.Begin(s, w, "superior", 1, models.CellRoomsToSell)
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if sess.Initial != "8" || sess.Field != models.FieldRoomsToSell {
		t.Errorf("session = %+v", sess)
	}

	next, err := e.Commit(s, "5")
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	got := next.Series("superior", models.FieldRoomsToSell)
	if got[0] != 8 || got[1] != 5 || got[2] != 8 {
		t.Errorf("rooms to sell = %v, want [8 5 8]", got)
	}
	if old := s.Series("superior", models.FieldRoomsToSell); old[1] != 8 {
		t.Errorf("previous version mutated: %v", old)
	}
	if _, ok := e.Active(); ok {
		t.Error("session should close after a successful commit")
	}
}

func TestCommitRejected(t *testing.T) {
	for _, raw := range []string{"-5", "abc", ""} {
		t.Run(raw, func(t *testing.T) {
			s, w := setup(t)
			var e Editor
			if _, err := e.Begin(s, w, "superior", 0, models.CellRates); err != nil {
				t.Fatalf("Begin failed: %v", err)
			}

			next, err := e.Commit(s, raw)
			if !errors.Is(err, ErrRejected) {
				t.Fatalf("Commit(%q) error = %v, want %v", raw, err, ErrRejected)
			}
			if next != s {
				t.Error("rejected commit should return the same store")
			}
			if _, ok := e.Active(); !ok {
				t.Error("rejected commit should keep the session open")
			}
		})
	}
}

func TestBlurClosesRejectedSession(t *testing.T) {
	s, w := setup(t)
	var e Editor
	if _, err := e.Begin(s, w, "superior", 2, models.CellRates); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	if _, err := e.Blur(s, "-1"); !errors.Is(err, inventory.ErrNegativeValue) {
		t.Errorf("Blur() error = %v, want %v", err, inventory.ErrNegativeValue)
	}
	if _, ok := e.Active(); ok {
		t.Error("blur should close the session")
	}
}

func TestCancel(t *testing.T) {
	s, w := setup(t)
	var e Editor
	if _, err := e.Begin(s, w, "superior", 0, models.CellRoomsToSell); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	e.Cancel()

	if _, err := e.Commit(s, "3"); !errors.Is(err, ErrNoSession) {
		t.Errorf("Commit after cancel error = %v, want %v", err, ErrNoSession)
	}
}

func TestBeginErrors(t *testing.T) {
	s, w := setup(t)
	tests := []struct {
		name    string
		room    string
		idx     int
		kind    models.CellKind
		wantErr error
	}{
		{"status row", "superior", 0, models.CellStatus, ErrNotEditable},
		{"outside window", "superior", 3, models.CellRates, ErrOutOfWindow},
		{"unknown room", "penthouse", 0, models.CellRates, inventory.ErrUnknownRoom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e Editor
			if _, err := e.Begin(s, w, tt.room, tt.idx, tt.kind); !errors.Is(err, tt.wantErr) {
				t.Errorf("Begin() error = %v, want %v", err, tt.wantErr)
			}
			if _, ok := e.Active(); ok {
				t.Error("failed Begin should not open a session")
			}
		})
	}
}
