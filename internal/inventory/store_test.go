package inventory

import (
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/hotelcal/internal/models"
	"github.com/julianstephens/hotelcal/internal/utils"
)

var base = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(base, []models.RoomType{
		{
			ID:   "superior",
			Name: "Superior Room",
			Data: models.Series{
				RoomsToSell: []int{8, 8, 8},
				NetBooked:   []int{0, 0, 1},
				Rates:       []int{3500, 3500, 3500},
			},
		},
		{
			ID:   "deluxe-balcony",
			Name: "Deluxe Room with Balcony",
			Data: models.Series{
				RoomsToSell: []int{7, 7, 6},
				NetBooked:   []int{0, 0, 0},
				Rates:       []int{3750, 3750, 3750},
			},
		},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s
}

func day(offset int) time.Time {
	return base.AddDate(0, 0, offset)
}

func TestNewRejectsInvalidRooms(t *testing.T) {
	tests := []struct {
		name    string
		rooms   []models.RoomType
		wantErr error
	}{
		{
			name: "duplicate id",
			rooms: []models.RoomType{
				{ID: "a", Data: models.Series{RoomsToSell: []int{1}, NetBooked: []int{0}, Rates: []int{1}}},
				{ID: "a", Data: models.Series{RoomsToSell: []int{1}, NetBooked: []int{0}, Rates: []int{1}}},
			},
			wantErr: ErrDuplicateRoom,
		},
		{
			name: "misaligned series",
			rooms: []models.RoomType{
				{ID: "a", Data: models.Series{RoomsToSell: []int{1, 2}, NetBooked: []int{0}, Rates: []int{1}}},
			},
			wantErr: ErrMisalignedSeries,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(base, tt.rooms)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewCopiesInput(t *testing.T) {
	rates := []int{100, 100}
	s, err := New(base, []models.RoomType{
		{ID: "a", Data: models.Series{RoomsToSell: []int{1, 1}, NetBooked: []int{0, 0}, Rates: rates}},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	rates[0] = 999
	if got := s.Value("a", models.FieldRates, base); got != 100 {
		t.Errorf("store observed caller mutation: got %d, want 100", got)
	}
}

func TestValueClampsOutOfRangeDates(t *testing.T) {
	s := newTestStore(t)
	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{"before base", day(-10), 0},
		{"base", day(0), 0},
		{"inside", day(2), 1},
		{"past end", day(99), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Value("superior", models.FieldNetBooked, tt.date); got != tt.want {
				t.Errorf("Value() = %d, want %d", got, tt.want)
			}
		})
	}

	if got := s.Value("missing", models.FieldRates, base); got != 0 {
		t.Errorf("unknown room Value() = %d, want 0", got)
	}
}

func TestSetValueIsCopyOnWrite(t *testing.T) {
	s := newTestStore(t)
	before := s.Series("superior", models.FieldRoomsToSell)
	untouched := s.Series("deluxe-balcony", models.FieldRoomsToSell)

	next, err := s.SetValue("superior", models.FieldRoomsToSell, day(1), 5)
	if err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}

	got := next.Series("superior", models.FieldRoomsToSell)
	want := []int{8, 5, 8}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("new series = %v, want %v", got, want)
		}
	}
	if before[1] != 8 {
		t.Errorf("previous version was mutated: %v", before)
	}
	if s.Value("superior", models.FieldRoomsToSell, day(1)) != 8 {
		t.Error("previous store observes the new value")
	}
	if &got[0] == &before[0] {
		t.Error("changed series shares its backing array with the previous version")
	}
	if other := next.Series("deluxe-balcony", models.FieldRoomsToSell); &other[0] != &untouched[0] {
		t.Error("untouched room series should be shared between versions")
	}
	if next.Version() != s.Version()+1 {
		t.Errorf("Version() = %d, want %d", next.Version(), s.Version()+1)
	}
}

func TestSetValueErrors(t *testing.T) {
	s := newTestStore(t)
	tests := []struct {
		name    string
		room    string
		field   models.Field
		value   int
		wantErr error
	}{
		{"negative", "superior", models.FieldRates, -1, ErrNegativeValue},
		{"unknown room", "penthouse", models.FieldRates, 1, ErrUnknownRoom},
		{"unknown field", "superior", models.Field(42), 1, ErrUnknownField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := s.SetValue(tt.room, tt.field, base, tt.value)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SetValue() error = %v, want %v", err, tt.wantErr)
			}
			if next != s {
				t.Error("failed SetValue should return the receiver")
			}
		})
	}
}

func TestSetValueEmptySeries(t *testing.T) {
	s, err := New(base, []models.RoomType{{ID: "empty"}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := s.SetValue("empty", models.FieldRates, base, 1); !errors.Is(err, ErrEmptySeries) {
		t.Errorf("SetValue() error = %v, want %v", err, ErrEmptySeries)
	}
	if got := s.Value("empty", models.FieldRates, base); got != 0 {
		t.Errorf("Value() = %d, want 0", got)
	}
}

func TestClosedDates(t *testing.T) {
	s := newTestStore(t)
	if s.IsClosed("superior", base) {
		t.Fatal("dates should default to open")
	}

	closed, err := s.ToggleClosed("superior", base)
	if err != nil {
		t.Fatalf("ToggleClosed failed: %v", err)
	}
	if !closed.IsClosed("superior", base) {
		t.Error("toggle of an unset date should close it")
	}
	if s.IsClosed("superior", base) {
		t.Error("previous version observes the toggle")
	}
	if !closed.HasClosedDates("superior") || closed.HasClosedDates("deluxe-balcony") {
		t.Error("HasClosedDates reports the wrong rooms")
	}

	reopened, err := closed.ToggleClosed("superior", base)
	if err != nil {
		t.Fatalf("ToggleClosed failed: %v", err)
	}
	if reopened.IsClosed("superior", base) || reopened.HasClosedDates("superior") {
		t.Error("second toggle should reopen the date")
	}

	if _, err := s.SetClosed("penthouse", base, true); !errors.Is(err, ErrUnknownRoom) {
		t.Errorf("SetClosed() error = %v, want %v", err, ErrUnknownRoom)
	}
}

func TestClosedDatesIgnoreTimeOfDay(t *testing.T) {
	s := newTestStore(t)
	evening := time.Date(2026, 10, 19, 22, 30, 0, 0, time.UTC)
	next, err := s.SetClosed("superior", evening, true)
	if err != nil {
		t.Fatalf("SetClosed failed: %v", err)
	}
	if !next.IsClosed("superior", base) {
		t.Error("closed flag should be keyed by calendar date")
	}
}

func TestWithClosedDates(t *testing.T) {
	s := newTestStore(t)
	next, err := s.WithClosedDates(map[string]map[string]bool{
		"superior": {"2026-10-20": true, "2026-10-21": false},
	})
	if err != nil {
		t.Fatalf("WithClosedDates failed: %v", err)
	}
	if !next.IsClosed("superior", day(1)) || next.IsClosed("superior", day(2)) {
		t.Errorf("closed flags = %v", next.ClosedDates("superior"))
	}

	_, err = s.WithClosedDates(map[string]map[string]bool{"superior": {"2026-1-5": true}})
	if !errors.Is(err, utils.ErrInvalidDateKey) {
		t.Errorf("WithClosedDates() error = %v, want %v", err, utils.ErrInvalidDateKey)
	}
}

func TestTxnCommitsOneVersion(t *testing.T) {
	s := newTestStore(t)
	txn := s.Begin()
	for i := 0; i < 3; i++ {
		if err := txn.SetValue("superior", models.FieldRates, day(i), 4000); err != nil {
			t.Fatalf("SetValue failed: %v", err)
		}
		if err := txn.SetClosed("superior", day(i), true); err != nil {
			t.Fatalf("SetClosed failed: %v", err)
		}
	}
	next := txn.Commit()

	if next.Version() != s.Version()+1 {
		t.Errorf("Version() = %d, want %d", next.Version(), s.Version()+1)
	}
	for i := 0; i < 3; i++ {
		if next.Value("superior", models.FieldRates, day(i)) != 4000 {
			t.Errorf("rate on day %d not applied", i)
		}
		if s.Value("superior", models.FieldRates, day(i)) != 3500 {
			t.Errorf("parent rate on day %d was mutated", i)
		}
	}
}

func TestTxnReuseAfterCommit(t *testing.T) {
	s := newTestStore(t)
	txn := s.Begin()
	if err := txn.SetValue("superior", models.FieldRates, day(0), 4000); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}
	first := txn.Commit()

	if err := txn.SetClosed("superior", day(1), true); err != nil {
		t.Fatalf("SetClosed failed: %v", err)
	}
	if err := txn.SetValue("superior", models.FieldRates, day(2), 4500); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}
	second := txn.Commit()

	if second.Version() != first.Version()+1 {
		t.Errorf("Version() = %d, want %d", second.Version(), first.Version()+1)
	}
	if got := second.Value("superior", models.FieldRates, day(0)); got != 4000 {
		t.Errorf("second version lost the first commit: rate = %d, want 4000", got)
	}
	if !second.IsClosed("superior", day(1)) || second.Value("superior", models.FieldRates, day(2)) != 4500 {
		t.Error("second commit changes missing")
	}
	if first.IsClosed("superior", day(1)) || first.Value("superior", models.FieldRates, day(2)) != 3500 {
		t.Error("first version was mutated by the reused txn")
	}
	if got := txn.Commit(); got != second {
		t.Error("commit with no new changes should return the last version")
	}
}

func TestTxnWithoutChangesReturnsParent(t *testing.T) {
	s := newTestStore(t)
	if got := s.Begin().Commit(); got != s {
		t.Error("empty commit should return the parent store")
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr error
	}{
		{"5", 5, nil},
		{" 12 ", 12, nil},
		{"0", 0, nil},
		{"-5", 0, ErrNegativeValue},
		{"abc", 0, ErrInvalidNumber},
		{"", 0, ErrInvalidNumber},
		{"4.5", 0, ErrInvalidNumber},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCount(tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseCount(%q) error = %v, want %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseCount(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
