package inventory

import (
	"reflect"
	"testing"
	"time"

	"github.com/julianstephens/hotelcal/internal/models"
)

func TestBuildSegments(t *testing.T) {
	s := newTestStore(t)
	s, err := s.WithClosedDates(map[string]map[string]bool{
		"superior": {"2026-10-20": true, "2026-10-21": true},
	})
	if err != nil {
		t.Fatalf("WithClosedDates failed: %v", err)
	}
	dates := []time.Time{day(0), day(1), day(2), day(3)}

	got := BuildSegments(s, "superior", dates)
	want := []models.Segment{
		{Status: models.SegmentOpen, StartIndex: 0, EndIndex: 0, DateKeys: []string{"2026-10-19"}},
		{Status: models.SegmentClosed, StartIndex: 1, EndIndex: 2, DateKeys: []string{"2026-10-20", "2026-10-21"}},
		{Status: models.SegmentOpen, StartIndex: 3, EndIndex: 3, DateKeys: []string{"2026-10-22"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BuildSegments() = %+v, want %+v", got, want)
	}
}

func TestBuildSegmentsEdgeCases(t *testing.T) {
	s := newTestStore(t)

	if got := BuildSegments(s, "superior", nil); len(got) != 0 {
		t.Errorf("empty dates should give no segments, got %+v", got)
	}

	dates := []time.Time{day(0), day(1), day(2)}
	got := BuildSegments(s, "penthouse", dates)
	if len(got) != 1 || got[0].Status != models.SegmentOpen || got[0].Len() != 3 {
		t.Errorf("unknown room should be one open segment, got %+v", got)
	}
}

func TestBuildSegmentsPartitionsDates(t *testing.T) {
	s := newTestStore(t)
	dates := make([]time.Time, 31)
	for i := range dates {
		dates[i] = day(i)
		// close every date whose index has bit 1 or bit 3 set
		if i&0b1010 != 0 {
			var err error
			s, err = s.SetClosed("superior", dates[i], true)
			if err != nil {
				t.Fatalf("SetClosed failed: %v", err)
			}
		}
	}

	segments := BuildSegments(s, "superior", dates)
	next := 0
	for i, seg := range segments {
		if seg.StartIndex != next {
			t.Fatalf("segment %d starts at %d, want %d", i, seg.StartIndex, next)
		}
		if seg.EndIndex < seg.StartIndex || len(seg.DateKeys) != seg.Len() {
			t.Fatalf("segment %d is malformed: %+v", i, seg)
		}
		if i > 0 && segments[i-1].Status == seg.Status {
			t.Fatalf("segments %d and %d share status %s", i-1, i, seg.Status)
		}
		for j := seg.StartIndex; j <= seg.EndIndex; j++ {
			closed := s.IsClosed("superior", dates[j])
			if closed != (seg.Status == models.SegmentClosed) {
				t.Fatalf("date %d has closed=%v inside a %s segment", j, closed, seg.Status)
			}
		}
		next = seg.EndIndex + 1
	}
	if next != len(dates) {
		t.Errorf("segments cover %d dates, want %d", next, len(dates))
	}
}
