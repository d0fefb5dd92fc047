package cli

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/hotelcal/internal/bulkedit"
	"github.com/julianstephens/hotelcal/internal/editor"
	"github.com/julianstephens/hotelcal/internal/inventory"
	"github.com/julianstephens/hotelcal/internal/models"
	"github.com/julianstephens/hotelcal/internal/storage"
)

func TestGridCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	cmd := &GridCmd{Days: 7}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("grid command failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{"19 Oct 2026 - 18 Nov 2026", "Superior Room", "Family Room", "Rooms to sell", "Net booked", "Mon 19", "Sun 25"} {
		if !strings.Contains(got, want) {
			t.Errorf("grid output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Mon 26") {
		t.Errorf("grid output should stop after 7 days:\n%s", got)
	}
	if n := strings.Count(got, "closed"); n != 2 {
		t.Errorf("closed cells = %d, want 2", n)
	}
}

func TestGridCmdRoomFilter(t *testing.T) {
	ctx, out := setupTestContext(t)
	if err := (&GridCmd{Room: "family", Days: 3}).Run(ctx); err != nil {
		t.Fatalf("grid command failed: %v", err)
	}
	if strings.Contains(out.String(), "Superior Room") {
		t.Errorf("filtered grid should only show family:\n%s", out.String())
	}

	if err := (&GridCmd{Room: "penthouse", Days: 3}).Run(ctx); err == nil {
		t.Error("grid command should fail for an unknown room")
	}
	if err := (&GridCmd{Days: 0}).Validate(); err == nil {
		t.Error("Validate() should reject --days 0")
	}
}

func TestSegmentsCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	if err := (&SegmentsCmd{Room: "superior"}).Run(ctx); err != nil {
		t.Fatalf("segments command failed: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "3 segments") {
		t.Errorf("segments output should report 3 runs:\n%s", got)
	}
	for _, want := range []string{"2026-10-19", "2026-10-20", "2026-10-21", "2026-10-22", "2026-10-23", "2026-11-18"} {
		if !strings.Contains(got, want) {
			t.Errorf("segments output missing %q:\n%s", want, got)
		}
	}
}

func TestBulkCmd(t *testing.T) {
	tests := []struct {
		name    string
		cmd     BulkCmd
		want    []string
		notWant []string
	}{
		{
			name: "close a range with rooms to sell",
			cmd:  BulkCmd{Room: "superior", From: "2026-10-25", To: "2026-10-27", Rooms: "3", Status: "close"},
			want: []string{"✓ Superior Room: 3 date(s) closed, roomsToSell set", "Sun 25", "Tue 27"},
		},
		{
			name:    "invalid price is skipped",
			cmd:     BulkCmd{Room: "family", From: "2026-10-25", To: "2026-10-26", Price: "abc", Status: "open"},
			want:    []string{"✓ Family Room: 2 date(s) open", "⚠ rates skipped"},
			notWant: []string{"rates set"},
		},
		{
			name: "all rooms",
			cmd:  BulkCmd{All: true, From: "2026-10-25", To: "2026-10-25", Price: "4000", Status: "open", Days: "sun"},
			want: []string{"✓ Superior Room: 1 date(s) open, rates set", "✓ Family Room: 1 date(s) open, rates set"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := setupTestContext(t)
			if err := tt.cmd.Validate(); err != nil {
				t.Fatalf("Validate() failed: %v", err)
			}
			if err := tt.cmd.Run(ctx); err != nil {
				t.Fatalf("bulk command failed: %v", err)
			}
			got := out.String()
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("bulk output missing %q:\n%s", w, got)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(got, w) {
					t.Errorf("bulk output should not contain %q:\n%s", w, got)
				}
			}
		})
	}
}

func TestBulkCmdValidate(t *testing.T) {
	tests := []struct {
		name string
		cmd  BulkCmd
	}{
		{"no target", BulkCmd{From: "2026-10-25", To: "2026-10-26"}},
		{"bad from", BulkCmd{Room: "superior", From: "25/10/2026", To: "2026-10-26"}},
		{"bad to", BulkCmd{Room: "superior", From: "2026-10-25", To: "tomorrow"}},
		{"reversed", BulkCmd{Room: "superior", From: "2026-10-26", To: "2026-10-25"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}

	ctx, _ := setupTestContext(t)
	unknown := &BulkCmd{Room: "penthouse", From: "2026-10-25", To: "2026-10-26", Status: "open"}
	if err := unknown.Run(ctx); !errors.Is(err, inventory.ErrUnknownRoom) {
		t.Errorf("bulk command for unknown room error = %v, want %v", err, inventory.ErrUnknownRoom)
	}
}

func TestEditCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	cmd := &EditCmd{Room: "superior", Date: "2026-10-20", Field: "rooms", Value: "5"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("edit command failed: %v", err)
	}
	if !strings.Contains(out.String(), "Rooms to sell on 20 Oct 2026: 8 → 5") {
		t.Errorf("edit output = %q", out.String())
	}
}

func TestEditCmdErrors(t *testing.T) {
	tests := []struct {
		name    string
		cmd     EditCmd
		wantErr error
	}{
		{"negative value", EditCmd{Room: "superior", Date: "2026-10-20", Field: "rates", Value: "-1"}, editor.ErrRejected},
		{"not a number", EditCmd{Room: "superior", Date: "2026-10-20", Field: "rates", Value: "lots"}, editor.ErrRejected},
		{"read-only field", EditCmd{Room: "superior", Date: "2026-10-20", Field: "booked", Value: "1"}, nil},
		{"unknown field", EditCmd{Room: "superior", Date: "2026-10-20", Field: "color", Value: "1"}, nil},
		{"unknown room", EditCmd{Room: "penthouse", Date: "2026-10-20", Field: "rates", Value: "1"}, nil},
		{"bad date", EditCmd{Room: "superior", Date: "20 Oct", Field: "rates", Value: "1"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := setupTestContext(t)
			err := tt.cmd.Run(ctx)
			if err == nil {
				t.Fatal("edit command should fail")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestMonthCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	if err := (&MonthCmd{Room: "superior", Month: "2026-10"}).Run(ctx); err != nil {
		t.Fatalf("month command failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Superior Room: October 2026") || !strings.Contains(got, "2 closed date(s) this month") {
		t.Errorf("month output:\n%s", got)
	}

	if err := (&MonthCmd{Room: "superior", Month: "October"}).Run(ctx); err == nil {
		t.Error("month command should reject a malformed month")
	}
	if err := (&MonthCmd{Room: "penthouse"}).Run(ctx); err == nil {
		t.Error("month command should reject an unknown room")
	}
}

func TestValidateCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	if err := (&ValidateCmd{}).Run(ctx); err != nil {
		t.Fatalf("validate command failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Validating 2 room type(s)") {
		t.Errorf("validate output:\n%s", got)
	}
	if !strings.Contains(got, `"family" is overbooked on 2026-10-21`) {
		t.Errorf("validate should report the overbooked date:\n%s", got)
	}
}

func TestInitCmd(t *testing.T) {
	dir := t.TempDir()

	t.Run("sample source creates sqlite feed", func(t *testing.T) {
		ctx, out := setupTestContext(t)
		ctx.Store, ctx.Source = storage.NewSampleStore(), "sample"
		path := filepath.Join(dir, "feed.db")

		if err := (&InitCmd{Path: path}).Run(ctx); err != nil {
			t.Fatalf("init command failed: %v", err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("feed database not created: %v", err)
		}
		if !strings.Contains(out.String(), "Use it with --source "+path) {
			t.Errorf("init output = %q", out.String())
		}

		out.Reset()
		if err := (&InitCmd{Path: path}).Run(ctx); err != nil {
			t.Fatalf("second init failed: %v", err)
		}
		if !strings.Contains(out.String(), "Snapshot of existing feed: "+filepath.Join(dir, "snapshots", "feed-")) {
			t.Errorf("re-init should snapshot the feed first: %q", out.String())
		}
	})

	t.Run("json source", func(t *testing.T) {
		path := filepath.Join(dir, "feed.json")
		ctx, out := setupTestContext(t)
		ctx.Store, ctx.Source = storage.NewJSONStore(path), path

		if err := (&InitCmd{}).Run(ctx); err != nil {
			t.Fatalf("init command failed: %v", err)
		}
		if strings.Contains(out.String(), "Use it with") {
			t.Errorf("init of the selected source should not print a hint: %q", out.String())
		}
		if err := (&InitCmd{}).Run(ctx); !errors.Is(err, storage.ErrAlreadyInitialized) {
			t.Errorf("second init error = %v, want ErrAlreadyInitialized", err)
		}
	})
}

func TestDoctorCmd(t *testing.T) {
	gokeyring.MockInit()

	ctx, out := setupTestContext(t)
	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Fatalf("doctor failed: %v\n%s", err, out.String())
	}
	got := out.String()
	for _, want := range []string{"✓ Feed reachable: OK", "✓ Schema version: OK", "⚠ Feed validation: WARNING", "1 overbooked date(s)", "All diagnostics passed!"} {
		if !strings.Contains(got, want) {
			t.Errorf("doctor output missing %q:\n%s", want, got)
		}
	}
}

func TestDoctorCmdMissingFeed(t *testing.T) {
	gokeyring.MockInit()

	ctx, out := setupTestContext(t)
	ctx.Store = storage.NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Fatal("doctor should fail when the feed is missing")
	}
	got := out.String()
	if !strings.Contains(got, "❌ Feed reachable: FAIL") || !strings.Contains(got, "⊘ Feed validation: SKIPPED") {
		t.Errorf("doctor output:\n%s", got)
	}
}

func TestDebugDBPathCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	if err := (&DebugDBPathCmd{}).Run(ctx); err != nil {
		t.Fatalf("debug db-path command failed: %v", err)
	}
	var got map[string]string
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got["path"] != ctx.Store.GetConfigPath() {
		t.Errorf("path = %q, want %q", got["path"], ctx.Store.GetConfigPath())
	}
}

func TestDebugDumpRoomCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	if err := (&DebugDumpRoomCmd{ID: "superior"}).Run(ctx); err != nil {
		t.Fatalf("debug dump-room command failed: %v", err)
	}

	var got roomDump
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got.Name != "Superior Room" || got.BaseDate != "2026-10-19" || got.Days != 31 {
		t.Errorf("dump = %+v", got)
	}
	if want := []string{"2026-10-21", "2026-10-22"}; !reflect.DeepEqual(got.ClosedDates, want) {
		t.Errorf("closed dates = %v, want %v", got.ClosedDates, want)
	}
	if len(got.Rates) != 31 || got.Rates[0] != 3500 {
		t.Errorf("rates = %v", got.Rates)
	}

	err := (&DebugDumpRoomCmd{ID: "penthouse"}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected 'not found' error, got: %v", err)
	}
}

func TestFormatResultNoDates(t *testing.T) {
	rooms := []models.RoomType{{ID: "superior", Name: "Superior Room"}}
	got := FormatResult(rooms, bulkedit.Result{RoomID: "superior"})
	if got != "Superior Room: no dates in range" {
		t.Errorf("FormatResult() = %q", got)
	}
	if got := FormatResult(nil, bulkedit.Result{RoomID: "penthouse"}); got != "penthouse: no dates in range" {
		t.Errorf("FormatResult() = %q", got)
	}
}
