package validation

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/hotelcal/internal/inventory"
	"github.com/julianstephens/hotelcal/internal/models"
	"github.com/julianstephens/hotelcal/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictOverbooked       ConflictType = "overbooked"
	ConflictMisalignedSeries ConflictType = "misaligned_series"
	ConflictDuplicateRoomID  ConflictType = "duplicate_room_id"
	ConflictMissingRoomID    ConflictType = "missing_room_id"
	ConflictNegativeValue    ConflictType = "negative_value"
	ConflictInvalidDateKey   ConflictType = "invalid_date_key"
	ConflictUnknownRoom      ConflictType = "unknown_room"
)

// Conflict represents a data-quality problem in the inventory feed
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	Items       []string // Room type ids involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// Count returns the number of conflicts of the given type.
func (vr *ValidationResult) Count(ct ConflictType) int {
	n := 0
	for _, c := range vr.Conflicts {
		if c.Type == ct {
			n++
		}
	}
	return n
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator checks inventory data for conflicts. Overbooking is allowed by the
// store and only reported here.
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateFeed checks raw feed data before it is loaded into a store.
// base is the date of index 0; closed is keyed by room id and date key.
func (v *Validator) ValidateFeed(base time.Time, rooms []models.RoomType, closed map[string]map[string]bool) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	seen := make(map[string]int)
	for _, rt := range rooms {
		if rt.ID == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictMissingRoomID,
				Description: fmt.Sprintf("Room type \"%s\" has no id", rt.Name),
				Items:       []string{rt.Name},
			})
			continue
		}
		seen[rt.ID]++
		if seen[rt.ID] == 2 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateRoomID,
				Description: fmt.Sprintf("Duplicate room type id: \"%s\"", rt.ID),
				Items:       []string{rt.ID},
			})
		}
	}

	for _, rt := range rooms {
		d := rt.Data
		if d.Len() < 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type: ConflictMisalignedSeries,
				Description: fmt.Sprintf("Room type \"%s\" has series of different lengths (rooms to sell %d, net booked %d, rates %d)",
					rt.ID, len(d.RoomsToSell), len(d.NetBooked), len(d.Rates)),
				Items: []string{rt.ID},
			})
		}
		result.Conflicts = append(result.Conflicts, negativeValues(base, rt)...)
		result.Conflicts = append(result.Conflicts, overbooked(base, rt)...)
	}

	result.Conflicts = append(result.Conflicts, closedDateConflicts(seen, closed)...)
	return result
}

// ValidateStore checks the current in-memory version, including edits.
func (v *Validator) ValidateStore(s *inventory.Store) ValidationResult {
	rooms := s.Rooms()
	closed := make(map[string]map[string]bool, len(rooms))
	for _, rt := range rooms {
		closed[rt.ID] = s.ClosedDates(rt.ID)
	}
	return v.ValidateFeed(s.Base(), rooms, closed)
}

func negativeValues(base time.Time, rt models.RoomType) []Conflict {
	var conflicts []Conflict
	for _, f := range []models.Field{models.FieldRoomsToSell, models.FieldNetBooked, models.FieldRates} {
		for i, val := range rt.Data.Get(f) {
			if val >= 0 {
				continue
			}
			date := utils.DateKey(utils.AddDays(base, i))
			conflicts = append(conflicts, Conflict{
				Type:        ConflictNegativeValue,
				Description: fmt.Sprintf("Room type \"%s\" has negative %s on %s: %d", rt.ID, f, date, val),
				Date:        date,
				Items:       []string{rt.ID},
			})
		}
	}
	return conflicts
}

func overbooked(base time.Time, rt models.RoomType) []Conflict {
	var conflicts []Conflict
	n := min(len(rt.Data.RoomsToSell), len(rt.Data.NetBooked))
	for i := 0; i < n; i++ {
		booked, sell := rt.Data.NetBooked[i], rt.Data.RoomsToSell[i]
		if booked <= sell {
			continue
		}
		date := utils.DateKey(utils.AddDays(base, i))
		conflicts = append(conflicts, Conflict{
			Type:        ConflictOverbooked,
			Description: fmt.Sprintf("Room type \"%s\" is overbooked on %s: %d booked, %d to sell", rt.ID, date, booked, sell),
			Date:        date,
			Items:       []string{rt.ID},
		})
	}
	return conflicts
}

func closedDateConflicts(known map[string]int, closed map[string]map[string]bool) []Conflict {
	var conflicts []Conflict

	roomIDs := make([]string, 0, len(closed))
	for id := range closed {
		roomIDs = append(roomIDs, id)
	}
	sort.Strings(roomIDs)

	for _, id := range roomIDs {
		if known[id] == 0 {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictUnknownRoom,
				Description: fmt.Sprintf("Closed dates reference unknown room type \"%s\"", id),
				Items:       []string{id},
			})
			continue
		}

		keys := make([]string, 0, len(closed[id]))
		for key := range closed[id] {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if utils.ValidateDateKey(key) {
				continue
			}
			conflicts = append(conflicts, Conflict{
				Type:        ConflictInvalidDateKey,
				Description: fmt.Sprintf("Room type \"%s\" has an invalid closed date key: %q", id, key),
				Date:        key,
				Items:       []string{id},
			})
		}
	}
	return conflicts
}
