package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/hotelcal/internal/bulkedit"
	"github.com/julianstephens/hotelcal/internal/constants"
	"github.com/julianstephens/hotelcal/internal/models"
	"github.com/julianstephens/hotelcal/internal/utils"
	"github.com/julianstephens/hotelcal/internal/validation"
)

// BulkCmd applies one change to a date range of the loaded inventory and
// prints the resulting grid. Nothing is written back to the feed.
type BulkCmd struct {
	Room   string `help:"Room type id." short:"r" xor:"target"`
	All    bool   `help:"Apply to every room type." xor:"target"`
	From   string `help:"First date (YYYY-MM-DD)." required:""`
	To     string `help:"Last date (YYYY-MM-DD), inclusive." required:""`
	Rooms  string `help:"Rooms to sell for every date."`
	Price  string `help:"Standard rate for every date."`
	Status string `help:"Room status for every date." enum:"open,close" default:"open"`
	Days   string `help:"Days of week (e.g. mon,tue,sat). Recorded but not applied."`
}

func (cmd *BulkCmd) Validate() error {
	if cmd.Room == "" && !cmd.All {
		return errors.New("one of --room or --all is required")
	}
	if !utils.ValidateDateKey(cmd.From) {
		return fmt.Errorf("invalid --from date: %s", cmd.From)
	}
	if !utils.ValidateDateKey(cmd.To) {
		return fmt.Errorf("invalid --to date: %s", cmd.To)
	}
	if err := validation.CheckDateRange(cmd.From, cmd.To); err != nil {
		return fmt.Errorf("--to must not be before --from: %w", err)
	}
	return nil
}

func (cmd *BulkCmd) Run(ctx *Context) error {
	eng, err := ctx.Engine()
	if err != nil {
		return err
	}
	days, err := ParseWeekdays(cmd.Days)
	if err != nil {
		return err
	}
	from, _ := utils.ParseDateKey(cmd.From)
	to, _ := utils.ParseDateKey(cmd.To)

	// the range only touches window dates, so start the window at from
	eng.JumpTo(from)
	if to.After(eng.Window().End()) {
		ctx.printf("⚠ Only the first %d dates of the range are shown and edited (through %s)\n",
			constants.WindowDays, utils.FormatDate(eng.Window().End()))
	}

	req := bulkedit.NewRequest(cmd.Room, from, to)
	req.RoomsToSell = strings.TrimSpace(cmd.Rooms)
	req.Price = strings.TrimSpace(cmd.Price)
	req.RoomStatus = cmd.Status
	req.DaysOfWeek = days
	if cmd.All {
		// ApplyAll fills in each room id
		if rooms := eng.Store().Rooms(); len(rooms) > 0 {
			req.RoomTypeID = rooms[0].ID
		}
	}

	// unknown rooms are a no-op in the engine, so catch them here
	if cmd.Room != "" {
		if err := eng.SetFilter(cmd.Room); err != nil {
			return err
		}
	}

	results, err := eng.ApplyBulk(req, cmd.All)
	if err != nil {
		return fmt.Errorf("bulk edit failed: %w", err)
	}

	for _, res := range results {
		ctx.println(FormatResult(eng.Store().Rooms(), res))
	}
	ctx.println(RenderGrid(eng, utils.DaysBetween(from, to)+1))
	return nil
}

// FormatResult summarises one room's bulk edit result.
func FormatResult(rooms []models.RoomType, res bulkedit.Result) string {
	name := res.RoomID
	for _, rt := range rooms {
		if rt.ID == res.RoomID {
			name = rt.Name
			break
		}
	}
	if res.Affected == 0 {
		return fmt.Sprintf("%s: no dates in range", name)
	}

	status := constants.RoomStatusOpen
	if res.Closed {
		status = "closed"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "✓ %s: %d date(s) %s", name, res.Affected, status)
	for _, f := range res.Applied {
		fmt.Fprintf(&b, ", %s set", f)
	}
	for _, f := range []models.Field{models.FieldRoomsToSell, models.FieldRates} {
		if err, ok := res.Rejected[f]; ok {
			fmt.Fprintf(&b, "\n  ⚠ %s skipped: %v", f, err)
		}
	}
	return b.String()
}
