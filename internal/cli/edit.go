package cli

import (
	"fmt"

	"github.com/julianstephens/hotelcal/internal/models"
	"github.com/julianstephens/hotelcal/internal/utils"
)

// EditCmd commits one value into a single cell, the way the grid's inline
// editor does.
type EditCmd struct {
	Room  string `help:"Room type id." short:"r" required:""`
	Date  string `help:"Date of the cell (YYYY-MM-DD)." short:"d" required:""`
	Field string `help:"Series to edit (rooms, rates)." short:"f" default:"rooms"`
	Value string `arg:"" help:"New value, a non-negative whole number."`
}

func (cmd *EditCmd) Run(ctx *Context) error {
	field, err := models.ParseField(cmd.Field)
	if err != nil {
		return err
	}
	kind, ok := models.KindFor(field)
	if !ok {
		return fmt.Errorf("%s is read-only", field)
	}
	date, err := utils.ParseDateKey(cmd.Date)
	if err != nil {
		return err
	}

	eng, err := ctx.Engine()
	if err != nil {
		return err
	}
	rt, ok := eng.Store().Room(cmd.Room)
	if !ok {
		return fmt.Errorf("unknown room type: %s", cmd.Room)
	}

	idx := eng.Window().IndexOf(date)
	if idx < 0 {
		eng.JumpTo(date)
		idx = 0
	}

	eng.PointerDown(cmd.Room, idx, kind)
	out, err := eng.PointerUp()
	if err != nil {
		return err
	}
	if out.Session == nil {
		return fmt.Errorf("cell %s %s on %s is not editable", cmd.Room, field, cmd.Date)
	}

	before := out.Session.Initial
	if _, err := eng.CommitEdit(cmd.Value); err != nil {
		eng.CancelEdit()
		return err
	}

	after := eng.Store().Value(cmd.Room, field, date)
	ctx.printf("✓ %s, %s on %s: %s → %d\n", rt.Name, kind.Label(), utils.FormatDate(date), before, after)
	return nil
}
