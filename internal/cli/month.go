package cli

import (
	"fmt"

	"github.com/julianstephens/hotelcal/internal/tui/components/month"
	"github.com/julianstephens/hotelcal/internal/utils"
)

type MonthCmd struct {
	Room  string `help:"Room type id." short:"r" required:""`
	Month string `help:"Month to show (YYYY-MM). Defaults to the month of --start."`
}

func (cmd *MonthCmd) Run(ctx *Context) error {
	s, err := ctx.Inventory()
	if err != nil {
		return err
	}
	if _, ok := s.Room(cmd.Room); !ok {
		return fmt.Errorf("unknown room type: %s", cmd.Room)
	}

	m := ctx.Start
	if m.IsZero() {
		m = utils.Today()
	}
	if cmd.Month != "" {
		m, err = utils.ParseMonth(cmd.Month)
		if err != nil {
			return err
		}
	}

	ctx.println(month.Render(s, cmd.Room, m))
	return nil
}
