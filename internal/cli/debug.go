package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/julianstephens/hotelcal/internal/utils"
)

type DebugCmd struct {
	DBPath   *DebugDBPathCmd   `cmd:"" help:"Show the feed location."`
	DumpRoom *DebugDumpRoomCmd `cmd:"" help:"Dump a room type as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *Context) error {
	output := map[string]string{
		"source":     ctx.Source,
		"path":       ctx.Store.GetConfigPath(),
		"config_dir": ctx.ConfigDir,
		"log_file":   ctx.LogPath,
	}
	return ctx.printJSON(output)
}

type DebugDumpRoomCmd struct {
	ID string `arg:"" help:"ID of the room type to dump."`
}

// roomDump is a room type together with its closed dates and data range.
type roomDump struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	BaseDate    string   `json:"base_date"`
	Days        int      `json:"days"`
	RoomsToSell []int    `json:"rooms_to_sell"`
	NetBooked   []int    `json:"net_booked"`
	Rates       []int    `json:"rates"`
	ClosedDates []string `json:"closed_dates"`
}

func (cmd *DebugDumpRoomCmd) Run(ctx *Context) error {
	s, err := ctx.Inventory()
	if err != nil {
		return err
	}
	rt, ok := s.Room(cmd.ID)
	if !ok {
		return fmt.Errorf("room type not found: %s", cmd.ID)
	}

	closed := []string{}
	for key, isClosed := range s.ClosedDates(cmd.ID) {
		if isClosed {
			closed = append(closed, key)
		}
	}
	sort.Strings(closed)

	return ctx.printJSON(roomDump{
		ID:          rt.ID,
		Name:        rt.Name,
		BaseDate:    utils.DateKey(s.Base()),
		Days:        rt.Data.Len(),
		RoomsToSell: rt.Data.RoomsToSell,
		NetBooked:   rt.Data.NetBooked,
		Rates:       rt.Data.Rates,
		ClosedDates: closed,
	})
}

func (c *Context) printJSON(v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	c.println(string(jsonBytes))
	return nil
}
