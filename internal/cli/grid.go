package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/hotelcal/internal/engine"
	"github.com/julianstephens/hotelcal/internal/models"
	"github.com/julianstephens/hotelcal/internal/utils"
)

type GridCmd struct {
	Room string `help:"Only show this room type." short:"r"`
	Days int    `help:"Number of window dates to print." default:"14"`
}

func (cmd *GridCmd) Validate() error {
	if cmd.Days < 1 {
		return fmt.Errorf("--days must be at least 1")
	}
	return nil
}

func (cmd *GridCmd) Run(ctx *Context) error {
	eng, err := ctx.Engine()
	if err != nil {
		return err
	}
	if cmd.Room != "" {
		if err := eng.SetFilter(cmd.Room); err != nil {
			return err
		}
	}
	ctx.println(eng.Window().Label())
	ctx.println(RenderGrid(eng, cmd.Days))
	return nil
}

// RenderGrid prints the first days dates of the engine's window as a table,
// four rows per visible room.
func RenderGrid(eng *engine.Engine, days int) string {
	dates := eng.Window().Dates
	if days < len(dates) {
		dates = dates[:days]
	}

	headers := []string{"Room type", ""}
	for _, d := range dates {
		headers = append(headers, fmt.Sprintf("%s %d", utils.DayName(d), d.Day()))
	}

	s := eng.Store()
	var rows [][]string
	for _, rt := range eng.VisibleRooms() {
		status := []string{rt.Name, models.CellStatus.Label()}
		sell := []string{"", models.CellRoomsToSell.Label()}
		booked := []string{"", "Net booked"}
		rates := []string{"", models.CellRates.Label()}
		for _, d := range dates {
			if s.IsClosed(rt.ID, d) {
				status = append(status, "closed")
			} else {
				status = append(status, "open")
			}
			sell = append(sell, strconv.Itoa(s.Value(rt.ID, models.FieldRoomsToSell, d)))
			booked = append(booked, strconv.Itoa(s.Value(rt.ID, models.FieldNetBooked, d)))
			rates = append(rates, strconv.Itoa(s.Value(rt.ID, models.FieldRates, d)))
		}
		rows = append(rows, status, sell, booked, rates)
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		String()
}
