package cli

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

type SegmentsCmd struct {
	Room string `help:"Room type id." short:"r" required:""`
}

func (cmd *SegmentsCmd) Run(ctx *Context) error {
	eng, err := ctx.Engine()
	if err != nil {
		return err
	}
	if err := eng.SetFilter(cmd.Room); err != nil {
		return err
	}

	var rows [][]string
	for _, seg := range eng.Segments(cmd.Room) {
		rows = append(rows, []string{
			string(seg.Status),
			seg.DateKeys[0],
			seg.DateKeys[len(seg.DateKeys)-1],
			strconv.Itoa(seg.Len()),
		})
	}

	ctx.println(eng.Window().Label())
	ctx.println(table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Status", "From", "To", "Dates").
		Rows(rows...).
		String())
	ctx.println(segmentSummary(len(rows)))
	return nil
}

func segmentSummary(n int) string {
	if n == 1 {
		return "1 segment"
	}
	return strconv.Itoa(n) + " segments"
}
