package cli

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/hotelcal/internal/logger"
	"github.com/julianstephens/hotelcal/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	eng, err := ctx.Engine()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	logger.Info("starting tui", "source", ctx.Store.GetConfigPath(), "rooms", len(eng.Store().Rooms()))
	p := tea.NewProgram(tui.NewModel(eng, ctx.Store.GetConfigPath()), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
