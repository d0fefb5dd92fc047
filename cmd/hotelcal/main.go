package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/hotelcal/internal/cli"
	"github.com/julianstephens/hotelcal/internal/constants"
	"github.com/julianstephens/hotelcal/internal/errors"
	"github.com/julianstephens/hotelcal/internal/logger"
	"github.com/julianstephens/hotelcal/internal/storage"
	"github.com/julianstephens/hotelcal/internal/utils"
)

var CLI struct {
	Version   kong.VersionFlag
	Source    string `help:"Inventory feed: 'sample', 'keyring', a SQLite path, a *.json file or a PostgreSQL URL without a password." default:"sample" env:"HOTELCAL_SOURCE"`
	Debug     bool   `help:"Enable debug logging." env:"HOTELCAL_DEBUG"`
	LogJSON   bool   `help:"Write the log file as JSON lines." name:"log-json" env:"HOTELCAL_LOG_JSON"`
	Start     string `help:"First date of the calendar window (YYYY-MM-DD). Defaults to today."`
	ConfigDir string `help:"Directory for logs." type:"path" default:"~/.config/hotelcal"`

	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive calendar." default:"1"`
	Grid     cli.GridCmd     `cmd:"" help:"Print the calendar window."`
	Segments cli.SegmentsCmd `cmd:"" help:"Print the open/closed runs of a room type."`
	Bulk     cli.BulkCmd     `cmd:"" help:"Apply one change to a range of dates."`
	Edit     cli.EditCmd     `cmd:"" help:"Set a single cell."`
	Month    cli.MonthCmd    `cmd:"" help:"Show the closed dates of a room type for a month."`
	Validate cli.ValidateCmd `cmd:"" help:"Check the feed for data problems."`
	Init     cli.InitCmd     `cmd:"" help:"Create a feed seeded with the sample hotel."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Keyring  cli.KeyringCmd  `cmd:"" help:"Manage the feed connection string in the OS keyring."`
	DebugCmd cli.DebugCmd    `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Hotel inventory calendar: room availability, rates and open/closed status"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	interactive := ctx.Command() == "tui"
	if err := logger.Init(logger.Config{
		Debug:       CLI.Debug,
		ConfigDir:   CLI.ConfigDir,
		Interactive: interactive,
		JSON:        CLI.LogJSON,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file logging disabled: %v\n", err)
	}

	store, err := storage.Open(CLI.Source)
	if err != nil {
		errors.Fatal(err)
	}

	appCtx := &cli.Context{
		Store:     store,
		Source:    CLI.Source,
		ConfigDir: CLI.ConfigDir,
		LogPath:   logger.Path(),
	}
	if CLI.Start != "" {
		start, err := utils.ParseDateKey(CLI.Start)
		if err != nil {
			errors.Fatalf("invalid --start %q: use YYYY-MM-DD", CLI.Start)
		}
		appCtx.Start = start
	}

	logger.Debug("running command", "command", ctx.Command(), "source", store.GetConfigPath())
	errors.Fatal(ctx.Run(appCtx))
}
