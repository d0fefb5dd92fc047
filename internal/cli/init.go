package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/hotelcal/internal/backup"
	"github.com/julianstephens/hotelcal/internal/constants"
	"github.com/julianstephens/hotelcal/internal/storage"
	"github.com/julianstephens/hotelcal/internal/utils"
)

type InitCmd struct {
	Path string `help:"SQLite feed to create when --source is sample." default:"~/.config/hotelcal/feed.db"`
}

func (c *InitCmd) Run(ctx *Context) error {
	store := ctx.Store
	if ctx.Source == "" || ctx.Source == constants.SourceSample {
		store = storage.NewSQLiteStore(utils.ExpandHome(c.Path))
	}
	defer store.Close()

	// an existing SQLite feed is migrated in place, so keep a copy first
	if sqlite, ok := store.(*storage.SQLiteStore); ok {
		if _, err := os.Stat(sqlite.GetConfigPath()); err == nil {
			snap, err := backup.NewManager(sqlite.GetConfigPath()).Create()
			if err != nil {
				return fmt.Errorf("failed to snapshot existing feed: %w", err)
			}
			ctx.printf("Snapshot of existing feed: %s\n", snap)
		}
	}

	if err := store.Init(); err != nil {
		if errors.Is(err, storage.ErrReadOnly) {
			return errors.New("this feed cannot be initialized; use a SQLite path, JSON file or Postgres source")
		}
		return err
	}
	ctx.printf("Initialized hotelcal feed at: %s\n", store.GetConfigPath())
	if store != ctx.Store {
		ctx.printf("Use it with --source %s\n", store.GetConfigPath())
	}
	return nil
}
