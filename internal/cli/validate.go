package cli

import (
	"fmt"

	"github.com/julianstephens/hotelcal/internal/storage"
	"github.com/julianstephens/hotelcal/internal/validation"
)

type ValidateCmd struct{}

func (cmd *ValidateCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load feed: %w", err)
	}
	defer ctx.Store.Close()

	// Validate the raw feed so misaligned series are reported, not fatal
	feed, err := storage.ReadFeed(ctx.Store)
	if err != nil {
		return err
	}

	ctx.printf("Validating %d room type(s) from %s...\n", len(feed.Rooms), ctx.Store.GetConfigPath())
	result := validation.New().ValidateFeed(feed.BaseDate, feed.Rooms, feed.Closed)

	ctx.println()
	ctx.println(result.FormatReport())
	return nil
}
