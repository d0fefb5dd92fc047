package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/hotelcal/internal/constants"
	"github.com/julianstephens/hotelcal/internal/keyring"
	"github.com/julianstephens/hotelcal/internal/storage"
	"github.com/julianstephens/hotelcal/internal/validation"
)

// errWarn marks a check that found something worth mentioning but not a failure.
var errWarn = errors.New("warning")

type DoctorCmd struct{}

type check struct {
	name string
	run  func(ctx *Context) error
	// loadsFeed marks the reachability check; needsFeed checks are skipped when it fails.
	loadsFeed bool
	needsFeed bool
}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	ctx.println("Running diagnostics...")
	ctx.println()
	defer ctx.Store.Close()

	checks := []check{
		{name: "Feed reachable", run: checkFeedReachable, loadsFeed: true},
		{name: "Schema version", run: checkSchemaVersion, needsFeed: true},
		{name: "Feed validation", run: checkValidation, needsFeed: true},
		{name: "Log file", run: checkLogFile},
		{name: "Keyring", run: checkKeyring},
		{name: "Clock/timezone", run: checkClockTimezone},
	}

	hasError := false
	feedOK := true
	for _, c := range checks {
		if c.needsFeed && !feedOK {
			ctx.printf("⊘ %s: SKIPPED (feed not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.printf("✓ %s: OK\n", c.name)
		case errors.Is(err, errWarn):
			ctx.printf("⚠ %s: WARNING\n", c.name)
			ctx.printf("   %v\n", err)
		default:
			ctx.printf("❌ %s: FAIL\n", c.name)
			ctx.printf("   Error: %v\n", err)
			hasError = true
			if c.loadsFeed {
				feedOK = false
			}
		}
	}

	ctx.println()
	if hasError {
		ctx.println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.println("All diagnostics passed!")
	return nil
}

func checkFeedReachable(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load feed: %w", err)
	}
	if _, err := storage.ReadFeed(ctx.Store); err != nil {
		return err
	}
	return nil
}

func checkSchemaVersion(ctx *Context) error {
	reporter, ok := ctx.Store.(storage.SchemaReporter)
	if !ok {
		// file feeds have no schema
		return nil
	}
	current, latest, err := reporter.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("feed schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkValidation(ctx *Context) error {
	feed, err := storage.ReadFeed(ctx.Store)
	if err != nil {
		return err
	}
	result := validation.New().ValidateFeed(feed.BaseDate, feed.Rooms, feed.Closed)
	if !result.HasConflicts() {
		return nil
	}
	if n := result.Count(validation.ConflictOverbooked); n == len(result.Conflicts) {
		return fmt.Errorf("%w: %d overbooked date(s), run 'hotelcal validate' for details", errWarn, n)
	}
	return fmt.Errorf("%d conflict(s) found, run 'hotelcal validate' for details", len(result.Conflicts))
}

func checkLogFile(ctx *Context) error {
	path := ctx.LogPath
	if path == "" {
		return fmt.Errorf("%w: file logging is not initialized", errWarn)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("log file is not writable: %w", err)
	}
	return f.Close()
}

func checkKeyring(ctx *Context) error {
	switch keyring.Status() {
	case keyring.StateUnavailable:
		return fmt.Errorf("%w: OS keyring is not available, --source keyring will not work", errWarn)
	case keyring.StateEmpty:
		if ctx.Source == constants.SourceKeyring {
			return fmt.Errorf("no feed connection string stored, run 'hotelcal keyring set'")
		}
	}
	return nil
}

func checkClockTimezone(ctx *Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if _, offset := now.Zone(); offset == 0 && now.Location() == time.UTC {
		ctx.printf("   Note: timezone is UTC\n")
	}
	return nil
}
