package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/hotelcal/internal/engine"
	"github.com/julianstephens/hotelcal/internal/inventory"
	"github.com/julianstephens/hotelcal/internal/storage"
	"github.com/julianstephens/hotelcal/internal/utils"
)

type Context struct {
	Store storage.Provider
	// Source is the --source value the store was opened from.
	Source string
	// Start is the first date of the window; zero means today.
	Start     time.Time
	ConfigDir string
	// LogPath is the active log file, empty when file logging is off.
	LogPath string
	// Out receives command output; nil means stdout.
	Out io.Writer

	loaded *inventory.Store
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

// Inventory loads the feed once and returns its first store version.
func (c *Context) Inventory() (*inventory.Store, error) {
	if c.loaded != nil {
		return c.loaded, nil
	}
	if err := c.Store.Load(); err != nil {
		return nil, err
	}
	feed, err := storage.ReadFeed(c.Store)
	if err != nil {
		return nil, err
	}
	s, err := feed.Inventory()
	if err != nil {
		return nil, fmt.Errorf("failed to build inventory: %w", err)
	}
	c.loaded = s
	return s, nil
}

// Engine returns an engine over the loaded feed, its window at Start.
func (c *Context) Engine() (*engine.Engine, error) {
	s, err := c.Inventory()
	if err != nil {
		return nil, err
	}
	start := c.Start
	if start.IsZero() {
		start = utils.Today()
	}
	return engine.New(s, start), nil
}

// ParseWeekdays parses a comma-separated list of weekdays
func ParseWeekdays(s string) ([]time.Weekday, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	var weekdays []time.Weekday

	dayMap := map[string]time.Weekday{
		"sun":       time.Sunday,
		"sunday":    time.Sunday,
		"mon":       time.Monday,
		"monday":    time.Monday,
		"tue":       time.Tuesday,
		"tuesday":   time.Tuesday,
		"wed":       time.Wednesday,
		"wednesday": time.Wednesday,
		"thu":       time.Thursday,
		"thursday":  time.Thursday,
		"fri":       time.Friday,
		"friday":    time.Friday,
		"sat":       time.Saturday,
		"saturday":  time.Saturday,
	}

	for _, part := range parts {
		part = strings.TrimSpace(strings.ToLower(part))
		if wd, ok := dayMap[part]; ok {
			weekdays = append(weekdays, wd)
		} else {
			// Try parsing as number (0=Sunday, 6=Saturday)
			num, err := strconv.Atoi(part)
			if err == nil && num >= 0 && num <= 6 {
				weekdays = append(weekdays, time.Weekday(num))
			} else {
				return nil, fmt.Errorf("invalid weekday: %s", part)
			}
		}
	}

	return weekdays, nil
}
