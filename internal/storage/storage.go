package storage

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/hotelcal/internal/constants"
	"github.com/julianstephens/hotelcal/internal/inventory"
	"github.com/julianstephens/hotelcal/internal/keyring"
	"github.com/julianstephens/hotelcal/internal/models"
	"github.com/julianstephens/hotelcal/internal/utils"
)

// Feed is everything a Provider supplies, read in one pass.
type Feed struct {
	BaseDate time.Time
	Rooms    []models.RoomType
	Closed   map[string]map[string]bool
}

// ReadFeed reads the whole feed from a loaded provider.
func ReadFeed(p Provider) (Feed, error) {
	base, err := p.GetBaseDate()
	if err != nil {
		return Feed{}, fmt.Errorf("failed to read base date: %w", err)
	}
	rooms, err := p.GetRoomTypes()
	if err != nil {
		return Feed{}, fmt.Errorf("failed to read room types: %w", err)
	}
	closed, err := p.GetClosedDates()
	if err != nil {
		return Feed{}, fmt.Errorf("failed to read closed dates: %w", err)
	}
	return Feed{BaseDate: base, Rooms: rooms, Closed: closed}, nil
}

// Inventory builds the first in-memory store version from the feed.
func (f Feed) Inventory() (*inventory.Store, error) {
	s, err := inventory.New(f.BaseDate, f.Rooms)
	if err != nil {
		return nil, err
	}
	return s.WithClosedDates(f.Closed)
}

// IsPostgres reports whether source is a Postgres connection string.
func IsPostgres(source string) bool {
	return strings.HasPrefix(source, "postgres://") || strings.HasPrefix(source, "postgresql://")
}

// Open picks the provider for source: "sample", "keyring" (the Postgres
// connection string stored in the OS keyring), a Postgres URL, a *.json file,
// or otherwise a SQLite database path.
func Open(source string) (Provider, error) {
	source = strings.TrimSpace(source)
	switch {
	case source == "" || source == constants.SourceSample:
		return NewSampleStore(), nil
	case source == constants.SourceKeyring:
		dsn, err := keyring.GetFeedDSN()
		if err != nil {
			return nil, err
		}
		return NewPostgresStore(dsn), nil
	case IsPostgres(source):
		if HasEmbeddedCredentials(source) {
			return nil, ErrEmbeddedCredentials
		}
		return NewPostgresStore(source), nil
	case strings.EqualFold(filepath.Ext(source), ".json"):
		return NewJSONStore(utils.ExpandHome(source)), nil
	default:
		return NewSQLiteStore(utils.ExpandHome(source)), nil
	}
}

func parseBaseDate(key string) (time.Time, error) {
	if key == "" {
		return utils.Today(), nil
	}
	return utils.ParseDateKey(key)
}
