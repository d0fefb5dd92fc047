package storage

import (
	"errors"
	"time"

	"github.com/julianstephens/hotelcal/internal/models"
)

var (
	// ErrNotInitialized is returned by Load when the feed has not been created yet.
	ErrNotInitialized = errors.New("inventory feed not initialized")
	// ErrAlreadyInitialized is returned by Init for file feeds that already exist.
	ErrAlreadyInitialized = errors.New("inventory feed already initialized")
	// ErrReadOnly is returned by Init for feeds that cannot be created.
	ErrReadOnly = errors.New("inventory feed is read-only")
)

// Provider is a read-only source of seed inventory. Edits made in the grid
// are never written back.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Feed
	GetBaseDate() (time.Time, error)
	GetRoomTypes() ([]models.RoomType, error)
	GetClosedDates() (map[string]map[string]bool, error)

	// Utils
	GetConfigPath() string
}

// SchemaReporter is implemented by database feeds that track a schema version.
type SchemaReporter interface {
	SchemaVersion() (current, latest int, err error)
}
