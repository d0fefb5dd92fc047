// Package keyring keeps the Postgres feed connection string in the OS keyring
// so it never has to appear on the command line.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/hotelcal/internal/constants"
)

var (
	// ErrNotFound is returned when no feed connection string is stored
	ErrNotFound = errors.New("feed connection string not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
	ErrEmptyDSN           = errors.New("connection string cannot be empty")
)

// State describes what the keyring currently holds for hotelcal.
type State int

const (
	StateUnavailable State = iota
	StateEmpty
	StateStored
)

func (s State) String() string {
	switch s {
	case StateStored:
		return "stored"
	case StateEmpty:
		return "empty"
	default:
		return "unavailable"
	}
}

// GetFeedDSN returns the stored feed connection string.
func GetFeedDSN() (string, error) {
	dsn, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return dsn, nil
}

// SetFeedDSN stores the feed connection string, replacing any previous one.
func SetFeedDSN(dsn string) error {
	if dsn == "" {
		return ErrEmptyDSN
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, dsn); err != nil {
		return fmt.Errorf("%w: failed to store connection string: %v", ErrKeyringUnavailable, err)
	}
	return nil
}

// DeleteFeedDSN removes the stored connection string.
func DeleteFeedDSN() error {
	err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: failed to delete connection string: %v", ErrKeyringUnavailable, err)
	}
	return nil
}

// Status probes the keyring without revealing the stored value.
func Status() State {
	_, err := GetFeedDSN()
	switch {
	case err == nil:
		return StateStored
	case errors.Is(err, ErrNotFound):
		return StateEmpty
	default:
		return StateUnavailable
	}
}

// IsAvailable reports whether the OS keyring can be used at all.
func IsAvailable() bool {
	return Status() != StateUnavailable
}
