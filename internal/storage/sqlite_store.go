package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/hotelcal/internal/logger"
	"github.com/julianstephens/hotelcal/internal/migration"
	"github.com/julianstephens/hotelcal/internal/utils"
)

// SQLiteStore reads a feed from a local SQLite database.
type SQLiteStore struct {
	sqlFeed
	path string
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		sqlFeed: sqlFeed{dialect: migration.SQLite, dir: "sqlite"},
		path:    path,
	}
}

// Init creates the database, applies migrations and seeds the sample feed
// anchored at today when the database has no room types yet.
func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create feed directory: %w", err)
	}

	if err := s.Close(); err != nil {
		return err
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.migrate(func(msg string) { logger.Info(msg, "feed", s.path) }); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := s.seed(SampleDocument(), utils.DateKey(utils.Today())); err != nil {
		return fmt.Errorf("failed to seed feed: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s does not exist", ErrNotInitialized, s.path)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return s.validateSchema()
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

// tableExists checks if a table exists in the SQLite database.
// The check is case-insensitive to match SQLite's behavior.
func (s *SQLiteStore) tableExists(tableName string) (bool, error) {
	var count int
	row := s.db.QueryRow("SELECT count(*) FROM sqlite_master WHERE type='table' AND name COLLATE NOCASE = ?", tableName)
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
