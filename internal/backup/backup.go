// Package backup snapshots a SQLite inventory feed before init migrates it.
package backup

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/hotelcal/internal/logger"
)

const (
	// MaxSnapshots is the number of snapshots kept per feed
	MaxSnapshots = 5
	DirName      = "snapshots"
	fileSuffix   = ".db"
	stampFormat  = "20060102-150405"
)

// Info describes one snapshot file.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64

	seq int
}

// Manager keeps the snapshots of one feed database in a directory next to it.
type Manager struct {
	dbPath string
	dir    string
	prefix string
}

func NewManager(dbPath string) *Manager {
	base := strings.TrimSuffix(filepath.Base(dbPath), filepath.Ext(dbPath))
	return &Manager{
		dbPath: dbPath,
		dir:    filepath.Join(filepath.Dir(dbPath), DirName),
		prefix: base + "-",
	}
}

// Dir returns the snapshot directory.
func (m *Manager) Dir() string {
	return m.dir
}

// Create writes a snapshot of the feed and prunes old ones.
func (m *Manager) Create() (string, error) {
	if _, err := os.Stat(m.dbPath); os.IsNotExist(err) {
		return "", fmt.Errorf("feed does not exist: %s", m.dbPath)
	}
	if err := os.MkdirAll(m.dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	path, err := m.nextPath(time.Now())
	if err != nil {
		return "", err
	}
	if err := m.vacuumInto(path); err != nil {
		return "", fmt.Errorf("failed to snapshot feed: %w", err)
	}
	logger.Info("feed snapshot created", "feed", m.dbPath, "snapshot", path)

	if err := m.prune(); err != nil {
		logger.Warn("failed to prune feed snapshots", "dir", m.dir, "error", err)
	}
	return path, nil
}

// nextPath picks an unused name for now, adding a sequence number when
// several snapshots land in the same second.
func (m *Manager) nextPath(now time.Time) (string, error) {
	stamp := now.Format(stampFormat)
	for seq := 0; seq <= 100; seq++ {
		name := m.prefix + stamp
		if seq > 0 {
			name += "-" + strconv.Itoa(seq)
		}
		path := filepath.Join(m.dir, name+fileSuffix)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique snapshot filename")
}

// vacuumInto copies the feed with VACUUM INTO so a half-written page is never copied.
func (m *Manager) vacuumInto(dest string) error {
	db, err := sql.Open("sqlite", m.dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("feed database appears to be corrupted: %w", err)
	}
	_, err = db.Exec("VACUUM INTO ?", dest)
	return err
}

// List returns the feed's snapshots, newest first.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if os.IsNotExist(err) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot directory: %w", err)
	}

	var snaps []Info
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, m.prefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		stamp := strings.TrimSuffix(strings.TrimPrefix(name, m.prefix), fileSuffix)

		seq := 0
		if len(stamp) > len(stampFormat) {
			n, err := strconv.Atoi(strings.TrimPrefix(stamp[len(stampFormat):], "-"))
			if err != nil {
				continue
			}
			stamp, seq = stamp[:len(stampFormat)], n
		}
		ts, err := time.ParseInLocation(stampFormat, stamp, time.Local)
		if err != nil {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		snaps = append(snaps, Info{
			Path:      filepath.Join(m.dir, name),
			Timestamp: ts,
			Size:      info.Size(),
			seq:       seq,
		})
	}

	sort.Slice(snaps, func(i, j int) bool {
		if !snaps[i].Timestamp.Equal(snaps[j].Timestamp) {
			return snaps[i].Timestamp.After(snaps[j].Timestamp)
		}
		return snaps[i].seq > snaps[j].seq
	})
	return snaps, nil
}

func (m *Manager) prune() error {
	snaps, err := m.List()
	if err != nil {
		return err
	}
	for i := MaxSnapshots; i < len(snaps); i++ {
		if err := os.Remove(snaps[i].Path); err != nil {
			return fmt.Errorf("failed to remove old snapshot %s: %w", snaps[i].Path, err)
		}
	}
	return nil
}
