package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/julianstephens/hotelcal/internal/constants"
	"github.com/julianstephens/hotelcal/internal/migration"
	"github.com/julianstephens/hotelcal/internal/models"
	"github.com/julianstephens/hotelcal/migrations"
)

// sqlFeed holds the queries shared by the SQLite and Postgres feeds.
type sqlFeed struct {
	db      *sql.DB
	dialect migration.Dialect
	dir     string // migrations sub-directory
}

func (f *sqlFeed) ready() error {
	if f.db == nil {
		return ErrNotInitialized
	}
	return nil
}

func (f *sqlFeed) runner() (*migration.Runner, error) {
	sub, err := fs.Sub(migrations.FS, f.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access %s migrations: %w", f.dir, err)
	}
	return migration.NewRunner(f.db, sub, f.dialect), nil
}

func (f *sqlFeed) migrate(logFn func(string)) error {
	r, err := f.runner()
	if err != nil {
		return err
	}
	_, err = r.Apply(logFn)
	return err
}

func (f *sqlFeed) validateSchema() error {
	r, err := f.runner()
	if err != nil {
		return err
	}
	return r.Validate()
}

// SchemaVersion reports the applied and the latest known schema version.
func (f *sqlFeed) SchemaVersion() (int, int, error) {
	if err := f.ready(); err != nil {
		return 0, 0, err
	}
	r, err := f.runner()
	if err != nil {
		return 0, 0, err
	}
	st, err := r.Status()
	return st.Current, st.Latest, err
}

func (f *sqlFeed) GetBaseDate() (time.Time, error) {
	if err := f.ready(); err != nil {
		return time.Time{}, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), constants.FeedQueryTimeout)
	defer cancel()

	var key string
	err := f.db.QueryRowContext(ctx, "SELECT base_date FROM feed_meta WHERE id = 1").Scan(&key)
	if errors.Is(err, sql.ErrNoRows) {
		return parseBaseDate("")
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to query feed_meta: %w", err)
	}
	return parseBaseDate(key)
}

// rowScanner is the part of *sql.Rows the room type scan needs.
type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// scanRoomTypes reads id, name rows and closes rows. index maps each id to its
// position in rooms.
func scanRoomTypes(rows rowScanner) (rooms []models.RoomType, index map[string]int, err error) {
	defer func() {
		if cerr := rows.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	index = make(map[string]int)
	for rows.Next() {
		var rt models.RoomType
		if err := rows.Scan(&rt.ID, &rt.Name); err != nil {
			return nil, nil, fmt.Errorf("failed to scan room type: %w", err)
		}
		index[rt.ID] = len(rooms)
		rooms = append(rooms, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read room_types: %w", err)
	}
	return rooms, index, nil
}

func (f *sqlFeed) GetRoomTypes() ([]models.RoomType, error) {
	if err := f.ready(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), constants.FeedQueryTimeout)
	defer cancel()

	rows, err := f.db.QueryContext(ctx, "SELECT id, name FROM room_types ORDER BY position, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query room_types: %w", err)
	}
	rooms, index, err := scanRoomTypes(rows)
	if err != nil {
		return nil, err
	}

	series, err := f.db.QueryContext(ctx,
		"SELECT room_type_id, rooms_to_sell, net_booked, rate FROM room_series ORDER BY room_type_id, day_index")
	if err != nil {
		return nil, fmt.Errorf("failed to query room_series: %w", err)
	}
	defer series.Close()
	for series.Next() {
		var (
			id                  string
			sell, booked, price int
		)
		if err := series.Scan(&id, &sell, &booked, &price); err != nil {
			return nil, fmt.Errorf("failed to scan room series: %w", err)
		}
		i, ok := index[id]
		if !ok {
			continue
		}
		d := &rooms[i].Data
		d.RoomsToSell = append(d.RoomsToSell, sell)
		d.NetBooked = append(d.NetBooked, booked)
		d.Rates = append(d.Rates, price)
	}
	return rooms, series.Err()
}

func (f *sqlFeed) GetClosedDates() (map[string]map[string]bool, error) {
	if err := f.ready(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), constants.FeedQueryTimeout)
	defer cancel()

	rows, err := f.db.QueryContext(ctx, "SELECT room_type_id, date_key, closed FROM closed_dates")
	if err != nil {
		return nil, fmt.Errorf("failed to query closed_dates: %w", err)
	}
	defer rows.Close()

	closed := make(map[string]map[string]bool)
	for rows.Next() {
		var (
			id, key string
			flag    bool
		)
		if err := rows.Scan(&id, &key, &flag); err != nil {
			return nil, fmt.Errorf("failed to scan closed date: %w", err)
		}
		if closed[id] == nil {
			closed[id] = make(map[string]bool)
		}
		closed[id][key] = flag
	}
	return closed, rows.Err()
}

// seed writes doc into an empty feed. A feed that already has room types is
// left alone.
func (f *sqlFeed) seed(doc *Document, baseKey string) error {
	var n int
	if err := f.db.QueryRow("SELECT count(*) FROM room_types").Scan(&n); err != nil {
		return fmt.Errorf("failed to count room types: %w", err)
	}
	if n > 0 {
		return nil
	}

	b := f.dialect.Bind
	tx, err := f.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM feed_meta"); err != nil {
		return fmt.Errorf("failed to clear feed_meta: %w", err)
	}
	if _, err := tx.Exec(
		fmt.Sprintf("INSERT INTO feed_meta (id, name, base_date) VALUES (1, %s, %s)", b(1), b(2)),
		doc.Name, baseKey,
	); err != nil {
		return fmt.Errorf("failed to write feed_meta: %w", err)
	}

	roomStmt := fmt.Sprintf("INSERT INTO room_types (id, name, position) VALUES (%s, %s, %s)", b(1), b(2), b(3))
	seriesStmt := fmt.Sprintf(
		"INSERT INTO room_series (room_type_id, day_index, rooms_to_sell, net_booked, rate) VALUES (%s, %s, %s, %s, %s)",
		b(1), b(2), b(3), b(4), b(5))
	for pos, rt := range doc.RoomTypes {
		if _, err := tx.Exec(roomStmt, rt.ID, rt.Name, pos); err != nil {
			return fmt.Errorf("failed to write room type %s: %w", rt.ID, err)
		}
		n := rt.Data.Len()
		if n < 0 {
			return fmt.Errorf("room type %s: series have different lengths", rt.ID)
		}
		for i := 0; i < n; i++ {
			if _, err := tx.Exec(seriesStmt, rt.ID, i, rt.Data.RoomsToSell[i], rt.Data.NetBooked[i], rt.Data.Rates[i]); err != nil {
				return fmt.Errorf("failed to write series for %s: %w", rt.ID, err)
			}
		}
	}

	closedStmt := fmt.Sprintf("INSERT INTO closed_dates (room_type_id, date_key, closed) VALUES (%s, %s, %s)", b(1), b(2), b(3))
	for id, days := range doc.ClosedDates {
		for key, flag := range days {
			if _, err := tx.Exec(closedStmt, id, key, flag); err != nil {
				return fmt.Errorf("failed to write closed date %s/%s: %w", id, key, err)
			}
		}
	}
	return tx.Commit()
}
