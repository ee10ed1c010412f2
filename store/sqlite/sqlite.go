/*
Package sqlite provides a SQLite-backed implementation of calendar.HolidayStore.

PURPOSE:
  Persists holiday calendars. Rolling conventions never query SQLite
  directly: Calendar() loads a calendar into an immutable HolidaySet once,
  and the rolls run against that snapshot. This keeps the predicate given to
  the core pure and keeps per-day queries off the database.

KEY TABLES:
  holidays: One row per holiday, grouped by calendar_id

INDEXES:
  - idx_holidays_calendar_date: Calendar snapshot loads (hot path)
  - idx_holidays_unique: No duplicate (calendar, date, name); violations
    surface as generic.ErrDuplicateHoliday

CONCURRENCY:
  database/sql pooling is already safe for concurrent use. The sync.RWMutex
  serialises writes against each other and against reads, so a snapshot
  never observes half of a holiday edit.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) so readers taking
  snapshots don't block holiday edits.

USAGE:
  store, err := sqlite.New("./data/accrual.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  set, err := store.Calendar(ctx, "usny")
  cal := calendar.New(set)

SEE ALSO:
  - calendar/store.go: Interface definition
  - calendar/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/warp/accrual-engine/calendar"
	"github.com/warp/accrual-engine/generic"
)

// Store implements calendar.HolidayStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS holidays (
		id TEXT NOT NULL,
		calendar_id TEXT NOT NULL,
		date TEXT NOT NULL,
		name TEXT NOT NULL,
		recurring BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TEXT NOT NULL,
		PRIMARY KEY (calendar_id, id)
	);

	CREATE INDEX IF NOT EXISTS idx_holidays_calendar_date
		ON holidays(calendar_id, date);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_holidays_unique
		ON holidays(calendar_id, date, name);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// HOLIDAY STORE IMPLEMENTATION
// =============================================================================

// SaveHoliday inserts a holiday, replacing any holiday with the same id in
// the same calendar.
func (s *Store) SaveHoliday(ctx context.Context, h calendar.Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO holidays (id, calendar_id, date, name, recurring, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(calendar_id, id) DO UPDATE SET
			date = excluded.date,
			name = excluded.name,
			recurring = excluded.recurring
	`

	_, err := s.db.ExecContext(ctx, query,
		h.ID,
		h.CalendarID,
		h.Date.String(),
		h.Name,
		h.Recurring,
		time.Now().UTC().Format(time.RFC3339),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s %s %q", generic.ErrDuplicateHoliday, h.CalendarID, h.Date, h.Name)
	}
	if err != nil {
		return fmt.Errorf("failed to save holiday %s/%s: %w", h.CalendarID, h.ID, err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

// DeleteHoliday deletes a holiday by calendar and id.
func (s *Store) DeleteHoliday(ctx context.Context, calendarID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		"DELETE FROM holidays WHERE calendar_id = ? AND id = ?", calendarID, id)
	if err != nil {
		return fmt.Errorf("failed to delete holiday %s/%s: %w", calendarID, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return generic.ErrHolidayNotFound
	}
	return nil
}

// ListHolidays returns all holidays of a calendar ordered by date.
func (s *Store) ListHolidays(ctx context.Context, calendarID string) ([]calendar.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, calendar_id, date, name, recurring
		FROM holidays
		WHERE calendar_id = ?
		ORDER BY date ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, calendarID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	holidays := []calendar.Holiday{}
	for rows.Next() {
		var h calendar.Holiday
		var dateStr string
		if err := rows.Scan(&h.ID, &h.CalendarID, &dateStr, &h.Name, &h.Recurring); err != nil {
			return nil, err
		}
		h.Date, err = generic.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("holiday %s/%s: %w", h.CalendarID, h.ID, err)
		}
		holidays = append(holidays, h)
	}

	return holidays, rows.Err()
}

// ListCalendars returns the ids of all calendars with holidays.
func (s *Store) ListCalendars(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT calendar_id FROM holidays ORDER BY calendar_id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Calendar loads a calendar into an immutable HolidaySet.
func (s *Store) Calendar(ctx context.Context, calendarID string) (calendar.HolidaySet, error) {
	holidays, err := s.ListHolidays(ctx, calendarID)
	if err != nil {
		return calendar.HolidaySet{}, err
	}
	return calendar.NewHolidaySet(holidays...), nil
}

var _ calendar.HolidayStore = (*Store)(nil)
