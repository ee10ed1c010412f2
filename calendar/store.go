/*
store.go - Persistence interface for holiday calendars

PURPOSE:
  Defines the interface between the calendar logic and holiday storage.
  Rolling conventions never query a store directly: callers take a
  HolidaySet snapshot with Calendar() and roll against that, so the
  predicate handed to the core is pure for the lifetime of the snapshot.

IMPLEMENTATIONS:
  - calendar/store/memory.go: In-memory for testing/dev
  - store/sqlite/sqlite.go: SQLite

EXAMPLE:
  set, err := store.Calendar(ctx, "usny")
  if err != nil {
      return err
  }
  cal := calendar.New(set)
  adjusted, ok := cal.Following(date)

SEE ALSO:
  - holiday.go: Holiday and HolidaySet
*/
package calendar

import "context"

// HolidayStore persists holidays grouped by calendar id.
type HolidayStore interface {
	// SaveHoliday inserts or replaces a holiday (keyed by ID).
	SaveHoliday(ctx context.Context, h Holiday) error

	// DeleteHoliday removes a holiday. Returns generic.ErrHolidayNotFound if
	// the calendar has no holiday with that id.
	DeleteHoliday(ctx context.Context, calendarID, id string) error

	// ListHolidays returns the holidays of a calendar ordered by date.
	ListHolidays(ctx context.Context, calendarID string) ([]Holiday, error)

	// ListCalendars returns the ids of all calendars with at least one holiday.
	ListCalendars(ctx context.Context) ([]string, error)

	// Calendar returns an immutable snapshot of a calendar's holidays.
	// An unknown calendar id yields an empty set (weekends only).
	Calendar(ctx context.Context, calendarID string) (HolidaySet, error)
}
