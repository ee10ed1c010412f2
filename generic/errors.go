/*
errors.go - Centralized error types for the accrual engine

PURPOSE:
  All error types in one place for consistency and discoverability.

  The pure core (calendar rolls, day-count functions) never returns errors:
  an unanswerable query is reported as (value, false). The layers that sit
  on top of the core (factory, stores, HTTP API) turn those absent results
  into the sentinels below so callers can branch with errors.Is().

ERROR CATEGORIES:
  1. Absent results - no business day in range, inverted date range
  2. Validation errors - unknown convention names, bad reference periods, bad dates
  3. Store errors - missing holidays

USAGE:
  fraction, err := conv.Fraction(start, end)
  if errors.Is(err, generic.ErrInvertedRange) {
      // start after end: not applicable, which is not the same as zero
  }

SEE ALSO:
  - factory/convention.go: Maps absent core results to these errors
  - api/handlers.go: Maps these errors to HTTP status codes
*/
package generic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNoBusinessDay is returned when a roll runs out of the representable
	// date range before it finds a business day.
	ErrNoBusinessDay = errors.New("no business day within date range")

	// ErrInvertedRange is returned when a day count is asked for start after end.
	ErrInvertedRange = errors.New("inverted date range: start after end")

	// ErrUnknownConvention is returned for an unrecognized convention name.
	ErrUnknownConvention = errors.New("unknown convention")

	// ErrInvalidReferencePeriod is returned when an ACT/ACT-ICMA reference
	// period is empty, inverted or has no usable coupon frequency.
	ErrInvalidReferencePeriod = errors.New("invalid reference period")

	// ErrInvalidRange is returned when a representable date range has Min after Max.
	ErrInvalidRange = errors.New("invalid date range")

	// ErrInvalidDate is returned for dates that are not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")

	// ErrHolidayNotFound is returned when a referenced holiday doesn't exist.
	ErrHolidayNotFound = errors.New("holiday not found")

	// ErrDuplicateHoliday is returned when a calendar already holds a holiday
	// with the same date and name under another id.
	ErrDuplicateHoliday = errors.New("duplicate holiday")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ConventionError names the convention kind and the value that failed to parse.
type ConventionError struct {
	Kind  string // "business_day_convention", "day_count", "frequency"
	Value string
}

func (e *ConventionError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Value)
}

func (e *ConventionError) Unwrap() error {
	return ErrUnknownConvention
}

// NoBusinessDayError records which roll failed and where it started.
type NoBusinessDayError struct {
	Convention string
	Date       Date
	Range      Range
}

func (e *NoBusinessDayError) Error() string {
	return fmt.Sprintf("%s roll of %s: no business day in [%s, %s]",
		e.Convention, e.Date, e.Range.Min, e.Range.Max)
}

func (e *NoBusinessDayError) Unwrap() error {
	return ErrNoBusinessDay
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrUnknownConvention) ||
		errors.Is(err, ErrInvalidReferencePeriod) ||
		errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, ErrInvalidDate)
}

// IsAbsent returns true if the error reports a query with no answer rather
// than a failure.
func IsAbsent(err error) bool {
	return errors.Is(err, ErrNoBusinessDay) ||
		errors.Is(err, ErrInvertedRange)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrHolidayNotFound)
}

// IsConflict returns true if the error reports a write that clashes with
// existing data.
func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicateHoliday)
}
