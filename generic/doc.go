/*
Package generic provides the value types shared by the accrual engine.

PURPOSE:
  This package contains the domain-agnostic building blocks used by both the
  business calendar and the day-count engine. Neither of those depends on the
  other; both depend on this package only.

KEY CONCEPTS:
  - Date: An immutable calendar date (date.go)
  - Range: The representable date domain a rolling scan may visit (date.go)
  - Period / Frequency: Accrual and reference coupon periods (period.go)
  - Errors: Sentinels and structured errors for outer layers (errors.go)

DESIGN PRINCIPLES:
  1. Immutability: Every value is passed and returned by value
  2. No I/O: Nothing in this package touches the outside world

USAGE:
  start := generic.NewDate(2024, time.January, 15)
  end := start.AddMonths(6)
  days := generic.DaysBetween(start, end)

SEE ALSO:
  - calendar/: Business-day predicates and rolling conventions
  - daycount/: Day-count fractions
*/
package generic
