package generic

import (
	"strings"
)

// =============================================================================
// PERIOD - Accrual and reference coupon periods
// =============================================================================

// Period is an accrual interval [Start, End].
//
// Examples:
//   - Regular semiannual coupon: 15 Jan - 15 Jul
//   - Short first coupon: issue date - first coupon date
type Period struct {
	Start Date
	End   Date
}

// Contains returns true if the date is within the period [Start, End]
func (p Period) Contains(d Date) bool {
	return d.AfterOrEqual(p.Start) && d.BeforeOrEqual(p.End)
}

// Days returns the actual number of days from Start to End.
func (p Period) Days() int {
	return DaysBetween(p.Start, p.End)
}

// Valid returns true if the period is non-empty and not inverted.
func (p Period) Valid() bool {
	return p.Start.Before(p.End)
}

// String returns a string representation of the period.
func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}

// NextPeriod returns the period of the same number of months that follows p.
// Month arithmetic follows time.AddDate normalization.
func (p Period) NextPeriod(months int) Period {
	return Period{Start: p.End, End: p.End.AddMonths(months)}
}

// =============================================================================
// FREQUENCY - Coupon payments per year
// =============================================================================

type Frequency string

const (
	FreqAnnual     Frequency = "annual"
	FreqSemiannual Frequency = "semiannual"
	FreqQuarterly  Frequency = "quarterly"
	FreqMonthly    Frequency = "monthly"
)

// PerYear returns the number of coupon periods in a year, or 0 for an unknown frequency.
func (f Frequency) PerYear() int {
	switch f {
	case FreqAnnual:
		return 1
	case FreqSemiannual:
		return 2
	case FreqQuarterly:
		return 4
	case FreqMonthly:
		return 12
	default:
		return 0
	}
}

// Months returns the length of one coupon period in months, or 0 if unknown.
func (f Frequency) Months() int {
	if n := f.PerYear(); n > 0 {
		return 12 / n
	}
	return 0
}

// ParseFrequency accepts the canonical names plus a few market shorthands.
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "annual", "annually", "yearly", "1y", "a":
		return FreqAnnual, nil
	case "semiannual", "semi-annual", "semiannually", "6m", "s":
		return FreqSemiannual, nil
	case "quarterly", "3m", "q":
		return FreqQuarterly, nil
	case "monthly", "1m", "m":
		return FreqMonthly, nil
	default:
		return "", &ConventionError{Kind: "frequency", Value: s}
	}
}
