/*
Package daycount computes day-count fractions for fixed-income accrual.

PURPOSE:
  A day-count fraction scales an annual rate to the accrual period between
  two dates:

    interest = notional × rate × fraction(start, end)

  Each market convention is a separate function so its edge cases can be
  tested on their own. Convention selection by name lives in convention.go.

RESULTS:
  Every function returns (fraction, ok). ok is false when start is after end:
  the fraction is not applicable, which callers must not treat as zero.
  Fractions are decimal.Decimal; division uses decimal.DivisionPrecision.

CONVENTIONS:
  ACT/360        actual days / 360
  ACT/365F       actual days / 365
  ACT/ACT-ISDA   days in each calendar year / length of that year
  ACT/ACT-ICMA   actual days / (days in reference period × frequency)
  30/360         Bond Basis, 31st of the month clamped to 30

SEE ALSO:
  - convention.go: Convention names and Fraction dispatch
  - generic/period.go: Frequency
*/
package daycount

import (
	"github.com/shopspring/decimal"

	"github.com/warp/accrual-engine/generic"
)

var (
	threeSixty = decimal.NewFromInt(360)
	nonLeap    = decimal.NewFromInt(365)
)

func days(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }

func yearLength(year int) decimal.Decimal { return days(generic.DaysInYear(year)) }

// Act360 returns actual days / 360.
func Act360(start, end generic.Date) (decimal.Decimal, bool) {
	if start.After(end) {
		return decimal.Zero, false
	}
	return days(generic.DaysBetween(start, end)).Div(threeSixty), true
}

// Act365Fixed returns actual days / 365, whatever leap years lie in between.
func Act365Fixed(start, end generic.Date) (decimal.Decimal, bool) {
	if start.After(end) {
		return decimal.Zero, false
	}
	return days(generic.DaysBetween(start, end)).Div(nonLeap), true
}

// ActActISDA splits [start, end) at each 1 January. The days falling in each
// calendar year are divided by that year's length (365 or 366); every full
// calendar year in between counts as exactly 1.
func ActActISDA(start, end generic.Date) (decimal.Decimal, bool) {
	if start.After(end) {
		return decimal.Zero, false
	}

	year := start.Year()
	if year == end.Year() {
		return days(generic.DaysBetween(start, end)).Div(yearLength(year)), true
	}

	first := generic.DaysBetween(start, generic.StartOfYear(year+1))
	fraction := days(first).Div(yearLength(year))

	for year++; year < end.Year(); year++ {
		fraction = fraction.Add(decimal.NewFromInt(1))
	}

	last := generic.DaysBetween(generic.StartOfYear(year), end)
	return fraction.Add(days(last).Div(yearLength(year))), true
}

// ReferencePeriod is the regular coupon period an ACT/ACT-ICMA accrual is
// measured against, with the number of such periods per year.
type ReferencePeriod struct {
	Start     generic.Date
	End       generic.Date
	Frequency generic.Frequency
}

// Valid returns true if the period is non-empty and the frequency known.
func (r ReferencePeriod) Valid() bool {
	return r.Start.Before(r.End) && r.Frequency.PerYear() > 0
}

// ActActICMA returns actual days / (days in ref × coupon frequency).
//
// The two accrual dates alone do not determine this fraction; ref supplies the
// coupon period and frequency. For a full regular period the result is
// exactly 1/frequency. ok is false for start after end or an invalid ref.
func ActActICMA(start, end generic.Date, ref ReferencePeriod) (decimal.Decimal, bool) {
	if start.After(end) || !ref.Valid() {
		return decimal.Zero, false
	}
	denominator := days(generic.DaysBetween(ref.Start, ref.End) * ref.Frequency.PerYear())
	return days(generic.DaysBetween(start, end)).Div(denominator), true
}

// Thirty360 is the 30/360 Bond Basis convention. A start day of 31 counts
// as 30; an end day of 31 counts as 30 only when the start day is 30 after
// that clamp.
func Thirty360(start, end generic.Date) (decimal.Decimal, bool) {
	if start.After(end) {
		return decimal.Zero, false
	}

	startDay := start.Day()
	if startDay == 31 {
		startDay = 30
	}
	endDay := end.Day()
	if endDay == 31 && startDay == 30 {
		endDay = 30
	}

	years := end.Year() - start.Year()
	months := int(end.Month()) - int(start.Month())
	dayCount := 360*years + 30*months + (endDay - startDay)

	return days(dayCount).Div(threeSixty), true
}

// Accrue returns notional × rate × fraction.
func Accrue(notional, rate, fraction decimal.Decimal) decimal.Decimal {
	return notional.Mul(rate).Mul(fraction)
}
