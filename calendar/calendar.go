/*
Package calendar provides business-day predicates and date rolling conventions.

PURPOSE:
  Any holiday data source only has to answer one question: is this date a
  holiday? Calendar layers the weekend rule, the business-day predicate and
  the rolling conventions on top of that single primitive.

KEY TYPES:
  HolidaySource:  The required primitive (IsHoliday)
  WeekendSource:  Optional override of the Saturday/Sunday weekend
  Calendar:       Predicates and rolls over a source, bounded by a generic.Range

ROLLING CONVENTIONS:
  Following          first business day on or after the date
  ModifiedFollowing  Following, unless that leaves the month; then Preceding
  Preceding          first business day on or before the date
  ModifiedPreceding  Preceding, unless that leaves the month; then Following
  NoAdjustment       the date itself

  A business day is always returned unchanged. Scans move one day at a time
  and stop at the calendar's Range; running out of range is reported as
  ok == false.

PURITY:
  The source must be a pure predicate. Rolls call it an unspecified number
  of times in an unspecified order.

USAGE:
  cal := calendar.New(calendar.NewHolidaySet(holidays...))
  adjusted, ok := cal.ModifiedFollowing(generic.NewDate(2024, time.March, 30))
  if !ok {
      // no business day in the calendar's range
  }

SEE ALSO:
  - convention.go: BusinessDayConvention names and parsing
  - holiday.go: HolidaySet, WeekendDays and Joint sources
  - store.go: HolidayStore persistence interface
*/
package calendar

import (
	"time"

	"github.com/warp/accrual-engine/generic"
)

// =============================================================================
// CAPABILITIES
// =============================================================================

// HolidaySource reports designated holidays. This is the only method a
// holiday data source has to implement.
type HolidaySource interface {
	IsHoliday(d generic.Date) bool
}

// WeekendSource lets a HolidaySource replace the default Saturday/Sunday
// weekend. Calendar checks for it with a type assertion.
type WeekendSource interface {
	IsWeekend(d generic.Date) bool
}

// HolidayFunc adapts a plain predicate to HolidaySource.
type HolidayFunc func(d generic.Date) bool

func (f HolidayFunc) IsHoliday(d generic.Date) bool { return f(d) }

// NoHolidays treats only weekends as non-business days.
var NoHolidays = HolidayFunc(func(generic.Date) bool { return false })

// =============================================================================
// CALENDAR
// =============================================================================

// Calendar derives weekend, business-day and rolling logic from a HolidaySource.
// The zero Range means generic.DefaultRange.
type Calendar struct {
	Source HolidaySource
	Range  generic.Range
}

// New creates a calendar over source using generic.DefaultRange.
func New(source HolidaySource) Calendar {
	return Calendar{Source: source, Range: generic.DefaultRange}
}

// WithRange returns a copy of c bounded by r. An inverted r (Min after Max)
// is an empty domain: business days still roll to themselves, but every scan
// reports no result. Check r with generic.Range.Validate first when it comes
// from user input.
func (c Calendar) WithRange(r generic.Range) Calendar {
	return Calendar{Source: c.Source, Range: r}
}

func (c Calendar) bounds() generic.Range { return c.Range.OrDefault() }

// IsHoliday delegates to the source. A nil source has no holidays.
func (c Calendar) IsHoliday(d generic.Date) bool {
	if c.Source == nil {
		return false
	}
	return c.Source.IsHoliday(d)
}

// IsWeekend defaults to Saturday and Sunday, which is not true for every
// jurisdiction. Sources implementing WeekendSource override it.
func (c Calendar) IsWeekend(d generic.Date) bool {
	if ws, ok := c.Source.(WeekendSource); ok {
		return ws.IsWeekend(d)
	}
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsBusiness is true iff d is neither a holiday nor a weekend day.
func (c Calendar) IsBusiness(d generic.Date) bool {
	return !c.IsHoliday(d) && !c.IsWeekend(d)
}

// =============================================================================
// ROLLING CONVENTIONS
// =============================================================================

// Following returns d if it is a business day, else the first business day after it.
func (c Calendar) Following(d generic.Date) (generic.Date, bool) {
	if c.IsBusiness(d) {
		return d, true
	}
	return c.scanForward(d, false)
}

// ModifiedFollowing rolls forward within d's month. If the month runs out
// first, it rolls backward from d instead, with no month restriction.
func (c Calendar) ModifiedFollowing(d generic.Date) (generic.Date, bool) {
	if c.IsBusiness(d) {
		return d, true
	}
	if adjusted, ok := c.scanForward(d, true); ok {
		return adjusted, true
	}
	return c.scanBackward(d, false)
}

// Preceding returns d if it is a business day, else the last business day before it.
func (c Calendar) Preceding(d generic.Date) (generic.Date, bool) {
	if c.IsBusiness(d) {
		return d, true
	}
	return c.scanBackward(d, false)
}

// ModifiedPreceding rolls backward within d's month. If the month runs out
// first, it rolls forward from d instead, with no month restriction.
func (c Calendar) ModifiedPreceding(d generic.Date) (generic.Date, bool) {
	if c.IsBusiness(d) {
		return d, true
	}
	if adjusted, ok := c.scanBackward(d, true); ok {
		return adjusted, true
	}
	return c.scanForward(d, false)
}

// NoAdjustment returns d unchanged.
func (c Calendar) NoAdjustment(d generic.Date) (generic.Date, bool) {
	return d, true
}

// Adjust dispatches to the roll named by conv.
func (c Calendar) Adjust(d generic.Date, conv BusinessDayConvention) (generic.Date, bool) {
	switch conv {
	case Following:
		return c.Following(d)
	case ModifiedFollowing:
		return c.ModifiedFollowing(d)
	case Preceding:
		return c.Preceding(d)
	case ModifiedPreceding:
		return c.ModifiedPreceding(d)
	case NoAdjustment:
		return c.NoAdjustment(d)
	default:
		return generic.Date{}, false
	}
}

// scanForward visits the days after d, one at a time, until a business day
// is found. It gives up at the range maximum, or at the end of d's month
// when sameMonth is set.
func (c Calendar) scanForward(d generic.Date, sameMonth bool) (generic.Date, bool) {
	r := c.bounds()
	for day := d; day.Before(r.Max); {
		day = day.AddDays(1)
		if sameMonth && !generic.SameMonth(day, d) {
			return generic.Date{}, false
		}
		if c.IsBusiness(day) {
			return day, true
		}
	}
	return generic.Date{}, false
}

// scanBackward is scanForward mirrored toward the range minimum.
func (c Calendar) scanBackward(d generic.Date, sameMonth bool) (generic.Date, bool) {
	r := c.bounds()
	for day := d; day.After(r.Min); {
		day = day.AddDays(-1)
		if sameMonth && !generic.SameMonth(day, d) {
			return generic.Date{}, false
		}
		if c.IsBusiness(day) {
			return day, true
		}
	}
	return generic.Date{}, false
}

// =============================================================================
// BUSINESS-DAY ARITHMETIC
// =============================================================================

// NextBusinessDay returns the first business day strictly after d.
func (c Calendar) NextBusinessDay(d generic.Date) (generic.Date, bool) {
	return c.scanForward(d, false)
}

// PreviousBusinessDay returns the last business day strictly before d.
func (c Calendar) PreviousBusinessDay(d generic.Date) (generic.Date, bool) {
	return c.scanBackward(d, false)
}

// AddBusinessDays moves n business days from d; negative n moves backward.
// With n == 0, d is returned as is, business day or not.
func (c Calendar) AddBusinessDays(d generic.Date, n int) (generic.Date, bool) {
	day, ok := d, true
	for ; n > 0 && ok; n-- {
		day, ok = c.NextBusinessDay(day)
	}
	for ; n < 0 && ok; n++ {
		day, ok = c.PreviousBusinessDay(day)
	}
	if !ok {
		return generic.Date{}, false
	}
	return day, true
}

// BusinessDaysBetween counts business days in [from, to). The result is
// negative when to is before from.
func (c Calendar) BusinessDaysBetween(from, to generic.Date) int {
	if to.Before(from) {
		return -c.BusinessDaysBetween(to, from)
	}
	count := 0
	for day := from; day.Before(to); day = day.AddDays(1) {
		if c.IsBusiness(day) {
			count++
		}
	}
	return count
}
