package calendar

import (
	"sort"
	"time"

	"github.com/warp/accrual-engine/generic"
)

// =============================================================================
// HOLIDAY - A designated non-business date
// =============================================================================

// Holiday is a single entry of a holiday calendar.
type Holiday struct {
	ID         string
	CalendarID string       // e.g. "usny", "target"
	Date       generic.Date // Year is ignored when Recurring
	Name       string       // e.g. "Christmas Day"
	Recurring  bool         // true = same month/day every year
}

// =============================================================================
// HOLIDAY SET - Immutable in-memory HolidaySource
// =============================================================================

type monthDay struct {
	month time.Month
	day   int
}

// HolidaySet is an immutable snapshot of holidays. It is a pure predicate
// and safe for concurrent use.
type HolidaySet struct {
	dates     map[generic.Date]struct{}
	recurring map[monthDay]struct{}
}

// NewHolidaySet builds a set from holidays. Recurring entries match the same
// month and day in every year; a recurring 29 February only matches leap years.
func NewHolidaySet(holidays ...Holiday) HolidaySet {
	s := HolidaySet{
		dates:     make(map[generic.Date]struct{}),
		recurring: make(map[monthDay]struct{}),
	}
	for _, h := range holidays {
		if h.Recurring {
			s.recurring[monthDay{h.Date.Month(), h.Date.Day()}] = struct{}{}
			continue
		}
		s.dates[h.Date] = struct{}{}
	}
	return s
}

// NewHolidaySetFromDates is a shorthand for one-off holidays.
func NewHolidaySetFromDates(dates ...generic.Date) HolidaySet {
	holidays := make([]Holiday, len(dates))
	for i, d := range dates {
		holidays[i] = Holiday{Date: d}
	}
	return NewHolidaySet(holidays...)
}

func (s HolidaySet) IsHoliday(d generic.Date) bool {
	if _, ok := s.dates[d]; ok {
		return true
	}
	_, ok := s.recurring[monthDay{d.Month(), d.Day()}]
	return ok
}

// Len returns the number of distinct entries (dated plus recurring).
func (s HolidaySet) Len() int { return len(s.dates) + len(s.recurring) }

// Dates returns the dated (non-recurring) holidays in ascending order.
func (s HolidaySet) Dates() []generic.Date {
	out := make([]generic.Date, 0, len(s.dates))
	for d := range s.dates {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// =============================================================================
// WEEKEND DAYS - Custom weekend definition
// =============================================================================

// WeekendDays wraps a source with a different weekend, e.g. Friday and
// Saturday. An empty Days set means no weekend at all.
type WeekendDays struct {
	HolidaySource
	Days []time.Weekday
}

// NewWeekendDays overrides the weekend of source with days.
func NewWeekendDays(source HolidaySource, days ...time.Weekday) WeekendDays {
	return WeekendDays{HolidaySource: source, Days: days}
}

func (w WeekendDays) IsHoliday(d generic.Date) bool {
	if w.HolidaySource == nil {
		return false
	}
	return w.HolidaySource.IsHoliday(d)
}

func (w WeekendDays) IsWeekend(d generic.Date) bool {
	wd := d.Weekday()
	for _, day := range w.Days {
		if day == wd {
			return true
		}
	}
	return false
}

// =============================================================================
// JOINT - Union of several sources
// =============================================================================

// Joint is closed whenever any of its sources is closed. Used to settle in
// more than one centre, e.g. a EUR/USD payment needs TARGET and New York open.
type Joint []HolidaySource

func (j Joint) IsHoliday(d generic.Date) bool {
	for _, s := range j {
		if s != nil && s.IsHoliday(d) {
			return true
		}
	}
	return false
}

// IsWeekend is true if any source calls d a weekend day. Sources without a
// WeekendSource use Saturday and Sunday.
func (j Joint) IsWeekend(d generic.Date) bool {
	for _, s := range j {
		if New(s).IsWeekend(d) {
			return true
		}
	}
	return false
}
