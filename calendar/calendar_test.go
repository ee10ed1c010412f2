package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/accrual-engine/calendar"
	"github.com/warp/accrual-engine/generic"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func date(year int, month time.Month, day int) generic.Date {
	return generic.NewDate(year, month, day)
}

func weekendsOnly() calendar.Calendar {
	return calendar.New(calendar.NoHolidays)
}

// easter2024 closes Good Friday and Easter Monday 2024.
func easter2024() calendar.Calendar {
	return calendar.New(calendar.NewHolidaySetFromDates(
		date(2024, time.March, 29),
		date(2024, time.April, 1),
	))
}

type roll func(calendar.Calendar, generic.Date) (generic.Date, bool)

var rolls = map[string]roll{
	"following":          calendar.Calendar.Following,
	"modified_following": calendar.Calendar.ModifiedFollowing,
	"preceding":          calendar.Calendar.Preceding,
	"modified_preceding": calendar.Calendar.ModifiedPreceding,
	"no_adjustment":      calendar.Calendar.NoAdjustment,
}

// =============================================================================
// PREDICATES
// =============================================================================

func TestPredicates_DefaultWeekend(t *testing.T) {
	cal := easter2024()

	assert.True(t, cal.IsWeekend(date(2024, time.March, 30)), "Saturday")
	assert.True(t, cal.IsWeekend(date(2024, time.March, 31)), "Sunday")
	assert.False(t, cal.IsWeekend(date(2024, time.March, 29)))

	assert.True(t, cal.IsHoliday(date(2024, time.March, 29)))
	assert.False(t, cal.IsBusiness(date(2024, time.March, 29)), "holiday")
	assert.False(t, cal.IsBusiness(date(2024, time.March, 30)), "weekend")
	assert.True(t, cal.IsBusiness(date(2024, time.March, 28)))
}

func TestPredicates_BusinessIsNeitherHolidayNorWeekend(t *testing.T) {
	cal := easter2024()
	for d := date(2024, 1, 1); d.Before(date(2025, 1, 1)); d = d.AddDays(1) {
		want := !cal.IsHoliday(d) && !cal.IsWeekend(d)
		require.Equal(t, want, cal.IsBusiness(d), d.String())
	}
}

func TestPredicates_NilSourceHasNoHolidays(t *testing.T) {
	cal := calendar.Calendar{}
	assert.False(t, cal.IsHoliday(date(2024, time.December, 25)))
	assert.True(t, cal.IsBusiness(date(2024, time.December, 25)))

	got, ok := cal.Following(date(2024, time.January, 6))
	require.True(t, ok, "zero Range falls back to the default range")
	assert.Equal(t, date(2024, time.January, 8), got)
}

func TestPredicates_CustomWeekend(t *testing.T) {
	// GIVEN: A Friday/Saturday weekend
	cal := calendar.New(calendar.NewWeekendDays(calendar.NoHolidays, time.Friday, time.Saturday))

	// THEN: Sunday is a business day, Friday is not
	assert.True(t, cal.IsBusiness(date(2024, time.January, 7)))
	assert.False(t, cal.IsBusiness(date(2024, time.January, 5)))

	got, ok := cal.Following(date(2024, time.January, 5))
	require.True(t, ok)
	assert.Equal(t, date(2024, time.January, 7), got)
}

// =============================================================================
// ROLLING CONVENTIONS
// =============================================================================

func TestFollowing_SaturdayRollsToMonday(t *testing.T) {
	got, ok := weekendsOnly().Following(date(2024, time.January, 6))
	require.True(t, ok)
	assert.Equal(t, date(2024, time.January, 8), got)
	assert.Equal(t, time.Monday, got.Weekday())
}

func TestRolls_Scenarios(t *testing.T) {
	tests := []struct {
		name string
		cal  calendar.Calendar
		conv string
		in   generic.Date
		want generic.Date
	}{
		{"following skips weekend", weekendsOnly(), "following",
			date(2024, time.March, 30), date(2024, time.April, 1)},
		{"following skips weekend and holiday", easter2024(), "following",
			date(2024, time.March, 30), date(2024, time.April, 2)},
		{"modified following stays in month", weekendsOnly(), "modified_following",
			date(2024, time.June, 1), date(2024, time.June, 3)},
		{"modified following falls back at month end", weekendsOnly(), "modified_following",
			date(2024, time.March, 30), date(2024, time.March, 29)},
		{"modified following fallback skips holiday", easter2024(), "modified_following",
			date(2024, time.March, 30), date(2024, time.March, 28)},
		{"preceding skips weekend", weekendsOnly(), "preceding",
			date(2024, time.June, 1), date(2024, time.May, 31)},
		{"modified preceding stays in month", weekendsOnly(), "modified_preceding",
			date(2024, time.March, 31), date(2024, time.March, 29)},
		{"modified preceding falls forward at month start", weekendsOnly(), "modified_preceding",
			date(2024, time.June, 1), date(2024, time.June, 3)},
		{"modified preceding skips holiday", easter2024(), "modified_preceding",
			date(2024, time.March, 30), date(2024, time.March, 28)},
		{"no adjustment keeps weekend", weekendsOnly(), "no_adjustment",
			date(2024, time.March, 30), date(2024, time.March, 30)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := rolls[tt.conv](tt.cal, tt.in)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestModifiedFollowing_BackwardLegMayCrossMonth(t *testing.T) {
	// GIVEN: Every day of May 2024 is a holiday
	cal := calendar.New(calendar.HolidayFunc(func(d generic.Date) bool {
		return d.Year() == 2024 && d.Month() == time.May
	}))

	// WHEN: Rolling a date in May
	got, ok := cal.ModifiedFollowing(date(2024, time.May, 15))

	// THEN: The bounded forward leg fails and the unbounded backward leg lands in April
	require.True(t, ok)
	assert.Equal(t, date(2024, time.April, 30), got)

	got, ok = cal.ModifiedPreceding(date(2024, time.May, 15))
	require.True(t, ok)
	assert.Equal(t, date(2024, time.June, 3), got, "1-2 June are a weekend")
}

func TestRolls_IdempotentOnBusinessDays(t *testing.T) {
	cal := easter2024()
	for d := date(2024, 1, 1); d.Before(date(2025, 1, 1)); d = d.AddDays(1) {
		if !cal.IsBusiness(d) {
			continue
		}
		for name, r := range rolls {
			got, ok := r(cal, d)
			require.True(t, ok)
			require.Equal(t, d, got, "%s(%s)", name, d)
		}
	}
}

func TestRolls_AlwaysReturnBusinessDays(t *testing.T) {
	cal := easter2024()
	for d := date(2024, 1, 1); d.Before(date(2025, 1, 1)); d = d.AddDays(1) {
		for name, r := range rolls {
			if name == "no_adjustment" {
				continue
			}
			got, ok := r(cal, d)
			require.True(t, ok)
			require.True(t, cal.IsBusiness(got), "%s(%s) = %s", name, d, got)
		}
	}
}

func TestRolls_ModifiedStayInMonthWhenPossible(t *testing.T) {
	cal := easter2024()
	for d := date(2024, 1, 1); d.Before(date(2025, 1, 1)); d = d.AddDays(1) {
		mf, ok := cal.ModifiedFollowing(d)
		require.True(t, ok)
		if mf.After(d) {
			assert.True(t, generic.SameMonth(mf, d), "forward leg of %s left the month", d)
		}

		mp, ok := cal.ModifiedPreceding(d)
		require.True(t, ok)
		if mp.Before(d) {
			assert.True(t, generic.SameMonth(mp, d), "backward leg of %s left the month", d)
		}
	}
}

func TestAdjust_DispatchesByConvention(t *testing.T) {
	cal := weekendsOnly()
	sat := date(2024, time.March, 30)

	for _, conv := range calendar.Conventions() {
		got, ok := cal.Adjust(sat, conv)
		want, wantOK := rolls[conv.String()](cal, sat)
		assert.Equal(t, wantOK, ok, conv.String())
		assert.Equal(t, want, got, conv.String())
	}

	_, ok := cal.Adjust(sat, calendar.BusinessDayConvention(99))
	assert.False(t, ok)
}

// =============================================================================
// RANGE EXHAUSTION
// =============================================================================

func TestRolls_RangeExhaustion(t *testing.T) {
	// GIVEN: Every day is a holiday and the domain is one week
	closed := calendar.HolidayFunc(func(generic.Date) bool { return true })
	cal := calendar.New(closed).WithRange(generic.Range{
		Min: date(2024, time.January, 1),
		Max: date(2024, time.January, 7),
	})

	// THEN: Every roll reports no result instead of failing
	for name, r := range rolls {
		if name == "no_adjustment" {
			continue
		}
		_, ok := r(cal, date(2024, time.January, 3))
		assert.False(t, ok, name)
	}
}

func TestFollowing_StopsAtRangeMax(t *testing.T) {
	cal := weekendsOnly().WithRange(generic.Range{
		Min: date(2024, time.January, 1),
		Max: date(2024, time.January, 7), // Sunday
	})

	_, ok := cal.Following(date(2024, time.January, 6))
	assert.False(t, ok, "next business day is outside the range")

	got, ok := cal.Preceding(date(2024, time.January, 6))
	require.True(t, ok)
	assert.Equal(t, date(2024, time.January, 5), got)
}

func TestPreceding_StopsAtRangeMin(t *testing.T) {
	cal := weekendsOnly().WithRange(generic.Range{
		Min: date(2024, time.June, 1), // Saturday
		Max: date(2024, time.June, 30),
	})

	_, ok := cal.Preceding(date(2024, time.June, 2))
	assert.False(t, ok)

	got, ok := cal.ModifiedPreceding(date(2024, time.June, 2))
	require.True(t, ok, "forward fallback still has room")
	assert.Equal(t, date(2024, time.June, 3), got)
}

func TestRolls_InvertedRangeIsEmptyDomain(t *testing.T) {
	inverted := generic.Range{Min: date(2024, time.February, 1), Max: date(2024, time.January, 1)}
	require.ErrorIs(t, inverted.Validate(), generic.ErrInvalidRange)

	cal := weekendsOnly().WithRange(inverted)

	// Business days are returned unchanged
	got, ok := cal.Following(date(2024, time.January, 15))
	require.True(t, ok)
	assert.Equal(t, date(2024, time.January, 15), got)

	// Every scan comes back empty
	for name, f := range rolls {
		if name == "no_adjustment" {
			continue
		}
		_, ok := f(cal, date(2024, time.January, 13))
		assert.False(t, ok, name)
	}
	_, ok = cal.NextBusinessDay(date(2024, time.January, 15))
	assert.False(t, ok)
}

func TestRolls_DefaultRangeEdges(t *testing.T) {
	cal := weekendsOnly()

	// 9999-12-31 is a Friday; the Saturday after it is past the maximum.
	_, ok := cal.Following(generic.MaxDate.AddDays(1))
	assert.False(t, ok, "dates past the maximum cannot roll forward")

	got, ok := cal.Preceding(generic.MinDate.AddDays(5)) // 0001-01-06, Saturday
	require.True(t, ok)
	assert.Equal(t, generic.MinDate.AddDays(4), got)
}

// =============================================================================
// BUSINESS-DAY ARITHMETIC
// =============================================================================

func TestAddBusinessDays(t *testing.T) {
	cal := easter2024()
	thu := date(2024, time.March, 28)

	got, ok := cal.AddBusinessDays(thu, 1)
	require.True(t, ok)
	assert.Equal(t, date(2024, time.April, 2), got, "skips Good Friday, weekend, Easter Monday")

	got, ok = cal.AddBusinessDays(date(2024, time.April, 2), -2)
	require.True(t, ok)
	assert.Equal(t, date(2024, time.March, 27), got)

	got, ok = cal.AddBusinessDays(date(2024, time.March, 30), 0)
	require.True(t, ok)
	assert.Equal(t, date(2024, time.March, 30), got)
}

func TestBusinessDaysBetween(t *testing.T) {
	cal := easter2024()
	from := date(2024, time.March, 25)
	to := date(2024, time.April, 8)

	assert.Equal(t, 8, cal.BusinessDaysBetween(from, to), "10 weekdays minus 2 holidays")
	assert.Equal(t, -8, cal.BusinessDaysBetween(to, from))
	assert.Equal(t, 0, cal.BusinessDaysBetween(from, from))
}

func TestNextAndPreviousBusinessDay_Strict(t *testing.T) {
	cal := weekendsOnly()
	mon := date(2024, time.January, 8)

	next, ok := cal.NextBusinessDay(mon)
	require.True(t, ok)
	assert.Equal(t, date(2024, time.January, 9), next)

	prev, ok := cal.PreviousBusinessDay(mon)
	require.True(t, ok)
	assert.Equal(t, date(2024, time.January, 5), prev)
}
