package daycount_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/accrual-engine/daycount"
	"github.com/warp/accrual-engine/generic"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func date(year int, month time.Month, day int) generic.Date {
	return generic.NewDate(year, month, day)
}

// ratio builds n/d with the same division the engine uses.
func ratio(n, d int64) decimal.Decimal {
	return decimal.NewFromInt(n).Div(decimal.NewFromInt(d))
}

func assertDecimal(t *testing.T, want, got decimal.Decimal) {
	t.Helper()
	assert.True(t, want.Equal(got), "want %s, got %s", want, got)
}

type twoDate func(start, end generic.Date) (decimal.Decimal, bool)

var twoDateFuncs = map[string]twoDate{
	"act_360":      daycount.Act360,
	"act_365f":     daycount.Act365Fixed,
	"act_act_isda": daycount.ActActISDA,
	"30_360":       daycount.Thirty360,
}

// =============================================================================
// ACT/360 and ACT/365F
// =============================================================================

func TestAct360(t *testing.T) {
	got, ok := daycount.Act360(date(2024, time.January, 1), date(2024, time.July, 1))
	require.True(t, ok)
	assertDecimal(t, ratio(182, 360), got)
	assert.Equal(t, "0.5055555555555556", got.String())
}

func TestAct365Fixed_IgnoresLeapYears(t *testing.T) {
	got, ok := daycount.Act365Fixed(date(2023, time.January, 1), date(2024, time.January, 1))
	require.True(t, ok)
	assertDecimal(t, decimal.NewFromInt(1), got)

	got, ok = daycount.Act365Fixed(date(2024, time.January, 1), date(2025, time.January, 1))
	require.True(t, ok)
	assertDecimal(t, ratio(366, 365), got)
}

// =============================================================================
// ACT/ACT-ISDA
// =============================================================================

func TestActActISDA(t *testing.T) {
	tests := []struct {
		name       string
		start, end generic.Date
		want       decimal.Decimal
	}{
		{"same non-leap year", date(2023, 2, 1), date(2023, 3, 1), ratio(28, 365)},
		{"same leap year", date(2024, 2, 1), date(2024, 3, 1), ratio(29, 366)},
		{"spans into leap year", date(2023, 12, 1), date(2024, 2, 1),
			ratio(31, 365).Add(ratio(31, 366))},
		{"full leap year", date(2024, 1, 1), date(2025, 1, 1), decimal.NewFromInt(1)},
		{"intervening full years", date(2023, 7, 1), date(2026, 7, 1),
			ratio(184, 365).Add(decimal.NewFromInt(2)).Add(ratio(181, 365))},
		{"empty interval", date(2024, 5, 5), date(2024, 5, 5), decimal.Zero},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := daycount.ActActISDA(tt.start, tt.end)
			require.True(t, ok)
			assertDecimal(t, tt.want, got)
		})
	}
}

func TestActActISDA_PartitionAtYearBoundary(t *testing.T) {
	cases := []struct{ start, mid, end generic.Date }{
		{date(2023, 3, 1), date(2024, 1, 1), date(2024, 6, 1)},
		{date(2023, 3, 1), date(2024, 1, 1), date(2026, 6, 1)},
		{date(2022, 11, 30), date(2025, 1, 1), date(2025, 1, 1)},
		{date(2099, 12, 31), date(2100, 1, 1), date(2101, 2, 28)},
	}
	for _, c := range cases {
		whole, ok := daycount.ActActISDA(c.start, c.end)
		require.True(t, ok)
		left, ok := daycount.ActActISDA(c.start, c.mid)
		require.True(t, ok)
		right, ok := daycount.ActActISDA(c.mid, c.end)
		require.True(t, ok)

		assertDecimal(t, whole, left.Add(right))
	}
}

// =============================================================================
// ACT/ACT-ICMA
// =============================================================================

func TestActActICMA(t *testing.T) {
	ref := daycount.ReferencePeriod{
		Start:     date(2024, time.January, 15),
		End:       date(2024, time.July, 15),
		Frequency: generic.FreqSemiannual,
	}

	// GIVEN: A full regular period
	full, ok := daycount.ActActICMA(ref.Start, ref.End, ref)
	require.True(t, ok)
	assertDecimal(t, decimal.RequireFromString("0.5"), full)

	// GIVEN: Half-way through the period
	part, ok := daycount.ActActICMA(ref.Start, date(2024, time.April, 15), ref)
	require.True(t, ok)
	assertDecimal(t, ratio(91, 182*2), part)
}

func TestActActICMA_InvalidReference(t *testing.T) {
	start, end := date(2024, time.January, 15), date(2024, time.April, 15)

	tests := []struct {
		name string
		ref  daycount.ReferencePeriod
	}{
		{"inverted", daycount.ReferencePeriod{Start: end, End: start, Frequency: generic.FreqQuarterly}},
		{"empty", daycount.ReferencePeriod{Start: start, End: start, Frequency: generic.FreqQuarterly}},
		{"no frequency", daycount.ReferencePeriod{Start: start, End: end}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := daycount.ActActICMA(start, end, tt.ref)
			assert.False(t, ok)
		})
	}
}

// =============================================================================
// 30/360
// =============================================================================

func TestThirty360(t *testing.T) {
	tests := []struct {
		name       string
		start, end generic.Date
		days       int64
	}{
		{"start 31 clamps, end 28 literal", date(2024, 1, 31), date(2024, 2, 28), 28},
		{"end 31 clamps after start 30", date(2024, 1, 30), date(2024, 3, 31), 60},
		{"end 31 clamps after start 31", date(2024, 1, 31), date(2024, 3, 31), 60},
		{"end 31 literal after start 15", date(2024, 1, 15), date(2024, 3, 31), 76},
		{"across years", date(2023, 11, 15), date(2024, 2, 15), 90},
		{"one year", date(2023, 6, 30), date(2024, 6, 30), 360},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := daycount.Thirty360(tt.start, tt.end)
			require.True(t, ok)
			assertDecimal(t, ratio(tt.days, 360), got)
		})
	}
}

// =============================================================================
// PROPERTIES
// =============================================================================

func TestInversion_NoResult(t *testing.T) {
	start, end := date(2024, time.July, 1), date(2024, time.January, 1)

	for name, f := range twoDateFuncs {
		_, ok := f(start, end)
		assert.False(t, ok, name)
	}

	ref := daycount.ReferencePeriod{Start: end, End: start, Frequency: generic.FreqAnnual}
	_, ok := daycount.ActActICMA(start, end, ref)
	assert.False(t, ok, "act_act_icma")
}

func TestMonotonicInEnd(t *testing.T) {
	starts := []generic.Date{
		date(2024, time.January, 15),
		date(2024, time.January, 30),
		date(2024, time.January, 31),
		date(2024, time.February, 29),
	}
	for _, name := range []string{"act_360", "act_365f", "30_360"} {
		f := twoDateFuncs[name]
		for _, start := range starts {
			prev := decimal.Zero
			for end := start; end.Before(start.AddDays(800)); end = end.AddDays(1) {
				got, ok := f(start, end)
				require.True(t, ok)
				require.True(t, got.GreaterThanOrEqual(prev), "%s(%s, %s) decreased", name, start, end)
				prev = got
			}
		}
	}
}

func TestZeroLengthIsZeroNotAbsent(t *testing.T) {
	d := date(2024, time.March, 31)
	for name, f := range twoDateFuncs {
		got, ok := f(d, d)
		require.True(t, ok, name)
		assert.True(t, got.IsZero(), name)
	}
}

func TestAccrue(t *testing.T) {
	fraction, ok := daycount.Act360(date(2024, time.January, 1), date(2024, time.April, 1))
	require.True(t, ok)

	got := daycount.Accrue(decimal.NewFromInt(1_000_000), decimal.RequireFromString("0.05"), fraction)
	assert.Equal(t, "12638.89", got.Round(2).String(), "1m × 5% × 91/360")
}
