/*
Package factory provides JSON to Go accrual convention conversion.

PURPOSE:
  The core exposes one function per rolling convention and one per day-count
  convention. Calling systems configure conventions by name; this package
  turns such a configuration into an AccrualConvention that dispatches to the
  right functions and maps absent results to generic errors.

JSON SCHEMA:
  {
    "id": "usd-fixed-semi",
    "calendar_id": "usny",
    "business_day_convention": "modified_following",
    "day_count": "act_act_icma",
    "frequency": "semiannual"
  }

DEFAULTS:
  - business_day_convention: "following"
  - frequency: only required by act_act_icma

USAGE:
  f := factory.NewConventionFactory()
  conv, err := f.ParseConvention(jsonString)
  accrual, err := conv.Accrue(cal, notional, rate, start, end)

SEE ALSO:
  - calendar/convention.go: Business-day convention names
  - daycount/convention.go: Day-count convention names
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/accrual-engine/calendar"
	"github.com/warp/accrual-engine/daycount"
	"github.com/warp/accrual-engine/generic"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// ConventionJSON is the JSON representation of an accrual convention.
type ConventionJSON struct {
	ID                    string `json:"id,omitempty"`
	CalendarID            string `json:"calendar_id,omitempty"`
	BusinessDayConvention string `json:"business_day_convention,omitempty"`
	DayCount              string `json:"day_count"`
	Frequency             string `json:"frequency,omitempty"`
}

// =============================================================================
// CONVENTION FACTORY
// =============================================================================

// ConventionFactory converts JSON conventions to Go structs.
type ConventionFactory struct{}

// NewConventionFactory creates a new convention factory.
func NewConventionFactory() *ConventionFactory {
	return &ConventionFactory{}
}

// ParseConvention parses a JSON string into an AccrualConvention.
func (f *ConventionFactory) ParseConvention(jsonStr string) (*AccrualConvention, error) {
	var cj ConventionJSON
	if err := json.Unmarshal([]byte(jsonStr), &cj); err != nil {
		return nil, fmt.Errorf("invalid convention JSON: %w", err)
	}
	return f.FromConfig(cj)
}

// FromConfig validates cj and builds an AccrualConvention.
func (f *ConventionFactory) FromConfig(cj ConventionJSON) (*AccrualConvention, error) {
	conv := &AccrualConvention{
		ID:         cj.ID,
		CalendarID: cj.CalendarID,
		Roll:       calendar.Following,
	}

	if cj.BusinessDayConvention != "" {
		roll, err := calendar.ParseBusinessDayConvention(cj.BusinessDayConvention)
		if err != nil {
			return nil, err
		}
		conv.Roll = roll
	}

	if cj.DayCount == "" {
		return nil, &generic.ConventionError{Kind: "day_count", Value: ""}
	}
	dc, err := daycount.ParseConvention(cj.DayCount)
	if err != nil {
		return nil, err
	}
	conv.DayCount = dc

	if cj.Frequency != "" {
		freq, err := generic.ParseFrequency(cj.Frequency)
		if err != nil {
			return nil, err
		}
		conv.Frequency = freq
	}
	if dc.RequiresReferencePeriod() && conv.Frequency == "" {
		return nil, fmt.Errorf("%w: %s requires a frequency", generic.ErrInvalidReferencePeriod, dc)
	}

	return conv, nil
}

// =============================================================================
// ACCRUAL CONVENTION
// =============================================================================

// AccrualConvention pairs a rolling convention with a day-count convention.
type AccrualConvention struct {
	ID         string
	CalendarID string
	Roll       calendar.BusinessDayConvention
	DayCount   daycount.Convention
	Frequency  generic.Frequency // ACT/ACT-ICMA only
}

// ToJSON converts the convention back to its JSON representation.
func (c *AccrualConvention) ToJSON() ConventionJSON {
	return ConventionJSON{
		ID:                    c.ID,
		CalendarID:            c.CalendarID,
		BusinessDayConvention: c.Roll.String(),
		DayCount:              c.DayCount.String(),
		Frequency:             string(c.Frequency),
	}
}

// Adjust rolls d on cal.
func (c *AccrualConvention) Adjust(cal calendar.Calendar, d generic.Date) (generic.Date, error) {
	adjusted, ok := cal.Adjust(d, c.Roll)
	if !ok {
		return generic.Date{}, &generic.NoBusinessDayError{
			Convention: c.Roll.String(),
			Date:       d,
			Range:      cal.Range.OrDefault(),
		}
	}
	return adjusted, nil
}

// Fraction returns the day-count fraction of [start, end]. For ACT/ACT-ICMA
// the accrual period itself is taken as the reference period; use
// FractionWithReference for stub periods.
func (c *AccrualConvention) Fraction(start, end generic.Date) (decimal.Decimal, error) {
	return c.FractionWithReference(start, end, generic.Period{Start: start, End: end})
}

// FractionWithReference is Fraction with an explicit ICMA reference period.
// ref is ignored by the other conventions. A zero-length period is zero under
// every convention, so rolls that collapse an accrual never fail here.
func (c *AccrualConvention) FractionWithReference(start, end generic.Date, ref generic.Period) (decimal.Decimal, error) {
	if start.After(end) {
		return decimal.Zero, fmt.Errorf("%w: %s > %s", generic.ErrInvertedRange, start, end)
	}
	// an empty accrual period accrues nothing, whatever its reference
	if start.Equal(end) {
		return decimal.Zero, nil
	}

	var rp *daycount.ReferencePeriod
	if c.DayCount.RequiresReferencePeriod() {
		rp = &daycount.ReferencePeriod{Start: ref.Start, End: ref.End, Frequency: c.Frequency}
		if !rp.Valid() {
			return decimal.Zero, fmt.Errorf("%w: %s at %s", generic.ErrInvalidReferencePeriod, ref, c.Frequency)
		}
	}

	fraction, ok := daycount.Fraction(c.DayCount, start, end, rp)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", generic.ErrUnknownConvention, c.DayCount)
	}
	return fraction, nil
}

// Accrual is the result of accruing a rate over an adjusted period.
type Accrual struct {
	UnadjustedStart generic.Date
	UnadjustedEnd   generic.Date
	Start           generic.Date
	End             generic.Date
	Fraction        decimal.Decimal
	Amount          decimal.Decimal
}

// Accrue adjusts both period ends on cal, then accrues notional × rate over
// the adjusted period.
func (c *AccrualConvention) Accrue(cal calendar.Calendar, notional, rate decimal.Decimal, start, end generic.Date) (Accrual, error) {
	adjStart, err := c.Adjust(cal, start)
	if err != nil {
		return Accrual{}, err
	}
	adjEnd, err := c.Adjust(cal, end)
	if err != nil {
		return Accrual{}, err
	}

	fraction, err := c.Fraction(adjStart, adjEnd)
	if err != nil {
		return Accrual{}, err
	}

	return Accrual{
		UnadjustedStart: start,
		UnadjustedEnd:   end,
		Start:           adjStart,
		End:             adjEnd,
		Fraction:        fraction,
		Amount:          daycount.Accrue(notional, rate, fraction),
	}, nil
}
