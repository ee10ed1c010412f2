/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. Request bodies carry
  dates as YYYY-MM-DD strings so handlers can report missing and malformed
  dates separately; responses use generic.Date, which marshals the same way.
  Decimals (fractions, notionals, rates, amounts) travel as JSON strings.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/convention.go: ConventionJSON type
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/warp/accrual-engine/calendar"
	"github.com/warp/accrual-engine/factory"
	"github.com/warp/accrual-engine/generic"
)

// =============================================================================
// HOLIDAYS
// =============================================================================

// HolidayDTO represents a holiday in API responses.
type HolidayDTO struct {
	ID         string       `json:"id"`
	CalendarID string       `json:"calendar_id"`
	Date       generic.Date `json:"date"`
	Name       string       `json:"name"`
	Recurring  bool         `json:"recurring"`
}

func toHolidayDTO(h calendar.Holiday) HolidayDTO {
	return HolidayDTO{
		ID:         h.ID,
		CalendarID: h.CalendarID,
		Date:       h.Date,
		Name:       h.Name,
		Recurring:  h.Recurring,
	}
}

// CreateHolidayRequest is the body of POST /api/calendars/{id}/holidays.
type CreateHolidayRequest struct {
	ID        string `json:"id,omitempty"`
	Date      string `json:"date"`
	Name      string `json:"name"`
	Recurring bool   `json:"recurring"`
}

// =============================================================================
// BUSINESS DAYS
// =============================================================================

// BusinessDayDTO describes a single date on a calendar.
type BusinessDayDTO struct {
	CalendarID          string        `json:"calendar_id"`
	Date                generic.Date  `json:"date"`
	IsBusiness          bool          `json:"is_business"`
	IsHoliday           bool          `json:"is_holiday"`
	IsWeekend           bool          `json:"is_weekend"`
	NextBusinessDay     *generic.Date `json:"next_business_day,omitempty"`
	PreviousBusinessDay *generic.Date `json:"previous_business_day,omitempty"`
}

// AdjustRequest is the body of POST /api/calendars/{id}/adjust.
type AdjustRequest struct {
	Date       string `json:"date"`
	Convention string `json:"convention"`
}

// AdjustDTO is the result of rolling a date.
type AdjustDTO struct {
	CalendarID string       `json:"calendar_id"`
	Date       generic.Date `json:"date"`
	Convention string       `json:"convention"`
	Adjusted   generic.Date `json:"adjusted"`
}

// ShiftRequest is the body of POST /api/calendars/{id}/shift.
type ShiftRequest struct {
	Date string `json:"date"`
	Days int    `json:"days"`
}

// ShiftDTO is the result of moving a date by business days.
type ShiftDTO struct {
	CalendarID string       `json:"calendar_id"`
	Date       generic.Date `json:"date"`
	Days       int          `json:"days"`
	Result     generic.Date `json:"result"`
}

// BusinessDayCountDTO is the number of business days in [from, to).
type BusinessDayCountDTO struct {
	CalendarID string       `json:"calendar_id"`
	From       generic.Date `json:"from"`
	To         generic.Date `json:"to"`
	Count      int          `json:"count"`
}

// =============================================================================
// DAY COUNTS AND ACCRUALS
// =============================================================================

// DayCountRequest is the body of POST /api/daycount. The reference fields
// are only read for act_act_icma; when omitted the accrual period is its
// own reference.
type DayCountRequest struct {
	Start          string `json:"start"`
	End            string `json:"end"`
	Convention     string `json:"convention"`
	ReferenceStart string `json:"reference_start,omitempty"`
	ReferenceEnd   string `json:"reference_end,omitempty"`
	Frequency      string `json:"frequency,omitempty"`
}

// DayCountDTO is a day-count fraction.
type DayCountDTO struct {
	Start      generic.Date    `json:"start"`
	End        generic.Date    `json:"end"`
	Convention string          `json:"convention"`
	Days       int             `json:"days"`
	Fraction   decimal.Decimal `json:"fraction"`
}

// AccrualRequest is the body of POST /api/accruals.
type AccrualRequest struct {
	Convention factory.ConventionJSON `json:"convention"`
	Start      string                 `json:"start"`
	End        string                 `json:"end"`
	Notional   decimal.Decimal        `json:"notional"`
	Rate       decimal.Decimal        `json:"rate"`
}

// AccrualDTO is an accrued amount over an adjusted period.
type AccrualDTO struct {
	Convention      factory.ConventionJSON `json:"convention"`
	UnadjustedStart generic.Date           `json:"unadjusted_start"`
	UnadjustedEnd   generic.Date           `json:"unadjusted_end"`
	Start           generic.Date           `json:"start"`
	End             generic.Date           `json:"end"`
	Days            int                    `json:"days"`
	Fraction        decimal.Decimal        `json:"fraction"`
	Amount          decimal.Decimal        `json:"amount"`
}

// =============================================================================
// CONVENTIONS AND ERRORS
// =============================================================================

// ConventionsDTO lists the supported convention names.
type ConventionsDTO struct {
	BusinessDay []string `json:"business_day"`
	DayCount    []string `json:"day_count"`
	Frequency   []string `json:"frequency"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
