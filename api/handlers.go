/*
handlers.go - HTTP API handlers for the accrual engine

PURPOSE:
  Exposes business calendars, rolling conventions and day counts via REST.
  Handles HTTP request/response, JSON serialization, and delegates to the
  calendar, daycount and factory packages.

ENDPOINTS:
  GET    /api/health                                 Liveness
  GET    /api/conventions                            Supported convention names

  Calendars:
    GET    /api/calendars                            List calendar ids
    GET    /api/calendars/{id}/holidays              List holidays
    POST   /api/calendars/{id}/holidays              Create holiday
    DELETE /api/calendars/{id}/holidays/{holidayID}  Delete holiday
    GET    /api/calendars/{id}/business-days/{date}  Classify a date
    GET    /api/calendars/{id}/business-day-count    Count business days in [from, to)
    POST   /api/calendars/{id}/adjust                Roll a date
    POST   /api/calendars/{id}/shift                 Move a date by N business days

  Day counts:
    POST   /api/daycount                             Day-count fraction
    POST   /api/accruals                             Adjusted accrual amount

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store: holiday persistence, read once per request into a HolidaySet
  - Range: representable date domain given to every Calendar
  - Conventions: JSON to AccrualConvention conversion

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, unknown conventions, malformed dates
  - 404: Holiday not found
  - 409: Duplicate holiday (same calendar, date and name under another id)
  - 422: Well-formed query with no answer (range exhausted, inverted range)
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/warp/accrual-engine/calendar"
	"github.com/warp/accrual-engine/daycount"
	"github.com/warp/accrual-engine/factory"
	"github.com/warp/accrual-engine/generic"
	"github.com/warp/accrual-engine/logger"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store       calendar.HolidayStore
	Range       generic.Range
	Conventions *factory.ConventionFactory
	Log         *zerolog.Logger
}

// NewHandler creates a new handler over store. A zero rng means the default
// representable range.
func NewHandler(store calendar.HolidayStore, rng generic.Range) *Handler {
	return &Handler{
		Store:       store,
		Range:       rng.OrDefault(),
		Conventions: factory.NewConventionFactory(),
		Log:         logger.L(),
	}
}

// loadCalendar loads calendarID from the store as an immutable Calendar.
func (h *Handler) loadCalendar(ctx context.Context, calendarID string) (calendar.Calendar, error) {
	set, err := h.Store.Calendar(ctx, calendarID)
	if err != nil {
		return calendar.Calendar{}, fmt.Errorf("load calendar %s: %w", calendarID, err)
	}
	return calendar.New(set).WithRange(h.Range), nil
}

// =============================================================================
// META
// =============================================================================

// Health reports liveness.
// GET /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListConventions returns every supported convention name.
// GET /api/conventions
func (h *Handler) ListConventions(w http.ResponseWriter, r *http.Request) {
	dto := ConventionsDTO{
		Frequency: []string{
			string(generic.FreqAnnual),
			string(generic.FreqSemiannual),
			string(generic.FreqQuarterly),
			string(generic.FreqMonthly),
		},
	}
	for _, c := range calendar.Conventions() {
		dto.BusinessDay = append(dto.BusinessDay, c.String())
	}
	for _, c := range daycount.Conventions() {
		dto.DayCount = append(dto.DayCount, c.String())
	}
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// HOLIDAY ENDPOINTS
// =============================================================================

// ListCalendars returns the ids of all calendars with holidays.
// GET /api/calendars
func (h *Handler) ListCalendars(w http.ResponseWriter, r *http.Request) {
	ids, err := h.Store.ListCalendars(r.Context())
	if err != nil {
		h.writeDomainError(w, r, "Failed to list calendars", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"calendars": ids})
}

// ListHolidays returns all holidays of a calendar.
// GET /api/calendars/{id}/holidays
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.Store.ListHolidays(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, "Failed to get holidays", err)
		return
	}

	dtos := make([]HolidayDTO, 0, len(holidays))
	for _, hol := range holidays {
		dtos = append(dtos, toHolidayDTO(hol))
	}
	writeJSON(w, http.StatusOK, map[string]any{"holidays": dtos})
}

// CreateHoliday creates or replaces a holiday.
// POST /api/calendars/{id}/holidays
func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req CreateHolidayRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Date == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "Date and name are required", nil)
		return
	}
	date, err := generic.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	holiday := calendar.Holiday{
		ID:         req.ID,
		CalendarID: chi.URLParam(r, "id"),
		Date:       date,
		Name:       req.Name,
		Recurring:  req.Recurring,
	}
	if holiday.ID == "" {
		holiday.ID = fmt.Sprintf("holiday-%d", time.Now().UnixNano())
	}

	if err := h.Store.SaveHoliday(r.Context(), holiday); err != nil {
		h.writeDomainError(w, r, "Failed to create holiday", err)
		return
	}

	h.Log.Info().
		Str("calendar_id", holiday.CalendarID).
		Str("holiday_id", holiday.ID).
		Str("date", holiday.Date.String()).
		Bool("recurring", holiday.Recurring).
		Msg("holiday saved")

	writeJSON(w, http.StatusCreated, map[string]any{
		"status":  "created",
		"holiday": toHolidayDTO(holiday),
	})
}

// DeleteHoliday deletes a holiday.
// DELETE /api/calendars/{id}/holidays/{holidayID}
func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	calendarID := chi.URLParam(r, "id")
	holidayID := chi.URLParam(r, "holidayID")

	if err := h.Store.DeleteHoliday(r.Context(), calendarID, holidayID); err != nil {
		h.writeDomainError(w, r, "Failed to delete holiday", err)
		return
	}

	h.Log.Info().Str("calendar_id", calendarID).Str("holiday_id", holidayID).Msg("holiday deleted")
	writeJSON(w, http.StatusOK, map[string]any{"status": "deleted"})
}

// =============================================================================
// BUSINESS DAY ENDPOINTS
// =============================================================================

// GetBusinessDay classifies a date on a calendar.
// GET /api/calendars/{id}/business-days/{date}
func (h *Handler) GetBusinessDay(w http.ResponseWriter, r *http.Request) {
	calendarID := chi.URLParam(r, "id")
	date, err := generic.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	cal, err := h.loadCalendar(r.Context(), calendarID)
	if err != nil {
		h.writeDomainError(w, r, "Failed to load calendar", err)
		return
	}

	dto := BusinessDayDTO{
		CalendarID: calendarID,
		Date:       date,
		IsBusiness: cal.IsBusiness(date),
		IsHoliday:  cal.IsHoliday(date),
		IsWeekend:  cal.IsWeekend(date),
	}
	if next, ok := cal.NextBusinessDay(date); ok {
		dto.NextBusinessDay = &next
	}
	if prev, ok := cal.PreviousBusinessDay(date); ok {
		dto.PreviousBusinessDay = &prev
	}
	writeJSON(w, http.StatusOK, dto)
}

// CountBusinessDays counts business days in [from, to).
// GET /api/calendars/{id}/business-day-count?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) CountBusinessDays(w http.ResponseWriter, r *http.Request) {
	calendarID := chi.URLParam(r, "id")
	from, err := requireDate("from", r.URL.Query().Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid query", err)
		return
	}
	to, err := requireDate("to", r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid query", err)
		return
	}

	cal, err := h.loadCalendar(r.Context(), calendarID)
	if err != nil {
		h.writeDomainError(w, r, "Failed to load calendar", err)
		return
	}

	writeJSON(w, http.StatusOK, BusinessDayCountDTO{
		CalendarID: calendarID,
		From:       from,
		To:         to,
		Count:      cal.BusinessDaysBetween(from, to),
	})
}

// Adjust rolls a date with a business-day convention.
// POST /api/calendars/{id}/adjust
func (h *Handler) Adjust(w http.ResponseWriter, r *http.Request) {
	calendarID := chi.URLParam(r, "id")

	var req AdjustRequest
	if !decodeBody(w, r, &req) {
		return
	}
	date, err := requireDate("date", req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", err)
		return
	}
	conv, err := calendar.ParseBusinessDayConvention(req.Convention)
	if err != nil {
		h.writeDomainError(w, r, "Invalid convention", err)
		return
	}

	cal, err := h.loadCalendar(r.Context(), calendarID)
	if err != nil {
		h.writeDomainError(w, r, "Failed to load calendar", err)
		return
	}

	adjusted, ok := cal.Adjust(date, conv)
	if !ok {
		h.writeDomainError(w, r, "No business day", &generic.NoBusinessDayError{
			Convention: conv.String(),
			Date:       date,
			Range:      cal.Range.OrDefault(),
		})
		return
	}

	writeJSON(w, http.StatusOK, AdjustDTO{
		CalendarID: calendarID,
		Date:       date,
		Convention: conv.String(),
		Adjusted:   adjusted,
	})
}

// Shift moves a date by a signed number of business days.
// POST /api/calendars/{id}/shift
func (h *Handler) Shift(w http.ResponseWriter, r *http.Request) {
	calendarID := chi.URLParam(r, "id")

	var req ShiftRequest
	if !decodeBody(w, r, &req) {
		return
	}
	date, err := requireDate("date", req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", err)
		return
	}

	cal, err := h.loadCalendar(r.Context(), calendarID)
	if err != nil {
		h.writeDomainError(w, r, "Failed to load calendar", err)
		return
	}

	result, ok := cal.AddBusinessDays(date, req.Days)
	if !ok {
		h.writeDomainError(w, r, "No business day", &generic.NoBusinessDayError{
			Convention: fmt.Sprintf("shift %+d", req.Days),
			Date:       date,
			Range:      cal.Range.OrDefault(),
		})
		return
	}

	writeJSON(w, http.StatusOK, ShiftDTO{
		CalendarID: calendarID,
		Date:       date,
		Days:       req.Days,
		Result:     result,
	})
}

// =============================================================================
// DAY COUNT ENDPOINTS
// =============================================================================

// DayCount returns the day-count fraction of [start, end].
// POST /api/daycount
func (h *Handler) DayCount(w http.ResponseWriter, r *http.Request) {
	var req DayCountRequest
	if !decodeBody(w, r, &req) {
		return
	}
	start, err := requireDate("start", req.Start)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", err)
		return
	}
	end, err := requireDate("end", req.End)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", err)
		return
	}

	conv, err := h.Conventions.FromConfig(factory.ConventionJSON{
		DayCount:  req.Convention,
		Frequency: req.Frequency,
	})
	if err != nil {
		h.writeDomainError(w, r, "Invalid convention", err)
		return
	}

	ref := generic.Period{Start: start, End: end}
	if req.ReferenceStart != "" || req.ReferenceEnd != "" {
		if ref.Start, err = requireDate("reference_start", req.ReferenceStart); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request", err)
			return
		}
		if ref.End, err = requireDate("reference_end", req.ReferenceEnd); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request", err)
			return
		}
	}

	fraction, err := conv.FractionWithReference(start, end, ref)
	if err != nil {
		h.writeDomainError(w, r, "No day-count fraction", err)
		return
	}

	writeJSON(w, http.StatusOK, DayCountDTO{
		Start:      start,
		End:        end,
		Convention: conv.DayCount.String(),
		Days:       generic.DaysBetween(start, end),
		Fraction:   fraction,
	})
}

// CreateAccrual adjusts an accrual period and accrues notional × rate over it.
// POST /api/accruals
func (h *Handler) CreateAccrual(w http.ResponseWriter, r *http.Request) {
	var req AccrualRequest
	if !decodeBody(w, r, &req) {
		return
	}
	start, err := requireDate("start", req.Start)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", err)
		return
	}
	end, err := requireDate("end", req.End)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", err)
		return
	}

	conv, err := h.Conventions.FromConfig(req.Convention)
	if err != nil {
		h.writeDomainError(w, r, "Invalid convention", err)
		return
	}

	cal, err := h.loadCalendar(r.Context(), conv.CalendarID)
	if err != nil {
		h.writeDomainError(w, r, "Failed to load calendar", err)
		return
	}

	accrual, err := conv.Accrue(cal, req.Notional, req.Rate, start, end)
	if err != nil {
		h.writeDomainError(w, r, "No accrual", err)
		return
	}

	writeJSON(w, http.StatusOK, AccrualDTO{
		Convention:      conv.ToJSON(),
		UnadjustedStart: accrual.UnadjustedStart,
		UnadjustedEnd:   accrual.UnadjustedEnd,
		Start:           accrual.Start,
		End:             accrual.End,
		Days:            generic.DaysBetween(accrual.Start, accrual.End),
		Fraction:        accrual.Fraction,
		Amount:          accrual.Amount,
	})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps generic errors to HTTP statuses. Unclassified errors
// are logged and reported as 500.
func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, message string, err error) {
	switch {
	case generic.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	case generic.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case generic.IsConflict(err):
		writeError(w, http.StatusConflict, message, err)
	case generic.IsAbsent(err):
		writeError(w, http.StatusUnprocessableEntity, message, err)
	default:
		h.Log.Error().Err(err).
			Str("request_id", requestID(r)).
			Str("path", r.URL.Path).
			Msg(message)
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	return true
}

var errMissingField = errors.New("missing required field")

func requireDate(field, value string) (generic.Date, error) {
	if value == "" {
		return generic.Date{}, fmt.Errorf("%w: %s", errMissingField, field)
	}
	d, err := generic.ParseDate(value)
	if err != nil {
		return generic.Date{}, fmt.Errorf("%s: %w", field, err)
	}
	return d, nil
}
