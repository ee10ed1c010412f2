// Package store provides in-memory HolidayStore implementations.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/warp/accrual-engine/calendar"
	"github.com/warp/accrual-engine/generic"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu       sync.RWMutex
	holidays map[string]map[string]calendar.Holiday // calendar id -> holiday id -> holiday
}

func NewMemory() *Memory {
	return &Memory{
		holidays: make(map[string]map[string]calendar.Holiday),
	}
}

// SaveHoliday inserts or replaces a holiday. Another id with the same date
// and name in the calendar is rejected with generic.ErrDuplicateHoliday.
func (m *Memory) SaveHoliday(_ context.Context, h calendar.Holiday) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	byID, ok := m.holidays[h.CalendarID]
	if !ok {
		byID = make(map[string]calendar.Holiday)
		m.holidays[h.CalendarID] = byID
	}
	for id, existing := range byID {
		if id != h.ID && existing.Date.Equal(h.Date) && existing.Name == h.Name {
			return fmt.Errorf("%w: %s %s %q", generic.ErrDuplicateHoliday, h.CalendarID, h.Date, h.Name)
		}
	}
	byID[h.ID] = h
	return nil
}

func (m *Memory) DeleteHoliday(_ context.Context, calendarID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	byID := m.holidays[calendarID]
	if _, ok := byID[id]; !ok {
		return generic.ErrHolidayNotFound
	}
	delete(byID, id)
	if len(byID) == 0 {
		delete(m.holidays, calendarID)
	}
	return nil
}

func (m *Memory) ListHolidays(_ context.Context, calendarID string) ([]calendar.Holiday, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listLocked(calendarID), nil
}

func (m *Memory) listLocked(calendarID string) []calendar.Holiday {
	result := make([]calendar.Holiday, 0, len(m.holidays[calendarID]))
	for _, h := range m.holidays[calendarID] {
		result = append(result, h)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date.Equal(result[j].Date) {
			return result[i].ID < result[j].ID
		}
		return result[i].Date.Before(result[j].Date)
	})
	return result
}

func (m *Memory) ListCalendars(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.holidays))
	for id := range m.holidays {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Calendar snapshots the holidays of calendarID. Later writes do not affect
// the returned set.
func (m *Memory) Calendar(_ context.Context, calendarID string) (calendar.HolidaySet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return calendar.NewHolidaySet(m.listLocked(calendarID)...), nil
}

var _ calendar.HolidayStore = (*Memory)(nil)
