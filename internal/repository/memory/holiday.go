package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/holiday"
)

type HolidayRepository struct {
	mu       sync.Mutex
	holidays map[string]holiday.Holiday // keyed by "YYYY-MM-DD"
}

func NewHolidayRepository() *HolidayRepository {
	return &HolidayRepository{holidays: make(map[string]holiday.Holiday)}
}

func (m *HolidayRepository) CreateIfAbsent(_ context.Context, hol holiday.Holiday) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := hol.Date.Format("2006-01-02")
	if _, exists := m.holidays[k]; exists {
		return false, nil
	}
	hol.CreatedAt = time.Now()
	m.holidays[k] = hol
	return true, nil
}

func (m *HolidayRepository) Get(_ context.Context, date time.Time) (*holiday.Holiday, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hol, exists := m.holidays[date.Format("2006-01-02")]; exists {
		return &hol, nil
	}
	return nil, nil
}

func (m *HolidayRepository) Delete(_ context.Context, date time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := date.Format("2006-01-02")
	hol, exists := m.holidays[k]
	if !exists {
		return holiday.ErrHolidayNotFound
	}
	if hol.IsSunday() {
		return holiday.ErrProtectedHoliday
	}
	delete(m.holidays, k)
	return nil
}

func (m *HolidayRepository) ListByRange(_ context.Context, start, end time.Time) ([]holiday.Holiday, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var holidays []holiday.Holiday
	for _, hol := range m.holidays {
		if !hol.Date.Before(start) && !hol.Date.After(end) {
			holidays = append(holidays, hol)
		}
	}
	sort.Slice(holidays, func(i, j int) bool {
		return holidays[i].Date.Before(holidays[j].Date)
	})
	return holidays, nil
}
