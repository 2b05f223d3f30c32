package store

import (
	"errors"
	"sync"
	"time"

	"github.com/i474232898/commute-weather/internal/weather"
)

var (
	// ErrNotFound is returned when no report is available for a given location.
	ErrNotFound = errors.New("no weather report for location")
)

// ReportHistory holds a time-ordered list of reports for a location.
type ReportHistory struct {
	Reports []weather.Report
}

// MemoryStore is a concurrency-safe in-memory implementation of weather.Store.
// Nothing is written to disk; contents are lost on restart.
type MemoryStore struct {
	mu sync.RWMutex

	// key: location key, value: history
	data map[string]*ReportHistory

	// retention configuration
	maxHistory int           // max number of reports per location
	maxAge     time.Duration // optional max age for reports

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]*ReportHistory),
		maxHistory: maxHistory,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// SaveReport appends a new report for a location and enforces retention.
func (s *MemoryStore) SaveReport(loc weather.Location, report weather.Report) {
	key := loc.Key()

	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.data[key]
	if !ok {
		history = &ReportHistory{}
		s.data[key] = history
	}

	history.Reports = append(history.Reports, report)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(history.Reports) > s.maxHistory {
		over := len(history.Reports) - s.maxHistory
		history.Reports = history.Reports[over:]
	}

	// Enforce retention by age. The newest report is always kept.
	if s.maxAge > 0 {
		cutoff := s.now().Add(-s.maxAge)
		i := 0
		for ; i < len(history.Reports)-1; i++ {
			if !history.Reports[i].GeneratedAt.Before(cutoff) {
				break
			}
		}
		history.Reports = history.Reports[i:]
	}
}

// GetLatest returns the most recent report for a location.
func (s *MemoryStore) GetLatest(loc weather.Location) (weather.Report, error) {
	key := loc.Key()

	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[key]
	if !ok || len(history.Reports) == 0 {
		return weather.Report{}, ErrNotFound
	}
	return history.Reports[len(history.Reports)-1], nil
}

// GetRange returns all reports for a location generated between from and to (inclusive).
func (s *MemoryStore) GetRange(loc weather.Location, from, to time.Time) ([]weather.Report, error) {
	key := loc.Key()

	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[key]
	if !ok || len(history.Reports) == 0 {
		return nil, ErrNotFound
	}

	var result []weather.Report
	for _, r := range history.Reports {
		if !r.GeneratedAt.Before(from) && !r.GeneratedAt.After(to) {
			result = append(result, r)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}

	return result, nil
}
