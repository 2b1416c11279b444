package core

import (
	"sync"
	"time"
)

// Session holds everything one user accumulates while browsing: price locks,
// search history, the latest result set and display preferences.
type Session struct {
	ID        string
	CreatedAt time.Time
	Locks     *PriceLockManager

	mu          sync.RWMutex
	now         func() time.Time
	history     []HistoryEntry
	lastResult  *SearchResult
	preferences Preferences
}

func NewSession(id string, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	return &Session{
		ID:          id,
		CreatedAt:   now(),
		Locks:       NewPriceLockManager(now),
		now:         now,
		preferences: DefaultPreferences(),
	}
}

func (s *Session) RecordSearch(route, date string) HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := HistoryEntry{Route: route, Date: date, Timestamp: s.now()}
	s.history = append(s.history, entry)
	return entry
}

// RecentSearches returns up to n of the latest entries, oldest first.
// n <= 0 returns the whole history.
func (s *Session) RecentSearches(n int) []HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := 0
	if n > 0 && len(s.history) > n {
		start = len(s.history) - n
	}
	out := make([]HistoryEntry, len(s.history)-start)
	copy(out, s.history[start:])
	return out
}

func (s *Session) SetResult(r *SearchResult) {
	s.mu.Lock()
	s.lastResult = r
	s.mu.Unlock()
}

func (s *Session) LastResult() (*SearchResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastResult, s.lastResult != nil
}

// FindFlight looks id up in the latest result set.
func (s *Session) FindFlight(id string) (FlightOffer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.lastResult == nil {
		return FlightOffer{}, ErrNoResults
	}
	for _, f := range s.lastResult.Flights {
		if f.ID == id {
			return f, nil
		}
	}
	return FlightOffer{}, ErrFlightNotFound
}

// LockFlight locks a flight from the latest result set.
func (s *Session) LockFlight(id string) (PriceLock, error) {
	f, err := s.FindFlight(id)
	if err != nil {
		return PriceLock{}, err
	}
	return s.Locks.Lock(f), nil
}

func (s *Session) Preferences() Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.preferences
}

func (s *Session) SetPreferences(p Preferences) {
	if p.PreferredAirlines == nil {
		p.PreferredAirlines = []string{}
	}
	if p.PreferredDeparture == "" {
		p.PreferredDeparture = "any"
	}
	s.mu.Lock()
	s.preferences = p
	s.mu.Unlock()
}
