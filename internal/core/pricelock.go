package core

import (
	"sort"
	"sync"
	"time"
)

// PriceLockDuration is how long a locked price is honoured.
const PriceLockDuration = 15 * time.Minute

type PriceLock struct {
	FlightID      string      `json:"flightId"`
	LockedAt      time.Time   `json:"lockedAt"`
	LockedUntil   time.Time   `json:"lockedUntil"`
	OriginalPrice float64     `json:"originalPrice"`
	Flight        FlightOffer `json:"flight"`
}

type LockStatus struct {
	FlightID         string     `json:"flightId"`
	Locked           bool       `json:"locked"`
	RemainingSeconds int        `json:"remainingSeconds"`
	LockedUntil      *time.Time `json:"lockedUntil,omitempty"`
	OriginalPrice    float64    `json:"originalPrice,omitempty"`
}

// PriceLockManager keeps one lock record per flight id. Expired records are
// kept but no longer count as locked.
type PriceLockManager struct {
	mu    sync.RWMutex
	locks map[string]PriceLock
	now   func() time.Time
}

func NewPriceLockManager(now func() time.Time) *PriceLockManager {
	if now == nil {
		now = time.Now
	}
	return &PriceLockManager{
		locks: make(map[string]PriceLock),
		now:   now,
	}
}

// Lock (re)starts the countdown for f and records its current total price.
func (m *PriceLockManager) Lock(f FlightOffer) PriceLock {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	lock := PriceLock{
		FlightID:      f.ID,
		LockedAt:      now,
		LockedUntil:   now.Add(PriceLockDuration),
		OriginalPrice: f.TotalPrice,
		Flight:        f,
	}
	m.locks[f.ID] = lock
	return lock
}

func (m *PriceLockManager) IsLocked(flightID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	lock, ok := m.locks[flightID]
	return ok && m.now().Before(lock.LockedUntil)
}

// RemainingSeconds is 0 for unknown and expired locks.
func (m *PriceLockManager) RemainingSeconds(flightID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	lock, ok := m.locks[flightID]
	if !ok {
		return 0
	}
	remaining := lock.LockedUntil.Sub(m.now())
	if remaining <= 0 {
		return 0
	}
	return int(remaining / time.Second)
}

func (m *PriceLockManager) Status(flightID string) LockStatus {
	status := LockStatus{FlightID: flightID}
	if !m.IsLocked(flightID) {
		return status
	}

	m.mu.RLock()
	lock := m.locks[flightID]
	m.mu.RUnlock()

	until := lock.LockedUntil
	status.Locked = true
	status.RemainingSeconds = m.RemainingSeconds(flightID)
	status.LockedUntil = &until
	status.OriginalPrice = lock.OriginalPrice
	return status
}

// Release drops the record for flightID and reports whether one existed.
func (m *PriceLockManager) Release(flightID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.locks[flightID]; !ok {
		return false
	}
	delete(m.locks, flightID)
	return true
}

// Active returns unexpired locks, soonest expiry first.
func (m *PriceLockManager) Active() []PriceLock {
	m.mu.RLock()
	defer m.mu.RUnlock()

	now := m.now()
	var out []PriceLock
	for _, lock := range m.locks {
		if now.Before(lock.LockedUntil) {
			out = append(out, lock)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LockedUntil.Before(out[j].LockedUntil)
	})
	return out
}
