package limiter

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Attempt bucket defaults: a burst of ten unlock attempts, refilled one per second.
const (
	DefaultAttemptBurst = 10
	DefaultAttemptEvery = time.Second
)

type entry struct {
	attempts     *rate.Limiter
	fails        int
	updatedAt    time.Time
	blockedUntil time.Time
}

// Memory is an in-process limiter for single-device vaults. Failures follow the
// Backoff ladder; independently, every attempt spends a token from a per-vault bucket.
type Memory struct {
	window       time.Duration
	maxFails     int
	maxBlock     time.Duration
	attemptBurst int
	attemptEvery time.Duration
	now          func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
	calls   uint64
}

// NewMemory constructs an in-memory limiter. Non-positive values select the defaults.
func NewMemory(window time.Duration, maxFails int, maxBlock time.Duration) *Memory {
	if window <= 0 {
		window = DefaultWindow
	}
	if maxFails <= 0 {
		maxFails = DefaultMaxFailures
	}
	if maxBlock <= 0 {
		maxBlock = DefaultMaxBlock
	}
	return &Memory{
		window:       window,
		maxFails:     maxFails,
		maxBlock:     maxBlock,
		attemptBurst: DefaultAttemptBurst,
		attemptEvery: DefaultAttemptEvery,
		now:          time.Now,
		entries:      map[string]*entry{},
	}
}

// entryLocked returns the entry of vaultID, creating it, and evicts entries idle
// for longer than the window every 256 calls.
func (m *Memory) entryLocked(vaultID string, now time.Time) *entry {
	m.calls++
	if m.calls%256 == 0 {
		for k, e := range m.entries {
			if now.Sub(e.updatedAt) > m.window && !e.blockedUntil.After(now) {
				delete(m.entries, k)
			}
		}
	}
	e, ok := m.entries[vaultID]
	if !ok {
		e = &entry{attempts: rate.NewLimiter(rate.Every(m.attemptEvery), m.attemptBurst), updatedAt: now}
		m.entries[vaultID] = e
	}
	return e
}

// Allow reports whether vaultID is currently blocked and spends one attempt token.
func (m *Memory) Allow(_ context.Context, vaultID string) (bool, time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	e := m.entryLocked(vaultID, now)
	if e.blockedUntil.After(now) {
		return false, e.blockedUntil.Sub(now), nil
	}
	if !e.attempts.AllowN(now, 1) {
		missing := 1 - e.attempts.TokensAt(now)
		return false, time.Duration(missing * float64(m.attemptEvery)), nil
	}
	return true, 0, nil
}

// Success clears the failure count of vaultID. The attempt bucket is kept.
func (m *Memory) Success(_ context.Context, vaultID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entries[vaultID]; ok {
		e.fails = 0
		e.blockedUntil = time.Time{}
	}
	return nil
}

// Failure counts a failure; failures older than the window start a fresh count.
func (m *Memory) Failure(_ context.Context, vaultID string) (bool, time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	e := m.entryLocked(vaultID, now)
	if now.Sub(e.updatedAt) > m.window {
		e.fails = 0
	}
	e.fails++
	e.updatedAt = now
	d := Backoff(e.fails, m.maxFails, m.maxBlock)
	if d == 0 {
		return false, 0, nil
	}
	e.blockedUntil = now.Add(d)
	return true, d, nil
}
