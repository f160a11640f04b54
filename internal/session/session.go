// Package session keeps the per-client state of the service: one expense
// ledger, one payment-request dispatcher and the participant count.
package session

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitpay/internal/calculator"
	"github.com/mmynk/splitpay/internal/dispatch"
	"github.com/mmynk/splitpay/internal/ledger"
)

// ErrNotFound is returned for an unknown or ended session.
var ErrNotFound = errors.New("session not found")

// Session is one client's working state.
type Session struct {
	ID         string
	CreatedAt  time.Time
	Ledger     *ledger.Ledger
	Dispatcher *dispatch.Dispatcher

	mu           sync.Mutex
	participants int
	lastUsed     time.Time
}

// SetParticipants parses text as the participant count. Empty, non-numeric
// or zero input falls back to the default.
func (s *Session) SetParticipants(text string) int {
	n := calculator.ParseParticipantCount(text)
	s.mu.Lock()
	s.participants = n
	s.mu.Unlock()
	return n
}

// Participants returns the participant count last set by the client.
func (s *Session) Participants() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.participants
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastUsed = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

// Gauge tracks the number of live sessions.
type Gauge interface {
	Set(float64)
}

// Manager owns all live sessions.
type Manager struct {
	newDispatcher func() *dispatch.Dispatcher
	ttl           time.Duration
	gauge         Gauge
	now           func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates a Manager. dispatchCfg is used for every session's
// dispatcher. A zero ttl disables sweeping. gauge may be nil.
func NewManager(dispatchCfg dispatch.Config, ttl time.Duration, gauge Gauge) *Manager {
	return &Manager{
		newDispatcher: func() *dispatch.Dispatcher { return dispatch.New(dispatchCfg) },
		ttl:           ttl,
		gauge:         gauge,
		now:           time.Now,
		sessions:      make(map[string]*Session),
	}
}

// Create starts a new session.
func (m *Manager) Create() *Session {
	now := m.now()
	s := &Session{
		ID:           uuid.New().String(),
		CreatedAt:    now,
		Ledger:       ledger.New(),
		Dispatcher:   m.newDispatcher(),
		participants: calculator.DefaultParticipantCount,
		lastUsed:     now,
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	n := len(m.sessions)
	m.mu.Unlock()

	m.report(n)
	slog.Info("Session created", "session_id", s.ID)
	return s
}

// Get returns the session with id and marks it used.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	s.touch(m.now())
	return s, nil
}

// End discards the session with id.
func (m *Manager) End(id string) error {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	n := len(m.sessions)
	m.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	m.report(n)
	slog.Info("Session ended", "session_id", id)
	return nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep ends sessions idle for longer than the TTL and returns how many
// were removed. Sessions with a dispatch in flight are kept.
func (m *Manager) Sweep(now time.Time) int {
	if m.ttl <= 0 {
		return 0
	}

	m.mu.Lock()
	removed := 0
	for id, s := range m.sessions {
		if now.Sub(s.idleSince()) <= m.ttl {
			continue
		}
		if s.Dispatcher.State() == dispatch.StateDispatching {
			continue
		}
		delete(m.sessions, id)
		removed++
	}
	n := len(m.sessions)
	m.mu.Unlock()

	if removed > 0 {
		m.report(n)
		slog.Info("Swept idle sessions", "removed", removed, "remaining", n)
	}
	return removed
}

func (m *Manager) report(n int) {
	if m.gauge != nil {
		m.gauge.Set(float64(n))
	}
}
