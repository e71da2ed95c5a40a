package wizard

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/agendadoc/booking-platform/pkg/logging"
)

// Manager owns the live wizard sessions. Sessions are purely in-memory and
// expire after the configured TTL of inactivity; an expired or restarted
// session means the user starts a fresh draft, matching the product's
// "lost if the process dies mid-wizard" behavior.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	logger   *logging.Logger
}

// NewManager creates a session manager with the given inactivity TTL.
func NewManager(ttl time.Duration, logger *logging.Logger) *Manager {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		logger:   logger,
	}
}

// Create starts a new session with an empty draft for the practitioner.
func (m *Manager) Create(practitionerID string) *Session {
	s := newSession(uuid.NewString(), practitionerID, time.Now())
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	m.logger.Info("wizard session created", "session_id", s.ID, "practitioner_id", practitionerID)
	return s
}

// Get returns the session with the given id. Expired sessions are dropped on
// access and reported as not found.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.expired(time.Now(), m.ttl) {
		m.mu.Lock()
		delete(m.sessions, id)
		m.mu.Unlock()
		m.logger.Info("wizard session expired on access", "session_id", id)
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Sweep removes every session idle past the TTL and returns how many were dropped.
func (m *Manager) Sweep(now time.Time) int {
	m.mu.Lock()
	var stale []*Session
	for _, s := range m.sessions {
		stale = append(stale, s)
	}
	m.mu.Unlock()

	removed := 0
	for _, s := range stale {
		if !s.expired(now, m.ttl) {
			continue
		}
		m.mu.Lock()
		delete(m.sessions, s.ID)
		m.mu.Unlock()
		removed++
	}
	if removed > 0 {
		m.logger.Info("wizard sessions swept", "removed", removed)
	}
	return removed
}

// Run sweeps expired sessions on the given interval until ctx is cancelled.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			m.Sweep(now)
		}
	}
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
