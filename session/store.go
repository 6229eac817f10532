package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/use-agent/folio/controller"
)

// entry holds a session's controller with its last-access timestamp.
type entry struct {
	ctrl     *controller.Controller
	lastSeen time.Time
}

// Factory builds the controller for a new session.
type Factory func() *controller.Controller

// Store maps browser sessions to their submission controllers.
// It is safe for concurrent use.
type Store struct {
	mu          sync.Mutex
	sessions    map[string]*entry
	maxSessions int
	ttl         time.Duration
	factory     Factory
	now         func() time.Time
	stop        chan struct{}
	stopOnce    sync.Once
}

// New creates a Store holding at most maxSessions sessions. A background
// goroutine evicts sessions idle for longer than ttl every sweep interval
// until Close is called.
func New(maxSessions int, ttl, sweep time.Duration, factory Factory) *Store {
	s := &Store{
		sessions:    make(map[string]*entry),
		maxSessions: maxSessions,
		ttl:         ttl,
		factory:     factory,
		now:         time.Now,
		stop:        make(chan struct{}),
	}
	if sweep > 0 {
		go s.cleanupLoop(sweep)
	}
	return s
}

// NewID returns a fresh session identifier.
func NewID() string {
	return uuid.NewString()
}

// Get returns the controller for id, if the session exists.
func (s *Store) Get(id string) (*controller.Controller, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = s.now()
	return e.ctrl, true
}

// Acquire returns the controller for id, creating the session if needed.
// An empty or unparseable id is replaced by a new one; the id actually
// used is returned alongside the controller.
func (s *Store) Acquire(id string) (string, *controller.Controller) {
	if _, err := uuid.Parse(id); err != nil {
		id = NewID()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.sessions[id]; ok {
		e.lastSeen = s.now()
		return id, e.ctrl
	}

	if s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
		s.evictOldestLocked()
	}
	e := &entry{ctrl: s.factory(), lastSeen: s.now()}
	s.sessions[id] = e
	return id, e.ctrl
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep evicts sessions idle for longer than the ttl and reports how many
// were removed.
func (s *Store) Sweep() int {
	cutoff := s.now().Add(-s.ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, e := range s.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Close stops the background sweeper.
func (s *Store) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *Store) evictOldestLocked() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, e := range s.sessions {
		if oldestID == "" || e.lastSeen.Before(oldest) {
			oldestID, oldest = id, e.lastSeen
		}
	}
	if oldestID != "" {
		delete(s.sessions, oldestID)
		slog.Debug("session evicted at capacity", "session", oldestID)
	}
}

func (s *Store) cleanupLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				slog.Debug("idle sessions evicted", "count", n)
			}
		case <-s.stop:
			return
		}
	}
}
