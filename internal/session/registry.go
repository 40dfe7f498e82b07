// Package session hosts independent games for remote terminals.
package session

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrTooManySessions is returned by Open when the registry is full.
	ErrTooManySessions = errors.New("too many concurrent sessions")
	// ErrShuttingDown is returned by Open once Shutdown has begun.
	ErrShuttingDown = errors.New("server is shutting down")
)

// Session is one registered game. Stopping it makes the game's input report a quit.
type Session struct {
	ID   int
	User string

	stop     chan struct{}
	stopOnce sync.Once
}

// Stop asks the session's game to end. Safe to call more than once.
func (s *Session) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// Stopped is closed once Stop has been called.
func (s *Session) Stopped() <-chan struct{} {
	return s.stop
}

// Registry tracks running sessions and caps how many may run at once.
type Registry struct {
	mu       sync.Mutex
	limit    int
	nextID   int
	sessions map[int]*Session
	closing  bool
}

// NewRegistry returns a registry admitting at most limit concurrent sessions.
// A limit of zero or less means no limit.
func NewRegistry(limit int) *Registry {
	return &Registry{
		limit:    limit,
		nextID:   1,
		sessions: make(map[int]*Session),
	}
}

// Open registers a new session for user.
func (r *Registry) Open(user string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closing {
		return nil, ErrShuttingDown
	}
	if r.limit > 0 && len(r.sessions) >= r.limit {
		return nil, ErrTooManySessions
	}

	s := &Session{ID: r.nextID, User: user, stop: make(chan struct{})}
	r.nextID++
	r.sessions[s.ID] = s
	return s, nil
}

// Close removes s from the registry.
func (r *Registry) Close(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, s.ID)
}

// Len returns the number of open sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Shutdown refuses new sessions, stops every running one, and waits up to
// timeout for them to close. It reports whether all sessions closed in time.
func (r *Registry) Shutdown(timeout time.Duration) bool {
	r.mu.Lock()
	r.closing = true
	for _, s := range r.sessions {
		s.Stop()
	}
	r.mu.Unlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()

	for {
		if r.Len() == 0 {
			return true
		}
		select {
		case <-deadline:
			return false
		case <-ticker.C:
		}
	}
}
