package configurator

import (
	"log"
	"sync"
	"time"
)

type session struct {
	mu       sync.Mutex
	c        *Configurator
	lastUsed time.Time
}

// Sessions holds one Configurator per customer session.
// Calls for the same session are serialized; different sessions run in parallel.
type Sessions struct {
	mu       sync.Mutex
	sessions map[string]*session
	now      func() time.Time
}

// NewSessions creates an empty registry
func NewSessions() *Sessions {
	return &Sessions{sessions: make(map[string]*session), now: time.Now}
}

// With runs fn with the session's configurator, creating an idle one on first use
func (s *Sessions) With(sessionID string, fn func(c *Configurator) error) error {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &session{c: New()}
		s.sessions[sessionID] = sess
	}
	sess.lastUsed = s.now()
	s.mu.Unlock()

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return fn(sess.c)
}

// Sweep drops configurators untouched for longer than maxIdle and returns how many were dropped
func (s *Sessions) Sweep(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()

	dropped := 0
	for id, sess := range s.sessions {
		if sess.lastUsed.Before(cutoff) {
			delete(s.sessions, id)
			dropped++
		}
	}
	if dropped > 0 {
		log.Printf("🧹 Dropped %d idle configurator sessions", dropped)
	}
	return dropped
}

// Len returns the number of tracked sessions
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
