package cart

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"nube-alta-cafe/models"
	"nube-alta-cafe/repository"
)

const saveTimeout = 5 * time.Second

type session struct {
	store    *Store
	lastUsed time.Time
}

// Sessions owns one Store per customer session and persists every mutation
// through the cart repository. The Store itself knows nothing about persistence.
// Idle sessions are dropped by Sweep; their persisted copy is reloaded on next use.
type Sessions struct {
	mu         sync.Mutex
	repository repository.CartRepositoryInterface
	sessions   map[string]*session
	now        func() time.Time
}

// NewSessions creates a new Sessions registry
func NewSessions(repo repository.CartRepositoryInterface) *Sessions {
	return &Sessions{
		repository: repo,
		sessions:   make(map[string]*session),
		now:        time.Now,
	}
}

func (s *Sessions) lookup(sessionID string) (*Store, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, false
	}
	sess.lastUsed = s.now()
	return sess.store, true
}

// Get returns the cart of a session, loading it from the repository the first time
func (s *Sessions) Get(ctx context.Context, sessionID string) (*Store, error) {
	if store, ok := s.lookup(sessionID); ok {
		return store, nil
	}

	items, err := s.repository.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart %s: %w", sessionID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// another request may have opened the session while we were loading
	if sess, ok := s.sessions[sessionID]; ok {
		sess.lastUsed = s.now()
		return sess.store, nil
	}

	store := NewStore(items...)
	store.Subscribe(func(items []models.CartLineItem) {
		s.persist(sessionID, items)
	})
	s.sessions[sessionID] = &session{store: store, lastUsed: s.now()}

	log.Printf("🛒 Cart session %s opened with %d lines", sessionID, len(items))
	return store, nil
}

// Forget drops the in-memory cart of a session; the persisted copy stays until it expires
func (s *Sessions) Forget(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

// Sweep drops carts untouched for longer than maxIdle and returns how many were dropped
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
		log.Printf("🧹 Dropped %d idle cart sessions", dropped)
	}
	return dropped
}

// Len returns the number of carts held in memory
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Sessions) persist(sessionID string, items []models.CartLineItem) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	var err error
	if len(items) == 0 {
		err = s.repository.Delete(ctx, sessionID)
	} else {
		err = s.repository.Save(ctx, sessionID, items)
	}
	if err != nil {
		log.Printf("❌ Failed to persist cart %s: %v", sessionID, err)
	}
}
