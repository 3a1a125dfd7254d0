// Package session provides the in-memory checkout session store.
package session

import (
	"sync"
	"time"

	"bazaar/internal/domain/entity"
	"bazaar/internal/domain/repository"

	"github.com/google/uuid"
)

const defaultTTL = 30 * time.Minute

type storedSession struct {
	session   *entity.CheckoutSession
	expiresAt time.Time
}

// MemoryStore keeps checkout sessions in process memory, one per user.
// Expired sessions are dropped lazily on access and swept on writes.
type MemoryStore struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]storedSession
}

// NewMemoryStore creates a store with the given session TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}

	return &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[uuid.UUID]storedSession),
	}
}

// Get returns the user's live session.
func (s *MemoryStore) Get(userID uuid.UUID) (*entity.CheckoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.sessions[userID]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	if s.now().After(stored.expiresAt) {
		delete(s.sessions, userID)

		return nil, repository.ErrSessionNotFound
	}

	return stored.session, nil
}

// Put stores the user's session, replacing any previous one and resetting its TTL.
func (s *MemoryStore) Put(session *entity.CheckoutSession) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()
	s.sessions[session.UserID] = storedSession{
		session:   session,
		expiresAt: s.now().Add(s.ttl),
	}
}

// Delete removes the user's session.
func (s *MemoryStore) Delete(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, userID)
}

// sweepLocked drops expired sessions. Callers hold the lock.
func (s *MemoryStore) sweepLocked() {
	now := s.now()
	for userID, stored := range s.sessions {
		if now.After(stored.expiresAt) {
			delete(s.sessions, userID)
		}
	}
}
