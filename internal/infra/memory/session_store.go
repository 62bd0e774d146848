package memory

import (
	"context"
	"sync"
	"time"

	"logo-guess-service/internal/domain"
	"logo-guess-service/internal/game"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
// Expired sessions are swept on write.
type SessionStore struct {
	ttl   time.Duration
	clock func() time.Time

	mu       sync.RWMutex
	sessions map[string]storedSession
}

type storedSession struct {
	snap      game.Snapshot
	expiresAt time.Time
}

// NewSessionStore keeps sessions for ttl after their last write; zero keeps them forever.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		clock:    time.Now,
		sessions: make(map[string]storedSession),
	}
}

func (s *SessionStore) Save(_ context.Context, snap game.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock()
	s.sweepLocked(now)
	entry := storedSession{snap: snap}
	if s.ttl > 0 {
		entry.expiresAt = now.Add(s.ttl)
	}
	s.sessions[snap.ID] = entry
	return nil
}

func (s *SessionStore) Load(_ context.Context, id string) (game.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.sessions[id]
	if !ok || s.expired(entry, s.clock()) {
		return game.Snapshot{}, domain.ErrSessionNotFound
	}
	return entry.snap, nil
}

// Take removes and returns a live session under the write lock.
func (s *SessionStore) Take(_ context.Context, id string) (game.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[id]
	if !ok || s.expired(entry, s.clock()) {
		return game.Snapshot{}, domain.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return entry.snap, nil
}

// Len reports how many sessions are held, expired ones included.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *SessionStore) sweepLocked(now time.Time) {
	for id, entry := range s.sessions {
		if s.expired(entry, now) {
			delete(s.sessions, id)
		}
	}
}

func (s *SessionStore) expired(entry storedSession, now time.Time) bool {
	return !entry.expiresAt.IsZero() && !entry.expiresAt.After(now)
}
