package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"logo-guess-service/internal/domain"
	"logo-guess-service/internal/game"
)

// SessionStore is a Redis implementation of app.SessionRepository.
// Each session lives as a JSON snapshot under game:session:{id}; every save
// refreshes the TTL, so idle sessions expire on their own and any instance
// can pick a session up.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Save(ctx context.Context, snap game.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(snap.ID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Load(ctx context.Context, id string) (game.Snapshot, error) {
	return decodeSession(s.client.Get(ctx, s.key(id)), "load session")
}

// Take uses GETDEL, so concurrent callers cannot both receive the session.
func (s *SessionStore) Take(ctx context.Context, id string) (game.Snapshot, error) {
	return decodeSession(s.client.GetDel(ctx, s.key(id)), "take session")
}

func (s *SessionStore) key(id string) string {
	return "game:session:" + id
}

func decodeSession(cmd *redis.StringCmd, op string) (game.Snapshot, error) {
	raw, err := cmd.Bytes()
	if errors.Is(err, redis.Nil) {
		return game.Snapshot{}, domain.ErrSessionNotFound
	}
	if err != nil {
		return game.Snapshot{}, fmt.Errorf("%s: %w", op, err)
	}
	var snap game.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return game.Snapshot{}, fmt.Errorf("decode session: %w", err)
	}
	return snap, nil
}
