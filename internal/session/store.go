// Package session owns the single-slot credential store and the scope guard
// that sits on the boundary of every upstream call.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is the one read/write/evict surface for the active credential of an
// admin session. One slot per session: login overwrites it, logout and any
// violation clear it.
type Store interface {
	Get(ctx context.Context, sid string) (string, error)
	Set(ctx context.Context, sid, token string) error
	Clear(ctx context.Context, sid string) error
}

// RedisStore persists credential slots in Redis with the session TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore constructs a RedisStore.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) key(sid string) string {
	return "credential:" + sid
}

// Get returns the stored bearer token, or "" when the slot is empty.
func (s *RedisStore) Get(ctx context.Context, sid string) (string, error) {
	if sid == "" {
		return "", nil
	}
	value, err := s.client.Get(ctx, s.key(sid)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// Set overwrites the slot with the new credential.
func (s *RedisStore) Set(ctx context.Context, sid, token string) error {
	return s.client.Set(ctx, s.key(sid), token, s.ttl).Err()
}

// Clear evicts the credential. Clearing an empty slot is not an error.
func (s *RedisStore) Clear(ctx context.Context, sid string) error {
	err := s.client.Del(ctx, s.key(sid)).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}

// MemoryStore is an in-process Store for tests.
type MemoryStore struct {
	mu    sync.Mutex
	slots map[string]string
}

// NewMemoryStore constructs a MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string]string)}
}

// Get returns the stored token or "".
func (s *MemoryStore) Get(_ context.Context, sid string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slots[sid], nil
}

// Set overwrites the slot.
func (s *MemoryStore) Set(_ context.Context, sid, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[sid] = token
	return nil
}

// Clear evicts the slot.
func (s *MemoryStore) Clear(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, sid)
	return nil
}
