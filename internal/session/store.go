package session

import (
	"context"
	"fmt"

	"github.com/Varun5711/carmate/internal/cache"
	"github.com/google/uuid"
)

// Store persists sessions across screen renders, keyed by session id.
type Store interface {
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, id string, s *Session) error
	Delete(ctx context.Context, id string) error
}

type CachedStore struct {
	cache *cache.Tiered
}

func NewStore(c *cache.Tiered) *CachedStore {
	return &CachedStore{cache: c}
}

func NewID() string {
	return uuid.New().String()
}

// Load returns an empty session for unknown ids.
func (s *CachedStore) Load(ctx context.Context, id string) (*Session, error) {
	var sess Session
	found, err := s.cache.GetJSON(ctx, id, &sess)
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	if !found {
		return &Session{}, nil
	}
	return &sess, nil
}

func (s *CachedStore) Save(ctx context.Context, id string, sess *Session) error {
	if err := s.cache.SetJSON(ctx, id, sess); err != nil {
		return fmt.Errorf("save session %s: %w", id, err)
	}
	return nil
}

func (s *CachedStore) Delete(ctx context.Context, id string) error {
	if err := s.cache.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}

// MemoryStore keeps sessions in a bounded LRU for a single process.
type MemoryStore struct {
	lru *cache.LRU[Session]
}

func NewMemoryStore(capacity int) *MemoryStore {
	return &MemoryStore{lru: cache.NewLRU[Session](capacity)}
}

func (m *MemoryStore) Load(_ context.Context, id string) (*Session, error) {
	sess, ok := m.lru.Get(id)
	if !ok {
		return &Session{}, nil
	}
	return &sess, nil
}

func (m *MemoryStore) Save(_ context.Context, id string, sess *Session) error {
	m.lru.Set(id, *sess)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.lru.Delete(id)
	return nil
}
