package auth

import (
	"context"
	"sync"
	"time"
)

// RefreshStore maps a refresh token to the username it was issued for.
// It is the only shared mutable state in the auth layer.
//
// Consume must be atomic per key: when two callers race on one token,
// exactly one may receive the binding.
type RefreshStore interface {
	Save(ctx context.Context, token, username string, ttl time.Duration) error

	// Lookup returns the bound username, or ErrRefreshUnknown.
	Lookup(ctx context.Context, token string) (string, error)

	// Consume atomically looks up and removes the binding, or returns
	// ErrRefreshUnknown.
	Consume(ctx context.Context, token string) (string, error)

	// Revoke removes the binding. Revoking an absent token is a no-op.
	Revoke(ctx context.Context, token string) error
}

// MemoryRefreshStore is an in-process RefreshStore for tests and local
// bring-up. Not intended for production use.
type MemoryRefreshStore struct {
	mu      sync.Mutex
	entries map[string]memoryRefreshEntry

	clock func() time.Time
}

type memoryRefreshEntry struct {
	username  string
	expiresAt time.Time
}

func NewMemoryRefreshStore() *MemoryRefreshStore {
	return &MemoryRefreshStore{
		entries: map[string]memoryRefreshEntry{},
		clock:   time.Now,
	}
}

func (s *MemoryRefreshStore) Save(ctx context.Context, token, username string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = memoryRefreshEntry{
		username:  username,
		expiresAt: s.clock().Add(ttl),
	}
	return nil
}

func (s *MemoryRefreshStore) Lookup(ctx context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[token]
	if !ok || s.clock().After(e.expiresAt) {
		delete(s.entries, token)
		return "", ErrRefreshUnknown
	}
	return e.username, nil
}

func (s *MemoryRefreshStore) Consume(ctx context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[token]
	if !ok || s.clock().After(e.expiresAt) {
		delete(s.entries, token)
		return "", ErrRefreshUnknown
	}
	delete(s.entries, token)
	return e.username, nil
}

func (s *MemoryRefreshStore) Revoke(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
	return nil
}
