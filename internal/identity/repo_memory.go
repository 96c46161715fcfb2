package identity

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store for tests and local bring-up.
// Not intended for production use.
type MemoryStore struct {
	mu    sync.Mutex
	users map[string]memoryUser

	bcryptCost int
}

type memoryUser struct {
	identity UserIdentity
	hash     string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:      map[string]memoryUser{},
		bcryptCost: DefaultBcryptCost,
	}
}

// WithBcryptCost overrides the hashing cost. Tests use bcrypt.MinCost to
// keep Seed and VerifyCredentials fast.
func (s *MemoryStore) WithBcryptCost(cost int) *MemoryStore {
	s.bcryptCost = cost
	return s
}

// Seed inserts a user directly, bypassing the non-admin rule of CreateUser.
func (s *MemoryStore) Seed(username, password string, isAdmin bool) error {
	hash, err := HashPassword(password, s.bcryptCost)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[username] = memoryUser{
		identity: UserIdentity{Username: username, IsAdmin: isAdmin},
		hash:     hash,
	}
	return nil
}

func (s *MemoryStore) VerifyCredentials(ctx context.Context, username, password string) (UserIdentity, error) {
	s.mu.Lock()
	u, ok := s.users[username]
	s.mu.Unlock()
	if !ok {
		return UserIdentity{}, ErrNoSuchUser
	}
	if err := ComparePassword(u.hash, password); err != nil {
		return UserIdentity{}, err
	}
	return u.identity, nil
}

func (s *MemoryStore) CreateUser(ctx context.Context, p Profile) (UserIdentity, error) {
	hash, err := HashPassword(p.Password, s.bcryptCost)
	if err != nil {
		return UserIdentity{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[p.Username]; ok {
		return UserIdentity{}, ErrDuplicate
	}
	u := memoryUser{
		identity: UserIdentity{Username: p.Username, IsAdmin: false},
		hash:     hash,
	}
	s.users[p.Username] = u
	return u.identity, nil
}

func (s *MemoryStore) FindByUsername(ctx context.Context, username string) (UserIdentity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[username]
	if !ok {
		return UserIdentity{}, ErrNoSuchUser
	}
	return u.identity, nil
}
