package identity

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("hunter22", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "hunter22" {
		t.Fatalf("password stored in the clear")
	}

	if err := ComparePassword(hash, "hunter22"); err != nil {
		t.Fatalf("compare: %v", err)
	}
	if err := ComparePassword(hash, "hunter23"); !errors.Is(err, ErrBadPassword) {
		t.Fatalf("expected ErrBadPassword, got %v", err)
	}
}

func TestHashPassword_ClampsBadCost(t *testing.T) {
	// An out-of-range cost must not panic or weaken hashing silently
	// below bcrypt's own minimum.
	if _, err := HashPassword("pw", 99); err != nil {
		t.Fatalf("hash with out-of-range cost: %v", err)
	}
}

func TestMemoryStore_VerifyCredentials(t *testing.T) {
	s := NewMemoryStore().WithBcryptCost(bcrypt.MinCost)
	if err := s.Seed("bob", "bobpassword", false); err != nil {
		t.Fatalf("seed: %v", err)
	}
	ctx := context.Background()

	u, err := s.VerifyCredentials(ctx, "bob", "bobpassword")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if u.Username != "bob" || u.IsAdmin {
		t.Fatalf("unexpected identity: %+v", u)
	}

	if _, err := s.VerifyCredentials(ctx, "bob", "wrong"); !errors.Is(err, ErrBadPassword) {
		t.Fatalf("expected ErrBadPassword, got %v", err)
	}
	if _, err := s.VerifyCredentials(ctx, "nouser", "whatever"); !errors.Is(err, ErrNoSuchUser) {
		t.Fatalf("expected ErrNoSuchUser, got %v", err)
	}
}

func TestMemoryStore_CreateUser(t *testing.T) {
	s := NewMemoryStore().WithBcryptCost(bcrypt.MinCost)
	ctx := context.Background()

	u, err := s.CreateUser(ctx, Profile{
		Username:  "carol",
		Password:  "carolpassword",
		FirstName: "Carol",
		LastName:  "Jones",
		Email:     "carol@example.com",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.IsAdmin {
		t.Fatalf("created user must not be admin")
	}

	if _, err := s.CreateUser(ctx, Profile{Username: "carol", Password: "x"}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	if _, err := s.VerifyCredentials(ctx, "carol", "carolpassword"); err != nil {
		t.Fatalf("verify created user: %v", err)
	}
}

func TestMemoryStore_FindByUsername(t *testing.T) {
	s := NewMemoryStore().WithBcryptCost(bcrypt.MinCost)
	if err := s.Seed("alice", "alicepassword", true); err != nil {
		t.Fatalf("seed: %v", err)
	}
	ctx := context.Background()

	u, err := s.FindByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !u.IsAdmin {
		t.Fatalf("expected admin flag preserved")
	}

	if _, err := s.FindByUsername(ctx, "nouser"); !errors.Is(err, ErrNoSuchUser) {
		t.Fatalf("expected ErrNoSuchUser, got %v", err)
	}
}
