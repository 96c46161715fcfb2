package identity

import (
	"context"
	"errors"
)

// UserIdentity is what credential verification yields: the public fields
// auth needs to mint a token. Immutable once returned; the auth layer
// never persists it.
type UserIdentity struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// Profile is the registration input. IsAdmin is deliberately absent:
// self-registration can never grant admin rights, so the field cannot
// even be expressed here.
type Profile struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
}

var (
	// ErrNoSuchUser and ErrBadPassword are kept distinct for logs and
	// auditing. The credential gate collapses both before anything
	// reaches a client.
	ErrNoSuchUser  = errors.New("no such user")
	ErrBadPassword = errors.New("bad password")

	ErrDuplicate = errors.New("username already taken")
)

// Store is the persistence contract for user records.
type Store interface {
	// VerifyCredentials returns the identity bound to username iff the
	// password matches its stored hash.
	VerifyCredentials(ctx context.Context, username, password string) (UserIdentity, error)

	// CreateUser registers a new non-admin user.
	// Returns ErrDuplicate when the username is taken.
	CreateUser(ctx context.Context, p Profile) (UserIdentity, error)

	// FindByUsername returns the identity for username without a
	// password check. Used by the refresh flow, which trusts the
	// server-side refresh binding instead of a password.
	FindByUsername(ctx context.Context, username string) (UserIdentity, error)
}
