package auth

import (
	"context"
	"errors"
	"log/slog"

	"jobboard-platform/internal/audit"
	"jobboard-platform/internal/identity"
)

// Service is the credential gate: it turns verified credentials into
// signed tokens and owns the refresh-token lifecycle. Credential checking
// and user creation belong to identity.Store; this service never sees a
// password hash.
type Service struct {
	codec   *Codec
	users   identity.Store
	refresh RefreshStore

	auditor *audit.Service
	log     *slog.Logger

	// rotateRefresh replaces the refresh token on every Rotate call
	// instead of keeping one long-lived token per session.
	rotateRefresh bool
}

func NewService(codec *Codec, users identity.Store, refresh RefreshStore) *Service {
	return &Service{
		codec:   codec,
		users:   users,
		refresh: refresh,
		log:     slog.Default(),
	}
}

// WithAudit wires an audit trail. Audit appends are best-effort; failures
// are logged and swallowed.
func (s *Service) WithAudit(a *audit.Service) *Service {
	s.auditor = a
	return s
}

func (s *Service) WithLogger(l *slog.Logger) *Service {
	if l != nil {
		s.log = l
	}
	return s
}

func (s *Service) WithRefreshRotation(on bool) *Service {
	s.rotateRefresh = on
	return s
}

// Session is the result of a successful login.
type Session struct {
	AccessToken  string
	RefreshToken string
	Identity     identity.UserIdentity
	Roles        []Role
}

// Rotation is the result of a successful refresh. RefreshToken is empty
// unless rotation is enabled.
type Rotation struct {
	AccessToken  string
	RefreshToken string
	Roles        []Role
}

// Login verifies credentials and mints an access/refresh token pair,
// registering the refresh token in the store for the refresh TTL.
//
// Unknown user and wrong password both come back as ErrInvalidCredentials;
// the split is visible in logs and audit, never to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (Session, error) {
	id, err := s.users.VerifyCredentials(ctx, username, password)
	if err != nil {
		if errors.Is(err, identity.ErrNoSuchUser) || errors.Is(err, identity.ErrBadPassword) {
			s.log.Info("login rejected", "username", username, "reason", err.Error())
			s.emit(ctx, audit.EventTypeLoginFailure, username, err.Error())
			return Session{}, ErrInvalidCredentials
		}
		s.log.Error("credential verification failed", "err", err)
		return Session{}, err
	}

	set := ClaimSet{Username: id.Username, Roles: RolesFor(id.IsAdmin)}

	access, err := s.codec.IssueAccess(set)
	if err != nil {
		return Session{}, err
	}
	refresh, err := s.codec.IssueRefresh(set)
	if err != nil {
		return Session{}, err
	}

	if err := s.refresh.Save(ctx, refresh, id.Username, s.codec.RefreshTTL()); err != nil {
		s.log.Error("refresh token save failed", "err", err)
		return Session{}, err
	}

	s.emit(ctx, audit.EventTypeLoginSuccess, id.Username, "")

	return Session{
		AccessToken:  access,
		RefreshToken: refresh,
		Identity:     id,
		Roles:        set.Roles,
	}, nil
}

// Register creates a new user and returns a fresh access token for it.
// The identity store forces IsAdmin=false; a Profile cannot express
// anything else.
func (s *Service) Register(ctx context.Context, p identity.Profile) (string, identity.UserIdentity, error) {
	id, err := s.users.CreateUser(ctx, p)
	if err != nil {
		if errors.Is(err, identity.ErrDuplicate) {
			return "", identity.UserIdentity{}, ErrDuplicateUser
		}
		s.log.Error("user creation failed", "err", err)
		return "", identity.UserIdentity{}, err
	}

	token, err := s.codec.IssueAccess(ClaimSet{Username: id.Username, Roles: RolesFor(id.IsAdmin)})
	if err != nil {
		return "", identity.UserIdentity{}, err
	}

	s.emit(ctx, audit.EventTypeUserRegistered, id.Username, "")

	return token, id, nil
}

// Rotate exchanges a refresh token for a new access token.
//
// Failure modes, all surfaced as 403-class errors:
//   - token absent from the store: ErrRefreshUnknown
//   - token fails signature/expiry verification, or its claims name a
//     different user than the store binding: ErrRefreshInvalid
//
// With rotation enabled the store entry is consumed atomically before
// anything else, so a concurrent second Rotate on the same token loses
// with ErrRefreshUnknown.
func (s *Service) Rotate(ctx context.Context, refreshToken string) (Rotation, error) {
	var (
		username string
		err      error
	)
	if s.rotateRefresh {
		username, err = s.refresh.Consume(ctx, refreshToken)
	} else {
		username, err = s.refresh.Lookup(ctx, refreshToken)
	}
	if err != nil {
		return Rotation{}, err
	}

	set, err := s.codec.Verify(refreshToken)
	if err != nil {
		s.log.Info("refresh token rejected", "username", username, "reason", err.Error())
		return Rotation{}, ErrRefreshInvalid
	}
	if set.Username != username {
		// A verifiable token pointing at someone else's store entry is
		// the stolen/forged case; destroy the binding.
		s.log.Warn("refresh token user mismatch", "bound", username, "claimed", set.Username)
		_ = s.refresh.Revoke(ctx, refreshToken)
		return Rotation{}, ErrRefreshInvalid
	}

	id, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, identity.ErrNoSuchUser) {
			return Rotation{}, ErrRefreshInvalid
		}
		return Rotation{}, err
	}

	// Roles come from the current user record, not the old token, so an
	// admin change takes effect on the next refresh.
	roles := RolesFor(id.IsAdmin)

	access, err := s.codec.IssueAccess(ClaimSet{Username: id.Username, Roles: roles})
	if err != nil {
		return Rotation{}, err
	}

	out := Rotation{AccessToken: access, Roles: roles}

	if s.rotateRefresh {
		next, err := s.codec.IssueRefresh(ClaimSet{Username: id.Username, Roles: roles})
		if err != nil {
			return Rotation{}, err
		}
		if err := s.refresh.Save(ctx, next, id.Username, s.codec.RefreshTTL()); err != nil {
			return Rotation{}, err
		}
		out.RefreshToken = next
	}

	s.emit(ctx, audit.EventTypeTokenRefreshed, id.Username, "")

	return out, nil
}

// Logout revokes the refresh token's store binding. Idempotent: an empty
// or unknown token is a no-op.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.refresh.Revoke(ctx, refreshToken); err != nil {
		return err
	}

	// Best-effort attribution for the audit trail only.
	username := ""
	if set, err := s.codec.Verify(refreshToken); err == nil {
		username = set.Username
	}
	s.emit(ctx, audit.EventTypeLogout, username, "")
	return nil
}

func (s *Service) emit(ctx context.Context, t audit.EventType, username, message string) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.LogAuth(ctx, t, username, ClientIPFrom(ctx), message); err != nil {
		s.log.Warn("audit append failed", "err", err)
	}
}
