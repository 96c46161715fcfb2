package audit

import "time"

// Event is an immutable, append-only record of an authentication event.
//
// Invariants:
// - Events are never updated or deleted.
// - Username is best-effort: login failures for unknown users record the
//   attempted name, which is useful for spotting enumeration probes.
// - Audit failures must never fail the auth flow they describe.
type Event struct {
	ID string `json:"id"`

	Type EventType `json:"type"`

	// Username is the subject of the event (attempted or actual).
	Username string `json:"username,omitempty"`

	// IPAddress is the resolved client IP when available.
	IPAddress string `json:"ip_address,omitempty"`

	// Message is a short human-readable description for internal ops.
	Message string `json:"message,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

type EventType string

const (
	EventTypeLoginSuccess   EventType = "login_success"
	EventTypeLoginFailure   EventType = "login_failure"
	EventTypeUserRegistered EventType = "user_registered"
	EventTypeTokenRefreshed EventType = "token_refreshed"
	EventTypeLogout         EventType = "logout"
)
