package auth

import (
	"errors"
	"net/http"
)

// Token errors are internal. The request authenticator absorbs all three;
// they never reach a client, only logs. Callers distinguish them with
// errors.Is.
var (
	ErrTokenMalformed    = errors.New("token malformed")
	ErrTokenBadSignature = errors.New("token signature invalid")
	ErrTokenExpired      = errors.New("token expired")
)

// Error is a caller-visible auth failure carrying the HTTP status it maps
// to at the boundary.
type Error struct {
	Message string
	Status  int
}

func (e *Error) Error() string { return e.Message }

var (
	// ErrInvalidCredentials covers both unknown user and wrong password.
	// One message for both, so responses cannot be used to enumerate users.
	ErrInvalidCredentials = &Error{Message: "invalid username or password", Status: http.StatusUnauthorized}

	ErrUnauthorized = &Error{Message: "unauthorized", Status: http.StatusUnauthorized}

	ErrDuplicateUser = &Error{Message: "username already taken", Status: http.StatusBadRequest}
	ErrInvalidInput  = &Error{Message: "invalid input", Status: http.StatusBadRequest}

	// Refresh failures: absent from the store vs. present but unusable.
	ErrRefreshUnknown = &Error{Message: "unknown refresh token", Status: http.StatusForbidden}
	ErrRefreshInvalid = &Error{Message: "invalid refresh token", Status: http.StatusForbidden}
)

// InvalidInput returns an input error with a caller-visible message,
// typically a joined validation error list.
func InvalidInput(msg string) *Error {
	if msg == "" {
		return ErrInvalidInput
	}
	return &Error{Message: msg, Status: http.StatusBadRequest}
}
