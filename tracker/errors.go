package tracker

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNoSession is returned when an authenticated call is made without a session token.
	ErrNoSession = errors.New("not signed in")

	// ErrUnauthorized is returned when the server rejects the session token.
	ErrUnauthorized = errors.New("session rejected by server")

	// ErrNotFound is returned when the server has no record with the given ID.
	ErrNotFound = errors.New("not found")

	// ErrNotConfirmed is returned when the user declines a destructive action.
	ErrNotConfirmed = errors.New("action not confirmed")

	// ErrInFlight is returned when a mutation on the same record is still outstanding.
	ErrInFlight = errors.New("another change to this record is in progress")

	// ErrNotDeleted is returned when purging a record that is still active.
	ErrNotDeleted = errors.New("record must be deleted before it can be purged")

	// ErrInvalidTransition is returned for a lifecycle move that does not apply
	// to the record's current partition.
	ErrInvalidTransition = errors.New("invalid lifecycle transition")

	// ErrCredentialFetch is returned when the stored gist credential cannot be read.
	ErrCredentialFetch = errors.New("failed to fetch GitHub personal access token")
)

// APIError is a non-success response from the backend.
type APIError struct {
	// Op is the generic description of the failed operation.
	Op string
	// Status is the HTTP status code.
	Status int
	// Message is the server-supplied message, if any.
	Message string
	// Anonymous marks a request sent without a session token, whose 401
	// means bad credentials rather than a rejected session.
	Anonymous bool
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %d %s", e.Op, e.Status, http.StatusText(e.Status))
}

// Unwrap maps authentication and lookup failures onto sentinel errors.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		if e.Anonymous {
			return nil
		}
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return nil
	}
}

// UserMessage returns the text to show the user: the server's message when
// it sent one, otherwise the generic operation description.
func (e *APIError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Op
}

// TransportError wraps a failure to complete the HTTP exchange.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsAmbiguous reports whether err leaves the server state unknown: the
// request may or may not have been applied.
func IsAmbiguous(err error) bool {
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= http.StatusInternalServerError
	}
	return false
}

// IsAuthError reports whether err means the user must sign in again.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrNoSession) || errors.Is(err, ErrUnauthorized)
}
