// Package session holds the signed-in user's token.
//
// A Session is created on sign-in, passed explicitly to the components that
// call the API, and removed on logout. The Store keeps one session on disk
// (~/.local/state/markitdown/session.json) so that separate CLI invocations
// share a login. Access to the file is serialized with a lock file.
package session

import (
	"strings"
	"time"
)

// Session is an authenticated user's API credential.
type Session struct {
	// Token is the opaque value sent in the Authorization header.
	Token string `json:"token"`
	// Email is the address the user signed in with.
	Email string `json:"email,omitempty"`
	// SignedInAt records when the token was issued to this client.
	SignedInAt time.Time `json:"signed_in_at"`
}

// New returns a session for a freshly issued token.
func New(token, email string, now time.Time) Session {
	return Session{
		Token:      strings.TrimSpace(token),
		Email:      strings.TrimSpace(email),
		SignedInAt: now,
	}
}

// Valid reports whether the session carries a token.
func (s Session) Valid() bool {
	return strings.TrimSpace(s.Token) != ""
}
