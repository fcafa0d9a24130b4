package main

import (
	"errors"

	"github.com/amonks/markitdown/session"
	"github.com/amonks/markitdown/tracker"
)

const notSignedInMessage = "not signed in: run `mid login`"

// userMessage turns an error into the line shown on stderr.
func userMessage(err error) string {
	if errors.Is(err, session.ErrNoSession) || tracker.IsAuthError(err) {
		return notSignedInMessage
	}
	var apiErr *tracker.APIError
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	return err.Error()
}
