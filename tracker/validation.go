package tracker

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/amonks/markitdown/internal/validation"
)

var (
	// ErrEmptyTitle is returned when a project title is empty.
	ErrEmptyTitle = errors.New("project title cannot be empty")

	// ErrTitleTooLong is returned when a project title exceeds MaxTitleLength.
	ErrTitleTooLong = errors.New("project title exceeds maximum length")

	// ErrEmptyDescription is returned when a task description is empty.
	ErrEmptyDescription = errors.New("task description cannot be empty")

	// ErrDescriptionTooLong is returned when a task description exceeds MaxDescriptionLength.
	ErrDescriptionTooLong = errors.New("task description exceeds maximum length")

	// ErrMissingCredentials is returned when sign-in is attempted without an email or password.
	ErrMissingCredentials = errors.New("email and password are required")

	// ErrMissingName is returned when registering without a name.
	ErrMissingName = errors.New("name is required")

	// ErrPasswordMismatch is returned when a registration's passwords differ.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrInvalidID is returned for non-positive record IDs.
	ErrInvalidID = errors.New("invalid id")
)

// ValidateTitle checks a project title and returns it trimmed.
func ValidateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrEmptyTitle
	}
	if n := utf8.RuneCountInString(title); n > MaxTitleLength {
		return "", fmt.Errorf("%w: %d > %d", ErrTitleTooLong, n, MaxTitleLength)
	}
	return title, nil
}

// ValidateDescription checks a task description and returns it trimmed.
func ValidateDescription(description string) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", ErrEmptyDescription
	}
	if n := utf8.RuneCountInString(description); n > MaxDescriptionLength {
		return "", fmt.Errorf("%w: %d > %d", ErrDescriptionTooLong, n, MaxDescriptionLength)
	}
	return description, nil
}

// ValidateSignIn checks sign-in input before it is sent.
func ValidateSignIn(email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return ErrMissingCredentials
	}
	return validation.CheckPassword(password)
}

// ValidateRegistration checks sign-up input before it is sent.
func ValidateRegistration(r Registration) error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrMissingName
	}
	if r.Password == "" {
		return ErrMissingCredentials
	}
	if r.Password != r.ConfirmPassword {
		return ErrPasswordMismatch
	}
	return validation.CheckPassword(r.Password)
}

func validateID(id int) error {
	if id <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidID, id)
	}
	return nil
}
