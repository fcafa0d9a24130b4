package tracker

import (
	"errors"
	"strings"
	"testing"

	"github.com/amonks/markitdown/internal/validation"
)

func TestValidateTitle(t *testing.T) {
	title, err := ValidateTitle("  Trip ")
	if err != nil || title != "Trip" {
		t.Fatalf("expected trimmed title, got %q %v", title, err)
	}
	if _, err := ValidateTitle(" "); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
	if _, err := ValidateTitle(strings.Repeat("é", MaxTitleLength)); err != nil {
		t.Fatalf("expected max-length title to pass, got %v", err)
	}
	if _, err := ValidateTitle(strings.Repeat("a", MaxTitleLength+1)); !errors.Is(err, ErrTitleTooLong) {
		t.Fatalf("expected ErrTitleTooLong, got %v", err)
	}
}

func TestValidateDescription(t *testing.T) {
	if _, err := ValidateDescription("\n\t"); !errors.Is(err, ErrEmptyDescription) {
		t.Fatalf("expected ErrEmptyDescription, got %v", err)
	}
	if _, err := ValidateDescription(strings.Repeat("a", MaxDescriptionLength+1)); !errors.Is(err, ErrDescriptionTooLong) {
		t.Fatalf("expected ErrDescriptionTooLong, got %v", err)
	}
}

func TestValidateSignIn(t *testing.T) {
	if err := ValidateSignIn("", "Secret123!"); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
	if err := ValidateSignIn("a@example.com", "secret"); !errors.Is(err, validation.ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	if err := ValidateSignIn("a@example.com", "Secret123!"); err != nil {
		t.Fatalf("expected valid sign-in, got %v", err)
	}
}

func TestValidateRegistration(t *testing.T) {
	valid := Registration{Name: "Ada", Email: "a@example.com", Password: "Secret123!", ConfirmPassword: "Secret123!"}
	if err := ValidateRegistration(valid); err != nil {
		t.Fatalf("expected valid registration, got %v", err)
	}

	noName := valid
	noName.Name = " "
	if err := ValidateRegistration(noName); !errors.Is(err, ErrMissingName) {
		t.Fatalf("expected ErrMissingName, got %v", err)
	}

	mismatch := valid
	mismatch.ConfirmPassword = "Secret123?"
	if err := ValidateRegistration(mismatch); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestStatusToggled(t *testing.T) {
	if StatusDone.Toggled() != StatusNotDone || StatusNotDone.Toggled() != StatusDone {
		t.Fatal("expected toggle to flip status")
	}
	if Status("archived").IsValid() {
		t.Fatal("expected unknown status to be invalid")
	}
}

func TestAPIErrorMessages(t *testing.T) {
	withMessage := &APIError{Op: "failed to add task", Status: 400, Message: "Task description is required"}
	if withMessage.Error() != "failed to add task: Task description is required" {
		t.Fatalf("unexpected error text %q", withMessage.Error())
	}
	bare := &APIError{Op: "failed to add task", Status: 502}
	if bare.UserMessage() != "failed to add task" {
		t.Fatalf("unexpected user message %q", bare.UserMessage())
	}
	if !IsAmbiguous(bare) {
		t.Fatal("expected 5xx to be ambiguous")
	}
}
