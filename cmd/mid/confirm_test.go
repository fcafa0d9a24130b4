package main

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/amonks/markitdown/tracker"
	"github.com/spf13/cobra"
)

func TestPromptConfirmer(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "yes", input: "y\n", want: true},
		{name: "full word", input: " YES \n", want: true},
		{name: "no", input: "n\n", want: false},
		{name: "blank", input: "\n", want: false},
		{name: "end of input", input: "", want: false},
		{name: "no trailing newline", input: "y", want: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			confirmer := &promptConfirmer{in: bufio.NewReader(strings.NewReader(tc.input)), out: &out}

			got, err := confirmer.Confirm("Delete it?")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			if !strings.HasPrefix(out.String(), "Delete it? [y/N] ") {
				t.Fatalf("unexpected prompt %q", out.String())
			}
		})
	}
}

func TestConfirmerForYes(t *testing.T) {
	var stderr bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader("n\n"))
	cmd.SetErr(&stderr)

	ok, err := confirmerFor(cmd, true).Confirm("Delete it?")
	if err != nil || !ok {
		t.Fatalf("expected --yes to confirm, got %v %v", ok, err)
	}
	if stderr.Len() != 0 {
		t.Fatalf("expected no prompt, got %q", stderr.String())
	}
}

func TestDeclinedIsNotAnError(t *testing.T) {
	var stderr bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetErr(&stderr)

	if err := declined(cmd, tracker.ErrNotConfirmed); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if stderr.String() != "Cancelled.\n" {
		t.Fatalf("unexpected stderr %q", stderr.String())
	}

	other := errors.New("boom")
	if err := declined(cmd, other); err != other {
		t.Fatalf("expected other errors to pass through, got %v", err)
	}
}
