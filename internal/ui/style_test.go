package ui

import "testing"

func TestStatusLabelWithoutColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	cases := []struct {
		done, deleted bool
		want          string
	}{
		{done: false, deleted: false, want: "pending"},
		{done: true, deleted: false, want: "done"},
		{done: true, deleted: true, want: "deleted"},
	}
	for _, tc := range cases {
		if got := StatusLabel(tc.done, tc.deleted); got != tc.want {
			t.Fatalf("StatusLabel(%v, %v) = %q, want %q", tc.done, tc.deleted, got, tc.want)
		}
	}
}

func TestCheckboxWithoutColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	if got := Checkbox(true); got != "[x]" {
		t.Fatalf("expected [x], got %q", got)
	}
	if got := Checkbox(false); got != "[ ]" {
		t.Fatalf("expected [ ], got %q", got)
	}
	if got := Heading("Pending"); got != "Pending" {
		t.Fatalf("expected plain heading, got %q", got)
	}
}
