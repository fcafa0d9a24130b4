package main

import (
	"strings"
	"testing"
	"time"

	"github.com/amonks/markitdown/tracker"
)

func TestFormatProjectDetail(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	detail := tracker.ProjectDetail{
		Project: tracker.Project{ID: 1, Title: "Trip"},
		Tasks: []tracker.Task{
			{ID: 2, Description: "Book flight", Status: tracker.StatusDone},
			{ID: 3, Description: "Pack bags", Status: tracker.StatusNotDone},
		},
		DeletedTasks: []tracker.Task{
			{ID: 4, Description: "Rent car", Status: tracker.StatusNotDone},
		},
	}

	want := "Trip  #1\n1/2 completed\n" +
		"\nPending\n  [ ] 3 Pack bags\n" +
		"\nCompleted\n  [x] 2 Book flight\n" +
		"\nDeleted\n  [ ] 4 Rent car\n"
	if got := formatProjectDetail(detail, 80); got != want {
		t.Fatalf("unexpected output:\n%q\nwant\n%q", got, want)
	}
}

func TestFormatProjectDetailEmpty(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	detail := tracker.ProjectDetail{Project: tracker.Project{ID: 5, Title: "Empty", IsDeleted: true}}
	got := formatProjectDetail(detail, 80)
	if !strings.HasPrefix(got, "Empty (deleted)  #5\n0/0 completed\n") {
		t.Fatalf("unexpected header %q", got)
	}
	if strings.Count(got, "(none)") != 2 {
		t.Fatalf("expected both sections to be empty, got %q", got)
	}
	if strings.Contains(got, "Deleted\n") {
		t.Fatalf("expected no deleted section, got %q", got)
	}
}

func TestWrapDescriptionIndentsContinuation(t *testing.T) {
	description := strings.Repeat("word ", 20)
	got := wrapDescription(description, 40)
	lines := strings.Split(got, "\n")
	if len(lines) < 2 {
		t.Fatalf("expected wrapping, got %q", got)
	}
	for _, line := range lines[1:] {
		if !strings.HasPrefix(line, strings.Repeat(" ", taskIndent*2)) {
			t.Fatalf("expected indented continuation, got %q", line)
		}
	}
}

func TestFormatProjectTable(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	projects := []tracker.Project{
		{ID: 1, Title: "Trip", CreatedDate: now.Add(-2 * time.Hour)},
		{ID: 12, Title: "Groceries", CreatedDate: now.Add(-3 * 24 * time.Hour), IsDeleted: true},
	}

	got := formatProjectTable(projects, now, true)
	want := "ID  TITLE      CREATED  STATE\n" +
		"1   Trip       2h ago   active\n" +
		"12  Groceries  3d ago   deleted\n"
	if got != want {
		t.Fatalf("unexpected table:\n%q\nwant\n%q", got, want)
	}
}

func TestMaskCredential(t *testing.T) {
	cases := map[string]string{
		"":             "not set",
		"abc":          "***",
		"ghp_test1234": "********1234",
	}
	for input, want := range cases {
		if got := maskCredential(input); got != want {
			t.Fatalf("maskCredential(%q) = %q, want %q", input, got, want)
		}
	}
}
