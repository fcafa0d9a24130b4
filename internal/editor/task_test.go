package editor

import (
	"errors"
	"strings"
	"testing"

	"github.com/amonks/markitdown/tracker"
)

func TestRenderTaskTOML(t *testing.T) {
	data := DataFromTask(tracker.Task{
		ID:          7,
		Description: "Book flight",
		Status:      tracker.StatusDone,
	}, "Trip")

	content, err := RenderTaskTOML(data)
	if err != nil {
		t.Fatalf("RenderTaskTOML failed: %v", err)
	}

	if !strings.Contains(content, `# task 7 in "Trip"`) {
		t.Errorf("expected header comment, got:\n%s", content)
	}
	if !strings.Contains(content, `status = "done"`) {
		t.Error("expected status to be done")
	}
	if !strings.Contains(content, "not_done, done") {
		t.Error("expected status comment to list valid values")
	}
	if !strings.Contains(content, "---\nBook flight\n") {
		t.Errorf("expected description in body, got:\n%s", content)
	}
}

func TestDataFromTaskDefaultsUnknownStatus(t *testing.T) {
	data := DataFromTask(tracker.Task{ID: 1, Description: "x"}, "P")
	if data.Status != string(tracker.StatusNotDone) {
		t.Fatalf("expected not_done, got %q", data.Status)
	}
}

func TestRenderParseRoundTrip(t *testing.T) {
	data := DataFromTask(tracker.Task{ID: 3, Description: "Pack bags", Status: tracker.StatusNotDone}, "Trip")
	content, err := RenderTaskTOML(data)
	if err != nil {
		t.Fatalf("RenderTaskTOML failed: %v", err)
	}

	parsed, err := ParseTaskTOML(content)
	if err != nil {
		t.Fatalf("ParseTaskTOML failed: %v", err)
	}
	if parsed.Status != tracker.StatusNotDone {
		t.Errorf("status = %q, expected not_done", parsed.Status)
	}
	if parsed.Description != "Pack bags" {
		t.Errorf("description = %q, expected %q", parsed.Description, "Pack bags")
	}
}

func TestParseTaskTOML(t *testing.T) {
	t.Run("joins multi-line body", func(t *testing.T) {
		parsed, err := ParseTaskTOML("status = \"DONE\"\n---\nBook\r\n  the flight\n\n")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if parsed.Status != tracker.StatusDone {
			t.Errorf("status = %q, expected done", parsed.Status)
		}
		if parsed.Description != "Book the flight" {
			t.Errorf("description = %q", parsed.Description)
		}
	})

	t.Run("missing status defaults to not_done", func(t *testing.T) {
		parsed, err := ParseTaskTOML("---\nBook flight\n")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if parsed.Status != tracker.StatusNotDone {
			t.Errorf("status = %q, expected not_done", parsed.Status)
		}
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		_, err := ParseTaskTOML("status = \"later\"\n---\nBook flight\n")
		if !errors.Is(err, ErrInvalidStatus) {
			t.Fatalf("expected ErrInvalidStatus, got %v", err)
		}
		if !strings.Contains(err.Error(), "not_done, done") {
			t.Errorf("expected valid values in error, got %v", err)
		}
	})

	t.Run("rejects empty body", func(t *testing.T) {
		_, err := ParseTaskTOML("status = \"done\"\n---\n   \n")
		if !errors.Is(err, tracker.ErrEmptyDescription) {
			t.Fatalf("expected ErrEmptyDescription, got %v", err)
		}
	})

	t.Run("rejects invalid TOML", func(t *testing.T) {
		if _, err := ParseTaskTOML("status = \n---\nBook flight\n"); err == nil {
			t.Fatal("expected parse error")
		}
	})
}

func TestParseTitle(t *testing.T) {
	title, err := ParseTitle("\n# comment\n  Lisbon trip  \nignored\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if title != "Lisbon trip" {
		t.Fatalf("title = %q, expected %q", title, "Lisbon trip")
	}

	if _, err := ParseTitle("# only a comment\n"); !errors.Is(err, tracker.ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
}
