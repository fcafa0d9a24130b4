package editor

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"
)

func TestCommandPrefersVisual(t *testing.T) {
	t.Setenv("VISUAL", "code --wait")
	t.Setenv("EDITOR", "nano")
	if got, want := Command(), []string{"code", "--wait"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestCommandFallsBack(t *testing.T) {
	t.Setenv("VISUAL", "  ")
	t.Setenv("EDITOR", "nano")
	if got := Command(); !reflect.DeepEqual(got, []string{"nano"}) {
		t.Fatalf("expected nano, got %v", got)
	}

	t.Setenv("EDITOR", "")
	if got := Command(); !reflect.DeepEqual(got, []string{"vi"}) {
		t.Fatalf("expected vi, got %v", got)
	}
}

// scriptEditor installs a shell script as $EDITOR that replaces the edited
// file with content.
func scriptEditor(t *testing.T, content string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script editors are not supported on windows")
	}
	contentPath := filepath.Join(t.TempDir(), "content")
	if err := os.WriteFile(contentPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write content: %v", err)
	}
	script := filepath.Join(t.TempDir(), "editor.sh")
	body := "#!/bin/sh\ncat '" + contentPath + "' > \"$1\"\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatalf("write editor script: %v", err)
	}
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", script)
}

func TestEditProjectTitle(t *testing.T) {
	scriptEditor(t, "# comment\n\n  Summer trip  \n")

	title, err := EditProjectTitle("Trip")
	if err != nil {
		t.Fatalf("edit title: %v", err)
	}
	if title != "Summer trip" {
		t.Fatalf("expected Summer trip, got %q", title)
	}
}

func TestEditUnchanged(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires true(1)")
	}
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "true")

	if _, err := EditProjectTitle("Trip"); !errors.Is(err, ErrNoChange) {
		t.Fatalf("expected ErrNoChange, got %v", err)
	}
}

func TestEditFailingEditor(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires false(1)")
	}
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "false")

	_, err := EditProjectTitle("Trip")
	if err == nil || errors.Is(err, ErrNoChange) {
		t.Fatalf("expected editor failure, got %v", err)
	}
}

func TestEditTask(t *testing.T) {
	scriptEditor(t, "status = \"done\"\n---\nBook   window seat\n")

	parsed, err := EditTask(TaskData{ID: 2, Project: "Trip", Status: "not_done", Description: "Book flight"})
	if err != nil {
		t.Fatalf("edit task: %v", err)
	}
	if parsed.Status != "done" || parsed.Description != "Book window seat" {
		t.Fatalf("unexpected result %+v", parsed)
	}
}
