package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	deletedStyle = lipgloss.NewStyle().Faint(true)
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
)

// ColorEnabled reports whether stdout should receive escape sequences.
func ColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func render(style lipgloss.Style, value string) string {
	if !ColorEnabled() {
		return value
	}
	return style.Render(value)
}

// StatusLabel returns a task's display status.
func StatusLabel(done, deleted bool) string {
	switch {
	case deleted:
		return render(deletedStyle, "deleted")
	case done:
		return render(doneStyle, "done")
	default:
		return render(pendingStyle, "pending")
	}
}

// Checkbox returns the checklist marker for a task.
func Checkbox(done bool) string {
	if done {
		return render(doneStyle, "[x]")
	}
	return render(pendingStyle, "[ ]")
}

// Deleted dims text for a soft-deleted record.
func Deleted(value string) string {
	return render(deletedStyle, value)
}

// Heading emphasizes a section heading.
func Heading(value string) string {
	return render(headingStyle, value)
}
