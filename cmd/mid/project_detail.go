package main

import (
	"fmt"
	"strings"

	internalstrings "github.com/amonks/markitdown/internal/strings"
	"github.com/amonks/markitdown/internal/ui"
	"github.com/amonks/markitdown/tracker"
	"github.com/muesli/reflow/wordwrap"
)

const taskIndent = 4

// formatProjectDetail renders a project the way the detail page lays it
// out: pending, completed, then deleted tasks.
func formatProjectDetail(detail tracker.ProjectDetail, width int) string {
	done, total := tracker.Summary(detail)

	var b strings.Builder
	title := internalstrings.NormalizeWhitespace(detail.Title)
	if detail.IsDeleted {
		title += " " + ui.Deleted("(deleted)")
	}
	fmt.Fprintf(&b, "%s  #%d\n", ui.Heading(title), detail.ID)
	fmt.Fprintf(&b, "%d/%d completed\n", done, total)

	writeTaskSection(&b, "Pending", detail.Pending(), width, func(t tracker.Task) string {
		return ui.Checkbox(false)
	})
	writeTaskSection(&b, "Completed", detail.Completed(), width, func(t tracker.Task) string {
		return ui.Checkbox(true)
	})
	if len(detail.DeletedTasks) > 0 {
		writeTaskSection(&b, "Deleted", detail.DeletedTasks, width, func(t tracker.Task) string {
			return ui.Deleted(ui.Checkbox(t.IsDone()))
		})
	}
	return b.String()
}

func writeTaskSection(b *strings.Builder, heading string, tasks []tracker.Task, width int, marker func(tracker.Task) string) {
	fmt.Fprintf(b, "\n%s\n", ui.Heading(heading))
	if len(tasks) == 0 {
		fmt.Fprintln(b, "  (none)")
		return
	}
	for _, task := range tasks {
		prefix := fmt.Sprintf("  %s %d ", marker(task), task.ID)
		fmt.Fprintf(b, "%s%s\n", prefix, wrapDescription(task.Description, width))
	}
}

// wrapDescription wraps to width and indents continuation lines under the
// first.
func wrapDescription(description string, width int) string {
	description = internalstrings.NormalizeWhitespace(description)
	wrapWidth := width - taskIndent*3
	if wrapWidth < 20 {
		return description
	}
	wrapped := wordwrap.String(description, wrapWidth)
	lines := strings.Split(wrapped, "\n")
	if len(lines) == 1 {
		return wrapped
	}
	rest := internalstrings.IndentBlock(strings.Join(lines[1:], "\n"), taskIndent*2)
	return lines[0] + "\n" + rest
}
