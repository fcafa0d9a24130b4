package tracker

import (
	"fmt"
	"strings"

	internalstrings "github.com/amonks/markitdown/internal/strings"
)

// Summary counts the completed and total active tasks of a project.
func Summary(detail ProjectDetail) (done, total int) {
	for _, task := range detail.Tasks {
		if task.IsDone() {
			done++
		}
	}
	return done, len(detail.Tasks)
}

// Markdown renders a project's active tasks as a Markdown checklist.
//
// Pending tasks come first, then completed ones, each in server order.
// Deleted tasks are left out. The output depends only on detail.
func Markdown(detail ProjectDetail) string {
	done, total := Summary(detail)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", singleLine(detail.Title))
	fmt.Fprintf(&b, "### Summary : %d/%d Completed\n\n", done, total)
	writeSection(&b, "Pending", "- [ ] ", detail.Pending())
	b.WriteString("\n")
	writeSection(&b, "Completed", "- [x] ", detail.Completed())
	return b.String()
}

func writeSection(b *strings.Builder, heading, marker string, tasks []Task) {
	fmt.Fprintf(b, "## %s\n", heading)
	if len(tasks) == 0 {
		return
	}
	b.WriteString("\n")
	for _, task := range tasks {
		b.WriteString(marker)
		b.WriteString(singleLine(task.Description))
		b.WriteString("\n")
	}
}

func singleLine(value string) string {
	return internalstrings.NormalizeWhitespace(value)
}

// MarkdownFilename returns the file name used for a project's export.
func MarkdownFilename(title string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		if r < 0x20 {
			return -1
		}
		return r
	}, singleLine(title))
	name = strings.Trim(name, ". ")
	if name == "" {
		name = "project"
	}
	return name + "-tasks.md"
}
