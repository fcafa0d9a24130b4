package editor

import (
	"strings"

	internalstrings "github.com/amonks/markitdown/internal/strings"
	"github.com/amonks/markitdown/tracker"
)

const titleComment = "# Lines starting with '#' are ignored. The first remaining line is the title."

// ParseTitle returns the first non-comment, non-blank line of content as a
// validated project title.
func ParseTitle(content string) (string, error) {
	for _, line := range strings.Split(internalstrings.NormalizeNewlines(content), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		return tracker.ValidateTitle(trimmed)
	}
	return tracker.ValidateTitle("")
}

// EditProjectTitle opens the editor with the current title and returns the
// edited one.
func EditProjectTitle(current string) (string, error) {
	edited, err := editContent("mid-project-*.txt", current+"\n"+titleComment+"\n")
	if err != nil {
		return "", err
	}
	return ParseTitle(edited)
}
