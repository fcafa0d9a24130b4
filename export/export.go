// Package export turns a project's Markdown checklist into artifacts: a
// downloadable file or terminal output.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/amonks/markitdown/internal/markdown"
	"github.com/amonks/markitdown/tracker"
)

// Filename returns the export file name for a project title.
func Filename(title string) string {
	return tracker.MarkdownFilename(title)
}

// WriteTo writes the project's Markdown to w.
func WriteTo(w io.Writer, detail tracker.ProjectDetail) error {
	_, err := io.WriteString(w, tracker.Markdown(detail))
	return err
}

// Write saves the project's Markdown as <title>-tasks.md in dir and
// returns the file path. An existing file of the same name is replaced.
func Write(dir string, detail tracker.ProjectDetail) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, Filename(detail.Title))

	tmpFile, err := os.CreateTemp(dir, filepath.Base(path)+".tmp")
	if err != nil {
		return "", fmt.Errorf("create temp export file: %w", err)
	}
	name := tmpFile.Name()
	err = WriteTo(tmpFile, detail)
	if err1 := tmpFile.Close(); err1 != nil && err == nil {
		err = err1
	}
	if err == nil {
		err = os.Chmod(name, 0o644)
	}
	if err != nil {
		os.Remove(name)
		return "", fmt.Errorf("write export file: %w", err)
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return "", fmt.Errorf("rename export file: %w", err)
	}
	return path, nil
}

// Render formats the project's Markdown for a terminal of the given width.
func Render(width int, detail tracker.ProjectDetail) string {
	return string(markdown.SafeRender(width, 0, []byte(tracker.Markdown(detail))))
}
