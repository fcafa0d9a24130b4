package editor

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"
	internalstrings "github.com/amonks/markitdown/internal/strings"
	"github.com/amonks/markitdown/internal/validation"
	"github.com/amonks/markitdown/tracker"
)

// ErrInvalidStatus is returned when the edited status is not recognized.
var ErrInvalidStatus = errors.New("invalid status")

// TaskData represents the data used to render the TOML template.
type TaskData struct {
	ID          int
	Project     string
	Status      string
	Description string
}

// DataFromTask creates TaskData from an existing task for editing.
func DataFromTask(t tracker.Task, projectTitle string) TaskData {
	status := t.Status
	if !status.IsValid() {
		status = tracker.StatusNotDone
	}
	return TaskData{
		ID:          t.ID,
		Project:     projectTitle,
		Status:      string(status),
		Description: t.Description,
	}
}

var taskTemplate = template.Must(template.New("task").Parse(`# task {{ .ID }} in {{ printf "%q" .Project }}
status = {{ printf "%q" .Status }} # {{ .Statuses }}
---
{{ .Description }}
`))

// RenderTaskTOML renders the task data as a TOML string for editing.
func RenderTaskTOML(data TaskData) (string, error) {
	var buf bytes.Buffer
	err := taskTemplate.Execute(&buf, struct {
		TaskData
		Statuses string
	}{data, statusList()})
	if err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

// ParsedTask represents the parsed result from the TOML editor output.
type ParsedTask struct {
	Status      tracker.Status `toml:"status"`
	Description string         `toml:"-"`
}

// ParseTaskTOML parses the TOML content from the editor.
func ParseTaskTOML(content string) (*ParsedTask, error) {
	frontmatter, body := splitFrontmatter(internalstrings.NormalizeNewlines(content))

	var parsed ParsedTask
	if _, err := toml.Decode(frontmatter, &parsed); err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}
	parsed.Status = tracker.Status(strings.ToLower(strings.TrimSpace(string(parsed.Status))))
	if parsed.Status == "" {
		parsed.Status = tracker.StatusNotDone
	}
	if !parsed.Status.IsValid() {
		return nil, validation.FormatInvalidValueError(ErrInvalidStatus, string(parsed.Status), statusValues())
	}

	description, err := tracker.ValidateDescription(internalstrings.NormalizeWhitespace(body))
	if err != nil {
		return nil, err
	}
	parsed.Description = description
	return &parsed, nil
}

func splitFrontmatter(content string) (string, string) {
	content = strings.TrimLeft(content, "\n")
	if content == "" {
		return "", ""
	}

	lines := strings.Split(content, "\n")
	separatorIndex := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			separatorIndex = i
			break
		}
	}
	if separatorIndex == -1 {
		return content, ""
	}

	frontmatter := strings.Join(lines[:separatorIndex], "\n")
	body := strings.Join(lines[separatorIndex+1:], "\n")
	return frontmatter, body
}

func statusValues() []string {
	valid := tracker.ValidStatuses()
	values := make([]string, 0, len(valid))
	for _, status := range valid {
		values = append(values, string(status))
	}
	return values
}

func statusList() string {
	return strings.Join(statusValues(), ", ")
}

// EditTask opens the editor with the task and returns the parsed result.
func EditTask(data TaskData) (*ParsedTask, error) {
	content, err := RenderTaskTOML(data)
	if err != nil {
		return nil, err
	}
	edited, err := editContent("mid-task-*.md", content)
	if err != nil {
		return nil, err
	}
	return ParseTaskTOML(edited)
}
