// Package tracker is the client side of Mark it Down.
//
// Projects and tasks live on a REST backend. A Client mirrors what it has
// fetched, mutates records through the API, and merges confirmed changes
// into the mirror. Both record kinds share the same soft-delete lifecycle:
//
//	active --SoftDelete--> deleted --Restore--> active
//	deleted --Purge--> gone
//
// Tasks additionally carry a done/not_done status that is toggled
// independently of the delete lifecycle.
package tracker

import "time"

// Status represents the completion state of a task.
type Status string

const (
	// StatusNotDone indicates the task is pending.
	StatusNotDone Status = "not_done"

	// StatusDone indicates the task has been completed.
	StatusDone Status = "done"
)

// ValidStatuses returns all valid status values.
func ValidStatuses() []Status {
	return []Status{StatusNotDone, StatusDone}
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	for _, valid := range ValidStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// Toggled returns the opposite status.
func (s Status) Toggled() Status {
	if s == StatusDone {
		return StatusNotDone
	}
	return StatusDone
}

// MaxTitleLength is the maximum allowed length for a project title.
const MaxTitleLength = 255

// MaxDescriptionLength is the maximum allowed length for a task description.
const MaxDescriptionLength = 255

// Project is a titled list of tasks owned by one user.
type Project struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	CreatedDate time.Time `json:"created_date"`
	IsDeleted   bool      `json:"isDeleted"`
}

// Task is a single item of work within a project.
type Task struct {
	ID            int       `json:"id"`
	ProjectID     int       `json:"project_id,omitempty"`
	Description   string    `json:"description"`
	Status        Status    `json:"status"`
	CreatedDate   time.Time `json:"created_date,omitempty"`
	LastUpdatedOn time.Time `json:"last_updated_on"`
}

// IsDone reports whether the task is completed.
func (t Task) IsDone() bool {
	return t.Status == StatusDone
}

// ProjectDetail is a project together with its tasks.
//
// Tasks holds active tasks and DeletedTasks holds soft-deleted tasks, each
// in the order the server returned them.
type ProjectDetail struct {
	Project
	Tasks        []Task `json:"tasks"`
	DeletedTasks []Task `json:"deleted_task"`
}

// Pending returns the active tasks that are not done.
func (d *ProjectDetail) Pending() []Task {
	return filterTasks(d.Tasks, StatusNotDone)
}

// Completed returns the active tasks that are done.
func (d *ProjectDetail) Completed() []Task {
	return filterTasks(d.Tasks, StatusDone)
}

func filterTasks(tasks []Task, status Status) []Task {
	filtered := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		if task.Status == status {
			filtered = append(filtered, task)
		}
	}
	return filtered
}

// Profile holds the account fields the client can read and update.
type Profile struct {
	Username string `json:"username"`
	GitPAC   string `json:"git_pac"`
}

// Registration is the payload for creating an account.
type Registration struct {
	Name            string `json:"first_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Partition names which list a record currently belongs to.
type Partition string

const (
	PartitionActive  Partition = "active"
	PartitionDeleted Partition = "deleted"
	PartitionNone    Partition = ""
)
