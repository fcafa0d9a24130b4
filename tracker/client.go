package tracker

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/amonks/markitdown/session"
)

// Confirmer approves destructive actions before they are sent.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(prompt string) (bool, error)

// Confirm calls f.
func (f ConfirmFunc) Confirm(prompt string) (bool, error) {
	return f(prompt)
}

// AlwaysConfirm approves every action.
var AlwaysConfirm Confirmer = ConfirmFunc(func(string) (bool, error) { return true, nil })

// Options configures a Client.
type Options struct {
	// BaseURL is the backend address, e.g. "http://localhost:8000".
	BaseURL string
	// Session authenticates API calls. A zero Session only permits SignIn and SignUp.
	Session session.Session
	// HTTPClient overrides the default HTTP client.
	HTTPClient *http.Client
	// Timeout bounds each request when HTTPClient is nil. Zero means no timeout.
	Timeout time.Duration
	// Confirm approves soft-deletes and purges. A nil Confirm declines them.
	Confirm Confirmer
	// Logger receives diagnostics. Defaults to stderr.
	Logger *log.Logger
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Client performs lifecycle operations against the backend and mirrors the
// records it has seen.
type Client struct {
	api     *transport
	session session.Session
	confirm Confirmer
	logger  *log.Logger
	now     func() time.Time
	guard   *inflight

	mu     sync.Mutex
	mirror *mirror
}

// New creates a client.
func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "tracker: ", log.LstdFlags)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Client{
		api:     newTransport(opts.BaseURL, httpClient, opts.Session.Token),
		session: opts.Session,
		confirm: opts.Confirm,
		logger:  logger,
		now:     now,
		guard:   newInflight(),
		mirror:  newMirror(),
	}
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// Session returns the session the client authenticates with.
func (c *Client) Session() session.Session {
	return c.session
}

// SignIn exchanges credentials for a session. The returned session is not
// used by c; construct a new Client with it.
func (c *Client) SignIn(ctx context.Context, email, password string) (session.Session, error) {
	if err := ValidateSignIn(email, password); err != nil {
		return session.Session{}, err
	}
	email = strings.TrimSpace(email)
	var response signInResponse
	err := c.api.do(ctx, request{
		method:  http.MethodPost,
		path:    "/api/signin/",
		op:      "login failed",
		payload: signInRequest{Email: email, Password: password},
		dest:    &response,
		want:    http.StatusOK,
		anon:    true,
	})
	if err != nil {
		return session.Session{}, err
	}
	sess := session.New(response.Token, email, c.now())
	if !sess.Valid() {
		return session.Session{}, &APIError{Op: "login failed", Status: http.StatusOK, Message: "server returned no token"}
	}
	return sess, nil
}

// SignUp creates an account.
func (c *Client) SignUp(ctx context.Context, r Registration) error {
	if err := ValidateRegistration(r); err != nil {
		return err
	}
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	return c.api.do(ctx, request{
		method:  http.MethodPost,
		path:    "/api/signup/",
		op:      "registration failed",
		payload: r,
		want:    http.StatusCreated,
		anon:    true,
	})
}

// Profile fetches the signed-in user's profile.
func (c *Client) Profile(ctx context.Context) (Profile, error) {
	var profile Profile
	err := c.api.do(ctx, request{
		method: http.MethodGet,
		path:   "/api/profile/",
		op:     "failed to fetch profile details",
		dest:   &profile,
		want:   http.StatusOK,
	})
	return profile, err
}

// UpdateCredential stores the personal access token used to publish gists.
func (c *Client) UpdateCredential(ctx context.Context, pac string) error {
	return c.api.do(ctx, request{
		method:  http.MethodPut,
		path:    "/api/profile/",
		op:      "failed to update GitHub PAC",
		payload: credentialRequest{GitPAC: strings.TrimSpace(pac)},
		want:    http.StatusOK,
	})
}

// Credential fetches the stored personal access token. An empty string means
// none is configured.
func (c *Client) Credential(ctx context.Context) (string, error) {
	var response credentialResponse
	err := c.api.do(ctx, request{
		method: http.MethodGet,
		path:   "/api/get_pac/",
		op:     "failed to fetch GitHub personal access token",
		dest:   &response,
		want:   http.StatusOK,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(response.GitPAC), nil
}

// ListProjects fetches every project, active and deleted.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	err := c.api.do(ctx, request{
		method: http.MethodGet,
		path:   "/api/projects/",
		op:     "failed to fetch projects",
		dest:   &projects,
		want:   http.StatusOK,
	})
	if err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []Project{}
	}

	c.mu.Lock()
	c.mirror.setProjects(projects)
	c.mu.Unlock()
	return slices.Clone(projects), nil
}

// Projects returns the mirrored project list.
func (c *Client) Projects() []Project {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.mirror.projects)
}

// ActiveProjects returns mirrored projects that are not deleted.
func (c *Client) ActiveProjects() []Project {
	return filterProjects(c.Projects(), false)
}

// DeletedProjects returns mirrored projects that are soft-deleted.
func (c *Client) DeletedProjects() []Project {
	return filterProjects(c.Projects(), true)
}

func filterProjects(projects []Project, deleted bool) []Project {
	filtered := make([]Project, 0, len(projects))
	for _, project := range projects {
		if project.IsDeleted == deleted {
			filtered = append(filtered, project)
		}
	}
	return filtered
}

// CreateProject creates an active project with the given title.
func (c *Client) CreateProject(ctx context.Context, title string) (Project, error) {
	title, err := ValidateTitle(title)
	if err != nil {
		return Project{}, err
	}
	release, err := c.guard.claim(createProjectKey)
	if err != nil {
		return Project{}, err
	}
	defer release()

	var project Project
	err = c.api.do(ctx, request{
		method:  http.MethodPost,
		path:    "/api/create_project/",
		op:      "project creation failed",
		payload: titleRequest{Title: title},
		dest:    &project,
		want:    http.StatusCreated,
		idemKey: true,
	})
	if err != nil {
		c.refetchProjects(ctx, err)
		return Project{}, err
	}
	project.IsDeleted = false

	c.mu.Lock()
	c.mirror.appendProject(project)
	c.mu.Unlock()
	return project, nil
}

// ProjectDetail fetches a project with its active and deleted tasks.
func (c *Client) ProjectDetail(ctx context.Context, id int) (ProjectDetail, error) {
	if err := validateID(id); err != nil {
		return ProjectDetail{}, err
	}
	var detail ProjectDetail
	err := c.api.do(ctx, request{
		method: http.MethodGet,
		path:   projectPath(id, ""),
		op:     "failed to fetch project details",
		dest:   &detail,
		want:   http.StatusOK,
	})
	if err != nil {
		return ProjectDetail{}, err
	}
	if detail.ID == 0 {
		detail.ID = id
	}
	for i := range detail.Tasks {
		detail.Tasks[i].ProjectID = detail.ID
	}
	for i := range detail.DeletedTasks {
		detail.DeletedTasks[i].ProjectID = detail.ID
	}

	c.mu.Lock()
	c.mirror.setDetail(detail)
	stored, _ := c.mirror.detail(detail.ID)
	c.mu.Unlock()
	return stored, nil
}

// Detail returns the mirrored detail for a project, if it has been fetched.
func (c *Client) Detail(id int) (ProjectDetail, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mirror.detail(id)
}

// RenameProject changes a project's title.
func (c *Client) RenameProject(ctx context.Context, id int, title string) error {
	if err := validateID(id); err != nil {
		return err
	}
	title, err := ValidateTitle(title)
	if err != nil {
		return err
	}
	release, err := c.guard.claim(projectKey(id))
	if err != nil {
		return err
	}
	defer release()

	err = c.api.do(ctx, request{
		method:  http.MethodPatch,
		path:    projectPath(id, "update_title"),
		op:      "failed to update project title",
		payload: titleRequest{Title: title},
		want:    http.StatusOK,
	})
	if err != nil {
		c.refetchProject(ctx, id, err)
		return err
	}

	c.mu.Lock()
	c.mirror.setProjectTitle(id, title)
	c.mu.Unlock()
	return nil
}

// SoftDeleteProject moves a project to the deleted list after confirmation.
func (c *Client) SoftDeleteProject(ctx context.Context, id int) error {
	return c.projectTransition(ctx, id, transition{
		action:  "delete",
		op:      "failed to delete project",
		from:    PartitionActive,
		confirm: "Are you sure you want to delete project %s?",
		apply:   func(m *mirror) { m.setProjectDeleted(id, true) },
	})
}

// RestoreProject moves a deleted project back to the active list.
func (c *Client) RestoreProject(ctx context.Context, id int) error {
	return c.projectTransition(ctx, id, transition{
		action: "restore",
		op:     "failed to restore project",
		from:   PartitionDeleted,
		apply:  func(m *mirror) { m.setProjectDeleted(id, false) },
	})
}

// PurgeProject permanently removes a deleted project after confirmation.
func (c *Client) PurgeProject(ctx context.Context, id int) error {
	return c.projectTransition(ctx, id, transition{
		action:  "actual_delete",
		op:      "failed to delete project",
		from:    PartitionDeleted,
		purge:   true,
		confirm: "Permanently delete project %s? This cannot be undone.",
		apply:   func(m *mirror) { m.removeProject(id) },
	})
}

// AddTask creates a pending task in a project.
func (c *Client) AddTask(ctx context.Context, projectID int, description string) (Task, error) {
	if err := validateID(projectID); err != nil {
		return Task{}, err
	}
	description, err := ValidateDescription(description)
	if err != nil {
		return Task{}, err
	}
	release, err := c.guard.claim(addTaskKey(projectID))
	if err != nil {
		return Task{}, err
	}
	defer release()

	var task Task
	err = c.api.do(ctx, request{
		method:  http.MethodPost,
		path:    projectPath(projectID, "add_task"),
		op:      "failed to add task",
		payload: descriptionRequest{Description: description},
		dest:    &task,
		want:    http.StatusCreated,
		idemKey: true,
	})
	if err != nil {
		c.refetchProject(ctx, projectID, err)
		return Task{}, err
	}
	task.ProjectID = projectID
	if task.Description == "" {
		task.Description = description
	}
	if !task.Status.IsValid() {
		task.Status = StatusNotDone
	}

	c.mu.Lock()
	c.mirror.addTask(projectID, task)
	c.mu.Unlock()
	return task, nil
}

// Task returns a mirrored task and its partition.
func (c *Client) Task(id int) (Task, Partition, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	task, ok := c.mirror.task(id)
	return task, c.mirror.taskPartition(id), ok
}

// ToggleTaskStatus flips a task between done and not_done. The task's
// delete state is unaffected.
func (c *Client) ToggleTaskStatus(ctx context.Context, id int) (Task, error) {
	if err := validateID(id); err != nil {
		return Task{}, err
	}
	release, err := c.guard.claim(taskKey(id))
	if err != nil {
		return Task{}, err
	}
	defer release()

	var updated Task
	err = c.api.do(ctx, request{
		method:  http.MethodPatch,
		path:    taskPath(id, "update_status"),
		op:      "failed to update task status",
		payload: struct{}{},
		dest:    &updated,
		want:    http.StatusOK,
	})
	if err != nil {
		c.refetchTaskProject(ctx, id, err)
		return Task{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	current, known := c.mirror.task(id)
	if !known {
		updated.ID = id
		return updated, nil
	}
	status := current.Status.Toggled()
	if updated.Status.IsValid() {
		status = updated.Status
	}
	c.mirror.updateTask(id, func(t *Task) {
		t.Status = status
		if !updated.LastUpdatedOn.IsZero() {
			t.LastUpdatedOn = updated.LastUpdatedOn
		}
	})
	task, _ := c.mirror.task(id)
	return task, nil
}

// EditTaskDescription replaces a task's description.
func (c *Client) EditTaskDescription(ctx context.Context, id int, text string) (Task, error) {
	if err := validateID(id); err != nil {
		return Task{}, err
	}
	text, err := ValidateDescription(text)
	if err != nil {
		return Task{}, err
	}
	release, err := c.guard.claim(taskKey(id))
	if err != nil {
		return Task{}, err
	}
	defer release()

	var updated Task
	err = c.api.do(ctx, request{
		method:  http.MethodPatch,
		path:    taskPath(id, "update_description"),
		op:      "failed to update task",
		payload: descriptionRequest{Description: text},
		dest:    &updated,
		want:    http.StatusOK,
	})
	if err != nil {
		c.refetchTaskProject(ctx, id, err)
		return Task{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, known := c.mirror.task(id); !known {
		updated.ID = id
		updated.Description = text
		return updated, nil
	}
	c.mirror.updateTask(id, func(t *Task) {
		t.Description = text
		if !updated.LastUpdatedOn.IsZero() {
			t.LastUpdatedOn = updated.LastUpdatedOn
		}
	})
	task, _ := c.mirror.task(id)
	return task, nil
}

// SoftDeleteTask moves a task to its project's deleted list after confirmation.
func (c *Client) SoftDeleteTask(ctx context.Context, id int) error {
	return c.taskTransition(ctx, id, transition{
		action:  "delete",
		op:      "failed to delete task",
		from:    PartitionActive,
		confirm: "Are you sure you want to delete task %s?",
		apply:   func(m *mirror) { m.moveTask(id, PartitionDeleted) },
	})
}

// RestoreTask moves a deleted task back to its project's active list.
func (c *Client) RestoreTask(ctx context.Context, id int) error {
	return c.taskTransition(ctx, id, transition{
		action: "restore",
		op:     "failed to restore task",
		from:   PartitionDeleted,
		apply:  func(m *mirror) { m.moveTask(id, PartitionActive) },
	})
}

// PurgeTask permanently removes a deleted task after confirmation.
func (c *Client) PurgeTask(ctx context.Context, id int) error {
	return c.taskTransition(ctx, id, transition{
		action:  "actual_delete",
		op:      "failed to delete task",
		from:    PartitionDeleted,
		purge:   true,
		confirm: "Permanently delete task %s? This cannot be undone.",
		apply:   func(m *mirror) { m.removeTask(id) },
	})
}

type transition struct {
	action string
	op     string
	// from is the partition the record must be in, when the mirror knows it.
	from  Partition
	purge bool
	// confirm is the prompt format; empty means no confirmation is needed.
	confirm string
	apply   func(*mirror)
}

func (c *Client) projectTransition(ctx context.Context, id int, tr transition) error {
	if err := validateID(id); err != nil {
		return err
	}

	release, err := c.guard.claim(projectKey(id))
	if err != nil {
		return err
	}
	defer release()

	c.mu.Lock()
	partition := c.mirror.projectPartition(id)
	label := c.projectLabel(id)
	c.mu.Unlock()

	if err := checkTransition(partition, tr); err != nil {
		return fmt.Errorf("project %d: %w", id, err)
	}
	if err := c.confirmTransition(tr, label); err != nil {
		return err
	}
	// The mirror may have been refreshed while the prompt was open.
	c.mu.Lock()
	partition = c.mirror.projectPartition(id)
	c.mu.Unlock()
	if err := checkTransition(partition, tr); err != nil {
		return fmt.Errorf("project %d: %w", id, err)
	}

	err = c.api.do(ctx, request{
		method: http.MethodDelete,
		path:   projectPath(id, tr.action),
		op:     tr.op,
		want:   http.StatusNoContent,
	})
	if err != nil {
		c.refetchProject(ctx, id, err)
		return err
	}

	c.mu.Lock()
	tr.apply(c.mirror)
	c.mu.Unlock()
	return nil
}

func (c *Client) taskTransition(ctx context.Context, id int, tr transition) error {
	if err := validateID(id); err != nil {
		return err
	}

	release, err := c.guard.claim(taskKey(id))
	if err != nil {
		return err
	}
	defer release()

	c.mu.Lock()
	partition := c.mirror.taskPartition(id)
	label := fmt.Sprintf("%d", id)
	if task, ok := c.mirror.task(id); ok {
		label = fmt.Sprintf("%q", task.Description)
	}
	c.mu.Unlock()

	if err := checkTransition(partition, tr); err != nil {
		return fmt.Errorf("task %d: %w", id, err)
	}
	if err := c.confirmTransition(tr, label); err != nil {
		return err
	}
	c.mu.Lock()
	partition = c.mirror.taskPartition(id)
	c.mu.Unlock()
	if err := checkTransition(partition, tr); err != nil {
		return fmt.Errorf("task %d: %w", id, err)
	}

	err = c.api.do(ctx, request{
		method: http.MethodDelete,
		path:   taskPath(id, tr.action),
		op:     tr.op,
		want:   http.StatusNoContent,
	})
	if err != nil {
		c.refetchTaskProject(ctx, id, err)
		return err
	}

	c.mu.Lock()
	tr.apply(c.mirror)
	c.mu.Unlock()
	return nil
}

func checkTransition(current Partition, tr transition) error {
	if current == PartitionNone || current == tr.from {
		return nil
	}
	if tr.purge {
		return ErrNotDeleted
	}
	return fmt.Errorf("%w: cannot %s a record that is %s", ErrInvalidTransition, strings.ReplaceAll(tr.action, "_", " "), current)
}

func (c *Client) confirmTransition(tr transition, label string) error {
	if tr.confirm == "" {
		return nil
	}
	if c.confirm == nil {
		return ErrNotConfirmed
	}
	ok, err := c.confirm.Confirm(fmt.Sprintf(tr.confirm, label))
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotConfirmed
	}
	return nil
}

// projectLabel must be called with c.mu held.
func (c *Client) projectLabel(id int) string {
	if i := c.mirror.projectIndex(id); i >= 0 {
		return fmt.Sprintf("%q", c.mirror.projects[i].Title)
	}
	if detail, ok := c.mirror.details[id]; ok {
		return fmt.Sprintf("%q", detail.Title)
	}
	return fmt.Sprintf("%d", id)
}

// refetchProjects reloads the project list after an ambiguous failure.
func (c *Client) refetchProjects(ctx context.Context, cause error) {
	if !IsAmbiguous(cause) {
		return
	}
	c.mu.Lock()
	loaded := c.mirror.projectsLoaded
	c.mu.Unlock()
	if !loaded {
		return
	}
	c.logger.Printf("refetching projects after ambiguous failure: %v", cause)
	if _, err := c.ListProjects(ctx); err != nil {
		c.logger.Printf("refetch projects: %v", err)
	}
}

// refetchProject reloads the list and the project's detail after an
// ambiguous failure.
func (c *Client) refetchProject(ctx context.Context, id int, cause error) {
	if !IsAmbiguous(cause) {
		return
	}
	c.refetchProjects(ctx, cause)

	c.mu.Lock()
	_, cached := c.mirror.details[id]
	c.mu.Unlock()
	if !cached {
		return
	}
	c.logger.Printf("refetching project %d after ambiguous failure: %v", id, cause)
	if _, err := c.ProjectDetail(ctx, id); err != nil {
		c.logger.Printf("refetch project %d: %v", id, err)
	}
}

func (c *Client) refetchTaskProject(ctx context.Context, taskID int, cause error) {
	if !IsAmbiguous(cause) {
		return
	}
	c.mu.Lock()
	projectID, ok := c.mirror.taskProject[taskID]
	c.mu.Unlock()
	if !ok {
		return
	}
	c.logger.Printf("refetching project %d after ambiguous failure on task %d: %v", projectID, taskID, cause)
	if _, err := c.ProjectDetail(ctx, projectID); err != nil {
		c.logger.Printf("refetch project %d: %v", projectID, err)
	}
}
