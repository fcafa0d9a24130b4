// Package fakeapi is an in-memory Mark it Down backend and gist host.
//
// It implements the REST routes the tracker client consumes with the same
// status codes and payloads as the real backend, and counts requests per
// route so tests can assert that nothing was sent.
package fakeapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
)

// Route names, usable with Count and FailNext.
const (
	RouteSignUp            = "signup"
	RouteSignIn            = "signin"
	RouteProjects          = "projects"
	RouteCreateProject     = "create_project"
	RouteProject           = "project"
	RouteUpdateTitle       = "update_title"
	RouteProjectDelete     = "project_delete"
	RouteProjectRestore    = "project_restore"
	RouteProjectPurge      = "project_purge"
	RouteAddTask           = "add_task"
	RouteUpdateStatus      = "update_status"
	RouteUpdateDescription = "update_description"
	RouteTaskDelete        = "task_delete"
	RouteTaskRestore       = "task_restore"
	RouteTaskPurge         = "task_purge"
	RouteGetPAC            = "get_pac"
	RouteProfile           = "profile"
	RouteGists             = "gists"
)

type user struct {
	name     string
	email    string
	password string
	gitPAC   string
}

type project struct {
	id      int
	owner   string
	title   string
	created time.Time
	deleted bool
}

type task struct {
	id          int
	projectID   int
	description string
	status      string
	created     time.Time
	updated     time.Time
	deleted     bool
}

// Gist is an upload received by the fake gist host.
type Gist struct {
	URL         string
	Credential  string
	Description string
	Public      bool
	Files       map[string]string
}

type failure struct {
	status  int
	message string
}

// Server is the fake backend.
type Server struct {
	mu sync.Mutex

	auth *tokenIssuer
	now  func() time.Time

	users    map[string]*user
	projects map[int]*project
	tasks    map[int]*task
	nextID   int
	// idempotent maps owner+key to the ID created for that submit.
	idempotent map[string]int

	gists   []Gist
	gistURL string

	counts   map[string]int
	failures map[string][]failure
}

// New creates an empty backend.
func New() *Server {
	return &Server{
		auth:       newTokenIssuer([]byte("fakeapi-secret")),
		now:        time.Now,
		users:      make(map[string]*user),
		projects:   make(map[int]*project),
		tasks:      make(map[int]*task),
		idempotent: make(map[string]int),
		counts:     make(map[string]int),
		failures:   make(map[string][]failure),
		gistURL:    "https://gist.example.test",
	}
}

// SetClock overrides the clock used for timestamps.
func (s *Server) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// AddUser registers an account directly.
func (s *Server) AddUser(name, email, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[strings.ToLower(email)] = &user{name: name, email: email, password: password}
}

// Token issues a session token for an existing user.
func (s *Server) Token(email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[strings.ToLower(email)]; !ok {
		return "", fmt.Errorf("no user %q", email)
	}
	return s.auth.issue(strings.ToLower(email), s.now())
}

// SetCredential stores a personal access token on a user's profile.
func (s *Server) SetCredential(email, pac string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[strings.ToLower(email)]; ok {
		u.gitPAC = pac
	}
}

// Count returns how many requests a route has received.
func (s *Server) Count(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[route]
}

// TotalCount returns how many requests all routes have received.
func (s *Server) TotalCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.counts {
		total += n
	}
	return total
}

// FailNext makes the next request to route fail with status. The request
// is not applied.
func (s *Server) FailNext(route string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = append(s.failures[route], failure{status: status, message: message})
}

// Gists returns the uploads received so far.
func (s *Server) Gists() []Gist {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Gist(nil), s.gists...)
}

// Handler returns the HTTP handler for all routes.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.StrictSlash(false)

	r.HandleFunc("/api/signup/", s.handleSignUp).Methods(http.MethodPost).Name(RouteSignUp)
	r.HandleFunc("/api/signin/", s.handleSignIn).Methods(http.MethodPost).Name(RouteSignIn)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.requireToken)
	api.HandleFunc("/projects/", s.handleListProjects).Methods(http.MethodGet).Name(RouteProjects)
	api.HandleFunc("/create_project/", s.handleCreateProject).Methods(http.MethodPost).Name(RouteCreateProject)
	api.HandleFunc("/projects/{id:[0-9]+}/", s.handleProjectDetail).Methods(http.MethodGet).Name(RouteProject)
	api.HandleFunc("/projects/{id:[0-9]+}/update_title/", s.handleUpdateTitle).Methods(http.MethodPatch).Name(RouteUpdateTitle)
	api.HandleFunc("/projects/{id:[0-9]+}/delete/", s.projectLifecycle(lifecycleDelete)).Methods(http.MethodDelete).Name(RouteProjectDelete)
	api.HandleFunc("/projects/{id:[0-9]+}/restore/", s.projectLifecycle(lifecycleRestore)).Methods(http.MethodDelete).Name(RouteProjectRestore)
	api.HandleFunc("/projects/{id:[0-9]+}/actual_delete/", s.projectLifecycle(lifecyclePurge)).Methods(http.MethodDelete).Name(RouteProjectPurge)
	api.HandleFunc("/projects/{id:[0-9]+}/add_task/", s.handleAddTask).Methods(http.MethodPost).Name(RouteAddTask)
	api.HandleFunc("/tasks/{id:[0-9]+}/update_status/", s.handleUpdateStatus).Methods(http.MethodPatch).Name(RouteUpdateStatus)
	api.HandleFunc("/tasks/{id:[0-9]+}/update_description/", s.handleUpdateDescription).Methods(http.MethodPatch).Name(RouteUpdateDescription)
	api.HandleFunc("/tasks/{id:[0-9]+}/delete/", s.taskLifecycle(lifecycleDelete)).Methods(http.MethodDelete).Name(RouteTaskDelete)
	api.HandleFunc("/tasks/{id:[0-9]+}/restore/", s.taskLifecycle(lifecycleRestore)).Methods(http.MethodDelete).Name(RouteTaskRestore)
	api.HandleFunc("/tasks/{id:[0-9]+}/actual_delete/", s.taskLifecycle(lifecyclePurge)).Methods(http.MethodDelete).Name(RouteTaskPurge)
	api.HandleFunc("/get_pac/", s.handleGetPAC).Methods(http.MethodGet).Name(RouteGetPAC)
	api.HandleFunc("/profile/", s.handleProfile).Methods(http.MethodGet, http.MethodPut).Name(RouteProfile)

	r.HandleFunc("/gists", s.handleCreateGist).Methods(http.MethodPost).Name(RouteGists)

	return s.counting(r)
}

// counting records the matched route and applies injected failures.
func (s *Server) counting(r *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		var match mux.RouteMatch
		if r.Match(req, &match) && match.Route != nil {
			name := match.Route.GetName()
			s.mu.Lock()
			s.counts[name]++
			var injected *failure
			if queued := s.failures[name]; len(queued) > 0 {
				injected = &queued[0]
				s.failures[name] = queued[1:]
			}
			s.mu.Unlock()
			if injected != nil {
				if injected.message != "" {
					writeError(w, injected.status, injected.message)
				} else {
					w.WriteHeader(injected.status)
				}
				return
			}
		}
		r.ServeHTTP(w, req)
	})
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func decodeBody(req *http.Request, dest any) error {
	if req.Body == nil {
		return nil
	}
	decoder := json.NewDecoder(req.Body)
	if err := decoder.Decode(dest); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// sortedProjects returns the owner's projects in creation order.
// Must be called with s.mu held.
func (s *Server) sortedProjects(owner string) []*project {
	var owned []*project
	for _, p := range s.projects {
		if p.owner == owner {
			owned = append(owned, p)
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].id < owned[j].id })
	return owned
}

// projectTasks returns a project's tasks in creation order.
// Must be called with s.mu held.
func (s *Server) projectTasks(projectID int) []*task {
	var tasks []*task
	for _, t := range s.tasks {
		if t.projectID == projectID {
			tasks = append(tasks, t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].id < tasks[j].id })
	return tasks
}

func (s *Server) allocID() int {
	s.nextID++
	return s.nextID
}
