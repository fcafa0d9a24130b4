package fakeapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
)

type projectJSON struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	CreatedDate time.Time `json:"created_date"`
	IsDeleted   bool      `json:"isDeleted"`
}

type taskJSON struct {
	ID            int       `json:"id"`
	Description   string    `json:"description"`
	Status        string    `json:"status"`
	CreatedDate   time.Time `json:"created_date"`
	LastUpdatedOn time.Time `json:"last_updated_on"`
}

type detailJSON struct {
	projectJSON
	Tasks        []taskJSON `json:"tasks"`
	DeletedTasks []taskJSON `json:"deleted_task"`
}

func (p *project) json() projectJSON {
	return projectJSON{ID: p.id, Title: p.title, CreatedDate: p.created, IsDeleted: p.deleted}
}

func (t *task) json() taskJSON {
	return taskJSON{
		ID:            t.id,
		Description:   t.description,
		Status:        t.status,
		CreatedDate:   t.created,
		LastUpdatedOn: t.updated,
	}
}

func pathID(req *http.Request) int {
	id, _ := strconv.Atoi(mux.Vars(req)["id"])
	return id
}

func (s *Server) handleSignUp(w http.ResponseWriter, req *http.Request) {
	var body struct {
		Name            string `json:"first_name"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirm_password"`
	}
	if err := decodeBody(req, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	var missing []string
	for _, field := range []struct{ name, value string }{
		{"first_name", body.Name},
		{"email", body.Email},
		{"password", body.Password},
		{"confirm_password", body.ConfirmPassword},
	} {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		writeError(w, http.StatusBadRequest, "Missing fields: "+strings.Join(missing, ", "))
		return
	}
	if body.Password != body.ConfirmPassword {
		writeError(w, http.StatusBadRequest, "Passwords do not match")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(strings.TrimSpace(body.Email))
	if _, exists := s.users[key]; exists {
		writeError(w, http.StatusBadRequest, "Email already exists")
		return
	}
	s.users[key] = &user{name: body.Name, email: body.Email, password: body.Password}
	writeMessage(w, http.StatusCreated, "Account created successfully")
}

func (s *Server) handleSignIn(w http.ResponseWriter, req *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(req, &body); err != nil || body.Email == "" || body.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(strings.TrimSpace(body.Email))
	u, ok := s.users[key]
	if !ok {
		writeError(w, http.StatusNotFound, "Email not found.")
		return
	}
	if u.password != body.Password {
		writeError(w, http.StatusUnauthorized, "Invalid password.")
		return
	}
	token, err := s.auth.issue(key, s.now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token, "message": "Login successful"})
}

func (s *Server) handleListProjects(w http.ResponseWriter, req *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	projects := []projectJSON{}
	for _, p := range s.sortedProjects(ownerFrom(req)) {
		projects = append(projects, p.json())
	}
	writeJSON(w, http.StatusOK, projects)
}

// replay returns the ID recorded for an idempotency key, if any.
// Must be called with s.mu held.
func (s *Server) replay(req *http.Request, kind string) (string, int, bool) {
	header := strings.TrimSpace(req.Header.Get("Idempotency-Key"))
	if header == "" {
		return "", 0, false
	}
	key := fmt.Sprintf("%s/%s/%s", ownerFrom(req), kind, header)
	id, ok := s.idempotent[key]
	return key, id, ok
}

func (s *Server) handleCreateProject(w http.ResponseWriter, req *http.Request) {
	var body struct {
		Title string `json:"title"`
	}
	if err := decodeBody(req, &body); err != nil || strings.TrimSpace(body.Title) == "" {
		writeError(w, http.StatusBadRequest, "Project title is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	key, id, seen := s.replay(req, "project")
	if seen {
		if p, ok := s.projects[id]; ok {
			writeJSON(w, http.StatusCreated, p.json())
			return
		}
	}
	p := &project{
		id:      s.allocID(),
		owner:   ownerFrom(req),
		title:   strings.TrimSpace(body.Title),
		created: s.now(),
	}
	s.projects[p.id] = p
	if key != "" {
		s.idempotent[key] = p.id
	}
	writeJSON(w, http.StatusCreated, p.json())
}

// ownedProject must be called with s.mu held.
func (s *Server) ownedProject(req *http.Request, id int) (*project, bool) {
	p, ok := s.projects[id]
	if !ok || p.owner != ownerFrom(req) {
		return nil, false
	}
	return p, true
}

// ownedTask must be called with s.mu held.
func (s *Server) ownedTask(req *http.Request, id int) (*task, bool) {
	t, ok := s.tasks[id]
	if !ok {
		return nil, false
	}
	if _, owned := s.ownedProject(req, t.projectID); !owned {
		return nil, false
	}
	return t, true
}

func (s *Server) handleProjectDetail(w http.ResponseWriter, req *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.ownedProject(req, pathID(req))
	if !ok {
		writeError(w, http.StatusNotFound, "Project not found")
		return
	}
	detail := detailJSON{projectJSON: p.json(), Tasks: []taskJSON{}, DeletedTasks: []taskJSON{}}
	for _, t := range s.projectTasks(p.id) {
		if t.deleted {
			detail.DeletedTasks = append(detail.DeletedTasks, t.json())
		} else {
			detail.Tasks = append(detail.Tasks, t.json())
		}
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleUpdateTitle(w http.ResponseWriter, req *http.Request) {
	var body struct {
		Title string `json:"title"`
	}
	if err := decodeBody(req, &body); err != nil || strings.TrimSpace(body.Title) == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.ownedProject(req, pathID(req))
	if !ok {
		writeError(w, http.StatusNotFound, "Project not found")
		return
	}
	p.title = strings.TrimSpace(body.Title)
	writeJSON(w, http.StatusOK, map[string]any{"id": p.id, "title": p.title})
}

type lifecycle int

const (
	lifecycleDelete lifecycle = iota
	lifecycleRestore
	lifecyclePurge
)

func (s *Server) projectLifecycle(action lifecycle) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		p, ok := s.ownedProject(req, pathID(req))
		if !ok {
			writeError(w, http.StatusNotFound, "Project not found")
			return
		}
		switch action {
		case lifecycleDelete:
			p.deleted = true
		case lifecycleRestore:
			p.deleted = false
		case lifecyclePurge:
			for _, t := range s.projectTasks(p.id) {
				delete(s.tasks, t.id)
			}
			delete(s.projects, p.id)
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleAddTask(w http.ResponseWriter, req *http.Request) {
	var body struct {
		Description string `json:"description"`
	}
	if err := decodeBody(req, &body); err != nil || strings.TrimSpace(body.Description) == "" {
		writeError(w, http.StatusBadRequest, "Task description is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.ownedProject(req, pathID(req))
	if !ok {
		writeError(w, http.StatusNotFound, "Project not found")
		return
	}
	key, id, seen := s.replay(req, "task")
	if seen {
		if t, ok := s.tasks[id]; ok {
			writeJSON(w, http.StatusCreated, t.json())
			return
		}
	}
	now := s.now()
	t := &task{
		id:          s.allocID(),
		projectID:   p.id,
		description: strings.TrimSpace(body.Description),
		status:      "not_done",
		created:     now,
		updated:     now,
	}
	s.tasks[t.id] = t
	if key != "" {
		s.idempotent[key] = t.id
	}
	writeJSON(w, http.StatusCreated, t.json())
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, req *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.ownedTask(req, pathID(req))
	if !ok {
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}
	if t.status == "done" {
		t.status = "not_done"
	} else {
		t.status = "done"
	}
	t.updated = s.now()
	writeJSON(w, http.StatusOK, t.json())
}

func (s *Server) handleUpdateDescription(w http.ResponseWriter, req *http.Request) {
	var body struct {
		Description string `json:"description"`
	}
	if err := decodeBody(req, &body); err != nil || strings.TrimSpace(body.Description) == "" {
		writeError(w, http.StatusBadRequest, "Description is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.ownedTask(req, pathID(req))
	if !ok {
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}
	t.description = strings.TrimSpace(body.Description)
	t.updated = s.now()
	writeJSON(w, http.StatusOK, t.json())
}

func (s *Server) taskLifecycle(action lifecycle) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		t, ok := s.ownedTask(req, pathID(req))
		if !ok {
			writeError(w, http.StatusNotFound, "Task not found")
			return
		}
		switch action {
		case lifecycleDelete:
			t.deleted = true
		case lifecycleRestore:
			t.deleted = false
		case lifecyclePurge:
			delete(s.tasks, t.id)
		}
		t.updated = s.now()
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleGetPAC(w http.ResponseWriter, req *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.users[ownerFrom(req)]
	writeJSON(w, http.StatusOK, map[string]string{"git_pac": u.gitPAC})
}

func (s *Server) handleProfile(w http.ResponseWriter, req *http.Request) {
	if req.Method == http.MethodPut {
		var body struct {
			GitPAC *string `json:"git_pac"`
		}
		if err := decodeBody(req, &body); err != nil || body.GitPAC == nil {
			writeError(w, http.StatusBadRequest, "git_pac is required")
			return
		}
		s.mu.Lock()
		s.users[ownerFrom(req)].gitPAC = strings.TrimSpace(*body.GitPAC)
		s.mu.Unlock()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.users[ownerFrom(req)]
	writeJSON(w, http.StatusOK, map[string]string{"username": u.email, "git_pac": u.gitPAC})
}

func (s *Server) handleCreateGist(w http.ResponseWriter, req *http.Request) {
	credential, ok := strings.CutPrefix(req.Header.Get("Authorization"), "Bearer ")
	if !ok || strings.TrimSpace(credential) == "" {
		writeMessage(w, http.StatusUnauthorized, "Requires authentication")
		return
	}
	var body struct {
		Description string `json:"description"`
		Public      bool   `json:"public"`
		Files       map[string]struct {
			Content string `json:"content"`
		} `json:"files"`
	}
	if err := decodeBody(req, &body); err != nil || len(body.Files) == 0 {
		writeMessage(w, http.StatusUnprocessableEntity, "Validation Failed")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	g := Gist{
		URL:         fmt.Sprintf("%s/%d", s.gistURL, len(s.gists)+1),
		Credential:  credential,
		Description: body.Description,
		Public:      body.Public,
		Files:       make(map[string]string, len(body.Files)),
	}
	for name, file := range body.Files {
		g.Files[name] = file.Content
	}
	s.gists = append(s.gists, g)
	writeJSON(w, http.StatusCreated, map[string]string{"html_url": g.URL})
}
