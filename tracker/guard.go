package tracker

import (
	"fmt"
	"sync"
)

// inflight tracks which records have a mutation outstanding.
type inflight struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func newInflight() *inflight {
	return &inflight{keys: make(map[string]struct{})}
}

// claim marks key busy and returns the function that releases it.
func (g *inflight) claim(key string) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.keys[key]; busy {
		return nil, fmt.Errorf("%s: %w", key, ErrInFlight)
	}
	g.keys[key] = struct{}{}
	return func() {
		g.mu.Lock()
		delete(g.keys, key)
		g.mu.Unlock()
	}, nil
}

// busy reports whether key is claimed.
func (g *inflight) busy(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.keys[key]
	return ok
}

func projectKey(id int) string {
	return fmt.Sprintf("project:%d", id)
}

func taskKey(id int) string {
	return fmt.Sprintf("task:%d", id)
}

func addTaskKey(projectID int) string {
	return fmt.Sprintf("add-task:%d", projectID)
}

const createProjectKey = "create-project"
