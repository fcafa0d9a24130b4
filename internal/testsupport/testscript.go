package testsupport

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/amonks/markitdown/internal/fakeapi"
	"github.com/rogpeppe/go-internal/testscript"
)

var (
	buildOnce sync.Once
	midPath   string
	buildErr  error
)

// BuildMid builds the mid binary once and returns its path.
func BuildMid(t testing.TB) string {
	t.Helper()

	buildOnce.Do(func() {
		moduleRoot, err := findModuleRoot()
		if err != nil {
			buildErr = err
			return
		}

		binDir, err := os.MkdirTemp("", "mid-bin-")
		if err != nil {
			buildErr = err
			return
		}

		midPath = filepath.Join(binDir, "mid")
		cmd := exec.Command("go", "build", "-o", midPath, "./cmd/mid")
		cmd.Dir = moduleRoot
		output, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("build mid: %w: %s", err, strings.TrimSpace(string(output)))
		}
	})

	if buildErr != nil {
		t.Fatalf("%v", buildErr)
	}

	return midPath
}

// SetupScriptEnv configures common environment variables for testscript and
// starts a fake backend for the script's lifetime. The backend serves both
// the API and the gist host.
func SetupScriptEnv(t testing.TB, env *testscript.Env) error {
	t.Helper()

	env.Setenv("MID", BuildMid(t))

	homeDir := filepath.Join(env.WorkDir, "home")
	if err := EnsureHomeDirs(homeDir); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)
	env.Setenv("NO_COLOR", "1")
	env.Setenv("EDITOR", "false")

	backend := fakeapi.New()
	server := httptest.NewServer(backend.Handler())
	env.Defer(server.Close)
	env.Setenv("MID_API_URL", server.URL)
	env.Setenv("MID_GIST_URL", server.URL)
	env.Values[backendKey{}] = backend
	return nil
}

type backendKey struct{}

// Backend returns the fake backend started by SetupScriptEnv.
func Backend(ts *testscript.TestScript) *fakeapi.Server {
	backend, ok := ts.Value(backendKey{}).(*fakeapi.Server)
	if !ok {
		ts.Fatalf("no fake backend in this script")
	}
	return backend
}

// Cmds returns the custom testscript commands shared by mid's scripts.
func Cmds() map[string]func(ts *testscript.TestScript, neg bool, args []string) {
	return map[string]func(ts *testscript.TestScript, neg bool, args []string){
		"envset":    CmdEnvSet,
		"projectid": CmdProjectID,
		"taskid":    CmdTaskID,
		"setpac":    CmdSetPAC,
		"requests":  CmdRequests,
	}
}

// CmdEnvSet stores the trimmed contents of a file in an env var.
func CmdEnvSet(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("envset does not support negation")
	}
	if len(args) != 2 {
		ts.Fatalf("usage: envset VAR FILE")
	}

	value := strings.TrimSpace(ts.ReadFile(args[1]))
	ts.Setenv(args[0], value)
}

// CmdProjectID finds a project by title in `mid project list --json` output
// and stores its ID in an env var.
func CmdProjectID(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("projectid does not support negation")
	}
	if len(args) != 3 {
		ts.Fatalf("usage: projectid FILE TITLE VAR")
	}

	var items []struct {
		ID    int    `json:"id"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal([]byte(ts.ReadFile(args[0])), &items); err != nil {
		ts.Fatalf("parse project list: %v", err)
	}
	for _, item := range items {
		if item.Title == args[1] {
			ts.Setenv(args[2], strconv.Itoa(item.ID))
			return
		}
	}
	ts.Fatalf("project with title %q not found", args[1])
}

// CmdTaskID finds a task by description in `mid project show --json` output
// and stores its ID in an env var. Deleted tasks are searched too.
func CmdTaskID(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("taskid does not support negation")
	}
	if len(args) != 3 {
		ts.Fatalf("usage: taskid FILE DESCRIPTION VAR")
	}

	type taskJSON struct {
		ID          int    `json:"id"`
		Description string `json:"description"`
	}
	var detail struct {
		Tasks        []taskJSON `json:"tasks"`
		DeletedTasks []taskJSON `json:"deleted_task"`
	}
	if err := json.Unmarshal([]byte(ts.ReadFile(args[0])), &detail); err != nil {
		ts.Fatalf("parse project detail: %v", err)
	}
	for _, task := range append(detail.Tasks, detail.DeletedTasks...) {
		if task.Description == args[1] {
			ts.Setenv(args[2], strconv.Itoa(task.ID))
			return
		}
	}
	ts.Fatalf("task with description %q not found", args[1])
}

// CmdSetPAC stores a gist credential directly on a user's profile.
func CmdSetPAC(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("setpac does not support negation")
	}
	if len(args) != 2 {
		ts.Fatalf("usage: setpac EMAIL PAC")
	}
	Backend(ts).SetCredential(args[0], args[1])
}

// CmdRequests asserts how many requests a backend route has received.
func CmdRequests(ts *testscript.TestScript, neg bool, args []string) {
	if len(args) != 2 {
		ts.Fatalf("usage: requests ROUTE COUNT")
	}
	want, err := strconv.Atoi(args[1])
	if err != nil {
		ts.Fatalf("invalid count %q", args[1])
	}
	got := Backend(ts).Count(args[0])
	if (got == want) == neg {
		ts.Fatalf("route %s received %d requests, expected %s%d", args[0], got, negation(neg), want)
	}
}

func negation(neg bool) string {
	if neg {
		return "not "
	}
	return ""
}

func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find module root (go.mod)")
		}
		dir = parent
	}
}
