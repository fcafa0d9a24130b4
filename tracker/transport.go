package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// IdempotencyHeader carries a per-submit key on create requests.
const IdempotencyHeader = "Idempotency-Key"

// transport speaks the backend's REST API.
type transport struct {
	baseURL string
	client  *http.Client
	token   string
}

func newTransport(addr string, client *http.Client, token string) *transport {
	baseURL := strings.TrimRight(strings.TrimSpace(addr), "/")
	if baseURL != "" && !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	if client == nil {
		client = &http.Client{}
	}
	return &transport{baseURL: baseURL, client: client, token: token}
}

type request struct {
	method string
	path   string
	// op is the generic failure description shown when the server sends none.
	op      string
	payload any
	dest    any
	want    int
	anon    bool
	idemKey bool
}

func (t *transport) do(ctx context.Context, r request) error {
	if !r.anon && strings.TrimSpace(t.token) == "" {
		return fmt.Errorf("%s: %w", r.op, ErrNoSession)
	}

	var body io.Reader
	if r.payload != nil {
		data, err := json.Marshal(r.payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, t.baseURL+r.path, body)
	if err != nil {
		return err
	}
	if r.payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if !r.anon {
		req.Header.Set("Authorization", "Token "+t.token)
	}
	if r.idemKey {
		req.Header.Set(IdempotencyHeader, uuid.NewString())
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return &TransportError{Op: r.op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != r.want {
		return readErrorResponse(r.op, r.anon, resp)
	}
	if r.dest == nil {
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: r.op, Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, r.dest); err != nil {
		return fmt.Errorf("%s: decode response: %w", r.op, err)
	}
	return nil
}

func readErrorResponse(op string, anon bool, resp *http.Response) error {
	apiErr := &APIError{Op: op, Status: resp.StatusCode, Anonymous: anon}
	var payload map[string]any
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(&payload); err == nil {
		for _, key := range []string{"message", "error", "detail"} {
			if message, ok := payload[key].(string); ok && strings.TrimSpace(message) != "" {
				apiErr.Message = message
				break
			}
		}
	}
	return apiErr
}

func projectPath(id int, action string) string {
	if action == "" {
		return fmt.Sprintf("/api/projects/%d/", id)
	}
	return fmt.Sprintf("/api/projects/%d/%s/", id, action)
}

func taskPath(id int, action string) string {
	return fmt.Sprintf("/api/tasks/%d/%s/", id, action)
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

type titleRequest struct {
	Title string `json:"title"`
}

type descriptionRequest struct {
	Description string `json:"description"`
}

type credentialResponse struct {
	GitPAC string `json:"git_pac"`
}

type credentialRequest struct {
	GitPAC string `json:"git_pac"`
}
