package gist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishSendsPrivateGist(t *testing.T) {
	var got createRequest
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/gists", r.URL.Path)
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"html_url":"https://gist.example/abc"}`))
	}))
	defer server.Close()

	client := NewClient(Options{BaseURL: server.URL})
	url, err := client.Publish(context.Background(), " pac-1 ", File{
		Description: "Trip - Task List",
		Filename:    "Trip-tasks.md",
		Content:     "# Trip\n",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://gist.example/abc", url)
	assert.Equal(t, "Bearer pac-1", auth)
	assert.False(t, got.Public)
	assert.Equal(t, "Trip - Task List", got.Description)
	assert.Equal(t, map[string]fileContent{"Trip-tasks.md": {Content: "# Trip\n"}}, got.Files)
}

func TestPublishWithoutCredentialSendsNothing(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	client := NewClient(Options{BaseURL: server.URL})
	_, err := client.Publish(context.Background(), "   ", File{Filename: "a.md"})

	require.ErrorIs(t, err, ErrCredentialMissing)
	assert.Zero(t, calls.Load())
}

func TestPublishFailureIsDistinctAndLogged(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Bad credentials"}`))
	}))
	defer server.Close()

	var logs bytes.Buffer
	client := NewClient(Options{BaseURL: server.URL, Logger: log.New(&logs, "", 0)})
	_, err := client.Publish(context.Background(), "bad", File{Filename: "a.md"})

	var publishErr *PublishError
	require.True(t, errors.As(err, &publishErr))
	assert.Equal(t, http.StatusUnauthorized, publishErr.Status)
	assert.NotErrorIs(t, err, ErrCredentialMissing)
	assert.Contains(t, logs.String(), "Bad credentials")
	assert.NotContains(t, err.Error(), "Bad credentials")
}

func TestPublishRequiresURLInResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(Options{BaseURL: server.URL, Logger: log.New(&bytes.Buffer{}, "", 0)})
	_, err := client.Publish(context.Background(), "pac", File{Filename: "a.md"})

	var publishErr *PublishError
	require.ErrorAs(t, err, &publishErr)
}

func TestPublishTransportFailureKeepsDetailInLog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	var logs bytes.Buffer
	client := NewClient(Options{BaseURL: url, Logger: log.New(&logs, "", 0)})
	_, err := client.Publish(context.Background(), "pac", File{Filename: "a.md"})

	var publishErr *PublishError
	require.ErrorAs(t, err, &publishErr)
	assert.Equal(t, "failed to upload to GitHub Gists: gist host unreachable", err.Error())
	assert.NotContains(t, err.Error(), url)
	assert.Contains(t, logs.String(), "publish a.md:")
	assert.Contains(t, logs.String(), url)
}
