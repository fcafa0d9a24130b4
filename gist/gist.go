// Package gist publishes text files as private gists.
package gist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
)

// DefaultBaseURL is the GitHub REST API root.
const DefaultBaseURL = "https://api.github.com"

// ErrCredentialMissing is returned when no personal access token is configured.
var ErrCredentialMissing = errors.New("GitHub personal access token is not set; add one with `mid profile set-pac`")

// PublishError is a failed response from the gist host.
type PublishError struct {
	Status  int
	Message string
}

func (e *PublishError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("failed to upload to GitHub Gists: %s", e.Message)
	}
	return fmt.Sprintf("failed to upload to GitHub Gists: %d %s", e.Status, http.StatusText(e.Status))
}

// File is a single-file gist.
type File struct {
	Description string
	Filename    string
	Content     string
}

// Client calls the gist host.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *log.Logger
}

// Options configures a Client.
type Options struct {
	// BaseURL defaults to DefaultBaseURL.
	BaseURL    string
	HTTPClient *http.Client
	// Logger receives response diagnostics on failure. Defaults to stderr.
	Logger *log.Logger
}

// NewClient creates a gist client.
func NewClient(opts Options) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "gist: ", log.LstdFlags)
	}
	return &Client{baseURL: baseURL, client: httpClient, logger: logger}
}

type createRequest struct {
	Description string                 `json:"description"`
	Public      bool                   `json:"public"`
	Files       map[string]fileContent `json:"files"`
}

type fileContent struct {
	Content string `json:"content"`
}

type createResponse struct {
	HTMLURL string `json:"html_url"`
}

// Publish uploads f as a private gist and returns its web URL.
func (c *Client) Publish(ctx context.Context, credential string, f File) (string, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return "", ErrCredentialMissing
	}
	if strings.TrimSpace(f.Filename) == "" {
		return "", fmt.Errorf("publish gist: filename is required")
	}

	data, err := json.Marshal(createRequest{
		Description: f.Description,
		Public:      false,
		Files:       map[string]fileContent{f.Filename: {Content: f.Content}},
	})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/gists", bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+credential)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Printf("publish %s: %v", f.Filename, err)
		return "", &PublishError{Message: "gist host unreachable"}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Printf("publish %s: read response: %v", f.Filename, err)
		return "", &PublishError{Status: resp.StatusCode, Message: "incomplete response"}
	}
	if resp.StatusCode != http.StatusCreated {
		c.logger.Printf("publish %s: %s: %s", f.Filename, resp.Status, strings.TrimSpace(string(body)))
		return "", &PublishError{Status: resp.StatusCode}
	}

	var response createResponse
	if err := json.Unmarshal(body, &response); err != nil {
		c.logger.Printf("publish %s: decode response: %v", f.Filename, err)
		return "", &PublishError{Status: resp.StatusCode, Message: "malformed response"}
	}
	if response.HTMLURL == "" {
		c.logger.Printf("publish %s: response has no html_url: %s", f.Filename, strings.TrimSpace(string(body)))
		return "", &PublishError{Status: resp.StatusCode, Message: "response has no gist URL"}
	}
	return response.HTMLURL, nil
}
