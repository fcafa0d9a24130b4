package tracker

import (
	"context"
	"fmt"

	"github.com/amonks/markitdown/gist"
)

// GistPublisher uploads a file to a gist host.
type GistPublisher interface {
	Publish(ctx context.Context, credential string, f gist.File) (string, error)
}

// GistFile builds the gist upload for a project's Markdown export.
func GistFile(detail ProjectDetail) gist.File {
	return gist.File{
		Description: fmt.Sprintf("%s - Task List", singleLine(detail.Title)),
		Filename:    MarkdownFilename(detail.Title),
		Content:     Markdown(detail),
	}
}

// PublishGist uploads a project's Markdown export as a private gist using
// the credential stored on the user's profile, and returns the gist URL.
//
// The project detail is taken from the mirror when present, otherwise
// fetched. A missing credential yields gist.ErrCredentialMissing before
// anything is sent to the gist host.
func (c *Client) PublishGist(ctx context.Context, projectID int, publisher GistPublisher) (string, error) {
	detail, ok := c.Detail(projectID)
	if !ok {
		fetched, err := c.ProjectDetail(ctx, projectID)
		if err != nil {
			return "", err
		}
		detail = fetched
	}

	credential, err := c.Credential(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCredentialFetch, err)
	}
	if credential == "" {
		return "", gist.ErrCredentialMissing
	}
	return publisher.Publish(ctx, credential, GistFile(detail))
}
