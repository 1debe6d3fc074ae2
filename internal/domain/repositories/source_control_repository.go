package repositories

import (
	"context"
	"fmt"

	"github.com/rios0rios0/docbridge/internal/domain/entities"
)

// SourceControlRepository abstracts the file-contents API of a Git hosting
// service (GitHub, GitLab, Azure DevOps). Implementations never retry.
type SourceControlRepository interface {
	// Name returns the provider identifier (e.g. "github").
	Name() string

	// DisplayName returns the provider name used in client-facing messages (e.g. "GitHub").
	DisplayName() string

	// GetFile checks whether path exists on ref. A missing file is not an error.
	GetFile(ctx context.Context, repo, path, ref string) (entities.FileRevision, error)

	// PutFile creates the file, or updates it when input.SHA is set.
	PutFile(ctx context.Context, input entities.FileWrite) (entities.CommitInfo, error)
}

// StatusError is returned when the remote API answered with an unexpected status.
type StatusError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned %d: %s", e.Operation, e.StatusCode, e.Body)
}

// TransportError is returned when the remote API could not be reached at all.
type TransportError struct {
	Operation string
	Err       error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
