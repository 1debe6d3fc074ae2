package gitlab

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	logger "github.com/sirupsen/logrus"
	gl "gitlab.com/gitlab-org/api/client-go"

	"github.com/rios0rios0/docbridge/internal/domain/entities"
	"github.com/rios0rios0/docbridge/internal/domain/repositories"
)

const (
	providerName   = "gitlab"
	displayName    = "GitLab"
	base64Encoding = "base64"
)

var errClientNotInitialized = errors.New("gitlab client not initialized")

// GitLabSourceControlRepository implements repositories.SourceControlRepository
// on top of the GitLab repository files API. "owner/name" is used as the project path.
type GitLabSourceControlRepository struct {
	client       *gl.Client
	readTimeout  time.Duration
	writeTimeout time.Duration
}

// NewGitLabSourceControlRepository creates a GitLab client from the repository settings.
func NewGitLabSourceControlRepository(settings entities.RepositorySettings) repositories.SourceControlRepository {
	options := []gl.ClientOptionFunc{
		gl.WithHTTPClient(&http.Client{}),
		gl.WithoutRetries(),
	}
	if settings.BaseURL != "" {
		options = append(options, gl.WithBaseURL(settings.BaseURL))
	}

	client, err := gl.NewClient(settings.Token, options...)
	if err != nil {
		// Return a provider that will fail on use rather than panicking at construction
		logger.Warnf("Failed to create GitLab client: %v", err)
		return &GitLabSourceControlRepository{client: nil}
	}
	if settings.UserAgent != "" {
		client.UserAgent = settings.UserAgent
	}

	return &GitLabSourceControlRepository{
		client:       client,
		readTimeout:  settings.ReadTimeout,
		writeTimeout: settings.WriteTimeout,
	}
}

func (it *GitLabSourceControlRepository) Name() string        { return providerName }
func (it *GitLabSourceControlRepository) DisplayName() string { return displayName }

// GetFile reads the file metadata on ref. The revision token is the last commit
// that touched the file, which GitLab accepts back as last_commit_id on update.
func (it *GitLabSourceControlRepository) GetFile(
	ctx context.Context,
	repo, path, ref string,
) (entities.FileRevision, error) {
	if it.client == nil {
		return entities.FileRevision{}, &repositories.TransportError{Operation: "GET", Err: errClientNotInitialized}
	}

	ctx, cancel := withTimeout(ctx, it.readTimeout)
	defer cancel()

	file, resp, err := it.client.RepositoryFiles.GetFile(
		repo, path,
		&gl.GetFileOptions{Ref: gl.Ptr(ref)},
		gl.WithContext(ctx),
	)
	if err != nil {
		if resp == nil || resp.Response == nil {
			return entities.FileRevision{}, &repositories.TransportError{Operation: "GET", Err: err}
		}
		switch resp.StatusCode {
		case http.StatusNotFound:
			return entities.FileRevision{}, nil
		case http.StatusOK:
			logger.Debugf("GitLab returned an unreadable body for %s/%s: %v", repo, path, err)
			return entities.FileRevision{Exists: true}, nil
		}
		return entities.FileRevision{}, statusError("GET", resp, err)
	}

	if file == nil {
		return entities.FileRevision{Exists: true}, nil
	}
	return entities.FileRevision{Exists: true, SHA: file.LastCommitID}, nil
}

// PutFile creates the file, or updates it when input.SHA is set. GitLab does not
// report a commit for file writes, so the returned CommitInfo is empty on success.
func (it *GitLabSourceControlRepository) PutFile(
	ctx context.Context,
	input entities.FileWrite,
) (entities.CommitInfo, error) {
	if it.client == nil {
		return entities.CommitInfo{}, &repositories.TransportError{Operation: "PUT", Err: errClientNotInitialized}
	}

	ctx, cancel := withTimeout(ctx, it.writeTimeout)
	defer cancel()

	content := base64.StdEncoding.EncodeToString(input.Content)

	var (
		resp *gl.Response
		err  error
	)
	if input.SHA == "" {
		_, resp, err = it.client.RepositoryFiles.CreateFile(
			input.Repo, input.Path,
			&gl.CreateFileOptions{
				Branch:        gl.Ptr(input.Branch),
				Encoding:      gl.Ptr(base64Encoding),
				Content:       gl.Ptr(content),
				CommitMessage: gl.Ptr(input.Message),
			},
			gl.WithContext(ctx),
		)
	} else {
		_, resp, err = it.client.RepositoryFiles.UpdateFile(
			input.Repo, input.Path,
			&gl.UpdateFileOptions{
				Branch:        gl.Ptr(input.Branch),
				Encoding:      gl.Ptr(base64Encoding),
				Content:       gl.Ptr(content),
				CommitMessage: gl.Ptr(input.Message),
				LastCommitID:  gl.Ptr(input.SHA),
			},
			gl.WithContext(ctx),
		)
	}
	if err != nil {
		if resp == nil || resp.Response == nil {
			return entities.CommitInfo{}, &repositories.TransportError{Operation: "PUT", Err: err}
		}
		return entities.CommitInfo{}, statusError("PUT", resp, err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return entities.CommitInfo{}, &repositories.StatusError{Operation: "PUT", StatusCode: resp.StatusCode}
	}

	return entities.CommitInfo{}, nil
}

func statusError(operation string, resp *gl.Response, err error) *repositories.StatusError {
	body := err.Error()
	var errResp *gl.ErrorResponse
	if errors.As(err, &errResp) && len(errResp.Body) > 0 {
		body = string(errResp.Body)
	}
	return &repositories.StatusError{Operation: operation, StatusCode: resp.StatusCode, Body: body}
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
