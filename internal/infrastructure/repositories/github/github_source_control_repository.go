package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v66/github"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/docbridge/internal/domain/entities"
	"github.com/rios0rios0/docbridge/internal/domain/repositories"
)

const (
	providerName = "github"
	displayName  = "GitHub"
)

// GitHubSourceControlRepository implements repositories.SourceControlRepository
// on top of the GitHub contents API.
type GitHubSourceControlRepository struct {
	client       *gh.Client
	readTimeout  time.Duration
	writeTimeout time.Duration
}

// NewGitHubSourceControlRepository creates a GitHub client from the repository settings.
// Retries are never performed; go-github issues exactly one request per call.
func NewGitHubSourceControlRepository(settings entities.RepositorySettings) repositories.SourceControlRepository {
	client := gh.NewClient(&http.Client{})
	if settings.Token != "" {
		client = client.WithAuthToken(settings.Token)
	}
	if settings.UserAgent != "" {
		client.UserAgent = settings.UserAgent
	}
	if settings.BaseURL != "" {
		if baseURL, err := parseBaseURL(settings.BaseURL); err == nil {
			client.BaseURL = baseURL
		} else {
			logger.Warnf("Ignoring invalid GitHub base URL %q: %v", settings.BaseURL, err)
		}
	}

	return &GitHubSourceControlRepository{
		client:       client,
		readTimeout:  settings.ReadTimeout,
		writeTimeout: settings.WriteTimeout,
	}
}

func (it *GitHubSourceControlRepository) Name() string        { return providerName }
func (it *GitHubSourceControlRepository) DisplayName() string { return displayName }

// GetFile looks the path up on ref. 404 means absent; a 200 whose body does not
// carry a usable sha counts as present without a revision token.
// The request is built by hand because GetContents rejects any path containing
// "..", while only a whole ".." segment is invalid here.
func (it *GitHubSourceControlRepository) GetFile(
	ctx context.Context,
	repo, path, ref string,
) (entities.FileRevision, error) {
	owner, name, _ := entities.SplitRepo(repo)
	ctx, cancel := withTimeout(ctx, it.readTimeout)
	defer cancel()

	req, err := it.client.NewRequest(http.MethodGet, contentsURL(owner, name, path, ref), nil)
	if err != nil {
		return entities.FileRevision{}, &repositories.TransportError{Operation: "GET", Err: err}
	}

	var raw json.RawMessage
	resp, err := it.client.Do(ctx, req, &raw)
	if err != nil {
		if resp == nil || resp.Response == nil {
			return entities.FileRevision{}, &repositories.TransportError{Operation: "GET", Err: err}
		}
		switch resp.StatusCode {
		case http.StatusNotFound:
			return entities.FileRevision{}, nil
		case http.StatusOK:
			logger.Debugf("GitHub returned an unreadable body for %s/%s: %v", repo, path, err)
			return entities.FileRevision{Exists: true}, nil
		}
		return entities.FileRevision{}, statusError("GET", resp, err)
	}

	var fileContent gh.RepositoryContent
	if unmarshalErr := json.Unmarshal(raw, &fileContent); unmarshalErr != nil {
		// a directory listing has no file sha
		logger.Debugf("GitHub returned no file object for %s/%s: %v", repo, path, unmarshalErr)
		return entities.FileRevision{Exists: true}, nil
	}
	return entities.FileRevision{Exists: true, SHA: fileContent.GetSHA()}, nil
}

// PutFile creates the file, or updates it when input.SHA carries the current revision.
func (it *GitHubSourceControlRepository) PutFile(
	ctx context.Context,
	input entities.FileWrite,
) (entities.CommitInfo, error) {
	owner, name, _ := entities.SplitRepo(input.Repo)
	ctx, cancel := withTimeout(ctx, it.writeTimeout)
	defer cancel()

	opts := &gh.RepositoryContentFileOptions{
		Message: gh.String(input.Message),
		Content: input.Content,
		Branch:  gh.String(input.Branch),
	}
	if input.SHA != "" {
		opts.SHA = gh.String(input.SHA)
	}

	// CreateFile and UpdateFile issue the same PUT; UpdateFile only differs by the sha field
	result, resp, err := it.client.Repositories.UpdateFile(ctx, owner, name, input.Path, opts)
	if err != nil {
		if resp == nil || resp.Response == nil {
			return entities.CommitInfo{}, &repositories.TransportError{Operation: "PUT", Err: err}
		}
		if !isWriteSuccess(resp.StatusCode) {
			return entities.CommitInfo{}, statusError("PUT", resp, err)
		}
		// written, but the body could not be decoded
		logger.Debugf("GitHub returned an unreadable write response for %s/%s: %v", input.Repo, input.Path, err)
		return entities.CommitInfo{}, nil
	}
	if !isWriteSuccess(resp.StatusCode) {
		return entities.CommitInfo{}, statusError("PUT", resp, nil)
	}

	info := entities.CommitInfo{}
	if result != nil {
		info.SHA = result.Commit.SHA
		if result.Content != nil {
			info.HTMLURL = result.Content.HTMLURL
		}
	}
	return info, nil
}

// statusError captures the raw response body. go-github re-populates it after
// decoding the error, so it is still readable here.
func statusError(operation string, resp *gh.Response, err error) *repositories.StatusError {
	body := ""
	if resp.Body != nil {
		if data, readErr := io.ReadAll(resp.Body); readErr == nil {
			body = string(data)
		}
	}
	if body == "" && err != nil {
		var errResp *gh.ErrorResponse
		if errors.As(err, &errResp) {
			body = errResp.Message
		} else {
			body = err.Error()
		}
	}
	return &repositories.StatusError{Operation: operation, StatusCode: resp.StatusCode, Body: body}
}

func contentsURL(owner, name, path, ref string) string {
	escapedPath := (&url.URL{Path: strings.TrimSuffix(path, "/")}).String()
	u := fmt.Sprintf("repos/%s/%s/contents/%s", owner, name, escapedPath)
	if ref != "" {
		u += "?ref=" + url.QueryEscape(ref)
	}
	return u
}

func isWriteSuccess(status int) bool {
	return status == http.StatusOK || status == http.StatusCreated
}

func parseBaseURL(raw string) (*url.URL, error) {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	return url.Parse(raw)
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
