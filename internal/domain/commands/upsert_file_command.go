package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/docbridge/internal/domain/entities"
	"github.com/rios0rios0/docbridge/internal/domain/repositories"
)

const upstreamExcerptLength = 300

// UpsertFile is the interface for the write_to_repo pipeline.
type UpsertFile interface {
	Execute(ctx context.Context, request entities.RepoWriteRequest) (*entities.RepoWriteResult, error)
}

// UpsertFileCommand writes a text file to a remote repository:
// check existence -> create or update -> normalize the response.
type UpsertFileCommand struct {
	sourceControl repositories.SourceControlRepository
	settings      *entities.Settings
}

// NewUpsertFileCommand creates a new UpsertFileCommand.
func NewUpsertFileCommand(
	sourceControl repositories.SourceControlRepository,
	settings *entities.Settings,
) *UpsertFileCommand {
	return &UpsertFileCommand{
		sourceControl: sourceControl,
		settings:      settings,
	}
}

// Execute runs the upsert. request.Repo, Path and Content must be non-empty;
// every failure is returned as an *entities.Error.
func (it *UpsertFileCommand) Execute(
	ctx context.Context,
	request entities.RepoWriteRequest,
) (*entities.RepoWriteResult, error) {
	if entities.HasParentSegment(request.Path) {
		return nil, entities.ValidationError("Path may not contain '..' segments")
	}

	if it.settings.Repository.Token == "" {
		return nil, entities.ConfigurationError(
			fmt.Sprintf("%s environment variable not set", it.settings.Repository.TokenKey()),
		)
	}

	branch := request.Branch
	if branch == "" {
		branch = entities.DefaultBranch
	}
	message := request.CommitMessage
	if message == "" {
		message = "Update " + request.Path
	}

	repo := strings.TrimSpace(request.Repo)
	if _, _, ok := entities.SplitRepo(repo); !ok {
		return nil, entities.ValidationError("repo must be in form 'owner/name'")
	}

	revision, err := it.sourceControl.GetFile(ctx, repo, request.Path, branch)
	if err != nil {
		return nil, it.upstreamFailure("GET", err)
	}
	logger.Debugf("%s %s:%s exists=%t sha=%q",
		it.sourceControl.DisplayName(), repo, request.Path, revision.Exists, revision.SHA)

	commit, err := it.sourceControl.PutFile(ctx, entities.FileWrite{
		Repo:    repo,
		Path:    request.Path,
		Content: []byte(request.Content),
		Message: message,
		Branch:  branch,
		SHA:     revision.SHA,
	})
	if err != nil {
		return nil, it.upstreamFailure("PUT", err)
	}

	action := entities.ActionCreated
	if revision.SHA != "" {
		action = entities.ActionUpdated
	}
	logger.Infof("%s %s/%s on %s (%s)", action, repo, request.Path, branch, it.sourceControl.Name())

	return &entities.RepoWriteResult{
		Action:    action,
		Repo:      repo,
		Path:      request.Path,
		Branch:    branch,
		CommitSHA: commit.SHA,
		HTMLURL:   commit.HTMLURL,
	}, nil
}

// upstreamFailure turns a provider error into the 502 message shown to the client.
func (it *UpsertFileCommand) upstreamFailure(operation string, err error) *entities.Error {
	provider := it.sourceControl.DisplayName()
	logger.Warnf("%s %s failed: %v", provider, operation, err)

	var statusErr *repositories.StatusError
	if errors.As(err, &statusErr) {
		return entities.UpstreamError(strings.TrimRight(fmt.Sprintf(
			"%s %s failed: %d %s",
			provider, operation, statusErr.StatusCode, truncate(statusErr.Body, upstreamExcerptLength),
		), " "))
	}

	if operation == "GET" {
		return entities.UpstreamError(fmt.Sprintf("Failed to contact %s: %v", provider, err))
	}
	return entities.UpstreamError(fmt.Sprintf("%s %s failed: %v", provider, operation, err))
}

// truncate cuts s to at most limit characters without splitting a rune.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}
