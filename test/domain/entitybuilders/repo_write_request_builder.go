//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/docbridge/internal/domain/entities"
)

// RepoWriteRequestBuilder helps create write_to_repo requests with a fluent interface.
type RepoWriteRequestBuilder struct {
	*testkit.BaseBuilder
	repo          string
	path          string
	content       string
	branch        string
	commitMessage string
}

// NewRepoWriteRequestBuilder creates a new builder with sensible defaults.
func NewRepoWriteRequestBuilder() *RepoWriteRequestBuilder {
	return &RepoWriteRequestBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		repo:        "owner/repo",
		path:        "docs/file.md",
		content:     "# Hello",
	}
}

// WithRepo sets the "owner/name" identifier.
func (b *RepoWriteRequestBuilder) WithRepo(repo string) *RepoWriteRequestBuilder {
	b.repo = repo
	return b
}

// WithPath sets the file path.
func (b *RepoWriteRequestBuilder) WithPath(path string) *RepoWriteRequestBuilder {
	b.path = path
	return b
}

// WithContent sets the file content.
func (b *RepoWriteRequestBuilder) WithContent(content string) *RepoWriteRequestBuilder {
	b.content = content
	return b
}

// WithBranch sets the target branch.
func (b *RepoWriteRequestBuilder) WithBranch(branch string) *RepoWriteRequestBuilder {
	b.branch = branch
	return b
}

// WithCommitMessage sets the commit message.
func (b *RepoWriteRequestBuilder) WithCommitMessage(message string) *RepoWriteRequestBuilder {
	b.commitMessage = message
	return b
}

// Build creates the request (satisfies testkit.Builder interface).
func (b *RepoWriteRequestBuilder) Build() interface{} {
	return b.BuildRequest()
}

// BuildRequest creates the request with a concrete return type.
func (b *RepoWriteRequestBuilder) BuildRequest() entities.RepoWriteRequest {
	return entities.RepoWriteRequest{
		Repo:          b.repo,
		Path:          b.path,
		Content:       b.content,
		Branch:        b.branch,
		CommitMessage: b.commitMessage,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *RepoWriteRequestBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.repo = "owner/repo"
	b.path = "docs/file.md"
	b.content = "# Hello"
	b.branch = ""
	b.commitMessage = ""
	return b
}

// Clone creates a deep copy of the RepoWriteRequestBuilder.
func (b *RepoWriteRequestBuilder) Clone() testkit.Builder {
	return &RepoWriteRequestBuilder{
		BaseBuilder:   b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		repo:          b.repo,
		path:          b.path,
		content:       b.content,
		branch:        b.branch,
		commitMessage: b.commitMessage,
	}
}
