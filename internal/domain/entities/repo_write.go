package entities

import "strings"

const DefaultBranch = "main"

// WriteAction tells whether write_to_repo created a new file or replaced one.
type WriteAction string

const (
	ActionCreated WriteAction = "created"
	ActionUpdated WriteAction = "updated"
)

// RepoWriteRequest is a write_to_repo payload after type checking.
// Branch and CommitMessage may be empty; defaults are applied by the command.
type RepoWriteRequest struct {
	Repo          string
	Path          string
	Content       string
	Branch        string
	CommitMessage string
}

// FileRevision is the result of the existence check. SHA is the revision
// token that must be sent back on update; empty means "no prior revision".
type FileRevision struct {
	Exists bool
	SHA    string
}

// FileWrite is everything a provider needs to create or update a file.
type FileWrite struct {
	Repo    string
	Path    string
	Content []byte
	Message string
	Branch  string
	SHA     string
}

// CommitInfo is what a provider reports back after a write. Either field may be nil.
type CommitInfo struct {
	SHA     *string
	HTMLURL *string
}

// RepoWriteResult is the normalized outcome of an upsert.
type RepoWriteResult struct {
	Action    WriteAction
	Repo      string
	Path      string
	Branch    string
	CommitSHA *string
	HTMLURL   *string
}

// SplitRepo splits an "owner/name" identifier. ok is false unless there is
// exactly one slash with text on both sides.
func SplitRepo(repo string) (string, string, bool) {
	if strings.Count(repo, "/") != 1 {
		return "", "", false
	}
	owner, name, _ := strings.Cut(repo, "/")
	if owner == "" || name == "" {
		return "", "", false
	}
	return owner, name, true
}

// HasParentSegment reports whether path contains a literal ".." segment.
func HasParentSegment(path string) bool {
	for _, segment := range strings.Split(path, "/") {
		if segment == ".." {
			return true
		}
	}
	return false
}
