//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/docbridge/internal/domain/entities"
	"github.com/rios0rios0/docbridge/internal/domain/repositories"
)

// GetFileCall records the arguments of one GetFile call.
type GetFileCall struct {
	Repo string
	Path string
	Ref  string
}

// SpySourceControlRepository implements repositories.SourceControlRepository as a configurable spy.
type SpySourceControlRepository struct {
	// --- identity ---
	ProviderName        string
	ProviderDisplayName string

	// --- GetFile ---
	Revision     entities.FileRevision
	GetFileErr   error
	GetFileCalls []GetFileCall

	// --- PutFile ---
	Commit     entities.CommitInfo
	PutFileErr error
	PutInputs  []entities.FileWrite
}

var _ repositories.SourceControlRepository = (*SpySourceControlRepository)(nil)

// NewSpySourceControlRepository returns a spy that reports itself as GitHub.
func NewSpySourceControlRepository() *SpySourceControlRepository {
	return &SpySourceControlRepository{ProviderName: "github", ProviderDisplayName: "GitHub"}
}

func (p *SpySourceControlRepository) Name() string        { return p.ProviderName }
func (p *SpySourceControlRepository) DisplayName() string { return p.ProviderDisplayName }

func (p *SpySourceControlRepository) GetFile(
	_ context.Context,
	repo, path, ref string,
) (entities.FileRevision, error) {
	p.GetFileCalls = append(p.GetFileCalls, GetFileCall{Repo: repo, Path: path, Ref: ref})
	if p.GetFileErr != nil {
		return entities.FileRevision{}, p.GetFileErr
	}
	return p.Revision, nil
}

func (p *SpySourceControlRepository) PutFile(
	_ context.Context,
	input entities.FileWrite,
) (entities.CommitInfo, error) {
	p.PutInputs = append(p.PutInputs, input)
	if p.PutFileErr != nil {
		return entities.CommitInfo{}, p.PutFileErr
	}
	return p.Commit, nil
}
