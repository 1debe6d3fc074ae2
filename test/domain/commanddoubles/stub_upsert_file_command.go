//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/docbridge/internal/domain/commands"
	"github.com/rios0rios0/docbridge/internal/domain/entities"
)

// StubUpsertFileCommand is a stub implementation of commands.UpsertFile.
type StubUpsertFileCommand struct {
	ExecuteCallCount int
	Result           *entities.RepoWriteResult
	ExecuteErr       error
	LastRequest      entities.RepoWriteRequest
}

var _ commands.UpsertFile = (*StubUpsertFileCommand)(nil)

func (s *StubUpsertFileCommand) Execute(
	_ context.Context,
	request entities.RepoWriteRequest,
) (*entities.RepoWriteResult, error) {
	s.ExecuteCallCount++
	s.LastRequest = request
	return s.Result, s.ExecuteErr
}
