//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/docbridge/internal/domain/commands"
	"github.com/rios0rios0/docbridge/internal/domain/entities"
)

// StubIngestCommand is a stub implementation of commands.Ingest.
type StubIngestCommand struct {
	ExecuteCallCount int
	Result           *entities.IngestResult
	ExecuteErr       error
	LastOpts         commands.IngestOptions
}

var _ commands.Ingest = (*StubIngestCommand)(nil)

func (s *StubIngestCommand) Execute(
	_ context.Context,
	opts commands.IngestOptions,
) (*entities.IngestResult, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	return s.Result, s.ExecuteErr
}
