//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/docbridge/internal/domain/repositories"
)

// ExtractCall records the arguments of one Extract call.
type ExtractCall struct {
	Data       []byte
	Filename   string
	Captioning bool
}

// SpyExtractorRepository implements repositories.ExtractorRepository as a configurable spy.
type SpyExtractorRepository struct {
	Markdown   string
	ExtractErr error
	Calls      []ExtractCall
}

var _ repositories.ExtractorRepository = (*SpyExtractorRepository)(nil)

func (s *SpyExtractorRepository) Extract(
	_ context.Context,
	data []byte,
	filename string,
	captioning bool,
) (string, error) {
	s.Calls = append(s.Calls, ExtractCall{Data: data, Filename: filename, Captioning: captioning})
	if s.ExtractErr != nil {
		return "", s.ExtractErr
	}
	return s.Markdown, nil
}
