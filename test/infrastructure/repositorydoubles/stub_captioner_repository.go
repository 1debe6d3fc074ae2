//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/docbridge/internal/domain/repositories"
)

// StubCaptionerRepository implements repositories.CaptionerRepository with a fixed answer.
type StubCaptionerRepository struct {
	BackendName   string
	CaptionText   string
	CaptionErr    error
	CallCount     int
	LastMIMEType  string
	LastFilename  string
	BlockUntilCtx bool
}

var _ repositories.CaptionerRepository = (*StubCaptionerRepository)(nil)

func (s *StubCaptionerRepository) Name() string { return s.BackendName }

func (s *StubCaptionerRepository) Caption(
	ctx context.Context,
	_ []byte,
	mimeType, filename string,
) (string, error) {
	s.CallCount++
	s.LastMIMEType = mimeType
	s.LastFilename = filename
	if s.BlockUntilCtx {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if s.CaptionErr != nil {
		return "", s.CaptionErr
	}
	return s.CaptionText, nil
}
