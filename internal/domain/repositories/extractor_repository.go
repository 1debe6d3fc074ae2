package repositories

import (
	"context"
)

// ExtractorRepository converts raw document bytes into markdown text.
// Failures are reported as *entities.ExtractionError so callers can render
// a deterministic failure kind.
type ExtractorRepository interface {
	// Extract converts data to markdown. filename is used as a format hint.
	// When captioning is true an image may be enriched with a generated
	// description if a captioning backend is configured.
	Extract(ctx context.Context, data []byte, filename string, captioning bool) (string, error)
}
