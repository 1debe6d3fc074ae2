package commands

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/docbridge/internal/domain/entities"
	"github.com/rios0rios0/docbridge/internal/domain/repositories"
)

var errLineBreak = errors.New("line break in base64 content")

// Ingest is the interface for the process_file pipeline.
type Ingest interface {
	Execute(ctx context.Context, opts IngestOptions) (*entities.IngestResult, error)
}

// IngestOptions holds the type-checked fields of a process_file payload.
// Filename and ContentBase64 are non-empty.
type IngestOptions struct {
	Filename      string
	ContentBase64 string
	ContentType   string
}

// IngestCommand runs the ingest pipeline:
// decode -> classify -> extract -> hash -> result.
type IngestCommand struct {
	extractor repositories.ExtractorRepository
}

// NewIngestCommand creates a new IngestCommand with the given extractor.
func NewIngestCommand(extractor repositories.ExtractorRepository) *IngestCommand {
	return &IngestCommand{extractor: extractor}
}

// Execute decodes the document and extracts its text. Only a bad payload
// returns an error; extraction failures end up as a sentinel in the result.
func (it *IngestCommand) Execute(
	ctx context.Context,
	opts IngestOptions,
) (*entities.IngestResult, error) {
	content, err := decodeBase64(opts.ContentBase64)
	if err != nil {
		return nil, entities.ValidationError("content_base64 is not valid base64")
	}

	request := entities.IngestRequest{
		Filename:            opts.Filename,
		Content:             content,
		DeclaredContentType: opts.ContentType,
	}
	return it.process(ctx, request), nil
}

// decodeBase64 accepts only the standard alphabet with padding. The decoder
// skips line breaks on its own, so they are rejected first; unused trailing
// bits in the last quantum are tolerated.
func decodeBase64(raw string) ([]byte, error) {
	if strings.ContainsAny(raw, "\r\n") {
		return nil, errLineBreak
	}
	return base64.StdEncoding.DecodeString(raw)
}

func (it *IngestCommand) process(ctx context.Context, request entities.IngestRequest) *entities.IngestResult {
	contentType := request.DeclaredContentType
	if contentType == "" {
		contentType = entities.InferContentType(request.Filename)
	}

	result := &entities.IngestResult{
		Filename:    request.Filename,
		SizeBytes:   len(request.Content),
		SHA256:      entities.SHA256Hex(request.Content),
		ContentType: contentType,
	}

	isImage := entities.IsImage(request.Filename, contentType)
	logger.Debugf("Extracting %q (%s, %d bytes, image=%t)",
		request.Filename, contentType, result.SizeBytes, isImage)

	markdown, err := it.extractor.Extract(ctx, request.Content, request.Filename, isImage)
	if err != nil {
		logger.WithFields(logger.Fields{
			"filename": request.Filename,
			"kind":     entities.FailureKindOf(err).String(),
		}).Warnf("Extraction failed: %v", err)
		result.Markdown = entities.ExtractionSentinel(err)
		return result
	}

	result.Markdown = markdown
	return result
}
