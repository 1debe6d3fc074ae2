package markdown

import (
	"context"
	"errors"
	"fmt"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/docbridge/internal/domain/entities"
	"github.com/rios0rios0/docbridge/internal/domain/repositories"
)

// MarkdownExtractorRepository implements repositories.ExtractorRepository by
// dispatching to the first converter that accepts the document.
type MarkdownExtractorRepository struct {
	converters []Converter
	captioner  repositories.CaptionerRepository
	timeout    time.Duration
}

// NewMarkdownExtractorRepository creates an extractor with the built-in converters.
// captioner may be nil.
func NewMarkdownExtractorRepository(
	settings entities.ExtractionSettings,
	captioner repositories.CaptionerRepository,
) *MarkdownExtractorRepository {
	return NewMarkdownExtractorRepositoryWith(settings.Timeout, captioner,
		NewPDFConverter(),
		NewDOCXConverter(),
		NewPPTXConverter(),
		NewImageConverter(),
		NewTextConverter(),
	)
}

// NewMarkdownExtractorRepositoryWith creates an extractor with an explicit converter list.
func NewMarkdownExtractorRepositoryWith(
	timeout time.Duration,
	captioner repositories.CaptionerRepository,
	converters ...Converter,
) *MarkdownExtractorRepository {
	return &MarkdownExtractorRepository{
		converters: converters,
		captioner:  captioner,
		timeout:    timeout,
	}
}

// Extract converts data to markdown. Every error is an *entities.ExtractionError.
func (it *MarkdownExtractorRepository) Extract(
	ctx context.Context,
	data []byte,
	filename string,
	captioning bool,
) (string, error) {
	info := NewStreamInfo(data, filename)

	converter := it.selectConverter(info)
	if converter == nil {
		return "", entities.NewExtractionError(entities.FailureUnsupported,
			fmt.Errorf("%w: %s (%s)", errNoConverter, filename, info.MIMEType))
	}

	opts := ConvertOptions{}
	if captioning {
		opts.Captioner = it.captioner
	}

	if it.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, it.timeout)
		defer cancel()
	}

	logger.Debugf("Converting %q with the %s converter", filename, converter.Name())

	type outcome struct {
		markdown string
		err      error
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("%s converter panicked: %v", converter.Name(), r)}
			}
		}()
		markdown, err := converter.Convert(ctx, data, info, opts)
		done <- outcome{markdown: markdown, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", classify(ctx.Err())
	case result := <-done:
		if result.err != nil {
			return "", classify(result.err)
		}
		return result.markdown, nil
	}
}

func (it *MarkdownExtractorRepository) selectConverter(info StreamInfo) Converter {
	for _, converter := range it.converters {
		if converter.Accepts(info) {
			return converter
		}
	}
	return nil
}

// classify maps a converter error onto the closed set of failure kinds.
func classify(err error) *entities.ExtractionError {
	var extractionErr *entities.ExtractionError
	if errors.As(err, &extractionErr) {
		return extractionErr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return entities.NewExtractionError(entities.FailureTimeout, err)
	}
	return entities.NewExtractionError(entities.FailureUnknown, err)
}
