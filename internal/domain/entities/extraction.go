package entities

import (
	"context"
	"errors"
	"fmt"
)

// ExtractionFailureKind is the closed set of reasons an extraction can fail.
type ExtractionFailureKind int

const (
	FailureUnknown ExtractionFailureKind = iota
	FailureUnsupported
	FailureTimeout
	FailureBackendUnavailable
)

func (k ExtractionFailureKind) String() string {
	switch k {
	case FailureUnsupported:
		return "Unsupported"
	case FailureTimeout:
		return "Timeout"
	case FailureBackendUnavailable:
		return "BackendUnavailable"
	default:
		return "Unknown"
	}
}

// ExtractionError is returned by extractors when a document cannot be converted.
type ExtractionError struct {
	Kind ExtractionFailureKind
	Err  error
}

// NewExtractionError wraps err with the given failure kind.
func NewExtractionError(kind ExtractionFailureKind, err error) *ExtractionError {
	return &ExtractionError{Kind: kind, Err: err}
}

func (e *ExtractionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("extraction failed: %s", e.Kind)
	}
	return fmt.Sprintf("extraction failed: %s: %v", e.Kind, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// FailureKindOf classifies any error returned by an extractor.
func FailureKindOf(err error) ExtractionFailureKind {
	var extractionErr *ExtractionError
	if errors.As(err, &extractionErr) {
		return extractionErr.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return FailureTimeout
	}
	return FailureUnknown
}

// ExtractionSentinel is the text placed in a response instead of the
// extracted markdown when extraction fails.
func ExtractionSentinel(err error) string {
	return fmt.Sprintf("(extraction_failed: %s)", FailureKindOf(err))
}
