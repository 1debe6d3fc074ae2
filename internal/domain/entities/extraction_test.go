//go:build unit

package entities_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/docbridge/internal/domain/entities"
)

func TestExtractionSentinel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "unsupported",
			err:      entities.NewExtractionError(entities.FailureUnsupported, errors.New("no converter")),
			expected: "(extraction_failed: Unsupported)",
		},
		{
			name:     "timeout",
			err:      entities.NewExtractionError(entities.FailureTimeout, nil),
			expected: "(extraction_failed: Timeout)",
		},
		{
			name:     "backend unavailable wrapped",
			err:      fmt.Errorf("extract: %w", entities.NewExtractionError(entities.FailureBackendUnavailable, nil)),
			expected: "(extraction_failed: BackendUnavailable)",
		},
		{
			name:     "bare deadline",
			err:      context.DeadlineExceeded,
			expected: "(extraction_failed: Timeout)",
		},
		{
			name:     "anything else",
			err:      errors.New("boom"),
			expected: "(extraction_failed: Unknown)",
		},
	}

	for _, tt := range tests {
		t.Run("should render "+tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			err := tt.err

			// when
			sentinel := entities.ExtractionSentinel(err)

			// then
			assert.Equal(t, tt.expected, sentinel)
		})
	}
}

func TestExtractionError(t *testing.T) {
	t.Parallel()

	t.Run("should unwrap to the cause", func(t *testing.T) {
		t.Parallel()

		// given
		cause := errors.New("corrupt xref table")

		// when
		err := entities.NewExtractionError(entities.FailureUnknown, cause)

		// then
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "Unknown")
		assert.Contains(t, err.Error(), "corrupt xref table")
	})
}
