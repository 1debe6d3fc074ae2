package repositories

import (
	"context"
)

// CaptionerRepository describes an image with a language model.
type CaptionerRepository interface {
	// Name returns the backend identifier (e.g. "azure_openai", "openai").
	Name() string

	// Caption returns a markdown description of the image.
	Caption(ctx context.Context, data []byte, mimeType string, filename string) (string, error)
}
