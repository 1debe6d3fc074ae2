package markdown

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/rios0rios0/docbridge/internal/domain/repositories"
)

var errNoConverter = errors.New("no converter accepts this document")

// StreamInfo is what converters know about a document before reading it.
type StreamInfo struct {
	Filename  string
	Extension string // lowercase, with the leading dot
	MIMEType  string // sniffed from the first bytes
}

// ConvertOptions carries optional collaborators for a single conversion.
type ConvertOptions struct {
	// Captioner is nil when captioning is disabled or not configured.
	Captioner repositories.CaptionerRepository
}

// Converter turns one family of formats into markdown.
type Converter interface {
	Name() string
	Accepts(info StreamInfo) bool
	Convert(ctx context.Context, data []byte, info StreamInfo, opts ConvertOptions) (string, error)
}

// NewStreamInfo builds the hints for data named filename.
func NewStreamInfo(data []byte, filename string) StreamInfo {
	mimeType := http.DetectContentType(data)
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	return StreamInfo{
		Filename:  filename,
		Extension: strings.ToLower(filepath.Ext(filename)),
		MIMEType:  mimeType,
	}
}

func (it StreamInfo) hasExtension(extensions ...string) bool {
	for _, ext := range extensions {
		if it.Extension == ext {
			return true
		}
	}
	return false
}
