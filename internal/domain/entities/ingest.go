package entities

import "strings"

// OutputFormat selects how process_file renders its response.
type OutputFormat string

const (
	FormatMarkdown OutputFormat = "markdown"
	FormatJSON     OutputFormat = "json"
)

// ParseOutputFormat reads the "format" query value; anything but "json" is markdown.
func ParseOutputFormat(raw string) OutputFormat {
	if strings.EqualFold(strings.TrimSpace(raw), string(FormatJSON)) {
		return FormatJSON
	}
	return FormatMarkdown
}

// IngestRequest is a decoded and validated process_file payload.
type IngestRequest struct {
	Filename            string
	Content             []byte
	DeclaredContentType string
}

// IngestResult is the outcome of processing one document. Markdown holds
// either the extracted text or the extraction-failure sentinel.
type IngestResult struct {
	Filename    string `json:"filename"`
	SizeBytes   int    `json:"size_bytes"`
	SHA256      string `json:"sha256"`
	ContentType string `json:"content_type"`
	Markdown    string `json:"markdown"`
}
