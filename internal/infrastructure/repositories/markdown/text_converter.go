package markdown

import (
	"bytes"
	"context"
	"errors"
	"unicode/utf8"
)

var errNotUTF8 = errors.New("text is not valid UTF-8")

// TextConverter passes plain-text formats through unchanged.
type TextConverter struct{}

func NewTextConverter() *TextConverter { return &TextConverter{} }

func (it *TextConverter) Name() string { return "text" }

func (it *TextConverter) Accepts(info StreamInfo) bool {
	return info.MIMEType == "text/plain" ||
		info.hasExtension(".txt", ".md", ".markdown", ".csv", ".json", ".yaml", ".yml", ".log")
}

func (it *TextConverter) Convert(
	_ context.Context,
	data []byte,
	_ StreamInfo,
	_ ConvertOptions,
) (string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(data) {
		return "", errNotUTF8
	}
	return string(data), nil
}
