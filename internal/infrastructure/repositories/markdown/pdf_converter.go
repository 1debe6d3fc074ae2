package markdown

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

const mimePDF = "application/pdf"

// PDFConverter extracts the text layer of a PDF. Scanned pages yield no text.
type PDFConverter struct{}

func NewPDFConverter() *PDFConverter { return &PDFConverter{} }

func (it *PDFConverter) Name() string { return "pdf" }

func (it *PDFConverter) Accepts(info StreamInfo) bool {
	return info.Extension == ".pdf" || info.MIMEType == mimePDF
}

func (it *PDFConverter) Convert(
	_ context.Context,
	data []byte,
	_ StreamInfo,
	_ ConvertOptions,
) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}

	text, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}

	return strings.TrimSpace(string(text)), nil
}
