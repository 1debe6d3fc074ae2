package markdown

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/rios0rios0/docbridge/internal/domain/entities"
)

// maxPartBytes caps the decompressed size of a single package part.
const maxPartBytes = 32 << 20

// openPackage opens an Office Open XML container.
func openPackage(data []byte) (*zip.Reader, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("not an office package: %w", err)
	}
	return reader, nil
}

// readPart returns the content of the named part, or (nil, nil) if absent.
// Parts that inflate past maxPartBytes fail as unsupported.
func readPart(pkg *zip.Reader, name string) ([]byte, error) {
	for _, file := range pkg.File {
		if file.Name != name {
			continue
		}
		if file.UncompressedSize64 > maxPartBytes {
			return nil, oversizedPart(name)
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", name, err)
		}
		defer rc.Close()

		// the header size can lie, so the read is bounded as well
		content, err := io.ReadAll(io.LimitReader(rc, maxPartBytes+1))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		if len(content) > maxPartBytes {
			return nil, oversizedPart(name)
		}
		return content, nil
	}
	return nil, nil
}

func oversizedPart(name string) error {
	return entities.NewExtractionError(
		entities.FailureUnsupported,
		fmt.Errorf("part %s is larger than %d bytes", name, maxPartBytes),
	)
}

// renderTable renders rows as a pipe table; the first row is the header.
func renderTable(rows [][]string) string {
	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	if width == 0 {
		return ""
	}

	var sb strings.Builder
	writeRow := func(row []string) {
		sb.WriteString("|")
		for i := range width {
			cell := ""
			if i < len(row) {
				cell = strings.ReplaceAll(row[i], "|", `\|`)
				cell = strings.ReplaceAll(cell, "\n", " ")
			}
			sb.WriteString(" " + cell + " |")
		}
		sb.WriteString("\n")
	}

	writeRow(rows[0])
	sb.WriteString("|")
	for range width {
		sb.WriteString(" --- |")
	}
	sb.WriteString("\n")
	for _, row := range rows[1:] {
		writeRow(row)
	}
	return strings.TrimRight(sb.String(), "\n")
}
