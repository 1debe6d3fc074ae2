package markdown

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const docxDocumentPart = "word/document.xml"

var errMissingDocumentPart = errors.New("word/document.xml not found")

// DOCXConverter renders Word paragraphs, headings, lists and tables.
type DOCXConverter struct{}

func NewDOCXConverter() *DOCXConverter { return &DOCXConverter{} }

func (it *DOCXConverter) Name() string { return "docx" }

func (it *DOCXConverter) Accepts(info StreamInfo) bool {
	return info.hasExtension(".docx")
}

func (it *DOCXConverter) Convert(
	ctx context.Context,
	data []byte,
	_ StreamInfo,
	_ ConvertOptions,
) (string, error) {
	pkg, err := openPackage(data)
	if err != nil {
		return "", err
	}
	document, err := readPart(pkg, docxDocumentPart)
	if err != nil {
		return "", err
	}
	if document == nil {
		return "", errMissingDocumentPart
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	return renderDocument(document)
}

// docxState accumulates blocks while walking word/document.xml.
type docxState struct {
	blocks     []string
	paragraph  strings.Builder
	style      string
	listItem   bool
	inText     bool
	tableDepth int
	rows       [][]string
	row        []string
	cell       []string
}

func renderDocument(document []byte) (string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(document))
	state := &docxState{}

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("malformed %s: %w", docxDocumentPart, err)
		}

		switch element := token.(type) {
		case xml.StartElement:
			state.start(element)
		case xml.EndElement:
			state.end(element)
		case xml.CharData:
			if state.inText {
				state.paragraph.Write(element)
			}
		}
	}

	return strings.Join(state.blocks, "\n\n"), nil
}

func (it *docxState) start(element xml.StartElement) {
	switch element.Name.Local {
	case "tbl":
		it.tableDepth++
		if it.tableDepth == 1 {
			it.rows = nil
		}
	case "tr":
		if it.tableDepth == 1 {
			it.row = nil
		}
	case "tc":
		if it.tableDepth == 1 {
			it.cell = nil
		}
	case "p":
		it.paragraph.Reset()
		it.style = ""
		it.listItem = false
	case "pStyle":
		it.style = attribute(element, "val")
	case "numPr":
		it.listItem = true
	case "t":
		it.inText = true
	case "tab":
		it.paragraph.WriteByte('\t')
	case "br", "cr":
		it.paragraph.WriteByte('\n')
	}
}

func (it *docxState) end(element xml.EndElement) {
	switch element.Name.Local {
	case "t":
		it.inText = false
	case "p":
		text := strings.TrimSpace(it.paragraph.String())
		it.paragraph.Reset()
		if text == "" {
			return
		}
		if it.tableDepth > 0 {
			it.cell = append(it.cell, text)
			return
		}
		it.blocks = append(it.blocks, paragraphPrefix(it.style, it.listItem)+text)
	case "tc":
		if it.tableDepth == 1 {
			it.row = append(it.row, strings.Join(it.cell, " "))
		}
	case "tr":
		if it.tableDepth == 1 {
			it.rows = append(it.rows, it.row)
		}
	case "tbl":
		it.tableDepth--
		if it.tableDepth == 0 {
			if table := renderTable(it.rows); table != "" {
				it.blocks = append(it.blocks, table)
			}
		}
	}
}

// paragraphPrefix maps a Word paragraph style onto markdown block syntax.
func paragraphPrefix(style string, listItem bool) string {
	lower := strings.ToLower(strings.ReplaceAll(style, " ", ""))
	if lower == "title" {
		return "# "
	}
	if level, err := strconv.Atoi(strings.TrimPrefix(lower, "heading")); err == nil &&
		strings.HasPrefix(lower, "heading") && level >= 1 && level <= 6 {
		return strings.Repeat("#", level) + " "
	}
	if listItem || lower == "listparagraph" || strings.HasPrefix(lower, "listbullet") {
		return "- "
	}
	return ""
}

func attribute(element xml.StartElement, local string) string {
	for _, attr := range element.Attr {
		if attr.Name.Local == local {
			return attr.Value
		}
	}
	return ""
}
