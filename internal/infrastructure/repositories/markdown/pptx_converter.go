package markdown

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const notesSlideRelType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesSlide"

var (
	errNoSlides  = errors.New("presentation has no slides")
	slidePartRef = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)
)

// PPTXConverter renders each slide under a numbered marker, titles as
// headings, followed by the speaker notes when present.
type PPTXConverter struct{}

func NewPPTXConverter() *PPTXConverter { return &PPTXConverter{} }

func (it *PPTXConverter) Name() string { return "pptx" }

func (it *PPTXConverter) Accepts(info StreamInfo) bool {
	return info.hasExtension(".pptx")
}

type slidePart struct {
	number int
	name   string
}

func (it *PPTXConverter) Convert(
	ctx context.Context,
	data []byte,
	_ StreamInfo,
	_ ConvertOptions,
) (string, error) {
	pkg, err := openPackage(data)
	if err != nil {
		return "", err
	}

	var slides []slidePart
	for _, file := range pkg.File {
		if match := slidePartRef.FindStringSubmatch(file.Name); match != nil {
			number, _ := strconv.Atoi(match[1])
			slides = append(slides, slidePart{number: number, name: file.Name})
		}
	}
	if len(slides) == 0 {
		return "", errNoSlides
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].number < slides[j].number })

	sections := make([]string, 0, len(slides))
	for _, slide := range slides {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		section, sectionErr := renderSlide(pkg, slide)
		if sectionErr != nil {
			return "", sectionErr
		}
		sections = append(sections, section)
	}

	return strings.Join(sections, "\n\n"), nil
}

func renderSlide(pkg *zip.Reader, slide slidePart) (string, error) {
	content, err := readPart(pkg, slide.name)
	if err != nil {
		return "", err
	}
	lines, err := slideText(content)
	if err != nil {
		return "", fmt.Errorf("malformed %s: %w", slide.name, err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "<!-- Slide number: %d -->", slide.number)
	for _, line := range lines {
		sb.WriteString("\n")
		sb.WriteString(line)
	}

	notes, err := slideNotes(pkg, slide.name)
	if err != nil {
		return "", err
	}
	if len(notes) > 0 {
		sb.WriteString("\n\n### Notes:")
		for _, line := range notes {
			sb.WriteString("\n")
			sb.WriteString(line)
		}
	}

	return sb.String(), nil
}

// slideText returns one line per non-empty paragraph; title placeholders become headings.
func slideText(content []byte) ([]string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(content))

	var (
		lines     []string
		paragraph strings.Builder
		isTitle   bool
		inText    bool
	)
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}

		switch element := token.(type) {
		case xml.StartElement:
			switch element.Name.Local {
			case "sp":
				isTitle = false
			case "ph":
				kind := attribute(element, "type")
				isTitle = kind == "title" || kind == "ctrTitle"
			case "p":
				paragraph.Reset()
			case "t":
				inText = true
			case "br":
				paragraph.WriteByte(' ')
			}
		case xml.EndElement:
			switch element.Name.Local {
			case "t":
				inText = false
			case "p":
				text := strings.TrimSpace(paragraph.String())
				if text == "" {
					continue
				}
				if isTitle {
					text = "# " + text
				}
				lines = append(lines, text)
			}
		case xml.CharData:
			if inText {
				paragraph.Write(element)
			}
		}
	}
}

type relationships struct {
	Items []struct {
		Type   string `xml:"Type,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

// slideNotes follows the slide's relationships to its notes part, if any.
func slideNotes(pkg *zip.Reader, slideName string) ([]string, error) {
	relsName := path.Join(path.Dir(slideName), "_rels", path.Base(slideName)+".rels")
	content, err := readPart(pkg, relsName)
	if err != nil || content == nil {
		return nil, err
	}

	var rels relationships
	if unmarshalErr := xml.Unmarshal(content, &rels); unmarshalErr != nil {
		return nil, fmt.Errorf("malformed %s: %w", relsName, unmarshalErr)
	}

	for _, rel := range rels.Items {
		if rel.Type != notesSlideRelType {
			continue
		}
		notesName := path.Clean(path.Join(path.Dir(slideName), rel.Target))
		notes, readErr := readPart(pkg, notesName)
		if readErr != nil || notes == nil {
			return nil, readErr
		}
		lines, textErr := slideText(notes)
		if textErr != nil {
			return nil, fmt.Errorf("malformed %s: %w", notesName, textErr)
		}
		return withoutSlideNumber(lines), nil
	}
	return nil, nil
}

// withoutSlideNumber drops the slide-number placeholder notes pages carry.
func withoutSlideNumber(lines []string) []string {
	kept := lines[:0]
	for _, line := range lines {
		if _, err := strconv.Atoi(line); err == nil {
			continue
		}
		kept = append(kept, line)
	}
	return kept
}
