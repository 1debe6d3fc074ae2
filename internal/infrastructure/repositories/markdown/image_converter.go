package markdown

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"strings"

	_ "golang.org/x/image/bmp"  // register decoder
	_ "golang.org/x/image/tiff" // register decoder
	_ "golang.org/x/image/webp" // register decoder

	"github.com/rios0rios0/docbridge/internal/domain/entities"
)

// ImageConverter reports image dimensions and, when a captioner is
// available, a generated description.
type ImageConverter struct{}

func NewImageConverter() *ImageConverter { return &ImageConverter{} }

func (it *ImageConverter) Name() string { return "image" }

func (it *ImageConverter) Accepts(info StreamInfo) bool {
	return strings.HasPrefix(info.MIMEType, "image/") ||
		info.hasExtension(".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp", ".tiff", ".tif")
}

func (it *ImageConverter) Convert(
	ctx context.Context,
	data []byte,
	info StreamInfo,
	opts ConvertOptions,
) (string, error) {
	var sections []string

	config, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err == nil {
		sections = append(sections, fmt.Sprintf("ImageSize: %dx%d\nFormat: %s", config.Width, config.Height, format))
	} else if opts.Captioner == nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	if opts.Captioner != nil {
		caption, captionErr := opts.Captioner.Caption(ctx, data, imageMIMEType(info, format), info.Filename)
		if captionErr != nil {
			kind := entities.FailureBackendUnavailable
			if errors.Is(captionErr, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
				kind = entities.FailureTimeout
			}
			return "", entities.NewExtractionError(kind, captionErr)
		}
		if caption != "" {
			sections = append(sections, "# Description:\n"+caption)
		}
	}

	return strings.Join(sections, "\n\n"), nil
}

func imageMIMEType(info StreamInfo, format string) string {
	if strings.HasPrefix(info.MIMEType, "image/") {
		return info.MIMEType
	}
	if format != "" {
		return "image/" + format
	}
	return "application/octet-stream"
}
