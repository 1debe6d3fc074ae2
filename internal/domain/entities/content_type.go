package entities

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const (
	ContentTypePDF         = "application/pdf"
	ContentTypeDOCX        = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	ContentTypePPTX        = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	ContentTypeOctetStream = "application/octet-stream"

	imageContentTypePrefix = "image/"
)

//nolint:gochecknoglobals // fixed lookup tables
var (
	inferredContentTypes = []struct {
		extension   string
		contentType string
	}{
		{".pdf", ContentTypePDF},
		{".docx", ContentTypeDOCX},
		{".pptx", ContentTypePPTX},
	}

	imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp", ".tiff"}
)

// InferContentType maps a filename to a content type by its extension.
// Unknown extensions fall back to application/octet-stream.
func InferContentType(filename string) string {
	lower := strings.ToLower(filename)
	for _, entry := range inferredContentTypes {
		if strings.HasSuffix(lower, entry.extension) {
			return entry.contentType
		}
	}
	return ContentTypeOctetStream
}

// IsImage reports whether a document should get image treatment. The content
// type prefix and the filename extension are independent: either one is enough.
func IsImage(filename, contentType string) bool {
	if strings.HasPrefix(contentType, imageContentTypePrefix) {
		return true
	}
	lower := strings.ToLower(filename)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// SHA256Hex returns the lowercase hex SHA-256 digest of data.
func SHA256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
