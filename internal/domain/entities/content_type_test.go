//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/docbridge/internal/domain/entities"
)

func TestInferContentType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
		expected string
	}{
		{"pdf", "report.pdf", entities.ContentTypePDF},
		{"upper case pdf", "REPORT.PDF", entities.ContentTypePDF},
		{"docx", "notes.docx", entities.ContentTypeDOCX},
		{"pptx", "Deck.PpTx", entities.ContentTypePPTX},
		{"image falls back", "photo.png", entities.ContentTypeOctetStream},
		{"no extension", "README", entities.ContentTypeOctetStream},
		{"empty", "", entities.ContentTypeOctetStream},
		{"only the suffix counts", "file.pdf.txt", entities.ContentTypeOctetStream},
	}

	for _, tt := range tests {
		t.Run("should infer "+tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			filename := tt.filename

			// when
			result := entities.InferContentType(filename)

			// then
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestIsImage(t *testing.T) {
	t.Parallel()

	t.Run("should classify by image/ content type regardless of extension", func(t *testing.T) {
		t.Parallel()

		// given
		filename, contentType := "blob.bin", "image/svg+xml"

		// when
		result := entities.IsImage(filename, contentType)

		// then
		assert.True(t, result)
	})

	t.Run("should classify by extension regardless of content type", func(t *testing.T) {
		t.Parallel()

		// given
		filename, contentType := "photo.JPG", "application/pdf"

		// when
		result := entities.IsImage(filename, contentType)

		// then
		assert.True(t, result)
	})

	t.Run("should accept every listed image extension", func(t *testing.T) {
		t.Parallel()

		for _, ext := range []string{"png", "jpg", "jpeg", "gif", "webp", "bmp", "tiff"} {
			// given
			filename := "file." + ext

			// when
			result := entities.IsImage(filename, entities.ContentTypeOctetStream)

			// then
			assert.True(t, result, ext)
		}
	})

	t.Run("should not classify documents as images", func(t *testing.T) {
		t.Parallel()

		// given
		filename, contentType := "report.pdf", entities.ContentTypePDF

		// when
		result := entities.IsImage(filename, contentType)

		// then
		assert.False(t, result)
	})
}

func TestSHA256Hex(t *testing.T) {
	t.Parallel()

	t.Run("should return the lowercase hex digest", func(t *testing.T) {
		t.Parallel()

		// given
		data := []byte("hello")

		// when
		digest := entities.SHA256Hex(data)

		// then
		assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", digest)
		assert.Len(t, digest, 64)
	})
}

func TestParseOutputFormat(t *testing.T) {
	t.Parallel()

	t.Run("should select json only for the json value", func(t *testing.T) {
		t.Parallel()

		// given / when / then
		assert.Equal(t, entities.FormatJSON, entities.ParseOutputFormat("json"))
		assert.Equal(t, entities.FormatJSON, entities.ParseOutputFormat("JSON"))
		assert.Equal(t, entities.FormatMarkdown, entities.ParseOutputFormat(""))
		assert.Equal(t, entities.FormatMarkdown, entities.ParseOutputFormat("xml"))
	})
}
