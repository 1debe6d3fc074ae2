//go:build unit

package internal_test

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"github.com/rios0rios0/docbridge/internal"
	"github.com/rios0rios0/docbridge/test/domain/entitybuilders"
)

func newApp(t *testing.T, builder *entitybuilders.SettingsBuilder) *internal.AppInternal {
	t.Helper()
	container := dig.New()
	require.NoError(t, internal.RegisterProviders(container, builder.BuildSettings()))

	var app *internal.AppInternal
	require.NoError(t, container.Invoke(func(ai *internal.AppInternal) {
		app = ai
	}))
	return app
}

func TestRegisterProviders(t *testing.T) {
	t.Parallel()

	t.Run("should wire every controller", func(t *testing.T) {
		t.Parallel()

		// given
		builder := entitybuilders.NewSettingsBuilder()

		// when
		app := newApp(t, builder)

		// then
		patterns := make([]string, 0, len(app.GetControllers()))
		for _, controller := range app.GetControllers() {
			patterns = append(patterns, controller.GetBind().Pattern())
		}
		assert.ElementsMatch(t, []string{
			"POST /api/process_file",
			"POST /api/write_to_repo",
			"GET /api/health",
		}, patterns)
	})

	t.Run("should resolve the app for the azuredevops provider", func(t *testing.T) {
		t.Parallel()

		// given
		builder := entitybuilders.NewSettingsBuilder().
			WithProvider("azuredevops").
			WithBaseURL("https://dev.azure.com/contoso")

		// when
		app := newApp(t, builder)

		// then
		assert.Len(t, app.GetControllers(), 3)
	})

	t.Run("should fail to resolve the app for an unknown provider", func(t *testing.T) {
		t.Parallel()

		// given
		container := dig.New()
		settings := entitybuilders.NewSettingsBuilder().WithProvider("bitbucket").BuildSettings()
		require.NoError(t, internal.RegisterProviders(container, settings))

		// when
		err := container.Invoke(func(*internal.AppInternal) {})

		// then
		require.Error(t, err)
	})
}

func TestAppInternalHandler(t *testing.T) {
	t.Parallel()

	t.Run("should serve the health endpoint with a request id", func(t *testing.T) {
		t.Parallel()

		// given
		handler := newApp(t, entitybuilders.NewSettingsBuilder()).Handler()
		recorder := httptest.NewRecorder()

		// when
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/health", nil))

		// then
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
	})

	t.Run("should reject the wrong method", func(t *testing.T) {
		t.Parallel()

		// given
		handler := newApp(t, entitybuilders.NewSettingsBuilder()).Handler()
		recorder := httptest.NewRecorder()

		// when
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/process_file", nil))

		// then
		assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
	})

	t.Run("should convert a text document end to end", func(t *testing.T) {
		t.Parallel()

		// given
		handler := newApp(t, entitybuilders.NewSettingsBuilder().WithCompression(false)).Handler()
		content := base64.StdEncoding.EncodeToString([]byte("# Notes\n\nhello"))
		body := `{"filename":"notes.md","content_base64":"` + content + `"}`
		recorder := httptest.NewRecorder()

		// when
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/api/process_file", strings.NewReader(body)))

		// then
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "# Notes\n\nhello", recorder.Body.String())
	})

	t.Run("should return the json envelope for a pdf upload", func(t *testing.T) {
		t.Parallel()

		// given
		handler := newApp(t, entitybuilders.NewSettingsBuilder().WithCompression(false)).Handler()
		content := base64.StdEncoding.EncodeToString([]byte("%PDF-1.4 example minimal"))
		body := `{"filename":"sample.pdf","content_base64":"` + content + `"}`
		recorder := httptest.NewRecorder()

		// when
		handler.ServeHTTP(recorder,
			httptest.NewRequest(http.MethodPost, "/api/process_file?format=json", strings.NewReader(body)))

		// then
		assert.Equal(t, http.StatusOK, recorder.Code)
		var response struct {
			Status string `json:"status"`
			Data   struct {
				Filename    string `json:"filename"`
				SizeBytes   int    `json:"size_bytes"`
				SHA256      string `json:"sha256"`
				ContentType string `json:"content_type"`
				Markdown    string `json:"markdown"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, "ok", response.Status)
		assert.Equal(t, "sample.pdf", response.Data.Filename)
		assert.Equal(t, "application/pdf", response.Data.ContentType)
		assert.Len(t, response.Data.SHA256, 64)
		assert.Equal(t, 24, response.Data.SizeBytes)
	})

	t.Run("should refuse to write without a token", func(t *testing.T) {
		t.Parallel()

		// given
		handler := newApp(t, entitybuilders.NewSettingsBuilder()).Handler()
		body := `{"repo":"owner/repo","path":"docs/a.md","content":"x"}`
		recorder := httptest.NewRecorder()

		// when
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/api/write_to_repo", strings.NewReader(body)))

		// then
		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		assert.JSONEq(t, `{"status":"error","error":"GITHUB_TOKEN environment variable not set"}`, recorder.Body.String())
	})
}
