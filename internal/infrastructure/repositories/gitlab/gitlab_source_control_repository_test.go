//go:build unit

package gitlab_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/docbridge/internal/domain/entities"
	"github.com/rios0rios0/docbridge/internal/domain/repositories"
	glRepo "github.com/rios0rios0/docbridge/internal/infrastructure/repositories/gitlab"
)

const filePath = "/api/v4/projects/owner/repo/repository/files/docs/file.md"

func newGitLabRepository(baseURL string) repositories.SourceControlRepository {
	return glRepo.NewGitLabSourceControlRepository(entities.RepositorySettings{
		Provider:     entities.ProviderGitLab,
		Token:        "glpat",
		BaseURL:      baseURL,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
}

func TestGitLabSourceControlRepositoryGetFile(t *testing.T) {
	t.Parallel()

	t.Run("should return the last commit id of an existing file", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, filePath, r.URL.Path)
			assert.Equal(t, "main", r.URL.Query().Get("ref"))
			assert.Equal(t, "glpat", r.Header.Get("PRIVATE-TOKEN"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"file_path":"docs/file.md","blob_id":"b1","last_commit_id":"lc1"}`))
		}))
		defer server.Close()
		repository := newGitLabRepository(server.URL)

		// when
		revision, err := repository.GetFile(context.Background(), "owner/repo", "docs/file.md", "main")

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.FileRevision{Exists: true, SHA: "lc1"}, revision)
	})

	t.Run("should count an unreadable 200 as present without a revision", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"file_path": "docs/file.md", "last_commit_id": `))
		}))
		defer server.Close()
		repository := newGitLabRepository(server.URL)

		// when
		revision, err := repository.GetFile(context.Background(), "owner/repo", "docs/file.md", "main")

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.FileRevision{Exists: true}, revision)
	})

	t.Run("should treat 404 as absent", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"404 File Not Found"}`))
		}))
		defer server.Close()
		repository := newGitLabRepository(server.URL)

		// when
		revision, err := repository.GetFile(context.Background(), "owner/repo", "docs/file.md", "main")

		// then
		require.NoError(t, err)
		assert.False(t, revision.Exists)
	})

	t.Run("should return a status error without retrying", func(t *testing.T) {
		t.Parallel()

		// given
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"message":"maintenance"}`))
		}))
		defer server.Close()
		repository := newGitLabRepository(server.URL)

		// when
		_, err := repository.GetFile(context.Background(), "owner/repo", "docs/file.md", "main")

		// then
		var statusErr *repositories.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
		assert.Contains(t, statusErr.Body, "maintenance")
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("should return a transport error when the host is unreachable", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.NotFoundHandler())
		baseURL := server.URL
		server.Close()
		repository := newGitLabRepository(baseURL)

		// when
		_, err := repository.GetFile(context.Background(), "owner/repo", "docs/file.md", "main")

		// then
		var transportErr *repositories.TransportError
		require.ErrorAs(t, err, &transportErr)
	})
}

func TestGitLabSourceControlRepositoryPutFile(t *testing.T) {
	t.Parallel()

	t.Run("should create with POST when there is no revision", func(t *testing.T) {
		t.Parallel()

		// given
		var received map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, filePath, r.URL.Path)
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"file_path":"docs/file.md","branch":"main"}`))
		}))
		defer server.Close()
		repository := newGitLabRepository(server.URL)

		// when
		commit, err := repository.PutFile(context.Background(), entities.FileWrite{
			Repo: "owner/repo", Path: "docs/file.md", Content: []byte("# Hello"), Message: "msg", Branch: "main",
		})

		// then
		require.NoError(t, err)
		assert.Nil(t, commit.SHA)
		assert.Nil(t, commit.HTMLURL)
		assert.Equal(t, "base64", received["encoding"])
		assert.Equal(t, "IyBIZWxsbw==", received["content"])
		assert.Equal(t, "msg", received["commit_message"])
		assert.Equal(t, "main", received["branch"])
	})

	t.Run("should update with PUT and the last commit id", func(t *testing.T) {
		t.Parallel()

		// given
		var received map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			_, _ = w.Write([]byte(`{"file_path":"docs/file.md","branch":"main"}`))
		}))
		defer server.Close()
		repository := newGitLabRepository(server.URL)

		// when
		_, err := repository.PutFile(context.Background(), entities.FileWrite{
			Repo: "owner/repo", Path: "docs/file.md", Content: []byte("x"), Message: "m", Branch: "main", SHA: "lc1",
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, "lc1", received["last_commit_id"])
	})

	t.Run("should return a status error on rejection", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"A file with this name already exists"}`))
		}))
		defer server.Close()
		repository := newGitLabRepository(server.URL)

		// when
		_, err := repository.PutFile(context.Background(), entities.FileWrite{
			Repo: "owner/repo", Path: "docs/file.md", Content: []byte("x"), Message: "m", Branch: "main",
		})

		// then
		var statusErr *repositories.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
		assert.Contains(t, statusErr.Body, "already exists")
	})
}
