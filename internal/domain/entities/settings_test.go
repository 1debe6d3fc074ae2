//go:build unit

package entities_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/docbridge/internal/domain/entities"
)

func clearSettingsEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GITHUB_TOKEN", "GITLAB_TOKEN", "AZURE_DEVOPS_TOKEN", "REPOSITORY_PROVIDER", "REPOSITORY_BASE_URL",
		"AZURE_OPENAI_ENDPOINT", "AZURE_OPENAI_API_KEY", "AZURE_OPENAI_DEPLOYMENT",
		"AZURE_OPENAI_API_VERSION", "OPENAI_API_KEY", "OPENAI_MODEL", "FUNCTIONS_CUSTOMHANDLER_PORT",
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docbridge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewSettings(t *testing.T) {
	t.Run("should return defaults when no file and no environment are given", func(t *testing.T) {
		// given
		clearSettingsEnv(t)

		// when
		settings, err := entities.NewSettings("")

		// then
		require.NoError(t, err)
		assert.Equal(t, ":8080", settings.Server.Address)
		assert.Equal(t, entities.ProviderGitHub, settings.Repository.Provider)
		assert.Equal(t, 10*time.Second, settings.Repository.ReadTimeout)
		assert.Equal(t, 15*time.Second, settings.Repository.WriteTimeout)
		assert.Empty(t, settings.Repository.Token)
		assert.Equal(t, "GITHUB_TOKEN", settings.Repository.TokenKey())
	})

	t.Run("should read the file and expand environment references", func(t *testing.T) {
		// given
		clearSettingsEnv(t)
		t.Setenv("MY_SECRET", "from-env")
		path := writeConfig(t, `
server:
  address: ":9090"
repository:
  provider: gitlab
  token: ${MY_SECRET}
  read_timeout: 3s
extraction:
  captioning:
    openai:
      api_key: sk-inline
`)

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, ":9090", settings.Server.Address)
		assert.Equal(t, entities.ProviderGitLab, settings.Repository.Provider)
		assert.Equal(t, "from-env", settings.Repository.Token)
		assert.Equal(t, 3*time.Second, settings.Repository.ReadTimeout)
		assert.Equal(t, 15*time.Second, settings.Repository.WriteTimeout)
		assert.Equal(t, "sk-inline", settings.Extraction.Captioning.OpenAI.APIKey)
		assert.Equal(t, "gpt-4o-mini", settings.Extraction.Captioning.OpenAI.Model)
	})

	t.Run("should let the environment override the file", func(t *testing.T) {
		// given
		clearSettingsEnv(t)
		t.Setenv("GITLAB_TOKEN", "gl-token")
		t.Setenv("REPOSITORY_PROVIDER", "gitlab")
		t.Setenv("FUNCTIONS_CUSTOMHANDLER_PORT", "7071")
		t.Setenv("AZURE_OPENAI_ENDPOINT", "https://example.openai.azure.com")
		path := writeConfig(t, "repository:\n  provider: github\n  token: file-token\n")

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.ProviderGitLab, settings.Repository.Provider)
		assert.Equal(t, "gl-token", settings.Repository.Token)
		assert.Equal(t, ":7071", settings.Server.Address)
		assert.Equal(t, "https://example.openai.azure.com", settings.Extraction.Captioning.Azure.Endpoint)
	})

	t.Run("should fail when the file does not exist", func(t *testing.T) {
		// given
		clearSettingsEnv(t)

		// when
		_, err := entities.NewSettings(filepath.Join(t.TempDir(), "missing.yaml"))

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("should fail on an unknown provider", func(t *testing.T) {
		// given
		clearSettingsEnv(t)
		path := writeConfig(t, "repository:\n  provider: bitbucket\n")

		// when
		_, err := entities.NewSettings(path)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bitbucket")
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("should reject non-positive timeouts", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.DefaultSettings()
		settings.Repository.ReadTimeout = 0

		// when
		err := entities.Validate(settings)

		// then
		require.Error(t, err)
	})

	t.Run("should require an organization URL for azuredevops", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.DefaultSettings()
		settings.Repository.Provider = entities.ProviderAzureDevOps

		// when
		err := entities.Validate(settings)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "repository.base_url is required")
	})

	t.Run("should accept azuredevops with an organization URL", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.DefaultSettings()
		settings.Repository.Provider = entities.ProviderAzureDevOps
		settings.Repository.BaseURL = "https://dev.azure.com/contoso"

		// when
		err := entities.Validate(settings)

		// then
		require.NoError(t, err)
		assert.Equal(t, "AZURE_DEVOPS_TOKEN", settings.Repository.TokenKey())
	})

	t.Run("should accept the defaults", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.DefaultSettings()

		// when
		err := entities.Validate(settings)

		// then
		require.NoError(t, err)
	})
}

func TestResolveToken(t *testing.T) {
	t.Run("should read the token from a file path", func(t *testing.T) {
		// given
		path := filepath.Join(t.TempDir(), "token")
		require.NoError(t, os.WriteFile(path, []byte("  file-secret\n"), 0o600))

		// when
		token := entities.ResolveToken(path)

		// then
		assert.Equal(t, "file-secret", token)
	})

	t.Run("should return an inline token unchanged", func(t *testing.T) {
		// given
		raw := "ghp_inline"

		// when
		token := entities.ResolveToken(raw)

		// then
		assert.Equal(t, "ghp_inline", token)
	})
}

func TestWithAddress(t *testing.T) {
	t.Parallel()

	t.Run("should override the address on a copy only", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.DefaultSettings()

		// when
		overridden := settings.WithAddress("127.0.0.1:0")

		// then
		assert.Equal(t, "127.0.0.1:0", overridden.Server.Address)
		assert.Equal(t, ":8080", settings.Server.Address)
		assert.Equal(t, ":8080", settings.WithAddress("").Server.Address)
	})
}
