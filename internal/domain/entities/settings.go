package entities

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	ProviderGitHub      = "github"
	ProviderGitLab      = "gitlab"
	ProviderAzureDevOps = "azuredevops"

	defaultAddress          = ":8080"
	defaultMaxBodyBytes     = 32 << 20
	defaultUserAgent        = "docbridge"
	defaultReadTimeout      = 10 * time.Second
	defaultWriteTimeout     = 15 * time.Second
	defaultExtractTimeout   = 60 * time.Second
	defaultAzureAPIVersion  = "2024-06-01"
	defaultOpenAIModel      = "gpt-4o-mini"
	defaultCaptioningPrompt = "If the input represents an image or visual diagram, optionally add a concise " +
		"mermaid code block that approximates structural relationships. " +
		"If not appropriate, return only the extracted content with no additions."
)

// Settings is the process-wide configuration. It is built once at start-up
// and shared read-only by every handler.
type Settings struct {
	Server     ServerSettings     `yaml:"server"`
	Repository RepositorySettings `yaml:"repository"`
	Extraction ExtractionSettings `yaml:"extraction"`
}

// ServerSettings configures the HTTP listener.
type ServerSettings struct {
	Address      string `yaml:"address"`
	MaxBodyBytes int64  `yaml:"max_body_bytes"`
	Compression  bool   `yaml:"compression"`
}

// RepositorySettings configures the source-control client used by write_to_repo.
type RepositorySettings struct {
	Provider     string        `yaml:"provider"` // "github", "gitlab" or "azuredevops"
	Token        string        `yaml:"token"`    // Inline, ${ENV_VAR}, or file path
	BaseURL      string        `yaml:"base_url"`
	UserAgent    string        `yaml:"user_agent"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// ExtractionSettings configures the document-to-markdown extractor.
type ExtractionSettings struct {
	Timeout    time.Duration      `yaml:"timeout"`
	Captioning CaptioningSettings `yaml:"captioning"`
}

// CaptioningSettings holds the credentials of every captioning backend.
// Which backend is used is decided by which block is complete.
type CaptioningSettings struct {
	Prompt string              `yaml:"prompt"`
	Azure  AzureOpenAISettings `yaml:"azure_openai"`
	OpenAI OpenAISettings      `yaml:"openai"`
}

type AzureOpenAISettings struct {
	Endpoint   string `yaml:"endpoint"`
	APIKey     string `yaml:"api_key"`
	Deployment string `yaml:"deployment"`
	APIVersion string `yaml:"api_version"`
}

type OpenAISettings struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// TokenKey returns the environment variable that carries the provider token.
func (it RepositorySettings) TokenKey() string {
	switch it.Provider {
	case ProviderGitLab:
		return "GITLAB_TOKEN"
	case ProviderAzureDevOps:
		return "AZURE_DEVOPS_TOKEN"
	default:
		return "GITHUB_TOKEN"
	}
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// DefaultSettings returns the settings used when no file or environment
// variable overrides a value.
func DefaultSettings() *Settings {
	return &Settings{
		Server: ServerSettings{
			Address:      defaultAddress,
			MaxBodyBytes: defaultMaxBodyBytes,
			Compression:  true,
		},
		Repository: RepositorySettings{
			Provider:     ProviderGitHub,
			UserAgent:    defaultUserAgent,
			ReadTimeout:  defaultReadTimeout,
			WriteTimeout: defaultWriteTimeout,
		},
		Extraction: ExtractionSettings{
			Timeout: defaultExtractTimeout,
			Captioning: CaptioningSettings{
				Prompt: defaultCaptioningPrompt,
				Azure:  AzureOpenAISettings{APIVersion: defaultAzureAPIVersion},
				OpenAI: OpenAISettings{Model: defaultOpenAIModel},
			},
		},
	}
}

// NewSettings builds the settings from defaults, an optional YAML file and the
// process environment, in that order of precedence (environment wins).
func NewSettings(path string) (*Settings, error) {
	settings := DefaultSettings()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
		if unmarshalErr := yaml.Unmarshal(data, settings); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
		}
	}

	settings.Repository.Token = resolveToken(settings.Repository.Token)
	settings.Extraction.Captioning.Azure.APIKey = resolveToken(settings.Extraction.Captioning.Azure.APIKey)
	settings.Extraction.Captioning.OpenAI.APIKey = resolveToken(settings.Extraction.Captioning.OpenAI.APIKey)

	applyEnvironment(settings)

	if validateErr := validate(settings); validateErr != nil {
		return nil, validateErr
	}

	return settings, nil
}

// WithAddress returns a copy of the settings listening on the given address.
func (it *Settings) WithAddress(address string) *Settings {
	clone := *it
	if address != "" {
		clone.Server.Address = address
	}
	return &clone
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".docbridge.yaml",
		".docbridge.yml",
		"docbridge.yaml",
		"docbridge.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// applyEnvironment overrides file values with the variables the function
// host injects.
func applyEnvironment(settings *Settings) {
	overrideFromEnv("REPOSITORY_PROVIDER", &settings.Repository.Provider)
	overrideFromEnv("REPOSITORY_BASE_URL", &settings.Repository.BaseURL)
	// the token key depends on the provider, so it is read after the provider
	overrideFromEnv(settings.Repository.TokenKey(), &settings.Repository.Token)

	captioning := &settings.Extraction.Captioning
	overrideFromEnv("AZURE_OPENAI_ENDPOINT", &captioning.Azure.Endpoint)
	overrideFromEnv("AZURE_OPENAI_API_KEY", &captioning.Azure.APIKey)
	overrideFromEnv("AZURE_OPENAI_DEPLOYMENT", &captioning.Azure.Deployment)
	overrideFromEnv("AZURE_OPENAI_API_VERSION", &captioning.Azure.APIVersion)
	overrideFromEnv("OPENAI_API_KEY", &captioning.OpenAI.APIKey)
	overrideFromEnv("OPENAI_MODEL", &captioning.OpenAI.Model)

	if port := os.Getenv("FUNCTIONS_CUSTOMHANDLER_PORT"); port != "" {
		settings.Server.Address = ":" + port
	}
}

func overrideFromEnv(key string, target *string) {
	if val := os.Getenv(key); val != "" {
		*target = val
	}
}

// resolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func resolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// validate checks for values the handlers cannot work without. A missing
// repository token is not an error here: write_to_repo reports it per request.
func validate(settings *Settings) error {
	switch settings.Repository.Provider {
	case ProviderGitHub, ProviderGitLab:
	case ProviderAzureDevOps:
		// the organization URL is the API root, there is no public default
		if settings.Repository.BaseURL == "" {
			return errors.New("repository.base_url is required for azuredevops (https://dev.azure.com/<organization>)")
		}
	default:
		return fmt.Errorf("repository.provider %q is not supported (use %q, %q or %q)",
			settings.Repository.Provider, ProviderGitHub, ProviderGitLab, ProviderAzureDevOps)
	}

	if settings.Repository.BaseURL != "" {
		if _, err := url.ParseRequestURI(settings.Repository.BaseURL); err != nil {
			return fmt.Errorf("repository.base_url is invalid: %w", err)
		}
	}

	if settings.Repository.ReadTimeout <= 0 || settings.Repository.WriteTimeout <= 0 {
		return errors.New("repository.read_timeout and repository.write_timeout must be positive")
	}

	if settings.Extraction.Timeout <= 0 {
		return errors.New("extraction.timeout must be positive")
	}

	if settings.Server.MaxBodyBytes <= 0 {
		return errors.New("server.max_body_bytes must be positive")
	}

	return nil
}
