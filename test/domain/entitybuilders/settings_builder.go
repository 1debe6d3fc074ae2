//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/docbridge/internal/domain/entities"
)

// SettingsBuilder helps create settings with a fluent interface.
// It starts from entities.DefaultSettings.
type SettingsBuilder struct {
	*testkit.BaseBuilder
	settings entities.Settings
}

// NewSettingsBuilder creates a new settings builder with default values.
func NewSettingsBuilder() *SettingsBuilder {
	return &SettingsBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		settings:    *entities.DefaultSettings(),
	}
}

// WithProvider sets the repository provider ("github", "gitlab" or "azuredevops").
func (b *SettingsBuilder) WithProvider(provider string) *SettingsBuilder {
	b.settings.Repository.Provider = provider
	return b
}

// WithToken sets the repository token.
func (b *SettingsBuilder) WithToken(token string) *SettingsBuilder {
	b.settings.Repository.Token = token
	return b
}

// WithBaseURL points the repository client at another API root.
func (b *SettingsBuilder) WithBaseURL(baseURL string) *SettingsBuilder {
	b.settings.Repository.BaseURL = baseURL
	return b
}

// WithMaxBodyBytes sets the request body cap.
func (b *SettingsBuilder) WithMaxBodyBytes(limit int64) *SettingsBuilder {
	b.settings.Server.MaxBodyBytes = limit
	return b
}

// WithCompression toggles response compression.
func (b *SettingsBuilder) WithCompression(enabled bool) *SettingsBuilder {
	b.settings.Server.Compression = enabled
	return b
}

// Build creates the settings (satisfies testkit.Builder interface).
func (b *SettingsBuilder) Build() interface{} {
	return b.BuildSettings()
}

// BuildSettings creates the settings with a concrete return type.
func (b *SettingsBuilder) BuildSettings() *entities.Settings {
	settings := b.settings
	return &settings
}

// Reset clears the builder state, allowing it to be reused.
func (b *SettingsBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.settings = *entities.DefaultSettings()
	return b
}

// Clone creates a deep copy of the SettingsBuilder.
func (b *SettingsBuilder) Clone() testkit.Builder {
	return &SettingsBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		settings:    b.settings,
	}
}
