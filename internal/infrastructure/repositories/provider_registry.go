package repositories

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rios0rios0/docbridge/internal/domain/entities"
	domainRepos "github.com/rios0rios0/docbridge/internal/domain/repositories"
)

// ProviderFactory is a constructor function that creates a SourceControlRepository
// from the repository settings.
type ProviderFactory func(settings entities.RepositorySettings) domainRepos.SourceControlRepository

// ProviderRegistry manages all registered Git provider implementations.
type ProviderRegistry struct {
	providers map[string]ProviderFactory
}

// NewProviderRegistry creates an empty provider registry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		providers: make(map[string]ProviderFactory),
	}
}

// Register adds a provider factory under the given name (e.g. "github").
func (r *ProviderRegistry) Register(name string, factory ProviderFactory) {
	r.providers[name] = factory
}

// Get returns a configured provider instance for the provider named in settings.
func (r *ProviderRegistry) Get(settings entities.RepositorySettings) (domainRepos.SourceControlRepository, error) {
	factory, ok := r.providers[settings.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown provider type: %q (registered: %s)",
			settings.Provider, strings.Join(r.Names(), ", "))
	}
	return factory(settings), nil
}

// Names returns the sorted list of registered provider names.
func (r *ProviderRegistry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
